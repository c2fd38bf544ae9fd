package difficulty

import (
	"encoding/json"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"EASY", Easy, false},
		{"medium", Medium, false},
		{" Hard ", Hard, false},
		{"extreme", Easy, true},
		{"", Easy, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseLevel(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestHarderEasierClamp(t *testing.T) {
	if Harder(Hard) != Hard {
		t.Error("Harder(HARD) should clamp to HARD")
	}
	if Easier(Easy) != Easy {
		t.Error("Easier(EASY) should clamp to EASY")
	}
	if Harder(Easy) != Medium || Easier(Hard) != Medium {
		t.Error("expected single-step moves to MEDIUM")
	}
}

func TestLevelJSON(t *testing.T) {
	type wrapper struct {
		D Level `json:"difficulty"`
	}
	b, err := json.Marshal(wrapper{D: Medium})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"difficulty":"MEDIUM"}` {
		t.Fatalf("unexpected JSON: %s", b)
	}

	var w wrapper
	if err := json.Unmarshal([]byte(`{"difficulty":"hard"}`), &w); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if w.D != Hard {
		t.Errorf("got %s, want HARD", w.D)
	}

	if err := json.Unmarshal([]byte(`{"difficulty":"bogus"}`), &w); err == nil {
		t.Error("expected error for unknown difficulty")
	}
}
