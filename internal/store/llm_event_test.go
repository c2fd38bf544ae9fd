package store

import (
	"context"
	"testing"
)

func TestLLMEventAppendAndQuery(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []LLMRequestEventData{
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "quiz-gen", InputTokens: 100, OutputTokens: 400, LatencyMs: 900, Success: true, RequestBody: "[user]\nmake a quiz"},
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "guidance", InputTokens: 50, OutputTokens: 150, LatencyMs: 300, Success: true},
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "quiz-gen", LatencyMs: 100, Success: false, ErrorMessage: "rate limited"},
	}
	for _, e := range events {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	all, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Fatalf("events = %d, want 3", len(all))
	}
	if all[0].ErrorMessage != "rate limited" {
		t.Errorf("expected newest first, got %+v", all[0])
	}

	limited, _ := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 1})
	if len(limited) != 1 {
		t.Errorf("limit 1 returned %d", len(limited))
	}

	gen, _ := repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "quiz-gen"})
	if len(gen) != 2 {
		t.Errorf("quiz-gen events = %d, want 2", len(gen))
	}

	e, err := repo.GetLLMEvent(ctx, all[2].ID)
	if err != nil || e == nil {
		t.Fatalf("get event: %v, %v", e, err)
	}
	if e.RequestBody != "[user]\nmake a quiz" {
		t.Errorf("request body = %q", e.RequestBody)
	}

	missing, err := repo.GetLLMEvent(ctx, 9999)
	if err != nil || missing != nil {
		t.Errorf("missing event = %v, %v", missing, err)
	}
}

func TestLLMUsageByPurpose(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, e := range []LLMRequestEventData{
		{Provider: "p", Model: "m1", Purpose: "guidance", InputTokens: 10, OutputTokens: 20, LatencyMs: 100, Success: true},
		{Provider: "p", Model: "m1", Purpose: "guidance", InputTokens: 30, OutputTokens: 40, LatencyMs: 300, Success: true},
		{Provider: "p", Model: "m2", Purpose: "quiz-gen", InputTokens: 5, OutputTokens: 5, LatencyMs: 50, Success: true},
	} {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatal(err)
		}
	}

	usage, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(usage) != 2 {
		t.Fatalf("usage rows = %d, want 2", len(usage))
	}
	g := usage[0]
	if g.Purpose != "guidance" || g.Calls != 2 || g.InputTokens != 40 || g.OutputTokens != 60 || g.AvgLatencyMs != 200 {
		t.Errorf("guidance usage = %+v", g)
	}

	byModel, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(byModel) != 2 || byModel[1].Model != "m2" {
		t.Errorf("by model = %+v", byModel)
	}
}
