package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// MockResponse is one scripted reply.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockProvider replays scripted replies in order and records every request.
// Once the script runs out it answers from Canned by schema name, and
// fails as unavailable when nothing matches.
type MockProvider struct {
	mu     sync.Mutex
	script []MockResponse
	Calls  []Request

	// Canned maps a schema name to a fixed reply.
	Canned map[string]json.RawMessage
}

// NewMockProvider scripts the given replies.
func NewMockProvider(script ...MockResponse) *MockProvider {
	return &MockProvider{script: script}
}

// NewOfflineProvider answers quiz generation and guidance requests with
// fixed content so the whole flow runs without an API key.
func NewOfflineProvider() *MockProvider {
	return &MockProvider{Canned: map[string]json.RawMessage{
		"quiz-questions":       json.RawMessage(offlineQuestions),
		"improvement-guidance": json.RawMessage(offlineGuidance),
	}}
}

func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, req)

	var next MockResponse
	switch {
	case len(m.script) > 0:
		next, m.script = m.script[0], m.script[1:]
	case req.Schema != nil && m.Canned[req.Schema.Name] != nil:
		next = MockResponse{Content: m.Canned[req.Schema.Name]}
	default:
		return nil, Unavailable("mock", nil)
	}
	if next.Err != nil {
		return nil, next.Err
	}
	return &Response{Content: next.Content, Usage: next.Usage, Model: "mock", StopReason: StopEnd}, nil
}

func (m *MockProvider) ModelID() string { return "mock" }

// AddResponse appends to the script.
func (m *MockProvider) AddResponse(r MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.script = append(m.script, r)
}

func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

const offlineQuestions = `{"questions":[
{"content":"Which planet is known as the Red Planet?","options":["Venus","Mars","Jupiter","Mercury"],"correctAnswer":"Mars","explanation":"Iron oxide on its surface gives Mars its red colour."},
{"content":"What is the chemical symbol for water?","options":["H2O","CO2","O2","NaCl"],"correctAnswer":"H2O","explanation":"A water molecule has two hydrogen atoms and one oxygen atom."},
{"content":"How many sides does a hexagon have?","options":["Five","Six","Seven","Eight"],"correctAnswer":"Six","explanation":"The prefix hexa- means six."},
{"content":"Which gas do plants absorb for photosynthesis?","options":["Oxygen","Nitrogen","Carbon dioxide","Helium"],"correctAnswer":"Carbon dioxide","explanation":"Plants turn carbon dioxide and water into glucose using light."},
{"content":"What is 7 multiplied by 8?","options":["54","56","58","64"],"correctAnswer":"56","explanation":"7 x 8 = 56."}
]}`

const offlineGuidance = `{"guidance":"- Revisit the questions you missed and read each explanation.\n- Summarise the key idea of each topic in your own words.\n- Try a short practice quiz tomorrow to check what stuck."}`
