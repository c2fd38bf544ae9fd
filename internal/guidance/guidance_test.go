package guidance

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizup/internal/llm"
)

type memSaver struct {
	mu    sync.Mutex
	saved map[string]string
	err   error
}

func newMemSaver() *memSaver { return &memSaver{saved: map[string]string{}} }

func (m *memSaver) SetGuidance(_ context.Context, id, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved[id] = text
	return m.err
}

func (m *memSaver) get(id string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saved[id]
}

func guidanceJSON(text string) json.RawMessage {
	b, _ := json.Marshal(guidanceOutput{Guidance: text})
	return b
}

func sampleInput() Input {
	return Input{
		Subject: "Chemistry",
		Topic:   "Acids",
		Score:   50,
		Missed: []Missed{
			{Question: "What is the pH of pure water?", CorrectAnswer: "7", UserAnswer: "5"},
		},
	}
}

func TestGenerator_Generate(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: guidanceJSON("- Review the pH scale\n- Practice neutralisation")})
	g := NewGenerator(mock)

	text, err := g.Generate(context.Background(), sampleInput())
	require.NoError(t, err)
	assert.Equal(t, "- Review the pH scale\n- Practice neutralisation", text)

	require.Equal(t, 1, mock.CallCount())
	msg := mock.Calls[0].Messages[0].Content
	assert.Contains(t, msg, "Subject: Chemistry")
	assert.Contains(t, msg, "Topic: Acids")
	assert.Contains(t, msg, "Score: 50%")
	assert.Contains(t, msg, "Question: What is the pH of pure water?\nCorrect Answer: 7\nUser Answer: 5")
	assert.Equal(t, Schema, mock.Calls[0].Schema)
}

func TestGenerator_AllCorrectPrompt(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: guidanceJSON("Great work!")})
	_, err := NewGenerator(mock).Generate(context.Background(), Input{Subject: "Biology", Score: 100})
	require.NoError(t, err)
	assert.Contains(t, mock.Calls[0].Messages[0].Content, "They answered all questions correctly!")
	assert.NotContains(t, mock.Calls[0].Messages[0].Content, "Topic:")
}

func TestGenerator_EmptyGuidanceIsError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: guidanceJSON("   ")})
	_, err := NewGenerator(mock).Generate(context.Background(), sampleInput())
	require.Error(t, err)
}

func TestLimitWords(t *testing.T) {
	long := strings.Repeat("word ", 300)
	got := limitWords(long, MaxWords)
	assert.Equal(t, MaxWords, len(strings.Fields(strings.TrimSuffix(got, "…"))))
	assert.True(t, strings.HasSuffix(got, "…"))

	short := "- one\n- two"
	assert.Equal(t, short, limitWords(short, MaxWords))
}

func TestService_SavesGeneratedGuidance(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: guidanceJSON("- Keep going")})
	saver := newMemSaver()
	svc := NewService(NewGenerator(mock), saver)

	assert.True(t, svc.Request(context.Background(), "r1", sampleInput()))
	svc.Close()

	assert.Equal(t, "- Keep going", saver.get("r1"))
}

func TestService_FallbackOnFailure(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: llm.Unavailable("gemini", errors.New("down"))})
	saver := newMemSaver()
	svc := NewService(NewGenerator(mock), saver)

	svc.Request(context.Background(), "r1", sampleInput())
	svc.Close()

	assert.Equal(t, FallbackMessage, saver.get("r1"))
}

func TestService_WithoutProvider(t *testing.T) {
	saver := newMemSaver()
	svc := NewService(nil, saver)

	svc.Request(context.Background(), "r1", sampleInput())
	svc.Close()

	assert.Equal(t, UnavailableMessage, saver.get("r1"))
	assert.Equal(t, UnavailableMessage, svc.Compose(context.Background(), sampleInput()))
}

func TestService_RequestSurvivesCanceledContext(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: guidanceJSON("- ok")})
	saver := newMemSaver()
	svc := NewService(NewGenerator(mock), saver)

	ctx, cancel := context.WithCancel(context.Background())
	svc.Request(ctx, "r1", sampleInput())
	cancel()
	svc.Close()

	assert.Equal(t, "- ok", saver.get("r1"))
}

func TestService_CloseIsIdempotent(t *testing.T) {
	svc := NewService(nil, newMemSaver())
	svc.Close()
	svc.Close()
}

func TestService_RequestAfterCloseStoresFallback(t *testing.T) {
	saver := newMemSaver()
	svc := NewService(nil, saver)
	svc.Close()

	assert.NotPanics(t, func() {
		assert.False(t, svc.Request(context.Background(), "late", sampleInput()))
	})
	assert.Equal(t, FallbackMessage, saver.get("late"))
}
