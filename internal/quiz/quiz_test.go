package quiz

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizup/internal/difficulty"
	"github.com/abhisek/quizup/internal/events"
	"github.com/abhisek/quizup/internal/guidance"
	"github.com/abhisek/quizup/internal/llm"
	"github.com/abhisek/quizup/internal/metrics"
	"github.com/abhisek/quizup/internal/quizgen"
	"github.com/abhisek/quizup/internal/rankcache"
	"github.com/abhisek/quizup/internal/store"
)

type fixture struct {
	st      *store.Store
	svc     *Service
	events  *events.Recorder
	teacher *store.User
	other   *store.User
	admin   *store.User
	alice   *store.User
	bob     *store.User
}

// newFixture opens an in-memory store with a teacher linked to alice and
// bob, a second teacher and an admin.
func newFixture(t *testing.T, mutate ...func(*Deps)) *fixture {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	st, err := store.Open("file:" + name + "?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	rec := &events.Recorder{}
	deps := Deps{
		Users:     st.Users(),
		Quizzes:   st.Quizzes(),
		Results:   st.Results(),
		Publisher: rec,
		Metrics:   metrics.New(),
	}
	for _, m := range mutate {
		m(&deps)
	}

	f := &fixture{st: st, svc: NewService(deps), events: rec}
	ctx := context.Background()
	mk := func(name string, role store.Role) *store.User {
		u, err := f.svc.RegisterUser(ctx, name, strings.ToLower(name)+"@example.com", role)
		require.NoError(t, err)
		return u
	}
	f.teacher = mk("Tess", store.RoleTeacher)
	f.other = mk("Otto", store.RoleTeacher)
	f.admin = mk("Ada", store.RoleAdmin)
	f.alice = mk("Alice", store.RoleStudent)
	f.bob = mk("Bob", store.RoleStudent)
	require.NoError(t, f.svc.LinkStudent(ctx, f.teacher.ID, f.alice.ID))
	require.NoError(t, f.svc.LinkStudent(ctx, f.teacher.ID, f.bob.ID))
	return f
}

func chemistryInput() CreateQuizInput {
	return CreateQuizInput{
		Title:    "Acids and Bases",
		Subject:  "Chemistry",
		Topic:    "pH",
		Level:    "Beginner",
		Duration: 10,
		Questions: []QuestionInput{
			{Content: "pH of pure water?", Options: []string{"5", "6", "7", "8"}, CorrectAnswer: "7", Explanation: "Neutral"},
			{Content: "Symbol for water?", Options: []string{"H2O", "CO2", "O2", "H2"}, CorrectAnswer: "H2O"},
			{Content: "Atomic number of carbon?", Options: []string{"4", "6", "8", "12"}, CorrectAnswer: "6"},
			{Content: "Most abundant gas in air?", Options: []string{"Oxygen", "Nitrogen", "Argon", "CO2"}, CorrectAnswer: "Nitrogen"},
		},
	}
}

func (f *fixture) createQuiz(t *testing.T) *store.Quiz {
	t.Helper()
	c, err := f.svc.CreateQuiz(context.Background(), f.teacher.ID, chemistryInput())
	require.NoError(t, err)
	return c.Quiz
}

func TestCreateQuiz_AssignsLinkedStudents(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c, err := f.svc.CreateQuiz(ctx, f.teacher.ID, chemistryInput())
	require.NoError(t, err)
	assert.False(t, c.UsedAI)
	assert.ElementsMatch(t, []string{f.alice.ID, f.bob.ID}, c.AssignedTo)

	for _, id := range []string{f.alice.ID, f.bob.ID} {
		ok, err := f.st.Quizzes().IsAssigned(ctx, c.Quiz.ID, id)
		require.NoError(t, err)
		assert.True(t, ok)
	}

	stored, err := f.st.Quizzes().GetQuiz(ctx, c.Quiz.ID)
	require.NoError(t, err)
	require.Len(t, stored.Questions, 4)
	for _, q := range stored.Questions {
		assert.Equal(t, difficulty.Easy, q.Difficulty)
	}

	assert.Len(t, f.events.OfType(events.QuizCreated), 1)
	assert.Len(t, f.events.OfType(events.QuizAssigned), 1)
}

func TestCreateQuiz_Rejects(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		userID string
		mutate func(*CreateQuizInput)
		want   error
	}{
		{"student author", "alice", func(*CreateQuizInput) {}, ErrForbidden},
		{"no title", "", func(in *CreateQuizInput) { in.Title = " " }, ErrInvalidInput},
		{"no questions", "", func(in *CreateQuizInput) { in.Questions = nil }, ErrInvalidInput},
		{"one option", "", func(in *CreateQuizInput) {
			in.Questions[0].Options = []string{"7"}
		}, ErrInvalidInput},
		{"answer not an option", "", func(in *CreateQuizInput) {
			in.Questions[1].CorrectAnswer = "water"
		}, ErrInvalidInput},
		{"duplicate options", "", func(in *CreateQuizInput) {
			in.Questions[2].Options = []string{"6", "6", "8"}
		}, ErrInvalidInput},
		{"negative duration", "", func(in *CreateQuizInput) { in.Duration = -1 }, ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := chemistryInput()
			tt.mutate(&in)
			author := f.teacher.ID
			if tt.userID == "alice" {
				author = f.alice.ID
			}
			_, err := f.svc.CreateQuiz(ctx, author, in)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func generatedJSON(qs ...quizgen.Question) json.RawMessage {
	b, _ := json.Marshal(map[string]any{"questions": qs})
	return b
}

func TestGenerateQuiz_UsesModel(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: generatedJSON(
		quizgen.Question{Content: "What is 3 × 3?", Options: []string{"6", "9", "12", "3"}, CorrectAnswer: "9", Explanation: "3 × 3 = 9"},
		quizgen.Question{Content: "What is 12 ÷ 4?", Options: []string{"2", "3", "4", "6"}, CorrectAnswer: "3", Explanation: "12 ÷ 4 = 3"},
	)})
	f := newFixture(t, func(d *Deps) { d.Generator = quizgen.New(mock, quizgen.DefaultConfig()) })

	c, err := f.svc.GenerateQuiz(context.Background(), f.teacher.ID, GenerateQuizInput{
		Subject: "Mathematics", Level: "Beginner", Duration: 10, NumQuestions: 2,
	})
	require.NoError(t, err)
	assert.True(t, c.UsedAI)
	assert.True(t, c.Quiz.UsedAI)
	assert.Equal(t, "Mathematics Quiz (Beginner)", c.Quiz.Title)
	require.Len(t, c.Quiz.Questions, 2)
	assert.Equal(t, "What is 3 × 3?", c.Quiz.Questions[0].Content)
	assert.Len(t, c.AssignedTo, 2)
	assert.Equal(t, 1, mock.CallCount())
}

func TestGenerateQuiz_FallsBack(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: llm.Unavailable("gemini", errors.New("down"))})
	f := newFixture(t, func(d *Deps) { d.Generator = quizgen.New(mock, quizgen.DefaultConfig()) })

	c, err := f.svc.GenerateQuiz(context.Background(), f.teacher.ID, GenerateQuizInput{
		Title: "Science check", Subject: "Science", Level: "Beginner", Duration: 5, NumQuestions: 7,
	})
	require.NoError(t, err)
	assert.False(t, c.UsedAI)
	require.Len(t, c.Quiz.Questions, 7)
	assert.Equal(t, c.Quiz.Questions[0].Content, c.Quiz.Questions[3].Content, "bank cycles")
}

func TestGenerateQuiz_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for _, in := range []GenerateQuizInput{
		{Level: "Beginner", Duration: 5, NumQuestions: 3},
		{Subject: "Physics", Duration: 5, NumQuestions: 3},
		{Subject: "Physics", Level: "Beginner", NumQuestions: 3},
		{Subject: "Physics", Level: "Beginner", Duration: 5},
		{Subject: "Physics", Level: "Beginner", Duration: 5, NumQuestions: MaxQuestions + 1},
	} {
		_, err := f.svc.GenerateQuiz(ctx, f.teacher.ID, in)
		assert.True(t, errors.Is(err, ErrInvalidInput), "input %+v: %v", in, err)
	}
}

func TestGeneratePracticeQuiz(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c, err := f.svc.GeneratePracticeQuiz(ctx, f.alice.ID, "Physics", "Forces")
	require.NoError(t, err)
	assert.Equal(t, "Physics Practice Quiz: Forces", c.Quiz.Title)
	assert.Len(t, c.Quiz.Questions, PracticeQuestions)
	assert.Equal(t, PracticeDuration, c.Quiz.DurationMins)
	assert.Equal(t, []string{f.alice.ID}, c.AssignedTo)

	_, err = f.svc.GeneratePracticeQuiz(ctx, f.teacher.ID, "Physics", "Forces")
	assert.True(t, errors.Is(err, ErrForbidden))
}

func TestAssignQuiz(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	quiz := f.createQuiz(t)

	carol, err := f.svc.RegisterUser(ctx, "Carol", "carol@example.com", store.RoleStudent)
	require.NoError(t, err)

	require.NoError(t, f.svc.AssignQuiz(ctx, f.teacher.ID, quiz.ID, []string{carol.ID, f.alice.ID}))
	ok, err := f.st.Quizzes().IsAssigned(ctx, quiz.ID, carol.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	err = f.svc.AssignQuiz(ctx, f.other.ID, quiz.ID, []string{carol.ID})
	assert.True(t, errors.Is(err, ErrForbidden))

	err = f.svc.AssignQuiz(ctx, f.teacher.ID, quiz.ID, []string{f.other.ID})
	assert.True(t, errors.Is(err, ErrInvalidInput))

	err = f.svc.AssignQuiz(ctx, f.teacher.ID, "missing", []string{carol.ID})
	assert.True(t, errors.Is(err, ErrNotFound))

	err = f.svc.AssignQuiz(ctx, f.teacher.ID, quiz.ID, nil)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestSubmit_GradesAndPersists(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	quiz := f.createQuiz(t)

	res, err := f.svc.Submit(ctx, f.alice.ID, SubmitInput{
		QuizID:        quiz.ID,
		Answers:       []string{"7", "H2O", "6", "Oxygen"},
		TimeTakenSecs: 95,
	})
	require.NoError(t, err)
	assert.Equal(t, 75, res.Score)
	assert.Equal(t, 3, res.Correct)
	assert.Equal(t, 4, res.Total)

	var levels []difficulty.Level
	for _, qr := range res.Questions {
		levels = append(levels, qr.Difficulty)
	}
	assert.Equal(t, []difficulty.Level{difficulty.Easy, difficulty.Easy, difficulty.Medium, difficulty.Medium}, levels)

	stored, err := f.st.Results().GetResult(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, 95, stored.TimeTakenSecs)
	require.Len(t, stored.Questions, 4)
	assert.False(t, stored.Questions[3].IsCorrect)
	assert.Equal(t, "Nitrogen", stored.Questions[3].CorrectAnswer)

	q, err := f.st.Quizzes().GetQuiz(ctx, quiz.ID)
	require.NoError(t, err)
	assert.Equal(t, difficulty.Medium, q.Questions[2].Difficulty)
	assert.Equal(t, difficulty.Easy, q.Questions[0].Difficulty)

	submitted := f.events.OfType(events.ResultSubmitted)
	require.Len(t, submitted, 1)
	var p events.ResultSubmittedPayload
	require.NoError(t, json.Unmarshal(submitted[0].Payload, &p))
	assert.Equal(t, 75, p.Score)
	assert.Equal(t, "MEDIUM", p.FinalDifficulty)

	_, err = f.svc.Submit(ctx, f.alice.ID, SubmitInput{QuizID: quiz.ID, Answers: []string{"7", "H2O", "6", "Nitrogen"}})
	assert.True(t, errors.Is(err, ErrAlreadySubmitted))
}

func TestSubmit_GradesInAnswerOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	quiz := f.createQuiz(t)
	ids := make([]string, len(quiz.Questions))
	for i, q := range quiz.Questions {
		ids[i] = q.ID
	}

	// Answered 2nd, 3rd, 4th correctly, then the 1st wrong.
	res, err := f.svc.Submit(ctx, f.alice.ID, SubmitInput{
		QuizID:  quiz.ID,
		Answers: []string{"5", "H2O", "6", "Nitrogen"},
		Order:   []string{ids[1], ids[2], ids[3], ids[0]},
	})
	require.NoError(t, err)
	assert.Equal(t, 75, res.Score)

	var got []string
	var levels []difficulty.Level
	for _, qr := range res.Questions {
		got = append(got, qr.QuestionID)
		levels = append(levels, qr.Difficulty)
	}
	assert.Equal(t, []string{ids[1], ids[2], ids[3], ids[0]}, got)
	assert.Equal(t, []difficulty.Level{difficulty.Easy, difficulty.Easy, difficulty.Medium, difficulty.Medium}, levels)
	assert.False(t, res.Questions[3].IsCorrect)
	assert.Equal(t, "5", res.Questions[3].UserAnswer)

	q, err := f.st.Quizzes().GetQuiz(ctx, quiz.ID)
	require.NoError(t, err)
	assert.Equal(t, difficulty.Medium, q.Questions[0].Difficulty)
	assert.Equal(t, difficulty.Easy, q.Questions[1].Difficulty)
}

func TestSubmit_RejectsBadOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	quiz := f.createQuiz(t)
	ids := []string{quiz.Questions[0].ID, quiz.Questions[1].ID, quiz.Questions[2].ID, quiz.Questions[3].ID}
	answers := []string{"7", "H2O", "6", "Nitrogen"}

	for name, order := range map[string][]string{
		"short":    ids[:3],
		"repeated": {ids[0], ids[0], ids[2], ids[3]},
		"unknown":  {ids[0], ids[1], ids[2], "nope"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := f.svc.Submit(ctx, f.alice.ID, SubmitInput{QuizID: quiz.ID, Answers: answers, Order: order})
			assert.True(t, errors.Is(err, ErrInvalidInput), "err = %v", err)
		})
	}

	_, err := f.svc.Submit(ctx, f.alice.ID, SubmitInput{QuizID: quiz.ID, Answers: answers, Order: ids})
	require.NoError(t, err)
}

func TestSubmit_Rejects(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	quiz := f.createQuiz(t)

	outsider, err := f.svc.RegisterUser(ctx, "Dan", "dan@example.com", store.RoleStudent)
	require.NoError(t, err)

	tests := []struct {
		name    string
		student string
		in      SubmitInput
		want    error
	}{
		{"missing quiz", f.alice.ID, SubmitInput{QuizID: "nope", Answers: []string{}}, ErrNotFound},
		{"not assigned", outsider.ID, SubmitInput{QuizID: quiz.ID, Answers: []string{"7", "H2O", "6", "Nitrogen"}}, ErrNotAssigned},
		{"too few answers", f.alice.ID, SubmitInput{QuizID: quiz.ID, Answers: []string{"7"}}, ErrInvalidInput},
		{"no answers", f.alice.ID, SubmitInput{QuizID: quiz.ID}, ErrInvalidInput},
		{"negative time", f.alice.ID, SubmitInput{QuizID: quiz.ID, Answers: []string{}, TimeTakenSecs: -5}, ErrInvalidInput},
		{"unknown user", "ghost", SubmitInput{QuizID: quiz.ID, Answers: []string{}}, ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Submit(ctx, tt.student, tt.in)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}

	r, err := f.st.Results().ResultFor(ctx, f.alice.ID, quiz.ID)
	require.NoError(t, err)
	assert.Nil(t, r, "rejected submissions store nothing")
}

func TestSubmit_StoresGuidance(t *testing.T) {
	var gs *guidance.Service
	f := newFixture(t, func(d *Deps) {
		gs = guidance.NewService(nil, d.Results)
		d.Guidance = gs
	})
	ctx := context.Background()
	quiz := f.createQuiz(t)

	res, err := f.svc.Submit(ctx, f.bob.ID, SubmitInput{QuizID: quiz.ID, Answers: []string{"5", "CO2", "4", "Argon"}})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Score)

	gs.Close()
	stored, err := f.st.Results().GetResult(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, guidance.UnavailableMessage, stored.Guidance)
}

func TestQuizFor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	quiz := f.createQuiz(t)

	q, err := f.svc.QuizFor(ctx, f.alice.ID, quiz.ID)
	require.NoError(t, err)
	for _, qq := range q.Questions {
		assert.Empty(t, qq.CorrectAnswer)
		assert.Empty(t, qq.Explanation)
	}

	q, err = f.svc.QuizFor(ctx, f.teacher.ID, quiz.ID)
	require.NoError(t, err)
	assert.Equal(t, "7", q.Questions[0].CorrectAnswer)

	_, err = f.svc.QuizFor(ctx, f.other.ID, quiz.ID)
	assert.True(t, errors.Is(err, ErrForbidden))

	_, err = f.svc.QuizFor(ctx, f.admin.ID, quiz.ID)
	assert.NoError(t, err)
}

func TestResultAccess(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	quiz := f.createQuiz(t)
	res, err := f.svc.Submit(ctx, f.alice.ID, SubmitInput{QuizID: quiz.ID, Answers: []string{"7", "H2O", "6", "Nitrogen"}})
	require.NoError(t, err)

	for _, id := range []string{f.alice.ID, f.teacher.ID, f.admin.ID} {
		v, err := f.svc.Result(ctx, id, res.ID)
		require.NoError(t, err)
		assert.Equal(t, "Acids and Bases", v.QuizTitle)
		assert.Equal(t, 100, v.Score)
	}
	for _, id := range []string{f.bob.ID, f.other.ID} {
		_, err := f.svc.Result(ctx, id, res.ID)
		assert.True(t, errors.Is(err, ErrForbidden))
	}

	mine, err := f.svc.MyResults(ctx, f.alice.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, res.ID, mine[0].ID)
}

func TestAssignedQuizzes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	done := f.createQuiz(t)
	in := chemistryInput()
	in.Title = "Second"
	_, err := f.svc.CreateQuiz(ctx, f.teacher.ID, in)
	require.NoError(t, err)

	_, err = f.svc.Submit(ctx, f.alice.ID, SubmitInput{QuizID: done.ID, Answers: []string{"7", "H2O", "8", "Nitrogen"}})
	require.NoError(t, err)

	list, err := f.svc.AssignedQuizzes(ctx, f.alice.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)

	byTitle := map[string]AssignedQuiz{}
	for _, a := range list {
		byTitle[a.Title] = a
	}
	assert.Equal(t, StatusCompleted, byTitle["Acids and Bases"].Status)
	require.NotNil(t, byTitle["Acids and Bases"].Score)
	assert.Equal(t, 75, *byTitle["Acids and Bases"].Score)
	assert.Equal(t, StatusAssigned, byTitle["Second"].Status)
	assert.Nil(t, byTitle["Second"].Score)
	assert.Equal(t, 4, byTitle["Second"].QuestionCount)
}

func TestQuizResultsAndDashboard(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	quiz := f.createQuiz(t)

	_, err := f.svc.Submit(ctx, f.alice.ID, SubmitInput{QuizID: quiz.ID, Answers: []string{"7", "H2O", "6", "Nitrogen"}})
	require.NoError(t, err)
	_, err = f.svc.Submit(ctx, f.bob.ID, SubmitInput{QuizID: quiz.ID, Answers: []string{"7", "CO2", "6", "Argon"}})
	require.NoError(t, err)

	report, err := f.svc.QuizResults(ctx, f.teacher.ID, quiz.ID)
	require.NoError(t, err)
	assert.Len(t, report.Assignees, 2)
	assert.Len(t, report.Results, 2)
	assert.Equal(t, 75.0, report.AverageScore)

	_, err = f.svc.QuizResults(ctx, f.other.ID, quiz.ID)
	assert.True(t, errors.Is(err, ErrForbidden))
	_, err = f.svc.QuizResults(ctx, f.alice.ID, quiz.ID)
	assert.True(t, errors.Is(err, ErrForbidden))

	d, err := f.svc.TeacherDashboard(ctx, f.teacher.ID)
	require.NoError(t, err)
	require.Len(t, d.Quizzes, 1)
	assert.Equal(t, 4, d.Quizzes[0].QuestionCount)
	assert.Equal(t, 2, d.Quizzes[0].Completed)
	assert.Equal(t, 75.0, d.Quizzes[0].AverageScore)
	assert.Len(t, d.Students, 2)

	_, err = f.svc.TeacherDashboard(ctx, f.bob.ID)
	assert.True(t, errors.Is(err, ErrForbidden))
}

func TestLeaderboard(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	q1 := f.createQuiz(t)
	in := chemistryInput()
	in.Title = "Second"
	c, err := f.svc.CreateQuiz(ctx, f.teacher.ID, in)
	require.NoError(t, err)
	q2 := c.Quiz

	all := []string{"7", "H2O", "6", "Nitrogen"}
	half := []string{"7", "H2O", "4", "Argon"}
	_, err = f.svc.Submit(ctx, f.alice.ID, SubmitInput{QuizID: q1.ID, Answers: all})
	require.NoError(t, err)
	_, err = f.svc.Submit(ctx, f.alice.ID, SubmitInput{QuizID: q2.ID, Answers: half})
	require.NoError(t, err)
	_, err = f.svc.Submit(ctx, f.bob.ID, SubmitInput{QuizID: q1.ID, Answers: all})
	require.NoError(t, err)

	board, err := f.svc.Leaderboard(ctx)
	require.NoError(t, err)
	require.Len(t, board, 2)
	assert.Equal(t, LeaderboardEntry{Rank: 1, UserID: f.bob.ID, Name: "Bob", TotalScore: 100, TotalQuizzes: 1, AverageScore: 100}, board[0])
	assert.Equal(t, LeaderboardEntry{Rank: 2, UserID: f.alice.ID, Name: "Alice", TotalScore: 150, TotalQuizzes: 2, AverageScore: 75}, board[1])
}

func TestRank_TiesAreStable(t *testing.T) {
	got := rank([]rankcache.Entry{
		{UserID: "3", Name: "Zed", Quizzes: 1, TotalScore: 80},
		{UserID: "2", Name: "Amy", Quizzes: 2, TotalScore: 160},
		{UserID: "1", Name: "Amy", Quizzes: 1, TotalScore: 80},
		{UserID: "4", Name: "None", Quizzes: 0},
	})
	require.Len(t, got, 3)
	assert.Equal(t, []string{"1", "2", "3"}, []string{got[0].UserID, got[1].UserID, got[2].UserID})
	assert.Equal(t, []int{1, 2, 3}, []int{got[0].Rank, got[1].Rank, got[2].Rank})
}

func TestUsersAndRoles(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.UpdateRole(ctx, f.admin.ID, f.bob.ID, store.RoleTeacher))
	u, err := f.svc.Me(ctx, f.bob.ID)
	require.NoError(t, err)
	assert.Equal(t, store.RoleTeacher, u.Role)

	err = f.svc.UpdateRole(ctx, f.teacher.ID, f.alice.ID, store.RoleAdmin)
	assert.True(t, errors.Is(err, ErrForbidden))
	err = f.svc.UpdateRole(ctx, f.admin.ID, f.alice.ID, "OWNER")
	assert.True(t, errors.Is(err, ErrInvalidInput))
	err = f.svc.UpdateRole(ctx, f.admin.ID, "ghost", store.RoleStudent)
	assert.True(t, errors.Is(err, ErrNotFound))

	teachers, err := f.svc.Users(ctx, f.admin.ID, store.RoleTeacher)
	require.NoError(t, err)
	assert.Len(t, teachers, 3)

	_, err = f.svc.RegisterUser(ctx, "Alice Again", "alice@example.com", store.RoleStudent)
	assert.True(t, errors.Is(err, ErrInvalidInput), "duplicate email")
	_, err = f.svc.RegisterUser(ctx, "No Mail", "not-an-email", store.RoleStudent)
	assert.True(t, errors.Is(err, ErrInvalidInput))

	students, err := f.svc.Students(ctx, f.teacher.ID)
	require.NoError(t, err)
	assert.Len(t, students, 2)
}
