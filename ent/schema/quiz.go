package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

type Quiz struct {
	ent.Schema
}

func (Quiz) Annotations() []schema.Annotation {
	return []schema.Annotation{entsql.Annotation{Table: "quizzes"}}
}

func (Quiz) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").Immutable(),
		field.String("title"),
		field.String("subject").Default(""),
		field.String("topic").Default(""),
		field.String("level").
			Default("").
			Comment("Free-form label chosen by the author, e.g. Beginner or Practice"),
		field.Int("duration_mins").Default(0),
		field.Bool("used_ai").
			Default(false).
			Comment("Whether the questions came from a model rather than the built-in bank"),
		field.String("created_by"),
		field.Time("created_at").Immutable(),
	}
}

func (Quiz) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("created_by"),
	}
}

// Question is one multiple-choice question. Its difficulty is the label
// settled by the latest submission that reached it.
type Question struct {
	ent.Schema
}

func (Question) Annotations() []schema.Annotation {
	return []schema.Annotation{entsql.Annotation{Table: "questions"}}
}

func (Question) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").Immutable(),
		field.String("quiz_id"),
		field.Int("position"),
		field.String("content"),
		field.String("options").Comment("JSON array of answer options"),
		field.String("correct_answer"),
		field.String("explanation").Default(""),
		field.String("difficulty").
			Default("EASY").
			Comment("EASY, MEDIUM or HARD"),
	}
}

func (Question) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("quiz_id", "position").Unique(),
	}
}

type QuizAssignment struct {
	ent.Schema
}

func (QuizAssignment) Annotations() []schema.Annotation {
	return []schema.Annotation{
		entsql.Annotation{Table: "quiz_assignments"},
		field.ID("quiz_id", "student_id"),
	}
}

func (QuizAssignment) Fields() []ent.Field {
	return []ent.Field{
		field.String("quiz_id"),
		field.String("student_id"),
		field.Time("assigned_at").Immutable(),
	}
}

func (QuizAssignment) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("student_id"),
	}
}
