package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Result is one graded submission. A student submits each quiz once.
type Result struct {
	ent.Schema
}

func (Result) Annotations() []schema.Annotation {
	return []schema.Annotation{entsql.Annotation{Table: "results"}}
}

func (Result) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").Immutable(),
		field.String("user_id"),
		field.String("quiz_id"),
		field.Int("score").Comment("Percentage of correct answers, rounded"),
		field.Int("correct"),
		field.Int("total"),
		field.Int("time_taken_secs").Default(0),
		field.String("guidance").
			Default("").
			Comment("Improvement advice, filled in after submission"),
		field.Time("created_at").Immutable(),
	}
}

func (Result) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("user_id", "quiz_id").Unique(),
		index.Fields("quiz_id"),
	}
}

// QuestionResult is the graded record of one answer, stored in the order
// the student answered.
type QuestionResult struct {
	ent.Schema
}

func (QuestionResult) Annotations() []schema.Annotation {
	return []schema.Annotation{
		entsql.Annotation{Table: "question_results"},
		field.ID("result_id", "position"),
	}
}

func (QuestionResult) Fields() []ent.Field {
	return []ent.Field{
		field.String("result_id"),
		field.Int("position"),
		field.String("question_id"),
		field.String("user_answer"),
		field.Bool("is_correct"),
		field.String("correct_answer"),
		field.String("explanation").Default(""),
		field.String("difficulty").Comment("Level in effect after this answer"),
	}
}
