package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/field"
)

// User is a student, teacher or admin.
type User struct {
	ent.Schema
}

func (User) Annotations() []schema.Annotation {
	return []schema.Annotation{entsql.Annotation{Table: "users"}}
}

func (User) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").Immutable(),
		field.String("name"),
		field.String("email").Unique(),
		field.String("role").
			Default("STUDENT").
			Comment("STUDENT, TEACHER or ADMIN"),
		field.Time("created_at").Immutable(),
	}
}

// TeacherStudent links a teacher to a student. New quizzes by the teacher
// are assigned to every linked student.
type TeacherStudent struct {
	ent.Schema
}

func (TeacherStudent) Annotations() []schema.Annotation {
	return []schema.Annotation{
		entsql.Annotation{Table: "teacher_students"},
		field.ID("teacher_id", "student_id"),
	}
}

func (TeacherStudent) Fields() []ent.Field {
	return []ent.Field{
		field.String("teacher_id"),
		field.String("student_id"),
	}
}
