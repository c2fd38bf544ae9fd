package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table definitions consumed by the ent migrator, kept in step with the
// declarations in ent/schema. Column order matters: the foreign keys and
// indexes below refer to columns by position.
var (
	usersColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString},
		{Name: "name", Type: field.TypeString},
		{Name: "email", Type: field.TypeString, Unique: true},
		{Name: "role", Type: field.TypeString, Default: string(RoleStudent)},
		{Name: "created_at", Type: field.TypeTime},
	}
	usersTable = &schema.Table{
		Name:       tableUsers,
		Columns:    usersColumns,
		PrimaryKey: []*schema.Column{usersColumns[0]},
	}

	teacherStudentsColumns = []*schema.Column{
		{Name: "teacher_id", Type: field.TypeString},
		{Name: "student_id", Type: field.TypeString},
	}
	teacherStudentsTable = &schema.Table{
		Name:       tableTeacherStudents,
		Columns:    teacherStudentsColumns,
		PrimaryKey: []*schema.Column{teacherStudentsColumns[0], teacherStudentsColumns[1]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "teacher_students_teacher",
				Columns:    []*schema.Column{teacherStudentsColumns[0]},
				RefColumns: []*schema.Column{usersColumns[0]},
				OnDelete:   schema.Cascade,
			},
			{
				Symbol:     "teacher_students_student",
				Columns:    []*schema.Column{teacherStudentsColumns[1]},
				RefColumns: []*schema.Column{usersColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
	}

	quizzesColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString},
		{Name: "title", Type: field.TypeString},
		{Name: "subject", Type: field.TypeString, Default: ""},
		{Name: "topic", Type: field.TypeString, Default: ""},
		{Name: "level", Type: field.TypeString, Default: ""},
		{Name: "duration_mins", Type: field.TypeInt, Default: 0},
		{Name: "used_ai", Type: field.TypeBool, Default: false},
		{Name: "created_by", Type: field.TypeString},
		{Name: "created_at", Type: field.TypeTime},
	}
	quizzesTable = &schema.Table{
		Name:       tableQuizzes,
		Columns:    quizzesColumns,
		PrimaryKey: []*schema.Column{quizzesColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "quizzes_creator",
				Columns:    []*schema.Column{quizzesColumns[7]},
				RefColumns: []*schema.Column{usersColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
		Indexes: []*schema.Index{
			{Name: "quiz_created_by", Columns: []*schema.Column{quizzesColumns[7]}},
		},
	}

	questionsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString},
		{Name: "quiz_id", Type: field.TypeString},
		{Name: "position", Type: field.TypeInt},
		{Name: "content", Type: field.TypeString},
		{Name: "options", Type: field.TypeString},
		{Name: "correct_answer", Type: field.TypeString},
		{Name: "explanation", Type: field.TypeString, Default: ""},
		{Name: "difficulty", Type: field.TypeString, Default: "EASY"},
	}
	questionsTable = &schema.Table{
		Name:       tableQuestions,
		Columns:    questionsColumns,
		PrimaryKey: []*schema.Column{questionsColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "questions_quiz",
				Columns:    []*schema.Column{questionsColumns[1]},
				RefColumns: []*schema.Column{quizzesColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
		Indexes: []*schema.Index{
			{Name: "question_quiz_position", Unique: true, Columns: []*schema.Column{questionsColumns[1], questionsColumns[2]}},
		},
	}

	assignmentsColumns = []*schema.Column{
		{Name: "quiz_id", Type: field.TypeString},
		{Name: "student_id", Type: field.TypeString},
		{Name: "assigned_at", Type: field.TypeTime},
	}
	assignmentsTable = &schema.Table{
		Name:       tableAssignments,
		Columns:    assignmentsColumns,
		PrimaryKey: []*schema.Column{assignmentsColumns[0], assignmentsColumns[1]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "quiz_assignments_quiz",
				Columns:    []*schema.Column{assignmentsColumns[0]},
				RefColumns: []*schema.Column{quizzesColumns[0]},
				OnDelete:   schema.Cascade,
			},
			{
				Symbol:     "quiz_assignments_student",
				Columns:    []*schema.Column{assignmentsColumns[1]},
				RefColumns: []*schema.Column{usersColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
		Indexes: []*schema.Index{
			{Name: "assignment_student", Columns: []*schema.Column{assignmentsColumns[1]}},
		},
	}

	resultsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString},
		{Name: "user_id", Type: field.TypeString},
		{Name: "quiz_id", Type: field.TypeString},
		{Name: "score", Type: field.TypeInt},
		{Name: "correct", Type: field.TypeInt},
		{Name: "total", Type: field.TypeInt},
		{Name: "time_taken_secs", Type: field.TypeInt, Default: 0},
		{Name: "guidance", Type: field.TypeString, Default: ""},
		{Name: "created_at", Type: field.TypeTime},
	}
	resultsTable = &schema.Table{
		Name:       tableResults,
		Columns:    resultsColumns,
		PrimaryKey: []*schema.Column{resultsColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "results_user",
				Columns:    []*schema.Column{resultsColumns[1]},
				RefColumns: []*schema.Column{usersColumns[0]},
				OnDelete:   schema.Cascade,
			},
			{
				Symbol:     "results_quiz",
				Columns:    []*schema.Column{resultsColumns[2]},
				RefColumns: []*schema.Column{quizzesColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
		Indexes: []*schema.Index{
			{Name: "result_user_quiz", Unique: true, Columns: []*schema.Column{resultsColumns[1], resultsColumns[2]}},
			{Name: "result_quiz", Columns: []*schema.Column{resultsColumns[2]}},
		},
	}

	questionResultsColumns = []*schema.Column{
		{Name: "result_id", Type: field.TypeString},
		{Name: "position", Type: field.TypeInt},
		{Name: "question_id", Type: field.TypeString},
		{Name: "user_answer", Type: field.TypeString},
		{Name: "is_correct", Type: field.TypeBool},
		{Name: "correct_answer", Type: field.TypeString},
		{Name: "explanation", Type: field.TypeString, Default: ""},
		{Name: "difficulty", Type: field.TypeString},
	}
	questionResultsTable = &schema.Table{
		Name:       tableQuestionResults,
		Columns:    questionResultsColumns,
		PrimaryKey: []*schema.Column{questionResultsColumns[0], questionResultsColumns[1]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "question_results_result",
				Columns:    []*schema.Column{questionResultsColumns[0]},
				RefColumns: []*schema.Column{resultsColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
	}

	llmEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "provider", Type: field.TypeString},
		{Name: "model", Type: field.TypeString},
		{Name: "purpose", Type: field.TypeString, Default: ""},
		{Name: "input_tokens", Type: field.TypeInt, Default: 0},
		{Name: "output_tokens", Type: field.TypeInt, Default: 0},
		{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
		{Name: "success", Type: field.TypeBool},
		{Name: "error_message", Type: field.TypeString, Default: ""},
		{Name: "request_body", Type: field.TypeString, Size: 2147483647, Default: ""},
		{Name: "response_body", Type: field.TypeString, Size: 2147483647, Default: ""},
	}
	llmEventsTable = &schema.Table{
		Name:       tableLLMEvents,
		Columns:    llmEventsColumns,
		PrimaryKey: []*schema.Column{llmEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "llm_event_purpose", Columns: []*schema.Column{llmEventsColumns[4]}},
		},
	}

	tables = []*schema.Table{
		usersTable,
		teacherStudentsTable,
		quizzesTable,
		questionsTable,
		assignmentsTable,
		resultsTable,
		questionResultsTable,
		llmEventsTable,
	}
)

const (
	tableUsers           = "users"
	tableTeacherStudents = "teacher_students"
	tableQuizzes         = "quizzes"
	tableQuestions       = "questions"
	tableAssignments     = "quiz_assignments"
	tableResults         = "results"
	tableQuestionResults = "question_results"
	tableLLMEvents       = "llm_events"
)

func init() {
	teacherStudentsTable.ForeignKeys[0].RefTable = usersTable
	teacherStudentsTable.ForeignKeys[1].RefTable = usersTable
	quizzesTable.ForeignKeys[0].RefTable = usersTable
	questionsTable.ForeignKeys[0].RefTable = quizzesTable
	assignmentsTable.ForeignKeys[0].RefTable = quizzesTable
	assignmentsTable.ForeignKeys[1].RefTable = usersTable
	resultsTable.ForeignKeys[0].RefTable = usersTable
	resultsTable.ForeignKeys[1].RefTable = quizzesTable
	questionResultsTable.ForeignKeys[0].RefTable = resultsTable
}
