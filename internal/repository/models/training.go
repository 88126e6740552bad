package models

import (
	"database/sql"
	"time"
)

// Tag maps the tags table
type Tag struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
}

// OwnedTag is a tag row joined with the material or quiz that carries it
type OwnedTag struct {
	OwnerID string `db:"owner_id"`
	Tag
}

// TrainingMaterial maps training_materials joined with the creator's name
type TrainingMaterial struct {
	ID                 string         `db:"id"`
	Title              string         `db:"title"`
	Description        string         `db:"description"`
	Type               string         `db:"type"`
	ContentPath        string         `db:"content_path"`
	Status             string         `db:"status"`
	ArchivedFromStatus sql.NullString `db:"archived_from_status"`
	CreatedBy          string         `db:"created_by"`
	CreatorName        string         `db:"creator_name"`
	CreatedAt          time.Time      `db:"created_at"`
	UpdatedAt          time.Time      `db:"updated_at"`
}

// Quiz maps quizzes joined with the creator's name
type Quiz struct {
	ID                  string         `db:"id"`
	Title               string         `db:"title"`
	Description         string         `db:"description"`
	DurationMinutes     int            `db:"duration_minutes"`
	PassingScorePercent int            `db:"passing_score_percent"`
	Status              string         `db:"status"`
	ArchivedFromStatus  sql.NullString `db:"archived_from_status"`
	CreatedBy           string         `db:"created_by"`
	CreatorName         string         `db:"creator_name"`
	CreationDate        time.Time      `db:"creation_date"`
	UpdatedAt           time.Time      `db:"updated_at"`
}

// Question maps quiz_questions
type Question struct {
	ID            string      `db:"id"`
	QuestionText  string      `db:"question_text"`
	QuestionType  string      `db:"question_type"`
	Options       StringSlice `db:"options"`
	CorrectAnswer string      `db:"correct_answer"`
	Points        int         `db:"points"`
	CreatedBy     string      `db:"created_by"`
	CreatedAt     time.Time   `db:"created_at"`
	UpdatedAt     time.Time   `db:"updated_at"`
}

// QuizQuestion is a question row with its position in a quiz
type QuizQuestion struct {
	Question
	OrderIndex int `db:"order_index"`
}

// QuizQuestionLink maps quiz_question_links
type QuizQuestionLink struct {
	QuizID     string    `db:"quiz_id"`
	QuestionID string    `db:"question_id"`
	OrderIndex int       `db:"order_index"`
	CreatedAt  time.Time `db:"created_at"`
}
