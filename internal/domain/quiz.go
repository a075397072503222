package domain

import (
	"strings"
	"time"
)

// DefaultQuestionPoints applies to questions stored without a point value.
const DefaultQuestionPoints = 10

type Quiz struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Questions   []Question `json:"questions"`
	CreatedAt   time.Time  `json:"created_at"`
}

type Question struct {
	Prompt  string   `json:"prompt"`
	Options []string `json:"options"`
	Correct int      `json:"correct"`
	Points  int      `json:"points"`
}

// Value is the number of points a correct answer is worth.
func (q Question) Value() int {
	if q.Points <= 0 {
		return DefaultQuestionPoints
	}
	return q.Points
}

func (q Question) Validate() error {
	if strings.TrimSpace(q.Prompt) == "" {
		return Invalid("prompt", "required")
	}
	if len(q.Options) < 2 {
		return Invalid("options", "at least two options required")
	}
	if q.Correct < 0 || q.Correct >= len(q.Options) {
		return Invalid("correct", "index out of range")
	}
	if q.Points < 0 {
		return Invalid("points", "must not be negative")
	}
	return nil
}

func (q *Quiz) Validate() error {
	if q.ID == "" {
		return Invalid("id", "required")
	}
	if strings.TrimSpace(q.Title) == "" {
		return Invalid("title", "required")
	}
	if len(q.Questions) == 0 {
		return Invalid("questions", "at least one question required")
	}
	for _, qq := range q.Questions {
		if err := qq.Validate(); err != nil {
			return err
		}
	}
	return nil
}
