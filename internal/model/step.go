package model

import (
	"time"
)

// Step is one checklist item belonging to a goal. Position records insertion
// order and drives per-step numbering in the client.
type Step struct {
	ID        string    `db:"id" json:"id"`
	GoalID    string    `db:"goal_id" json:"-"`
	Text      string    `db:"text" json:"text"`
	Done      bool      `db:"done" json:"done"`
	Due       *string   `db:"due_date" json:"due,omitempty"`
	Position  int       `db:"position" json:"-"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
