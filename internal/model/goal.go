package model

import (
	"math"
	"time"
)

// Goal periods. The period only drives the default end date; a user-edited
// end date is free to disagree with it.
const (
	PeriodWeek  = "week"
	PeriodMonth = "month"
	PeriodYear  = "year"
)

func ValidPeriod(p string) bool {
	return p == PeriodWeek || p == PeriodMonth || p == PeriodYear
}

type Goal struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"-"`
	Title     string    `db:"title" json:"title"`
	Period    string    `db:"period" json:"period"`
	Start     string    `db:"start_date" json:"start"`
	End       string    `db:"end_date" json:"end"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`

	// Loaded separately, in insertion order
	Steps []*Step `db:"-" json:"steps"`
}

// Progress returns the completion percentage derived from step counts.
func (g *Goal) Progress() int {
	return ProgressPercent(g.Steps)
}

// IsOverdue reports whether the goal's end date has passed while progress is
// still below 100%. ISO yyyy-mm-dd strings compare chronologically, so plain
// string comparison is correct here.
func (g *Goal) IsOverdue(todayISO string) bool {
	return todayISO > g.End && g.Progress() < 100
}

// ProgressPercent is 0 for an empty checklist, otherwise the done/total ratio
// rounded half-up to an integer percentage.
func ProgressPercent(steps []*Step) int {
	total := len(steps)
	if total == 0 {
		return 0
	}
	done := 0
	for _, s := range steps {
		if s.Done {
			done++
		}
	}
	return int(math.Round(float64(done) / float64(total) * 100))
}

// PerStepWeight is the approximate display weight of a single step, rounded
// to one decimal place. The actual percentage is always derived from counts,
// never from summing these.
func PerStepWeight(steps []*Step) float64 {
	total := len(steps)
	if total == 0 {
		return 0
	}
	return math.Round(100/float64(total)*10) / 10
}
