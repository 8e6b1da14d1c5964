package model

import "testing"

func steps(done ...bool) []*Step {
	out := make([]*Step, len(done))
	for i, d := range done {
		out[i] = &Step{ID: "s", Done: d}
	}
	return out
}

func TestProgressPercent(t *testing.T) {
	tests := []struct {
		name  string
		steps []*Step
		want  int
	}{
		{"empty", nil, 0},
		{"none done", steps(false, false), 0},
		{"all done", steps(true, true), 100},
		{"one third rounds down", steps(true, false, false), 33},
		{"two thirds rounds up", steps(true, true, false), 67},
		{"half", steps(true, false), 50},
	}
	for _, tt := range tests {
		if got := ProgressPercent(tt.steps); got != tt.want {
			t.Errorf("%s: ProgressPercent = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestProgressPercentMonotonic(t *testing.T) {
	sts := steps(false, false, false, false, false, false, false)
	prev := ProgressPercent(sts)
	for i := range sts {
		sts[i].Done = true
		cur := ProgressPercent(sts)
		if cur < prev {
			t.Fatalf("progress decreased from %d to %d after marking step %d done", prev, cur, i)
		}
		prev = cur
	}
	if prev != 100 {
		t.Fatalf("all done should be 100, got %d", prev)
	}
}

func TestPerStepWeight(t *testing.T) {
	tests := []struct {
		n    int
		want float64
	}{
		{0, 0},
		{1, 100},
		{3, 33.3},
		{7, 14.3},
		{8, 12.5},
	}
	for _, tt := range tests {
		sts := make([]*Step, tt.n)
		for i := range sts {
			sts[i] = &Step{}
		}
		if got := PerStepWeight(sts); got != tt.want {
			t.Errorf("PerStepWeight(%d steps) = %v, want %v", tt.n, got, tt.want)
		}
	}
}

func TestIsOverdue(t *testing.T) {
	goal := &Goal{End: "2024-02-29", Steps: steps(true, false)}

	if !goal.IsOverdue("2024-03-01") {
		t.Error("past end with partial progress should be overdue")
	}
	if goal.IsOverdue("2024-02-29") {
		t.Error("end date itself is not overdue (inclusive end)")
	}
	if goal.IsOverdue("2024-02-28") {
		t.Error("before end should not be overdue")
	}

	goal.Steps = steps(true, true)
	if goal.IsOverdue("2024-03-01") {
		t.Error("completed goal is never overdue")
	}
}

func TestValidPeriod(t *testing.T) {
	for _, p := range []string{PeriodWeek, PeriodMonth, PeriodYear} {
		if !ValidPeriod(p) {
			t.Errorf("ValidPeriod(%q) = false", p)
		}
	}
	for _, p := range []string{"", "day", "quarter", "Week"} {
		if ValidPeriod(p) {
			t.Errorf("ValidPeriod(%q) = true", p)
		}
	}
}
