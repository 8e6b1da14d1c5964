package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"stride/internal/dateutil"
	"stride/internal/model"
	"stride/internal/repository"
)

var (
	ErrTitleRequired    = errors.New("title is required")
	ErrStepTextRequired = errors.New("step text is required")
	ErrInvalidPeriod    = errors.New("period must be week, month or year")
	ErrInvalidDate      = errors.New("invalid date")
)

// GoalPatch carries the changed fields of a goal update. Nil means "leave
// unchanged".
type GoalPatch struct {
	Title  *string
	Period *string
	Start  *string
	End    *string
}

type GoalService struct {
	repo         repository.GoalRepository
	stepRepo     repository.StepRepository
	celebrations *CelebrationService

	// Now is the clock used for creation timestamps and overdue checks.
	// Tests override it.
	Now func() time.Time
}

func NewGoalService(
	repo repository.GoalRepository,
	stepRepo repository.StepRepository,
	celebrations *CelebrationService,
) *GoalService {
	return &GoalService{
		repo:         repo,
		stepRepo:     stepRepo,
		celebrations: celebrations,
		Now:          time.Now,
	}
}

// Today returns the current calendar date used for overdue classification.
func (s *GoalService) Today() string {
	return dateutil.Today(s.Now())
}

// Create makes a new goal. The end date defaults to the inclusive period end
// computed from the start date; a caller-supplied end wins.
func (s *GoalService) Create(userID, title, period, start, end string) (*model.Goal, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if !model.ValidPeriod(period) {
		return nil, ErrInvalidPeriod
	}

	if start == "" {
		start = dateutil.Today(s.Now())
	} else if _, err := dateutil.ParseISO(start); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}

	if end == "" {
		computed, err := dateutil.ComputeEnd(start, period)
		if err != nil {
			return nil, err
		}
		end = computed
	} else if _, err := dateutil.ParseISO(end); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}

	now := s.Now()
	goal := &model.Goal{
		ID:        uuid.New().String(),
		UserID:    userID,
		Title:     title,
		Period:    period,
		Start:     start,
		End:       end,
		CreatedAt: now,
		UpdatedAt: now,
		Steps:     []*model.Step{},
	}

	err := s.repo.Create(goal)
	if err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	return goal, nil
}

func (s *GoalService) ByID(userID, goalID string) (*model.Goal, error) {
	goal, err := s.repo.ByID(userID, goalID)
	if err != nil {
		return nil, err
	}

	goal.Steps, err = s.stepRepo.ByGoal(goal.ID)
	if err != nil {
		return nil, err
	}

	return goal, nil
}

// Goals lists the user's goals with steps attached, optionally filtered by
// period, in the end-date-ascending / created-descending contract order.
func (s *GoalService) Goals(userID, period string) ([]*model.Goal, error) {
	if period != "" && !model.ValidPeriod(period) {
		return nil, ErrInvalidPeriod
	}

	goals, err := s.repo.Goals(userID, period)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(goals))
	for i, g := range goals {
		ids[i] = g.ID
	}

	grouped, err := s.stepRepo.ByGoals(ids)
	if err != nil {
		return nil, err
	}

	for _, g := range goals {
		g.Steps = grouped[g.ID]
		if g.Steps == nil {
			g.Steps = []*model.Step{}
		}
	}

	return goals, nil
}

// Update applies a shallow field patch. A period change recomputes the
// default end date from the (possibly updated) start date unless the patch
// sets the end explicitly; outside a period change the end date is
// user-owned and never silently recomputed.
func (s *GoalService) Update(userID, goalID string, patch GoalPatch) (*model.Goal, error) {
	goal, err := s.repo.ByID(userID, goalID)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, ErrTitleRequired
		}
		goal.Title = title
	}

	if patch.Start != nil {
		if _, err := dateutil.ParseISO(*patch.Start); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidDate, err)
		}
		goal.Start = *patch.Start
	}

	periodChanged := false
	if patch.Period != nil && *patch.Period != goal.Period {
		if !model.ValidPeriod(*patch.Period) {
			return nil, ErrInvalidPeriod
		}
		goal.Period = *patch.Period
		periodChanged = true
	}

	switch {
	case patch.End != nil:
		if _, err := dateutil.ParseISO(*patch.End); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidDate, err)
		}
		goal.End = *patch.End
	case periodChanged:
		goal.End, err = dateutil.ComputeEnd(goal.Start, goal.Period)
		if err != nil {
			return nil, err
		}
	}

	goal.UpdatedAt = s.Now()
	err = s.repo.Update(goal)
	if err != nil {
		return nil, err
	}

	goal.Steps, err = s.stepRepo.ByGoal(goal.ID)
	if err != nil {
		return nil, err
	}

	return goal, nil
}

// Delete removes the goal and all of its steps. Confirmation happens at the
// UI boundary; there is no undo here.
func (s *GoalService) Delete(userID, goalID string) error {
	err := s.repo.Delete(userID, goalID)
	if err != nil {
		return err
	}

	s.celebrations.Forget(goalID)
	return nil
}

// AddStep appends a checklist item. Empty (after trimming) text is rejected.
func (s *GoalService) AddStep(userID, goalID, text string) (*model.Step, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrStepTextRequired
	}

	goal, err := s.repo.ByID(userID, goalID)
	if err != nil {
		return nil, err
	}

	step := &model.Step{
		ID:        uuid.New().String(),
		GoalID:    goal.ID,
		Text:      text,
		Done:      false,
		CreatedAt: s.Now(),
	}

	err = s.stepRepo.Create(step)
	if err != nil {
		return nil, fmt.Errorf("failed to add step: %w", err)
	}

	return step, nil
}

func (s *GoalService) UpdateStepText(userID, goalID, stepID, text string) error {
	_, err := s.repo.ByID(userID, goalID)
	if err != nil {
		return err
	}

	return s.stepRepo.UpdateText(goalID, stepID, text)
}

// UpdateStepDue sets or clears a step's due date. Nil clears it.
func (s *GoalService) UpdateStepDue(userID, goalID, stepID string, due *string) error {
	_, err := s.repo.ByID(userID, goalID)
	if err != nil {
		return err
	}

	if due != nil {
		if _, err := dateutil.ParseISO(*due); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidDate, err)
		}
	}

	return s.stepRepo.UpdateDue(goalID, stepID, due)
}

// ToggleStep flips a step's done flag. This is the sole trigger point for
// the celebration state machine: progress is computed before and after the
// flip and both values are fed to the trigger. Returns the refreshed goal
// and whether a celebration fired.
func (s *GoalService) ToggleStep(userID, goalID, stepID string) (*model.Goal, bool, error) {
	goal, err := s.ByID(userID, goalID)
	if err != nil {
		return nil, false, err
	}

	var target *model.Step
	for _, st := range goal.Steps {
		if st.ID == stepID {
			target = st
			break
		}
	}
	if target == nil {
		return nil, false, repository.ErrStepNotFound
	}

	before := goal.Progress()

	target.Done = !target.Done
	err = s.stepRepo.SetDone(goalID, stepID, target.Done)
	if err != nil {
		return nil, false, err
	}

	after := goal.Progress()
	fired := s.celebrations.Observe(userID, goal.ID, goal.Title, before, after)

	return goal, fired, nil
}

func (s *GoalService) DeleteStep(userID, goalID, stepID string) error {
	_, err := s.repo.ByID(userID, goalID)
	if err != nil {
		return err
	}

	return s.stepRepo.Delete(goalID, stepID)
}
