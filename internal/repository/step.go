package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"stride/internal/model"
)

var (
	ErrStepNotFound = errors.New("step not found")
)

type StepRepository interface {
	Create(step *model.Step) error
	ByID(goalID, stepID string) (*model.Step, error)
	ByGoal(goalID string) ([]*model.Step, error)
	ByGoals(goalIDs []string) (map[string][]*model.Step, error)
	UpdateText(goalID, stepID, text string) error
	UpdateDue(goalID, stepID string, due *string) error
	SetDone(goalID, stepID string, done bool) error
	Delete(goalID, stepID string) error
}

type stepRepository struct {
	db *sqlx.DB
}

func NewStepRepository(db *sqlx.DB) StepRepository {
	return &stepRepository{db: db}
}

// Create appends the step at the end of the goal's checklist. Position is
// assigned inside the insert so concurrent appends cannot collide on it.
func (r *stepRepository) Create(step *model.Step) error {
	query := `INSERT INTO steps (id, goal_id, text, done, due_date, position, created_at)
	          VALUES ($1, $2, $3, $4, $5,
	                  (SELECT COALESCE(MAX(position), 0) + 1 FROM steps WHERE goal_id = $2),
	                  $6)`

	_, err := r.db.Exec(query,
		step.ID,
		step.GoalID,
		step.Text,
		step.Done,
		step.Due,
		step.CreatedAt,
	)
	if err != nil {
		return err
	}

	row := r.db.QueryRow(`SELECT position FROM steps WHERE id = $1`, step.ID)
	return row.Scan(&step.Position)
}

func (r *stepRepository) ByID(goalID, stepID string) (*model.Step, error) {
	step := &model.Step{}
	query := `SELECT * FROM steps WHERE id = $1 AND goal_id = $2`

	err := r.db.Get(step, query, stepID, goalID)
	if err == sql.ErrNoRows {
		return nil, ErrStepNotFound
	}

	return step, err
}

func (r *stepRepository) ByGoal(goalID string) ([]*model.Step, error) {
	var steps []*model.Step
	query := `SELECT * FROM steps WHERE goal_id = $1 ORDER BY position ASC`

	err := r.db.Select(&steps, query, goalID)
	if err != nil {
		return nil, err
	}

	return steps, nil
}

// ByGoals loads steps for many goals in one query, grouped by goal id.
func (r *stepRepository) ByGoals(goalIDs []string) (map[string][]*model.Step, error) {
	grouped := make(map[string][]*model.Step, len(goalIDs))
	if len(goalIDs) == 0 {
		return grouped, nil
	}

	query, args, err := sqlx.In(`SELECT * FROM steps WHERE goal_id IN (?) ORDER BY goal_id, position ASC`, goalIDs)
	if err != nil {
		return nil, err
	}

	var steps []*model.Step
	err = r.db.Select(&steps, r.db.Rebind(query), args...)
	if err != nil {
		return nil, err
	}

	for _, s := range steps {
		grouped[s.GoalID] = append(grouped[s.GoalID], s)
	}

	return grouped, nil
}

func (r *stepRepository) UpdateText(goalID, stepID, text string) error {
	query := `UPDATE steps SET text = $1 WHERE id = $2 AND goal_id = $3`
	return r.exec(query, text, stepID, goalID)
}

func (r *stepRepository) UpdateDue(goalID, stepID string, due *string) error {
	query := `UPDATE steps SET due_date = $1 WHERE id = $2 AND goal_id = $3`
	return r.exec(query, due, stepID, goalID)
}

func (r *stepRepository) SetDone(goalID, stepID string, done bool) error {
	query := `UPDATE steps SET done = $1 WHERE id = $2 AND goal_id = $3`
	return r.exec(query, done, stepID, goalID)
}

func (r *stepRepository) Delete(goalID, stepID string) error {
	query := `DELETE FROM steps WHERE id = $1 AND goal_id = $2`
	return r.exec(query, stepID, goalID)
}

func (r *stepRepository) exec(query string, args ...any) error {
	result, err := r.db.Exec(query, args...)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrStepNotFound
	}

	return nil
}
