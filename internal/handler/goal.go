package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"stride/internal/ctxkeys"
	"stride/internal/metrics"
	"stride/internal/model"
	"stride/internal/repository"
	"stride/internal/service"
)

type GoalHandler struct {
	goalService *service.GoalService
}

func NewGoalHandler(goalService *service.GoalService) *GoalHandler {
	return &GoalHandler{
		goalService: goalService,
	}
}

// goalView is a goal plus the display fields the client derives from its
// steps: progress percentage, per-step weight and the overdue flag.
type goalView struct {
	*model.Goal
	Progress      int     `json:"progress"`
	PerStepWeight float64 `json:"perStepWeight"`
	Overdue       bool    `json:"overdue"`
}

func newGoalView(goal *model.Goal, todayISO string) goalView {
	return goalView{
		Goal:          goal,
		Progress:      goal.Progress(),
		PerStepWeight: model.PerStepWeight(goal.Steps),
		Overdue:       goal.IsOverdue(todayISO),
	}
}

// writeGoalError maps service and repository errors to API status codes.
func writeGoalError(w http.ResponseWriter, err error, userID string) {
	switch {
	case errors.Is(err, repository.ErrGoalNotFound), errors.Is(err, repository.ErrStepNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrTitleRequired),
		errors.Is(err, service.ErrStepTextRequired),
		errors.Is(err, service.ErrInvalidPeriod),
		errors.Is(err, service.ErrInvalidDate):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		slog.Error("goal operation failed", "error", err, "user_id", userID)
		writeError(w, http.StatusInternalServerError, "something went wrong")
	}
}

func (h *GoalHandler) List(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	period := r.URL.Query().Get("period")

	goals, err := h.goalService.Goals(user.ID, period)
	if err != nil {
		writeGoalError(w, err, user.ID)
		return
	}

	today := h.goalService.Today()
	views := make([]goalView, len(goals))
	for i, g := range goals {
		views[i] = newGoalView(g, today)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"today": today,
		"goals": views,
	})
}

func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req struct {
		Title  string `json:"title"`
		Period string `json:"period"`
		Start  string `json:"start"`
		End    string `json:"end"`
	}
	err := decodeJSON(r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	goal, err := h.goalService.Create(user.ID, req.Title, req.Period, req.Start, req.End)
	if err != nil {
		writeGoalError(w, err, user.ID)
		return
	}

	metrics.GoalsCreated.Inc()
	writeJSON(w, http.StatusCreated, newGoalView(goal, h.goalService.Today()))
}

func (h *GoalHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	goalID := r.PathValue("id")

	goal, err := h.goalService.ByID(user.ID, goalID)
	if err != nil {
		writeGoalError(w, err, user.ID)
		return
	}

	writeJSON(w, http.StatusOK, newGoalView(goal, h.goalService.Today()))
}

func (h *GoalHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	goalID := r.PathValue("id")

	var req struct {
		Title  *string `json:"title"`
		Period *string `json:"period"`
		Start  *string `json:"start"`
		End    *string `json:"end"`
	}
	err := decodeJSON(r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	goal, err := h.goalService.Update(user.ID, goalID, service.GoalPatch{
		Title:  req.Title,
		Period: req.Period,
		Start:  req.Start,
		End:    req.End,
	})
	if err != nil {
		writeGoalError(w, err, user.ID)
		return
	}

	writeJSON(w, http.StatusOK, newGoalView(goal, h.goalService.Today()))
}

func (h *GoalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	goalID := r.PathValue("id")

	err := h.goalService.Delete(user.ID, goalID)
	if err != nil {
		writeGoalError(w, err, user.ID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *GoalHandler) AddStep(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	goalID := r.PathValue("id")

	var req struct {
		Text string `json:"text"`
	}
	err := decodeJSON(r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	step, err := h.goalService.AddStep(user.ID, goalID, req.Text)
	if err != nil {
		writeGoalError(w, err, user.ID)
		return
	}

	writeJSON(w, http.StatusCreated, step)
}

func (h *GoalHandler) UpdateStep(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	goalID := r.PathValue("id")
	stepID := r.PathValue("stepID")

	var req struct {
		Text     *string `json:"text"`
		Due      *string `json:"due"`
		ClearDue bool    `json:"clearDue"`
	}
	err := decodeJSON(r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Text != nil {
		err = h.goalService.UpdateStepText(user.ID, goalID, stepID, *req.Text)
		if err != nil {
			writeGoalError(w, err, user.ID)
			return
		}
	}

	if req.Due != nil || req.ClearDue {
		due := req.Due
		if req.ClearDue {
			due = nil
		}
		err = h.goalService.UpdateStepDue(user.ID, goalID, stepID, due)
		if err != nil {
			writeGoalError(w, err, user.ID)
			return
		}
	}

	goal, err := h.goalService.ByID(user.ID, goalID)
	if err != nil {
		writeGoalError(w, err, user.ID)
		return
	}

	writeJSON(w, http.StatusOK, newGoalView(goal, h.goalService.Today()))
}

func (h *GoalHandler) ToggleStep(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	goalID := r.PathValue("id")
	stepID := r.PathValue("stepID")

	goal, fired, err := h.goalService.ToggleStep(user.ID, goalID, stepID)
	if err != nil {
		writeGoalError(w, err, user.ID)
		return
	}

	for _, st := range goal.Steps {
		if st.ID == stepID {
			metrics.RecordStepToggle(st.Done)
			break
		}
	}
	celebration := map[string]any{"fired": fired}
	if fired {
		metrics.CelebrationsFired.Inc()
		celebration["title"] = goal.Title
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"goal":        newGoalView(goal, h.goalService.Today()),
		"celebration": celebration,
	})
}

func (h *GoalHandler) DeleteStep(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	goalID := r.PathValue("id")
	stepID := r.PathValue("stepID")

	err := h.goalService.DeleteStep(user.ID, goalID, stepID)
	if err != nil {
		writeGoalError(w, err, user.ID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Export streams the user's full goal list as a JSON download.
func (h *GoalHandler) Export(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	goals, err := h.goalService.Goals(user.ID, "")
	if err != nil {
		slog.Error("failed to list goals for export", "error", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "failed to export goals")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", "attachment; filename=goals-export.json")

	err = json.NewEncoder(w).Encode(goals)
	if err != nil {
		slog.Error("failed to encode goals", "error", err, "user_id", user.ID)
	}
}
