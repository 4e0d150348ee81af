package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/adsemenov/calendar-planner-backend/internal/model"
	"github.com/adsemenov/calendar-planner-backend/internal/pkg/validator"
)

type itemRequest struct {
	Type            string   `json:"type"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Start           dateTime `json:"start"`
	End             dateTime `json:"end"`
	Status          string   `json:"status"`
	Color           string   `json:"color"`
	AssignedUserIDs []int64  `json:"assigned_user_ids"`
	Global          bool     `json:"global"`
}

func (req *itemRequest) validate(v *validator.Validator) {
	v.Check(len(req.Title) != 0, "title", "title must be provided")
	v.Check(!time.Time(req.Start).IsZero(), "start", "start must be provided")
	v.Check(!time.Time(req.End).IsZero(), "end", "end must be provided")
	v.Check(time.Time(req.End).After(time.Time(req.Start)), "end", "end must be after start")
}

func (req *itemRequest) toItemCreate() *model.ItemCreate {
	return &model.ItemCreate{
		Type:            model.ParseItemType(req.Type),
		Title:           req.Title,
		Description:     req.Description,
		Start:           time.Time(req.Start),
		End:             time.Time(req.End),
		Status:          model.ParseTaskStatus(req.Status),
		Color:           req.Color,
		AssignedUserIDs: req.AssignedUserIDs,
		Global:          req.Global,
	}
}

func (a *Api) createItemHandler(w http.ResponseWriter, r *http.Request) {
	req := &itemRequest{}
	if err := a.readJSON(w, r, req); err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	req.validate(v)
	if !v.Valid() {
		a.failedValidationResponse(w, r, v.Errors)
		return
	}

	created, err := a.planner.AddItem(r.Context(), req.toItemCreate())
	if err != nil {
		a.mutationErrorResponse(w, r, fmt.Errorf("add item: %w", err))
		return
	}

	resp, _ := mapToItemResp(created)
	if err := a.writeJSON(w, http.StatusCreated, resp, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) updateItemHandler(w http.ResponseWriter, r *http.Request) {
	id, err := a.readIDParam(r)
	if err != nil {
		a.notFoundResponse(w, r)
		return
	}

	req := &itemRequest{}
	if err := a.readJSON(w, r, req); err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	req.validate(v)
	if !v.Valid() {
		a.failedValidationResponse(w, r, v.Errors)
		return
	}

	updated, err := a.planner.UpdateItem(r.Context(), id, req.toItemCreate())
	if err != nil {
		a.mutationErrorResponse(w, r, fmt.Errorf("update item: %w", err))
		return
	}

	resp, _ := mapToItemResp(updated)
	if err := a.writeJSON(w, http.StatusOK, resp, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) deleteItemHandler(w http.ResponseWriter, r *http.Request) {
	id, err := a.readIDParam(r)
	if err != nil {
		a.notFoundResponse(w, r)
		return
	}

	if err := a.planner.DeleteItem(r.Context(), id); err != nil {
		a.mutationErrorResponse(w, r, fmt.Errorf("delete item: %w", err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (a *Api) toggleTaskHandler(w http.ResponseWriter, r *http.Request) {
	id, err := a.readIDParam(r)
	if err != nil {
		a.notFoundResponse(w, r)
		return
	}

	if err := a.planner.ToggleTaskCompletion(r.Context(), id); err != nil {
		a.mutationErrorResponse(w, r, fmt.Errorf("toggle task: %w", err))
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (a *Api) getItemsHandler(w http.ResponseWriter, r *http.Request) {
	items := a.planner.FilteredItems()

	resp, _ := mapSlice(items, mapToItemResp)
	if err := a.writeJSON(w, http.StatusOK, resp, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) getUpcomingHandler(w http.ResponseWriter, r *http.Request) {
	items := a.planner.Upcoming(time.Now())

	resp, _ := mapSlice(items, mapToItemResp)
	if err := a.writeJSON(w, http.StatusOK, resp, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

// mutationErrorResponse maps the domain errors a controller mutation can
// surface onto statuses.
func (a *Api) mutationErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	var conflictErr *model.ConflictError
	var validationErr *model.ValidationError

	switch {
	case errors.As(err, &conflictErr):
		a.conflictResponse(w, r, conflictErr.Title, conflictErr.Start, conflictErr.End)
	case errors.As(err, &validationErr):
		a.failedValidationResponse(w, r, map[string]string{validationErr.Field: validationErr.Message})
	case errors.Is(err, model.ErrNoRecord):
		a.notFoundResponse(w, r)
	default:
		a.serverErrorResponse(w, r, err)
	}
}
