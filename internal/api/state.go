package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/adsemenov/calendar-planner-backend/internal/pkg/validator"
	"github.com/adsemenov/calendar-planner-backend/internal/planner"
)

type stateResp struct {
	Items           []*itemResp `json:"items"`
	CurrentDate     dateTime    `json:"current_date"`
	SelectedDate    dateTime    `json:"selected_date"`
	View            string      `json:"view"`
	SearchTerm      string      `json:"search_term"`
	ShowAllUpcoming bool        `json:"show_all_upcoming"`
	Loading         bool        `json:"loading"`
	Err             string      `json:"error,omitempty"`
}

func (a *Api) getStateHandler(w http.ResponseWriter, r *http.Request) {
	s := a.planner.Snapshot()

	items, _ := mapSlice(s.Items, mapToItemResp)
	resp := &stateResp{
		Items:           items,
		CurrentDate:     dateTime(s.CurrentDate),
		SelectedDate:    dateTime(s.SelectedDate),
		View:            string(s.View),
		SearchTerm:      s.SearchTerm,
		ShowAllUpcoming: s.ShowAllUpcoming,
		Loading:         s.Loading,
		Err:             s.Err,
	}

	if err := a.writeJSON(w, http.StatusOK, resp, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) refreshStateHandler(w http.ResponseWriter, r *http.Request) {
	if err := a.planner.Refresh(r.Context()); err != nil {
		a.serverErrorResponse(w, r, fmt.Errorf("refresh: %w", err))
		return
	}

	a.getStateHandler(w, r)
}

func (a *Api) setDateHandler(w http.ResponseWriter, r *http.Request) {
	req := &struct {
		Date dateTime `json:"date"`
	}{}

	if err := a.readJSON(w, r, req); err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	v.Check(!time.Time(req.Date).IsZero(), "date", "date must be provided")
	if !v.Valid() {
		a.failedValidationResponse(w, r, v.Errors)
		return
	}

	a.planner.SetDate(time.Time(req.Date))
	w.WriteHeader(http.StatusOK)
}

func (a *Api) setSelectedDateHandler(w http.ResponseWriter, r *http.Request) {
	req := &struct {
		Date dateTime `json:"date"`
	}{}

	if err := a.readJSON(w, r, req); err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	v.Check(!time.Time(req.Date).IsZero(), "date", "date must be provided")
	if !v.Valid() {
		a.failedValidationResponse(w, r, v.Errors)
		return
	}

	a.planner.SetSelectedDate(time.Time(req.Date))
	w.WriteHeader(http.StatusOK)
}

func (a *Api) setViewHandler(w http.ResponseWriter, r *http.Request) {
	req := &struct {
		View string `json:"view"`
	}{}

	if err := a.readJSON(w, r, req); err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	view := planner.ViewMode(req.View)

	v := validator.New()
	switch view {
	case planner.ViewDay, planner.ViewWeek, planner.ViewMonth, planner.ViewYear:
	default:
		v.AddError("view", "view must be one of day, week, month, year")
	}
	if !v.Valid() {
		a.failedValidationResponse(w, r, v.Errors)
		return
	}

	a.planner.SetView(view)
	w.WriteHeader(http.StatusOK)
}

func (a *Api) setSearchHandler(w http.ResponseWriter, r *http.Request) {
	req := &struct {
		Term string `json:"term"`
	}{}

	if err := a.readJSON(w, r, req); err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	a.planner.SetSearchTerm(req.Term)
	w.WriteHeader(http.StatusOK)
}

func (a *Api) setShowAllUpcomingHandler(w http.ResponseWriter, r *http.Request) {
	req := &struct {
		ShowAll bool `json:"show_all"`
	}{}

	if err := a.readJSON(w, r, req); err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	a.planner.SetShowAllUpcoming(req.ShowAll)
	w.WriteHeader(http.StatusOK)
}
