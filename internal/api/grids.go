package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/adsemenov/calendar-planner-backend/internal/calendar"
)

type dayCellResp struct {
	Date    dateTime `json:"date"`
	InMonth bool     `json:"in_month"`
}

type timeSlotResp struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

func (a *Api) getMonthGridHandler(w http.ResponseWriter, r *http.Request) {
	year, err := parseIntQuery(r, "year")
	if err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	month, err := parseIntQuery(r, "month")
	if err != nil {
		a.badRequestResponse(w, r, err)
		return
	}
	if month < 1 || month > 12 {
		a.badRequestResponse(w, r, fmt.Errorf("month must be between 1 and 12, got %d", month))
		return
	}

	days := calendar.MonthDays(year, time.Month(month))

	resp := make([]*dayCellResp, len(days))
	for i, day := range days {
		resp[i] = &dayCellResp{
			Date:    dateTime(day),
			InMonth: day.Month() == time.Month(month),
		}
	}

	if err := a.writeJSON(w, http.StatusOK, resp, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) getYearGridHandler(w http.ResponseWriter, r *http.Request) {
	year, err := parseIntQuery(r, "year")
	if err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	months := calendar.YearMonths(year)

	resp, _ := mapSlice(months, func(m time.Time) (dateTime, error) {
		return dateTime(m), nil
	})

	if err := a.writeJSON(w, http.StatusOK, resp, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) getTimeSlotsHandler(w http.ResponseWriter, r *http.Request) {
	slots := calendar.TimeSlots()

	resp := make([]*timeSlotResp, len(slots))
	for i, s := range slots {
		resp[i] = &timeSlotResp{Hour: s.Hour, Minute: s.Minute}
	}

	if err := a.writeJSON(w, http.StatusOK, resp, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func parseIntQuery(r *http.Request, name string) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0, fmt.Errorf("%s must be provided", name)
	}

	res, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, v)
	}

	return res, nil
}
