package api

import (
	"fmt"
	"time"

	"github.com/adsemenov/calendar-planner-backend/internal/model"
)

const dateTimeFormat = time.RFC3339

// dateTime marshals as RFC 3339 and accepts the same on the way in.
type dateTime time.Time

func (d dateTime) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", time.Time(d).Format(dateTimeFormat))), nil
}

func (d *dateTime) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid time %s", s)
	}

	t, err := time.Parse(dateTimeFormat, s[1:len(s)-1])
	if err != nil {
		return fmt.Errorf("invalid time format: %w", err)
	}

	*d = dateTime(t)
	return nil
}

type itemResp struct {
	ID              int64    `json:"id"`
	Type            string   `json:"type"`
	Title           string   `json:"title"`
	Description     string   `json:"description,omitempty"`
	Start           dateTime `json:"start"`
	End             dateTime `json:"end"`
	Status          string   `json:"status,omitempty"`
	Color           string   `json:"color,omitempty"`
	AssignedUserIDs []int64  `json:"assigned_user_ids,omitempty"`
	Global          bool     `json:"global"`
}

func mapToItemResp(item *model.CalendarItem) (*itemResp, error) {
	return &itemResp{
		ID:              item.ID,
		Type:            string(item.Type),
		Title:           item.Title,
		Description:     item.Description,
		Start:           dateTime(item.Start),
		End:             dateTime(item.End),
		Status:          string(item.Status),
		Color:           item.Color,
		AssignedUserIDs: item.AssignedUserIDs,
		Global:          item.Global,
	}, nil
}
