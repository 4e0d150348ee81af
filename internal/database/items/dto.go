package items

import (
	"time"

	"github.com/adsemenov/calendar-planner-backend/internal/model"
)

// itemDTO mirrors the calendar_items row. The store keeps the temporal
// bounds under start_time and due_date; mapToItem folds them onto the
// model's Start/End and is the single place where raw type and status
// values are normalized to canonical casing.
type itemDTO struct {
	ID              int64
	ItemType        string `db:"type"`
	Title           string
	Description     string
	Status          string
	Color           string
	AssignedUserIds []int64 `db:"assigned_user_ids"`
	IsGlobal        bool
	StartTime       time.Time
	DueDate         time.Time
}

func mapToItem(dto *itemDTO) *model.CalendarItem {
	return &model.CalendarItem{
		ID: dto.ID,
		ItemCreate: model.ItemCreate{
			Type:            model.ParseItemType(dto.ItemType),
			Title:           dto.Title,
			Description:     dto.Description,
			Start:           dto.StartTime,
			End:             dto.DueDate,
			Status:          model.ParseTaskStatus(dto.Status),
			Color:           dto.Color,
			AssignedUserIDs: dto.AssignedUserIds,
			Global:          dto.IsGlobal,
		},
	}
}
