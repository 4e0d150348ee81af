package model

import (
	"strings"
	"time"
)

type ItemCreate struct {
	Type            ItemType
	Title           string
	Description     string
	Start           time.Time
	End             time.Time
	Status          TaskStatus
	Color           string
	AssignedUserIDs []int64
	Global          bool
}

// CalendarItem is the unit of scheduling. ID is assigned by the store and
// is zero for items that have not been persisted yet.
type CalendarItem struct {
	ID int64
	ItemCreate
}

// ItemType and TaskStatus are stored in canonical upper case. Raw records
// are normalized once, at the ingestion boundary, via ParseItemType and
// ParseTaskStatus; comparisons elsewhere are plain equality.
type ItemType string

const (
	ItemTypeEvent ItemType = "EVENT"
	ItemTypeTask  ItemType = "TASK"
)

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "PENDING"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusCompleted  TaskStatus = "COMPLETED"
)

// ParseItemType normalizes a raw type value. Unrecognized values fall back
// to EVENT so that a malformed record still renders somewhere visible.
func ParseItemType(raw string) ItemType {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case string(ItemTypeTask):
		return ItemTypeTask
	default:
		return ItemTypeEvent
	}
}

// ParseTaskStatus normalizes a raw status value, defaulting to PENDING.
func ParseTaskStatus(raw string) TaskStatus {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case string(TaskStatusInProgress):
		return TaskStatusInProgress
	case string(TaskStatusCompleted):
		return TaskStatusCompleted
	default:
		return TaskStatusPending
	}
}

type ItemsFilter struct {
	From  time.Time
	To    time.Time
	Types []ItemType
	// VisibleTo restricts results to items visible to the given user
	// (global items plus items the user is assigned to). Nil means no
	// visibility restriction.
	VisibleTo *int64
}

// Clone returns a deep copy so read-side consumers cannot alias the
// controller's owned collection.
func (i *CalendarItem) Clone() *CalendarItem {
	c := *i
	if i.AssignedUserIDs != nil {
		c.AssignedUserIDs = make([]int64, len(i.AssignedUserIDs))
		copy(c.AssignedUserIDs, i.AssignedUserIDs)
	}
	return &c
}
