package calendar

import (
	"math"
	"strings"
	"time"

	"github.com/adsemenov/calendar-planner-backend/internal/model"
)

// MinHeightPercent keeps very short items visible and clickable.
const MinHeightPercent = 25

// ItemsForSlot returns the items belonging to the given hour slot of day.
// An item belongs to a slot when it starts inside it, ends inside it, or
// spans it entirely; items longer than an hour therefore show up in every
// slot they cross.
func ItemsForSlot(items []*model.CalendarItem, day time.Time, hour int) []*model.CalendarItem {
	slotStart := time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, day.Location())
	slotEnd := slotStart.Add(time.Hour)

	var res []*model.CalendarItem
	for _, item := range items {
		startsInside := !item.Start.Before(slotStart) && item.Start.Before(slotEnd)
		endsInside := item.End.After(slotStart) && !item.End.After(slotEnd)
		spans := !item.Start.After(slotStart) && !item.End.Before(slotEnd)

		if startsInside || endsInside || spans {
			res = append(res, item)
		}
	}

	return res
}

// Placement positions an item inside its starting slot: OffsetPercent is
// the vertical offset from the slot top, HeightPercent the item height,
// both as percentages of the slot height.
type Placement struct {
	OffsetPercent float64
	HeightPercent float64
}

// ItemPlacement computes the fractional-hour placement of an item.
func ItemPlacement(item *model.CalendarItem) Placement {
	startHour := float64(item.Start.Hour()) +
		float64(item.Start.Minute())/60 +
		float64(item.Start.Second())/3600

	height := DurationHours(item.Start, item.End) * 100
	if height < MinHeightPercent {
		height = MinHeightPercent
	}

	return Placement{
		OffsetPercent: (startHour - math.Floor(startHour)) * 100,
		HeightPercent: height,
	}
}

// HasTimeConflict reports whether the candidate's [Start, End) interval
// overlaps any existing item's. An existing item sharing the candidate's
// non-zero id is skipped so a no-op update never conflicts with itself.
// Touching intervals (one ends exactly where the other starts) do not
// conflict.
func HasTimeConflict(existing []*model.CalendarItem, candidate *model.CalendarItem) bool {
	for _, e := range existing {
		if candidate.ID != 0 && e.ID == candidate.ID {
			continue
		}

		startsInside := !candidate.Start.Before(e.Start) && candidate.Start.Before(e.End)
		endsInside := candidate.End.After(e.Start) && !candidate.End.After(e.End)
		covers := !candidate.Start.After(e.Start) && !candidate.End.Before(e.End)

		if startsInside || endsInside || covers {
			return true
		}
	}

	return false
}

const neutralColor = "#64748b"

var typeColors = map[model.ItemType]string{
	model.ItemTypeEvent: "#3b82f6",
	model.ItemTypeTask:  "#f59e0b",
}

// TypeColor maps an item type to its presentation color. The lookup is
// case-insensitive and unknown types get a neutral color.
func TypeColor(t string) string {
	if c, ok := typeColors[model.ItemType(strings.ToUpper(strings.TrimSpace(t)))]; ok {
		return c
	}
	return neutralColor
}
