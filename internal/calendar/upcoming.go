package calendar

import (
	"sort"
	"time"

	"github.com/adsemenov/calendar-planner-backend/internal/model"
)

// UpcomingWindow bounds the look-ahead of the upcoming-items selector.
const UpcomingWindow = 30 * 24 * time.Hour

// DefaultUpcomingLimit applies when no explicit limit is given.
const DefaultUpcomingLimit = 5

// Upcoming returns the items starting within [now, now+30d], ascending by
// start, truncated to limit. A non-positive limit means the default of 5.
// Items sharing a start instant keep their relative input order.
func Upcoming(items []*model.CalendarItem, now time.Time, limit int) []*model.CalendarItem {
	res := UpcomingAll(items, now)

	if limit <= 0 {
		limit = DefaultUpcomingLimit
	}
	if len(res) > limit {
		res = res[:limit]
	}

	return res
}

// UpcomingAll is Upcoming without truncation.
func UpcomingAll(items []*model.CalendarItem, now time.Time) []*model.CalendarItem {
	horizon := now.Add(UpcomingWindow)

	var res []*model.CalendarItem
	for _, item := range items {
		if item.Start.Before(now) || item.Start.After(horizon) {
			continue
		}
		res = append(res, item)
	}

	sort.SliceStable(res, func(i, j int) bool {
		return res[i].Start.Before(res[j].Start)
	})

	return res
}
