package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adsemenov/calendar-planner-backend/internal/model"
)

func item(id int64, title string, start, end time.Time) *model.CalendarItem {
	return &model.CalendarItem{
		ID: id,
		ItemCreate: model.ItemCreate{
			Type:  model.ItemTypeEvent,
			Title: title,
			Start: start,
			End:   end,
		},
	}
}

func at(h, m int) time.Time {
	return time.Date(2024, time.June, 10, h, m, 0, 0, time.Local)
}

func TestItemsForSlot(t *testing.T) {
	day := date(2024, time.June, 10)

	endsInSlot := item(1, "ends in slot", at(8, 45), at(9, 15))
	spansSlot := item(2, "spans slot", at(9, 0), at(11, 0))
	earlier := item(3, "earlier", at(7, 0), at(8, 30))
	startsInSlot := item(4, "starts in slot", at(9, 30), at(9, 45))
	later := item(5, "later", at(10, 0), at(11, 0))
	items := []*model.CalendarItem{endsInSlot, spansSlot, earlier, startsInSlot, later}

	got := ItemsForSlot(items, day, 9)

	require.Len(t, got, 3)
	assert.Contains(t, got, endsInSlot)
	assert.Contains(t, got, spansSlot)
	assert.Contains(t, got, startsInSlot)
}

func TestItemsForSlotBoundaries(t *testing.T) {
	day := date(2024, time.June, 10)

	tests := []struct {
		name  string
		item  *model.CalendarItem
		hour  int
		inRes bool
	}{
		{"starts exactly at slot start", item(1, "a", at(9, 0), at(9, 30)), 9, true},
		{"ends exactly at slot start", item(2, "b", at(8, 0), at(9, 0)), 9, false},
		{"ends exactly at slot end", item(3, "c", at(9, 30), at(10, 0)), 9, true},
		{"starts exactly at slot end", item(4, "d", at(10, 0), at(10, 30)), 9, false},
		{"multi-hour item in middle slot", item(5, "e", at(8, 0), at(12, 0)), 10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ItemsForSlot([]*model.CalendarItem{tt.item}, day, tt.hour)
			assert.Equal(t, tt.inRes, len(got) == 1)
		})
	}
}

func TestItemPlacement(t *testing.T) {
	tests := []struct {
		name       string
		item       *model.CalendarItem
		wantOffset float64
		wantHeight float64
	}{
		{"on the hour", item(1, "a", at(9, 0), at(10, 0)), 0, 100},
		{"half past", item(2, "b", at(9, 30), at(10, 30)), 50, 100},
		{"quarter past, two hours", item(3, "c", at(9, 15), at(11, 15)), 25, 200},
		{"short item hits the floor", item(4, "d", at(9, 0), at(9, 10)), 0, MinHeightPercent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ItemPlacement(tt.item)
			assert.InDelta(t, tt.wantOffset, p.OffsetPercent, 1e-9)
			assert.InDelta(t, tt.wantHeight, p.HeightPercent, 1e-9)
		})
	}
}

func TestHasTimeConflict(t *testing.T) {
	e1 := item(1, "E1", at(9, 0), at(10, 0))

	tests := []struct {
		name      string
		candidate *model.CalendarItem
		want      bool
	}{
		{"candidate starts inside", item(0, "E2", at(9, 30), at(10, 30)), true},
		{"candidate ends inside", item(0, "E2", at(8, 30), at(9, 30)), true},
		{"candidate covers existing", item(0, "E2", at(8, 0), at(11, 0)), true},
		{"identical interval", item(0, "E2", at(9, 0), at(10, 0)), true},
		{"touching before", item(0, "E2", at(8, 0), at(9, 0)), false},
		{"touching after", item(0, "E2", at(10, 0), at(11, 0)), false},
		{"disjoint", item(0, "E2", at(12, 0), at(13, 0)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasTimeConflict([]*model.CalendarItem{e1}, tt.candidate))
		})
	}
}

// Overlap detection does not depend on which item is the candidate.
func TestHasTimeConflictSymmetry(t *testing.T) {
	pairs := []struct {
		name string
		a, b *model.CalendarItem
		want bool
	}{
		{"overlapping", item(1, "A", at(9, 0), at(10, 0)), item(2, "B", at(9, 30), at(10, 30)), true},
		{"nested", item(1, "A", at(9, 0), at(12, 0)), item(2, "B", at(10, 0), at(11, 0)), true},
		{"touching", item(1, "A", at(9, 0), at(10, 0)), item(2, "B", at(10, 0), at(11, 0)), false},
	}

	for _, tt := range pairs {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasTimeConflict([]*model.CalendarItem{tt.a}, tt.b))
			assert.Equal(t, tt.want, HasTimeConflict([]*model.CalendarItem{tt.b}, tt.a))
		})
	}
}

// An update resubmitting an item with its own id never conflicts with the
// stored copy of itself.
func TestHasTimeConflictExcludesOwnID(t *testing.T) {
	existing := []*model.CalendarItem{item(7, "meeting", at(9, 0), at(10, 0))}

	unchanged := item(7, "meeting", at(9, 0), at(10, 0))
	assert.False(t, HasTimeConflict(existing, unchanged))

	moved := item(7, "meeting", at(9, 15), at(10, 15)) // still inside its own old slot
	assert.False(t, HasTimeConflict(existing, moved))

	other := item(8, "other", at(9, 0), at(10, 0))
	assert.True(t, HasTimeConflict(existing, other))
}

func TestTypeColor(t *testing.T) {
	assert.Equal(t, TypeColor("EVENT"), TypeColor("event"))
	assert.Equal(t, TypeColor("TASK"), TypeColor(" task "))
	assert.NotEqual(t, TypeColor("EVENT"), TypeColor("TASK"))
	assert.Equal(t, neutralColor, TypeColor("reminder"))
	assert.Equal(t, neutralColor, TypeColor(""))
}
