package planner

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/adsemenov/calendar-planner-backend/internal/metrics"
	"github.com/adsemenov/calendar-planner-backend/internal/model"
)

var errStoreDown = errors.New("store down")

type fakeStore struct {
	mu     sync.Mutex
	nextID int64
	events []*model.CalendarItem
	tasks  []*model.CalendarItem

	allFetches     int
	visibleFetches int
	creates        int
	updates        int
	deletes        int
	toggles        int

	failCreate bool
	failUpdate bool
	failDelete bool
	failFetch  bool
}

func (f *fakeStore) AllEvents(context.Context) ([]*model.CalendarItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.allFetches++
	if f.failFetch {
		return nil, errStoreDown
	}
	return append([]*model.CalendarItem(nil), f.events...), nil
}

func (f *fakeStore) VisibleEvents(context.Context, int64) ([]*model.CalendarItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.visibleFetches++
	if f.failFetch {
		return nil, errStoreDown
	}
	return append([]*model.CalendarItem(nil), f.events...), nil
}

func (f *fakeStore) AllTasks(context.Context) ([]*model.CalendarItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failFetch {
		return nil, errStoreDown
	}
	return append([]*model.CalendarItem(nil), f.tasks...), nil
}

func (f *fakeStore) VisibleTasks(context.Context, int64) ([]*model.CalendarItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failFetch {
		return nil, errStoreDown
	}
	return append([]*model.CalendarItem(nil), f.tasks...), nil
}

func (f *fakeStore) CreateItem(_ context.Context, info *model.ItemCreate) (*model.CalendarItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates++
	if f.failCreate {
		return nil, errStoreDown
	}

	f.nextID++
	item := &model.CalendarItem{ID: f.nextID, ItemCreate: *info}
	if info.Type == model.ItemTypeTask {
		f.tasks = append(f.tasks, item)
	} else {
		f.events = append(f.events, item)
	}
	return item, nil
}

func (f *fakeStore) UpdateItem(_ context.Context, id int64, info *model.ItemCreate) (*model.CalendarItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates++
	if f.failUpdate {
		return nil, errStoreDown
	}

	item := &model.CalendarItem{ID: id, ItemCreate: *info}
	for i, e := range f.events {
		if e.ID == id {
			f.events[i] = item
		}
	}
	for i, e := range f.tasks {
		if e.ID == id {
			f.tasks[i] = item
		}
	}
	return item, nil
}

func (f *fakeStore) DeleteItem(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes++
	if f.failDelete {
		return errStoreDown
	}

	for i, e := range f.events {
		if e.ID == id {
			f.events = append(f.events[:i], f.events[i+1:]...)
			break
		}
	}
	for i, e := range f.tasks {
		if e.ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeStore) ToggleTaskCompletion(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.toggles++

	for _, t := range f.tasks {
		if t.ID == id {
			if t.Status == model.TaskStatusCompleted {
				t.Status = model.TaskStatusPending
			} else {
				t.Status = model.TaskStatusCompleted
			}
			return nil
		}
	}
	return model.ErrNoRecord
}

func at(h, m int) time.Time {
	return time.Date(2024, time.June, 10, h, m, 0, 0, time.Local)
}

func eventCreate(title string, start, end time.Time) *model.ItemCreate {
	return &model.ItemCreate{
		Type:  model.ItemTypeEvent,
		Title: title,
		Start: start,
		End:   end,
	}
}

func newTestController(t *testing.T, store *fakeStore, privileged bool) *Controller {
	t.Helper()
	collector := metrics.NewCollector(prometheus.NewRegistry())
	return NewController(zap.NewNop().Sugar(), store, collector, 1, privileged)
}

func TestRefreshMergesAndSorts(t *testing.T) {
	store := &fakeStore{
		events: []*model.CalendarItem{
			{ID: 1, ItemCreate: *eventCreate("late", at(15, 0), at(16, 0))},
			{ID: 2, ItemCreate: *eventCreate("early", at(8, 0), at(9, 0))},
		},
		tasks: []*model.CalendarItem{
			{ID: 3, ItemCreate: model.ItemCreate{Type: model.ItemTypeTask, Title: "midday", Start: at(12, 0), End: at(13, 0)}},
		},
		nextID: 3,
	}
	c := newTestController(t, store, true)

	require.NoError(t, c.Refresh(context.Background()))

	s := c.Snapshot()
	require.Len(t, s.Items, 3)
	assert.Equal(t, []int64{2, 3, 1}, []int64{s.Items[0].ID, s.Items[1].ID, s.Items[2].ID})
	assert.False(t, s.Loading)
	assert.Empty(t, s.Err)
}

func TestAddItemAppends(t *testing.T) {
	store := &fakeStore{}
	c := newTestController(t, store, true)
	require.NoError(t, c.Refresh(context.Background()))

	created, err := c.AddItem(context.Background(), eventCreate("standup", at(9, 0), at(9, 30)))

	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	s := c.Snapshot()
	require.Len(t, s.Items, 1)
	assert.Equal(t, "standup", s.Items[0].Title)
	assert.Empty(t, s.Err)
}

func TestAddItemConflictRejected(t *testing.T) {
	store := &fakeStore{
		events: []*model.CalendarItem{{ID: 1, ItemCreate: *eventCreate("E1", at(9, 0), at(10, 0))}},
		nextID: 1,
	}
	c := newTestController(t, store, true)
	require.NoError(t, c.Refresh(context.Background()))

	_, err := c.AddItem(context.Background(), eventCreate("E2", at(9, 30), at(10, 30)))

	var conflictErr *model.ConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Equal(t, "E1", conflictErr.Title)
	assert.Equal(t, 0, store.creates, "rejected mutation must not reach the store")
	assert.Len(t, c.Snapshot().Items, 1)
}

func TestAddItemTouchingIntervalAccepted(t *testing.T) {
	store := &fakeStore{
		events: []*model.CalendarItem{{ID: 1, ItemCreate: *eventCreate("E1", at(9, 0), at(10, 0))}},
		nextID: 1,
	}
	c := newTestController(t, store, true)
	require.NoError(t, c.Refresh(context.Background()))

	_, err := c.AddItem(context.Background(), eventCreate("E2", at(10, 0), at(11, 0)))

	require.NoError(t, err)
	assert.Len(t, c.Snapshot().Items, 2)
}

// A no-op update resubmitting an item's own interval passes the gate.
func TestUpdateItemSelfNoConflict(t *testing.T) {
	store := &fakeStore{
		events: []*model.CalendarItem{{ID: 1, ItemCreate: *eventCreate("E1", at(9, 0), at(10, 0))}},
		nextID: 1,
	}
	c := newTestController(t, store, true)
	require.NoError(t, c.Refresh(context.Background()))

	updated, err := c.UpdateItem(context.Background(), 1, eventCreate("E1 renamed", at(9, 0), at(10, 0)))

	require.NoError(t, err)
	assert.Equal(t, "E1 renamed", updated.Title)
	assert.Equal(t, 1, store.updates)
	assert.Equal(t, "E1 renamed", c.Snapshot().Items[0].Title)
}

func TestUpdateItemConflictKeepsPrior(t *testing.T) {
	store := &fakeStore{
		events: []*model.CalendarItem{
			{ID: 1, ItemCreate: *eventCreate("E1", at(9, 0), at(10, 0))},
			{ID: 2, ItemCreate: *eventCreate("E2", at(11, 0), at(12, 0))},
		},
		nextID: 2,
	}
	c := newTestController(t, store, true)
	require.NoError(t, c.Refresh(context.Background()))

	_, err := c.UpdateItem(context.Background(), 2, eventCreate("E2 moved", at(9, 30), at(10, 30)))

	var conflictErr *model.ConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Equal(t, 0, store.updates)

	s := c.Snapshot()
	assert.Equal(t, "E2", s.Items[1].Title)
	assert.Equal(t, at(11, 0), s.Items[1].Start)
}

func TestAddItemRemoteFailure(t *testing.T) {
	store := &fakeStore{failCreate: true}
	c := newTestController(t, store, true)
	require.NoError(t, c.Refresh(context.Background()))

	_, err := c.AddItem(context.Background(), eventCreate("doomed", at(9, 0), at(10, 0)))

	require.ErrorIs(t, err, errStoreDown)
	s := c.Snapshot()
	assert.Empty(t, s.Items, "failed create must not change the collection")
	assert.Equal(t, remoteFailureMessage, s.Err)
	assert.False(t, s.Loading)
}

func TestRefreshClearsError(t *testing.T) {
	store := &fakeStore{failCreate: true}
	c := newTestController(t, store, true)
	require.NoError(t, c.Refresh(context.Background()))

	_, err := c.AddItem(context.Background(), eventCreate("doomed", at(9, 0), at(10, 0)))
	require.Error(t, err)
	require.NotEmpty(t, c.Snapshot().Err)

	require.NoError(t, c.Refresh(context.Background()))
	assert.Empty(t, c.Snapshot().Err)
}

func TestDeleteItemRefetches(t *testing.T) {
	store := &fakeStore{
		events: []*model.CalendarItem{{ID: 1, ItemCreate: *eventCreate("E1", at(9, 0), at(10, 0))}},
		nextID: 1,
	}
	c := newTestController(t, store, true)
	require.NoError(t, c.Refresh(context.Background()))
	fetchesBefore := store.allFetches

	require.NoError(t, c.DeleteItem(context.Background(), 1))

	assert.Equal(t, 1, store.deletes)
	assert.Greater(t, store.allFetches, fetchesBefore, "delete must trigger a resync fetch")
	assert.Empty(t, c.Snapshot().Items)
}

func TestDeleteItemFailureStillRefetches(t *testing.T) {
	store := &fakeStore{
		events:     []*model.CalendarItem{{ID: 1, ItemCreate: *eventCreate("E1", at(9, 0), at(10, 0))}},
		nextID:     1,
		failDelete: true,
	}
	c := newTestController(t, store, true)
	require.NoError(t, c.Refresh(context.Background()))
	fetchesBefore := store.allFetches

	err := c.DeleteItem(context.Background(), 1)

	require.ErrorIs(t, err, errStoreDown)
	assert.Greater(t, store.allFetches, fetchesBefore)
	assert.Equal(t, remoteFailureMessage, c.Snapshot().Err)
	assert.Len(t, c.Snapshot().Items, 1, "item stays after failed delete")
}

func TestSetViewerRefetchesOnPrivilegeChange(t *testing.T) {
	store := &fakeStore{}
	c := newTestController(t, store, false)
	require.NoError(t, c.Refresh(context.Background()))
	require.Equal(t, 1, store.visibleFetches)
	require.Equal(t, 0, store.allFetches)

	require.NoError(t, c.SetViewer(context.Background(), 1, true))
	assert.Equal(t, 1, store.allFetches, "privilege change must refetch with full scope")

	require.NoError(t, c.SetViewer(context.Background(), 1, true))
	assert.Equal(t, 1, store.allFetches, "unchanged viewer must not refetch")
}

func TestToggleTaskCompletionRefetches(t *testing.T) {
	store := &fakeStore{
		tasks: []*model.CalendarItem{
			{ID: 1, ItemCreate: model.ItemCreate{Type: model.ItemTypeTask, Title: "chore", Start: at(9, 0), End: at(10, 0), Status: model.TaskStatusPending}},
		},
		nextID: 1,
	}
	c := newTestController(t, store, true)
	require.NoError(t, c.Refresh(context.Background()))

	require.NoError(t, c.ToggleTaskCompletion(context.Background(), 1))

	assert.Equal(t, 1, store.toggles)
	s := c.Snapshot()
	require.Len(t, s.Items, 1)
	assert.Equal(t, model.TaskStatusCompleted, s.Items[0].Status)
}

func TestSnapshotIsolation(t *testing.T) {
	store := &fakeStore{
		events: []*model.CalendarItem{{ID: 1, ItemCreate: *eventCreate("E1", at(9, 0), at(10, 0))}},
		nextID: 1,
	}
	c := newTestController(t, store, true)
	require.NoError(t, c.Refresh(context.Background()))

	s := c.Snapshot()
	s.Items[0].Title = "mangled"

	assert.Equal(t, "E1", c.Snapshot().Items[0].Title)
}

func TestFilteredItems(t *testing.T) {
	store := &fakeStore{
		events: []*model.CalendarItem{
			{ID: 1, ItemCreate: *eventCreate("Team standup", at(9, 0), at(10, 0))},
			{ID: 2, ItemCreate: *eventCreate("Lunch", at(12, 0), at(13, 0))},
			{ID: 3, ItemCreate: model.ItemCreate{Type: model.ItemTypeEvent, Title: "1:1", Description: "standup follow-up", Start: at(14, 0), End: at(15, 0)}},
		},
		nextID: 3,
	}
	c := newTestController(t, store, true)
	require.NoError(t, c.Refresh(context.Background()))

	c.SetSearchTerm("STANDUP")
	got := c.FilteredItems()

	require.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, int64(3), got[1].ID)
}

func TestUpcomingHonorsShowAllFlag(t *testing.T) {
	now := time.Now()
	var events []*model.CalendarItem
	for i := 1; i <= 7; i++ {
		start := now.Add(time.Duration(i) * 24 * time.Hour)
		events = append(events, &model.CalendarItem{
			ID:         int64(i),
			ItemCreate: *eventCreate("e", start, start.Add(time.Hour)),
		})
	}
	store := &fakeStore{events: events, nextID: 7}
	c := newTestController(t, store, true)
	require.NoError(t, c.Refresh(context.Background()))

	assert.Len(t, c.Upcoming(now), 5)

	c.SetShowAllUpcoming(true)
	assert.Len(t, c.Upcoming(now), 7)
}
