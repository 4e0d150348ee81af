// Package planner owns the authoritative in-memory item collection and the
// view cursor state, and keeps both consistent with the remote store. All
// mutations go through named controller actions; every create and update is
// gated by the time-conflict check before it may touch the store.
package planner

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/adsemenov/calendar-planner-backend/internal/calendar"
	"github.com/adsemenov/calendar-planner-backend/internal/model"
)

type ViewMode string

const (
	ViewDay   ViewMode = "day"
	ViewWeek  ViewMode = "week"
	ViewMonth ViewMode = "month"
	ViewYear  ViewMode = "year"
)

// State is the controller-owned state. Snapshot returns deep copies;
// consumers never see the live collection.
type State struct {
	Items           []*model.CalendarItem
	CurrentDate     time.Time
	SelectedDate    time.Time
	View            ViewMode
	SearchTerm      string
	ShowAllUpcoming bool
	Loading         bool
	Err             string
}

type remoteStore interface {
	AllEvents(ctx context.Context) ([]*model.CalendarItem, error)
	VisibleEvents(ctx context.Context, userID int64) ([]*model.CalendarItem, error)
	AllTasks(ctx context.Context) ([]*model.CalendarItem, error)
	VisibleTasks(ctx context.Context, userID int64) ([]*model.CalendarItem, error)
	CreateItem(ctx context.Context, info *model.ItemCreate) (*model.CalendarItem, error)
	UpdateItem(ctx context.Context, id int64, info *model.ItemCreate) (*model.CalendarItem, error)
	DeleteItem(ctx context.Context, id int64) error
	ToggleTaskCompletion(ctx context.Context, id int64) error
}

type metricsCollector interface {
	RecordMutationApplied(action string)
	RecordConflictRejected(action string)
	RecordRemoteFailure(operation string)
	RecordFetchLatency(d time.Duration)
	RecordItemsFetched(count int)
}

// remoteFailureMessage is what the UI gets to show; the detailed cause
// only goes to the log and the immediate caller.
const remoteFailureMessage = "calendar store unavailable, please retry"

// Controller serializes all mutating actions on opMu, held across the
// conflict gate, the remote call and the local apply, so two rapid
// submissions can never both pass the gate against a stale collection.
// mu only guards state access, so reads stay cheap while a remote call
// is in flight.
type Controller struct {
	logger  *zap.SugaredLogger
	store   remoteStore
	metrics metricsCollector

	opMu sync.Mutex
	mu   sync.Mutex

	viewerID   int64
	privileged bool

	state State
}

func NewController(logger *zap.SugaredLogger, store remoteStore, metrics metricsCollector, viewerID int64, privileged bool) *Controller {
	now := time.Now()

	return &Controller{
		logger:     logger,
		store:      store,
		metrics:    metrics,
		viewerID:   viewerID,
		privileged: privileged,
		state: State{
			CurrentDate:  now,
			SelectedDate: now,
			View:         ViewMonth,
		},
	}
}

// Snapshot returns a deep copy of the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.state
	s.Items = cloneItems(c.state.Items)
	return s
}

func (c *Controller) SetDate(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.CurrentDate = t
}

func (c *Controller) SetSelectedDate(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.SelectedDate = t
}

func (c *Controller) SetView(v ViewMode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.View = v
}

func (c *Controller) SetSearchTerm(term string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.SearchTerm = term
}

func (c *Controller) SetShowAllUpcoming(v bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.ShowAllUpcoming = v
}

// SetViewer switches the viewer identity. The visible item set differs by
// privilege class, so a class change forces a refetch.
func (c *Controller) SetViewer(ctx context.Context, userID int64, privileged bool) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	changed := c.viewerID != userID || c.privileged != privileged
	c.viewerID = userID
	c.privileged = privileged

	if !changed {
		return nil
	}

	return c.refetch(ctx)
}

// Refresh replaces the whole collection from the remote store.
func (c *Controller) Refresh(ctx context.Context) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	return c.refetch(ctx)
}

// AddItem gates the candidate against the current collection, creates it
// remotely and appends it. On conflict nothing changes and the caller gets
// a ConflictError.
func (c *Controller) AddItem(ctx context.Context, info *model.ItemCreate) (*model.CalendarItem, error) {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	candidate := &model.CalendarItem{ItemCreate: *info}
	if err := c.conflictWith(candidate); err != nil {
		c.metrics.RecordConflictRejected("add")
		return nil, err
	}

	c.setLoading(true)
	created, err := c.store.CreateItem(ctx, info)
	if err != nil {
		c.metrics.RecordRemoteFailure("create")
		c.fail("create item", err)
		return nil, fmt.Errorf("store.CreateItem: %w", err)
	}

	c.mu.Lock()
	c.state.Items = append(c.state.Items, created.Clone())
	c.state.Loading = false
	c.state.Err = ""
	c.mu.Unlock()

	c.metrics.RecordMutationApplied("add")
	return created, nil
}

// UpdateItem gates the candidate against the collection minus the item
// being replaced, updates it remotely and swaps it in.
func (c *Controller) UpdateItem(ctx context.Context, id int64, info *model.ItemCreate) (*model.CalendarItem, error) {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	candidate := &model.CalendarItem{ID: id, ItemCreate: *info}
	if err := c.conflictWith(candidate); err != nil {
		c.metrics.RecordConflictRejected("update")
		return nil, err
	}

	c.setLoading(true)
	updated, err := c.store.UpdateItem(ctx, id, info)
	if err != nil {
		c.metrics.RecordRemoteFailure("update")
		c.fail("update item", err)
		return nil, fmt.Errorf("store.UpdateItem: %w", err)
	}

	c.mu.Lock()
	for i, item := range c.state.Items {
		if item.ID == id {
			c.state.Items[i] = updated.Clone()
			break
		}
	}
	c.state.Loading = false
	c.state.Err = ""
	c.mu.Unlock()

	c.metrics.RecordMutationApplied("update")
	return updated, nil
}

// DeleteItem removes the item remotely and locally, then refetches the
// whole collection to resynchronize. The cleanup refetch runs even when
// the remote delete failed.
func (c *Controller) DeleteItem(ctx context.Context, id int64) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	c.setLoading(true)
	deleteErr := c.store.DeleteItem(ctx, id)

	if deleteErr == nil {
		c.mu.Lock()
		items := c.state.Items[:0]
		for _, item := range c.state.Items {
			if item.ID != id {
				items = append(items, item)
			}
		}
		c.state.Items = items
		c.mu.Unlock()
		c.metrics.RecordMutationApplied("delete")
	}

	if err := c.refetch(ctx); err != nil {
		c.logger.Errorw("cleanup refetch after delete failed", "id", id, "err", err)
	}

	if deleteErr != nil {
		c.metrics.RecordRemoteFailure("delete")
		c.fail("delete item", deleteErr)
		return fmt.Errorf("store.DeleteItem: %w", deleteErr)
	}

	return nil
}

// ToggleTaskCompletion flips a task's completion through the store side
// channel and refetches; the conflict gate is not involved.
func (c *Controller) ToggleTaskCompletion(ctx context.Context, id int64) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	if err := c.store.ToggleTaskCompletion(ctx, id); err != nil {
		c.metrics.RecordRemoteFailure("toggle")
		c.fail("toggle task", err)
		return fmt.Errorf("store.ToggleTaskCompletion: %w", err)
	}

	return c.refetch(ctx)
}

// FilteredItems applies the search term to the collection.
func (c *Controller) FilteredItems() []*model.CalendarItem {
	c.mu.Lock()
	term := c.state.SearchTerm
	items := cloneItems(c.state.Items)
	c.mu.Unlock()

	if term == "" {
		return items
	}

	needle := strings.ToLower(term)
	var res []*model.CalendarItem
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Title), needle) ||
			strings.Contains(strings.ToLower(item.Description), needle) {
			res = append(res, item)
		}
	}

	return res
}

// Upcoming returns the upcoming items honoring the show-all flag.
func (c *Controller) Upcoming(now time.Time) []*model.CalendarItem {
	c.mu.Lock()
	showAll := c.state.ShowAllUpcoming
	items := cloneItems(c.state.Items)
	c.mu.Unlock()

	if showAll {
		return calendar.UpcomingAll(items, now)
	}
	return calendar.Upcoming(items, now, 0)
}

// conflictWith returns the ConflictError for the first existing item
// overlapping the candidate, skipping the candidate's own id.
func (c *Controller) conflictWith(candidate *model.CalendarItem) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, e := range c.state.Items {
		if calendar.HasTimeConflict([]*model.CalendarItem{e}, candidate) {
			return &model.ConflictError{
				Title: e.Title,
				Start: e.Start,
				End:   e.End,
			}
		}
	}

	return nil
}

// refetch loads events and tasks in parallel, merges them into one flat
// collection sorted by start and replaces the owned collection. Callers
// hold opMu.
func (c *Controller) refetch(ctx context.Context) error {
	c.setLoading(true)
	started := time.Now()

	c.mu.Lock()
	viewerID, privileged := c.viewerID, c.privileged
	c.mu.Unlock()

	var events, tasks []*model.CalendarItem
	var eventsErr, tasksErr error

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		if privileged {
			events, eventsErr = c.store.AllEvents(ctx)
		} else {
			events, eventsErr = c.store.VisibleEvents(ctx, viewerID)
		}
	}()
	go func() {
		defer wg.Done()
		if privileged {
			tasks, tasksErr = c.store.AllTasks(ctx)
		} else {
			tasks, tasksErr = c.store.VisibleTasks(ctx, viewerID)
		}
	}()
	wg.Wait()

	if eventsErr != nil {
		c.metrics.RecordRemoteFailure("fetch")
		c.fail("fetch events", eventsErr)
		return fmt.Errorf("fetch events: %w", eventsErr)
	}
	if tasksErr != nil {
		c.metrics.RecordRemoteFailure("fetch")
		c.fail("fetch tasks", tasksErr)
		return fmt.Errorf("fetch tasks: %w", tasksErr)
	}

	merged := make([]*model.CalendarItem, 0, len(events)+len(tasks))
	merged = append(merged, events...)
	merged = append(merged, tasks...)
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Start.Before(merged[j].Start)
	})

	c.metrics.RecordFetchLatency(time.Since(started))
	c.metrics.RecordItemsFetched(len(merged))

	c.mu.Lock()
	c.state.Items = merged
	c.state.Loading = false
	c.state.Err = ""
	c.mu.Unlock()

	return nil
}

func (c *Controller) setLoading(v bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Loading = v
}

// fail records a remote failure: generic message in state, detail in the
// log. The collection is left untouched.
func (c *Controller) fail(op string, err error) {
	c.logger.Errorw("remote operation failed", "op", op, "err", err)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Loading = false
	c.state.Err = remoteFailureMessage
}

func cloneItems(items []*model.CalendarItem) []*model.CalendarItem {
	res := make([]*model.CalendarItem, len(items))
	for i, item := range items {
		res[i] = item.Clone()
	}
	return res
}
