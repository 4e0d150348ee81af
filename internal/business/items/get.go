package items

import (
	"context"
	"errors"
	"fmt"

	"github.com/adsemenov/calendar-planner-backend/internal/model"
)

const (
	kindEvents = "events"
	kindTasks  = "tasks"

	scopeAll = "all"
)

// AllEvents returns every event regardless of visibility.
func (s *Service) AllEvents(ctx context.Context) ([]*model.CalendarItem, error) {
	return s.fetch(ctx, model.ItemTypeEvent, kindEvents, scopeAll, nil)
}

// VisibleEvents returns the events visible to the given user: global ones
// plus those the user is assigned to.
func (s *Service) VisibleEvents(ctx context.Context, userID int64) ([]*model.CalendarItem, error) {
	return s.fetch(ctx, model.ItemTypeEvent, kindEvents, userScope(userID), &userID)
}

// AllTasks returns every task regardless of visibility.
func (s *Service) AllTasks(ctx context.Context) ([]*model.CalendarItem, error) {
	return s.fetch(ctx, model.ItemTypeTask, kindTasks, scopeAll, nil)
}

// VisibleTasks returns the tasks visible to the given user.
func (s *Service) VisibleTasks(ctx context.Context, userID int64) ([]*model.CalendarItem, error) {
	return s.fetch(ctx, model.ItemTypeTask, kindTasks, userScope(userID), &userID)
}

func (s *Service) GetItemByID(ctx context.Context, id int64) (*model.CalendarItem, error) {
	item, err := s.itemsRepository.GetItemByID(ctx, s.db, id)
	if err != nil {
		return nil, fmt.Errorf("itemsRepository.GetItemByID: %w", err)
	}

	return item, nil
}

func (s *Service) fetch(ctx context.Context, t model.ItemType, kind, scope string, visibleTo *int64) ([]*model.CalendarItem, error) {
	cached, err := s.cache.Get(ctx, kind, scope)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, model.ErrNoRecord) {
		s.logger.Errorw("failed to read items cache", "kind", kind, "scope", scope, "err", err)
	}

	items, err := s.itemsRepository.GetItems(ctx, s.db, model.ItemsFilter{
		Types:     []model.ItemType{t},
		VisibleTo: visibleTo,
	})
	if err != nil {
		return nil, fmt.Errorf("itemsRepository.GetItems: %w", err)
	}

	if err := s.cache.Set(ctx, kind, scope, items); err != nil {
		s.logger.Errorw("failed to write items cache", "kind", kind, "scope", scope, "err", err)
	}

	return items, nil
}

func userScope(userID int64) string {
	return fmt.Sprintf("user:%v", userID)
}
