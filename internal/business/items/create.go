package items

import (
	"context"
	"fmt"

	"github.com/adsemenov/calendar-planner-backend/internal/model"
)

// CreateItem persists a new item and returns it with the assigned id.
func (s *Service) CreateItem(ctx context.Context, info *model.ItemCreate) (*model.CalendarItem, error) {
	if err := validateInterval(info); err != nil {
		return nil, err
	}
	normalize(info)

	id, err := s.itemsRepository.CreateItem(ctx, s.db, info)
	if err != nil {
		return nil, fmt.Errorf("itemsRepository.CreateItem: %w", err)
	}

	s.invalidateCache(ctx)

	return &model.CalendarItem{
		ID:         id,
		ItemCreate: *info,
	}, nil
}
