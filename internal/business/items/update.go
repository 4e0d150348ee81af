package items

import (
	"context"
	"fmt"

	"github.com/adsemenov/calendar-planner-backend/internal/model"
)

// UpdateItem replaces the stored record under id with info.
func (s *Service) UpdateItem(ctx context.Context, id int64, info *model.ItemCreate) (*model.CalendarItem, error) {
	if err := validateInterval(info); err != nil {
		return nil, err
	}
	normalize(info)

	if err := s.itemsRepository.UpdateItem(ctx, s.db, id, info); err != nil {
		return nil, fmt.Errorf("itemsRepository.UpdateItem: %w", err)
	}

	s.invalidateCache(ctx)

	return &model.CalendarItem{
		ID:         id,
		ItemCreate: *info,
	}, nil
}
