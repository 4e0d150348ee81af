package items

import (
	"context"
	"fmt"

	"github.com/adsemenov/calendar-planner-backend/internal/model"
)

// ToggleTaskCompletion flips a task between COMPLETED and PENDING. It is a
// side channel that bypasses the full-record update path, so it neither
// touches the interval nor goes through the conflict gate.
func (s *Service) ToggleTaskCompletion(ctx context.Context, id int64) error {
	item, err := s.itemsRepository.GetItemByID(ctx, s.db, id)
	if err != nil {
		return fmt.Errorf("itemsRepository.GetItemByID: %w", err)
	}

	if item.Type != model.ItemTypeTask {
		return &model.ValidationError{Field: "type", Message: "only tasks can be completed"}
	}

	status := model.TaskStatusCompleted
	if item.Status == model.TaskStatusCompleted {
		status = model.TaskStatusPending
	}

	if err := s.itemsRepository.SetTaskStatus(ctx, s.db, id, status); err != nil {
		return fmt.Errorf("itemsRepository.SetTaskStatus: %w", err)
	}

	s.invalidateCache(ctx)

	return nil
}
