package items

import (
	"context"
	"fmt"
)

func (s *Service) DeleteItem(ctx context.Context, id int64) error {
	if err := s.itemsRepository.DeleteItem(ctx, s.db, id); err != nil {
		return fmt.Errorf("itemsRepository.DeleteItem: %w", err)
	}

	s.invalidateCache(ctx)

	return nil
}
