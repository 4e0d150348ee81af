// Package items implements the remote store operation set consumed by the
// reconciliation controller: fetches split by item kind and privilege
// class, full-record create/update, delete and the task-completion side
// channel. It fronts the Postgres repository with a redis snapshot cache.
package items

import (
	"context"

	"go.uber.org/zap"

	"github.com/adsemenov/calendar-planner-backend/internal/calendar"
	"github.com/adsemenov/calendar-planner-backend/internal/database"
	"github.com/adsemenov/calendar-planner-backend/internal/model"
)

type Service struct {
	db              database.PGX
	logger          *zap.SugaredLogger
	itemsRepository itemsRepository
	cache           itemsCache
}

type itemsRepository interface {
	CreateItem(ctx context.Context, q database.Queryable, info *model.ItemCreate) (int64, error)
	GetItemByID(ctx context.Context, q database.Queryable, id int64) (*model.CalendarItem, error)
	GetItems(ctx context.Context, q database.Queryable, filter model.ItemsFilter) ([]*model.CalendarItem, error)
	UpdateItem(ctx context.Context, q database.Queryable, id int64, info *model.ItemCreate) error
	DeleteItem(ctx context.Context, q database.Queryable, id int64) error
	SetTaskStatus(ctx context.Context, q database.Queryable, id int64, status model.TaskStatus) error
}

type itemsCache interface {
	Get(ctx context.Context, kind, scope string) ([]*model.CalendarItem, error)
	Set(ctx context.Context, kind, scope string, items []*model.CalendarItem) error
	Invalidate(ctx context.Context) error
}

func NewService(db database.PGX, logger *zap.SugaredLogger, repo itemsRepository, cache itemsCache) *Service {
	return &Service{
		db:              db,
		logger:          logger,
		itemsRepository: repo,
		cache:           cache,
	}
}

func validateInterval(info *model.ItemCreate) error {
	if info.Title == "" {
		return &model.ValidationError{Field: "title", Message: "must be provided"}
	}
	if !info.End.After(info.Start) {
		return &model.ValidationError{Field: "end", Message: "must be after start"}
	}

	return nil
}

// normalize settles defaults before a record is persisted: status only
// applies to tasks, and items without an explicit color get the one of
// their type.
func normalize(info *model.ItemCreate) {
	if info.Type != model.ItemTypeTask {
		info.Status = ""
	} else if info.Status == "" {
		info.Status = model.TaskStatusPending
	}

	if info.Color == "" {
		info.Color = calendar.TypeColor(string(info.Type))
	}
}

func (s *Service) invalidateCache(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Errorw("failed to invalidate items cache", "err", err)
	}
}
