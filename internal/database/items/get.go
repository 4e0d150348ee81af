package items

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v4"

	"github.com/adsemenov/calendar-planner-backend/internal/database"
	"github.com/adsemenov/calendar-planner-backend/internal/model"
)

func (*Repository) GetItemByID(ctx context.Context, q database.Queryable, id int64) (*model.CalendarItem, error) {
	qb := baseQuery.
		Where(sq.Eq{"id": id})

	dto := &itemDTO{}
	if err := q.Get(ctx, dto, qb); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNoRecord
		}
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	return mapToItem(dto), nil
}

func (*Repository) GetItems(ctx context.Context, q database.Queryable, filter model.ItemsFilter) ([]*model.CalendarItem, error) {
	qb := baseQuery.OrderBy("start_time")

	if !filter.From.IsZero() {
		qb = qb.Where(sq.Gt{"due_date": filter.From})
	}
	if !filter.To.IsZero() {
		qb = qb.Where(sq.Lt{"start_time": filter.To})
	}

	if len(filter.Types) != 0 {
		types := make([]string, len(filter.Types))
		for i, t := range filter.Types {
			types[i] = string(t)
		}
		qb = qb.Where(sq.Eq{"type": types})
	}

	if filter.VisibleTo != nil {
		qb = qb.Where(sq.Or{
			sq.Eq{"is_global": true},
			sq.Expr("? = any(assigned_user_ids)", *filter.VisibleTo),
		})
	}

	var dtos []*itemDTO
	if err := q.Select(ctx, &dtos, qb); err != nil {
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	res := make([]*model.CalendarItem, len(dtos))
	for i, d := range dtos {
		res[i] = mapToItem(d)
	}

	return res, nil
}
