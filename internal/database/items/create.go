package items

import (
	"context"
	"fmt"

	"github.com/adsemenov/calendar-planner-backend/internal/database"
	"github.com/adsemenov/calendar-planner-backend/internal/model"
)

func (*Repository) CreateItem(ctx context.Context, q database.Queryable, info *model.ItemCreate) (int64, error) {
	qb := database.PSQL.
		Insert(database.ItemsTable).
		Columns(
			"type",
			"title",
			"description",
			"status",
			"color",
			"assigned_user_ids",
			"is_global",
			"start_time",
			"due_date",
		).
		Values(
			string(info.Type),
			info.Title,
			info.Description,
			string(info.Status),
			info.Color,
			info.AssignedUserIDs,
			info.Global,
			info.Start,
			info.End,
		).
		Suffix("returning id")

	var id int64
	if err := q.Get(ctx, &id, qb); err != nil {
		return 0, fmt.Errorf("SQL request: %w", err)
	}

	return id, nil
}
