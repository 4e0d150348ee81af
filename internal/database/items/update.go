package items

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/adsemenov/calendar-planner-backend/internal/database"
	"github.com/adsemenov/calendar-planner-backend/internal/model"
)

// UpdateItem replaces the full record; there is no partial-field patch.
func (*Repository) UpdateItem(ctx context.Context, q database.Queryable, id int64, info *model.ItemCreate) error {
	qb := database.PSQL.
		Update(database.ItemsTable).
		SetMap(map[string]interface{}{
			"type":              string(info.Type),
			"title":             info.Title,
			"description":       info.Description,
			"status":            string(info.Status),
			"color":             info.Color,
			"assigned_user_ids": info.AssignedUserIDs,
			"is_global":         info.Global,
			"start_time":        info.Start,
			"due_date":          info.End,
		}).
		Where(sq.Eq{"id": id})

	tag, err := q.Exec(ctx, qb)
	if err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrNoRecord
	}

	return nil
}

func (*Repository) SetTaskStatus(ctx context.Context, q database.Queryable, id int64, status model.TaskStatus) error {
	qb := database.PSQL.
		Update(database.ItemsTable).
		Set("status", string(status)).
		Where(sq.Eq{"id": id, "type": string(model.ItemTypeTask)})

	tag, err := q.Exec(ctx, qb)
	if err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrNoRecord
	}

	return nil
}
