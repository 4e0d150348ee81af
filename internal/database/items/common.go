package items

import "github.com/adsemenov/calendar-planner-backend/internal/database"

type Repository struct{}

func NewRepository() *Repository {
	return &Repository{}
}

var baseQuery = database.PSQL.
	Select("id",
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
	From(database.ItemsTable)
