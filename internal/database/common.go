package database

import sq "github.com/Masterminds/squirrel"

// PSQL is the squirrel builder configured for Postgres placeholders.
var PSQL = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const ItemsTable = "calendar_items"
