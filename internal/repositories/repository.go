package repositories

import (
	sq "github.com/Masterminds/squirrel"
)

// psql is the shared squirrel builder with Postgres placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
