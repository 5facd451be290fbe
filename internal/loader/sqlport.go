package loader

import (
	"context"
	"database/sql"
)

// DBQueryPort adapts a *sql.DB (or *sql.Conn/*sql.Tx, anything sharing
// the method) to QueryPort. *sql.Rows already satisfies Rows, so the
// adapter only exists to convert the concrete *sql.Rows return type to
// the narrow interface.
type DBQueryPort struct {
	DB *sql.DB
}

func (p *DBQueryPort) QueryContext(ctx context.Context, query string, args ...any) (Rows, error) {
	return p.DB.QueryContext(ctx, query, args...)
}
