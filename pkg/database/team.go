package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TeamScope wraps a connection with team context and ensures cleanup.
// The connection has app.current_team_id set; every graph store query
// filters on it, so a scope must never leak to the next request.
type TeamScope struct {
	Conn *pgxpool.Conn
}

// Close resets team context and releases the connection to the pool.
// This MUST be called to prevent team context from leaking to the next request.
func (s *TeamScope) Close() {
	if s.Conn == nil {
		return
	}
	_, _ = s.Conn.Exec(context.Background(), "RESET app.current_team_id")
	s.Conn.Release()
}

// WithTeam acquires a connection and sets the team context.
// The returned TeamScope MUST be closed with defer scope.Close().
func (db *DB) WithTeam(ctx context.Context, teamID uuid.UUID) (*TeamScope, error) {
	conn, err := db.Pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	_, err = conn.Exec(ctx, "SELECT set_config('app.current_team_id', $1, false)", teamID.String())
	if err != nil {
		conn.Release()
		return nil, err
	}

	return &TeamScope{Conn: conn}, nil
}
