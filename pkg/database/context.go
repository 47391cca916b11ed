package database

import (
	"context"
)

type contextKey string

const (
	// TeamScopeKey is the context key for storing the team-scoped database connection.
	TeamScopeKey contextKey = "teamScope"
)

// GetTeamScope retrieves the team-scoped database connection from context.
// Returns nil and false if not present.
func GetTeamScope(ctx context.Context) (*TeamScope, bool) {
	scope, ok := ctx.Value(TeamScopeKey).(*TeamScope)
	return scope, ok
}

// SetTeamScope stores the team-scoped database connection in context.
func SetTeamScope(ctx context.Context, scope *TeamScope) context.Context {
	return context.WithValue(ctx, TeamScopeKey, scope)
}
