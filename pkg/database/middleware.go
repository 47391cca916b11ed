package database

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// WithTeamContext creates middleware that sets up a team-scoped DB
// connection from the {tid} path parameter. The connection is cleaned up
// after the handler returns.
func WithTeamContext(db *DB, logger *zap.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			teamID, err := uuid.Parse(r.PathValue("tid"))
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid_team_id", "Invalid team ID format")
				return
			}

			scope, err := db.WithTeam(r.Context(), teamID)
			if err != nil {
				logger.Error("Failed to acquire team connection",
					zap.String("team_id", teamID.String()),
					zap.Error(err))
				writeError(w, http.StatusInternalServerError, "database_error", "Database connection error")
				return
			}
			defer scope.Close()

			ctx := SetTeamScope(r.Context(), scope)
			next(w, r.WithContext(ctx))
		}
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, statusCode int, errorCode, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":   errorCode,
		"message": message,
	})
}
