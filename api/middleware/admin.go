package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/easemart/easemart-backend/api/responses"
	"github.com/easemart/easemart-backend/pkg/db/models"
	pkgerrors "github.com/easemart/easemart-backend/pkg/errors"
	"github.com/easemart/easemart-backend/pkg/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AccessLoader resolves the caller's own user record so the gate can read the
// privilege flags fresh on every privileged request.
type AccessLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// RequireAdmin gates privileged mutations. The caller's user record is looked
// up by the identity the token carried; a record that no longer exists means
// the token refers to a deleted caller and is rejected as unauthorized rather
// than crashing the request.
func RequireAdmin(users AccessLoader, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			callerID, err := uuid.Parse(UserIDFromContext(r.Context()))
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			caller, err := users.FindByID(r.Context(), callerID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "unknown caller"))
					return
				}
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load caller"))
				return
			}

			if !caller.Access.IsAdmin {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "admin access required"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
