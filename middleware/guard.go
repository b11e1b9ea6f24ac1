package middleware

import (
	"context"
	"errors"
	"net/http"

	"athletics-backend/apperr"
	"athletics-backend/models"
	"athletics-backend/respond"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// Rule is one authorization check. Rules see the caller loaded by
// AuthMiddleware and return an apperr error to reject the request.
type Rule func(r *http.Request, caller *models.User) error

// Access decides who besides the owner may reach an owned resource.
type Access int

const (
	// ReadAccess lets the owner and any coach through.
	ReadAccess Access = iota
	// WriteAccess lets only the owner through.
	WriteAccess
)

// OwnerLookup resolves the user id owning the resource addressed by r.
// It must return an apperr not-found error when the resource is missing.
type OwnerLookup func(r *http.Request) (uuid.UUID, error)

// Guard runs rules in order and writes the first failure.
func Guard(rules ...Rule) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			caller := CurrentUser(r.Context())
			if caller == nil {
				respond.Error(w, r, apperr.Unauthenticated("Not authenticated"))
				return
			}
			for _, rule := range rules {
				if err := rule(r, caller); err != nil {
					respond.Error(w, r, err)
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireRole accepts callers whose role is exactly one of roles.
func RequireRole(roles ...string) Rule {
	return func(_ *http.Request, caller *models.User) error {
		for _, role := range roles {
			if caller.Role == role {
				return nil
			}
		}
		return apperr.Forbidden("Not enough permissions")
	}
}

// Owned checks ownership. The lookup runs first, so a missing resource is
// reported as not found before any permission check.
func Owned(lookup OwnerLookup, access Access) Rule {
	return func(r *http.Request, caller *models.User) error {
		owner, err := lookup(r)
		if err != nil {
			return err
		}
		if owner == caller.ID {
			return nil
		}
		if access == ReadAccess && caller.IsCoach() {
			return nil
		}
		return apperr.Forbidden("Not enough permissions")
	}
}

// Self guards /users/{param}: the user themself or a coach.
func Self(param string, users UserFinder) Rule {
	return Owned(func(r *http.Request) (uuid.UUID, error) {
		id, err := PathUUID(r, param)
		if err != nil {
			return uuid.Nil, apperr.NotFound("User not found")
		}
		if _, err := users.GetByID(r.Context(), id); err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				return uuid.Nil, apperr.NotFound("User not found")
			}
			return uuid.Nil, err
		}
		return id, nil
	}, ReadAccess)
}

// PathUUID parses a mux path variable as a UUID.
func PathUUID(r *http.Request, name string) (uuid.UUID, error) {
	return uuid.Parse(mux.Vars(r)[name])
}

// OwnerFromStore adapts a "get by id, return owner" function to an
// OwnerLookup keyed by a path variable.
func OwnerFromStore(param, notFound string, owner func(ctx context.Context, id uuid.UUID) (uuid.UUID, error)) OwnerLookup {
	return func(r *http.Request) (uuid.UUID, error) {
		id, err := PathUUID(r, param)
		if err != nil {
			return uuid.Nil, apperr.NotFound(notFound)
		}
		ownerID, err := owner(r.Context(), id)
		if err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				return uuid.Nil, apperr.NotFound(notFound)
			}
			return uuid.Nil, err
		}
		return ownerID, nil
	}
}
