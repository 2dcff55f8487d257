package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/bookshelf/bookshelf-api/internal/core/domain"
)

// Operation identifiers used as keys into the Policy table.
const (
	OpUsersList   = "users.list"
	OpUsersGet    = "users.get"
	OpUsersCreate = "users.create"
	OpUsersUpdate = "users.update"
	OpUsersDelete = "users.delete"
	OpBooksList   = "books.list"
	OpBooksGet    = "books.get"
	OpBooksCreate = "books.create"
	OpBooksUpdate = "books.update"
	OpBooksDelete = "books.delete"
)

// Policy maps each protected operation to the non-empty set of roles
// permitted to invoke it. Operations absent from the table are public.
type Policy map[string][]domain.Role

// DefaultPolicy is the single reviewable access table for the whole API.
func DefaultPolicy() Policy {
	return Policy{
		OpUsersList:   {domain.RoleUser, domain.RoleAdmin},
		OpUsersGet:    {domain.RoleUser, domain.RoleAdmin},
		OpUsersCreate: {domain.RoleAdmin},
		OpUsersUpdate: {domain.RoleAdmin},
		OpUsersDelete: {domain.RoleAdmin},
		OpBooksList:   {domain.RoleUser, domain.RoleAdmin},
		OpBooksGet:    {domain.RoleUser, domain.RoleAdmin},
		OpBooksCreate: {domain.RoleUser, domain.RoleAdmin},
		OpBooksUpdate: {domain.RoleUser, domain.RoleAdmin},
		OpBooksDelete: {domain.RoleUser, domain.RoleAdmin},
	}
}

// Require gates an operation against the policy table. It must run after
// Auth and before the handler: an anonymous caller on a protected
// operation fails with 401, a caller whose role is not in the permitted
// set fails with 403, and no handler side effect happens in either case.
func (p Policy) Require(op string) echo.MiddlewareFunc {
	roles, protected := p[op]

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !protected {
				return next(c)
			}

			ident, authenticated := Identity(c)
			if !authenticated {
				return domain.NewUnauthenticated("authentication required")
			}

			for _, role := range roles {
				if role == ident.Role {
					return next(c)
				}
			}
			return domain.NewForbidden("insufficient role for this operation")
		}
	}
}
