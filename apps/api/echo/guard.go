package echoapi

import (
	"github.com/labstack/echo/v4"

	"github.com/buildbytes/lms/core/user"
)

// Predicate is a single access rule evaluated against the authenticated
// user. A nil return grants access.
type Predicate func(usr user.User) error

// RoleIs requires the user to hold the given role.
func RoleIs(role user.Role) Predicate {
	return func(usr user.User) error {
		if usr.Role != role {
			return errForbidden
		}
		return nil
	}
}

// Owner requires the user to be the creator of the target resource.
func Owner(createdBy string) Predicate {
	return func(usr user.User) error {
		if usr.ID != createdBy {
			return errForbidden
		}
		return nil
	}
}

// OwnerOrRole grants access to the creator of the target resource, or to
// any user holding the override role.
func OwnerOrRole(createdBy string, role user.Role) Predicate {
	return func(usr user.User) error {
		if usr.ID == createdBy || usr.Role == role {
			return nil
		}
		return errForbidden
	}
}

// ParticipantOf requires the user to be one of the listed participants.
func ParticipantOf(ids ...string) Predicate {
	return func(usr user.User) error {
		for _, id := range ids {
			if usr.ID == id {
				return nil
			}
		}
		return errForbidden
	}
}

// ParticipantOrRole grants access to any listed participant, or to any
// user holding the override role.
func ParticipantOrRole(role user.Role, ids ...string) Predicate {
	return func(usr user.User) error {
		if usr.Role == role {
			return nil
		}
		for _, id := range ids {
			if usr.ID == id {
				return nil
			}
		}
		return errForbidden
	}
}

// authorize resolves the authenticated user and evaluates the given
// predicates in order, stopping at the first denial. Handlers call it
// after loading the target resource and before any mutation.
func (a *auth) authorize(ctx echo.Context, preds ...Predicate) (user.User, error) {
	usr, err := a.contextUser(ctx)
	if err != nil {
		return user.User{}, err
	}
	for _, pred := range preds {
		if err := pred(usr); err != nil {
			return user.User{}, err
		}
	}
	return usr, nil
}
