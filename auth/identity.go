package auth

import (
	"errors"

	"tuiter/models"
)

var ErrUnauthenticated = errors.New("unauthenticated")

// currentSessionSegment is the :uid path value that refers to the logged-in user.
const currentSessionSegment = "me"

// Caller identifies whose data a request is about: either a literal user id
// or whoever owns the current session.
type Caller struct {
	id      string
	current bool
}

func Literal(id string) Caller {
	return Caller{id: id}
}

func CurrentSession() Caller {
	return Caller{current: true}
}

func ParseCaller(segment string) Caller {
	if segment == currentSessionSegment {
		return CurrentSession()
	}
	return Literal(segment)
}

// Resolve turns the caller into a concrete user id. profile is the session
// owner and may be nil.
func (c Caller) Resolve(profile *models.User) (string, error) {
	if !c.current {
		return c.id, nil
	}
	if profile == nil || profile.ID.IsZero() {
		return "", ErrUnauthenticated
	}
	return profile.ID.Hex(), nil
}
