package domain

import "github.com/google/uuid"

// Actor is the identity an action is attributed to: either an authenticated
// user or an anonymous caller. The zero value is Anonymous.
type Actor struct {
	userID uuid.UUID
}

// Authenticated returns an Actor for the given user. uuid.Nil yields Anonymous.
func Authenticated(userID uuid.UUID) Actor {
	return Actor{userID: userID}
}

// Anonymous returns the Actor used for unauthenticated callers.
func Anonymous() Actor {
	return Actor{}
}

// UserID returns the user behind the actor and whether there is one.
func (a Actor) UserID() (uuid.UUID, bool) {
	return a.userID, a.userID != uuid.Nil
}

// IsAnonymous reports whether the actor has no user identity.
func (a Actor) IsAnonymous() bool {
	return a.userID == uuid.Nil
}

// Ref returns a pointer to the user id for nullable columns, nil when anonymous.
func (a Actor) Ref() *uuid.UUID {
	if a.IsAnonymous() {
		return nil
	}
	id := a.userID
	return &id
}

func (a Actor) String() string {
	if a.IsAnonymous() {
		return "anonymous"
	}
	return a.userID.String()
}

// ActorFromRef is the inverse of Actor.Ref.
func ActorFromRef(id *uuid.UUID) Actor {
	if id == nil {
		return Anonymous()
	}
	return Authenticated(*id)
}
