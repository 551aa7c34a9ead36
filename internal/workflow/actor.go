package workflow

type actorKind int

const (
	actorUser actorKind = iota
	actorSystem
	actorUnknown
)

// Actor is the identity a mutation is attributed to. It is either an
// authenticated user, the system itself (cascades), or an unknown actor
// (tests, imports) that carries no user id.
type Actor struct {
	kind   actorKind
	userID uint
}

// UserActor returns an actor for an authenticated user.
func UserActor(userID uint) Actor {
	return Actor{kind: actorUser, userID: userID}
}

// SystemActor returns the actor recorded for automatic cascade mutations.
func SystemActor() Actor {
	return Actor{kind: actorSystem}
}

// UnknownActor returns an actor with no attributable user.
func UnknownActor() Actor {
	return Actor{kind: actorUnknown}
}

// UserID returns the acting user's id, or nil for system and unknown actors.
func (a Actor) UserID() *uint {
	if a.kind != actorUser {
		return nil
	}
	id := a.userID
	return &id
}

// IsSystem reports whether the actor is the cascade system actor.
func (a Actor) IsSystem() bool {
	return a.kind == actorSystem
}
