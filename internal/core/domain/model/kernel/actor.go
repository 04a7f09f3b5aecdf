package kernel

// Actor is whoever issued the current request. Anonymous actors have no user id.
type Actor struct {
	userID UUID
}

// AnonymousActor represents an unauthenticated caller.
func AnonymousActor() Actor {
	return Actor{}
}

// AuthenticatedActor represents the user identified by userID.
func AuthenticatedActor(userID UUID) (Actor, error) {
	if err := userID.Validate(); err != nil {
		return Actor{}, err
	}
	return Actor{userID: userID}, nil
}

func (a Actor) IsAnonymous() bool {
	return a.userID.Validate() != nil
}

// UserID is the zero UUID for anonymous actors.
func (a Actor) UserID() UUID {
	return a.userID
}
