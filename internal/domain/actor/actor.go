package actor

// Ref is the identity snapshot embedded in posts, bids and reviews.
type Ref struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

// Actor is the authenticated caller of a domain operation.
type Actor struct {
	ID     string
	Name   string
	Avatar string
	Admin  bool
}

func (a Actor) Ref() Ref {
	return Ref{ID: a.ID, Name: a.Name, Avatar: a.Avatar}
}

// Owns reports whether the actor may mutate a resource owned by ownerID.
func (a Actor) Owns(ownerID string) bool {
	return a.Admin || a.ID == ownerID
}
