package entity

import (
	"time"

	"docgentor-be/pkg/entitlement"
)

type IdentityKind string

const (
	IdentityUser  IdentityKind = "user"
	IdentityGuest IdentityKind = "guest"
)

// Identity is whoever a request acts for. Guests carry only a session id and
// never reach durable storage.
type Identity struct {
	Id           string
	Kind         IdentityKind
	Email        string
	Role         string
	GuestSession string // set for users too when a guest session came along
}

func (i Identity) IsAuthenticated() bool {
	return i.Kind == IdentityUser && i.Id != ""
}

func (i Identity) IsAdmin() bool {
	return i.IsAuthenticated() && i.Role == "admin"
}

type Entitlement struct {
	IdentityId string
	Record     entitlement.Record
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
