package schema

import (
	"time"
)

type Role string

const (
	RoleMember    Role = "member"
	RoleVolunteer Role = "volunteer"
	RoleBusiness  Role = "business"
)

// Actor is a participant of the platform. Profiles are maintained by the
// identity service; this service only owns the coordinates.
type Actor struct {
	ID        string    `json:"id" gorm:"primary_key"`
	Name      string    `json:"name"`
	Role      Role      `json:"role" gorm:"not null;index"`
	Active    bool      `json:"active"`
	Latitude  *float64  `json:"-"`
	Longitude *float64  `json:"-"`
	Contact   string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Location returns nil if the actor never reported a position
func (a Actor) Location() *Location {
	if a.Latitude == nil || a.Longitude == nil {
		return nil
	}
	return &Location{
		Latitude:  *a.Latitude,
		Longitude: *a.Longitude,
	}
}

// SetLocation overwrites the coordinates, nil clears them
func (a *Actor) SetLocation(l *Location) {
	if l == nil {
		a.Latitude, a.Longitude = nil, nil
		return
	}
	lat, lng := l.Latitude, l.Longitude
	a.Latitude, a.Longitude = &lat, &lng
}

// ActorSummary is the public view of an actor used in listings
type ActorSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role Role   `json:"role"`
}

func (a Actor) Summary() ActorSummary {
	return ActorSummary{
		ID:   a.ID,
		Name: a.Name,
		Role: a.Role,
	}
}
