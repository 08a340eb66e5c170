package schema

const (
	ProfileCollection = "profile"
)

// Profile - actor geo profile kept in mongodb for 2dsphere queries
type Profile struct {
	ActorID  string   `bson:"actor_id"`
	Name     string   `bson:"name"`
	Role     Role     `bson:"role"`
	Active   bool     `bson:"active"`
	Location *GeoJSON `bson:"location,omitempty"`
}

// Actor converts a profile into the actor shape used by discovery
func (p Profile) Actor() Actor {
	a := Actor{
		ID:     p.ActorID,
		Name:   p.Name,
		Role:   p.Role,
		Active: p.Active,
	}
	a.SetLocation(p.Location.Location())
	return a
}
