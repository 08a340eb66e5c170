package store

import (
	"time"

	"github.com/jinzhu/gorm"

	"github.com/bitmark-inc/autonomy-nearby/geo"
	"github.com/bitmark-inc/autonomy-nearby/schema"
)

const ormLogPrefix = "store"

// autonomy main datastore
type AutonomyCore interface {
	Ping() error

	// Actor
	CreateActor(*schema.Actor) error
	GetActor(actorID string) (*schema.Actor, error)
	GetActors(actorIDs []string) ([]schema.Actor, error)
	UpdateActorLocation(actorID string, loc *schema.Location) error
	ActorsWithin(origin schema.Location, radiusKm float64, role schema.Role) ([]schema.Actor, error)

	// Help
	CreateHelp(help *schema.HelpRequest, now time.Time) error
	GetHelp(helpID string) (*schema.HelpRequest, error)
	GetActiveHelpByAuthor(authorID string, now time.Time) (*schema.HelpRequest, error)
	ListActiveHelpsInBox(box geo.BoundingBox) ([]schema.HelpRequest, error)
	ResolveHelp(helpID string, at time.Time) error
	ExpireHelp(helpID string, now time.Time) error
	ExpireHelps(now time.Time) (int64, error)

	// Help response
	CreateHelpResponse(*schema.HelpResponse) error
	GetHelpResponse(responseID string) (*schema.HelpResponse, error)
	ListHelpResponses(helpID string) ([]schema.HelpResponse, error)
	ListHelpResponsesByHelper(helperID string) ([]schema.HelpResponse, error)
	GetHelps(helpIDs []string) ([]schema.HelpRequest, error)
	AcceptHelpResponse(helpID, responseID string, at time.Time) error

	// Connection
	CreateConnectionRequest(*schema.ConnectionRequest) error
	GetConnectionRequest(requestID string) (*schema.ConnectionRequest, error)
	RespondConnectionRequest(requestID string, status schema.ConnectionStatus, at time.Time) error
	ListIncomingConnectionRequests(actorID string) ([]schema.ConnectionRequest, error)
	ListOutgoingConnectionRequests(actorID string) ([]schema.ConnectionRequest, error)
	ListConnectionPeers(actorID string) ([]string, error)
}

// AutonomyStore is an implementation of AutonomyCore
type AutonomyStore struct {
	ormDB *gorm.DB
}

func NewAutonomyStore(ormDB *gorm.DB) *AutonomyStore {
	return &AutonomyStore{
		ormDB: ormDB,
	}
}

// Ping is to check the storage health status
func (s *AutonomyStore) Ping() error {
	return s.ormDB.DB().Ping()
}
