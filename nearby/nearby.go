// Package nearby implements proximity discovery, the ephemeral help request
// registry, the response coordinator and the directory connection workflow.
//
// Operations hold no in-process state between calls. Every rule that must
// survive concurrent callers is delegated to a conditional write of the
// store; this package only reads to validate input and to classify a lost
// race after the fact.
package nearby

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/bitmark-inc/autonomy-nearby/geo"
	"github.com/bitmark-inc/autonomy-nearby/schema"
)

var log *logrus.Entry

func init() {
	log = logrus.WithField("prefix", "nearby")
}

// Clock returns the current wall-clock time
type Clock func() time.Time

// SystemClock is the default clock
func SystemClock() time.Time {
	return time.Now()
}

// now normalises the clock reading to the precision the stores keep
func (c Clock) now() time.Time {
	return c().UTC().Truncate(time.Microsecond)
}

// ActorDirectory reads actor profiles owned by the identity service
type ActorDirectory interface {
	GetActor(actorID string) (*schema.Actor, error)
	GetActors(actorIDs []string) ([]schema.Actor, error)
}

// LocationStore keeps actor coordinates and answers distance bounded queries
type LocationStore interface {
	UpdateActorLocation(actorID string, loc *schema.Location) error
	ActorsWithin(origin schema.Location, radiusKm float64, role schema.Role) ([]schema.Actor, error)
}

// HelpStore persists help requests
type HelpStore interface {
	CreateHelp(help *schema.HelpRequest, now time.Time) error
	GetHelp(helpID string) (*schema.HelpRequest, error)
	GetActiveHelpByAuthor(authorID string, now time.Time) (*schema.HelpRequest, error)
	ListActiveHelpsInBox(box geo.BoundingBox) ([]schema.HelpRequest, error)
	ListHelpResponses(helpID string) ([]schema.HelpResponse, error)
	ResolveHelp(helpID string, at time.Time) error
	ExpireHelp(helpID string, now time.Time) error
	ExpireHelps(now time.Time) (int64, error)
}

// ResponseStore persists help responses
type ResponseStore interface {
	GetHelp(helpID string) (*schema.HelpRequest, error)
	GetHelps(helpIDs []string) ([]schema.HelpRequest, error)
	CreateHelpResponse(*schema.HelpResponse) error
	GetHelpResponse(responseID string) (*schema.HelpResponse, error)
	ListHelpResponsesByHelper(helperID string) ([]schema.HelpResponse, error)
	AcceptHelpResponse(helpID, responseID string, at time.Time) error
}

// ConnectionStore persists directory connection requests
type ConnectionStore interface {
	CreateConnectionRequest(*schema.ConnectionRequest) error
	GetConnectionRequest(requestID string) (*schema.ConnectionRequest, error)
	RespondConnectionRequest(requestID string, status schema.ConnectionStatus, at time.Time) error
	ListIncomingConnectionRequests(actorID string) ([]schema.ConnectionRequest, error)
	ListOutgoingConnectionRequests(actorID string) ([]schema.ConnectionRequest, error)
	ListConnectionPeers(actorID string) ([]string, error)
}

// ContactDirectory composes an opaque handle to reach an actor. Errors for
// actors that cannot be reached wrap ErrUnreachable.
type ContactDirectory interface {
	ContactHandle(ctx context.Context, actorID string) (string, error)
}

// ContactDeliverer hands a contact handle over to an actor
type ContactDeliverer interface {
	DeliverContact(ctx context.Context, actorID, handle string) error
}

// ExpiryScheduler arranges for a help request to be swept at its expiry
type ExpiryScheduler interface {
	ScheduleExpiry(ctx context.Context, help schema.HelpRequest) error
}
