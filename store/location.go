package store

import (
	log "github.com/sirupsen/logrus"

	"github.com/bitmark-inc/autonomy-nearby/schema"
)

// MirroredLocationStore keeps the relational actor row as the source of truth
// and mirrors every position into the mongo profile collection, which then
// answers the distance queries.
type MirroredLocationStore struct {
	orm     AutonomyCore
	locator ProfileLocator
}

func NewMirroredLocationStore(orm AutonomyCore, locator ProfileLocator) *MirroredLocationStore {
	return &MirroredLocationStore{
		orm:     orm,
		locator: locator,
	}
}

func (m *MirroredLocationStore) UpdateActorLocation(actorID string, loc *schema.Location) error {
	if err := m.orm.UpdateActorLocation(actorID, loc); err != nil {
		return err
	}

	actor, err := m.orm.GetActor(actorID)
	if err != nil {
		return err
	}

	if err := m.locator.UpsertProfile(*actor); err != nil {
		log.WithFields(log.Fields{
			"prefix":   mongoLogPrefix,
			"actor_id": actorID,
		}).WithError(err).Warn("mirror actor location")
		return err
	}

	return nil
}

func (m *MirroredLocationStore) ActorsWithin(origin schema.Location, radiusKm float64, role schema.Role) ([]schema.Actor, error) {
	return m.locator.ActorsWithin(origin, radiusKm, role)
}
