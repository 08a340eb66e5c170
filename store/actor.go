package store

import (
	"github.com/jinzhu/gorm"
	log "github.com/sirupsen/logrus"

	"github.com/bitmark-inc/autonomy-nearby/geo"
	"github.com/bitmark-inc/autonomy-nearby/schema"
)

// CreateActor stores an actor profile pushed by the identity service
func (s *AutonomyStore) CreateActor(a *schema.Actor) error {
	return translate(s.ormDB.Create(a).Error)
}

// GetActor returns an actor by id
func (s *AutonomyStore) GetActor(actorID string) (*schema.Actor, error) {
	var a schema.Actor
	if err := s.ormDB.Where("id = ?", actorID).First(&a).Error; err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

// GetActors returns the actors of the given ids, unknown ids are skipped
func (s *AutonomyStore) GetActors(actorIDs []string) ([]schema.Actor, error) {
	actors := make([]schema.Actor, 0, len(actorIDs))
	if len(actorIDs) == 0 {
		return actors, nil
	}

	if err := s.ormDB.Where("id IN (?)", actorIDs).Order("id").Find(&actors).Error; err != nil {
		return nil, err
	}
	return actors, nil
}

// UpdateActorLocation overwrites the coordinates of an actor, nil clears them
func (s *AutonomyStore) UpdateActorLocation(actorID string, loc *schema.Location) error {
	updates := map[string]interface{}{
		"latitude":  gorm.Expr("NULL"),
		"longitude": gorm.Expr("NULL"),
	}
	if loc != nil {
		updates["latitude"] = loc.Latitude
		updates["longitude"] = loc.Longitude
	}

	result := s.ormDB.Model(schema.Actor{}).Where("id = ?", actorID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}

	return nil
}

// ActorsWithin returns actors with a known position within radiusKm of the
// origin. Rows are prefiltered by a bounding box and then checked with the
// haversine distance.
func (s *AutonomyStore) ActorsWithin(origin schema.Location, radiusKm float64, role schema.Role) ([]schema.Actor, error) {
	box := geo.BoundingBoxOf(origin, radiusKm)

	q := s.ormDB.Where("latitude IS NOT NULL AND longitude IS NOT NULL").
		Where("latitude BETWEEN ? AND ?", box.MinLatitude, box.MaxLatitude)
	if !box.FullLongitude() {
		q = q.Where("longitude BETWEEN ? AND ?", box.MinLongitude, box.MaxLongitude)
	}
	if role != "" {
		q = q.Where("role = ?", role)
	}

	var candidates []schema.Actor
	if err := q.Find(&candidates).Error; err != nil {
		log.WithFields(log.Fields{
			"prefix": ormLogPrefix,
			"origin": origin,
			"radius": radiusKm,
			"error":  err,
		}).Error("query actors within radius")
		return nil, err
	}

	actors := make([]schema.Actor, 0, len(candidates))
	for _, a := range candidates {
		loc := a.Location()
		if loc == nil {
			continue
		}
		if _, ok := geo.Within(origin, *loc, radiusKm); ok {
			actors = append(actors, a)
		}
	}

	log.WithField("prefix", ormLogPrefix).Debugf("actors within %.2fkm: %d of %d candidates", radiusKm, len(actors), len(candidates))

	return actors, nil
}
