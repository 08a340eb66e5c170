package store

import (
	"time"

	"github.com/jinzhu/gorm"
	log "github.com/sirupsen/logrus"

	"github.com/bitmark-inc/autonomy-nearby/geo"
	"github.com/bitmark-inc/autonomy-nearby/schema"
)

// CreateHelp inserts an ACTIVE help request. Stale ACTIVE rows of the same
// author are retired first so that the partial unique index on
// (author_id) WHERE status = 'ACTIVE' only rejects a request that is still
// running. Concurrent creations race on that index and exactly one wins.
func (s *AutonomyStore) CreateHelp(help *schema.HelpRequest, now time.Time) error {
	return s.withTx(func(tx *gorm.DB) error {
		var actives []schema.HelpRequest
		if err := tx.Where("author_id = ? AND status = ?", help.AuthorID, schema.HelpActive).
			Find(&actives).Error; err != nil {
			return err
		}

		for _, h := range actives {
			if h.EffectiveStatus(now) == schema.HelpActive {
				return ErrDuplicate
			}

			if err := tx.Model(schema.HelpRequest{}).
				Where("id = ? AND status = ?", h.ID, schema.HelpActive).
				Update("status", schema.HelpExpired).Error; err != nil {
				return err
			}
		}

		return translate(tx.Create(help).Error)
	})
}

// GetHelp returns a help request by id with its stored status
func (s *AutonomyStore) GetHelp(helpID string) (*schema.HelpRequest, error) {
	var help schema.HelpRequest
	if err := s.ormDB.Where("id = ?", helpID).First(&help).Error; err != nil {
		return nil, translate(err)
	}
	return &help, nil
}

// GetHelps returns help requests of the given ids
func (s *AutonomyStore) GetHelps(helpIDs []string) ([]schema.HelpRequest, error) {
	helps := make([]schema.HelpRequest, 0, len(helpIDs))
	if len(helpIDs) == 0 {
		return helps, nil
	}

	if err := s.ormDB.Where("id IN (?)", helpIDs).Find(&helps).Error; err != nil {
		return nil, err
	}
	return helps, nil
}

// GetActiveHelpByAuthor returns the request of an author which is still
// running at now
func (s *AutonomyStore) GetActiveHelpByAuthor(authorID string, now time.Time) (*schema.HelpRequest, error) {
	var helps []schema.HelpRequest
	if err := s.ormDB.Where("author_id = ? AND status = ?", authorID, schema.HelpActive).
		Order("created_at DESC").Find(&helps).Error; err != nil {
		return nil, err
	}

	for _, h := range helps {
		if h.EffectiveStatus(now) == schema.HelpActive {
			help := h
			return &help, nil
		}
	}

	return nil, ErrRecordNotFound
}

// ListActiveHelpsInBox returns stored ACTIVE requests inside the box. Callers
// still need to check the effective status and the exact distance.
func (s *AutonomyStore) ListActiveHelpsInBox(box geo.BoundingBox) ([]schema.HelpRequest, error) {
	q := s.ormDB.Where("status = ?", schema.HelpActive).
		Where("latitude BETWEEN ? AND ?", box.MinLatitude, box.MaxLatitude)
	if !box.FullLongitude() {
		q = q.Where("longitude BETWEEN ? AND ?", box.MinLongitude, box.MaxLongitude)
	}

	helps := []schema.HelpRequest{}
	if err := q.Order("created_at DESC").Find(&helps).Error; err != nil {
		return nil, err
	}
	return helps, nil
}

// ResolveHelp sets a request to `RESOLVED`. The update only applies when the
// request is still running at the given time.
func (s *AutonomyStore) ResolveHelp(helpID string, at time.Time) error {
	result := s.ormDB.Model(schema.HelpRequest{}).
		Where("id = ? AND status = ? AND expires_at > ?", helpID, schema.HelpActive, at.UTC()).
		Updates(map[string]interface{}{
			"status":      schema.HelpResolved,
			"resolved_at": at,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrStaleState
	}

	return nil
}

// ExpireHelp marks a single request as `EXPIRED` once its expiry has passed
func (s *AutonomyStore) ExpireHelp(helpID string, now time.Time) error {
	result := s.ormDB.Model(schema.HelpRequest{}).
		Where("id = ? AND status = ? AND expires_at <= ?", helpID, schema.HelpActive, now.UTC()).
		Update("status", schema.HelpExpired)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrStaleState
	}

	return nil
}

// ExpireHelps rewrites every stored ACTIVE request past its expiry
func (s *AutonomyStore) ExpireHelps(now time.Time) (int64, error) {
	result := s.ormDB.Model(schema.HelpRequest{}).
		Where("status = ? AND expires_at <= ?", schema.HelpActive, now.UTC()).
		Update("status", schema.HelpExpired)
	if result.Error != nil {
		return 0, result.Error
	}

	log.WithField("prefix", ormLogPrefix).Debugf("expired %d help requests", result.RowsAffected)

	return result.RowsAffected, nil
}
