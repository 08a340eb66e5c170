package store

import (
	"time"

	"github.com/jinzhu/gorm"
	log "github.com/sirupsen/logrus"

	"github.com/bitmark-inc/autonomy-nearby/schema"
)

// CreateHelpResponse inserts a PENDING response. A second response of the same
// helper to the same request is rejected by the unique index with ErrDuplicate.
func (s *AutonomyStore) CreateHelpResponse(r *schema.HelpResponse) error {
	return translate(s.ormDB.Create(r).Error)
}

// GetHelpResponse returns a response by id
func (s *AutonomyStore) GetHelpResponse(responseID string) (*schema.HelpResponse, error) {
	var r schema.HelpResponse
	if err := s.ormDB.Where("id = ?", responseID).First(&r).Error; err != nil {
		return nil, translate(err)
	}
	return &r, nil
}

// ListHelpResponses returns every response of a request, oldest first
func (s *AutonomyStore) ListHelpResponses(helpID string) ([]schema.HelpResponse, error) {
	responses := []schema.HelpResponse{}
	if err := s.ormDB.Where("request_id = ?", helpID).
		Order("created_at ASC").Find(&responses).Error; err != nil {
		return nil, err
	}
	return responses, nil
}

// ListHelpResponsesByHelper returns the responses a helper has made, newest first
func (s *AutonomyStore) ListHelpResponsesByHelper(helperID string) ([]schema.HelpResponse, error) {
	responses := []schema.HelpResponse{}
	if err := s.ormDB.Where("helper_id = ?", helperID).
		Order("created_at DESC").Find(&responses).Error; err != nil {
		return nil, err
	}
	return responses, nil
}

// AcceptHelpResponse moves a response to `ACCEPTED`. The request row is
// claimed with a compare-and-set on accepted_response_id, so among any number
// of concurrent callers on the same request only one transaction commits; the
// others get ErrStaleState and change nothing. The partial unique index on
// accepted responses backs the same rule at the response level.
func (s *AutonomyStore) AcceptHelpResponse(helpID, responseID string, at time.Time) error {
	return s.withTx(func(tx *gorm.DB) error {
		claim := tx.Model(schema.HelpRequest{}).
			Where("id = ? AND status = ? AND expires_at > ? AND accepted_response_id IS NULL", helpID, schema.HelpActive, at.UTC()).
			Update("accepted_response_id", responseID)
		if claim.Error != nil {
			return claim.Error
		}

		if claim.RowsAffected == 0 {
			return ErrStaleState
		}

		accept := tx.Model(schema.HelpResponse{}).
			Where("id = ? AND request_id = ? AND status = ?", responseID, helpID, schema.ResponsePending).
			Updates(map[string]interface{}{
				"status":      schema.ResponseAccepted,
				"accepted_at": at,
			})
		if accept.Error != nil {
			if isUniqueViolation(accept.Error) {
				return ErrStaleState
			}
			return accept.Error
		}

		if accept.RowsAffected == 0 {
			log.WithFields(log.Fields{
				"prefix":      ormLogPrefix,
				"help_id":     helpID,
				"response_id": responseID,
			}).Warn("claimed request but response is not pending")
			return ErrStaleState
		}

		return nil
	})
}
