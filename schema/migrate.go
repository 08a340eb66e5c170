package schema

import (
	"fmt"

	"github.com/jinzhu/gorm"
)

const (
	IndexHelpRequestActiveAuthor      = "help_request_unique_active_author"
	IndexHelpResponseHelper           = "help_response_unique_helper"
	IndexHelpResponseAccepted         = "help_response_unique_accepted"
	IndexConnectionRequestLivePair    = "connection_request_unique_live_pair"
	IndexHelpRequestLatitudeLongitude = "help_request_latitude_longitude"
	IndexActorLatitudeLongitude       = "actor_latitude_longitude"
)

// Migrate creates the relational tables and the unique indexes that carry
// the exclusivity rules of help requests, responses and connections.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&Actor{},
		&HelpRequest{},
		&HelpResponse{},
		&ConnectionRequest{},
	).Error; err != nil {
		return err
	}

	// one stored ACTIVE request per author
	if err := db.Model(HelpRequest{}).Where(fmt.Sprintf("status = '%s'", HelpActive)).
		AddUniqueIndex(IndexHelpRequestActiveAuthor, "author_id").Error; err != nil {
		return err
	}

	if err := db.Model(HelpRequest{}).
		AddIndex(IndexHelpRequestLatitudeLongitude, "latitude", "longitude").Error; err != nil {
		return err
	}

	// one response per helper and request
	if err := db.Model(HelpResponse{}).
		AddUniqueIndex(IndexHelpResponseHelper, "request_id", "helper_id").Error; err != nil {
		return err
	}

	// one ACCEPTED response per request
	if err := db.Model(HelpResponse{}).Where(fmt.Sprintf("status = '%s'", ResponseAccepted)).
		AddUniqueIndex(IndexHelpResponseAccepted, "request_id").Error; err != nil {
		return err
	}

	// one PENDING or ACCEPTED request per unordered pair
	if err := db.Model(ConnectionRequest{}).
		Where(fmt.Sprintf("status IN ('%s', '%s')", ConnectionPending, ConnectionAccepted)).
		AddUniqueIndex(IndexConnectionRequestLivePair, "pair_key").Error; err != nil {
		return err
	}

	return db.Model(Actor{}).
		AddIndex(IndexActorLatitudeLongitude, "latitude", "longitude").Error
}
