package store

import (
	"time"

	"github.com/bitmark-inc/autonomy-nearby/schema"
)

// CreateConnectionRequest inserts a PENDING connection request. The partial
// unique index on pair_key rejects it with ErrDuplicate while any request of
// the same pair, in either direction, is PENDING or ACCEPTED.
func (s *AutonomyStore) CreateConnectionRequest(c *schema.ConnectionRequest) error {
	c.PairKey = schema.PairKey(c.SenderID, c.ReceiverID)
	return translate(s.ormDB.Create(c).Error)
}

// GetConnectionRequest returns a connection request by id
func (s *AutonomyStore) GetConnectionRequest(requestID string) (*schema.ConnectionRequest, error) {
	var c schema.ConnectionRequest
	if err := s.ormDB.Where("id = ?", requestID).First(&c).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

// RespondConnectionRequest moves a PENDING request to a terminal status
func (s *AutonomyStore) RespondConnectionRequest(requestID string, status schema.ConnectionStatus, at time.Time) error {
	result := s.ormDB.Model(schema.ConnectionRequest{}).
		Where("id = ? AND status = ?", requestID, schema.ConnectionPending).
		Updates(map[string]interface{}{
			"status":       status,
			"responded_at": at,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrStaleState
	}

	return nil
}

// ListIncomingConnectionRequests returns PENDING requests received by an actor
func (s *AutonomyStore) ListIncomingConnectionRequests(actorID string) ([]schema.ConnectionRequest, error) {
	requests := []schema.ConnectionRequest{}
	if err := s.ormDB.Where("receiver_id = ? AND status = ?", actorID, schema.ConnectionPending).
		Order("created_at DESC").Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// ListOutgoingConnectionRequests returns PENDING requests sent by an actor
func (s *AutonomyStore) ListOutgoingConnectionRequests(actorID string) ([]schema.ConnectionRequest, error) {
	requests := []schema.ConnectionRequest{}
	if err := s.ormDB.Where("sender_id = ? AND status = ?", actorID, schema.ConnectionPending).
		Order("created_at DESC").Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// ListConnectionPeers returns the ids of every actor connected to actorID
func (s *AutonomyStore) ListConnectionPeers(actorID string) ([]string, error) {
	var accepted []schema.ConnectionRequest
	if err := s.ormDB.Where("(sender_id = ? OR receiver_id = ?) AND status = ?",
		actorID, actorID, schema.ConnectionAccepted).
		Order("responded_at DESC").Find(&accepted).Error; err != nil {
		return nil, err
	}

	peers := make([]string, 0, len(accepted))
	for _, c := range accepted {
		peers = append(peers, c.Peer(actorID))
	}
	return peers, nil
}
