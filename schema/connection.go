package schema

import (
	"time"
)

type ConnectionStatus string

const (
	ConnectionPending  ConnectionStatus = "PENDING"
	ConnectionAccepted ConnectionStatus = "ACCEPTED"
	ConnectionRejected ConnectionStatus = "REJECTED"
)

type ConnectionAction string

const (
	ConnectionAccept ConnectionAction = "ACCEPT"
	ConnectionReject ConnectionAction = "REJECT"
)

// Status maps an action to the terminal status it produces
func (a ConnectionAction) Status() (ConnectionStatus, bool) {
	switch a {
	case ConnectionAccept:
		return ConnectionAccepted, true
	case ConnectionReject:
		return ConnectionRejected, true
	}
	return "", false
}

// ConnectionRequest is a directory connection between two actors. PairKey is
// the same for both directions so the store can keep one live row per pair.
type ConnectionRequest struct {
	ID          string           `json:"id" gorm:"primary_key"`
	SenderID    string           `json:"sender_id" gorm:"not null;index"`
	ReceiverID  string           `json:"receiver_id" gorm:"not null;index"`
	PairKey     string           `json:"-" gorm:"not null"`
	Status      ConnectionStatus `json:"status" gorm:"not null"`
	Message     string           `json:"message,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	RespondedAt *time.Time       `json:"responded_at,omitempty"`
}

// PairKey returns an order independent key of two actor ids
func PairKey(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + ":" + b
}

// Peer returns the other side of the request for the given actor
func (c ConnectionRequest) Peer(actorID string) string {
	if c.SenderID == actorID {
		return c.ReceiverID
	}
	return c.SenderID
}
