package schema

import (
	"time"
)

type HelpKind string

const (
	HelpNeed  HelpKind = "NEED"
	HelpOffer HelpKind = "OFFER"
)

func (k HelpKind) Valid() bool {
	return k == HelpNeed || k == HelpOffer
}

type HelpStatus string

const (
	HelpActive   HelpStatus = "ACTIVE"
	HelpResolved HelpStatus = "RESOLVED"
	HelpExpired  HelpStatus = "EXPIRED"
)

type ResponseStatus string

const (
	ResponsePending  ResponseStatus = "PENDING"
	ResponseAccepted ResponseStatus = "ACCEPTED"
)

// HelpRequest is a short-lived broadcast of a need or an offer around a point.
// Status is the stored value; readers must go through EffectiveStatus.
type HelpRequest struct {
	ID                 string     `json:"id" gorm:"primary_key"`
	AuthorID           string     `json:"author_id" gorm:"not null;index"`
	Kind               HelpKind   `json:"kind" gorm:"not null"`
	Category           string     `json:"category" gorm:"not null"`
	Description        string     `json:"description"`
	VoiceRef           *string    `json:"voice_ref,omitempty"`
	Latitude           float64    `json:"latitude"`
	Longitude          float64    `json:"longitude"`
	Status             HelpStatus `json:"status" gorm:"not null;index"`
	AcceptedResponseID *string    `json:"accepted_response_id,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
	ExpiresAt          time.Time  `json:"expires_at" gorm:"not null"`
	ResolvedAt         *time.Time `json:"resolved_at,omitempty"`
}

func (h HelpRequest) Location() Location {
	return Location{
		Latitude:  h.Latitude,
		Longitude: h.Longitude,
	}
}

// EffectiveStatus combines the stored status with the wall clock. A stored
// ACTIVE row past its expiry reads as EXPIRED whether or not a sweep ran.
func (h HelpRequest) EffectiveStatus(now time.Time) HelpStatus {
	switch h.Status {
	case HelpResolved, HelpExpired:
		return h.Status
	}

	if !now.Before(h.ExpiresAt) {
		return HelpExpired
	}
	return HelpActive
}

// Effective returns a copy carrying the effective status
func (h HelpRequest) Effective(now time.Time) HelpRequest {
	h.Status = h.EffectiveStatus(now)
	return h
}

type HelpResponse struct {
	ID         string         `json:"id" gorm:"primary_key"`
	RequestID  string         `json:"request_id" gorm:"not null;index"`
	HelperID   string         `json:"helper_id" gorm:"not null;index"`
	Message    string         `json:"message,omitempty"`
	Status     ResponseStatus `json:"status" gorm:"not null"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	AcceptedAt *time.Time     `json:"accepted_at,omitempty"`
}
