package nearby

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/bitmark-inc/autonomy-nearby/consts"
	"github.com/bitmark-inc/autonomy-nearby/schema"
	"github.com/bitmark-inc/autonomy-nearby/store"
)

// Connections runs the directory connection workflow between two actors
type Connections struct {
	store  ConnectionStore
	actors ActorDirectory
	clock  Clock
}

func NewConnections(s ConnectionStore, actors ActorDirectory) *Connections {
	return &Connections{
		store:  s,
		actors: actors,
		clock:  SystemClock,
	}
}

func (c *Connections) SetClock(clock Clock) {
	c.clock = clock
}

// SendRequest asks receiverID to connect. Only one PENDING or ACCEPTED
// request may exist per pair, whichever side sent it.
func (c *Connections) SendRequest(ctx context.Context, senderID, receiverID, message string) (*schema.ConnectionRequest, error) {
	message = strings.TrimSpace(message)

	switch {
	case senderID == "" || receiverID == "":
		return nil, newError(ErrValidation, "sender and receiver are required")
	case senderID == receiverID:
		return nil, newError(ErrValidation, "cannot connect to oneself")
	case len(message) > consts.MaxMessageLength:
		return nil, newError(ErrValidation, "message is longer than %d", consts.MaxMessageLength)
	}

	if _, err := c.actors.GetActor(receiverID); err != nil {
		if err == store.ErrRecordNotFound {
			return nil, newError(ErrNotFound, "actor %s", receiverID)
		}
		return nil, err
	}

	now := c.clock.now()
	request := &schema.ConnectionRequest{
		ID:         uuid.New().String(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Status:     schema.ConnectionPending,
		Message:    message,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := c.store.CreateConnectionRequest(request); err != nil {
		if err == store.ErrDuplicate {
			return nil, newError(ErrConflict, "a connection between %s and %s is already pending or accepted", senderID, receiverID)
		}
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"connection_id": request.ID,
	}).Info("connection request sent")

	return request, nil
}

// Respond accepts or rejects a pending request. Only the receiver may answer
// and the answer is final.
func (c *Connections) Respond(ctx context.Context, requestID, actorID string, action schema.ConnectionAction) (*schema.ConnectionRequest, error) {
	status, ok := action.Status()
	if !ok {
		return nil, newError(ErrValidation, "action must be %s or %s", schema.ConnectionAccept, schema.ConnectionReject)
	}

	request, err := c.store.GetConnectionRequest(requestID)
	if err != nil {
		if err == store.ErrRecordNotFound {
			return nil, newError(ErrNotFound, "connection request %s", requestID)
		}
		return nil, err
	}

	switch actorID {
	case request.ReceiverID:
	case request.SenderID:
		return nil, newError(ErrUnauthorized, "only the receiver can answer connection request %s", requestID)
	default:
		return nil, newError(ErrNotFound, "connection request %s", requestID)
	}

	if request.Status != schema.ConnectionPending {
		return nil, newError(ErrConflict, "connection request %s is already %s", requestID, request.Status)
	}

	now := c.clock.now()
	if err := c.store.RespondConnectionRequest(requestID, status, now); err != nil {
		if err == store.ErrStaleState {
			return nil, newError(ErrConflict, "connection request %s was answered concurrently", requestID)
		}
		return nil, err
	}

	request.Status = status
	request.RespondedAt = &now

	log.WithFields(logrus.Fields{
		"connection_id": request.ID,
		"status":        status,
	}).Info("connection request answered")

	return request, nil
}

// ListInbox returns the pending requests received by an actor
func (c *Connections) ListInbox(ctx context.Context, actorID string) ([]schema.ConnectionRequest, error) {
	return c.store.ListIncomingConnectionRequests(actorID)
}

// ListOutbox returns the pending requests sent by an actor
func (c *Connections) ListOutbox(ctx context.Context, actorID string) ([]schema.ConnectionRequest, error) {
	return c.store.ListOutgoingConnectionRequests(actorID)
}

// ListNetwork returns the actors connected to actorID
func (c *Connections) ListNetwork(ctx context.Context, actorID string) ([]schema.ActorSummary, error) {
	peers, err := c.store.ListConnectionPeers(actorID)
	if err != nil {
		return nil, err
	}

	actors, err := c.actors.GetActors(peers)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]schema.Actor, len(actors))
	for _, a := range actors {
		byID[a.ID] = a
	}

	network := make([]schema.ActorSummary, 0, len(peers))
	for _, id := range peers {
		if a, ok := byID[id]; ok {
			network = append(network, a.Summary())
		}
	}

	return network, nil
}
