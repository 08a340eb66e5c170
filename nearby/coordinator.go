package nearby

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/bitmark-inc/autonomy-nearby/consts"
	"github.com/bitmark-inc/autonomy-nearby/schema"
	"github.com/bitmark-inc/autonomy-nearby/store"
)

// AcceptResult is returned to the author of a request after a successful accept
type AcceptResult struct {
	Response      schema.HelpResponse `json:"response"`
	ContactHandle string              `json:"contact_handle"`
}

// HelperView is what a helper polls to follow their responses. Superseded
// responses stay PENDING but can never be accepted.
type HelperView struct {
	Response      schema.HelpResponse `json:"response"`
	RequestStatus schema.HelpStatus   `json:"request_status"`
	Superseded    bool                `json:"superseded"`
}

// Coordinator collects responses and hands a request to exactly one helper
type Coordinator struct {
	store     ResponseStore
	contacts  ContactDirectory
	deliverer ContactDeliverer
	clock     Clock
}

// NewCoordinator returns a coordinator, deliverer may be nil
func NewCoordinator(s ResponseStore, contacts ContactDirectory, deliverer ContactDeliverer) *Coordinator {
	return &Coordinator{
		store:     s,
		contacts:  contacts,
		deliverer: deliverer,
		clock:     SystemClock,
	}
}

func (c *Coordinator) SetClock(clock Clock) {
	c.clock = clock
}

func (c *Coordinator) getHelp(helpID string) (*schema.HelpRequest, error) {
	help, err := c.store.GetHelp(helpID)
	if err != nil {
		if err == store.ErrRecordNotFound {
			return nil, newError(ErrNotFound, "help request %s", helpID)
		}
		return nil, err
	}
	return help, nil
}

// Respond registers a helper on a running request. Each helper responds at
// most once per request.
func (c *Coordinator) Respond(ctx context.Context, helpID, helperID, message string) (*schema.HelpResponse, error) {
	message = strings.TrimSpace(message)

	if helperID == "" {
		return nil, newError(ErrValidation, "helper id is required")
	}
	if len(message) > consts.MaxMessageLength {
		return nil, newError(ErrValidation, "message is longer than %d", consts.MaxMessageLength)
	}

	help, err := c.getHelp(helpID)
	if err != nil {
		return nil, err
	}

	now := c.clock.now()
	if status := help.EffectiveStatus(now); status != schema.HelpActive {
		return nil, newError(ErrRequestClosed, "help request %s is %s", helpID, status)
	}

	if help.AuthorID == helperID {
		return nil, newError(ErrUnauthorized, "authors cannot respond to their own help request")
	}

	response := &schema.HelpResponse{
		ID:        uuid.New().String(),
		RequestID: help.ID,
		HelperID:  helperID,
		Message:   message,
		Status:    schema.ResponsePending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := c.store.CreateHelpResponse(response); err != nil {
		if err == store.ErrDuplicate {
			return nil, newError(ErrConflict, "helper %s already responded to help request %s", helperID, helpID)
		}
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"help_id":     help.ID,
		"response_id": response.ID,
	}).Info("help response created")

	return response, nil
}

// Accept engages the helper of a response. The transition is a single
// conditional write in the store scoped by the request, so of several
// concurrent accepts on sibling responses exactly one succeeds and the rest
// get ErrAlreadyAccepted without changing any state.
func (c *Coordinator) Accept(ctx context.Context, responseID, actorID string) (*AcceptResult, error) {
	response, err := c.store.GetHelpResponse(responseID)
	if err != nil {
		if err == store.ErrRecordNotFound {
			return nil, newError(ErrNotFound, "help response %s", responseID)
		}
		return nil, err
	}

	help, err := c.getHelp(response.RequestID)
	if err != nil {
		return nil, err
	}

	if help.AuthorID != actorID {
		return nil, newError(ErrUnauthorized, "only the author can accept responses of help request %s", help.ID)
	}

	now := c.clock.now()
	if status := help.EffectiveStatus(now); status != schema.HelpActive {
		return nil, newError(ErrRequestClosed, "help request %s is %s", help.ID, status)
	}

	if help.AcceptedResponseID != nil {
		return nil, newError(ErrAlreadyAccepted, "help request %s already accepted a response", help.ID)
	}

	// the handle is composed before the write so a failure leaves no trace
	handle, err := c.contacts.ContactHandle(ctx, response.HelperID)
	if err != nil {
		if err == store.ErrRecordNotFound {
			return nil, newError(ErrUnreachable, "helper %s is unknown", response.HelperID)
		}
		if errors.Is(err, ErrUnreachable) {
			return nil, fmt.Errorf("helper %s: %w", response.HelperID, err)
		}
		return nil, err
	}

	if err := c.store.AcceptHelpResponse(help.ID, response.ID, now); err != nil {
		if err == store.ErrStaleState {
			return nil, c.lostAcceptance(help.ID)
		}
		return nil, err
	}

	response.Status = schema.ResponseAccepted
	response.AcceptedAt = &now

	log.WithFields(logrus.Fields{
		"help_id":     help.ID,
		"response_id": response.ID,
	}).Info("help response accepted")

	if c.deliverer != nil {
		if err := c.deliverer.DeliverContact(ctx, help.AuthorID, handle); err != nil {
			log.WithField("help_id", help.ID).WithError(err).Warn("deliver contact")
		}
	}

	return &AcceptResult{
		Response:      *response,
		ContactHandle: handle,
	}, nil
}

// lostAcceptance explains why a conditional accept matched nothing
func (c *Coordinator) lostAcceptance(helpID string) error {
	help, err := c.getHelp(helpID)
	if err != nil {
		return err
	}

	if help.AcceptedResponseID == nil {
		if status := help.EffectiveStatus(c.clock.now()); status != schema.HelpActive {
			return newError(ErrRequestClosed, "help request %s is %s", helpID, status)
		}
	}

	return newError(ErrAlreadyAccepted, "help request %s already accepted a response", helpID)
}

// ListMine returns the responses of a helper with the state of their requests
func (c *Coordinator) ListMine(ctx context.Context, helperID string) ([]HelperView, error) {
	responses, err := c.store.ListHelpResponsesByHelper(helperID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(responses))
	for _, r := range responses {
		ids = append(ids, r.RequestID)
	}

	helps, err := c.store.GetHelps(ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]schema.HelpRequest, len(helps))
	for _, h := range helps {
		byID[h.ID] = h
	}

	now := c.clock.now()
	views := make([]HelperView, 0, len(responses))
	for _, r := range responses {
		help, ok := byID[r.RequestID]
		if !ok {
			continue
		}

		views = append(views, HelperView{
			Response:      r,
			RequestStatus: help.EffectiveStatus(now),
			Superseded:    help.AcceptedResponseID != nil && *help.AcceptedResponseID != r.ID,
		})
	}

	return views, nil
}
