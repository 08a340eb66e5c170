package nearby

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/bitmark-inc/autonomy-nearby/consts"
	"github.com/bitmark-inc/autonomy-nearby/geo"
	"github.com/bitmark-inc/autonomy-nearby/schema"
	"github.com/bitmark-inc/autonomy-nearby/store"
)

// CreateHelp carries the input of a new broadcast
type CreateHelp struct {
	AuthorID    string
	Kind        schema.HelpKind
	Category    string
	Description string
	VoiceRef    *string
	Location    schema.Location
}

func (c *CreateHelp) normalize() error {
	c.Category = strings.TrimSpace(c.Category)
	c.Description = strings.TrimSpace(c.Description)

	switch {
	case c.AuthorID == "":
		return newError(ErrValidation, "author id is required")
	case !c.Kind.Valid():
		return newError(ErrValidation, "kind must be %s or %s", schema.HelpNeed, schema.HelpOffer)
	case c.Category == "":
		return newError(ErrValidation, "category is required")
	case len(c.Category) > consts.MaxCategoryLength:
		return newError(ErrValidation, "category is longer than %d", consts.MaxCategoryLength)
	case len(c.Description) > consts.MaxDescriptionLength:
		return newError(ErrValidation, "description is longer than %d", consts.MaxDescriptionLength)
	}

	if c.VoiceRef != nil && strings.TrimSpace(*c.VoiceRef) == "" {
		c.VoiceRef = nil
	}

	if c.Description == "" && c.VoiceRef == nil {
		return newError(ErrValidation, "description or voice note is required")
	}

	if err := c.Location.Validate(); err != nil {
		return newError(ErrValidation, "location: %s", err)
	}

	return nil
}

// NearbyHelp is a running request with its distance to the viewer
type NearbyHelp struct {
	schema.HelpRequest
	DistanceKm float64 `json:"distance_km"`
}

// OwnHelp is the status view of an author's running request
type OwnHelp struct {
	Request   schema.HelpRequest    `json:"request"`
	Responses []schema.HelpResponse `json:"responses"`
}

// Registry manages the lifecycle of help requests
type Registry struct {
	store     HelpStore
	scheduler ExpiryScheduler
	clock     Clock
}

// NewRegistry returns a registry, scheduler may be nil
func NewRegistry(s HelpStore, scheduler ExpiryScheduler) *Registry {
	return &Registry{
		store:     s,
		scheduler: scheduler,
		clock:     SystemClock,
	}
}

func (r *Registry) SetClock(c Clock) {
	r.clock = c
}

// Create broadcasts a new request valid for consts.HelpRequestTTL. An author
// with a running request gets ErrConflict.
func (r *Registry) Create(ctx context.Context, input CreateHelp) (*schema.HelpRequest, error) {
	if err := input.normalize(); err != nil {
		return nil, err
	}

	now := r.clock.now()
	help := &schema.HelpRequest{
		ID:          uuid.New().String(),
		AuthorID:    input.AuthorID,
		Kind:        input.Kind,
		Category:    input.Category,
		Description: input.Description,
		VoiceRef:    input.VoiceRef,
		Latitude:    input.Location.Latitude,
		Longitude:   input.Location.Longitude,
		Status:      schema.HelpActive,
		CreatedAt:   now,
		UpdatedAt:   now,
		ExpiresAt:   now.Add(consts.HelpRequestTTL),
	}

	if err := r.store.CreateHelp(help, now); err != nil {
		if err == store.ErrDuplicate {
			return nil, newError(ErrConflict, "actor %s already has an active help request", input.AuthorID)
		}
		return nil, err
	}

	log.WithField("help_id", help.ID).Info("help request created")

	if r.scheduler != nil {
		if err := r.scheduler.ScheduleExpiry(ctx, *help); err != nil {
			log.WithField("help_id", help.ID).WithError(err).Warn("schedule help expiry")
		}
	}

	return help, nil
}

// Get returns a request with its effective status
func (r *Registry) Get(ctx context.Context, helpID string) (*schema.HelpRequest, error) {
	help, err := r.store.GetHelp(helpID)
	if err != nil {
		if err == store.ErrRecordNotFound {
			return nil, newError(ErrNotFound, "help request %s", helpID)
		}
		return nil, err
	}

	effective := help.Effective(r.clock.now())
	return &effective, nil
}

// ListActiveNearby returns running requests located within radiusKm of
// origin, nearest first
func (r *Registry) ListActiveNearby(ctx context.Context, origin schema.Location, radiusKm float64) ([]NearbyHelp, error) {
	if err := validateSearch(origin, radiusKm); err != nil {
		return nil, err
	}

	candidates, err := r.store.ListActiveHelpsInBox(geo.BoundingBoxOf(origin, radiusKm))
	if err != nil {
		return nil, err
	}

	now := r.clock.now()
	result := make([]NearbyHelp, 0, len(candidates))
	for _, h := range candidates {
		if h.EffectiveStatus(now) != schema.HelpActive {
			continue
		}

		distance, ok := geo.Within(origin, h.Location(), radiusKm)
		if !ok {
			continue
		}

		result = append(result, NearbyHelp{
			HelpRequest: h.Effective(now),
			DistanceKm:  distance,
		})
	}

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].DistanceKm != result[j].DistanceKm {
			return result[i].DistanceKm < result[j].DistanceKm
		}
		return result[i].ID < result[j].ID
	})

	return result, nil
}

// Resolve closes a running request on behalf of its author
func (r *Registry) Resolve(ctx context.Context, helpID, actorID string) error {
	help, err := r.Get(ctx, helpID)
	if err != nil {
		return err
	}

	if help.AuthorID != actorID {
		return newError(ErrUnauthorized, "only the author can resolve help request %s", helpID)
	}

	if help.Status != schema.HelpActive {
		return newError(ErrRequestClosed, "help request %s is %s", helpID, help.Status)
	}

	if err := r.store.ResolveHelp(helpID, r.clock.now()); err != nil {
		if err == store.ErrStaleState {
			return newError(ErrRequestClosed, "help request %s is no longer active", helpID)
		}
		return err
	}

	log.WithField("help_id", helpID).Info("help request resolved")

	return nil
}

// GetOwn returns the running request of an author with its responses, or
// nil when the author has none
func (r *Registry) GetOwn(ctx context.Context, authorID string) (*OwnHelp, error) {
	now := r.clock.now()

	help, err := r.store.GetActiveHelpByAuthor(authorID, now)
	if err != nil {
		if err == store.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	responses, err := r.store.ListHelpResponses(help.ID)
	if err != nil {
		return nil, err
	}

	return &OwnHelp{
		Request:   help.Effective(now),
		Responses: responses,
	}, nil
}

// Sweep rewrites stored ACTIVE requests past their expiry. Reads never depend
// on it having run.
func (r *Registry) Sweep(ctx context.Context) (int64, error) {
	return r.store.ExpireHelps(r.clock.now())
}

// Expire sweeps a single request. It reports whether this call moved the
// request to EXPIRED.
func (r *Registry) Expire(ctx context.Context, helpID string) (*schema.HelpRequest, bool, error) {
	now := r.clock.now()

	expired := true
	if err := r.store.ExpireHelp(helpID, now); err != nil {
		if err != store.ErrStaleState {
			return nil, false, err
		}
		expired = false
	}

	help, err := r.Get(ctx, helpID)
	if err != nil {
		return nil, false, err
	}

	return help, expired, nil
}
