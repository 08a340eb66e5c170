package nearby

import (
	"context"
	"math"
	"sort"

	"github.com/bitmark-inc/autonomy-nearby/consts"
	"github.com/bitmark-inc/autonomy-nearby/geo"
	"github.com/bitmark-inc/autonomy-nearby/schema"
	"github.com/bitmark-inc/autonomy-nearby/store"
)

// NearbyActor is an actor summary with its distance to the search origin
type NearbyActor struct {
	schema.ActorSummary
	DistanceKm float64 `json:"distance_km"`
}

// Discovery searches actors around a point
type Discovery struct {
	locations LocationStore
}

func NewDiscovery(locations LocationStore) *Discovery {
	return &Discovery{
		locations: locations,
	}
}

func validateSearch(origin schema.Location, radiusKm float64) error {
	if err := origin.Validate(); err != nil {
		return newError(ErrValidation, "origin: %s", err)
	}

	if math.IsNaN(radiusKm) || radiusKm <= 0 || radiusKm > consts.MaxSearchRadiusKm {
		return newError(ErrValidation, "radius must be within (0, %v] km", consts.MaxSearchRadiusKm)
	}

	return nil
}

// Search returns active actors within radiusKm of origin, nearest first.
// The role filter is pushed down to the location store; excludeSelf removes
// the searching actor from the result.
func (d *Discovery) Search(ctx context.Context, origin schema.Location, radiusKm float64, role schema.Role, excludeSelf string) ([]NearbyActor, error) {
	if err := validateSearch(origin, radiusKm); err != nil {
		return nil, err
	}

	candidates, err := d.locations.ActorsWithin(origin, radiusKm, role)
	if err != nil {
		return nil, err
	}

	result := make([]NearbyActor, 0, len(candidates))
	for _, a := range candidates {
		if a.ID == excludeSelf || !a.Active {
			continue
		}

		if role != "" && a.Role != role {
			continue
		}

		loc := a.Location()
		if loc == nil {
			continue
		}

		distance, ok := geo.Within(origin, *loc, radiusKm)
		if !ok {
			continue
		}

		result = append(result, NearbyActor{
			ActorSummary: a.Summary(),
			DistanceKm:   distance,
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

// UpdateLocation records the latest position of an actor, nil clears it
func (d *Discovery) UpdateLocation(ctx context.Context, actorID string, loc *schema.Location) error {
	if actorID == "" {
		return newError(ErrValidation, "actor id is required")
	}

	if loc != nil {
		if err := loc.Validate(); err != nil {
			return newError(ErrValidation, "location: %s", err)
		}
	}

	if err := d.locations.UpdateActorLocation(actorID, loc); err != nil {
		if err == store.ErrRecordNotFound {
			return newError(ErrNotFound, "actor %s", actorID)
		}
		return err
	}

	return nil
}
