package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/bitmark-inc/autonomy-nearby/consts"
	"github.com/bitmark-inc/autonomy-nearby/schema"
)

// parseGeoPosition will parse latitude and longitude from the geo-position string
func parseGeoPosition(geoPosition string) (float64, float64, error) {
	positions := strings.Split(geoPosition, ";")

	if len(positions) != 2 {
		return 0, 0, fmt.Errorf("invalid geo-position value")
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(positions[0]), 64)
	if err != nil {
		return 0, 0, err
	}

	long, err := strconv.ParseFloat(strings.TrimSpace(positions[1]), 64)
	if err != nil {
		return 0, 0, err
	}

	return lat, long, nil
}

// updateGeoPositionMiddleware is a middleware to store geo-position for every
// api requests from actors
func (s *Server) updateGeoPositionMiddleware(c *gin.Context) {
	gp := c.GetHeader("Geo-Position")
	actorID := c.GetString("requester")

	if gp != "" && actorID != "" {
		if lat, long, err := parseGeoPosition(gp); err == nil {
			loc := schema.Location{Latitude: lat, Longitude: long}
			if err := s.discovery.UpdateLocation(c, actorID, &loc); err != nil {
				c.Error(err)
			} else {
				c.Set("position", loc)
			}
		} else {
			c.Error(err)
		}
	}
	c.Next()
}

// currentLocation returns the position reported with this request, or the
// last known position of the actor
func currentLocation(c *gin.Context) *schema.Location {
	if v, ok := c.Get("position"); ok {
		if loc, ok := v.(schema.Location); ok {
			return &loc
		}
	}

	if v, ok := c.Get("actor"); ok {
		if actor, ok := v.(*schema.Actor); ok {
			return actor.Location()
		}
	}

	return nil
}

// resolveLocation picks the location of a request in the order: explicit
// coordinates, an address to geocode, the current location of the actor.
// It aborts the request and returns false when none is usable.
func (s *Server) resolveLocation(c *gin.Context, explicit *schema.Location, address string) (schema.Location, bool) {
	if explicit != nil {
		return *explicit, true
	}

	if address = strings.TrimSpace(address); address != "" {
		if s.geocoder == nil {
			abortWithEncoding(c, http.StatusBadRequest, errorAddressNotFound)
			return schema.Location{}, false
		}

		resolved, err := s.geocoder.ResolveCoordinates(c, address)
		if err != nil {
			abortWithEncoding(c, http.StatusBadRequest, errorAddressNotFound, err)
			return schema.Location{}, false
		}
		return resolved.Location, true
	}

	if loc := currentLocation(c); loc != nil {
		return *loc, true
	}

	abortWithEncoding(c, http.StatusBadRequest, errorUnknownActorLocation)
	return schema.Location{}, false
}

// searchOrigin reads the origin and radius of a proximity query. Explicit
// `lat` and `lng` query values take precedence over `address`.
func (s *Server) searchOrigin(c *gin.Context) (schema.Location, float64, bool) {
	var params struct {
		Latitude  *float64 `form:"lat"`
		Longitude *float64 `form:"lng"`
		Address   string   `form:"address"`
		Radius    *float64 `form:"radius"`
	}

	if err := c.ShouldBindQuery(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return schema.Location{}, 0, false
	}

	radius := consts.DefaultSearchRadiusKm
	if params.Radius != nil {
		radius = *params.Radius
	}

	var explicit *schema.Location
	if params.Latitude != nil || params.Longitude != nil {
		if params.Latitude == nil || params.Longitude == nil {
			abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters)
			return schema.Location{}, 0, false
		}
		explicit = &schema.Location{Latitude: *params.Latitude, Longitude: *params.Longitude}
	}

	origin, ok := s.resolveLocation(c, explicit, params.Address)
	return origin, radius, ok
}
