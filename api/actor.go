package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bitmark-inc/autonomy-nearby/schema"
)

// actorDetail is the API to query the requesting actor
func (s *Server) actorDetail(c *gin.Context) {
	a := c.MustGet("actor")
	actor, ok := a.(*schema.Actor)
	if !ok {
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result": gin.H{
			"actor":    actor.Summary(),
			"location": currentLocation(c),
		},
	})
}

// searchNearbyActors is the API to list active actors around a point
func (s *Server) searchNearbyActors(c *gin.Context) {
	origin, radius, ok := s.searchOrigin(c)
	if !ok {
		return
	}

	actors, err := s.discovery.Search(c, origin, radius, schema.Role(c.Query("role")), c.GetString("requester"))
	if err != nil {
		abortWithNearbyError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result": actors,
	})
}
