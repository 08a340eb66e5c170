package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bitmark-inc/autonomy-nearby/nearby"
	"github.com/bitmark-inc/autonomy-nearby/schema"
)

// askForHelp is the API for broadcasting a need or an offer around a point
func (s *Server) askForHelp(c *gin.Context) {
	requester := c.GetString("requester")

	var params struct {
		Kind        schema.HelpKind  `json:"kind"`
		Category    string           `json:"category"`
		Description string           `json:"description"`
		VoiceRef    *string          `json:"voice_ref"`
		Location    *schema.Location `json:"location"`
		Address     string           `json:"address"`
	}

	if err := c.BindJSON(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorCannotParseRequest, err)
		return
	}

	loc, ok := s.resolveLocation(c, params.Location, params.Address)
	if !ok {
		return
	}

	help, err := s.registry.Create(c, nearby.CreateHelp{
		AuthorID:    requester,
		Kind:        params.Kind,
		Category:    params.Category,
		Description: params.Description,
		VoiceRef:    params.VoiceRef,
		Location:    loc,
	})
	if err != nil {
		abortWithNearbyError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result": help,
	})
}

// listNearbyHelps is the API for the running help requests around a point
func (s *Server) listNearbyHelps(c *gin.Context) {
	origin, radius, ok := s.searchOrigin(c)
	if !ok {
		return
	}

	helps, err := s.registry.ListActiveNearby(c, origin, radius)
	if err != nil {
		abortWithNearbyError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result": helps,
	})
}

func (s *Server) getHelp(c *gin.Context) {
	help, err := s.registry.Get(c, c.Param("helpID"))
	if err != nil {
		abortWithNearbyError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result": help,
	})
}

// resolveHelp is the API for the author to close a request
func (s *Server) resolveHelp(c *gin.Context) {
	if err := s.registry.Resolve(c, c.Param("helpID"), c.GetString("requester")); err != nil {
		abortWithNearbyError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": "OK"})
}

// ownHelp is the API for the author to follow a running request
func (s *Server) ownHelp(c *gin.Context) {
	own, err := s.registry.GetOwn(c, c.GetString("requester"))
	if err != nil {
		abortWithNearbyError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result": own,
	})
}
