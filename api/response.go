package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// answerHelp is the API for a helper to respond to a request
func (s *Server) answerHelp(c *gin.Context) {
	var params struct {
		Message string `json:"message"`
	}

	// the body is optional
	if c.Request.ContentLength != 0 {
		if err := c.BindJSON(&params); err != nil {
			abortWithEncoding(c, http.StatusBadRequest, errorCannotParseRequest, err)
			return
		}
	}

	response, err := s.coordinator.Respond(c, c.Param("helpID"), c.GetString("requester"), params.Message)
	if err != nil {
		abortWithNearbyError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result": response,
	})
}

// acceptHelpResponse is the API for the author to engage one helper
func (s *Server) acceptHelpResponse(c *gin.Context) {
	result, err := s.coordinator.Accept(c, c.Param("responseID"), c.GetString("requester"))
	if err != nil {
		abortWithNearbyError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result": result,
	})
}

// ownResponses is the API for a helper to follow their responses
func (s *Server) ownResponses(c *gin.Context) {
	views, err := s.coordinator.ListMine(c, c.GetString("requester"))
	if err != nil {
		abortWithNearbyError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result": views,
	})
}
