package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bitmark-inc/autonomy-nearby/schema"
)

func (s *Server) sendConnectionRequest(c *gin.Context) {
	var params struct {
		ReceiverID string `json:"receiver_id"`
		Message    string `json:"message"`
	}

	if err := c.BindJSON(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorCannotParseRequest, err)
		return
	}

	request, err := s.connections.SendRequest(c, c.GetString("requester"), params.ReceiverID, params.Message)
	if err != nil {
		abortWithNearbyError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result": request,
	})
}

func (s *Server) respondConnectionRequest(c *gin.Context) {
	var params struct {
		Action schema.ConnectionAction `json:"action"`
	}

	if err := c.BindJSON(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorCannotParseRequest, err)
		return
	}

	request, err := s.connections.Respond(c, c.Param("connectionID"), c.GetString("requester"), params.Action)
	if err != nil {
		abortWithNearbyError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result": request,
	})
}

func (s *Server) connectionInbox(c *gin.Context) {
	requests, err := s.connections.ListInbox(c, c.GetString("requester"))
	if err != nil {
		abortWithNearbyError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result": requests,
	})
}

func (s *Server) connectionOutbox(c *gin.Context) {
	requests, err := s.connections.ListOutbox(c, c.GetString("requester"))
	if err != nil {
		abortWithNearbyError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result": requests,
	})
}

// network is the API for the actors connected to the requester
func (s *Server) network(c *gin.Context) {
	peers, err := s.connections.ListNetwork(c, c.GetString("requester"))
	if err != nil {
		abortWithNearbyError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result": peers,
	})
}
