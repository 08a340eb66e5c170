package api

import (
	"net/http"

	"github.com/RichardKnop/machinery/v1/tasks"
	"github.com/gin-gonic/gin"

	"github.com/bitmark-inc/autonomy-nearby/consts"
)

// adminExpireRequests is an internal only api to trigger the task to
// check expired help requests. Without a task queue the sweep runs inline.
func (s *Server) adminExpireRequests(c *gin.Context) {
	if s.background == nil {
		count, err := s.registry.Sweep(c)
		if shouldInterupt(err, c) {
			return
		}
		c.JSON(http.StatusOK, gin.H{"result": "OK", "expired": count})
		return
	}

	if _, err := s.background.SendTaskWithContext(c, &tasks.Signature{
		Name: consts.TaskExpireHelpRequests,
	}); err != nil {
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": "OK"})
}
