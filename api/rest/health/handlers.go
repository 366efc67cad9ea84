package health

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const serviceName = "AI Lesson Planner"

// Handler godoc
// @Summary Health check
// @Description Reports that the service is online
// @Tags health
// @Produce json
// @Success 200 {object} Response
// @Router /health [get]
func Handler(c *gin.Context) {
	c.JSON(http.StatusOK, Response{
		Status:  "online",
		Service: serviceName,
	})
}

// responds with pong for testing
func PingHandler(c *gin.Context) {
	c.JSON(http.StatusOK, PingResponse{Message: "pong"})
}
