package lesson

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router gin.IRoutes, gate Gate, generator Generator, upgradeURL string) {
	h := &handler{gate: gate, generator: generator, upgradeURL: upgradeURL}

	router.POST("/generate-lesson", h.GenerateHandler)
	router.POST("/generate-lesson/refine", h.RefineHandler)
}
