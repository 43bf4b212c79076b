package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func (ctl *Controller) HealthCheck(c *gin.Context) {
	// Mặc định trạng thái OK
	response := gin.H{
		"status":    "ok",
		"timestamp": time.Now().Unix(),
		"db":        "ok",
		"websocket": ctl.hub.GetStats(),
	}

	sqlDB, err := ctl.catalog.DB().DB()
	if err != nil {
		response["db"] = "error: cannot get DB instance"
		response["status"] = "degraded"
		c.JSON(http.StatusServiceUnavailable, response)
		return
	}

	if err := sqlDB.PingContext(c.Request.Context()); err != nil {
		response["db"] = "error: cannot connect to DB"
		response["status"] = "degraded"
		c.JSON(http.StatusServiceUnavailable, response)
		return
	}

	c.JSON(http.StatusOK, response)
}
