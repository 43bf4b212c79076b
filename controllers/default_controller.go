package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vnkhanh/wild-series-backend/repository"
)

// Home returns the latest programs.
func (ctl *Controller) Home(c *gin.Context) {
	programs, err := ctl.catalog.LatestPrograms(c.Request.Context(), 0, repository.LatestCount)
	if err != nil {
		ctl.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"programs": programs})
}

func (ctl *Controller) MyProfile(c *gin.Context) {
	user, err := requireUser(c)
	if err != nil {
		ctl.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": userPayload(user)})
}
