package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (ctl *Controller) ListActors(c *gin.Context) {
	actors, err := ctl.catalog.Actors(c.Request.Context())
	if err != nil {
		ctl.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"actors": actors})
}

func (ctl *Controller) ShowActor(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		ctl.respondError(c, err)
		return
	}
	ctx := c.Request.Context()

	actor, err := ctl.catalog.ActorByID(ctx, id)
	if err != nil {
		ctl.respondError(c, err)
		return
	}
	programs, err := ctl.catalog.ProgramsOfActor(ctx, actor.ID)
	if err != nil {
		ctl.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"actor": actor, "programs": programs})
}
