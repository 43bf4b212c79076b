package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vnkhanh/wild-series-backend/forms"
	"github.com/vnkhanh/wild-series-backend/models"
)

func seasonPath(p *models.Program, s *models.Season) string {
	return fmt.Sprintf("%s/seasons/%d", programPath(p), s.Number)
}

// NewSeason adds a season to a program the caller owns.
func (ctl *Controller) NewSeason(c *gin.Context) {
	program, _, err := ctl.ownedProgram(c)
	if err != nil {
		ctl.respondError(c, err)
		return
	}
	var form forms.SeasonForm
	if err := bind(c, &form); err != nil {
		ctl.respondError(c, err)
		return
	}
	ctx := c.Request.Context()

	taken, err := ctl.catalog.SeasonNumberTaken(ctx, program.ID, form.Number)
	if err != nil {
		ctl.respondError(c, err)
		return
	}
	if taken {
		ctl.respondError(c, forms.Errors{"number": "Mùa này đã tồn tại"}.Err())
		return
	}

	season := &models.Season{}
	form.ApplyTo(season, program)
	if err := ctl.catalog.CreateSeason(ctx, season); err != nil {
		ctl.respondError(c, err)
		return
	}
	redirect(c, seasonPath(program, season))
}

// programSeason resolves :program and :number.
func (ctl *Controller) programSeason(c *gin.Context) (*models.Program, *models.Season, error) {
	ctx := c.Request.Context()
	program, err := ctl.catalog.ProgramBySlug(ctx, c.Param("program"))
	if err != nil {
		return nil, nil, err
	}
	number, err := paramInt(c, "number")
	if err != nil {
		return nil, nil, err
	}
	season, err := ctl.catalog.SeasonByNumber(ctx, program.ID, number)
	if err != nil {
		return nil, nil, err
	}
	return program, season, nil
}

func (ctl *Controller) ShowSeason(c *gin.Context) {
	program, season, err := ctl.programSeason(c)
	if err != nil {
		ctl.respondError(c, err)
		return
	}
	episodes, err := ctl.catalog.EpisodesOf(c.Request.Context(), season.ID)
	if err != nil {
		ctl.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"program": program, "season": season, "episodes": episodes})
}
