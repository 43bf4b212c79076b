package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vnkhanh/wild-series-backend/forms"
	"github.com/vnkhanh/wild-series-backend/middleware"
	"github.com/vnkhanh/wild-series-backend/models"
)

func episodePath(p *models.Program, s *models.Season, e *models.Episode) string {
	return seasonPath(p, s) + "/episodes/" + e.Slug
}

// NewEpisode adds an episode to a season of a program the caller owns.
func (ctl *Controller) NewEpisode(c *gin.Context) {
	program, _, err := ctl.ownedProgram(c)
	if err != nil {
		ctl.respondError(c, err)
		return
	}
	ctx := c.Request.Context()
	number, err := paramInt(c, "number")
	if err != nil {
		ctl.respondError(c, err)
		return
	}
	season, err := ctl.catalog.SeasonByNumber(ctx, program.ID, number)
	if err != nil {
		ctl.respondError(c, err)
		return
	}
	var form forms.EpisodeForm
	if err := bind(c, &form); err != nil {
		ctl.respondError(c, err)
		return
	}

	episode := &models.Episode{}
	form.ApplyTo(episode, season)
	if episode.Slug == "" {
		ctl.respondError(c, forms.Errors{"title": "Tiêu đề phải chứa ít nhất một chữ cái hoặc chữ số"}.Err())
		return
	}

	taken, err := ctl.catalog.EpisodeSlugTaken(ctx, program.ID, episode.Slug)
	if err != nil {
		ctl.respondError(c, err)
		return
	}
	if taken {
		ctl.respondError(c, forms.Errors{"title": "Tập phim này đã tồn tại"}.Err())
		return
	}

	if err := ctl.catalog.CreateEpisode(ctx, episode); err != nil {
		ctl.respondError(c, err)
		return
	}
	redirect(c, episodePath(program, season, episode))
}

func (ctl *Controller) programSeasonEpisode(c *gin.Context) (*models.Program, *models.Season, *models.Episode, error) {
	program, season, err := ctl.programSeason(c)
	if err != nil {
		return nil, nil, nil, err
	}
	episode, err := ctl.catalog.EpisodeBySlug(c.Request.Context(), season.ID, c.Param("episode"))
	if err != nil {
		return nil, nil, nil, err
	}
	return program, season, episode, nil
}

// ShowEpisode returns the episode and its comments, oldest first.
func (ctl *Controller) ShowEpisode(c *gin.Context) {
	program, season, episode, err := ctl.programSeasonEpisode(c)
	if err != nil {
		ctl.respondError(c, err)
		return
	}
	comments, err := ctl.catalog.CommentsOf(c.Request.Context(), episode.ID)
	if err != nil {
		ctl.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"program":  program,
		"season":   season,
		"episode":  episode,
		"comments": comments,
	})
}

// PostComment stores a comment on the episode. The author is always the
// authenticated caller, whatever the payload says.
func (ctl *Controller) PostComment(c *gin.Context) {
	user, err := requireUser(c)
	if err != nil {
		ctl.respondError(c, err)
		return
	}
	program, season, episode, err := ctl.programSeasonEpisode(c)
	if err != nil {
		ctl.respondError(c, err)
		return
	}
	var form forms.CommentForm
	if err := bind(c, &form); err != nil {
		ctl.respondError(c, err)
		return
	}

	comment := &models.Comment{}
	form.ApplyTo(comment)
	comment.SetEpisode(episode)
	comment.SetAuthor(user)

	if err := ctl.catalog.CreateComment(c.Request.Context(), comment); err != nil {
		ctl.respondError(c, err)
		return
	}
	middleware.Logger(c, ctl.log).Info("comment posted",
		zap.Uint("episode_id", episode.ID),
		zap.Uint("comment_id", comment.ID),
	)
	ctl.hub.CommentPosted(comment)

	redirect(c, episodePath(program, season, episode))
}
