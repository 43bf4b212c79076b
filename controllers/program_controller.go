package controllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vnkhanh/wild-series-backend/forms"
	"github.com/vnkhanh/wild-series-backend/middleware"
	"github.com/vnkhanh/wild-series-backend/models"
	"github.com/vnkhanh/wild-series-backend/utils"
)

const csrfField = "_token"

func deleteIntention(programID uint) string {
	return "delete" + strconv.FormatUint(uint64(programID), 10)
}

func programPath(p *models.Program) string {
	return "/programs/" + p.Slug
}

// ListPrograms returns every program, or the ones whose title contains
// ?search= when it is set.
func (ctl *Controller) ListPrograms(c *gin.Context) {
	var form forms.SearchProgramForm
	if err := forms.FromBinding(c.ShouldBindQuery(&form)); err != nil {
		ctl.respondError(c, err)
		return
	}

	programs, err := ctl.catalog.SearchPrograms(c.Request.Context(), form.Term())
	if err != nil {
		ctl.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"programs": programs, "search": form.Term()})
}

// resolveProgramForm loads the category and actors the form refers to.
func (ctl *Controller) resolveProgramForm(ctx context.Context, form forms.ProgramForm, fields forms.Errors) (*models.Category, []*models.Actor, error) {
	category, err := ctl.catalog.CategoryByID(ctx, form.CategoryID)
	if errors.Is(err, models.ErrNotFound) {
		fields.Add("category", "Danh mục không tồn tại")
	} else if err != nil {
		return nil, nil, err
	}

	actors, err := ctl.catalog.ActorsByIDs(ctx, form.ActorIDs)
	if errors.Is(err, models.ErrValidation) {
		fields.Add("actors", "Diễn viên không tồn tại")
	} else if err != nil {
		return nil, nil, err
	}
	return category, actors, nil
}

// NewProgram creates a program owned by the caller and announces it by mail.
func (ctl *Controller) NewProgram(c *gin.Context) {
	user, err := requireUser(c)
	if err != nil {
		ctl.respondError(c, err)
		return
	}
	var form forms.ProgramForm
	if err := bind(c, &form); err != nil {
		ctl.respondError(c, err)
		return
	}
	ctx := c.Request.Context()

	fields := forms.Errors{}
	category, actors, err := ctl.resolveProgramForm(ctx, form, fields)
	if err != nil {
		ctl.respondError(c, err)
		return
	}

	program := &models.Program{}
	if category != nil {
		form.ApplyTo(program, category, actors)
		if program.Slug == "" {
			fields.Add("title", "Tiêu đề phải chứa ít nhất một chữ cái hoặc chữ số")
		} else {
			taken, err := ctl.catalog.SlugTaken(ctx, program.Slug)
			if err != nil {
				ctl.respondError(c, err)
				return
			}
			if taken {
				fields.Add("title", "Chương trình này đã tồn tại")
			}
		}
	}
	if err := fields.Err(); err != nil {
		ctl.respondError(c, err)
		return
	}
	program.SetOwner(user)

	if err := ctl.attachPoster(c, program); err != nil {
		ctl.respondError(c, err)
		return
	}

	if err := ctl.catalog.CreateProgram(ctx, program); err != nil {
		ctl.respondError(c, err)
		return
	}

	log := middleware.Logger(c, ctl.log)
	log.Info("program created", zap.Uint("program_id", program.ID), zap.String("slug", program.Slug))
	ctl.notifyNewProgram(log, program)
	ctl.hub.ProgramListChanged("program_created", program)

	redirect(c, "/programs")
}

// attachPoster uploads the optional "poster" file.
func (ctl *Controller) attachPoster(c *gin.Context, program *models.Program) error {
	fileHeader, err := c.FormFile("poster")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil
		}
		return forms.Errors{"poster": "Tệp không hợp lệ"}.Err()
	}
	if ctl.posters == nil {
		middleware.Logger(c, ctl.log).Warn("poster upload ignored: storage not configured")
		return nil
	}
	url, err := ctl.posters.UploadPoster(fileHeader)
	if err != nil {
		return fmt.Errorf("upload poster: %w", err)
	}
	program.Poster = url
	return nil
}

// notifyNewProgram never fails the request; delivery problems are logged.
func (ctl *Controller) notifyNewProgram(log *zap.Logger, program *models.Program) {
	if ctl.mailer == nil {
		return
	}
	data := utils.NewProgramEmailData{
		Title:   program.Title,
		Summary: program.Summary,
		Poster:  program.Poster,
		URL:     ctl.baseURL + programPath(program),
	}
	if program.Category != nil {
		data.Category = program.Category.Name
	}
	html, err := utils.RenderNewProgramEmail(data)
	if err != nil {
		log.Error("render new program email", zap.Error(err))
		return
	}
	err = ctl.mailer.Send(utils.Email{
		From:    ctl.mailFrom,
		To:      ctl.mailTo,
		Subject: utils.NewProgramSubject,
		HTML:    html,
	})
	if err != nil {
		log.Error("send new program email", zap.Error(err), zap.Uint("program_id", program.ID))
	}
}

// ShowProgram returns the program and its seasons. Authenticated callers
// also get the CSRF token needed to delete it.
func (ctl *Controller) ShowProgram(c *gin.Context) {
	ctx := c.Request.Context()
	program, err := ctl.catalog.ProgramBySlug(ctx, c.Param("program"))
	if err != nil {
		ctl.respondError(c, err)
		return
	}
	seasons, err := ctl.catalog.SeasonsOf(ctx, program.ID)
	if err != nil {
		ctl.respondError(c, err)
		return
	}

	resp := gin.H{"program": program, "seasons": seasons}
	if user, ok := middleware.CurrentUser(c); ok {
		token, err := ctl.csrf.Generate(deleteIntention(program.ID), user.ID)
		if err != nil {
			ctl.respondError(c, err)
			return
		}
		resp["delete_token"] = token
		resp["can_edit"] = program.IsOwnedBy(user)
	}
	c.JSON(http.StatusOK, resp)
}

// ownedProgram loads the program named by :program and checks that the
// caller owns it.
func (ctl *Controller) ownedProgram(c *gin.Context) (*models.Program, *models.User, error) {
	user, err := requireUser(c)
	if err != nil {
		return nil, nil, err
	}
	program, err := ctl.catalog.ProgramBySlug(c.Request.Context(), c.Param("program"))
	if err != nil {
		return nil, nil, err
	}
	if !program.IsOwnedBy(user) {
		return nil, nil, fmt.Errorf("%w: only the owner can edit the program", models.ErrAccessDenied)
	}
	return program, user, nil
}

// EditProgramForm returns the values the edit form starts from.
func (ctl *Controller) EditProgramForm(c *gin.Context) {
	program, _, err := ctl.ownedProgram(c)
	if err != nil {
		ctl.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"program": program, "form": forms.ProgramFormFrom(program)})
}

func (ctl *Controller) EditProgram(c *gin.Context) {
	program, _, err := ctl.ownedProgram(c)
	if err != nil {
		ctl.respondError(c, err)
		return
	}
	var form forms.ProgramForm
	if err := bind(c, &form); err != nil {
		ctl.respondError(c, err)
		return
	}
	ctx := c.Request.Context()

	fields := forms.Errors{}
	category, actors, err := ctl.resolveProgramForm(ctx, form, fields)
	if err != nil {
		ctl.respondError(c, err)
		return
	}
	if err := fields.Err(); err != nil {
		ctl.respondError(c, err)
		return
	}

	form.ApplyTo(program, category, actors)
	if err := ctl.catalog.UpdateProgram(ctx, program); err != nil {
		ctl.respondError(c, err)
		return
	}
	redirect(c, "/programs")
}

// DeleteProgram removes the program named by its id. A missing or invalid
// CSRF token deletes nothing and still redirects, for anonymous callers too.
// A valid token is only ever issued to a logged-in user.
func (ctl *Controller) DeleteProgram(c *gin.Context) {
	id, err := paramID(c, "program")
	if err != nil {
		ctl.respondError(c, err)
		return
	}
	log := middleware.Logger(c, ctl.log).With(zap.Uint("program_id", id))

	user, ok := middleware.CurrentUser(c)
	if !ok || !ctl.csrf.Valid(deleteIntention(id), user.ID, c.PostForm(csrfField)) {
		log.Warn("program delete ignored: invalid csrf token")
		redirect(c, "/programs")
		return
	}

	ctx := c.Request.Context()
	program, err := ctl.catalog.ProgramByID(ctx, id)
	if err != nil {
		ctl.respondError(c, err)
		return
	}
	if !program.IsOwnedBy(user) && !user.HasRole(models.RoleAdmin) {
		ctl.respondError(c, models.ErrAccessDenied)
		return
	}

	if err := ctl.catalog.DeleteProgram(ctx, program); err != nil {
		ctl.respondError(c, err)
		return
	}
	log.Info("program deleted")

	if program.Poster != "" && ctl.posters != nil {
		if err := ctl.posters.DeletePoster(program.Poster); err != nil {
			log.Warn("delete poster", zap.Error(err))
		}
	}
	ctl.hub.ProgramListChanged("program_deleted", program)

	redirect(c, "/programs")
}
