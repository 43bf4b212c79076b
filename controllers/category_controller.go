package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vnkhanh/wild-series-backend/forms"
	"github.com/vnkhanh/wild-series-backend/models"
	"github.com/vnkhanh/wild-series-backend/repository"
)

func (ctl *Controller) ListCategories(c *gin.Context) {
	categories, err := ctl.catalog.Categories(c.Request.Context())
	if err != nil {
		ctl.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// NewCategory is reserved to ROLE_ADMIN by the router.
func (ctl *Controller) NewCategory(c *gin.Context) {
	var form forms.CategoryForm
	if err := bind(c, &form); err != nil {
		ctl.respondError(c, err)
		return
	}
	ctx := c.Request.Context()

	category := &models.Category{}
	form.ApplyTo(category)
	if category.Name == "" {
		ctl.respondError(c, forms.Errors{"name": forms.MsgNotBlank}.Err())
		return
	}

	taken, err := ctl.catalog.CategoryNameTaken(ctx, category.Name)
	if err != nil {
		ctl.respondError(c, err)
		return
	}
	if taken {
		ctl.respondError(c, forms.Errors{"name": "Danh mục đã tồn tại"}.Err())
		return
	}

	if err := ctl.catalog.CreateCategory(ctx, category); err != nil {
		ctl.respondError(c, err)
		return
	}
	redirect(c, "/categories")
}

// ShowCategory returns the category and its latest programs.
func (ctl *Controller) ShowCategory(c *gin.Context) {
	ctx := c.Request.Context()
	category, err := ctl.catalog.CategoryByName(ctx, c.Param("name"))
	if err != nil {
		ctl.respondError(c, err)
		return
	}

	programs, err := ctl.catalog.LatestPrograms(ctx, category.ID, repository.LatestCount)
	if err != nil {
		ctl.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"category": category, "programs": programs})
}
