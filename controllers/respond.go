package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vnkhanh/wild-series-backend/forms"
	"github.com/vnkhanh/wild-series-backend/middleware"
	"github.com/vnkhanh/wild-series-backend/models"
)

var errUnauthenticated = errors.New("authentication required")

// errorResponse sends a standardized error body.
func errorResponse(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// respondError maps domain errors onto HTTP statuses.
func (ctl *Controller) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrValidation):
		fields := forms.FieldErrors(err)
		if fields == nil {
			fields = forms.Errors{forms.FormField: err.Error()}
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Dữ liệu không hợp lệ", "fields": fields})
	case errors.Is(err, models.ErrNotFound):
		errorResponse(c, http.StatusNotFound, "Không tìm thấy")
	case errors.Is(err, models.ErrAccessDenied):
		errorResponse(c, http.StatusForbidden, "Bạn không có quyền thực hiện thao tác này")
	case errors.Is(err, errUnauthenticated):
		errorResponse(c, http.StatusUnauthorized, "Bạn cần đăng nhập")
	default:
		_ = c.Error(err)
		middleware.Logger(c, ctl.log).Error("request failed", zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, "Lỗi máy chủ")
	}
}

// redirect answers a successful form submission.
func redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusSeeOther, location)
}

// bind binds the submitted form or JSON body into obj.
func bind(c *gin.Context, obj interface{}) error {
	return forms.FromBinding(c.ShouldBind(obj))
}

func requireUser(c *gin.Context) (*models.User, error) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return nil, errUnauthenticated
	}
	return user, nil
}

// paramID parses a numeric path segment. Anything else cannot match a row.
func paramID(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, models.ErrNotFound
	}
	return uint(id), nil
}

func paramInt(c *gin.Context, name string) (int, error) {
	n, err := strconv.Atoi(c.Param(name))
	if err != nil {
		return 0, models.ErrNotFound
	}
	return n, nil
}
