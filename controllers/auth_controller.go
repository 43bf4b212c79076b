package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vnkhanh/wild-series-backend/forms"
	"github.com/vnkhanh/wild-series-backend/models"
	"github.com/vnkhanh/wild-series-backend/utils"
)

// ====== INPUT STRUCTS ======
type RegisterInput struct {
	Email    string `form:"email" json:"email" binding:"required,email,max=180"`
	Password string `form:"password" json:"password" binding:"required,min=6"`
	FullName string `form:"full_name" json:"full_name" binding:"required,max=150"`
}

type LoginInput struct {
	Email    string `form:"email" json:"email" binding:"required,email"`
	Password string `form:"password" json:"password" binding:"required"`
}

type GoogleLoginInput struct {
	IDToken string `form:"id_token" json:"id_token" binding:"required"`
}

func userPayload(user *models.User) gin.H {
	return gin.H{
		"id":        user.ID,
		"email":     user.Email,
		"full_name": user.FullName,
		"roles":     user.GetRoles(),
	}
}

func (ctl *Controller) issueToken(c *gin.Context, status int, user *models.User) {
	token, err := ctl.jwt.GenerateToken(user.ID, user.GetRoles())
	if err != nil {
		ctl.respondError(c, err)
		return
	}
	c.JSON(status, gin.H{"token": token, "user": userPayload(user)})
}

// ====== HANDLERS ======
func (ctl *Controller) Register(c *gin.Context) {
	var input RegisterInput
	if err := bind(c, &input); err != nil {
		ctl.respondError(c, err)
		return
	}
	ctx := c.Request.Context()
	email := strings.ToLower(strings.TrimSpace(input.Email))

	// Check email tồn tại
	if _, err := ctl.catalog.UserByEmail(ctx, email); err == nil {
		ctl.respondError(c, forms.Errors{"email": "Email đã được sử dụng"}.Err())
		return
	} else if !errors.Is(err, models.ErrNotFound) {
		ctl.respondError(c, err)
		return
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		ctl.respondError(c, err)
		return
	}

	user := &models.User{
		FullName: strings.TrimSpace(input.FullName),
		Email:    email,
		Password: hashed,
		Roles:    []models.UserRole{},
	}
	if err := ctl.catalog.CreateUser(ctx, user); err != nil {
		ctl.respondError(c, err)
		return
	}

	ctl.issueToken(c, http.StatusCreated, user)
}

func (ctl *Controller) Login(c *gin.Context) {
	var input LoginInput
	if err := bind(c, &input); err != nil {
		ctl.respondError(c, err)
		return
	}

	user, err := ctl.catalog.UserByEmail(c.Request.Context(), strings.ToLower(strings.TrimSpace(input.Email)))
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		ctl.respondError(c, err)
		return
	}
	if user == nil || !utils.CheckPassword(user.Password, input.Password) {
		errorResponse(c, http.StatusUnauthorized, "Email hoặc mật khẩu không đúng")
		return
	}

	ctl.issueToken(c, http.StatusOK, user)
}

func (ctl *Controller) GoogleLogin(c *gin.Context) {
	var input GoogleLoginInput
	if err := bind(c, &input); err != nil {
		ctl.respondError(c, err)
		return
	}
	ctx := c.Request.Context()

	// Xác minh token với đúng GOOGLE_CLIENT_ID
	payload, err := ctl.verifyGoogle(ctx, input.IDToken, ctl.googleClientID)
	if err != nil {
		errorResponse(c, http.StatusUnauthorized, "Token Google không hợp lệ")
		return
	}

	email, _ := payload.Claims["email"].(string)
	fullName, _ := payload.Claims["name"].(string)
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		errorResponse(c, http.StatusUnauthorized, "Token Google không có email")
		return
	}

	user, err := ctl.catalog.UserByEmail(ctx, email)
	if errors.Is(err, models.ErrNotFound) {
		// Nếu chưa có -> tạo mới, password để trống vì login Google
		user = &models.User{Email: email, FullName: fullName, Roles: []models.UserRole{}}
		err = ctl.catalog.CreateUser(ctx, user)
	}
	if err != nil {
		ctl.respondError(c, err)
		return
	}

	ctl.issueToken(c, http.StatusOK, user)
}
