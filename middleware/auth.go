package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vnkhanh/wild-series-backend/models"
	"github.com/vnkhanh/wild-series-backend/repository"
	"github.com/vnkhanh/wild-series-backend/utils"
)

const (
	ContextDB     = "db"
	ContextUser   = "user"
	ContextUserID = "user_id"
	ContextRoles  = "roles"
)

// DBMiddleware gắn *gorm.DB vào context cho các handler.
func DBMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextDB, db)
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	// Thử Authorization header trước, sau đó X-Auth-Token (cho iOS)
	header := c.GetHeader("Authorization")
	if header == "" {
		header = c.GetHeader("X-Auth-Token")
	}
	if header == "" {
		return "", false
	}
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

// authenticate resolves the caller from the bearer token. The user is
// reloaded from the database so roles changed since login apply at once.
func authenticate(c *gin.Context, jwtSvc *utils.JWTService, db *gorm.DB, token string) (*models.User, error) {
	claims, err := jwtSvc.ValidateToken(token)
	if err != nil {
		return nil, err
	}
	return repository.FindOneBy[models.User](c.Request.Context(), db, repository.Filter{"id": claims.UserID})
}

func setUser(c *gin.Context, user *models.User) {
	c.Set(ContextUser, user)
	c.Set(ContextUserID, user.ID)
	c.Set(ContextRoles, user.GetRoles())
}

func AuthMiddleware(jwtSvc *utils.JWTService, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Thiếu hoặc sai Authorization header"})
			return
		}

		user, err := authenticate(c, jwtSvc, db, token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token không hợp lệ hoặc hết hạn"})
			return
		}

		setUser(c, user)
		c.Next()
	}
}

// OptionalAuthMiddleware sets the user when a valid token is present and
// otherwise lets the request through anonymously.
func OptionalAuthMiddleware(jwtSvc *utils.JWTService, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.Next()
			return
		}
		if user, err := authenticate(c, jwtSvc, db, token); err == nil {
			setUser(c, user)
		}
		c.Next()
	}
}

// CurrentUser trả về user đã xác thực, nếu có.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, exists := c.Get(ContextUser)
	if !exists {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok && user != nil
}

// RequireRoles cho phép chỉ định nhiều vai trò được quyền truy cập.
// Phải đặt sau AuthMiddleware.
func RequireRoles(allowedRoles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Không xác định được người dùng"})
			return
		}

		for _, role := range allowedRoles {
			if user.HasRole(role) {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Bạn không có quyền truy cập tài nguyên này"})
	}
}
