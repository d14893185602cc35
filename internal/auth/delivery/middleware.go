package delivery

import (
	"strings"

	"taskpro-backend/internal/apperror"
	"taskpro-backend/internal/auth/usecase"

	"github.com/gin-gonic/gin"
)

// UserIDKey is the gin context key holding the authenticated user id.
const UserIDKey = "userID"

var errMissingToken = apperror.Unauthorized("Not authorized")

// AuthMiddleware accepts "Authorization: Bearer <token>" or a raw token in
// x-auth-token and stores the user id under UserIDKey.
func AuthMiddleware(authUsecase usecase.AuthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			token = strings.TrimSpace(c.GetHeader("x-auth-token"))
		}
		if token == "" {
			_ = c.Error(errMissingToken)
			c.Abort()
			return
		}

		userID, err := authUsecase.ValidateToken(token)
		if err != nil {
			_ = c.Error(err)
			c.Abort()
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}

func bearerToken(header string) string {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}
