package middleware

import (
	"context"
	"strings"

	"quizhub_backend/internal/config"
	"quizhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// SessionValidator 校验令牌对应的服务端会话是否仍然有效
type SessionValidator interface {
	IsActive(ctx context.Context, sessionID string) (bool, error)
}

// tokenFromRequest 依次尝试 Authorization 头、会话 Cookie、token 查询参数
func tokenFromRequest(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	if cookie, err := c.Cookie(util.SessionCookieName); err == nil && cookie != "" {
		return cookie
	}

	return c.Query("token")
}

func AuthMiddleware(cfg *config.Config, sessions SessionValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := tokenFromRequest(c)
		if tokenString == "" {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		claims, err := util.ParseJWT(tokenString, cfg.JWT.Secret)
		if err != nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		// 登出过的会话即使令牌未过期也拒绝
		active, err := sessions.IsActive(c.Request.Context(), claims.ID)
		if err != nil || !active {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		c.Set("user", claims)
		c.Next()
	}
}

// TryAuthMiddleware 可选认证：有合法会话则注入身份，否则放行为游客
func TryAuthMiddleware(cfg *config.Config, sessions SessionValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := tokenFromRequest(c)
		if tokenString == "" {
			c.Next()
			return
		}

		claims, err := util.ParseJWT(tokenString, cfg.JWT.Secret)
		if err != nil {
			c.Next()
			return
		}

		if active, err := sessions.IsActive(c.Request.Context(), claims.ID); err == nil && active {
			c.Set("user", claims)
		}
		c.Next()
	}
}

type UserActivityRepo interface {
	UpdateLastSeen(userID uint) error
}

func ActivityMiddleware(repo UserActivityRepo) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := util.GetUserFromContext(c)
		if claims != nil {
			// 异步更新，不阻塞主流程
			go repo.UpdateLastSeen(claims.UserID)
		}
		c.Next()
	}
}
