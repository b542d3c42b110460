package middleware

import (
	"net/http"
	"strings"

	"PicCloud/pkg/context"
	"PicCloud/pkg/jwt"
	"PicCloud/pkg/response"
	"PicCloud/types"

	"github.com/gin-gonic/gin"
)

func Auth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Abort(c, http.StatusUnauthorized, "缺少 Authorization")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Abort(c, http.StatusUnauthorized, "Authorization 格式错误")
			return
		}

		claims, err := jwt.ParseToken(secret, "access", parts[1])
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, err.Error())
			return
		}

		c.Set(context.CtxUserID, claims.UserID)
		c.Set(context.CtxUserRole, claims.Role)

		c.Next()
	}
}

// OptionalAuth 匿名可访问的接口用，带合法 token 时解析身份，否则放行
func OptionalAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			if claims, err := jwt.ParseToken(secret, "access", parts[1]); err == nil {
				c.Set(context.CtxUserID, claims.UserID)
				c.Set(context.CtxUserRole, claims.Role)
			}
		}
		c.Next()
	}
}

// AdminOnly 管理员角色校验，需在 Auth 之后挂载
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if context.GetUserRole(c) != types.RoleAdmin {
			response.Abort(c, http.StatusForbidden, "无权限")
			return
		}
		c.Next()
	}
}
