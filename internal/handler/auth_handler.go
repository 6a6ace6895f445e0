package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gosecsite/internal/service"
)

const principalContextKey = "__admin_principal"

// Login 处理后台登录，表单字段为 username / password。
func (a *API) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	token, err := a.auth.Login(c.Request.Context(), username, password)
	if err != nil {
		a.respondServiceError(c, err, "failed to sign in")
		return
	}

	c.JSON(http.StatusOK, token)
}

// Me 返回当前 token 对应的管理员，后台在会话开始时调用一次。
func (a *API) Me(c *gin.Context) {
	principal, ok := c.Get(principalContextKey)
	if !ok {
		a.respondServiceError(c, service.ErrUnauthorized, "")
		return
	}
	c.JSON(http.StatusOK, principal)
}

// AuthRequired 校验 Authorization: Bearer <token>。
// 缺少凭证返回 401，凭证无效或过期返回 403。
func (a *API) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, err := a.auth.Authenticate(c.Request.Context(), bearerToken(c.GetHeader("Authorization")))
		if err != nil {
			a.respondServiceError(c, err, "failed to authenticate")
			c.Abort()
			return
		}
		c.Set(principalContextKey, principal)
		c.Next()
	}
}

func bearerToken(header string) string {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
