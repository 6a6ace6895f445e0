package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetSite 返回访客页面使用的整页内容，语言由 LocaleMiddleware 决定。
func (a *API) GetSite(c *gin.Context) {
	pref := a.requestLocale(c)
	snapshot, err := a.site.Snapshot(c.Request.Context(), pref.Language)
	if err != nil {
		a.respondServiceError(c, err, "failed to build site content")
		return
	}
	if snapshot.Fallback {
		c.Header("Cache-Control", "no-store")
	}
	c.JSON(http.StatusOK, snapshot)
}
