package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gosecsite/internal/service"
)

// GetHero 返回首页横幅。
func (a *API) GetHero(c *gin.Context) {
	hero, err := a.content.Hero(c.Request.Context())
	if err != nil {
		a.respondServiceError(c, err, "failed to load hero content")
		return
	}
	c.JSON(http.StatusOK, hero)
}

// UpdateHero 合并更新首页横幅。
func (a *API) UpdateHero(c *gin.Context) {
	var patch service.HeroPatch
	if err := bindStrictJSON(c, &patch); err != nil {
		a.respondServiceError(c, err, "invalid request")
		return
	}
	hero, err := a.content.UpdateHero(c.Request.Context(), patch)
	if err != nil {
		a.respondServiceError(c, err, "failed to update hero content")
		return
	}
	c.JSON(http.StatusOK, hero)
}

// GetAbout 返回关于我们。
func (a *API) GetAbout(c *gin.Context) {
	about, err := a.content.About(c.Request.Context())
	if err != nil {
		a.respondServiceError(c, err, "failed to load about content")
		return
	}
	c.JSON(http.StatusOK, about)
}

// UpdateAbout 合并更新关于我们。
func (a *API) UpdateAbout(c *gin.Context) {
	var patch service.AboutPatch
	if err := bindStrictJSON(c, &patch); err != nil {
		a.respondServiceError(c, err, "invalid request")
		return
	}
	about, err := a.content.UpdateAbout(c.Request.Context(), patch)
	if err != nil {
		a.respondServiceError(c, err, "failed to update about content")
		return
	}
	c.JSON(http.StatusOK, about)
}
