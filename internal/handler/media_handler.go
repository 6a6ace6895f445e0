package handler

import (
	"fmt"
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gosecsite/internal/service"
)

// mediaCategory 是通过媒体库直接上传的图片所在目录。
const mediaCategory = "library"

// ListMedia 返回媒体库中的全部图片，最新上传的在前。
func (a *API) ListMedia(c *gin.Context) {
	items, err := a.media.List(c.Request.Context())
	if err != nil {
		a.respondServiceError(c, err, "failed to list media")
		return
	}
	c.JSON(http.StatusOK, items)
}

// UploadMedia 处理图片上传请求，image 文件字段必填。
func (a *API) UploadMedia(c *gin.Context) {
	fields, upload, err := a.parseMultipart(c, "alt_en", "alt_fr")
	if err != nil {
		a.respondServiceError(c, err, "failed to read upload")
		return
	}
	if upload == nil {
		fields.errs["image"] = "is required"
	}
	if err := fields.err(); err != nil {
		a.respondServiceError(c, err, "invalid request")
		return
	}

	asset, err := a.media.Upload(c.Request.Context(), *upload, mediaCategory, service.MediaPatch{
		AltEN: fields.str("alt_en"),
		AltFR: fields.str("alt_fr"),
	})
	if err != nil {
		a.respondServiceError(c, err, fmt.Sprintf("failed to store %s", upload.Filename))
		return
	}
	c.JSON(http.StatusCreated, asset)
}

// UpdateMedia 只允许修改图片的替代文本。
func (a *API) UpdateMedia(c *gin.Context) {
	var patch service.MediaPatch
	if err := bindStrictJSON(c, &patch); err != nil {
		a.respondServiceError(c, err, "invalid request")
		return
	}
	asset, err := a.media.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		a.respondServiceError(c, err, "failed to update media")
		return
	}
	c.JSON(http.StatusOK, asset)
}

// ServeUpload 从存储中读取上传的图片与缩略图，路径参数 filepath 即存储键。
func (a *API) ServeUpload(c *gin.Context) {
	key := strings.TrimPrefix(path.Clean("/"+c.Param("filepath")), "/")
	if key == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "upload not found"})
		return
	}

	rc, err := a.media.Open(c.Request.Context(), key)
	if err != nil {
		a.respondServiceError(c, err, "failed to read upload")
		return
	}
	defer rc.Close()

	contentType := mime.TypeByExtension(path.Ext(key))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	// 存储键带随机名，内容不会原地变化
	c.DataFromReader(http.StatusOK, -1, contentType, rc, map[string]string{
		"Cache-Control":          "public, max-age=31536000, immutable",
		"X-Content-Type-Options": "nosniff",
	})
}
