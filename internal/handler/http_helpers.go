package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gosecsite/internal/service"
	"go.uber.org/zap"
)

const (
	// maxJSONBodyBytes 限制普通 JSON 请求体大小
	maxJSONBodyBytes int64 = 1 << 20
	// multipartOverhead 为 multipart 中文本字段与分隔符预留的空间
	multipartOverhead int64 = 1 << 20
	// multipartMemory 超出部分由标准库写入临时文件
	multipartMemory int64 = 8 << 20
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// respondServiceError 把 service 层错误映射为 HTTP 状态码，未知错误记录日志后返回 500。
func (a *API) respondServiceError(c *gin.Context, err error, internalMessage string) {
	var fields service.FieldErrors
	switch {
	case errors.As(err, &fields):
		c.JSON(http.StatusBadRequest, gin.H{"error": service.ErrValidation.Error(), "fields": fields})
	case errors.Is(err, service.ErrValidation):
		respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotFound):
		respondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrUnauthorized):
		c.Header("WWW-Authenticate", `Bearer realm="gosec"`)
		respondError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrTokenExpired):
		respondError(c, http.StatusForbidden, service.ErrTokenExpired.Error())
	case errors.Is(err, service.ErrTokenInvalid):
		respondError(c, http.StatusForbidden, service.ErrTokenInvalid.Error())
	case errors.Is(err, service.ErrUnsupportedMediaType):
		respondError(c, http.StatusUnsupportedMediaType, err.Error())
	case errors.Is(err, service.ErrPayloadTooLarge):
		respondError(c, http.StatusRequestEntityTooLarge, err.Error())
	default:
		_ = c.Error(err)
		a.log.Error(internalMessage, zap.String("path", c.FullPath()), zap.Error(err))
		respondError(c, http.StatusInternalServerError, internalMessage)
	}
}

// bindStrictJSON 解码 JSON 请求体，未知字段、多余内容与超限请求体都视为校验错误。
func bindStrictJSON(c *gin.Context, dst interface{}) error {
	body := http.MaxBytesReader(c.Writer, c.Request.Body, maxJSONBodyBytes)
	decoder := json.NewDecoder(body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return fmt.Errorf("%w: request body exceeds %d bytes", service.ErrPayloadTooLarge, tooLarge.Limit)
		}
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: request body is empty", service.ErrValidation)
		}
		return fmt.Errorf("%w: invalid JSON body: %v", service.ErrValidation, err)
	}
	if decoder.More() {
		return fmt.Errorf("%w: request body must contain a single JSON object", service.ErrValidation)
	}
	return nil
}

// multipartFields 读取 multipart 表单中的文本字段，只出现过的字段才会被设置。
type multipartFields struct {
	values  map[string][]string
	allowed map[string]struct{}
	errs    service.FieldErrors
}

// parseMultipart 解析 multipart 请求体，整体大小超过上传上限时返回 ErrPayloadTooLarge。
func (a *API) parseMultipart(c *gin.Context, allowed ...string) (*multipartFields, *service.Upload, error) {
	if a.maxUpload > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, a.maxUpload+multipartOverhead)
	}
	if err := c.Request.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, nil, fmt.Errorf("%w: image exceeds %d bytes", service.ErrPayloadTooLarge, a.maxUpload)
		}
		return nil, nil, fmt.Errorf("%w: invalid multipart body: %v", service.ErrValidation, err)
	}

	form := c.Request.MultipartForm
	fields := &multipartFields{
		values:  form.Value,
		allowed: make(map[string]struct{}, len(allowed)),
		errs:    service.FieldErrors{},
	}
	for _, name := range allowed {
		fields.allowed[name] = struct{}{}
	}
	for name := range form.Value {
		if _, ok := fields.allowed[name]; !ok {
			fields.errs[name] = "is not a recognised field"
		}
	}
	for name := range form.File {
		if name != "image" {
			fields.errs[name] = "is not a recognised file field"
		}
	}

	upload, err := a.readUpload(c)
	if err != nil {
		return nil, nil, err
	}
	return fields, upload, nil
}

// readUpload 读取 image 文件字段，没有上传文件时返回 nil。
func (a *API) readUpload(c *gin.Context) (*service.Upload, error) {
	form := c.Request.MultipartForm
	if form == nil || len(form.File["image"]) == 0 {
		return nil, nil
	}
	header := form.File["image"][0]
	if a.maxUpload > 0 && header.Size > a.maxUpload {
		return nil, fmt.Errorf("%w: image exceeds %d bytes", service.ErrPayloadTooLarge, a.maxUpload)
	}

	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer file.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}

	contentType := strings.TrimSpace(header.Header.Get("Content-Type"))
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(buf.Bytes())
	}
	return &service.Upload{
		Filename:    header.Filename,
		ContentType: contentType,
		Data:        buf.Bytes(),
	}, nil
}

func (f *multipartFields) str(name string) *string {
	values, ok := f.values[name]
	if !ok || len(values) == 0 {
		return nil
	}
	value := values[0]
	return &value
}

func (f *multipartFields) text(name string) string {
	if value := f.str(name); value != nil {
		return *value
	}
	return ""
}

func (f *multipartFields) integer(name string) *int {
	raw := f.str(name)
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(*raw))
	if err != nil {
		f.errs[name] = "must be an integer"
		return nil
	}
	return &parsed
}

func (f *multipartFields) err() error {
	if len(f.errs) == 0 {
		return nil
	}
	return f.errs
}
