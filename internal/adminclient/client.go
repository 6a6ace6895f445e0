// Package adminclient 是后台控制台使用的内容 API 客户端。
// 每次写操作都显式携带 Credential，服务端在每次请求时重新校验；
// 客户端不会仅凭本地持有 token 就认为已登录，会话开始时应调用 Authenticate。
package adminclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gosecsite/internal/db"
)

// maxResponseBytes 限制单个响应体大小
const maxResponseBytes = 8 << 20

var (
	ErrUnauthorized    = errors.New("missing or rejected credential")
	ErrForbidden       = errors.New("credential invalid or expired")
	ErrNotFound        = errors.New("not found")
	ErrValidation      = errors.New("validation failed")
	ErrPayloadTooLarge = errors.New("payload too large")
	ErrUnsupportedType = errors.New("unsupported media type")
)

// HTTPDoer abstracts http.Client for tests.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Credential 是登录后拿到的 bearer token。
type Credential struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Principal 是服务端确认过的管理员身份。
type Principal struct {
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expires_at"`
}

// APIError 描述非 2xx 响应。
type APIError struct {
	Status  int
	Message string
	Fields  map[string]string
}

func (e *APIError) Error() string {
	if len(e.Fields) > 0 {
		return fmt.Sprintf("api error %d: %s %v", e.Status, e.Message, e.Fields)
	}
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// Unwrap 把状态码映射为包级哨兵错误，便于 errors.Is 判断。
func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusBadRequest:
		return ErrValidation
	case http.StatusRequestEntityTooLarge:
		return ErrPayloadTooLarge
	case http.StatusUnsupportedMediaType:
		return ErrUnsupportedType
	default:
		return nil
	}
}

// Client 调用 /api 下的内容接口。
type Client struct {
	baseURL string
	http    HTTPDoer
}

// New creates a client for the API rooted at baseURL (e.g. https://api.gosec.ca).
func New(baseURL string, doer HTTPDoer) *Client {
	if doer == nil {
		doer = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: doer}
}

// Login 使用表单提交用户名和密码换取 Credential。
func (c *Client) Login(ctx context.Context, username, password string) (Credential, error) {
	form := url.Values{"username": {username}, "password": {password}}
	var cred Credential
	err := c.do(ctx, http.MethodPost, "/api/auth/login", nil, "application/x-www-form-urlencoded",
		strings.NewReader(form.Encode()), &cred)
	return cred, err
}

// Authenticate 向服务端确认 Credential 仍然有效。
func (c *Client) Authenticate(ctx context.Context, cred Credential) (Principal, error) {
	var principal Principal
	err := c.do(ctx, http.MethodGet, "/api/auth/me", &cred, "", nil, &principal)
	return principal, err
}

// Hero / About 为单例内容。
func (c *Client) Hero(ctx context.Context) (*db.HeroContent, error) {
	var hero db.HeroContent
	if err := c.do(ctx, http.MethodGet, "/api/content/hero", nil, "", nil, &hero); err != nil {
		return nil, err
	}
	return &hero, nil
}

func (c *Client) UpdateHero(ctx context.Context, cred Credential, patch interface{}) (*db.HeroContent, error) {
	var hero db.HeroContent
	if err := c.doJSON(ctx, http.MethodPut, "/api/content/hero", &cred, patch, &hero); err != nil {
		return nil, err
	}
	return &hero, nil
}

func (c *Client) About(ctx context.Context) (*db.AboutContent, error) {
	var about db.AboutContent
	if err := c.do(ctx, http.MethodGet, "/api/content/about", nil, "", nil, &about); err != nil {
		return nil, err
	}
	return &about, nil
}

func (c *Client) UpdateAbout(ctx context.Context, cred Credential, patch interface{}) (*db.AboutContent, error) {
	var about db.AboutContent
	if err := c.doJSON(ctx, http.MethodPut, "/api/content/about", &cred, patch, &about); err != nil {
		return nil, err
	}
	return &about, nil
}

// SubmitForm 以访客身份提交表单，variant 为 join / donate / contact。
func (c *Client) SubmitForm(ctx context.Context, variant string, body interface{}, out interface{}) error {
	return c.doJSON(ctx, http.MethodPost, "/api/forms/"+url.PathEscape(variant), nil, body, out)
}

// Submissions 返回某类表单的全部提交，out 通常为对应类型的切片。
func (c *Client) Submissions(ctx context.Context, cred Credential, variant string, out interface{}) error {
	return c.do(ctx, http.MethodGet, "/api/forms/"+url.PathEscape(variant), &cred, "", nil, out)
}

func (c *Client) DeleteSubmission(ctx context.Context, cred Credential, variant, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/forms/"+url.PathEscape(variant)+"/"+url.PathEscape(id), &cred, "", nil, nil)
}

// Image 是随表单一起上传的图片文件。
type Image struct {
	Filename string
	Data     []byte
}

func (c *Client) doJSON(ctx context.Context, method, path string, cred *Credential, body, out interface{}) error {
	encoded, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	return c.do(ctx, method, path, cred, "application/json", bytes.NewReader(encoded), out)
}

func (c *Client) doMultipart(ctx context.Context, method, path string, cred *Credential, fields map[string]string, image *Image, out interface{}) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return fmt.Errorf("write field %s: %w", name, err)
		}
	}
	if image != nil {
		part, err := writer.CreateFormFile("image", image.Filename)
		if err != nil {
			return fmt.Errorf("create image part: %w", err)
		}
		if _, err := part.Write(image.Data); err != nil {
			return fmt.Errorf("write image part: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("close multipart body: %w", err)
	}
	return c.do(ctx, method, path, cred, writer.FormDataContentType(), &buf, out)
}

func (c *Client) do(ctx context.Context, method, path string, cred *Credential, contentType string, body io.Reader, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if cred != nil && cred.AccessToken != "" {
		req.Header.Set("Authorization", "Bearer "+cred.AccessToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("read %s %s response: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var body struct {
			Error  string            `json:"error"`
			Fields map[string]string `json:"fields"`
		}
		if json.Unmarshal(payload, &body) == nil && body.Error != "" {
			apiErr.Message = body.Error
			apiErr.Fields = body.Fields
		}
		return apiErr
	}

	if out == nil || len(payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

// Media 返回媒体库列表。
func (c *Client) Media(ctx context.Context) ([]db.MediaAsset, error) {
	var items []db.MediaAsset
	if err := c.do(ctx, http.MethodGet, "/api/media", nil, "", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// UploadMedia 上传图片到媒体库，alt 为可选的 alt_en / alt_fr。
func (c *Client) UploadMedia(ctx context.Context, cred Credential, image Image, alt map[string]string) (*db.MediaAsset, error) {
	var asset db.MediaAsset
	if err := c.doMultipart(ctx, http.MethodPost, "/api/media", &cred, alt, &image, &asset); err != nil {
		return nil, err
	}
	return &asset, nil
}
