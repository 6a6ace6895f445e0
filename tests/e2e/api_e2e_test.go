package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gosecsite/internal/config"
	"github.com/gosecsite/internal/db"
	"github.com/gosecsite/internal/fallback"
	"github.com/gosecsite/internal/handler"
	"github.com/gosecsite/internal/router"
	"github.com/gosecsite/internal/service"
	"github.com/gosecsite/internal/storage"
	"gorm.io/gorm"
)

type e2eSuite struct {
	handler   http.Handler
	public    httpClient
	admin     httpClient
	baseURL   string
	uploadDir string
	db        *gorm.DB
	token     string
}

type httpClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type localClient struct {
	handler http.Handler
	jar     http.CookieJar
}

func newLocalClient(handler http.Handler, withJar bool) *localClient {
	var jar http.CookieJar
	if withJar {
		if j, err := cookiejar.New(nil); err == nil {
			jar = j
		}
	}
	return &localClient{handler: handler, jar: jar}
}

func (c *localClient) Do(req *http.Request) (*http.Response, error) {
	if c.jar != nil {
		for _, cookie := range c.jar.Cookies(req.URL) {
			req.AddCookie(cookie)
		}
	}
	w := httptest.NewRecorder()
	c.handler.ServeHTTP(w, req)
	resp := w.Result()
	if c.jar != nil {
		c.jar.SetCookies(req.URL, resp.Cookies())
	}
	return resp, nil
}

func TestE2E_AdminContentFlows(t *testing.T) {
	suite := newE2ESuite(t)
	suite.login(t)

	t.Run("program create then list", suite.testProgramCreateThenList)
	t.Run("contact form admin only", suite.testContactFormAdminOnly)
	t.Run("oversized gallery image", suite.testOversizedGalleryImage)
	t.Run("public site snapshot", suite.testPublicSite)
}

func newE2ESuite(t *testing.T) *e2eSuite {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb, err := db.Open(db.Options{
		Driver: db.DriverSQLite,
		Path:   fmt.Sprintf("file:e2e-%d?mode=memory&cache=shared", time.Now().UnixNano()),
		Silent: true,
	})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})
	if err := db.EnsureUser(gdb, "admin", "gosec_admin"); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}

	defaults, err := fallback.Load()
	if err != nil {
		t.Fatalf("failed to load defaults: %v", err)
	}
	cfg := config.AppConfig{
		UploadDir:      t.TempDir(),
		UploadURLPath:  "/api/uploads",
		MaxUploadBytes: config.DefaultMaxUploadBytes,
		PublicBaseURL:  "http://example.test",
		JWTSecret:      "e2e-secret",
		TokenTTL:       time.Hour,
		SessionSecret:  "e2e-session-secret",
	}
	blobs, err := storage.NewLocalStorage(cfg.UploadDir, cfg.UploadURLPath)
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	api := handler.NewAPI(gdb, handler.Options{
		Storage:        blobs,
		MaxUploadBytes: cfg.MaxUploadBytes,
		PublicBaseURL:  cfg.PublicBaseURL,
		UploadURLPath:  cfg.UploadURLPath,
		JWTSecret:      cfg.JWTSecret,
		TokenTTL:       cfg.TokenTTL,
		Defaults:       defaults,
	})
	engine := router.SetupRouter(api, cfg, nil)

	return &e2eSuite{
		handler:   engine,
		public:    newLocalClient(engine, false),
		admin:     newLocalClient(engine, true),
		baseURL:   "http://example.test",
		uploadDir: cfg.UploadDir,
		db:        gdb,
	}
}

func (s *e2eSuite) login(t *testing.T) {
	t.Helper()
	form := url.Values{
		"username": {"admin"},
		"password": {"gosec_admin"},
	}
	resp := s.mustRequest(t, s.admin, http.MethodPost, "/api/auth/login", strings.NewReader(form.Encode()),
		map[string]string{"Content-Type": "application/x-www-form-urlencoded"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login failed, status %d: %s", resp.StatusCode, readBody(t, resp))
	}
	var token struct {
		AccessToken string `json:"access_token"`
	}
	decodeJSON(t, resp, &token)
	if token.AccessToken == "" {
		t.Fatal("login returned empty token")
	}
	s.token = token.AccessToken
}

func (s *e2eSuite) testProgramCreateThenList(t *testing.T) {
	for _, p := range []map[string]interface{}{
		{"title_en": "Basketball", "title_fr": "Basketball", "order": 2},
		{"title_en": "Soccer", "title_fr": "Soccer", "order": 1},
	} {
		resp := s.mustRequestJSON(t, s.admin, http.MethodPost, "/api/programs", s.token, p)
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("create program: expected 201, got %d: %s", resp.StatusCode, readBody(t, resp))
		}
		var created struct {
			ID string `json:"id"`
		}
		decodeJSON(t, resp, &created)
		if created.ID == "" {
			t.Fatal("expected assigned id")
		}
	}

	resp := s.mustRequest(t, s.public, http.MethodGet, "/api/programs", nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list programs: expected 200, got %d", resp.StatusCode)
	}
	var programs []struct {
		TitleEN string `json:"title_en"`
		Order   int    `json:"order"`
	}
	decodeJSON(t, resp, &programs)
	if len(programs) != 2 || programs[0].TitleEN != "Soccer" || programs[1].TitleEN != "Basketball" {
		t.Fatalf("expected programs ordered by order, got %+v", programs)
	}
}

func (s *e2eSuite) testContactFormAdminOnly(t *testing.T) {
	resp := s.mustRequestJSON(t, s.public, http.MethodPost, "/api/forms/contact", "", map[string]interface{}{
		"first_name": "A",
		"last_name":  "B",
		"email":      "a@b.com",
		"message":    "hi",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("submit contact: expected 201, got %d: %s", resp.StatusCode, readBody(t, resp))
	}
	var submitted struct {
		ID string `json:"id"`
	}
	decodeJSON(t, resp, &submitted)

	resp = s.mustRequestJSON(t, s.admin, http.MethodGet, "/api/forms/contact", s.token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("admin list: expected 200, got %d", resp.StatusCode)
	}
	var submissions []struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	}
	decodeJSON(t, resp, &submissions)
	found := false
	for _, item := range submissions {
		if item.ID == submitted.ID && item.Email == "a@b.com" {
			found = true
		}
	}
	if !found {
		t.Fatalf("submission %s missing from admin list %+v", submitted.ID, submissions)
	}

	resp = s.mustRequest(t, s.public, http.MethodGet, "/api/forms/contact", nil, nil)
	if resp.StatusCode != http.StatusUnauthorized && resp.StatusCode != http.StatusForbidden {
		t.Fatalf("anonymous list: expected 401/403, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func (s *e2eSuite) testOversizedGalleryImage(t *testing.T) {
	resp := s.mustRequestJSON(t, s.admin, http.MethodPost, "/api/gallery", s.token, map[string]interface{}{
		"title_en":  "Tournament",
		"title_fr":  "Tournoi",
		"image_url": "https://images.example.org/tournament.jpg",
		"order":     1,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create gallery item: expected 201, got %d: %s", resp.StatusCode, readBody(t, resp))
	}
	before := readBody(t, resp)
	var original struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal([]byte(before), &original); err != nil {
		t.Fatalf("decode gallery item: %v", err)
	}

	// 12MB 的 JPEG 超过 10 MiB 上限
	large := make([]byte, 12<<20)
	copy(large, []byte{0xFF, 0xD8, 0xFF, 0xE0})
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if err := writer.WriteField("title_en", "Should not apply"); err != nil {
		t.Fatalf("write field: %v", err)
	}
	part, err := writer.CreateFormFile("image", "large.jpg")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(large); err != nil {
		t.Fatalf("write image: %v", err)
	}
	writer.Close()

	resp = s.mustRequest(t, s.admin, http.MethodPut, "/api/gallery/"+original.ID+"/with-image", &body, map[string]string{
		"Content-Type":  writer.FormDataContentType(),
		"Authorization": "Bearer " + s.token,
	})
	if resp.StatusCode != http.StatusRequestEntityTooLarge {
		t.Fatalf("oversized image: expected 413, got %d: %s", resp.StatusCode, readBody(t, resp))
	}
	resp.Body.Close()

	resp = s.mustRequest(t, s.public, http.MethodGet, "/api/gallery/"+original.ID, nil, nil)
	if after := readBody(t, resp); after != before {
		t.Fatalf("gallery item changed after rejected upload:\nbefore=%s\nafter=%s", before, after)
	}

	var assets int64
	if err := s.db.Model(&db.MediaAsset{}).Count(&assets).Error; err != nil {
		t.Fatalf("count assets: %v", err)
	}
	if assets != 0 {
		t.Fatalf("expected no media assets, got %d", assets)
	}
}

func (s *e2eSuite) testPublicSite(t *testing.T) {
	resp := s.mustRequest(t, s.public, http.MethodGet, "/api/site?lang=fr", nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("site: expected 200, got %d", resp.StatusCode)
	}
	var snapshot service.SiteSnapshot
	decodeJSON(t, resp, &snapshot)
	if snapshot.Language != "fr" || snapshot.Fallback {
		t.Fatalf("unexpected snapshot header %+v", snapshot)
	}
	if len(snapshot.Gallery) != 1 || snapshot.Gallery[0].Title != "Tournoi" {
		t.Fatalf("expected localized gallery, got %+v", snapshot.Gallery)
	}
}

func (s *e2eSuite) mustRequest(t *testing.T, client httpClient, method, path string, body io.Reader, headers map[string]string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, s.baseURL+path, body)
	if err != nil {
		t.Fatalf("failed to build request %s %s: %v", method, path, err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request %s %s failed: %v", method, path, err)
	}
	return resp
}

func (s *e2eSuite) mustRequestJSON(t *testing.T, client httpClient, method, path, token string, payload map[string]interface{}) *http.Response {
	t.Helper()
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("failed to marshal payload: %v", err)
		}
		body = bytes.NewReader(data)
	}
	headers := map[string]string{"Content-Type": "application/json"}
	if token != "" {
		headers["Authorization"] = "Bearer " + token
	}
	return s.mustRequest(t, client, method, path, body, headers)
}

func decodeJSON(t *testing.T, resp *http.Response, dst interface{}) {
	t.Helper()
	body := readBody(t, resp)
	if err := json.Unmarshal([]byte(body), dst); err != nil {
		t.Fatalf("failed to decode json: %v\nbody=%s", err, body)
	}
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}
	return string(data)
}
