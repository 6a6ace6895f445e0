package adminclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/gosecsite/internal/config"
	"github.com/gosecsite/internal/db"
	"github.com/gosecsite/internal/fallback"
	"github.com/gosecsite/internal/handler"
	"github.com/gosecsite/internal/router"
	"github.com/gosecsite/internal/storage"
)

// localDoer 直接把请求交给 gin 引擎处理，不经过网络。
type localDoer struct {
	handler http.Handler
}

func (d localDoer) Do(req *http.Request) (*http.Response, error) {
	rr := httptest.NewRecorder()
	d.handler.ServeHTTP(rr, req)
	return rr.Result(), nil
}

func newTestClient(t *testing.T) *Client {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb, err := db.Open(db.Options{
		Driver: db.DriverSQLite,
		Path:   fmt.Sprintf("file:adminclient-%d?mode=memory&cache=shared", time.Now().UnixNano()),
		Silent: true,
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})
	if err := db.EnsureUser(gdb, "admin", "gosec_admin"); err != nil {
		t.Fatalf("ensure admin: %v", err)
	}
	defaults, err := fallback.Load()
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}

	cfg := config.AppConfig{
		UploadDir:      t.TempDir(),
		UploadURLPath:  "/api/uploads",
		MaxUploadBytes: 256 << 10,
		JWTSecret:      "client-test-secret",
		TokenTTL:       time.Hour,
		SessionSecret:  "client-test-session",
	}
	blobs, err := storage.NewLocalStorage(cfg.UploadDir, cfg.UploadURLPath)
	if err != nil {
		t.Fatalf("create storage: %v", err)
	}
	api := handler.NewAPI(gdb, handler.Options{
		Storage:        blobs,
		MaxUploadBytes: cfg.MaxUploadBytes,
		UploadURLPath:  cfg.UploadURLPath,
		JWTSecret:      cfg.JWTSecret,
		TokenTTL:       cfg.TokenTTL,
		Defaults:       defaults,
	})
	return New("http://gosec.test", localDoer{handler: router.SetupRouter(api, cfg, nil)})
}

func jpegImage(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{G: 120, B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("encode jpeg: %v", err)
	}
	return buf.Bytes()
}

func TestLoginThenAuthenticate(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	if _, err := client.Login(ctx, "admin", "nope"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for bad password, got %v", err)
	}

	cred, err := client.Login(ctx, "admin", "gosec_admin")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	principal, err := client.Authenticate(ctx, cred)
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if principal.Username != "admin" || !principal.ExpiresAt.Equal(cred.ExpiresAt) {
		t.Fatalf("unexpected principal %#v for %#v", principal, cred)
	}

	if _, err := client.Authenticate(ctx, Credential{}); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized without token, got %v", err)
	}
	if _, err := client.Authenticate(ctx, Credential{AccessToken: cred.AccessToken + "x"}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for tampered token, got %v", err)
	}
}

func TestProgramsResource(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()
	cred, err := client.Login(ctx, "admin", "gosec_admin")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	programs := client.Programs()
	created, err := programs.Create(ctx, cred, map[string]interface{}{
		"title_en":   "Soccer",
		"title_fr":   "Soccer",
		"bullets_en": []string{"Weekly matches"},
		"order":      1,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := programs.Update(ctx, cred, created.ID, map[string]string{"description_fr": "Matchs hebdomadaires"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	want := *created
	want.DescriptionFR = "Matchs hebdomadaires"
	if diff := cmp.Diff(&want, updated, cmpopts.IgnoreFields(db.Record{}, "CreatedAt", "UpdatedAt")); diff != "" {
		t.Fatalf("unexpected program (-want +got):\n%s", diff)
	}

	if _, err := programs.Update(ctx, cred, created.ID, map[string]string{}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for empty patch, got %v", err)
	}
	if _, err := programs.Create(ctx, Credential{}, map[string]string{"title_en": "x", "title_fr": "x"}); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized without credential, got %v", err)
	}

	if err := programs.Delete(ctx, cred, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := programs.Get(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	items, err := programs.List(ctx)
	if err != nil || len(items) != 0 {
		t.Fatalf("expected empty list, got %v %v", items, err)
	}
}

func TestLeadershipWithImageAndValidation(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()
	cred, err := client.Login(ctx, "admin", "gosec_admin")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	leaders := client.Leadership()
	_, err = leaders.CreateWithImage(ctx, cred, map[string]string{"name": "Jean", "role_en": "President"}, nil)
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Fields["role_fr"] == "" {
		t.Fatalf("expected role_fr field error, got %v", err)
	}

	member, err := leaders.CreateWithImage(ctx, cred, map[string]string{
		"name": "Jean", "role_en": "President", "role_fr": "Président", "email": "president@gosec.ca",
	}, &Image{Filename: "jean.jpg", Data: jpegImage(t, 64, 64)})
	if err != nil {
		t.Fatalf("create with image: %v", err)
	}
	if member.ImageURL == "" {
		t.Fatal("expected image url on member")
	}

	if _, err := leaders.UpdateWithImage(ctx, cred, member.ID, nil, &Image{Filename: "notes.txt", Data: []byte("plain text")}); !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("expected ErrUnsupportedType, got %v", err)
	}
	if _, err := leaders.UpdateWithImage(ctx, cred, member.ID, nil, &Image{Filename: "big.jpg", Data: make([]byte, 300<<10)}); !errors.Is(err, ErrPayloadTooLarge) {
		t.Fatalf("expected ErrPayloadTooLarge, got %v", err)
	}

	assets, err := client.Media(ctx)
	if err != nil {
		t.Fatalf("media: %v", err)
	}
	if len(assets) != 1 || assets[0].URL != member.ImageURL {
		t.Fatalf("expected one asset for the member image, got %#v", assets)
	}
}

func TestFormsAndSingletons(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	if err := client.SubmitForm(ctx, "donate", map[string]interface{}{"name": "A", "email": "a@b.com", "amount": 50}, nil); err != nil {
		t.Fatalf("submit donate: %v", err)
	}

	cred, err := client.Login(ctx, "admin", "gosec_admin")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	var donations []db.DonateSubmission
	if err := client.Submissions(ctx, cred, "donate", &donations); err != nil {
		t.Fatalf("list donations: %v", err)
	}
	if len(donations) != 1 || donations[0].Amount != 50 {
		t.Fatalf("unexpected donations %#v", donations)
	}
	if err := client.DeleteSubmission(ctx, cred, "donate", donations[0].ID); err != nil {
		t.Fatalf("delete donation: %v", err)
	}

	hero, err := client.UpdateHero(ctx, cred, map[string]string{"tagline_en": "Play together"})
	if err != nil {
		t.Fatalf("update hero: %v", err)
	}
	if hero.TaglineEN != "Play together" || hero.TitleEN != "Gatineau Ottawa Social Elite Club" {
		t.Fatalf("unexpected hero %#v", hero)
	}
}
