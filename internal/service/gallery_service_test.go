package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/gosecsite/internal/db"
)

func TestGalleryCreateRequiresImageReference(t *testing.T) {
	svcs := setupServices(t, 10<<20)

	_, err := svcs.gallery.Create(context.Background(), GalleryInput{TitleEN: "Match day", TitleFR: "Jour de match"})
	var fields FieldErrors
	if !errors.As(err, &fields) {
		t.Fatalf("expected field errors, got %v", err)
	}
	if _, ok := fields["image_url"]; !ok {
		t.Fatalf("expected image_url to be reported, got %v", fields)
	}

	item, err := svcs.gallery.Create(context.Background(), GalleryInput{
		TitleEN:  "Match day",
		TitleFR:  "Jour de match",
		MediaKey: "gallery.1",
	})
	if err != nil {
		t.Fatalf("create with media key: %v", err)
	}
	if item.ImageURL != "" || item.MediaKey != "gallery.1" {
		t.Fatalf("unexpected item %#v", item)
	}
}

func TestGalleryCreateWithImage(t *testing.T) {
	svcs := setupServices(t, 10<<20)
	ctx := context.Background()

	item, err := svcs.gallery.CreateWithImage(ctx, GalleryInput{TitleEN: "Team", TitleFR: "Équipe", Order: 3},
		&Upload{Filename: "team.jpg", ContentType: "image/jpeg", Data: jpegBytes(t, 40, 30)})
	if err != nil {
		t.Fatalf("create with image: %v", err)
	}
	if !strings.HasPrefix(item.ImageURL, "/api/uploads/gallery/") || !strings.HasSuffix(item.ImageURL, ".jpg") {
		t.Fatalf("expected local upload reference, got %q", item.ImageURL)
	}

	var asset db.MediaAsset
	if err := svcs.db.Where("url = ?", item.ImageURL).First(&asset).Error; err != nil {
		t.Fatalf("expected media asset for %s: %v", item.ImageURL, err)
	}
	if asset.Width != 40 || asset.Height != 30 || asset.ContentType != "image/jpeg" {
		t.Fatalf("unexpected asset %#v", asset)
	}
}

func TestGalleryCreateWithImageValidatesFieldsBeforeUpload(t *testing.T) {
	svcs := setupServices(t, 10<<20)

	_, err := svcs.gallery.CreateWithImage(context.Background(), GalleryInput{TitleEN: "No French title"},
		&Upload{ContentType: "image/png", Data: pngBytes(t, 10, 10)})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if files := storedFiles(t, svcs.uploadDir); len(files) != 0 {
		t.Fatalf("expected no stored files, got %v", files)
	}
	if total := countRows(t, svcs.db, &db.MediaAsset{}); total != 0 {
		t.Fatalf("expected no asset rows, got %d", total)
	}
}

func TestGalleryUpdateWithOversizedImageLeavesRecordUnchanged(t *testing.T) {
	svcs := setupServices(t, 2048)
	ctx := context.Background()

	original, err := svcs.gallery.Create(ctx, GalleryInput{
		TitleEN:  "Original",
		TitleFR:  "Originale",
		ImageURL: "https://images.example.org/original.jpg",
		Order:    1,
	})
	if err != nil {
		t.Fatalf("create gallery item: %v", err)
	}

	_, err = svcs.gallery.UpdateWithImage(ctx, original.ID, GalleryPatch{TitleEN: strPtr("Changed")},
		&Upload{ContentType: "image/jpeg", Data: make([]byte, 4096)})
	if !errors.Is(err, ErrPayloadTooLarge) {
		t.Fatalf("expected ErrPayloadTooLarge, got %v", err)
	}

	fetched, err := svcs.gallery.Get(ctx, original.ID)
	if err != nil {
		t.Fatalf("get gallery item: %v", err)
	}
	if diff := cmp.Diff(original, fetched, ignoreTimestamps); diff != "" {
		t.Fatalf("record changed after failed upload (-before +after):\n%s", diff)
	}
}

func TestGalleryUpdateWithImageReplacesReference(t *testing.T) {
	svcs := setupServices(t, 10<<20)
	ctx := context.Background()

	original, err := svcs.gallery.Create(ctx, GalleryInput{TitleEN: "Old", TitleFR: "Ancien", ImageURL: "https://images.example.org/old.jpg"})
	if err != nil {
		t.Fatalf("create gallery item: %v", err)
	}

	updated, err := svcs.gallery.UpdateWithImage(ctx, original.ID, GalleryPatch{},
		&Upload{ContentType: "image/png", Data: pngBytes(t, 12, 12)})
	if err != nil {
		t.Fatalf("update with image: %v", err)
	}
	if !strings.HasPrefix(updated.ImageURL, "/api/uploads/gallery/") {
		t.Fatalf("expected new upload reference, got %q", updated.ImageURL)
	}
	if updated.TitleEN != "Old" {
		t.Fatalf("title should be unchanged, got %q", updated.TitleEN)
	}

	if _, err := svcs.gallery.UpdateWithImage(ctx, "missing", GalleryPatch{TitleEN: strPtr("x")}, nil); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestEventCreateWithImageAndPatch(t *testing.T) {
	svcs := setupServices(t, 10<<20)
	ctx := context.Background()

	event, err := svcs.events.CreateWithImage(ctx, EventInput{
		DateEN:  "June 14",
		DateFR:  "14 juin",
		TitleEN: "Community Tournament",
		TitleFR: "Tournoi communautaire",
		Order:   1,
	}, &Upload{ContentType: "image/png", Data: pngBytes(t, 16, 16)})
	if err != nil {
		t.Fatalf("create event: %v", err)
	}
	if !strings.HasPrefix(event.ImageURL, "/api/uploads/events/") {
		t.Fatalf("unexpected image url %q", event.ImageURL)
	}

	updated, err := svcs.events.Update(ctx, event.ID, EventPatch{LocationEN: strPtr("Gatineau"), LocationFR: strPtr("Gatineau")})
	if err != nil {
		t.Fatalf("update event: %v", err)
	}
	want := *event
	want.LocationEN, want.LocationFR = "Gatineau", "Gatineau"
	if diff := cmp.Diff(&want, updated, ignoreTimestamps); diff != "" {
		t.Fatalf("unexpected event (-want +got):\n%s", diff)
	}
}

func TestLeadershipOptionalContactFields(t *testing.T) {
	svcs := setupServices(t, 10<<20)
	ctx := context.Background()

	_, err := svcs.leadership.Create(ctx, LeadershipInput{Name: "Jean", RoleEN: "President", RoleFR: "Président", Email: "not-an-email"})
	var fields FieldErrors
	if !errors.As(err, &fields) || fields["email"] == "" {
		t.Fatalf("expected email field error, got %v", err)
	}

	member, err := svcs.leadership.Create(ctx, LeadershipInput{
		Name:     "Jean",
		RoleEN:   "President",
		RoleFR:   "Président",
		Email:    "president@gosec.ca",
		LinkedIn: "https://www.linkedin.com/in/jean",
	})
	if err != nil {
		t.Fatalf("create member: %v", err)
	}

	cleared, err := svcs.leadership.Update(ctx, member.ID, LeadershipPatch{Email: strPtr(""), LinkedIn: strPtr("")})
	if err != nil {
		t.Fatalf("clearing optional fields should be allowed: %v", err)
	}
	if cleared.Email != "" || cleared.LinkedIn != "" || cleared.RoleFR != "Président" {
		t.Fatalf("unexpected member %#v", cleared)
	}

	if _, err := svcs.leadership.Update(ctx, member.ID, LeadershipPatch{LinkedIn: strPtr("not a url")}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for linkedin, got %v", err)
	}
}
