package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/gosecsite/internal/db"
)

func TestSubmitContactSetsCreatedAt(t *testing.T) {
	gdb := setupTestDB(t)
	fixed := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	forms := NewFormService(gdb).WithClock(func() time.Time { return fixed })
	ctx := context.Background()

	created, err := forms.SubmitContact(ctx, ContactInput{
		FirstName: "A",
		LastName:  "B",
		Email:     "a@b.com",
		Message:   "  Use <b>bold</b> and a <tag> please, l'équipe  ",
	})
	if err != nil {
		t.Fatalf("submit contact: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected id")
	}
	if !created.CreatedAt.Equal(fixed) {
		t.Fatalf("expected created_at %s, got %s", fixed, created.CreatedAt)
	}
	if created.Message != "Use <b>bold</b> and a <tag> please, l'équipe" {
		t.Fatalf("expected message stored as submitted, got %q", created.Message)
	}

	got, err := forms.Get(ctx, FormContact, created.ID)
	if err != nil {
		t.Fatalf("get contact: %v", err)
	}
	stored := got.(*db.ContactSubmission)
	if diff := cmp.Diff(created, stored); diff != "" {
		t.Fatalf("stored submission differs from created (-created +stored):\n%s", diff)
	}
	if !stored.CreatedAt.Equal(fixed) {
		t.Fatalf("expected stored created_at %s, got %s", fixed, stored.CreatedAt)
	}
}

func TestSubmitValidation(t *testing.T) {
	forms := NewFormService(setupTestDB(t))
	ctx := context.Background()

	cases := []struct {
		name   string
		submit func() error
		field  string
	}{
		{"contact missing message", func() error {
			_, err := forms.SubmitContact(ctx, ContactInput{FirstName: "A", LastName: "B", Email: "a@b.com"})
			return err
		}, "message"},
		{"join bad email", func() error {
			_, err := forms.SubmitJoin(ctx, JoinInput{Name: "A", Email: "nope"})
			return err
		}, "email"},
		{"donate zero amount", func() error {
			_, err := forms.SubmitDonate(ctx, DonateInput{Name: "A", Email: "a@b.com", Amount: 0})
			return err
		}, "amount"},
		{"join blank name", func() error {
			_, err := forms.SubmitJoin(ctx, JoinInput{Name: "   ", Email: "a@b.com"})
			return err
		}, "name"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.submit()
			var fields FieldErrors
			if !errors.As(err, &fields) {
				t.Fatalf("expected field errors, got %v", err)
			}
			if _, ok := fields[tc.field]; !ok {
				t.Fatalf("expected %s to be reported, got %v", tc.field, fields)
			}
		})
	}
}

func TestListSubmissionsNewestFirst(t *testing.T) {
	gdb := setupTestDB(t)
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	forms := NewFormService(gdb).WithClock(func() time.Time {
		now = now.Add(time.Minute)
		return now
	})
	ctx := context.Background()

	for _, name := range []string{"first", "second", "third"} {
		if _, err := forms.SubmitJoin(ctx, JoinInput{Name: name, Email: name + "@example.com"}); err != nil {
			t.Fatalf("submit %s: %v", name, err)
		}
	}

	listed, err := forms.List(ctx, FormJoin)
	if err != nil {
		t.Fatalf("list joins: %v", err)
	}
	items := listed.([]db.JoinSubmission)
	if len(items) != 3 || items[0].Name != "third" || items[2].Name != "first" {
		t.Fatalf("expected newest first, got %#v", items)
	}
}

func TestDeleteSubmissionAndUnknownVariant(t *testing.T) {
	forms := NewFormService(setupTestDB(t))
	ctx := context.Background()

	donation, err := forms.SubmitDonate(ctx, DonateInput{Name: "A", Email: "a@b.com", Amount: 25})
	if err != nil {
		t.Fatalf("submit donate: %v", err)
	}
	if err := forms.Delete(ctx, FormDonate, donation.ID); err != nil {
		t.Fatalf("delete donate: %v", err)
	}
	if _, err := forms.Get(ctx, FormDonate, donation.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := forms.Delete(ctx, FormDonate, donation.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
	if _, err := forms.List(ctx, "newsletter"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected unknown variant to be not found, got %v", err)
	}
}
