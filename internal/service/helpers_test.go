package service

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gosecsite/internal/db"
	"github.com/gosecsite/internal/storage"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := db.Open(db.Options{
		Driver: db.DriverSQLite,
		Path:   fmt.Sprintf("file:service-%d?mode=memory&cache=shared", time.Now().UnixNano()),
		Silent: true,
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return gdb
}

type testServices struct {
	db         *gorm.DB
	uploadDir  string
	media      *MediaService
	content    *ContentService
	programs   *ProgramService
	events     *EventService
	gallery    *GalleryService
	leadership *LeadershipService
}

func setupServices(t *testing.T, maxBytes int64) testServices {
	t.Helper()

	gdb := setupTestDB(t)
	dir := t.TempDir()
	blobs, err := storage.NewLocalStorage(dir, "/api/uploads")
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}

	media := NewMediaService(gdb, blobs, maxBytes, nil)
	return testServices{
		db:        gdb,
		uploadDir: dir,
		media:     media,
		content: NewContentService(gdb,
			db.HeroContent{TitleEN: "Default hero", TitleFR: "Bannière par défaut"},
			db.AboutContent{AboutEN: "About us", AboutFR: "À propos"}),
		programs:   NewProgramService(gdb),
		events:     NewEventService(gdb, media),
		gallery:    NewGalleryService(gdb, media),
		leadership: NewLeadershipService(gdb, media),
	}
}

func solidImage(width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 120, A: 255})
		}
	}
	return img
}

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, solidImage(width, height)); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func jpegBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, solidImage(width, height), nil); err != nil {
		t.Fatalf("encode jpeg: %v", err)
	}
	return buf.Bytes()
}

func gifBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := gif.Encode(&buf, solidImage(32, 16), nil); err != nil {
		t.Fatalf("encode gif: %v", err)
	}
	return buf.Bytes()
}

// storedFiles 返回上传目录下的全部文件（相对路径）。
func storedFiles(t *testing.T, dir string) []string {
	t.Helper()
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			rel, _ := filepath.Rel(dir, path)
			files = append(files, filepath.ToSlash(rel))
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk upload dir: %v", err)
	}
	return files
}

func countRows(t *testing.T, gdb *gorm.DB, model interface{}) int64 {
	t.Helper()
	var total int64
	if err := gdb.Model(model).Count(&total).Error; err != nil {
		t.Fatalf("count rows: %v", err)
	}
	return total
}

func strPtr(value string) *string {
	return &value
}

func intPtr(value int) *int {
	return &value
}
