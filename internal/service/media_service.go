package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"mime"
	"path"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/gosecsite/internal/db"
	"github.com/gosecsite/internal/storage"
	"go.uber.org/zap"
	_ "golang.org/x/image/webp"
	"gorm.io/gorm"
)

// ThumbnailWidth 是缩略图的最大宽度。
const ThumbnailWidth = 480

// 允许上传的图片类型，值为 image.DecodeConfig 识别出的格式名与扩展名
var allowedImageTypes = map[string]struct {
	format string
	ext    string
}{
	"image/jpeg": {format: "jpeg", ext: ".jpg"},
	"image/png":  {format: "png", ext: ".png"},
	"image/gif":  {format: "gif", ext: ".gif"},
	"image/webp": {format: "webp", ext: ".webp"},
}

// Upload 是一次图片上传的原始内容。
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// MediaPatch 只允许修改替代文本。
type MediaPatch struct {
	AltEN *string `json:"alt_en"`
	AltFR *string `json:"alt_fr"`
}

func (p *MediaPatch) normalize() {
	trimPtr(p.AltEN)
	trimPtr(p.AltFR)
}

func (p MediaPatch) empty() bool {
	return p.AltEN == nil && p.AltFR == nil
}

// MediaService 负责图片校验、落盘、缩略图以及 MediaAsset 记录。
type MediaService struct {
	db       *gorm.DB
	storage  storage.Storage
	maxBytes int64
	log      *zap.Logger
	assets   store[db.MediaAsset]
}

// NewMediaService creates a MediaService instance.
func NewMediaService(gdb *gorm.DB, blobs storage.Storage, maxBytes int64, log *zap.Logger) *MediaService {
	if log == nil {
		log = zap.NewNop()
	}
	return &MediaService{
		db:       gdb,
		storage:  blobs,
		maxBytes: maxBytes,
		log:      log,
		assets:   newStore[db.MediaAsset](gdb, "media asset"),
	}
}

// MaxBytes 返回单张图片的大小上限。
func (s *MediaService) MaxBytes() int64 {
	return s.maxBytes
}

// preparedImage 是通过校验、尚未写入存储的图片。
type preparedImage struct {
	upload      Upload
	contentType string
	key         string
	thumbKey    string
	width       int
	height      int
	thumbnail   []byte
}

// List 返回全部已上传图片，最新的在前。
func (s *MediaService) List(ctx context.Context) ([]db.MediaAsset, error) {
	items := make([]db.MediaAsset, 0)
	if err := s.db.WithContext(ctx).Order("seq DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Get fetches a media asset by id.
func (s *MediaService) Get(ctx context.Context, id string) (*db.MediaAsset, error) {
	return s.assets.get(ctx, id)
}

// Open 读取已保存的图片或缩略图，key 不存在时返回 ErrNotFound。
func (s *MediaService) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	rc, err := s.storage.Open(ctx, key)
	if errors.Is(err, storage.ErrObjectNotFound) {
		return nil, notFound("upload", key)
	}
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	return rc, nil
}

// Upload 校验并保存一张独立图片，alt 为可选的替代文本。
func (s *MediaService) Upload(ctx context.Context, upload Upload, category string, alt MediaPatch) (*db.MediaAsset, error) {
	alt.normalize()
	return s.WithUpload(ctx, &upload, category, func(_ *gorm.DB, asset *db.MediaAsset) error {
		if alt.AltEN != nil {
			asset.AltEN = *alt.AltEN
		}
		if alt.AltFR != nil {
			asset.AltFR = *alt.AltFR
		}
		return nil
	})
}

// Update 修改图片的替代文本。
func (s *MediaService) Update(ctx context.Context, id string, patch MediaPatch) (*db.MediaAsset, error) {
	patch.normalize()
	if patch.empty() {
		return nil, ErrNoFieldsToUpdate
	}
	return s.assets.update(ctx, id, func(asset *db.MediaAsset) error {
		if patch.AltEN != nil {
			asset.AltEN = *patch.AltEN
		}
		if patch.AltFR != nil {
			asset.AltFR = *patch.AltFR
		}
		return nil
	})
}

// WithUpload 是“带图片写入”的统一入口：
// 先完成全部校验，再写文件，最后在一个事务里写 MediaAsset 和调用方的记录。
// upload 为 nil 时只在事务里执行 write；事务失败时删除已写入的文件。
// write 在 asset 写入之前被调用，可以修改 asset（如替代文本）。
func (s *MediaService) WithUpload(ctx context.Context, upload *Upload, category string, write func(tx *gorm.DB, asset *db.MediaAsset) error) (*db.MediaAsset, error) {
	if upload == nil {
		return nil, s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return write(tx, nil)
		})
	}

	prepared, err := s.prepare(*upload, category)
	if err != nil {
		return nil, err
	}

	if err := s.persist(ctx, prepared); err != nil {
		return nil, err
	}

	asset := &db.MediaAsset{
		Key:          prepared.key,
		URL:          s.storage.URL(prepared.key),
		ThumbnailURL: s.storage.URL(prepared.thumbKey),
		ContentType:  prepared.contentType,
		Size:         int64(len(prepared.upload.Data)),
		Width:        prepared.width,
		Height:       prepared.height,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if write != nil {
			if err := write(tx, asset); err != nil {
				return err
			}
		}
		return tx.Create(asset).Error
	})
	if err != nil {
		s.discard(prepared)
		return nil, err
	}
	return asset, nil
}

// prepare 只做内存中的校验与缩略图生成，不产生任何副作用。
func (s *MediaService) prepare(upload Upload, category string) (*preparedImage, error) {
	contentType := normalizeContentType(upload.ContentType)
	allowed, ok := allowedImageTypes[contentType]
	if !ok {
		return nil, fmt.Errorf("%w: %q (allowed: jpeg, png, gif, webp)", ErrUnsupportedMediaType, upload.ContentType)
	}
	if s.maxBytes > 0 && int64(len(upload.Data)) > s.maxBytes {
		return nil, fmt.Errorf("%w: image exceeds %d bytes", ErrPayloadTooLarge, s.maxBytes)
	}
	if len(upload.Data) == 0 {
		return nil, FieldErrors{"image": "is empty"}
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(upload.Data))
	if err != nil {
		return nil, fmt.Errorf("%w: content is not a valid %s image", ErrUnsupportedMediaType, allowed.format)
	}
	if format != allowed.format {
		return nil, fmt.Errorf("%w: declared %s but content is %s", ErrUnsupportedMediaType, contentType, format)
	}

	thumbnail, thumbExt, err := makeThumbnail(upload.Data, format)
	if err != nil {
		return nil, fmt.Errorf("%w: decode image: %v", ErrUnsupportedMediaType, err)
	}

	name := uuid.NewString()
	folder := sanitizeCategory(category)
	return &preparedImage{
		upload:      upload,
		contentType: contentType,
		key:         path.Join(folder, name+allowed.ext),
		thumbKey:    path.Join(folder, "thumbs", name+thumbExt),
		width:       cfg.Width,
		height:      cfg.Height,
		thumbnail:   thumbnail,
	}, nil
}

func (s *MediaService) persist(ctx context.Context, prepared *preparedImage) error {
	if err := s.storage.Save(ctx, prepared.key, bytes.NewReader(prepared.upload.Data), prepared.contentType); err != nil {
		return fmt.Errorf("store image: %w", err)
	}
	thumbType := "image/jpeg"
	if strings.HasSuffix(prepared.thumbKey, ".png") {
		thumbType = "image/png"
	}
	if err := s.storage.Save(ctx, prepared.thumbKey, bytes.NewReader(prepared.thumbnail), thumbType); err != nil {
		s.discard(prepared)
		return fmt.Errorf("store thumbnail: %w", err)
	}
	return nil
}

// discard 清理已写入的文件，使用独立的 context，避免请求取消后残留文件。
func (s *MediaService) discard(prepared *preparedImage) {
	ctx := context.Background()
	for _, key := range []string{prepared.key, prepared.thumbKey} {
		exists, err := s.storage.Exists(ctx, key)
		if err != nil {
			s.log.Warn("failed to check orphaned upload", zap.String("key", key), zap.Error(err))
			continue
		}
		if !exists {
			continue
		}
		if err := s.storage.Delete(ctx, key); err != nil {
			s.log.Warn("failed to remove orphaned upload", zap.String("key", key), zap.Error(err))
		}
	}
}

func makeThumbnail(data []byte, format string) ([]byte, string, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, "", err
	}
	if img.Bounds().Dx() > ThumbnailWidth {
		img = imaging.Resize(img, ThumbnailWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if format == "png" {
		if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), ".png", nil
	}
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(82)); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), ".jpg", nil
}

func normalizeContentType(raw string) string {
	mediaType, _, err := mime.ParseMediaType(strings.TrimSpace(raw))
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(raw))
	}
	if mediaType == "image/jpg" || mediaType == "image/pjpeg" {
		return "image/jpeg"
	}
	return mediaType
}

func sanitizeCategory(category string) string {
	cleaned := strings.Trim(path.Clean("/"+strings.ToLower(strings.TrimSpace(category))), "/")
	if cleaned == "" {
		return "media"
	}
	return cleaned
}
