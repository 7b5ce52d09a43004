package service

import (
	"context"
	"mime"
	"strings"

	"github.com/MKhiriev/umay/internal/logger"
	"github.com/MKhiriev/umay/internal/policy"
	"github.com/MKhiriev/umay/internal/store"
	"github.com/MKhiriev/umay/internal/utils"
	"github.com/MKhiriev/umay/models"
)

type mediaService struct {
	media   store.MediaStorage
	rules   *policy.Rules
	names   *utils.UUIDGenerator
	maxSize int64

	logger *logger.Logger
}

func NewMediaService(media store.MediaStorage, rules *policy.Rules, maxSize int64, logger *logger.Logger) MediaService {
	return &mediaService{
		media:   media,
		rules:   rules,
		names:   utils.NewUUIDGenerator(),
		maxSize: maxSize,
		logger:  logger,
	}
}

// Upload stores an image or a video under a fresh name and returns its URL.
// The extension follows the detected content type, the client file name is
// only logged.
func (s *mediaService) Upload(ctx context.Context, actor models.Account, upload MediaUpload) (models.MediaFile, error) {
	log := logger.FromContext(ctx)

	if err := s.rules.AuthorizeModeration(actor); err != nil {
		return models.MediaFile{}, err
	}
	if s.maxSize > 0 && upload.Size > s.maxSize {
		return models.MediaFile{}, ErrFileTooLarge
	}
	if !allowedMedia(upload.ContentType) {
		return models.MediaFile{}, ErrUnsupportedMediaType
	}

	name := s.names.FileName(mediaExtension(upload.ContentType))
	url, err := s.media.Save(ctx, name, upload.ContentType, upload.Body, upload.Size)
	if err != nil {
		log.Err(err).Str("func", "*mediaService.Upload").Str("name", name).Msg("failed to store media")
		return models.MediaFile{}, err
	}

	log.Info().Str("name", name).Str("original", upload.Name).Int64("size", upload.Size).Msg("media uploaded")
	return models.MediaFile{
		Name:        name,
		URL:         url,
		ContentType: upload.ContentType,
		Size:        upload.Size,
	}, nil
}

func allowedMedia(contentType string) bool {
	return strings.HasPrefix(contentType, "image/") || strings.HasPrefix(contentType, "video/")
}

// mediaExtensions pins the extension for the types http.DetectContentType
// reports, the system table may list several.
var mediaExtensions = map[string]string{
	"image/bmp":    ".bmp",
	"image/gif":    ".gif",
	"image/jpeg":   ".jpg",
	"image/png":    ".png",
	"image/webp":   ".webp",
	"image/x-icon": ".ico",
	"video/avi":    ".avi",
	"video/mp4":    ".mp4",
	"video/webm":   ".webm",
}

func mediaExtension(contentType string) string {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	if ext, ok := mediaExtensions[mediaType]; ok {
		return ext
	}

	exts, err := mime.ExtensionsByType(mediaType)
	if err != nil || len(exts) == 0 {
		return ""
	}
	return exts[0]
}
