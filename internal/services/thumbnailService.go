package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"strconv"

	"github.com/arzan03/FilesManager/internal/db"
	"github.com/arzan03/FilesManager/internal/logging"
	"github.com/arzan03/FilesManager/internal/models"
	"github.com/arzan03/FilesManager/internal/utils"
	"github.com/disintegration/imaging"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ThumbnailService generates the size variants of uploaded images.
type ThumbnailService struct {
	files   FileRepository
	content ContentStore
	log     logging.Logger
}

func NewThumbnailService(files FileRepository, content ContentStore, log logging.Logger) *ThumbnailService {
	return &ThumbnailService{files: files, content: content, log: log.With("service", "thumbnails")}
}

// Process writes one resized copy per ThumbnailWidths entry next to the
// original, at <location>_<width>.
func (s *ThumbnailService) Process(ctx context.Context, job models.ThumbnailJob) error {
	if job.FileID == "" {
		return ErrMissingJobFileID
	}
	if job.UserID == "" {
		return ErrMissingJobUserID
	}

	fileID, err := primitive.ObjectIDFromHex(job.FileID)
	if err != nil {
		return ErrJobFileNotFound
	}
	userID, err := primitive.ObjectIDFromHex(job.UserID)
	if err != nil {
		return ErrJobFileNotFound
	}

	file, err := s.files.FindByID(ctx, fileID)
	if errors.Is(err, db.ErrNotFound) {
		return ErrJobFileNotFound
	}
	if err != nil {
		return internal(err)
	}
	if file.UserID != userID || file.Type != models.TypeImage {
		return ErrJobFileNotFound
	}

	original, err := s.content.Load(ctx, file.LocalPath)
	if err != nil {
		return internal(err)
	}

	_, name, err := image.DecodeConfig(bytes.NewReader(original))
	if err != nil {
		return badRequest("Unsupported image")
	}
	format, err := imaging.FormatFromExtension(name)
	if err != nil {
		return badRequest("Unsupported image")
	}
	img, err := imaging.Decode(bytes.NewReader(original), imaging.AutoOrientation(true))
	if err != nil {
		return badRequest("Unsupported image")
	}

	tasks := make([]utils.Task[string], 0, len(ThumbnailWidths))
	for _, width := range ThumbnailWidths {
		width := width
		tasks = append(tasks, func() (string, error) {
			var buf bytes.Buffer
			thumb := imaging.Resize(img, width, 0, imaging.Lanczos)
			if err := imaging.Encode(&buf, thumb, format); err != nil {
				return "", fmt.Errorf("encode %d: %w", width, err)
			}
			location := file.LocalPath + "_" + strconv.Itoa(width)
			return location, s.content.StoreAt(ctx, location, buf.Bytes())
		})
	}

	_, errs := utils.RunParallel(tasks)
	if err := errors.Join(errs...); err != nil {
		s.log.Error(ctx, "generate thumbnails", "file_id", job.FileID, "error", err)
		return internal(err)
	}

	s.log.Info(ctx, "thumbnails generated", "file_id", job.FileID)
	return nil
}
