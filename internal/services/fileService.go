package services

import (
	"context"
	"encoding/base64"
	"errors"
	"mime"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/arzan03/FilesManager/internal/db"
	"github.com/arzan03/FilesManager/internal/logging"
	"github.com/arzan03/FilesManager/internal/models"
	"github.com/arzan03/FilesManager/internal/storage"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PageSize is the number of files returned per List call.
const PageSize = 20

// ThumbnailWidths are the derived sizes generated for images and accepted
// as download size variants.
var ThumbnailWidths = []int{500, 250, 100}

// UploadParams is the client-supplied part of a new file. ParentID is a
// hex id, or "" / "0" for the root.
type UploadParams struct {
	Name     string
	Type     string
	ParentID string
	IsPublic bool
	Data     string // base64, required unless Type is folder
}

// FileService implements file upload, listing, publishing and content
// retrieval on top of the file repository and a content store.
type FileService struct {
	files   FileRepository
	content ContentStore
	jobs    JobPublisher
	log     logging.Logger
}

func NewFileService(files FileRepository, content ContentStore, jobs JobPublisher, log logging.Logger) *FileService {
	return &FileService{files: files, content: content, jobs: jobs, log: log.With("service", "files")}
}

// Upload validates p, writes the content (non-folders only) and then the
// record. A failed write never leaves a record behind.
func (s *FileService) Upload(ctx context.Context, owner primitive.ObjectID, p UploadParams) (*models.File, error) {
	switch {
	case p.Name == "":
		return nil, ErrMissingName
	case !models.ValidType(p.Type):
		return nil, ErrMissingType
	case p.Type != models.TypeFolder && p.Data == "":
		return nil, ErrMissingData
	}

	parentID, err := s.resolveUploadParent(ctx, p.ParentID)
	if err != nil {
		return nil, err
	}

	file := &models.File{
		UserID:   owner,
		Name:     p.Name,
		Type:     p.Type,
		IsPublic: p.IsPublic,
		ParentID: parentID,
	}

	if !file.IsFolder() {
		data, err := decodeData(p.Data)
		if err != nil {
			return nil, ErrInvalidData
		}
		file.LocalPath, err = s.content.Store(ctx, data)
		if err != nil {
			s.log.Error(ctx, "store content", "error", err)
			return nil, internal(err)
		}
	}

	id, err := s.files.Insert(ctx, file)
	if err != nil {
		s.log.Error(ctx, "insert file", "error", err)
		if file.LocalPath != "" {
			if rmErr := s.content.Remove(ctx, file.LocalPath); rmErr != nil {
				s.log.Warn(ctx, "remove orphaned content", "path", file.LocalPath, "error", rmErr)
			}
		}
		return nil, internal(err)
	}
	file.ID = id

	if file.Type == models.TypeImage {
		job := models.ThumbnailJob{FileID: id.Hex(), UserID: owner.Hex()}
		if err := s.jobs.Publish(ctx, job); err != nil {
			s.log.Warn(ctx, "enqueue thumbnail job", "file_id", job.FileID, "error", err)
		}
	}

	s.log.Info(ctx, "file uploaded", "file_id", id.Hex(), "type", file.Type)
	return file, nil
}

func (s *FileService) resolveUploadParent(ctx context.Context, raw string) (primitive.ObjectID, error) {
	if isRoot(raw) {
		return models.RootID, nil
	}
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, ErrParentNotFound
	}

	parent, err := s.files.FindByID(ctx, id)
	if errors.Is(err, db.ErrNotFound) {
		return primitive.NilObjectID, ErrParentNotFound
	}
	if err != nil {
		return primitive.NilObjectID, internal(err)
	}
	if !parent.IsFolder() {
		return primitive.NilObjectID, ErrParentNotFolder
	}
	return parent.ID, nil
}

// Show returns a file the requester owns or that is public.
func (s *FileService) Show(ctx context.Context, requester primitive.ObjectID, fileID string) (*models.File, error) {
	file, err := s.find(ctx, fileID)
	if err != nil {
		return nil, err
	}
	if !canRead(file, requester) {
		return nil, ErrNotFound
	}
	return file, nil
}

// List returns one page of the requester's files directly under parentID.
// A parent that is missing or not a folder yields an empty page.
func (s *FileService) List(ctx context.Context, requester primitive.ObjectID, parentID string, page int) ([]models.File, error) {
	if page < 0 {
		page = 0
	}

	parent := models.RootID
	if !isRoot(parentID) {
		id, err := primitive.ObjectIDFromHex(parentID)
		if err != nil {
			return nil, ErrParentNotFound
		}
		folder, err := s.files.FindByID(ctx, id)
		if errors.Is(err, db.ErrNotFound) {
			return []models.File{}, nil
		}
		if err != nil {
			return nil, internal(err)
		}
		if !folder.IsFolder() {
			return []models.File{}, nil
		}
		parent = id
	}

	files, err := s.files.ListByParent(ctx, requester, parent, int64(page)*PageSize, PageSize)
	if err != nil {
		s.log.Error(ctx, "list files", "error", err)
		return nil, internal(err)
	}
	return files, nil
}

// SetVisibility publishes or unpublishes a file owned by requester.
func (s *FileService) SetVisibility(ctx context.Context, requester primitive.ObjectID, fileID string, public bool) (*models.File, error) {
	file, err := s.find(ctx, fileID)
	if err != nil {
		return nil, err
	}
	if file.UserID != requester {
		return nil, ErrForbidden
	}

	updated, err := s.files.SetPublic(ctx, file.ID, public)
	if errors.Is(err, db.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		s.log.Error(ctx, "update visibility", "file_id", fileID, "error", err)
		return nil, internal(err)
	}
	return updated, nil
}

// Download returns the content of a file and its MIME type, derived from
// the file name. requester may be the zero id for anonymous callers, who
// only see public files. size selects a thumbnail variant.
func (s *FileService) Download(ctx context.Context, requester primitive.ObjectID, fileID, size string) ([]byte, string, error) {
	file, err := s.find(ctx, fileID)
	if err != nil {
		return nil, "", err
	}
	if !canRead(file, requester) {
		return nil, "", ErrNotFound
	}
	if file.IsFolder() {
		return nil, "", ErrFolderNoContent
	}

	location := file.LocalPath
	if size != "" {
		if !validSize(size) {
			return nil, "", ErrInvalidSize
		}
		location += "_" + size
	}

	data, err := s.content.Load(ctx, location)
	if errors.Is(err, storage.ErrNoContent) {
		return nil, "", ErrNotFound
	}
	if err != nil {
		s.log.Error(ctx, "load content", "file_id", fileID, "error", err)
		return nil, "", internal(err)
	}
	return data, mimeType(file.Name), nil
}

func (s *FileService) find(ctx context.Context, fileID string) (*models.File, error) {
	id, err := primitive.ObjectIDFromHex(fileID)
	if err != nil {
		return nil, ErrNotFound
	}
	file, err := s.files.FindByID(ctx, id)
	if errors.Is(err, db.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, internal(err)
	}
	return file, nil
}

func canRead(f *models.File, requester primitive.ObjectID) bool {
	return f.IsPublic || (!requester.IsZero() && f.UserID == requester)
}

func isRoot(parentID string) bool {
	return parentID == "" || parentID == "0"
}

func validSize(size string) bool {
	n, err := strconv.Atoi(size)
	return err == nil && slices.Contains(ThumbnailWidths, n)
}

// decodeData accepts padded or unpadded base64 in either the standard or
// the URL-safe alphabet.
func decodeData(s string) ([]byte, error) {
	var err error
	for _, enc := range []*base64.Encoding{
		base64.StdEncoding, base64.RawStdEncoding, base64.URLEncoding, base64.RawURLEncoding,
	} {
		var data []byte
		if data, err = enc.DecodeString(s); err == nil {
			return data, nil
		}
	}
	return nil, err
}

func mimeType(name string) string {
	if t := mime.TypeByExtension(filepath.Ext(name)); t != "" {
		return t
	}
	return "application/octet-stream"
}
