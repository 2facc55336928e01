package services

import (
	"context"
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/arzan03/FilesManager/internal/logging"
	"github.com/arzan03/FilesManager/internal/memstore"
	"github.com/arzan03/FilesManager/internal/models"
	"github.com/arzan03/FilesManager/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fileFixture struct {
	svc   *FileService
	files *memstore.Files
	jobs  *memstore.Jobs
	dir   string
	owner primitive.ObjectID
}

func newFiles(t *testing.T) *fileFixture {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "files_manager")
	files := memstore.NewFiles()
	jobs := memstore.NewJobs()
	return &fileFixture{
		svc:   NewFileService(files, storage.NewLocalStore(dir), jobs, logging.Nop()),
		files: files,
		jobs:  jobs,
		dir:   dir,
		owner: primitive.NewObjectID(),
	}
}

func b64(s string) string { return base64.StdEncoding.EncodeToString([]byte(s)) }

func (f *fileFixture) diskEntries(t *testing.T) int {
	t.Helper()
	entries, err := os.ReadDir(f.dir)
	if os.IsNotExist(err) {
		return 0
	}
	require.NoError(t, err)
	return len(entries)
}

func (f *fileFixture) folder(t *testing.T, name string) *models.File {
	t.Helper()
	dir, err := f.svc.Upload(context.Background(), f.owner, UploadParams{Name: name, Type: models.TypeFolder})
	require.NoError(t, err)
	return dir
}

func TestUpload_ValidationOrder(t *testing.T) {
	fx := newFiles(t)
	ctx := context.Background()

	cases := []struct {
		name   string
		params UploadParams
		want   error
	}{
		{"missing name wins", UploadParams{Type: "bogus"}, ErrMissingName},
		{"missing type", UploadParams{Name: "a"}, ErrMissingType},
		{"invalid type", UploadParams{Name: "a", Type: "video", Data: b64("x")}, ErrMissingType},
		{"missing data", UploadParams{Name: "a", Type: models.TypeFile}, ErrMissingData},
		{"missing data image", UploadParams{Name: "a", Type: models.TypeImage, ParentID: "zzz"}, ErrMissingData},
		{"bad parent id", UploadParams{Name: "a", Type: models.TypeFolder, ParentID: "zzz"}, ErrParentNotFound},
		{"unknown parent", UploadParams{Name: "a", Type: models.TypeFolder, ParentID: primitive.NewObjectID().Hex()}, ErrParentNotFound},
		{"bad base64", UploadParams{Name: "a", Type: models.TypeFile, Data: "%%%"}, ErrInvalidData},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := fx.svc.Upload(ctx, fx.owner, tc.params)
			assert.ErrorIs(t, err, tc.want)
			assert.Equal(t, KindBadRequest, KindOf(err))
		})
	}

	n, _ := fx.files.Count(ctx)
	assert.Zero(t, n)
	assert.Zero(t, fx.diskEntries(t))
}

func TestUpload_ParentIsNotFolder(t *testing.T) {
	fx := newFiles(t)
	ctx := context.Background()

	plain, err := fx.svc.Upload(ctx, fx.owner, UploadParams{Name: "a.txt", Type: models.TypeFile, Data: b64("a")})
	require.NoError(t, err)

	_, err = fx.svc.Upload(ctx, fx.owner, UploadParams{Name: "b.txt", Type: models.TypeFile, Data: b64("b"), ParentID: plain.ID.Hex()})
	assert.ErrorIs(t, err, ErrParentNotFolder)
	assert.Equal(t, 1, fx.diskEntries(t))
}

func TestUpload_FolderHasNoContent(t *testing.T) {
	fx := newFiles(t)

	dir := fx.folder(t, "docs")

	assert.Empty(t, dir.LocalPath)
	assert.Equal(t, models.RootID, dir.ParentID)
	assert.False(t, dir.IsPublic)
	assert.Zero(t, fx.diskEntries(t))
}

func TestUpload_FileWritesOneArtifactAndRoundTrips(t *testing.T) {
	fx := newFiles(t)
	ctx := context.Background()
	dir := fx.folder(t, "docs")

	f, err := fx.svc.Upload(ctx, fx.owner, UploadParams{
		Name: "f.txt", Type: models.TypeFile, Data: b64("hi"), ParentID: dir.ID.Hex(), IsPublic: true,
	})
	require.NoError(t, err)
	assert.False(t, f.ID.IsZero())
	assert.Equal(t, dir.ID, f.ParentID)
	assert.Equal(t, fx.owner, f.UserID)
	assert.True(t, f.IsPublic)
	assert.Equal(t, fx.dir, filepath.Dir(f.LocalPath))
	assert.Equal(t, 1, fx.diskEntries(t))

	data, mimeType, err := fx.svc.Download(ctx, fx.owner, f.ID.Hex(), "")
	require.NoError(t, err)
	assert.Equal(t, "hi", string(data))
	assert.Contains(t, mimeType, "text/plain")

	assert.Empty(t, fx.jobs.Published())
}

func TestUpload_ParentZeroString(t *testing.T) {
	fx := newFiles(t)

	f, err := fx.svc.Upload(context.Background(), fx.owner, UploadParams{Name: "a", Type: models.TypeFolder, ParentID: "0"})
	require.NoError(t, err)
	assert.Equal(t, models.RootID, f.ParentID)
}

func TestUpload_ImageEnqueuesJobAfterRecord(t *testing.T) {
	fx := newFiles(t)
	ctx := context.Background()

	img, err := fx.svc.Upload(ctx, fx.owner, UploadParams{Name: "p.png", Type: models.TypeImage, Data: b64("png")})
	require.NoError(t, err)

	jobs := fx.jobs.Published()
	require.Len(t, jobs, 1)
	assert.Equal(t, img.ID.Hex(), jobs[0].FileID)
	assert.Equal(t, fx.owner.Hex(), jobs[0].UserID)

	_, err = fx.files.FindByID(ctx, img.ID)
	assert.NoError(t, err)
}

func TestUpload_DiskFailureLeavesNoRecord(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	files := memstore.NewFiles()
	svc := NewFileService(files, storage.NewLocalStore(filepath.Join(blocker, "files")), memstore.NewJobs(), logging.Nop())

	_, err := svc.Upload(context.Background(), primitive.NewObjectID(), UploadParams{Name: "a", Type: models.TypeFile, Data: b64("a")})
	assert.Equal(t, KindInternal, KindOf(err))

	n, _ := files.Count(context.Background())
	assert.Zero(t, n)
}

type failingInsertFiles struct {
	*memstore.Files
}

func (failingInsertFiles) Insert(context.Context, *models.File) (primitive.ObjectID, error) {
	return primitive.NilObjectID, errors.New("insert failed")
}

func TestUpload_InsertFailureRemovesContent(t *testing.T) {
	fx := newFiles(t)
	files := failingInsertFiles{Files: memstore.NewFiles()}
	svc := NewFileService(files, storage.NewLocalStore(fx.dir), fx.jobs, logging.Nop())

	_, err := svc.Upload(context.Background(), fx.owner, UploadParams{Name: "p.png", Type: models.TypeImage, Data: b64("a")})
	assert.Equal(t, KindInternal, KindOf(err))

	assert.Zero(t, fx.diskEntries(t))
	assert.Empty(t, fx.jobs.Published())
	n, _ := files.Count(context.Background())
	assert.Zero(t, n)
}

func TestShow_OwnerPublicAndStrangers(t *testing.T) {
	fx := newFiles(t)
	ctx := context.Background()
	stranger := primitive.NewObjectID()

	f, err := fx.svc.Upload(ctx, fx.owner, UploadParams{Name: "a.txt", Type: models.TypeFile, Data: b64("a")})
	require.NoError(t, err)

	got, err := fx.svc.Show(ctx, fx.owner, f.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, f.ID, got.ID)

	_, err = fx.svc.Show(ctx, stranger, f.ID.Hex())
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = fx.svc.Show(ctx, fx.owner, "nope")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = fx.svc.Show(ctx, fx.owner, primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = fx.svc.SetVisibility(ctx, fx.owner, f.ID.Hex(), true)
	require.NoError(t, err)
	_, err = fx.svc.Show(ctx, stranger, f.ID.Hex())
	assert.NoError(t, err)
}

func TestList_Pagination(t *testing.T) {
	fx := newFiles(t)
	ctx := context.Background()
	dir := fx.folder(t, "docs")

	for i := 0; i < 25; i++ {
		_, err := fx.svc.Upload(ctx, fx.owner, UploadParams{Name: "f", Type: models.TypeFolder, ParentID: dir.ID.Hex()})
		require.NoError(t, err)
	}

	page0, err := fx.svc.List(ctx, fx.owner, dir.ID.Hex(), 0)
	require.NoError(t, err)
	assert.Len(t, page0, 20)

	page1, err := fx.svc.List(ctx, fx.owner, dir.ID.Hex(), 1)
	require.NoError(t, err)
	assert.Len(t, page1, 5)

	page2, err := fx.svc.List(ctx, fx.owner, dir.ID.Hex(), 2)
	require.NoError(t, err)
	assert.Empty(t, page2)

	root, err := fx.svc.List(ctx, fx.owner, "0", 0)
	require.NoError(t, err)
	require.Len(t, root, 1)
	assert.Equal(t, dir.ID, root[0].ID)
}

func TestList_ParentEdgeCases(t *testing.T) {
	fx := newFiles(t)
	ctx := context.Background()

	plain, err := fx.svc.Upload(ctx, fx.owner, UploadParams{Name: "a.txt", Type: models.TypeFile, Data: b64("a")})
	require.NoError(t, err)

	got, err := fx.svc.List(ctx, fx.owner, plain.ID.Hex(), 0)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	got, err = fx.svc.List(ctx, fx.owner, primitive.NewObjectID().Hex(), 0)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = fx.svc.List(ctx, fx.owner, "not-an-id", 0)
	assert.ErrorIs(t, err, ErrParentNotFound)
}

func TestList_OnlyRequesterFiles(t *testing.T) {
	fx := newFiles(t)
	ctx := context.Background()
	fx.folder(t, "mine")

	got, err := fx.svc.List(ctx, primitive.NewObjectID(), "", 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSetVisibility_IdempotentAndOwnerOnly(t *testing.T) {
	fx := newFiles(t)
	ctx := context.Background()
	f, err := fx.svc.Upload(ctx, fx.owner, UploadParams{Name: "a.txt", Type: models.TypeFile, Data: b64("a")})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		got, err := fx.svc.SetVisibility(ctx, fx.owner, f.ID.Hex(), true)
		require.NoError(t, err)
		assert.True(t, got.IsPublic)
	}

	got, err := fx.svc.SetVisibility(ctx, fx.owner, f.ID.Hex(), false)
	require.NoError(t, err)
	assert.False(t, got.IsPublic)

	_, err = fx.svc.SetVisibility(ctx, primitive.NewObjectID(), f.ID.Hex(), true)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = fx.svc.SetVisibility(ctx, fx.owner, primitive.NewObjectID().Hex(), true)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDownload_Visibility(t *testing.T) {
	fx := newFiles(t)
	ctx := context.Background()
	anonymous := primitive.NilObjectID
	stranger := primitive.NewObjectID()

	f, err := fx.svc.Upload(ctx, fx.owner, UploadParams{Name: "a.txt", Type: models.TypeFile, Data: b64("secret")})
	require.NoError(t, err)

	for _, who := range []primitive.ObjectID{anonymous, stranger} {
		data, _, err := fx.svc.Download(ctx, who, f.ID.Hex(), "")
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Nil(t, data)
	}

	_, err = fx.svc.SetVisibility(ctx, fx.owner, f.ID.Hex(), true)
	require.NoError(t, err)

	data, _, err := fx.svc.Download(ctx, anonymous, f.ID.Hex(), "")
	require.NoError(t, err)
	assert.Equal(t, "secret", string(data))
}

func TestDownload_FolderAndMissing(t *testing.T) {
	fx := newFiles(t)
	ctx := context.Background()
	dir := fx.folder(t, "docs")

	_, _, err := fx.svc.Download(ctx, fx.owner, dir.ID.Hex(), "")
	assert.ErrorIs(t, err, ErrFolderNoContent)

	_, _, err = fx.svc.Download(ctx, fx.owner, "xyz", "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDownload_SizeVariant(t *testing.T) {
	fx := newFiles(t)
	ctx := context.Background()

	img, err := fx.svc.Upload(ctx, fx.owner, UploadParams{Name: "p.png", Type: models.TypeImage, Data: b64("full")})
	require.NoError(t, err)

	_, _, err = fx.svc.Download(ctx, fx.owner, img.ID.Hex(), "250")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, os.WriteFile(img.LocalPath+"_250", []byte("small"), 0o644))
	data, mimeType, err := fx.svc.Download(ctx, fx.owner, img.ID.Hex(), "250")
	require.NoError(t, err)
	assert.Equal(t, "small", string(data))
	assert.Equal(t, "image/png", mimeType)

	_, _, err = fx.svc.Download(ctx, fx.owner, img.ID.Hex(), "../x")
	assert.ErrorIs(t, err, ErrInvalidSize)
}

func TestDecodeData_Variants(t *testing.T) {
	for _, in := range []string{"aGk=", "aGk", "aGk_", "aGk/"} {
		_, err := decodeData(in)
		assert.NoError(t, err, in)
	}
	data, err := decodeData("aGk")
	require.NoError(t, err)
	assert.Equal(t, "hi", string(data))

	_, err = decodeData("%%%")
	assert.Error(t, err)
}

func TestUpload_UnpaddedData(t *testing.T) {
	fx := newFiles(t)
	ctx := context.Background()

	f, err := fx.svc.Upload(ctx, fx.owner, UploadParams{Name: "f.txt", Type: models.TypeFile, Data: "aGk"})
	require.NoError(t, err)

	data, _, err := fx.svc.Download(ctx, fx.owner, f.ID.Hex(), "")
	require.NoError(t, err)
	assert.Equal(t, "hi", string(data))
}

func TestMimeType_Fallback(t *testing.T) {
	assert.Equal(t, "application/octet-stream", mimeType("README"))
	assert.Equal(t, "image/png", mimeType("x.png"))
}
