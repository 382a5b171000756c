package imagestore_test

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
	"testing"

	"tokoadmin/internal/apperror"
	"tokoadmin/internal/config"
	"tokoadmin/internal/imagestore"
	"tokoadmin/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	pngBytes  = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 32)...)
	gifBytes  = append([]byte("GIF89a"), make([]byte, 32)...)
	jpegBytes = append([]byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}, make([]byte, 32)...)
	webpBytes = append([]byte("RIFF\x24\x00\x00\x00WEBPVP8 "), make([]byte, 32)...)
)

var limits = imagestore.Limits{MaxFiles: 3, MaxFileSize: 1024}

func fileHeaders(t *testing.T, files map[string][]byte) []*multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for name, data := range files {
		part, err := w.CreateFormFile("images[]", name)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })
	return form.File["images[]"]
}

func TestSniff(t *testing.T) {
	assert.Equal(t, "image/png", imagestore.Sniff(pngBytes))
	assert.Equal(t, "image/gif", imagestore.Sniff(gifBytes))
	assert.Equal(t, "image/jpeg", imagestore.Sniff(jpegBytes))
	assert.Equal(t, "image/webp", imagestore.Sniff(webpBytes))
	assert.Equal(t, "text/plain", imagestore.Sniff([]byte("hello")))
}

func TestReadUploads(t *testing.T) {
	uploads, err := imagestore.ReadUploads(fileHeaders(t, map[string][]byte{
		"a.png": pngBytes,
		"b.gif": gifBytes,
	}), limits)
	require.NoError(t, err)
	require.Len(t, uploads, 2)
	for _, up := range uploads {
		assert.True(t, strings.HasPrefix(up.ContentType, "image/"))
	}
}

func TestReadUploadsRejects(t *testing.T) {
	t.Run("too many", func(t *testing.T) {
		_, err := imagestore.ReadUploads(fileHeaders(t, map[string][]byte{
			"1.png": pngBytes, "2.png": pngBytes, "3.png": pngBytes, "4.png": pngBytes,
		}), limits)
		assert.True(t, errors.Is(err, apperror.ErrValidation))
	})
	t.Run("too large", func(t *testing.T) {
		big := append(append([]byte{}, pngBytes...), make([]byte, 2048)...)
		_, err := imagestore.ReadUploads(fileHeaders(t, map[string][]byte{"big.png": big}), limits)
		assert.True(t, errors.Is(err, apperror.ErrValidation))
		assert.Contains(t, err.Error(), "too large")
	})
	t.Run("wrong type even with image name", func(t *testing.T) {
		_, err := imagestore.ReadUploads(fileHeaders(t, map[string][]byte{"evil.png": []byte("<script>alert(1)</script>")}), limits)
		assert.True(t, errors.Is(err, apperror.ErrValidation))
		assert.Contains(t, err.Error(), "Invalid file type")
	})
}

func TestInlineStore(t *testing.T) {
	store := imagestore.NewInlineStore()
	img, err := store.Save(context.Background(), imagestore.Upload{Data: pngBytes, ContentType: "image/png"})
	require.NoError(t, err)
	assert.Equal(t, models.ImageInline, img.Kind)
	assert.Equal(t, pngBytes, img.Data)
	assert.True(t, strings.HasPrefix(img.Src(), "data:image/png;base64,"))
}

func TestDiskStore(t *testing.T) {
	dir := t.TempDir()
	store, err := imagestore.NewDiskStore(dir, "https://cdn.example.com")
	require.NoError(t, err)

	img, err := store.Save(context.Background(), imagestore.Upload{Data: gifBytes, ContentType: "image/gif"})
	require.NoError(t, err)
	assert.Equal(t, models.ImageReference, img.Kind)
	assert.True(t, strings.HasPrefix(img.URL, "https://cdn.example.com/uploads/"))
	assert.True(t, strings.HasSuffix(img.URL, ".gif"))

	onDisk := filepath.Join(dir, path.Base(img.URL))
	data, err := os.ReadFile(onDisk)
	require.NoError(t, err)
	assert.Equal(t, gifBytes, data)

	require.NoError(t, store.Remove(context.Background(), img))
	_, err = os.Stat(onDisk)
	assert.True(t, os.IsNotExist(err))
	assert.NoError(t, store.Remove(context.Background(), img), "removing twice is fine")
}

type failingStore struct {
	imagestore.InlineStore
	failAfter int
	saved     int
	removed   int
}

func (s *failingStore) Save(ctx context.Context, up imagestore.Upload) (models.ProductImage, error) {
	if s.saved == s.failAfter {
		return models.ProductImage{}, errors.New("disk full")
	}
	s.saved++
	return models.InlineImage(up.Data, up.ContentType), nil
}

func (s *failingStore) Remove(ctx context.Context, img models.ProductImage) error {
	s.removed++
	return nil
}

func TestSaveAllRollsBack(t *testing.T) {
	store := &failingStore{failAfter: 2}
	ups := []imagestore.Upload{{Filename: "a"}, {Filename: "b"}, {Filename: "c"}}
	_, err := imagestore.SaveAll(context.Background(), store, ups)
	assert.ErrorContains(t, err, "disk full")
	assert.Equal(t, 2, store.removed)
}

func TestNewFromConfig(t *testing.T) {
	store, err := imagestore.New(context.Background(), &config.Config{ImageStorage: config.StorageInline})
	require.NoError(t, err)
	assert.IsType(t, &imagestore.InlineStore{}, store)

	store, err = imagestore.New(context.Background(), &config.Config{ImageStorage: config.StorageDisk, UploadDir: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &imagestore.DiskStore{}, store)

	_, err = imagestore.New(context.Background(), &config.Config{ImageStorage: "ftp"})
	assert.Error(t, err)
}
