package server_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tokoadmin/internal/config"
	"tokoadmin/internal/imagestore"
	"tokoadmin/internal/models"
	"tokoadmin/internal/repositories"
	"tokoadmin/internal/server"
	"tokoadmin/internal/services"
	"tokoadmin/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 32)...)

func newDeps(t *testing.T, storage string, ping func(ctx context.Context) error) (server.Deps, imagestore.Store) {
	t.Helper()
	cfg := &config.Config{
		AppName:           "tokoadmin-test",
		Env:               "test",
		JWTSecret:         "server_secret",
		JWTTTL:            time.Hour,
		ImageStorage:      storage,
		UploadDir:         t.TempDir(),
		UploadMaxFiles:    2,
		UploadMaxFileSize: 1024,
		CORSOrigins:       "*",
	}
	store, err := imagestore.New(context.Background(), cfg)
	require.NoError(t, err)

	tokens := services.NewTokenService(cfg.JWTSecret, cfg.JWTTTL)
	return server.Deps{
		Config:  cfg,
		Log:     logger.Discard(),
		Auth:    services.NewAuthService(repositories.NewMemoryUserRepository(), tokens),
		Catalog: services.NewCatalogService(repositories.NewMemoryProductRepository(), store, imagestore.Limits{MaxFiles: 2, MaxFileSize: 1024}),
		Ping:    ping,
	}, store
}

func TestDiskModeServesUploads(t *testing.T) {
	deps, _ := newDeps(t, config.StorageDisk, nil)
	app := server.New(deps)

	price, stock := 10.0, 1
	product, err := deps.Catalog.Create(context.Background(), services.ProductInput{
		Name:        "Desk Lamp",
		Description: "Warm light",
		Price:       &price,
		Category:    "Home & Garden",
		Stock:       &stock,
	}, []imagestore.Upload{{Filename: "lamp.png", Data: pngBytes}})
	require.NoError(t, err)
	require.Len(t, product.Images, 1)

	img := product.Images[0]
	assert.Equal(t, models.ImageReference, img.Kind)
	assert.Regexp(t, `^/uploads/[0-9a-f-]+\.png$`, img.URL)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, img.URL, nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, pngBytes, body)
}

func TestInlineModeHasNoUploadsRoute(t *testing.T) {
	deps, _ := newDeps(t, config.StorageInline, nil)
	app := server.New(deps)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/uploads/anything.png", nil))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHealthReportsDatabaseFailure(t *testing.T) {
	deps, _ := newDeps(t, config.StorageInline, func(ctx context.Context) error {
		return errors.New("connection refused")
	})
	app := server.New(deps)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), `"database":"unreachable"`)
}

func TestCORSPreflight(t *testing.T) {
	deps, _ := newDeps(t, config.StorageInline, nil)
	app := server.New(deps)

	req := httptest.NewRequest(http.MethodOptions, "/api/products", nil)
	req.Header.Set("Origin", "http://admin.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	resp, err := app.Test(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}
