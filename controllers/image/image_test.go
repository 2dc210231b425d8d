package imageController_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"spotsure/config"
	imageRoutes "spotsure/routers/imageRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	config.AppConfig = &config.Config{
		UploadDir:        t.TempDir(),
		DeleteCodeLength: 6,
	}

	app := fiber.New()
	imageRoutes.SetupImageRoutes(app)
	return app
}

func TestGetImageFromDisk(t *testing.T) {
	app := setupApp(t)

	blob := []byte("not really a jpeg")
	require.NoError(t, os.WriteFile(filepath.Join(config.AppConfig.UploadDir, "abc123.jpg"), blob, 0644))

	req := httptest.NewRequest(http.MethodGet, "/image/abc123.jpg", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, blob, body)
}

func TestGetImageMissing(t *testing.T) {
	app := setupApp(t)

	req := httptest.NewRequest(http.MethodGet, "/image/nope.jpg", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
