package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/nmixx-fans/streaming-backend/internal/config"
	"github.com/nmixx-fans/streaming-backend/internal/database"
	"github.com/nmixx-fans/streaming-backend/internal/handlers"
	"github.com/nmixx-fans/streaming-backend/internal/models"
	"github.com/nmixx-fans/streaming-backend/internal/routes"
	"github.com/nmixx-fans/streaming-backend/internal/services"
	"github.com/nmixx-fans/streaming-backend/internal/storage"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type stubClock struct {
	now time.Time
}

func (c *stubClock) Now() time.Time { return c.now }

type testEnv struct {
	app *fiber.App
	db  *gorm.DB
	clk *stubClock
}

// newTestEnv wires the full route table against a throwaway sqlite database
// and a pinned clock, the same shape main() builds.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Song{}, &models.Verification{}))

	// The health check pings through the package-level handle.
	prev := database.DB
	database.DB = db
	t.Cleanup(func() { database.DB = prev })

	loc, err := time.LoadLocation("Asia/Seoul")
	require.NoError(t, err)
	clk := &stubClock{now: time.Date(2026, time.August, 28, 21, 0, 0, 0, loc)}

	cfg := &config.Config{
		UploadDir:     filepath.Join(t.TempDir(), "uploads"),
		MaxUploadSize: 10 * 1024 * 1024,
		CORSOrigins:   "*",
		Port:          "8080",
	}

	files, err := storage.NewLocalStore(cfg.UploadDir)
	require.NoError(t, err)

	userService := services.NewUserService(db)
	verificationService := services.NewVerificationService(db, files, clk)

	app := fiber.New(fiber.Config{BodyLimit: cfg.MaxUploadSize})
	routes.Setup(app, cfg, routes.Handlers{
		Health:        handlers.NewHealthHandler(clk),
		Auth:          handlers.NewAuthHandler(userService),
		Songs:         handlers.NewSongHandler(services.NewSongService(db)),
		Leaderboard:   handlers.NewLeaderboardHandler(services.NewLeaderboardService(db, clk)),
		Verifications: handlers.NewVerificationHandler(verificationService),
		Users:         handlers.NewUserHandler(userService, verificationService),
		Stats:         handlers.NewStatsHandler(services.NewStatsService(db)),
	})

	return &testEnv{app: app, db: db, clk: clk}
}

func (e *testEnv) seedSong(t *testing.T, title string) models.Song {
	t.Helper()
	song := models.Song{Title: title, Album: "Test Album"}
	require.NoError(t, e.db.Create(&song).Error)
	return song
}

func (e *testEnv) getJSON(t *testing.T, path string, out any) *http.Response {
	t.Helper()
	resp, err := e.app.Test(httptest.NewRequest(http.MethodGet, path, nil))
	require.NoError(t, err)
	if out != nil {
		decodeJSON(t, resp, out)
	}
	return resp
}

func (e *testEnv) postJSON(t *testing.T, path string, body any) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := e.app.Test(req)
	require.NoError(t, err)
	return resp
}

func (e *testEnv) put(t *testing.T, path string) *http.Response {
	t.Helper()
	resp, err := e.app.Test(httptest.NewRequest(http.MethodPut, path, nil))
	require.NoError(t, err)
	return resp
}

// submitForm posts a multipart submission. An empty proofName omits the file
// part entirely.
func (e *testEnv) submitForm(t *testing.T, fields map[string]string, proofName string) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	if proofName != "" {
		part, err := writer.CreateFormFile("proof", proofName)
		require.NoError(t, err)
		_, err = io.Copy(part, strings.NewReader("fake image bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/verifications", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	resp, err := e.app.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func errorMessage(t *testing.T, resp *http.Response) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	decodeJSON(t, resp, &body)
	return body.Error
}
