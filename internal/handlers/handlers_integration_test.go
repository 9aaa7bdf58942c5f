package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"skincache/internal/clients"
	"skincache/internal/dispatch"
	"skincache/internal/handlers"
	"skincache/internal/models"
	"skincache/internal/repositories"
	"skincache/internal/services"
)

type testClock struct {
	current time.Time
}

func (c *testClock) Now() time.Time { return c.current }

var testDBCounter int

// setupApp wires a full Fiber app against an in-memory sqlite database, with
// every external integration left unconfigured.
func setupApp(t *testing.T) (*fiber.App, *testClock) {
	t.Helper()

	testDBCounter++
	dsn := fmt.Sprintf("file:handlertest%d?mode=memory&cache=shared", testDBCounter)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Review{}, &models.Tracker{}))

	userRepo := repositories.NewGORMUserRepository(db)
	reviewRepo := repositories.NewGORMReviewRepository(db)
	trackerRepo := repositories.NewGORMTrackerRepository(db)

	dispatcher := dispatch.New(8, 1)
	dispatcher.Start()
	t.Cleanup(dispatcher.Stop)

	clock := &testClock{current: time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)}

	sheets := clients.NewSheetsClient()
	waitlistService := services.NewWaitlistService(userRepo, sheets, "", nil, dispatcher, nil)
	reviewService := services.NewReviewService(reviewRepo, sheets, "", dispatcher, nil)
	streakService := services.NewStreakService(trackerRepo, clock.Now)
	analysisService := services.NewAnalysisService(
		clients.NewVisionClient("http://unused", "", ""),
		clients.NewAirQualityClient("http://unused", ""),
	)
	ingredientService := services.NewIngredientService(clients.NewGenAIClient("http://unused", ""))

	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "SkinCache is live"})
	})
	handlers.NewWaitlistHandler(waitlistService).RegisterRoutes(app)
	handlers.NewReviewHandler(reviewService).RegisterRoutes(app)
	handlers.NewChallengeHandler(streakService).RegisterRoutes(app)
	handlers.NewAnalysisHandler(analysisService, ingredientService).RegisterRoutes(app)

	return app, clock
}

func doJSON(t *testing.T, app *fiber.App, method, path string, payload interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]interface{}
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

func TestLiveness(t *testing.T) {
	app, _ := setupApp(t)

	resp, body := doJSON(t, app, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "SkinCache is live", body["status"])
}

func TestJoinThenDuplicateEmail(t *testing.T) {
	app, _ := setupApp(t)

	resp, body := doJSON(t, app, http.MethodPost, "/join", fiber.Map{"name": "Ana", "email": "a@x.com"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Success", body["message"])

	resp, body = doJSON(t, app, http.MethodPost, "/join", fiber.Map{"name": "Ana", "email": "a@x.com"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Email already exists", body["detail"])
}

func TestJoinRejectsInvalidPayload(t *testing.T) {
	app, _ := setupApp(t)

	resp, _ := doJSON(t, app, http.MethodPost, "/join", fiber.Map{"name": "Ana", "email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSubmitReviewThenListNewestFirst(t *testing.T) {
	app, _ := setupApp(t)

	for i := 1; i <= 3; i++ {
		resp, body := doJSON(t, app, http.MethodPost, "/submit-review", fiber.Map{
			"name":     fmt.Sprintf("User %d", i),
			"skinType": "oily",
			"title":    fmt.Sprintf("Review %d", i),
			"review":   "It works.",
		})
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "Review added!", body["message"])
	}

	req := httptest.NewRequest(http.MethodGet, "/reviews", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var reviews []models.Review
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&reviews))
	require.Len(t, reviews, 3)
	assert.Equal(t, "Review 3", reviews[0].Title)
	assert.Equal(t, "Review 1", reviews[2].Title)
	// Defaults applied when the request omits the optional fields.
	assert.Equal(t, "Community Member", reviews[0].Location)
	assert.Equal(t, "User Verification Pending", reviews[0].Concerns)
	assert.Equal(t, 5, reviews[0].Rating)
	assert.Equal(t, "Just now", reviews[0].Time)
}

func TestChallengeStatusForUnknownPair(t *testing.T) {
	app, _ := setupApp(t)

	resp, body := doJSON(t, app, http.MethodPost, "/challenge/status", fiber.Map{
		"email": "a@x.com", "challenge_name": "hydration",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "new", body["status"])
	assert.Equal(t, float64(0), body["day"])
	assert.Nil(t, body["last_checkin"])
}

func TestChallengeCheckinFlow(t *testing.T) {
	app, clock := setupApp(t)
	payload := fiber.Map{"email": "a@x.com", "challenge_name": "hydration"}

	resp, body := doJSON(t, app, http.MethodPost, "/challenge/checkin", payload)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, float64(1), body["day"])

	// Same calendar day: idempotent.
	resp, body = doJSON(t, app, http.MethodPost, "/challenge/checkin", payload)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "already_done", body["status"])
	assert.Equal(t, float64(1), body["day"])

	// Next day advances.
	clock.current = clock.current.AddDate(0, 0, 1)
	_, body = doJSON(t, app, http.MethodPost, "/challenge/checkin", payload)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, float64(2), body["day"])

	// A long gap still only advances by one.
	clock.current = clock.current.AddDate(0, 0, 14)
	_, body = doJSON(t, app, http.MethodPost, "/challenge/checkin", payload)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, float64(3), body["day"])

	_, body = doJSON(t, app, http.MethodPost, "/challenge/status", payload)
	assert.Equal(t, "active", body["status"])
	assert.Equal(t, float64(3), body["day"])
	assert.Equal(t, clock.current.Format("2006-01-02"), body["last_checkin"])
}

func TestChallengeCheckinRejectsMissingFields(t *testing.T) {
	app, _ := setupApp(t)

	resp, _ := doJSON(t, app, http.MethodPost, "/challenge/checkin", fiber.Map{"email": "a@x.com"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAnalyzeWithoutImage(t *testing.T) {
	app, _ := setupApp(t)

	req := httptest.NewRequest(http.MethodPost, "/analyze", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAnalyzeWithoutKeysShortCircuits(t *testing.T) {
	app, _ := setupApp(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("image", "selfie.jpg")
	require.NoError(t, err)
	_, err = fw.Write([]byte("fake image bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/analyze", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "analysis keys missing", body["error"])
}

func TestAnalyzeIngredientsWithNoInput(t *testing.T) {
	app, _ := setupApp(t)

	req := httptest.NewRequest(http.MethodPost, "/analyze-ingredients", strings.NewReader(""))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "no ingredient text or image provided", body["error"])
}
