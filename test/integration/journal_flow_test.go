package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"ai-journal-be/internal/bootstrap"
	"ai-journal-be/internal/config"
	"ai-journal-be/internal/dto"
	"ai-journal-be/internal/entity"
	"ai-journal-be/internal/model"
	"ai-journal-be/internal/pkg/serverutils"
	"ai-journal-be/internal/repository/specification"
	"ai-journal-be/internal/repository/unitofwork"
	"ai-journal-be/internal/server"
	"ai-journal-be/pkg/database"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeInference serves canned tagging and mood outputs keyed by the model
// name in the request, standing in for the external inference service.
func fakeInference(t *testing.T) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Model string `json:"model"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad inference request: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		switch req.Model {
		case "fake-tagging":
			w.Write([]byte(`{"text":"{\"tags\":[\"integration\",\"journal\"]}"}`))
		case "fake-mood":
			w.Write([]byte(`{"text":"{\"mood_score\":4,\"explanation\":\"Positive test entry.\"}"}`))
		default:
			t.Errorf("unexpected model %q", req.Model)
			w.WriteHeader(http.StatusBadRequest)
		}
	}))
}

func signToken(t *testing.T, secret, uid string) string {
	claims := jwt.MapClaims{
		"sub":   uid,
		"email": uid + "@example.com",
		"name":  "Flow Tester",
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func apiRequest(t *testing.T, app *fiber.App, method, url, token string, body interface{}) *http.Response {
	var reader *strings.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = strings.NewReader(string(raw))
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeData[T any](t *testing.T, resp *http.Response) T {
	var envelope serverutils.ApiResponse[T]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return envelope.Data
}

func TestJournalFlow(t *testing.T) {
	if err := godotenv.Load("../../.env"); err != nil {
		t.Logf("Warning: Could not load ../../.env: %v", err)
	}
	if os.Getenv("DB_CONNECTION_STRING") == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}
	if os.Getenv("JWT_SECRET") == "" {
		os.Setenv("JWT_SECRET", "default_secret")
	}

	inference := fakeInference(t)
	defer inference.Close()
	os.Setenv("AI_BASE_URL", inference.URL)
	os.Setenv("AI_TAGGING_MODEL", "fake-tagging")
	os.Setenv("AI_MOOD_MODEL", "fake-mood")

	cfg := config.Load()

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Thought{},
		&model.Tag{},
		&model.ThoughtTag{},
		&model.AnalysisJob{},
		&model.ThoughtMood{},
	))

	container := bootstrap.NewContainer(db, cfg)
	require.NoError(t, container.ConsumerService.Consume(context.Background()))

	srv := server.New(cfg, container)
	app := srv.GetApp()

	uid := fmt.Sprintf("flow-tester-%d", time.Now().UnixNano())
	token := signToken(t, cfg.Auth.JWTSecret, uid)
	defer func() {
		db.Exec("DELETE FROM analysis_jobs WHERE uid = ?", uid)
		db.Exec("DELETE FROM thought_moods WHERE uid = ?", uid)
		db.Exec("DELETE FROM thought_tags WHERE thought_id IN (SELECT id FROM thoughts WHERE uid = ?)", uid)
		db.Exec("DELETE FROM tags WHERE uid = ?", uid)
		db.Exec("DELETE FROM thoughts WHERE uid = ?", uid)
		db.Exec("DELETE FROM users WHERE uid = ?", uid)
	}()

	// 1. Create a thought
	resp := apiRequest(t, app, "POST", "/api/thought/v1", token, dto.CreateThoughtRequest{
		Body: "Great day at the lake, feeling refreshed.",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	created := decodeData[dto.CreateThoughtResponse](t, resp)
	require.NotZero(t, created.Id)

	// 2. Poll status until the pipeline settles
	statusURL := fmt.Sprintf("/api/thought/v1/%d/status", created.Id)
	var status dto.ThoughtStatusResponse
	deadline := time.Now().Add(15 * time.Second)
	for {
		resp = apiRequest(t, app, "GET", statusURL, token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		status = decodeData[dto.ThoughtStatusResponse](t, resp)
		if status.Status == "done" || time.Now().After(deadline) {
			break
		}
		time.Sleep(200 * time.Millisecond)
	}
	require.Equal(t, "done", status.Status, "pipeline did not finish: %+v", status)
	assert.Equal(t, 2, status.Total)
	assert.Equal(t, 2, status.Done)

	// One finished job per step, each with a counted attempt
	uow := unitofwork.NewRepositoryFactory(db).NewUnitOfWork(context.Background())
	jobs, err := uow.AnalysisJobRepository().FindAll(context.Background(),
		specification.ByThoughtID{ThoughtID: created.Id},
		specification.StatusIs{Status: entity.JobStatusDone},
	)
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	for _, job := range jobs {
		assert.GreaterOrEqual(t, job.Attempts, 1)
	}
	taggingJobs, err := uow.AnalysisJobRepository().FindAll(context.Background(),
		specification.ByThoughtID{ThoughtID: created.Id},
		specification.StepIs{Step: entity.StepTagging},
	)
	require.NoError(t, err)
	require.Len(t, taggingJobs, 1)
	assert.NotEmpty(t, taggingJobs[0].Result)

	// 3. Tags landed on the thought
	resp = apiRequest(t, app, "GET", fmt.Sprintf("/api/thought/v1/%d", created.Id), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	shown := decodeData[dto.ThoughtResponse](t, resp)
	assert.ElementsMatch(t, []string{"integration", "journal"}, shown.Tags)

	// 4. Listing with tag intersection filter finds it
	resp = apiRequest(t, app, "GET", "/api/thought/v1?tags=integration,journal", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	listing := decodeData[dto.ListThoughtsResponse](t, resp)
	require.Len(t, listing.Items, 1)
	assert.Equal(t, created.Id, listing.Items[0].Id)

	// A tag the thought does not carry excludes it
	resp = apiRequest(t, app, "GET", "/api/thought/v1?tags=integration,absent", token, nil)
	listing = decodeData[dto.ListThoughtsResponse](t, resp)
	assert.Len(t, listing.Items, 0)

	// 5. Daily counts for the current month include the mood average
	month := time.Now().UTC().Format("2006-01")
	resp = apiRequest(t, app, "GET", "/api/thought/v1/stats/daily?month="+month, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	days := decodeData[[]map[string]interface{}](t, resp)
	require.NotEmpty(t, days)

	// 6. Tag listing is keyset-paged by recency
	resp = apiRequest(t, app, "GET", "/api/tag/v1?limit=1", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	tagPage := decodeData[dto.ListTagsResponse](t, resp)
	require.Len(t, tagPage.Items, 1)
	require.NotEmpty(t, tagPage.NextCursor)

	resp = apiRequest(t, app, "GET", "/api/tag/v1?limit=1&cursor="+tagPage.NextCursor, token, nil)
	secondPage := decodeData[dto.ListTagsResponse](t, resp)
	require.Len(t, secondPage.Items, 1)
	assert.NotEqual(t, tagPage.Items[0].Id, secondPage.Items[0].Id)

	// 7. Profile upserted from token claims by the touch middleware
	resp = apiRequest(t, app, "GET", "/api/user/v1/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	me := decodeData[dto.UserResponse](t, resp)
	assert.Equal(t, uid, me.Uid)

	// 8. Update re-runs the pipeline with fresh jobs
	resp = apiRequest(t, app, "PUT", fmt.Sprintf("/api/thought/v1/%d", created.Id), token, dto.UpdateThoughtRequest{
		Body: "Edited entry, still a good day.",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	deadline = time.Now().Add(15 * time.Second)
	for {
		resp = apiRequest(t, app, "GET", statusURL, token, nil)
		status = decodeData[dto.ThoughtStatusResponse](t, resp)
		if status.Total == 4 && status.Done == 4 || time.Now().After(deadline) {
			break
		}
		time.Sleep(200 * time.Millisecond)
	}
	assert.Equal(t, 4, status.Total, "edit should add a fresh job per step")

	// 9. Delete hides the thought
	resp = apiRequest(t, app, "DELETE", fmt.Sprintf("/api/thought/v1/%d", created.Id), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = apiRequest(t, app, "GET", fmt.Sprintf("/api/thought/v1/%d", created.Id), token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// TestInitialAnalysisQueued checks the write path alone: with no consumer
// running, creating a thought must leave exactly one tagging and one mood
// job behind, both queued, and the status summary must fold them to
// {status: queued, total: 2, queued: 2}.
func TestInitialAnalysisQueued(t *testing.T) {
	if err := godotenv.Load("../../.env"); err != nil {
		t.Logf("Warning: Could not load ../../.env: %v", err)
	}
	if os.Getenv("DB_CONNECTION_STRING") == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}
	if os.Getenv("JWT_SECRET") == "" {
		os.Setenv("JWT_SECRET", "default_secret")
	}

	cfg := config.Load()
	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	require.NoError(t, err)

	// Consume is deliberately never called here.
	container := bootstrap.NewContainer(db, cfg)
	app := server.New(cfg, container).GetApp()

	uid := fmt.Sprintf("queued-tester-%d", time.Now().UnixNano())
	token := signToken(t, cfg.Auth.JWTSecret, uid)
	defer func() {
		db.Exec("DELETE FROM analysis_jobs WHERE uid = ?", uid)
		db.Exec("DELETE FROM thoughts WHERE uid = ?", uid)
		db.Exec("DELETE FROM users WHERE uid = ?", uid)
	}()

	resp := apiRequest(t, app, "POST", "/api/thought/v1", token, dto.CreateThoughtRequest{
		Body: "Entry awaiting analysis.",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	created := decodeData[dto.CreateThoughtResponse](t, resp)

	resp = apiRequest(t, app, "GET", fmt.Sprintf("/api/thought/v1/%d/status", created.Id), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	status := decodeData[dto.ThoughtStatusResponse](t, resp)
	assert.Equal(t, "queued", status.Status)
	assert.Equal(t, 2, status.Total)
	assert.Equal(t, 2, status.Queued)
	assert.Equal(t, 0, status.Processing)
	assert.Equal(t, 0, status.Done)
	assert.Equal(t, 0, status.Error)

	uow := unitofwork.NewRepositoryFactory(db).NewUnitOfWork(context.Background())
	for _, step := range []string{entity.StepTagging, entity.StepMood} {
		jobs, err := uow.AnalysisJobRepository().FindAll(context.Background(),
			specification.ByThoughtID{ThoughtID: created.Id},
			specification.StepIs{Step: step},
		)
		require.NoError(t, err)
		require.Len(t, jobs, 1, "expected exactly one %s job", step)
		assert.Equal(t, entity.JobStatusQueued, jobs[0].Status)
		assert.Equal(t, 0, jobs[0].Attempts)
	}
}

// TestThoughtKeysetPagination walks the listing cursor over a set of thoughts
// where most rows share one created_at, so only the id tie-break keeps the
// pages stable. Concatenated pages must reproduce the unpaged listing exactly.
func TestThoughtKeysetPagination(t *testing.T) {
	if err := godotenv.Load("../../.env"); err != nil {
		t.Logf("Warning: Could not load ../../.env: %v", err)
	}
	if os.Getenv("DB_CONNECTION_STRING") == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}
	if os.Getenv("JWT_SECRET") == "" {
		os.Setenv("JWT_SECRET", "default_secret")
	}

	cfg := config.Load()
	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	require.NoError(t, err)

	container := bootstrap.NewContainer(db, cfg)
	app := server.New(cfg, container).GetApp()

	uid := fmt.Sprintf("keyset-tester-%d", time.Now().UnixNano())
	token := signToken(t, cfg.Auth.JWTSecret, uid)
	defer func() {
		db.Exec("DELETE FROM thoughts WHERE uid = ?", uid)
		db.Exec("DELETE FROM users WHERE uid = ?", uid)
	}()

	// Seed rows directly so created_at collisions are under our control.
	// Postgres stores microseconds, so the cursor round-trips these exactly.
	base := time.Now().UTC().Truncate(time.Microsecond).Add(-time.Hour)
	shared := base.Add(30 * time.Minute)
	stamps := []time.Time{base, base.Add(time.Minute), shared, shared, shared, shared, shared}
	for i, ts := range stamps {
		row := model.Thought{
			Uid:       uid,
			Body:      fmt.Sprintf("seeded entry %d", i),
			CreatedAt: ts,
		}
		require.NoError(t, db.Create(&row).Error)
	}

	resp := apiRequest(t, app, "GET", "/api/thought/v1?limit=100", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	unpaged := decodeData[dto.ListThoughtsResponse](t, resp)
	require.Len(t, unpaged.Items, len(stamps))
	var all []int64
	for _, item := range unpaged.Items {
		all = append(all, item.Id)
	}

	var paged []int64
	cursor := ""
	for {
		url := "/api/thought/v1?limit=3"
		if cursor != "" {
			url += "&cursor=" + cursor
		}
		resp = apiRequest(t, app, "GET", url, token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		page := decodeData[dto.ListThoughtsResponse](t, resp)
		require.LessOrEqual(t, len(page.Items), 3)
		for _, item := range page.Items {
			paged = append(paged, item.Id)
		}
		if page.NextCursor == "" {
			break
		}
		cursor = page.NextCursor
		require.Less(t, len(paged), 50, "cursor walk did not terminate")
	}

	// Same rows, same order, no duplicates, no gaps.
	assert.Equal(t, all, paged)
}

func TestJournalAuthRequired(t *testing.T) {
	if err := godotenv.Load("../../.env"); err != nil {
		t.Logf("Warning: Could not load ../../.env: %v", err)
	}
	if os.Getenv("DB_CONNECTION_STRING") == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	cfg := config.Load()
	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	require.NoError(t, err)

	container := bootstrap.NewContainer(db, cfg)
	app := server.New(cfg, container).GetApp()

	req := httptest.NewRequest("GET", "/api/thought/v1", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
