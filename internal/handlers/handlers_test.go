package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"devflow/internal/db"
	"devflow/internal/handlers"
	"devflow/internal/repositories"
	"devflow/internal/routes"
	"devflow/internal/services"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	database, err := db.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	developerRepo := repositories.NewDeveloperRepository(database)
	taskRepo := repositories.NewTaskRepository(database)
	historyRepo := repositories.NewHistoryRepository(database)
	analyticsRepo := repositories.NewAnalyticsRepository(database)

	developerService := services.NewDeveloperService(developerRepo, taskRepo, analyticsRepo)
	taskService := services.NewTaskService(taskRepo, historyRepo, developerRepo, nil)
	analyticsService := services.NewAnalyticsService(analyticsRepo)

	router := gin.New()
	return routes.SetupRoutes(
		router,
		handlers.NewDeveloperHandler(developerService),
		handlers.NewTaskHandler(taskService),
		handlers.NewAnalyticsHandler(analyticsService, nil),
	)
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) (int, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("%s %s: bad response body %q: %v", method, path, rec.Body.String(), err)
	}
	return rec.Code, env
}

func TestTaskEndpoints(t *testing.T) {
	router := newTestRouter(t)

	code, env := doJSON(t, router, http.MethodPost, "/api/tasks", map[string]interface{}{
		"title":      "Ship release",
		"priority":   "high",
		"tech_stack": []string{"Go"},
	})
	if code != http.StatusCreated || !env.Success {
		t.Fatalf("create: code=%d env=%+v", code, env)
	}

	var created struct {
		ID       string `json:"id"`
		Status   string `json:"status"`
		Priority string `json:"priority"`
	}
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatalf("decode created task: %v", err)
	}
	if created.Status != "backlog" || created.Priority != "high" {
		t.Errorf("created task = %+v", created)
	}

	code, env = doJSON(t, router, http.MethodGet, "/api/tasks/"+created.ID, nil)
	if code != http.StatusOK || !env.Success {
		t.Errorf("get: code=%d env=%+v", code, env)
	}

	code, env = doJSON(t, router, http.MethodPut, "/api/tasks/"+created.ID, map[string]interface{}{
		"title": "Ship release v2",
	})
	if code != http.StatusOK || env.Message != "Task updated successfully" {
		t.Errorf("update: code=%d env=%+v", code, env)
	}

	code, env = doJSON(t, router, http.MethodPatch, "/api/tasks/"+created.ID+"/status", map[string]interface{}{
		"status": "in-progress",
	})
	if code != http.StatusOK || env.Message != "Task status updated successfully" {
		t.Errorf("status: code=%d env=%+v", code, env)
	}

	code, env = doJSON(t, router, http.MethodGet, "/api/tasks/"+created.ID+"/history", nil)
	if code != http.StatusOK || !env.Success {
		t.Fatalf("history: code=%d env=%+v", code, env)
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(env.Data, &entries); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	if len(entries) != 3 {
		t.Errorf("history has %d entries after create+update+status, want 3", len(entries))
	}

	code, env = doJSON(t, router, http.MethodDelete, "/api/tasks/"+created.ID, nil)
	if code != http.StatusOK || env.Message != "Task deleted successfully" {
		t.Errorf("delete: code=%d env=%+v", code, env)
	}
}

func TestErrorMapping(t *testing.T) {
	router := newTestRouter(t)

	code, env := doJSON(t, router, http.MethodGet, "/api/tasks/nope", nil)
	if code != http.StatusNotFound || env.Success || env.Error != "Task not found" {
		t.Errorf("missing task: code=%d env=%+v", code, env)
	}

	code, env = doJSON(t, router, http.MethodPost, "/api/tasks", map[string]interface{}{
		"description": "no title",
	})
	if code != http.StatusBadRequest || env.Error != "Title is required" {
		t.Errorf("missing title: code=%d env=%+v", code, env)
	}

	code, env = doJSON(t, router, http.MethodPost, "/api/developers", map[string]interface{}{
		"name": "No Email",
	})
	if code != http.StatusBadRequest || env.Error != "Name, email, and role are required" {
		t.Errorf("invalid developer: code=%d env=%+v", code, env)
	}

	dev := map[string]interface{}{
		"name": "Dana", "email": "dana@devflow.test", "role": "Backend",
	}
	if code, _ := doJSON(t, router, http.MethodPost, "/api/developers", dev); code != http.StatusCreated {
		t.Fatalf("create developer: code=%d", code)
	}
	code, env = doJSON(t, router, http.MethodPost, "/api/developers", dev)
	if code != http.StatusBadRequest || env.Error != "Email already exists" {
		t.Errorf("duplicate email: code=%d env=%+v", code, env)
	}
}

func TestHealthAndNoRoute(t *testing.T) {
	router := newTestRouter(t)

	code, env := doJSON(t, router, http.MethodGet, "/health", nil)
	if code != http.StatusOK || !env.Success {
		t.Errorf("health: code=%d env=%+v", code, env)
	}

	code, env = doJSON(t, router, http.MethodGet, "/api/unknown", nil)
	if code != http.StatusNotFound || env.Error != "Route not found" {
		t.Errorf("no route: code=%d env=%+v", code, env)
	}
}

func TestAnalyticsEndpointsEmptyStore(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{
		"/api/analytics/team",
		"/api/analytics/velocity",
		"/api/analytics/bottlenecks",
		"/api/analytics/leaderboard",
		"/api/analytics/distribution",
	} {
		code, env := doJSON(t, router, http.MethodGet, path, nil)
		if code != http.StatusOK || !env.Success {
			t.Errorf("%s: code=%d env=%+v", path, code, env)
		}
	}
}
