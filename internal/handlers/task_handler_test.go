package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskmanager/internal/handlers"
	"taskmanager/internal/models"
	"taskmanager/internal/repositories"
	"taskmanager/internal/routes"
	"taskmanager/internal/services"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	repo := repositories.NewMemoryTaskRepository()
	svc := services.NewTaskService(repo)
	taskHandler := handlers.NewTaskHandler(svc)
	healthHandler := handlers.NewHealthHandler("TaskManager", "test")

	return routes.SetupRoutes(gin.New(), taskHandler, healthHandler)
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeTask(t *testing.T, w *httptest.ResponseRecorder) models.Task {
	t.Helper()
	var task models.Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &task))
	return task
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestCreateTask(t *testing.T) {
	router := newTestRouter()

	w := doJSON(t, router, http.MethodPost, "/api/v1/tasks", gin.H{
		"title":    "Implement login",
		"priority": "high",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	task := decodeTask(t, w)
	assert.NotEmpty(t, task.ID)
	assert.Equal(t, "Implement login", task.Title)
	assert.Equal(t, models.StatusPending, task.Status)
	assert.Equal(t, models.PriorityHigh, task.Priority)
	assert.Nil(t, task.DueDate)
}

func TestCreateTaskEmptyTitleIsUnprocessable(t *testing.T) {
	router := newTestRouter()

	w := doJSON(t, router, http.MethodPost, "/api/v1/tasks", gin.H{"title": "   "})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "validation", decodeError(t, w)["kind"])
}

func TestCreateTaskMalformedBody(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/tasks", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "bad_request", decodeError(t, w)["kind"])
}

func TestCreateTaskDuplicateTitleConflicts(t *testing.T) {
	router := newTestRouter()

	w := doJSON(t, router, http.MethodPost, "/api/v1/tasks", gin.H{"title": "unique"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/v1/tasks", gin.H{"title": "unique"})
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "conflict", decodeError(t, w)["kind"])
}

func TestGetTask(t *testing.T) {
	router := newTestRouter()

	created := decodeTask(t, doJSON(t, router, http.MethodPost, "/api/v1/tasks", gin.H{"title": "fetch me"}))

	w := doJSON(t, router, http.MethodGet, "/api/v1/tasks/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, created.ID, decodeTask(t, w).ID)
}

func TestGetTaskNotFound(t *testing.T) {
	router := newTestRouter()

	w := doJSON(t, router, http.MethodGet, "/api/v1/tasks/no-such-id", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "not_found", decodeError(t, w)["kind"])
}

func TestListTasksWithFilters(t *testing.T) {
	router := newTestRouter()

	doJSON(t, router, http.MethodPost, "/api/v1/tasks", gin.H{"title": "a"})
	doJSON(t, router, http.MethodPost, "/api/v1/tasks", gin.H{"title": "b", "status": "in_progress"})
	doJSON(t, router, http.MethodPost, "/api/v1/tasks", gin.H{"title": "c", "priority": "urgent"})

	w := doJSON(t, router, http.MethodGet, "/api/v1/tasks", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var all []models.Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &all))
	require.Len(t, all, 3)
	assert.Equal(t, "a", all[0].Title)
	assert.Equal(t, "c", all[2].Title)

	w = doJSON(t, router, http.MethodGet, "/api/v1/tasks?status=pending", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var pending []models.Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pending))
	assert.Len(t, pending, 2)

	w = doJSON(t, router, http.MethodGet, "/api/v1/tasks?status=pending&priority=urgent", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var urgent []models.Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &urgent))
	require.Len(t, urgent, 1)
	assert.Equal(t, "c", urgent[0].Title)

	w = doJSON(t, router, http.MethodGet, "/api/v1/tasks?status=bogus", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListTasksByStatusRoute(t *testing.T) {
	router := newTestRouter()

	doJSON(t, router, http.MethodPost, "/api/v1/tasks", gin.H{"title": "a", "status": "completed"})
	doJSON(t, router, http.MethodPost, "/api/v1/tasks", gin.H{"title": "b"})

	w := doJSON(t, router, http.MethodGet, "/api/v1/tasks/status/completed", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var tasks []models.Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tasks))
	require.Len(t, tasks, 1)
	assert.Equal(t, "a", tasks[0].Title)

	w = doJSON(t, router, http.MethodGet, "/api/v1/tasks/status/bogus", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateTask(t *testing.T) {
	router := newTestRouter()

	created := decodeTask(t, doJSON(t, router, http.MethodPost, "/api/v1/tasks", gin.H{"title": "before"}))

	w := doJSON(t, router, http.MethodPut, "/api/v1/tasks/"+created.ID, gin.H{
		"title":  "after",
		"status": "in_progress",
	})
	require.Equal(t, http.StatusOK, w.Code)

	updated := decodeTask(t, w)
	assert.Equal(t, "after", updated.Title)
	assert.Equal(t, models.StatusInProgress, updated.Status)

	w = doJSON(t, router, http.MethodPut, "/api/v1/tasks/"+created.ID, gin.H{"title": ""})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = doJSON(t, router, http.MethodPut, "/api/v1/tasks/missing", gin.H{"title": "x"})
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestCompleteTask(t *testing.T) {
	router := newTestRouter()

	created := decodeTask(t, doJSON(t, router, http.MethodPost, "/api/v1/tasks", gin.H{
		"title":    "Implement login",
		"priority": "high",
	}))
	assert.Equal(t, models.StatusPending, created.Status)

	w := doJSON(t, router, http.MethodPatch, "/api/v1/tasks/"+created.ID+"/complete", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.StatusCompleted, decodeTask(t, w).Status)

	w = doJSON(t, router, http.MethodPatch, "/api/v1/tasks/missing/complete", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteTask(t *testing.T) {
	router := newTestRouter()

	created := decodeTask(t, doJSON(t, router, http.MethodPost, "/api/v1/tasks", gin.H{"title": "temp"}))

	w := doJSON(t, router, http.MethodDelete, "/api/v1/tasks/"+created.ID, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/v1/tasks/"+created.ID, nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, router, http.MethodDelete, "/api/v1/tasks/"+created.ID, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestStatisticsEndpoint(t *testing.T) {
	router := newTestRouter()

	doJSON(t, router, http.MethodPost, "/api/v1/tasks", gin.H{"title": "a"})
	doJSON(t, router, http.MethodPost, "/api/v1/tasks", gin.H{"title": "b", "status": "completed", "priority": "low"})

	w := doJSON(t, router, http.MethodGet, "/api/v1/tasks/analytics/statistics", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var stats models.TaskStatistics
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.ByStatus[models.StatusPending])
	assert.Equal(t, 1, stats.ByStatus[models.StatusCompleted])
	assert.Equal(t, 1, stats.ByPriority[models.PriorityLow])
	assert.Equal(t, 0, stats.Overdue)
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter()

	w := doJSON(t, router, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "TaskManager", body["app"])
}
