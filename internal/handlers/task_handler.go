package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskmanager/internal/models"
	"taskmanager/internal/services"
)

type TaskHandler struct {
	service services.TaskService
}

func NewTaskHandler(service services.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

// @Summary      Create a task
// @Description  Creates a new task. Status defaults to pending, priority to medium.
// @Tags         Tasks
// @Accept       json
// @Produce      json
// @Param        task  body      models.TaskCreate  true  "Task payload"
// @Success      201   {object}  models.Task
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	var req models.TaskCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[task][create][bind][err] %v", err)
		respondBadRequest(c, err)
		return
	}
	log.Printf("[task][create] title=%q status=%q priority=%q", req.Title, req.Status, req.Priority)

	task, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		log.Printf("[task][create][err] %v", err)
		respondError(c, err)
		return
	}
	log.Printf("[task][create][ok] id=%s title=%q", task.ID, task.Title)
	c.JSON(http.StatusCreated, task)
}

// @Summary      Get a task
// @Tags         Tasks
// @Produce      json
// @Param        id   path      string  true  "Task ID"
// @Success      200  {object}  models.Task
// @Failure      404  {object}  map[string]string
// @Router       /tasks/{id} [get]
func (h *TaskHandler) GetByID(c *gin.Context) {
	id := c.Param("id")
	log.Printf("[task][get] id=%s", id)

	task, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		log.Printf("[task][get][err] id=%s: %v", id, err)
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// @Summary      List tasks
// @Description  Lists all tasks in creation order, optionally filtered by status and/or priority.
// @Tags         Tasks
// @Produce      json
// @Param        status    query     string  false  "Filter by status"
// @Param        priority  query     string  false  "Filter by priority"
// @Success      200       {array}   models.Task
// @Failure      400       {object}  map[string]string
// @Router       /tasks [get]
func (h *TaskHandler) List(c *gin.Context) {
	log.Printf("[task][list] q=%v", c.Request.URL.RawQuery)

	var filter models.TaskFilter
	if v, ok := c.GetQuery("status"); ok {
		st := models.TaskStatus(v)
		if !st.Valid() {
			log.Printf("[task][list][err] bad status=%q", v)
			writeError(c, http.StatusBadRequest, kindBadRequest, "unknown status "+v)
			return
		}
		filter.Status = &st
	}
	if v, ok := c.GetQuery("priority"); ok {
		pr := models.TaskPriority(v)
		if !pr.Valid() {
			log.Printf("[task][list][err] bad priority=%q", v)
			writeError(c, http.StatusBadRequest, kindBadRequest, "unknown priority "+v)
			return
		}
		filter.Priority = &pr
	}

	tasks, err := h.service.GetAll(c.Request.Context(), filter)
	if err != nil {
		log.Printf("[task][list][err] %v", err)
		respondError(c, err)
		return
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	log.Printf("[task][list][ok] count=%d", len(tasks))
	c.JSON(http.StatusOK, tasks)
}

// @Summary      List tasks by status
// @Tags         Tasks
// @Produce      json
// @Param        status  path      string  true  "Task status"
// @Success      200     {array}   models.Task
// @Failure      400     {object}  map[string]string
// @Router       /tasks/status/{status} [get]
func (h *TaskHandler) ListByStatus(c *gin.Context) {
	st := models.TaskStatus(c.Param("status"))
	log.Printf("[task][byStatus] status=%q", st)
	if !st.Valid() {
		log.Printf("[task][byStatus][err] bad status=%q", st)
		writeError(c, http.StatusBadRequest, kindBadRequest, "unknown status "+string(st))
		return
	}

	tasks, err := h.service.GetAll(c.Request.Context(), models.TaskFilter{Status: &st})
	if err != nil {
		log.Printf("[task][byStatus][err] %v", err)
		respondError(c, err)
		return
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	log.Printf("[task][byStatus][ok] count=%d", len(tasks))
	c.JSON(http.StatusOK, tasks)
}

// @Summary      Update a task
// @Description  Partially updates a task; omitted fields are left unchanged.
// @Tags         Tasks
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "Task ID"
// @Param        task  body      models.TaskUpdate  true  "Fields to update"
// @Success      200   {object}  models.Task
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /tasks/{id} [put]
func (h *TaskHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var req models.TaskUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[task][update][bind][err] %v", err)
		respondBadRequest(c, err)
		return
	}
	log.Printf("[task][update] id=%s", id)

	task, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		log.Printf("[task][update][err] id=%s: %v", id, err)
		respondError(c, err)
		return
	}
	log.Printf("[task][update][ok] id=%s", id)
	c.JSON(http.StatusOK, task)
}

// @Summary      Complete a task
// @Description  Marks a task as completed.
// @Tags         Tasks
// @Produce      json
// @Param        id   path      string  true  "Task ID"
// @Success      200  {object}  models.Task
// @Failure      404  {object}  map[string]string
// @Router       /tasks/{id}/complete [patch]
func (h *TaskHandler) Complete(c *gin.Context) {
	id := c.Param("id")
	log.Printf("[task][complete] id=%s", id)

	task, err := h.service.Complete(c.Request.Context(), id)
	if err != nil {
		log.Printf("[task][complete][err] id=%s: %v", id, err)
		respondError(c, err)
		return
	}
	log.Printf("[task][complete][ok] id=%s", id)
	c.JSON(http.StatusOK, task)
}

// @Summary      Delete a task
// @Tags         Tasks
// @Param        id  path  string  true  "Task ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /tasks/{id} [delete]
func (h *TaskHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	log.Printf("[task][delete] id=%s", id)

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		log.Printf("[task][delete][err] id=%s: %v", id, err)
		respondError(c, err)
		return
	}
	log.Printf("[task][delete][ok] id=%s", id)
	c.Status(http.StatusNoContent)
}

// @Summary      Task statistics
// @Description  Aggregate counts per status and priority, plus overdue total.
// @Tags         Tasks
// @Produce      json
// @Success      200  {object}  models.TaskStatistics
// @Router       /tasks/analytics/statistics [get]
func (h *TaskHandler) Statistics(c *gin.Context) {
	log.Printf("[task][stats] call")

	stats, err := h.service.Statistics(c.Request.Context())
	if err != nil {
		log.Printf("[task][stats][err] %v", err)
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
