package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/tidsplan/internal/app"
	"github.com/alexanderramin/tidsplan/internal/calendar"
	"github.com/alexanderramin/tidsplan/internal/domain"
	"github.com/alexanderramin/tidsplan/internal/repository"
	"github.com/alexanderramin/tidsplan/internal/service"
	"github.com/gin-gonic/gin"
)

type handlers struct {
	app *app.Context
}

func (h *handlers) register(r *gin.Engine) {
	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })

	api := r.Group("/api")
	api.GET("/events", h.events)

	tasks := api.Group("/tasks")
	tasks.GET("", h.listTasks)
	tasks.POST("", h.createTask)
	tasks.GET("/:id", h.getTask)
	tasks.PATCH("/:id", h.updateTask)
	tasks.DELETE("/:id", h.deleteTask)
	tasks.POST("/:id/restore", h.restoreTask)
	tasks.DELETE("/:id/purge", h.purgeTask)
	tasks.POST("/:id/shift", h.shiftTask)
	tasks.POST("/:id/subtasks", h.addSubtask)
	tasks.POST("/:id/subtasks/:sid/toggle", h.toggleSubtask)
	tasks.POST("/:id/subtasks/:sid/archive", h.archiveSubtask)
	tasks.DELETE("/:id/subtasks/:sid", h.removeSubtask)
	tasks.POST("/:id/comments", h.addComment)
	tasks.PATCH("/:id/comments/:cid", h.editComment)
	tasks.DELETE("/:id/comments/:cid", h.deleteComment)

	api.GET("/board", h.board)
	api.GET("/dashboard", h.dashboard)
	api.GET("/workload", h.workload)
	api.GET("/workload/drilldown", h.drilldown)
	api.GET("/workloads", h.workloads)
	api.GET("/timeline", h.timeline)

	api.GET("/views", h.listViews)
	api.PUT("/views/:name", h.saveView)
	api.DELETE("/views/:name", h.deleteView)

	api.GET("/quick", h.listQuick)
	api.POST("/quick", h.addQuick)
	api.POST("/quick/:id/toggle", h.toggleQuick)
	api.DELETE("/quick/:id", h.removeQuick)
	api.POST("/quick/clear", h.clearQuick)

	api.GET("/settings", h.preferences)
	api.PUT("/settings/theme", h.setTheme)
	api.PUT("/settings/dashboard", h.setDashboardOpen)
	api.POST("/settings/dismiss/:id", h.dismissWarning)
}

func (h *handlers) owner(c *gin.Context) string {
	if u := strings.TrimSpace(c.GetHeader(UserHeader)); u != "" {
		return u
	}
	return h.app.User()
}

// fail maps service errors onto HTTP statuses.
func fail(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid task", "problems": verr.Problems})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrEmptyText):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotInTrash), errors.Is(err, repository.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func respond[T any](c *gin.Context, status int, v T, err error) {
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(status, v)
}

func noContent(c *gin.Context, err error) {
	if err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Tasks

func (h *handlers) listTasks(c *gin.Context) {
	if c.Query("trash") == "1" {
		tasks, err := h.app.Tasks.Trash(c.Request.Context(), h.owner(c))
		respond(c, http.StatusOK, tasks, err)
		return
	}
	tasks, err := h.app.Tasks.List(c.Request.Context(), h.owner(c))
	respond(c, http.StatusOK, tasks, err)
}

func (h *handlers) getTask(c *gin.Context) {
	t, err := h.app.Tasks.Get(c.Request.Context(), h.owner(c), c.Param("id"))
	respond(c, http.StatusOK, t, err)
}

func (h *handlers) createTask(c *gin.Context) {
	var in domain.Task
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	t, err := h.app.Tasks.Create(c.Request.Context(), h.owner(c), in)
	respond(c, http.StatusCreated, t, err)
}

func (h *handlers) updateTask(c *gin.Context) {
	var patch domain.TaskPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, err)
		return
	}
	t, err := h.app.Tasks.Update(c.Request.Context(), h.owner(c), c.Param("id"), patch)
	respond(c, http.StatusOK, t, err)
}

func (h *handlers) deleteTask(c *gin.Context) {
	noContent(c, h.app.Tasks.Delete(c.Request.Context(), h.owner(c), c.Param("id")))
}

func (h *handlers) restoreTask(c *gin.Context) {
	noContent(c, h.app.Tasks.Restore(c.Request.Context(), h.owner(c), c.Param("id")))
}

func (h *handlers) purgeTask(c *gin.Context) {
	noContent(c, h.app.Tasks.Purge(c.Request.Context(), h.owner(c), c.Param("id")))
}

func (h *handlers) shiftTask(c *gin.Context) {
	var in struct {
		Days int `json:"days"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	t, err := h.app.Tasks.Shift(c.Request.Context(), h.owner(c), c.Param("id"), in.Days)
	respond(c, http.StatusOK, t, err)
}

// Checklist and comments

func (h *handlers) addSubtask(c *gin.Context) {
	var in domain.Subtask
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	t, err := h.app.Tasks.AddSubtask(c.Request.Context(), h.owner(c), c.Param("id"), in)
	respond(c, http.StatusCreated, t, err)
}

func (h *handlers) toggleSubtask(c *gin.Context) {
	t, err := h.app.Tasks.ToggleSubtask(c.Request.Context(), h.owner(c), c.Param("id"), c.Param("sid"))
	respond(c, http.StatusOK, t, err)
}

func (h *handlers) archiveSubtask(c *gin.Context) {
	t, err := h.app.Tasks.ArchiveSubtask(c.Request.Context(), h.owner(c), c.Param("id"), c.Param("sid"))
	respond(c, http.StatusOK, t, err)
}

func (h *handlers) removeSubtask(c *gin.Context) {
	t, err := h.app.Tasks.RemoveSubtask(c.Request.Context(), h.owner(c), c.Param("id"), c.Param("sid"))
	respond(c, http.StatusOK, t, err)
}

type commentBody struct {
	Text string `json:"text"`
}

func (h *handlers) addComment(c *gin.Context) {
	var in commentBody
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	owner := h.owner(c)
	t, err := h.app.Tasks.AddComment(c.Request.Context(), owner, c.Param("id"), owner, in.Text)
	respond(c, http.StatusCreated, t, err)
}

func (h *handlers) editComment(c *gin.Context) {
	var in commentBody
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	t, err := h.app.Tasks.EditComment(c.Request.Context(), h.owner(c), c.Param("id"), c.Param("cid"), in.Text)
	respond(c, http.StatusOK, t, err)
}

func (h *handlers) deleteComment(c *gin.Context) {
	t, err := h.app.Tasks.DeleteComment(c.Request.Context(), h.owner(c), c.Param("id"), c.Param("cid"))
	respond(c, http.StatusOK, t, err)
}

// Board views

// boardState maps query parameters onto board intents. A named view is
// applied first so explicit parameters refine it.
func (h *handlers) boardState(c *gin.Context) app.State {
	var intents []app.Intent
	if name := c.Query("view"); name != "" {
		if v, err := h.app.Views.Get(c.Request.Context(), h.owner(c), name); err == nil {
			intents = append(intents, app.ApplyView{View: v})
		}
	}
	q := c.Request.URL.Query()
	if q.Has("search") {
		intents = append(intents, app.SetSearch{Term: q.Get("search")})
	}
	if q.Has("client") {
		intents = append(intents, app.SetClient{Client: q.Get("client")})
	}
	if q.Has("phase") {
		intents = append(intents, app.SetPhase{Phase: q.Get("phase")})
	}
	if q.Has("status") {
		intents = append(intents, app.SetStatus{Status: domain.Status(q.Get("status"))})
	}
	if q.Has("sort") {
		intents = append(intents, app.SetSort{Key: domain.SortKey(q.Get("sort"))})
	}
	if q.Has("zoom") {
		intents = append(intents, app.SetZoom{Zoom: domain.Zoom(q.Get("zoom"))})
	}
	if q.Has("mine") {
		mine, _ := strconv.ParseBool(q.Get("mine"))
		intents = append(intents, app.SetOnlyMine{On: mine})
	}
	for _, raw := range q["role"] {
		if r, ok := domain.ParseRole(raw); ok {
			intents = append(intents, app.ToggleRole{Role: r})
		}
	}
	for _, tag := range q["tag"] {
		intents = append(intents, app.ToggleTag{Tag: tag})
	}
	intents = append(intents, app.SetThreshold{Days: h.warningDays(c)})

	s := app.DefaultState()
	for _, in := range intents {
		s = app.Reduce(s, in)
	}
	return s
}

func (h *handlers) warningDays(c *gin.Context) int {
	if n, err := strconv.Atoi(c.Query("warningDays")); err == nil {
		return n
	}
	return h.app.Config.WarningDays
}

func (h *handlers) board(c *gin.Context) {
	s := h.boardState(c)
	b, err := h.app.Board.Board(c.Request.Context(), h.owner(c), s.Options(h.app.Config.Tokens(), h.app.Today()))
	respond(c, http.StatusOK, b, err)
}

func (h *handlers) dashboard(c *gin.Context) {
	sum, err := h.app.Board.Dashboard(c.Request.Context(), h.owner(c), h.warningDays(c))
	respond(c, http.StatusOK, sum, err)
}

func (h *handlers) workload(c *gin.Context) {
	role := domain.RoleExecutor
	if raw := c.Query("role"); raw != "" {
		r, ok := domain.ParseRole(raw)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown role " + strconv.Quote(raw)})
			return
		}
		role = r
	}
	report, err := h.app.Board.Workload(c.Request.Context(), h.owner(c), role, h.warningDays(c))
	respond(c, http.StatusOK, report, err)
}

func (h *handlers) workloads(c *gin.Context) {
	reports, err := h.app.Board.Workloads(c.Request.Context(), h.owner(c), h.warningDays(c))
	respond(c, http.StatusOK, reports, err)
}

func (h *handlers) drilldown(c *gin.Context) {
	d, err := h.app.Board.Drilldown(c.Request.Context(), h.owner(c), c.Query("person"))
	respond(c, http.StatusOK, d, err)
}

func (h *handlers) timeline(c *gin.Context) {
	s := h.boardState(c)
	var from, to time.Time
	if f, ok := calendar.ParseISO(c.Query("from")); ok {
		if t, ok := calendar.ParseISO(c.Query("to")); ok {
			from, to = f, t
		}
	}
	chart, err := h.app.Board.Timeline(c.Request.Context(), h.owner(c),
		s.Options(h.app.Config.Tokens(), h.app.Today()), s.Zoom, from, to)
	respond(c, http.StatusOK, chart, err)
}

// Saved views

func (h *handlers) listViews(c *gin.Context) {
	views, err := h.app.Views.List(c.Request.Context(), h.owner(c))
	respond(c, http.StatusOK, views, err)
}

func (h *handlers) saveView(c *gin.Context) {
	var v domain.SavedView
	if err := c.ShouldBindJSON(&v); err != nil {
		badRequest(c, err)
		return
	}
	v.Name = c.Param("name")
	saved, err := h.app.Views.Save(c.Request.Context(), h.owner(c), v)
	respond(c, http.StatusOK, saved, err)
}

func (h *handlers) deleteView(c *gin.Context) {
	noContent(c, h.app.Views.Delete(c.Request.Context(), h.owner(c), c.Param("name")))
}

// Quick list

func (h *handlers) listQuick(c *gin.Context) {
	items, err := h.app.Quick.List(c.Request.Context(), h.owner(c))
	respond(c, http.StatusOK, items, err)
}

func (h *handlers) addQuick(c *gin.Context) {
	var in commentBody
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	item, err := h.app.Quick.Add(c.Request.Context(), h.owner(c), in.Text)
	respond(c, http.StatusCreated, item, err)
}

func (h *handlers) toggleQuick(c *gin.Context) {
	item, err := h.app.Quick.Toggle(c.Request.Context(), h.owner(c), c.Param("id"))
	respond(c, http.StatusOK, item, err)
}

func (h *handlers) removeQuick(c *gin.Context) {
	noContent(c, h.app.Quick.Remove(c.Request.Context(), h.owner(c), c.Param("id")))
}

func (h *handlers) clearQuick(c *gin.Context) {
	n, err := h.app.Quick.ClearDone(c.Request.Context(), h.owner(c))
	respond(c, http.StatusOK, gin.H{"removed": n}, err)
}

// Settings

func (h *handlers) preferences(c *gin.Context) {
	p, err := h.app.Settings.Preferences(c.Request.Context(), h.owner(c))
	respond(c, http.StatusOK, p, err)
}

func (h *handlers) setTheme(c *gin.Context) {
	var in struct {
		Theme string `json:"theme"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.app.Settings.SetTheme(c.Request.Context(), h.owner(c), in.Theme); err != nil {
		badRequest(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) setDashboardOpen(c *gin.Context) {
	var in struct {
		Open bool `json:"open"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	noContent(c, h.app.Settings.SetDashboardOpen(c.Request.Context(), h.owner(c), in.Open))
}

func (h *handlers) dismissWarning(c *gin.Context) {
	noContent(c, h.app.Settings.DismissWarning(c.Request.Context(), h.owner(c), c.Param("id")))
}
