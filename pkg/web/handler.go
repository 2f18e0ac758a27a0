package web

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dkellner/seamplan/pkg/dashboard"
	"github.com/dkellner/seamplan/pkg/model"
	"github.com/dkellner/seamplan/pkg/store"
)

type Handler struct {
	store *store.Store
}

func NewHandler(s *store.Store) *Handler {
	return &Handler{store: s}
}

// TasksPage renders the task grid with the add form and per-row actions.
// A schema or remote failure renders the error page instead; there is no
// partial render.
func (h *Handler) TasksPage(c echo.Context) error {
	tasks, err := h.store.Load(c.Request().Context())
	if err != nil {
		return h.renderLoadError(c, err)
	}

	statuses := c.QueryParams()["status"]
	categories := c.QueryParams()["category"]
	filtered := store.Filter(tasks, statuses, categories)

	return c.Render(http.StatusOK, "tasks.html", echo.Map{
		"Tasks":              filtered,
		"Total":              len(tasks),
		"Statuses":           model.Statuses(),
		"Categories":         model.Categories(),
		"Priorities":         model.Priorities(),
		"SelectedStatuses":   statuses,
		"SelectedCategories": categories,
	})
}

func (h *Handler) CreateTask(c echo.Context) error {
	task, err := taskFromForm(c)
	if err != nil {
		return err
	}

	if err := h.store.Append(c.Request().Context(), task); err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, "failed to add task: "+err.Error())
	}

	// Always re-synchronize via a fresh load rather than trusting local
	// state after a mutation.
	return c.Redirect(http.StatusSeeOther, "/tasks")
}

func (h *Handler) UpdateTask(c echo.Context) error {
	task, err := taskFromForm(c)
	if err != nil {
		return err
	}

	pos, err := h.resolvePosition(c, c.FormValue("original_name"))
	if err != nil {
		return err
	}

	if err := h.store.ReplaceAt(c.Request().Context(), pos, task); err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, "failed to update task: "+err.Error())
	}
	return c.Redirect(http.StatusSeeOther, "/tasks")
}

func (h *Handler) DeleteTask(c echo.Context) error {
	name := c.FormValue("original_name")
	pos, err := h.resolvePosition(c, name)
	if err != nil {
		return err
	}

	if err := h.store.DeleteAt(c.Request().Context(), pos); err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, "failed to delete task: "+err.Error())
	}
	return c.Redirect(http.StatusSeeOther, "/tasks")
}

// resolvePosition maps a task name to its physical row. Duplicate names are
// the known identity hazard: the first row wins, and the ambiguity is
// logged with the request id rather than silently ignored.
func (h *Handler) resolvePosition(c echo.Context, name string) (int, error) {
	if name == "" {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "task name is required")
	}

	pos, matches, err := h.store.PositionByName(c.Request().Context(), name)
	if errors.Is(err, store.ErrTaskNotFound) {
		return 0, echo.NewHTTPError(http.StatusNotFound, "task not found: "+name)
	}
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadGateway, "failed to locate task: "+err.Error())
	}

	if matches > 1 {
		c.Logger().Warnf("task name %q matches %d rows; mutating the first (row %d, request %s)",
			name, matches, pos, requestID(c))
	}
	return pos, nil
}

func (h *Handler) DashboardPage(c echo.Context) error {
	tasks, err := h.store.Load(c.Request().Context())
	if err != nil {
		return h.renderLoadError(c, err)
	}

	return c.Render(http.StatusOK, "dashboard.html", echo.Map{
		"Summary": dashboard.Summarize(tasks),
		"Overdue": dashboard.Overdue(tasks, time.Now()),
	})
}

func (h *Handler) ListTasks(c echo.Context) error {
	tasks, err := h.store.Load(c.Request().Context())
	if err != nil {
		return loadHTTPError(err)
	}

	filtered := store.Filter(tasks, c.QueryParams()["status"], c.QueryParams()["category"])
	return c.JSON(http.StatusOK, echo.Map{
		"count": len(filtered),
		"tasks": filtered,
	})
}

// DashboardData feeds the chart script: breakdown and histograms with
// stable series colors.
func (h *Handler) DashboardData(c echo.Context) error {
	tasks, err := h.store.Load(c.Request().Context())
	if err != nil {
		return loadHTTPError(err)
	}

	statusColors := make(map[string]string, len(model.Statuses()))
	for _, s := range model.Statuses() {
		statusColors[s] = dashboard.SeriesColor(s)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"summary":              dashboard.Summarize(tasks),
		"status_breakdown":     dashboard.StatusBreakdown(tasks),
		"due_histogram":        dashboard.DueHistogram(tasks),
		"seamstress_histogram": dashboard.SeamstressHistogram(tasks),
		"status_colors":        statusColors,
	})
}

func (h *Handler) renderLoadError(c echo.Context, err error) error {
	var missing *store.MissingColumnsError
	if errors.As(err, &missing) {
		return c.Render(http.StatusBadGateway, "error.html", echo.Map{"Message": missing.Error()})
	}
	return c.Render(http.StatusBadGateway, "error.html", echo.Map{"Message": "could not load tasks: " + err.Error()})
}

func loadHTTPError(err error) error {
	var missing *store.MissingColumnsError
	if errors.As(err, &missing) {
		return echo.NewHTTPError(http.StatusBadGateway, missing.Error())
	}
	return echo.NewHTTPError(http.StatusBadGateway, "could not load tasks: "+err.Error())
}

// taskFromForm parses and strictly validates user input. Unlike sheet
// loads, form input is rejected on the first bad field.
func taskFromForm(c echo.Context) (model.Task, error) {
	qty, err := strconv.Atoi(c.FormValue("quantity"))
	if err != nil {
		return model.Task{}, echo.NewHTTPError(http.StatusBadRequest, "quantity must be a whole number")
	}
	cost, err := strconv.ParseFloat(c.FormValue("cost"), 64)
	if err != nil {
		return model.Task{}, echo.NewHTTPError(http.StatusBadRequest, "cost must be a number")
	}
	due, err := time.Parse(model.DateLayout, c.FormValue("timeline"))
	if err != nil {
		return model.Task{}, echo.NewHTTPError(http.StatusBadRequest, "due date must be YYYY-MM-DD")
	}

	task := model.Task{
		Name:          c.FormValue("task_name"),
		Category:      c.FormValue("category"),
		Quantity:      qty,
		Seamstress:    c.FormValue("seamstress"),
		Status:        c.FormValue("status"),
		Priority:      c.FormValue("priority"),
		Cost:          cost,
		ExpectedFile:  c.FormValue("expected_file"),
		DeliveredFile: c.FormValue("delivered_file"),
		Timeline:      due,
	}
	if err := task.Validate(); err != nil {
		return model.Task{}, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return task, nil
}
