package web

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func Register(e *echo.Echo, h *Handler) {
	e.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusFound, "/tasks")
	})

	e.GET("/tasks", h.TasksPage)
	e.POST("/tasks", h.CreateTask)
	e.POST("/tasks/update", h.UpdateTask)
	e.POST("/tasks/delete", h.DeleteTask)

	e.GET("/dashboard", h.DashboardPage)

	e.GET("/api/tasks", h.ListTasks)
	e.GET("/api/dashboard", h.DashboardData)
}
