package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// LogsHandler is a dev-only stub; log reading belongs to observability
// tooling, not the service itself.
type LogsHandler struct{}

func NewLogsHandler() *LogsHandler {
	return &LogsHandler{}
}

func (h *LogsHandler) Register(e *echo.Echo) {
	e.GET("/logs", h.Logs)
}

func (h *LogsHandler) Logs(c echo.Context) error {
	return c.JSON(http.StatusNotImplemented, map[string]string{
		"message": "Endpoint de logs não implementado para leitura direta em produção. Use ferramentas de observabilidade.",
	})
}
