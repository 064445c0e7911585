package compliance

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the JSON body returned for blocked requests.
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Middleware returns an echo middleware that rejects requests whose body
// matches a sensitive data pattern and logs a sanitized copy of the rest.
// It must be bound to the API processing group only; health and status
// endpoints are not gated.
func Middleware(filter *Filter, log *slog.Logger) echo.MiddlewareFunc {
	if log == nil {
		log = slog.Default()
	}
	log = log.With(slog.String("service", "compliance"))

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			body, err := io.ReadAll(req.Body)
			if err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, "failed to read request body")
			}
			// Downstream processing keeps the original, non-sanitized body.
			req.Body = io.NopCloser(bytes.NewReader(body))

			if filter.Scan(body) {
				log.Warn("sensitive data detected, request blocked",
					slog.String("body_snippet", Snippet(body)),
				)
				return c.JSON(http.StatusBadRequest, ErrorResponse{
					Status:  "compliance_error",
					Message: RejectionMessage,
				})
			}

			log.Info("request passed compliance check",
				slog.String("body", filter.Sanitize(body)),
			)
			return next(c)
		}
	}
}
