package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// AuditEntry captures a state-changing API request: who acted from where,
// on what, and the outcome.
type AuditEntry struct {
	Action     string
	Path       string
	Method     string
	IPAddress  string
	UserAgent  string
	RequestID  string
	StatusCode int
	Timestamp  time.Time
}

// AuditRecorder persists audit entries. It decouples the middleware from the
// concrete sink so that tests can provide a mock implementation.
type AuditRecorder interface {
	RecordAccess(entry AuditEntry) error
}

// AuditRecorderFunc is a function adapter for AuditRecorder.
type AuditRecorderFunc func(entry AuditEntry) error

func (f AuditRecorderFunc) RecordAccess(entry AuditEntry) error {
	return f(entry)
}

// Audit returns middleware that records every mutating request (POST, PUT,
// PATCH, DELETE) under the API surface. Bookings change patient-visible
// state, so each attempt is recorded with its outcome status.
//
// If no AuditRecorder is provided, entries go to structured zerolog logging.
func Audit(logger zerolog.Logger, recorders ...AuditRecorder) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if !isMutating(req.Method) {
				return next(c)
			}

			// Execute the handler first so we capture the response status
			err := next(c)

			rid, _ := c.Get("request_id").(string)
			entry := AuditEntry{
				Action:     actionFor(req.Method),
				Path:       req.URL.Path,
				Method:     req.Method,
				IPAddress:  c.RealIP(),
				UserAgent:  req.UserAgent(),
				RequestID:  rid,
				StatusCode: c.Response().Status,
				Timestamp:  time.Now().UTC(),
			}
			if herr, ok := err.(*echo.HTTPError); ok {
				entry.StatusCode = herr.Code
			}

			if len(recorders) > 0 {
				for _, r := range recorders {
					if rerr := r.RecordAccess(entry); rerr != nil {
						logger.Error().Err(rerr).Msg("audit record failed")
					}
				}
			} else {
				logger.Info().
					Str("action", entry.Action).
					Str("path", entry.Path).
					Str("method", entry.Method).
					Str("remote_ip", entry.IPAddress).
					Str("request_id", entry.RequestID).
					Int("status", entry.StatusCode).
					Msg("audit")
			}

			return err
		}
	}
}

func isMutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

func actionFor(method string) string {
	switch method {
	case http.MethodPost:
		return "create"
	case http.MethodPut, http.MethodPatch:
		return "update"
	case http.MethodDelete:
		return "delete"
	}
	return "read"
}
