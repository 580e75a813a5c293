// internal/app/features/errors/logger.go
package errors

import (
	"net/http"

	"github.com/dalemusser/consultadmin/internal/app/system/apperr"
	"github.com/dalemusser/consultadmin/internal/app/system/requestid"
	"go.uber.org/zap"
)

// ErrorLogger logs a failure with request context and writes the matching
// JSON error response. The cause is logged, never sent.
type ErrorLogger struct {
	Log *zap.Logger
}

// NewErrorLogger creates an ErrorLogger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ErrorLogger{Log: logger}
}

func (e *ErrorLogger) fields(r *http.Request, err error) []zap.Field {
	fs := []zap.Field{
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.String("request_id", requestid.FromContext(r.Context())),
	}
	if err != nil {
		fs = append(fs, zap.Error(err))
	}
	return fs
}

// LogServerError logs at error level and responds 500 with userMsg.
func (e *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg string) {
	e.Log.Error(logMsg, e.fields(r, err)...)
	WriteError(w, r, http.StatusInternalServerError, userMsg)
}

// LogNotFound logs at debug level and responds 404 with userMsg.
func (e *ErrorLogger) LogNotFound(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg string) {
	e.Log.Debug(logMsg, e.fields(r, err)...)
	WriteError(w, r, http.StatusNotFound, userMsg)
}

// Respond classifies err with apperr and writes the response. With
// failure set the body carries "success": false.
func (e *ErrorLogger) Respond(w http.ResponseWriter, r *http.Request, logMsg string, err error, failure bool) {
	status := apperr.StatusOf(err)
	switch {
	case status >= 500:
		e.Log.Error(logMsg, e.fields(r, err)...)
	case status == http.StatusNotFound:
		e.Log.Debug(logMsg, e.fields(r, err)...)
	default:
		e.Log.Info(logMsg, e.fields(r, err)...)
	}
	if failure {
		WriteFailure(w, r, status, apperr.PublicMessage(err))
		return
	}
	WriteError(w, r, status, apperr.PublicMessage(err))
}
