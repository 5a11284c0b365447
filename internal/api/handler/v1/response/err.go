package response

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Err struct {
	Err        error  `json:"-"`
	StatusCode int    `json:"status_code"`
	StatusText string `json:"status_text"`
	Message    string `json:"message"`
}

func (e *Err) Error() string {
	return e.Message
}

// RenderErr writes err as JSON and aborts the chain. 5xx errors are logged with their cause,
// which is never sent to the client.
func RenderErr(ctx *gin.Context, err *Err) {
	if err.StatusCode >= http.StatusInternalServerError {
		zap.L().Error("internal server error",
			zap.String("path", ctx.FullPath()),
			zap.String("request_id", ctx.Writer.Header().Get("X-Request-ID")),
			zap.Error(err.Err))
	}

	ctx.AbortWithStatusJSON(err.StatusCode, err)
}

func newErr(statusCode int, cause error, message string) *Err {
	return &Err{
		Err:        cause,
		StatusCode: statusCode,
		StatusText: http.StatusText(statusCode),
		Message:    message,
	}
}

func ErrBadRequest(err error) *Err {
	return newErr(http.StatusBadRequest, err, err.Error())
}

func ErrNotFound(resource, key string, value any) *Err {
	return newErr(http.StatusNotFound, nil, fmt.Sprintf("%v with %v '%v' does not exist", resource, key, value))
}

// ErrInvalidLink is returned for unknown events or spots and for wrong tokens alike.
func ErrInvalidLink() *Err {
	return newErr(http.StatusNotFound, nil, "this link is invalid or no longer available")
}

func ErrWrongCredentials(err error) *Err {
	return newErr(http.StatusUnauthorized, err, "wrong credentials")
}

func ErrUnauthorized(err error) *Err {
	return newErr(http.StatusUnauthorized, err, err.Error())
}

func ErrPermissionDenied(err error) *Err {
	return newErr(http.StatusForbidden, err, err.Error())
}

func ErrServiceUnavailable(err error) *Err {
	return newErr(http.StatusServiceUnavailable, err, "service temporarily unavailable")
}

func ErrInternalServerError(err error) *Err {
	return newErr(http.StatusInternalServerError, err, "something went wrong")
}
