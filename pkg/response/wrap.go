package response

import (
	"github.com/gin-gonic/gin"

	"github.com/AleksMarkov/LumenTask-server/pkg/apperr"
	"github.com/AleksMarkov/LumenTask-server/pkg/log"
)

// HandlerFunc is a request handler that reports failure by returning an
// error instead of writing its own error response.
type HandlerFunc func(c *gin.Context) error

// Wrap adapts a HandlerFunc to a gin.HandlerFunc. A returned error is
// rendered exactly once through RenderError; a nil return means the handler
// has already written its response. Handlers stay straight-line logic with
// no per-handler error plumbing.
func Wrap(fn HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := fn(c)
		if err == nil {
			return
		}

		l := log.Ctx(c.Request.Context())
		e := apperr.From(err)
		if e.Status >= 500 {
			l.Error().Err(err).Int(log.FieldStatus, e.Status).Msg("request failed")
		} else {
			l.Warn().Err(err).Int(log.FieldStatus, e.Status).Msg("request rejected")
		}

		RenderError(c, err)
	}
}
