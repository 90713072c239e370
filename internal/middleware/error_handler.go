package middleware

import (
	"net/http"
	"runtime/debug"
	"time"

	"catalogo/internal/apierror"
	"catalogo/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const mensagemErroInterno = "Erro interno do servidor"

// falhaInterna answers 500 in the format the client asked for: the JSON
// envelope for API calls, plain text for the browser pages.
func falhaInterna(c *gin.Context) {
	if c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) == gin.MIMEJSON {
		c.AbortWithStatusJSON(http.StatusInternalServerError, apierror.New(mensagemErroInterno))
		return
	}
	c.Abort()
	c.String(http.StatusInternalServerError, mensagemErroInterno)
}

// ErrorHandler reports errors a handler pushed with c.Error instead of
// answering itself. Handlers that already wrote a response keep it.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		log.Error().
			Str("request_id", c.GetString(RequestIDKey)).
			Str("rota", c.FullPath()).
			Str("metodo", c.Request.Method).
			Str("tipo", service.KindOf(err).String()).
			Err(err).
			Msg("erro não tratado")

		if !c.Writer.Written() {
			falhaInterna(c)
		}
	}
}

// Recovery turns a handler panic into a 500 and logs the stack.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			log.Error().
				Str("request_id", c.GetString(RequestIDKey)).
				Str("rota", c.FullPath()).
				Interface("panic", r).
				Bytes("stack", debug.Stack()).
				Msg("panic recuperado")
			if !c.Writer.Written() {
				falhaInterna(c)
			}
		}()
		c.Next()
	}
}

// Logger writes one line per request. Server errors log at error level and
// rejected input at warn; static assets and health probes only at debug.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		var ev *zerolog.Event
		switch {
		case status >= http.StatusInternalServerError:
			ev = log.Error()
		case status >= http.StatusBadRequest:
			ev = log.Warn()
		case c.FullPath() == "/health" || c.FullPath() == "/static/*filepath":
			ev = log.Debug()
		default:
			ev = log.Info()
		}
		ev.Str("request_id", c.GetString(RequestIDKey)).
			Str("metodo", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("ip", c.ClientIP()).
			Int("status", status).
			Int("bytes", c.Writer.Size()).
			Dur("latencia", time.Since(start)).
			Msg("requisição")
	}
}
