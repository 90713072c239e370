package handler

import (
	"net/http"
	"strconv"
	"strings"

	"catalogo/internal/apierror"
	"catalogo/internal/middleware"
	"catalogo/internal/service"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

var validate = validator.New()

// Flash categories, as rendered by the layout template.
const (
	flashSucesso = "success"
	flashErro    = "error"
)

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails;
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON inválido"))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		var verrs validator.ValidationErrors
		if ve, ok := err.(validator.ValidationErrors); ok {
			verrs = ve
		}
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// statusDe maps a service error to an HTTP status code.
func statusDe(err error) int {
	switch service.KindOf(err) {
	case service.KindValidacao, service.KindImportacao:
		return http.StatusUnprocessableEntity
	case service.KindNaoEncontrado:
		return http.StatusNotFound
	case service.KindConflito:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// responderErro writes the JSON error envelope for err.
func responderErro(c *gin.Context, err error) {
	registrar(c, err)
	c.JSON(statusDe(err), apierror.New(service.MensagemPublica(err)))
}

// registrar logs storage failures; operator mistakes are not worth a log line.
func registrar(c *gin.Context, err error) {
	if service.KindOf(err) != service.KindArmazenamento {
		return
	}
	log.Error().
		Str("request_id", c.GetString(middleware.RequestIDKey)).
		Str("path", c.Request.URL.Path).
		Err(err).
		Msg("falha de armazenamento")
}

func flash(c *gin.Context, tipo, msg string) {
	s := sessions.Default(c)
	s.AddFlash(msg, tipo)
	if err := s.Save(); err != nil {
		log.Warn().Err(err).Msg("não foi possível gravar a mensagem flash")
	}
}

// flashErroDe records err as an error flash.
func flashErroDe(c *gin.Context, err error) {
	registrar(c, err)
	flash(c, flashErro, service.MensagemPublica(err))
}

// redirecionar ends a form POST with 303 so a reload does not resubmit.
func redirecionar(c *gin.Context, path string) {
	c.Redirect(http.StatusSeeOther, path)
}

type mensagem struct {
	Tipo  string
	Texto string
}

// render executes an HTML template, adding the pending flash messages.
func render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	s := sessions.Default(c)
	var msgs []mensagem
	for _, tipo := range []string{flashSucesso, flashErro} {
		for _, f := range s.Flashes(tipo) {
			if texto, ok := f.(string); ok {
				msgs = append(msgs, mensagem{Tipo: tipo, Texto: texto})
			}
		}
	}
	if len(msgs) > 0 {
		_ = s.Save()
	}
	data["mensagens"] = msgs
	c.HTML(status, name, data)
}

// paramID reads a positive integer path parameter. On failure it flashes and
// redirects to fallback.
func paramID(c *gin.Context, name, fallback string) (uint, bool) {
	id := parseID(c.Param(name))
	if id == 0 {
		flash(c, flashErro, "Identificador inválido")
		redirecionar(c, fallback)
		return 0, false
	}
	return id, true
}

// parseID returns 0 for blank or malformed ids.
func parseID(s string) uint {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0
	}
	return uint(n)
}
