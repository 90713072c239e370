package handler

import (
	"errors"
	"fmt"
	"net/http"

	"catalogo/internal/dto"
	"catalogo/internal/service"

	"github.com/gin-gonic/gin"
)

const rotaCampos = "/custom_fields"

type CamposHandler struct{ svc service.CampoService }

func NewCamposHandler(svc service.CampoService) *CamposHandler { return &CamposHandler{svc: svc} }

// Listar GET /custom_fields
func (h *CamposHandler) Listar(c *gin.Context) {
	campos, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		flashErroDe(c, err)
	}
	render(c, http.StatusOK, "custom_fields.html", gin.H{"campos": campos})
}

// Criar POST /custom_fields
func (h *CamposHandler) Criar(c *gin.Context) {
	var req dto.CriarCampoRequest
	_ = c.ShouldBind(&req)

	campo, err := h.svc.Criar(c.Request.Context(), req)
	if err != nil {
		flashErroDe(c, err)
	} else {
		flash(c, flashSucesso, fmt.Sprintf("Campo '%s' criado com sucesso!", campo.Nome))
	}
	redirecionar(c, rotaCampos)
}

// EditarForm GET /editar_campo/:id
func (h *CamposHandler) EditarForm(c *gin.Context) {
	id, ok := paramID(c, "id", rotaCampos)
	if !ok {
		return
	}
	campo, err := h.svc.ObterPorID(c.Request.Context(), id)
	if err != nil {
		flashErroDe(c, err)
		redirecionar(c, rotaCampos)
		return
	}
	render(c, http.StatusOK, "editar_campo.html", gin.H{"campo": campo})
}

// Editar POST /editar_campo/:id
func (h *CamposHandler) Editar(c *gin.Context) {
	id, ok := paramID(c, "id", rotaCampos)
	if !ok {
		return
	}
	var req dto.AtualizarCampoRequest
	_ = c.ShouldBind(&req)

	if _, err := h.svc.Atualizar(c.Request.Context(), id, req); err != nil {
		flashErroDe(c, err)
		if errors.Is(err, service.ErrValidacao) {
			redirecionar(c, c.Request.URL.Path)
			return
		}
		redirecionar(c, rotaCampos)
		return
	}
	flash(c, flashSucesso, "Campo atualizado com sucesso!")
	redirecionar(c, rotaCampos)
}

// Excluir POST /excluir_campo/:id
func (h *CamposHandler) Excluir(c *gin.Context) {
	id, ok := paramID(c, "id", rotaCampos)
	if !ok {
		return
	}
	if _, err := h.svc.Excluir(c.Request.Context(), id); err != nil {
		flashErroDe(c, err)
	} else {
		flash(c, flashSucesso, "Campo excluído com sucesso!")
	}
	redirecionar(c, rotaCampos)
}

// Valores GET /custom_fields/:id/values
func (h *CamposHandler) Valores(c *gin.Context) {
	id, ok := paramID(c, "id", rotaCampos)
	if !ok {
		return
	}
	resp, err := h.svc.ListarValores(c.Request.Context(), id)
	if err != nil {
		flashErroDe(c, err)
		redirecionar(c, rotaCampos)
		return
	}
	render(c, http.StatusOK, "custom_field_values.html", gin.H{
		"campo":   resp.Campo,
		"valores": resp.Valores,
	})
}

// AdicionarValor POST /custom_fields/:id/values
func (h *CamposHandler) AdicionarValor(c *gin.Context) {
	id, ok := paramID(c, "id", rotaCampos)
	if !ok {
		return
	}
	var req dto.ValorRequest
	_ = c.ShouldBind(&req)

	v, err := h.svc.AdicionarValor(c.Request.Context(), id, req)
	if err != nil {
		flashErroDe(c, err)
	} else {
		flash(c, flashSucesso, fmt.Sprintf("Valor '%s' adicionado com sucesso!", v.Valor))
	}
	redirecionar(c, c.Request.URL.Path)
}

// EditarValorForm GET /editar_valor/:id
func (h *CamposHandler) EditarValorForm(c *gin.Context) {
	id, ok := paramID(c, "id", rotaCampos)
	if !ok {
		return
	}
	valor, err := h.svc.ObterValor(c.Request.Context(), id)
	if err != nil {
		flashErroDe(c, err)
		redirecionar(c, rotaCampos)
		return
	}
	render(c, http.StatusOK, "editar_valor.html", gin.H{"valor": valor})
}

// EditarValor POST /editar_valor/:id
func (h *CamposHandler) EditarValor(c *gin.Context) {
	id, ok := paramID(c, "id", rotaCampos)
	if !ok {
		return
	}
	var req dto.ValorRequest
	_ = c.ShouldBind(&req)

	if _, err := h.svc.AtualizarValor(c.Request.Context(), id, req); err != nil {
		flashErroDe(c, err)
		if errors.Is(err, service.ErrValidacao) {
			redirecionar(c, c.Request.URL.Path)
			return
		}
		redirecionar(c, rotaCampos)
		return
	}
	flash(c, flashSucesso, "Valor atualizado com sucesso!")
	redirecionar(c, rotaCampos)
}
