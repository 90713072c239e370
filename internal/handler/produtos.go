package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"catalogo/internal/apierror"
	"catalogo/internal/dto"
	"catalogo/internal/infra"
	"catalogo/internal/service"

	"github.com/gin-gonic/gin"
)

const rotaProdutos = "/produtos"

type ProdutosHandler struct {
	svc        service.ProdutoService
	atribuicao service.AtribuicaoService
}

func NewProdutosHandler(svc service.ProdutoService, atribuicao service.AtribuicaoService) *ProdutosHandler {
	return &ProdutosHandler{svc: svc, atribuicao: atribuicao}
}

// Catalogo godoc
// @Summary      Catálogo de produtos
// @Description  Produtos, campos personalizados, valores por campo e atribuições atuais. Responde HTML ou JSON conforme o cabeçalho Accept.
// @Tags         produtos
// @Produce      json,html
// @Success      200  {object} dto.CatalogoResponse
// @Failure      500  {object} apierror.APIResponse
// @Router       /produtos [get]
func (h *ProdutosHandler) Catalogo(c *gin.Context) {
	cat, err := h.svc.Catalogo(c.Request.Context())

	if c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) == gin.MIMEJSON {
		if err != nil {
			responderErro(c, err)
			return
		}
		c.JSON(http.StatusOK, cat)
		return
	}

	if err != nil {
		registrar(c, err)
		flash(c, flashErro, "Erro ao carregar os produtos.")
		redirecionar(c, "/")
		return
	}
	render(c, http.StatusOK, "produtos.html", gin.H{"catalogo": cat})
}

// AtualizarValor POST /atualizar_valor
func (h *ProdutosHandler) AtualizarValor(c *gin.Context) {
	var req dto.AtribuirValorRequest
	_ = c.ShouldBind(&req)

	resp, err := h.atribuicao.Atribuir(c.Request.Context(),
		parseID(req.ProdutoID), parseID(req.CampoID), parseID(req.ValorID))
	switch {
	case err != nil:
		flashErroDe(c, err)
	case resp.Substituida:
		flash(c, flashSucesso, "Valor atualizado com sucesso!")
	default:
		flash(c, flashSucesso, "Valor salvo com sucesso!")
	}
	redirecionar(c, rotaProdutos)
}

// SalvarTodos godoc
// @Summary      Salvar atribuições em lote
// @Description  Aplica cada atribuição (produto, campo, valor) numa única transação. Entradas incompletas ou inconsistentes são ignoradas.
// @Tags         produtos
// @Accept       json
// @Produce      json
// @Param        body body     dto.SalvarTodosRequest true "Atribuições"
// @Success      200  {object} apierror.APIResponse
// @Failure      400  {object} apierror.APIResponse
// @Failure      500  {object} apierror.APIResponse
// @Router       /salvar_todos [post]
func (h *ProdutosHandler) SalvarTodos(c *gin.Context) {
	var req dto.SalvarTodosRequest
	if !bindAndValidate(c, &req) {
		return
	}
	res, err := h.atribuicao.AtribuirLote(c.Request.Context(), req.Valores)
	if err != nil {
		responderErro(c, err)
		return
	}
	c.JSON(http.StatusOK, apierror.Sucesso("Valores salvos com sucesso!", res.Aceitos, res.Ignorados))
}

// SalvarTabela godoc
// @Summary      Salvar nomes comerciais editados
// @Tags         produtos
// @Accept       json
// @Produce      json
// @Param        body body     dto.SalvarTabelaRequest true "Linhas da tabela"
// @Success      200  {object} apierror.APIResponse
// @Failure      400  {object} apierror.APIResponse
// @Failure      500  {object} apierror.APIResponse
// @Router       /salvar_tabela_produtos [post]
func (h *ProdutosHandler) SalvarTabela(c *gin.Context) {
	var req dto.SalvarTabelaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	res, err := h.svc.SalvarNomesComerciais(c.Request.Context(), req.Produtos)
	if err != nil {
		responderErro(c, err)
		return
	}
	c.JSON(http.StatusOK, apierror.Sucesso(
		fmt.Sprintf("%d produtos atualizados com sucesso!", res.Aceitos), res.Aceitos, res.Ignorados))
}

// AtualizarNomeComercial POST /atualizar_nome_comercial
func (h *ProdutosHandler) AtualizarNomeComercial(c *gin.Context) {
	n, err := h.svc.RegenerarNomesComerciais(c.Request.Context())
	if err != nil {
		registrar(c, err)
		flash(c, flashErro, "Erro ao atualizar nomes comerciais.")
	} else {
		flash(c, flashSucesso, fmt.Sprintf("Nomes comerciais atualizados com sucesso! Total: %d", n))
	}
	redirecionar(c, rotaProdutos)
}

// ExportarPDF GET /produtos/pdf
func (h *ProdutosHandler) ExportarPDF(c *gin.Context) {
	produtos, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		flashErroDe(c, err)
		redirecionar(c, rotaProdutos)
		return
	}

	var buf bytes.Buffer
	if err := infra.GerarCatalogoPDF(&buf, produtos, time.Now()); err != nil {
		_ = c.Error(err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="catalogo.pdf"`)
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
