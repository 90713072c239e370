package handler

import (
	"fmt"
	"net/http"

	"catalogo/internal/infra"
	"catalogo/internal/service"

	"github.com/gin-gonic/gin"
)

type ImportacaoHandler struct {
	svc       service.ImportacaoService
	uploadDir string
}

func NewImportacaoHandler(svc service.ImportacaoService, uploadDir string) *ImportacaoHandler {
	return &ImportacaoHandler{svc: svc, uploadDir: uploadDir}
}

// ImportarXML godoc
// @Summary      Importar NF-e
// @Description  Recebe o XML de uma nota fiscal (campo arquivo) e cria um produto por item. Nada é gravado se algum item for inválido.
// @Tags         importacao
// @Accept       multipart/form-data
// @Produce      json,html
// @Param        arquivo formData file true "XML da NF-e"
// @Success      200  {object} dto.ImportacaoResponse
// @Failure      422  {object} apierror.APIResponse
// @Router       /importar_xml [post]
func (h *ImportacaoHandler) ImportarXML(c *gin.Context) {
	querJSON := c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) == gin.MIMEJSON

	falhar := func(err error) {
		if querJSON {
			responderErro(c, err)
			return
		}
		flashErroDe(c, err)
		redirecionar(c, "/")
	}

	arquivo, err := c.FormFile("arquivo")
	if err != nil {
		falhar(service.NovoErroValidacao("Selecione um arquivo XML"))
		return
	}

	destino, err := infra.CaminhoUpload(h.uploadDir, arquivo.Filename)
	if err == nil {
		err = c.SaveUploadedFile(arquivo, destino)
	}
	if err != nil {
		falhar(err)
		return
	}

	resp, err := h.svc.ImportarArquivo(c.Request.Context(), destino)
	if err != nil {
		falhar(err)
		return
	}

	if querJSON {
		c.JSON(http.StatusOK, resp)
		return
	}
	flash(c, flashSucesso, fmt.Sprintf("%d produtos importados com sucesso!", resp.Importados))
	redirecionar(c, rotaProdutos)
}
