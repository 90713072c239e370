package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"catalogo/internal/config"
	"catalogo/internal/model"
	"catalogo/internal/router"
	"catalogo/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

type testEnv struct {
	t      *testing.T
	db     *gorm.DB
	srv    *httptest.Server
	client *http.Client
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewDB(t)
	cfg := &config.Config{
		Env:               "test",
		DatabaseDriver:    "sqlite",
		SessionSecret:     "segredo-de-teste",
		UploadDir:         t.TempDir(),
		NomeComercialModo: "juncao",
	}
	r, err := router.New(cfg, db)
	require.NoError(t, err)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := &http.Client{
		Jar: jar,
		// Redirects are asserted explicitly.
		CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse },
	}
	return &testEnv{t: t, db: db, srv: srv, client: client}
}

func (e *testEnv) do(req *http.Request) *http.Response {
	e.t.Helper()
	resp, err := e.client.Do(req)
	require.NoError(e.t, err)
	e.t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func (e *testEnv) get(path, accept string) *http.Response {
	e.t.Helper()
	req, err := http.NewRequest(http.MethodGet, e.srv.URL+path, nil)
	require.NoError(e.t, err)
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	return e.do(req)
}

func (e *testEnv) postForm(path string, form url.Values) *http.Response {
	e.t.Helper()
	req, err := http.NewRequest(http.MethodPost, e.srv.URL+path, strings.NewReader(form.Encode()))
	require.NoError(e.t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return e.do(req)
}

func (e *testEnv) postJSON(path, body string) *http.Response {
	e.t.Helper()
	req, err := http.NewRequest(http.MethodPost, e.srv.URL+path, strings.NewReader(body))
	require.NoError(e.t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return e.do(req)
}

func (e *testEnv) upload(path, nome, conteudo, accept string) *http.Response {
	e.t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("arquivo", nome)
	require.NoError(e.t, err)
	_, err = io.WriteString(fw, conteudo)
	require.NoError(e.t, err)
	require.NoError(e.t, mw.Close())

	req, err := http.NewRequest(http.MethodPost, e.srv.URL+path, &buf)
	require.NoError(e.t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	return e.do(req)
}

func body(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

func assertRedirect(t *testing.T, resp *http.Response, to string) {
	t.Helper()
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, to, resp.Header.Get("Location"))
}

type envelope struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Aceitos   int    `json:"aceitos"`
	Ignorados int    `json:"ignorados"`
}

const nota = `<?xml version="1.0" encoding="UTF-8"?>
<NFe xmlns="http://www.portalfiscal.inf.br/nfe"><infNFe>
  <det nItem="1">
    <prod><cProd>10</cProd><cEAN>789</cEAN><xProd>Tênis</xProd><NCM>64041900</NCM><CFOP>5102</CFOP>
      <qCom>1</qCom><vUnCom>199.90</vUnCom><vProd>199.90</vProd></prod>
    <imposto><ICMS><ICMS00><vBC>199.90</vBC><pICMS>18</pICMS><vICMS>35.98</vICMS></ICMS00></ICMS></imposto>
  </det>
  <det nItem="2">
    <prod><cProd>11</cProd><cEAN>790</cEAN><xProd>Meia</xProd><NCM>61159500</NCM><CFOP>5102</CFOP>
      <qCom>3</qCom><vUnCom>9.90</vUnCom><vProd>29.70</vProd></prod>
    <imposto><ICMS><ICMS00><vBC>29.70</vBC><pICMS>18</pICMS><vICMS>5.35</vICMS></ICMS00></ICMS></imposto>
  </det>
</infNFe></NFe>`

// ── Tests ────────────────────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	e := setupTestEnv(t)
	resp := e.get("/health", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"ok":true,"db":"connected","schema":"ok"}`, body(t, resp))
}

func TestIndex(t *testing.T) {
	e := setupTestEnv(t)
	resp := e.get("/", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body(t, resp), `action="/importar_xml"`)
}

func TestCustomFields_CriarComFlash(t *testing.T) {
	e := setupTestEnv(t)

	assertRedirect(t, e.postForm("/custom_fields", url.Values{"nome": {"Tamanho"}}), "/custom_fields")

	page := body(t, e.get("/custom_fields", ""))
	assert.Contains(t, page, "Campo &#39;Tamanho&#39; criado com sucesso!")
	assert.Contains(t, page, "<td>Tamanho</td>")

	// flash is consumed once shown
	assert.NotContains(t, body(t, e.get("/custom_fields", "")), "criado com sucesso")
}

func TestCustomFields_NomeVazio(t *testing.T) {
	e := setupTestEnv(t)

	assertRedirect(t, e.postForm("/custom_fields", url.Values{"nome": {"   "}}), "/custom_fields")
	assert.Contains(t, body(t, e.get("/custom_fields", "")), "O nome do campo é obrigatório")
	assert.Zero(t, testutil.Count(t, e.db, &model.CampoPersonalizado{}))
}

func TestEditarCampo(t *testing.T) {
	e := setupTestEnv(t)
	c, _ := testutil.SeedCampo(t, e.db, "Cor")
	path := "/editar_campo/" + itoa(c.ID)

	resp := e.get(path, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body(t, resp), `value="Cor"`)

	assertRedirect(t, e.postForm(path, url.Values{"nome": {"Cor"}, "tipo": {""}}), path)
	assertRedirect(t, e.postForm(path, url.Values{"nome": {"Cores"}, "tipo": {"lista"}}), "/custom_fields")

	var got model.CampoPersonalizado
	require.NoError(t, e.db.First(&got, c.ID).Error)
	assert.Equal(t, "Cores", got.Nome)
	assert.Equal(t, "lista", got.Tipo)

	assertRedirect(t, e.get("/editar_campo/9999", ""), "/custom_fields")
	assert.Contains(t, body(t, e.get("/custom_fields", "")), "Campo não encontrado")
}

func TestValores(t *testing.T) {
	e := setupTestEnv(t)
	c, _ := testutil.SeedCampo(t, e.db, "Cor")
	path := "/custom_fields/" + itoa(c.ID) + "/values"

	assertRedirect(t, e.postForm(path, url.Values{"valor": {"Azul"}}), path)
	page := body(t, e.get(path, ""))
	assert.Contains(t, page, "Valor &#39;Azul&#39; adicionado com sucesso!")
	assert.Contains(t, page, "<td>Azul</td>")

	assertRedirect(t, e.postForm(path, url.Values{"valor": {""}}), path)
	assert.Contains(t, body(t, e.get(path, "")), "O valor é obrigatório")

	assertRedirect(t, e.get("/custom_fields/9999/values", ""), "/custom_fields")
}

func TestEditarValor(t *testing.T) {
	e := setupTestEnv(t)
	_, vs := testutil.SeedCampo(t, e.db, "Cor", "Azul")
	path := "/editar_valor/" + itoa(vs[0].ID)

	assert.Contains(t, body(t, e.get(path, "")), `value="Azul"`)
	assertRedirect(t, e.postForm(path, url.Values{"valor": {" "}}), path)
	assertRedirect(t, e.postForm(path, url.Values{"valor": {"Anil"}}), "/custom_fields")

	var got model.ValorPersonalizado
	require.NoError(t, e.db.First(&got, vs[0].ID).Error)
	assert.Equal(t, "Anil", got.Valor)
}

func TestExcluirCampo(t *testing.T) {
	e := setupTestEnv(t)
	p := testutil.SeedProduto(t, e.db, model.Produto{Codigo: testutil.Str("1")})
	c, vs := testutil.SeedCampo(t, e.db, "Cor", "Azul")
	require.NoError(t, e.db.Create(&model.ProdutoCampoValor{ProdutoID: p.ID, CampoID: c.ID, ValorID: vs[0].ID}).Error)

	assertRedirect(t, e.postForm("/excluir_campo/"+itoa(c.ID), nil), "/custom_fields")
	assert.Contains(t, body(t, e.get("/custom_fields", "")), "Campo excluído com sucesso!")
	assert.Zero(t, testutil.Count(t, e.db, &model.ProdutoCampoValor{}))
	assert.Zero(t, testutil.Count(t, e.db, &model.ValorPersonalizado{}))
}

func TestProdutos_HTMLeJSON(t *testing.T) {
	e := setupTestEnv(t)
	p := testutil.SeedProduto(t, e.db, model.Produto{Codigo: testutil.Str("ABC-1"), Marca: testutil.Str("Acme")})
	c, vs := testutil.SeedCampo(t, e.db, "Cor", "Azul", "Verde")
	require.NoError(t, e.db.Create(&model.ProdutoCampoValor{ProdutoID: p.ID, CampoID: c.ID, ValorID: vs[1].ID}).Error)

	resp := e.get("/produtos", "text/html")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	page := body(t, resp)
	assert.Contains(t, page, "ABC-1")
	assert.Contains(t, page, `<option value="`+itoa(vs[1].ID)+`" selected>Verde</option>`)

	resp = e.get("/produtos", "application/json")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var cat struct {
		Produtos []struct {
			ID     uint   `json:"id"`
			Codigo string `json:"codigo"`
		} `json:"produtos"`
		Valores struct {
			Campos []uint `json:"campos"`
		} `json:"valores"`
	}
	decodeJSON(t, resp, &cat)
	require.Len(t, cat.Produtos, 1)
	assert.Equal(t, "ABC-1", cat.Produtos[0].Codigo)
	assert.Equal(t, []uint{c.ID}, cat.Valores.Campos)
}

func TestAtualizarValor(t *testing.T) {
	e := setupTestEnv(t)
	p := testutil.SeedProduto(t, e.db, model.Produto{Codigo: testutil.Str("1")})
	c, vs := testutil.SeedCampo(t, e.db, "Cor", "Azul", "Verde")
	form := func(valor string) url.Values {
		return url.Values{"produto_id": {itoa(p.ID)}, "campo_id": {itoa(c.ID)}, "valor_id": {valor}}
	}

	assertRedirect(t, e.postForm("/atualizar_valor", form(itoa(vs[0].ID))), "/produtos")
	assert.Contains(t, body(t, e.get("/produtos", "")), "Valor salvo com sucesso!")

	assertRedirect(t, e.postForm("/atualizar_valor", form(itoa(vs[1].ID))), "/produtos")
	assert.Contains(t, body(t, e.get("/produtos", "")), "Valor atualizado com sucesso!")

	assertRedirect(t, e.postForm("/atualizar_valor", form("")), "/produtos")
	assert.Contains(t, body(t, e.get("/produtos", "")), "Dados incompletos")

	assert.Equal(t, int64(1), testutil.Count(t, e.db, &model.ProdutoCampoValor{}))
}

func TestSalvarTodos(t *testing.T) {
	e := setupTestEnv(t)
	p := testutil.SeedProduto(t, e.db, model.Produto{Codigo: testutil.Str("1")})
	c, vs := testutil.SeedCampo(t, e.db, "Cor", "Azul")

	resp := e.postJSON("/salvar_todos", `{"valores":[
		{"produto_id":"`+itoa(p.ID)+`","campo_id":"`+itoa(c.ID)+`","valor_id":"`+itoa(vs[0].ID)+`"},
		{"produto_id":"`+itoa(p.ID)+`","campo_id":"","valor_id":"`+itoa(vs[0].ID)+`"}
	]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var env envelope
	decodeJSON(t, resp, &env)
	assert.Equal(t, envelope{Status: "success", Message: "Valores salvos com sucesso!", Aceitos: 1, Ignorados: 1}, env)
}

func TestSalvarTodos_CorpoInvalido(t *testing.T) {
	e := setupTestEnv(t)

	resp := e.postJSON("/salvar_todos", `{"valores": [`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var env envelope
	decodeJSON(t, resp, &env)
	assert.Equal(t, "error", env.Status)

	resp = e.postJSON("/salvar_todos", `{}`)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestSalvarTabelaProdutos(t *testing.T) {
	e := setupTestEnv(t)
	p := testutil.SeedProduto(t, e.db, model.Produto{Codigo: testutil.Str("1")})

	resp := e.postJSON("/salvar_tabela_produtos", `{"produtos":[
		{"produto_id":"`+itoa(p.ID)+`","codigo":"1","nome_comercial":"Tênis Acme"},
		{"produto_id":"","codigo":"2","nome_comercial":"ignorado"}
	]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var env envelope
	decodeJSON(t, resp, &env)
	assert.Equal(t, "success", env.Status)
	assert.Equal(t, "1 produtos atualizados com sucesso!", env.Message)

	var got model.Produto
	require.NoError(t, e.db.First(&got, p.ID).Error)
	assert.Equal(t, "Tênis Acme", model.Texto(got.NomeComercial))
}

func TestAtualizarNomeComercial(t *testing.T) {
	e := setupTestEnv(t)
	p := testutil.SeedProduto(t, e.db, model.Produto{Categoria: testutil.Str("Calçado"), Marca: testutil.Str("Acme")})

	assertRedirect(t, e.postForm("/atualizar_nome_comercial", nil), "/produtos")
	assert.Contains(t, body(t, e.get("/produtos", "")), "Nomes comerciais atualizados com sucesso! Total: 1")

	var got model.Produto
	require.NoError(t, e.db.First(&got, p.ID).Error)
	assert.Equal(t, "Calçado Acme", model.Texto(got.NomeComercial))
}

func TestExportarPDF(t *testing.T) {
	e := setupTestEnv(t)
	testutil.SeedProduto(t, e.db, model.Produto{Codigo: testutil.Str("1"), Descricao: testutil.Str("Camiseta")})

	resp := e.get("/produtos/pdf", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.True(t, strings.HasPrefix(body(t, resp), "%PDF"))
}

func TestImportarXML(t *testing.T) {
	e := setupTestEnv(t)

	assertRedirect(t, e.upload("/importar_xml", "nota.xml", nota, ""), "/produtos")
	assert.Contains(t, body(t, e.get("/produtos", "")), "2 produtos importados com sucesso!")
	assert.Equal(t, int64(2), testutil.Count(t, e.db, &model.Produto{}))
}

func TestImportarXML_JSON(t *testing.T) {
	e := setupTestEnv(t)

	resp := e.upload("/importar_xml", "nota.xml", nota, "application/json")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"importados":2}`, body(t, resp))

	ruim := strings.Replace(nota, "<vICMS>5.35</vICMS>", "", 1)
	resp = e.upload("/importar_xml", "ruim.xml", ruim, "application/json")
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	var env envelope
	decodeJSON(t, resp, &env)
	assert.Equal(t, "error", env.Status)
	assert.Contains(t, env.Message, "vICMS")
	assert.Equal(t, int64(2), testutil.Count(t, e.db, &model.Produto{}))
}

func TestImportarXML_SemArquivo(t *testing.T) {
	e := setupTestEnv(t)
	assertRedirect(t, e.postForm("/importar_xml", nil), "/")
	assert.Contains(t, body(t, e.get("/", "")), "Selecione um arquivo XML")
}

func TestNew_ModoInvalido(t *testing.T) {
	_, err := router.New(&config.Config{NomeComercialModo: "outro"}, testutil.NewDB(t))
	assert.Error(t, err)
}
