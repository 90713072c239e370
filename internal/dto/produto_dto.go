package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// AtribuirValorRequest is the /atualizar_valor form. Ids are bound as text so a
// blank field reaches the service as "missing" instead of a bind error.
type AtribuirValorRequest struct {
	ProdutoID string `form:"produto_id" json:"produto_id"`
	CampoID   string `form:"campo_id"   json:"campo_id"`
	ValorID   string `form:"valor_id"   json:"valor_id"`
}

// ItemAtribuicao is one entry of a /salvar_todos batch.
type ItemAtribuicao struct {
	ProdutoID ID `json:"produto_id"`
	CampoID   ID `json:"campo_id"`
	ValorID   ID `json:"valor_id"`
}

type SalvarTodosRequest struct {
	Valores []ItemAtribuicao `json:"valores" validate:"required"`
}

// ItemNomeComercial is one row of the /salvar_tabela_produtos batch.
type ItemNomeComercial struct {
	ProdutoID     ID     `json:"produto_id"`
	Codigo        string `json:"codigo"`
	NomeComercial string `json:"nome_comercial"`
}

type SalvarTabelaRequest struct {
	Produtos []ItemNomeComercial `json:"produtos" validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProdutoResponse struct {
	ID            uint   `json:"id"`
	Codigo        string `json:"codigo"`
	EAN           string `json:"ean"`
	Descricao     string `json:"descricao"`
	Categoria     string `json:"categoria"`
	Marca         string `json:"marca"`
	Modelo        string `json:"modelo"`
	Cor           string `json:"cor"`
	FaixaEtaria   string `json:"faixa_etaria"`
	Genero        string `json:"genero"`
	NomeComercial string `json:"nome_comercial"`

	NCM           string              `json:"ncm,omitempty"`
	CFOP          string              `json:"cfop,omitempty"`
	Quantidade    decimal.NullDecimal `json:"quantidade"`
	PrecoUnitario decimal.NullDecimal `json:"preco_unitario"`
	PrecoTotal    decimal.NullDecimal `json:"preco_total"`
}

// ValorOpcao is one selectable value of a field in the catalog view.
type ValorOpcao struct {
	ID    uint   `json:"id"`
	Valor string `json:"valor"`
}

// IndiceValores groups custom values by field. Campos keeps the order in
// which each field was first seen; PorCampo keeps storage read order.
type IndiceValores struct {
	Campos   []uint                `json:"campos"`
	PorCampo map[uint][]ValorOpcao `json:"por_campo"`
}

// Valores returns the options of one field (nil when it has none).
func (i IndiceValores) Valores(campoID uint) []ValorOpcao {
	return i.PorCampo[campoID]
}

type CatalogoResponse struct {
	Produtos []ProdutoResponse `json:"produtos"`
	Campos   []CampoResponse   `json:"campos"`
	Valores  IndiceValores     `json:"valores"`
	// Atribuicoes maps produto id → campo id → valor id.
	Atribuicoes map[uint]map[uint]uint `json:"atribuicoes"`
}

// ValorAtribuido returns the value currently chosen for a product and field.
func (c *CatalogoResponse) ValorAtribuido(produtoID, campoID uint) uint {
	return c.Atribuicoes[produtoID][campoID]
}

type AtribuicaoResponse struct {
	ProdutoID uint `json:"produto_id"`
	CampoID   uint `json:"campo_id"`
	ValorID   uint `json:"valor_id"`
	// Substituida is true when an existing assignment was replaced.
	Substituida bool `json:"substituida"`
}

// LoteResponse summarises a partial-success batch.
type LoteResponse struct {
	Total     int `json:"total"`
	Aceitos   int `json:"aceitos"`
	Ignorados int `json:"ignorados"`
}

type ImportacaoResponse struct {
	Importados int `json:"importados"`
}
