package dto

// ── Request DTOs ──────────────────────────────────────────────────────────────

// CriarCampoRequest is posted by the field management form.
type CriarCampoRequest struct {
	Nome string `form:"nome" json:"nome"`
	Tipo string `form:"tipo" json:"tipo"` // defaults to "manual"
}

type AtualizarCampoRequest struct {
	Nome string `form:"nome" json:"nome"`
	Tipo string `form:"tipo" json:"tipo"`
}

// ValorRequest creates or edits a custom value.
type ValorRequest struct {
	Valor string `form:"valor" json:"valor"`
}

// ── Response DTOs ─────────────────────────────────────────────────────────────

type CampoResponse struct {
	ID   uint   `json:"id"`
	Nome string `json:"nome"`
	Tipo string `json:"tipo"`
}

type ValorResponse struct {
	ID      uint   `json:"id"`
	CampoID uint   `json:"campo_id"`
	Valor   string `json:"valor"`
}

type CampoComValoresResponse struct {
	Campo   CampoResponse   `json:"campo"`
	Valores []ValorResponse `json:"valores"`
}

// ExclusaoCampoResponse reports what the cascading delete removed.
type ExclusaoCampoResponse struct {
	CampoID              uint  `json:"campo_id"`
	ValoresRemovidos     int64 `json:"valores_removidos"`
	AtribuicoesRemovidas int64 `json:"atribuicoes_removidas"`
}
