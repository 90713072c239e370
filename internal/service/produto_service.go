package service

import (
	"context"
	"strings"

	"catalogo/internal/dto"
	"catalogo/internal/model"
	"catalogo/internal/nomecomercial"
	"catalogo/internal/repository"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ProdutoService serves the catalog view and maintains commercial names.
type ProdutoService interface {
	Catalogo(ctx context.Context) (*dto.CatalogoResponse, error)
	Listar(ctx context.Context) ([]dto.ProdutoResponse, error)
	RegenerarNomesComerciais(ctx context.Context) (int, error)
	SalvarNomesComerciais(ctx context.Context, itens []dto.ItemNomeComercial) (dto.LoteResponse, error)
}

type produtoService struct {
	repo           repository.ProdutoRepository
	campoRepo      repository.CampoRepository
	atribuicaoRepo repository.AtribuicaoRepository
	gerador        nomecomercial.Gerador
}

// NewProdutoService builds the service. A nil gerador falls back to
// nomecomercial.Juncao.
func NewProdutoService(
	repo repository.ProdutoRepository,
	campoRepo repository.CampoRepository,
	atribuicaoRepo repository.AtribuicaoRepository,
	gerador nomecomercial.Gerador,
) ProdutoService {
	if gerador == nil {
		gerador = nomecomercial.Juncao
	}
	return &produtoService{
		repo:           repo,
		campoRepo:      campoRepo,
		atribuicaoRepo: atribuicaoRepo,
		gerador:        gerador,
	}
}

func mapProduto(p model.Produto) dto.ProdutoResponse {
	return dto.ProdutoResponse{
		ID:            p.ID,
		Codigo:        model.Texto(p.Codigo),
		EAN:           model.Texto(p.EAN),
		Descricao:     model.Texto(p.Descricao),
		Categoria:     model.Texto(p.Categoria),
		Marca:         model.Texto(p.Marca),
		Modelo:        model.Texto(p.Modelo),
		Cor:           model.Texto(p.Cor),
		FaixaEtaria:   model.Texto(p.FaixaEtaria),
		Genero:        model.Texto(p.Genero),
		NomeComercial: model.Texto(p.NomeComercial),
		NCM:           model.Texto(p.NCM),
		CFOP:          model.Texto(p.CFOP),
		Quantidade:    p.Quantidade,
		PrecoUnitario: p.PrecoUnitario,
		PrecoTotal:    p.PrecoTotal,
	}
}

func atributos(p model.Produto) nomecomercial.Atributos {
	return nomecomercial.Atributos{
		Categoria:   model.Texto(p.Categoria),
		Marca:       model.Texto(p.Marca),
		Modelo:      model.Texto(p.Modelo),
		Cor:         model.Texto(p.Cor),
		FaixaEtaria: model.Texto(p.FaixaEtaria),
		Genero:      model.Texto(p.Genero),
	}
}

// AgruparValores indexes values by field. Fields appear in the order their
// first value was read and each field keeps its values in read order.
func AgruparValores(valores []model.ValorPersonalizado) dto.IndiceValores {
	idx := dto.IndiceValores{PorCampo: make(map[uint][]dto.ValorOpcao)}
	for _, v := range valores {
		if _, visto := idx.PorCampo[v.CampoID]; !visto {
			idx.Campos = append(idx.Campos, v.CampoID)
		}
		idx.PorCampo[v.CampoID] = append(idx.PorCampo[v.CampoID], dto.ValorOpcao{ID: v.ID, Valor: v.Valor})
	}
	return idx
}

func (s *produtoService) Listar(ctx context.Context) ([]dto.ProdutoResponse, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, errArmazenamento("Erro ao carregar produtos", err)
	}
	out := make([]dto.ProdutoResponse, 0, len(list))
	for _, p := range list {
		out = append(out, mapProduto(p))
	}
	return out, nil
}

func (s *produtoService) Catalogo(ctx context.Context) (*dto.CatalogoResponse, error) {
	produtos, err := s.Listar(ctx)
	if err != nil {
		return nil, err
	}

	campos, err := s.campoRepo.Listar(ctx)
	if err != nil {
		return nil, errArmazenamento("Erro ao carregar campos", err)
	}
	valores, err := s.campoRepo.ListarTodosValores(ctx)
	if err != nil {
		return nil, errArmazenamento("Erro ao carregar valores", err)
	}
	atribuicoes, err := s.atribuicaoRepo.Listar(ctx)
	if err != nil {
		return nil, errArmazenamento("Erro ao carregar atribuições", err)
	}

	resp := &dto.CatalogoResponse{
		Produtos:    produtos,
		Campos:      make([]dto.CampoResponse, 0, len(campos)),
		Valores:     AgruparValores(valores),
		Atribuicoes: make(map[uint]map[uint]uint),
	}
	for _, c := range campos {
		resp.Campos = append(resp.Campos, mapCampo(c))
	}
	for _, a := range atribuicoes {
		if resp.Atribuicoes[a.ProdutoID] == nil {
			resp.Atribuicoes[a.ProdutoID] = make(map[uint]uint)
		}
		resp.Atribuicoes[a.ProdutoID][a.CampoID] = a.ValorID
	}
	return resp, nil
}

func (s *produtoService) RegenerarNomesComerciais(ctx context.Context) (int, error) {
	var n int
	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		n = 0
		produtos, err := s.repo.ListTx(tx)
		if err != nil {
			return err
		}
		for _, p := range produtos {
			if _, err := s.repo.UpdateNomeComercialTx(tx, p.ID, s.gerador(atributos(p))); err != nil {
				return err
			}
			n++
		}
		return nil
	})
	if err != nil {
		return 0, errArmazenamento("Erro ao atualizar nomes comerciais", err)
	}
	log.Info().Int("produtos", n).Msg("nomes comerciais regenerados")
	return n, nil
}

// SalvarNomesComerciais stores operator-edited names. Entries without an id or
// with a blank name, and ids matching no product, are ignored.
func (s *produtoService) SalvarNomesComerciais(ctx context.Context, itens []dto.ItemNomeComercial) (dto.LoteResponse, error) {
	res := dto.LoteResponse{Total: len(itens)}
	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		res.Aceitos = 0
		for _, it := range itens {
			nome := strings.TrimSpace(it.NomeComercial)
			if !it.ProdutoID.Presente() || nome == "" {
				continue
			}
			n, err := s.repo.UpdateNomeComercialTx(tx, uint(it.ProdutoID), nome)
			if err != nil {
				return err
			}
			if n > 0 {
				res.Aceitos++
			}
		}
		return nil
	})
	if err != nil {
		return dto.LoteResponse{}, errArmazenamento("Erro ao salvar tabela", err)
	}
	res.Ignorados = res.Total - res.Aceitos
	log.Info().Int("aceitos", res.Aceitos).Int("ignorados", res.Ignorados).Msg("nomes comerciais salvos")
	return res, nil
}
