package service

import (
	"context"
	"errors"

	"catalogo/internal/dto"
	"catalogo/internal/model"
	"catalogo/internal/repository"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// AtribuicaoService links products to custom field values. A product holds at
// most one value per field; assigning again replaces the previous value.
type AtribuicaoService interface {
	Atribuir(ctx context.Context, produtoID, campoID, valorID uint) (dto.AtribuicaoResponse, error)
	AtribuirLote(ctx context.Context, itens []dto.ItemAtribuicao) (dto.LoteResponse, error)
}

type atribuicaoService struct {
	repo        repository.AtribuicaoRepository
	produtoRepo repository.ProdutoRepository
	campoRepo   repository.CampoRepository
}

func NewAtribuicaoService(
	repo repository.AtribuicaoRepository,
	produtoRepo repository.ProdutoRepository,
	campoRepo repository.CampoRepository,
) AtribuicaoService {
	return &atribuicaoService{repo: repo, produtoRepo: produtoRepo, campoRepo: campoRepo}
}

func (s *atribuicaoService) Atribuir(ctx context.Context, produtoID, campoID, valorID uint) (dto.AtribuicaoResponse, error) {
	if produtoID == 0 || campoID == 0 || valorID == 0 {
		return dto.AtribuicaoResponse{}, errValidacao("Dados incompletos")
	}

	var substituida bool
	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.verificar(tx, produtoID, campoID, valorID); err != nil {
			return err
		}
		var err error
		substituida, err = s.repo.UpsertTx(tx, &model.ProdutoCampoValor{
			ProdutoID: produtoID,
			CampoID:   campoID,
			ValorID:   valorID,
		})
		return err
	})
	if err != nil {
		return dto.AtribuicaoResponse{}, errArmazenamento("Erro ao salvar valor", err)
	}

	return dto.AtribuicaoResponse{
		ProdutoID:   produtoID,
		CampoID:     campoID,
		ValorID:     valorID,
		Substituida: substituida,
	}, nil
}

// AtribuirLote applies every complete entry in one transaction. Entries with a
// missing id or a broken reference are skipped and counted as ignored; a
// storage failure rolls the whole batch back.
func (s *atribuicaoService) AtribuirLote(ctx context.Context, itens []dto.ItemAtribuicao) (dto.LoteResponse, error) {
	res := dto.LoteResponse{Total: len(itens)}

	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		res.Aceitos = 0
		for i, it := range itens {
			if !it.ProdutoID.Presente() || !it.CampoID.Presente() || !it.ValorID.Presente() {
				log.Debug().Int("indice", i).Msg("atribuição incompleta ignorada")
				continue
			}
			p, c, v := uint(it.ProdutoID), uint(it.CampoID), uint(it.ValorID)
			if err := s.verificar(tx, p, c, v); err != nil {
				if errors.Is(err, ErrValidacao) {
					log.Debug().Int("indice", i).Err(err).Msg("atribuição inválida ignorada")
					continue
				}
				return err
			}
			if _, err := s.repo.UpsertTx(tx, &model.ProdutoCampoValor{ProdutoID: p, CampoID: c, ValorID: v}); err != nil {
				return err
			}
			res.Aceitos++
		}
		return nil
	})
	if err != nil {
		return dto.LoteResponse{}, errArmazenamento("Erro ao salvar valores", err)
	}

	res.Ignorados = res.Total - res.Aceitos
	log.Info().Int("aceitos", res.Aceitos).Int("ignorados", res.Ignorados).Msg("lote de atribuições salvo")
	return res, nil
}

// verificar checks that product, field and value exist and that the value
// belongs to the field.
func (s *atribuicaoService) verificar(tx *gorm.DB, produtoID, campoID, valorID uint) error {
	ok, err := s.produtoRepo.ExistsTx(tx, produtoID)
	if err != nil {
		return err
	}
	if !ok {
		return errValidacao("Produto inexistente")
	}

	ok, err = s.campoRepo.ExisteTx(tx, campoID)
	if err != nil {
		return err
	}
	if !ok {
		return errValidacao("Campo inexistente")
	}

	v, err := s.campoRepo.ObterValorTx(tx, valorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errValidacao("Valor inexistente")
		}
		return err
	}
	if v.CampoID != campoID {
		return errValidacao("O valor não pertence ao campo informado")
	}
	return nil
}
