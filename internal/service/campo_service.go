package service

import (
	"context"
	"errors"
	"strings"

	"catalogo/internal/dto"
	"catalogo/internal/model"
	"catalogo/internal/repository"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// CampoService manages custom fields and the values allowed for each one.
type CampoService interface {
	Criar(ctx context.Context, req dto.CriarCampoRequest) (dto.CampoResponse, error)
	Listar(ctx context.Context) ([]dto.CampoResponse, error)
	ObterPorID(ctx context.Context, id uint) (dto.CampoResponse, error)
	Atualizar(ctx context.Context, id uint, req dto.AtualizarCampoRequest) (dto.CampoResponse, error)
	Excluir(ctx context.Context, id uint) (dto.ExclusaoCampoResponse, error)

	AdicionarValor(ctx context.Context, campoID uint, req dto.ValorRequest) (dto.ValorResponse, error)
	ListarValores(ctx context.Context, campoID uint) (dto.CampoComValoresResponse, error)
	ObterValor(ctx context.Context, id uint) (dto.ValorResponse, error)
	AtualizarValor(ctx context.Context, id uint, req dto.ValorRequest) (dto.ValorResponse, error)
}

type campoService struct {
	repo repository.CampoRepository
}

func NewCampoService(repo repository.CampoRepository) CampoService {
	return &campoService{repo: repo}
}

func mapCampo(c model.CampoPersonalizado) dto.CampoResponse {
	return dto.CampoResponse{ID: c.ID, Nome: c.Nome, Tipo: c.Tipo}
}

func mapValor(v model.ValorPersonalizado) dto.ValorResponse {
	return dto.ValorResponse{ID: v.ID, CampoID: v.CampoID, Valor: v.Valor}
}

func (s *campoService) Criar(ctx context.Context, req dto.CriarCampoRequest) (dto.CampoResponse, error) {
	nome := strings.TrimSpace(req.Nome)
	if nome == "" {
		return dto.CampoResponse{}, errValidacao("O nome do campo é obrigatório")
	}
	tipo := strings.TrimSpace(req.Tipo)
	if tipo == "" {
		tipo = model.TipoManual
	}

	c := &model.CampoPersonalizado{Nome: nome, Tipo: tipo}
	if err := s.repo.Criar(ctx, c); err != nil {
		return dto.CampoResponse{}, errArmazenamento("Erro ao adicionar campo", err)
	}
	log.Info().Uint("campo_id", c.ID).Str("nome", c.Nome).Msg("campo personalizado criado")
	return mapCampo(*c), nil
}

func (s *campoService) Listar(ctx context.Context) ([]dto.CampoResponse, error) {
	list, err := s.repo.Listar(ctx)
	if err != nil {
		return nil, errArmazenamento("Erro ao carregar campos", err)
	}
	result := make([]dto.CampoResponse, 0, len(list))
	for _, c := range list {
		result = append(result, mapCampo(c))
	}
	return result, nil
}

func (s *campoService) ObterPorID(ctx context.Context, id uint) (dto.CampoResponse, error) {
	c, err := s.obter(ctx, id)
	if err != nil {
		return dto.CampoResponse{}, err
	}
	return mapCampo(*c), nil
}

func (s *campoService) obter(ctx context.Context, id uint) (*model.CampoPersonalizado, error) {
	c, err := s.repo.ObterPorID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNaoEncontrado("Campo não encontrado")
		}
		return nil, errArmazenamento("Erro ao carregar campo", err)
	}
	return c, nil
}

func (s *campoService) Atualizar(ctx context.Context, id uint, req dto.AtualizarCampoRequest) (dto.CampoResponse, error) {
	nome := strings.TrimSpace(req.Nome)
	tipo := strings.TrimSpace(req.Tipo)
	if nome == "" || tipo == "" {
		return dto.CampoResponse{}, errValidacao("Nome e tipo são obrigatórios")
	}

	c, err := s.obter(ctx, id)
	if err != nil {
		return dto.CampoResponse{}, err
	}
	c.Nome = nome
	c.Tipo = tipo
	if err := s.repo.Atualizar(ctx, c); err != nil {
		return dto.CampoResponse{}, errArmazenamento("Erro ao atualizar campo", err)
	}
	return mapCampo(*c), nil
}

func (s *campoService) Excluir(ctx context.Context, id uint) (dto.ExclusaoCampoResponse, error) {
	if _, err := s.obter(ctx, id); err != nil {
		return dto.ExclusaoCampoResponse{}, err
	}

	res, err := s.repo.ExcluirCascata(ctx, id)
	if err != nil {
		return dto.ExclusaoCampoResponse{}, errArmazenamento("Erro ao excluir campo", err)
	}
	// Someone else removed it between the lookup and the delete.
	if res.Campos == 0 {
		return dto.ExclusaoCampoResponse{}, errNaoEncontrado("Campo não encontrado")
	}

	log.Info().
		Uint("campo_id", id).
		Int64("valores", res.Valores).
		Int64("atribuicoes", res.Atribuicoes).
		Msg("campo personalizado excluído")
	return dto.ExclusaoCampoResponse{
		CampoID:              id,
		ValoresRemovidos:     res.Valores,
		AtribuicoesRemovidas: res.Atribuicoes,
	}, nil
}

func (s *campoService) AdicionarValor(ctx context.Context, campoID uint, req dto.ValorRequest) (dto.ValorResponse, error) {
	texto := strings.TrimSpace(req.Valor)
	if texto == "" {
		return dto.ValorResponse{}, errValidacao("O valor é obrigatório")
	}
	if _, err := s.obter(ctx, campoID); err != nil {
		if errors.Is(err, ErrNaoEncontrado) {
			return dto.ValorResponse{}, errValidacao("Campo inexistente")
		}
		return dto.ValorResponse{}, err
	}

	v := &model.ValorPersonalizado{CampoID: campoID, Valor: texto}
	if err := s.repo.CriarValor(ctx, v); err != nil {
		return dto.ValorResponse{}, errArmazenamento("Erro ao adicionar valor", err)
	}
	return mapValor(*v), nil
}

func (s *campoService) ListarValores(ctx context.Context, campoID uint) (dto.CampoComValoresResponse, error) {
	c, err := s.obter(ctx, campoID)
	if err != nil {
		return dto.CampoComValoresResponse{}, err
	}
	list, err := s.repo.ListarValores(ctx, campoID)
	if err != nil {
		return dto.CampoComValoresResponse{}, errArmazenamento("Erro ao carregar valores", err)
	}
	valores := make([]dto.ValorResponse, 0, len(list))
	for _, v := range list {
		valores = append(valores, mapValor(v))
	}
	return dto.CampoComValoresResponse{Campo: mapCampo(*c), Valores: valores}, nil
}

func (s *campoService) ObterValor(ctx context.Context, id uint) (dto.ValorResponse, error) {
	v, err := s.obterValor(ctx, id)
	if err != nil {
		return dto.ValorResponse{}, err
	}
	return mapValor(*v), nil
}

func (s *campoService) obterValor(ctx context.Context, id uint) (*model.ValorPersonalizado, error) {
	v, err := s.repo.ObterValorPorID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNaoEncontrado("Valor não encontrado")
		}
		return nil, errArmazenamento("Erro ao carregar valor", err)
	}
	return v, nil
}

func (s *campoService) AtualizarValor(ctx context.Context, id uint, req dto.ValorRequest) (dto.ValorResponse, error) {
	texto := strings.TrimSpace(req.Valor)
	if texto == "" {
		return dto.ValorResponse{}, errValidacao("O valor é obrigatório")
	}
	v, err := s.obterValor(ctx, id)
	if err != nil {
		return dto.ValorResponse{}, err
	}
	v.Valor = texto
	if err := s.repo.AtualizarValor(ctx, v); err != nil {
		return dto.ValorResponse{}, errArmazenamento("Erro ao atualizar valor", err)
	}
	return mapValor(*v), nil
}
