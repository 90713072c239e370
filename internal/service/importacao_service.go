package service

import (
	"context"
	"io"
	"os"

	"catalogo/internal/dto"
	"catalogo/internal/model"
	"catalogo/internal/nfe"
	"catalogo/internal/repository"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ImportacaoService loads NF-e invoices into the product table. A document is
// imported whole or not at all.
type ImportacaoService interface {
	ImportarNFe(ctx context.Context, r io.Reader) (dto.ImportacaoResponse, error)
	ImportarArquivo(ctx context.Context, path string) (dto.ImportacaoResponse, error)
}

type importacaoService struct {
	produtoRepo repository.ProdutoRepository
}

func NewImportacaoService(produtoRepo repository.ProdutoRepository) ImportacaoService {
	return &importacaoService{produtoRepo: produtoRepo}
}

func (s *importacaoService) ImportarArquivo(ctx context.Context, path string) (dto.ImportacaoResponse, error) {
	f, err := os.Open(path)
	if err != nil {
		return dto.ImportacaoResponse{}, errImportacao("Não foi possível abrir o arquivo", err)
	}
	defer f.Close()

	resp, err := s.ImportarNFe(ctx, f)
	if err != nil {
		return resp, err
	}
	log.Info().Str("arquivo", path).Int("produtos", resp.Importados).Msg("nota fiscal importada")
	return resp, nil
}

func (s *importacaoService) ImportarNFe(ctx context.Context, r io.Reader) (dto.ImportacaoResponse, error) {
	// Parse everything before touching storage so a bad item leaves no rows.
	itens, err := nfe.Parse(r)
	if err != nil {
		return dto.ImportacaoResponse{}, errImportacao("Arquivo XML inválido", err)
	}

	err = runTx(ctx, s.produtoRepo.DB(), func(tx *gorm.DB) error {
		for _, it := range itens {
			p := produtoDoItem(it)
			if err := s.produtoRepo.CreateTx(tx, &p); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return dto.ImportacaoResponse{}, errArmazenamento("Erro ao gravar produtos importados", err)
	}

	log.Info().Int("produtos", len(itens)).Msg("itens de NF-e importados")
	return dto.ImportacaoResponse{Importados: len(itens)}, nil
}

func produtoDoItem(it nfe.Item) model.Produto {
	return model.Produto{
		Codigo:         model.TextoPtr(it.Codigo),
		EAN:            model.TextoPtr(it.EAN),
		Descricao:      model.TextoPtr(it.Descricao),
		NCM:            model.TextoPtr(it.NCM),
		CFOP:           model.TextoPtr(it.CFOP),
		Quantidade:     valido(it.Quantidade),
		PrecoUnitario:  valido(it.PrecoUnitario),
		PrecoTotal:     valido(it.PrecoTotal),
		ICMSBase:       valido(it.ICMS.Base),
		ICMSPercentual: valido(it.ICMS.Percentual),
		ICMSValor:      valido(it.ICMS.Valor),
		IPIBase:        valido(it.IPI.Base),
		IPIPercentual:  valido(it.IPI.Percentual),
		IPIValor:       valido(it.IPI.Valor),
	}
}

func valido(d decimal.Decimal) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: d, Valid: true}
}
