// Package nfe reads product line items out of Brazilian electronic invoice
// (NF-e) XML documents.
//
// Only the fields the catalog stores are decoded. Elements are matched by local
// name, so documents with or without the portalfiscal namespace, wrapped in
// nfeProc or not, are all accepted.
package nfe

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/unicode/norm"
)

// Namespace is the XML namespace of NF-e documents.
const Namespace = "http://www.portalfiscal.inf.br/nfe"

// Item is one invoice line item (det).
type Item struct {
	NumeroItem    int
	Codigo        string
	EAN           string
	Descricao     string
	NCM           string
	CFOP          string
	Quantidade    decimal.Decimal
	PrecoUnitario decimal.Decimal
	PrecoTotal    decimal.Decimal

	ICMS Imposto
	// IPI is zero when the item has no IPITrib group.
	IPI Imposto
}

// Imposto holds base, rate and amount of one tax.
type Imposto struct {
	Base       decimal.Decimal
	Percentual decimal.Decimal
	Valor      decimal.Decimal
}

// ErrDocumento is wrapped by every error caused by the document content.
var ErrDocumento = errors.New("nfe: documento inválido")

// ItemError reports a problem with a specific line item.
type ItemError struct {
	NumeroItem int
	Campo      string
	Err        error
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("nfe: item %d, campo %s: %v", e.NumeroItem, e.Campo, e.Err)
}

func (e *ItemError) Unwrap() []error { return []error{ErrDocumento, e.Err} }

type detXML struct {
	NItem string `xml:"nItem,attr"`
	Prod  struct {
		CProd  *string `xml:"cProd"`
		CEAN   *string `xml:"cEAN"`
		XProd  *string `xml:"xProd"`
		NCM    *string `xml:"NCM"`
		CFOP   *string `xml:"CFOP"`
		QCom   *string `xml:"qCom"`
		VUnCom *string `xml:"vUnCom"`
		VProd  *string `xml:"vProd"`
	} `xml:"prod"`
	Imposto struct {
		ICMS *struct {
			// Exactly one group (ICMS00, ICMS20, ICMSSN900, ...) is present.
			Grupos []grupoXML `xml:",any"`
		} `xml:"ICMS"`
		IPI *struct {
			IPITrib *grupoIPIXML `xml:"IPITrib"`
		} `xml:"IPI"`
	} `xml:"imposto"`
}

type grupoXML struct {
	VBC   *string `xml:"vBC"`
	PICMS *string `xml:"pICMS"`
	VICMS *string `xml:"vICMS"`
}

type grupoIPIXML struct {
	VBC  *string `xml:"vBC"`
	PIPI *string `xml:"pIPI"`
	VIPI *string `xml:"vIPI"`
}

// Parse decodes every det element of the document. Any malformed or missing
// required value fails the whole parse; no partial result is returned.
func Parse(r io.Reader) ([]Item, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel

	var itens []Item
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDocumento, err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "det" {
			continue
		}

		var det detXML
		if err := dec.DecodeElement(&det, &start); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDocumento, err)
		}
		item, err := det.item(len(itens) + 1)
		if err != nil {
			return nil, err
		}
		itens = append(itens, item)
	}
	return itens, nil
}

func (d *detXML) item(posicao int) (Item, error) {
	p := parser{numero: posicao}
	if n, err := strconv.Atoi(strings.TrimSpace(d.NItem)); err == nil {
		p.numero = n
	}

	item := Item{
		NumeroItem:    p.numero,
		Codigo:        p.texto("cProd", d.Prod.CProd),
		EAN:           p.texto("cEAN", d.Prod.CEAN),
		Descricao:     p.texto("xProd", d.Prod.XProd),
		NCM:           p.texto("NCM", d.Prod.NCM),
		CFOP:          p.texto("CFOP", d.Prod.CFOP),
		Quantidade:    p.valor("qCom", d.Prod.QCom),
		PrecoUnitario: p.valor("vUnCom", d.Prod.VUnCom),
		PrecoTotal:    p.valor("vProd", d.Prod.VProd),
	}

	var icms grupoXML
	if d.Imposto.ICMS != nil && len(d.Imposto.ICMS.Grupos) > 0 {
		icms = d.Imposto.ICMS.Grupos[0]
	}
	item.ICMS = Imposto{
		Base:       p.valor("vBC", icms.VBC),
		Percentual: p.valor("pICMS", icms.PICMS),
		Valor:      p.valor("vICMS", icms.VICMS),
	}

	if d.Imposto.IPI != nil && d.Imposto.IPI.IPITrib != nil {
		ipi := d.Imposto.IPI.IPITrib
		item.IPI = Imposto{
			Base:       p.opcional("vBC (IPI)", ipi.VBC),
			Percentual: p.opcional("pIPI", ipi.PIPI),
			Valor:      p.opcional("vIPI", ipi.VIPI),
		}
	}

	if p.err != nil {
		return Item{}, p.err
	}
	return item, nil
}

// parser keeps the first error so item() can read every field linearly.
type parser struct {
	numero int
	err    error
}

func (p *parser) fail(campo string, err error) {
	if p.err == nil {
		p.err = &ItemError{NumeroItem: p.numero, Campo: campo, Err: err}
	}
}

var errAusente = errors.New("elemento ausente")

func (p *parser) texto(campo string, v *string) string {
	if v == nil {
		p.fail(campo, errAusente)
		return ""
	}
	return norm.NFC.String(strings.TrimSpace(*v))
}

func (p *parser) valor(campo string, v *string) decimal.Decimal {
	if v == nil {
		p.fail(campo, errAusente)
		return decimal.Zero
	}
	d, err := decimal.NewFromString(strings.TrimSpace(*v))
	if err != nil {
		p.fail(campo, fmt.Errorf("valor numérico inválido %q", *v))
		return decimal.Zero
	}
	return d
}

func (p *parser) opcional(campo string, v *string) decimal.Decimal {
	if v == nil {
		return decimal.Zero
	}
	return p.valor(campo, v)
}
