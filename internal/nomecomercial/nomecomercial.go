// Package nomecomercial derives a product's commercial name from six fixed
// attributes: categoria, marca, modelo, cor, faixa etária and gênero.
package nomecomercial

import (
	"fmt"
	"strings"
)

// SemInformacoes is returned by Juncao when every attribute is blank.
const SemInformacoes = "Sem Informações"

// Modes accepted by PorModo.
const (
	ModoJuncao     = "juncao"
	ModoMarcadores = "marcadores"
)

// Atributos are the inputs of the derivation, in output order.
type Atributos struct {
	Categoria   string
	Marca       string
	Modelo      string
	Cor         string
	FaixaEtaria string
	Genero      string
}

func (a Atributos) partes() []string {
	return []string{a.Categoria, a.Marca, a.Modelo, a.Cor, a.FaixaEtaria, a.Genero}
}

// Gerador computes a commercial name.
type Gerador func(Atributos) string

// Juncao joins the raw values with single spaces and trims the ends. Blank
// attributes still contribute their (empty) token, so interior double spaces
// are kept. When the result is empty it returns SemInformacoes.
func Juncao(a Atributos) string {
	nome := strings.TrimSpace(strings.Join(a.partes(), " "))
	if nome == "" {
		return SemInformacoes
	}
	return nome
}

var marcadores = [6]string{
	"Sem Categoria",
	"Sem Marca",
	"Sem Modelo",
	"Sem Cor",
	"Sem Faixa Etária",
	"Sem Gênero",
}

// Marcadores replaces every blank attribute with its own placeholder
// ("Sem Marca", "Sem Cor", ...) before joining.
func Marcadores(a Atributos) string {
	partes := a.partes()
	for i, p := range partes {
		p = strings.TrimSpace(p)
		if p == "" {
			p = marcadores[i]
		}
		partes[i] = p
	}
	return strings.Join(partes, " ")
}

// PorModo returns the generator configured by NOME_COMERCIAL_MODO.
func PorModo(modo string) (Gerador, error) {
	switch modo {
	case "", ModoJuncao:
		return Juncao, nil
	case ModoMarcadores:
		return Marcadores, nil
	default:
		return nil, fmt.Errorf("modo de nome comercial desconhecido: %q", modo)
	}
}
