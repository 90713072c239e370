package service

import (
	"errors"

	"gorm.io/gorm"
)

// Kind classifies service failures so the HTTP layer can pick a status code
// and a message without inspecting storage errors.
type Kind int

const (
	KindValidacao Kind = iota + 1
	KindNaoEncontrado
	KindConflito
	KindImportacao
	KindArmazenamento
)

func (k Kind) String() string {
	switch k {
	case KindValidacao:
		return "validacao"
	case KindNaoEncontrado:
		return "nao_encontrado"
	case KindConflito:
		return "conflito"
	case KindImportacao:
		return "importacao"
	case KindArmazenamento:
		return "armazenamento"
	default:
		return "desconhecido"
	}
}

// Error is the error type returned by every service operation.
// Mensagem is safe to show to the operator; Err keeps the underlying cause.
type Error struct {
	Kind     Kind
	Mensagem string
	Err      error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Mensagem + ": " + e.Err.Error()
	}
	return e.Mensagem
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches the sentinels below by kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Mensagem == "" && t.Err == nil && t.Kind == e.Kind
}

// Sentinels for errors.Is.
var (
	ErrValidacao     = &Error{Kind: KindValidacao}
	ErrNaoEncontrado = &Error{Kind: KindNaoEncontrado}
	ErrConflito      = &Error{Kind: KindConflito}
	ErrImportacao    = &Error{Kind: KindImportacao}
	ErrArmazenamento = &Error{Kind: KindArmazenamento}
)

func errValidacao(msg string) error     { return &Error{Kind: KindValidacao, Mensagem: msg} }
func errNaoEncontrado(msg string) error { return &Error{Kind: KindNaoEncontrado, Mensagem: msg} }

func errImportacao(msg string, cause error) error {
	return &Error{Kind: KindImportacao, Mensagem: msg, Err: cause}
}

// errArmazenamento classifies a storage error. Constraint violations become
// conflicts; already-classified errors pass through.
func errArmazenamento(msg string, cause error) error {
	var svcErr *Error
	if errors.As(cause, &svcErr) {
		return cause
	}
	if errors.Is(cause, gorm.ErrDuplicatedKey) || errors.Is(cause, gorm.ErrForeignKeyViolated) {
		return &Error{Kind: KindConflito, Mensagem: msg, Err: cause}
	}
	return &Error{Kind: KindArmazenamento, Mensagem: msg, Err: cause}
}

// KindOf returns the kind of err, or KindArmazenamento for foreign errors.
func KindOf(err error) Kind {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Kind
	}
	return KindArmazenamento
}

// MensagemPublica returns the operator-facing message of err. Causes are
// only exposed for import errors, where they point at the offending item.
func MensagemPublica(err error) string {
	var svcErr *Error
	if !errors.As(err, &svcErr) {
		return "Erro interno do servidor"
	}
	if svcErr.Kind == KindImportacao && svcErr.Err != nil {
		return svcErr.Mensagem + ": " + svcErr.Err.Error()
	}
	return svcErr.Mensagem
}

// NovoErroValidacao builds a validation error for input rejected before it
// reaches a service, such as a missing upload.
func NovoErroValidacao(msg string) error { return errValidacao(msg) }
