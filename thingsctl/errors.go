package thingsctl

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	ErrLex        ErrorKind = "lex"
	ErrParse      ErrorKind = "parse"
	ErrEmptyQuery ErrorKind = "empty_query"
	ErrSemantic   ErrorKind = "semantic"
	ErrDatabase   ErrorKind = "database"
	ErrBridge     ErrorKind = "bridge"
	ErrConfig     ErrorKind = "config"
	ErrNotFound   ErrorKind = "not_found"
	ErrBulk       ErrorKind = "bulk"
	ErrTemplate   ErrorKind = "template"
	ErrDate       ErrorKind = "date"
)

// Error is the shared error type for the whole module. Kind identifies
// the failure class; Field, Token and Pos carry query diagnostics where
// they apply and stay zero otherwise.
type Error struct {
	Kind    ErrorKind
	Message string
	Field   string
	Token   string
	Pos     int
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	base := fmt.Sprintf("%s: %s", e.Kind, e.Message)
	if e.Field != "" {
		base = fmt.Sprintf("%s (field=%s)", base, e.Field)
	}
	if e.Token != "" {
		base = fmt.Sprintf("%s (near %q)", base, e.Token)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", base, e.Cause)
	}
	return base
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func New(kind ErrorKind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func Wrap(kind ErrorKind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, Cause: cause}
}

// LexError reports a malformed token stream at a rune offset.
func LexError(msg string, pos int) *Error {
	return &Error{Kind: ErrLex, Message: msg, Pos: pos}
}

// ParseError reports a grammar violation near the offending token.
func ParseError(msg, token string) *Error {
	return &Error{Kind: ErrParse, Message: msg, Token: token}
}

// EmptyQueryError reports blank filter input.
func EmptyQueryError() *Error {
	return &Error{Kind: ErrEmptyQuery, Message: "empty filter expression"}
}

// SemanticError reports an operator applied to a field whose kind does
// not accept it.
func SemanticError(field, msg string) *Error {
	return &Error{Kind: ErrSemantic, Field: field, Message: msg}
}

func DatabaseError(msg string, cause error) *Error {
	return &Error{Kind: ErrDatabase, Message: msg, Cause: cause}
}

func BridgeError(msg string, cause error) *Error {
	return &Error{Kind: ErrBridge, Message: msg, Cause: cause}
}

func ConfigError(msg string, cause error) *Error {
	return &Error{Kind: ErrConfig, Message: msg, Cause: cause}
}

func NotFoundError(what string) *Error {
	return &Error{Kind: ErrNotFound, Message: fmt.Sprintf("not found: %s", what)}
}

func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
