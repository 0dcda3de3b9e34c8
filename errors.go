package xmlreader

import "fmt"

type errorString string

func (e errorString) Error() string { return string(e) }

// ErrUnexpectedEOF is returned when the token stream ends while a
// traversal operation still expects more tokens.
const ErrUnexpectedEOF = errorString("unexpected end of token stream")

// Lexical failure causes carried by SyntaxError.
const (
	errUnclosedTag       = errorString("unclosed tag")
	errUnclosedComment   = errorString("unclosed comment")
	errUnclosedCDATA     = errorString("unclosed CDATA section")
	errUnclosedProcInst  = errorString("unclosed processing instruction")
	errUnclosedDirective = errorString("unclosed directive")
	errInvalidName       = errorString("invalid name")
	errMalformedAttr     = errorString("malformed attribute")
)

// SyntaxError reports a lexical error with its byte offset in the
// source document.
type SyntaxError struct {
	Offset int
	Err    error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("xml syntax error at byte %d: %v", e.Offset, e.Err)
}

// Unwrap exposes the underlying cause.
func (e *SyntaxError) Unwrap() error { return e.Err }

// UnexpectedTokenError reports a token of a kind that is not valid in
// the reader's current state, e.g. text where only attributes may occur.
type UnexpectedTokenError struct {
	Token Token
}

func (e *UnexpectedTokenError) Error() string {
	return fmt.Sprintf("unexpected token %s", e.Token)
}

// TagMismatchError reports a closing tag whose name does not equal the
// name the caller expected to close.
type TagMismatchError struct {
	Expected string
	Found    string
}

func (e *TagMismatchError) Error() string {
	return fmt.Sprintf("expected </%s>, found </%s>", e.Expected, e.Found)
}

// EscapeError reports a malformed or unknown character reference found
// while unescaping a text run.
type EscapeError struct {
	Reference string
}

func (e *EscapeError) Error() string {
	return fmt.Sprintf("invalid character reference %q", e.Reference)
}
