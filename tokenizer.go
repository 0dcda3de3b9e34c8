package xmlreader

import (
	"io"
	"strings"
)

// Tokenizer is an XML tokenizer over an in-memory document. It emits
// fine-grained structural tokens in source order: an element start,
// one token per attribute, the terminating ">" or "/>" marker, text and
// CDATA runs, and closing tags. Comments, processing instructions, the
// XML declaration and DOCTYPE directives are consumed silently.
//
// Every emitted string borrows from the source document; the Tokenizer
// itself never copies or allocates.
type Tokenizer struct {
	src   string // the whole document
	pos   int    // cursor byte position
	inTag bool   // between an element start and its ">" or "/>" marker
	err   error  // last encountered error, sticky
}

// NewTokenizer creates a new XML tokenizer reading from src.
func NewTokenizer(src string) *Tokenizer {
	t := new(Tokenizer)
	t.Reset(src)
	return t
}

// Reset resets the Tokenizer to read from src, allowing reuse.
func (t *Tokenizer) Reset(src string) {
	t.src, t.pos = src, 0
	t.inTag, t.err = false, nil
}

// Next returns the next token, or io.EOF at the end of the document.
// After any error Next keeps returning the same error.
func (t *Tokenizer) Next() (Token, error) {
	if t.err != nil {
		return Token{}, t.err
	}
	token, err := t.next()
	if err != nil {
		t.err = err
		return Token{}, err
	}
	return token, nil
}

func (t *Tokenizer) next() (Token, error) {
	if t.inTag {
		return t.insideTag()
	}
	for {
		if t.pos >= len(t.src) {
			return Token{}, io.EOF
		}
		if t.src[t.pos] != '<' {
			start := t.pos
			for t.pos < len(t.src) && t.src[t.pos] != '<' {
				t.pos++
			}
			run := t.src[start:t.pos]
			if isWhitespace(run) {
				continue
			}
			return Token{Kind: KindText, Value: run}, nil
		}
		if t.pos+1 >= len(t.src) {
			return Token{}, t.syntaxError(t.pos, errUnclosedTag)
		}
		switch t.src[t.pos+1] {
		case '/':
			return t.closeTag()
		case '?':
			if err := t.skipUntil("?>", errUnclosedProcInst); err != nil {
				return Token{}, err
			}
		case '!':
			rest := t.src[t.pos:]
			switch {
			case strings.HasPrefix(rest, "<!--"):
				if err := t.skipUntil("-->", errUnclosedComment); err != nil {
					return Token{}, err
				}
			case strings.HasPrefix(rest, "<![CDATA["):
				return t.cdata()
			default:
				if err := t.skipDirective(); err != nil {
					return Token{}, err
				}
			}
		default:
			return t.startTag()
		}
	}
}

// startTag consumes "<name" and leaves the cursor inside the tag so
// that subsequent calls emit the attribute list and the end marker.
func (t *Tokenizer) startTag() (Token, error) {
	t.pos++ // '<'
	name, err := t.scanName()
	if err != nil {
		return Token{}, err
	}
	t.inTag = true
	return Token{Kind: KindElementStart, Name: name}, nil
}

// insideTag emits the attribute list of the current start tag followed
// by its EndOpen or EndEmpty marker.
func (t *Tokenizer) insideTag() (Token, error) {
	t.skipSpace()
	if t.pos >= len(t.src) {
		return Token{}, t.syntaxError(t.pos, errUnclosedTag)
	}
	switch t.src[t.pos] {
	case '>':
		t.pos++
		t.inTag = false
		return Token{Kind: KindElementEnd, End: EndOpen}, nil
	case '/':
		if t.pos+1 >= len(t.src) || t.src[t.pos+1] != '>' {
			return Token{}, t.syntaxError(t.pos, errUnclosedTag)
		}
		t.pos += 2
		t.inTag = false
		return Token{Kind: KindElementEnd, End: EndEmpty}, nil
	}
	return t.attribute()
}

// attribute consumes one name="value" pair. Values may use double or
// single quotes.
func (t *Tokenizer) attribute() (Token, error) {
	name, err := t.scanName()
	if err != nil {
		return Token{}, err
	}
	t.skipSpace()
	if t.pos >= len(t.src) || t.src[t.pos] != '=' {
		return Token{}, t.syntaxError(t.pos, errMalformedAttr)
	}
	t.pos++
	t.skipSpace()
	if t.pos >= len(t.src) {
		return Token{}, t.syntaxError(t.pos, errMalformedAttr)
	}
	quote := t.src[t.pos]
	if quote != '"' && quote != '\'' {
		return Token{}, t.syntaxError(t.pos, errMalformedAttr)
	}
	t.pos++
	end := strings.IndexByte(t.src[t.pos:], quote)
	if end < 0 {
		return Token{}, t.syntaxError(t.pos, errMalformedAttr)
	}
	value := t.src[t.pos : t.pos+end]
	t.pos += end + 1
	return Token{Kind: KindAttr, Name: name, Value: value}, nil
}

// closeTag consumes "</name>".
func (t *Tokenizer) closeTag() (Token, error) {
	t.pos += 2 // "</"
	name, err := t.scanName()
	if err != nil {
		return Token{}, err
	}
	t.skipSpace()
	if t.pos >= len(t.src) || t.src[t.pos] != '>' {
		return Token{}, t.syntaxError(t.pos, errUnclosedTag)
	}
	t.pos++
	return Token{Kind: KindElementEnd, End: EndClose, Name: name}, nil
}

// cdata consumes "<![CDATA[ ... ]]>" and emits the run verbatim.
func (t *Tokenizer) cdata() (Token, error) {
	const prefix, suffix = "<![CDATA[", "]]>"
	t.pos += len(prefix)
	end := strings.Index(t.src[t.pos:], suffix)
	if end < 0 {
		return Token{}, t.syntaxError(t.pos, errUnclosedCDATA)
	}
	value := t.src[t.pos : t.pos+end]
	t.pos += end + len(suffix)
	return Token{Kind: KindCdata, Value: value}, nil
}

// scanName consumes a tag or attribute name starting at the cursor.
func (t *Tokenizer) scanName() (string, error) {
	start := t.pos
	for t.pos < len(t.src) {
		switch t.src[t.pos] {
		case ' ', '\t', '\r', '\n', '/', '>', '=', '<', '"', '\'':
			goto done
		}
		t.pos++
	}
done:
	if t.pos == start {
		return "", t.syntaxError(start, errInvalidName)
	}
	return t.src[start:t.pos], nil
}

// skipUntil consumes input through the next occurrence of seq,
// starting from the cursor (which sits on '<').
func (t *Tokenizer) skipUntil(seq string, cause errorString) error {
	idx := strings.Index(t.src[t.pos:], seq)
	if idx < 0 {
		return t.syntaxError(t.pos, cause)
	}
	t.pos += idx + len(seq)
	return nil
}

// skipDirective consumes "<!DOCTYPE ...>" including an internal subset
// with nested brackets and quoted strings.
func (t *Tokenizer) skipDirective() error {
	start := t.pos
	t.pos += 2 // "<!"
	var depth int
	var quote byte
	for t.pos < len(t.src) {
		b := t.src[t.pos]
		if quote != 0 {
			if b == quote {
				quote = 0
			}
			t.pos++
			continue
		}
		switch b {
		case '\'', '"':
			quote = b
		case '[':
			depth++
		case ']':
			if depth > 0 {
				depth--
			}
		case '>':
			if depth == 0 {
				t.pos++
				return nil
			}
		}
		t.pos++
	}
	return t.syntaxError(start, errUnclosedDirective)
}

func (t *Tokenizer) skipSpace() {
	for t.pos < len(t.src) {
		switch t.src[t.pos] {
		case ' ', '\t', '\r', '\n':
			t.pos++
		default:
			return
		}
	}
}

func (t *Tokenizer) syntaxError(offset int, cause errorString) error {
	return &SyntaxError{Offset: offset, Err: cause}
}

func isWhitespace(s string) bool {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case ' ', '\t', '\r', '\n':
		default:
			return false
		}
	}
	return true
}
