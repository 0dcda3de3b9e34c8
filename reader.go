package xmlreader

import "io"

// Reader is a pull-based cursor over a token stream with one token of
// lookahead. It exposes the traversal operations a record reader
// composes to reconstruct typed values: attribute iteration, text
// extraction, children discovery and subtree skipping.
//
// All returned strings borrow from the source document. After any
// operation returns an error the reader's position is unspecified and
// the instance must not be used further.
type Reader struct {
	tok      *Tokenizer
	ahead    Token
	aheadErr error
	hasAhead bool
}

// NewReader creates a Reader over its own tokenizer reading from src.
func NewReader(src string) *Reader {
	return NewTokenReader(NewTokenizer(src))
}

// NewTokenReader creates a Reader pulling from an existing tokenizer.
func NewTokenReader(tok *Tokenizer) *Reader {
	return &Reader{tok: tok}
}

// Reset resets the Reader to read from src, allowing reuse.
func (r *Reader) Reset(src string) {
	r.tok.Reset(src)
	r.ahead, r.aheadErr, r.hasAhead = Token{}, nil, false
}

// Next returns the next token, consuming it. At the end of the
// document it returns io.EOF.
func (r *Reader) Next() (Token, error) {
	if r.hasAhead {
		token, err := r.ahead, r.aheadErr
		r.ahead, r.aheadErr, r.hasAhead = Token{}, nil, false
		return token, err
	}
	return r.tok.Next()
}

// Peek returns the next token without consuming it. Calling Peek
// repeatedly without an intervening Next returns the same token.
func (r *Reader) Peek() (Token, error) {
	if !r.hasAhead {
		r.ahead, r.aheadErr = r.tok.Next()
		r.hasAhead = true
	}
	return r.ahead, r.aheadErr
}

// ReadAttribute returns the next attribute of the current start tag,
// consuming it. It returns ok == false, without consuming anything,
// when the attribute list is exhausted, i.e. the lookahead is the ">"
// or "/>" marker; the marker is left for the caller to consume. Any
// other token kind is an error. Callers loop until ok == false to
// drain all attributes.
func (r *Reader) ReadAttribute() (Attr, bool, error) {
	token, err := r.Peek()
	if err != nil {
		if err == io.EOF {
			err = ErrUnexpectedEOF
		}
		return Attr{}, false, err
	}
	switch token.Kind {
	case KindAttr:
		r.Next()
		return Attr{Name: token.Name, Value: token.Value}, true, nil
	case KindElementEnd:
		if token.End == EndOpen || token.End == EndEmpty {
			return Attr{}, false, nil
		}
	}
	return Attr{}, false, &UnexpectedTokenError{Token: token}
}

// FindAttribute is ReadAttribute under the name used by call sites
// that branch on attribute presence before consuming.
func (r *Reader) FindAttribute() (Attr, bool, error) {
	return r.ReadAttribute()
}

// ReadText consumes tokens up to and including the end of the current
// element, which is either the closing tag named endTag or the "/>"
// marker, and returns the element's text content. Text runs are
// unescaped; CDATA runs are returned verbatim. When several text
// bearing tokens occur the last one wins. An element with no text
// yields "". A closing tag with a different name is a TagMismatchError.
func (r *Reader) ReadText(endTag string) (string, error) {
	var res string
	for {
		token, err := r.Next()
		if err != nil {
			if err == io.EOF {
				err = ErrUnexpectedEOF
			}
			return "", err
		}
		switch token.Kind {
		case KindAttr:
			// Leftover attribute of the current start tag.
		case KindText:
			res, err = Unescape(token.Value)
			if err != nil {
				return "", err
			}
		case KindCdata:
			res = token.Value
		case KindElementEnd:
			switch token.End {
			case EndOpen:
			case EndEmpty:
				return res, nil
			case EndClose:
				if token.Name == endTag {
					return res, nil
				}
				return "", &TagMismatchError{Expected: endTag, Found: token.Name}
			}
		default:
			return "", &UnexpectedTokenError{Token: token}
		}
	}
}

// ReadTillElementStart consumes tokens until the start of an element
// named name, consuming the start token itself. Differently named
// elements encountered on the way are skipped wholesale, including
// their subtrees.
func (r *Reader) ReadTillElementStart(name string) error {
	for {
		token, err := r.Next()
		if err != nil {
			if err == io.EOF {
				err = ErrUnexpectedEOF
			}
			return err
		}
		if token.Kind != KindElementStart {
			return &UnexpectedTokenError{Token: token}
		}
		if token.Name == name {
			return nil
		}
		if err := r.ReadToEnd(token.Name); err != nil {
			return err
		}
	}
}

// FindElementStart peeks for the start of the next child element and
// returns its name without consuming the start token, so the caller
// can dispatch on it. When endTag is not empty and the closing tag
// named endTag is found instead, it is consumed and ok == false is
// returned: the current element has no more children. Text and CDATA
// between children are skipped.
func (r *Reader) FindElementStart(endTag string) (string, bool, error) {
	for {
		token, err := r.Peek()
		if err != nil {
			if err == io.EOF {
				err = ErrUnexpectedEOF
			}
			return "", false, err
		}
		switch token.Kind {
		case KindElementStart:
			return token.Name, true, nil
		case KindElementEnd:
			if token.End == EndClose && endTag != "" {
				if token.Name == endTag {
					r.Next()
					return "", false, nil
				}
				return "", false, &TagMismatchError{Expected: endTag, Found: token.Name}
			}
			return "", false, &UnexpectedTokenError{Token: token}
		case KindAttr:
			return "", false, &UnexpectedTokenError{Token: token}
		default:
			r.Next()
		}
	}
}

// ReadToEnd discards the rest of the current element's subtree. It is
// called right after the element's start token has been consumed: it
// first drains the remaining attribute list, returning immediately for
// a self-closing tag, then tracks nesting depth counting only tags
// named endTag until the matching close is consumed. Other tags are
// balanced by construction and need no tracking.
func (r *Reader) ReadToEnd(endTag string) error {
	open, err := r.drainTag()
	if err != nil {
		return err
	}
	if !open {
		return nil
	}

	depth := 1
	for {
		token, err := r.Next()
		if err != nil {
			if err == io.EOF {
				err = ErrUnexpectedEOF
			}
			return err
		}
		switch token.Kind {
		case KindElementStart:
			if token.Name != endTag {
				continue
			}
			open, err := r.drainTag()
			if err != nil {
				return err
			}
			if open {
				depth++
			}
		case KindElementEnd:
			if token.End == EndClose && token.Name == endTag {
				if depth--; depth == 0 {
					return nil
				}
			}
		}
	}
}

// drainTag consumes the attribute list and end marker of a start tag
// whose start token has just been consumed. It reports whether the
// element was left open (">") rather than self-closing ("/>").
func (r *Reader) drainTag() (bool, error) {
	for {
		token, err := r.Next()
		if err != nil {
			if err == io.EOF {
				err = ErrUnexpectedEOF
			}
			return false, err
		}
		switch token.Kind {
		case KindAttr:
		case KindElementEnd:
			switch token.End {
			case EndEmpty:
				return false, nil
			case EndOpen:
				return true, nil
			default:
				return false, &UnexpectedTokenError{Token: token}
			}
		default:
			return false, &UnexpectedTokenError{Token: token}
		}
	}
}
