package xmlreader

import (
	"errors"
	"fmt"
	"io"
	"testing"
)

func TestTokenizerSyntaxErrors(t *testing.T) {
	tt := []struct {
		src    string
		err    error
		offset int
	}{
		{src: "<", err: errUnclosedTag, offset: 0},
		{src: "<a", err: errUnclosedTag, offset: 2},
		{src: "<a b", err: errMalformedAttr, offset: 4},
		{src: "<a b>", err: errMalformedAttr, offset: 4},
		{src: `<a b="x>`, err: errMalformedAttr, offset: 6},
		{src: "<a b=x>", err: errMalformedAttr, offset: 5},
		{src: "<>", err: errInvalidName, offset: 1},
		{src: "<a></>", err: errInvalidName, offset: 5},
		{src: "<a></a", err: errUnclosedTag, offset: 6},
		{src: "<!-- never closed", err: errUnclosedComment, offset: 0},
		{src: "<a><![CDATA[x", err: errUnclosedCDATA, offset: 12},
		{src: "<?pi never closed", err: errUnclosedProcInst, offset: 0},
		{src: "<!DOCTYPE x [", err: errUnclosedDirective, offset: 0},
	}

	for i, tc := range tt {
		t.Run(fmt.Sprintf("[%d] %s", i, tc.src), func(t *testing.T) {
			tok := NewTokenizer(tc.src)
			var err error
			for {
				if _, err = tok.Next(); err != nil {
					break
				}
			}
			if !errors.Is(err, tc.err) {
				t.Fatalf("expected error: %v, got: %v", tc.err, err)
			}

			var syntaxErr *SyntaxError
			if !errors.As(err, &syntaxErr) {
				t.Fatalf("expected *SyntaxError, got: %T", err)
			}
			if syntaxErr.Offset != tc.offset {
				t.Fatalf("expected offset: %d, got: %d", tc.offset, syntaxErr.Offset)
			}
		})
	}
}

func TestTokenizerStickyError(t *testing.T) {
	tok := NewTokenizer("<a><!-- never closed")
	var err error
	for {
		if _, err = tok.Next(); err != nil {
			break
		}
	}
	if !errors.Is(err, errUnclosedComment) {
		t.Fatalf("expected error: %v, got: %v", errUnclosedComment, err)
	}

	_, again := tok.Next()
	if again != err {
		t.Fatalf("expected same error on subsequent call, got: %v", again)
	}
}

func TestTokenizerEOFSticky(t *testing.T) {
	tok := NewTokenizer("<a/>")
	for {
		if _, err := tok.Next(); err != nil {
			break
		}
	}
	if _, err := tok.Next(); err != io.EOF {
		t.Fatalf("expected io.EOF, got: %v", err)
	}
}
