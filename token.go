package xmlreader

import "strconv"

// Kind identifies the syntactic kind of a token.
type Kind uint8

const (
	KindNone Kind = iota
	KindElementStart
	KindAttr
	KindText
	KindCdata
	KindElementEnd
)

// String returns a stable name for the kind, suitable for debugging.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "None"
	case KindElementStart:
		return "ElementStart"
	case KindAttr:
		return "Attr"
	case KindText:
		return "Text"
	case KindCdata:
		return "Cdata"
	case KindElementEnd:
		return "ElementEnd"
	default:
		return "Unknown"
	}
}

// EndKind identifies which form of element end a KindElementEnd token is.
type EndKind uint8

const (
	EndOpen  EndKind = iota // ">" terminating a start tag
	EndEmpty                // "/>" terminating a self-closing tag
	EndClose                // "</name>"
)

// String returns a stable name for the end kind, suitable for debugging.
func (e EndKind) String() string {
	switch e {
	case EndOpen:
		return "Open"
	case EndEmpty:
		return "Empty"
	case EndClose:
		return "Close"
	default:
		return "Unknown"
	}
}

// Token represent a single token, one of these following:
//   - <name
//   - attr="value"
//   - > or /> terminating the preceding start tag
//   - CharData
//   - <![CDATA[ CharData ]]>
//   - </name>
//
// Token is a tagged union over Kind: Name is the element or attribute
// name (for EndClose, the name of the closing tag), Value is the
// attribute value, text run or CDATA run. All string fields are
// substrings of the source document and remain valid as long as the
// source does.
type Token struct {
	Kind  Kind
	Name  string
	Value string
	End   EndKind // valid only when Kind == KindElementEnd
}

// String renders the token roughly as it appears in the source,
// for diagnostics.
func (t Token) String() string {
	switch t.Kind {
	case KindElementStart:
		return "<" + t.Name
	case KindAttr:
		return t.Name + "=" + strconv.Quote(t.Value)
	case KindText:
		return strconv.Quote(t.Value)
	case KindCdata:
		return "<![CDATA[" + t.Value + "]]>"
	case KindElementEnd:
		switch t.End {
		case EndOpen:
			return ">"
		case EndEmpty:
			return "/>"
		case EndClose:
			return "</" + t.Name + ">"
		}
	}
	return t.Kind.String()
}

// Attr is an attribute name/value pair as returned by
// Reader.ReadAttribute. The value is raw, exactly as written in the
// source document.
type Attr struct {
	Name  string
	Value string
}
