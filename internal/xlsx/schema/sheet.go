package schema

import (
	"strconv"

	"github.com/muktihari/xmlreader"
)

type SheetData struct {
	Rows []Row `xml:"row,omitempty"`
}

func (s *SheetData) UnmarshalXMLReader(r *xmlreader.Reader) error {
	open, err := openElement(r)
	if err != nil {
		return err
	}
	if !open {
		return nil
	}

	for {
		name, ok, err := r.FindElementStart("sheetData")
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if _, err := r.Next(); err != nil {
			return err
		}

		switch name {
		case "row":
			var row Row
			if err := row.UnmarshalXMLReader(r); err != nil {
				return err
			}
			s.Rows = append(s.Rows, row)
		default:
			if err := r.ReadToEnd(name); err != nil {
				return err
			}
		}
	}
}

type Row struct {
	Index int    `xml:"r,attr,omitempty"`
	Cells []Cell `xml:"c"`
}

func (row *Row) UnmarshalXMLReader(r *xmlreader.Reader) error {
	for {
		attr, ok, err := r.ReadAttribute()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		val, err := xmlreader.Unescape(attr.Value)
		if err != nil {
			return err
		}
		switch attr.Name {
		case "r":
			if row.Index, err = strconv.Atoi(val); err != nil {
				return err
			}
		}
	}

	open, err := openElement(r)
	if err != nil {
		return err
	}
	if !open {
		return nil
	}

	for {
		name, ok, err := r.FindElementStart("row")
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if _, err := r.Next(); err != nil {
			return err
		}

		switch name {
		case "c":
			var cell Cell
			if err := cell.UnmarshalXMLReader(r); err != nil {
				return err
			}
			row.Cells = append(row.Cells, cell)
		default:
			if err := r.ReadToEnd(name); err != nil {
				return err
			}
		}
	}
}

type Cell struct {
	Reference    string `xml:"r,attr"` // E.g. A1
	Style        int    `xml:"s,attr"`
	Type         string `xml:"t,attr,omitempty"`
	Value        string `xml:"v,omitempty"`
	InlineString string `xml:"is>t"`
}

func (c *Cell) UnmarshalXMLReader(r *xmlreader.Reader) error {
	for {
		attr, ok, err := r.ReadAttribute()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		val, err := xmlreader.Unescape(attr.Value)
		if err != nil {
			return err
		}
		switch attr.Name {
		case "r":
			c.Reference = val
		case "s":
			if c.Style, err = strconv.Atoi(val); err != nil {
				return err
			}
		case "t":
			c.Type = val
		}
	}

	// Must check since `c` may be a self-closing tag: <c r="C1" />
	open, err := openElement(r)
	if err != nil {
		return err
	}
	if !open {
		return nil
	}

	for {
		name, ok, err := r.FindElementStart("c")
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if _, err := r.Next(); err != nil {
			return err
		}

		switch name {
		case "v":
			if c.Value, err = r.ReadText(name); err != nil {
				return err
			}
		case "is":
			if err := c.unmarshalInlineString(r); err != nil {
				return err
			}
		default:
			if err := r.ReadToEnd(name); err != nil {
				return err
			}
		}
	}
}

func (c *Cell) unmarshalInlineString(r *xmlreader.Reader) error {
	open, err := openElement(r)
	if err != nil {
		return err
	}
	if !open {
		return nil
	}

	for {
		name, ok, err := r.FindElementStart("is")
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if _, err := r.Next(); err != nil {
			return err
		}

		switch name {
		case "t":
			if c.InlineString, err = r.ReadText(name); err != nil {
				return err
			}
		default:
			if err := r.ReadToEnd(name); err != nil {
				return err
			}
		}
	}
}

// openElement drains whatever is left of the current start tag and
// reports whether the element was left open rather than self-closing.
func openElement(r *xmlreader.Reader) (bool, error) {
	for {
		_, ok, err := r.ReadAttribute()
		if err != nil {
			return false, err
		}
		if !ok {
			break
		}
	}
	token, err := r.Next()
	if err != nil {
		return false, err
	}
	return token.End == xmlreader.EndOpen, nil
}
