package schema

import (
	"encoding/xml"
	"fmt"

	"github.com/muktihari/xmlreader"
)

// openElement drains whatever is left of the current start tag and
// reports whether the element was left open (children/text follow)
// rather than self-closing.
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

func getCharData(dec *xml.Decoder) (xml.CharData, error) {
	token, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch v := token.(type) {
	case xml.CharData:
		return v, nil
	case xml.EndElement:
		// Empty leaf such as <name/> or <name></name>.
		return nil, nil
	}
	return nil, fmt.Errorf("expected chardata, got %T", token)
}
