package gpx

import (
	"bytes"
	"encoding/xml"
	"io"

	"github.com/muktihari/xmlreader"
	"github.com/muktihari/xmlreader/internal/gpx/schema"
)

// Unmarshal decodes a GPX document by driving the Reader's traversal
// operations, the way a generated record reader would.
func Unmarshal(data []byte) (schema.GPX, error) {
	r := xmlreader.NewReader(string(data))
	var gpx schema.GPX
	if err := r.ReadTillElementStart("gpx"); err != nil {
		return gpx, err
	}
	if err := gpx.UnmarshalXMLReader(r); err != nil {
		return gpx, err
	}
	return gpx, nil
}

// UnmarshalWithStdlibXML decodes the same document with encoding/xml,
// as the reference result for parity tests and benchmarks.
func UnmarshalWithStdlibXML(data []byte) (schema.GPX, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	var gpx schema.GPX
loop:
	for {
		token, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return gpx, err
		}

		se, ok := token.(xml.StartElement)
		if !ok {
			continue
		}
		switch se.Name.Local {
		case "gpx":
			if err = gpx.UnmarshalXML(dec, se); err != nil {
				return gpx, err
			}
			break loop
		}
	}

	return gpx, nil
}
