package xlsx

import (
	"bytes"
	"encoding/xml"
	"io"

	"github.com/muktihari/xmlreader"
	"github.com/muktihari/xmlreader/internal/xlsx/schema"
)

// Unmarshal decodes a worksheet's sheetData by driving the Reader's
// traversal operations.
func Unmarshal(data []byte) (schema.SheetData, error) {
	r := xmlreader.NewReader(string(data))
	var sheetData schema.SheetData
	for {
		token, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return sheetData, err
		}
		if token.Kind == xmlreader.KindElementStart && token.Name == "sheetData" {
			if err := sheetData.UnmarshalXMLReader(r); err != nil {
				return sheetData, err
			}
			break
		}
	}
	return sheetData, nil
}

// UnmarshalWithStdlibXML decodes the same document with encoding/xml,
// as the reference result for parity tests and benchmarks.
func UnmarshalWithStdlibXML(data []byte) (schema.SheetData, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	var sheetData schema.SheetData
	for {
		token, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return sheetData, err
		}

		switch elem := token.(type) {
		case xml.StartElement:
			if elem.Name.Local == "sheetData" {
				if err = dec.DecodeElement(&sheetData, &elem); err != nil {
					return sheetData, err
				}
			}
		}
	}
	return sheetData, nil
}
