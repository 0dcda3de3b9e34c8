package xmlreader_test

import (
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/muktihari/xmlreader/internal/gpx"
	"github.com/muktihari/xmlreader/internal/xlsx"
)

// The record readers in internal/ drive every traversal operation the
// Reader exposes; decoding the same document with encoding/xml must
// produce identical values.

func TestReaderOnGPXFiles(t *testing.T) {
	filepath.Walk("testdata", func(path string, info fs.FileInfo, _ error) error {
		if info.IsDir() {
			return nil
		}
		if strings.ToLower(filepath.Ext(path)) != ".gpx" {
			return nil
		}

		t.Run(path, func(t *testing.T) {
			data, err := os.ReadFile(path)
			if err != nil {
				panic(err)
			}

			gpx1, err := gpx.Unmarshal(data)
			if err != nil {
				t.Fatalf("xmlreader: %v", err)
			}

			gpx2, err := gpx.UnmarshalWithStdlibXML(data)
			if err != nil {
				t.Fatalf("xml: %v", err)
			}

			if diff := cmp.Diff(gpx1, gpx2,
				cmp.Transformer("float64", func(x float64) uint64 {
					return math.Float64bits(x)
				}),
			); diff != "" {
				t.Fatal(diff)
			}
		})

		return nil
	})
}

func TestUnmarshalEscapedAttributes(t *testing.T) {
	const doc = `<gpx creator="tool &amp; co" version="1.1">` +
		`<metadata>` +
		`<link href="https://example.com/?a=1&amp;b=2"><text>x</text></link>` +
		`</metadata>` +
		`</gpx>`

	g, err := gpx.Unmarshal([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}
	if g.Creator != "tool & co" {
		t.Fatalf("expected creator: %q, got: %q", "tool & co", g.Creator)
	}
	if expected := "https://example.com/?a=1&b=2"; g.Metadata.Link.Href != expected {
		t.Fatalf("expected href: %q, got: %q", expected, g.Metadata.Link.Href)
	}

	g2, err := gpx.UnmarshalWithStdlibXML([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(g, g2); diff != "" {
		t.Fatal(diff)
	}
}

func TestReaderOnXLSXFile(t *testing.T) {
	path := filepath.Join("testdata", "xlsx_sheet1.xml")
	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	sheet1, err := xlsx.Unmarshal(data)
	if err != nil {
		t.Fatalf("xmlreader: %v", err)
	}
	sheet2, err := xlsx.UnmarshalWithStdlibXML(data)
	if err != nil {
		t.Fatalf("xml: %v", err)
	}

	if diff := cmp.Diff(sheet1, sheet2); diff != "" {
		t.Fatal(diff)
	}
}
