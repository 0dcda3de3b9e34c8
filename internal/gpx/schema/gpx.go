package schema

import (
	"encoding/xml"
	"fmt"

	"github.com/muktihari/xmlreader"
)

// GPX is GPX schema (simplified).
type GPX struct {
	Creator  string   `xml:"creator,attr"`
	Version  string   `xml:"version,attr"`
	Metadata Metadata `xml:"metadata,omitempty"`
	Tracks   []Track  `xml:"trk,omitempty"`
}

func (g *GPX) UnmarshalXMLReader(r *xmlreader.Reader) error {
	for {
		attr, ok, err := r.ReadAttribute()
		if err != nil {
			return fmt.Errorf("gpx: %w", err)
		}
		if !ok {
			break
		}
		val, err := xmlreader.Unescape(attr.Value)
		if err != nil {
			return fmt.Errorf("%s: %w", attr.Name, err)
		}
		switch attr.Name {
		case "creator":
			g.Creator = val
		case "version":
			g.Version = val
		}
	}

	open, err := openElement(r)
	if err != nil {
		return fmt.Errorf("gpx: %w", err)
	}
	if !open {
		return nil
	}

	for {
		name, ok, err := r.FindElementStart("gpx")
		if err != nil {
			return fmt.Errorf("gpx: %w", err)
		}
		if !ok {
			return nil
		}
		if _, err := r.Next(); err != nil {
			return fmt.Errorf("gpx: %w", err)
		}

		switch name {
		case "metadata":
			if err := g.Metadata.UnmarshalXMLReader(r); err != nil {
				return fmt.Errorf("metadata: %w", err)
			}
		case "trk":
			var track Track
			if err := track.UnmarshalXMLReader(r); err != nil {
				return fmt.Errorf("track: %w", err)
			}
			g.Tracks = append(g.Tracks, track)
		default:
			if err := r.ReadToEnd(name); err != nil {
				return fmt.Errorf("gpx: %w", err)
			}
		}
	}
}

func (g *GPX) UnmarshalXML(dec *xml.Decoder, se xml.StartElement) error {
	for i := range se.Attr {
		attr := &se.Attr[i]
		switch attr.Name.Local {
		case "creator":
			g.Creator = attr.Value
		case "version":
			g.Version = attr.Value
		}
	}

	for {
		token, err := dec.Token()
		if err != nil {
			return fmt.Errorf("gpx: %w", err)
		}

		switch elem := token.(type) {
		case xml.StartElement:
			switch elem.Name.Local {
			case "metadata":
				if err := g.Metadata.UnmarshalXML(dec, elem); err != nil {
					return fmt.Errorf("metadata: %w", err)
				}
			case "trk":
				var track Track
				if err := track.UnmarshalXML(dec, elem); err != nil {
					return fmt.Errorf("track: %w", err)
				}
				g.Tracks = append(g.Tracks, track)
			default:
				if err := dec.Skip(); err != nil {
					return fmt.Errorf("gpx: %w", err)
				}
			}

		case xml.EndElement:
			if elem == se.End() {
				return nil
			}
		}
	}
}
