package schema

import (
	"encoding/xml"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/muktihari/xmlreader"
)

type Track struct {
	Name          string         `xml:"name,omitempty"`
	Type          string         `xml:"type,omitempty"`
	TrackSegments []TrackSegment `xml:"trkseg,omitempty"`
}

func (t *Track) UnmarshalXMLReader(r *xmlreader.Reader) error {
	open, err := openElement(r)
	if err != nil {
		return fmt.Errorf("track: %w", err)
	}
	if !open {
		return nil
	}

	for {
		name, ok, err := r.FindElementStart("trk")
		if err != nil {
			return fmt.Errorf("track: %w", err)
		}
		if !ok {
			return nil
		}
		if _, err := r.Next(); err != nil {
			return fmt.Errorf("track: %w", err)
		}

		switch name {
		case "name":
			if t.Name, err = r.ReadText(name); err != nil {
				return fmt.Errorf("name: %w", err)
			}
		case "type":
			if t.Type, err = r.ReadText(name); err != nil {
				return fmt.Errorf("type: %w", err)
			}
		case "trkseg":
			var trkseg TrackSegment
			if err := trkseg.UnmarshalXMLReader(r); err != nil {
				return fmt.Errorf("trkseg: %w", err)
			}
			t.TrackSegments = append(t.TrackSegments, trkseg)
		default:
			if err := r.ReadToEnd(name); err != nil {
				return fmt.Errorf("track: %w", err)
			}
		}
	}
}

func (t *Track) UnmarshalXML(dec *xml.Decoder, se xml.StartElement) error {
	var targetCharData string
	for {
		token, err := dec.Token()
		if err != nil {
			return fmt.Errorf("track: %w", err)
		}

		switch elem := token.(type) {
		case xml.StartElement:
			switch elem.Name.Local {
			case "trkseg":
				var trkseg TrackSegment
				if err := trkseg.UnmarshalXML(dec, elem); err != nil {
					return fmt.Errorf("trkseg: %w", err)
				}
				t.TrackSegments = append(t.TrackSegments, trkseg)
			default:
				targetCharData = elem.Name.Local
			}
		case xml.CharData:
			switch targetCharData {
			case "name":
				t.Name = string(elem)
			case "type":
				t.Type = string(elem)
			}
			targetCharData = ""
		case xml.EndElement:
			if elem == se.End() {
				return nil
			}
		}
	}
}

type TrackSegment struct {
	Trackpoints []Waypoint `xml:"trkpt,omitempty"`
}

func (t *TrackSegment) UnmarshalXMLReader(r *xmlreader.Reader) error {
	open, err := openElement(r)
	if err != nil {
		return fmt.Errorf("trkseg: %w", err)
	}
	if !open {
		return nil
	}

	for {
		name, ok, err := r.FindElementStart("trkseg")
		if err != nil {
			return fmt.Errorf("trkseg: %w", err)
		}
		if !ok {
			return nil
		}
		if _, err := r.Next(); err != nil {
			return fmt.Errorf("trkseg: %w", err)
		}

		switch name {
		case "trkpt":
			var trkpt Waypoint
			if err := trkpt.UnmarshalXMLReader(r); err != nil {
				return fmt.Errorf("trkpt: %w", err)
			}
			t.Trackpoints = append(t.Trackpoints, trkpt)
		default:
			if err := r.ReadToEnd(name); err != nil {
				return fmt.Errorf("trkseg: %w", err)
			}
		}
	}
}

func (t *TrackSegment) UnmarshalXML(dec *xml.Decoder, se xml.StartElement) error {
	for {
		token, err := dec.Token()
		if err != nil {
			return fmt.Errorf("trkseg: %w", err)
		}

		switch elem := token.(type) {
		case xml.StartElement:
			switch elem.Name.Local {
			case "trkpt":
				var trkpt Waypoint
				if err := trkpt.UnmarshalXML(dec, elem); err != nil {
					return fmt.Errorf("trkpt: %w", err)
				}
				t.Trackpoints = append(t.Trackpoints, trkpt)
			}
		case xml.EndElement:
			if elem == se.End() {
				return nil
			}
		}
	}
}

type Waypoint struct {
	Lat                 float64             `xml:"lat,attr,omitempty"`
	Lon                 float64             `xml:"lon,attr,omitempty"`
	Ele                 float64             `xml:"ele,omitempty"`
	Time                time.Time           `xml:"time,omitempty"`
	TrackpointExtension TrackpointExtension `xml:"extensions>TrackpointExtension,omitempty"`
}

func (w *Waypoint) reset() {
	w.Lat = math.NaN()
	w.Lon = math.NaN()
	w.Ele = math.NaN()
	w.Time = time.Time{}
	w.TrackpointExtension.reset()
}

func (w *Waypoint) UnmarshalXMLReader(r *xmlreader.Reader) error {
	w.reset()

	for {
		attr, ok, err := r.ReadAttribute()
		if err != nil {
			return fmt.Errorf("trkpt: %w", err)
		}
		if !ok {
			break
		}
		val, err := xmlreader.Unescape(attr.Value)
		if err != nil {
			return fmt.Errorf("%s: %w", attr.Name, err)
		}
		switch attr.Name {
		case "lat":
			if w.Lat, err = strconv.ParseFloat(val, 64); err != nil {
				return fmt.Errorf("lat: %w", err)
			}
		case "lon":
			if w.Lon, err = strconv.ParseFloat(val, 64); err != nil {
				return fmt.Errorf("lon: %w", err)
			}
		}
	}

	open, err := openElement(r)
	if err != nil {
		return fmt.Errorf("trkpt: %w", err)
	}
	if !open {
		return nil
	}

	for {
		name, ok, err := r.FindElementStart("trkpt")
		if err != nil {
			return fmt.Errorf("trkpt: %w", err)
		}
		if !ok {
			return nil
		}
		if _, err := r.Next(); err != nil {
			return fmt.Errorf("trkpt: %w", err)
		}

		switch name {
		case "ele":
			text, err := r.ReadText(name)
			if err != nil {
				return fmt.Errorf("ele: %w", err)
			}
			if w.Ele, err = strconv.ParseFloat(text, 64); err != nil {
				return fmt.Errorf("ele: %w", err)
			}
		case "time":
			text, err := r.ReadText(name)
			if err != nil {
				return fmt.Errorf("time: %w", err)
			}
			if w.Time, err = time.Parse(time.RFC3339, text); err != nil {
				return fmt.Errorf("time: %w", err)
			}
		case "extensions":
			if err := w.unmarshalExtensions(r); err != nil {
				return fmt.Errorf("extensions: %w", err)
			}
		default:
			if err := r.ReadToEnd(name); err != nil {
				return fmt.Errorf("trkpt: %w", err)
			}
		}
	}
}

func (w *Waypoint) unmarshalExtensions(r *xmlreader.Reader) error {
	open, err := openElement(r)
	if err != nil {
		return err
	}
	if !open {
		return nil
	}

	for {
		name, ok, err := r.FindElementStart("extensions")
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
		case "TrackpointExtension":
			if err := w.TrackpointExtension.UnmarshalXMLReader(r); err != nil {
				return err
			}
		default:
			if err := r.ReadToEnd(name); err != nil {
				return err
			}
		}
	}
}

func (w *Waypoint) UnmarshalXML(dec *xml.Decoder, se xml.StartElement) error {
	w.reset()

	var err error
	for i := range se.Attr {
		attr := &se.Attr[i]
		switch attr.Name.Local {
		case "lat":
			w.Lat, err = strconv.ParseFloat(attr.Value, 64)
			if err != nil {
				return fmt.Errorf("lat: %w", err)
			}
		case "lon":
			w.Lon, err = strconv.ParseFloat(attr.Value, 64)
			if err != nil {
				return fmt.Errorf("lon: %w", err)
			}
		}
	}

	var targetCharData string
	for {
		token, err := dec.Token()
		if err != nil {
			return fmt.Errorf("trkpt: %w", err)
		}

		switch elem := token.(type) {
		case xml.StartElement:
			switch elem.Name.Local {
			case "extensions", "TrackpointExtension":
				if elem.Name.Local == "TrackpointExtension" {
					if err := w.TrackpointExtension.UnmarshalXML(dec, elem); err != nil {
						return fmt.Errorf("extensions: %w", err)
					}
				}
			default:
				targetCharData = elem.Name.Local
			}
		case xml.CharData:
			switch targetCharData {
			case "ele":
				w.Ele, err = strconv.ParseFloat(string(elem), 64)
				if err != nil {
					return fmt.Errorf("ele: %w", err)
				}
			case "time":
				w.Time, err = time.Parse(time.RFC3339, string(elem))
				if err != nil {
					return fmt.Errorf("time: %w", err)
				}
			}
			targetCharData = ""
		case xml.EndElement:
			if elem == se.End() {
				return nil
			}
		}
	}
}
