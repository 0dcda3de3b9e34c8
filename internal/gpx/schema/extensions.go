package schema

import (
	"encoding/xml"
	"fmt"
	"math"
	"strconv"

	"github.com/muktihari/xmlreader"
)

// TrackpointExtension is a GPX extension for health-related data.
type TrackpointExtension struct {
	Cadence     uint8
	Distance    float64
	HeartRate   uint8
	Temperature int8
	Power       uint16
}

func (t *TrackpointExtension) reset() {
	t.Cadence = math.MaxUint8
	t.Distance = math.NaN()
	t.HeartRate = math.MaxUint8
	t.Temperature = math.MaxInt8
	t.Power = math.MaxUint16
}

func (t *TrackpointExtension) UnmarshalXMLReader(r *xmlreader.Reader) error {
	t.reset()

	open, err := openElement(r)
	if err != nil {
		return fmt.Errorf("trackpointExtension: %w", err)
	}
	if !open {
		return nil
	}

	for {
		name, ok, err := r.FindElementStart("TrackpointExtension")
		if err != nil {
			return fmt.Errorf("trackpointExtension: %w", err)
		}
		if !ok {
			return nil
		}
		if _, err := r.Next(); err != nil {
			return fmt.Errorf("trackpointExtension: %w", err)
		}

		text, err := r.ReadText(name)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if err := t.set(name, text); err != nil {
			return err
		}
	}
}

func (t *TrackpointExtension) set(name, value string) error {
	switch name {
	case "cad", "cadence":
		val, err := strconv.ParseUint(value, 10, 8)
		if err != nil {
			return err
		}
		t.Cadence = uint8(val)
	case "distance":
		val, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return err
		}
		t.Distance = val
	case "hr", "heartrate":
		val, err := strconv.ParseUint(value, 10, 8)
		if err != nil {
			return err
		}
		t.HeartRate = uint8(val)
	case "atemp", "temp", "temperature":
		val, err := strconv.ParseInt(value, 10, 8)
		if err != nil {
			return err
		}
		t.Temperature = int8(val)
	case "power":
		val, err := strconv.ParseUint(value, 10, 16)
		if err != nil {
			return err
		}
		t.Power = uint16(val)
	}
	return nil
}

func (t *TrackpointExtension) UnmarshalXML(dec *xml.Decoder, se xml.StartElement) error {
	t.reset()

	for {
		token, err := dec.Token()
		if err != nil {
			return fmt.Errorf("trackpointExtension: %w", err)
		}

		switch elem := token.(type) {
		case xml.StartElement:
			charData, err := getCharData(dec)
			if err != nil {
				return err
			}
			if err := t.set(elem.Name.Local, string(charData)); err != nil {
				return err
			}
		case xml.EndElement:
			if elem == se.End() {
				return nil
			}
		}
	}
}
