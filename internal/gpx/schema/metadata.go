package schema

import (
	"encoding/xml"
	"fmt"
	"time"

	"github.com/muktihari/xmlreader"
)

// Metadata is GPX's Metadata schema (simplified).
type Metadata struct {
	Name   string    `xml:"name,omitempty"`
	Desc   string    `xml:"desc,omitempty"`
	Author *Author   `xml:"author,omitempty"`
	Link   *Link     `xml:"link,omitempty"`
	Time   time.Time `xml:"time,omitempty"`
}

func (m *Metadata) UnmarshalXMLReader(r *xmlreader.Reader) error {
	open, err := openElement(r)
	if err != nil {
		return fmt.Errorf("metadata: %w", err)
	}
	if !open {
		return nil
	}

	for {
		name, ok, err := r.FindElementStart("metadata")
		if err != nil {
			return fmt.Errorf("metadata: %w", err)
		}
		if !ok {
			return nil
		}
		if _, err := r.Next(); err != nil {
			return fmt.Errorf("metadata: %w", err)
		}

		switch name {
		case "name":
			if m.Name, err = r.ReadText(name); err != nil {
				return fmt.Errorf("name: %w", err)
			}
		case "desc":
			if m.Desc, err = r.ReadText(name); err != nil {
				return fmt.Errorf("desc: %w", err)
			}
		case "author":
			m.Author = new(Author)
			if err := m.Author.UnmarshalXMLReader(r); err != nil {
				return fmt.Errorf("author: %w", err)
			}
		case "link":
			m.Link = new(Link)
			if err := m.Link.UnmarshalXMLReader(r); err != nil {
				return fmt.Errorf("link: %w", err)
			}
		case "time":
			text, err := r.ReadText(name)
			if err != nil {
				return fmt.Errorf("time: %w", err)
			}
			if m.Time, err = time.Parse(time.RFC3339, text); err != nil {
				return fmt.Errorf("time: %w", err)
			}
		default:
			if err := r.ReadToEnd(name); err != nil {
				return fmt.Errorf("metadata: %w", err)
			}
		}
	}
}

func (m *Metadata) UnmarshalXML(dec *xml.Decoder, se xml.StartElement) error {
	for {
		token, err := dec.Token()
		if err != nil {
			return fmt.Errorf("metadata: %w", err)
		}

		switch elem := token.(type) {
		case xml.StartElement:
			switch elem.Name.Local {
			case "author":
				m.Author = new(Author)
				if err := m.Author.UnmarshalXML(dec, elem); err != nil {
					return fmt.Errorf("author: %w", err)
				}
				continue
			case "link":
				m.Link = new(Link)
				if err := m.Link.UnmarshalXML(dec, elem); err != nil {
					return fmt.Errorf("link: %w", err)
				}
				continue
			}
			charData, err := getCharData(dec)
			if err != nil {
				return err
			}
			switch elem.Name.Local {
			case "name":
				m.Name = string(charData)
			case "desc":
				m.Desc = string(charData)
			case "time":
				m.Time, err = time.Parse(time.RFC3339, string(charData))
				if err != nil {
					return fmt.Errorf("time: %w", err)
				}
			}
		case xml.EndElement:
			if elem == se.End() {
				return nil
			}
		}
	}
}

// Author is Author schema (simplified).
type Author struct {
	Name string `xml:"name"`
	Link *Link  `xml:"link"`
}

func (a *Author) UnmarshalXMLReader(r *xmlreader.Reader) error {
	open, err := openElement(r)
	if err != nil {
		return fmt.Errorf("author: %w", err)
	}
	if !open {
		return nil
	}

	for {
		name, ok, err := r.FindElementStart("author")
		if err != nil {
			return fmt.Errorf("author: %w", err)
		}
		if !ok {
			return nil
		}
		if _, err := r.Next(); err != nil {
			return fmt.Errorf("author: %w", err)
		}

		switch name {
		case "name":
			if a.Name, err = r.ReadText(name); err != nil {
				return fmt.Errorf("name: %w", err)
			}
		case "link":
			a.Link = new(Link)
			if err := a.Link.UnmarshalXMLReader(r); err != nil {
				return fmt.Errorf("link: %w", err)
			}
		default:
			if err := r.ReadToEnd(name); err != nil {
				return fmt.Errorf("author: %w", err)
			}
		}
	}
}

func (a *Author) UnmarshalXML(dec *xml.Decoder, se xml.StartElement) error {
	for {
		token, err := dec.Token()
		if err != nil {
			return fmt.Errorf("author: %w", err)
		}

		switch elem := token.(type) {
		case xml.StartElement:
			switch elem.Name.Local {
			case "link":
				a.Link = new(Link)
				if err := a.Link.UnmarshalXML(dec, elem); err != nil {
					return fmt.Errorf("link: %w", err)
				}
			case "name":
				charData, err := getCharData(dec)
				if err != nil {
					return fmt.Errorf("name: %w", err)
				}
				a.Name = string(charData)
			}
		case xml.EndElement:
			if elem == se.End() {
				return nil
			}
		}
	}
}

// Link is Link schema.
type Link struct {
	Href string `xml:"href,attr"`

	Text string `xml:"text,omitempty"`
	Type string `xml:"type,omitempty"`
}

func (a *Link) UnmarshalXMLReader(r *xmlreader.Reader) error {
	for {
		attr, ok, err := r.ReadAttribute()
		if err != nil {
			return fmt.Errorf("link: %w", err)
		}
		if !ok {
			break
		}
		val, err := xmlreader.Unescape(attr.Value)
		if err != nil {
			return fmt.Errorf("%s: %w", attr.Name, err)
		}
		switch attr.Name {
		case "href":
			a.Href = val
		}
	}

	open, err := openElement(r)
	if err != nil {
		return fmt.Errorf("link: %w", err)
	}
	if !open {
		return nil
	}

	for {
		name, ok, err := r.FindElementStart("link")
		if err != nil {
			return fmt.Errorf("link: %w", err)
		}
		if !ok {
			return nil
		}
		if _, err := r.Next(); err != nil {
			return fmt.Errorf("link: %w", err)
		}

		switch name {
		case "text":
			if a.Text, err = r.ReadText(name); err != nil {
				return fmt.Errorf("text: %w", err)
			}
		case "type":
			if a.Type, err = r.ReadText(name); err != nil {
				return fmt.Errorf("type: %w", err)
			}
		default:
			if err := r.ReadToEnd(name); err != nil {
				return fmt.Errorf("link: %w", err)
			}
		}
	}
}

func (a *Link) UnmarshalXML(dec *xml.Decoder, se xml.StartElement) error {
	for i := range se.Attr {
		attr := &se.Attr[i]
		switch attr.Name.Local {
		case "href":
			a.Href = attr.Value
		}
	}

	for {
		token, err := dec.Token()
		if err != nil {
			return fmt.Errorf("link: %w", err)
		}

		switch elem := token.(type) {
		case xml.StartElement:
			charData, err := getCharData(dec)
			if err != nil {
				return fmt.Errorf("%s: %w", elem.Name.Local, err)
			}
			switch elem.Name.Local {
			case "text":
				a.Text = string(charData)
			case "type":
				a.Type = string(charData)
			}
		case xml.EndElement:
			if elem == se.End() {
				return nil
			}
		}
	}
}
