// pkg/codec/xml.go
package codec

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/joeydtaylor/minoss/pkg/envelope"
)

// XML root and structural element names.
const (
	xmlRoot  = "response"
	xmlItem  = "item"
	xmlField = "field"
)

type xmlCodec struct{}

// XML renders the envelope as <response> with one child per key. Sequences
// become repeated <item> children; keys that are not XML names become
// <field name="...">. All leaves decode back as strings.
var XML Codec = xmlCodec{}

var xmlName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9._-]*$`)

func validXMLName(s string) bool {
	return xmlName.MatchString(s) && !strings.HasPrefix(strings.ToLower(s), "xml") &&
		s != xmlItem && s != xmlField
}

func (xmlCodec) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	if err := encodeXML(enc, xml.StartElement{Name: xml.Name{Local: xmlRoot}}, tree(v)); err != nil {
		return nil, err
	}
	if err := enc.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeXML(enc *xml.Encoder, start xml.StartElement, v any) error {
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	switch x := v.(type) {
	case *envelope.Map:
		var err error
		x.Range(func(k string, child any) bool {
			err = encodeXML(enc, keyElement(k), child)
			return err == nil
		})
		if err != nil {
			return err
		}
	case []any:
		for _, child := range x {
			if err := encodeXML(enc, xml.StartElement{Name: xml.Name{Local: xmlItem}}, child); err != nil {
				return err
			}
		}
	default:
		if s := scalar(x); s != "" {
			if err := enc.EncodeToken(xml.CharData(s)); err != nil {
				return err
			}
		}
	}
	return enc.EncodeToken(start.End())
}

func keyElement(k string) xml.StartElement {
	if validXMLName(k) {
		return xml.StartElement{Name: xml.Name{Local: k}}
	}
	return xml.StartElement{
		Name: xml.Name{Local: xmlField},
		Attr: []xml.Attr{{Name: xml.Name{Local: "name"}, Value: k}},
	}
}

// Unmarshal decodes into *envelope.Map or *any.
func (xmlCodec) Unmarshal(data []byte, v any) error {
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return errors.New("xml: no root element")
		}
		if err != nil {
			return fmt.Errorf("xml decode: %w", err)
		}
		if se, ok := tok.(xml.StartElement); ok {
			decoded, err := decodeXML(dec, se)
			if err != nil {
				return fmt.Errorf("xml decode: %w", err)
			}
			return assign(v, decoded)
		}
	}
}

type xmlChild struct {
	key   string
	item  bool
	value any
}

func decodeXML(dec *xml.Decoder, start xml.StartElement) (any, error) {
	var (
		text     strings.Builder
		children []xmlChild
	)
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			val, err := decodeXML(dec, t)
			if err != nil {
				return nil, err
			}
			key := t.Name.Local
			if key == xmlField {
				for _, a := range t.Attr {
					if a.Name.Local == "name" {
						key = a.Value
					}
				}
			}
			children = append(children, xmlChild{key: key, item: t.Name.Local == xmlItem, value: val})
		case xml.CharData:
			text.Write(t)
		case xml.EndElement:
			if len(children) == 0 {
				return text.String(), nil
			}
			allItems := true
			for _, c := range children {
				allItems = allItems && c.item
			}
			if allItems {
				out := make([]any, len(children))
				for i, c := range children {
					out[i] = c.value
				}
				return out, nil
			}
			m := envelope.NewMap()
			for _, c := range children {
				m.Set(c.key, c.value)
			}
			return m, nil
		}
	}
}

func (xmlCodec) ContentType() string { return "application/xml" }
