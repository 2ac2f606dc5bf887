// pkg/codec/json.go
package codec

import (
	"bytes"
	"encoding/json"

	"github.com/joeydtaylor/minoss/pkg/envelope"
)

type jsonCodec struct{}

// JSON mirrors the envelope as a JSON document, keys in insertion order.
var JSON Codec = jsonCodec{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(tree(v)); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Unmarshal decodes into *envelope.Map or *any; anything else goes through
// encoding/json.
func (jsonCodec) Unmarshal(data []byte, v any) error {
	switch v.(type) {
	case *envelope.Map, *any:
		decoded, err := envelope.DecodeJSON(data)
		if err != nil {
			return err
		}
		return assign(v, decoded)
	}
	return json.Unmarshal(data, v)
}

func (jsonCodec) ContentType() string { return "application/json" }
