// pkg/codec/codec.go
package codec

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/joeydtaylor/minoss/pkg/envelope"
)

type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	ContentType() string
}

var byName = map[string]Codec{
	"json": JSON,
	"xml":  XML,
	"text": Text,
}

// For returns the codec for an output format name and whether it was known.
// Unknown names get JSON.
func For(name string) (Codec, bool) {
	c, ok := byName[name]
	if !ok {
		return JSON, false
	}
	return c, true
}

// tree converts an encodable value to the envelope value tree.
func tree(v any) any {
	switch x := v.(type) {
	case *envelope.Envelope:
		return x.Fields()
	default:
		return envelope.Value(v)
	}
}

// scalar renders a leaf value for the text-based formats.
func scalar(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case json.Number:
		return x.String()
	case float64:
		return formatFloat(x, 64)
	case float32:
		return formatFloat(float64(x), 32)
	default:
		return fmt.Sprint(x)
	}
}

func formatFloat(f float64, bits int) string {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return fmt.Sprint(f)
	}
	return strconv.FormatFloat(f, 'f', -1, bits)
}

// assign stores a decoded tree into dst (*envelope.Map or *any).
func assign(dst any, decoded any) error {
	switch d := dst.(type) {
	case *envelope.Map:
		m, ok := decoded.(*envelope.Map)
		if !ok {
			return fmt.Errorf("decoded %T, want object", decoded)
		}
		*d = *m
		return nil
	case *any:
		*d = decoded
		return nil
	default:
		return fmt.Errorf("unsupported destination %T", dst)
	}
}
