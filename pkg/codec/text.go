// pkg/codec/text.go
package codec

import (
	"bufio"
	"bytes"
	"strconv"
	"strings"

	"github.com/joeydtaylor/minoss/pkg/envelope"
)

type textCodec struct{}

// Text writes one key=value line per leaf. Nested keys are joined with "."
// and sequence positions appear as indexes ("items.0=a"). A bare scalar is
// written as its value alone.
var Text Codec = textCodec{}

var textEscaper = strings.NewReplacer(`\`, `\\`, "\n", `\n`, "\r", `\r`)
var textUnescaper = strings.NewReplacer(`\\`, `\`, `\n`, "\n", `\r`, "\r")

// Keys additionally escape "=" so the first unescaped "=" ends the key.
var keyEscaper = strings.NewReplacer(`\`, `\\`, "\n", `\n`, "\r", `\r`, "=", `\=`)
var keyUnescaper = strings.NewReplacer(`\\`, `\`, `\n`, "\n", `\r`, "\r", `\=`, "=")

func (textCodec) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	t := tree(v)
	switch t.(type) {
	case *envelope.Map, []any:
		flattenText(&buf, "", t)
	default:
		buf.WriteString(textEscaper.Replace(scalar(t)))
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

func flattenText(buf *bytes.Buffer, prefix string, v any) {
	join := func(k string) string {
		if prefix == "" {
			return k
		}
		return prefix + "." + k
	}
	switch x := v.(type) {
	case *envelope.Map:
		x.Range(func(k string, child any) bool {
			flattenText(buf, join(keyEscaper.Replace(k)), child)
			return true
		})
	case []any:
		for i, child := range x {
			flattenText(buf, join(strconv.Itoa(i)), child)
		}
	default:
		buf.WriteString(prefix)
		buf.WriteByte('=')
		buf.WriteString(textEscaper.Replace(scalar(x)))
		buf.WriteByte('\n')
	}
}

// Unmarshal reads key=value lines into a flat map (dotted keys are kept as
// they are). A body without "=" decodes as a single string.
func (textCodec) Unmarshal(data []byte, v any) error {
	m := envelope.NewMap()
	var lone []string
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := sc.Text()
		if line == "" {
			continue
		}
		k, val, ok := cutKey(line)
		if !ok {
			lone = append(lone, textUnescaper.Replace(line))
			continue
		}
		m.Set(keyUnescaper.Replace(k), textUnescaper.Replace(val))
	}
	if err := sc.Err(); err != nil {
		return err
	}
	if m.Len() == 0 && len(lone) > 0 {
		if p, ok := v.(*any); ok {
			*p = strings.Join(lone, "\n")
			return nil
		}
	}
	return assign(v, m)
}

// cutKey splits line at the first "=" not preceded by an escape.
func cutKey(line string) (key, val string, ok bool) {
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '\\':
			i++
		case '=':
			return line[:i], line[i+1:], true
		}
	}
	return "", "", false
}

func (textCodec) ContentType() string { return "text/plain; charset=utf-8" }
