package serializer

import (
	"fmt"
	"strings"

	"github.com/BonEvil/DPSessionManager/errors"
	"github.com/BonEvil/DPSessionManager/service"
)

// Form encodes parameters as key=value pairs joined by '&'. Pair order
// follows map iteration and is not stable.
type Form struct{}

// Serialize encodes params. Every value must be a string.
func (Form) Serialize(params service.Params) ([]byte, error) {
	var b strings.Builder
	first := true
	for key, value := range params {
		s, ok := value.AsString()
		if !ok {
			return nil, errors.EncodingFailed(
				fmt.Sprintf("form parameter %q must be a string, got %s", key, value.Kind())).
				WithDetail("param", key)
		}
		if !first {
			b.WriteByte('&')
		}
		first = false
		b.WriteString(Escape(key))
		b.WriteByte('=')
		b.WriteString(Escape(s))
	}
	return []byte(b.String()), nil
}

const upperhex = "0123456789ABCDEF"

// Escape percent-encodes s for a form pair. The literal set is the URL
// query set without '+' and '&', so neither can be mistaken for a space or
// a pair delimiter.
func Escape(s string) string {
	n := 0
	for i := 0; i < len(s); i++ {
		if !literal(s[i]) {
			n++
		}
	}
	if n == 0 {
		return s
	}

	out := make([]byte, 0, len(s)+2*n)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if literal(c) {
			out = append(out, c)
			continue
		}
		out = append(out, '%', upperhex[c>>4], upperhex[c&15])
	}
	return string(out)
}

func literal(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '!', '$', '\'', '(', ')', '*', ',', '-', '.', '/', ':', ';', '=', '?', '@', '_', '~':
		return true
	}
	return false
}
