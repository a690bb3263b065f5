package parser

import (
	"github.com/BonEvil/DPSessionManager/service"
)

// Func adapts a function to service.Parser.
type Func func(data []byte) (any, error)

// Parse calls f.
func (f Func) Parse(data []byte) (any, error) {
	return f(data)
}

// For returns the default parser for an accepted type. charset is the
// charset parameter the response declared, if any; it only affects text.
func For(accept service.AcceptType, charset string) service.Parser {
	switch accept {
	case service.AcceptJSON:
		return JSON{}
	case service.AcceptHTML, service.AcceptText:
		return Text{Charset: charset}
	case service.AcceptXML:
		return XML{}
	default:
		return Raw{}
	}
}

// compile-time assertions
var (
	_ service.Parser = Func(nil)
	_ service.Parser = JSON{}
	_ service.Parser = Text{}
	_ service.Parser = XML{}
	_ service.Parser = Raw{}
)
