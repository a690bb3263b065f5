package serializer

import (
	"github.com/BonEvil/DPSessionManager/service"
)

// Func adapts a function to service.Serializer.
type Func func(params service.Params) ([]byte, error)

// Serialize calls f.
func (f Func) Serialize(params service.Params) ([]byte, error) {
	return f(params)
}

// compile-time assertions
var (
	_ service.Serializer = Func(nil)
	_ service.Serializer = Form{}
	_ service.Serializer = JSON{}
)
