package serializer

import (
	"encoding/json"

	"github.com/BonEvil/DPSessionManager/errors"
	"github.com/BonEvil/DPSessionManager/service"
)

// JSON encodes parameters as a JSON object.
type JSON struct {
	// Indent pretty-prints the document with the given indent when set.
	Indent string
}

// Serialize encodes params. Values that have no JSON form, such as NaN,
// fail the whole document.
func (j JSON) Serialize(params service.Params) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if params == nil {
		params = service.Params{}
	}
	if j.Indent != "" {
		data, err = json.MarshalIndent(params, "", j.Indent)
	} else {
		data, err = json.Marshal(params)
	}
	if err != nil {
		return nil, errors.EncodingFailed("parameters are not representable as JSON").WithCause(err)
	}
	return data, nil
}
