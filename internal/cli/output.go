package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/BonEvil/DPSessionManager/errors"
	"github.com/BonEvil/DPSessionManager/parser"
	"github.com/BonEvil/DPSessionManager/session"
)

const (
	outputText = "text"
	outputJSON = "json"
)

// OutcomeError reports a failed dispatch.
type OutcomeError struct {
	Outcome session.Outcome
}

func (e *OutcomeError) Error() string {
	msg := fmt.Sprintf("dispatch failed [%s]: %v", e.Outcome.Kind, e.Outcome.Err)
	if e.Outcome.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d)", e.Outcome.StatusCode)
	}
	return msg
}

func (e *OutcomeError) Unwrap() error { return e.Outcome.Err }

// jsonResult is the document printed in json output mode.
type jsonResult struct {
	Kind       errors.Kind       `json:"kind"`
	StatusCode int               `json:"status_code,omitempty"`
	Value      any               `json:"value,omitempty"`
	Error      *errors.ErrorBody `json:"error,omitempty"`
}

// printOutcome writes out to w in the given format and returns an
// *OutcomeError when the dispatch failed. In text mode a failure prints
// nothing; in json mode the error document is printed as well.
func printOutcome(w io.Writer, format string, out session.Outcome) error {
	if format == outputJSON {
		if err := writeJSONResult(w, out); err != nil {
			return err
		}
	} else if out.OK() {
		if err := writeValue(w, out.Value); err != nil {
			return err
		}
	}
	if !out.OK() {
		return &OutcomeError{Outcome: out}
	}
	return nil
}

func writeJSONResult(w io.Writer, out session.Outcome) error {
	res := jsonResult{Kind: out.Kind, StatusCode: out.StatusCode}
	if out.OK() {
		res.Value = jsonValue(out.Value)
	} else {
		body := errors.ResponseFor(out.Err).Error
		res.Error = &body
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	return nil
}

// jsonValue turns parser results without a JSON form into strings.
func jsonValue(v any) any {
	switch t := v.(type) {
	case []byte:
		return string(t)
	case *parser.XMLStream:
		return string(t.Bytes())
	default:
		if v == session.NoContent {
			return nil
		}
		return v
	}
}

func writeValue(w io.Writer, v any) error {
	var data []byte
	switch t := v.(type) {
	case string:
		data = []byte(t)
	case []byte:
		data = t
	case *parser.XMLStream:
		data = t.Bytes()
	default:
		if v == session.NoContent {
			data = []byte("(no content)")
			break
		}
		encoded, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("encode value: %w", err)
		}
		data = encoded
	}
	if !bytes.HasSuffix(data, []byte("\n")) {
		data = append(data, '\n')
	}
	_, err := w.Write(data)
	return err
}
