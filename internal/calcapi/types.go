package calcapi

import (
	"bytes"
	"encoding/json"
	"fmt"

	"calcpad/internal/calculator"
)

// Operand is a decimal operand given either as a JSON string or a JSON
// number.
type Operand string

func (o *Operand) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*o = Operand(s)
		return nil
	}
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("operand must be a string or a number: %w", err)
	}
	*o = Operand(n)
	return nil
}

// EvalRequest is the JSON body for the binary operations (add, subtract,
// multiply, divide).
type EvalRequest struct {
	A Operand `json:"a"`
	B Operand `json:"b"`
}

// EvalResponse carries the result twice: Result round-trips as a number,
// Display is what a calculator screen shows.
type EvalResponse struct {
	Operation string `json:"operation"`
	A         string `json:"a"`
	B         string `json:"b"`
	Result    string `json:"result"`
	Display   string `json:"display"`
}

// KeysRequest is the JSON body for POST /calculator/chain and
// POST /sessions/{id}/keys. Each entry is a key name ("7", "+", "Enter") or a
// keypad label ("×", "AC").
type KeysRequest struct {
	Keys []string `json:"keys"`
}

type StateBody struct {
	Current       string `json:"current"`
	Previous      string `json:"previous"`
	Operator      string `json:"operator"`
	JustEvaluated bool   `json:"just_evaluated"`
}

type DisplayBody struct {
	Current  string `json:"current"`
	Previous string `json:"previous"`
}

// StateResponse is returned by the chain and session endpoints.
type StateResponse struct {
	ID      string      `json:"id,omitempty"`
	State   StateBody   `json:"state"`
	Display DisplayBody `json:"display"`
	Ignored []string    `json:"ignored,omitempty"`
}

func newStateResponse(id string, s calculator.State, ignored []string) StateResponse {
	d := calculator.Render(s)
	return StateResponse{
		ID: id,
		State: StateBody{
			Current:       s.Current(),
			Previous:      s.Previous(),
			Operator:      s.Operator().Symbol(),
			JustEvaluated: s.JustEvaluated(),
		},
		Display: DisplayBody{
			Current:  d.Current,
			Previous: d.Previous,
		},
		Ignored: ignored,
	}
}
