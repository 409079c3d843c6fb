package common

import "encoding/json"

// Result is the outcome of one reconciliation run
type Result struct {
	Changed bool
	Msg     string
	// Skipped is set when the run was skipped on purpose (unknown
	// VM with skip enabled, for instance)
	Skipped bool
	Details map[string]interface{}
}

// NewResult creates a Result with an empty Details map
func NewResult() *Result {
	return &Result{
		Details: make(map[string]interface{}),
	}
}

// MarshalJSON flattens Details at the top level, next to changed and msg
func (r *Result) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(r.Details)+3)
	for k, v := range r.Details {
		out[k] = v
	}
	out["changed"] = r.Changed
	out["msg"] = r.Msg
	if r.Skipped {
		out["skipped"] = true
	}
	return json.Marshal(out)
}

// APIFailure is the JSON shape of a fatal error
type APIFailure struct {
	Failed  bool   `json:"failed"`
	Msg     string `json:"msg"`
	Command string `json:"cmd,omitempty"`
	RC      int    `json:"rc"`
	Stdout  string `json:"stdout,omitempty"`
	Stderr  string `json:"stderr,omitempty"`
}
