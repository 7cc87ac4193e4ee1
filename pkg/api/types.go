package api

import (
	"errors"
	"fmt"
)

// ErrInvalidPayload marks input that is not a JSON object.
var ErrInvalidPayload = errors.New("invalid payload")

// ResponsePayload is one answer returned by the backend: markdown in
// Response, plus an optional execution result and notes about it. Intent,
// Breadcrumbs and UIForcePlan are passed through to consumers as received.
type ResponsePayload struct {
	Response    string `json:"response"`
	Execution   Value  `json:"execution"`
	Meta        Value  `json:"meta"`
	Notes       Value  `json:"notes"`
	Intent      Value  `json:"intent"`
	Breadcrumbs Value  `json:"breadcrumbs"`
	UIForcePlan Value  `json:"ui_force_plan"`
}

// DecodePayload parses a ResponsePayload leniently: any JSON object is
// accepted, and members of an unexpected type are kept as raw values.
func DecodePayload(data []byte) (ResponsePayload, error) {
	root, err := ParseValue(data)
	if err != nil {
		return ResponsePayload{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if !root.IsObject() {
		return ResponsePayload{}, fmt.Errorf("%w: top-level %s, want object", ErrInvalidPayload, root.Kind())
	}
	p := ResponsePayload{
		Execution:   root.Field("execution"),
		Meta:        root.Field("meta"),
		Notes:       root.Field("notes"),
		Intent:      root.Field("intent"),
		Breadcrumbs: root.Field("breadcrumbs"),
		UIForcePlan: root.Field("ui_force_plan"),
	}
	if r := root.Field("response"); r.Kind() == KindString {
		p.Response = r.AsString()
	}
	return p, nil
}

// Breadcrumbs describes how a response was produced.
type Breadcrumbs struct {
	Deterministic bool
	Rule          string
	LLMMs         *float64
}

// ParsedBreadcrumbs reads the breadcrumbs object. ok is false when the
// payload carries none.
func (p ResponsePayload) ParsedBreadcrumbs() (Breadcrumbs, bool) {
	return ParseBreadcrumbs(p.Breadcrumbs)
}

// ParseBreadcrumbs reads a breadcrumbs object, ignoring mistyped members.
func ParseBreadcrumbs(v Value) (Breadcrumbs, bool) {
	if !v.IsObject() {
		return Breadcrumbs{}, false
	}
	var b Breadcrumbs
	if d := v.Field("deterministic"); d.Kind() == KindBool {
		b.Deterministic = d.AsBool()
	}
	if r := v.Field("rule"); r.Kind() == KindString {
		b.Rule = r.AsString()
	}
	b.LLMMs = numberField(v, "llm_ms")
	return b, true
}

func numberField(obj Value, key string) *float64 {
	f := obj.Field(key)
	if f.Kind() != KindNumber {
		return nil
	}
	n := f.AsNumber()
	return &n
}
