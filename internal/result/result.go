package result

import (
	"encoding/json"
	"fmt"
)

// Kind tags which variant a Result holds.
type Kind int

const (
	KindSuccess Kind = iota
	KindNeedsAuth
	KindError
)

// Result is the uniform reply of every auth and playback command.
// It serializes externally tagged, e.g. {"Success":{"ok":"ok"}}.
type Result struct {
	Kind    Kind
	OK      string
	URL     string
	Message string
}

// Success returns the Success{ok: "ok"} variant.
func Success() Result {
	return Result{Kind: KindSuccess, OK: "ok"}
}

// NeedsAuth returns a variant carrying the authorize URL to visit.
func NeedsAuth(url string) Result {
	return Result{Kind: KindNeedsAuth, URL: url}
}

// Errorf returns the Error variant with a formatted message.
func Errorf(format string, args ...any) Result {
	return Result{Kind: KindError, Message: fmt.Sprintf(format, args...)}
}

// IsSuccess reports whether r is the Success variant.
func (r Result) IsSuccess() bool { return r.Kind == KindSuccess }

// String renders the result for logs and the CLI.
func (r Result) String() string {
	switch r.Kind {
	case KindSuccess:
		return r.OK
	case KindNeedsAuth:
		return "authentication required: " + r.URL
	default:
		return "error: " + r.Message
	}
}

type successBody struct {
	OK string `json:"ok"`
}

type needsAuthBody struct {
	URL string `json:"url"`
}

type errorBody struct {
	Message string `json:"message"`
}

// MarshalJSON implements json.Marshaler.
func (r Result) MarshalJSON() ([]byte, error) {
	switch r.Kind {
	case KindSuccess:
		return json.Marshal(map[string]successBody{"Success": {OK: r.OK}})
	case KindNeedsAuth:
		return json.Marshal(map[string]needsAuthBody{"NeedsAuth": {URL: r.URL}})
	case KindError:
		return json.Marshal(map[string]errorBody{"Error": {Message: r.Message}})
	default:
		return nil, fmt.Errorf("unknown result kind %d", r.Kind)
	}
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *Result) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 1 {
		return fmt.Errorf("result must have exactly one variant, got %d", len(raw))
	}

	for tag, body := range raw {
		switch tag {
		case "Success":
			var b successBody
			if err := json.Unmarshal(body, &b); err != nil {
				return err
			}
			*r = Result{Kind: KindSuccess, OK: b.OK}
		case "NeedsAuth":
			var b needsAuthBody
			if err := json.Unmarshal(body, &b); err != nil {
				return err
			}
			*r = Result{Kind: KindNeedsAuth, URL: b.URL}
		case "Error":
			var b errorBody
			if err := json.Unmarshal(body, &b); err != nil {
				return err
			}
			*r = Result{Kind: KindError, Message: b.Message}
		default:
			return fmt.Errorf("unknown result variant %q", tag)
		}
	}
	return nil
}
