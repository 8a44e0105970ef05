package result

import (
	"encoding/json"
	"testing"
)

func TestResult_MarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		in   Result
		want string
	}{
		{"success", Success(), `{"Success":{"ok":"ok"}}`},
		{"needs auth", NeedsAuth("https://accounts.spotify.com/authorize"), `{"NeedsAuth":{"url":"https://accounts.spotify.com/authorize"}}`},
		{"error", Errorf("Next Track failed: %s", "boom"), `{"Error":{"message":"Next Track failed: boom"}}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			data, err := json.Marshal(tc.in)
			if err != nil {
				t.Fatalf("Marshal failed: %v", err)
			}
			if string(data) != tc.want {
				t.Errorf("Marshal = %s; want %s", data, tc.want)
			}
		})
	}
}

func TestResult_UnmarshalJSON(t *testing.T) {
	var r Result
	if err := json.Unmarshal([]byte(`{"NeedsAuth":{"url":"u"}}`), &r); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if r.Kind != KindNeedsAuth || r.URL != "u" {
		t.Errorf("Unexpected result: %+v", r)
	}

	if err := json.Unmarshal([]byte(`{"Maybe":{}}`), &r); err == nil {
		t.Error("Expected error for unknown variant")
	}
}

func TestResult_String(t *testing.T) {
	if got := Success().String(); got != "ok" {
		t.Errorf("Success().String() = %q", got)
	}
	if !Success().IsSuccess() || Errorf("x").IsSuccess() {
		t.Error("IsSuccess mismatch")
	}
}
