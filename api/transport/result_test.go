package transport

import (
	"encoding/json"
	"testing"
)

func decode(t *testing.T, raw string) interface{} {
	t.Helper()
	var v interface{}
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		t.Fatalf("bad fixture: %v", err)
	}
	return v
}

func TestUnwrapData_ResultDataWins(t *testing.T) {
	body := decode(t, `{"result":{"data":{"users":[]}},"data":{"ignored":true}}`)
	out, ok := unwrapData(body).(map[string]interface{})
	if !ok {
		t.Fatalf("expected object, got %T", unwrapData(body))
	}
	if _, ok := out["users"]; !ok {
		t.Error("expected result.data to take precedence over data")
	}
}

func TestUnwrapData_DataFallback(t *testing.T) {
	body := decode(t, `{"data":{"id":"1"}}`)
	out, ok := unwrapData(body).(map[string]interface{})
	if !ok {
		t.Fatalf("expected object, got %T", unwrapData(body))
	}
	if out["id"] != "1" {
		t.Errorf("expected data contents, got %v", out)
	}
}

func TestUnwrapData_BareArrayPassesThrough(t *testing.T) {
	body := decode(t, `[{"id":"1"},{"id":"2"}]`)
	out, ok := unwrapData(body).([]interface{})
	if !ok {
		t.Fatalf("expected array, got %T", unwrapData(body))
	}
	if len(out) != 2 {
		t.Errorf("expected 2 elements, got %d", len(out))
	}
}

func TestUnwrapData_NoEnvelopeVerbatim(t *testing.T) {
	body := decode(t, `{"id":"1","name":"x"}`)
	out, ok := unwrapData(body).(map[string]interface{})
	if !ok {
		t.Fatalf("expected object, got %T", unwrapData(body))
	}
	if out["name"] != "x" {
		t.Errorf("expected verbatim body, got %v", out)
	}
}

func TestUnwrapData_NullDataIgnored(t *testing.T) {
	body := decode(t, `{"data":null,"id":"1"}`)
	out, ok := unwrapData(body).(map[string]interface{})
	if !ok {
		t.Fatalf("expected object, got %T", unwrapData(body))
	}
	if out["id"] != "1" {
		t.Errorf("expected full body when data is null, got %v", out)
	}
}

func TestExtractError_Precedence(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"error string", `{"error":"boom","message":"nope"}`, "boom"},
		{"error object message", `{"error":{"message":"nested"},"message":"nope"}`, "nested"},
		{"error object without message", `{"error":{"code":42}}`, "An error occurred"},
		{"message fallback", `{"message":"plain"}`, "plain"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := extractError(true, decode(t, tc.body), 500)
			if got != tc.want {
				t.Errorf("extractError = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestExtractError_TextBody(t *testing.T) {
	got := extractError(false, "upstream exploded", 502)
	if got != "upstream exploded" {
		t.Errorf("extractError = %q, want raw text body", got)
	}
}

func TestExtractError_StatusFallback(t *testing.T) {
	got := extractError(true, map[string]interface{}{}, 404)
	if got != "HTTP error! status: 404" {
		t.Errorf("extractError = %q", got)
	}
}

func TestFailure(t *testing.T) {
	res := Failure("offline")
	if res.Success {
		t.Error("failure result must not be successful")
	}
	if res.Err != "offline" || res.Message != "offline" {
		t.Errorf("unexpected failure fields: %+v", res)
	}
}

func TestErrorOr(t *testing.T) {
	if got := (Result{Err: "real"}).ErrorOr("fallback"); got != "real" {
		t.Errorf("ErrorOr = %q", got)
	}
	if got := (Result{}).ErrorOr("fallback"); got != "fallback" {
		t.Errorf("ErrorOr = %q", got)
	}
}

func TestDecodeData(t *testing.T) {
	res := Result{Success: true, Data: map[string]interface{}{"id": "9"}}
	var dst struct {
		ID string `json:"id"`
	}
	if err := DecodeData(res, &dst); err != nil {
		t.Fatalf("DecodeData failed: %v", err)
	}
	if dst.ID != "9" {
		t.Errorf("decoded ID = %q", dst.ID)
	}
}

func TestDecodeValue(t *testing.T) {
	var dst struct {
		ID string `json:"id"`
	}
	if err := DecodeValue(map[string]interface{}{"id": "7"}, &dst); err != nil {
		t.Fatalf("DecodeValue failed: %v", err)
	}
	if dst.ID != "7" {
		t.Errorf("decoded ID = %q", dst.ID)
	}

	// nil payload leaves the destination untouched
	dst.ID = "kept"
	if err := DecodeValue(nil, &dst); err != nil {
		t.Fatalf("DecodeValue(nil) failed: %v", err)
	}
	if dst.ID != "kept" {
		t.Error("nil payload must not modify the destination")
	}
}
