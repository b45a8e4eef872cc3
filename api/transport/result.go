package transport

import (
	"encoding/json"
	"fmt"
)

// Result is the normalized outcome of any remote call. Success implies Err
// is empty; failure implies Err holds a human-readable string, never a raw
// object. Data carries the unwrapped JSON body as decoded values.
type Result struct {
	Success    bool
	StatusCode int
	Data       interface{}
	Message    string
	Err        string
}

// Failure builds a failed result from a plain message.
func Failure(message string) Result {
	return Result{Success: false, Err: message, Message: message}
}

// ErrorOr returns the result's error string, or fallback when it is empty.
func (r Result) ErrorOr(fallback string) string {
	if r.Err != "" {
		return r.Err
	}
	return fallback
}

// String returns the JSON representation (best-effort) for logging purposes.
func (r Result) String() string {
	out, err := json.Marshal(map[string]interface{}{
		"success": r.Success,
		"status":  r.StatusCode,
		"error":   r.Err,
		"message": r.Message,
	})
	if err != nil {
		return "{}"
	}
	return string(out)
}

// DecodeData re-encodes the unwrapped payload into dst. The round trip is
// the price of tolerating the upstream's loosely shaped envelopes.
func DecodeData(r Result, dst interface{}) error {
	return DecodeValue(r.Data, dst)
}

// DecodeValue re-encodes any decoded JSON value into a typed destination.
func DecodeValue(v interface{}, dst interface{}) error {
	if v == nil {
		return nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}
	return json.Unmarshal(raw, dst)
}

// unwrapData applies the success-envelope precedence: result.data, then
// data, then a bare array, then the body verbatim. Applied once per call.
func unwrapData(body interface{}) interface{} {
	if obj, ok := body.(map[string]interface{}); ok {
		if result, ok := obj["result"].(map[string]interface{}); ok {
			if data, ok := result["data"]; ok && data != nil {
				return data
			}
		}
		if data, ok := obj["data"]; ok && data != nil {
			return data
		}
		return body
	}
	return body
}

// extractError applies the error-message precedence for non-2xx responses:
// error as string, error.message, message, the raw text body, then a
// fallback naming the HTTP status.
func extractError(isJSON bool, body interface{}, status int) string {
	if isJSON {
		if obj, ok := body.(map[string]interface{}); ok {
			switch errVal := obj["error"].(type) {
			case string:
				if errVal != "" {
					return errVal
				}
			case map[string]interface{}:
				if msg, ok := errVal["message"].(string); ok && msg != "" {
					return msg
				}
				return "An error occurred"
			}
			if msg, ok := obj["message"].(string); ok && msg != "" {
				return msg
			}
		}
	}
	if text, ok := body.(string); ok && text != "" {
		return text
	}
	return fmt.Sprintf("HTTP error! status: %d", status)
}

// extractMessage pulls an optional top-level message off a success body.
func extractMessage(body interface{}) string {
	if obj, ok := body.(map[string]interface{}); ok {
		if msg, ok := obj["message"].(string); ok {
			return msg
		}
	}
	return ""
}
