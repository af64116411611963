package apiframework

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// Encode writes v as the JSON response body with the given status code.
func Encode(w http.ResponseWriter, _ *http.Request, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

// Decode parses the request body into T. An empty body maps to
// ErrEmptyRequestBody, malformed JSON to ErrBadRequest.
func Decode[T any](r *http.Request) (T, error) {
	var v T
	if r.Body == nil {
		return v, ErrEmptyRequestBody
	}
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return v, ErrEmptyRequestBody
		}
		return v, NewAPIError(ErrBadRequest, "invalid JSON body: "+err.Error(), "")
	}
	return v, nil
}

// Error maps err to an HTTP status via the operation type and writes the
// structured error body.
func Error(w http.ResponseWriter, r *http.Request, err error, op Operation) error {
	status := mapErrorToStatus(op, err)

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		apiErr = NewAPIError(err, err.Error(), "")
	}

	errorType := apiErr.Type()
	errorCode := apiErr.Code()
	if errorType == "" {
		errorType, errorCode = getErrorTypeAndCode(status)
	}

	body := map[string]any{
		"error": map[string]any{
			"message": apiErr.Error(),
			"type":    errorType,
			"code":    errorCode,
		},
	}
	if apiErr.Param() != "" {
		body["error"].(map[string]any)["param"] = apiErr.Param()
	}
	return Encode(w, r, status, body)
}

// getErrorTypeAndCode maps HTTP status codes to error types and codes
func getErrorTypeAndCode(status int) (string, string) {
	switch status {
	case 400:
		return "invalid_request_error", "bad_request"
	case 401:
		return "authentication_error", "unauthorized"
	case 403:
		return "authorization_error", "forbidden"
	case 404:
		return "invalid_request_error", "not_found"
	case 409:
		return "invalid_request_error", "conflict"
	case 413:
		return "invalid_request_error", "request_too_large"
	case 415:
		return "invalid_request_error", "unsupported_media"
	case 422:
		return "invalid_request_error", "unprocessable_entity"
	case 429:
		return "rate_limit_error", "rate_limit_exceeded"
	case 500:
		return "api_error", "internal_error"
	default:
		return "api_error", "unknown_error"
	}
}

// GetQueryParam returns the named query parameter or defaultValue when absent.
// The description is consumed by the OpenAPI generator, not at runtime.
func GetQueryParam(r *http.Request, name, defaultValue, _ string) string {
	if v := r.URL.Query().Get(name); v != "" {
		return v
	}
	return defaultValue
}

// GetPathParam returns the named path value. The description is consumed by
// the OpenAPI generator, not at runtime.
func GetPathParam(r *http.Request, name, _ string) string {
	return r.PathValue(name)
}
