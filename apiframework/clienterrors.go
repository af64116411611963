package apiframework

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// APIError is the structured error shape exchanged with clients. It carries a
// stable errorType/errorCode pair alongside the human-readable message.
type APIError struct {
	err       error
	message   string
	param     string
	errorType string
	errorCode string
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}
	return e.message
}

func (e *APIError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.err
}

// Type returns the machine-usable error type, e.g. "invalid_request_error".
func (e *APIError) Type() string { return e.errorType }

// Code returns the machine-usable error code, e.g. "not_found".
func (e *APIError) Code() string { return e.errorCode }

// Param names the offending parameter, when one is known.
func (e *APIError) Param() string { return e.param }

// HandleAPIError processes error responses from a remote API
func HandleAPIError(resp *http.Response) error {
	// Read the entire response body
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("API error with status %s (failed to read response body: %v)", resp.Status, err)
	}

	// Try to decode as a structured JSON error
	var apiErr struct {
		Error struct {
			Message string  `json:"message"`
			Type    string  `json:"type"`
			Param   *string `json:"param"`
			Code    string  `json:"code"`
		} `json:"error"`
	}

	if jsonErr := json.Unmarshal(body, &apiErr); jsonErr == nil && apiErr.Error.Message != "" {
		param := ""
		if apiErr.Error.Param != nil {
			param = *apiErr.Error.Param
		}

		// Return structured APIError instead of string
		return &APIError{
			err:       errors.New(apiErr.Error.Message),
			message:   apiErr.Error.Message,
			param:     param,
			errorType: apiErr.Error.Type,
			errorCode: apiErr.Error.Code,
		}
	}

	// Fallback to generic error
	bodyStr := string(body)
	if len(bodyStr) > 100 {
		bodyStr = bodyStr[:100] + "..."
	}
	return fmt.Errorf("API error %d: %s", resp.StatusCode, bodyStr)
}
