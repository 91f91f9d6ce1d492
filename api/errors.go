// Copyright 2026 The Driftline Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"errors"
	"fmt"
)

// APIError represents a structured error response from the Driftline
// API. Callers can use errors.As to extract the structured
// information:
//
//	var apiErr *api.APIError
//	if errors.As(err, &apiErr) {
//	    if apiErr.Code == api.ErrCodeNotFound { ... }
//	}
type APIError struct {
	// Code is the platform error code (e.g. 130 for "not found").
	Code int `json:"error_code"`
	// Message is the human-readable error description from the server.
	Message string `json:"error_string"`
	// StatusCode is the HTTP status code of the response.
	StatusCode int `json:"-"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("driftline: error %d (http %d): %s", e.Code, e.StatusCode, e.Message)
}

// Standard Driftline error codes.
const (
	ErrCodeGeneric         = 100
	ErrCodeInvalidToken    = 110
	ErrCodeRevokedToken    = 111
	ErrCodeInvalidArgument = 120
	ErrCodeNotFound        = 130
	ErrCodeForbidden       = 140
	ErrCodeRateLimited     = 150
)

// IsAPIError checks whether err is a *APIError with the given error
// code.
func IsAPIError(err error, code int) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == code
	}
	return false
}
