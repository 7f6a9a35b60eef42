/*
Copyright 2026 The Saze AI Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package provider

import (
	"errors"
	"net/http"
)

type ErrorCategory string

const (
	ErrCategoryRateLimit  ErrorCategory = "RATE_LIMIT"
	ErrCategoryServer     ErrorCategory = "SERVER_ERROR"
	ErrCategoryInvalidReq ErrorCategory = "INVALID_REQ"
	ErrCategoryAuth       ErrorCategory = "AUTH_ERROR"
	ErrCategoryBlocked    ErrorCategory = "CONTENT_BLOCKED" // provider-side safety block
	ErrCategoryUnknown    ErrorCategory = "UNKNOWN"
)

// Error is the error type returned by provider implementations.
type Error struct {
	Category ErrorCategory
	Message  string
	RawError error // original error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.RawError
}

// IsBlocked reports whether the error is a provider-reported safety block,
// as opposed to an upstream failure.
func IsBlocked(err error) bool {
	var perr *Error
	return errors.As(err, &perr) && perr.Category == ErrCategoryBlocked
}

// MapStatusCodeToCategory maps upstream HTTP status codes to error categories.
func MapStatusCodeToCategory(statusCode int) ErrorCategory {
	switch statusCode {
	case http.StatusBadRequest:
		return ErrCategoryInvalidReq
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrCategoryAuth
	case http.StatusTooManyRequests:
		return ErrCategoryRateLimit
	case http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return ErrCategoryServer
	default:
		if statusCode >= 500 {
			return ErrCategoryServer
		}
		return ErrCategoryUnknown
	}
}
