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

// The file defines the pipeline error taxonomy and its mapping to HTTP
// status codes and user-facing messages. Details stay in server-side logs;
// response bodies carry only the generic message.
package pipeline

import (
	"errors"
	"net/http"
)

// ErrorKind is the terminal failure classification of a pipeline run.
type ErrorKind string

const (
	KindValidation        ErrorKind = "validation"
	KindRateLimited       ErrorKind = "rate_limited"
	KindFlagged           ErrorKind = "flagged"
	KindModerationService ErrorKind = "moderation_service"
	KindProvider          ErrorKind = "provider"
	KindProviderBlocked   ErrorKind = "provider_blocked"
	KindInternal          ErrorKind = "internal"
)

// Error is the error type returned by Pipeline.Run.
type Error struct {
	Kind ErrorKind
	Err  error // underlying cause, logged but not returned to clients
}

func (e *Error) Error() string {
	if e.Err != nil {
		return string(e.Kind) + ": " + e.Err.Error()
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// HTTPStatus maps the error kind to the response status code.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindValidation, KindFlagged, KindProviderBlocked:
		return http.StatusBadRequest
	case KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// UserMessage returns the generic client-facing message for the error kind.
func (e *Error) UserMessage() string {
	switch e.Kind {
	case KindValidation:
		return "invalid request"
	case KindRateLimited:
		return "too many requests, please try again later"
	case KindFlagged:
		return "your input or the generated result was flagged, please revise your input"
	case KindProviderBlocked:
		return "the provider declined to generate this content, please revise your input"
	case KindModerationService, KindProvider:
		return "generation failed, please try again later"
	default:
		return "internal error"
	}
}

// AsError extracts a pipeline *Error from an error chain.
func AsError(err error) (*Error, bool) {
	var perr *Error
	ok := errors.As(err, &perr)
	return perr, ok
}
