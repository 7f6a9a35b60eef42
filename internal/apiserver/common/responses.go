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

// The file provides helpers for writing JSON responses and error envelopes.
package common

import (
	"context"
	"encoding/json"
	"net/http"

	"k8s.io/klog/v2"
)

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// WriteJSON writes the payload as a JSON response with the given status.
func WriteJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		klog.FromContext(ctx).Error(err, "failed to encode response body")
	}
}

// WriteJSONError writes an error envelope with the given status and message.
func WriteJSONError(ctx context.Context, w http.ResponseWriter, status int, message string) {
	WriteJSON(ctx, w, status, ErrorResponse{Error: message})
}

// WriteNotImplementedError writes a 501 error envelope.
func WriteNotImplementedError(ctx context.Context, w http.ResponseWriter) {
	WriteJSONError(ctx, w, http.StatusNotImplemented, "not implemented")
}
