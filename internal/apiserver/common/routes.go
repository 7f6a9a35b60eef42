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

// The file defines the route registration contract shared by all API handlers.
package common

import (
	"net/http"
)

// Route binds one HTTP method and path pattern to a handler function.
type Route struct {
	Method      string
	Pattern     string
	HandlerFunc http.HandlerFunc
}

// ApiHandler is implemented by every handler that exposes routes.
type ApiHandler interface {
	GetRoutes() []Route
}

// RegisterHandler registers all routes of the handler on the mux using
// method-qualified patterns, so unmatched methods get 405 responses.
func RegisterHandler(mux *http.ServeMux, handler ApiHandler) {
	for _, route := range handler.GetRoutes() {
		mux.HandleFunc(route.Method+" "+route.Pattern, route.HandlerFunc)
	}
}
