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

// The file provides HTTP handlers for text generation endpoints.
// It implements the tool invocation endpoint and the tool catalog listing.
package generate

import (
	"encoding/json"
	"net/http"

	"github.com/saze-ai/toolgate/internal/apiserver/common"
	"github.com/saze-ai/toolgate/internal/apiserver/middleware"
	"github.com/saze-ai/toolgate/internal/pipeline"
	"github.com/saze-ai/toolgate/internal/tools"
	"k8s.io/klog/v2"
)

const (
	GeneratePath = "/v1/generate"
	ToolsPath    = "/v1/tools"
)

type GenerateApiHandler struct {
	pipeline     *pipeline.Pipeline
	registry     *tools.Registry
	defaultModel string
}

func NewGenerateApiHandler(p *pipeline.Pipeline, registry *tools.Registry, defaultModel string) *GenerateApiHandler {
	return &GenerateApiHandler{
		pipeline:     p,
		registry:     registry,
		defaultModel: defaultModel,
	}
}

func (c *GenerateApiHandler) GetRoutes() []common.Route {
	return []common.Route{
		{
			Method:      http.MethodPost,
			Pattern:     GeneratePath,
			HandlerFunc: c.Generate,
		},
		{
			Method:      http.MethodGet,
			Pattern:     ToolsPath,
			HandlerFunc: c.ListTools,
		},
	}
}

type generateRequest struct {
	Tool  string         `json:"tool"`
	Model string         `json:"model"`
	Data  map[string]any `json:"data"`
}

// Generate runs the invocation pipeline for one request. The success body
// carries exactly the tool's output key; failures map to the error envelope.
func (c *GenerateApiHandler) Generate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.WriteJSONError(ctx, w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Model == "" {
		req.Model = c.defaultModel
	}

	result, err := c.pipeline.Run(ctx, pipeline.Request{
		Tool:      req.Tool,
		Model:     req.Model,
		Data:      req.Data,
		ClientKey: middleware.ClientIP(r),
	})
	if err != nil {
		if perr, ok := pipeline.AsError(err); ok {
			common.WriteJSONError(ctx, w, perr.HTTPStatus(), perr.UserMessage())
			return
		}
		klog.FromContext(ctx).Error(err, "pipeline returned an unclassified error")
		common.WriteJSONError(ctx, w, http.StatusInternalServerError, "internal error")
		return
	}

	common.WriteJSON(ctx, w, http.StatusOK, result.Shape())
}

type toolField struct {
	Name     string   `json:"name"`
	Type     string   `json:"type"`
	Required bool     `json:"required"`
	Enum     []string `json:"enum,omitempty"`
}

type toolInfo struct {
	Name      string      `json:"name"`
	OutputKey string      `json:"output_key"`
	Fields    []toolField `json:"fields"`
}

// ListTools returns the tool catalog with each tool's input schema.
func (c *GenerateApiHandler) ListTools(w http.ResponseWriter, r *http.Request) {
	catalog := c.registry.List()
	infos := make([]toolInfo, 0, len(catalog))
	for _, tool := range catalog {
		fields := make([]toolField, 0, len(tool.Fields))
		for _, f := range tool.Fields {
			fields = append(fields, toolField{
				Name:     f.Name,
				Type:     string(f.Kind),
				Required: f.Required,
				Enum:     f.Enum,
			})
		}
		infos = append(infos, toolInfo{
			Name:      tool.Name,
			OutputKey: tool.OutputKey,
			Fields:    fields,
		})
	}
	common.WriteJSON(r.Context(), w, http.StatusOK, map[string]any{"tools": infos})
}
