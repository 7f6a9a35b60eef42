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

// The file provides HTTP handlers for the image prediction endpoints.
// It implements job creation, optional synchronous waiting and job retrieval.
package prediction

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/saze-ai/toolgate/internal/apiserver/common"
	predclient "github.com/saze-ai/toolgate/internal/prediction"
	"k8s.io/klog/v2"
)

const (
	PredictionsPath = "/v1/predictions"
)

// JobClient is the prediction service surface the handler needs.
type JobClient interface {
	Create(ctx context.Context, req predclient.CreateRequest) (predclient.Prediction, error)
	Get(ctx context.Context, id string) (predclient.Prediction, error)
	Wait(ctx context.Context, id string) (predclient.Prediction, error)
}

type PredictionApiHandler struct {
	client JobClient
}

func NewPredictionApiHandler(client JobClient) *PredictionApiHandler {
	return &PredictionApiHandler{client: client}
}

func (c *PredictionApiHandler) GetRoutes() []common.Route {
	return []common.Route{
		{
			Method:      http.MethodPost,
			Pattern:     PredictionsPath,
			HandlerFunc: c.CreatePrediction,
		},
		{
			Method:      http.MethodGet,
			Pattern:     PredictionsPath + "/{prediction_id}",
			HandlerFunc: c.RetrievePrediction,
		},
	}
}

type createPredictionRequest struct {
	Version string         `json:"version,omitempty"`
	Input   map[string]any `json:"input"`
	Wait    bool           `json:"wait,omitempty"`
}

// CreatePrediction submits a job. With "wait": true the handler blocks until
// the job is terminal and returns its final state.
func (c *PredictionApiHandler) CreatePrediction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req createPredictionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.WriteJSONError(ctx, w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Input) == 0 {
		common.WriteJSONError(ctx, w, http.StatusBadRequest, "prediction input is required")
		return
	}

	prediction, err := c.client.Create(ctx, predclient.CreateRequest{
		Version: req.Version,
		Input:   req.Input,
	})
	if err != nil {
		klog.FromContext(ctx).Error(err, "failed to create prediction")
		common.WriteJSONError(ctx, w, http.StatusBadGateway, "prediction service is unavailable")
		return
	}

	if !req.Wait {
		common.WriteJSON(ctx, w, http.StatusCreated, prediction)
		return
	}

	prediction, err = c.client.Wait(ctx, prediction.ID)
	if err != nil {
		klog.FromContext(ctx).Error(err, "failed to wait for prediction")
		common.WriteJSONError(ctx, w, http.StatusBadGateway, "prediction service is unavailable")
		return
	}
	common.WriteJSON(ctx, w, http.StatusOK, prediction)
}

// RetrievePrediction returns the current state of a job.
func (c *PredictionApiHandler) RetrievePrediction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id := r.PathValue("prediction_id")
	if id == "" {
		common.WriteJSONError(ctx, w, http.StatusBadRequest, "prediction id is required")
		return
	}

	prediction, err := c.client.Get(ctx, id)
	if err != nil {
		if predclient.IsNotFound(err) {
			common.WriteJSONError(ctx, w, http.StatusNotFound, "prediction not found")
			return
		}
		klog.FromContext(ctx).Error(err, "failed to retrieve prediction")
		common.WriteJSONError(ctx, w, http.StatusBadGateway, "prediction service is unavailable")
		return
	}
	common.WriteJSON(ctx, w, http.StatusOK, prediction)
}
