/*
 *     Copyright 2026 The Iris Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *      http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"

	"github.com/iris-ml/iris/pkg/dataset"
	"github.com/iris-ml/iris/pkg/models"
	"github.com/iris-ml/iris/pkg/models/mocks"
	"github.com/iris-ml/iris/pkg/species"
	"github.com/iris-ml/iris/predictor/middlewares"
	"github.com/iris-ml/iris/predictor/types"
)

var (
	mockSetosaReqBody = `{"sepal_length": 5.1, "sepal_width": 3.5, "petal_length": 1.4, "petal_width": 0.2}`
)

func mockRouter(h *Handlers) *gin.Engine {
	r := gin.New()
	r.Use(middlewares.RequestID(), middlewares.Error())
	r.GET("/", h.GetRoot)
	r.GET("/healthy", h.GetHealth)
	r.POST("/predict", h.Predict)
	return r
}

func newPredictRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func trainedModel(t *testing.T) *models.LogisticRegression {
	table := species.Default()
	ds, err := dataset.Load(table)
	if err != nil {
		t.Fatal(err)
	}

	x, y := ds.Matrix()
	lr := models.NewLogisticRegression(table.Labels())
	if err := lr.Fit(x, y); err != nil {
		t.Fatal(err)
	}

	return lr
}

func TestHandlers_GetRoot(t *testing.T) {
	assert := assert.New(t)
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	w := httptest.NewRecorder()
	mockRouter(New(mocks.NewMockClassifier(ctl), species.Default())).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(http.StatusOK, w.Code)
	assert.JSONEq(`{"message": "Welcome! API is running."}`, w.Body.String())
}

func TestHandlers_GetHealth(t *testing.T) {
	assert := assert.New(t)
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	w := httptest.NewRecorder()
	mockRouter(New(mocks.NewMockClassifier(ctl), species.Default())).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthy", nil))
	assert.Equal(http.StatusOK, w.Code)
	assert.Equal(`"OK"`, w.Body.String())
}

func TestHandlers_Predict(t *testing.T) {
	tests := []struct {
		name   string
		req    *http.Request
		mock   func(mc *mocks.MockClassifierMockRecorder)
		expect func(t *testing.T, w *httptest.ResponseRecorder)
	}{
		{
			name: "success",
			req:  newPredictRequest(mockSetosaReqBody),
			mock: func(mc *mocks.MockClassifierMockRecorder) {
				mc.Predict(gomock.Any()).DoAndReturn(func(x mat.Matrix) ([]int, error) {
					rows, cols := x.Dims()
					if rows != 1 || cols != 4 || x.At(0, 2) != 1.4 {
						return nil, errors.New("unexpected features")
					}

					return []int{1}, nil
				}).Times(1)
			},
			expect: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert := assert.New(t)
				assert.Equal(http.StatusOK, w.Code)
				assert.JSONEq(`{"prediction_code": 1, "predicted_species": "versicolor"}`, w.Body.String())
			},
		},
		{
			name: "numeric string is coerced",
			req:  newPredictRequest(`{"sepal_length": "6.9", "sepal_width": 3.1, "petal_length": 5.4, "petal_width": 2.1}`),
			mock: func(mc *mocks.MockClassifierMockRecorder) {
				mc.Predict(gomock.Any()).Return([]int{2}, nil).Times(1)
			},
			expect: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert := assert.New(t)
				assert.Equal(http.StatusOK, w.Code)
				assert.JSONEq(`{"prediction_code": 2, "predicted_species": "virginica"}`, w.Body.String())
			},
		},
		{
			name: "zero measurements are valid",
			req:  newPredictRequest(`{"sepal_length": 0, "sepal_width": 0, "petal_length": 0, "petal_width": 0}`),
			mock: func(mc *mocks.MockClassifierMockRecorder) {
				mc.Predict(gomock.Any()).Return([]int{0}, nil).Times(1)
			},
			expect: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert := assert.New(t)
				assert.Equal(http.StatusOK, w.Code)
			},
		},
		{
			name: "missing field",
			req:  newPredictRequest(`{"sepal_length": 5.1, "sepal_width": 3.5, "petal_length": 1.4}`),
			mock: func(mc *mocks.MockClassifierMockRecorder) {},
			expect: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert := assert.New(t)
				assert.Equal(http.StatusUnprocessableEntity, w.Code)
				assert.Contains(w.Body.String(), "PetalWidth")
			},
		},
		{
			name: "null field",
			req:  newPredictRequest(`{"sepal_length": null, "sepal_width": 3.5, "petal_length": 1.4, "petal_width": 0.2}`),
			mock: func(mc *mocks.MockClassifierMockRecorder) {},
			expect: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert := assert.New(t)
				assert.Equal(http.StatusUnprocessableEntity, w.Code)
			},
		},
		{
			name: "non-numeric field",
			req:  newPredictRequest(`{"sepal_length": "abc", "sepal_width": 3.5, "petal_length": 1.4, "petal_width": 0.2}`),
			mock: func(mc *mocks.MockClassifierMockRecorder) {},
			expect: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert := assert.New(t)
				assert.Equal(http.StatusUnprocessableEntity, w.Code)
				assert.Contains(w.Body.String(), "abc")
			},
		},
		{
			name: "nan string field",
			req:  newPredictRequest(`{"sepal_length": "NaN", "sepal_width": "NaN", "petal_length": "NaN", "petal_width": "NaN"}`),
			mock: func(mc *mocks.MockClassifierMockRecorder) {},
			expect: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert := assert.New(t)
				assert.Equal(http.StatusUnprocessableEntity, w.Code)
				assert.Contains(w.Body.String(), "NaN")
				assert.NotContains(w.Body.String(), "predicted_species")
			},
		},
		{
			name: "inf string field",
			req:  newPredictRequest(`{"sepal_length": "Inf", "sepal_width": 3.5, "petal_length": "-Inf", "petal_width": 0.2}`),
			mock: func(mc *mocks.MockClassifierMockRecorder) {},
			expect: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert := assert.New(t)
				assert.Equal(http.StatusUnprocessableEntity, w.Code)
				assert.Contains(w.Body.String(), "Inf")
				assert.NotContains(w.Body.String(), "predicted_species")
			},
		},
		{
			name: "hex float string field",
			req:  newPredictRequest(`{"sepal_length": "0x1p2", "sepal_width": 3.5, "petal_length": 1.4, "petal_width": 0.2}`),
			mock: func(mc *mocks.MockClassifierMockRecorder) {},
			expect: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert := assert.New(t)
				assert.Equal(http.StatusUnprocessableEntity, w.Code)
				assert.Contains(w.Body.String(), "0x1p2")
				assert.NotContains(w.Body.String(), "predicted_species")
			},
		},
		{
			name: "malformed json",
			req:  newPredictRequest(`{"sepal_length": `),
			mock: func(mc *mocks.MockClassifierMockRecorder) {},
			expect: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert := assert.New(t)
				assert.Equal(http.StatusUnprocessableEntity, w.Code)
			},
		},
		{
			name: "code out of label table",
			req:  newPredictRequest(mockSetosaReqBody),
			mock: func(mc *mocks.MockClassifierMockRecorder) {
				mc.Predict(gomock.Any()).Return([]int{3}, nil).Times(1)
			},
			expect: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert := assert.New(t)
				assert.Equal(http.StatusInternalServerError, w.Code)
				assert.NotContains(w.Body.String(), "predicted_species")
			},
		},
		{
			name: "classifier failed",
			req:  newPredictRequest(mockSetosaReqBody),
			mock: func(mc *mocks.MockClassifierMockRecorder) {
				mc.Predict(gomock.Any()).Return(nil, models.ErrNotFitted).Times(1)
			},
			expect: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert := assert.New(t)
				assert.Equal(http.StatusInternalServerError, w.Code)
			},
		},
		{
			name: "classifier returned no prediction",
			req:  newPredictRequest(mockSetosaReqBody),
			mock: func(mc *mocks.MockClassifierMockRecorder) {
				mc.Predict(gomock.Any()).Return([]int{}, nil).Times(1)
			},
			expect: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert := assert.New(t)
				assert.Equal(http.StatusInternalServerError, w.Code)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctl := gomock.NewController(t)
			defer ctl.Finish()
			classifier := mocks.NewMockClassifier(ctl)
			w := httptest.NewRecorder()
			h := New(classifier, species.Default())

			tc.mock(classifier.EXPECT())
			mockRouter(h).ServeHTTP(w, tc.req)
			tc.expect(t, w)
		})
	}
}

func TestHandlers_PredictWithTrainedModel(t *testing.T) {
	r := mockRouter(New(trainedModel(t), species.Default()))

	tests := []struct {
		name      string
		body      string
		code      int
		predicted string
	}{
		{
			name:      "setosa",
			body:      mockSetosaReqBody,
			code:      0,
			predicted: species.Setosa,
		},
		{
			name:      "versicolor",
			body:      `{"sepal_length": 7.0, "sepal_width": 3.2, "petal_length": 4.7, "petal_width": 1.4}`,
			code:      1,
			predicted: species.Versicolor,
		},
		{
			name:      "virginica",
			body:      `{"sepal_length": 6.3, "sepal_width": 3.3, "petal_length": 6.0, "petal_width": 2.5}`,
			code:      2,
			predicted: species.Virginica,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			var first types.PredictResponse
			for i := 0; i < 3; i++ {
				w := httptest.NewRecorder()
				r.ServeHTTP(w, newPredictRequest(tc.body))
				assert.Equal(http.StatusOK, w.Code)

				var resp types.PredictResponse
				assert.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(tc.code, resp.PredictionCode)
				assert.Equal(tc.predicted, resp.PredictedSpecies)
				if i == 0 {
					first = resp
				}
				assert.Equal(first, resp)
			}
		})
	}
}
