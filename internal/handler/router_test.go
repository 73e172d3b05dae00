package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"model-artifact-registry/internal/storage"
	"model-artifact-registry/internal/testutil"
	"model-artifact-registry/internal/usecase"
)

// setupRouter wires the full handler stack over the in-memory metadata fake
// and an artifact store. With fs == nil the store uses a temp directory on
// the real filesystem (needed for download responses).
func setupRouter(t *testing.T, fs afero.Fs) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	meta := testutil.NewFakeMetadataStore()
	var store storage.Store
	if fs != nil {
		store = storage.NewLocalStoreWithFs(fs, "/data/models")
	} else {
		store = storage.NewLocalStore(t.TempDir())
	}

	modelUC := usecase.NewModelUseCase(meta.Models(), meta.Versions(), meta.Aliases(), store)
	versionUC := usecase.NewVersionUseCase(meta.Versions(), meta.Models(), meta.Aliases(), store)

	h := New(modelUC, versionUC)
	r := gin.New()
	api := r.Group("/api/v1/registry")
	h.RegisterRoutes(api)
	return r
}

// uploadBody builds a multipart body with a model_file part and a metadata
// JSON form field.
func uploadBody(t *testing.T, metadata any, fileName string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fw, err := w.CreateFormFile("model_file", fileName)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)

	metaJSON, err := json.Marshal(metadata)
	require.NoError(t, err)
	require.NoError(t, w.WriteField("metadata", string(metaJSON)))
	require.NoError(t, w.Close())

	return &buf, w.FormDataContentType()
}

func doRequest(r *gin.Engine, method, path string, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		req, _ = http.NewRequest(method, path, body)
	} else {
		req, _ = http.NewRequest(method, path, nil)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func modelMetadata(name string) map[string]any {
	return map[string]any{
		"name":                name,
		"description":         "a model",
		"created_by":          "alice",
		"version_description": "initial",
	}
}

func versionMetadata() map[string]any {
	return map[string]any{
		"description": "next version",
		"created_by":  "bob",
	}
}

func registerTestModel(t *testing.T, r *gin.Engine, name string) string {
	t.Helper()
	body, contentType := uploadBody(t, modelMetadata(name), "model.skops", []byte("model bytes"))
	w := doRequest(r, http.MethodPost, "/api/v1/registry/models", body, contentType)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decodeJSON(t, w)["model_id"].(string)
}
