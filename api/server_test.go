package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lx-annotate/annotate-api/api/types"
	"github.com/lx-annotate/annotate-api/internal/backend"
	annotationsService "github.com/lx-annotate/annotate-api/internal/services/annotations"
	draftsService "github.com/lx-annotate/annotate-api/internal/services/drafts"
	segmentsService "github.com/lx-annotate/annotate-api/internal/services/segments"
	"github.com/lx-annotate/annotate-api/internal/services/sensitivemeta"
	statsService "github.com/lx-annotate/annotate-api/internal/services/stats"
	"github.com/lx-annotate/annotate-api/internal/storage"
)

// fakeBackend emulates the clinical backend's REST surface for the endpoints
// the gateway touches in these tests.
func fakeBackend(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/videos/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/videos/" {
			json.NewEncoder(w).Encode([]map[string]any{
				{"id": 1, "original_file_name": "colo_1.mp4", "fps": 25.0},
				{"id": 2, "original_file_name": "colo_2.mp4", "status": "in_progress"},
			})
			return
		}
		if r.URL.Path == "/api/videos/1/" {
			json.NewEncoder(w).Encode(map[string]any{
				"id": 1, "original_file_name": "colo_1.mp4", "fps": 25.0,
			})
			return
		}
		http.NotFound(w, r)
	})
	mux.HandleFunc("/api/video-segments/", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			json.NewEncoder(w).Encode([]map[string]any{
				{"id": 11, "video_id": 1, "label_name": "polyp", "start_time": 1.0, "end_time": 2.0},
				{"id": 12, "video_id": 1, "label_name": "blood", "start_time": 4.0, "end_time": 6.0},
			})
		case http.MethodPost:
			var req map[string]any
			_ = json.NewDecoder(r.Body).Decode(&req)
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(map[string]any{
				"id": 13, "video_id": req["video_id"], "label_id": req["label_id"],
				"label_name": "polyp",
				"start_frame_number": req["start_frame_number"],
				"end_frame_number":   req["end_frame_number"],
				"start_time":         2.0, "end_time": 3.0,
			})
		}
	})
	mux.HandleFunc("/api/labels/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]any{{"id": 7, "name": "polyp"}})
	})
	mux.HandleFunc("/api/annotations/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]any{
			{"id": "a1", "video_id": 1, "type": "text", "start_time": 1.0, "end_time": 2.0, "text": "note"},
		})
	})
	mux.HandleFunc("/api/examinations/stats/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]int{"pending": 1, "in_progress": 2, "completed": 3})
	})
	mux.HandleFunc("/api/video-segments/stats/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]int{"pending": 4})
	})
	mux.HandleFunc("/api/video/sensitivemeta/stats/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]int{"completed": 5})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func setupServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	upstream := fakeBackend(t)
	client := backend.NewClient(backend.Config{BaseURL: upstream.URL})

	segSvc := segmentsService.NewService(client)
	deps := &types.Dependencies{
		Storage:           storage.NewMemoryStore(),
		Backend:           client,
		DraftService:      draftsService.NewService(storage.NewMemoryStore()),
		SegmentService:    segSvc,
		AnnotationService: annotationsService.NewService(client, segSvc),
		StatsService:      statsService.NewService(client),
		SensitiveMeta:     sensitivemeta.NewService(client),
	}

	server := NewServer("127.0.0.1:0")
	server.SetDependencies(deps)
	require.NoError(t, server.Initialize())
	return server.Engine()
}

func TestServerRoutes(t *testing.T) {
	engine := setupServer(t)

	t.Run("health endpoint", func(t *testing.T) {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("version endpoint", func(t *testing.T) {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest("GET", "/version", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Annotate Gateway API")
	})

	t.Run("unknown route returns structured 404", func(t *testing.T) {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest("GET", "/nope", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "/nope")
	})

	t.Run("list videos through the gateway", func(t *testing.T) {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/videos", nil))
		require.Equal(t, http.StatusOK, w.Code)

		var resp types.VideosResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 2, resp.Count)
		// Missing status defaults to available
		assert.Equal(t, "available", string(resp.Videos[0].Status))
		assert.Equal(t, "in_progress", string(resp.Videos[1].Status))
	})

	t.Run("segments grouped by label", func(t *testing.T) {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/videos/1/segments", nil))
		require.Equal(t, http.StatusOK, w.Code)

		var resp types.SegmentsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 2, resp.Count)
		assert.Len(t, resp.ByLabel["polyp"], 1)
		assert.Len(t, resp.ByLabel["blood"], 1)
	})

	t.Run("create segment converts seconds to frames", func(t *testing.T) {
		body := `{"videoId": 1, "label": "polyp", "startTime": 2.0, "endTime": 3.0}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/api/v1/video-segments", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		engine.ServeHTTP(w, req)
		require.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("annotations list with filter", func(t *testing.T) {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/annotations?video_id=1&type=text", nil))
		require.Equal(t, http.StatusOK, w.Code)

		var resp types.AnnotationsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 1, resp.Count)
	})

	t.Run("annotations reject bad filter", func(t *testing.T) {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/annotations?type=bogus", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("stats aggregate across domains", func(t *testing.T) {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/stats", nil))
		require.Equal(t, http.StatusOK, w.Code)

		var resp types.StatsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 1, resp.Stats.Examination.Pending)
		assert.Equal(t, 4, resp.Stats.Segment.Pending)
		assert.Equal(t, 5, resp.Stats.SensitiveMeta.Completed)
	})
}
