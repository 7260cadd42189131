package enrich

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_IngestArticle(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/ingest-article", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, map[string]string{"title": "כותרת", "subtitle": "תקציר", "content": "גוף"}, req)

		_, _ = w.Write([]byte(`{"embeddings":[0.1,0.2,0.3],"topics":["politics"],"sentiment":"neutral","score":7}`))
	}))
	defer ts.Close()

	c := NewClient(ts.URL+"/", time.Second)
	res, err := c.IngestArticle(context.Background(), "כותרת", "תקציר", "גוף")
	require.NoError(t, err)

	assert.Equal(t, []float64{0.1, 0.2, 0.3}, res.Embeddings)
	assert.Equal(t, map[string]any{"topics": []any{"politics"}, "sentiment": "neutral", "score": float64(7)}, res.Attributes)
	_, hasEmbeddings := res.Attributes["embeddings"]
	assert.False(t, hasEmbeddings)
}

func TestClient_IngestArticleErrors(t *testing.T) {
	tbl := []struct {
		name   string
		status int
		body   string
		errMsg string
	}{
		{name: "server error", status: http.StatusInternalServerError, body: "boom", errMsg: "unexpected status 500 Internal Server Error: boom"},
		{name: "no embeddings", status: http.StatusOK, body: `{"topics":[]}`, errMsg: ErrNoEmbeddings.Error()},
		{name: "empty embeddings", status: http.StatusOK, body: `{"embeddings":[]}`, errMsg: ErrNoEmbeddings.Error()},
		{name: "not a vector", status: http.StatusOK, body: `{"embeddings":"abc"}`, errMsg: ErrNoEmbeddings.Error()},
		{name: "invalid json", status: http.StatusOK, body: `{`, errMsg: "decode response"},
	}

	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer ts.Close()

			_, err := NewClient(ts.URL, time.Second).IngestArticle(context.Background(), "t", "s", "c")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestClient_GenerateDigest(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/daily-digest", r.URL.Path)
		var req map[string]int64
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, int64(42), req["reader_id"])

		_, _ = w.Write([]byte(`{"teaser":"הבוקר","date":"2024-05-01","readTime":"4 min","sections":[
			{"category":"politics","title":"T","teaser":"tz","highlights":["h1"],"body":["b1","b2"],
			 "articleLinks":["https://ynet.co.il/1"],"imageUrl":"https://img/1.jpg","mood":"calm"}]}`))
	}))
	defer ts.Close()

	res, err := NewClient(ts.URL, time.Second).GenerateDigest(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, "הבוקר", res.Teaser)
	assert.Equal(t, "2024-05-01", res.Date)
	assert.Equal(t, "4 min", res.ReadTime)
	require.Len(t, res.Sections, 1)
	s := res.Sections[0]
	assert.Equal(t, "politics", s.Category)
	assert.Equal(t, []string{"b1", "b2"}, s.Body)
	assert.Equal(t, []string{"https://ynet.co.il/1"}, s.ArticleLinks)
	assert.Equal(t, "calm", s.Mood)
	assert.Empty(t, s.ReadTime)
}

func TestClient_GenerateDigestEmpty(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"sections":[],"teaser":""}`))
	}))
	defer ts.Close()

	_, err := NewClient(ts.URL, time.Second).GenerateDigest(context.Background(), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty digest")
}

func TestClient_Timeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer ts.Close()

	_, err := NewClient(ts.URL, 50*time.Millisecond).GenerateDigest(context.Background(), 1)
	require.Error(t, err)
}
