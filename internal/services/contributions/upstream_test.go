package contributions

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/firejune/notion-github-embed/internal/models"
)

func newUpstreamServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/octocat", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "20240315", r.URL.Query().Get("v"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"years": [{"year": "2024", "total": 7, "range": {"start": "2024-01-01", "end": "2024-12-31"}}],
			"contributions": [
				{"date": "2024-03-15", "count": 5, "intensity": "2"},
				{"date": "2024-03-16", "count": 2, "intensity": 1},
				{"date": "2024-03-17"}
			]
		}`)
	})
	mux.HandleFunc("/api/v1/broken", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	mux.HandleFunc("/api/v1/garbage", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"contributions": [`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestUpstreamClient_Fetch(t *testing.T) {
	srv := newUpstreamServer(t)
	c := NewUpstreamClient(srv.URL+"/", zaptest.NewLogger(t))

	records, err := c.FetchContributions(context.Background(), "octocat", "20240315")
	require.NoError(t, err)
	assert.Equal(t, []models.ContributionRecord{
		{Date: "2024-03-15", Count: 5, Intensity: 2},
		{Date: "2024-03-16", Count: 2, Intensity: 1},
		{Date: "2024-03-17", Count: 0, Intensity: 0},
	}, records)
}

func TestUpstreamClient_Errors(t *testing.T) {
	srv := newUpstreamServer(t)
	c := NewUpstreamClient(srv.URL, zaptest.NewLogger(t))
	ctx := context.Background()

	_, err := c.FetchContributions(ctx, "ghost", "x")
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = c.FetchContributions(ctx, "broken", "x")
	assert.ErrorIs(t, err, ErrUpstream)
	assert.Contains(t, err.Error(), "500")

	_, err = c.FetchContributions(ctx, "garbage", "x")
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestUpstreamClient_CanceledContext(t *testing.T) {
	srv := newUpstreamServer(t)
	c := NewUpstreamClient(srv.URL, zaptest.NewLogger(t))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.FetchContributions(ctx, "octocat", "20240315")
	assert.ErrorIs(t, err, ErrUpstream)
}
