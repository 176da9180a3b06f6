package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katakuxiko/guidance/internal/config"
	"github.com/katakuxiko/guidance/internal/model"
)

func newWikiServer(t *testing.T, handler http.HandlerFunc) *WikipediaClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewWikipediaClient(&config.Config{
		WikiBaseURL:   srv.URL + "/w/api.php",
		WikiUserAgent: "guidance-test/1.0",
		WikiTimeout:   2 * time.Second,
	})
}

func TestWikipediaClient_SummaryFound(t *testing.T) {
	extract := strings.Repeat("Machine learning is a field of study. ", 30)
	client := newWikiServer(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "/w/api.php", r.URL.Path)
		assert.Equal(t, "query", q.Get("action"))
		assert.Equal(t, "extracts", q.Get("prop"))
		assert.Equal(t, "machine learning", q.Get("titles"))
		assert.Equal(t, "guidance-test/1.0", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"batchcomplete":true,"query":{"normalized":[{"from":"machine learning","to":"Machine learning"}],"pages":[{"pageid":233488,"ns":0,"title":"Machine learning","extract":"` + extract + `"}]}}`))
	})

	res := client.Summary(context.Background(), "machine learning")
	require.NoError(t, res.Err)
	assert.Equal(t, model.ProviderWikipedia, res.Provider)
	assert.Equal(t, extract[:500], res.Text)
	assert.Len(t, []rune(res.Text), 500)
}

func TestWikipediaClient_ShortSummaryUntouched(t *testing.T) {
	client := newWikiServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"query":{"pages":[{"pageid":1,"title":"Go","extract":"Go is a language."}]}}`))
	})

	res := client.Summary(context.Background(), "Go")
	require.NoError(t, res.Err)
	assert.Equal(t, "Go is a language.", res.Content())
}

func TestWikipediaClient_Missing(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing page", `{"batchcomplete":true,"query":{"pages":[{"ns":0,"title":"Qwzzx","missing":true}]}}`},
		{"invalid title", `{"batchcomplete":true,"query":{"pages":[{"title":"<>","invalidreason":"bad","invalid":true}]}}`},
		{"no pages", `{"batchcomplete":true}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newWikiServer(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			})
			res := client.Summary(context.Background(), "Qwzzx")
			require.NoError(t, res.Err)
			assert.Equal(t, "No results found on Wikipedia.", res.Content())
		})
	}
}

func TestWikipediaClient_Failures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{"http error", http.StatusServiceUnavailable, `oops`, "wikipedia http 503"},
		{"invalid json", http.StatusOK, `{not json`, "invalid JSON"},
		{"api error", http.StatusOK, `{"error":{"code":"badvalue","info":"Unrecognized value"}}`, "Unrecognized value"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newWikiServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})
			res := client.Summary(context.Background(), "Go")
			require.Error(t, res.Err)
			assert.True(t, strings.HasPrefix(res.Content(), "Wikipedia error: "))
			assert.Contains(t, res.Content(), tt.wantMsg)
		})
	}
}
