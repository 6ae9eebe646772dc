package drive

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noktah-inovasi/contentops/internal/resilience"
)

func fastRetry() Option {
	return WithRetryPolicy(resilience.Policy{Attempts: 1, Backoff: time.Millisecond})
}

func TestListFiles_Flat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/files", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		q := r.URL.Query().Get("q")
		assert.Contains(t, q, "'folder-1' in parents")
		assert.Contains(t, q, "name contains 'Content Plan - Acme'")
		assert.Contains(t, q, "mimeType != 'application/vnd.google-apps.folder'")

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(listResponse{Files: []File{
			{ID: "doc-1", Name: "Content Plan - Acme - September 2025"},
			{ID: "doc-2", Name: "Content Plan - Acme - Agustus 2025"},
		}})
	}))
	defer srv.Close()

	client := NewClient("test-token", WithBaseURL(srv.URL), fastRetry())
	files, err := client.ListFiles(context.Background(), "folder-1", "Content Plan - Acme", false)

	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "doc-1", files[0].ID)
	assert.Equal(t, "Content Plan - Acme - September 2025", files[0].Name)
}

func TestListFiles_NoNameFilter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotContains(t, r.URL.Query().Get("q"), "name contains")

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(listResponse{Files: []File{{ID: "doc-1", Name: "Anything"}}})
	}))
	defer srv.Close()

	client := NewClient("test-token", WithBaseURL(srv.URL), fastRetry())
	files, err := client.ListFiles(context.Background(), "folder-1", "", false)

	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestListFiles_Paginated(t *testing.T) {
	callCount := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		callCount++
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("pageToken") == "" {
			_ = json.NewEncoder(w).Encode(listResponse{
				Files:         []File{{ID: "doc-1"}},
				NextPageToken: "page-2",
			})
			return
		}
		assert.Equal(t, "page-2", r.URL.Query().Get("pageToken"))
		_ = json.NewEncoder(w).Encode(listResponse{Files: []File{{ID: "doc-2"}}})
	}))
	defer srv.Close()

	client := NewClient("test-token", WithBaseURL(srv.URL), fastRetry())
	files, err := client.ListFiles(context.Background(), "folder-1", "", false)

	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "doc-2", files[1].ID)
	assert.Equal(t, 2, callCount)
}

func TestListFiles_Recursive(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")
		w.Header().Set("Content-Type", "application/json")

		switch {
		case strings.Contains(q, "mimeType = 'application/vnd.google-apps.folder'"):
			if strings.Contains(q, "'root' in parents") {
				_ = json.NewEncoder(w).Encode(listResponse{Files: []File{
					{ID: "sub-1", Name: "2025", MimeType: folderMimeType},
				}})
				return
			}
			_ = json.NewEncoder(w).Encode(listResponse{})
		case strings.Contains(q, "'root' in parents"):
			_ = json.NewEncoder(w).Encode(listResponse{Files: []File{{ID: "doc-root", Name: "Plan A"}}})
		case strings.Contains(q, "'sub-1' in parents"):
			_ = json.NewEncoder(w).Encode(listResponse{Files: []File{{ID: "doc-sub", Name: "Plan B"}}})
		default:
			t.Errorf("unexpected query: %s", q)
		}
	}))
	defer srv.Close()

	client := NewClient("test-token", WithBaseURL(srv.URL), fastRetry())
	files, err := client.ListFiles(context.Background(), "root", "Plan", true)

	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "doc-root", files[0].ID)
	assert.Equal(t, "doc-sub", files[1].ID)
}

func TestListFiles_EscapesQuotes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Query().Get("q"), `name contains 'Qur\'anic'`)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(listResponse{})
	}))
	defer srv.Close()

	client := NewClient("test-token", WithBaseURL(srv.URL), fastRetry())
	_, err := client.ListFiles(context.Background(), "folder-1", "Qur'anic", false)
	require.NoError(t, err)
}

func TestListFiles_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error": {"code": 403}}`))
	}))
	defer srv.Close()

	client := NewClient("test-token", WithBaseURL(srv.URL), fastRetry())
	files, err := client.ListFiles(context.Background(), "folder-1", "Plan", false)

	assert.Error(t, err)
	assert.Nil(t, files)
	assert.Contains(t, err.Error(), "403")
}

func TestListFiles_RetriesTransientStatus(t *testing.T) {
	callCount := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		callCount++
		if callCount == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(listResponse{Files: []File{{ID: "doc-1"}}})
	}))
	defer srv.Close()

	client := NewClient("test-token", WithBaseURL(srv.URL),
		WithRetryPolicy(resilience.Policy{Attempts: 2, Backoff: time.Millisecond}))
	files, err := client.ListFiles(context.Background(), "folder-1", "", false)

	require.NoError(t, err)
	assert.Len(t, files, 1)
	assert.Equal(t, 2, callCount)
}

func TestListFiles_PageSize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, fmt.Sprint(25), r.URL.Query().Get("pageSize"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(listResponse{})
	}))
	defer srv.Close()

	client := NewClient("test-token", WithBaseURL(srv.URL), WithPageSize(25), fastRetry())
	_, err := client.ListFiles(context.Background(), "folder-1", "", false)
	require.NoError(t, err)
}
