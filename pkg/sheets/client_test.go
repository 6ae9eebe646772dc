package sheets

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noktah-inovasi/contentops/internal/resilience"
)

func fastRetry() Option {
	return WithRetryPolicy(resilience.Policy{Attempts: 1, Backoff: time.Millisecond})
}

func TestTestConnection_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/spreadsheets/sheet-123", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"spreadsheetId": "sheet-123"}`))
	}))
	defer srv.Close()

	client := NewClient("test-token", WithBaseURL(srv.URL), fastRetry())
	require.NoError(t, client.TestConnection(context.Background(), "sheet-123"))
}

func TestTestConnection_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error": {"code": 404}}`))
	}))
	defer srv.Close()

	client := NewClient("test-token", WithBaseURL(srv.URL), fastRetry())
	err := client.TestConnection(context.Background(), "missing")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestGetSpreadsheetInfo_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/spreadsheets/sheet-123", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"properties": {"title": "Client Roster"},
			"sheets": [
				{"properties": {"title": "Clients"}},
				{"properties": {"title": "Archive"}}
			]
		}`))
	}))
	defer srv.Close()

	client := NewClient("test-token", WithBaseURL(srv.URL), fastRetry())
	info, err := client.GetSpreadsheetInfo(context.Background(), "sheet-123")

	require.NoError(t, err)
	assert.Equal(t, "Client Roster", info.Title)
	assert.Equal(t, []string{"Clients", "Archive"}, info.SheetTitles())
	assert.True(t, info.HasSheet("Clients"))
	assert.False(t, info.HasSheet("Budget"))
}

func TestReadTable_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/spreadsheets/sheet-123/values/'Clients'", r.URL.Path)
		assert.Equal(t, "ROWS", r.URL.Query().Get("majorDimension"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(valuesResponse{Values: [][]any{
			{"Name", "Content Plan Folder ID"},
			{"Acme", "folder-1"},
			{"Globex", "folder-2"},
		}})
	}))
	defer srv.Close()

	client := NewClient("test-token", WithBaseURL(srv.URL), fastRetry())
	table, err := client.ReadTable(context.Background(), "sheet-123", "Clients", ReadOptions{})

	require.NoError(t, err)
	assert.Equal(t, []string{"Name", "Content Plan Folder ID"}, table.Header)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "Acme", table.Rows[0][0])

	maps := table.Maps()
	require.Len(t, maps, 2)
	assert.Equal(t, "folder-2", maps[1]["Content Plan Folder ID"])
}

func TestReadTable_WithRange(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/spreadsheets/sheet-123/values/'Sheet1'!A1:B3", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(valuesResponse{Values: [][]any{
			{"Topik", "Tanggal"},
			{"Launch post", "2025-09-10"},
		}})
	}))
	defer srv.Close()

	client := NewClient("test-token", WithBaseURL(srv.URL), fastRetry())
	table, err := client.ReadTable(context.Background(), "sheet-123", "Sheet1", ReadOptions{Range: "A1:B3"})

	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "Launch post", table.Rows[0][0])
}

func TestReadTable_RaggedRowsNormalized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(valuesResponse{Values: [][]any{
			{"A", "B", "C"},
			{"1"},
			{"1", "2", "3", "4"},
			{float64(7), true, nil},
		}})
	}))
	defer srv.Close()

	client := NewClient("test-token", WithBaseURL(srv.URL), fastRetry())
	table, err := client.ReadTable(context.Background(), "sheet-123", "Sheet1", ReadOptions{})

	require.NoError(t, err)
	require.Len(t, table.Rows, 3)
	assert.Equal(t, []string{"1", "", ""}, table.Rows[0])
	assert.Equal(t, []string{"1", "2", "3"}, table.Rows[1])
	assert.Equal(t, []string{"7", "true", ""}, table.Rows[2])
}

func TestReadTable_MaxRows(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(valuesResponse{Values: [][]any{
			{"A"}, {"1"}, {"2"}, {"3"},
		}})
	}))
	defer srv.Close()

	client := NewClient("test-token", WithBaseURL(srv.URL), fastRetry())
	table, err := client.ReadTable(context.Background(), "sheet-123", "Sheet1", ReadOptions{MaxRows: 2})

	require.NoError(t, err)
	assert.Len(t, table.Rows, 2)
}

func TestReadTable_EmptySheet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"range": "'Sheet1'!A1:Z1000"}`))
	}))
	defer srv.Close()

	client := NewClient("test-token", WithBaseURL(srv.URL), fastRetry())
	table, err := client.ReadTable(context.Background(), "sheet-123", "Sheet1", ReadOptions{})

	require.NoError(t, err)
	assert.Empty(t, table.Header)
	assert.Empty(t, table.Rows)
}

func TestReadTable_RetriesTransientStatus(t *testing.T) {
	callCount := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		callCount++
		if callCount == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(valuesResponse{Values: [][]any{{"A"}, {"1"}}})
	}))
	defer srv.Close()

	client := NewClient("test-token", WithBaseURL(srv.URL),
		WithRetryPolicy(resilience.Policy{Attempts: 2, Backoff: time.Millisecond}))
	table, err := client.ReadTable(context.Background(), "sheet-123", "Sheet1", ReadOptions{})

	require.NoError(t, err)
	assert.Len(t, table.Rows, 1)
	assert.Equal(t, 2, callCount)
}

func TestReadTable_NoRetryOnClientError(t *testing.T) {
	callCount := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		callCount++
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	client := NewClient("test-token", WithBaseURL(srv.URL),
		WithRetryPolicy(resilience.Policy{Attempts: 3, Backoff: time.Millisecond}))
	_, err := client.ReadTable(context.Background(), "sheet-123", "Sheet1", ReadOptions{})

	assert.Error(t, err)
	assert.Equal(t, 1, callCount)
}

func TestReadTable_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient("test-token", WithBaseURL(srv.URL), fastRetry())
	_, err := client.ReadTable(ctx, "sheet-123", "Sheet1", ReadOptions{})

	assert.Error(t, err)
}
