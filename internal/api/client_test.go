package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mgersten/taskline/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := NewClient(Config{BaseURL: srv.URL, Timeout: 2 * time.Second}, StaticToken("tok-123"), nil)
	return client, srv
}

func TestListSchedule_DecodesWireFormat(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/projects/p1/schedule", r.URL.Path)
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{
			"id": "s1", "name": "Excavation",
			"startDate": "2025-04-01", "endDate": "2025-04-05",
			"progressPercentage": 130, "isCritical": true,
			"dependencyIds": ["s0"]
		}]`))
	}))

	items, err := client.ListSchedule(context.Background(), "p1")

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Excavation", items[0].Name)
	assert.Equal(t, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), items[0].Start)
	assert.Equal(t, 130, items[0].ProgressPct, "client passes raw progress through; clamping is layout policy")
	assert.True(t, items[0].Critical)
	assert.Equal(t, []string{"s0"}, items[0].DependencyIDs)
}

func TestUpdateCardStatus_PatchesStatusEndpoint(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody statusPatchWire
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusNoContent)
	}))

	err := client.UpdateCardStatus(context.Background(), "t9", domain.StatusCompleted)

	require.NoError(t, err)
	assert.Equal(t, http.MethodPatch, gotMethod)
	assert.Equal(t, "/api/tasks/t9/status", gotPath)
	assert.Equal(t, "COMPLETED", gotBody.Status)
}

func TestGet_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`[]`))
	})
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := NewClient(Config{BaseURL: srv.URL, Timeout: 2 * time.Second, MaxRetries: 2}, StaticToken(""), nil)

	_, err := client.ListProjects(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestGet_DoesNotRetryUnauthorized(t *testing.T) {
	var calls atomic.Int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	})
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := NewClient(Config{BaseURL: srv.URL, Timeout: 2 * time.Second, MaxRetries: 3}, StaticToken("bad"), nil)

	_, err := client.ListCards(context.Background(), "p1")

	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, int32(1), calls.Load())
}

func TestGetProject_MemoizedThroughCache(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`{"id": "p1", "name": "Warehouse build", "status": "active"}`))
	}))

	first, err := client.GetProject(context.Background(), "p1")
	require.NoError(t, err)
	second, err := client.GetProject(context.Background(), "p1")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), calls.Load(), "second lookup must come from the LRU")
}

func TestErrorMapping(t *testing.T) {
	cases := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, ErrUnauthorized},
		{http.StatusForbidden, ErrUnauthorized},
		{http.StatusNotFound, ErrNotFound},
		{http.StatusBadGateway, ErrServer},
	}
	for _, tc := range cases {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
		}))
		err := client.DeleteCard(context.Background(), "t1")
		assert.ErrorIs(t, err, tc.want, "status=%d", tc.status)
	}
}

func TestBoardSource_ImplementsPorts(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPatch:
			w.WriteHeader(http.StatusNoContent)
		default:
			assert.Equal(t, "/api/projects/p1/tasks", r.URL.Path)
			w.Write([]byte(`[{"id": "t1", "title": "Inspect site", "status": "VERIFIED"}]`))
		}
	}))
	src := BoardSource{Client: client, ProjectID: "p1"}

	require.NoError(t, src.UpdateStatus(context.Background(), "t1", domain.StatusVerified))

	cards, err := src.Reload(context.Background())
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, domain.StatusVerified, cards[0].Status)
}

func TestParseWireDate(t *testing.T) {
	good := "2025-07-04"
	bad := "not-a-date"
	empty := ""

	require.NotNil(t, parseWireDate(&good))
	assert.Equal(t, time.Date(2025, 7, 4, 0, 0, 0, 0, time.UTC), *parseWireDate(&good))
	assert.Nil(t, parseWireDate(&bad))
	assert.Nil(t, parseWireDate(&empty))
	assert.Nil(t, parseWireDate(nil))
}
