package client

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const plasmodium = `{"id":"plasmodium-falciparum","name":"Plasmodium falciparum","category":"Protozoa",
"description":"The deadliest species of malaria parasite.","image":"https://img.example/pf.png",
"symptoms":["High fever","Chills"],"habitat":"Tropical and subtropical regions",
"lifecycle":"Transmitted by Anopheles mosquitoes","scientificName":"Plasmodium falciparum","prevalence":"Endemic"}`

func newServer(t *testing.T, hits *atomic.Int64) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/parasites/search", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, err := uuid.Parse(r.Header.Get("X-Request-Id"))
		assert.NoError(t, err, "every call carries a request id")

		if r.URL.Query().Has("category") && r.URL.Query().Get("category") != "Protozoa" {
			_, _ = io.WriteString(w, `[]`)
			return
		}
		_, _ = io.WriteString(w, "["+plasmodium+"]")
	})
	mux.HandleFunc("/parasites/categories", func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		_, _ = io.WriteString(w, `["Protozoa","Nematode","Bacteria","Virus","Fungus","Helminth"]`)
	})
	mux.HandleFunc("/parasites/plasmodium-falciparum", func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		_, _ = io.WriteString(w, plasmodium)
	})
	mux.HandleFunc("/parasites/", func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		_, _ = io.WriteString(w, "null\n")
	})

	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts
}

func newClient(t *testing.T, base string) *Client {
	t.Helper()
	c, err := New(base, time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestClient_SearchIsCachedPerKey(t *testing.T) {
	var hits atomic.Int64
	c := newClient(t, newServer(t, &hits).URL)
	ctx := context.Background()

	got, err := c.Search(ctx, "malaria", "")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "plasmodium-falciparum", got[0].ID)
	assert.Equal(t, []string{"High fever", "Chills"}, got[0].Symptoms)

	_, err = c.Search(ctx, "malaria", "all")
	require.NoError(t, err)
	assert.EqualValues(t, 1, hits.Load(), `"all" and no category are the same request`)

	got, err = c.Search(ctx, "malaria", "Virus")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.EqualValues(t, 2, hits.Load())
}

func TestClient_Categories(t *testing.T) {
	var hits atomic.Int64
	c := newClient(t, newServer(t, &hits).URL)

	for i := 0; i < 3; i++ {
		cats, err := c.Categories(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"Protozoa", "Nematode", "Bacteria", "Virus", "Fungus", "Helminth"}, cats)
	}
	assert.EqualValues(t, 1, hits.Load())
}

func TestClient_Get(t *testing.T) {
	var hits atomic.Int64
	c := newClient(t, newServer(t, &hits).URL)

	e, found, err := c.Get(context.Background(), "plasmodium-falciparum")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Endemic", e.Prevalence)

	_, found, err = c.Get(context.Background(), "nothing-here")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestClient_Errors(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer ts.Close()

	c := newClient(t, ts.URL)
	_, err := c.Search(context.Background(), "x", "")
	assert.ErrorIs(t, err, ErrBadStatus)

	ts.Close()
	_, err = c.Categories(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestClient_FailuresAreNotCached(t *testing.T) {
	var fail atomic.Bool
	fail.Store(true)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if fail.Load() {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = io.WriteString(w, `[]`)
	}))
	defer ts.Close()

	c := newClient(t, ts.URL)
	_, err := c.Search(context.Background(), "x", "")
	require.Error(t, err)

	fail.Store(false)
	got, err := c.Search(context.Background(), "x", "")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestNew_RejectsBadURL(t *testing.T) {
	_, err := New("localhost:3002", 0)
	assert.Error(t, err)
}
