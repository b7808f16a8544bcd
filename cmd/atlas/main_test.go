package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ParasiteAtlas/internal/catalog"
)

func fakeCatalog(t *testing.T) *httptest.Server {
	t.Helper()
	giardia := catalog.Entry{
		ID:             "giardia-lamblia",
		Name:           "Giardia lamblia",
		Category:       catalog.CategoryProtozoa,
		Symptoms:       []string{"diarrhea"},
		Habitat:        "Found in contaminated water regions",
		Lifecycle:      "Direct life cycle",
		ScientificName: "Giardia lamblia",
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/parasites/search", func(w http.ResponseWriter, r *http.Request) {
		out := []catalog.Entry{}
		if c := r.URL.Query().Get("category"); c == "" || c == catalog.CategoryProtozoa {
			out = append(out, giardia)
		}
		_ = json.NewEncoder(w).Encode(out)
	})
	mux.HandleFunc("/parasites/categories", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(catalog.Categories())
	})
	mux.HandleFunc("/parasites/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") == giardia.ID {
			_ = json.NewEncoder(w).Encode(giardia)
			return
		}
		_, _ = w.Write([]byte("null\n"))
	})
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSearchCmd(t *testing.T) {
	ts := fakeCatalog(t)

	out, err := run(t, "--server", ts.URL, "search", "giardia")
	require.NoError(t, err)
	assert.Contains(t, out, "giardia-lamblia")
	assert.Contains(t, out, "1 Species")

	out, err = run(t, "--server", ts.URL, "search", "giardia", "--category", catalog.CategoryVirus)
	require.NoError(t, err)
	assert.Contains(t, out, "No parasites found")
}

func TestSearchCmd_JSON(t *testing.T) {
	ts := fakeCatalog(t)

	out, err := run(t, "--server", ts.URL, "--json", "search")
	require.NoError(t, err)

	var got []catalog.Entry
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "giardia-lamblia", got[0].ID)
}

func TestGetCmd(t *testing.T) {
	ts := fakeCatalog(t)

	out, err := run(t, "--server", ts.URL, "get", "giardia-lamblia")
	require.NoError(t, err)
	assert.Contains(t, out, "Giardia lamblia (Protozoa)")
	assert.Contains(t, out, "Direct life cycle")

	_, err = run(t, "--server", ts.URL, "get", "nothing")
	require.Error(t, err)

	out, err = run(t, "--server", ts.URL, "--json", "get", "nothing")
	require.NoError(t, err)
	assert.Equal(t, "null\n", out)
}

func TestCategoriesCmd(t *testing.T) {
	ts := fakeCatalog(t)

	out, err := run(t, "--server", ts.URL, "categories")
	require.NoError(t, err)
	assert.Equal(t, "Protozoa\nNematode\nBacteria\nVirus\nFungus\nHelminth\n", out)
}

func TestBadServer(t *testing.T) {
	_, err := run(t, "--server", "not a url", "categories")
	require.Error(t, err)
}
