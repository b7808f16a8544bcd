package catalog_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ParasiteAtlas/internal/cache"
	"ParasiteAtlas/internal/catalog"
	"ParasiteAtlas/internal/wiki"
)

var summaries = map[string]string{
	"Malaria": `{"type":"standard","title":"Malaria","extract":"Malaria is a mosquito-borne infectious disease caused by single-celled protozoan parasites of the genus Plasmodium. It is widespread in tropical and subtropical regions. Symptoms include fever, fatigue, vomiting and headaches."}`,
	"Plasmodium falciparum": `{"type":"standard","title":"Plasmodium falciparum","extract":"Plasmodium falciparum is a unicellular protozoan parasite of humans.","thumbnail":{"source":"https://upload.example/pf.png"}}`,
	"Malaria vaccine": `{"type":"standard","title":"Malaria vaccine","extract":"A malaria vaccine is a vaccine used to prevent malaria."}`,
	"Malaria (disambiguation)": `{"type":"disambiguation","title":"Malaria (disambiguation)","extract":"Malaria may refer to"}`,
}

// newWikiTS fakes the encyclopedia. Every search returns all known titles.
func newWikiTS(t *testing.T, calls *atomic.Int64) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/w/api.php", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = io.WriteString(w, `{"query":{"search":[
			{"title":"Malaria"},{"title":"Plasmodium falciparum"},
			{"title":"Malaria vaccine"},{"title":"Malaria (disambiguation)"},{"title":"Missing page"}
		]}}`)
	})
	mux.HandleFunc("/api/rest_v1/page/summary/", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		title, _ := url.PathUnescape(strings.TrimPrefix(r.URL.EscapedPath(), "/api/rest_v1/page/summary/"))
		body, ok := summaries[title]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"type":"https://mediawiki.org/wiki/HyperSwitch/errors/not_found"}`)
			return
		}
		_, _ = io.WriteString(w, body)
	})

	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts
}

type deps struct {
	wikiURL string
	reg     *prometheus.Registry
	limit   int
}

func newCatalogTS(t *testing.T, d deps) *httptest.Server {
	t.Helper()

	store, err := cache.NewRistretto(cache.DefaultMaxItems)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	svc := catalog.NewService(catalog.ServiceDeps{
		Upstream: wiki.NewClient(d.wikiURL, "atlas-test", 2*time.Second),
		Cache:    store,
		Log:      zap.NewNop(),
		Metrics:  metricsFor(d.reg),
		TTL:      cache.DefaultTTL,
	})

	h := catalog.NewHandler(&catalog.Server{Catalog: svc, Log: zap.NewNop()}, catalog.HTTPDeps{
		Log:             zap.NewNop(),
		Service:         "catalog",
		Registry:        d.reg,
		MetricsEnabled:  d.reg != nil,
		MetricsToken:    "scrape-token",
		SearchPerMinute: d.limit,
	})

	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return ts
}

func metricsFor(reg *prometheus.Registry) *catalog.Metrics {
	if reg == nil {
		return nil
	}
	return catalog.NewMetrics(reg)
}

func get(t *testing.T, u string) (*http.Response, []byte) {
	t.Helper()

	resp, err := http.Get(u)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func TestCatalog_SearchMalaria(t *testing.T) {
	var calls atomic.Int64
	wikiTS := newWikiTS(t, &calls)
	ts := newCatalogTS(t, deps{wikiURL: wikiTS.URL})

	resp, raw := get(t, ts.URL+"/parasites/search?q=malaria")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var got []catalog.Entry
	require.NoError(t, json.Unmarshal(raw, &got))
	require.Len(t, got, 3, "disambiguation and missing pages are dropped")

	malaria := got[0]
	assert.Equal(t, "malaria", malaria.ID)
	assert.Equal(t, catalog.CategoryProtozoa, malaria.Category)
	assert.True(t, strings.HasPrefix(malaria.Habitat, "Found in tropical regions"))
	assert.Equal(t, "Transmitted by mosquitoes", malaria.Lifecycle)
	assert.Equal(t, []string{"fever", "vomiting", "headache", "fatigue"}, malaria.Symptoms)
	assert.Equal(t, "https://upload.example/pf.png", got[1].Image)
	assert.Equal(t, catalog.CategoryMicroorganism, got[2].Category)

	before := calls.Load()
	resp2, raw2 := get(t, ts.URL+"/parasites/search?q=malaria")
	require.Equal(t, http.StatusOK, resp2.StatusCode)
	assert.Equal(t, raw, raw2, "cache hit is byte identical")
	assert.Equal(t, before, calls.Load(), "cache hit does not call upstream")
}

func TestCatalog_SearchWithCategory(t *testing.T) {
	var calls atomic.Int64
	ts := newCatalogTS(t, deps{wikiURL: newWikiTS(t, &calls).URL})

	_, raw := get(t, ts.URL+"/parasites/search?q=malaria&category=Microorganism")

	var got []catalog.Entry
	require.NoError(t, json.Unmarshal(raw, &got))
	require.Len(t, got, 1)
	assert.Equal(t, "malaria-vaccine", got[0].ID)
}

func TestCatalog_ListIsEmptyQuerySearch(t *testing.T) {
	var calls atomic.Int64
	ts := newCatalogTS(t, deps{wikiURL: newWikiTS(t, &calls).URL})

	_, raw := get(t, ts.URL+"/parasites?category=Protozoa")

	var got []catalog.Entry
	require.NoError(t, json.Unmarshal(raw, &got))
	require.Len(t, got, 2)
	for _, e := range got {
		assert.Equal(t, catalog.CategoryProtozoa, e.Category)
	}
}

func TestCatalog_UpstreamDownServesFallback(t *testing.T) {
	dead := httptest.NewServer(http.NotFoundHandler())
	deadURL := dead.URL
	dead.Close()

	ts := newCatalogTS(t, deps{wikiURL: deadURL})

	resp, raw := get(t, ts.URL+"/parasites/search?q=malaria")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got []catalog.Entry
	require.NoError(t, json.Unmarshal(raw, &got))
	require.Len(t, got, 1)
	assert.Equal(t, "plasmodium-falciparum", got[0].ID)
	assert.Equal(t, catalog.CategoryProtozoa, got[0].Category)
}

func TestCatalog_GetByID(t *testing.T) {
	var calls atomic.Int64
	ts := newCatalogTS(t, deps{wikiURL: newWikiTS(t, &calls).URL})

	resp, raw := get(t, ts.URL+"/parasites/Plasmodium%20falciparum")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var e catalog.Entry
	require.NoError(t, json.Unmarshal(raw, &e))
	assert.Equal(t, "plasmodium-falciparum", e.ID)
	assert.Equal(t, "Plasmodium falciparum", e.ScientificName)
}

func TestCatalog_GetByIDAbsentIsNull(t *testing.T) {
	var calls atomic.Int64
	ts := newCatalogTS(t, deps{wikiURL: newWikiTS(t, &calls).URL})

	for _, id := range []string{"no-such-thing", "Malaria%20(disambiguation)"} {
		resp, raw := get(t, ts.URL+"/parasites/"+id)
		assert.Equal(t, http.StatusOK, resp.StatusCode, id)
		assert.JSONEq(t, "null", string(raw), id)
	}
}

func TestCatalog_Categories(t *testing.T) {
	var calls atomic.Int64
	ts := newCatalogTS(t, deps{wikiURL: newWikiTS(t, &calls).URL})

	_, raw := get(t, ts.URL+"/parasites/categories")
	assert.JSONEq(t, `["Protozoa","Nematode","Bacteria","Virus","Fungus","Helminth"]`, string(raw))
	assert.Zero(t, calls.Load())
}

func TestCatalog_HealthAndReady(t *testing.T) {
	var calls atomic.Int64
	ts := newCatalogTS(t, deps{wikiURL: newWikiTS(t, &calls).URL})

	resp, _ := get(t, ts.URL+"/healthz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = get(t, ts.URL+"/readyz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCatalog_MetricsRequireToken(t *testing.T) {
	var calls atomic.Int64
	ts := newCatalogTS(t, deps{wikiURL: newWikiTS(t, &calls).URL, reg: prometheus.NewRegistry()})

	get(t, ts.URL+"/parasites/search?q=malaria")
	get(t, ts.URL+"/parasites/search?q=malaria")

	resp, _ := get(t, ts.URL+"/metrics")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/metrics", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer scrape-token")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := string(raw)
	assert.Contains(t, body, `catalog_cache_lookups_total{op="search",result="hit"} 1`)
	assert.Contains(t, body, `catalog_cache_lookups_total{op="search",result="miss"} 1`)
	assert.Contains(t, body, `http_requests_total{method="GET",path="/parasites/search",service="catalog",status="200"} 2`)
}

func TestCatalog_SearchRateLimited(t *testing.T) {
	var calls atomic.Int64
	ts := newCatalogTS(t, deps{wikiURL: newWikiTS(t, &calls).URL, limit: 1})

	resp, _ := get(t, ts.URL+"/parasites/search?q=malaria")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = get(t, ts.URL+"/parasites/search?q=malaria")
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)

	resp, _ = get(t, ts.URL+"/parasites/categories")
	assert.Equal(t, http.StatusOK, resp.StatusCode, "categories are not throttled")
}
