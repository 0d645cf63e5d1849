package scout

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finsight-ai/finsight/internal/extract"
)

// fakeExtractor serves canned results and records the order of fetches.
type fakeExtractor struct {
	results map[string]extract.Result
	icons   map[string]string
	fetched []string
}

func (f *fakeExtractor) Extract(_ context.Context, url string) extract.Result {
	f.fetched = append(f.fetched, url)
	if r, ok := f.results[url]; ok {
		return r
	}
	return extract.Result{URL: url, Status: extract.StatusError, Err: "not found"}
}

func (f *fakeExtractor) FetchIcon(_ context.Context, url string) (string, error) {
	return f.icons[url], nil
}

// fakeSearcher returns a fixed URL list and counts invocations.
type fakeSearcher struct {
	urls  []string
	calls int
}

func (f *fakeSearcher) Search(_ context.Context, _ string, limit int) ([]string, error) {
	f.calls++
	if len(f.urls) > limit {
		return f.urls[:limit], nil
	}
	return f.urls, nil
}

func success(url, content string) extract.Result {
	return extract.Result{URL: url, Status: extract.StatusSuccess, Content: content}
}

func writePreferred(t *testing.T, urls ...string) *PreferredList {
	t.Helper()
	path := filepath.Join(t.TempDir(), "preferred_urls.txt")
	data := ""
	for _, u := range urls {
		data += u + "\n"
	}
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return NewPreferredList(path)
}

func TestGatherContext_PreferredShortCircuit(t *testing.T) {
	extractor := &fakeExtractor{results: map[string]extract.Result{
		"http://curated.example/a": success("http://curated.example/a",
			"Detailed interest rate commentary with plenty of relevant words."),
	}}
	searcher := &fakeSearcher{urls: []string{"http://search.example/1"}}
	prefs := writePreferred(t, "http://curated.example/a")

	o := NewOrchestrator(extractor, searcher, prefs, 5, nil)
	result, err := o.GatherContext(context.Background(), "interest rate commentary")
	require.NoError(t, err)

	require.Len(t, result.Results, 1)
	assert.Equal(t, "http://curated.example/a", result.Results[0].URL)
	assert.Equal(t, []string{"http://curated.example/a"}, result.Sources)
	assert.Equal(t, 0, searcher.calls, "fallback search must not run when a preferred result is relevant")
}

func TestGatherContext_FallbackWhenNoPreferredRelevant(t *testing.T) {
	extractor := &fakeExtractor{results: map[string]extract.Result{
		"http://curated.example/a": success("http://curated.example/a", "cooking recipes only"),
		"http://search.example/1":  success("http://search.example/1", "interest rate outlook for bonds"),
		"http://search.example/2":  success("http://search.example/2", "nothing to see"),
	}}
	searcher := &fakeSearcher{urls: []string{"http://search.example/1", "http://search.example/2"}}
	prefs := writePreferred(t, "http://curated.example/a")

	o := NewOrchestrator(extractor, searcher, prefs, 5, nil)
	result, err := o.GatherContext(context.Background(), "interest rate outlook")
	require.NoError(t, err)

	assert.Equal(t, 1, searcher.calls)
	require.Len(t, result.Results, 1)
	assert.Equal(t, "http://search.example/1", result.Results[0].URL)
}

func TestGatherContext_PreservesCuratedOrder(t *testing.T) {
	content := "interest rate outlook discussed at length here"
	extractor := &fakeExtractor{results: map[string]extract.Result{
		"http://a.example": success("http://a.example", content),
		"http://b.example": success("http://b.example", content),
		"http://c.example": success("http://c.example", content),
	}}
	searcher := &fakeSearcher{}
	prefs := writePreferred(t, "http://a.example", "http://b.example", "http://c.example")

	o := NewOrchestrator(extractor, searcher, prefs, 5, nil)
	result, err := o.GatherContext(context.Background(), "interest rate outlook")
	require.NoError(t, err)

	assert.Equal(t, []string{"http://a.example", "http://b.example", "http://c.example"}, result.Sources)
}

func TestGatherContext_SkipsFailedURLs(t *testing.T) {
	extractor := &fakeExtractor{results: map[string]extract.Result{
		"http://dead.example": {URL: "http://dead.example", Status: extract.StatusError, Err: "timeout after 10s"},
		"http://live.example": success("http://live.example", "interest rate outlook for the quarter"),
	}}
	searcher := &fakeSearcher{}
	prefs := writePreferred(t, "http://dead.example", "http://live.example")

	o := NewOrchestrator(extractor, searcher, prefs, 5, nil)
	result, err := o.GatherContext(context.Background(), "interest rate outlook")
	require.NoError(t, err)

	require.Len(t, result.Results, 1)
	assert.Equal(t, "http://live.example", result.Results[0].URL)
}

func TestGatherContext_TotalFailureYieldsEmptyResult(t *testing.T) {
	extractor := &fakeExtractor{}
	searcher := &fakeSearcher{urls: []string{"http://search.example/1"}}
	prefs := NewPreferredList(filepath.Join(t.TempDir(), "missing.txt"))

	o := NewOrchestrator(extractor, searcher, prefs, 5, nil)
	result, err := o.GatherContext(context.Background(), "anything at all")

	require.NoError(t, err, "no grounding available is not an error")
	assert.True(t, result.Empty())
}

func TestLastSources_ReflectsMostRecentRun(t *testing.T) {
	extractor := &fakeExtractor{
		results: map[string]extract.Result{
			"http://a.example": success("http://a.example", "interest rate outlook here"),
		},
		icons: map[string]string{"http://a.example": "http://a.example/favicon.ico"},
	}
	searcher := &fakeSearcher{}
	prefs := writePreferred(t, "http://a.example")

	o := NewOrchestrator(extractor, searcher, prefs, 5, nil)
	_, err := o.GatherContext(context.Background(), "interest rate outlook")
	require.NoError(t, err)

	sources := o.LastSources(context.Background())
	require.Len(t, sources, 1)
	assert.Equal(t, "http://a.example", sources[0].URL)
	assert.Equal(t, "http://a.example/favicon.ico", sources[0].IconURL)
}

func TestPreferredList_AddAndRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preferred_urls.txt")
	list := NewPreferredList(path)

	urls, err := list.URLs()
	require.NoError(t, err)
	assert.Empty(t, urls, "missing file reads as empty list")

	require.NoError(t, list.Add("http://one.example"))
	require.NoError(t, list.Add("http://two.example"))

	urls, err = list.URLs()
	require.NoError(t, err)
	assert.Equal(t, []string{"http://one.example", "http://two.example"}, urls)
}

func TestPreferredList_IgnoresBlankLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preferred_urls.txt")
	require.NoError(t, os.WriteFile(path, []byte("http://a.example\n\n  \nhttp://b.example\n"), 0o644))

	urls, err := NewPreferredList(path).URLs()
	require.NoError(t, err)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, urls)
}
