package web

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/gauthierbraillon/contentmix/internal/aggregator"
	"github.com/gauthierbraillon/contentmix/internal/dashboard"
	"github.com/gauthierbraillon/contentmix/internal/export"
	"github.com/gauthierbraillon/contentmix/internal/session"
	"github.com/gauthierbraillon/contentmix/internal/youtube"
)

var testNow = time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC)

func videoItems(n int) []map[string]interface{} {
	items := make([]map[string]interface{}, 0, n)
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("vid%02d", i)
		items = append(items, map[string]interface{}{
			"id": map[string]interface{}{"kind": "youtube#video", "videoId": id},
			"snippet": map[string]interface{}{
				"publishedAt":  fmt.Sprintf("2023-01-%02dT15:00:00Z", i/3+1),
				"channelId":    "UCstreamlit",
				"title":        "Streamlit video " + id,
				"description":  "Learn Streamlit, fast",
				"channelTitle": "Streamlit",
			},
		})
	}
	return items
}

type testEnv struct {
	site     *httptest.Server
	client   *http.Client
	requests *int32
}

// newTestEnv starts the dashboard in front of a fake YouTube API served by apiHandler.
func newTestEnv(t *testing.T, apiHandler http.HandlerFunc) testEnv {
	t.Helper()

	var requests int32
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		w.Header().Set("Content-Type", "application/json")
		apiHandler(w, r)
	}))
	t.Cleanup(api.Close)

	loc, err := aggregator.LoadLocation("")
	if err != nil {
		t.Fatal(err)
	}
	client := youtube.NewClient("test-api-key", youtube.WithBaseURL(api.URL))
	service := dashboard.NewService(client, aggregator.New(loc), 5)

	srv, err := NewServer(service, session.NewStore(time.Hour), WithClock(func() time.Time { return testNow }))
	if err != nil {
		t.Fatalf("templates should parse: %v", err)
	}
	site := httptest.NewServer(srv.Handler())
	t.Cleanup(site.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatal(err)
	}
	return testEnv{
		site:     site,
		client:   &http.Client{Jar: jar, Timeout: 5 * time.Second},
		requests: &requests,
	}
}

func serveItems(n int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"items": videoItems(n)})
	}
}

func validSearch() url.Values {
	return url.Values{
		"query":       {"streamlit"},
		"max_results": {"50"},
		"order":       {"date"},
		"start_date":  {"2023-01-01"},
		"end_date":    {"2023-05-31"},
	}
}

func (e testEnv) get(t *testing.T, path string) (*http.Response, *goquery.Document) {
	t.Helper()
	resp, err := e.client.Get(e.site.URL + path)
	if err != nil {
		t.Fatalf("GET %s failed: %v", path, err)
	}
	return resp, document(t, resp)
}

func (e testEnv) submit(t *testing.T, form url.Values) (*http.Response, *goquery.Document) {
	t.Helper()
	resp, err := e.client.PostForm(e.site.URL+"/youtube", form)
	if err != nil {
		t.Fatalf("POST /youtube failed: %v", err)
	}
	return resp, document(t, resp)
}

func document(t *testing.T, resp *http.Response) *goquery.Document {
	t.Helper()
	defer resp.Body.Close()
	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		t.Fatalf("response should be HTML: %v", err)
	}
	return doc
}

func TestAC1000_Web_HomeAndPlaceholders(t *testing.T) {
	env := newTestEnv(t, serveItems(1))

	resp, doc := env.get(t, "/")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("home should render, got %d", resp.StatusCode)
	}
	if doc.Find("nav.sidebar a[href='/youtube']").Length() != 1 {
		t.Error("user should see a link to the YouTube page")
	}

	for _, tc := range []struct{ path, platform string }{
		{"/twitter", "Twitter"},
		{"/linkedin", "LinkedIn"},
		{"/medium", "Medium"},
	} {
		t.Run(tc.platform, func(t *testing.T) {
			resp, doc := env.get(t, tc.path)
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("placeholder should render, got %d", resp.StatusCode)
			}
			text := doc.Find("#placeholder").Text()
			if !strings.Contains(text, tc.platform) || !strings.Contains(text, "not implemented") {
				t.Errorf("user should be told %s is not implemented, got %q", tc.platform, text)
			}
		})
	}

	if n := atomic.LoadInt32(env.requests); n != 0 {
		t.Errorf("static pages should not call the API, got %d requests", n)
	}
}

func TestAC1001_Web_FreshVisitorSeesDefaults(t *testing.T) {
	env := newTestEnv(t, serveItems(1))

	_, doc := env.get(t, "/youtube")

	if v, _ := doc.Find("input[name=query]").Attr("value"); v != "'Streamlit'" {
		t.Errorf("query should default to 'Streamlit', got %q", v)
	}
	if v, _ := doc.Find("input[name=max_results]").Attr("value"); v != "50" {
		t.Errorf("max results should default to 50, got %q", v)
	}
	if v, _ := doc.Find("select[name=order] option[selected]").Attr("value"); v != "date" {
		t.Errorf("order should default to date, got %q", v)
	}
	if v, _ := doc.Find("input[name=start_date]").Attr("value"); v != "2023-01-01" {
		t.Errorf("start date should default to 2023-01-01, got %q", v)
	}
	if v, _ := doc.Find("input[name=end_date]").Attr("value"); v != "2023-06-01" {
		t.Errorf("end date should default to today, got %q", v)
	}
	if doc.Find("#gallery").Length() != 0 || doc.Find("#pagination").Length() != 0 {
		t.Error("no results should be shown before a search")
	}
}

func TestAC1002_Web_SubmitShowsResults(t *testing.T) {
	env := newTestEnv(t, serveItems(12))

	resp, doc := env.submit(t, validSearch())

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected results page, got %d", resp.StatusCode)
	}
	if resp.Request.URL.Query().Get("page") != "1" {
		t.Errorf("submission should land on page 1, got %s", resp.Request.URL)
	}
	if got := strings.TrimSpace(doc.Find("#total").Text()); got != "12" {
		t.Errorf("user should see 12 total uploads, got %q", got)
	}
	if n := doc.Find("#chart rect.bar").Length(); n != 4 {
		t.Errorf("user should see one bar per upload day (4), got %d", n)
	}
	if !strings.Contains(doc.Find("#chart h2").Text(), "America/New_York") {
		t.Error("chart should name the timezone used for days")
	}
	if n := doc.Find("#data tbody tr").Length(); n != 12 {
		t.Errorf("table should list all 12 videos, got %d", n)
	}
	if n := doc.Find("#gallery article.video").Length(); n != 5 {
		t.Errorf("gallery should show 5 videos, got %d", n)
	}
	if src, _ := doc.Find("#gallery iframe").First().Attr("src"); src != "https://www.youtube.com/embed/vid00" {
		t.Errorf("first gallery video should embed vid00, got %q", src)
	}
	if creator := doc.Find("#gallery .creator").First().Text(); creator != "Streamlit" {
		t.Errorf("user should see CREATOR Streamlit, got %q", creator)
	}
	if got := doc.Find("#position").Text(); got != "Page 1 of 3" {
		t.Errorf("user should see Page 1 of 3, got %q", got)
	}
	if doc.Find("#prev").Length() != 0 {
		t.Error("previous control should be hidden on page 1")
	}
	if href, _ := doc.Find("#next").Attr("href"); href != "/youtube?page=2" {
		t.Errorf("next control should link to page 2, got %q", href)
	}
}

func TestAC1003_Web_DeepLinkedPagesNeverRefetch(t *testing.T) {
	env := newTestEnv(t, serveItems(12))
	env.submit(t, validSearch())

	testCases := []struct {
		query    string
		position string
		videos   int
		hasPrev  bool
		hasNext  bool
	}{
		{"?page=2", "Page 2 of 3", 5, true, true},
		{"?page=3", "Page 3 of 3", 2, true, false},
		{"?page=99", "Page 3 of 3", 2, true, false},
		{"?page=abc", "Page 1 of 3", 5, false, true},
		{"", "Page 1 of 3", 5, false, true},
	}

	for _, tc := range testCases {
		t.Run(tc.query, func(t *testing.T) {
			_, doc := env.get(t, "/youtube"+tc.query)

			if got := doc.Find("#position").Text(); got != tc.position {
				t.Errorf("user should see %q, got %q", tc.position, got)
			}
			if n := doc.Find("#gallery article.video").Length(); n != tc.videos {
				t.Errorf("gallery should show %d videos, got %d", tc.videos, n)
			}
			if (doc.Find("#prev").Length() == 1) != tc.hasPrev {
				t.Errorf("previous control shown = %v, want %v", !tc.hasPrev, tc.hasPrev)
			}
			if (doc.Find("#next").Length() == 1) != tc.hasNext {
				t.Errorf("next control shown = %v, want %v", !tc.hasNext, tc.hasNext)
			}
		})
	}

	if n := atomic.LoadInt32(env.requests); n != 1 {
		t.Errorf("paging should reuse stored results, got %d API requests", n)
	}
}

func TestAC1004_Web_InvalidFormNeverCallsAPI(t *testing.T) {
	env := newTestEnv(t, serveItems(12))

	form := validSearch()
	form.Set("start_date", "2023-05-31")
	form.Set("end_date", "2023-01-01")
	resp, doc := env.submit(t, form)

	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("expected 422 for an invalid date range, got %d", resp.StatusCode)
	}
	if !strings.Contains(doc.Find("#notice").Text(), "Invalid date range") {
		t.Errorf("user should see the date range message, got %q", doc.Find("#notice").Text())
	}
	if v, _ := doc.Find("input[name=start_date]").Attr("value"); v != "2023-05-31" {
		t.Errorf("form should keep what the user entered, got %q", v)
	}
	if n := atomic.LoadInt32(env.requests); n != 0 {
		t.Errorf("invalid searches must not reach the API, got %d requests", n)
	}
}

func TestAC1005_Web_APIErrorsRenderInline(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"code":403,"message":"The request cannot be completed because you have exceeded your quota.","errors":[{"reason":"quotaExceeded"}]}}`))
	})

	resp, doc := env.submit(t, validSearch())

	if resp.StatusCode != http.StatusOK {
		t.Errorf("API failures should render the page, got %d", resp.StatusCode)
	}
	notice := doc.Find("#notice")
	if !strings.Contains(notice.Text(), "rate limit exceeded") {
		t.Errorf("user should see the quota message, got %q", notice.Text())
	}
	if !notice.HasClass("notice-error") {
		t.Error("API failures should be shown as errors")
	}
	if strings.Contains(doc.Text(), "test-api-key") {
		t.Error("API key must never be rendered")
	}
	if doc.Find("#gallery").Length() != 0 {
		t.Error("no gallery should be shown after a failed search")
	}
}

func TestAC1006_Web_EmptyResultShowsNotice(t *testing.T) {
	env := newTestEnv(t, serveItems(0))

	_, doc := env.submit(t, validSearch())

	notice := doc.Find("#notice")
	if !strings.Contains(notice.Text(), "No videos were found") {
		t.Errorf("user should be told nothing was found, got %q", notice.Text())
	}
	if !notice.HasClass("notice-info") {
		t.Error("an empty result is informational, not an error")
	}
	if doc.Find("#metrics").Length() != 0 || doc.Find("#pagination").Length() != 0 {
		t.Error("no metrics or pagination should be shown for an empty result")
	}
}

func TestAC1007_Web_ExportsAndReset(t *testing.T) {
	env := newTestEnv(t, serveItems(12))
	env.submit(t, validSearch())

	resp, err := env.client.Get(env.site.URL + "/youtube/export.csv")
	if err != nil {
		t.Fatal(err)
	}
	rows, err := csv.NewReader(resp.Body).ReadAll()
	resp.Body.Close()
	if err != nil {
		t.Fatalf("export should be valid CSV: %v", err)
	}
	if !strings.Contains(resp.Header.Get("Content-Disposition"), export.CSVFilename) {
		t.Errorf("download should be named %s, got %q", export.CSVFilename, resp.Header.Get("Content-Disposition"))
	}
	if len(rows) != 13 {
		t.Errorf("CSV should have a header and 12 rows, got %d", len(rows))
	}

	resp, err = env.client.Get(env.site.URL + "/youtube/feed.atom")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || !strings.HasPrefix(resp.Header.Get("Content-Type"), "application/atom+xml") {
		t.Errorf("feed should be served as Atom, got %d %s", resp.StatusCode, resp.Header.Get("Content-Type"))
	}

	resp, err = env.client.PostForm(env.site.URL+"/youtube/reset", nil)
	if err != nil {
		t.Fatal(err)
	}
	doc := document(t, resp)
	if doc.Find("#gallery").Length() != 0 {
		t.Error("results should be gone after reset")
	}

	resp, err = env.client.Get(env.site.URL + "/youtube/export.csv")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("export without results should be 404, got %d", resp.StatusCode)
	}
}

func TestAC1008_Web_SessionsAreIsolated(t *testing.T) {
	env := newTestEnv(t, serveItems(12))
	env.submit(t, validSearch())

	other := &http.Client{Timeout: 5 * time.Second}
	resp, err := other.Get(env.site.URL + "/youtube?page=2")
	if err != nil {
		t.Fatal(err)
	}
	doc := document(t, resp)
	if doc.Find("#gallery").Length() != 0 {
		t.Error("another browser must not see this session's results")
	}
}
