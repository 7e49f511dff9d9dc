package trends

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/groovili/gogtrends"
	"go.uber.org/zap"
)

type fakeExplorer struct {
	exploreFn  func(ctx context.Context, r *gogtrends.ExploreRequest, hl string) ([]*gogtrends.ExploreWidget, error)
	timelineFn func(ctx context.Context, w *gogtrends.ExploreWidget, hl string) ([]*gogtrends.Timeline, error)
}

func (f *fakeExplorer) Explore(ctx context.Context, r *gogtrends.ExploreRequest, hl string) ([]*gogtrends.ExploreWidget, error) {
	return f.exploreFn(ctx, r, hl)
}

func (f *fakeExplorer) InterestOverTime(ctx context.Context, w *gogtrends.ExploreWidget, hl string) ([]*gogtrends.Timeline, error) {
	return f.timelineFn(ctx, w, hl)
}

var testWidgets = []*gogtrends.ExploreWidget{
	{ID: "RELATED_QUERIES", Token: "x"},
	{ID: "TIMESERIES", Token: "tok-123"},
}

var testTimeline = []*gogtrends.Timeline{
	{Time: "1760832000", FormattedTime: "Oct 19 - 25, 2025", Value: []int{40}, HasData: []bool{true}},
	{Time: "1761436800", FormattedTime: "Oct 26 - Nov 1, 2025", Value: []int{55}, HasData: []bool{true}},
	{Time: "1762041600", FormattedTime: "Nov 2 - 8, 2025", Value: []int{61}, HasData: []bool{true}},
}

func testClient(t *testing.T, timeline []*gogtrends.Timeline) *Client {
	t.Helper()
	c := NewClient(Options{HL: "en-US", Timeframe: "today 12-m"})
	c.api = &fakeExplorer{
		exploreFn: func(_ context.Context, r *gogtrends.ExploreRequest, hl string) ([]*gogtrends.ExploreWidget, error) {
			if hl != "en-US" {
				t.Errorf("hl = %q", hl)
			}
			if len(r.ComparisonItems) != 1 || r.ComparisonItems[0].Keyword != "Oversized Blazer" || r.ComparisonItems[0].Time != "today 12-m" {
				t.Errorf("explore request = %+v", r.ComparisonItems)
			}
			return testWidgets, nil
		},
		timelineFn: func(_ context.Context, w *gogtrends.ExploreWidget, _ string) ([]*gogtrends.Timeline, error) {
			if w.Token != "tok-123" {
				t.Errorf("widget token = %q", w.Token)
			}
			return timeline, nil
		},
	}
	return c
}

func TestInterestOverTime(t *testing.T) {
	got, err := testClient(t, testTimeline).InterestOverTime(context.Background(), "Oversized Blazer")
	if err != nil {
		t.Fatalf("InterestOverTime() error: %v", err)
	}
	if len(got.Points) != 3 {
		t.Fatalf("len(Points) = %d, want 3", len(got.Points))
	}
	if got.Points[1].Value != 55 || got.Points[1].Label != "Oct 26 - Nov 1, 2025" {
		t.Errorf("Points[1] = %+v", got.Points[1])
	}
	if !got.Points[0].Time.Equal(time.Unix(1760832000, 0)) {
		t.Errorf("Points[0].Time = %v", got.Points[0].Time)
	}
}

func TestInterestOverTime_NoData(t *testing.T) {
	if _, err := testClient(t, nil).InterestOverTime(context.Background(), "Oversized Blazer"); !errors.Is(err, ErrNoData) {
		t.Errorf("error = %v, want ErrNoData", err)
	}

	flat := []*gogtrends.Timeline{{Time: "1760832000", Value: []int{0}, HasData: []bool{false}}}
	if _, err := testClient(t, flat).InterestOverTime(context.Background(), "Oversized Blazer"); !errors.Is(err, ErrNoData) {
		t.Errorf("hasData=false error = %v, want ErrNoData", err)
	}

	c := testClient(t, testTimeline)
	c.api.(*fakeExplorer).exploreFn = func(context.Context, *gogtrends.ExploreRequest, string) ([]*gogtrends.ExploreWidget, error) {
		return []*gogtrends.ExploreWidget{{ID: "GEO_MAP"}}, nil
	}
	if _, err := c.InterestOverTime(context.Background(), "Oversized Blazer"); !errors.Is(err, ErrNoData) {
		t.Errorf("no timeseries widget error = %v, want ErrNoData", err)
	}
}

func TestInterestOverTime_UpstreamError(t *testing.T) {
	c := testClient(t, testTimeline)
	c.api.(*fakeExplorer).exploreFn = func(context.Context, *gogtrends.ExploreRequest, string) ([]*gogtrends.ExploreWidget, error) {
		return nil, errors.New("request data: code = 429")
	}
	_, err := c.InterestOverTime(context.Background(), "x")
	if err == nil || errors.Is(err, ErrNoData) {
		t.Errorf("error = %v, want upstream error", err)
	}
}

func TestInterest_Tail(t *testing.T) {
	in := Interest{Points: []Point{{Value: 1}, {Value: 2}, {Value: 3}, {Value: 4}, {Value: 5}, {Value: 6}}}
	got := in.Tail(5)
	if len(got) != 5 || got[0] != 2 || got[4] != 6 {
		t.Errorf("Tail(5) = %v", got)
	}
	if got := (Interest{Points: []Point{{Value: 9}}}).Tail(5); len(got) != 1 || got[0] != 9 {
		t.Errorf("Tail on short series = %v", got)
	}
}

const rssBody = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:ht="https://trends.google.com/trending/rss">
<channel>
  <title>Daily Search Trends</title>
  <item>
    <title>met gala</title>
    <ht:approx_traffic>500000+</ht:approx_traffic>
    <link>https://trends.google.com/trending/rss?geo=US</link>
    <pubDate>Mon, 19 Oct 2026 07:00:00 -0700</pubDate>
  </item>
  <item>
    <title>barrel jeans</title>
    <ht:approx_traffic>20000+</ht:approx_traffic>
  </item>
</channel>
</rss>`

func TestDaily_Refresh(t *testing.T) {
	var failing atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if failing.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		if r.URL.Path != "/trending/rss" || r.URL.Query().Get("geo") != "US" {
			t.Errorf("request = %s", r.URL)
		}
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(rssBody))
	}))
	defer srv.Close()

	d := NewDaily(srv.Client(), "US", zap.NewNop())
	d.baseURL = srv.URL

	if _, ok := d.Snapshot(); ok {
		t.Fatal("snapshot available before first refresh")
	}
	if err := d.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error: %v", err)
	}
	snap, ok := d.Snapshot()
	if !ok || len(snap.Searches) != 2 {
		t.Fatalf("snapshot = %+v, %v", snap, ok)
	}
	if snap.Searches[0].Title != "met gala" || snap.Searches[0].Traffic != "500000+" {
		t.Errorf("Searches[0] = %+v", snap.Searches[0])
	}
	if snap.Searches[0].Published == nil {
		t.Error("Published not parsed")
	}

	failing.Store(true)
	if err := d.Refresh(context.Background()); err == nil {
		t.Error("expected error on 500")
	}
	if again, _ := d.Snapshot(); len(again.Searches) != 2 {
		t.Error("failed refresh must keep the previous snapshot")
	}
}

func TestDaily_StartStop(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(rssBody))
	}))
	defer srv.Close()

	d := NewDaily(srv.Client(), "US", zap.NewNop())
	d.baseURL = srv.URL
	if err := d.Start(time.Hour); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	defer d.Stop()

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if _, ok := d.Snapshot(); ok {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Error("scheduler did not run the initial refresh")
}
