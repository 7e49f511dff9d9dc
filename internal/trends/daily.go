package trends

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/mmcdole/gofeed"
	"go.uber.org/zap"
)

const DefaultBaseURL = "https://trends.google.com"

// The RSS feed is the daily trending source that still answers; the JSON dailytrends
// endpoint behind gogtrends.Daily has been retired.
const (
	dailyFeedPath   = "/trending/rss"
	maxResponseSize = 4 << 20
)

type TrendingSearch struct {
	Title     string     `json:"title"`
	Traffic   string     `json:"approx_traffic,omitempty"`
	Link      string     `json:"link,omitempty"`
	Published *time.Time `json:"published,omitempty"`
}

type Snapshot struct {
	Geo       string           `json:"geo"`
	FetchedAt time.Time        `json:"fetched_at"`
	Searches  []TrendingSearch `json:"searches"`
}

// Daily keeps the latest trending-searches snapshot, refreshed on a schedule.
type Daily struct {
	httpClient *http.Client
	baseURL    string
	geo        string
	logger     *zap.Logger

	mu       sync.RWMutex
	snapshot Snapshot
	ok       bool

	scheduler gocron.Scheduler
}

func NewDaily(httpClient *http.Client, geo string, logger *zap.Logger) *Daily {
	return &Daily{httpClient: httpClient, baseURL: DefaultBaseURL, geo: geo, logger: logger}
}

// Refresh fetches the feed and replaces the snapshot. The previous snapshot survives a failed refresh.
func (d *Daily) Refresh(ctx context.Context) error {
	u := d.baseURL + dailyFeedPath + "?geo=" + url.QueryEscape(d.geo)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	resp, err := d.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetch trending feed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch trending feed: unexpected status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return err
	}

	feed, err := gofeed.NewParser().ParseString(string(body))
	if err != nil {
		return fmt.Errorf("parse trending feed: %w", err)
	}

	snap := Snapshot{Geo: d.geo, FetchedAt: time.Now().UTC(), Searches: make([]TrendingSearch, 0, len(feed.Items))}
	for _, item := range feed.Items {
		snap.Searches = append(snap.Searches, TrendingSearch{
			Title:     item.Title,
			Traffic:   approxTraffic(item),
			Link:      item.Link,
			Published: item.PublishedParsed,
		})
	}

	d.mu.Lock()
	d.snapshot, d.ok = snap, true
	d.mu.Unlock()
	return nil
}

func approxTraffic(item *gofeed.Item) string {
	ext, ok := item.Extensions["ht"]["approx_traffic"]
	if !ok || len(ext) == 0 {
		return ""
	}
	return ext[0].Value
}

// Snapshot returns the latest snapshot; false until the first successful refresh.
func (d *Daily) Snapshot() (Snapshot, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.snapshot, d.ok
}

// Start refreshes immediately and then every interval.
func (d *Daily) Start(interval time.Duration) error {
	s, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		return fmt.Errorf("create scheduler: %w", err)
	}
	_, err = s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			if err := d.Refresh(ctx); err != nil {
				d.logger.Warn("trending searches refresh failed", zap.String("geo", d.geo), zap.Error(err))
				return
			}
			d.logger.Debug("trending searches refreshed", zap.String("geo", d.geo))
		}),
		gocron.WithName("daily-trends"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return fmt.Errorf("schedule trending refresh: %w", err)
	}
	s.Start()
	d.scheduler = s
	return nil
}

func (d *Daily) Stop() error {
	if d.scheduler == nil {
		return nil
	}
	if err := d.scheduler.Shutdown(); err != nil && !errors.Is(err, gocron.ErrStopSchedulerTimedOut) {
		return err
	}
	return nil
}
