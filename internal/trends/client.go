// Package trends reads search-interest data from Google Trends.
package trends

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/groovili/gogtrends"
)

// ErrNoData means the keyword has no interest data for the timeframe.
var ErrNoData = errors.New("no trend data")

const timeseriesWidget = "TIMESERIES"

type Options struct {
	HL        string
	Geo       string
	Timeframe string
}

// explorer is the part of gogtrends the client calls.
type explorer interface {
	Explore(ctx context.Context, r *gogtrends.ExploreRequest, hl string) ([]*gogtrends.ExploreWidget, error)
	InterestOverTime(ctx context.Context, w *gogtrends.ExploreWidget, hl string) ([]*gogtrends.Timeline, error)
}

type gtrends struct{}

func (gtrends) Explore(ctx context.Context, r *gogtrends.ExploreRequest, hl string) ([]*gogtrends.ExploreWidget, error) {
	return gogtrends.Explore(ctx, r, hl)
}

func (gtrends) InterestOverTime(ctx context.Context, w *gogtrends.ExploreWidget, hl string) ([]*gogtrends.Timeline, error) {
	return gogtrends.InterestOverTime(ctx, w, hl)
}

// Client is an interest-over-time client for the unofficial Trends web API.
type Client struct {
	api  explorer
	opts Options
}

func NewClient(opts Options) *Client {
	return &Client{api: gtrends{}, opts: opts}
}

type Point struct {
	Time  time.Time `json:"time"`
	Label string    `json:"label"`
	Value int       `json:"value"`
}

type Interest struct {
	Keyword string  `json:"keyword"`
	Points  []Point `json:"points"`
}

// Tail returns the last n values, oldest first.
func (i Interest) Tail(n int) []int {
	if n > len(i.Points) {
		n = len(i.Points)
	}
	out := make([]int, 0, n)
	for _, p := range i.Points[len(i.Points)-n:] {
		out = append(out, p.Value)
	}
	return out
}

// InterestOverTime fetches relative interest (0-100) for keyword over the configured timeframe.
func (c *Client) InterestOverTime(ctx context.Context, keyword string) (Interest, error) {
	widgets, err := c.api.Explore(ctx, &gogtrends.ExploreRequest{
		ComparisonItems: []*gogtrends.ComparisonItem{
			{Keyword: keyword, Geo: c.opts.Geo, Time: c.opts.Timeframe},
		},
	}, c.opts.HL)
	if err != nil {
		return Interest{}, fmt.Errorf("explore: %w", err)
	}

	var widget *gogtrends.ExploreWidget
	for _, w := range widgets {
		if w != nil && w.ID == timeseriesWidget {
			widget = w
			break
		}
	}
	if widget == nil {
		return Interest{}, ErrNoData
	}

	timeline, err := c.api.InterestOverTime(ctx, widget, c.opts.HL)
	if err != nil {
		return Interest{}, fmt.Errorf("interest over time: %w", err)
	}

	out := Interest{Keyword: keyword}
	hasData := false
	for _, d := range timeline {
		if d == nil || len(d.Value) == 0 {
			continue
		}
		sec, _ := strconv.ParseInt(d.Time, 10, 64)
		out.Points = append(out.Points, Point{
			Time:  time.Unix(sec, 0).UTC(),
			Label: d.FormattedTime,
			Value: d.Value[0],
		})
		if len(d.HasData) > 0 && d.HasData[0] {
			hasData = true
		}
	}
	if len(out.Points) == 0 || !hasData {
		return Interest{}, ErrNoData
	}
	return out, nil
}
