package news

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"go.uber.org/zap"

	"github.com/wesellis/WeatherStar-4000-Python/internal/cache"
	"github.com/wesellis/WeatherStar-4000-Python/internal/common"
	"github.com/wesellis/WeatherStar-4000-Python/internal/weather"
)

const (
	DefaultRSSBaseURL = "https://news.google.com/rss/search"
	rssMaxAge         = 30 * time.Minute
	maxTitleLen       = 100
	minLocalItems     = 3
)

// LocalSource builds the local news feed: active alerts first, then search
// results for the city from an RSS endpoint, falling back to generic
// headlines when too few are found.
type LocalSource struct {
	baseURL string
	parser  *gofeed.Parser
	cache   *cache.Cache[[]weather.Headline]
	log     *zap.SugaredLogger
}

// LocalOption configures a LocalSource.
type LocalOption func(*LocalSource)

// WithRSSBaseURL overrides the search endpoint.
func WithRSSBaseURL(u string) LocalOption {
	return func(s *LocalSource) { s.baseURL = u }
}

// WithRSSClient overrides the HTTP client used for feed requests.
func WithRSSClient(hc *http.Client) LocalOption {
	return func(s *LocalSource) { s.parser.Client = hc }
}

// NewLocalSource creates a LocalSource.
func NewLocalSource(userAgent string, log *zap.SugaredLogger, opts ...LocalOption) *LocalSource {
	p := gofeed.NewParser()
	p.UserAgent = userAgent
	p.Client = &http.Client{Timeout: 5 * time.Second}

	s := &LocalSource{
		baseURL: DefaultRSSBaseURL,
		parser:  p,
		cache:   cache.New[[]weather.Headline](),
		log:     log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *LocalSource) Feed() weather.Feed { return weather.FeedLocal }

// Headlines never reports "no data"; the fallback list always applies.
func (s *LocalSource) Headlines(ctx context.Context, loc weather.Location, alerts []weather.Alert) ([]weather.Headline, bool) {
	out := AlertHeadlines(alerts)

	query := loc.Label() + " news"
	items, err := s.cache.GetOrFetch(query, rssMaxAge, func() ([]weather.Headline, error) {
		return s.search(ctx, query)
	})
	if err != nil {
		s.log.Warnw("local news feed unavailable", "query", query, "error", err)
		if cached, _, ok := s.cache.Peek(query); ok {
			items = cached
		}
	}
	out = append(out, items...)

	if len(out) < minLocalItems {
		out = append(out, Fallback(loc.City)...)
	}
	if len(out) > MaxHeadlines {
		out = out[:MaxHeadlines]
	}
	return out, true
}

func (s *LocalSource) search(ctx context.Context, query string) ([]weather.Headline, error) {
	v := url.Values{}
	v.Set("q", query)
	v.Set("hl", "en-US")
	v.Set("gl", "US")
	v.Set("ceid", "US:en")

	feed, err := s.parser.ParseURLWithContext(s.baseURL+"?"+v.Encode(), ctx)
	if err != nil {
		return nil, err
	}

	var out []weather.Headline
	for _, item := range feed.Items {
		if len(out) == 10 {
			break
		}
		title := strings.TrimSpace(item.Title)
		if title == "" {
			continue
		}
		// Search results end in " - Publisher".
		if i := strings.LastIndex(title, " - "); i > 0 {
			title = title[:i]
		}
		if !common.HasAnyPrefix(title, "Breaking:", "Alert:", "Emergency:", "Local:") {
			title = "Local: " + title
		}
		title = common.Truncate(title, maxTitleLen)
		h := weather.Headline{Text: title}
		if item.Link != "" {
			h.Link = link(item.Link)
		}
		out = append(out, h)
	}
	return out, nil
}
