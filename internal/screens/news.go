package screens

import (
	"strconv"
	"strings"

	"github.com/wesellis/WeatherStar-4000-Python/internal/anim"
	"github.com/wesellis/WeatherStar-4000-Python/internal/common"
	"github.com/wesellis/WeatherStar-4000-Python/internal/news"
	"github.com/wesellis/WeatherStar-4000-Python/internal/pages"
	"github.com/wesellis/WeatherStar-4000-Python/internal/weather"
)

const (
	newsClipTop    = 100
	newsClipBottom = 398
	newsLineHeight = 28
	newsSpacing    = 15
	newsWrapWidth  = 470
	newsNumberX    = 65
	newsTextX      = 95
	newsMaxItems   = 20
	newsStart      = 200
	newsRestart    = 440
	newsRate       = -15.0 // px/s
)

// MSNNews draws the top stories feed.
func MSNNews(ctx *pages.Context) {
	header(ctx, "MSN", "Top Stories")
	headlines(ctx, weather.FeedMSN)
}

// RedditNews draws the Reddit headline feed.
func RedditNews(ctx *pages.Context) {
	header(ctx, "Reddit", "Headlines")
	headlines(ctx, weather.FeedReddit)
}

// LocalNews draws alerts and local headlines for the location.
func LocalNews(ctx *pages.Context) {
	title := "Local News"
	if ctx.Snapshot != nil && ctx.Snapshot.Location.City != "" {
		title = common.Truncate(ctx.Snapshot.Location.City, 18)
	}
	header(ctx, title, "News")
	headlines(ctx, weather.FeedLocal)
}

type laidOut struct {
	headline weather.Headline
	lines    []string
}

func layoutHeadlines(c pages.Canvas, items []weather.Headline) ([]laidOut, int) {
	if len(items) > newsMaxItems {
		items = items[:newsMaxItems]
	}
	measure := func(s string) int { return c.Measure(s, pages.FontSmall) }
	out := make([]laidOut, 0, len(items))
	height := 0
	for _, h := range items {
		lines := common.WrapWords(h.Text, newsWrapWidth, measure)
		if len(lines) == 0 {
			lines = []string{""}
		}
		out = append(out, laidOut{headline: h, lines: lines})
		height += len(lines)*newsLineHeight + newsSpacing
	}
	return out, height
}

// headlines scrolls the feed upwards inside the clip area and restarts it
// below the fold once the last item has passed the top.
func headlines(ctx *pages.Context, feed weather.Feed) {
	c := ctx.Canvas
	var items []weather.Headline
	if ctx.Snapshot != nil {
		items = ctx.Snapshot.Headlines[feed]
	}
	if len(items) == 0 {
		unavailable(ctx, "NO HEADLINES AVAILABLE")
		return
	}

	laid, height := layoutHeadlines(c, items)
	y := int(ctx.Anim.Scroll("headlines",
		anim.Scroller{Offset: newsStart, Rate: newsRate, Restart: newsRestart},
		float64(newsClipTop-height), pages.Height))

	c.Clip(rect(55, newsClipTop, 530, newsClipBottom-newsClipTop), func() {
		for i, item := range laid {
			blockHeight := len(item.lines) * newsLineHeight
			if y > -200 && y < 500 {
				c.Text(strconv.Itoa(i+1)+".", newsNumberX, y, pages.FontNormal, pages.Yellow, pages.AlignLeft)
				if item.headline.Link != nil && y > newsClipTop && y < newsClipBottom {
					c.Link(rect(newsNumberX, y, 520, blockHeight), *item.headline.Link)
				}
				lineY := y
				for _, line := range item.lines {
					if lineY > newsClipTop-5 && lineY < newsClipBottom {
						drawHeadlineLine(c, feed, line, lineY)
					}
					lineY += newsLineHeight
				}
			}
			y += blockHeight + newsSpacing
		}
	})

	centered(c, "Updated: "+clock(ctx.Now), pages.Width/2, 440, pages.FontSmall, pages.Yellow)
}

// drawHeadlineLine colors subreddit names and tags on Reddit lines and the
// category prefix on MSN and local lines.
func drawHeadlineLine(c pages.Canvas, feed weather.Feed, line string, y int) {
	switch feed {
	case weather.FeedReddit:
		if !strings.Contains(line, "r/") {
			break
		}
		x := newsTextX
		for _, part := range strings.Fields(line) {
			col := pages.White
			switch {
			case common.HasAnyPrefix(part, "r/", "/r/"):
				col = pages.Cyan
			case strings.HasPrefix(part, "[") && strings.HasSuffix(part, "]"):
				col = pages.Yellow
			}
			c.Text(part, x, y, pages.FontSmall, col, pages.AlignLeft)
			x += c.Measure(part, pages.FontSmall) + 5
		}
		return
	case weather.FeedLocal, weather.FeedMSN:
		category, _, ok := news.Category(line)
		if !ok {
			break
		}
		col := pages.Cyan
		switch {
		case feed == weather.FeedLocal && news.IsUrgent(category):
			col = pages.Red
		case feed == weather.FeedMSN && category == "BREAKING":
			col = pages.Red
		case feed == weather.FeedMSN && category == "UPDATE":
			col = pages.Yellow
		}
		prefix := category + ":"
		c.Text(prefix, newsTextX, y, pages.FontSmall, col, pages.AlignLeft)
		rest := line[len(prefix):]
		c.Text(rest, newsTextX+c.Measure(prefix, pages.FontSmall), y, pages.FontSmall, pages.White, pages.AlignLeft)
		return
	}
	c.Text(line, newsTextX, y, pages.FontSmall, pages.White, pages.AlignLeft)
}
