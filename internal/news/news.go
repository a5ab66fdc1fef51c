// Package news supplies the headline feeds shown by the news pages.
package news

import (
	"context"
	"fmt"
	"strings"

	"github.com/wesellis/WeatherStar-4000-Python/internal/weather"
)

// MaxHeadlines caps every feed.
const MaxHeadlines = 12

func link(u string) *string { return &u }

// StaticSource serves a fixed list of headlines.
type StaticSource struct {
	feed  weather.Feed
	items []weather.Headline
}

// NewStaticSource creates a StaticSource.
func NewStaticSource(feed weather.Feed, items []weather.Headline) *StaticSource {
	return &StaticSource{feed: feed, items: items}
}

func (s *StaticSource) Feed() weather.Feed { return s.feed }

func (s *StaticSource) Headlines(context.Context, weather.Location, []weather.Alert) ([]weather.Headline, bool) {
	return s.items, len(s.items) > 0
}

// MSN returns the simulated MSN top stories feed.
func MSN() *StaticSource {
	return NewStaticSource(weather.FeedMSN, []weather.Headline{
		{Text: "Breaking: Major Winter Storm System Moving Across United States Bringing Heavy Snow and Ice", Link: link("https://www.msn.com/weather")},
		{Text: "Technology: Apple Announces Revolutionary New Product Line at Annual Developer Conference", Link: link("https://www.msn.com/technology")},
		{Text: "Sports: Underdog Team Wins Championship in Dramatic Overtime Victory Against All Odds", Link: link("https://www.msn.com/sports")},
		{Text: "World News: Global Climate Summit Concludes with Historic Agreement Among Nations", Link: link("https://www.msn.com/world")},
		{Text: "Business: Stock Market Reaches All-Time High as Economic Recovery Continues to Accelerate", Link: link("https://www.msn.com/money")},
		{Text: "Entertainment: Surprise Winners at Annual Award Show Leave Audiences Stunned", Link: link("https://www.msn.com/entertainment")},
		{Text: "Health: Scientists Announce Major Medical Breakthrough in Cancer Research Treatment", Link: link("https://www.msn.com/health")},
		{Text: "Science: Space Mission Successfully Launches New Era of Deep Space Exploration", Link: link("https://www.msn.com/news/technology")},
		{Text: "Politics: Congress Passes Landmark Legislation with Bipartisan Support", Link: link("https://www.msn.com/politics")},
		{Text: "Local: Community Rallies Together to Support Families Affected by Recent Events", Link: link("https://www.msn.com/local")},
		{Text: "Weather: Hurricane Season Expected to Be More Active Than Normal This Year", Link: link("https://www.weather.com")},
		{Text: "Technology: Artificial Intelligence Breakthrough Could Transform Daily Life", Link: link("https://www.msn.com/technology")},
	})
}

// Reddit returns the simulated Reddit headlines feed.
func Reddit() *StaticSource {
	return NewStaticSource(weather.FeedReddit, []weather.Headline{
		{Text: "r/news: Major Storm System Approaching East Coast with Potential for Historic Snowfall Amounts", Link: link("https://reddit.com/r/news")},
		{Text: "r/worldnews: International Summit Concludes with Unexpected Alliance Between Former Rivals", Link: link("https://reddit.com/r/worldnews")},
		{Text: "r/technology: New AI Breakthrough Could Revolutionize How We Interact with Computers", Link: link("https://reddit.com/r/technology")},
		{Text: "r/science: Scientists Discover New Species in Previously Unexplored Deep Ocean Trench", Link: link("https://reddit.com/r/science")},
		{Text: "r/gaming: Popular Game Franchise Gets Surprise Major Update After Years of Silence", Link: link("https://reddit.com/r/gaming")},
		{Text: "r/movies: Independent Film Breaks Box Office Records in Limited Release", Link: link("https://reddit.com/r/movies")},
		{Text: "r/sports: Underdog Team's Cinderella Story Continues with Another Upset Victory", Link: link("https://reddit.com/r/sports")},
		{Text: "r/space: New Images from James Webb Space Telescope Reveal Stunning Cosmic Phenomena", Link: link("https://reddit.com/r/space")},
		{Text: "r/AskReddit: What's the most interesting historical fact you know that sounds fake?", Link: link("https://reddit.com/r/AskReddit")},
		{Text: "r/todayilearned: TIL that honey never spoils and archaeologists have found 3000 year old honey", Link: link("https://reddit.com/r/todayilearned")},
		{Text: "r/EarthPorn: Sunrise over the Grand Canyon after fresh snowfall [OC] [4032x3024]", Link: link("https://reddit.com/r/EarthPorn")},
		{Text: "r/dataisbeautiful: [OC] Visualization of global temperature changes over the last century", Link: link("https://reddit.com/r/dataisbeautiful")},
	})
}

// Fallback returns generic local headlines mentioning city.
func Fallback(city string) []weather.Headline {
	if city == "" {
		city = "Local Area"
	}
	return []weather.Headline{
		{Text: fmt.Sprintf("Local: %s Community News and Updates", city), Link: link("https://news.google.com")},
		{Text: fmt.Sprintf("Weather: Check Latest Conditions for %s", city), Link: link("https://weather.gov")},
		{Text: fmt.Sprintf("Traffic: Current Road Conditions in %s Area", city), Link: link("https://511.org")},
		{Text: fmt.Sprintf("Local: %s Events Calendar This Week", city), Link: link("https://local.com/events")},
		{Text: fmt.Sprintf("Community: %s Announcements and Notices", city), Link: link("https://local.com")},
		{Text: "Breaking: Stay Tuned for Latest Local Updates", Link: link("https://news.google.com")},
		{Text: fmt.Sprintf("Local: %s School District Information", city), Link: link("https://education.com")},
		{Text: "Public Safety: Emergency Services Information", Link: link("https://ready.gov")},
		{Text: fmt.Sprintf("Local: %s Business and Economic News", city), Link: link("https://local.com/business")},
		{Text: "Health: Local Hospital and Clinic Updates", Link: link("https://health.gov")},
	}
}

// AlertHeadlines turns up to three active alerts into headlines.
func AlertHeadlines(alerts []weather.Alert) []weather.Headline {
	var out []weather.Headline
	for _, a := range alerts {
		if len(out) == 3 {
			break
		}
		if a.Event == "" {
			continue
		}
		text := fmt.Sprintf("Weather: %s Issued", a.Event)
		if a.Severity == "Extreme" || a.Severity == "Severe" {
			text = fmt.Sprintf("Alert: %s in Effect", a.Event)
		}
		u := a.URL
		if u == "" {
			u = "https://www.weather.gov"
		}
		out = append(out, weather.Headline{Text: text, Link: link(u)})
	}
	return out
}

// Category splits "Category: rest" headlines. ok is false when the text has
// no short prefix before a colon.
func Category(text string) (category, rest string, ok bool) {
	category, rest, ok = strings.Cut(text, ":")
	if !ok || category == "" || len(category) > 20 {
		return "", text, false
	}
	return category, strings.TrimSpace(rest), true
}

// IsUrgent reports whether a category should be drawn in the alert color.
func IsUrgent(category string) bool {
	upper := strings.ToUpper(category)
	return strings.Contains(upper, "EMERGENCY") || strings.Contains(upper, "BREAKING") || strings.Contains(upper, "ALERT")
}
