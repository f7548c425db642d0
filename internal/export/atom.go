package export

import (
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/gorilla/feeds"

	"github.com/gauthierbraillon/contentmix/internal/youtube"
)

const (
	AtomFilename    = "yt_content_feed.atom"
	AtomContentType = "application/atom+xml; charset=utf-8"
)

// WriteAtom writes the result set as an Atom feed, one entry per video.
func WriteAtom(w io.Writer, params youtube.SearchParameters, records []youtube.VideoRecord, now time.Time) error {
	feed := &feeds.Feed{
		Title:       fmt.Sprintf("YouTube search: %s", params.Query),
		Description: fmt.Sprintf("Videos published between %s and %s, ordered by %s",
			params.PublishedAfter.Format("2006-01-02"), params.PublishedBefore.Format("2006-01-02"), params.Order),
		Link:    &feeds.Link{Href: "https://www.youtube.com/results?search_query=" + url.QueryEscape(params.Query)},
		Id:      "tag:contentmix,2023:search:" + url.QueryEscape(params.Query),
		Created: now,
		Updated: now,
	}

	for _, r := range records {
		feed.Items = append(feed.Items, &feeds.Item{
			Id:          "yt:video:" + r.VideoID,
			Title:       r.Title,
			Link:        &feeds.Link{Href: r.VideoURL},
			Author:      &feeds.Author{Name: r.ChannelName},
			Description: r.Description,
			Created:     r.PublishDate,
			Updated:     r.PublishDate,
		})
	}

	if err := feed.WriteAtom(w); err != nil {
		return fmt.Errorf("atom: write feed: %w", err)
	}
	return nil
}
