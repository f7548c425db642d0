// Package youtube provides a client for the YouTube Data API v3 search endpoint.
//
// This package enables contentmix to:
// - Validate keyword search parameters before any network call
// - Fetch every page of a keyword search and concatenate the items
// - Classify API failures into user-facing error kinds
// - Normalize raw search items into flat video records
package youtube

import (
	"fmt"
	"time"
)

const (
	watchURLPrefix   = "https://www.youtube.com/watch?v="
	channelURLPrefix = "https://www.youtube.com/channel/"
	embedURLPrefix   = "https://www.youtube.com/embed/"
)

// Order is the result ordering requested from the search endpoint.
type Order string

const (
	OrderDate       Order = "date"
	OrderRating     Order = "rating"
	OrderRelevance  Order = "relevance"
	OrderTitle      Order = "title"
	OrderVideoCount Order = "videoCount"
	OrderViewCount  Order = "viewCount"
)

// Orders lists every accepted ordering in the order the search form offers them.
var Orders = []Order{OrderDate, OrderRating, OrderRelevance, OrderTitle, OrderVideoCount, OrderViewCount}

// ParseOrder converts a form or flag value into an Order.
func ParseOrder(s string) (Order, error) {
	for _, o := range Orders {
		if string(o) == s {
			return o, nil
		}
	}
	return "", &ValidationError{Field: "order", Message: fmt.Sprintf("unsupported order %q", s)}
}

// RawItem is one search result as returned by the API, before normalization.
type RawItem struct {
	ID struct {
		Kind    string `json:"kind"`
		VideoID string `json:"videoId"`
	} `json:"id"`
	Snippet struct {
		PublishedAt  string `json:"publishedAt"`
		ChannelID    string `json:"channelId"`
		Title        string `json:"title"`
		Description  string `json:"description"`
		ChannelTitle string `json:"channelTitle"`
	} `json:"snippet"`
}

// VideoRecord is the flat, immutable view of a single search result.
type VideoRecord struct {
	VideoID     string    `json:"video_id"`
	PublishDate time.Time `json:"publish_date"`
	ChannelID   string    `json:"channel_id"`
	ChannelName string    `json:"channel_name"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	VideoURL    string    `json:"video_url"`
	ChannelURL  string    `json:"channel_url"`
}

// EmbedURL returns the player URL used by the video gallery.
func (v VideoRecord) EmbedURL() string {
	return embedURLPrefix + v.VideoID
}
