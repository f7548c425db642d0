package youtube

import (
	"fmt"
	"time"
)

// Normalize converts raw search items into video records in API order.
// Items without a video id are skipped; if none remain, ErrEmptyResult is
// returned. A present item whose publish time cannot be parsed yields an
// APIError of kind KindOther.
func Normalize(items []RawItem) ([]VideoRecord, error) {
	records := make([]VideoRecord, 0, len(items))
	for _, item := range items {
		if item.ID.VideoID == "" {
			continue
		}

		publishedAt, err := time.Parse(time.RFC3339, item.Snippet.PublishedAt)
		if err != nil {
			return nil, otherError(
				fmt.Sprintf("malformed publish time for video %s", item.ID.VideoID),
				err,
			)
		}

		records = append(records, VideoRecord{
			VideoID:     item.ID.VideoID,
			PublishDate: publishedAt.UTC(),
			ChannelID:   item.Snippet.ChannelID,
			ChannelName: item.Snippet.ChannelTitle,
			Title:       item.Snippet.Title,
			Description: item.Snippet.Description,
			VideoURL:    watchURLPrefix + item.ID.VideoID,
			ChannelURL:  channelURLPrefix + item.Snippet.ChannelID,
		})
	}

	if len(records) == 0 {
		return nil, ErrEmptyResult
	}
	return records, nil
}
