// Package export serializes a result set for download.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/gauthierbraillon/contentmix/internal/youtube"
)

const (
	// CSVFilename is the fixed name offered for the CSV download.
	CSVFilename    = "yt_content_data.csv"
	CSVContentType = "text/csv; charset=utf-8"
)

var csvHeader = []string{"publish_date", "video_url", "title", "description", "channel_name", "channel_url"}

// WriteCSV writes the header row and one row per record, in result set order.
func WriteCSV(w io.Writer, records []youtube.VideoRecord) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("csv: write header: %w", err)
	}
	for _, r := range records {
		row := []string{
			r.PublishDate.UTC().Format(time.RFC3339),
			r.VideoURL,
			r.Title,
			r.Description,
			r.ChannelName,
			r.ChannelURL,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("csv: write row for %s: %w", r.VideoID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// CSV returns the UTF-8 encoded CSV export of records.
func CSV(records []youtube.VideoRecord) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, records); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
