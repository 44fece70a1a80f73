package export

import (
	"fmt"
	"net/http"
	"time"
)

const ContentType = "text/csv; charset=utf-8"

// Downloader hands a finished CSV document to the operator.
type Downloader interface {
	Download(filename, content string) error
}

// HTTPDownloader sends the document as an attachment on an HTTP response.
type HTTPDownloader struct {
	W http.ResponseWriter
}

func (d HTTPDownloader) Download(filename, content string) error {
	h := d.W.Header()
	h.Set("Content-Type", ContentType)
	h.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	h.Set("Cache-Control", "no-store")
	d.W.WriteHeader(http.StatusOK)

	if _, err := d.W.Write([]byte(content)); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

// Filename is "<prefix>-YYYY-MM-DD.csv" for the day of now.
func Filename(prefix string, now time.Time) string {
	return fmt.Sprintf("%s-%s.csv", prefix, now.Format("2006-01-02"))
}
