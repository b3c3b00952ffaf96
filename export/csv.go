package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/brettboylen/reddit-post-stats/models"
)

// DefaultPath is where posts are exported when no path is given
const DefaultPath = "reddit_posts_stats.csv"

// Exporter writes post statistics to a CSV file
type Exporter struct {
	out io.Writer
	log *logrus.Logger
}

// NewExporter creates an exporter; user-facing notices go to out
func NewExporter(out io.Writer, log *logrus.Logger) *Exporter {
	return &Exporter{
		out: out,
		log: log,
	}
}

// Export overwrites path with a header row taken from the first post and one row per post.
// Nothing is written when posts is empty.
func (e *Exporter) Export(posts []models.PostStat, path string) error {
	if len(posts) == 0 {
		fmt.Fprintln(e.out, "No posts to export.")
		return nil
	}
	if path == "" {
		path = DefaultPath
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer file.Close()

	if err := WriteCSV(file, posts); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close export file: %w", err)
	}

	e.log.WithFields(logrus.Fields{
		"path": path,
		"rows": len(posts),
	}).Debug("Exported posts")

	fmt.Fprintf(e.out, "Data exported to %s\n\n", path)
	return nil
}

// WriteCSV writes posts as CSV to w
func WriteCSV(w io.Writer, posts []models.PostStat) error {
	if len(posts) == 0 {
		return nil
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(posts[0].Columns()); err != nil {
		return err
	}
	for _, post := range posts {
		if err := writer.Write(post.Row()); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
