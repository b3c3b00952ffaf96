package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/brettboylen/reddit-post-stats/models"
)

const ruleWidth = 80

var (
	heavyRule = strings.Repeat("=", ruleWidth)
	lightRule = strings.Repeat("-", ruleWidth)
)

// Reporter prints post statistics as a human-readable console report
type Reporter struct {
	out io.Writer
}

// NewReporter creates a reporter writing to out
func NewReporter(out io.Writer) *Reporter {
	return &Reporter{out: out}
}

// Render writes one block per post followed by the aggregate totals
func (r *Reporter) Render(posts []models.PostStat) {
	if len(posts) == 0 {
		fmt.Fprintln(r.out, "No posts to display.")
		return
	}

	fmt.Fprintf(r.out, "\n%s\n", heavyRule)
	fmt.Fprintf(r.out, "Reddit Posts Statistics - %d posts\n", len(posts))
	fmt.Fprintf(r.out, "%s\n\n", heavyRule)

	for i, post := range posts {
		fmt.Fprintf(r.out, "Post #%d: %s\n", i+1, post.Title)
		fmt.Fprintf(r.out, "Subreddit: %s\n", post.Subreddit)
		fmt.Fprintf(r.out, "URL: %s\n", post.Permalink)
		fmt.Fprintf(r.out, "Created UTC: %s\n", post.CreatedUTC)
		fmt.Fprintf(r.out, "Upvotes: %d | Downvotes: %d | Score: %d | Ratio: %v\n",
			post.Upvotes, post.Downvotes, post.Score, post.UpvoteRatio)
		fmt.Fprintf(r.out, "Comments: %d | Awards: %d | Gilded: %d\n",
			post.NumComments, post.TotalAwards, post.Gilded)
		fmt.Fprintf(r.out, "Self Post: %t | NSFW: %t | Spoiler: %t | Stickied: %t | Locked: %t\n",
			post.IsSelf, post.Over18, post.Spoiler, post.Stickied, post.Locked)
		fmt.Fprintln(r.out, lightRule)
	}

	totals := Summarize(posts)
	fmt.Fprintf(r.out, "\n%s\n", heavyRule)
	fmt.Fprintf(r.out, "TOTALS - Upvotes: %d | Downvotes: %d | Comments: %d | Awards: %d\n",
		totals.Upvotes, totals.Downvotes, totals.Comments, totals.Awards)
	fmt.Fprintf(r.out, "%s\n\n", heavyRule)
}

// Summarize sums upvotes, downvotes, comments and awards across posts
func Summarize(posts []models.PostStat) models.Totals {
	var totals models.Totals
	for _, post := range posts {
		totals.Upvotes += post.Upvotes
		totals.Downvotes += post.Downvotes
		totals.Comments += post.NumComments
		totals.Awards += post.TotalAwards
	}
	return totals
}
