package models

import (
	"strconv"
)

// CreatedLayout is the timestamp layout used for PostStat.CreatedUTC
const CreatedLayout = "2006-01-02 15:04:05"

// PostStat holds the statistics for one of the user's Reddit posts
type PostStat struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Subreddit   string  `json:"subreddit"`
	URL         string  `json:"url"`
	Permalink   string  `json:"permalink"`
	CreatedUTC  string  `json:"created_utc"`
	Upvotes     int     `json:"upvotes"`
	Downvotes   int     `json:"downvotes"` // estimated, see stats.EstimateDownvotes
	Score       int     `json:"score"`
	UpvoteRatio float64 `json:"upvote_ratio"`
	NumComments int     `json:"num_comments"`
	TotalAwards int     `json:"total_awards"`
	Gilded      int     `json:"gilded"`
	IsSelf      bool    `json:"is_self"`
	Spoiler     bool    `json:"spoiler"`
	Over18      bool    `json:"over_18"`
	Stickied    bool    `json:"stickied"`
	Locked      bool    `json:"locked"`
}

// postStatColumns must stay in the same order as the PostStat fields and Row()
var postStatColumns = []string{
	"id",
	"title",
	"subreddit",
	"url",
	"permalink",
	"created_utc",
	"upvotes",
	"downvotes",
	"score",
	"upvote_ratio",
	"num_comments",
	"total_awards",
	"gilded",
	"is_self",
	"spoiler",
	"over_18",
	"stickied",
	"locked",
}

// Columns returns the column names of a PostStat in declaration order
func (p PostStat) Columns() []string {
	columns := make([]string, len(postStatColumns))
	copy(columns, postStatColumns)
	return columns
}

// Row returns the field values of a PostStat as text, in the same order as Columns
func (p PostStat) Row() []string {
	return []string{
		p.ID,
		p.Title,
		p.Subreddit,
		p.URL,
		p.Permalink,
		p.CreatedUTC,
		strconv.Itoa(p.Upvotes),
		strconv.Itoa(p.Downvotes),
		strconv.Itoa(p.Score),
		strconv.FormatFloat(p.UpvoteRatio, 'f', -1, 64),
		strconv.Itoa(p.NumComments),
		strconv.Itoa(p.TotalAwards),
		strconv.Itoa(p.Gilded),
		strconv.FormatBool(p.IsSelf),
		strconv.FormatBool(p.Spoiler),
		strconv.FormatBool(p.Over18),
		strconv.FormatBool(p.Stickied),
		strconv.FormatBool(p.Locked),
	}
}

// Totals holds aggregate counts across a set of posts
type Totals struct {
	Upvotes   int `json:"upvotes"`
	Downvotes int `json:"downvotes"`
	Comments  int `json:"comments"`
	Awards    int `json:"awards"`
}
