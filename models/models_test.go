package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPostStatRow(t *testing.T) {
	post := PostStat{
		ID:          "abc123",
		Title:       "Hello, world",
		Subreddit:   "golang",
		URL:         "https://example.com",
		Permalink:   "https://reddit.com/r/golang/comments/abc123/hello_world/",
		CreatedUTC:  "2024-01-02 03:04:05",
		Upvotes:     40,
		Downvotes:   10,
		Score:       30,
		UpvoteRatio: 0.8,
		NumComments: 7,
		TotalAwards: 2,
		Gilded:      1,
		IsSelf:      true,
		Over18:      true,
	}

	expected := []string{
		"abc123", "Hello, world", "golang", "https://example.com",
		"https://reddit.com/r/golang/comments/abc123/hello_world/", "2024-01-02 03:04:05",
		"40", "10", "30", "0.8", "7", "2", "1",
		"true", "false", "true", "false", "false",
	}

	assert.Equal(t, expected, post.Row())
}

func TestPostStatColumnsMatchRow(t *testing.T) {
	post := PostStat{}
	assert.Len(t, post.Row(), len(post.Columns()))
	assert.Equal(t, "id", post.Columns()[0])
	assert.Equal(t, "locked", post.Columns()[len(post.Columns())-1])
}

func TestPostStatColumnsIsCopy(t *testing.T) {
	columns := PostStat{}.Columns()
	columns[0] = "changed"

	assert.Equal(t, "id", PostStat{}.Columns()[0])
}

func TestPostStatRowRatioFormatting(t *testing.T) {
	tests := []struct {
		ratio    float64
		expected string
	}{
		{ratio: 1, expected: "1"},
		{ratio: 0, expected: "0"},
		{ratio: 0.97, expected: "0.97"},
		{ratio: 0.5, expected: "0.5"},
	}

	for _, tc := range tests {
		row := PostStat{UpvoteRatio: tc.ratio}.Row()
		assert.Equal(t, tc.expected, row[9])
	}
}
