package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brettboylen/reddit-post-stats/api"
	"github.com/brettboylen/reddit-post-stats/utils"
)

type stubClient struct {
	authErr     error
	submissions []api.Submission
}

func (s *stubClient) Authenticate(ctx context.Context) error { return s.authErr }

func (s *stubClient) Me(ctx context.Context) (*api.Account, error) {
	return &api.Account{Name: "spez", LinkKarma: 10, CommentKarma: 5}, nil
}

func (s *stubClient) SubmittedNew(ctx context.Context, username string, limit int) ([]api.Submission, error) {
	return s.submissions, nil
}

func testConfig(t *testing.T) *utils.Config {
	return &utils.Config{
		Reddit: utils.RedditConfig{
			ClientID:     "id",
			ClientSecret: "client-secret-value",
			Username:     "spez",
			Password:     "pw",
			PostLimit:    10,
		},
		Export: utils.ExportConfig{Path: filepath.Join(t.TempDir(), "posts.csv")},
	}
}

func discardLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestRun(t *testing.T) {
	config := testConfig(t)
	client := &stubClient{submissions: []api.Submission{
		{ID: "a", Title: "hello", Ups: 40, UpvoteRatio: 0.8, NumComments: 2},
	}}
	var out bytes.Buffer

	run(context.Background(), &out, config, client, discardLogger())

	assert.Contains(t, out.String(), "=== Reddit Posts Detailed Statistics ===")
	assert.Contains(t, out.String(), "Post #1: hello")
	assert.Contains(t, out.String(), "TOTALS - Upvotes: 40 | Downvotes: 10 | Comments: 2 | Awards: 0")
	assert.Contains(t, out.String(), "Data exported to "+config.Export.Path)
	require.FileExists(t, config.Export.Path)

	data, err := os.ReadFile(config.Export.Path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "a,hello,")
}

func TestRunSkipsOutputOnFailure(t *testing.T) {
	config := testConfig(t)
	var out bytes.Buffer

	run(context.Background(), &out, config, &stubClient{authErr: errors.New("bad creds")}, discardLogger())

	assert.NotContains(t, out.String(), "Post #")
	assert.NoFileExists(t, config.Export.Path)
}

func TestRunNonPositiveLimitReportsAndSkips(t *testing.T) {
	config := testConfig(t)
	config.Reddit.PostLimit = 0
	client := &stubClient{submissions: []api.Submission{{ID: "a", Title: "hello"}}}
	var out, logs bytes.Buffer
	log := logrus.New()
	log.SetOutput(&logs)

	run(context.Background(), &out, config, client, log)

	assert.NotContains(t, out.String(), "Post #")
	assert.NoFileExists(t, config.Export.Path)
	assert.Contains(t, logs.String(), "limit must be positive")
}

func TestCheckConnection(t *testing.T) {
	config := testConfig(t)
	var out bytes.Buffer

	ok := checkConnection(context.Background(), &out, config.Reddit, &stubClient{})

	assert.True(t, ok)
	assert.Contains(t, out.String(), "REDDIT_CLIENT_SECRET: clie...alue")
	assert.Contains(t, out.String(), "REDDIT_PASSWORD: ****")
	assert.Contains(t, out.String(), "Successfully authenticated as: spez")
	assert.Contains(t, out.String(), "Account karma: 15")
}

func TestCheckConnectionMissingCredential(t *testing.T) {
	config := testConfig(t)
	config.Reddit.Username = ""
	var out bytes.Buffer

	ok := checkConnection(context.Background(), &out, config.Reddit, &stubClient{})

	assert.False(t, ok)
	assert.Contains(t, out.String(), "REDDIT_USERNAME is missing")
	assert.NotContains(t, out.String(), "Testing Reddit API connection")
}

func TestCheckConnectionAuthFailure(t *testing.T) {
	config := testConfig(t)
	var out bytes.Buffer

	ok := checkConnection(context.Background(), &out, config.Reddit, &stubClient{authErr: errors.New("invalid_grant")})

	assert.False(t, ok)
	assert.Contains(t, out.String(), "Authentication failed: invalid_grant")
}

func TestSetupLogger(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, setupLogger("debug").Level)
	assert.Equal(t, logrus.ErrorLevel, setupLogger("error").Level)
	assert.Equal(t, logrus.InfoLevel, setupLogger("bogus").Level)
	assert.Equal(t, os.Stderr, setupLogger("info").Out)
}
