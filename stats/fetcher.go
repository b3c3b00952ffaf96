package stats

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/brettboylen/reddit-post-stats/api"
	"github.com/brettboylen/reddit-post-stats/models"
)

const (
	// DefaultLimit is the number of recent posts fetched when none is configured
	DefaultLimit = 10

	permalinkOrigin = "https://reddit.com"

	// absorbs float error so that e.g. 40 ups at 0.8 gives 10, not 9
	downvoteTolerance = 1e-9
)

// Client is the subset of the Reddit API the fetcher depends on
type Client interface {
	Authenticate(ctx context.Context) error
	Me(ctx context.Context) (*api.Account, error)
	SubmittedNew(ctx context.Context, username string, limit int) ([]api.Submission, error)
}

// Fetcher retrieves the authenticated user's posts and turns them into PostStat records
type Fetcher struct {
	creds  api.Credentials
	client Client
	log    *logrus.Logger
}

// NewFetcher creates a new fetcher
func NewFetcher(creds api.Credentials, client Client, log *logrus.Logger) *Fetcher {
	return &Fetcher{
		creds:  creds,
		client: client,
		log:    log,
	}
}

// Fetch returns statistics for up to limit of the user's most recent posts, newest first.
// Errors are either *ConfigurationError or *ConnectionError; the slice is empty on error.
func (f *Fetcher) Fetch(ctx context.Context, limit int) ([]models.PostStat, error) {
	if limit < 1 {
		return nil, &ConfigurationError{Reason: "limit must be positive"}
	}
	if missing := f.creds.Missing(); len(missing) > 0 {
		return nil, &ConfigurationError{Missing: missing}
	}

	if err := f.client.Authenticate(ctx); err != nil {
		return nil, &ConnectionError{Op: "authenticating", Err: err}
	}

	account, err := f.client.Me(ctx)
	if err != nil {
		return nil, &ConnectionError{Op: "resolving account", Err: err}
	}

	f.log.WithFields(logrus.Fields{
		"username": account.Name,
		"limit":    limit,
	}).Info("Fetching posts")

	submissions, err := f.client.SubmittedNew(ctx, account.Name, limit)
	if err != nil {
		return nil, &ConnectionError{Op: "fetching posts", Err: err}
	}
	if len(submissions) > limit {
		submissions = submissions[:limit]
	}

	posts := make([]models.PostStat, 0, len(submissions))
	for _, s := range submissions {
		posts = append(posts, NewPostStat(s))
	}

	f.log.WithField("count", len(posts)).Info("Fetched posts")
	return posts, nil
}

// FetchOrEmpty runs Fetch and reports any error to the log instead of returning it
func FetchOrEmpty(ctx context.Context, f *Fetcher, limit int, log *logrus.Logger) []models.PostStat {
	posts, err := f.Fetch(ctx, limit)
	if err == nil {
		return posts
	}

	var cfgErr *ConfigurationError
	var connErr *ConnectionError
	switch {
	case errors.As(err, &cfgErr) && len(cfgErr.Missing) > 0:
		log.Error("Missing configuration variables:")
		for _, name := range cfgErr.Missing {
			log.WithField("variable", name).Error("Missing configuration variable")
		}
	case errors.As(err, &cfgErr):
		log.WithField("reason", cfgErr.Reason).Error("Invalid configuration")
	case errors.As(err, &connErr):
		log.WithError(connErr.Err).WithField("op", connErr.Op).Error("Error fetching posts")
	default:
		log.WithError(err).Error("Error fetching posts")
	}

	return []models.PostStat{}
}

// NewPostStat maps a Reddit submission onto a PostStat record
func NewPostStat(s api.Submission) models.PostStat {
	return models.PostStat{
		ID:          s.ID,
		Title:       s.Title,
		Subreddit:   s.Subreddit,
		URL:         s.URL,
		Permalink:   permalinkOrigin + s.Permalink,
		CreatedUTC:  formatCreated(s.CreatedUTC),
		Upvotes:     s.Ups,
		Downvotes:   EstimateDownvotes(s.Ups, s.UpvoteRatio),
		Score:       s.Score,
		UpvoteRatio: s.UpvoteRatio,
		NumComments: s.NumComments,
		TotalAwards: s.TotalAwardsReceived,
		Gilded:      s.Gilded,
		IsSelf:      s.IsSelf,
		Spoiler:     s.Spoiler,
		Over18:      s.Over18,
		Stickied:    s.Stickied,
		Locked:      s.Locked,
	}
}

// EstimateDownvotes reconstructs a downvote count from upvotes and the upvote ratio,
// using ratio = ups / (ups + downs). Reddit does not publish real downvotes and may
// fuzz the ratio, so the result is an approximation.
func EstimateDownvotes(ups int, ratio float64) int {
	// a ratio outside (0, 1] cannot come from real vote counts
	if !(ratio > 0 && ratio <= 1) {
		return 0
	}

	downs := float64(ups) * (1 - ratio) / ratio
	if math.IsNaN(downs) || math.IsInf(downs, 0) || math.Abs(downs) >= math.MaxInt32 {
		return 0
	}
	if downs < 0 {
		return int(math.Ceil(downs - downvoteTolerance))
	}
	return int(math.Floor(downs + downvoteTolerance))
}

func formatCreated(createdUTC float64) string {
	sec, frac := math.Modf(createdUTC)
	return time.Unix(int64(sec), int64(frac*1e9)).UTC().Format(models.CreatedLayout)
}
