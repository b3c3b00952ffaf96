package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/brettboylen/reddit-post-stats/api"
	"github.com/brettboylen/reddit-post-stats/export"
	"github.com/brettboylen/reddit-post-stats/report"
	"github.com/brettboylen/reddit-post-stats/stats"
	"github.com/brettboylen/reddit-post-stats/utils"
)

func main() {
	envPath := flag.String("env", ".env", "Path to .env file")
	logLevel := flag.String("log-level", "info", "Logging level (debug, info, warn, error)")
	limit := flag.Int("limit", 0, "Number of recent posts to fetch (overrides REDDIT_POST_LIMIT)")
	outPath := flag.String("out", "", "CSV export path (overrides EXPORT_PATH)")
	check := flag.Bool("check", false, "Only verify the Reddit credentials and exit")
	flag.Parse()

	log := setupLogger(*logLevel)

	config, err := utils.LoadConfig(*envPath, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to load configuration")
	}
	if *limit > 0 {
		config.Reddit.PostLimit = *limit
	}
	if *outPath != "" {
		config.Export.Path = *outPath
	}

	log.WithFields(logrus.Fields{
		"app":         config.App.Name,
		"version":     config.App.Version,
		"post_limit":  config.Reddit.PostLimit,
		"export_path": config.Export.Path,
	}).Info("Configuration loaded")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	redditAPI := api.NewRedditAPI(
		config.Reddit.Credentials(),
		log,
		api.WithAuthURL(config.Reddit.AuthURL),
		api.WithBaseURL(config.Reddit.APIURL),
	)

	if *check {
		if !checkConnection(ctx, os.Stdout, config.Reddit, redditAPI) {
			os.Exit(1)
		}
		return
	}

	run(ctx, os.Stdout, config, redditAPI, log)
}

// run fetches, renders and exports the user's posts
func run(ctx context.Context, out io.Writer, config *utils.Config, client stats.Client, log *logrus.Logger) {
	fmt.Fprintln(out, "=== Reddit Posts Detailed Statistics ===")
	fmt.Fprintln(out)

	fetcher := stats.NewFetcher(config.Reddit.Credentials(), client, log)
	posts := stats.FetchOrEmpty(ctx, fetcher, config.Reddit.PostLimit, log)
	if len(posts) == 0 {
		return
	}

	report.NewReporter(out).Render(posts)

	if err := export.NewExporter(out, log).Export(posts, config.Export.Path); err != nil {
		log.WithError(err).Error("Failed to export posts")
	}
}

// checkConnection reports which credentials are set and tries to authenticate with them
func checkConnection(ctx context.Context, out io.Writer, cfg utils.RedditConfig, client stats.Client) bool {
	fmt.Fprintln(out, "=== Testing Reddit Configuration ===")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "1. Checking configuration variables...")

	required := []struct {
		key    string
		value  string
		secret bool
	}{
		{key: "REDDIT_CLIENT_ID", value: cfg.ClientID},
		{key: "REDDIT_CLIENT_SECRET", value: cfg.ClientSecret, secret: true},
		{key: "REDDIT_USERNAME", value: cfg.Username},
		{key: "REDDIT_PASSWORD", value: cfg.Password, secret: true},
	}

	complete := true
	for _, r := range required {
		switch {
		case r.value == "":
			complete = false
			fmt.Fprintf(out, "   x %s is missing\n", r.key)
		case r.secret:
			fmt.Fprintf(out, "   ok %s: %s\n", r.key, utils.MaskSecret(r.value))
		default:
			fmt.Fprintf(out, "   ok %s: %s\n", r.key, r.value)
		}
	}
	if !complete {
		return false
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "2. Testing Reddit API connection...")

	if err := client.Authenticate(ctx); err != nil {
		fmt.Fprintf(out, "   x Authentication failed: %v\n", err)
		fmt.Fprintln(out, "   Common causes: wrong username/password, wrong client id/secret, 2FA enabled")
		return false
	}

	account, err := client.Me(ctx)
	if err != nil {
		fmt.Fprintf(out, "   x Connection error: %v\n", err)
		return false
	}

	fmt.Fprintf(out, "   ok Successfully authenticated as: %s\n", account.Name)
	fmt.Fprintf(out, "   ok Account karma: %d\n", account.LinkKarma+account.CommentKarma)
	return true
}

// setupLogger sets up the logger with the specified log level
func setupLogger(level string) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})

	switch level {
	case "debug":
		log.SetLevel(logrus.DebugLevel)
	case "info":
		log.SetLevel(logrus.InfoLevel)
	case "warn":
		log.SetLevel(logrus.WarnLevel)
	case "error":
		log.SetLevel(logrus.ErrorLevel)
	default:
		log.SetLevel(logrus.InfoLevel)
	}

	return log
}
