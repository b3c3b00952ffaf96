package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	DefaultBaseURL   = "https://oauth.reddit.com"
	DefaultAuthURL   = "https://www.reddit.com/api/v1/access_token"
	DefaultUserAgent = "RedditStatsGetter/1.0"
	maxLimit         = 100 // max number of posts per listing request
)

// Credentials holds what a Reddit "script" app needs to act as its owner
type Credentials struct {
	ClientID     string
	ClientSecret string
	Username     string
	Password     string
	UserAgent    string
}

// Missing returns the env var names of the required credentials that are empty
func (c Credentials) Missing() []string {
	missing := make([]string, 0, 4)
	if c.ClientID == "" {
		missing = append(missing, "REDDIT_CLIENT_ID")
	}
	if c.ClientSecret == "" {
		missing = append(missing, "REDDIT_CLIENT_SECRET")
	}
	if c.Username == "" {
		missing = append(missing, "REDDIT_USERNAME")
	}
	if c.Password == "" {
		missing = append(missing, "REDDIT_PASSWORD")
	}
	return missing
}

// APIError is returned when Reddit answers with a non-200 status or an OAuth error payload
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("reddit API error %d: %s", e.StatusCode, e.Message)
}

// Account is the authenticated Reddit user
type Account struct {
	Name         string `json:"name"`
	LinkKarma    int    `json:"link_karma"`
	CommentKarma int    `json:"comment_karma"`
}

// Submission represents the Reddit API response structure for one of the user's posts
type Submission struct {
	ID                  string  `json:"id"`
	Title               string  `json:"title"`
	Subreddit           string  `json:"subreddit"`
	URL                 string  `json:"url"`
	Permalink           string  `json:"permalink"`
	CreatedUTC          float64 `json:"created_utc"`
	Ups                 int     `json:"ups"`
	Score               int     `json:"score"`
	UpvoteRatio         float64 `json:"upvote_ratio"`
	NumComments         int     `json:"num_comments"`
	TotalAwardsReceived int     `json:"total_awards_received"`
	Gilded              int     `json:"gilded"`
	IsSelf              bool    `json:"is_self"`
	Spoiler             bool    `json:"spoiler"`
	Over18              bool    `json:"over_18"`
	Stickied            bool    `json:"stickied"`
	Locked              bool    `json:"locked"`
}

// Listing represents the Reddit API listing envelope
type Listing struct {
	Kind string `json:"kind"`
	Data struct {
		After    string `json:"after"`
		Before   string `json:"before"`
		Children []struct {
			Kind string     `json:"kind"`
			Data Submission `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// RedditAPI represents a Reddit API client authenticated as a single user
type RedditAPI struct {
	creds       Credentials
	baseURL     string
	authURL     string
	httpClient  *http.Client
	accessToken string
	tokenExpiry time.Time
	mutex       sync.RWMutex
	log         *logrus.Logger
}

// Option configures a RedditAPI
type Option func(*RedditAPI)

// WithBaseURL overrides the OAuth API endpoint
func WithBaseURL(baseURL string) Option {
	return func(r *RedditAPI) {
		r.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithAuthURL overrides the access token endpoint
func WithAuthURL(authURL string) Option {
	return func(r *RedditAPI) {
		r.authURL = authURL
	}
}

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(client *http.Client) Option {
	return func(r *RedditAPI) {
		r.httpClient = client
	}
}

// NewRedditAPI creates a new Reddit API client
func NewRedditAPI(creds Credentials, log *logrus.Logger, opts ...Option) *RedditAPI {
	if creds.UserAgent == "" {
		creds.UserAgent = DefaultUserAgent
	}

	r := &RedditAPI{
		creds:   creds,
		baseURL: DefaultBaseURL,
		authURL: DefaultAuthURL,
		// no timeout; callers cancel through ctx
		httpClient: &http.Client{},
		log:        log,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Authenticate obtains an access token using the password grant for script apps
func (r *RedditAPI) Authenticate(ctx context.Context) error {
	r.mutex.RLock()
	token := r.accessToken
	expiry := r.tokenExpiry
	r.mutex.RUnlock()

	if token != "" && time.Now().Before(expiry) {
		return nil
	}

	r.log.WithField("username", r.creds.Username).Info("Authenticating with Reddit API")

	data := url.Values{}
	data.Set("grant_type", "password")
	data.Set("username", r.creds.Username)
	data.Set("password", r.creds.Password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.authURL, strings.NewReader(data.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create auth request: %w", err)
	}

	req.SetBasicAuth(r.creds.ClientID, r.creds.ClientSecret)
	req.Header.Set("User-Agent", r.creds.UserAgent)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute auth request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return readAPIError(resp)
	}

	var authResp struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
		TokenType   string `json:"token_type"`
		Error       string `json:"error"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&authResp); err != nil {
		return fmt.Errorf("failed to decode auth response: %w", err)
	}

	// reddit reports bad username/password as a 200 with an error field
	if authResp.Error != "" {
		return &APIError{StatusCode: resp.StatusCode, Message: authResp.Error}
	}
	if authResp.AccessToken == "" {
		return fmt.Errorf("auth response did not contain an access token")
	}

	r.mutex.Lock()
	r.accessToken = authResp.AccessToken
	r.tokenExpiry = time.Now().Add(time.Duration(authResp.ExpiresIn) * time.Second)
	r.mutex.Unlock()

	r.log.Info("Successfully authenticated with Reddit API")
	return nil
}

// Me resolves the account the client is authenticated as
func (r *RedditAPI) Me(ctx context.Context) (*Account, error) {
	var account Account
	if err := r.get(ctx, "/api/v1/me", nil, &account); err != nil {
		return nil, err
	}
	if account.Name == "" {
		return nil, fmt.Errorf("account response did not contain a name")
	}
	return &account, nil
}

// SubmittedNew fetches up to limit of the user's posts, newest first, in a single request
func (r *RedditAPI) SubmittedNew(ctx context.Context, username string, limit int) ([]Submission, error) {
	if limit <= 0 {
		return []Submission{}, nil
	}
	if limit > maxLimit {
		r.log.WithFields(logrus.Fields{
			"requested": limit,
			"max":       maxLimit,
		}).Warn("Limit exceeds a single listing page, clamping")
		limit = maxLimit
	}

	query := url.Values{}
	query.Set("sort", "new")
	query.Set("limit", strconv.Itoa(limit))
	query.Set("raw_json", "1")

	r.log.WithFields(logrus.Fields{
		"username": username,
		"limit":    limit,
	}).Info("Fetching submitted posts from Reddit API")

	var listing Listing
	path := "/user/" + url.PathEscape(username) + "/submitted"
	if err := r.get(ctx, path, query, &listing); err != nil {
		return nil, err
	}

	submissions := make([]Submission, 0, len(listing.Data.Children))
	for _, child := range listing.Data.Children {
		if child.Kind != "" && child.Kind != "t3" {
			continue
		}
		submissions = append(submissions, child.Data)
		if len(submissions) == limit {
			break
		}
	}

	r.log.WithField("post_count", len(submissions)).Debug("Fetched submitted posts")
	return submissions, nil
}

// get performs an authenticated GET against the OAuth API and decodes the JSON body into target
func (r *RedditAPI) get(ctx context.Context, path string, query url.Values, target interface{}) error {
	if err := r.Authenticate(ctx); err != nil {
		return err
	}

	endpoint := r.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	r.mutex.RLock()
	token := r.accessToken
	r.mutex.RUnlock()

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("User-Agent", r.creds.UserAgent)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		apiErr := readAPIError(resp)
		r.log.WithFields(logrus.Fields{
			"path":        path,
			"status_code": resp.StatusCode,
		}).Error("Reddit API error response")
		return apiErr
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func readAPIError(resp *http.Response) *APIError {
	body, _ := io.ReadAll(resp.Body)
	return &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(body))}
}
