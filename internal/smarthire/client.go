// Package smarthire is the HTTP client for the SmartHire backend. All scoring,
// text indexing and persistence happen server-side; this package only issues
// requests and normalizes the loosely-shaped responses at the boundary.
package smarthire

import (
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	apiURL    = "http://localhost:5000/api"
	userAgent = "smarthire-cli"

	sessionCookie = "session"

	// defaultMatchTimeout bounds a single pairwise scoring call. A timeout is
	// treated identically to a failed call by the enrichment layer.
	defaultMatchTimeout = 10 * time.Second

	// The backend throttles aggressive clients; stay under its limit.
	requestsPerSecond = 10
)

type Client struct {
	session string
	logger  *zap.Logger
	limiter *rate.Limiter

	HTTPClient   *http.Client
	UserAgent    string
	APIURL       string
	MatchTimeout time.Duration
}

func New(logger *zap.Logger, session string) *Client {
	return &Client{
		session: session,
		logger:  logger,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond),
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		UserAgent:    userAgent,
		APIURL:       apiURL,
		MatchTimeout: defaultMatchTimeout,
	}
}
