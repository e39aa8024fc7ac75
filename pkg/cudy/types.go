package cudy

import (
	"net/http"
	"time"

	"github.com/cudymon/cudymon/pkg/logger"
)

// sessionState tracks the login session as an explicit state value.
type sessionState int

const (
	stateUnauthenticated sessionState = iota
	stateAuthenticated
	stateExpired
	stateReauthenticating
	stateFailed
)

func (s sessionState) String() string {
	switch s {
	case stateUnauthenticated:
		return "unauthenticated"
	case stateAuthenticated:
		return "authenticated"
	case stateExpired:
		return "expired"
	case stateReauthenticating:
		return "reauthenticating"
	case stateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Client talks to one Cudy router's LuCI interface. It owns the session
// cookie for that router; the cookie is never shared between instances.
//
// Client is not safe for concurrent use: the session cookie and the
// retry-once logic assume a single in-flight request. Callers serialize
// access per router.
type Client struct {
	host       string
	username   string
	password   string
	httpClient HTTPClient
	logger     logger.Logger

	cookie string
	state  sessionState
}

// NewClient creates a client for the router at host. The supplied
// HTTPClient must not follow redirects: a redirect from the router means
// the session is gone. Pass nil to get a default client with the given
// request timeout.
func NewClient(host, username, password string, httpClient HTTPClient, timeout time.Duration, log logger.Logger) *Client {
	if httpClient == nil {
		httpClient = defaultHTTPClient(timeout)
	}

	return &Client{
		host:       host,
		username:   username,
		password:   password,
		httpClient: httpClient,
		logger:     log,
	}
}

func defaultHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &http.Client{
		Timeout: timeout,
		CheckRedirect: func(_ *http.Request, _ []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}
