package cudy

import "net/http"

//go:generate mockgen -destination=mock_cudy.go -package=cudy github.com/cudymon/cudymon/pkg/cudy HTTPClient

// HTTPClient defines the interface for making HTTP requests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}
