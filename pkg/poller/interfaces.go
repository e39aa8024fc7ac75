package poller

//go:generate mockgen -destination=mock_poller.go -package=poller github.com/cudymon/cudymon/pkg/poller Clock,Ticker,Fetcher

import (
	"context"
	"time"

	"github.com/cudymon/cudymon/pkg/cudy"
	"github.com/cudymon/cudymon/pkg/models"
)

// Clock abstracts time-related operations.
type Clock interface {
	Now() time.Time
	Ticker(d time.Duration) Ticker
}

// Ticker abstracts the ticker behavior.
type Ticker interface {
	Chan() <-chan time.Time
	Stop()
}

// Fetcher runs one poll cycle against the router.
type Fetcher interface {
	FetchDeviceData(ctx context.Context, previous *models.DataBundle, opts cudy.FetchOptions) (*models.DataBundle, error)
}
