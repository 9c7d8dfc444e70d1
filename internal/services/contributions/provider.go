package contributions

import (
	"context"
	"errors"

	"github.com/firejune/notion-github-embed/internal/models"
)

var (
	// ErrUserNotFound means the provider does not know the username.
	ErrUserNotFound = errors.New("user not found")
	// ErrUpstream wraps every other provider failure.
	ErrUpstream = errors.New("upstream contribution provider failed")
)

// Provider fetches a user's daily contribution records. token is a
// date-granularity cache-busting value passed through to the upstream.
type Provider interface {
	FetchContributions(ctx context.Context, username, token string) ([]models.ContributionRecord, error)
}

// SnapshotStore keeps the last successful fetch per user.
type SnapshotStore interface {
	SaveContributions(ctx context.Context, username string, records []models.ContributionRecord) error
	GetContributions(ctx context.Context, username string) ([]models.ContributionRecord, error)
}
