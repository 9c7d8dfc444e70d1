package contributions

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/firejune/notion-github-embed/internal/models"
)

// sharedFetchTimeout bounds a fetch that no longer follows any single
// caller's context.
const sharedFetchTimeout = 45 * time.Second

// CachedProvider collapses concurrent fetches for the same (username, token)
// into one upstream call, saves each success to the store and serves the last
// snapshot when the upstream fails. The store is optional.
type CachedProvider struct {
	next   Provider
	store  SnapshotStore
	logger *zap.Logger
	group  singleflight.Group
}

// NewCachedProvider wraps next. store may be nil.
func NewCachedProvider(next Provider, store SnapshotStore, logger *zap.Logger) *CachedProvider {
	return &CachedProvider{next: next, store: store, logger: logger}
}

// FetchContributions implements Provider. The shared fetch is detached from
// ctx, so a caller that gives up only stops its own wait.
func (p *CachedProvider) FetchContributions(ctx context.Context, username, token string) ([]models.ContributionRecord, error) {
	ch := p.group.DoChan(username+"\x00"+token, func() (interface{}, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sharedFetchTimeout)
		defer cancel()
		return p.fetch(fetchCtx, username, token)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Shared {
			p.logger.Debug("shared in-flight fetch", zap.String("username", username))
		}
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]models.ContributionRecord), nil
	}
}

func (p *CachedProvider) fetch(ctx context.Context, username, token string) ([]models.ContributionRecord, error) {
	records, err := p.next.FetchContributions(ctx, username, token)
	if err == nil {
		if p.store != nil {
			if saveErr := p.store.SaveContributions(ctx, username, records); saveErr != nil {
				// 保存失敗はレスポンスに影響させない
				p.logger.Warn("snapshot save failed", zap.String("username", username), zap.Error(saveErr))
			}
		}
		return records, nil
	}

	if p.store == nil || errors.Is(err, ErrUserNotFound) {
		return nil, err
	}
	snapshot, snapErr := p.store.GetContributions(ctx, username)
	if snapErr != nil {
		p.logger.Warn("no snapshot to fall back to", zap.String("username", username), zap.Error(snapErr))
		return nil, err
	}
	p.logger.Warn("upstream failed, serving snapshot",
		zap.String("username", username),
		zap.Int("records", len(snapshot)),
		zap.Error(err))
	return snapshot, nil
}
