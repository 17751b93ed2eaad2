package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/rayspace/blog-service/internal/config"
	"github.com/rayspace/blog-service/internal/model"
	"go.uber.org/zap"
)

const userAgent = "rayspace-blog-service"

type StarsFetcher interface {
	FetchStars(ctx context.Context) (int64, error)
}

// starsService is a read-through cache over the GitHub repository API.
// Concurrent refreshes are not deduplicated: every reader that sees a stale
// entry fetches, and the last writer wins.
type starsService struct {
	logger  *zap.Logger
	fetcher StarsFetcher
	ttl     time.Duration
	now     func() time.Time

	mu    sync.RWMutex
	entry model.StarCacheEntry
}

func newStarsService(logger *zap.Logger, fetcher StarsFetcher, ttl time.Duration, now func() time.Time) *starsService {
	return &starsService{
		logger:  logger,
		fetcher: fetcher,
		ttl:     ttl,
		now:     now,
	}
}

func (s *starsService) snapshot() model.StarCacheEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entry
}

func (s *starsService) fresh(entry model.StarCacheEntry) bool {
	return entry.Fetched() && s.now().Sub(entry.LastFetched) < s.ttl
}

func (s *starsService) Read(ctx context.Context) (int64, error) {
	entry := s.snapshot()
	if s.fresh(entry) {
		return entry.StarCount, nil
	}

	count, err := s.fetcher.FetchStars(ctx)
	if err != nil {
		if entry.Fetched() {
			s.logger.Sugar().Warnf("failed to refresh github stars, serving value from %s: %s", entry.LastFetched.Format(time.RFC3339), err.Error())
			return entry.StarCount, nil
		}
		s.logger.Sugar().Errorf("failed to fetch github stars: %s", err.Error())
		return 0, ErrUpstream
	}

	s.mu.Lock()
	s.entry = model.StarCacheEntry{
		StarCount:   count,
		LastFetched: s.now(),
	}
	s.mu.Unlock()

	return count, nil
}

type githubStarsFetcher struct {
	cfg        config.StarsConfig
	httpClient *http.Client
}

func newGithubStarsFetcher(cfg config.StarsConfig) StarsFetcher {
	return &githubStarsFetcher{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

type githubRepo struct {
	StargazersCount *int64 `json:"stargazers_count"`
}

func (f *githubStarsFetcher) FetchStars(ctx context.Context) (int64, error) {
	url := fmt.Sprintf("%s/repos/%s/%s", f.cfg.APIURL, f.cfg.Owner, f.cfg.Repo)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/vnd.github+json")
	if f.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+f.cfg.Token)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, fmt.Errorf("github responded with status %d", resp.StatusCode)
	}

	var repo githubRepo
	if err := json.Unmarshal(body, &repo); err != nil {
		return 0, fmt.Errorf("failed to decode github response: %w", err)
	}
	if repo.StargazersCount == nil {
		return 0, fmt.Errorf("github response has no stargazers_count")
	}

	return *repo.StargazersCount, nil
}
