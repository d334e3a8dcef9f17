package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/becsite/backend/internal/cache"
	"github.com/becsite/backend/internal/model"
)

// TournamentCacheTTL is how long a fetched tournament list is served.
const TournamentCacheTTL = 300 * time.Second

const tournamentListKey = "tournaments:all"

// TournamentSource is the tournament provider (start.gg).
type TournamentSource interface {
	FetchAll(ctx context.Context) ([]model.Tournament, error)
	FetchBySlug(ctx context.Context, slug string) (*model.Tournament, error)
}

// TournamentList is a filtered list plus whether it came from cache.
type TournamentList struct {
	Events []model.Tournament
	Cached bool
}

// TournamentService serves the event listing.
type TournamentService interface {
	// List returns tournaments whose game contains category
	// (case-insensitive); an empty category returns all.
	List(ctx context.Context, category string) (TournamentList, error)
	// Get returns a single tournament by slug.
	Get(ctx context.Context, slug string) (*model.Tournament, error)
}

type tournamentServiceImpl struct {
	source TournamentSource
	cache  cache.Cache
	ttl    time.Duration
}

// NewTournamentService creates a cache-aside TournamentService. c may be nil
// to disable caching.
func NewTournamentService(src TournamentSource, c cache.Cache) TournamentService {
	return &tournamentServiceImpl{source: src, cache: c, ttl: TournamentCacheTTL}
}

func (s *tournamentServiceImpl) List(ctx context.Context, category string) (TournamentList, error) {
	all, cached, err := s.all(ctx)
	if err != nil {
		return TournamentList{}, err
	}
	return TournamentList{Events: FilterByCategory(all, category), Cached: cached}, nil
}

func (s *tournamentServiceImpl) Get(ctx context.Context, slug string) (*model.Tournament, error) {
	key := "tournaments:slug:" + slug
	var t model.Tournament
	if s.load(ctx, key, &t) {
		return &t, nil
	}
	got, err := s.source.FetchBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	s.store(ctx, key, got)
	return got, nil
}

func (s *tournamentServiceImpl) all(ctx context.Context) ([]model.Tournament, bool, error) {
	var list []model.Tournament
	if s.load(ctx, tournamentListKey, &list) {
		return list, true, nil
	}
	list, err := s.source.FetchAll(ctx)
	if err != nil {
		return nil, false, err
	}
	s.store(ctx, tournamentListKey, list)
	return list, false, nil
}

// load reports a cache hit. Cache faults are logged and treated as misses.
func (s *tournamentServiceImpl) load(ctx context.Context, key string, dst any) bool {
	if s.cache == nil {
		return false
	}
	b, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			slog.WarnContext(ctx, "tournament cache read failed", "key", key, "error", err)
		}
		return false
	}
	if err := json.Unmarshal(b, dst); err != nil {
		slog.WarnContext(ctx, "tournament cache entry corrupt", "key", key, "error", err)
		return false
	}
	return true
}

func (s *tournamentServiceImpl) store(ctx context.Context, key string, v any) {
	if s.cache == nil {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, b, s.ttl); err != nil {
		slog.WarnContext(ctx, "tournament cache write failed", "key", key, "error", err)
	}
}

// FilterByCategory keeps tournaments whose game contains category,
// ignoring case. The result is never nil.
func FilterByCategory(all []model.Tournament, category string) []model.Tournament {
	category = strings.ToLower(category)
	out := make([]model.Tournament, 0, len(all))
	for _, t := range all {
		if category == "" || strings.Contains(strings.ToLower(t.Game), category) {
			out = append(out, t)
		}
	}
	return out
}
