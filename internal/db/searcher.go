package db

import (
	"context"

	"github.com/adaway/adaway/internal/model"
)

// SourceSearcher is implemented by stores that can filter hosts sources
// by url themselves. Consumers fall back to FilterSourcesByTokens
// otherwise.
type SourceSearcher interface {
	SearchSources(ctx context.Context, query string) ([]model.HostsSource, error)
}

// SearchSources returns the sources whose url contains every whitespace
// separated token of query, ascending by url. An empty query lists all.
func (s *SqliteStore) SearchSources(ctx context.Context, query string) ([]model.HostsSource, error) {
	bdb, err := s.db()
	if err != nil {
		return nil, err
	}
	return SearchHostsSourcesBun(ctx, bdb, TokenizeSearchQuery(query))
}

var _ SourceSearcher = (*SqliteStore)(nil)
