package db

import (
	"context"

	"github.com/adaway/adaway/internal/model"
)

// SearchSources implements SourceSearcher on top of ListAll.
func (f *FakeStore) SearchSources(ctx context.Context, query string) ([]model.HostsSource, error) {
	all, err := f.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return FilterSourcesByTokens(all, TokenizeSearchQuery(query)), nil
}

var _ SourceSearcher = (*FakeStore)(nil)
