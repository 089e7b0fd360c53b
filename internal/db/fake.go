package db

import (
	"context"
	"sort"
	"sync"

	"github.com/adaway/adaway/internal/model"
)

// FakeStore is an in-memory Store used by UI and CLI tests. It follows the
// same ordering and no-op rules as SqliteStore.
type FakeStore struct {
	mu     sync.Mutex
	rows   map[int64]model.HostsSource
	nextID int64
	closed bool
	// Err, when set, is returned by every operation.
	Err error
}

// NewFakeStore returns a FakeStore pre-filled with sources. Ids are
// assigned in order when a source has none.
func NewFakeStore(sources ...model.HostsSource) *FakeStore {
	f := &FakeStore{rows: map[int64]model.HostsSource{}}
	for _, s := range sources {
		f.put(s)
	}
	return f
}

func (f *FakeStore) put(s model.HostsSource) int64 {
	if s.ID <= 0 {
		f.nextID++
		s.ID = f.nextID
	} else if s.ID > f.nextID {
		f.nextID = s.ID
	}
	f.rows[s.ID] = s
	return s.ID
}

func (f *FakeStore) Insert(_ context.Context, url string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return 0, f.Err
	}
	return f.put(model.HostsSource{URL: url, Enabled: true}), nil
}

func (f *FakeStore) Update(_ context.Context, id int64, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}
	if r, ok := f.rows[id]; ok {
		r.URL = url
		f.rows[id] = r
	}
	return nil
}

func (f *FakeStore) SetEnabled(_ context.Context, id int64, enabled bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}
	if r, ok := f.rows[id]; ok {
		r.Enabled = enabled
		f.rows[id] = r
	}
	return nil
}

func (f *FakeStore) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}
	delete(f.rows, id)
	return nil
}

func (f *FakeStore) DeleteAll(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}
	f.rows = map[int64]model.HostsSource{}
	return nil
}

func (f *FakeStore) ReplaceAll(_ context.Context, sources []model.HostsSource) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}
	prevRows, prevNext := f.rows, f.nextID
	f.rows = map[int64]model.HostsSource{}
	for _, s := range sources {
		if _, dup := f.rows[s.ID]; dup && s.ID > 0 {
			f.rows, f.nextID = prevRows, prevNext
			return ErrDuplicate
		}
		f.put(s)
	}
	return nil
}

func (f *FakeStore) Get(_ context.Context, id int64) (*model.HostsSource, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	r, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (f *FakeStore) Count(_ context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return 0, f.Err
	}
	return len(f.rows), nil
}

func (f *FakeStore) ListAll(_ context.Context) ([]model.HostsSource, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	out := make([]model.HostsSource, 0, len(f.rows))
	for _, r := range f.rows {
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].URL == out[j].URL {
			return out[i].ID < out[j].ID
		}
		return out[i].URL < out[j].URL
	})
	return out, nil
}

func (f *FakeStore) ListEnabledURLs(_ context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	out := []string{}
	for _, r := range f.rows {
		if r.Enabled {
			out = append(out, r.URL)
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(out)))
	return out, nil
}

func (f *FakeStore) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

// Closed reports whether Close has been called.
func (f *FakeStore) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

var _ Store = (*FakeStore)(nil)
