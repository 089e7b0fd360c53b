// Copyright (c) 2026 AdAway Team
// AdAway - hosts sources store
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/adaway/adaway/internal/model"
)

func TestTokenizeSearchQuery(t *testing.T) {
	if got := TokenizeSearchQuery("   "); got != nil {
		t.Fatalf("expected nil for blank query, got %v", got)
	}
	got := TokenizeSearchQuery("  Ads  MVPS ")
	if diff := cmp.Diff([]string{"ads", "mvps"}, got); diff != "" {
		t.Fatalf("unexpected tokens (-want +got):\n%s", diff)
	}
}

func TestFilterSourcesByTokens(t *testing.T) {
	sources := []model.HostsSource{
		{ID: 1, URL: "http://ads.example/hosts"},
		{ID: 2, URL: "http://ADS.example/malware"},
		{ID: 3, URL: "http://tracker.example/hosts"},
	}
	got := FilterSourcesByTokens(sources, []string{"ads", "hosts"})
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("expected only id 1, got %+v", got)
	}
	if got := FilterSourcesByTokens(sources, nil); len(got) != 3 {
		t.Fatalf("expected all sources without tokens, got %d", len(got))
	}
}

func TestSearchSources_MatchesLikeFake(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	if err := s.DeleteAll(ctx); err != nil {
		t.Fatalf("DeleteAll failed: %v", err)
	}
	fake := NewFakeStore()
	for _, u := range []string{
		"http://ads.example/hosts",
		"http://ADS.example/100%_block",
		"http://tracker.example/hosts",
		"http://ÄRGER.example/hosts",
	} {
		mustInsert(t, s, u)
		mustInsert(t, fake, u)
	}

	queries := []string{"", "ads", "ADS hosts", "%", "_block", "100%", "nothing-here", "mvps", "ärger", "ÄRGER hosts"}
	for _, q := range queries {
		want, err := fake.SearchSources(ctx, q)
		if err != nil {
			t.Fatalf("fake SearchSources(%q): %v", q, err)
		}
		got, err := s.SearchSources(ctx, q)
		if err != nil {
			t.Fatalf("SearchSources(%q): %v", q, err)
		}
		if diff := cmp.Diff(urlsOf(want), urlsOf(got)); diff != "" {
			t.Fatalf("SearchSources(%q) mismatch (-fake +sqlite):\n%s", q, diff)
		}
	}

	got, _ := s.SearchSources(ctx, "%")
	if len(got) != 1 || got[0].URL != "http://ADS.example/100%_block" {
		t.Fatalf("%% must match literally, got %+v", got)
	}
	got, _ = s.SearchSources(ctx, "ärger")
	if len(got) != 1 || got[0].URL != "http://ÄRGER.example/hosts" {
		t.Fatalf("non-ASCII search must ignore case, got %+v", got)
	}
}

func TestListAll_DuplicateURLsOrderedByID(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	if err := s.DeleteAll(ctx); err != nil {
		t.Fatalf("DeleteAll failed: %v", err)
	}
	fake := NewFakeStore()
	var sqliteFirst, fakeFirst int64
	for i, u := range []string{"http://dup.example", "http://b.example", "http://dup.example", "http://dup.example"} {
		id := mustInsert(t, s, u)
		fid := mustInsert(t, fake, u)
		if i == 0 {
			sqliteFirst, fakeFirst = id, fid
		}
	}
	// Only the oldest duplicate is disabled, so the flag shows the row order.
	if err := s.SetEnabled(ctx, sqliteFirst, false); err != nil {
		t.Fatalf("SetEnabled failed: %v", err)
	}
	if err := fake.SetEnabled(ctx, fakeFirst, false); err != nil {
		t.Fatalf("fake SetEnabled failed: %v", err)
	}

	want, _ := fake.ListAll(ctx)
	got, err := s.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if diff := cmp.Diff(rowsOf(want), rowsOf(got)); diff != "" {
		t.Fatalf("ListAll mismatch (-fake +sqlite):\n%s", diff)
	}
	for i := 1; i < len(got); i++ {
		if got[i].URL == got[i-1].URL && got[i].ID < got[i-1].ID {
			t.Fatalf("duplicate urls not ordered by id: %+v", got)
		}
	}

	wantSearch, _ := fake.SearchSources(ctx, "dup")
	gotSearch, err := s.SearchSources(ctx, "dup")
	if err != nil {
		t.Fatalf("SearchSources failed: %v", err)
	}
	if diff := cmp.Diff(rowsOf(wantSearch), rowsOf(gotSearch)); diff != "" {
		t.Fatalf("SearchSources mismatch (-fake +sqlite):\n%s", diff)
	}
}

// rowsOf drops ids, which differ between stores.
func rowsOf(sources []model.HostsSource) []string {
	out := make([]string, 0, len(sources))
	for _, s := range sources {
		out = append(out, fmt.Sprintf("%s enabled=%t", s.URL, s.Enabled))
	}
	return out
}

func urlsOf(sources []model.HostsSource) []string {
	out := make([]string, 0, len(sources))
	for _, s := range sources {
		out = append(out, s.URL)
	}
	return out
}
