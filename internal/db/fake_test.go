package db

import (
	"context"
	"errors"
	"testing"

	"github.com/adaway/adaway/internal/model"
	"github.com/google/go-cmp/cmp"
)

// TestFakeStore_MatchesSqliteSemantics runs the same script against the
// fake and the sqlite store and expects identical observable results.
func TestFakeStore_MatchesSqliteSemantics(t *testing.T) {
	ctx := context.Background()
	sq := newTestStore(t)
	if err := sq.DeleteAll(ctx); err != nil {
		t.Fatalf("DeleteAll failed: %v", err)
	}
	fake := NewFakeStore()

	for _, s := range []Store{sq, fake} {
		a := mustInsert(t, s, "http://m.example")
		b := mustInsert(t, s, "http://z.example")
		mustInsert(t, s, "http://a.example")
		_ = s.SetEnabled(ctx, b, false)
		_ = s.Update(ctx, a, "http://n.example")
		_ = s.Delete(ctx, 424242)
	}

	sqAll, _ := sq.ListAll(ctx)
	fakeAll, _ := fake.ListAll(ctx)
	if diff := cmp.Diff(sqAll, fakeAll); diff != "" {
		t.Fatalf("ListAll differs (-sqlite +fake):\n%s", diff)
	}
	sqEnabled, _ := sq.ListEnabledURLs(ctx)
	fakeEnabled, _ := fake.ListEnabledURLs(ctx)
	if diff := cmp.Diff(sqEnabled, fakeEnabled); diff != "" {
		t.Fatalf("ListEnabledURLs differs (-sqlite +fake):\n%s", diff)
	}
}

func TestFakeStore_ErrAndClose(t *testing.T) {
	f := NewFakeStore(model.HostsSource{URL: "http://x.example", Enabled: true})
	boom := errors.New("boom")
	f.Err = boom
	if _, err := f.ListAll(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected injected error, got %v", err)
	}
	_ = f.Close()
	if !f.Closed() {
		t.Fatalf("expected Closed() after Close")
	}
}
