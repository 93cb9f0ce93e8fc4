package fetch

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/trendhawk/trendhawk/pkg/trendhawk/trend"
)

type stubFetcher struct {
	name  string
	items []trend.Item
	err   error
}

func (s stubFetcher) Source() string { return s.name }

func (s stubFetcher) Fetch(ctx context.Context) ([]trend.Item, error) {
	return s.items, s.err
}

func TestFetchAllSoftFails(t *testing.T) {
	ok := stubFetcher{
		name: "reddit",
		items: []trend.Item{
			trend.NewItem("reddit", "a post", "https://reddit.example/a", 1.0, "tech", nil),
		},
	}
	broken := stubFetcher{name: "twitter", err: fmt.Errorf("all nitter instances down")}

	snap := FetchAll(context.Background(), nil, ok, broken)

	if len(snap.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(snap.Items))
	}
	if got := snap.Sources["reddit"]; !got.OK() || got.Count != 1 {
		t.Errorf("reddit status = %+v", got)
	}
	tw := snap.Sources["twitter"]
	if tw.OK() {
		t.Error("twitter should not be ok")
	}
	if tw.Count != 0 || !strings.HasPrefix(tw.Status, "error: ") {
		t.Errorf("twitter status = %+v", tw)
	}
	if !strings.Contains(tw.Status, "nitter instances down") {
		t.Errorf("status should carry the cause, got %q", tw.Status)
	}
	if snap.Timestamp.IsZero() || snap.Timestamp.Location() != time.UTC {
		t.Errorf("timestamp = %v, want non-zero UTC", snap.Timestamp)
	}
}

func TestFetchAllTruncatesLongErrors(t *testing.T) {
	long := stubFetcher{name: "youtube", err: fmt.Errorf("%s", strings.Repeat("x", 400))}

	snap := FetchAll(context.Background(), nil, long)
	status := snap.Sources["youtube"].Status
	if len(status) != len("error: ")+200 {
		t.Errorf("status length = %d, want %d", len(status), len("error: ")+200)
	}
}

func TestTruncateRuneSafe(t *testing.T) {
	s := strings.Repeat("é", 10)
	got := truncate(s, 4)
	if got != strings.Repeat("é", 4) {
		t.Errorf("truncate = %q", got)
	}
	if truncate("short", 10) != "short" {
		t.Error("short strings must pass through")
	}
}
