package static

import (
	"net/http"
	"testing"
	"time"

	"github.com/catci/catci-server/internal/cache"
)

func TestNotModified(t *testing.T) {
	modTime := time.Date(2024, 6, 1, 10, 0, 0, 250_000_000, time.UTC)
	entry := &cache.Entry{ETag: `"abc"`, ModTime: modTime}

	testCases := []struct {
		name string
		inm  string
		ims  string
		want bool
	}{
		{"no validators", "", "", false},
		{"etag match", `"abc"`, "", true},
		{"etag mismatch", `"xyz"`, "", false},
		{"etag in list", `"xyz", "abc"`, "", true},
		{"weak etag", `W/"abc"`, "", true},
		{"wildcard", "*", "", true},
		{"unquoted does not match", "abc", "", false},
		{"ims equal second", "", modTime.Format(http.TimeFormat), true},
		{"ims later", "", modTime.Add(time.Hour).Format(http.TimeFormat), true},
		{"ims earlier", "", modTime.Add(-time.Second).Format(http.TimeFormat), false},
		{"ims garbage", "", "yesterday", false},
		{"etag mismatch but ims fresh", `"xyz"`, modTime.Format(http.TimeFormat), true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := notModified(entry, tc.inm, tc.ims); got != tc.want {
				t.Fatalf("notModified(%q, %q) = %v, want %v", tc.inm, tc.ims, got, tc.want)
			}
		})
	}

	if notModified(nil, `"abc"`, "") {
		t.Fatalf("nil entry is never fresh")
	}
}
