package helpers

import (
	"time"

	"github.com/karrick/tparse/v2"
	"github.com/pkg/errors"
)

// WindowStart computes the recency cutoff for a collection pass. With an
// empty $since it is $months calendar months before now; otherwise $since is
// parsed either as RFC3339 or as a relative expression like "now-90d".
func WindowStart(months int, since string) (time.Time, error) {
	if since == "" {
		return time.Now().AddDate(0, -months, 0), nil
	}

	t, err := tparse.ParseNow(time.RFC3339, since)
	if err != nil {
		return time.Time{}, errors.Wrap(err, "invalid since parameter")
	}
	if t.After(time.Now()) {
		return time.Time{}, errors.New("since must be in the past")
	}
	return t, nil
}
