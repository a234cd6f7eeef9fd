package threat

import (
	"encoding/hex"
	"testing"
	"time"
)

func TestIntegrityDigest(t *testing.T) {
	ts := time.Date(2025, 3, 14, 9, 26, 53, 589793000, time.UTC)

	first := IntegrityDigest("https://files.example.com/evidence/1.png", ts)
	second := IntegrityDigest("https://files.example.com/evidence/1.png", ts)

	if first != second {
		t.Errorf("same inputs produced different digests: %s vs %s", first, second)
	}
	if len(first) != 64 {
		t.Errorf("digest length = %d, want 64 hex characters", len(first))
	}
	if _, err := hex.DecodeString(first); err != nil {
		t.Errorf("digest is not valid hex: %v", err)
	}
}

func TestIntegrityDigestFreshness(t *testing.T) {
	ts := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	locator := "https://files.example.com/evidence/1.png"

	cases := []time.Time{
		ts.Add(time.Nanosecond),
		ts.Add(time.Second),
		ts.Add(24 * time.Hour),
	}
	base := IntegrityDigest(locator, ts)
	for _, other := range cases {
		if IntegrityDigest(locator, other) == base {
			t.Errorf("timestamps %v and %v produced the same digest", ts, other)
		}
	}
}

func TestIntegrityDigestDependsOnLocator(t *testing.T) {
	ts := time.Now().UTC()
	if IntegrityDigest("a.png", ts) == IntegrityDigest("b.png", ts) {
		t.Error("different locators produced the same digest")
	}
}
