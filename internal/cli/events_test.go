package cli

import (
	"testing"
	"time"
)

func TestParseSinceDuration(t *testing.T) {
	now := time.Now()

	got, err := parseSinceDuration("7d")
	if err != nil {
		t.Fatalf("parse 7d: %v", err)
	}
	want := now.AddDate(0, 0, -7)
	if got.Sub(want) > time.Minute || want.Sub(got) > time.Minute {
		t.Fatalf("7d gave %s, want about %s", got, want)
	}

	got, err = parseSinceDuration("24h")
	if err != nil {
		t.Fatalf("parse 24h: %v", err)
	}
	want = now.Add(-24 * time.Hour)
	if got.Sub(want) > time.Minute || want.Sub(got) > time.Minute {
		t.Fatalf("24h gave %s, want about %s", got, want)
	}

	for _, bad := range []string{"", "soon", "d", "x7d"} {
		if _, err := parseSinceDuration(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}
