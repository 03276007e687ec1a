package datawarehouse

import (
	"fmt"
	"testing"
	"time"
)

var t0 = time.Date(2024, 3, 14, 9, 0, 0, 0, time.UTC)

func at(d time.Duration) time.Time {
	return t0.Add(d)
}

// sequentialIDs yields UUID-shaped ids 1, 2, 3, ... so documents are
// reproducible.
func sequentialIDs() IDGenerator {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("00000000-0000-4000-8000-%012d", n)
	}
}

func testConfig(t *testing.T) Config {
	t.Helper()
	return Config{DestinationDir: t.TempDir(), Timezone: "UTC"}
}

func mustMarshal(t *testing.T, w *Warehouse) []byte {
	t.Helper()
	out, err := w.Marshal()
	if err != nil {
		t.Fatalf("Marshal() err=%v", err)
	}
	return out
}
