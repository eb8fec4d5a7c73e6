package assistant

import (
	"fmt"
	"testing"
)

func TestHistoryTrimsOldest(t *testing.T) {
	h := NewHistory()

	for i := 0; i < 8; i++ {
		h.AppendAndTrim("u1", MaxHistory, fmt.Sprintf("q%d", i), fmt.Sprintf("a%d", i))
		if n := len(h.Get("u1")); n > MaxHistory {
			t.Fatalf("history grew to %d", n)
		}
	}

	got := h.Get("u1")
	if len(got) != MaxHistory || got[0] != "q3" || got[MaxHistory-1] != "a7" {
		t.Fatalf("unexpected history %v", got)
	}

	if len(h.Get("u2")) != 0 {
		t.Fatal("histories must be per user")
	}
}

func TestHistoryGetReturnsCopy(t *testing.T) {
	h := NewHistory()
	h.AppendAndTrim("u1", 0, "hello")

	got := h.Get("u1")
	got[0] = "changed"

	if h.Get("u1")[0] != "hello" {
		t.Fatal("Get must not expose internal state")
	}

	h.Clear("u1")
	if len(h.Get("u1")) != 0 {
		t.Fatal("expected empty history after clear")
	}
}
