package agencia

import (
	"testing"
	"time"
)

func TestLimiterBlocksAfterMax(t *testing.T) {
	l := newUploadLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !l.Allow("1.2.3.4") {
			t.Fatalf("attempt %d should be allowed", i+1)
		}
	}
	if l.Allow("1.2.3.4") {
		t.Error("attempt over the limit should be blocked")
	}
}

func TestLimiterIsPerIP(t *testing.T) {
	l := newUploadLimiter(1, time.Minute)

	if !l.Allow("1.2.3.4") {
		t.Fatal("first IP should be allowed")
	}
	if !l.Allow("5.6.7.8") {
		t.Error("second IP should not share the first IP's budget")
	}
	if l.Allow("1.2.3.4") {
		t.Error("first IP should be exhausted")
	}
}

func TestLimiterResetsAfterWindow(t *testing.T) {
	l := newUploadLimiter(1, 50*time.Millisecond)

	if !l.Allow("1.2.3.4") {
		t.Fatal("first attempt should be allowed")
	}
	if l.Allow("1.2.3.4") {
		t.Fatal("second attempt should be blocked")
	}
	time.Sleep(60 * time.Millisecond)
	if !l.Allow("1.2.3.4") {
		t.Error("attempt after the window should be allowed")
	}
}
