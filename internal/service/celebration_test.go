package service

import (
	"testing"
	"time"
)

func TestCelebrationFiresOnCrossing(t *testing.T) {
	c := NewCelebrationService(time.Minute)

	if !c.Observe("u1", "g1", "Run a marathon", 50, 100) {
		t.Fatal("crossing from 50 to 100 should fire")
	}

	active, title := c.Current("u1")
	if !active || title != "Run a marathon" {
		t.Fatalf("Current() = (%v, %q), want (true, \"Run a marathon\")", active, title)
	}
}

func TestCelebrationFiresOncePerStreak(t *testing.T) {
	c := NewCelebrationService(time.Minute)

	if !c.Observe("u1", "g1", "t", 50, 100) {
		t.Fatal("first crossing should fire")
	}
	if c.Observe("u1", "g1", "t", 100, 100) {
		t.Fatal("already at 100 should not re-fire")
	}
}

func TestCelebrationRearmsAfterRegression(t *testing.T) {
	c := NewCelebrationService(time.Minute)

	if !c.Observe("u1", "g1", "t", 50, 100) {
		t.Fatal("first crossing should fire")
	}
	if c.Observe("u1", "g1", "t", 100, 50) {
		t.Fatal("regression should not fire")
	}
	if !c.Observe("u1", "g1", "t", 50, 100) {
		t.Fatal("re-completion after regression should fire again")
	}
}

func TestCelebrationNeverFiresBelowFull(t *testing.T) {
	c := NewCelebrationService(time.Minute)

	if c.Observe("u1", "g1", "t", 0, 50) {
		t.Fatal("partial progress should not fire")
	}
	if c.Observe("u1", "g1", "t", 99, 99) {
		t.Fatal("staying below 100 should not fire")
	}
}

func TestCelebrationLatchesPerGoal(t *testing.T) {
	c := NewCelebrationService(time.Minute)

	if !c.Observe("u1", "g1", "first", 50, 100) {
		t.Fatal("g1 should fire")
	}
	if !c.Observe("u1", "g2", "second", 50, 100) {
		t.Fatal("g2 has its own latch and should fire")
	}

	_, title := c.Current("u1")
	if title != "second" {
		t.Fatalf("display should show the user's latest celebration, got %q", title)
	}
}

func TestCelebrationDisplayIsScopedPerUser(t *testing.T) {
	c := NewCelebrationService(time.Minute)

	if !c.Observe("alice", "g1", "Alice's private goal", 50, 100) {
		t.Fatal("alice's crossing should fire")
	}

	// Another user polling their overlay must never see alice's title.
	active, title := c.Current("bob")
	if active || title != "" {
		t.Fatalf("bob's Current() = (%v, %q), want (false, \"\")", active, title)
	}

	if !c.Observe("bob", "g2", "Bob's goal", 0, 100) {
		t.Fatal("bob's crossing should fire")
	}

	// Both overlays are up, each with its own title.
	if _, title := c.Current("alice"); title != "Alice's private goal" {
		t.Fatalf("alice sees %q, want her own celebration", title)
	}
	if _, title := c.Current("bob"); title != "Bob's goal" {
		t.Fatalf("bob sees %q, want his own celebration", title)
	}
}

func TestCelebrationAutoDismisses(t *testing.T) {
	c := NewCelebrationService(30 * time.Millisecond)

	c.Observe("u1", "g1", "t", 50, 100)

	time.Sleep(80 * time.Millisecond)

	active, title := c.Current("u1")
	if active || title != "" {
		t.Fatalf("display should have cleared, got (%v, %q)", active, title)
	}
}

func TestCelebrationTimerRestartsForSameUser(t *testing.T) {
	c := NewCelebrationService(60 * time.Millisecond)

	c.Observe("u1", "g1", "first", 50, 100)
	time.Sleep(40 * time.Millisecond)

	// Second celebration arrives before the first would have dismissed.
	c.Observe("u1", "g2", "second", 50, 100)
	time.Sleep(40 * time.Millisecond)

	// 80ms after the first celebration the display must still be up,
	// because the second one restarted the clock.
	active, title := c.Current("u1")
	if !active || title != "second" {
		t.Fatalf("display should still show second celebration, got (%v, %q)", active, title)
	}

	time.Sleep(50 * time.Millisecond)
	active, _ = c.Current("u1")
	if active {
		t.Fatal("display should have cleared after the restarted window elapsed")
	}
}

func TestCelebrationTimersDoNotCrossUsers(t *testing.T) {
	c := NewCelebrationService(60 * time.Millisecond)

	c.Observe("alice", "g1", "a", 50, 100)
	time.Sleep(40 * time.Millisecond)

	// Bob's celebration must not restart alice's dismiss timer.
	c.Observe("bob", "g2", "b", 50, 100)
	time.Sleep(40 * time.Millisecond)

	if active, _ := c.Current("alice"); active {
		t.Fatal("alice's overlay should have dismissed on its own schedule")
	}
	if active, title := c.Current("bob"); !active || title != "b" {
		t.Fatalf("bob's overlay should still be up, got (%v, %q)", active, title)
	}
}

func TestCelebrationForgetDropsLatch(t *testing.T) {
	c := NewCelebrationService(time.Minute)

	c.Observe("u1", "g1", "t", 50, 100)
	c.Forget("g1")

	if !c.Observe("u1", "g1", "t", 50, 100) {
		t.Fatal("a forgotten goal should celebrate like a new one")
	}
}
