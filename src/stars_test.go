package game

import (
	"testing"
	"time"
)

func TestInitialStar(t *testing.T) {
	s, _ := newTestServer(t)
	snap := s.Snapshot()
	if len(snap.Stars) != 1 {
		t.Fatalf("stars at start = %d, want 1", len(snap.Stars))
	}
	star := snap.Stars[0]
	if star.ID == "" {
		t.Fatalf("star has no id")
	}
	if star.X < 20 || star.X > 780 || star.Y < 20 || star.Y > 580 {
		t.Fatalf("star (%v, %v) outside spawn margin", star.X, star.Y)
	}
}

func TestCollectStarAwardsSinglePlayer(t *testing.T) {
	s, clock := newTestServer(t)
	id := mustJoin(t, s, newFakeConn())
	// car center at (415, 315), 10 units from the star
	placePlayer(t, s, id, 400, 300, 0, 0)
	setStars(s, Star{X: 425, Y: 315, ID: "s1"})

	clock.Advance(time.Second)
	s.Tick()

	snap := s.Snapshot()
	if len(snap.Stars) != 0 {
		t.Fatalf("star not removed: %+v", snap.Stars)
	}
	if snap.Scores[id] != 1 {
		t.Fatalf("score = %d, want 1", snap.Scores[id])
	}
	s.mu.Lock()
	last := s.lastStarTime
	s.mu.Unlock()
	if !last.Equal(clock.Now()) {
		t.Fatalf("lastStarTime = %v, want %v", last, clock.Now())
	}
}

func TestCollectStarOutOfRange(t *testing.T) {
	s, _ := newTestServer(t)
	id := mustJoin(t, s, newFakeConn())
	placePlayer(t, s, id, 400, 300, 0, 0)
	// exactly at the collision distance does not count
	setStars(s, Star{X: 445, Y: 315, ID: "far"})

	s.Tick()

	snap := s.Snapshot()
	if len(snap.Stars) != 1 || snap.Scores[id] != 0 {
		t.Fatalf("star should survive: stars=%+v score=%d", snap.Stars, snap.Scores[id])
	}
}

func TestCollectStarFirstPlayerInJoinOrderWins(t *testing.T) {
	s, _ := newTestServer(t)
	first := mustJoin(t, s, newFakeConn())
	second := mustJoin(t, s, newFakeConn())
	placePlayer(t, s, first, 200, 200, 0, 0)
	placePlayer(t, s, second, 200, 200, 0, 0)
	setStars(s, Star{X: 215, Y: 215, ID: "contested"})

	s.Tick()

	snap := s.Snapshot()
	if snap.Scores[first] != 1 || snap.Scores[second] != 0 {
		t.Fatalf("scores = %v, want only %s to score", snap.Scores, first)
	}
	if len(snap.Stars) != 0 {
		t.Fatalf("star collected twice or not at all: %+v", snap.Stars)
	}
}

func TestCollectMultipleStarsInOneTick(t *testing.T) {
	s, _ := newTestServer(t)
	id := mustJoin(t, s, newFakeConn())
	placePlayer(t, s, id, 200, 200, 0, 0)
	setStars(s,
		Star{X: 215, Y: 215, ID: "a"},
		Star{X: 600, Y: 500, ID: "b"},
		Star{X: 220, Y: 210, ID: "c"},
	)

	s.Tick()

	snap := s.Snapshot()
	if snap.Scores[id] != 2 {
		t.Fatalf("score = %d, want 2", snap.Scores[id])
	}
	if len(snap.Stars) != 1 || snap.Stars[0].ID != "b" {
		t.Fatalf("remaining stars = %+v, want only b", snap.Stars)
	}
}

func TestSpawnStarAfterInterval(t *testing.T) {
	s, clock := newTestServer(t)
	setStars(s)

	clock.Advance(2999 * time.Millisecond)
	s.Tick()
	if n := len(s.Snapshot().Stars); n != 0 {
		t.Fatalf("spawned before interval: %d stars", n)
	}

	clock.Advance(time.Millisecond)
	s.Tick()
	snap := s.Snapshot()
	if len(snap.Stars) != 1 {
		t.Fatalf("stars after interval = %d, want exactly 1", len(snap.Stars))
	}
	star := snap.Stars[0]
	if star.X < 20 || star.X > 780 || star.Y < 20 || star.Y > 580 {
		t.Fatalf("star (%v, %v) outside spawn margin", star.X, star.Y)
	}

	// Already at the threshold; further ticks add nothing.
	clock.Advance(10 * time.Second)
	s.Tick()
	if n := len(s.Snapshot().Stars); n != 1 {
		t.Fatalf("stars = %d after extra tick, want 1", n)
	}
}

func TestSpawnWaitsAfterCollection(t *testing.T) {
	s, clock := newTestServer(t)
	id := mustJoin(t, s, newFakeConn())
	placePlayer(t, s, id, 100, 100, 0, 0)
	clock.Advance(10 * time.Second)
	setStars(s, Star{X: 115, Y: 115, ID: "s"})

	s.Tick()
	if n := len(s.Snapshot().Stars); n != 0 {
		t.Fatalf("spawned in the same tick as a collection: %d stars", n)
	}

	placePlayer(t, s, id, 0, 0, 0, 0)
	clock.Advance(3 * time.Second)
	s.Tick()
	if n := len(s.Snapshot().Stars); n != 1 {
		t.Fatalf("stars = %d three seconds after collection, want 1", n)
	}
}
