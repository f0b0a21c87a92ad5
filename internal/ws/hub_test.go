package ws

import (
	"context"
	"encoding/json"
	"testing"

	"kuztube_backend/internal/domain"
	"kuztube_backend/internal/notify"
)

func newTestClient(userID int64, hub *Hub) *Client {
	return NewClient(userID, nil, hub)
}

func TestRegisterAndPublish(t *testing.T) {
	hub := NewHub()

	a := newTestClient(1, hub)
	b := newTestClient(1, hub)
	other := newTestClient(2, hub)
	hub.Register(a)
	hub.Register(b)
	hub.Register(other)

	if got := hub.SessionCount(1); got != 2 {
		t.Fatalf("SessionCount(1) = %d, want 2", got)
	}

	hub.Publish(1, []byte("hello"))

	for _, c := range []*Client{a, b} {
		select {
		case msg := <-c.Send:
			if string(msg) != "hello" {
				t.Errorf("got %q, want hello", msg)
			}
		default:
			t.Error("session of user 1 did not receive the message")
		}
	}

	select {
	case msg := <-other.Send:
		t.Errorf("user 2 received %q", msg)
	default:
	}
}

func TestUnregisterClosesSend(t *testing.T) {
	hub := NewHub()
	c := newTestClient(1, hub)
	hub.Register(c)
	hub.Unregister(c)

	if got := hub.SessionCount(1); got != 0 {
		t.Fatalf("SessionCount after unregister = %d, want 0", got)
	}
	if _, open := <-c.Send; open {
		t.Error("Send channel must be closed on unregister")
	}

	// double unregister is a no-op
	hub.Unregister(c)
}

func TestPublishSkipsFullBuffers(t *testing.T) {
	hub := NewHub()
	c := newTestClient(1, hub)
	hub.Register(c)

	for i := 0; i < cap(c.Send); i++ {
		c.Send <- []byte("fill")
	}

	// must not block
	hub.Publish(1, []byte("overflow"))

	if got := len(c.Send); got != cap(c.Send) {
		t.Errorf("buffer length = %d, want %d", got, cap(c.Send))
	}
}

func TestNotifierEvents(t *testing.T) {
	hub := NewHub()
	c := newTestClient(7, hub)
	hub.Register(c)

	stats := domain.NewUserStats()
	stats.XP = 42
	hub.StatsChanged(context.Background(), 7, stats)

	var ev notify.Event
	select {
	case msg := <-c.Send:
		if err := json.Unmarshal(msg, &ev); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
	default:
		t.Fatal("no stats_changed event delivered")
	}
	if ev.Type != notify.EventStatsChanged || ev.UserID != 7 {
		t.Errorf("event = %+v", ev)
	}

	ach, _ := domain.AchievementByID("first_watch")
	hub.AchievementUnlocked(context.Background(), 7, ach)

	select {
	case msg := <-c.Send:
		if err := json.Unmarshal(msg, &ev); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
	default:
		t.Fatal("no achievement event delivered")
	}
	if ev.Type != notify.EventAchievementUnlocked {
		t.Errorf("type = %q", ev.Type)
	}
}
