package history

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lingodeck/internal/router"
	"github.com/abhisek/lingodeck/internal/store"
)

type stubSessions struct {
	sessions []store.SessionSummary
	err      error
	limit    int
}

func (s *stubSessions) AppendSessionEvent(context.Context, store.SessionEventData) error { return nil }
func (s *stubSessions) AppendOutcomeEvent(context.Context, store.OutcomeEventData) error { return nil }
func (s *stubSessions) SetAccuracy(context.Context, string) (store.Accuracy, error) {
	return store.Accuracy{}, nil
}
func (s *stubSessions) RecentSessions(_ context.Context, limit int) ([]store.SessionSummary, error) {
	s.limit = limit
	return s.sessions, s.err
}

func loaded(t *testing.T, repo *stubSessions) *HistoryScreen {
	t.Helper()
	s := New(repo)
	s.Update(s.Init()())
	return s
}

func TestHistoryScreen_Empty(t *testing.T) {
	s := loaded(t, &stubSessions{})
	if !strings.Contains(s.View(80, 20), "No sessions yet") {
		t.Error("expected empty message")
	}
}

func TestHistoryScreen_ListsSessions(t *testing.T) {
	repo := &stubSessions{sessions: []store.SessionSummary{
		{SessionID: "a", SetName: "Spanish", Correct: 3, Incorrect: 1, Duration: 65 * time.Second, EndedAt: time.Now()},
		{SessionID: "b", SetName: "", Correct: 0, Incorrect: 2, Duration: 10 * time.Second, EndedAt: time.Now()},
	}}
	s := loaded(t, repo)

	if repo.limit != maxSessions {
		t.Errorf("limit = %d, want %d", repo.limit, maxSessions)
	}
	view := s.View(100, 20)
	for _, want := range []string{"Spanish", "1:05", "3/4", "75%", "(deleted set)"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestHistoryScreen_Error(t *testing.T) {
	s := loaded(t, &stubSessions{err: context.DeadlineExceeded})
	if !strings.Contains(s.View(80, 20), "Error") {
		t.Error("expected error view")
	}
}

func TestHistoryScreen_Navigation(t *testing.T) {
	repo := &stubSessions{sessions: make([]store.SessionSummary, 3)}
	s := loaded(t, repo)

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if s.selected != 2 {
		t.Errorf("selected = %d, want 2", s.selected)
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if s.selected != 1 {
		t.Errorf("selected = %d, want 1", s.selected)
	}

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}
