package summary

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lingodeck/internal/practice"
)

func testSummary() practice.Summary {
	return practice.Summary{
		Correct:   2,
		Incorrect: 1,
		Total:     3,
		Percent:   200.0 / 3,
		Duration:  95 * time.Second,
	}
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New("Spanish basics", testSummary())
	if s.Title() != "Session Summary" {
		t.Errorf("Title = %q, want %q", s.Title(), "Session Summary")
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	s := New("Spanish basics", testSummary())
	view := s.View(80, 24)
	for _, want := range []string{"Spanish basics", "1:35", "2 correct", "1 incorrect", "67%"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestSummaryScreen_EmptySession(t *testing.T) {
	s := New("Empty", practice.Summary{})
	view := s.View(80, 24)
	if !strings.Contains(view, "Nothing to practice") {
		t.Error("expected empty-session title")
	}
	if !strings.Contains(view, "0%") {
		t.Error("expected 0% score")
	}
}

func TestSummaryScreen_RestartKeys(t *testing.T) {
	for _, msg := range []tea.KeyPressMsg{
		{Code: 'r', Text: "r"},
		{Code: tea.KeyEnter},
	} {
		s := New("Set", testSummary())
		_, cmd := s.Update(msg)
		if cmd == nil {
			t.Errorf("expected a command on %q", msg.String())
		}
	}
}

func TestSummaryScreen_Navigation_Esc(t *testing.T) {
	s := New("Set", testSummary())
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Error("expected a command on Esc")
	}
}

func TestSummaryScreen_IgnoresOtherKeys(t *testing.T) {
	s := New("Set", testSummary())
	_, cmd := s.Update(tea.KeyPressMsg{Code: 'x', Text: "x"})
	if cmd != nil {
		t.Error("expected no command for unbound key")
	}
}

func TestSummaryScreen_HandlesBack(t *testing.T) {
	s := New("Set", testSummary())
	if !s.HandlesBack() {
		t.Error("summary must handle Esc itself")
	}
	if len(s.KeyHints()) != 2 {
		t.Errorf("KeyHints length = %d, want 2", len(s.KeyHints()))
	}
}

func TestScoreColor(t *testing.T) {
	if scoreColor(90) == scoreColor(10) {
		t.Error("expected different colors for high and low scores")
	}
}
