package cli

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/pebblecal/pkg/calgrid"
)

func previewFixture(t *testing.T) previewModel {
	t.Helper()
	loc, err := calgrid.Lookup("sk")
	if err != nil {
		t.Fatal(err)
	}
	rule, err := previewRule(2023, []string{"cz"}, []string{"sk"})
	if err != nil {
		t.Fatal(err)
	}
	return newPreviewModel(2023, loc, false, rule)
}

func TestPreviewModelNavigation(t *testing.T) {
	m := previewFixture(t)
	if m.month != time.January {
		t.Fatalf("start month = %v", m.month)
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m = next.(previewModel)
	if m.month != time.February {
		t.Errorf("after right: %v", m.month)
	}

	prev, _ := m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m = prev.(previewModel)
	if m.month != time.January {
		t.Errorf("after left: %v", m.month)
	}

	// January is the lower bound.
	prev, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if prev.(previewModel).month != time.January {
		t.Error("left below January should stay put")
	}
}

func TestPreviewModelQuit(t *testing.T) {
	m := previewFixture(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
}

func TestPreviewModelView(t *testing.T) {
	m := previewFixture(t)
	m.month = time.July
	view := m.View()

	if !strings.Contains(view, "Júl 2023") {
		t.Error("view missing month title")
	}
	for _, name := range []string{"Po", "Ne"} {
		if !strings.Contains(view, name) {
			t.Errorf("view missing weekday header %q", name)
		}
	}
	if !strings.Contains(view, "31") {
		t.Error("view missing the last day of July")
	}
}
