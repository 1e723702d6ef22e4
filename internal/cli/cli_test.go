package cli

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/charmbracelet/log"
)

func TestRootCommandRegistersSubcommands(t *testing.T) {
	c := New(os.Stderr, log.InfoLevel)
	root := c.RootCommand()

	if root.Use != "pebblecal" {
		t.Errorf("root use = %q", root.Use)
	}

	var names []string
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	for _, want := range []string{"generate", "preview", "locales", "cache", "completion"} {
		if !slices.Contains(names, want) {
			t.Errorf("missing subcommand %q (have %v)", want, names)
		}
	}
}

func TestRootCommandAttachesContextLogger(t *testing.T) {
	c := New(os.Stderr, log.InfoLevel)
	root := c.RootCommand()
	root.SetContext(context.Background())

	if err := root.PersistentPreRunE(root, nil); err != nil {
		t.Fatal(err)
	}
	if got := loggerFromContext(root.Context()); got != c.Logger {
		t.Error("command context should carry the CLI logger")
	}
}

func TestParseFormats(t *testing.T) {
	if got := parseFormats(""); len(got) != 1 || got[0] != "svg" {
		t.Errorf("empty formats = %v", got)
	}
	if got := parseFormats("svg,pdf"); len(got) != 2 || got[1] != "pdf" {
		t.Errorf("formats = %v", got)
	}
}

func TestParseList(t *testing.T) {
	if got := parseList(""); got != nil {
		t.Errorf("empty list = %v", got)
	}
	got := parseList("sk, cz ,")
	if len(got) != 2 || got[0] != "sk" || got[1] != "cz" {
		t.Errorf("list = %v", got)
	}
}

func TestCacheDirRespectsXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", dir)

	got, err := cacheDir()
	if err != nil {
		t.Fatal(err)
	}
	if got != filepath.Join(dir, "pebblecal") {
		t.Errorf("cacheDir() = %q", got)
	}
}
