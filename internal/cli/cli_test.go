package cli

import (
	"bytes"
	"io"
	"testing"
)

func TestNew(t *testing.T) {
	c := New(io.Discard, LogInfo)
	if c == nil {
		t.Fatal("New() returned nil")
	}
	if c.Logger == nil {
		t.Fatal("New() should set a logger")
	}
}

func TestSetLogLevel(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, LogInfo)

	c.Logger.Debug("hidden")
	if buf.Len() != 0 {
		t.Fatal("debug message should be filtered at info level")
	}

	c.SetLogLevel(LogDebug)
	c.Logger.Debug("visible")
	if buf.Len() == 0 {
		t.Error("debug message should pass after SetLogLevel(LogDebug)")
	}
}

func TestRootCommand(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	if root.Use != appName {
		t.Errorf("root.Use = %q, want %q", root.Use, appName)
	}
	if root.Version == "" {
		t.Error("root command should carry a version")
	}

	subcommands := []string{
		"render", "layout", "visualize", "inspect", "browse",
		"sir", "schelling", "polling", "tweets", "regress", "completion",
	}
	for _, name := range subcommands {
		found := false
		for _, cmd := range root.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command missing %q subcommand", name)
		}
	}

	for _, flag := range []string{"verbose", "quiet", "config"} {
		if root.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("root command missing --%s persistent flag", flag)
		}
	}
}
