package cmd_test

import (
	"bytes"
	"os"
	"testing"

	fcolor "github.com/fatih/color"
	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/geostack-dev/geostack/pkg/cli/cmd"
)

func TestMain(m *testing.M) {
	fcolor.NoColor = true

	exitCode := m.Run()

	snaps.Clean(m, snaps.CleanOpts{Sort: true})

	os.Exit(exitCode)
}

func TestNewRootCmdVersionFormatting(t *testing.T) {
	t.Parallel()

	version := "1.2.3"
	commit := "abc123"
	date := "2026-08-29"
	root := cmd.NewRootCmd(version, commit, date)

	expectedVersion := version + " (Built on " + date + " from Git SHA " + commit + ")"
	if root.Version != expectedVersion {
		t.Fatalf("unexpected version string. want %q, got %q", expectedVersion, root.Version)
	}
}

func TestExecuteShowsHelp(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	root := cmd.NewRootCmd("", "", "")
	root.SetOut(&out)

	_ = root.Execute()

	snaps.MatchSnapshot(t, out.String())
}

func TestExecuteShowsHelpFlag(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	root := cmd.NewRootCmd("", "", "")
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"--help"})

	_ = root.Execute()

	snaps.MatchSnapshot(t, out.String())
}

func TestExecuteShowsVersion(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	root := cmd.NewRootCmd("1.2.3", "abc123", "2026-08-29")
	root.SetOut(&out)
	root.SetArgs([]string{"--version"})

	_ = root.Execute()

	snaps.MatchSnapshot(t, out.String())
}

func TestNewRootCmdDebugFlagDefaultFalse(t *testing.T) {
	t.Parallel()

	root := cmd.NewRootCmd("test", "test", "test")

	flag := root.PersistentFlags().Lookup(cmd.DebugFlagName)
	if flag == nil {
		t.Fatalf("expected persistent flag %q to exist", cmd.DebugFlagName)
	}

	got, err := root.PersistentFlags().GetBool(cmd.DebugFlagName)
	if err != nil {
		t.Fatalf("expected to read %q flag: %v", cmd.DebugFlagName, err)
	}

	if got {
		t.Fatalf("expected %q to default to false", cmd.DebugFlagName)
	}
}

func TestRootCmdHasAllSubcommands(t *testing.T) {
	t.Parallel()

	root := cmd.NewRootCmd("test", "test", "test")

	expected := []string{"init", "up", "down", "start", "stop", "status", "logs", "backup"}
	for _, name := range expected {
		found := false

		for _, sub := range root.Commands() {
			if sub.Name() == name {
				found = true

				break
			}
		}

		if !found {
			t.Fatalf("expected subcommand %q to be registered", name)
		}
	}
}
