package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/fatih/color"

	"github.com/calumari/ts2mbt/cmd/ts2mbt/commands"
	"github.com/calumari/ts2mbt/internal/errors"
)

// deriveVersion inspects build info for module version or vcs revision.
// preference order: module semantic version -> short commit hash -> "devel".
func deriveVersion() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return "devel"
	}
	return versionFrom(bi)
}

func versionFrom(bi *debug.BuildInfo) string {
	if bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		return bi.Main.Version
	}
	var revision string
	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" && s.Value != "" {
			revision = s.Value
			break
		}
	}
	if len(revision) >= 12 {
		return revision[:12]
	}
	if revision != "" {
		return revision
	}
	return "devel"
}

func main() {
	root := commands.NewRootCommand(deriveVersion())
	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "%s %s\n", color.RedString("ts2mbt:"), errors.UserMessage(err))
		os.Exit(1)
	}
}
