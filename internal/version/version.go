// Package version reports the build version of the datagrid binaries.
package version

import (
	"runtime/debug"
	"strings"
)

// Set at build time via -ldflags "-X datagrid/internal/version.Version=...".
var (
	Version = "dev"
	Commit  = ""
	Date    = ""
)

// String returns "version (commit) date", falling back to the VCS revision
// recorded by the Go toolchain when Commit was not set.
func String() string {
	commit, date := Commit, Date
	if commit == "" {
		commit, date = vcsInfo(date)
	}
	return format(Version, commit, date)
}

func format(version, commit, date string) string {
	var b strings.Builder
	b.WriteString(version)
	if commit != "" {
		if len(commit) > 12 {
			commit = commit[:12]
		}
		b.WriteString(" (" + commit + ")")
	}
	if date != "" {
		b.WriteString(" " + date)
	}
	return b.String()
}

func vcsInfo(date string) (string, string) {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "", date
	}
	commit := ""
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			commit = s.Value
		case "vcs.time":
			if date == "" {
				date = s.Value
			}
		}
	}
	return commit, date
}
