// Package buildinfo provides build-time version information.
package buildinfo

import (
	"runtime"
	"runtime/debug"
	"sync"
)

// Build-time variables (set via ldflags).
var (
	// Version is the semantic version.
	Version = "dev"

	// Commit is the git commit hash.
	Commit = "unknown"

	// BuildTime is the build timestamp.
	BuildTime = "unknown"
)

// Info contains build information.
type Info struct {
	Version   string `json:"version" yaml:"version"`
	Commit    string `json:"commit" yaml:"commit"`
	BuildTime string `json:"build_time" yaml:"build_time"`
	GoVersion string `json:"go_version" yaml:"go_version"`
	Modified  bool   `json:"modified,omitempty" yaml:"modified,omitempty"`
}

var (
	infoOnce sync.Once
	info     Info
)

// Get returns the build information.
func Get() Info {
	infoOnce.Do(func() {
		info = resolve(Version, Commit, BuildTime, readVCS())
	})
	return info
}

// String returns a formatted version string.
func String() string {
	i := Get()
	s := i.Version + " (" + i.Commit
	if i.Modified {
		s += "+dirty"
	}
	return s + ") built at " + i.BuildTime
}

type vcsInfo struct {
	revision string
	time     string
	modified bool
}

func readVCS() vcsInfo {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return vcsInfo{}
	}
	var v vcsInfo
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			v.revision = s.Value
		case "vcs.time":
			v.time = s.Value
		case "vcs.modified":
			v.modified = s.Value == "true"
		}
	}
	return v
}

func resolve(version, commit, buildTime string, vcs vcsInfo) Info {
	i := Info{
		Version:   version,
		Commit:    commit,
		BuildTime: buildTime,
		GoVersion: runtime.Version(),
		Modified:  vcs.modified,
	}
	if i.Commit == "unknown" && vcs.revision != "" {
		i.Commit = vcs.revision
		if len(i.Commit) > 12 {
			i.Commit = i.Commit[:12]
		}
	}
	if i.BuildTime == "unknown" && vcs.time != "" {
		i.BuildTime = vcs.time
	}
	return i
}
