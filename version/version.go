package version

import (
	"fmt"
	"runtime/debug"
	"strings"
	"time"
)

// Set with -ldflags -X. Empty values fall back to the VCS stamp the Go
// toolchain embeds in the binary.
var (
	Version   = "dev"
	GitCommit = ""
	GitBranch = ""
	BuildTime = ""
	GoVersion = ""
)

// Info is the build description served by the hub's /info endpoint.
type Info struct {
	Version   string    `json:"version"`
	GitCommit string    `json:"git_commit"`
	GitBranch string    `json:"git_branch"`
	BuildTime string    `json:"build_time"`
	GoVersion string    `json:"go_version"`
	BuildDate time.Time `json:"build_date"`
	IsRelease bool      `json:"is_release"`
	IsDirty   bool      `json:"is_dirty"`
}

const shortCommit = 7

// GetVersionInfo merges the linker-set values with the embedded VCS stamp.
func GetVersionInfo() *Info {
	info := &Info{
		Version:   Version,
		GitCommit: GitCommit,
		GitBranch: GitBranch,
		BuildTime: BuildTime,
		GoVersion: GoVersion,
		IsRelease: Version != "dev" && !strings.Contains(Version, "dirty"),
	}
	if t, err := time.Parse(time.RFC3339, BuildTime); err == nil {
		info.BuildDate = t
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		info.fillFromBuild(bi)
	}
	if info.BuildDate.IsZero() {
		info.BuildDate = time.Now().UTC()
		info.BuildTime = info.BuildDate.Format(time.RFC3339)
	}
	return info
}

func (i *Info) fillFromBuild(bi *debug.BuildInfo) {
	if i.GoVersion == "" {
		i.GoVersion = bi.GoVersion
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if i.GitCommit == "" {
				i.GitCommit = s.Value[:min(len(s.Value), shortCommit)]
			}
		case "vcs.modified":
			i.IsDirty = s.Value == "true"
		case "vcs.time":
			if BuildTime != "" {
				continue
			}
			if t, err := time.Parse(time.RFC3339, s.Value); err == nil {
				i.BuildDate = t
				i.BuildTime = s.Value
			}
		}
	}
}

// GetShortVersion returns version-commit, suffixed with -dirty for builds
// from a modified tree.
func GetShortVersion() string {
	info := GetVersionInfo()
	if info.GitCommit == "" {
		return info.Version
	}
	v := info.Version + "-" + info.GitCommit
	if info.IsDirty {
		v += "-dirty"
	}
	return v
}

// GetFullVersion is printed by `mercure version`. Branches other than main
// and master are included.
func GetFullVersion() string {
	info := GetVersionInfo()
	parts := []string{info.Version}
	if info.GitCommit != "" {
		parts = append(parts, info.GitCommit)
	}
	switch info.GitBranch {
	case "", "main", "master":
	default:
		parts = append(parts, info.GitBranch)
	}
	if info.IsDirty {
		parts = append(parts, "dirty")
	}
	return fmt.Sprintf("%s (built %s)", strings.Join(parts, "-"), info.BuildDate.UTC().Format(time.RFC3339))
}

// UserAgent returns the User-Agent header value for outbound hub requests.
func UserAgent() string {
	return "mercurekit/" + GetShortVersion()
}
