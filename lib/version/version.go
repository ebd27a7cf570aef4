package version

import (
	"fmt"
	"runtime"
)

var (
	Version             string = "0.1.0" // Version follows SemVer (https://semver.org) and is updated by hand at each release
	GitCommit, GitState string           // GitCommit will be overwritten automatically by the build system
	BuildDate           string           // BuildDate will be overwritten automatically by the build system
)

func ToDetailVersion() string {
	return fmt.Sprintf("version=%s git=%s build=%s", Version, GitCommit, BuildDate)
}

// Info is the version of the running binary, printed by `votebook version`.
type Info struct {
	Version   string `yaml:"version" json:"version"`
	GitCommit string `yaml:"git-commit" json:"git_commit"`
	GitState  string `yaml:"git-state" json:"git_state"`
	BuildDate string `yaml:"build-date" json:"build_date"`
	GoVersion string `yaml:"go-version" json:"go_version"`
}

func GetInfo() Info {
	return Info{
		Version:   Version,
		GitCommit: GitCommit,
		GitState:  GitState,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
	}
}
