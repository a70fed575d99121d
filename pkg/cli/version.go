package cli

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
)

// VersionOutput is the `dsynth version --json` document.
type VersionOutput struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
	Go      string `json:"go"`
	OS      string `json:"os"`
	Arch    string `json:"arch"`
}

// String formats v for `dsynth version`.
func (v VersionOutput) String() string {
	version := v.Version
	if version != "dev" && version != "(devel)" && !strings.HasPrefix(version, "v") {
		version = "v" + version
	}
	return fmt.Sprintf("dsynth %s (%s, %s)\n%s %s/%s\n", version, v.Commit, v.Date, v.Go, v.OS, v.Arch)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show dsynth version information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := buildVersion()
		w := cmd.OutOrStdout()
		return printResult(w, out, func() { fmt.Fprint(w, out) })
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// buildVersion reports the ldflags values, filled in from the module build
// info when the binary was built without them.
func buildVersion() VersionOutput {
	info, _ := debug.ReadBuildInfo()
	return resolveVersion(VersionOutput{Version: Version, Commit: Commit, Date: BuildDate}, info)
}

func resolveVersion(v VersionOutput, info *debug.BuildInfo) VersionOutput {
	v.Go, v.OS, v.Arch = runtime.Version(), runtime.GOOS, runtime.GOARCH
	if info == nil {
		return v
	}
	if v.Version == "dev" && info.Main.Version != "" {
		v.Version = info.Main.Version
	}
	vcs := map[string]string{}
	for _, s := range info.Settings {
		vcs[s.Key] = s.Value
	}
	if rev, ok := vcs["vcs.revision"]; ok && v.Commit == "none" {
		v.Commit = rev
	}
	if at, ok := vcs["vcs.time"]; ok && v.Date == "unknown" {
		v.Date = at
	}
	if vcs["vcs.modified"] == "true" {
		v.Commit += "-dirty"
	}
	return v
}
