package cmd

import (
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	apiversion "github.com/lx-annotate/annotate-api/api/version"
)

// buildInfo is what both output modes render. The version, commit and build
// date live in the api/version package so the /version endpoint and the CLI
// report the same values from one set of ldflags.
type buildInfo struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"buildDate"`
	GoVersion string `json:"goVersion"`
	Platform  string `json:"platform"`
}

func currentBuildInfo() buildInfo {
	return buildInfo{
		Name:      "Annotate Gateway API",
		Version:   apiversion.Version,
		Commit:    apiversion.Commit,
		BuildDate: apiversion.BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long: `Display version information about the Annotate Gateway API,
including the git commit, build date and Go runtime.`,
	RunE: runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().BoolP("short", "s", false, "print just the version number")
	versionCmd.Flags().Bool("json", false, "print version information as JSON")
}

func runVersion(cmd *cobra.Command, args []string) error {
	info := currentBuildInfo()
	out := cmd.OutOrStdout()

	if short, _ := cmd.Flags().GetBool("short"); short {
		fmt.Fprintf(out, "v%s\n", info.Version)
		return nil
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(info)
	}

	fmt.Fprintf(out, "%s v%s\n", info.Name, info.Version)
	fmt.Fprintf(out, "  commit:     %s\n", info.Commit)
	fmt.Fprintf(out, "  built:      %s\n", info.BuildDate)
	fmt.Fprintf(out, "  go version: %s\n", info.GoVersion)
	fmt.Fprintf(out, "  platform:   %s\n", info.Platform)
	return nil
}
