package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	buildVersion = "dev"
	buildCommit  = "unknown"
	buildDate    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "reposetup",
	Short: "Configure a new GitHub repository's settings, protections, and labels",
	Long: `RepoSetup configures a newly created GitHub repository via API: merge
strategies, security features, a branch protection ruleset, and a fixed set
of issue labels.

The run is best-effort: each step is applied independently, failures are
recorded and reported at the end, and every side effect is safe to re-run.

Examples:
	# Show available commands and global flags
	reposetup --help

	# Apply the recommended posture to a repository
	reposetup apply octocat/hello-world

	# List protection rule kinds
	reposetup rules list

	# Print build info
	reposetup version

Output:
	By default, commands write human-readable output to stdout.
	The apply command supports structured output (see "reposetup apply --help").`,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&cfg.Runtime.Verbose, "verbose", false, "Enable verbose logging (prints every GitHub API call and full error details)")
}

func SetBuildInfo(version, commit, date string) {
	if version != "" {
		buildVersion = version
	}
	if commit != "" {
		buildCommit = commit
	}
	if date != "" {
		buildDate = date
	}

	rootCmd.Version = fmt.Sprintf("%s (%s) %s", buildVersion, buildCommit, buildDate)
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

func BuildInfo() (version, commit, date string) {
	return buildVersion, buildCommit, buildDate
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
