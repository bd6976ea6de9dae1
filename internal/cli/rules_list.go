package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"reposetup/internal/ruleset"
)

var rulesListQuiet bool

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List branch protection rule kinds",
	Long: `List the branch protection rule kinds RepoSetup can emit.

The kinds form a closed set; each is included in the created ruleset if and
only if its flag is enabled (see "reposetup apply --help").

Examples:
  # List all rule kinds and whether the current flags enable them
  reposetup rules list
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var rulesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List rule kinds",
	Long: `List the rule kinds in the order they are emitted into the ruleset,
with the enabled state under the current flags and defaults.

Examples:
  reposetup rules list
  reposetup rules list --quiet
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, ks := range ruleset.Kinds(cfg.RulesetConfig()) {
			if rulesListQuiet {
				fmt.Fprintln(cmd.OutOrStdout(), ks.Kind)
			} else {
				printKind(cmd.OutOrStdout(), ks)
			}
		}
		return nil
	},
}

var kindDescriptions = map[ruleset.Kind]string{
	ruleset.KindDeletion:              "Only allow users with bypass permission to delete matching refs.",
	ruleset.KindNonFastForward:        "Block force pushes to matching refs.",
	ruleset.KindRequiredLinearHistory: "Require linear history: no merge commits on matching refs.",
	ruleset.KindRequiredSignatures:    "Require commits on matching refs to carry verified signatures.",
	ruleset.KindPullRequest:           "Require changes to arrive via a pull request before merging.",
	ruleset.KindRequiredStatusChecks:  "Require the named status checks to pass before merging.",
}

func printKind(w io.Writer, ks ruleset.KindStatus) {
	bold := color.New(color.Bold)
	state := color.New(color.FgYellow).Sprint("disabled")
	if ks.Enabled {
		state = color.New(color.FgGreen).Sprint("enabled")
	}
	bold.Fprintf(w, "%s", ks.Kind)
	fmt.Fprintf(w, " (%s)\n", state)
	fmt.Fprintf(w, "  %s\n", kindDescriptions[ks.Kind])
}

func init() {
	rootCmd.AddCommand(rulesCmd)
	rulesCmd.AddCommand(rulesListCmd)
	rulesListCmd.Flags().BoolVarP(&rulesListQuiet, "quiet", "q", false, "Only print rule kinds")
}
