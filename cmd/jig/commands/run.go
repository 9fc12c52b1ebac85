package commands

import (
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"
)

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [targets...]",
		Short: "Run specified tasks",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				// Display command usage help without returning an error
				_ = cmd.Help()
				return nil
			}

			configPath, _ := cmd.Flags().GetString("config")

			// The parallel flag is tri-state: leaving it untouched keeps
			// whatever policy was set on a previous invocation.
			if cmd.Flags().Changed("parallel") {
				parallel, _ := cmd.Flags().GetString("parallel")
				c.components.Store.SetFlag("parallel", parallel)
			}

			// Unlike parallel these are per-invocation: absent flags reset
			// whatever a previous run left in the store.
			verbose, _ := cmd.Flags().GetBool("verbose")
			c.components.Store.SetFlag("verbose", strconv.FormatBool(verbose))

			force, _ := cmd.Flags().GetBool("force")
			c.components.Store.SetFlag("force", strconv.FormatBool(force))

			debug, _ := cmd.Flags().GetBool("debug")
			c.components.Store.SetFlag("debug", strconv.FormatBool(debug))
			if debug {
				c.components.Logger.SetLevel(slog.LevelDebug)
			}

			return c.components.App.Run(cmd.Context(), configPath, args)
		},
	}

	cmd.Flags().StringP("parallel", "p", "", "Run tasks concurrently (\"true\") or strictly one at a time (\"false\")")
	cmd.Flags().Lookup("parallel").NoOptDefVal = "true"
	cmd.Flags().BoolP("force", "f", false, "Run all requested tasks even when up to date")
	cmd.Flags().BoolP("verbose", "v", false, "Report for each target whether it executed or was up to date")
	cmd.Flags().BoolP("debug", "d", false, "Log the staleness decision for every task")

	return cmd
}
