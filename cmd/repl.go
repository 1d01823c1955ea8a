package cmd

import (
	"github.com/kschem/scm/repl"
	"github.com/spf13/cobra"
)

var replPrompt string

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive read-eval-print loop",
	RunE: func(cmd *cobra.Command, args []string) error {
		return repl.Run(replPrompt)
	},
}

func init() {
	replCmd.Flags().StringVar(&replPrompt, "prompt", "scm> ", "prompt printed before each read")
	rootCmd.AddCommand(replCmd)
}
