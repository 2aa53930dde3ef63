package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report whether persisted state can be resumed",
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := resolveKey()
		if err != nil {
			return err
		}

		if err := pool.IsInitialized(statePath, key); err != nil {
			fmt.Printf("%s: not resumable: %v\n", statePath, err)
			return nil
		}

		fmt.Printf("%s: resumable (entropy strength: %s)\n", statePath, pool.EntropyStrength())
		return nil
	},
}
