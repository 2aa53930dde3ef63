package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var removeState bool

func init() {
	destroyCmd.Flags().BoolVar(&removeState, "remove", false, "also delete the persisted state file")
	rootCmd.AddCommand(destroyCmd)
}

var destroyCmd = &cobra.Command{
	Use:   "destroy",
	Short: "Save current state and reset the in-process generator",
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := resolveKey()
		if err != nil {
			return err
		}

		if err := pool.IsInitialized(statePath, key); err == nil {
			if err := pool.Destroy(); err != nil {
				return fmt.Errorf("destroy: %w", err)
			}
		}

		if removeState {
			if err := os.Remove(statePath); err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("remove state file: %w", err)
			}
		}

		fmt.Println("generator destroyed")
		return nil
	},
}
