package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var multiplier uint

func init() {
	initCmd.Flags().UintVarP(&multiplier, "multiplier", "m", 0, "doubles the entropy gathered from the OS and camera sources, multiplier times (the microphone window is fixed)")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Gather fresh entropy, seed the generator, and persist its state",
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := resolveKey()
		if err != nil {
			return err
		}

		if err := pool.Initialize(cmd.Context(), statePath, multiplier, key); err != nil {
			return fmt.Errorf("initialize: %w", err)
		}
		if err := pool.SaveState(); err != nil {
			return fmt.Errorf("save state: %w", err)
		}

		fmt.Printf("seeded and saved state to %s (entropy strength: %s)\n", statePath, pool.EntropyStrength())
		return nil
	},
}
