package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	numBytes int
	asHex    bool
)

func init() {
	generateCmd.Flags().IntVarP(&numBytes, "bytes", "n", 32, "number of random bytes to emit")
	generateCmd.Flags().BoolVar(&asHex, "hex", false, "print hex instead of raw bytes")
	rootCmd.AddCommand(generateCmd)
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Resume persisted state and emit random bytes",
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := resolveKey()
		if err != nil {
			return err
		}

		if err := pool.IsInitialized(statePath, key); err != nil {
			return fmt.Errorf("resume state: %w", err)
		}

		out, err := pool.Generate(numBytes)
		if err != nil {
			return fmt.Errorf("generate: %w", err)
		}

		if asHex {
			fmt.Println(hex.EncodeToString(out))
			return nil
		}
		_, err = os.Stdout.Write(out)
		return err
	},
}
