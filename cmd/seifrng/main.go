package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/paypal/seifrng/internal/obslog"
	"github.com/paypal/seifrng/randpool"
)

var (
	statePath string
	keyHex    string
	verbose   bool

	pool = randpool.New()
)

var rootCmd = &cobra.Command{
	Use:   "seifrng",
	Short: "Gather entropy, seed an ISAAC generator, and emit random bytes",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		obslog.Setup(level)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&statePath, "state", "./.seifrngstate", "path to the persisted generator state file")
	rootCmd.PersistentFlags().StringVar(&keyHex, "key", "", "hex-encoded 32-byte encryption key; omitted means state is stored in plaintext")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
