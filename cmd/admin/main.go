// Command admin runs maintenance tasks against the membership store.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "admin",
	Short: "ALC backend maintenance commands",
	Long: `Maintenance commands for the ALC membership backend. Usage:

	admin migrate up
	admin seed --email demo@example.com --password 'Demo123!'
	admin sequence peek user_sequence
`,
	SilenceUsage: true,
}

func main() {
	_ = godotenv.Load()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
