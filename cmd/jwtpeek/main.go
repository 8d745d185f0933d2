// Command jwtpeek inspects, mints and verifies Ticketbox access tokens.
//
//	jwtpeek decode <token>     print the payload (signature NOT checked)
//	jwtpeek expired <token>    print true/false, fail-closed
//	jwtpeek mint               sign a development token
//	jwtpeek verify <token>     check signature and expiry
//
// A token argument of "-" is read from stdin. JWT_SECRET and JWT_PUBLIC_KEY
// may come from the environment or a .env file in the working directory.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:           "jwtpeek",
	Short:         "Inspect Ticketbox access tokens",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// .env is optional
		_ = godotenv.Load()

		level := slog.LevelError
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log decode diagnostics to stderr")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
