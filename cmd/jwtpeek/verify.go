package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ticketbox/ticketbox-jwt-go/jwtclaims"
)

var verifyFlags struct {
	secret    string
	publicKey string
}

// verifyCmd checks a token's signature and expiry
var verifyCmd = &cobra.Command{
	Use:   "verify <token>",
	Short: "Verify a token's signature and expiry",
	Long: `Verify a token with an HS256 secret and/or an RS256 public key.

Keys come from --secret / JWT_SECRET and --public-key / JWT_PUBLIC_KEY
(a path to a PEM file). On success the verified claims are printed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		token, err := readToken(args[0], cmd.InOrStdin())
		if err != nil {
			return err
		}

		verifier, err := newVerifier()
		if err != nil {
			return err
		}
		claims, err := verifier.Verify(token)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(claims)
	},
}

func newVerifier() (*jwtclaims.Verifier, error) {
	opts := []jwtclaims.ConfigOption{jwtclaims.WithLogger(slog.Default())}

	secret := firstNonEmpty(verifyFlags.secret, os.Getenv("JWT_SECRET"))
	if secret != "" {
		opts = append(opts, jwtclaims.WithHS256([]byte(secret)))
	}

	if path := firstNonEmpty(verifyFlags.publicKey, os.Getenv("JWT_PUBLIC_KEY")); path != "" {
		pemBytes, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read public key: %w", err)
		}
		opts = append(opts, jwtclaims.WithRS256PEM(pemBytes))
	}

	cfg, err := jwtclaims.NewConfig(opts...)
	if err != nil {
		return nil, err
	}
	return jwtclaims.NewVerifier(cfg)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func init() {
	verifyCmd.Flags().StringVar(&verifyFlags.secret, "secret", "", "HS256 secret (default $JWT_SECRET)")
	verifyCmd.Flags().StringVar(&verifyFlags.publicKey, "public-key", "", "RS256 public key PEM file (default $JWT_PUBLIC_KEY)")
	rootCmd.AddCommand(verifyCmd)
}
