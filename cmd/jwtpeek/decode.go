package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/ticketbox/ticketbox-jwt-go/jwtclaims"
)

var permissiveExpiry bool

// decodeCmd prints the claims of a token without verifying it
var decodeCmd = &cobra.Command{
	Use:   "decode <token>",
	Short: "Print the claims of a token (signature NOT verified)",
	Long: `Decode the payload segment of a token and print it as JSON.

The signature is not checked, so the output says nothing about whether the
token is genuine. Use "jwtpeek verify" for that.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		token, err := readToken(args[0], cmd.InOrStdin())
		if err != nil {
			return err
		}

		codec, err := newCodec()
		if err != nil {
			return err
		}
		claims, err := codec.Decode(token)
		if err != nil {
			return err
		}

		out := decodeOutput{
			Claims:  claims,
			Expired: codec.Expired(claims),
		}
		if claims.ExpiresAt != nil {
			out.ExpiresAt = claims.ExpiresAt.UTC().Format(time.RFC3339)
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	},
}

// expiredCmd answers whether a token is expired, treating garbage as expired
var expiredCmd = &cobra.Command{
	Use:   "expired <token>",
	Short: "Print true if the token is expired or unreadable",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		token, err := readToken(args[0], cmd.InOrStdin())
		if err != nil {
			return err
		}

		codec, err := newCodec()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), codec.IsExpired(token))
		return err
	},
}

type decodeOutput struct {
	*jwtclaims.Claims
	Expired   bool   `json:"expired"`
	ExpiresAt string `json:"expiresAt,omitempty"`
}

func newCodec() (*jwtclaims.Codec, error) {
	opts := []jwtclaims.ConfigOption{jwtclaims.WithLogger(slog.Default())}
	if permissiveExpiry {
		opts = append(opts, jwtclaims.WithPermissiveExpiry())
	}
	cfg, err := jwtclaims.NewConfig(opts...)
	if err != nil {
		return nil, err
	}
	return jwtclaims.NewCodec(cfg), nil
}

func init() {
	for _, cmd := range []*cobra.Command{decodeCmd, expiredCmd} {
		cmd.Flags().BoolVar(&permissiveExpiry, "permissive-expiry", false, "Treat a token without exp as unexpired")
		rootCmd.AddCommand(cmd)
	}
}
