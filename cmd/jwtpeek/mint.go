package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"

	"github.com/ticketbox/ticketbox-jwt-go/jwtclaims"
)

var mintFlags struct {
	secret       string
	subject      string
	userID       int64
	orgID        int64
	roles        []string
	organization bool
	ttl          time.Duration
}

// mintCmd signs a development token shaped like the ones the IAM service issues
var mintCmd = &cobra.Command{
	Use:   "mint",
	Short: "Sign an HS256 development token",
	Long: `Sign an HS256 token carrying Ticketbox claims.

The secret comes from --secret or JWT_SECRET and must be at least 32 bytes.

Example:
  jwtpeek mint --user-id 42 --role USER --role ORGANIZER --org-id 7 --organization`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		secret := mintFlags.secret
		if secret == "" {
			secret = os.Getenv("JWT_SECRET")
		}
		if len(secret) < 32 {
			return errors.New("secret must be at least 32 bytes (use --secret or JWT_SECRET)")
		}

		token, err := mintToken([]byte(secret), time.Now())
		if err != nil {
			return fmt.Errorf("sign token: %w", err)
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
		return err
	},
}

func mintToken(secret []byte, now time.Time) (string, error) {
	subject := mintFlags.subject
	if subject == "" {
		subject = fmt.Sprint(mintFlags.userID)
	}

	claims := &jwtclaims.Claims{
		OrganizationID: mintFlags.orgID,
		Roles:          mintFlags.roles,
		UserID:         mintFlags.userID,
		IsOrganization: mintFlags.organization,
		Subject:        subject,
		IssuedAt:       jwt.NewNumericDate(now),
		ExpiresAt:      jwt.NewNumericDate(now.Add(mintFlags.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func init() {
	f := mintCmd.Flags()
	f.StringVar(&mintFlags.secret, "secret", "", "HS256 secret (default $JWT_SECRET)")
	f.StringVar(&mintFlags.subject, "sub", "", "Subject (default: the user ID)")
	f.Int64Var(&mintFlags.userID, "user-id", 1, "userId claim")
	f.Int64Var(&mintFlags.orgID, "org-id", 0, "organizationId claim")
	f.StringArrayVar(&mintFlags.roles, "role", []string{"USER"}, "Role to grant (repeatable)")
	f.BoolVar(&mintFlags.organization, "organization", false, "Set isOrganization")
	f.DurationVar(&mintFlags.ttl, "ttl", time.Hour, "Token lifetime")
	rootCmd.AddCommand(mintCmd)
}
