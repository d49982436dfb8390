package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/placementlabs/cpms/internal/auth"
	"github.com/placementlabs/cpms/internal/db"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newSeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed initial data",
	}

	cmd.AddCommand(newSeedAdminCmd())
	return cmd
}

func newSeedAdminCmd() *cobra.Command {
	var (
		configPath string
		email      string
		password   string
	)

	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Create or update the placement cell admin account",
		Long: `Creates a TPO_ADMIN account with the given email, prompting for a
password unless --password is set. If an account with that email already
exists, its password is rotated and its role set to TPO_ADMIN.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeedAdmin(cmd, configPath, email, password)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "cpms.yaml", "path to CPMS config file")
	cmd.Flags().StringVarP(&email, "email", "e", "", "admin email address")
	cmd.Flags().StringVar(&password, "password", "", "admin password (prompted when omitted)")
	cmd.MarkFlagRequired("email")
	return cmd
}

func runSeedAdmin(cmd *cobra.Command, configPath, email, password string) error {
	out := cmd.OutOrStdout()

	if password == "" {
		var err error
		password, err = readPassword(cmd)
		if err != nil {
			return err
		}
	}
	if len(password) < 6 {
		return fmt.Errorf("password must be at least 6 characters")
	}

	_, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}
	if err := db.AutoMigrate(gormDB); err != nil {
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	user, err := db.SeedAdmin(gormDB, email, hash)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Admin account ready: %s (role %s)\n", user.Email, user.Role)
	return nil
}

// readPassword prompts without echo on a terminal, and falls back to a plain
// line read when stdin is piped.
func readPassword(cmd *cobra.Command) (string, error) {
	out := cmd.OutOrStdout()
	fmt.Fprint(out, "Password: ")

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		raw, err := term.ReadPassword(fd)
		fmt.Fprintln(out)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(raw), nil
	}

	scanner := bufio.NewScanner(cmd.InOrStdin())
	if !scanner.Scan() {
		return "", fmt.Errorf("read password: no input")
	}
	return strings.TrimSpace(scanner.Text()), nil
}
