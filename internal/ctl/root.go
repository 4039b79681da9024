package ctl

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/nutricare/internal/common"
	"github.com/dmitrijs2005/nutricare/internal/server/config"
	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigFile string
	DSN        string
}

// NewRootCommand creates the nutricarectl command tree. cfg supplies the
// defaults; open is called once per command that needs the database.
func NewRootCommand(cfg *config.Config, open Opener) *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "nutricarectl",
		Short:         "NutriCare administration",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// -c is read by config.LoadConfig; it is declared here so cobra accepts it.
	cmd.PersistentFlags().StringVarP(&opts.ConfigFile, "config", "c", "", "JSON config file")
	cmd.PersistentFlags().StringVar(&opts.DSN, "dsn", "", "database DSN (overrides config)")

	connect := func(ctx context.Context) (Backend, error) {
		c := *cfg
		if opts.DSN != "" {
			c.DatabaseDSN = opts.DSN
		}
		return open(ctx, &c)
	}

	cmd.AddCommand(newMigrateCommand(connect))
	cmd.AddCommand(newUserCommand(connect))
	cmd.AddCommand(newTokensCommand(connect))

	return cmd
}

type connectFunc func(ctx context.Context) (Backend, error)

func withBackend(ctx context.Context, connect connectFunc, fn func(Backend) error) error {
	b, err := connect(ctx)
	if err != nil {
		return err
	}
	defer b.Close()
	return fn(b)
}

func newMigrateCommand(connect connectFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBackend(cmd.Context(), connect, func(b Backend) error {
				if err := b.Migrate(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
				return nil
			})
		},
	}
}

func newUserCommand(connect connectFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage user accounts",
	}

	var username string
	add := &cobra.Command{
		Use:   "add",
		Short: "Register a user, prompting for the password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := getPassword(cmd.ErrOrStderr(), "Password: ")
			if err != nil {
				return fmt.Errorf("read password: %w", err)
			}
			defer wipe(pw)

			return withBackend(cmd.Context(), connect, func(b Backend) error {
				u, err := b.Register(cmd.Context(), username, string(pw))
				if errors.Is(err, common.ErrorAlreadyExists) {
					return fmt.Errorf("user %q already exists", username)
				}
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "created user %s (%s)\n", u.UserName, u.ID)
				return nil
			})
		},
	}
	add.Flags().StringVar(&username, "username", "", "login name")
	_ = add.MarkFlagRequired("username")

	cmd.AddCommand(add)
	return cmd
}

func newTokensCommand(connect connectFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokens",
		Short: "Maintain refresh tokens",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "prune",
		Short: "Delete expired refresh tokens",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBackend(cmd.Context(), connect, func(b Backend) error {
				n, err := b.PruneRefreshTokens(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "removed %d expired tokens\n", n)
				return nil
			})
		},
	})

	return cmd
}
