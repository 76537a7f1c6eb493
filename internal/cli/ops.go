package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/the-dev-tools/folio/internal/api/rauth"
	"github.com/the-dev-tools/folio/internal/migrate"
	"github.com/the-dev-tools/folio/internal/migrations"
)

func newMigrateCmd(e *env) *cobra.Command {
	var status bool
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema and data migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, _, closeDB, err := e.open(cmd.Context())
			if err != nil {
				return err
			}
			defer closeDB()
			runner, err := migrate.NewRunner(db, migrations.Registry(), e.logger())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !status {
				ran, err := runner.ApplyAll(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%d migration(s) applied\n", ran)
			}
			plan, err := runner.Plan(cmd.Context())
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tSTATUS\tSTARTED\tDESCRIPTION")
			for _, p := range plan {
				state, started := "pending", "-"
				if p.Record != nil {
					state = string(p.Record.Status)
					started = p.Record.Started().UTC().Format(time.RFC3339)
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.Migration.ID, state, started, p.Migration.Description)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&status, "status", false, "only show migration state")
	return cmd
}

func newHashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password [password]",
		Short: "Print the bcrypt hash for FOLIO_ADMIN_PASSWORD_HASH",
		Long:  "hash-password hashes its argument, or the first line of stdin when no argument is given.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var password string
			if len(args) == 1 {
				password = args[0]
			} else {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("reading password from stdin: %w", err)
				}
				password = strings.TrimRight(line, "\r\n")
			}
			if password == "" {
				return errors.New("password must not be empty")
			}
			hash, err := rauth.HashPassword(password)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}

const version = "v0.1.0"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of folioctl",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "folioctl %s\n", version)
		},
	}
}
