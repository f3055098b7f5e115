package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"storeAdmin/internal/modules/dashboard/application/port"
	"storeAdmin/internal/shared/listengine"
)

type exportOptions struct {
	email    string
	password string
	output   string
	status   string
	search   string
}

func newExportSubscribersCmd(opts *rootOptions) *cobra.Command {
	eo := &exportOptions{}
	cmd := &cobra.Command{
		Use:   "export-subscribers",
		Short: "Sign in and write the filtered newsletter subscribers as CSV",
		Example: `  storeadmin export-subscribers --email admin@store.test --status Subscribed --output emails.csv
  STOREADMIN_PASSWORD=secret storeadmin export-subscribers --email admin@store.test --search gmail`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return exportSubscribers(cmd, opts, eo)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&eo.email, "email", os.Getenv("STOREADMIN_EMAIL"), "admin account email (STOREADMIN_EMAIL)")
	flags.StringVar(&eo.password, "password", "", "admin account password (STOREADMIN_PASSWORD)")
	flags.StringVarP(&eo.output, "output", "o", "-", "destination file, - for stdout")
	flags.StringVar(&eo.status, "status", "", "status facet: Subscribed, Unsubscribed or Pending")
	flags.StringVar(&eo.search, "search", "", "search text over email and name")
	return cmd
}

func exportSubscribers(cmd *cobra.Command, opts *rootOptions, eo *exportOptions) error {
	password := eo.password
	if password == "" {
		password = os.Getenv("STOREADMIN_PASSWORD")
	}
	if strings.TrimSpace(eo.email) == "" || password == "" {
		return errors.New("email and password are required")
	}

	a, err := buildApp(opts.cfg)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	signed, err := a.auth.SignIn(ctx, port.Credentials{Email: eo.email, Password: password})
	if err != nil {
		return fmt.Errorf("sign in: %w", err)
	}
	defer a.auth.SignOut(signed.Session)

	if _, err := a.newsletter.Mount(ctx, signed.Session); err != nil {
		return fmt.Errorf("load subscribers: %w", err)
	}
	criteria := listengine.Criteria{Search: eo.search}
	if eo.status != "" {
		criteria.Filters = map[string]string{"status": eo.status}
	}
	if _, err := a.newsletter.Apply(signed.Session, criteria); err != nil {
		return err
	}
	content, count, err := a.newsletter.Export(ctx, signed.Session)
	if err != nil {
		return err
	}

	if eo.output == "-" {
		_, err = cmd.OutOrStdout().Write(content)
		return err
	}
	if err := os.WriteFile(eo.output, content, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", eo.output, err)
	}
	slog.Info("subscribers exported", slog.Int("count", count), slog.String("file", eo.output))
	return nil
}
