package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/phrazzld/notes-api/internal/client"
	"github.com/phrazzld/notes-api/internal/client/prefetch"
	"github.com/phrazzld/notes-api/internal/domain"
	"github.com/phrazzld/notes-api/internal/service"
)

type options struct {
	server   string
	username string
	password string
	timeout  time.Duration
	verbose  bool
}

func newRootCommand(out io.Writer) *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:           "notesctl",
		Short:         "Sign in to the notes API and print the prefetched notes and users",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPrefetch(cmd.Context(), opts, out, true, true)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.server, "server", envOr("NOTES_SERVER", "http://localhost:3500"), "API base URL")
	flags.StringVarP(&opts.username, "username", "u", os.Getenv("NOTES_USERNAME"), "username to sign in with")
	flags.StringVarP(&opts.password, "password", "p", os.Getenv("NOTES_PASSWORD"), "password to sign in with")
	flags.DurationVar(&opts.timeout, "timeout", 15*time.Second, "overall request timeout")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log prefetch failures")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "notes",
			Short: "Print the note list",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runPrefetch(cmd.Context(), opts, out, true, false)
			},
		},
		&cobra.Command{
			Use:   "users",
			Short: "Print the user list",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runPrefetch(cmd.Context(), opts, out, false, true)
			},
		},
	)
	return cmd
}

func runPrefetch(ctx context.Context, opts *options, out io.Writer, showNotes, showUsers bool) error {
	if opts.username == "" || opts.password == "" {
		return errors.New("username and password are required (flags or NOTES_USERNAME/NOTES_PASSWORD)")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, opts.timeout)
	defer cancel()

	level := slog.LevelError
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	c := client.New(opts.server)
	if err := c.Login(ctx, opts.username, opts.password); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	p := prefetch.New(c, prefetch.NewCache(), logger)
	// A failed list is reported below as empty; the other list still prints.
	_ = p.OnRouteEnter(ctx)

	if showNotes {
		notes, _ := p.Notes()
		if err := printNotes(out, notes); err != nil {
			return err
		}
	}
	if showUsers {
		users, _ := p.Users()
		if err := printUsers(out, users); err != nil {
			return err
		}
	}
	return nil
}

func printNotes(out io.Writer, notes []service.NoteWithUsername) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TICKET\tTITLE\tOWNER\tSTATUS")
	for _, n := range notes {
		status := "Open"
		if n.Completed {
			status = "Completed"
		}
		owner := n.Username
		if owner == "" {
			owner = "-"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", n.Ticket, n.Title, owner, status)
	}
	if len(notes) == 0 {
		fmt.Fprintln(tw, "(no notes)\t\t\t")
	}
	return tw.Flush()
}

func printUsers(out io.Writer, users []*domain.User) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "USERNAME\tROLES\tACTIVE")
	for _, u := range users {
		roles := make([]string, len(u.Roles))
		for i, r := range u.Roles {
			roles[i] = string(r)
		}
		fmt.Fprintf(tw, "%s\t%s\t%t\n", u.Username, strings.Join(roles, ", "), u.Active)
	}
	if len(users) == 0 {
		fmt.Fprintln(tw, "(no users)\t\t")
	}
	return tw.Flush()
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
