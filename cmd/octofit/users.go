package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bagdasarian/octofit-tracker/internal/apiclient"
	"github.com/bagdasarian/octofit-tracker/internal/editflow"
	"github.com/bagdasarian/octofit-tracker/internal/snapshot"
	"github.com/bagdasarian/octofit-tracker/internal/tui"
)

func newUsersCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Edit users",
	}
	cmd.AddCommand(newUsersEditCmd(a), newUsersTUICmd(a))
	return cmd
}

// openFlow loads users and teams and opens an edit of username.
func (a *app) openFlow(ctx context.Context, username string) (*editflow.Flow, error) {
	client := a.client()
	snap, err := snapshot.Load(ctx, client, snapshot.ForEdit)
	if err != nil {
		return nil, err
	}
	user, ok := snap.UserByUsername(username)
	if !ok {
		return nil, fmt.Errorf("user %q not found", username)
	}

	flow := editflow.New(client, a.logger)
	if err := flow.Begin(user, snap.Teams); err != nil {
		return nil, err
	}
	return flow, nil
}

func newUsersEditCmd(a *app) *cobra.Command {
	var (
		form   editflow.Form
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "edit <username>",
		Short: "Update a user and move them between teams",
		Long: `Update a user's fields. Only the flags given are changed. --team "" removes
the user from their team. The user is written first, then the team they
leave, then the team they join; a failure part way is reported with the
steps already applied.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flow, err := a.openFlow(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			next := flow.Form()
			flags := cmd.Flags()
			if flags.Changed("name") {
				next.Name = form.Name
			}
			if flags.Changed("username") {
				next.Username = form.Username
			}
			if flags.Changed("email") {
				next.Email = form.Email
			}
			if flags.Changed("password") {
				next.Password = form.Password
			}
			if flags.Changed("team") {
				next.Team = form.Team
			}
			if err := flow.SetForm(next); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if dryRun {
				plan, err := flow.Plan()
				if err != nil {
					return err
				}
				printPlan(cmd, plan)
				return nil
			}

			if err := flow.Save(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(out, "Saved %s.\n", flow.User().Username)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&form.Name, "name", "", "Display name")
	f.StringVar(&form.Username, "username", "", "New username")
	f.StringVar(&form.Email, "email", "", "Email address")
	f.StringVar(&form.Password, "password", "", "New password")
	f.StringVar(&form.Team, "team", "", "Team name, or empty for no team")
	f.BoolVar(&dryRun, "dry-run", false, "Print the planned writes without saving")
	return cmd
}

func printPlan(cmd *cobra.Command, plan editflow.Plan) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "PUT %s%s/\n", apiclient.PathUsers, plan.UserID)
	fmt.Fprintf(out, "  name=%q username=%q email=%q", plan.User.Name, plan.User.Username, plan.User.Email)
	if plan.User.Password != "" {
		fmt.Fprint(out, " password=(changed)")
	}
	fmt.Fprintln(out)

	if len(plan.TeamWrites) == 0 {
		fmt.Fprintln(out, "No membership changes.")
		return
	}
	fmt.Fprint(out, plan.Diff())
}

func newUsersTUICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui <username>",
		Short: "Edit a user interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flow, err := a.openFlow(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			final, err := tui.RunEditor(cmd.Context(), flow)
			if err != nil {
				return err
			}
			switch {
			case final.Saved():
				fmt.Fprintf(cmd.OutOrStdout(), "Saved %s.\n", flow.User().Username)
			case final.Err() != nil:
				return final.Err()
			}
			return nil
		},
	}
}
