package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dalemusser/consultadmin/internal/adminview"
	"github.com/dalemusser/consultadmin/internal/console/render"
	"github.com/dalemusser/consultadmin/internal/domain/models"
	"github.com/spf13/cobra"
)

// open unlocks a controller and moves it to role.
func (e *env) open(ctx context.Context, rf *rootFlags, role string, confirm adminview.ConfirmFunc) (*adminview.Controller, error) {
	r := models.Role(strings.ToLower(strings.TrimSpace(role)))
	if !r.IsValid() {
		return nil, fmt.Errorf("unknown role %q (want employer or seeker)", role)
	}
	c, err := e.controller(confirm)
	if err != nil {
		return nil, err
	}
	if err := e.unlock(ctx, c, rf); err != nil {
		return nil, err
	}
	if r != models.RoleEmployer {
		if err := c.SetRole(ctx, r); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func newListCommand(e *env, rf *rootFlags) *cobra.Command {
	var role, q string
	var page int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print one page of consultations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, err := e.open(ctx, rf, role, nil)
			if err != nil {
				return err
			}
			if q != "" {
				if err := c.Search(ctx, q); err != nil {
					return err
				}
			}
			if page > 1 {
				if err := c.SetPage(ctx, page); err != nil {
					return err
				}
			}
			s := c.Snapshot()
			render.Header(e.out, s)
			render.Pagination(e.out, s)
			render.Table(e.out, s)
			return nil
		},
	}
	cmd.Flags().StringVar(&role, "role", "employer", "employer or seeker")
	cmd.Flags().StringVarP(&q, "query", "q", "", "search text")
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	return cmd
}

func newShowCommand(e *env, rf *rootFlags) *cobra.Command {
	var role string
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print one consultation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, err := e.open(ctx, rf, role, nil)
			if err != nil {
				return err
			}
			if err := c.Select(ctx, args[0]); err != nil {
				return err
			}
			render.Detail(e.out, c.Snapshot().Detail)
			return nil
		},
	}
	cmd.Flags().StringVar(&role, "role", "employer", "employer or seeker")
	return cmd
}

func newDeleteCommand(e *env, rf *rootFlags) *cobra.Command {
	var role string
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one consultation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			confirm := e.confirmPrompt
			if yes {
				confirm = func(context.Context, models.Role, string, models.Record) bool { return true }
			}
			c, err := e.open(ctx, rf, role, confirm)
			if err != nil {
				return err
			}
			if err := c.Select(ctx, args[0]); err != nil {
				return err
			}
			if err := c.Delete(ctx); err != nil {
				return err
			}
			fmt.Fprintf(e.out, "deleted %s\n", args[0])
			return nil
		},
	}
	cmd.Flags().StringVar(&role, "role", "employer", "employer or seeker")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}
