package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dalemusser/consultadmin/internal/adminview"
	"github.com/dalemusser/consultadmin/internal/console/render"
	"github.com/dalemusser/consultadmin/internal/domain/models"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const shellHelp = `commands:
  role <employer|seeker>   switch collection
  search [text]            filter by name; no text clears
  page <n>                 jump to page n
  next, prev               move one page
  open <id|row#>           show a record
  delete                   delete the open record
  reload                   refetch the current page
  help                     this text
  quit                     leave`

func newShellCommand(e *env, rf *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive console",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, err := e.controller(e.confirmPrompt)
			if err != nil {
				return err
			}
			if err := e.unlock(ctx, c, rf); err != nil {
				// A failed first load still unlocks; only a bad password stops here.
				if errors.Is(err, adminview.ErrWrongPassword) {
					return err
				}
			}
			render.Screen(e.out, c.Snapshot())
			return runShell(ctx, e, c)
		},
	}
}

func runShell(ctx context.Context, e *env, c *adminview.Controller) error {
	for {
		line, ok := e.prompt("> ")
		if !ok {
			return nil
		}
		if line == "" {
			continue
		}
		cmd, arg, _ := strings.Cut(line, " ")
		arg = strings.TrimSpace(arg)

		var err error
		switch strings.ToLower(cmd) {
		case "quit", "exit", "q":
			return nil
		case "help", "?":
			fmt.Fprintln(e.out, shellHelp)
			continue
		case "role":
			if arg != string(models.RoleEmployer) && arg != string(models.RoleSeeker) {
				fmt.Fprintln(e.errw, "usage: role <employer|seeker>")
				continue
			}
			err = c.SetRole(ctx, models.Role(arg))
		case "search":
			err = c.Search(ctx, arg)
		case "page":
			n, perr := strconv.Atoi(arg)
			if perr != nil {
				fmt.Fprintln(e.errw, "usage: page <n>")
				continue
			}
			err = c.SetPage(ctx, n)
		case "next", "n":
			err = c.NextPage(ctx)
		case "prev", "p":
			err = c.PrevPage(ctx)
		case "reload", "r":
			err = c.Reload(ctx)
		case "open", "o":
			id, rerr := resolveRow(c.Snapshot(), arg)
			if rerr != nil {
				fmt.Fprintln(e.errw, rerr)
				continue
			}
			err = c.Select(ctx, id)
		case "delete", "del":
			err = c.Delete(ctx)
			switch {
			case errors.Is(err, adminview.ErrDeleteCanceled):
				fmt.Fprintln(e.errw, "* canceled")
				continue
			case errors.Is(err, adminview.ErrNoSelection):
				fmt.Fprintln(e.errw, "open a record first")
				continue
			}
		default:
			fmt.Fprintf(e.errw, "unknown command %q; try help\n", cmd)
			continue
		}
		if err != nil {
			// Already reported as a notice; the previous screen still stands.
			continue
		}
		fmt.Fprintln(e.out)
		render.Screen(e.out, c.Snapshot())
	}
}

// resolveRow accepts a 24-hex id or a 1-based row number on the current
// page.
func resolveRow(s adminview.Snapshot, arg string) (string, error) {
	if arg == "" {
		return "", errors.New("usage: open <id|row#>")
	}
	if _, err := primitive.ObjectIDFromHex(arg); err == nil {
		return arg, nil
	}
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(s.Items) {
		return "", fmt.Errorf("no row %q on this page", arg)
	}
	return s.Items[n-1].ID().Hex(), nil
}
