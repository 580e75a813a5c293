// Package cli implements the consultctl commands.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dalemusser/consultadmin/internal/adminclient"
	"github.com/dalemusser/consultadmin/internal/adminview"
	"github.com/dalemusser/consultadmin/internal/domain/models"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// env holds what every command needs once flags are parsed.
type env struct {
	cfg  Config
	log  *zap.Logger
	in   *bufio.Scanner
	out  io.Writer
	errw io.Writer
	hc   *http.Client
}

type rootFlags struct {
	configPath string
	verbose    bool
	password   string
}

// NewRootCommand builds the consultctl command tree reading from in and
// writing to out and errw. hc may be nil.
func NewRootCommand(in io.Reader, out, errw io.Writer, hc *http.Client) *cobra.Command {
	var rf rootFlags
	var e env
	scanner := bufio.NewScanner(in)

	root := &cobra.Command{
		Use:           "consultctl",
		Short:         "Browse and delete consultation submissions",
		Long:          "consultctl talks to a consultadmin server to list, inspect and delete employer and seeker consultations.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			flags := map[string]string{}
			for _, k := range configKeys {
				if f := cmd.Flags().Lookup(k.flag); f != nil && f.Changed {
					flags[k.flag] = f.Value.String()
				}
			}
			cfg, err := LoadConfig(rf.configPath, flags)
			if err != nil {
				return err
			}
			log := zap.NewNop()
			if rf.verbose {
				if log, err = zap.NewDevelopment(); err != nil {
					return err
				}
			}
			e = env{cfg: cfg, log: log, in: scanner, out: out, errw: errw, hc: hc}
			return nil
		},
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errw)

	pf := root.PersistentFlags()
	pf.StringVar(&rf.configPath, "config", "", "YAML config file")
	pf.BoolVarP(&rf.verbose, "verbose", "v", false, "log API calls to stderr")
	pf.StringVarP(&rf.password, "password", "p", "", "admin password (prompted when omitted)")
	pf.String("server", "", "consultadmin base URL (default http://localhost:8080)")
	pf.String("admin-password", "", "expected admin password")
	pf.String("admin-password-hash", "", "bcrypt hash of the admin password")
	pf.Int("timeout", 0, "HTTP timeout in seconds (default 15)")
	pf.Int("page-size", 0, "rows per page (default 50)")

	root.AddCommand(
		newShellCommand(&e, &rf),
		newListCommand(&e, &rf),
		newShowCommand(&e, &rf),
		newDeleteCommand(&e, &rf),
	)
	return root
}

// Execute runs the root command with the given arguments.
func Execute(ctx context.Context, args []string, in io.Reader, out, errw io.Writer) error {
	root := NewRootCommand(in, out, errw, nil)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// gate builds the password gate from config.
func (e *env) gate() (adminview.Gate, error) {
	if e.cfg.AdminPasswordHash != "" {
		return adminview.HashGate(e.cfg.AdminPasswordHash)
	}
	return adminview.PlainGate(e.cfg.AdminPassword), nil
}

// controller builds an API client and a locked controller. Notices go to
// errw.
func (e *env) controller(confirm adminview.ConfirmFunc) (*adminview.Controller, error) {
	gate, err := e.gate()
	if err != nil {
		return nil, err
	}
	hc := e.hc
	if hc == nil {
		hc = &http.Client{Timeout: e.cfg.Timeout()}
	}
	client, err := adminclient.New(e.cfg.Server, adminclient.WithHTTPClient(hc), adminclient.WithLogger(e.log))
	if err != nil {
		return nil, err
	}
	return adminview.New(adminview.Options{
		API:     client,
		Gate:    gate,
		Limit:   e.cfg.PageSize,
		Confirm: confirm,
		Notify:  e.notice,
		Log:     e.log,
	}), nil
}

func (e *env) notice(n adminview.Notice) {
	if n.Level == adminview.NoticeError && n.Err != nil {
		fmt.Fprintf(e.errw, "! %s: %v\n", n.Text, n.Err)
		return
	}
	fmt.Fprintf(e.errw, "* %s\n", n.Text)
}

// prompt writes label and reads one line. ok is false at end of input.
func (e *env) prompt(label string) (string, bool) {
	fmt.Fprint(e.out, label)
	if !e.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(e.in.Text()), true
}

// unlock opens the controller with --password, or a prompted one.
func (e *env) unlock(ctx context.Context, c *adminview.Controller, rf *rootFlags) error {
	pw := rf.password
	if pw == "" {
		var ok bool
		if pw, ok = e.prompt("password: "); !ok {
			return adminview.ErrWrongPassword
		}
	}
	return c.Unlock(ctx, pw)
}

// confirmPrompt asks y/N on the console.
func (e *env) confirmPrompt(ctx context.Context, role models.Role, id string, rec models.Record) bool {
	title := rec.Title()
	if title == "" {
		title = "(untitled)"
	}
	ans, ok := e.prompt(fmt.Sprintf("delete %s %s %q? [y/N] ", role, id, title))
	if !ok {
		return false
	}
	ans = strings.ToLower(ans)
	return ans == "y" || ans == "yes"
}
