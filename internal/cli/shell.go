package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/samvad-hq/namematch-console/internal/app"
	"github.com/samvad-hq/namematch-console/internal/display"
	"github.com/samvad-hq/namematch-console/pkg/pairs"
	"github.com/spf13/cobra"
)

const (
	shellPrompt = "namematch> "
	shellHelp   = `Commands:
  compare <name1> | <name2>   compare two names (prompts when names are omitted)
  scenario <id>               run a built-in scenario (similar, different, nickname)
  scenarios                   list built-in scenarios
  history                     show recent comparisons, newest first
  clear                       clear the history
  url [new-base-url]          show or change the API base URL
  health                      check the API
  help                        show this help
  quit                        leave the shell`
)

func newShellCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start an interactive comparison session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := rt.openSession(cmd)
			if err != nil {
				return err
			}
			defer rt.closeSession(sess)

			sh := &shell{
				sess:   sess,
				in:     cmd.InOrStdin(),
				out:    cmd.OutOrStdout(),
				errOut: cmd.ErrOrStderr(),
			}
			return sh.run(cmd.Context())
		},
	}
}

// shell is a line-oriented REPL over a single session. It leaves on quit, on
// end of input, or when ctx is cancelled, even while waiting at a prompt.
type shell struct {
	sess   *app.Session
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	lines   chan string
	done    chan struct{}
	scanErr error // set before lines is closed
}

func (sh *shell) run(ctx context.Context) error {
	sh.lines = make(chan string)
	sh.done = make(chan struct{})
	defer close(sh.done)
	go sh.scan()

	fmt.Fprintf(sh.out, "Name matching console. API: %s\nType 'help' for commands.\n", sh.sess.BaseURL())
	for {
		line, ok := sh.readLine(ctx, shellPrompt)
		if !ok {
			fmt.Fprintln(sh.out)
			if ctx.Err() != nil {
				return nil
			}
			return sh.scanErr
		}
		if quit := sh.dispatch(ctx, line); quit {
			return nil
		}
	}
}

// scan feeds input lines to readLine until input ends or the shell exits.
func (sh *shell) scan() {
	sc := bufio.NewScanner(sh.in)
	for sc.Scan() {
		select {
		case sh.lines <- sc.Text():
		case <-sh.done:
			return
		}
	}
	sh.scanErr = sc.Err()
	close(sh.lines)
}

// readLine prints prompt and waits for a line. It reports false at end of
// input or when ctx is done.
func (sh *shell) readLine(ctx context.Context, prompt string) (string, bool) {
	fmt.Fprint(sh.out, prompt)
	select {
	case <-ctx.Done():
		return "", false
	case line, ok := <-sh.lines:
		if !ok {
			return "", false
		}
		return strings.TrimSpace(line), true
	}
}

// dispatch runs one shell command and reports whether the shell should exit.
func (sh *shell) dispatch(ctx context.Context, line string) bool {
	if line == "" {
		return false
	}
	verb, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch strings.ToLower(verb) {
	case "quit", "exit", "q":
		return true
	case "help", "?":
		fmt.Fprintln(sh.out, shellHelp)
	case "compare", "c":
		sh.compare(ctx, rest)
	case "scenario":
		p, ok := pairs.ScenarioByID(rest)
		if !ok {
			fmt.Fprintf(sh.errOut, "Unknown scenario %q. Type 'scenarios' to list them.\n", rest)
			return false
		}
		fmt.Fprintf(sh.out, "Loaded %s: %s | %s\n", p.Label, p.Name1, p.Name2)
		_ = runCompare(ctx, sh.sess, sh.out, sh.errOut, p.Name1, p.Name2, false)
	case "scenarios":
		_ = display.Scenarios(sh.out, pairs.Scenarios())
	case "history":
		_ = display.History(sh.out, sh.sess.History())
	case "clear":
		sh.sess.ClearHistory()
		fmt.Fprintln(sh.out, "History cleared")
	case "url":
		if rest == "" {
			fmt.Fprintf(sh.out, "API base URL: %s\nEndpoint: %s\n", sh.sess.BaseURL(), sh.sess.Endpoint())
			return false
		}
		if err := sh.sess.SetBaseURL(rest); err != nil {
			fmt.Fprintf(sh.errOut, "Invalid URL: %v\n", err)
			return false
		}
		fmt.Fprintf(sh.out, "API base URL set to %s\n", sh.sess.BaseURL())
	case "health":
		_ = runHealth(ctx, sh.sess, sh.out)
	default:
		fmt.Fprintf(sh.errOut, "Unknown command %q. Type 'help' for commands.\n", verb)
	}
	return false
}

// compare accepts "name1 | name2" or prompts for both names.
func (sh *shell) compare(ctx context.Context, args string) {
	var name1, name2 string
	if args != "" {
		var found bool
		name1, name2, found = strings.Cut(args, "|")
		if !found {
			fmt.Fprintln(sh.errOut, "Separate the names with '|', e.g. compare John Smith | JOHNSMITH123")
			return
		}
	} else {
		var ok bool
		if name1, ok = sh.readLine(ctx, "Name 1: "); !ok {
			return
		}
		if name2, ok = sh.readLine(ctx, "Name 2: "); !ok {
			return
		}
	}
	_ = runCompare(ctx, sh.sess, sh.out, sh.errOut, strings.TrimSpace(name1), strings.TrimSpace(name2), false)
}
