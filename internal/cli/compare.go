package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/samvad-hq/namematch-console/internal/app"
	"github.com/samvad-hq/namematch-console/internal/display"
	"github.com/samvad-hq/namematch-console/internal/matcher"
	"github.com/samvad-hq/namematch-console/pkg/pairs"
	"github.com/spf13/cobra"
)

func newCompareCommand(rt *runtime) *cobra.Command {
	var (
		scenario   string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "compare <name1> <name2>",
		Short: "Compare two names",
		Example: `  namematch compare "John Smith" "JOHNSMITH123"
  namematch compare --scenario nickname`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name1, name2, err := compareInputs(scenario, args)
			if err != nil {
				return err
			}

			sess, err := rt.openSession(cmd)
			if err != nil {
				return err
			}
			defer rt.closeSession(sess)

			return runCompare(cmd.Context(), sess, cmd.OutOrStdout(), cmd.ErrOrStderr(), name1, name2, jsonOutput)
		},
	}

	cmd.Flags().StringVar(&scenario, "scenario", "", "Use a built-in scenario instead of names (see 'namematch scenarios')")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output result as JSON")
	return cmd
}

func compareInputs(scenario string, args []string) (string, string, error) {
	if scenario != "" {
		if len(args) > 0 {
			return "", "", fmt.Errorf("--scenario cannot be combined with names")
		}
		p, ok := pairs.ScenarioByID(scenario)
		if !ok {
			return "", "", fmt.Errorf("unknown scenario %q", scenario)
		}
		return p.Name1, p.Name2, nil
	}
	if len(args) != 2 {
		return "", "", fmt.Errorf("compare requires two names or --scenario")
	}
	return args[0], args[1], nil
}

// runCompare performs one comparison and renders the outcome. Failures are
// printed to errOut and reported as ErrReported.
func runCompare(ctx context.Context, sess *app.Session, out, errOut io.Writer, name1, name2 string, jsonOutput bool) error {
	stop := startSpinner(errOut, comparingMessage(name1, name2))
	res, err := sess.Compare(ctx, name1, name2)
	stop()

	if err != nil {
		display.Error(errOut, err)
		return ErrReported
	}
	if jsonOutput {
		return display.JSON(out, res)
	}
	display.Result(out, res)
	return nil
}

func newHealthCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the API is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := rt.openSession(cmd)
			if err != nil {
				return err
			}
			defer rt.closeSession(sess)
			return runHealth(cmd.Context(), sess, cmd.OutOrStdout())
		},
	}
}

func runHealth(ctx context.Context, sess *app.Session, out io.Writer) error {
	status := sess.Health(ctx)
	display.Health(out, status, sess.BaseURL())
	if status.State != matcher.Healthy {
		return ErrReported
	}
	return nil
}

func newScenariosCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "scenarios",
		Short: "List the built-in quick test scenarios",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return display.Scenarios(cmd.OutOrStdout(), pairs.Scenarios())
		},
	}
}
