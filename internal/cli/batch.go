package cli

import (
	"fmt"

	"github.com/samvad-hq/namematch-console/internal/app"
	"github.com/samvad-hq/namematch-console/internal/config"
	"github.com/samvad-hq/namematch-console/internal/display"
	"github.com/samvad-hq/namematch-console/pkg/pairs"
	"github.com/spf13/cobra"
)

func newBatchCommand(rt *runtime) *cobra.Command {
	var (
		file       string
		ratePerSec float64
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "batch --file pairs.yaml",
		Short: "Compare every pair listed in a YAML or JSON file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			list, err := pairs.LoadFile(file)
			if err != nil {
				return err
			}
			if err := rt.cfg.Apply(config.Overrides{BatchRate: ratePerSec}); err != nil {
				return err
			}

			sess, err := rt.openSession(cmd)
			if err != nil {
				return err
			}
			defer rt.closeSession(sess)

			errOut := cmd.ErrOrStderr()
			done := 0
			outcomes, runErr := sess.RunBatch(cmd.Context(), list, func(o app.BatchOutcome) {
				done++
				rt.log.DebugObj("batch pair compared", "batch_progress", map[string]any{
					"pair_id": o.Pair.ID,
					"done":    done,
					"total":   len(list),
				})
			})

			if jsonOutput {
				if err := display.JSON(cmd.OutOrStdout(), display.BatchRecords(outcomes)); err != nil {
					return err
				}
			} else if err := display.BatchSummary(cmd.OutOrStdout(), outcomes); err != nil {
				return err
			}

			if runErr != nil {
				return runErr
			}
			if failed := countProblems(outcomes); failed > 0 {
				fmt.Fprintf(errOut, "%d of %d pairs failed or missed their expectation\n", failed, len(outcomes))
				return ErrReported
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Pairs file (YAML or JSON)")
	cmd.Flags().Float64Var(&ratePerSec, "rate", 0, "Maximum comparisons per second (default from BATCH_RATE_PER_SECOND)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output outcomes as JSON")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func countProblems(outcomes []app.BatchOutcome) int {
	n := 0
	for _, o := range outcomes {
		if o.Err != nil {
			n++
			continue
		}
		if met, checked := o.ExpectationMet(); checked && !met {
			n++
		}
	}
	return n
}
