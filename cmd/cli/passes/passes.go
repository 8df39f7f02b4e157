package passes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/crucial707/fleet-pm/cmd/cli/config"
	"github.com/crucial707/fleet-pm/cmd/cli/output"
	"github.com/crucial707/fleet-pm/internal/runner"
	"github.com/spf13/cobra"
)

// InitPasses registers evaluation pass commands on the root command.
func InitPasses(rootCmd *cobra.Command) {
	passesCmd := &cobra.Command{
		Use:   "passes",
		Short: "Run and inspect evaluation passes",
	}

	passesCmd.AddCommand(runPassCmd())
	rootCmd.AddCommand(passesCmd)
}

func runPassCmd() *cobra.Command {
	var asOf string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Evaluate all active schedules now",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := config.ReadToken()
			if err != nil {
				return fmt.Errorf("please login first")
			}

			var body bytes.Buffer
			if asOf != "" {
				json.NewEncoder(&body).Encode(map[string]string{"as_of": asOf})
			}

			req, _ := http.NewRequest("POST", config.APIURL()+"/passes/run", &body)
			req.Header.Set("Authorization", "Bearer "+token)
			req.Header.Set("Content-Type", "application/json")

			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("API error: status %d", resp.StatusCode)
			}

			var sum runner.PassSummary
			if err := json.NewDecoder(resp.Body).Decode(&sum); err != nil {
				return err
			}

			output.RenderTable(
				[]string{"Checked", "Fired", "Not due", "Duplicate", "Degraded", "Errors"},
				[][]interface{}{{
					sum.Checked, sum.Fired, sum.SkippedNotDue,
					sum.SkippedDuplicate, sum.Degraded, sum.Errors,
				}},
			)
			if len(sum.ErroredScheduleIDs) > 0 {
				fmt.Println("Errored schedule IDs:", sum.ErroredScheduleIDs)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&asOf, "as-of", "", "evaluate as of this date (YYYY-MM-DD)")

	return cmd
}
