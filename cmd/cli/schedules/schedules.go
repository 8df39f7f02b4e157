package schedules

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/crucial707/fleet-pm/cmd/cli/config"
	"github.com/crucial707/fleet-pm/cmd/cli/output"
	"github.com/crucial707/fleet-pm/internal/models"
	"github.com/spf13/cobra"
)

// InitSchedules registers schedule commands on the root command.
func InitSchedules(rootCmd *cobra.Command) {
	schedulesCmd := &cobra.Command{
		Use:   "schedules",
		Short: "Manage maintenance schedules",
	}

	schedulesCmd.AddCommand(
		listSchedulesCmd(),
		previewCmd(),
		setActiveCmd("activate", true),
		setActiveCmd("deactivate", false),
	)

	rootCmd.AddCommand(schedulesCmd)
}

func listSchedulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List maintenance schedules",
		Run: func(cmd *cobra.Command, args []string) {
			var list []models.MaintenanceSchedule
			if err := getJSON("/schedules", &list); err != nil {
				fmt.Println(err)
				return
			}

			rows := make([][]interface{}, 0, len(list))
			for _, s := range list {
				interval := fmt.Sprintf("%d %s", s.IntervalValue, s.IntervalType)
				rows = append(rows, []interface{}{
					s.ID, s.AssetID, s.Name, interval,
					s.NextDueDate.Format("2006-01-02"), s.IsActive,
				})
			}
			output.RenderTable([]string{"ID", "Asset", "Name", "Interval", "Next due", "Active"}, rows)
		},
	}
}

func previewCmd() *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "preview [id]",
		Short: "Preview upcoming due dates for a schedule",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			path := "/schedules/" + args[0] + "/occurrences?count=" + strconv.Itoa(count)
			var occs []models.Occurrence
			if err := getJSON(path, &occs); err != nil {
				fmt.Println(err)
				return
			}

			rows := make([][]interface{}, 0, len(occs))
			for _, o := range occs {
				rows = append(rows, []interface{}{
					o.DueDate.Format("2006-01-02"), o.LeadDate.Format("2006-01-02"),
				})
			}
			output.RenderTable([]string{"Due date", "Lead date"}, rows)
		},
	}

	cmd.Flags().IntVar(&count, "count", 10, "number of occurrences to project")

	return cmd
}

func setActiveCmd(use string, active bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [id]",
		Short: use + " a schedule",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			token, err := config.ReadToken()
			if err != nil {
				fmt.Println("Please login first")
				return
			}

			body, _ := json.Marshal(map[string]bool{"is_active": active})
			req, _ := http.NewRequest("PATCH", config.APIURL()+"/schedules/"+args[0]+"/active", bytes.NewBuffer(body))
			req.Header.Set("Authorization", "Bearer "+token)
			req.Header.Set("Content-Type", "application/json")

			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				fmt.Println(err)
				return
			}
			defer resp.Body.Close()

			if resp.StatusCode == http.StatusNoContent {
				fmt.Println("Schedule " + use + "d")
			} else {
				fmt.Printf("Failed to %s schedule (status %d)\n", use, resp.StatusCode)
			}
		},
	}
}

func getJSON(path string, out any) error {
	token, err := config.ReadToken()
	if err != nil {
		return fmt.Errorf("please login first")
	}

	req, _ := http.NewRequest("GET", config.APIURL()+path, nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("API error: status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
