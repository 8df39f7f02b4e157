package main

import (
	"fmt"
	"os"

	"github.com/crucial707/fleet-pm/cmd/cli/auth"
	"github.com/crucial707/fleet-pm/cmd/cli/passes"
	"github.com/crucial707/fleet-pm/cmd/cli/root"
	"github.com/crucial707/fleet-pm/cmd/cli/schedules"
)

func main() {
	rootCmd := root.GetRoot()
	auth.InitAuth(rootCmd)
	schedules.InitSchedules(rootCmd)
	passes.InitPasses(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}
