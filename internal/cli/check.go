package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify graph connectivity, dictionaries and generator config",
	Args:  cobra.NoArgs,
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, _ []string) error {
	svc, err := ensureService(cmd)
	if err != nil {
		return err
	}

	results, err := svc.Check(cmd.Context())
	for _, r := range results {
		status := "ok"
		if r.Err != nil {
			status = "FAIL: " + r.Err.Error()
		}
		cmd.Printf("%-13s %-20s %s\n", r.Name, r.Detail, status)
	}
	if err != nil {
		return errors.New("medqa check failed")
	}
	return nil
}
