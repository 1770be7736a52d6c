package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"pmis/billing"
)

func newSubmitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "submit",
		Short:   "Submit a bill snapshot to a PMIS server",
		Example: `  rabill submit --input RA-20250101-1A2B3C4D.json --server http://localhost:8080`,
		Args:    cobra.NoArgs,
		RunE:    runSubmit,
	}
	cmd.Flags().String("input", "", "Snapshot JSON file")
	cmd.Flags().String("server", "http://localhost:8080", "PMIS server base URL")
	cmd.Flags().Duration("timeout", 30*time.Second, "Request timeout")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func runSubmit(cmd *cobra.Command, _ []string) error {
	inputPath, _ := cmd.Flags().GetString("input")
	server, _ := cmd.Flags().GetString("server")
	timeout, _ := cmd.Flags().GetDuration("timeout")

	var snap billing.Snapshot
	if err := readJSON(inputPath, &snap); err != nil {
		return err
	}
	if err := snap.Input.Validate(); err != nil {
		return err
	}
	snap = billing.Freeze(snap.Input, snap.Project, snap.Counterparty)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	gw := billing.NewHTTPGateway(server)
	if err := gw.Submit(ctx, snap); err != nil {
		var gerr *billing.GatewayError
		if errors.As(err, &gerr) && gerr.Retryable() {
			return fmt.Errorf("%w (retry later)", err)
		}
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "submitted %s, net payable %s\n",
		snap.Input.BillNo, moneyFormatter(cmd).Money(snap.Summary.NetPayable))
	return nil
}
