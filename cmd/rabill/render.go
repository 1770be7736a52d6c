package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"pmis/billing"
	"pmis/document"
	"pmis/models"
)

func newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a frozen bill as HTML or PDF",
		Long: `Render lays out a bill snapshot (the JSON the server stores and the gateway
sends) as the printable RA bill document. Derived figures in the file are
recomputed before rendering.`,
		Example: `  rabill render --input RA-20250101-1A2B3C4D.json --org org.json --out bill.html
  rabill render --input RA-20250101-1A2B3C4D.json --pdf bill.pdf`,
		Args: cobra.NoArgs,
		RunE: runRender,
	}
	cmd.Flags().String("input", "", "Snapshot JSON file")
	cmd.Flags().String("org", "", "Organization JSON file for the letterhead")
	cmd.Flags().String("out", "", "Write HTML here instead of stdout")
	cmd.Flags().String("pdf", "", "Also print a PDF with headless Chrome")
	cmd.Flags().Duration("timeout", 60*time.Second, "PDF print timeout")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func runRender(cmd *cobra.Command, _ []string) error {
	inputPath, _ := cmd.Flags().GetString("input")
	orgPath, _ := cmd.Flags().GetString("org")
	outPath, _ := cmd.Flags().GetString("out")
	pdfPath, _ := cmd.Flags().GetString("pdf")

	var snap billing.Snapshot
	if err := readJSON(inputPath, &snap); err != nil {
		return err
	}
	snap = billing.Freeze(snap.Input, snap.Project, snap.Counterparty)

	var org *models.Organization
	if orgPath != "" {
		org = &models.Organization{}
		if err := readJSON(orgPath, org); err != nil {
			return err
		}
	}

	renderer, err := document.NewRenderer(moneyFormatter(cmd))
	if err != nil {
		return err
	}
	html, err := renderer.RenderHTML(snap, org)
	if err != nil {
		return err
	}

	if outPath != "" {
		if err := os.WriteFile(outPath, html, 0o644); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", outPath)
	} else if pdfPath == "" {
		if _, err := cmd.OutOrStdout().Write(html); err != nil {
			return err
		}
	}

	if pdfPath != "" {
		p := document.NewChromePrinter()
		p.Timeout, _ = cmd.Flags().GetDuration("timeout")
		pdf, err := p.Print(context.Background(), html)
		if err != nil {
			return err
		}
		if err := os.WriteFile(pdfPath, pdf, 0o644); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", pdfPath)
	}
	return nil
}
