package main

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/xavierca1/ligue-prospector/internal/config"
	"github.com/xavierca1/ligue-prospector/internal/entity"
	"github.com/xavierca1/ligue-prospector/internal/infra/integration/attom"
	"github.com/xavierca1/ligue-prospector/internal/usecase"
)

var previewZip string

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Print the scored properties of a ZIP code",
	Long: `Query the property source for a ZIP code and print every qualifying
property with its intent score. Nothing is generated, stored or sent.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := usecase.ValidateZipCode(previewZip); err != nil {
			return err
		}
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		source, err := attom.NewClient(cfg.Attom.APIKey, cfg.Attom.BaseURL)
		if err != nil {
			return err
		}
		props, err := source.FetchByZip(cmd.Context(), previewZip)
		if err != nil {
			return err
		}
		return printProperties(cmd.OutOrStdout(), props)
	},
}

func init() {
	previewCmd.Flags().StringVar(&previewZip, "zip", "", "5-digit ZIP code")
	previewCmd.MarkFlagRequired("zip")
}

func printProperties(out io.Writer, props []entity.Property) error {
	type row struct {
		entity.Property
		score int
	}
	rows := make([]row, 0, len(props))
	for _, p := range props {
		rows = append(rows, row{p, entity.IntentScore(float64(p.EquityPercent), float64(p.YearsOwned))})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].score > rows[j].score })

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SCORE\tTIER\tEQUITY\tYEARS\tOWNER\tADDRESS")
	for _, r := range rows {
		fmt.Fprintf(tw, "%d\t%s\t%d%%\t%d\t%s\t%s\n",
			r.score, entity.IntentTier(r.score), r.EquityPercent, r.YearsOwned, r.OwnerName, r.Address)
	}
	fmt.Fprintf(tw, "\n%d properties\n", len(rows))
	return tw.Flush()
}
