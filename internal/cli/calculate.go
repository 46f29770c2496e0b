package cli

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"tax-engine/internal/input"
	"tax-engine/internal/model"
)

// Amount flags are text so that formatted values such as 1,200,000 work.
func parseAmounts(flags map[string]string) (map[string]model.Amount, error) {
	out := make(map[string]model.Amount, len(flags))
	for name, s := range flags {
		v, err := input.ParseAmount(s)
		if err != nil {
			return nil, errors.Wrapf(err, "--%s", name)
		}
		out[name] = model.Amount(v)
	}
	return out, nil
}

func newCompareCommand(a *app) *cobra.Command {
	var period, gross, rent, pension, nhf, nhis string

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare tax under the prior and current regimes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseAmounts(map[string]string{
				"gross": gross, "rent": rent, "pension": pension, "nhf": nhf, "nhis": nhis,
			})
			if err != nil {
				return err
			}
			resp := a.engine.CompareTax(&model.TaxComparisonRequest{
				Period:      period,
				GrossIncome: v["gross"],
				AnnualRent:  v["rent"],
				Pension:     v["pension"],
				NHF:         v["nhf"],
				NHIS:        v["nhis"],
			})
			return printResult(cmd.OutOrStdout(), resp.CalculationMetadata, resp)
		},
	}
	cmd.Flags().StringVar(&period, "period", string(input.Monthly), "period of gross income and contributions (monthly, yearly)")
	cmd.Flags().StringVar(&gross, "gross", "", "gross income per period")
	cmd.Flags().StringVar(&rent, "rent", "", "annual rent paid")
	cmd.Flags().StringVar(&pension, "pension", "", "pension contribution per period")
	cmd.Flags().StringVar(&nhf, "nhf", "", "National Housing Fund contribution per period")
	cmd.Flags().StringVar(&nhis, "nhis", "", "health insurance contribution per period")
	return cmd
}

func newTaxCommand(a *app) *cobra.Command {
	var gross, rent, deductions string

	cmd := &cobra.Command{
		Use:   "tax <regime>",
		Short: "Compute annual tax under a single regime",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseAmounts(map[string]string{
				"gross": gross, "rent": rent, "deductions": deductions,
			})
			if err != nil {
				return err
			}
			resp := a.engine.ComputeTax(args[0], &model.RegimeTaxRequest{
				AnnualGross:         v["gross"],
				AnnualRent:          v["rent"],
				StatutoryDeductions: v["deductions"],
			})
			return printResult(cmd.OutOrStdout(), resp.CalculationMetadata, resp)
		},
	}
	cmd.Flags().StringVar(&gross, "gross", "", "annual gross income")
	cmd.Flags().StringVar(&rent, "rent", "", "annual rent paid")
	cmd.Flags().StringVar(&deductions, "deductions", "", "annual pension, NHF and NHIS contributions")
	return cmd
}

func newClassifyCommand(a *app) *cobra.Command {
	var turnover, assets, sector string

	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Check whether a business is a small company",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseAmounts(map[string]string{
				"turnover": turnover, "assets": assets,
			})
			if err != nil {
				return err
			}
			resp := a.engine.ClassifyCompany(&model.CompanyClassificationRequest{
				Turnover:         v["turnover"],
				TotalFixedAssets: v["assets"],
				Sector:           sector,
			})
			return printResult(cmd.OutOrStdout(), resp.CalculationMetadata, resp)
		},
	}
	cmd.Flags().StringVar(&turnover, "turnover", "", "gross annual turnover")
	cmd.Flags().StringVar(&assets, "assets", "", "total fixed assets")
	cmd.Flags().StringVar(&sector, "sector", "general", "business sector (general, professional-services, upstream-oil-gas)")
	return cmd
}

func newScheduleCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "schedule",
		Short: "Print the effective tax schedule as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.schedule.Marshal()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(b)
			return err
		},
	}
}
