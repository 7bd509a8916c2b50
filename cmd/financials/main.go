package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"repairdesk/internal/domain/entities"
	"repairdesk/internal/domain/financials"
	"repairdesk/internal/usecase"
)

func main() {
	if err := newRootCmd(viper.New()).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// newRootCmd builds the CLI around v so flags and REPAIRDESK_* env vars share one namespace.
func newRootCmd(v *viper.Viper) *cobra.Command {
	root := &cobra.Command{
		Use:   "financials",
		Short: "Offline order, bonus and period calculations",
		Long: `financials runs the repair desk calculators on local JSON files.
- quote: totals, amount due and estimated profit of a list of line items.
- bonus: a technician's bonus for a month of labor revenue.
- aggregate: period analytics and bonuses over a file of closed orders.`,
		SilenceUsage: true,
	}

	v.SetEnvPrefix("REPAIRDESK")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	root.PersistentFlags().Bool("json", false, "output JSON")
	_ = v.BindPFlag("json", root.PersistentFlags().Lookup("json"))

	root.AddCommand(quoteCmd(v))
	root.AddCommand(bonusCmd(v))
	root.AddCommand(aggregateCmd(v))
	return root
}

func quoteCmd(v *viper.Viper) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:     "quote",
		PreRunE: bindFlags(v),
		Short:   "Compute order totals from a JSON array of line items",
		RunE: func(cmd *cobra.Command, args []string) error {
			var lines []entities.LineItem
			if err := readJSON(cmd, file, &lines); err != nil {
				return err
			}
			prepayment, err := decimalFlag(v, "prepayment")
			if err != nil {
				return err
			}

			f, err := financials.CalculateOrderTotal(lines, prepayment)
			if err != nil {
				return err
			}
			if v.GetBool("json") {
				return printJSON(cmd.OutOrStdout(), f)
			}

			tw := newTable(cmd.OutOrStdout())
			tw.AppendHeader(table.Row{"Field", "Value"})
			tw.AppendRows([]table.Row{
				{"Services", f.ServicesTotal.StringFixed(2)},
				{"Parts", f.PartsTotal.StringFixed(2)},
				{"Subtotal", f.Subtotal.StringFixed(2)},
				{"Prepayment", f.Prepayment.StringFixed(2)},
				{"Amount due", f.AmountDue.StringFixed(2)},
				{"Cost", f.CostTotal.StringFixed(2)},
				{"Estimated profit", f.EstimatedProfit.StringFixed(2)},
				{"Duration (min)", f.EstimatedDurationMinutes},
			})
			tw.Render()
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "-", "line items JSON file (- for stdin)")
	cmd.Flags().String("prepayment", "0", "amount paid upfront")
	return cmd
}

func bonusCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "bonus",
		PreRunE: bindFlags(v),
		Short:   "Compute a technician bonus for a month of labor",
		RunE: func(cmd *cobra.Command, args []string) error {
			labor, err := decimalFlag(v, "labor")
			if err != nil {
				return err
			}
			policy, err := policyFlags(v)
			if err != nil {
				return err
			}

			s, err := financials.CalculateTechnicianBonus(labor, policy)
			if err != nil {
				return err
			}
			if v.GetBool("json") {
				return printJSON(cmd.OutOrStdout(), s)
			}

			tw := newTable(cmd.OutOrStdout())
			tw.AppendHeader(table.Row{"Labor", "Quota", "Rate", "Bonus", "Progress", "Status"})
			tw.AppendRow(table.Row{
				s.TotalLabor.StringFixed(2),
				policy.QuotaAmount.StringFixed(2),
				policy.BonusRate.String(),
				s.BonusAmount.StringFixed(2),
				fmt.Sprintf("%d%%", s.QuotaProgressPercent),
				s.Status,
			})
			tw.Render()
			return nil
		},
	}
	cmd.Flags().String("labor", "0", "labor revenue of the month")
	addPolicyFlags(cmd)
	return cmd
}

// aggregateReport is the --json shape of the aggregate command.
type aggregateReport struct {
	Aggregate   financials.PeriodAggregate           `json:"aggregate"`
	Technicians []financials.TechnicianPeriodSummary `json:"technicians"`
}

func aggregateCmd(v *viper.Viper) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:     "aggregate",
		PreRunE: bindFlags(v),
		Short:   "Aggregate a JSON array of closed orders",
		RunE: func(cmd *cobra.Command, args []string) error {
			var orders []entities.Order
			if err := readJSON(cmd, file, &orders); err != nil {
				return err
			}
			g, err := groupingFlags(v)
			if err != nil {
				return err
			}
			policy, err := policyFlags(v)
			if err != nil {
				return err
			}

			records := make([]financials.OrderRecord, 0, len(orders))
			for _, o := range orders {
				// Exports without a status are taken as closed.
				if o.Status != "" && o.Status != entities.OrderStatusClosed {
					continue
				}
				records = append(records, usecase.ToOrderRecord(o))
			}

			agg := financials.AggregatePeriod(records, g)
			techs, err := financials.SummarizeTechnicians(agg.ByTechnician, func(string) financials.BonusPolicy { return policy })
			if err != nil {
				return err
			}
			if v.GetBool("json") {
				return printJSON(cmd.OutOrStdout(), aggregateReport{Aggregate: agg, Technicians: techs})
			}
			renderAggregate(cmd.OutOrStdout(), agg, techs)
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "-", "orders JSON file (- for stdin)")
	cmd.Flags().String("tz", "UTC", "time zone used to key days")
	cmd.Flags().String("fallback", financials.DefaultLeadSourceFallback, "lead source for orders without one")
	cmd.Flags().String("labor-basis", string(financials.LaborBasisFinalCost), "final_cost, service_price or final_cost_less_parts")
	cmd.Flags().Int("top-parts", 10, "number of parts listed (0 for all)")
	addPolicyFlags(cmd)
	return cmd
}

func renderAggregate(w io.Writer, agg financials.PeriodAggregate, techs []financials.TechnicianPeriodSummary) {
	t := agg.Totals
	tw := newTable(w)
	tw.SetTitle("Totals")
	tw.AppendHeader(table.Row{"Orders", "Revenue", "Profit", "Commission", "Avg ticket", "Avg repair (min)"})
	tw.AppendRow(table.Row{t.Orders, t.Revenue.StringFixed(2), t.Profit.StringFixed(2), t.MasterCommission.StringFixed(2), t.AverageTicket.StringFixed(2), t.AverageRepairMinutes})
	tw.Render()

	tw = newTable(w)
	tw.SetTitle("Technicians")
	tw.AppendHeader(table.Row{"Technician", "Orders", "Labor", "Bonus", "Progress", "Status"})
	for _, s := range techs {
		name := s.TechnicianName
		if name == "" {
			name = s.TechnicianID
		}
		tw.AppendRow(table.Row{name, s.Orders, s.TotalLabor.StringFixed(2), s.BonusAmount.StringFixed(2), fmt.Sprintf("%d%%", s.QuotaProgressPercent), s.Status})
	}
	tw.Render()

	tw = newTable(w)
	tw.SetTitle("Lead sources")
	tw.AppendHeader(table.Row{"Source", "Orders", "Revenue", "Profit"})
	for _, s := range agg.ByLeadSource {
		tw.AppendRow(table.Row{s.Source, s.Orders, s.Revenue.StringFixed(2), s.Profit.StringFixed(2)})
	}
	tw.Render()

	tw = newTable(w)
	tw.SetTitle("Days")
	tw.AppendHeader(table.Row{"Date", "Orders", "Revenue", "Profit"})
	for _, d := range agg.ByDay {
		tw.AppendRow(table.Row{d.Date, d.Orders, d.Revenue.StringFixed(2), d.Profit.StringFixed(2)})
	}
	tw.Render()

	tw = newTable(w)
	tw.SetTitle("Top parts")
	tw.AppendHeader(table.Row{"Part", "Quantity", "Orders"})
	for _, p := range agg.TopParts {
		tw.AppendRow(table.Row{p.Name, p.Quantity, p.Orders})
	}
	tw.Render()
}

func addPolicyFlags(cmd *cobra.Command) {
	def := financials.DefaultBonusPolicy()
	cmd.Flags().String("quota", def.QuotaAmount.String(), "monthly labor quota")
	cmd.Flags().String("rate", def.BonusRate.String(), "bonus rate above the quota")
}

// bindFlags is run before each subcommand; sibling commands share flag names.
func bindFlags(v *viper.Viper) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		return v.BindPFlags(cmd.Flags())
	}
}

func policyFlags(v *viper.Viper) (financials.BonusPolicy, error) {
	quota, err := decimalFlag(v, "quota")
	if err != nil {
		return financials.BonusPolicy{}, err
	}
	rate, err := decimalFlag(v, "rate")
	if err != nil {
		return financials.BonusPolicy{}, err
	}
	p := financials.BonusPolicy{QuotaAmount: quota, BonusRate: rate}
	return p, p.Validate()
}

func groupingFlags(v *viper.Viper) (financials.Groupings, error) {
	g := financials.AllGroupings()
	loc, err := time.LoadLocation(v.GetString("tz"))
	if err != nil {
		return g, fmt.Errorf("--tz: %w", err)
	}
	g.Location = loc
	if fb := strings.TrimSpace(v.GetString("fallback")); fb != "" {
		g.FallbackLeadSource = fb
	}
	if g.LaborBasis, err = financials.ParseLaborBasis(v.GetString("labor-basis")); err != nil {
		return g, err
	}
	g.TopPartsLimit = v.GetInt("top-parts")
	return g, nil
}

func decimalFlag(v *viper.Viper, name string) (decimal.Decimal, error) {
	raw := strings.TrimSpace(v.GetString(name))
	if raw == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("--%s: %w", name, err)
	}
	return d, nil
}

func readJSON(cmd *cobra.Command, path string, out any) error {
	var r io.Reader = cmd.InOrStdin()
	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}
	if err := json.NewDecoder(r).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func newTable(w io.Writer) table.Writer {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	return tw
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
