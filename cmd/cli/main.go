package main

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/iho/restledger/internal/adapter/http/dto"
	"github.com/iho/restledger/internal/adapter/http/middleware"
	"github.com/iho/restledger/internal/infrastructure/seed"
)

// errInconsistent makes the process exit non-zero after a failed check.
var errInconsistent = errors.New("ledger is inconsistent")

type options struct {
	baseURL string
	timeout time.Duration
}

func (o *options) client() *client {
	return newClient(o.baseURL, o.timeout)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "restledger-cli",
		Short:         "RestLedger CLI tool",
		Long:          `A command line interface for interacting with the RestLedger API.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.baseURL, "url", "http://localhost:8080", "Base URL of the RestLedger API")
	rootCmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "Request timeout")

	ledgerCmd := &cobra.Command{
		Use:   "ledger",
		Short: "Ledger operations",
	}
	ledgerCmd.AddCommand(consistencyCmd(opts))

	rootCmd.AddCommand(ledgerCmd, reportCmd(opts), seedCmd(opts), postCmd(opts), reverseCmd(opts))

	return rootCmd
}

func consistencyCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "consistency",
		Short: "Check ledger consistency",
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := opts.client().consistency(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Total debits:        %s\n", report.TotalDebits)
			fmt.Fprintf(out, "Total credits:       %s\n", report.TotalCredits)
			fmt.Fprintf(out, "Unbalanced vouchers: %d\n", report.UnbalancedVouchers)

			if !report.Consistent {
				fmt.Fprintln(out, "Consistency check FAILED")
				return errInconsistent
			}
			fmt.Fprintln(out, "Consistency check PASSED")
			return nil
		},
	}
}

func reportCmd(opts *options) *cobra.Command {
	var asOf string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Balances and financial statements",
	}
	cmd.PersistentFlags().StringVar(&asOf, "as-of", "", "Report date (YYYY-MM-DD), defaults to today")

	query := func() url.Values {
		q := url.Values{}
		if asOf != "" {
			q.Set("as_of", asOf)
		}
		return q
	}

	var accountID string
	balance := &cobra.Command{
		Use:   "balance",
		Short: "Running balance of one account",
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp dto.AccountBalanceResponse
			if err := opts.client().getJSON(cmd.Context(), "/accounts/"+url.PathEscape(accountID)+"/balance", query(), &resp); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", resp.AccountID, resp.Balance.Amount, resp.Balance.Side)
			return nil
		},
	}
	balance.Flags().StringVar(&accountID, "account", "", "Account ID")
	_ = balance.MarkFlagRequired("account")

	cmd.AddCommand(
		balance,
		ledgerReportCmd(opts),
		&cobra.Command{
			Use:   "income",
			Short: "Income statement",
			RunE: func(cmd *cobra.Command, args []string) error {
				var resp dto.IncomeStatementResponse
				if err := opts.client().getJSON(cmd.Context(), "/reports/income-statement", query(), &resp); err != nil {
					return err
				}
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				printSection(w, resp.Income)
				printSection(w, resp.Expense)
				fmt.Fprintf(w, "Net income\t%s\n", resp.NetIncome)
				return w.Flush()
			},
		},
		&cobra.Command{
			Use:   "balance-sheet",
			Short: "Balance sheet",
			RunE: func(cmd *cobra.Command, args []string) error {
				var resp dto.BalanceSheetResponse
				if err := opts.client().getJSON(cmd.Context(), "/reports/balance-sheet", query(), &resp); err != nil {
					return err
				}
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				printSection(w, resp.Assets)
				printSection(w, resp.Liabilities)
				printSection(w, resp.Equity)
				fmt.Fprintf(w, "Net income\t%s\n", resp.NetIncome)
				fmt.Fprintf(w, "Opening difference\t%s\n", resp.OpeningDifference)
				fmt.Fprintf(w, "Total assets\t%s\n", resp.TotalAssets)
				fmt.Fprintf(w, "Total liabilities and equity\t%s\n", resp.TotalLiabilitiesAndEquity)
				fmt.Fprintf(w, "Reconciled\t%v\n", resp.Reconciled)
				return w.Flush()
			},
		},
		&cobra.Command{
			Use:   "trial-balance",
			Short: "Trial balance",
			RunE: func(cmd *cobra.Command, args []string) error {
				var resp dto.TrialBalanceResponse
				if err := opts.client().getJSON(cmd.Context(), "/reports/trial-balance", query(), &resp); err != nil {
					return err
				}
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "Account\tGroup\tDebit\tCredit")
				for _, l := range resp.Lines {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", l.AccountName, l.GroupName, l.Debit, l.Credit)
				}
				fmt.Fprintf(w, "Total\t\t%s\t%s\n", resp.TotalDebit, resp.TotalCredit)
				return w.Flush()
			},
		},
	)

	return cmd
}

func printSection(w io.Writer, s dto.NatureSectionResponse) {
	fmt.Fprintf(w, "%s\t%s\n", s.Nature, s.Total)
	for _, g := range s.Groups {
		fmt.Fprintf(w, "  %s\t%s\n", g.GroupName, g.Total)
	}
}

func ledgerReportCmd(opts *options) *cobra.Command {
	var accountID, from, to, xlsxPath string

	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Account statement between two dates",
		RunE: func(cmd *cobra.Command, args []string) error {
			q := url.Values{"from": {from}, "to": {to}}
			path := "/accounts/" + url.PathEscape(accountID) + "/ledger"

			if xlsxPath != "" {
				q.Set("format", "xlsx")
				f, err := os.Create(xlsxPath)
				if err != nil {
					return err
				}
				if err := opts.client().download(cmd.Context(), path, q, f); err != nil {
					f.Close()
					return err
				}
				if err := f.Close(); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", xlsxPath)
				return nil
			}

			var resp dto.LedgerReportResponse
			if err := opts.client().getJSON(cmd.Context(), path, q, &resp); err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "Date\tVoucher\tParticulars\tDebit\tCredit\tBalance")
			fmt.Fprintf(w, "%s\t\tOpening\t\t\t%s %s\n", resp.From, resp.Opening.Amount, resp.Opening.Side)
			for _, r := range resp.Rows {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s %s\n", r.Date, r.VoucherNo, r.ParticularsName, r.Debit, r.Credit, r.Balance.Amount, r.Balance.Side)
			}
			fmt.Fprintf(w, "%s\t\tClosing\t%s\t%s\t%s %s\n", resp.To, resp.TotalDebit, resp.TotalCredit, resp.Closing.Amount, resp.Closing.Side)
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "Account ID")
	cmd.Flags().StringVar(&from, "from", "", "First day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "Last day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "Write the report to this XLSX file instead")
	_ = cmd.MarkFlagRequired("account")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func seedCmd(opts *options) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create a chart of accounts from a YAML file",
		RunE: func(cmd *cobra.Command, args []string) error {
			chart, err := seed.LoadFile(file)
			if err != nil {
				return err
			}

			res, err := seed.Apply(cmd.Context(), chart, opts.client())
			if res != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "groups created: %d, accounts created: %d\n", res.GroupsCreated, res.AccountsCreated)
				for _, s := range res.Skipped {
					fmt.Fprintf(cmd.OutOrStdout(), "skipped existing %s\n", s)
				}
			}
			return err
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "Chart of accounts YAML file")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func postCmd(opts *options) *cobra.Command {
	var req dto.CreateTransactionRequest
	var amount, key string

	cmd := &cobra.Command{
		Use:   "post",
		Short: "Post a voucher debiting --from and crediting --to",
		RunE: func(cmd *cobra.Command, args []string) error {
			amt, err := decimal.NewFromString(amount)
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", amount, err)
			}
			req.Amount = amt

			header := http.Header{}
			if key != "" {
				header.Set(middleware.IdempotencyKeyHeader, key)
			}

			var v dto.VoucherResponse
			if err := opts.client().postJSON(cmd.Context(), "/transactions", req, &v, header); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s %s -> %s\n", v.VoucherNo, v.Date, v.Amount, v.FromAccountID, v.ToAccountID)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.FromAccountID, "from", "", "Debited account ID")
	cmd.Flags().StringVar(&req.ToAccountID, "to", "", "Credited account ID")
	cmd.Flags().StringVar(&amount, "amount", "", "Amount, at most two decimals")
	cmd.Flags().StringVar(&req.Date, "date", time.Now().UTC().Format("2006-01-02"), "Posting date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&req.Kind, "kind", "journal", "payin, payout or journal")
	cmd.Flags().StringVar(&req.Remarks, "remarks", "", "Free text")
	cmd.Flags().StringVar(&req.RefNo, "ref", "", "External reference")
	cmd.Flags().StringVar(&key, "idempotency-key", "", "Makes retries of this posting safe")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func reverseCmd(opts *options) *cobra.Command {
	var req dto.ReverseTransactionRequest

	cmd := &cobra.Command{
		Use:   "reverse VOUCHER",
		Short: "Post the mirror of a voucher",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var v dto.VoucherResponse
			if err := opts.client().postJSON(cmd.Context(), "/transactions/"+url.PathEscape(args[0])+"/reverse", req, &v, nil); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s reverses %s\n", v.VoucherNo, v.ReversesVoucherNo)
			return nil
		},
	}
	cmd.Flags().StringVar(&req.Date, "date", "", "Reversal date, defaults to today")
	cmd.Flags().StringVar(&req.Remarks, "remarks", "", "Free text")

	return cmd
}

