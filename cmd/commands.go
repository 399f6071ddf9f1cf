package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"backoffice/internal/console"
	"backoffice/internal/export"
	"backoffice/internal/filter"
	"backoffice/internal/loyalty"
	"backoffice/internal/models"
	"backoffice/internal/tui"
)

func newConsoleCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "console",
		Short: "Open the terminal console",
		RunE: func(cmd *cobra.Command, args []string) error {
			// the console owns the screen, so logs are discarded
			a, err := bootstrap(flags, true)
			if err != nil {
				return err
			}
			defer a.close()
			return tui.Run(a.svc, tui.Options{Currency: a.cfg.Console.Currency})
		},
	}
}

// exportOptions are the filters accepted by the export command
type exportOptions struct {
	out    string
	outlet string
	status string
	bucket string
	query  string
	sort   string
}

func newExportCmd(flags *rootFlags) *cobra.Command {
	opts := &exportOptions{}
	cmd := &cobra.Command{
		Use:   "export orders|reservations|customers",
		Short: "Write a CSV export",
		Long: `Writes the filtered records as CSV. Without -o the file is named
after the entity and the current time, e.g. reservations_2026-01-14_20-00.csv.
Use -o - to write to stdout.`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"orders", "reservations", "customers"},
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap(flags, false)
			if err != nil {
				return err
			}
			defer a.close()
			return runExport(a, args[0], opts, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&opts.out, "output", "o", "", "Output file (default: timestamped name, - for stdout)")
	cmd.Flags().StringVar(&opts.outlet, "outlet", "", "Outlet id (orders only)")
	cmd.Flags().StringVar(&opts.status, "status", "", "Status filter")
	cmd.Flags().StringVar(&opts.bucket, "bucket", "", "Date bucket: today, yesterday, tomorrow, last_7_days, upcoming, past")
	cmd.Flags().StringVar(&opts.query, "q", "", "Free-text search")
	cmd.Flags().StringVar(&opts.sort, "sort", "", "Customer sort: most_orders, most_spent, recent")
	return cmd
}

func runExport(a *app, entity string, opts *exportOptions, stdout io.Writer) error {
	bucket, err := filter.ParseDateBucket(opts.bucket)
	if err != nil {
		return err
	}

	var e console.Export
	switch entity {
	case "orders":
		f := filter.OrderFilter{Outlet: opts.outlet, Bucket: bucket, Query: opts.query}
		if opts.status != "" {
			if f.Status, err = models.ParseOrderStatus(opts.status); err != nil {
				return err
			}
		}
		e, err = a.svc.ExportOrders(f)
	case "reservations":
		f := filter.ReservationFilter{Bucket: bucket, Query: opts.query}
		if opts.status != "" {
			if f.Status, err = models.ParseReservationStatus(opts.status); err != nil {
				return err
			}
		}
		e, err = a.svc.ExportReservations(f)
	case "customers":
		key, perr := loyalty.ParseSortKey(opts.sort)
		if perr != nil {
			return perr
		}
		e, err = a.svc.ExportCustomers(opts.query, key)
	default:
		return fmt.Errorf("unknown export %q: want orders, reservations or customers", entity)
	}
	if err != nil {
		return err
	}

	if e.Empty() {
		fmt.Fprintln(stdout, "nothing to export")
		return nil
	}

	path := opts.out
	if path == "" {
		path = export.SafeFilename(e.Filename)
	}
	w, err := output(path, stdout)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if _, err := io.WriteString(w, e.Content); err != nil {
		w.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if path != "-" {
		a.log.Info("export written", zap.String("entity", entity), zap.String("path", path), zap.Int("rows", e.Rows))
		fmt.Fprintf(stdout, "wrote %d %s to %s\n", e.Rows, entity, path)
	}
	return nil
}

func newCustomersCmd(flags *rootFlags) *cobra.Command {
	var sortKey, query string
	cmd := &cobra.Command{
		Use:   "customers",
		Short: "List loyal customers",
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := loyalty.ParseSortKey(sortKey)
			if err != nil {
				return err
			}
			a, err := bootstrap(flags, false)
			if err != nil {
				return err
			}
			defer a.close()
			return listCustomers(a, query, key, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&sortKey, "sort", string(loyalty.SortMostOrders), "Sort: most_orders, most_spent, recent")
	cmd.Flags().StringVar(&query, "q", "", "Search by name, outlet or id")
	return cmd
}

func listCustomers(a *app, query string, key loyalty.SortKey, stdout io.Writer) error {
	customers, err := a.svc.Customers(query, key)
	if err != nil {
		return err
	}
	summary, err := a.svc.CustomerSummary()
	if err != nil {
		return err
	}
	currency := a.cfg.Console.Currency
	loc := a.svc.Location()

	tw := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPHONE\tORDERS\tSPENT\tAVG\tLAST ORDER")
	for _, c := range customers {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s%s\t%s%s\t%s\n",
			c.ID, c.Name, c.Phone, strconv.Itoa(c.TotalOrders),
			currency, humanize.FormatFloat("#,###.##", c.TotalSpent),
			currency, humanize.FormatFloat("#,###.##", c.AvgOrderValue),
			c.LastOrderAt.In(loc).Format("2006-01-02 15:04"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "\n%d loyal customers, %.1f orders on average, %s%s average spend, repeat rate %d%%\n",
		summary.LoyalCount, summary.AvgOrders,
		currency, humanize.FormatFloat("#,###.##", summary.AvgSpend),
		summary.RepeatRateProxy)
	return nil
}
