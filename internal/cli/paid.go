package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/smartbills/billctl/internal/report"
	"github.com/smartbills/billctl/internal/service"
)

var (
	payForm    service.PayForm
	updateForm service.UpdateForm
)

var paidCmd = &cobra.Command{
	Use:   "paid",
	Short: "Manage your paid-bill history",
}

var paidListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your paid bills with totals",
	RunE:  runPaidList,
}

var paidPayCmd = &cobra.Command{
	Use:   "pay <billId>",
	Short: "Pay a bill dated in the current month",
	Args:  cobra.ExactArgs(1),
	RunE:  runPaidPay,
}

var paidUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Edit a paid-bill record",
	Args:  cobra.ExactArgs(1),
	RunE:  runPaidUpdate,
}

var paidDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a paid-bill record (asks for confirmation)",
	Args:  cobra.ExactArgs(1),
	RunE:  runPaidDelete,
}

var paidExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export your paid bills as a PDF report",
	RunE:  runPaidExport,
}

func init() {
	paidPayCmd.Flags().StringVar(&payForm.Address, "address", "", "billing address")
	paidPayCmd.Flags().StringVar(&payForm.Phone, "phone", "", "contact phone")
	paidPayCmd.Flags().StringVar(&payForm.AdditionalInfo, "note", "", "additional info")
	_ = paidPayCmd.MarkFlagRequired("address")
	_ = paidPayCmd.MarkFlagRequired("phone")

	paidUpdateCmd.Flags().Float64Var(&updateForm.Amount, "amount", 0, "new amount")
	paidUpdateCmd.Flags().StringVar(&updateForm.Address, "address", "", "new address")
	paidUpdateCmd.Flags().StringVar(&updateForm.Phone, "phone", "", "new phone")
	paidUpdateCmd.Flags().StringVar(&updateForm.Date, "date", "", "new payment date (YYYY-MM-DD)")

	paidCmd.AddCommand(paidListCmd)
	paidCmd.AddCommand(paidPayCmd)
	paidCmd.AddCommand(paidUpdateCmd)
	paidCmd.AddCommand(paidDeleteCmd)
	paidCmd.AddCommand(paidExportCmd)
}

func runPaidList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	sess, err := app.requireSession(ctx)
	if err != nil {
		return err
	}

	mgr := app.manager(sess)
	if err := mgr.Refresh(ctx); err != nil {
		return err
	}

	bills, _ := mgr.Bills()
	agg := mgr.Summary()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Total Bills Paid: %d\n", agg.Count)
	fmt.Fprintf(out, "Total Amount:     ৳%g\n\n", agg.Total)
	fmt.Fprintln(out, app.term.RenderPaidBills(bills))
	return nil
}

func runPaidPay(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	sess, err := app.requireSession(ctx)
	if err != nil {
		return err
	}

	bill, err := service.NewBillService(app.api).Get(ctx, args[0])
	if err != nil {
		return err
	}

	mgr := app.manager(sess)
	err = mgr.Pay(ctx, bill, payForm)
	if errors.Is(err, service.ErrNotPayable) {
		return fmt.Errorf("bill %s is dated %s: only bills of the current month can be paid", bill.ID, bill.Date.LocaleString())
	}
	return err
}

func runPaidUpdate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	sess, err := app.requireSession(ctx)
	if err != nil {
		return err
	}
	return app.manager(sess).Update(ctx, args[0], updateForm)
}

func runPaidDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	sess, err := app.requireSession(ctx)
	if err != nil {
		return err
	}
	return app.manager(sess).Delete(ctx, args[0])
}

func runPaidExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	sess, err := app.requireSession(ctx)
	if err != nil {
		return err
	}

	// The report is a snapshot of the freshly loaded list, not a separate
	// server query.
	mgr := app.manager(sess)
	if err := mgr.Refresh(ctx); err != nil {
		return err
	}
	bills, _ := mgr.Bills()

	path, err := report.Export(app.cfg.ReportDir, sess.Email, bills, app.theme)
	if errors.Is(err, report.ErrEmptyReport) {
		app.term.Info("No paid bills yet; nothing to export.")
		return nil
	}
	if err != nil {
		return err
	}
	app.term.Success("Report written to " + path)
	return nil
}
