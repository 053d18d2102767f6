package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/smartbills/billctl/internal/client"
	"github.com/smartbills/billctl/internal/service"
)

var latestCount int

var billsCmd = &cobra.Command{
	Use:   "bills",
	Short: "Browse utility bills",
}

var billsLatestCmd = &cobra.Command{
	Use:   "latest",
	Short: "List the latest bills",
	RunE:  runBillsLatest,
}

var billsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one bill in detail",
	Args:  cobra.ExactArgs(1),
	RunE:  runBillsShow,
}

func init() {
	billsLatestCmd.Flags().IntVar(&latestCount, "count", 6, "number of bills: 3 or 6")
	billsCmd.AddCommand(billsLatestCmd)
	billsCmd.AddCommand(billsShowCmd)
}

func runBillsLatest(cmd *cobra.Command, args []string) error {
	bills, err := service.NewBillService(app.api).Latest(cmd.Context(), latestCount)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), app.term.RenderBills(bills))
	return nil
}

func runBillsShow(cmd *cobra.Command, args []string) error {
	bill, err := service.NewBillService(app.api).Get(cmd.Context(), args[0])
	if errors.Is(err, client.ErrNotFound) {
		return fmt.Errorf("bill %s not found; it may have been deleted", args[0])
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s\n\n", bill.Title)
	fmt.Fprintf(out, "Category:    %s\n", bill.Category)
	fmt.Fprintf(out, "Description: %s\n", bill.Description)
	fmt.Fprintf(out, "Amount:      ৳%s\n", bill.Amount.String())
	fmt.Fprintf(out, "Location:    %s\n", bill.Location)
	fmt.Fprintf(out, "Date:        %s\n", bill.Date.LocaleString())

	sess, err := app.store.Current(cmd.Context())
	if err == nil {
		mgr := app.manager(sess)
		if mgr.Payable(bill) {
			fmt.Fprintf(out, "\nPayable now: billctl paid pay %s\n", bill.ID)
		} else {
			fmt.Fprintln(out, "\nOnly bills of the current month can be paid.")
		}
	}
	return nil
}
