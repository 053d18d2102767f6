package ui

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/smartbills/billctl/internal/models"
)

// Terminal implements the confirmation and notification surface on stdio.
type Terminal struct {
	in    *bufio.Reader
	out   io.Writer
	theme Theme

	success lipgloss.Style
	failure lipgloss.Style
	header  lipgloss.Style
	muted   lipgloss.Style
}

// NewTerminal creates a Terminal reading confirmations from in and writing
// to out, styled for the given theme.
func NewTerminal(in io.Reader, out io.Writer, theme Theme) *Terminal {
	headerColor := lipgloss.Color("236")
	if theme == ThemeDark {
		headerColor = lipgloss.Color("250")
	}
	return &Terminal{
		in:      bufio.NewReader(in),
		out:     out,
		theme:   theme,
		success: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		failure: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
		header:  lipgloss.NewStyle().Bold(true).Foreground(headerColor),
		muted:   lipgloss.NewStyle().Faint(true),
	}
}

// Confirm asks a yes/no question and returns true only on an explicit yes.
func (t *Terminal) Confirm(prompt string) bool {
	fmt.Fprintf(t.out, "%s [y/N]: ", prompt)
	line, err := t.in.ReadString('\n')
	if err != nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

// Success prints a success notification.
func (t *Terminal) Success(msg string) {
	fmt.Fprintln(t.out, t.success.Render("✔ "+msg))
}

// Error prints a failure notification.
func (t *Terminal) Error(msg string) {
	fmt.Fprintln(t.out, t.failure.Render("✖ "+msg))
}

// Info prints a neutral message.
func (t *Terminal) Info(msg string) {
	fmt.Fprintln(t.out, msg)
}

// RenderBills renders a bill listing as a table.
func (t *Terminal) RenderBills(bills []models.Bill) string {
	if len(bills) == 0 {
		return t.muted.Render("No bills found.")
	}
	tbl := t.newTable("ID", "Title", "Category", "Amount", "Location", "Date")
	for _, b := range bills {
		tbl.Row(b.ID, b.Title, b.Category, "৳"+b.Amount.String(), b.Location, b.Date.LocaleString())
	}
	return tbl.Render()
}

// RenderPaidBills renders the paid-bill listing as a table, one row per
// record in server order.
func (t *Terminal) RenderPaidBills(bills []models.PaidBill) string {
	if len(bills) == 0 {
		return t.muted.Render("No bills found. You haven't paid any bills yet.")
	}
	tbl := t.newTable("SL", "Username", "Email", "Amount", "Address", "Phone", "Date")
	for i, b := range bills {
		tbl.Row(fmt.Sprintf("%d", i+1), b.Username, b.Email, "৳"+b.Amount.String(), b.Address, b.Phone, b.Date.LocaleString())
	}
	return tbl.Render()
}

func (t *Terminal) newTable(cols ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(cols...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return t.header.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
}
