// Package export renders admin spreadsheets.
package export

import (
	"crypto-storefront/internal/model"
	"fmt"
	"io"
	"strings"

	"github.com/tealeg/xlsx"
)

const (
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	timeLayout  = "2006-01-02 15:04:05"
)

func addHeader(sheet *xlsx.Sheet, headers []string) {
	row := sheet.AddRow()
	for _, h := range headers {
		row.AddCell().SetString(h)
	}
}

func WriteOrders(w io.Writer, orders []*model.Order) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Orders")
	if err != nil {
		return fmt.Errorf("add orders sheet: %w", err)
	}

	addHeader(sheet, []string{
		"ID", "UserID", "UserEmail", "Status", "Total", "PaymentMethod",
		"Network", "WalletAddress", "Items", "CreatedAt",
	})

	for _, o := range orders {
		items := make([]string, len(o.Items))
		for i, item := range o.Items {
			items[i] = fmt.Sprintf("%s x%d", item.Name, item.Quantity)
		}

		row := sheet.AddRow()
		row.AddCell().SetString(o.ID)
		row.AddCell().SetString(o.UserID)
		row.AddCell().SetString(o.UserEmail)
		row.AddCell().SetString(string(o.Status))
		row.AddCell().SetFloat(o.TotalPrice.InexactFloat64())
		row.AddCell().SetString(o.PaymentMethod)
		row.AddCell().SetString(o.Network)
		row.AddCell().SetString(o.WalletAddress)
		row.AddCell().SetString(strings.Join(items, "; "))
		row.AddCell().SetString(o.CreatedAt.Format(timeLayout))
	}

	if err := file.Write(w); err != nil {
		return fmt.Errorf("write orders workbook: %w", err)
	}
	return nil
}

func WriteProducts(w io.Writer, products []*model.Product) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	if err != nil {
		return fmt.Errorf("add products sheet: %w", err)
	}

	addHeader(sheet, []string{
		"ID", "Slug", "Name", "Category", "Price", "Hidden", "Custom",
		"Hosting", "CustomDomain", "Inbox", "Images", "CreatedAt",
	})

	for _, p := range products {
		row := sheet.AddRow()
		row.AddCell().SetString(p.ID)
		row.AddCell().SetString(p.Slug)
		row.AddCell().SetString(p.Name)
		row.AddCell().SetString(p.Category)
		row.AddCell().SetFloat(p.Price.InexactFloat64())
		row.AddCell().SetBool(p.Hidden)
		row.AddCell().SetBool(p.IsCustom)
		row.AddCell().SetString(addOnLabel(p.Hosting))
		row.AddCell().SetString(addOnLabel(p.CustomDomain))
		row.AddCell().SetString(addOnLabel(p.InboxAddon))
		row.AddCell().SetString(strings.Join(p.ImageURLs, ","))
		row.AddCell().SetString(p.CreatedAt.Format(timeLayout))
	}

	if err := file.Write(w); err != nil {
		return fmt.Errorf("write products workbook: %w", err)
	}
	return nil
}

func addOnLabel(a model.AddOn) string {
	if !a.Enabled {
		return "-"
	}
	return fmt.Sprintf("%s/%s", a.Price.StringFixed(2), a.BillingCycle)
}
