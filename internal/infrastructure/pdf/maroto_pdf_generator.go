// Package pdf renders the printable invoice with Maroto v2.
//
// A4 page layout:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Shop name + GSTIN  │  TAX INVOICE / CASH MEMO      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  SELLER: Address / Phone                                    │
//	│  BUYER: Name + GSTIN + contact                              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLE: SN | Item | HSN | Qty | Net Wt | Rate | Amount      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALS: Subtotal / CGST / SGST / Discount / GRAND TOTAL    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: terms + "Thank You! Visit Again."                  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	appbilling "github.com/gemsaccurate/billing-api/internal/application/billing"
	domainbilling "github.com/gemsaccurate/billing-api/internal/domain/billing"
	"github.com/gemsaccurate/billing-api/internal/domain/entity"
)

// ── Color palette ─────────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 128, Green: 64, Blue: 0}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ appbilling.InvoicePDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implements billing.InvoicePDFGenerator using Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator builds the generator.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateInvoicePDF renders the invoice and returns the PDF bytes.
func (g *MarotoPDFGenerator) GenerateInvoicePDF(
	_ context.Context,
	invoice *entity.Invoice,
	company *entity.Company,
	customer *entity.Customer,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(documentTitle(invoice), true).
		WithAuthor(company.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(invoice, company))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(sellerRow(company))
	m.AddRows(buyerRow(customer))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableItemRows(invoice.Items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(invoice))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	for _, r := range footerRows(invoice) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate document: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Sections ──────────────────────────────────────────────────────────────────

func documentTitle(invoice *entity.Invoice) string {
	if invoice.Prefix == entity.PrefixTaxInvoice {
		return "TAX INVOICE"
	}
	return "CASH MEMO"
}

// headerRow: shop name + GSTIN (left), document kind + number + dates (right).
func headerRow(invoice *entity.Invoice, company *entity.Company) core.Row {
	issue := invoice.IssueDate.Format("02/01/2006")
	due := invoice.DueDate.Format("02/01/2006")

	return row.New(20).Add(
		col.New(7).Add(
			text.New(company.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("GSTIN: "+nonEmpty(company.GSTIN, "—"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(documentTitle(invoice), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(invoice.Number, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Date: "+issue+"   Due: "+due, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// sellerRow: shop contact details.
func sellerRow(company *entity.Company) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("SELLER", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Address: %s   |   Phone: %s",
				nonEmpty(company.Address, "—"),
				nonEmpty(company.Phone, "—"),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// buyerRow: customer details. GSTIN shows only on tax invoices but is printed
// whenever present.
func buyerRow(customer *entity.Customer) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("BUYER", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(buyerName(customer), props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("GSTIN: %s   |   Phone: %s   |   %s",
				nonEmpty(customer.GSTIN, "—"),
				nonEmpty(customer.Phone, "—"),
				nonEmpty(customer.Address, "—"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func buyerName(customer *entity.Customer) string {
	name := customer.Name
	if customer.FatherName != "" {
		name += " S/o " + customer.FatherName
	}
	if customer.BusinessName != "" {
		name += " (" + customer.BusinessName + ")"
	}
	return name
}

// tableHeaderRow: item table header.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("SN", 1, align.Center),
		h("Item (HSN)", 3, align.Left),
		h("Qty", 1, align.Center),
		h("Gross g", 2, align.Right),
		h("Net g", 1, align.Right),
		h("Rate/g", 2, align.Right),
		h("Amount", 2, align.Right),
	)
}

// tableItemRows: one row per line item, amount priced the same way the
// invoice totals were.
func tableItemRows(items []entity.LineItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for i, it := range items {
		name := it.ItemName
		if it.Purity != "" {
			name += " " + it.Purity
		}
		if it.HSN != "" {
			name += " (" + it.HSN + ")"
		}
		amount := domainbilling.PriceLine(it)

		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", i+1),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(3).Add(text.New(
				name,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", it.Quantity),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				it.GrossWeight.StringFixed(3),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(1).Add(text.New(
				it.NetWeight.StringFixed(3),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				"₹"+it.Rate.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				"₹"+amount.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: totals block aligned right. GST lines print only on tax
// invoices; a cash memo goes straight from subtotal to total.
func totalsRow(invoice *entity.Invoice) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandLabel := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2,
		})
	}
	grandValue := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1,
		})
	}

	labels := []core.Component{label("Subtotal:")}
	values := []core.Component{value("₹" + invoice.Subtotal.StringFixed(2))}
	if invoice.Prefix == entity.PrefixTaxInvoice {
		labels = append(labels, label("CGST @1.5%:"), label("SGST @1.5%:"))
		values = append(values,
			value("₹"+invoice.CGST.StringFixed(2)),
			value("₹"+invoice.SGST.StringFixed(2)),
		)
	}
	if invoice.Discount.IsPositive() {
		labels = append(labels, label("Discount:"))
		values = append(values, value("-₹"+invoice.Discount.StringFixed(2)))
	}
	labels = append(labels, grandLabel("GRAND TOTAL:"))
	values = append(values, grandValue("₹"+invoice.Principal.StringFixed(2)))

	return row.New(32).Add(
		col.New(3),
		col.New(4).Add(labels...),
		col.New(3).Add(values...),
		col.New(2),
	)
}

// footerRows: payment terms and the closing line.
func footerRows(invoice *entity.Invoice) []core.Row {
	terms := fmt.Sprintf(
		"Payment due by %s. Overdue balances accrue interest at %s%% per %s, compounded.",
		invoice.DueDate.Format("02/01/2006"),
		invoice.InterestRate.String(),
		periodNoun(invoice.InterestCompoundPeriod),
	)
	return []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New(terms, props.Text{Size: 7, Color: colorGray, Top: 1}),
		)),
		row.New(10).Add(col.New(12).Add(
			text.New("Thank You! Visit Again.", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Center,
				Color: colorPrimary, Top: 3,
			}),
		)),
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func periodNoun(period string) string {
	switch period {
	case entity.CompoundQuarterly:
		return "quarter"
	case entity.CompoundHalfYearly:
		return "half year"
	case entity.CompoundAnnually:
		return "year"
	default:
		return "month"
	}
}
