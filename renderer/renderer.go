package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/etnz/forex"
)

//go:embed templates/*.md
var templates embed.FS

// funcs returns the template functions formatting amounts in the accounting
// currency acc.
func funcs(acc string) template.FuncMap {
	return template.FuncMap{
		// amount formats money in the accounting currency.
		"amount": func(m forex.Money) string { return m.In(acc).String() },
		// rate formats a unit price, with four decimals.
		"rate": func(m forex.Money) string { return m.Decimal().StringFixed(4) + " " + acc },
		// qty formats a quantity of a currency.
		"qty": func(q forex.Quantity, cur string) string { return q.In(cur).String() },
		"signed": func(m forex.Money) string { return m.In(acc).SignedString() },
		"when": func(tx forex.Transaction) string {
			if tx.Time.IsZero() {
				return "-"
			}
			return tx.Time.Format("2006-01-02 15:04")
		},
		"cell": cell,
	}
}

// cell escapes a free text to fit in a markdown table cell.
func cell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	s = strings.ReplaceAll(s, "\n", " ")
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, acc string, data any) string {
	mainContent, err := fs.ReadFile(templates, "templates/"+mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Funcs(funcs(acc)).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, err := fs.ReadFile(templates, "templates/"+file)
		if err != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, err)
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}

// supplierHoldings are the positions of one supplier.
type supplierHoldings struct {
	Name      string
	Positions []forex.Position
}

type inventoryView struct {
	Totals    []forex.Position
	Suppliers []supplierHoldings
	Skipped   int
}

// RenderInventory renders the stock on hand, globally and per supplier. When
// supplier is not empty only that supplier's stock is rendered.
func RenderInventory(inv *forex.Inventory, supplier, acc string) string {
	v := inventoryView{Skipped: len(inv.Skipped())}
	if supplier == "" {
		v.Totals = inv.Totals()
	}
	for _, s := range inv.Suppliers() {
		if supplier != "" && s != supplier {
			continue
		}
		v.Suppliers = append(v.Suppliers, supplierHoldings{Name: s, Positions: inv.Holdings(s)})
	}
	partials := map[string]string{"positions": "positions.md"}
	return renderTemplate("inventory", "inventory.md", partials, acc, v)
}

type reportView struct {
	*forex.Report
	Title string
}

// RenderReport renders a report: its totals, its per-currency breakdown and
// optionally its records.
func RenderReport(r *forex.Report, acc string, withTransactions bool) string {
	title := "General report"
	if r.Options.Mode == forex.BySupplier {
		title = "Supplier report"
		if r.Options.Supplier != "" {
			title += ": " + r.Options.Supplier
		}
	}
	partials := map[string]string{"breakdown": "report_breakdown.md", "records": "empty.md"}
	if withTransactions {
		partials["records"] = "report_records.md"
	}
	return renderTemplate("report", "report.md", partials, acc, reportView{Report: r, Title: title})
}

// RenderListing renders a list of records with its footer totals.
func RenderListing(l *forex.Listing, acc string) string {
	return renderTemplate("listing", "listing.md", nil, acc, l)
}

// RenderDashboard renders the overview of the books.
func RenderDashboard(d *forex.Dashboard, acc string) string {
	partials := map[string]string{"positions": "positions.md"}
	return renderTemplate("dashboard", "dashboard.md", partials, acc, d)
}

// Transaction renders a one line summary of a record.
func Transaction(tx forex.Transaction, acc string) string {
	if err := tx.Check(); err != nil {
		return fmt.Sprintf("Malformed record %q: %v", tx.ID, err)
	}
	switch tx.Kind {
	case forex.Receipt:
		return fmt.Sprintf("Received %s from %s at %s %s, for %s",
			tx.Quantity.In(tx.Currency), tx.Counterparty, tx.Price.Decimal().StringFixed(4), acc, tx.Total.In(acc))
	case forex.Sale:
		return fmt.Sprintf("Sold %s of %s's stock to %s at %s %s, for %s (cost basis %s %s, profit %s)",
			tx.Quantity.In(tx.Currency), tx.Supplier, tx.Counterparty, tx.Price.Decimal().StringFixed(4), acc,
			tx.Total.In(acc), tx.CostBasis.Decimal().StringFixed(4), acc, tx.Profit.In(acc).SignedString())
	default:
		return string(tx.Kind)
	}
}
