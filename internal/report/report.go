// Package report filters the activity journal and serializes it for
// export: CSV for spreadsheets, an HTML envelope with a word-processor
// MIME type, and a printable HTML view.
package report

import (
	"fmt"
	"html/template"
	"io"
	"strconv"
	"strings"
	"time"

	"StockKeeper/internal/model"
)

// WordMIMEType is the content type offered with the document export.
const WordMIMEType = "application/msword"

// csvHeader fixes the column order of the CSV contract.
const csvHeader = "Date,Performed By,Action,Item Name,Category,Quantity,Location"

// bom makes spreadsheet tools detect UTF-8 correctly.
const bom = "\ufeff"

// Filter returns entries whose item name, actor or action type contains
// the term, case-insensitive. An empty term matches everything.
func Filter(logs []model.InventoryLog, term string) []model.InventoryLog {
	if strings.TrimSpace(term) == "" {
		return logs
	}
	needle := strings.ToLower(term)
	var out []model.InventoryLog
	for _, entry := range logs {
		if strings.Contains(strings.ToLower(entry.ItemName), needle) ||
			strings.Contains(strings.ToLower(entry.PerformedBy), needle) ||
			strings.Contains(strings.ToLower(entry.ActionType), needle) {
			out = append(out, entry)
		}
	}
	return out
}

// WriteCSV writes the BOM, the header row and one row per entry. The
// item-name field is double-quoted to tolerate embedded commas. For N
// entries the output has exactly N+1 lines.
func WriteCSV(w io.Writer, logs []model.InventoryLog) error {
	lines := make([]string, 0, len(logs)+1)
	lines = append(lines, csvHeader)
	for _, entry := range logs {
		lines = append(lines, strings.Join([]string{
			formatDate(entry.Timestamp),
			entry.PerformedBy,
			entry.ActionType,
			quote(entry.ItemName),
			entry.Category,
			strconv.Itoa(entry.QuantityChange),
			entry.Location,
		}, ","))
	}
	_, err := io.WriteString(w, bom+strings.Join(lines, "\n"))
	return err
}

// CSVFileName stamps the export with the current date.
func CSVFileName(now time.Time) string {
	return fmt.Sprintf("stock_report_%s.csv", now.Format("02-01-2006"))
}

// WordFileName stamps the document export with the current date.
func WordFileName(now time.Time) string {
	return fmt.Sprintf("stock_report_%s.doc", now.Format("02-01-2006"))
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func formatDate(t time.Time) string {
	return t.Format("02/01/2006")
}

type row struct {
	Date        string
	PerformedBy string
	Action      string
	ItemName    string
	Category    string
	Quantity    int
	Location    string
}

type document struct {
	Exported string
	Rows     []row
}

func buildDocument(logs []model.InventoryLog, now time.Time) document {
	doc := document{Exported: formatDate(now)}
	for _, entry := range logs {
		doc.Rows = append(doc.Rows, row{
			Date:        formatDate(entry.Timestamp),
			PerformedBy: entry.PerformedBy,
			Action:      entry.ActionType,
			ItemName:    entry.ItemName,
			Category:    entry.Category,
			Quantity:    entry.QuantityChange,
			Location:    entry.Location,
		})
	}
	return doc
}

const tableMarkup = `<table border="1" cellspacing="0" cellpadding="4">
<thead><tr><th>Date</th><th>Performed By</th><th>Action</th><th>Item Name</th><th>Category</th><th>Quantity</th><th>Location</th></tr></thead>
<tbody>
{{- range .Rows}}
<tr><td>{{.Date}}</td><td>{{.PerformedBy}}</td><td>{{.Action}}</td><td>{{.ItemName}}</td><td>{{.Category}}</td><td>{{.Quantity}}</td><td>{{.Location}}</td></tr>
{{- end}}
</tbody>
</table>`

// wordTmpl wraps the table markup in the minimal Office HTML envelope.
// It is a markup-reuse trick, not a true document-format encoder.
var wordTmpl = template.Must(template.New("word").Parse(
	`<html xmlns:o='urn:schemas-microsoft-com:office:office' xmlns:w='urn:schemas-microsoft-com:office:word' xmlns='http://www.w3.org/TR/REC-html40'>` +
		`<head><meta charset='utf-8'><title>Stock Report</title></head><body>` + "\n" +
		`<h2 style="text-align:center">STOCK MOVEMENT REPORT</h2>` + "\n" +
		`<p style="text-align:center">Exported: {{.Exported}}</p>` + "\n" +
		tableMarkup + "\n</body></html>"))

// htmlTmpl is the print-specific view of the same table.
var htmlTmpl = template.Must(template.New("print").Parse(
	`<!DOCTYPE html>
<html><head><meta charset="utf-8"><title>Stock Report</title>
<style>body{font-family:sans-serif}h1{text-align:center;text-transform:uppercase}p{text-align:center;color:#555}table{width:100%;border-collapse:collapse}th,td{border:1px solid #333;padding:4px;text-align:left}</style>
</head><body>
<h1>Stock Movement Report</h1>
<p>Exported: {{.Exported}}</p>
` + tableMarkup + "\n</body></html>\n"))

// WriteWord writes the BOM-prefixed Office HTML document.
func WriteWord(w io.Writer, logs []model.InventoryLog, now time.Time) error {
	if _, err := io.WriteString(w, bom); err != nil {
		return err
	}
	return wordTmpl.Execute(w, buildDocument(logs, now))
}

// WriteHTML writes the printable report view.
func WriteHTML(w io.Writer, logs []model.InventoryLog, now time.Time) error {
	return htmlTmpl.Execute(w, buildDocument(logs, now))
}
