package document

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/shopspring/decimal"
)

const payslipHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>Payslip {{.Employee}} {{date .PaymentDate}}</title>
<style>
body { font-family: Helvetica, Arial, sans-serif; font-size: 12px; color: #222; }
h1 { font-size: 18px; margin-bottom: 2px; }
.muted { color: #666; }
table { width: 100%; border-collapse: collapse; margin-top: 16px; }
th, td { padding: 6px 8px; border-bottom: 1px solid #ddd; text-align: left; }
td.amount, th.amount { text-align: right; }
tr.total td { font-weight: bold; border-top: 2px solid #222; }
</style>
</head>
<body>
<h1>{{.Branch}}</h1>
<div class="muted">Payslip {{.Reference}}</div>
<table>
<tr><th>Employee</th><td>{{.Employee}}</td></tr>
{{- if .Position}}<tr><th>Position</th><td>{{.Position}}</td></tr>{{end}}
<tr><th>Payment date</th><td>{{date .PaymentDate}}</td></tr>
<tr><th>Deduction policy</th><td>{{label .Policy}}</td></tr>
</table>
<table>
<tr><th>Item</th><th class="amount">Amount</th></tr>
<tr><td>Gross salary</td><td class="amount">{{money .Gross}}</td></tr>
{{- range .Deductions}}
<tr><td>Advance repayment ({{date .AdvanceDate}})</td><td class="amount">-{{money .Amount}}</td></tr>
{{- end}}
<tr class="total"><td>Net paid</td><td class="amount">{{money .Net}}</td></tr>
</table>
{{- if .Notes}}<p class="muted">{{.Notes}}</p>{{end}}
</body>
</html>`

// PayslipLine is one advance repayment on a payslip
type PayslipLine struct {
	AdvanceDate time.Time
	Amount      decimal.Decimal
}

// PayslipData is everything printed on a payslip
type PayslipData struct {
	Reference   string
	Branch      string
	Employee    string
	Position    string
	PaymentDate time.Time
	Policy      string
	Gross       decimal.Decimal
	Net         decimal.Decimal
	Deductions  []PayslipLine
	Notes       string
}

// PayslipTemplate renders PayslipData to HTML
type PayslipTemplate struct {
	tmpl *template.Template
}

// NewPayslipTemplate parses the payslip layout with f's formatting functions
func NewPayslipTemplate(f *Formatter) (*PayslipTemplate, error) {
	tmpl, err := template.New("payslip").Funcs(template.FuncMap{
		"money": f.Money,
		"date":  f.Date,
		"label": f.Label,
	}).Parse(payslipHTML)
	if err != nil {
		return nil, fmt.Errorf("parse payslip template: %w", err)
	}
	return &PayslipTemplate{tmpl: tmpl}, nil
}

// Render executes the template
func (t *PayslipTemplate) Render(data PayslipData) (string, error) {
	var buf bytes.Buffer
	if err := t.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render payslip: %w", err)
	}
	return buf.String(), nil
}
