package billing

// Bilingual (Hindi/English) printable documents. Styles are inlined so the
// HTML prints correctly without any external assets.

const farmerBillTmpl = `<!DOCTYPE html>
<html lang="hi">
<head>
<meta charset="utf-8">
<title>Milk Bill - {{.Farmer.Name}}</title>
<style>
body { font-family: Arial, sans-serif; font-size: 13px; margin: 24px; color: #222; }
h1 { font-size: 20px; margin: 0; text-align: center; }
.sub { text-align: center; color: #555; margin-bottom: 16px; }
table { width: 100%; border-collapse: collapse; margin: 12px 0; }
th, td { border: 1px solid #999; padding: 4px 6px; text-align: right; }
th { background: #f0f0f0; }
td:first-child, th:first-child { text-align: left; }
.totals td { font-weight: bold; }
.footer { margin-top: 24px; font-size: 11px; color: #777; text-align: center; }
</style>
</head>
<body>
<h1>{{.Dairy.Name}}</h1>
<div class="sub">{{.Dairy.Address}} &middot; {{.Dairy.Phone}}</div>

<p><b>दूध बिल / Milk Bill</b><br>
किसान / Farmer: {{.Farmer.Name}} ({{.Farmer.Village}})<br>
अवधि / Period: {{.FromDate}} से {{.ToDate}}</p>

<table>
<tr><th>दिनांक / Date</th><th>पारी / Shift</th><th>मात्रा (ली) / Qty (L)</th><th>फैट / Fat</th><th>SNF</th><th>दर / Rate</th><th>राशि / Amount</th></tr>
{{range .Collections}}
<tr><td>{{.Date}}</td><td>{{.Shift}}</td><td>{{qty .Quantity}}</td><td>{{.Fat}}</td><td>{{.SNF}}</td><td>{{money .Rate}}</td><td>{{money .Amount}}</td></tr>
{{end}}
<tr class="totals"><td colspan="2">कुल / Total</td><td>{{qty .Summary.TotalQtyLiters}}</td><td>{{.Summary.AvgFat}}</td><td>{{.Summary.AvgSNF}}</td><td></td><td>{{money .Summary.TotalAmount}}</td></tr>
</table>

{{if .Payments}}
<table>
<tr><th>भुगतान दिनांक / Payment Date</th><th>माध्यम / Mode</th><th>राशि / Amount</th></tr>
{{range .Payments}}
<tr><td>{{.Date}}</td><td>{{.PaymentMode}}</td><td>{{money .Amount}}</td></tr>
{{end}}
<tr class="totals"><td colspan="2">कुल भुगतान / Total Paid</td><td>{{money .PaidInRange}}</td></tr>
</table>
{{end}}

<p><b>कुल बकाया / Balance Due: ₹{{money .Farmer.Balance}}</b></p>

<div class="footer">Generated on {{.GeneratedAt}}</div>
</body>
</html>`

const thermalBillTmpl = `<!DOCTYPE html>
<html lang="hi">
<head>
<meta charset="utf-8">
<title>Receipt - {{.Farmer.Name}}</title>
<style>
body { font-family: monospace; font-size: 11px; width: 58mm; margin: 0; padding: 4px; }
.center { text-align: center; }
hr { border: none; border-top: 1px dashed #000; }
table { width: 100%; border-collapse: collapse; }
td { padding: 1px 0; }
td.r { text-align: right; }
</style>
</head>
<body>
<div class="center"><b>{{.Dairy.Name}}</b><br>{{.Dairy.Phone}}</div>
<hr>
<div>{{.Farmer.Name}} / {{.Farmer.Village}}</div>
<div>{{.FromDate}} - {{.ToDate}}</div>
<hr>
<table>
{{range .Collections}}
<tr><td>{{.Date}} {{.Shift}}</td><td class="r">{{qty .Quantity}}L x {{money .Rate}}</td><td class="r">{{money .Amount}}</td></tr>
{{end}}
</table>
<hr>
<table>
<tr><td>दूध / Milk</td><td class="r">{{qty .Summary.TotalQtyLiters}} L</td></tr>
<tr><td>राशि / Amount</td><td class="r">{{money .Summary.TotalAmount}}</td></tr>
<tr><td>भुगतान / Paid</td><td class="r">{{money .PaidInRange}}</td></tr>
<tr><td><b>बकाया / Due</b></td><td class="r"><b>{{money .Farmer.Balance}}</b></td></tr>
</table>
<hr>
<div class="center">धन्यवाद / Thank You</div>
</body>
</html>`

const a4BillTmpl = `<!DOCTYPE html>
<html lang="hi">
<head>
<meta charset="utf-8">
<title>Invoice - {{.Farmer.Name}}</title>
<style>
@page { size: A4; margin: 20mm; }
body { font-family: Georgia, serif; font-size: 13px; color: #1a1a1a; }
.head { display: flex; justify-content: space-between; border-bottom: 2px solid #1a5d1a; padding-bottom: 12px; }
h1 { color: #1a5d1a; margin: 0; }
table { width: 100%; border-collapse: collapse; margin: 16px 0; }
th, td { border: 1px solid #bbb; padding: 6px 8px; text-align: right; }
th { background: #e8f4e8; }
td:first-child, th:first-child { text-align: left; }
.grand { font-size: 15px; font-weight: bold; text-align: right; }
.sign { margin-top: 48px; display: flex; justify-content: space-between; }
</style>
</head>
<body>
<div class="head">
<div><h1>{{.Dairy.Name}}</h1>{{.Dairy.Address}}<br>{{.Dairy.Phone}}</div>
<div><b>दूध बिल / MILK INVOICE</b><br>Period: {{.FromDate}} to {{.ToDate}}</div>
</div>

<p><b>Billed To:</b> {{.Farmer.Name}}, {{.Farmer.Village}}<br>
Phone: {{.Farmer.Phone}}{{if .Farmer.BankAccount}} &middot; A/c: {{.Farmer.BankAccount}} ({{.Farmer.IFSCCode}}){{end}}</p>

<table>
<tr><th>Date</th><th>Shift</th><th>Qty (L)</th><th>Fat</th><th>SNF</th><th>Rate</th><th>Amount</th></tr>
{{range .Collections}}
<tr><td>{{.Date}}</td><td>{{.Shift}}</td><td>{{qty .Quantity}}</td><td>{{.Fat}}</td><td>{{.SNF}}</td><td>{{money .Rate}}</td><td>{{money .Amount}}</td></tr>
{{end}}
</table>

<p class="grand">Total Milk: {{qty .Summary.TotalQtyLiters}} L &middot; Bill Amount: ₹{{money .Summary.TotalAmount}}<br>
Paid: ₹{{money .PaidInRange}} &middot; Balance Due: ₹{{money .Farmer.Balance}}</p>

<div class="sign"><div>____________________<br>Farmer Signature</div><div>____________________<br>For {{.Dairy.Name}}</div></div>
</body>
</html>`

const plantStatementTmpl = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Statement - {{.Plant.Name}}</title>
<style>
body { font-family: Arial, sans-serif; font-size: 13px; margin: 24px; color: #222; }
h1 { font-size: 20px; margin: 0; text-align: center; }
.sub { text-align: center; color: #555; margin-bottom: 16px; }
table { width: 100%; border-collapse: collapse; margin: 12px 0; }
th, td { border: 1px solid #999; padding: 4px 6px; text-align: right; }
th { background: #f0f0f0; }
td:first-child, th:first-child { text-align: left; }
.totals td { font-weight: bold; }
.matched { color: #1a5d1a; }
.pending { color: #a05a00; }
</style>
</head>
<body>
<h1>{{.Dairy.Name}}</h1>
<div class="sub">Account Statement &middot; {{.Plant.Name}} ({{.Plant.Code}}) &middot; {{.FromDate}} to {{.ToDate}}</div>

<table>
<tr><th>Date</th><th>Tanker</th><th>Qty (kg)</th><th>Fat</th><th>Rate/kg</th><th>Gross</th><th>Deductions</th><th>Net</th><th>Slip</th></tr>
{{range .Dispatches}}
<tr><td>{{.Date}}</td><td>{{.TankerNumber}}</td><td>{{qty .QuantityKg}}</td><td>{{.AvgFat}}</td><td>{{money .RatePerKg}}</td><td>{{money .GrossAmount}}</td><td>{{money .TotalDeduction}}</td><td>{{money .NetReceivable}}</td><td>{{if .SlipMatched}}<span class="matched">matched</span>{{else}}<span class="pending">pending</span>{{end}}</td></tr>
{{end}}
<tr class="totals"><td colspan="2">Total</td><td>{{qty .Summary.TotalQtyKg}}</td><td colspan="4"></td><td>{{money .Summary.TotalNetReceivable}}</td><td></td></tr>
</table>

{{if .Payments}}
<table>
<tr><th>Payment Date</th><th>Mode</th><th>Reference</th><th>Amount</th></tr>
{{range .Payments}}
<tr><td>{{.Date}}</td><td>{{.PaymentMode}}</td><td>{{.ReferenceNumber}}</td><td>{{money .Amount}}</td></tr>
{{end}}
<tr class="totals"><td colspan="3">Total Received</td><td>{{money .PaidInRange}}</td></tr>
</table>
{{end}}

<p><b>Balance Receivable: ₹{{money .Plant.Balance}}</b></p>
<div class="sub">Generated on {{.GeneratedAt}}</div>
</body>
</html>`

const dailyReportTmpl = `<!DOCTYPE html>
<html lang="hi">
<head>
<meta charset="utf-8">
<title>Daily Report - {{.Date}}</title>
<style>
body { font-family: Arial, sans-serif; font-size: 12px; margin: 24px; color: #222; }
h1 { font-size: 18px; margin: 0; text-align: center; }
.sub { text-align: center; color: #555; margin-bottom: 12px; }
table { width: 100%; border-collapse: collapse; margin: 10px 0; }
th, td { border: 1px solid #999; padding: 3px 5px; text-align: right; }
th { background: #f0f0f0; }
td:first-child, th:first-child { text-align: left; }
.totals td { font-weight: bold; }
</style>
</head>
<body>
<h1>{{.Dairy.Name}}</h1>
<div class="sub">दैनिक संग्रह रिपोर्ट / Daily Collection Report &middot; {{.Date}}</div>

<table>
<tr><th>किसान / Farmer</th><th>पारी / Shift</th><th>मात्रा (ली)</th><th>फैट</th><th>SNF</th><th>दर</th><th>राशि</th></tr>
{{range .Collections}}
<tr><td>{{.FarmerName}}</td><td>{{.Shift}}</td><td>{{qty .Quantity}}</td><td>{{.Fat}}</td><td>{{.SNF}}</td><td>{{money .Rate}}</td><td>{{money .Amount}}</td></tr>
{{end}}
</table>

<table>
<tr><th></th><th>मात्रा (ली) / Qty (L)</th><th>औसत फैट / Avg Fat</th><th>औसत SNF / Avg SNF</th><th>राशि / Amount</th></tr>
<tr><td>सुबह / Morning</td><td>{{qty .Morning.TotalQtyLiters}}</td><td>{{.Morning.AvgFat}}</td><td>{{.Morning.AvgSNF}}</td><td>{{money .Morning.TotalAmount}}</td></tr>
<tr><td>शाम / Evening</td><td>{{qty .Evening.TotalQtyLiters}}</td><td>{{.Evening.AvgFat}}</td><td>{{.Evening.AvgSNF}}</td><td>{{money .Evening.TotalAmount}}</td></tr>
<tr class="totals"><td>कुल / Total</td><td>{{qty .Total.TotalQtyLiters}}</td><td>{{.Total.AvgFat}}</td><td>{{.Total.AvgSNF}}</td><td>{{money .Total.TotalAmount}}</td></tr>
</table>

<div class="sub">Generated on {{.GeneratedAt}}</div>
</body>
</html>`
