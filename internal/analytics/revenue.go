package analytics

import (
	"sort"
	"time"

	"ms-backoffice/internal/mapper"
)

// DailyRevenuePoint is one day of the revenue series. Value is in cents.
type DailyRevenuePoint struct {
	Key              string `json:"key"`
	Label            string `json:"label"`
	Date             string `json:"date"`
	Value            int64  `json:"value"`
	ReservationCount int    `json:"reservationCount"`
	IsToday          bool   `json:"isToday"`
}

// MonthlyTaxRow sums one calendar month of transactions.
type MonthlyTaxRow struct {
	Month            string `json:"month"`
	Label            string `json:"label"`
	Currency         string `json:"currency"`
	GrossAmount      int64  `json:"grossAmount"`
	PlatformFee      int64  `json:"platformFee"`
	NetAmount        int64  `json:"netAmount"`
	TransactionCount int    `json:"transactionCount"`
	Gross            string `json:"gross"`
	Fee              string `json:"fee"`
	Net              string `json:"net"`
}

// FinanceKPIs holds totals over a set of transactions, in cents.
type FinanceKPIs struct {
	TransactionCount int    `json:"transactionCount"`
	TotalGross       int64  `json:"totalGross"`
	TotalFees        int64  `json:"totalFees"`
	TotalNet         int64  `json:"totalNet"`
	Currency         string `json:"currency"`
	Gross            string `json:"gross"`
	Fees             string `json:"fees"`
	Net              string `json:"net"`
}

type dayBucket struct {
	value int64
	count int
}

// DailyRevenue returns 29 points, from 14 days before today to 14 days after,
// in chronological order. Transactions are bucketed by the local calendar day
// of their payment time; unparseable timestamps are skipped.
func (e *Engine) DailyRevenue(txs []mapper.Transaction) []DailyRevenuePoint {
	loc := e.f.Location()

	buckets := make(map[string]dayBucket)
	for _, tx := range txs {
		t, ok := e.f.ParseTimestamp(tx.CreatedAt)
		if !ok {
			continue
		}
		key := t.In(loc).Format(dayKeyLayout)
		b := buckets[key]
		b.value += tx.GrossAmount
		b.count++
		buckets[key] = b
	}

	y, m, d := e.f.Now().Date()

	points := make([]DailyRevenuePoint, 0, 2*revenueWindowDays+1)
	for offset := -revenueWindowDays; offset <= revenueWindowDays; offset++ {
		// Noon exists on every civil day, midnight does not where DST starts at 00:00.
		day := time.Date(y, m, d+offset, 12, 0, 0, 0, loc)
		key := day.Format(dayKeyLayout)
		b := buckets[key]

		label := day.Format("Jan 2")
		if offset == 0 {
			label = "Today"
		}
		points = append(points, DailyRevenuePoint{
			Key:              key,
			Label:            label,
			Date:             day.Format("Jan 2, 2006"),
			Value:            b.value,
			ReservationCount: b.count,
			IsToday:          offset == 0,
		})
	}
	return points
}

// MonthlyTax groups transactions by the month their order was placed, sorted
// ascending by month. Transactions without a parseable order date are skipped.
// Display strings use the currency of the first transaction in the month.
func (e *Engine) MonthlyTax(txs []mapper.Transaction) []MonthlyTaxRow {
	loc := e.f.Location()

	rows := make(map[string]*MonthlyTaxRow)
	for _, tx := range txs {
		t, ok := e.f.ParseTimestamp(tx.OrderedAt)
		if !ok {
			continue
		}
		t = t.In(loc)
		key := t.Format(monthKeyLayout)

		row, exists := rows[key]
		if !exists {
			row = &MonthlyTaxRow{
				Month:    key,
				Label:    t.Format("Jan 2006"),
				Currency: currencyOf(tx),
			}
			rows[key] = row
		}
		row.GrossAmount += tx.GrossAmount
		row.PlatformFee += tx.PlatformFee
		row.NetAmount += tx.NetAmount
		row.TransactionCount++
	}

	out := make([]MonthlyTaxRow, 0, len(rows))
	for _, row := range rows {
		row.Gross = e.f.Money(row.GrossAmount, row.Currency)
		row.Fee = e.f.Money(row.PlatformFee, row.Currency)
		row.Net = e.f.Money(row.NetAmount, row.Currency)
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// FinanceKPIs sums gross, fees and net independently in one pass.
func (e *Engine) FinanceKPIs(txs []mapper.Transaction) FinanceKPIs {
	kpis := FinanceKPIs{Currency: defaultCurrency}
	if len(txs) > 0 {
		kpis.Currency = currencyOf(txs[0])
	}
	for _, tx := range txs {
		kpis.TransactionCount++
		kpis.TotalGross += tx.GrossAmount
		kpis.TotalFees += tx.PlatformFee
		kpis.TotalNet += tx.NetAmount
	}
	kpis.Gross = e.f.Money(kpis.TotalGross, kpis.Currency)
	kpis.Fees = e.f.Money(kpis.TotalFees, kpis.Currency)
	kpis.Net = e.f.Money(kpis.TotalNet, kpis.Currency)
	return kpis
}

func currencyOf(tx mapper.Transaction) string {
	if tx.Currency == "" {
		return defaultCurrency
	}
	return tx.Currency
}
