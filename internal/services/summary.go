package services

import (
	"sort"
	"time"

	"finance-backend/internal/models"

	"github.com/shopspring/decimal"
)

type summaryEntry struct {
	date     time.Time
	category string
	currency string
	amount   decimal.Decimal
}

// summarizeEntries buckets ledger entries by category or by month, split
// per currency, and returns rows in stable group/currency order.
func summarizeEntries(entries []summaryEntry, groupBy string) []models.EntrySummaryRow {
	type key struct {
		group    string
		currency string
	}

	totals := make(map[key]decimal.Decimal)
	counts := make(map[key]int)

	for _, e := range entries {
		group := e.category
		if groupBy == "month" {
			group = e.date.Format("2006-01")
		}
		k := key{group: group, currency: e.currency}
		totals[k] = totals[k].Add(e.amount)
		counts[k]++
	}

	keys := make([]key, 0, len(totals))
	for k := range totals {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].group != keys[j].group {
			return keys[i].group < keys[j].group
		}
		return keys[i].currency < keys[j].currency
	})

	rows := make([]models.EntrySummaryRow, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, models.EntrySummaryRow{
			Group:    k.group,
			Currency: k.currency,
			Total:    totals[k],
			Count:    counts[k],
		})
	}
	return rows
}
