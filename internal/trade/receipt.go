package trade

import (
	"sort"

	"github.com/google/uuid"

	"github.com/talgya/silt-road/internal/clock"
	"github.com/talgya/silt-road/internal/commodity"
	"github.com/talgya/silt-road/internal/ledger"
	"github.com/talgya/silt-road/internal/market"
)

// ReceiptLine is one commodity on a bill of sale. Negative quantities are
// sales to the market; Amount is always positive.
type ReceiptLine struct {
	Commodity commodity.Commodity `json:"commodity"`
	Unit      string              `json:"unit"`
	Qty       int                 `json:"qty"`
	UnitPrice float64             `json:"unit_price"`
	Amount    float64             `json:"amount"`
}

// Receipt is the bill of sale issued for a confirmed transaction.
type Receipt struct {
	Serial     string        `json:"serial"`
	Town       string        `json:"town"`
	MarketName string        `json:"market_name"`
	Date       clock.Time    `json:"date"`
	Lines      []ReceiptLine `json:"lines"`
	TotalBill  float64       `json:"total_bill"`
	LegalBlurb []string      `json:"legal_blurb"`
}

func newReceipt(m *market.Market, town string, date clock.Time, lines ledger.Transaction, bill float64) *Receipt {
	items := make([]ReceiptLine, 0, len(lines))
	for comm, line := range lines {
		if line.Qty == 0 {
			continue
		}
		amount := line.Price * float64(line.Qty)
		if amount < 0 {
			amount = -amount
		}
		items = append(items, ReceiptLine{
			Commodity: comm,
			Unit:      commodity.UnitOf(comm).Short,
			Qty:       line.Qty,
			UnitPrice: line.Price,
			Amount:    amount,
		})
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].Commodity.String() < items[j].Commodity.String()
	})

	return &Receipt{
		Serial:     uuid.NewString(),
		Town:       town,
		MarketName: m.Name,
		Date:       date,
		Lines:      items,
		TotalBill:  bill,
		LegalBlurb: []string{
			"All sales considered final no sooner than time of purchase.",
			"Arbitration services available in case of dispute.",
			"Fraudulent representation punishable under U.S. Dept. of Commerce Reg. 471 § 3.6",
		},
	}
}
