// Package pricing computes GST and platform commission for carts and orders.
// All arithmetic is decimal; rates are percentages in [0,100].
package pricing

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrInvalidRate signals a percentage outside [0,100]. Rates come from
// configuration and category rows, so hitting this at request time means a
// misconfigured platform.
var ErrInvalidRate = errors.New("rate must be within [0,100]")

var hundred = decimal.NewFromInt(100)

// Line is one cart or order line as the engine sees it.
type Line struct {
	UnitPrice decimal.Decimal
	Qty       int
	GSTRate   decimal.Decimal // percentage
}

// LineTotals is the per-line breakdown.
type LineTotals struct {
	Subtotal     decimal.Decimal
	GSTAmount    decimal.Decimal
	TotalWithGST decimal.Decimal
}

// OrderTotals is the aggregate breakdown for a whole cart or order.
// CommissionAmount is the platform's cut of the seller payout; it is not
// part of the customer-facing Total.
type OrderTotals struct {
	Subtotal         decimal.Decimal
	GSTAmount        decimal.Decimal
	CommissionAmount decimal.Decimal
	Total            decimal.Decimal
}

func validRate(rate decimal.Decimal) bool {
	return !rate.IsNegative() && !rate.GreaterThan(hundred)
}

// ComputeLine returns subtotal, GST and tax-inclusive total for a single line.
func ComputeLine(l Line) (LineTotals, error) {
	if !validRate(l.GSTRate) {
		return LineTotals{}, fmt.Errorf("gst rate %s: %w", l.GSTRate, ErrInvalidRate)
	}
	subtotal := l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Qty)))
	gst := subtotal.Mul(l.GSTRate).Div(hundred)
	return LineTotals{
		Subtotal:     subtotal,
		GSTAmount:    gst,
		TotalWithGST: subtotal.Add(gst),
	}, nil
}

// ComputeOrder aggregates a set of lines under the given commission rate.
// GST is summed per line rather than applied to the aggregate subtotal, so
// lines may span categories with different rates.
func ComputeOrder(lines []Line, commissionRate decimal.Decimal) (OrderTotals, error) {
	if !validRate(commissionRate) {
		return OrderTotals{}, fmt.Errorf("commission rate %s: %w", commissionRate, ErrInvalidRate)
	}

	var subtotal, gst decimal.Decimal
	for _, l := range lines {
		lt, err := ComputeLine(l)
		if err != nil {
			return OrderTotals{}, err
		}
		subtotal = subtotal.Add(lt.Subtotal)
		gst = gst.Add(lt.GSTAmount)
	}

	return OrderTotals{
		Subtotal:         subtotal,
		GSTAmount:        gst,
		CommissionAmount: subtotal.Mul(commissionRate).Div(hundred),
		Total:            subtotal.Add(gst),
	}, nil
}
