package domain

import (
	"fmt"
	"strconv"
)

// HoursPerMonth converts an hourly rate to a monthly equivalent for
// price comparison: a standard 40 h/week over 4 weeks.
const HoursPerMonth = 160

// Labels returned when no price can be shown.
const (
	LabelRequestQuote     = "Request Quote"
	LabelRequestQuoteOnly = "Request Quote Only"
	LabelNoPricing        = "No pricing configured"
)

// PriceRange is the overall min/max across a set of tiers.
type PriceRange struct {
	Min float64
	Max float64
}

// FormatTierPrice renders the display price for a single tier.
//
// Quote-only tiers always render as "Request Quote". Service tiers with
// a price range render both bounds plus the billing suffix. Otherwise
// the fixed price is used (falling back to the range minimum, then 0),
// with the yearly-discount form for subscriptions and the billing
// suffix for services.
func FormatTierPrice(t Tier, offeringType OfferingType) string {
	if t.RequestQuoteOnly {
		return LabelRequestQuote
	}

	if offeringType == OfferingService && t.UsePriceRange {
		min := valueOr(t.MinPrice, 0)
		max := valueOr(t.MaxPrice, 0)
		return fmt.Sprintf("$%s - $%s%s", formatAmount(min), formatAmount(max), billingSuffix(t))
	}

	price := valueOr(t.Price, valueOr(t.MinPrice, 0))

	if offeringType == OfferingSubscription && t.EnableYearlyDiscount && t.YearlyDiscountPercent != nil {
		yearly := CalculateYearlyPrice(price, *t.YearlyDiscountPercent)
		return fmt.Sprintf("$%s/month (User Pays: $%.2f/year)", formatAmount(price), yearly)
	}

	if offeringType == OfferingService {
		return fmt.Sprintf("$%s%s", formatAmount(price), billingSuffix(t))
	}

	return "$" + formatAmount(price)
}

// CalculateYearlyPrice applies a percentage discount to twelve months
// of the given monthly price. No rounding; formatting happens at display.
func CalculateYearlyPrice(monthlyPrice, discountPercent float64) float64 {
	return monthlyPrice * 12 * (1 - discountPercent/100)
}

// StartingFromLabel renders the price line for an offering card across
// all of its tiers.
//
// With several tiers the label shows the cheapest one. Cheapest is
// decided on monthly-normalized prices so billing types compare fairly:
// a $200/hr tier must not rank below a $199/month tier just because 200
// is the bigger raw number. The label itself shows the winning tier's
// original price. Ties keep the first tier encountered.
func StartingFromLabel(tiers []Tier, offeringType OfferingType) string {
	if len(tiers) == 0 {
		return LabelNoPricing
	}

	allQuoteOnly := true
	for _, t := range tiers {
		if !t.RequestQuoteOnly {
			allQuoteOnly = false
			break
		}
	}
	if allQuoteOnly {
		return LabelRequestQuoteOnly
	}

	if len(tiers) == 1 {
		return FormatTierPrice(tiers[0], offeringType)
	}

	type candidate struct {
		price      float64
		normalized float64
		tier       Tier
	}

	var candidates []candidate
	for _, t := range tiers {
		if t.RequestQuoteOnly {
			continue
		}
		switch {
		case t.UsePriceRange:
			if t.MinPrice != nil {
				candidates = append(candidates, candidate{
					price:      *t.MinPrice,
					normalized: normalizeToMonthly(*t.MinPrice, t.BillingType),
					tier:       t,
				})
			}
		case t.Price != nil:
			candidates = append(candidates, candidate{
				price:      *t.Price,
				normalized: normalizeToMonthly(*t.Price, t.BillingType),
				tier:       t,
			})
		}
	}

	if len(candidates) == 0 {
		return LabelRequestQuoteOnly
	}

	lowest := candidates[0]
	for _, c := range candidates[1:] {
		if c.normalized < lowest.normalized {
			lowest = c
		}
	}

	suffix := ""
	if offeringType == OfferingService {
		suffix = billingSuffix(lowest.tier)
	}

	return fmt.Sprintf("Starting from $%s%s", formatAmount(lowest.price), suffix)
}

// CalculatePriceRange flattens the min/max bounds of all non-quote-only
// tiers into an overall range. Tiers carrying only a fixed price do not
// contribute. The second return is false when no tier contributes a bound.
func CalculatePriceRange(tiers []Tier) (PriceRange, bool) {
	var bounds []float64
	for _, t := range tiers {
		if t.RequestQuoteOnly {
			continue
		}
		if t.MinPrice != nil {
			bounds = append(bounds, *t.MinPrice)
		}
		if t.MaxPrice != nil {
			bounds = append(bounds, *t.MaxPrice)
		}
	}

	if len(bounds) == 0 {
		return PriceRange{}, false
	}

	r := PriceRange{Min: bounds[0], Max: bounds[0]}
	for _, b := range bounds[1:] {
		if b < r.Min {
			r.Min = b
		}
		if b > r.Max {
			r.Max = b
		}
	}
	return r, true
}

// normalizeToMonthly converts a price to its monthly equivalent.
// Project prices are treated as one-time, equivalent to a single month.
func normalizeToMonthly(price float64, billingType BillingType) float64 {
	switch billingType {
	case BillingHourly:
		return price * HoursPerMonth
	case BillingMonthly, BillingProject:
		return price
	default:
		return price
	}
}

// billingSuffix is the per-unit label appended for service offerings.
func billingSuffix(t Tier) string {
	switch t.BillingType {
	case BillingHourly:
		return "/hr"
	case BillingMonthly:
		if t.MonthlyDuration != nil {
			return fmt.Sprintf("/month for %d months", *t.MonthlyDuration)
		}
		return "/month"
	case BillingProject:
		return ""
	default:
		return ""
	}
}

// formatAmount renders a price without trailing zeros: 100 not 100.00,
// 99.5 not 99.50.
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func valueOr[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}
