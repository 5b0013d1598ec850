package domain_test

import (
	"testing"

	"github.com/neomorfeo/offerforge/internal/domain"
)

func fp(v float64) *float64 { return &v }
func ip(v int) *int         { return &v }

func TestFormatTierPrice_RequestQuoteOnly(t *testing.T) {
	// Quote-only wins over every other field.
	tier := domain.Tier{
		Name:             "Custom",
		BillingType:      domain.BillingHourly,
		Price:            fp(500),
		MinPrice:         fp(100),
		MaxPrice:         fp(900),
		UsePriceRange:    true,
		RequestQuoteOnly: true,
	}

	for _, ot := range []domain.OfferingType{domain.OfferingProduct, domain.OfferingService, domain.OfferingSubscription} {
		if got := domain.FormatTierPrice(tier, ot); got != "Request Quote" {
			t.Errorf("FormatTierPrice(%s) = %q, want %q", ot, got, "Request Quote")
		}
	}
}

func TestFormatTierPrice_ServicePriceRange(t *testing.T) {
	cases := []struct {
		name string
		tier domain.Tier
		want string
	}{
		{
			name: "hourly range",
			tier: domain.Tier{
				BillingType:   domain.BillingHourly,
				MinPrice:      fp(50),
				MaxPrice:      fp(200),
				UsePriceRange: true,
			},
			want: "$50 - $200/hr",
		},
		{
			name: "monthly range with duration",
			tier: domain.Tier{
				BillingType:     domain.BillingMonthly,
				MinPrice:        fp(100),
				MaxPrice:        fp(300),
				UsePriceRange:   true,
				MonthlyDuration: ip(6),
			},
			want: "$100 - $300/month for 6 months",
		},
		{
			name: "monthly range without duration",
			tier: domain.Tier{
				BillingType:   domain.BillingMonthly,
				MinPrice:      fp(100),
				MaxPrice:      fp(300),
				UsePriceRange: true,
			},
			want: "$100 - $300/month",
		},
		{
			name: "project range has no suffix",
			tier: domain.Tier{
				BillingType:   domain.BillingProject,
				MinPrice:      fp(1000),
				MaxPrice:      fp(5000),
				UsePriceRange: true,
			},
			want: "$1000 - $5000",
		},
		{
			name: "unset bounds default to zero",
			tier: domain.Tier{
				BillingType:   domain.BillingProject,
				UsePriceRange: true,
			},
			want: "$0 - $0",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := domain.FormatTierPrice(tc.tier, domain.OfferingService); got != tc.want {
				t.Errorf("FormatTierPrice = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestFormatTierPrice_FixedPrice(t *testing.T) {
	cases := []struct {
		name         string
		tier         domain.Tier
		offeringType domain.OfferingType
		want         string
	}{
		{
			name:         "product fixed price",
			tier:         domain.Tier{BillingType: domain.BillingProject, Price: fp(49)},
			offeringType: domain.OfferingProduct,
			want:         "$49",
		},
		{
			name:         "service hourly",
			tier:         domain.Tier{BillingType: domain.BillingHourly, Price: fp(150)},
			offeringType: domain.OfferingService,
			want:         "$150/hr",
		},
		{
			name:         "service monthly with duration",
			tier:         domain.Tier{BillingType: domain.BillingMonthly, Price: fp(2000), MonthlyDuration: ip(3)},
			offeringType: domain.OfferingService,
			want:         "$2000/month for 3 months",
		},
		{
			name:         "subscription without discount",
			tier:         domain.Tier{BillingType: domain.BillingMonthly, Price: fp(29)},
			offeringType: domain.OfferingSubscription,
			want:         "$29",
		},
		{
			name: "subscription with yearly discount",
			tier: domain.Tier{
				BillingType:           domain.BillingMonthly,
				Price:                 fp(100),
				EnableYearlyDiscount:  true,
				YearlyDiscountPercent: fp(20),
			},
			offeringType: domain.OfferingSubscription,
			want:         "$100/month (User Pays: $960.00/year)",
		},
		{
			name:         "falls back to min price when no fixed price",
			tier:         domain.Tier{BillingType: domain.BillingProject, MinPrice: fp(75)},
			offeringType: domain.OfferingProduct,
			want:         "$75",
		},
		{
			name:         "no price at all renders zero",
			tier:         domain.Tier{BillingType: domain.BillingProject},
			offeringType: domain.OfferingProduct,
			want:         "$0",
		},
		{
			name:         "fractional price keeps decimals",
			tier:         domain.Tier{BillingType: domain.BillingProject, Price: fp(99.5)},
			offeringType: domain.OfferingProduct,
			want:         "$99.5",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := domain.FormatTierPrice(tc.tier, tc.offeringType); got != tc.want {
				t.Errorf("FormatTierPrice = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestCalculateYearlyPrice(t *testing.T) {
	cases := []struct {
		monthly  float64
		discount float64
		want     float64
	}{
		{100, 20, 960},
		{29, 10, 313.2},
		{50, 0, 600},
		{10, 95, 6},
	}

	for _, tc := range cases {
		if got := domain.CalculateYearlyPrice(tc.monthly, tc.discount); got != tc.want {
			t.Errorf("CalculateYearlyPrice(%v, %v) = %v, want %v", tc.monthly, tc.discount, got, tc.want)
		}
	}
}

func TestStartingFromLabel_Empty(t *testing.T) {
	if got := domain.StartingFromLabel(nil, domain.OfferingService); got != "No pricing configured" {
		t.Errorf("got %q, want %q", got, "No pricing configured")
	}
}

func TestStartingFromLabel_AllQuoteOnly(t *testing.T) {
	tiers := []domain.Tier{
		{Name: "A", RequestQuoteOnly: true},
		{Name: "B", RequestQuoteOnly: true},
	}
	if got := domain.StartingFromLabel(tiers, domain.OfferingService); got != "Request Quote Only" {
		t.Errorf("got %q, want %q", got, "Request Quote Only")
	}
}

func TestStartingFromLabel_NoContributingTiers(t *testing.T) {
	// Two tiers, neither quote-only, but neither carries a usable price.
	tiers := []domain.Tier{
		{Name: "A", BillingType: domain.BillingProject},
		{Name: "B", BillingType: domain.BillingProject, UsePriceRange: true},
	}
	if got := domain.StartingFromLabel(tiers, domain.OfferingService); got != "Request Quote Only" {
		t.Errorf("got %q, want %q", got, "Request Quote Only")
	}
}

func TestStartingFromLabel_SingleTierDelegates(t *testing.T) {
	tiers := []domain.Tier{
		{BillingType: domain.BillingHourly, Price: fp(120)},
	}
	if got := domain.StartingFromLabel(tiers, domain.OfferingService); got != "$120/hr" {
		t.Errorf("got %q, want %q", got, "$120/hr")
	}
}

func TestStartingFromLabel_MonthlyBeatsHourly(t *testing.T) {
	// $2/hr normalizes to $320/month, so the $199/month tier is cheaper
	// even though 2 < 199 as raw numbers.
	tiers := []domain.Tier{
		{Name: "Sub", BillingType: domain.BillingMonthly, Price: fp(199)},
		{Name: "Consult", BillingType: domain.BillingHourly, Price: fp(2)},
	}

	got := domain.StartingFromLabel(tiers, domain.OfferingSubscription)
	if got != "Starting from $199" {
		t.Errorf("got %q, want %q", got, "Starting from $199")
	}
}

func TestStartingFromLabel_HourlyTiersKeepSuffix(t *testing.T) {
	// B's $5/hr (normalized 800) beats A's $10/hr range minimum
	// (normalized 1600); the /hr suffix follows the winner for services.
	tiers := []domain.Tier{
		{Name: "A", BillingType: domain.BillingHourly, MinPrice: fp(10), MaxPrice: fp(50), UsePriceRange: true},
		{Name: "B", BillingType: domain.BillingHourly, Price: fp(5)},
	}

	got := domain.StartingFromLabel(tiers, domain.OfferingService)
	if got != "Starting from $5/hr" {
		t.Errorf("got %q, want %q", got, "Starting from $5/hr")
	}
}

func TestStartingFromLabel_NoSuffixOutsideService(t *testing.T) {
	tiers := []domain.Tier{
		{Name: "A", BillingType: domain.BillingMonthly, Price: fp(20)},
		{Name: "B", BillingType: domain.BillingMonthly, Price: fp(40)},
	}

	got := domain.StartingFromLabel(tiers, domain.OfferingSubscription)
	if got != "Starting from $20" {
		t.Errorf("got %q, want %q", got, "Starting from $20")
	}
}

func TestStartingFromLabel_TieKeepsFirst(t *testing.T) {
	// $1/hr normalizes to $160, tying the $160 project tier; the first
	// encountered must win.
	tiers := []domain.Tier{
		{Name: "Hourly", BillingType: domain.BillingHourly, Price: fp(1)},
		{Name: "Project", BillingType: domain.BillingProject, Price: fp(160)},
	}

	got := domain.StartingFromLabel(tiers, domain.OfferingService)
	if got != "Starting from $1/hr" {
		t.Errorf("got %q, want %q", got, "Starting from $1/hr")
	}
}

func TestStartingFromLabel_QuoteOnlyTiersExcluded(t *testing.T) {
	tiers := []domain.Tier{
		{Name: "Cheap but hidden", BillingType: domain.BillingProject, Price: fp(1), RequestQuoteOnly: true},
		{Name: "Basic", BillingType: domain.BillingProject, Price: fp(500)},
		{Name: "Pro", BillingType: domain.BillingProject, Price: fp(900)},
	}

	got := domain.StartingFromLabel(tiers, domain.OfferingService)
	if got != "Starting from $500" {
		t.Errorf("got %q, want %q", got, "Starting from $500")
	}
}

func TestCalculatePriceRange(t *testing.T) {
	t.Run("no contributing tiers", func(t *testing.T) {
		tiers := []domain.Tier{
			{Name: "Fixed", Price: fp(100)},
			{Name: "Quote", MinPrice: fp(10), MaxPrice: fp(20), RequestQuoteOnly: true},
		}
		if _, ok := domain.CalculatePriceRange(tiers); ok {
			t.Error("expected no range")
		}
	})

	t.Run("flattens all bounds", func(t *testing.T) {
		tiers := []domain.Tier{
			{Name: "A", MinPrice: fp(50), MaxPrice: fp(200)},
			{Name: "B", MinPrice: fp(20), MaxPrice: fp(80)},
			{Name: "C", Price: fp(5)}, // fixed price does not contribute
		}
		r, ok := domain.CalculatePriceRange(tiers)
		if !ok {
			t.Fatal("expected a range")
		}
		if r.Min != 20 || r.Max != 200 {
			t.Errorf("range = {%v %v}, want {20 200}", r.Min, r.Max)
		}
	})

	t.Run("single bound", func(t *testing.T) {
		tiers := []domain.Tier{{Name: "A", MinPrice: fp(30)}}
		r, ok := domain.CalculatePriceRange(tiers)
		if !ok {
			t.Fatal("expected a range")
		}
		if r.Min != 30 || r.Max != 30 {
			t.Errorf("range = {%v %v}, want {30 30}", r.Min, r.Max)
		}
	})
}
