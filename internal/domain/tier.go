package domain

// BillingType describes how a tier charges.
type BillingType string

const (
	BillingProject BillingType = "project"
	BillingHourly  BillingType = "hourly"
	BillingMonthly BillingType = "monthly"
)

// Tier is a pricing tier owned by an Offering. Tiers are never mutated
// in place: every change produces a new value that replaces the old one
// in the offering's tier list.
type Tier struct {
	ID      string
	Name    string
	Bullets []string

	BillingType BillingType

	Price    *float64 // fixed price, when UsePriceRange is false
	MinPrice *float64 // lower bound, when UsePriceRange is true
	MaxPrice *float64 // upper bound, when UsePriceRange is true

	UsePriceRange bool // service offerings only

	MonthlyDuration *int // 1-12, monthly billing only

	EnableYearlyDiscount  bool     // subscription offerings only
	YearlyDiscountPercent *float64 // 5-95

	RequestQuoteOnly bool
	Popular          bool
}

// TierTemplate seeds a tier with a name and a popularity badge.
type TierTemplate struct {
	Name    string
	Popular bool
}

// RecommendedServiceTiers is the suggested three-tier structure for
// service offerings.
var RecommendedServiceTiers = []TierTemplate{
	{Name: "Starter", Popular: false},
	{Name: "Professional", Popular: true},
	{Name: "Enterprise", Popular: false},
}

// NewTier creates a tier with defaults. The id comes from the caller's
// unique-id source and must never repeat within the process lifetime.
func NewTier(id, name string, popular bool) Tier {
	return Tier{
		ID:          id,
		Name:        name,
		Bullets:     []string{},
		BillingType: BillingProject,
		Popular:     popular,
	}
}

// TiersFromTemplates maps templates into tiers in template order,
// drawing ids from newID.
func TiersFromTemplates(newID func() string, templates []TierTemplate) []Tier {
	out := make([]Tier, len(templates))
	for i, tpl := range templates {
		out[i] = NewTier(newID(), tpl.Name, tpl.Popular)
	}
	return out
}

// Clone returns a deep copy of the tier.
func (t Tier) Clone() Tier {
	out := t
	out.Bullets = append([]string(nil), t.Bullets...)
	out.Price = clonePtr(t.Price)
	out.MinPrice = clonePtr(t.MinPrice)
	out.MaxPrice = clonePtr(t.MaxPrice)
	out.MonthlyDuration = clonePtr(t.MonthlyDuration)
	out.YearlyDiscountPercent = clonePtr(t.YearlyDiscountPercent)
	return out
}

// CloneWithID copies the tier under a fresh id and a " (Copy)" name
// suffix, for the duplicate-tier action.
func (t Tier) CloneWithID(id string) Tier {
	out := t.Clone()
	out.ID = id
	out.Name = t.Name + " (Copy)"
	return out
}

// AddBullet appends a bullet point, returning a new tier.
func (t Tier) AddBullet(bullet string) Tier {
	out := t.Clone()
	out.Bullets = append(out.Bullets, bullet)
	return out
}

// RemoveBullet drops the bullet at index, returning a new tier. Any
// out-of-range index leaves the bullets unchanged.
func (t Tier) RemoveBullet(index int) Tier {
	out := t.Clone()
	if index < 0 || index >= len(out.Bullets) {
		return out
	}
	out.Bullets = append(out.Bullets[:index], out.Bullets[index+1:]...)
	return out
}

// UpdateBullet replaces the bullet at index, returning a new tier.
// Out-of-range indices are a no-op rather than a panic: the UI is the
// only caller and a stale index just means the list changed underneath it.
func (t Tier) UpdateBullet(index int, value string) Tier {
	out := t.Clone()
	if index < 0 || index >= len(out.Bullets) {
		return out
	}
	out.Bullets[index] = value
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
