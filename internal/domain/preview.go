package domain

// CardFeatureLimit is how many features the compact card shows.
const CardFeatureLimit = 3

// Preview is the read-only card projection of an offering. It holds no
// state of its own; callers rebuild it from each snapshot.
type Preview struct {
	DisplayName        string
	Tagline            string
	Description        string
	PriceLabel         string
	VisibleFeatures    []string // first CardFeatureLimit non-empty features
	HiddenFeatureCount int      // features beyond the card limit
	AllFeatures        []string // for the full preview
	Thumbnail          string   // empty when the fallback color applies
	FallbackColor      string
	Tags               []string
}

// NewPreview derives the card projection from an offering snapshot.
func NewPreview(o Offering) Preview {
	visible := make([]string, 0, CardFeatureLimit)
	for _, f := range o.Features {
		if len(visible) == CardFeatureLimit {
			break
		}
		if f != "" {
			visible = append(visible, f)
		}
	}

	hidden := 0
	if len(o.Features) > CardFeatureLimit {
		hidden = len(o.Features) - CardFeatureLimit
	}

	return Preview{
		DisplayName:        o.DisplayName(),
		Tagline:            o.Tagline,
		Description:        o.Description,
		PriceLabel:         StartingFromLabel(o.Tiers, o.OfferingType),
		VisibleFeatures:    visible,
		HiddenFeatureCount: hidden,
		AllFeatures:        append([]string(nil), o.Features...),
		Thumbnail:          o.Thumbnail,
		FallbackColor:      o.FallbackColor,
		Tags:               append([]string(nil), o.Tags...),
	}
}
