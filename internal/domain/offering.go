package domain

// OfferingType classifies what kind of offering is being created.
type OfferingType string

const (
	OfferingProduct      OfferingType = "product"
	OfferingService      OfferingType = "service"
	OfferingSubscription OfferingType = "subscription"
)

// ProductType narrows a product offering; meaningful only when
// OfferingType is OfferingProduct.
type ProductType string

const (
	ProductPhysical ProductType = "physical"
	ProductDigital  ProductType = "digital"
)

// Wizard steps. The wizard always moves through them in order.
type Step int

const (
	StepType    Step = 1
	StepDetails Step = 2
	StepTiers   Step = 3
	StepMedia   Step = 4

	TotalSteps = 4
)

// NavAction is a navigation request against the wizard.
type NavAction string

const (
	NavNext NavAction = "next"
	NavPrev NavAction = "prev"
)

// StepTransition defines a valid navigation: an action moves the wizard
// from Src to Dst.
type StepTransition struct {
	Action NavAction
	Src    Step
	Dst    Step
}

// StepTransitions defines every valid step change in the wizard.
// This is domain knowledge consumed by the FSM adapter. Forward moves
// are additionally gated by the step validation rules; backward moves
// are always allowed.
var StepTransitions = []StepTransition{
	{Action: NavNext, Src: StepType, Dst: StepDetails},
	{Action: NavNext, Src: StepDetails, Dst: StepTiers},
	{Action: NavNext, Src: StepTiers, Dst: StepMedia},
	{Action: NavPrev, Src: StepDetails, Dst: StepType},
	{Action: NavPrev, Src: StepTiers, Dst: StepDetails},
	{Action: NavPrev, Src: StepMedia, Dst: StepTiers},
}

// Event represents a change to a wizard session, published after each
// successful mutation.
type Event string

const (
	EventSessionCreated   Event = "session_created"
	EventSessionDiscarded Event = "session_discarded"
	EventSessionReset     Event = "session_reset"
	EventStateUpdated     Event = "state_updated"
	EventStepChanged      Event = "step_changed"
	EventTiersChanged     Event = "tiers_changed"
	EventFeaturesChanged  Event = "features_changed"
	EventTagsChanged      Event = "tags_changed"
	EventMediaUpdated     Event = "media_updated"
)

// MediaColors is the fallback color palette offered when no thumbnail
// is set. The first entry is the default.
var MediaColors = []string{
	"#F87171",
	"#FBBF24",
	"#34D399",
	"#60A5FA",
	"#A78BFA",
	"#F472B6",
}

// MaxGalleryImages caps the gallery size.
const MaxGalleryImages = 5

// Offering is the aggregate edited by the wizard. One instance exists
// per editing session. It is only ever replaced wholesale: every
// mutation produces a new value, never an in-place edit.
type Offering struct {
	Step Step

	OfferingType OfferingType // empty means not yet chosen
	ProductType  ProductType  // empty means not yet chosen

	Name                   string
	Tagline                string
	Description            string
	DisplayNameOverride    string
	UseDisplayNameOverride bool

	Features []string
	Tags     []string
	Tiers    []Tier

	Thumbnail     string // data URI or URL; empty means unset
	Gallery       []string
	FallbackColor string
}

// NewOffering returns the canonical initial state: step 1, empty
// collections, default fallback color.
func NewOffering() Offering {
	return Offering{
		Step:          StepType,
		Features:      []string{},
		Tags:          []string{},
		Tiers:         []Tier{},
		Gallery:       []string{},
		FallbackColor: MediaColors[0],
	}
}

// DisplayName returns the override when enabled, the name otherwise.
func (o Offering) DisplayName() string {
	if o.UseDisplayNameOverride {
		return o.DisplayNameOverride
	}
	return o.Name
}

// Clone returns a deep copy. Slices are copied so the receiver can be
// handed out as a snapshot without aliasing the store's backing state.
func (o Offering) Clone() Offering {
	out := o
	out.Features = append([]string(nil), o.Features...)
	out.Tags = append([]string(nil), o.Tags...)
	out.Gallery = append([]string(nil), o.Gallery...)
	out.Tiers = make([]Tier, len(o.Tiers))
	for i, t := range o.Tiers {
		out.Tiers[i] = t.Clone()
	}
	return out
}

// Patch is a partial Offering used for shallow merges. Nil fields are
// left untouched; non-nil fields replace the current value, including
// replacement with the zero value (e.g. clearing the thumbnail).
type Patch struct {
	OfferingType           *OfferingType
	ProductType            *ProductType
	Name                   *string
	Tagline                *string
	Description            *string
	DisplayNameOverride    *string
	UseDisplayNameOverride *bool
	Thumbnail              *string
	FallbackColor          *string
}

// Apply merges the patch into a copy of the offering and returns it.
func (p Patch) Apply(o Offering) Offering {
	out := o.Clone()
	if p.OfferingType != nil {
		out.OfferingType = *p.OfferingType
	}
	if p.ProductType != nil {
		out.ProductType = *p.ProductType
	}
	if p.Name != nil {
		out.Name = *p.Name
	}
	if p.Tagline != nil {
		out.Tagline = *p.Tagline
	}
	if p.Description != nil {
		out.Description = *p.Description
	}
	if p.DisplayNameOverride != nil {
		out.DisplayNameOverride = *p.DisplayNameOverride
	}
	if p.UseDisplayNameOverride != nil {
		out.UseDisplayNameOverride = *p.UseDisplayNameOverride
	}
	if p.Thumbnail != nil {
		out.Thumbnail = *p.Thumbnail
	}
	if p.FallbackColor != nil {
		out.FallbackColor = *p.FallbackColor
	}
	return out
}
