package domain

import (
	"fmt"
	"strings"
)

// Field length limits enforced by step validation.
const (
	MaxNameLength     = 85
	MaxTaglineLength  = 100
	MaxFeatureLength  = 50
	MaxTierNameLength = 50
)

// ValidateStep1 checks the type selection: an offering type must be
// chosen, and products additionally need a product type.
func ValidateStep1(o Offering) bool {
	if o.OfferingType == "" {
		return false
	}
	if o.OfferingType == OfferingProduct {
		return o.ProductType != ""
	}
	return true
}

// ValidateStep2 checks the details step: name and tagline present after
// trimming and within their length limits.
func ValidateStep2(o Offering) bool {
	hasName := strings.TrimSpace(o.Name) != ""
	hasTagline := strings.TrimSpace(o.Tagline) != ""
	return hasName && hasTagline &&
		len(o.Name) <= MaxNameLength &&
		len(o.Tagline) <= MaxTaglineLength
}

// ValidateStep3 checks the tiers step: at least one tier, and every
// tier named and priced (quote-only, a full range, or a fixed price).
func ValidateStep3(o Offering) bool {
	if len(o.Tiers) == 0 {
		return false
	}
	for _, t := range o.Tiers {
		if strings.TrimSpace(t.Name) == "" {
			return false
		}
		priced := t.RequestQuoteOnly ||
			(t.MinPrice != nil && t.MaxPrice != nil) ||
			t.Price != nil
		if !priced {
			return false
		}
	}
	return true
}

// ValidateStep4 checks the media step. Media is optional.
func ValidateStep4(Offering) bool {
	return true
}

// IsStepValid evaluates the rule for the given step. Unknown steps are
// invalid.
func IsStepValid(o Offering, step Step) bool {
	switch step {
	case StepType:
		return ValidateStep1(o)
	case StepDetails:
		return ValidateStep2(o)
	case StepTiers:
		return ValidateStep3(o)
	case StepMedia:
		return ValidateStep4(o)
	default:
		return false
	}
}

// CanProceed reports whether the wizard may advance past the current
// step. Evaluated fresh on every navigation attempt.
func CanProceed(o Offering) bool {
	return IsStepValid(o, o.Step)
}

// StepErrors lists the human-readable problems blocking the current step.
func StepErrors(o Offering) []string {
	var errs []string

	switch o.Step {
	case StepType:
		if o.OfferingType == "" {
			errs = append(errs, "Please select an offering type")
		} else if o.OfferingType == OfferingProduct && o.ProductType == "" {
			errs = append(errs, "Please select a product type")
		}

	case StepDetails:
		if strings.TrimSpace(o.Name) == "" {
			errs = append(errs, "Offering name is required")
		}
		if strings.TrimSpace(o.Tagline) == "" {
			errs = append(errs, "Tagline is required")
		}
		if len(o.Name) > MaxNameLength {
			errs = append(errs, fmt.Sprintf("Name must be less than %d characters", MaxNameLength))
		}
		if len(o.Tagline) > MaxTaglineLength {
			errs = append(errs, fmt.Sprintf("Tagline must be less than %d characters", MaxTaglineLength))
		}

	case StepTiers:
		if len(o.Tiers) == 0 {
			errs = append(errs, "At least one tier is required")
		}
		for i, t := range o.Tiers {
			if strings.TrimSpace(t.Name) == "" {
				errs = append(errs, fmt.Sprintf("Tier %d: Name is required", i+1))
			}
		}
	}

	return errs
}

// TierValidation is the result of validating a single tier.
type TierValidation struct {
	Valid  bool
	Errors []string
}

// ValidateTier checks a tier's own fields, independent of any step.
func ValidateTier(t Tier) TierValidation {
	var errs []string

	if strings.TrimSpace(t.Name) == "" {
		errs = append(errs, "Tier name is required")
	}
	if len(t.Name) > MaxTierNameLength {
		errs = append(errs, fmt.Sprintf("Tier name must be less than %d characters", MaxTierNameLength))
	}
	if !t.RequestQuoteOnly && t.MinPrice != nil && t.MaxPrice != nil && *t.MinPrice > *t.MaxPrice {
		errs = append(errs, "Minimum price cannot be greater than maximum price")
	}

	return TierValidation{Valid: len(errs) == 0, Errors: errs}
}
