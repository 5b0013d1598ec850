package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/neomorfeo/offerforge/internal/app"
	"github.com/neomorfeo/offerforge/internal/domain"
)

// TierPayload is the API representation of a tier, used in both
// requests and responses. Pointer fields distinguish "unset" from zero.
type TierPayload struct {
	ID                    string   `json:"id,omitempty" doc:"Unique identifier (server-assigned)"`
	Name                  string   `json:"name" doc:"Display label"`
	Bullets               []string `json:"bullets" doc:"Feature bullets for this tier"`
	BillingType           string   `json:"billing_type" enum:"project,hourly,monthly" default:"project" doc:"How this tier charges"`
	Price                 *float64 `json:"price,omitempty" minimum:"0" doc:"Fixed price"`
	MinPrice              *float64 `json:"min_price,omitempty" minimum:"0" doc:"Range lower bound"`
	MaxPrice              *float64 `json:"max_price,omitempty" minimum:"0" doc:"Range upper bound"`
	UsePriceRange         bool     `json:"use_price_range,omitempty" doc:"Use min/max instead of a fixed price (services only)"`
	MonthlyDuration       *int     `json:"monthly_duration,omitempty" minimum:"1" maximum:"12" doc:"Months for a monthly retainer"`
	EnableYearlyDiscount  bool     `json:"enable_yearly_discount,omitempty" doc:"Offer a discounted yearly price (subscriptions only)"`
	YearlyDiscountPercent *float64 `json:"yearly_discount_percent,omitempty" minimum:"5" maximum:"95" doc:"Yearly discount percentage"`
	RequestQuoteOnly      bool     `json:"request_quote_only,omitempty" doc:"Hide pricing, show Request Quote"`
	Popular               bool     `json:"popular,omitempty" doc:"Popular badge"`
	PriceLabel            string   `json:"price_label,omitempty" readOnly:"true" doc:"Formatted display price"`
}

// ValidationResponse summarizes the wizard's validation state.
type ValidationResponse struct {
	CanProceed bool     `json:"can_proceed" doc:"Whether the current step allows advancing"`
	Errors     []string `json:"errors" doc:"Problems blocking the current step"`
	Step1Valid bool     `json:"step1_valid"`
	Step2Valid bool     `json:"step2_valid"`
	Step3Valid bool     `json:"step3_valid"`
	Step4Valid bool     `json:"step4_valid"`
}

// OfferingResponse is the API representation of a wizard session's state.
type OfferingResponse struct {
	SessionID              string             `json:"session_id" doc:"Wizard session identifier"`
	Step                   int                `json:"step" doc:"Current wizard step (1-4)"`
	OfferingType           string             `json:"offering_type,omitempty" doc:"product, service, or subscription"`
	ProductType            string             `json:"product_type,omitempty" doc:"physical or digital"`
	Name                   string             `json:"name"`
	Tagline                string             `json:"tagline"`
	Description            string             `json:"description"`
	DisplayNameOverride    string             `json:"display_name_override,omitempty"`
	UseDisplayNameOverride bool               `json:"use_display_name_override"`
	DisplayName            string             `json:"display_name" doc:"Override when enabled, name otherwise"`
	Features               []string           `json:"features"`
	Tags                   []string           `json:"tags"`
	Tiers                  []TierPayload      `json:"tiers"`
	Thumbnail              string             `json:"thumbnail,omitempty"`
	Gallery                []string           `json:"gallery"`
	FallbackColor          string             `json:"fallback_color"`
	Validation             ValidationResponse `json:"validation"`
}

func toTierPayload(t domain.Tier, offeringType domain.OfferingType) TierPayload {
	return TierPayload{
		ID:                    t.ID,
		Name:                  t.Name,
		Bullets:               t.Bullets,
		BillingType:           string(t.BillingType),
		Price:                 t.Price,
		MinPrice:              t.MinPrice,
		MaxPrice:              t.MaxPrice,
		UsePriceRange:         t.UsePriceRange,
		MonthlyDuration:       t.MonthlyDuration,
		EnableYearlyDiscount:  t.EnableYearlyDiscount,
		YearlyDiscountPercent: t.YearlyDiscountPercent,
		RequestQuoteOnly:      t.RequestQuoteOnly,
		Popular:               t.Popular,
		PriceLabel:            domain.FormatTierPrice(t, offeringType),
	}
}

func fromTierPayload(p TierPayload) domain.Tier {
	bullets := p.Bullets
	if bullets == nil {
		bullets = []string{}
	}
	billing := domain.BillingType(p.BillingType)
	if billing == "" {
		billing = domain.BillingProject
	}
	return domain.Tier{
		ID:                    p.ID,
		Name:                  p.Name,
		Bullets:               bullets,
		BillingType:           billing,
		Price:                 p.Price,
		MinPrice:              p.MinPrice,
		MaxPrice:              p.MaxPrice,
		UsePriceRange:         p.UsePriceRange,
		MonthlyDuration:       p.MonthlyDuration,
		EnableYearlyDiscount:  p.EnableYearlyDiscount,
		YearlyDiscountPercent: p.YearlyDiscountPercent,
		RequestQuoteOnly:      p.RequestQuoteOnly,
		Popular:               p.Popular,
	}
}

func toOfferingResponse(sessionID string, o domain.Offering) OfferingResponse {
	tiers := make([]TierPayload, len(o.Tiers))
	for i, t := range o.Tiers {
		tiers[i] = toTierPayload(t, o.OfferingType)
	}

	errs := domain.StepErrors(o)
	if errs == nil {
		errs = []string{}
	}

	return OfferingResponse{
		SessionID:              sessionID,
		Step:                   int(o.Step),
		OfferingType:           string(o.OfferingType),
		ProductType:            string(o.ProductType),
		Name:                   o.Name,
		Tagline:                o.Tagline,
		Description:            o.Description,
		DisplayNameOverride:    o.DisplayNameOverride,
		UseDisplayNameOverride: o.UseDisplayNameOverride,
		DisplayName:            o.DisplayName(),
		Features:               o.Features,
		Tags:                   o.Tags,
		Tiers:                  tiers,
		Thumbnail:              o.Thumbnail,
		Gallery:                o.Gallery,
		FallbackColor:          o.FallbackColor,
		Validation: ValidationResponse{
			CanProceed: domain.CanProceed(o),
			Errors:     errs,
			Step1Valid: domain.ValidateStep1(o),
			Step2Valid: domain.ValidateStep2(o),
			Step3Valid: domain.ValidateStep3(o),
			Step4Valid: domain.ValidateStep4(o),
		},
	}
}

// --- Sessions ---

type CreateSessionInput struct{}

type SessionOutput struct {
	Body OfferingResponse
}

type SessionIDInput struct {
	ID string `path:"id" doc:"Session ID"`
}

type DiscardSessionOutput struct{}

type UpdateSessionInput struct {
	ID   string `path:"id" doc:"Session ID"`
	Body struct {
		OfferingType           *string `json:"offering_type,omitempty" enum:"product,service,subscription"`
		ProductType            *string `json:"product_type,omitempty" enum:"physical,digital"`
		Name                   *string `json:"name,omitempty" maxLength:"85"`
		Tagline                *string `json:"tagline,omitempty" maxLength:"100"`
		Description            *string `json:"description,omitempty"`
		DisplayNameOverride    *string `json:"display_name_override,omitempty"`
		UseDisplayNameOverride *bool   `json:"use_display_name_override,omitempty"`
		FallbackColor          *string `json:"fallback_color,omitempty" doc:"CSS color used when no thumbnail is set"`
	}
}

// --- Navigation ---

type NavigateInput struct {
	ID   string `path:"id" doc:"Session ID"`
	Body struct {
		Action string `json:"action" enum:"next,prev,goto" doc:"Navigation action"`
		Step   int    `json:"step,omitempty" doc:"Target step, for goto"`
	}
}

// --- Tiers ---

type AddTierInput struct {
	ID   string `path:"id" doc:"Session ID"`
	Body struct {
		Name    string `json:"name,omitempty" maxLength:"50" doc:"Tier name"`
		Popular bool   `json:"popular,omitempty" doc:"Popular badge"`
	}
}

type TierIndexInput struct {
	ID    string `path:"id" doc:"Session ID"`
	Index int    `path:"index" doc:"Tier position"`
}

type UpdateTierInput struct {
	ID    string `path:"id" doc:"Session ID"`
	Index int    `path:"index" doc:"Tier position"`
	Body  TierPayload
}

type ReorderTiersInput struct {
	ID   string `path:"id" doc:"Session ID"`
	Body struct {
		From int `json:"from" minimum:"0" doc:"Current position"`
		To   int `json:"to" minimum:"0" doc:"Target position"`
	}
}

// --- Features and tags ---

type AddItemInput struct {
	ID   string `path:"id" doc:"Session ID"`
	Body struct {
		Value string `json:"value" doc:"Item text; may be empty as a placeholder"`
	}
}

type UpdateItemInput struct {
	ID    string `path:"id" doc:"Session ID"`
	Index int    `path:"index" doc:"Item position"`
	Body  struct {
		Value string `json:"value" doc:"New item text"`
	}
}

type ItemIndexInput struct {
	ID    string `path:"id" doc:"Session ID"`
	Index int    `path:"index" doc:"Item position"`
}

// --- Media ---

type AttachMediaInput struct {
	ID   string `path:"id" doc:"Session ID"`
	Body struct {
		Kind     string `json:"kind" enum:"thumbnail,gallery" doc:"Target media slot"`
		Filename string `json:"filename,omitempty" doc:"Original filename"`
		Data     []byte `json:"data" doc:"Image content (base64)"`
	}
}

// --- Preview ---

type PreviewOutput struct {
	Body struct {
		DisplayName        string   `json:"display_name"`
		Tagline            string   `json:"tagline"`
		Description        string   `json:"description"`
		PriceLabel         string   `json:"price_label"`
		VisibleFeatures    []string `json:"visible_features" doc:"First features shown on the compact card"`
		HiddenFeatureCount int      `json:"hidden_feature_count"`
		AllFeatures        []string `json:"all_features"`
		Thumbnail          string   `json:"thumbnail,omitempty"`
		FallbackColor      string   `json:"fallback_color"`
		Tags               []string `json:"tags"`
	}
}

// --- Events ---

type ListEventsInput struct {
	Limit int `query:"limit" required:"false" default:"50" doc:"Max results"`
}

type EventResponse struct {
	ID           int64  `json:"id"`
	SessionID    string `json:"session_id"`
	Event        string `json:"event"`
	Step         int    `json:"step"`
	OfferingName string `json:"offering_name,omitempty"`
	OccurredAt   string `json:"occurred_at" doc:"ISO 8601 timestamp"`
}

type ListEventsOutput struct {
	Body []EventResponse
}

// Register adds all wizard API routes to the Huma API.
func Register(api huma.API, svc *app.WizardService, eventLog domain.EventLog) {
	respond := func(id string, o domain.Offering, err error) (*SessionOutput, error) {
		if err != nil {
			return nil, toHumaError(err)
		}
		return &SessionOutput{Body: toOfferingResponse(id, o)}, nil
	}

	huma.Register(api, huma.Operation{
		OperationID:   "create-session",
		Method:        http.MethodPost,
		Path:          "/api/v1/sessions",
		Summary:       "Start a new offering wizard session",
		DefaultStatus: http.StatusCreated,
		Tags:          []string{"Sessions"},
	}, func(ctx context.Context, _ *CreateSessionInput) (*SessionOutput, error) {
		session, err := svc.CreateSession(ctx)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &SessionOutput{Body: toOfferingResponse(session.ID, session.Store.Value())}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-session",
		Method:      http.MethodGet,
		Path:        "/api/v1/sessions/{id}",
		Summary:     "Get a session's current state",
		Tags:        []string{"Sessions"},
	}, func(ctx context.Context, input *SessionIDInput) (*SessionOutput, error) {
		o, err := svc.Snapshot(input.ID)
		return respond(input.ID, o, err)
	})

	huma.Register(api, huma.Operation{
		OperationID:   "discard-session",
		Method:        http.MethodDelete,
		Path:          "/api/v1/sessions/{id}",
		Summary:       "Discard a session and its draft",
		DefaultStatus: http.StatusNoContent,
		Tags:          []string{"Sessions"},
	}, func(ctx context.Context, input *SessionIDInput) (*DiscardSessionOutput, error) {
		if err := svc.DiscardSession(ctx, input.ID); err != nil {
			return nil, toHumaError(err)
		}
		return &DiscardSessionOutput{}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-session",
		Method:      http.MethodPatch,
		Path:        "/api/v1/sessions/{id}",
		Summary:     "Partially update the offering",
		Tags:        []string{"Sessions"},
	}, func(ctx context.Context, input *UpdateSessionInput) (*SessionOutput, error) {
		p := domain.Patch{
			Name:                   input.Body.Name,
			Tagline:                input.Body.Tagline,
			Description:            input.Body.Description,
			DisplayNameOverride:    input.Body.DisplayNameOverride,
			UseDisplayNameOverride: input.Body.UseDisplayNameOverride,
			FallbackColor:          input.Body.FallbackColor,
		}
		if input.Body.OfferingType != nil {
			t := domain.OfferingType(*input.Body.OfferingType)
			p.OfferingType = &t
		}
		if input.Body.ProductType != nil {
			t := domain.ProductType(*input.Body.ProductType)
			p.ProductType = &t
		}
		o, err := svc.Update(ctx, input.ID, p)
		return respond(input.ID, o, err)
	})

	huma.Register(api, huma.Operation{
		OperationID: "navigate",
		Method:      http.MethodPost,
		Path:        "/api/v1/sessions/{id}/navigation",
		Summary:     "Move the wizard forward, back, or to a step",
		Tags:        []string{"Navigation"},
	}, func(ctx context.Context, input *NavigateInput) (*SessionOutput, error) {
		var o domain.Offering
		var err error
		switch input.Body.Action {
		case "goto":
			o, err = svc.GoToStep(ctx, input.ID, domain.Step(input.Body.Step))
		default:
			o, err = svc.Navigate(ctx, input.ID, domain.NavAction(input.Body.Action))
		}
		return respond(input.ID, o, err)
	})

	huma.Register(api, huma.Operation{
		OperationID: "reset-session",
		Method:      http.MethodPost,
		Path:        "/api/v1/sessions/{id}/reset",
		Summary:     "Reset the session to its initial state",
		Tags:        []string{"Sessions"},
	}, func(ctx context.Context, input *SessionIDInput) (*SessionOutput, error) {
		o, err := svc.Reset(ctx, input.ID)
		return respond(input.ID, o, err)
	})

	huma.Register(api, huma.Operation{
		OperationID: "add-tier",
		Method:      http.MethodPost,
		Path:        "/api/v1/sessions/{id}/tiers",
		Summary:     "Add a tier",
		Tags:        []string{"Tiers"},
	}, func(ctx context.Context, input *AddTierInput) (*SessionOutput, error) {
		o, err := svc.AddTier(ctx, input.ID, input.Body.Name, input.Body.Popular)
		return respond(input.ID, o, err)
	})

	huma.Register(api, huma.Operation{
		OperationID: "apply-recommended-tiers",
		Method:      http.MethodPost,
		Path:        "/api/v1/sessions/{id}/tiers/recommended",
		Summary:     "Replace tiers with the recommended structure",
		Tags:        []string{"Tiers"},
	}, func(ctx context.Context, input *SessionIDInput) (*SessionOutput, error) {
		o, err := svc.ApplyRecommendedTiers(ctx, input.ID)
		return respond(input.ID, o, err)
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-tier",
		Method:      http.MethodPut,
		Path:        "/api/v1/sessions/{id}/tiers/{index}",
		Summary:     "Replace a tier",
		Tags:        []string{"Tiers"},
	}, func(ctx context.Context, input *UpdateTierInput) (*SessionOutput, error) {
		o, err := svc.UpdateTier(ctx, input.ID, input.Index, fromTierPayload(input.Body))
		return respond(input.ID, o, err)
	})

	huma.Register(api, huma.Operation{
		OperationID: "remove-tier",
		Method:      http.MethodDelete,
		Path:        "/api/v1/sessions/{id}/tiers/{index}",
		Summary:     "Remove a tier",
		Tags:        []string{"Tiers"},
	}, func(ctx context.Context, input *TierIndexInput) (*SessionOutput, error) {
		o, err := svc.RemoveTier(ctx, input.ID, input.Index)
		return respond(input.ID, o, err)
	})

	huma.Register(api, huma.Operation{
		OperationID: "clone-tier",
		Method:      http.MethodPost,
		Path:        "/api/v1/sessions/{id}/tiers/{index}/clone",
		Summary:     "Duplicate a tier",
		Tags:        []string{"Tiers"},
	}, func(ctx context.Context, input *TierIndexInput) (*SessionOutput, error) {
		o, err := svc.CloneTier(ctx, input.ID, input.Index)
		return respond(input.ID, o, err)
	})

	huma.Register(api, huma.Operation{
		OperationID: "reorder-tiers",
		Method:      http.MethodPost,
		Path:        "/api/v1/sessions/{id}/tiers/reorder",
		Summary:     "Move a tier to a new position",
		Tags:        []string{"Tiers"},
	}, func(ctx context.Context, input *ReorderTiersInput) (*SessionOutput, error) {
		o, err := svc.ReorderTiers(ctx, input.ID, input.Body.From, input.Body.To)
		return respond(input.ID, o, err)
	})

	registerItemRoutes(api, "feature", "Features", itemOps{
		add:    svc.AddFeature,
		update: svc.UpdateFeature,
		remove: svc.RemoveFeature,
	}, respond)

	registerItemRoutes(api, "tag", "Tags", itemOps{
		add:    svc.AddTag,
		update: svc.UpdateTag,
		remove: svc.RemoveTag,
	}, respond)

	huma.Register(api, huma.Operation{
		OperationID: "attach-media",
		Method:      http.MethodPost,
		Path:        "/api/v1/sessions/{id}/media",
		Summary:     "Upload a thumbnail or gallery image",
		Tags:        []string{"Media"},
	}, func(ctx context.Context, input *AttachMediaInput) (*SessionOutput, error) {
		o, err := svc.AttachMedia(ctx, input.ID, domain.MediaKind(input.Body.Kind), domain.ImageUpload{
			Filename: input.Body.Filename,
			Data:     input.Body.Data,
		})
		return respond(input.ID, o, err)
	})

	huma.Register(api, huma.Operation{
		OperationID: "remove-thumbnail",
		Method:      http.MethodDelete,
		Path:        "/api/v1/sessions/{id}/media/thumbnail",
		Summary:     "Remove the thumbnail",
		Tags:        []string{"Media"},
	}, func(ctx context.Context, input *SessionIDInput) (*SessionOutput, error) {
		o, err := svc.RemoveThumbnail(ctx, input.ID)
		return respond(input.ID, o, err)
	})

	huma.Register(api, huma.Operation{
		OperationID: "remove-gallery-image",
		Method:      http.MethodDelete,
		Path:        "/api/v1/sessions/{id}/media/gallery/{index}",
		Summary:     "Remove a gallery image",
		Tags:        []string{"Media"},
	}, func(ctx context.Context, input *ItemIndexInput) (*SessionOutput, error) {
		o, err := svc.RemoveGalleryImage(ctx, input.ID, input.Index)
		return respond(input.ID, o, err)
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-preview",
		Method:      http.MethodGet,
		Path:        "/api/v1/sessions/{id}/preview",
		Summary:     "Get the card preview projection",
		Tags:        []string{"Preview"},
	}, func(ctx context.Context, input *SessionIDInput) (*PreviewOutput, error) {
		p, err := svc.Preview(input.ID)
		if err != nil {
			return nil, toHumaError(err)
		}
		out := &PreviewOutput{}
		out.Body.DisplayName = p.DisplayName
		out.Body.Tagline = p.Tagline
		out.Body.Description = p.Description
		out.Body.PriceLabel = p.PriceLabel
		out.Body.VisibleFeatures = p.VisibleFeatures
		out.Body.HiddenFeatureCount = p.HiddenFeatureCount
		out.Body.AllFeatures = p.AllFeatures
		out.Body.Thumbnail = p.Thumbnail
		out.Body.FallbackColor = p.FallbackColor
		out.Body.Tags = p.Tags
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-events",
		Method:      http.MethodGet,
		Path:        "/api/v1/events",
		Summary:     "List recent wizard events",
		Tags:        []string{"Events"},
	}, func(ctx context.Context, input *ListEventsInput) (*ListEventsOutput, error) {
		entries, err := eventLog.Recent(ctx, input.Limit)
		if err != nil {
			return nil, toHumaError(err)
		}
		resp := make([]EventResponse, len(entries))
		for i, e := range entries {
			resp[i] = EventResponse{
				ID:           e.ID,
				SessionID:    e.SessionID,
				Event:        string(e.Event),
				Step:         int(e.Step),
				OfferingName: e.OfferingName,
				OccurredAt:   e.OccurredAt.Format("2006-01-02T15:04:05Z"),
			}
		}
		return &ListEventsOutput{Body: resp}, nil
	})
}

// itemOps bundles the service methods for one string collection so
// features and tags share route plumbing.
type itemOps struct {
	add    func(ctx context.Context, id, value string) (domain.Offering, error)
	update func(ctx context.Context, id string, index int, value string) (domain.Offering, error)
	remove func(ctx context.Context, id string, index int) (domain.Offering, error)
}

func registerItemRoutes(api huma.API, name, tag string, ops itemOps, respond func(string, domain.Offering, error) (*SessionOutput, error)) {
	huma.Register(api, huma.Operation{
		OperationID: "add-" + name,
		Method:      http.MethodPost,
		Path:        "/api/v1/sessions/{id}/" + name + "s",
		Summary:     "Add a " + name,
		Tags:        []string{tag},
	}, func(ctx context.Context, input *AddItemInput) (*SessionOutput, error) {
		o, err := ops.add(ctx, input.ID, input.Body.Value)
		return respond(input.ID, o, err)
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-" + name,
		Method:      http.MethodPut,
		Path:        "/api/v1/sessions/{id}/" + name + "s/{index}",
		Summary:     "Update a " + name,
		Tags:        []string{tag},
	}, func(ctx context.Context, input *UpdateItemInput) (*SessionOutput, error) {
		o, err := ops.update(ctx, input.ID, input.Index, input.Body.Value)
		return respond(input.ID, o, err)
	})

	huma.Register(api, huma.Operation{
		OperationID: "remove-" + name,
		Method:      http.MethodDelete,
		Path:        "/api/v1/sessions/{id}/" + name + "s/{index}",
		Summary:     "Remove a " + name,
		Tags:        []string{tag},
	}, func(ctx context.Context, input *ItemIndexInput) (*SessionOutput, error) {
		o, err := ops.remove(ctx, input.ID, input.Index)
		return respond(input.ID, o, err)
	})
}

// toHumaError translates domain errors to Huma HTTP errors.
func toHumaError(err error) error {
	if errors.Is(err, domain.ErrSessionNotFound) {
		return huma.Error404NotFound("session not found")
	}

	var blocked *domain.StepBlockedError
	if errors.As(err, &blocked) {
		details := make([]error, len(blocked.Errors))
		for i, msg := range blocked.Errors {
			details[i] = &huma.ErrorDetail{Message: msg}
		}
		return huma.Error422UnprocessableEntity("current step is incomplete", details...)
	}

	var mediaErr *domain.MediaError
	if errors.As(err, &mediaErr) {
		return huma.Error422UnprocessableEntity(mediaErr.Message)
	}

	var navErr *domain.NavigationError
	if errors.As(err, &navErr) {
		return huma.Error422UnprocessableEntity(navErr.Error())
	}

	return huma.Error500InternalServerError("internal server error")
}
