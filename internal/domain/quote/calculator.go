package quote

import (
	"github.com/frameshop/backend/internal/domain/shared/valueobject"
	"github.com/frameshop/backend/internal/domain/supply"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultMarkup is the effective markup reported when the cost total is
// zero and no ratio can be derived
var DefaultMarkup = decimal.NewFromInt(3)

// Request carries the caller's parameters for one quotation. It is a value
// object: the calculator never mutates it.
type Request struct {
	HeightCm decimal.Decimal
	WidthCm  decimal.Decimal
	Quantity int

	FrameID        *uuid.UUID
	UseGlass       bool
	GlassID        *uuid.UUID
	UseBacking     bool
	BackingID      *uuid.UUID
	UsePaper       bool
	PaperID        *uuid.UUID
	UseMatBoard    bool
	MatBoardID     *uuid.UUID
	UseAccessories bool
	AccessoryIDs   []uuid.UUID

	// PaymentTerm selects the cost-schedule tier; empty means the default
	PaymentTerm supply.PaymentTerm

	// Commercial adjustment. For each pair the percentage wins when both
	// are set; a lone fixed amount has its percentage back-computed.
	DiscountPercent  decimal.Decimal
	DiscountAmount   decimal.Decimal
	SurchargePercent decimal.Decimal
	SurchargeAmount  decimal.Decimal
}

// Dimensions extracts the dimensional part of the request
func (r Request) Dimensions() Dimensions {
	return Dimensions{HeightCm: r.HeightCm, WidthCm: r.WidthCm, Quantity: r.Quantity}
}

// Selection holds the supply records resolved for a request. A nil slot
// means the caller either didn't select that supply or the id didn't
// resolve; both are priced as absent.
type Selection struct {
	Frame       *supply.Supply
	Glass       *supply.Supply
	Backing     *supply.Supply
	Paper       *supply.Supply
	MatBoard    *supply.Supply
	Accessories []*supply.Supply
}

// Result is the computed quotation. It is constructed once and returned;
// callers must treat it as immutable.
type Result struct {
	AreaM2             decimal.Decimal `json:"area_m2"`
	PerimeterCm        decimal.Decimal `json:"perimeter_cm"`
	BarsNeeded         int             `json:"bars_needed"`
	LeftoverCm         decimal.Decimal `json:"leftover_cm"`
	BilledLinearMeters decimal.Decimal `json:"billed_linear_meters"`
	WasteCost          decimal.Decimal `json:"waste_cost"`

	Items []LineItem `json:"items"`

	CostTotal     decimal.Decimal `json:"cost_total"`
	Markup        decimal.Decimal `json:"markup"`
	SellTotal     decimal.Decimal `json:"sell_total"`
	MarginPercent decimal.Decimal `json:"margin_percent"`

	DiscountPercent  decimal.Decimal `json:"discount_percent"`
	DiscountAmount   decimal.Decimal `json:"discount_amount"`
	SurchargePercent decimal.Decimal `json:"surcharge_percent"`
	SurchargeAmount  decimal.Decimal `json:"surcharge_amount"`
	FinalValue       decimal.Decimal `json:"final_value"`
}

// Calculator prices a frame job from dimensions and resolved supplies.
// It is pure: no I/O, no shared state, identical inputs give identical
// results.
type Calculator struct {
	defaultMarkup  decimal.Decimal
	retailFallback bool
}

// Option configures a Calculator
type Option func(*Calculator)

// WithDefaultMarkup overrides the markup reported for zero-cost quotes
func WithDefaultMarkup(markup decimal.Decimal) Option {
	return func(c *Calculator) {
		if markup.IsPositive() {
			c.defaultMarkup = markup
		}
	}
}

// WithRetailPriceFallback controls whether a supply without a manufacturing
// sell price falls back to its retail price
func WithRetailPriceFallback(enabled bool) Option {
	return func(c *Calculator) {
		c.retailFallback = enabled
	}
}

// NewCalculator creates a Calculator with the default configuration
func NewCalculator(opts ...Option) *Calculator {
	c := &Calculator{
		defaultMarkup:  DefaultMarkup,
		retailFallback: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Calculate runs the three pricing stages: geometry, per-supply line items,
// aggregation with commercial adjustment. An empty selection is a valid
// quote with all-zero totals.
func (c *Calculator) Calculate(req Request, sel Selection) (Result, error) {
	dims := req.Dimensions()
	if err := dims.Validate(); err != nil {
		return Result{}, err
	}

	term := req.PaymentTerm
	if !supply.ValidPaymentTerm(term) {
		term = supply.DefaultPaymentTerm
	}

	geom := CalculateGeometry(dims)
	wasteCost := decimal.Zero
	items := make([]LineItem, 0, 6)

	if sel.Frame != nil {
		geom = geom.WithFrame(sel.Frame.ProfileWidthCm, sel.Frame.BarLengthCm)
		wasteCost = geom.WasteCost(sel.Frame.UnitCost(term))
		items = append(items, priceFrame(sel.Frame, geom, dims.Quantity, term, c.retailFallback))
	}
	for _, s := range []*supply.Supply{sel.Glass, sel.Backing, sel.Paper, sel.MatBoard} {
		if s != nil {
			items = append(items, priceArea(s, geom, dims.Quantity, term, c.retailFallback))
		}
	}
	for _, s := range sel.Accessories {
		if s != nil {
			items = append(items, priceAccessory(s, dims.Quantity, term, c.retailFallback))
		}
	}

	costTotal := wasteCost
	sellTotal := decimal.Zero
	for _, item := range items {
		costTotal = costTotal.Add(item.CostSubtotal)
		sellTotal = sellTotal.Add(item.SellSubtotal)
	}

	markup := c.defaultMarkup
	if costTotal.IsPositive() {
		markup = sellTotal.Div(costTotal).Round(4)
	}

	marginPercent := decimal.Zero
	if sellTotal.IsPositive() {
		marginPercent = sellTotal.Sub(costTotal).Div(sellTotal).Mul(oneHundred).Round(2)
	}

	result := Result{
		AreaM2:             geom.AreaM2,
		PerimeterCm:        geom.PerimeterCm,
		BarsNeeded:         geom.BarsNeeded,
		LeftoverCm:         geom.LeftoverCm,
		BilledLinearMeters: geom.BilledLinearMeters,
		WasteCost:          wasteCost.Round(2),
		Items:              items,
		CostTotal:          costTotal.Round(2),
		Markup:             markup,
		SellTotal:          sellTotal.Round(2),
		MarginPercent:      marginPercent,
	}
	applyAdjustment(&result, req)

	return result, nil
}

// applyAdjustment resolves the discount and surcharge pairs against the
// sell total and derives the final value
func applyAdjustment(r *Result, req Request) {
	base := valueobject.NewMoneyBRL(r.SellTotal)

	r.DiscountPercent, r.DiscountAmount = resolvePair(base, req.DiscountPercent, req.DiscountAmount)
	r.SurchargePercent, r.SurchargeAmount = resolvePair(base, req.SurchargePercent, req.SurchargeAmount)

	final := base.
		MustSubtract(valueobject.NewMoneyBRL(r.DiscountAmount)).
		MustAdd(valueobject.NewMoneyBRL(r.SurchargeAmount))
	r.FinalValue = final.Round(2).Amount()
}

// resolvePair reduces a percentage-or-fixed adjustment to both forms.
// The percentage takes precedence; a lone fixed amount has its reciprocal
// percentage back-computed for display, 0 when the base is 0.
func resolvePair(base valueobject.Money, percent, amount decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	switch {
	case percent.IsPositive():
		return percent, base.CalculatePercentage(percent).Round(2).Amount()
	case amount.IsPositive():
		reciprocal := decimal.Zero
		if base.IsPositive() {
			reciprocal = amount.Div(base.Amount()).Mul(oneHundred).Round(2)
		}
		return reciprocal, amount
	default:
		return decimal.Zero, decimal.Zero
	}
}
