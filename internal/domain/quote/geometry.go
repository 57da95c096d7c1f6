package quote

import (
	"github.com/frameshop/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

const (
	// CutLossFactor is the industry constant for saw kerf and joint loss:
	// every frame job loses profile_width × 8 centimeters of molding.
	CutLossFactor = 8

	// LeftoverThresholdCm is the hard threshold below which the leftover
	// of the last bar is too short to reuse and is billed as waste.
	LeftoverThresholdCm = 100
)

var (
	oneHundred    = decimal.NewFromInt(100)
	tenThousand   = decimal.NewFromInt(10000)
	cutLossFactor = decimal.NewFromInt(CutLossFactor)
)

// Dimensions are the caller-supplied measurements of one frame job
type Dimensions struct {
	HeightCm decimal.Decimal
	WidthCm  decimal.Decimal
	Quantity int
}

// Validate rejects non-positive dimensions and quantities below 1
func (d Dimensions) Validate() error {
	if !d.HeightCm.IsPositive() || !d.WidthCm.IsPositive() {
		return shared.ErrInvalidDimensions
	}
	if d.Quantity < 1 {
		return shared.ErrInvalidDimensions
	}
	return nil
}

// Geometry is the billable geometry derived from the requested dimensions.
// Frame-specific fields are zero when no frame is selected.
type Geometry struct {
	AreaM2      decimal.Decimal
	PerimeterCm decimal.Decimal

	BarsNeeded         int
	LeftoverCm         decimal.Decimal
	CutLossCm          decimal.Decimal
	LeftoverBilledCm   decimal.Decimal
	BilledLinearMeters decimal.Decimal
}

// CalculateGeometry derives area and perimeter from the dimensions.
// Area-billed supplies need nothing else.
func CalculateGeometry(d Dimensions) Geometry {
	return Geometry{
		AreaM2:      d.HeightCm.Mul(d.WidthCm).Div(tenThousand),
		PerimeterCm: d.HeightCm.Add(d.WidthCm).Mul(decimal.NewFromInt(2)),
	}
}

// WithFrame extends the geometry with bar count, cut-loss and leftover
// accounting for a frame with the given profile width and stock bar length.
// A non-positive bar length falls back to the standard 270 cm bar.
func (g Geometry) WithFrame(profileWidthCm, barLengthCm decimal.Decimal) Geometry {
	if !barLengthCm.IsPositive() {
		barLengthCm = decimal.NewFromInt(270)
	}

	bars := g.PerimeterCm.Div(barLengthCm).Ceil()
	g.BarsNeeded = int(bars.IntPart())
	g.LeftoverCm = bars.Mul(barLengthCm).Sub(g.PerimeterCm)
	g.CutLossCm = profileWidthCm.Mul(cutLossFactor)

	// A leftover shorter than the threshold cannot be reused for another
	// job and is charged to this one; anything longer goes back to stock.
	if g.LeftoverCm.LessThan(decimal.NewFromInt(LeftoverThresholdCm)) {
		g.LeftoverBilledCm = g.LeftoverCm
	} else {
		g.LeftoverBilledCm = decimal.Zero
	}

	totalBilledCm := g.PerimeterCm.Add(g.CutLossCm).Add(g.LeftoverBilledCm)
	g.BilledLinearMeters = totalBilledCm.Div(oneHundred)

	return g
}

// WasteCost prices the non-product material (cut-loss plus billed leftover)
// at the frame's cost per linear meter
func (g Geometry) WasteCost(frameCostPerMeter decimal.Decimal) decimal.Decimal {
	return g.CutLossCm.Add(g.LeftoverBilledCm).Div(oneHundred).Mul(frameCostPerMeter)
}
