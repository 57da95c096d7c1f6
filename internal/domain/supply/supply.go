package supply

import (
	"strings"

	"github.com/frameshop/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Category classifies a supply by the role it plays in a frame job.
// The category determines the unit the supply is billed in.
type Category string

const (
	CategoryFrame     Category = "frame"     // molding strip, billed per linear meter
	CategoryGlass     Category = "glass"     // billed per m²
	CategoryBacking   Category = "backing"   // MDF backing board, billed per m²
	CategoryPaper     Category = "paper"     // print paper / adhesive vinyl, billed per m²
	CategoryMatBoard  Category = "mat_board" // passe-partout, billed per m²
	CategoryAccessory Category = "accessory" // hangers, hooks etc., billed per unit
)

// Unit codes for the units of measure implied by a category
const (
	UnitLinearMeter = "m"
	UnitSquareMeter = "m2"
	UnitPiece       = "un"
)

// DefaultBarLengthCm is the standard stock length of a frame molding bar
const DefaultBarLengthCm = 270

// validCategories is the set of accepted supply categories
var validCategories = map[Category]bool{
	CategoryFrame:     true,
	CategoryGlass:     true,
	CategoryBacking:   true,
	CategoryPaper:     true,
	CategoryMatBoard:  true,
	CategoryAccessory: true,
}

// Unit returns the unit of measure the category is billed in
func (c Category) Unit() string {
	switch c {
	case CategoryFrame:
		return UnitLinearMeter
	case CategoryAccessory:
		return UnitPiece
	default:
		return UnitSquareMeter
	}
}

// IsAreaBilled reports whether the category is billed by area
func (c Category) IsAreaBilled() bool {
	switch c {
	case CategoryGlass, CategoryBacking, CategoryPaper, CategoryMatBoard:
		return true
	}
	return false
}

// PaymentTerm identifies one tier of a supply's cost schedule
type PaymentTerm string

const (
	TermCash   PaymentTerm = "cash"
	TermNet30  PaymentTerm = "net30"
	TermNet60  PaymentTerm = "net60"
	TermNet90  PaymentTerm = "net90"
	TermNet120 PaymentTerm = "net120"
	TermNet150 PaymentTerm = "net150"
)

// DefaultPaymentTerm is the tier used when the caller doesn't pick one.
// Suppliers in this trade quote 120-day terms by default.
const DefaultPaymentTerm = TermNet120

// ValidPaymentTerm reports whether the given term is a known tier
func ValidPaymentTerm(term PaymentTerm) bool {
	switch term {
	case TermCash, TermNet30, TermNet60, TermNet90, TermNet120, TermNet150:
		return true
	}
	return false
}

// CostSchedule holds the cost-per-unit at each payment-term tier
type CostSchedule struct {
	CostCash   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	CostNet30  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	CostNet60  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	CostNet90  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	CostNet120 decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	CostNet150 decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// CostFor resolves the unit cost for the given payment term.
// Unknown terms resolve to the default tier.
func (s CostSchedule) CostFor(term PaymentTerm) decimal.Decimal {
	switch term {
	case TermCash:
		return s.CostCash
	case TermNet30:
		return s.CostNet30
	case TermNet60:
		return s.CostNet60
	case TermNet90:
		return s.CostNet90
	case TermNet150:
		return s.CostNet150
	default:
		return s.CostNet120
	}
}

// Supply is a purchasable material used in a frame job.
// It is the aggregate root for supply-management operations and is
// read-only to the quotation core.
type Supply struct {
	shared.StoreAggregateRoot
	Code        string   `gorm:"type:varchar(50);not null;uniqueIndex:idx_supply_store_code,priority:2"`
	Description string   `gorm:"type:varchar(200);not null"`
	Category    Category `gorm:"type:varchar(20);not null;index"`
	Supplier    string   `gorm:"type:varchar(100)"`

	CostSchedule CostSchedule `gorm:"embedded"`

	// ManufacturePrice is the sell price charged to the internal
	// manufacturing customer. RetailPrice is the storefront price and
	// must never feed the quotation core except through the explicit,
	// logged fallback.
	ManufacturePrice decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	RetailPrice      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`

	// Frame-only geometry. ProfileWidthCm is the face width of the
	// molding; BarLengthCm is the standard stock bar length.
	ProfileWidthCm decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	BarLengthCm    decimal.Decimal `gorm:"type:decimal(10,2);not null;default:270"`

	Active bool `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Supply) TableName() string {
	return "supplies"
}

// NewSupply creates a new supply
func NewSupply(storeID uuid.UUID, code, description string, category Category) (*Supply, error) {
	if err := validateCode(code); err != nil {
		return nil, err
	}
	if err := validateDescription(description); err != nil {
		return nil, err
	}
	if !validCategories[category] {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Unknown supply category")
	}

	return &Supply{
		StoreAggregateRoot: shared.NewStoreAggregateRoot(storeID),
		Code:               strings.ToUpper(code),
		Description:        description,
		Category:           category,
		BarLengthCm:        decimal.NewFromInt(DefaultBarLengthCm),
		Active:             true,
	}, nil
}

// Unit returns the unit of measure this supply is billed in
func (s *Supply) Unit() string {
	return s.Category.Unit()
}

// UnitCost resolves the unit cost for the given payment term
func (s *Supply) UnitCost(term PaymentTerm) decimal.Decimal {
	return s.CostSchedule.CostFor(term)
}

// HasManufacturePrice reports whether a manufacturing sell price is set
func (s *Supply) HasManufacturePrice() bool {
	return s.ManufacturePrice.IsPositive()
}

// Update updates the supply's basic information
func (s *Supply) Update(description, supplier string) error {
	if err := validateDescription(description); err != nil {
		return err
	}

	s.Description = description
	s.Supplier = supplier
	s.touch()
	return nil
}

// SetCostSchedule replaces the cost schedule
func (s *Supply) SetCostSchedule(schedule CostSchedule) {
	s.CostSchedule = schedule
	s.touch()
}

// SetPrices sets the manufacturing and retail sell prices
func (s *Supply) SetPrices(manufacture, retail decimal.Decimal) error {
	if manufacture.IsNegative() || retail.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Sell prices cannot be negative")
	}
	s.ManufacturePrice = manufacture
	s.RetailPrice = retail
	s.touch()
	return nil
}

// SetFrameProfile sets the molding face width and stock bar length.
// Only meaningful for frame supplies.
func (s *Supply) SetFrameProfile(profileWidthCm, barLengthCm decimal.Decimal) error {
	if s.Category != CategoryFrame {
		return shared.NewDomainError("INVALID_STATE", "Profile dimensions only apply to frame supplies")
	}
	if profileWidthCm.IsNegative() || !barLengthCm.IsPositive() {
		return shared.NewDomainError("INVALID_PROFILE", "Profile width must be >= 0 and bar length > 0")
	}
	s.ProfileWidthCm = profileWidthCm
	s.BarLengthCm = barLengthCm
	s.touch()
	return nil
}

// Activate marks the supply as available for selection
func (s *Supply) Activate() {
	s.Active = true
	s.touch()
}

// Deactivate hides the supply from selection without deleting it
func (s *Supply) Deactivate() {
	s.Active = false
	s.touch()
}

func (s *Supply) touch() {
	s.Touch()
	s.IncrementVersion()
}

func validateCode(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", "Supply code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_CODE", "Supply code cannot exceed 50 characters")
	}
	return nil
}

func validateDescription(description string) error {
	description = strings.TrimSpace(description)
	if description == "" {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Supply description cannot be empty")
	}
	if len(description) > 200 {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Supply description cannot exceed 200 characters")
	}
	return nil
}
