package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	quoteapp "github.com/frameshop/backend/internal/application/quote"
	"github.com/frameshop/backend/internal/domain/quote"
	"github.com/frameshop/backend/internal/domain/shared"
	"github.com/frameshop/backend/internal/domain/supply"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubSupplyRepository serves a fixed set of supplies keyed by store and ID
type stubSupplyRepository struct {
	supplies map[uuid.UUID]*supply.Supply
}

func (r *stubSupplyRepository) FindByID(ctx context.Context, id uuid.UUID) (*supply.Supply, error) {
	if s, ok := r.supplies[id]; ok {
		return s, nil
	}
	return nil, shared.ErrNotFound
}

func (r *stubSupplyRepository) FindByIDForStore(ctx context.Context, storeID, id uuid.UUID) (*supply.Supply, error) {
	if s, ok := r.supplies[id]; ok && s.StoreID == storeID {
		return s, nil
	}
	return nil, shared.ErrNotFound
}

func (r *stubSupplyRepository) FindByCode(ctx context.Context, storeID uuid.UUID, code string) (*supply.Supply, error) {
	return nil, shared.ErrNotFound
}

func (r *stubSupplyRepository) FindAllForStore(ctx context.Context, storeID uuid.UUID, filter shared.Filter) ([]supply.Supply, error) {
	return nil, nil
}

func (r *stubSupplyRepository) FindByCategory(ctx context.Context, storeID uuid.UUID, category supply.Category, filter shared.Filter) ([]supply.Supply, error) {
	return nil, nil
}

func (r *stubSupplyRepository) ExistsByCode(ctx context.Context, storeID uuid.UUID, code string) (bool, error) {
	return false, nil
}

func (r *stubSupplyRepository) Save(ctx context.Context, s *supply.Supply) error { return nil }

func (r *stubSupplyRepository) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (r *stubSupplyRepository) Count(ctx context.Context, storeID uuid.UUID, filter shared.Filter) (int64, error) {
	return 0, nil
}

var testStoreID = uuid.MustParse("00000000-0000-0000-0000-000000000001")

func newQuoteRouter(t *testing.T, repo supply.Repository) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	RegisterValidations()

	svc := quoteapp.NewService(repo, quote.NewCalculator(), zap.NewNop())
	h := NewQuoteHandler(svc)

	engine := gin.New()
	engine.POST("/api/v1/quotes/calculate", h.Calculate)
	return engine
}

func newFrameSupply(t *testing.T) *supply.Supply {
	t.Helper()

	s, err := supply.NewSupply(testStoreID, "MOL-001", "Black molding 3cm", supply.CategoryFrame)
	require.NoError(t, err)

	s.SetCostSchedule(supply.CostSchedule{
		CostCash:   decimal.NewFromInt(40),
		CostNet120: decimal.NewFromInt(50),
	})
	require.NoError(t, s.SetPrices(decimal.NewFromInt(150), decimal.Zero))
	require.NoError(t, s.SetFrameProfile(decimal.NewFromInt(3), decimal.NewFromInt(270)))
	return s
}

func TestQuoteHandler_Calculate(t *testing.T) {
	frame := newFrameSupply(t)
	repo := &stubSupplyRepository{supplies: map[uuid.UUID]*supply.Supply{frame.ID: frame}}
	engine := newQuoteRouter(t, repo)

	body := map[string]interface{}{
		"height_cm": "60",
		"width_cm":  "80",
		"quantity":  1,
		"frame_id":  frame.ID.String(),
	}
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/quotes/calculate", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(StoreIDHeader, testStoreID.String())
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool                       `json:"success"`
		Data    quoteapp.CalculateResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.True(t, resp.Success)
	assert.Empty(t, resp.Data.MissingSupplies)
	assert.Equal(t, 2, resp.Data.BarsNeeded)
	assert.True(t, resp.Data.SellTotal.GreaterThan(decimal.Zero))
	assert.True(t, resp.Data.FinalValue.GreaterThan(decimal.Zero))
}

func TestQuoteHandler_CalculateRejectsBadDimensions(t *testing.T) {
	engine := newQuoteRouter(t, &stubSupplyRepository{})

	body := map[string]interface{}{
		"height_cm": "-5",
		"width_cm":  "80",
		"quantity":  1,
	}
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/quotes/calculate", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_INVALID_DIMENSIONS")
}

func TestQuoteHandler_CalculateInvalidStoreHeader(t *testing.T) {
	engine := newQuoteRouter(t, &stubSupplyRepository{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/quotes/calculate", bytes.NewReader([]byte("{}")))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(StoreIDHeader, "not-a-uuid")
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid store ID")
}

func TestQuoteHandler_CalculateMissingSupplyReported(t *testing.T) {
	engine := newQuoteRouter(t, &stubSupplyRepository{supplies: map[uuid.UUID]*supply.Supply{}})

	unknown := uuid.New()
	body := map[string]interface{}{
		"height_cm": "60",
		"width_cm":  "80",
		"quantity":  1,
		"frame_id":  unknown.String(),
	}
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/quotes/calculate", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data quoteapp.CalculateResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Data.MissingSupplies, unknown)
}
