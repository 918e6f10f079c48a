package prediction

import (
	"context"
	"testing"
	"time"

	"github.com/sblrm/cultural-trip-planner/pkg"
	"github.com/sblrm/cultural-trip-planner/pkg/pricing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubML struct {
	pred MLPrediction
	err  error
}

func (s *stubML) Predict(_ context.Context, _ Features) (MLPrediction, error) {
	return s.pred, s.err
}

func testFeatures() Features {
	return Features{
		DistanceKm:       100,
		DurationMinutes:  150,
		OptimizationMode: pkg.BALANCED,
		TransportMode:    pkg.CAR,
		Departure:        time.Date(2025, time.June, 11, 11, 0, 0, 0, time.UTC),
		TrafficLevel:     pkg.TRAFFIC_LOW,
	}
}

func newPredictor(ml MLPredictor) *HybridPredictor {
	engine := pricing.NewEngine(pricing.StaticFuelPrice(12500))
	return NewHybridPredictor(engine, ml, zap.NewNop())
}

func TestPredictWithoutModel(t *testing.T) {
	h := newPredictor(nil)

	res := h.Predict(context.Background(), testFeatures())

	assert.Equal(t, MethodRuleBased, res.Method)
	assert.Equal(t, 0.8, res.Confidence)
	assert.Equal(t, res.RuleBreakdown.TotalCost, res.FinalCost)
	assert.Nil(t, res.ML)
}

func TestPredictModelError(t *testing.T) {
	h := newPredictor(&stubML{err: ErrModelUnavailable})

	res := h.Predict(context.Background(), testFeatures())

	assert.Equal(t, MethodRuleBased, res.Method)
	assert.Equal(t, res.RuleBreakdown.TotalCost, res.FinalCost)
}

func TestPredictLowConfidence(t *testing.T) {
	h := newPredictor(&stubML{pred: MLPrediction{Cost: 100000, Confidence: 0.5}})

	res := h.Predict(context.Background(), testFeatures())

	assert.Equal(t, MethodRuleBased, res.Method)
	assert.Equal(t, res.RuleBreakdown.TotalCost, res.FinalCost)
	require.NotNil(t, res.ML)
	assert.Equal(t, 0.5, res.ML.Confidence)
}

func TestPredictTrustedModel(t *testing.T) {
	h := newPredictor(nil)
	rule := h.Predict(context.Background(), testFeatures()).RuleBreakdown

	// within the sanity band, high confidence: take the model output as is
	mlCost := rule.TotalCost * 1.2
	h = newPredictor(&stubML{pred: MLPrediction{Cost: mlCost, Confidence: 0.92}})

	res := h.Predict(context.Background(), testFeatures())

	assert.Equal(t, MethodMLModel, res.Method)
	assert.Equal(t, mlCost, res.FinalCost)
	assert.Equal(t, 0.92, res.Confidence)
}

func TestPredictLargeDiscrepancyBlends(t *testing.T) {
	h := newPredictor(nil)
	rule := h.Predict(context.Background(), testFeatures()).RuleBreakdown

	mlCost := rule.TotalCost * 3
	h = newPredictor(&stubML{pred: MLPrediction{Cost: mlCost, Confidence: 0.9}})

	res := h.Predict(context.Background(), testFeatures())

	assert.Equal(t, MethodHybrid, res.Method)
	assert.InDelta(t, mlCost*0.7+rule.TotalCost*0.3, res.FinalCost, 0.01)
	assert.Greater(t, res.FinalCost, rule.TotalCost)
	assert.Less(t, res.FinalCost, mlCost)
	assert.InDelta(t, 0.81, res.Confidence, 1e-9)
}

func TestPredictFillsFuelPrice(t *testing.T) {
	var seen Features
	ml := &mlRecorder{inner: &stubML{err: ErrModelUnavailable}, seen: &seen}
	h := newPredictor(ml)

	in := testFeatures()
	in.FuelPrice = 0
	h.Predict(context.Background(), in)

	assert.Equal(t, 12500.0, seen.FuelPrice)
}

type mlRecorder struct {
	inner MLPredictor
	seen  *Features
}

func (r *mlRecorder) Predict(ctx context.Context, in Features) (MLPrediction, error) {
	*r.seen = in
	return r.inner.Predict(ctx, in)
}
