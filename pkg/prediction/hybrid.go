package prediction

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/sblrm/cultural-trip-planner/pkg"
	"github.com/sblrm/cultural-trip-planner/pkg/pricing"
	"go.uber.org/zap"
)

// ErrModelUnavailable learned predictor failed or absent. recovered locally
// by falling back to rule-based pricing; never surfaced to the caller.
var ErrModelUnavailable = errors.New("learned cost model unavailable")

type Method string

const (
	MethodRuleBased Method = "rule_based"
	MethodMLModel   Method = "ml_model"
	MethodHybrid    Method = "hybrid"
)

// Features inputs handed to the learned predictor.
type Features struct {
	DistanceKm       float64
	DurationMinutes  float64
	OptimizationMode pkg.OptimizationMode
	TransportMode    pkg.TransportMode
	Departure        time.Time
	TrafficLevel     pkg.TrafficLevel
	FuelPrice        float64
}

type MLPrediction struct {
	Cost         float64
	Confidence   float64
	ModelVersion string
}

// MLPredictor optional learned cost model. implementations may run remote
// inference; errors are treated exactly like "unavailable".
type MLPredictor interface {
	Predict(ctx context.Context, in Features) (MLPrediction, error)
}

type Result struct {
	FinalCost     float64           `json:"final_cost"`
	Method        Method            `json:"method"`
	Confidence    float64           `json:"confidence"`
	Reason        string            `json:"reason"`
	RuleBreakdown pricing.Breakdown `json:"rule_breakdown"`
	ML            *MLPrediction     `json:"-"`
}

const (
	// use the learned prediction only at/above this confidence
	mlConfidenceThreshold = 0.7

	// sanity check: beyond this relative difference, blend instead of trusting
	// either side fully
	maxDifferencePercent = 50.0

	hybridMLWeight     = 0.7
	discrepancyPenalty = 0.9

	ruleBasedConfidence = 0.8
)

// HybridPredictor combines the rule-based pricing engine with an optional
// learned model. the learned output never goes unchecked: a model can
// silently degrade, the rule engine is auditable and bounded.
type HybridPredictor struct {
	pricing *pricing.Engine
	ml      MLPredictor
	log     *zap.Logger
}

func NewHybridPredictor(pricingEngine *pricing.Engine, ml MLPredictor, log *zap.Logger) *HybridPredictor {
	return &HybridPredictor{
		pricing: pricingEngine,
		ml:      ml,
		log:     log,
	}
}

// RulePrice rule-based estimate only, bypassing the learned model. used by
// the search heuristic, which needs a deterministic lower bound.
func (h *HybridPredictor) RulePrice(distanceKm float64, departure time.Time, traffic pkg.TrafficLevel,
	transport pkg.TransportMode, opt pkg.OptimizationMode) pricing.Breakdown {
	return h.pricing.Price(distanceKm, departure, traffic, transport, opt)
}

// Predict returns the reconciled cost estimate for one trip leg.
func (h *HybridPredictor) Predict(ctx context.Context, in Features) Result {
	if in.FuelPrice == 0 {
		in.FuelPrice = h.pricing.CurrentFuelPrice()
	}

	rule := h.pricing.Price(in.DistanceKm, in.Departure, in.TrafficLevel,
		in.TransportMode, in.OptimizationMode)

	if h.ml == nil {
		return Result{
			FinalCost:     rule.TotalCost,
			Method:        MethodRuleBased,
			Confidence:    ruleBasedConfidence,
			Reason:        "ML model not available",
			RuleBreakdown: rule,
		}
	}

	mlPred, err := h.ml.Predict(ctx, in)
	if err != nil {
		h.log.Warn("ML prediction failed, falling back to rule-based", zap.Error(err))
		return Result{
			FinalCost:     rule.TotalCost,
			Method:        MethodRuleBased,
			Confidence:    ruleBasedConfidence,
			Reason:        "ML model not available",
			RuleBreakdown: rule,
		}
	}

	if mlPred.Confidence < mlConfidenceThreshold {
		return Result{
			FinalCost:     rule.TotalCost,
			Method:        MethodRuleBased,
			Confidence:    ruleBasedConfidence,
			Reason:        fmt.Sprintf("Low ML confidence (%.0f%%), using rule-based", mlPred.Confidence*100),
			RuleBreakdown: rule,
			ML:            &mlPred,
		}
	}

	percentDiff := math.Abs(mlPred.Cost-rule.TotalCost) / rule.TotalCost * 100

	if percentDiff > maxDifferencePercent {
		h.log.Warn("large discrepancy between ML and rule-based prediction",
			zap.Float64("ml_cost", mlPred.Cost),
			zap.Float64("rule_cost", rule.TotalCost),
			zap.Float64("percent_diff", percentDiff))

		blended := mlPred.Cost*hybridMLWeight + rule.TotalCost*(1-hybridMLWeight)
		return Result{
			FinalCost:     blended,
			Method:        MethodHybrid,
			Confidence:    mlPred.Confidence * discrepancyPenalty,
			Reason:        fmt.Sprintf("Large discrepancy (%.1f%%), using weighted average", percentDiff),
			RuleBreakdown: rule,
			ML:            &mlPred,
		}
	}

	return Result{
		FinalCost:     mlPred.Cost,
		Method:        MethodMLModel,
		Confidence:    mlPred.Confidence,
		Reason:        fmt.Sprintf("High ML confidence (%.0f%%)", mlPred.Confidence*100),
		RuleBreakdown: rule,
		ML:            &mlPred,
	}
}
