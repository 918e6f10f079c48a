package pricing

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/sblrm/cultural-trip-planner/pkg"
)

// FuelPriceSource returns the current fuel price in Rp per liter. Injected so
// pricing stays deterministic under test; production may back this with a
// market feed.
type FuelPriceSource func() float64

func StaticFuelPrice(pricePerLiter float64) FuelPriceSource {
	return func() float64 {
		return pricePerLiter
	}
}

// JitteredFuelPrice adds +-5% variance around the base price using a caller
// owned (seedable) generator.
func JitteredFuelPrice(basePricePerLiter float64, rng *rand.Rand) FuelPriceSource {
	return func() float64 {
		variance := basePricePerLiter * 0.05
		offset := (rng.Float64() - 0.5) * 2 * variance
		return math.Round(basePricePerLiter + offset)
	}
}

const (
	defaultBaseCost = 50000.0

	carFuelConsumptionKmPerLiter        = 12.0
	motorcycleFuelConsumptionKmPerLiter = 35.0

	// motorcycles get discounted tolls and half parking fee
	motorcycleTollDiscount    = 0.5
	motorcycleParkingDiscount = 0.5

	parkingCostPerStop = 5000.0

	tollRatePerKmFastest = 1500.0
	tollRatePerKmDefault = 1000.0

	// expected-value approximation: the fraction of the route assumed tolled,
	// not a random draw, so pricing stays reproducible
	tollFractionLongRoute    = 0.6
	tollFractionShortRoute   = 0.3
	tollLongRouteThresholdKm = 50.0

	// public fares react to demand less than car travel does
	publicPeakSensitivity    = 0.5
	publicWeekendSensitivity = 0.3
)

// Breakdown itemized monetary cost of one edge. TotalCost equals the sum of
// all the itemized fields, rounded once at the end.
type Breakdown struct {
	BaseCost          float64           `json:"base_cost"`
	FuelCost          float64           `json:"fuel_cost"`
	FareCost          float64           `json:"fare_cost"`
	RoadCost          float64           `json:"road_cost"`
	TollCost          float64           `json:"toll_cost"`
	ParkingCost       float64           `json:"parking_cost"`
	PeakHourSurcharge float64           `json:"peak_hour_surcharge"`
	WeekendSurcharge  float64           `json:"weekend_surcharge"`
	TrafficSurcharge  float64           `json:"traffic_surcharge"`
	TotalCost         float64           `json:"total_cost"`
	TransportMode     pkg.TransportMode `json:"-"`
	Items             []string          `json:"items,omitempty"`
}

type Engine struct {
	fuelPrice FuelPriceSource
	baseCost  float64
}

type Option func(*Engine)

func WithBaseCost(baseCost float64) Option {
	return func(e *Engine) {
		e.baseCost = baseCost
	}
}

func NewEngine(fuelPrice FuelPriceSource, opts ...Option) *Engine {
	e := &Engine{
		fuelPrice: fuelPrice,
		baseCost:  defaultBaseCost,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// CurrentFuelPrice reads the injected fuel price source.
func (e *Engine) CurrentFuelPrice() float64 {
	return e.fuelPrice()
}

func roadRatePerKm(opt pkg.OptimizationMode) float64 {
	switch opt {
	case pkg.FASTEST:
		return 8000.0
	case pkg.CHEAPEST:
		return 3000.0
	case pkg.BALANCED:
		return 5000.0
	default:
		return 5000.0
	}
}

func tollCost(distanceKm float64, opt pkg.OptimizationMode, transport pkg.TransportMode) float64 {
	if opt == pkg.CHEAPEST {
		// cheapest mode avoids tolls entirely
		return 0
	}

	rate := tollRatePerKmDefault
	if opt == pkg.FASTEST {
		rate = tollRatePerKmFastest
	}

	fraction := tollFractionShortRoute
	if distanceKm > tollLongRouteThresholdKm {
		fraction = tollFractionLongRoute
	}

	toll := distanceKm * fraction * rate
	if transport == pkg.MOTORCYCLE {
		toll *= motorcycleTollDiscount
	}
	return toll
}

func parkingCost(transport pkg.TransportMode) float64 {
	if transport == pkg.MOTORCYCLE {
		return parkingCostPerStop * motorcycleParkingDiscount
	}
	return parkingCostPerStop
}

func fuelConsumption(transport pkg.TransportMode) float64 {
	if transport == pkg.MOTORCYCLE {
		return motorcycleFuelConsumptionKmPerLiter
	}
	return carFuelConsumptionKmPerLiter
}

// Price computes the itemized cost of traveling distanceKm. Pure given valid
// inputs; negative or NaN distance is a caller bug.
func (e *Engine) Price(distanceKm float64, departure time.Time, traffic pkg.TrafficLevel,
	transport pkg.TransportMode, opt pkg.OptimizationMode) Breakdown {

	if distanceKm < 0 || math.IsNaN(distanceKm) {
		panic(fmt.Sprintf("pricing: invalid distance %v", distanceKm))
	}

	b := Breakdown{
		BaseCost:      e.baseCost,
		TransportMode: transport,
	}

	if transport.IsPrivateVehicle() {
		b.FuelCost = distanceKm / fuelConsumption(transport) * e.fuelPrice()
		b.RoadCost = distanceKm * roadRatePerKm(opt)
		b.TollCost = tollCost(distanceKm, opt, transport)
		b.ParkingCost = parkingCost(transport)
	} else {
		b.FareCost = fareCost(distanceKm, opt)
	}

	// surcharges are additive line items on the distance-dependent part, not
	// compounded into each other, so the breakdown stays auditable
	basis := b.FuelCost + b.FareCost + b.RoadCost

	b.PeakHourSurcharge = basis * (TimeOfDayMultiplier(departure) - 1)
	b.WeekendSurcharge = basis * (DayOfWeekMultiplier(departure) - 1)
	b.TrafficSurcharge = basis * (TrafficMultiplier(traffic) - 1)

	if !transport.IsPrivateVehicle() {
		b.PeakHourSurcharge *= publicPeakSensitivity
		b.WeekendSurcharge *= publicWeekendSensitivity
		// congestion does not change a ticket price
		b.TrafficSurcharge = 0
	}

	total := b.BaseCost + b.FuelCost + b.FareCost + b.RoadCost + b.TollCost + b.ParkingCost +
		b.PeakHourSurcharge + b.WeekendSurcharge + b.TrafficSurcharge
	b.TotalCost = math.Round(total)

	b.Items = buildItems(b, distanceKm, transport, opt, traffic)

	return b
}

func buildItems(b Breakdown, distanceKm float64, transport pkg.TransportMode,
	opt pkg.OptimizationMode, traffic pkg.TrafficLevel) []string {

	items := make([]string, 0, 8)
	items = append(items, fmt.Sprintf("Base cost: Rp %.0f", b.BaseCost))
	if transport.IsPrivateVehicle() {
		items = append(items, fmt.Sprintf("Fuel cost (%.1f km @ %.0f km/L): Rp %.0f",
			distanceKm, fuelConsumption(transport), b.FuelCost))
		items = append(items, fmt.Sprintf("Road cost (%s mode): Rp %.0f", opt, b.RoadCost))
		if b.TollCost > 0 {
			items = append(items, fmt.Sprintf("Toll cost: Rp %.0f", b.TollCost))
		}
		items = append(items, fmt.Sprintf("Parking: Rp %.0f", b.ParkingCost))
	} else {
		items = append(items, fmt.Sprintf("Fare (%s, %.1f km, %s): Rp %.0f",
			transport, distanceKm, opt, b.FareCost))
	}
	if b.PeakHourSurcharge > 0 {
		items = append(items, fmt.Sprintf("Peak hour surcharge: +Rp %.0f", b.PeakHourSurcharge))
	}
	if b.WeekendSurcharge > 0 {
		items = append(items, fmt.Sprintf("Weekend/holiday surcharge: +Rp %.0f", b.WeekendSurcharge))
	}
	if b.TrafficSurcharge > 0 {
		items = append(items, fmt.Sprintf("Traffic surcharge (%s): +Rp %.0f", traffic, b.TrafficSurcharge))
	}
	return items
}
