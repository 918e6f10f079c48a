package pricing

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/sblrm/cultural-trip-planner/pkg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	// Wednesday, off-peak, outside every surcharge window
	quietWednesday = time.Date(2025, time.June, 11, 11, 0, 0, 0, time.UTC)

	// Saturday evening. the weekday evening rush window does not apply,
	// weekend and traffic surcharges do
	saturdayEvening = time.Date(2025, time.June, 14, 18, 0, 0, 0, time.UTC)
)

func newTestEngine(fuelPrice float64) *Engine {
	return NewEngine(StaticFuelPrice(fuelPrice))
}

func TestBreakdownSumsToTotal(t *testing.T) {
	e := newTestEngine(12500)

	departures := []time.Time{quietWednesday, saturdayEvening,
		time.Date(2025, time.August, 17, 8, 0, 0, 0, time.UTC),
		time.Date(2025, time.June, 13, 23, 30, 0, 0, time.UTC)}
	transports := []pkg.TransportMode{pkg.CAR, pkg.MOTORCYCLE, pkg.BUS, pkg.TRAIN}
	opts := []pkg.OptimizationMode{pkg.FASTEST, pkg.CHEAPEST, pkg.BALANCED}

	for _, dep := range departures {
		for _, tm := range transports {
			for _, opt := range opts {
				b := e.Price(137.5, dep, pkg.TRAFFIC_HIGH, tm, opt)

				sum := b.BaseCost + b.FuelCost + b.FareCost + b.RoadCost +
					b.TollCost + b.ParkingCost +
					b.PeakHourSurcharge + b.WeekendSurcharge + b.TrafficSurcharge
				assert.InDelta(t, sum, b.TotalCost, 1.0,
					"%s/%s at %s", tm, opt, dep)
			}
		}
	}
}

func TestSaturdayEveningCarBalanced(t *testing.T) {
	e := newTestEngine(10000)

	b := e.Price(100, saturdayEvening, pkg.TRAFFIC_SEVERE, pkg.CAR, pkg.BALANCED)

	assert.InDelta(t, 83333.33, b.FuelCost, 0.01)
	assert.Equal(t, 500000.0, b.RoadCost)
	assert.Equal(t, 60000.0, b.TollCost)
	assert.Equal(t, 5000.0, b.ParkingCost)
	assert.Equal(t, 50000.0, b.BaseCost)

	// evening rush applies on weekdays only
	assert.Equal(t, 0.0, b.PeakHourSurcharge)
	assert.InDelta(t, 116666.67, b.WeekendSurcharge, 0.01)
	assert.InDelta(t, 291666.67, b.TrafficSurcharge, 0.01)

	assert.Equal(t, 1106667.0, b.TotalCost)
}

func TestCostMonotonicInDistance(t *testing.T) {
	e := newTestEngine(12500)

	prev := -1.0
	for _, distance := range []float64{1, 10, 25, 49, 50, 51, 80, 150, 400, 900} {
		b := e.Price(distance, quietWednesday, pkg.TRAFFIC_LOW, pkg.CAR, pkg.BALANCED)
		require.Greater(t, b.TotalCost, prev, "distance %v km", distance)
		prev = b.TotalCost
	}
}

func TestMotorcycleDiscounts(t *testing.T) {
	e := newTestEngine(12500)

	car := e.Price(120, quietWednesday, pkg.TRAFFIC_LOW, pkg.CAR, pkg.FASTEST)
	moto := e.Price(120, quietWednesday, pkg.TRAFFIC_LOW, pkg.MOTORCYCLE, pkg.FASTEST)

	assert.InDelta(t, car.TollCost*0.5, moto.TollCost, 0.01)
	assert.Equal(t, 2500.0, moto.ParkingCost)
	assert.Equal(t, 5000.0, car.ParkingCost)
	// 35 km/L vs 12 km/L
	assert.Less(t, moto.FuelCost, car.FuelCost)
}

func TestCheapestModeNeverPaysToll(t *testing.T) {
	e := newTestEngine(12500)

	for _, distance := range []float64{5, 49, 51, 300} {
		b := e.Price(distance, quietWednesday, pkg.TRAFFIC_HIGH, pkg.CAR, pkg.CHEAPEST)
		assert.Equal(t, 0.0, b.TollCost, "distance %v km", distance)
	}
}

func TestPublicTransportFareTiers(t *testing.T) {
	e := newTestEngine(12500)

	tests := []struct {
		name     string
		distance float64
		opt      pkg.OptimizationMode
		wantFare float64
	}{
		{"economy short", 30, pkg.CHEAPEST, 15000 + 30*500},
		{"economy medium", 100, pkg.CHEAPEST, 30000 + 100*400},
		{"economy long", 250, pkg.BALANCED, 50000 + 250*300},
		{"express train", 300, pkg.FASTEST, 80000 + 300*600},
		{"flight", 600, pkg.FASTEST, 400000 + 600*1200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := e.Price(tt.distance, quietWednesday, pkg.TRAFFIC_LOW, pkg.BUS, tt.opt)
			assert.Equal(t, tt.wantFare, b.FareCost)
			assert.Equal(t, 0.0, b.FuelCost)
			assert.Equal(t, 0.0, b.TollCost)
			assert.Equal(t, 0.0, b.ParkingCost)
		})
	}
}

func TestPublicTransportSurchargeSensitivity(t *testing.T) {
	e := newTestEngine(12500)
	morningRush := time.Date(2025, time.June, 11, 8, 0, 0, 0, time.UTC)

	car := e.Price(100, morningRush, pkg.TRAFFIC_SEVERE, pkg.CAR, pkg.BALANCED)
	bus := e.Price(100, morningRush, pkg.TRAFFIC_SEVERE, pkg.BUS, pkg.BALANCED)

	carBasis := car.FuelCost + car.FareCost + car.RoadCost
	busBasis := bus.FuelCost + bus.FareCost + bus.RoadCost

	assert.InDelta(t, carBasis*0.30, car.PeakHourSurcharge, 0.01)
	assert.InDelta(t, busBasis*0.30*0.5, bus.PeakHourSurcharge, 0.01)

	// congestion does not change a ticket price
	assert.Greater(t, car.TrafficSurcharge, 0.0)
	assert.Equal(t, 0.0, bus.TrafficSurcharge)
}

func TestHolidaySurcharge(t *testing.T) {
	e := newTestEngine(12500)
	// Independence Day 2026 falls on a Monday
	independenceDay := time.Date(2026, time.August, 17, 11, 0, 0, 0, time.UTC)

	b := e.Price(100, independenceDay, pkg.TRAFFIC_LOW, pkg.CAR, pkg.BALANCED)
	basis := b.FuelCost + b.FareCost + b.RoadCost
	assert.InDelta(t, basis*0.25, b.WeekendSurcharge, 0.01)
}

func TestZeroDistance(t *testing.T) {
	e := newTestEngine(12500)

	b := e.Price(0, quietWednesday, pkg.TRAFFIC_LOW, pkg.CAR, pkg.BALANCED)
	assert.Equal(t, 0.0, b.FuelCost)
	assert.Equal(t, 0.0, b.RoadCost)
	assert.Equal(t, 0.0, b.TollCost)
	// fixed per-trip items still apply
	assert.Equal(t, 55000.0, b.TotalCost)
}

func TestInvalidDistancePanics(t *testing.T) {
	e := newTestEngine(12500)

	assert.Panics(t, func() {
		e.Price(-1, quietWednesday, pkg.TRAFFIC_LOW, pkg.CAR, pkg.BALANCED)
	})
	assert.Panics(t, func() {
		e.Price(math.NaN(), quietWednesday, pkg.TRAFFIC_LOW, pkg.CAR, pkg.BALANCED)
	})
}

func TestJitteredFuelPriceBounded(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	source := JitteredFuelPrice(12500, rng)

	for i := 0; i < 1000; i++ {
		price := source()
		assert.GreaterOrEqual(t, price, 12500*0.95)
		assert.LessOrEqual(t, price, 12500*1.05)
	}
}
