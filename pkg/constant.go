package pkg

// enum of transport_mode
type TransportMode uint8

const (
	CAR TransportMode = iota
	MOTORCYCLE
	BUS
	TRAIN
	FLIGHT
	SHIP
	PUBLIC_TRANSPORT
)

func (tm TransportMode) String() string {
	switch tm {
	case CAR:
		return "car"
	case MOTORCYCLE:
		return "motorcycle"
	case BUS:
		return "bus"
	case TRAIN:
		return "train"
	case FLIGHT:
		return "flight"
	case SHIP:
		return "ship"
	case PUBLIC_TRANSPORT:
		return "public_transport"
	default:
		return "unknown"
	}
}

// IsPrivateVehicle. private vehicles pay fuel+toll+parking, every other mode
// pays a tiered fare instead.
func (tm TransportMode) IsPrivateVehicle() bool {
	return tm == CAR || tm == MOTORCYCLE
}

func GetTransportMode(mode string) (TransportMode, bool) {
	switch mode {
	case "car":
		return CAR, true
	case "motorcycle":
		return MOTORCYCLE, true
	case "bus":
		return BUS, true
	case "train":
		return TRAIN, true
	case "flight":
		return FLIGHT, true
	case "ship":
		return SHIP, true
	case "public_transport":
		return PUBLIC_TRANSPORT, true
	default:
		return CAR, false
	}
}

// enum of optimization_mode. selects the scalar the route search minimizes
type OptimizationMode uint8

const (
	FASTEST OptimizationMode = iota
	CHEAPEST
	BALANCED
)

func (om OptimizationMode) String() string {
	switch om {
	case FASTEST:
		return "fastest"
	case CHEAPEST:
		return "cheapest"
	case BALANCED:
		return "balanced"
	default:
		return "unknown"
	}
}

func GetOptimizationMode(mode string) (OptimizationMode, bool) {
	switch mode {
	case "fastest":
		return FASTEST, true
	case "cheapest":
		return CHEAPEST, true
	case "balanced":
		return BALANCED, true
	default:
		return BALANCED, false
	}
}

// enum of traffic congestion level
type TrafficLevel uint8

const (
	TRAFFIC_LOW TrafficLevel = iota
	TRAFFIC_MEDIUM
	TRAFFIC_HIGH
	TRAFFIC_SEVERE
)

func (tl TrafficLevel) String() string {
	switch tl {
	case TRAFFIC_LOW:
		return "low"
	case TRAFFIC_MEDIUM:
		return "medium"
	case TRAFFIC_HIGH:
		return "high"
	case TRAFFIC_SEVERE:
		return "severe"
	default:
		return "unknown"
	}
}

func GetTrafficLevel(level string) (TrafficLevel, bool) {
	switch level {
	case "low":
		return TRAFFIC_LOW, true
	case "medium":
		return TRAFFIC_MEDIUM, true
	case "high":
		return TRAFFIC_HIGH, true
	case "severe":
		return TRAFFIC_SEVERE, true
	default:
		return TRAFFIC_MEDIUM, false
	}
}

const (
	INF_WEIGHT float64 = 1e15
)

const (
	DEBUG = false
)
