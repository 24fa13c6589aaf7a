package pkg

// enum of routing objective
type Objective uint8

const (
	FASTEST Objective = iota
	GREENEST
	SAFEST
)

var Objectives = [...]Objective{FASTEST, GREENEST, SAFEST}

func (o Objective) String() string {
	switch o {
	case FASTEST:
		return "fastest"
	case GREENEST:
		return "greenest"
	case SAFEST:
		return "safest"
	default:
		return "unknown"
	}
}

func GetObjective(mode string) (Objective, bool) {
	switch mode {
	case "fastest":
		return FASTEST, true
	case "greenest":
		return GREENEST, true
	case "safest":
		return SAFEST, true
	default:
		return FASTEST, false
	}
}

const (
	CARBON_PER_KM            = 0.2
	LOW_BATTERY_THRESHOLD    = 25.0
	LOW_BATTERY_PENALTY_KM   = 3.0
	RESTRICTED_EDGE_PENALTY  = 10000.0
	MAX_AQI                  = 500.0
	DEFAULT_BATTERY_PERCENT  = 100.0
	ROAD_DETOUR_BASE         = 1.08
	ROAD_DETOUR_MAX_TRAFFIC  = 0.18
	ROAD_DETOUR_TRAFFIC_GAIN = 0.4
)

// delivery status
const (
	STATUS_PENDING  = "pending"
	STATUS_ASSIGNED = "assigned"
)
