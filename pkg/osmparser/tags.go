package osmparser

import "github.com/paulmach/osm"

var (
	// https://wiki.openstreetmap.org/wiki/OSM_tags_for_routing/Telenav
	acceptedHighway = map[string]struct{}{
		"motorway":       {},
		"motorway_link":  {},
		"trunk":          {},
		"trunk_link":     {},
		"primary":        {},
		"primary_link":   {},
		"secondary":      {},
		"secondary_link": {},
		"tertiary":       {},
		"tertiary_link":  {},
		"residential":    {},
		"living_street":  {},
		"service":        {},
		"road":           {},
		"unclassified":   {},
		"motorroad":      {},
	}

	//https://wiki.openstreetmap.org/wiki/Key:barrier
	// a closed barrier (access=no) marks the edges through it as restricted instead of splitting the road
	acceptedBarrierType = map[string]struct{}{
		"bollard":        {},
		"swing_gate":     {},
		"jersey_barrier": {},
		"lift_gate":      {},
		"block":          {},
		"gate":           {},
	}
)

type direction int8

const (
	bothWays direction = iota
	forwardOnly
	backwardOnly
)

func acceptOsmWay(way *osm.Way) bool {
	if len(way.Nodes) < 2 {
		return false
	}
	if _, ok := acceptedHighway[way.Tags.Find("highway")]; ok {
		return true
	}
	return way.Tags.Find("junction") != ""
}

func isRestricted(value string) bool {
	return value == "no" || value == "private" || value == "restricted"
}

// restrictedForFreight. closed to general traffic or to goods vehicles.
func restrictedForFreight(tags osm.Tags) bool {
	return isRestricted(tags.Find("access")) ||
		isRestricted(tags.Find("motor_vehicle")) ||
		isRestricted(tags.Find("hgv")) ||
		isRestricted(tags.Find("goods"))
}

func wayDirection(tags osm.Tags) direction {
	switch tags.Find("oneway") {
	case "yes", "true", "1":
		return forwardOnly
	case "-1", "reverse":
		return backwardOnly
	case "no", "false", "0":
		return bothWays
	}
	if isRestricted(tags.Find("vehicle:forward")) || isRestricted(tags.Find("motor_vehicle:forward")) {
		return backwardOnly
	}
	if isRestricted(tags.Find("vehicle:backward")) || isRestricted(tags.Find("motor_vehicle:backward")) {
		return forwardOnly
	}
	if j := tags.Find("junction"); j == "roundabout" || j == "circular" {
		return forwardOnly
	}
	if tags.Find("highway") == "motorway" {
		return forwardOnly
	}
	return bothWays
}

func closedBarrier(node *osm.Node) bool {
	_, ok := acceptedBarrierType[node.Tags.Find("barrier")]
	return ok && node.Tags.Find("access") == "no"
}
