package entity

import (
	"strings"
	"time"
)

// ShipmentMode is how a shipment travels.
type ShipmentMode string

const (
	ShipmentSea ShipmentMode = "sea"
	ShipmentAir ShipmentMode = "air"
)

// ShipmentStatus is a node in the shipment state machine (spec.md §4.4).
type ShipmentStatus string

const (
	ShipmentBooked          ShipmentStatus = "booked"
	ShipmentDeparted        ShipmentStatus = "departed"
	ShipmentInTransit       ShipmentStatus = "in_transit"
	ShipmentArrived         ShipmentStatus = "arrived"
	ShipmentCustoms         ShipmentStatus = "customs"
	ShipmentOutForDelivery  ShipmentStatus = "out_for_delivery"
	ShipmentDelivered       ShipmentStatus = "delivered"
)

// Shipment tracks a carrier movement of one or more purchase orders.
// Status advances monotonically through the state machine; never rewound.
type Shipment struct {
	ID          int64
	Mode        ShipmentMode
	Carrier     string
	TrackingRef string
	Origin      string
	Destination string
	Status      ShipmentStatus
	ETAInitial  time.Time
	ETACurrent  time.Time
	LastEventAt time.Time
}

// ShipmentEvent is an append-only tracking update for a Shipment.
type ShipmentEvent struct {
	ID          int64
	ShipmentID  int64
	EventCode   string
	Location    string
	EventTime   time.Time
	Source      string
	Description string
}

// eventCodeStatus maps a tracking event code to the status it advances the
// shipment to. Unknown codes leave status unchanged (spec.md §4.4).
var eventCodeStatus = map[string]ShipmentStatus{
	"DEPARTED":            ShipmentDeparted,
	"SAILED":              ShipmentDeparted,
	"FLIGHT_DEPARTED":     ShipmentDeparted,
	"IN_TRANSIT":          ShipmentInTransit,
	"ARRIVED":             ShipmentArrived,
	"LANDED":              ShipmentArrived,
	"CUSTOMS":             ShipmentCustoms,
	"OUT_FOR_DELIVERY":    ShipmentOutForDelivery,
	"DELIVERED":           ShipmentDelivered,
}

// NextStatusForEventCode returns the status an event code advances a
// shipment to, and whether the code was recognised. Matching is
// case-insensitive: carriers send codes in whatever case their feed uses.
func NextStatusForEventCode(code string) (ShipmentStatus, bool) {
	s, ok := eventCodeStatus[strings.ToUpper(code)]
	return s, ok
}
