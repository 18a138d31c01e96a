package dto

import "time"

// CreateShipmentRequest is the body for POST /shipments.
type CreateShipmentRequest struct {
	Mode        string    `json:"mode"`
	Carrier     string    `json:"carrier"`
	TrackingRef string    `json:"tracking_ref"`
	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	ETAInitial  time.Time `json:"eta_initial"`
}

// ShipmentResponse is a Shipment in list/read responses.
type ShipmentResponse struct {
	ID          int64     `json:"id"`
	Mode        string    `json:"mode"`
	Carrier     string    `json:"carrier"`
	TrackingRef string    `json:"tracking_ref"`
	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	Status      string    `json:"status"`
	ETAInitial  time.Time `json:"eta_initial"`
	ETACurrent  time.Time `json:"eta_current"`
	LastEventAt time.Time `json:"last_event_at"`
}

// AppendShipmentEventRequest is the body for POST /shipments/{id}/events.
type AppendShipmentEventRequest struct {
	EventCode   string     `json:"event_code"`
	Location    string     `json:"location"`
	EventTime   time.Time  `json:"event_time"`
	Source      string     `json:"source"`
	Description string     `json:"description,omitempty"`
	RevisedETA  *time.Time `json:"revised_eta,omitempty"`
}

// RegisterContainerRequest is the body for POST /shipments/{id}/containers.
type RegisterContainerRequest struct {
	ContainerNumber string  `json:"container_number"`
	SealNumber      *string `json:"seal_number,omitempty"`
	Type            *string `json:"type,omitempty"`
}

// ContainerResponse is a Container in responses.
type ContainerResponse struct {
	ID              int64   `json:"id"`
	ShipmentID      int64   `json:"shipment_id"`
	ContainerNumber string  `json:"container_number"`
	SealNumber      *string `json:"seal_number,omitempty"`
	Type            *string `json:"type,omitempty"`
	Status          string  `json:"status"`
}
