package entity

// Container is a physical shipping container carried by a Shipment
// (supplemental to spec.md §3 — the distilled spec references
// `containers.container_number` in its unique-constraint list at §6
// without defining the entity; this follows the original model).
type Container struct {
	ID              int64
	ShipmentID      int64
	ContainerNumber string // unique
	SealNumber      *string
	Type            *string
	Status          string
}

// ContainerInTransit is the default status a container is booked under.
const ContainerInTransit = "in_transit"
