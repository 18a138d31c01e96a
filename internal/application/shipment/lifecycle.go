// Package shipment implements the shipment tracking usecase (spec.md
// §4.4): creating a shipment and appending tracking events that
// monotonically advance its status.
package shipment

import (
	"context"
	"time"

	"github.com/tomolostboard-sys/moana-logistics/internal/domain"
	"github.com/tomolostboard-sys/moana-logistics/internal/domain/entity"
	"github.com/tomolostboard-sys/moana-logistics/internal/domain/repository"
)

// Repos bundles the repository ports this usecase needs inside a
// transaction.
type Repos struct {
	Shipments  repository.ShipmentRepository
	Events     repository.ShipmentEventRepository
	Containers repository.ContainerRepository
}

// TxRunner executes fn inside one transaction.
type TxRunner interface {
	Run(ctx context.Context, fn func(r Repos) error) error
}

// UseCase implements shipment creation and event-driven status advance.
type UseCase struct {
	tx TxRunner
}

// NewUseCase builds a shipment usecase.
func NewUseCase(tx TxRunner) *UseCase {
	return &UseCase{tx: tx}
}

// CreateInput is the input to Create.
type CreateInput struct {
	Mode        entity.ShipmentMode
	Carrier     string
	TrackingRef string
	Origin      string
	Destination string
	ETAInitial  time.Time
}

// Create books a shipment in status booked.
func (u *UseCase) Create(ctx context.Context, in CreateInput) (*entity.Shipment, error) {
	if in.Mode != entity.ShipmentSea && in.Mode != entity.ShipmentAir {
		return nil, domain.InvalidArgument("mode must be sea or air")
	}
	if in.Carrier == "" || in.Origin == "" || in.Destination == "" {
		return nil, domain.InvalidArgument("carrier, origin and destination are required")
	}

	s := &entity.Shipment{
		Mode:        in.Mode,
		Carrier:     in.Carrier,
		TrackingRef: in.TrackingRef,
		Origin:      in.Origin,
		Destination: in.Destination,
		Status:      entity.ShipmentBooked,
		ETAInitial:  in.ETAInitial,
		ETACurrent:  in.ETAInitial,
		LastEventAt: in.ETAInitial,
	}
	err := u.tx.Run(ctx, func(r Repos) error {
		return r.Shipments.Create(ctx, s)
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// AppendEventInput is the input to AppendEvent.
type AppendEventInput struct {
	ShipmentID  int64
	EventCode   string
	Location    string
	EventTime   time.Time
	Source      string
	Description string
	// RevisedETA, when non-nil, updates eta_current (a carrier-supplied
	// re-estimate); an unrecognised event code may still carry one.
	RevisedETA *time.Time
}

// AppendEvent appends a ShipmentEvent, advances status per the event
// code's mapping if recognised (spec.md §4.4: unknown codes leave
// status unchanged but the event is still appended), and updates
// last_event_at unconditionally.
func (u *UseCase) AppendEvent(ctx context.Context, in AppendEventInput) (*entity.Shipment, error) {
	if in.EventCode == "" {
		return nil, domain.InvalidArgument("event_code is required")
	}

	var result *entity.Shipment
	err := u.tx.Run(ctx, func(r Repos) error {
		s, err := r.Shipments.GetForUpdate(ctx, in.ShipmentID)
		if err != nil {
			return err
		}
		if s == nil {
			return domain.NotFound("shipment not found")
		}

		if err := r.Events.Create(ctx, &entity.ShipmentEvent{
			ShipmentID:  in.ShipmentID,
			EventCode:   in.EventCode,
			Location:    in.Location,
			EventTime:   in.EventTime,
			Source:      in.Source,
			Description: in.Description,
		}); err != nil {
			return err
		}

		order := []entity.ShipmentStatus{
			entity.ShipmentBooked, entity.ShipmentDeparted, entity.ShipmentInTransit, entity.ShipmentArrived,
			entity.ShipmentCustoms, entity.ShipmentOutForDelivery, entity.ShipmentDelivered,
		}
		rank := func(st entity.ShipmentStatus) int {
			for i, o := range order {
				if o == st {
					return i
				}
			}
			return -1
		}
		// Status only moves forward: a code mapping to an earlier (or the
		// same) status is recorded as an event but does not rewind it.
		if next, ok := entity.NextStatusForEventCode(in.EventCode); ok && rank(next) > rank(s.Status) {
			s.Status = next
		}
		s.LastEventAt = in.EventTime
		if in.RevisedETA != nil {
			s.ETACurrent = *in.RevisedETA
		}
		if err := r.Shipments.Update(ctx, s); err != nil {
			return err
		}
		result = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// RegisterContainerInput is the input to RegisterContainer.
type RegisterContainerInput struct {
	ShipmentID      int64
	ContainerNumber string
	SealNumber      *string
	Type            *string
}

// RegisterContainer books a container onto a shipment so a later goods
// receipt can cite it by number (original_source's Container model;
// spec.md §6 carries `containers.container_number` as a unique
// constraint without otherwise describing the entity).
func (u *UseCase) RegisterContainer(ctx context.Context, in RegisterContainerInput) (*entity.Container, error) {
	if in.ContainerNumber == "" {
		return nil, domain.InvalidArgument("container_number is required")
	}

	c := &entity.Container{
		ShipmentID:      in.ShipmentID,
		ContainerNumber: in.ContainerNumber,
		SealNumber:      in.SealNumber,
		Type:            in.Type,
		Status:          entity.ContainerInTransit,
	}
	err := u.tx.Run(ctx, func(r Repos) error {
		s, err := r.Shipments.GetByID(ctx, in.ShipmentID)
		if err != nil {
			return err
		}
		if s == nil {
			return domain.NotFound("shipment not found")
		}
		return r.Containers.Create(ctx, c)
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}
