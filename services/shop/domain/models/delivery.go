package models

import "github.com/google/uuid"

// DeliveryStatus is the shipping lifecycle of one order.
type DeliveryStatus string

const (
	DeliveryStatusReady DeliveryStatus = "READY"
	DeliveryStatusComp  DeliveryStatus = "COMP"
)

// Delivery is the shipping record owned by exactly one Order. The address
// is snapshotted from the member at order time. A completed delivery gates
// order cancellation.
type Delivery struct {
	ID      uuid.UUID
	Address Address
	Status  DeliveryStatus
}

// NewDelivery constructs a Delivery in READY state for the given address.
func NewDelivery(address Address) *Delivery {
	return &Delivery{
		ID:      uuid.New(),
		Address: address,
		Status:  DeliveryStatusReady,
	}
}

// Complete marks the delivery as delivered. After this the owning order
// can no longer be cancelled.
func (d *Delivery) Complete() {
	d.Status = DeliveryStatusComp
}
