package batch

import (
	"fmt"
	"time"
)

const (
	actionCreated = "Batch Created"
)

// New builds a freshly harvested batch at the farm with its creation event
// already in the history. The QR code is derived from the batch id and the
// creation time and never changes afterwards.
func New(batchID, vegetableType, farmID, farmerName, harvestDate string, initialQuantity int, pricePerKg float64, now time.Time) (*Batch, error) {
	if initialQuantity <= 0 {
		return nil, fmt.Errorf("%w: initial quantity must be positive, got %d", ErrInvalidQuantity, initialQuantity)
	}
	if pricePerKg <= 0 {
		return nil, fmt.Errorf("%w: price per kg must be positive, got %v", ErrInvalidQuantity, pricePerKg)
	}

	ts := now.UTC().Format(time.RFC3339)
	return &Batch{
		BatchID:         batchID,
		VegetableType:   vegetableType,
		FarmID:          farmID,
		FarmerName:      farmerName,
		HarvestDate:     harvestDate,
		InitialQuantity: initialQuantity,
		CurrentQuantity: initialQuantity,
		CurrentLocation: LocationFarm,
		Status:          LocationFarm.Status(),
		QRCode:          fmt.Sprintf("QR_%s_%d", batchID, now.UnixMilli()),
		PricePerKg:      pricePerKg,
		CreatedAt:       ts,
		History: []HistoryEntry{{
			Location:  LocationFarm,
			Timestamp: ts,
			Quantity:  initialQuantity,
			Wastage:   0,
			Action:    actionCreated,
			UpdatedBy: farmID,
		}},
	}, nil
}

// Move relocates the batch and records the caller-declared remaining
// quantity and wastage for the hop. The two numbers are only jointly
// bounded by the quantity before the move; they are deliberately not
// reconciled against each other.
func (b *Batch) Move(newLocation Location, newQuantity, wastage int, updatedBy string, now time.Time) error {
	if _, err := ParseLocation(string(newLocation)); err != nil {
		return err
	}
	if newQuantity < 0 {
		return fmt.Errorf("%w: quantity must not be negative, got %d", ErrInvalidQuantity, newQuantity)
	}
	if wastage < 0 {
		return fmt.Errorf("%w: wastage must not be negative, got %d", ErrInvalidQuantity, wastage)
	}
	if newQuantity+wastage > b.CurrentQuantity {
		return fmt.Errorf("%w: total quantity and wastage cannot exceed current quantity", ErrInvalidQuantity)
	}

	b.CurrentLocation = newLocation
	b.CurrentQuantity = newQuantity
	b.Status = newLocation.Status()
	b.appendHistory(HistoryEntry{
		Location:  newLocation,
		Quantity:  newQuantity,
		Wastage:   wastage,
		Action:    fmt.Sprintf("Moved to %s", newLocation),
		UpdatedBy: updatedBy,
	}, now)
	return nil
}

// RecordWastage removes quantity permanently without changing location.
func (b *Batch) RecordWastage(amount int, reason, updatedBy string, now time.Time) error {
	if amount <= 0 {
		return fmt.Errorf("%w: wastage amount must be positive, got %d", ErrInvalidQuantity, amount)
	}
	if amount > b.CurrentQuantity {
		return fmt.Errorf("%w: %d > %d", ErrExceedsQuantity, amount, b.CurrentQuantity)
	}

	b.CurrentQuantity -= amount
	b.appendHistory(HistoryEntry{
		Location:  b.CurrentLocation,
		Quantity:  b.CurrentQuantity,
		Wastage:   amount,
		Action:    fmt.Sprintf("Wastage recorded: %s", reason),
		UpdatedBy: updatedBy,
	}, now)
	return nil
}

func (b *Batch) appendHistory(entry HistoryEntry, now time.Time) {
	ts := now.UTC().Format(time.RFC3339)
	entry.Timestamp = ts
	b.History = append(b.History, entry)
	b.LastUpdated = ts
}
