package batch

import "fmt"

// Location is a recognized stop in the supply chain.
type Location string

const (
	LocationFarm      Location = "Farm"
	LocationWarehouse Location = "Warehouse"
	LocationRetailer  Location = "Retailer"
	LocationShop      Location = "Shop"
)

// Locations lists every recognized location in reporting order.
var Locations = []Location{LocationFarm, LocationWarehouse, LocationRetailer, LocationShop}

// ParseLocation validates a caller-supplied location string.
func ParseLocation(s string) (Location, error) {
	for _, l := range Locations {
		if string(l) == s {
			return l, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidLocation, s)
}

// Status projects a location onto its human-readable batch status.
func (l Location) Status() string {
	switch l {
	case LocationWarehouse:
		return "In Transit to Warehouse"
	case LocationRetailer:
		return "At Retailer"
	case LocationShop:
		return "At Shop"
	default:
		return "Harvested"
	}
}

// HistoryEntry records one state-changing event on a batch.
type HistoryEntry struct {
	Location  Location `json:"location"`
	Timestamp string   `json:"timestamp"`
	Quantity  int      `json:"quantity"`
	Wastage   int      `json:"wastage"`
	Action    string   `json:"action"`
	UpdatedBy string   `json:"updatedBy"`
}

// Batch represents a tracked vegetable batch and its full event history.
// Timestamps are RFC 3339 strings so the record round-trips unchanged
// through the ledger and the HTTP layer.
type Batch struct {
	BatchID         string         `json:"batchId"`
	VegetableType   string         `json:"vegetableType"`
	FarmID          string         `json:"farmId"`
	FarmerName      string         `json:"farmerName"`
	HarvestDate     string         `json:"harvestDate"`
	InitialQuantity int            `json:"initialQuantity"`
	CurrentQuantity int            `json:"currentQuantity"`
	CurrentLocation Location       `json:"currentLocation"`
	Status          string         `json:"status"`
	QRCode          string         `json:"qrCode"`
	PricePerKg      float64        `json:"pricePerKg"`
	CreatedAt       string         `json:"createdAt"`
	LastUpdated     string         `json:"lastUpdated,omitempty"`
	History         []HistoryEntry `json:"history"`
}

// WastageTotal sums the wastage recorded across the batch history.
func (b *Batch) WastageTotal() int {
	total := 0
	for _, h := range b.History {
		total += h.Wastage
	}
	return total
}
