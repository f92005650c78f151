package batch

// Statistics is the on-demand aggregate over the full batch set.
type Statistics struct {
	TotalBatches  int            `json:"totalBatches"`
	TotalQuantity int            `json:"totalQuantity"`
	TotalWastage  int            `json:"totalWastage"`
	Locations     map[string]int `json:"locations"`
	Vegetables    map[string]int `json:"vegetables"`
}

// Aggregate recomputes statistics from scratch on every call. The
// Locations map always carries all four known locations; a batch at an
// unrecognized location still counts toward TotalBatches but lands in no
// location bucket.
func Aggregate(batches []*Batch) Statistics {
	stats := Statistics{
		Locations:  make(map[string]int, len(Locations)),
		Vegetables: make(map[string]int),
	}
	for _, l := range Locations {
		stats.Locations[string(l)] = 0
	}

	for _, b := range batches {
		stats.TotalBatches++
		stats.TotalQuantity += b.CurrentQuantity
		stats.TotalWastage += b.WastageTotal()
		if _, known := stats.Locations[string(b.CurrentLocation)]; known {
			stats.Locations[string(b.CurrentLocation)]++
		}
		stats.Vegetables[b.VegetableType]++
	}
	return stats
}
