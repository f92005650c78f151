// Command seed pushes the sample batches through a running API instance
// and walks one of them through a location update, doubling as an
// end-to-end smoke check of the backend and chaincode.
package main

import (
	"fmt"
	"os"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

type createBatch struct {
	BatchID         string  `json:"batchId"`
	VegetableType   string  `json:"vegetableType"`
	FarmID          string  `json:"farmId"`
	FarmerName      string  `json:"farmerName"`
	HarvestDate     string  `json:"harvestDate"`
	InitialQuantity int     `json:"initialQuantity"`
	PricePerKg      float64 `json:"pricePerKg"`
}

type updateLocation struct {
	NewLocation     string `json:"newLocation"`
	CurrentQuantity int    `json:"currentQuantity"`
	Wastage         int    `json:"wastage"`
	UpdatedBy       string `json:"updatedBy"`
}

func main() {
	log := logrus.New()

	baseURL := os.Getenv("VEG_API_URL")
	if baseURL == "" {
		baseURL = "http://localhost:3001"
	}
	client := resty.New().SetBaseURL(baseURL)

	samples := []createBatch{
		{"BATCH001", "Tomato", "FARM001", "John Doe", "2025-07-31", 100, 80},
		{"BATCH002", "Carrot", "FARM002", "David", "2025-07-31", 80, 120},
		{"BATCH003", "Onion", "FARM003", "Ahamed", "2025-07-31", 100, 100},
	}

	for _, sample := range samples {
		resp, err := client.R().SetBody(sample).Post("/api/batches")
		if err != nil {
			log.WithError(err).Fatal("API unreachable")
		}
		switch resp.StatusCode() {
		case 201:
			log.WithField("batchId", sample.BatchID).Info("batch seeded")
		case 409:
			log.WithField("batchId", sample.BatchID).Info("batch already on ledger, skipping")
		default:
			log.WithFields(logrus.Fields{
				"batchId": sample.BatchID,
				"status":  resp.StatusCode(),
				"body":    resp.String(),
			}).Fatal("seeding failed")
		}
	}

	// Ship the onion batch to the warehouse with 2kg lost in transit.
	move := updateLocation{NewLocation: "Warehouse", CurrentQuantity: 98, Wastage: 2, UpdatedBy: "FARM003"}
	resp, err := client.R().SetBody(move).Put("/api/batches/BATCH003/location")
	if err != nil {
		log.WithError(err).Fatal("API unreachable")
	}
	if resp.IsError() && resp.StatusCode() != 422 {
		log.WithFields(logrus.Fields{"status": resp.StatusCode(), "body": resp.String()}).Fatal("move failed")
	}

	stats, err := client.R().Get("/api/stats")
	if err != nil {
		log.WithError(err).Fatal("API unreachable")
	}
	fmt.Println(stats.String())
}
