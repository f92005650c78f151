/*
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"

	"vegtrace/internal/batch"
)

const batchPrefix = "BATCH_"

// SmartContract provides functions for tracking vegetable batches
type SmartContract struct {
	contractapi.Contract
}

// QueryResult pairs a ledger key with the batch stored under it
type QueryResult struct {
	Key    string       `json:"Key"`
	Record *batch.Batch `json:"Record"`
}

// InitLedger seeds the ledger with a few sample batches
func (s *SmartContract) InitLedger(ctx contractapi.TransactionContextInterface) error {
	now := txTime(ctx)

	seeds := []struct {
		id, vegetable, farmID, farmer, harvested string
		quantity                                 int
		price                                    float64
	}{
		{"BATCH001", "Tomato", "FARM001", "John Doe", "2025-07-31", 100, 80},
		{"BATCH002", "Carrot", "FARM002", "David", "2025-07-31", 80, 120},
		{"BATCH003", "Onion", "FARM003", "Ahamed", "2025-07-31", 100, 100},
	}

	for _, seed := range seeds {
		b, err := batch.New(seed.id, seed.vegetable, seed.farmID, seed.farmer, seed.harvested, seed.quantity, seed.price, now)
		if err != nil {
			return err
		}
		if err := s.putBatch(ctx, b); err != nil {
			return err
		}
	}

	// The onion batch ships to the warehouse with 2kg lost in transit.
	b, err := s.getBatch(ctx, "BATCH003")
	if err != nil {
		return err
	}
	if err := b.Move(batch.LocationWarehouse, 98, 2, "FARM003", now); err != nil {
		return err
	}
	return s.putBatch(ctx, b)
}

// CreateBatch issues a new vegetable batch at the farm. Quantities arrive
// as strings because chaincode args are passed serialized.
func (s *SmartContract) CreateBatch(ctx contractapi.TransactionContextInterface, batchID, vegetableType, farmID, farmerName, harvestDate, initialQuantity, pricePerKg string) (*batch.Batch, error) {
	quantity, err := batch.ParseQuantity("initialQuantity", initialQuantity)
	if err != nil {
		return nil, err
	}
	price, err := batch.ParsePrice("pricePerKg", pricePerKg)
	if err != nil {
		return nil, err
	}

	exists, err := s.BatchExists(ctx, batchID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: %s", batch.ErrAlreadyExists, batchID)
	}

	b, err := batch.New(batchID, vegetableType, farmID, farmerName, harvestDate, quantity, price, txTime(ctx))
	if err != nil {
		return nil, err
	}
	if err := s.putBatch(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// UpdateBatchLocation moves a batch and records the remaining quantity and
// any wastage declared for the hop.
func (s *SmartContract) UpdateBatchLocation(ctx contractapi.TransactionContextInterface, batchID, newLocation, currentQuantity, wastage, updatedBy string) (*batch.Batch, error) {
	location, err := batch.ParseLocation(newLocation)
	if err != nil {
		return nil, err
	}
	quantity, err := batch.ParseQuantity("currentQuantity", currentQuantity)
	if err != nil {
		return nil, err
	}
	wasted, err := batch.ParseQuantity("wastage", wastage)
	if err != nil {
		return nil, err
	}

	b, err := s.getBatch(ctx, batchID)
	if err != nil {
		return nil, err
	}
	if err := b.Move(location, quantity, wasted, updatedBy, txTime(ctx)); err != nil {
		return nil, err
	}
	if err := s.putBatch(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// RecordWastage deducts spoiled quantity from a batch without moving it
func (s *SmartContract) RecordWastage(ctx contractapi.TransactionContextInterface, batchID, wastageAmount, reason, updatedBy string) (*batch.Batch, error) {
	amount, err := batch.ParseQuantity("wastageAmount", wastageAmount)
	if err != nil {
		return nil, err
	}

	b, err := s.getBatch(ctx, batchID)
	if err != nil {
		return nil, err
	}
	if err := b.RecordWastage(amount, reason, updatedBy, txTime(ctx)); err != nil {
		return nil, err
	}
	if err := s.putBatch(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// GetBatch retrieves a single batch by its id
func (s *SmartContract) GetBatch(ctx contractapi.TransactionContextInterface, batchID string) (*batch.Batch, error) {
	return s.getBatch(ctx, batchID)
}

// GetAllBatches returns every batch on the ledger in key order. An empty
// ledger yields an empty array, not an error.
func (s *SmartContract) GetAllBatches(ctx contractapi.TransactionContextInterface) ([]QueryResult, error) {
	results := []QueryResult{}
	err := s.scanBatches(ctx, func(key string, b *batch.Batch) {
		results = append(results, QueryResult{Key: b.BatchID, Record: b})
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// TrackBatchByQR resolves the unique batch carrying the given QR code.
// A range scan keeps the lookup identical on LevelDB and CouchDB.
func (s *SmartContract) TrackBatchByQR(ctx contractapi.TransactionContextInterface, qrCode string) (*batch.Batch, error) {
	var match *batch.Batch
	err := s.scanBatches(ctx, func(key string, b *batch.Batch) {
		if match == nil && b.QRCode == qrCode {
			match = b
		}
	})
	if err != nil {
		return nil, err
	}
	if match == nil {
		return nil, fmt.Errorf("%w: no batch found with QR code %s", batch.ErrNotFound, qrCode)
	}
	return match, nil
}

// GetBatchHistory returns a batch's event history in insertion order
func (s *SmartContract) GetBatchHistory(ctx contractapi.TransactionContextInterface, batchID string) ([]batch.HistoryEntry, error) {
	b, err := s.getBatch(ctx, batchID)
	if err != nil {
		return nil, err
	}
	return b.History, nil
}

// GetStatistics aggregates totals, per-location and per-vegetable counts
// over the full batch set. It re-scans on every call.
func (s *SmartContract) GetStatistics(ctx contractapi.TransactionContextInterface) (*batch.Statistics, error) {
	var batches []*batch.Batch
	err := s.scanBatches(ctx, func(key string, b *batch.Batch) {
		batches = append(batches, b)
	})
	if err != nil {
		return nil, err
	}
	stats := batch.Aggregate(batches)
	return &stats, nil
}

// BatchExists reports whether a batch with the given id is on the ledger
func (s *SmartContract) BatchExists(ctx contractapi.TransactionContextInterface, batchID string) (bool, error) {
	data, err := ctx.GetStub().GetState(batchPrefix + batchID)
	if err != nil {
		return false, fmt.Errorf("failed to read batch %s: %v", batchID, err)
	}
	return data != nil, nil
}

func (s *SmartContract) getBatch(ctx contractapi.TransactionContextInterface, batchID string) (*batch.Batch, error) {
	data, err := ctx.GetStub().GetState(batchPrefix + batchID)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch %s: %v", batchID, err)
	}
	if data == nil {
		return nil, fmt.Errorf("%w: %s", batch.ErrNotFound, batchID)
	}

	var b batch.Batch
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("failed to unmarshal batch %s: %v", batchID, err)
	}
	return &b, nil
}

func (s *SmartContract) putBatch(ctx contractapi.TransactionContextInterface, b *batch.Batch) error {
	data, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("failed to marshal batch %s: %v", b.BatchID, err)
	}
	return ctx.GetStub().PutState(batchPrefix+b.BatchID, data)
}

func (s *SmartContract) scanBatches(ctx contractapi.TransactionContextInterface, visit func(key string, b *batch.Batch)) error {
	iterator, err := ctx.GetStub().GetStateByRange(batchPrefix, batchPrefix+"~")
	if err != nil {
		return fmt.Errorf("failed to get batches by range: %v", err)
	}
	defer iterator.Close()

	for iterator.HasNext() {
		response, err := iterator.Next()
		if err != nil {
			return fmt.Errorf("failed during results iteration: %v", err)
		}

		var b batch.Batch
		if err := json.Unmarshal(response.Value, &b); err != nil {
			return fmt.Errorf("failed to unmarshal batch data: %v", err)
		}
		visit(response.Key, &b)
	}
	return nil
}

// txTime prefers the transaction timestamp so endorsers agree on event
// times; MockStub and older stubs may not carry one.
func txTime(ctx contractapi.TransactionContextInterface) time.Time {
	ts, err := ctx.GetStub().GetTxTimestamp()
	if err != nil || ts == nil {
		return time.Now().UTC()
	}
	return ts.AsTime().UTC()
}
