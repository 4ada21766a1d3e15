package ledger

import (
	"testing"

	"github.com/nikka005/nirbani-sub001/internal/models"
)

func TestAggregateDispatches(t *testing.T) {
	dispatches := []models.Dispatch{
		{QuantityKg: 500, NetReceivable: 14800},
		{QuantityKg: 300.5, NetReceivable: 9015},
	}
	s := AggregateDispatches(dispatches)
	if s.TotalQtyKg != 800.5 {
		t.Errorf("TotalQtyKg = %v, want 800.5", s.TotalQtyKg)
	}
	if s.TotalNetReceivable != 23815 {
		t.Errorf("TotalNetReceivable = %v, want 23815", s.TotalNetReceivable)
	}
	if s.Count != 2 {
		t.Errorf("Count = %d, want 2", s.Count)
	}
}

func TestAggregateDispatches_Empty(t *testing.T) {
	s := AggregateDispatches(nil)
	if s.TotalQtyKg != 0 || s.TotalNetReceivable != 0 || s.Count != 0 {
		t.Errorf("empty aggregate = %+v, want zeros", s)
	}
}

func TestAggregateCollections(t *testing.T) {
	collections := []models.MilkCollection{
		{Quantity: 10, Fat: 4.0, SNF: 8.5, Amount: 410},
		{Quantity: 20, Fat: 5.0, SNF: 9.0, Amount: 960},
	}
	s := AggregateCollections(collections)
	if s.TotalQtyLiters != 30 {
		t.Errorf("TotalQtyLiters = %v, want 30", s.TotalQtyLiters)
	}
	if s.TotalKg != 30.9 {
		t.Errorf("TotalKg = %v, want 30.9", s.TotalKg)
	}
	if s.AvgFat != 4.67 {
		t.Errorf("AvgFat = %v, want 4.67", s.AvgFat)
	}
	if s.AvgSNF != 8.83 {
		t.Errorf("AvgSNF = %v, want 8.83", s.AvgSNF)
	}
	if s.TotalAmount != 1370 {
		t.Errorf("TotalAmount = %v, want 1370", s.TotalAmount)
	}
}

func TestAggregateCollections_LitersToKg(t *testing.T) {
	// 100 liters must convert to exactly 103.0 kg
	s := AggregateCollections([]models.MilkCollection{{Quantity: 100, Fat: 4, SNF: 8.5}})
	if s.TotalKg != 103.0 {
		t.Errorf("TotalKg = %v, want 103.0", s.TotalKg)
	}
}

func TestPaymentTotals(t *testing.T) {
	if got := PaymentTotal([]models.Payment{{Amount: 500}, {Amount: 250.50}}); got != 750.5 {
		t.Errorf("PaymentTotal = %v, want 750.5", got)
	}
	if got := DairyPaymentTotal([]models.DairyPayment{{Amount: 10000}}); got != 10000 {
		t.Errorf("DairyPaymentTotal = %v, want 10000", got)
	}
}

func TestTrackMilk(t *testing.T) {
	mt := TrackMilk(103, 100)
	if mt.DifferenceKg != 3 {
		t.Errorf("DifferenceKg = %v, want 3", mt.DifferenceKg)
	}
	if mt.LossPercent != 2.9 {
		t.Errorf("LossPercent = %v, want 2.9", mt.LossPercent)
	}
	if !mt.Alert {
		t.Error("loss of 2.9%% should raise the alert")
	}

	mt = TrackMilk(100, 99.5)
	if mt.Alert {
		t.Errorf("loss of %v%% should not raise the alert", mt.LossPercent)
	}
}
