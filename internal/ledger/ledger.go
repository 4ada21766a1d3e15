// Package ledger folds dated records into the summary figures shown on
// ledgers, dashboards and statements. It never mutates anything; every view
// is recomputed from a fresh fetch.
package ledger

import (
	"github.com/nikka005/nirbani-sub001/internal/models"
	"github.com/nikka005/nirbani-sub001/internal/reconcile"
)

// DispatchSummary is the fold over a day's (or period's) dispatches.
type DispatchSummary struct {
	TotalQtyKg         float64 `json:"total_qty_kg"`
	TotalNetReceivable float64 `json:"total_net_receivable"`
	Count              int     `json:"count"`
}

// AggregateDispatches totals quantity and net receivable over dispatches.
func AggregateDispatches(dispatches []models.Dispatch) DispatchSummary {
	var s DispatchSummary
	for _, d := range dispatches {
		s.TotalQtyKg += d.QuantityKg
		s.TotalNetReceivable += d.NetReceivable
	}
	s.TotalQtyKg = reconcile.Round2(s.TotalQtyKg)
	s.TotalNetReceivable = reconcile.Round2(s.TotalNetReceivable)
	s.Count = len(dispatches)
	return s
}

// CollectionSummary is the fold over a day's collections: liters, the kg
// equivalent and quantity-weighted quality averages.
type CollectionSummary struct {
	TotalQtyLiters float64 `json:"total_qty_liters"`
	TotalKg        float64 `json:"total_kg"`
	TotalAmount    float64 `json:"total_amount"`
	AvgFat         float64 `json:"avg_fat"`
	AvgSNF         float64 `json:"avg_snf"`
	Count          int     `json:"count"`
}

// AggregateCollections totals a set of collections and computes the
// quantity-weighted average fat and SNF.
func AggregateCollections(collections []models.MilkCollection) CollectionSummary {
	var s CollectionSummary
	fat := make([]reconcile.Weighted, 0, len(collections))
	snf := make([]reconcile.Weighted, 0, len(collections))
	for _, c := range collections {
		s.TotalQtyLiters += c.Quantity
		s.TotalAmount += c.Amount
		fat = append(fat, reconcile.Weighted{Value: c.Fat, Weight: c.Quantity})
		snf = append(snf, reconcile.Weighted{Value: c.SNF, Weight: c.Quantity})
	}
	s.TotalQtyLiters = reconcile.Round2(s.TotalQtyLiters)
	s.TotalAmount = reconcile.Round2(s.TotalAmount)
	s.TotalKg = reconcile.LitersToKg(s.TotalQtyLiters)
	s.AvgFat = reconcile.WeightedAverage(fat)
	s.AvgSNF = reconcile.WeightedAverage(snf)
	s.Count = len(collections)
	return s
}

// PaymentTotal sums payment amounts.
func PaymentTotal(payments []models.Payment) float64 {
	var total float64
	for _, p := range payments {
		total += p.Amount
	}
	return reconcile.Round2(total)
}

// DairyPaymentTotal sums plant payment amounts.
func DairyPaymentTotal(payments []models.DairyPayment) float64 {
	var total float64
	for _, p := range payments {
		total += p.Amount
	}
	return reconcile.Round2(total)
}

// MilkTracking compares collected and dispatched milk over a period.
type MilkTracking struct {
	CollectedKg  float64 `json:"collected_kg"`
	DispatchedKg float64 `json:"dispatched_kg"`
	DifferenceKg float64 `json:"difference_kg"`
	LossPercent  float64 `json:"loss_percent"`
	Alert        bool    `json:"alert"`
}

// TrackMilk derives the loss figures for collected (kg) vs dispatched (kg).
// The alert fires above reconcile.MilkLossAlertPercent.
func TrackMilk(collectedKg, dispatchedKg float64) MilkTracking {
	loss := reconcile.MilkLossPercent(collectedKg, dispatchedKg)
	return MilkTracking{
		CollectedKg:  reconcile.Round2(collectedKg),
		DispatchedKg: reconcile.Round2(dispatchedKg),
		DifferenceKg: reconcile.Round2(collectedKg - dispatchedKg),
		LossPercent:  loss,
		Alert:        loss > reconcile.MilkLossAlertPercent,
	}
}
