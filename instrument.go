// Copyright (c) 2025 Neomantra Corp
//
// Instrument book (component B): four sides per instrument, plus the
// per-instrument state the three detectors accumulate between
// indicator boundaries.
//

package cme

// Instrument is one security's order book and detector state, keyed by
// sec_id in the Registry.
type Instrument struct {
	Symbol     string
	SecID      int32
	TickSize   int64
	PriceShift int64

	OutrightBids Side
	OutrightAsks Side
	ImpliedBids  Side
	ImpliedAsks  Side

	Dirty         bool
	InsideChange  bool
	TradedLocally bool

	BidIcebergs *IcebergDetector
	AskIcebergs *IcebergDetector

	Sweep SweepInfo

	Stops    StopsInfo
	AllStops []StopsInfo
}

// NewInstrument constructs an Instrument for sec_id, wiring its iceberg
// detectors to its own outright sides.
func NewInstrument(symbol string, secID int32, priceShift, tickSize int64) *Instrument {
	inst := &Instrument{
		Symbol:     symbol,
		SecID:      secID,
		TickSize:   tickSize,
		PriceShift: priceShift,
		Sweep:      NewSweepInfo(),
	}
	inst.BidIcebergs = NewIcebergDetector(true, &inst.OutrightBids)
	inst.AskIcebergs = NewIcebergDetector(false, &inst.OutrightAsks)
	return inst
}

// CleanPrice converts a raw wire price to display units.
func (inst *Instrument) CleanPrice(rawPrice int64) int64 {
	if inst.PriceShift == 0 {
		return rawPrice
	}
	return rawPrice / inst.PriceShift
}

// SideFor returns the Side an entry_type belongs to.
func (inst *Instrument) SideFor(entryType EntryType) *Side {
	switch entryType {
	case EntryOutrightBid:
		return &inst.OutrightBids
	case EntryOutrightAsk:
		return &inst.OutrightAsks
	case EntryImpliedBid:
		return &inst.ImpliedBids
	case EntryImpliedAsk:
		return &inst.ImpliedAsks
	default:
		return nil
	}
}
