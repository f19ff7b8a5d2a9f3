// Copyright (c) 2025 Neomantra Corp
//
// Message dispatcher (component G): routes decoded messages to the
// book, iceberg, sweep, and stops state owned by the instrument
// registry, and runs the indicator-bitset boundary logic.
//

package cme

import "sort"

// AnalysisResult is the accumulated output of one capture-file run.
type AnalysisResult struct {
	Sweeps   []SweepRecord
	Icebergs []IcebergRecord
	Stops    []StopRecord

	PacketsProcessed  int
	MessagesProcessed int
}

// Dispatcher implements Visitor over a Registry, applying book-refresh
// entries, feeding the sweep/iceberg/stops detectors from trade
// summaries, and running the LAST_TRADE/LAST_QUOTE/LAST_MSG boundary
// logic after every message.
type Dispatcher struct {
	registry *Registry
	minDepth int64
	packetTS int64

	sweeps []SweepRecord

	packetsProcessed  int
	messagesProcessed int
}

// NewDispatcher builds a Dispatcher over registry, emitting sweeps only
// when their depth exceeds minDepth.
func NewDispatcher(registry *Registry, minDepth int64) *Dispatcher {
	return &Dispatcher{registry: registry, minDepth: minDepth}
}

// BeginPacket records the capture timestamp of the packet about to be
// scanned. Must be called before each packet's MessageScanner.Visit.
func (d *Dispatcher) BeginPacket(ts int64) {
	d.packetTS = ts
	d.packetsProcessed++
}

// OnBookRefresh applies a template-32 message's entries to the
// matching instrument and side, then runs the boundary check.
func (d *Dispatcher) OnBookRefresh(header *CmeBookRefresh, entries []CmeBookEntry) error {
	d.messagesProcessed++
	for _, entry := range entries {
		inst, ok := d.registry.Get(entry.SecID)
		if !ok {
			continue // ErrUnknownSecurity: silently skip the entry
		}

		side := inst.SideFor(entry.EntryType)
		if side == nil {
			continue
		}
		side.Apply(entry.ActionType, entry.PriceLevel, Level{
			Price: entry.Price, Quantity: entry.Size, Orders: entry.NumOrders,
		})

		if entry.PriceLevel == 1 {
			inst.InsideChange = true
		}

		if entry.ActionType == ActionAdd && len(inst.Stops.Trades) > 1 {
			switch entry.EntryType {
			case EntryOutrightBid:
				inst.Stops.AccrueRestingSize(entry.Price, entry.Size, true)
			case EntryOutrightAsk:
				inst.Stops.AccrueRestingSize(entry.Price, entry.Size, false)
			}
		}
	}
	return d.checkBoundary(header.Indicator)
}

// OnTradeSummary feeds a template-42 message's trade entries into the
// sweep and iceberg detectors, consumes the trailing order-entry group
// into the stops detector, then runs the boundary check.
func (d *Dispatcher) OnTradeSummary(header *CmeTradeSummary, entries []CmeTradeEntry, orders []CmeOrderEntry) error {
	d.messagesProcessed++

	var isBuy bool
	var lastPrice int64

	for _, entry := range entries {
		inst, ok := d.registry.Get(entry.SecID)
		if !ok {
			continue
		}

		inst.InsideChange = true
		inst.TradedLocally = true
		price := inst.CleanPrice(entry.Price)

		if inst.Stops.FirstPrice == 0 {
			inst.Stops.FirstPrice = price
		}

		inst.Sweep.OnTrade(d.packetTS, int64(header.TransactTime), price, entry.Qty, entry.AggressorSide)

		switch entry.AggressorSide {
		case AggressorBuy:
			// A buy aggressor lifts the ask; the ask-side detector sees it.
			inst.AskIcebergs.AddTrade(entry.Price, entry.Qty, true)
			isBuy = true
		case AggressorSell:
			inst.BidIcebergs.AddTrade(entry.Price, entry.Qty, false)
			isBuy = false
		}
		lastPrice = price
	}

	if lastDirty := d.registry.LastDirty(); lastDirty != nil && lastDirty.TradedLocally {
		lastDirty.Stops.ConsumeOrders(d.packetTS, int64(header.TransactTime), isBuy, lastPrice, orders)
	}

	return d.checkBoundary(header.Indicator)
}

// OnOrderBookRefresh handles template 43: a documented stub. No
// boundary check runs, matching the source parser's hardcoded-zero
// indicator for this template.
func (d *Dispatcher) OnOrderBookRefresh() error {
	d.messagesProcessed++
	return nil
}

// OnNoOp handles template 12: also a no-op with no boundary check.
func (d *Dispatcher) OnNoOp() error {
	d.messagesProcessed++
	return nil
}

func (d *Dispatcher) OnStreamEnd() error {
	return nil
}

// checkBoundary runs the TRADE, then QUOTE, then MSG boundary logic
// for every dirty instrument, per the indicator bits set on this
// message.
func (d *Dispatcher) checkBoundary(indicator Indicator) error {
	if indicator.Has(IndicatorLastTrade) {
		for _, inst := range d.registry.DirtyInstruments() {
			if inst.Sweep.ShouldEmit(d.minDepth) {
				d.sweeps = append(d.sweeps, SweepRecord{
					StartTime:   inst.Sweep.StartTime,
					Symbol:      inst.Symbol,
					StartPrice:  inst.Sweep.StartPrice,
					EndPrice:    inst.Sweep.EndPrice,
					TotalVolume: inst.Sweep.TotalVolume,
					IsBuy:       inst.Sweep.IsBuy,
				})
			}
			inst.Sweep.Clear()

			if len(inst.Stops.Trades) > 1 {
				inst.AllStops = append(inst.AllStops, inst.Stops)
			}
			inst.Stops.Clear()
		}
	}

	if indicator.Has(IndicatorLastQuote) {
		for _, inst := range d.registry.DirtyInstruments() {
			inst.AskIcebergs.CheckIceberg(d.packetTS)
			inst.BidIcebergs.CheckIceberg(d.packetTS)

			inst.InsideChange = false
			inst.AskIcebergs.ClearTrade()
			inst.BidIcebergs.ClearTrade()
		}
	}

	if indicator.Has(IndicatorLastMsg) {
		d.registry.ClearPacket()
	}

	return nil
}

// Finish finalizes every instrument's remaining open icebergs and
// assembles the run's AnalysisResult: icebergs sorted by timestamp,
// filtered to total_traded > show_quantity; stops expanded per chain,
// skipping each chain's aggressor entry.
func (d *Dispatcher) Finish() AnalysisResult {
	result := AnalysisResult{
		Sweeps:            d.sweeps,
		PacketsProcessed:  d.packetsProcessed,
		MessagesProcessed: d.messagesProcessed,
	}

	for _, inst := range d.registry.Instruments() {
		inst.BidIcebergs.FinalizeRemaining()
		inst.AskIcebergs.FinalizeRemaining()

		icebergs := append(append([]IcebergRecord{}, inst.BidIcebergs.Finalized()...), inst.AskIcebergs.Finalized()...)
		for _, ice := range icebergs {
			if ice.TotalTraded > ice.ShowQuantity {
				ice.Symbol = inst.Symbol
				ice.Price = inst.CleanPrice(ice.Price)
				result.Icebergs = append(result.Icebergs, ice)
			}
		}

		for _, stop := range inst.AllStops {
			result.Stops = append(result.Stops, stop.FinalizedRecords(inst.Symbol)...)
		}
	}

	sort.Slice(result.Icebergs, func(i, j int) bool {
		return result.Icebergs[i].TS < result.Icebergs[j].TS
	})

	return result
}
