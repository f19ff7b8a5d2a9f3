// Copyright (c) 2025 Neomantra Corp
//
// Sweep detection (component D): one accumulator per instrument,
// tracking an aggressive trade run between LAST_TRADE boundaries.
//

package cme

// DefaultMinDepth is the sweep emission threshold when none is
// configured, expressed in the same cleaned (price_shift-divided) units
// as SweepInfo's StartPrice and EndPrice.
const DefaultMinDepth = 0

// SweepInfo accumulates one instrument's in-progress trade run.
type SweepInfo struct {
	StartTime    int64
	ExchangeTime int64
	StartPrice   int64
	EndPrice     int64
	TotalVolume  int32
	IsBuy        bool

	FirstAggressor bool
	IgnoreTrades   bool
}

// NewSweepInfo returns a cleared SweepInfo, ready for its first trade.
func NewSweepInfo() SweepInfo {
	return SweepInfo{FirstAggressor: true}
}

// Clear resets the accumulator to its initial state.
func (s *SweepInfo) Clear() {
	*s = SweepInfo{FirstAggressor: true}
}

// OnTrade folds one trade entry into the run. packetTS is the capture
// timestamp of the enclosing packet; transactTime is the exchange's
// transact_time; cleanPrice is the trade's price after CleanPrice.
func (s *SweepInfo) OnTrade(packetTS int64, transactTime int64, cleanPrice int64, qty int32, aggressor AggressorSide) {
	if aggressor == AggressorNone {
		s.IgnoreTrades = true
	}
	if s.FirstAggressor {
		s.StartTime = packetTS
		s.ExchangeTime = transactTime
		s.StartPrice = cleanPrice
		s.IsBuy = aggressor == AggressorBuy
		s.FirstAggressor = false
	}
	s.TotalVolume += qty
	s.EndPrice = cleanPrice
}

// ShouldEmit reports whether the run's depth exceeds minDepth and it
// was not marked to be ignored.
func (s *SweepInfo) ShouldEmit(minDepth int64) bool {
	if s.IgnoreTrades {
		return false
	}
	if s.IsBuy {
		return s.EndPrice-s.StartPrice > minDepth
	}
	return s.StartPrice-s.EndPrice > minDepth
}

// SweepRecord is one emitted sweep, ready for the CSV writer.
type SweepRecord struct {
	StartTime   int64
	Symbol      string
	StartPrice  int64
	EndPrice    int64
	TotalVolume int32
	IsBuy       bool
}
