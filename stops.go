// Copyright (c) 2025 Neomantra Corp
//
// Stops detection (component E): derives candidate chained stop orders
// from the passive order-id list that follows each trade summary.
//

package cme

// StopsTrade is one link in a stops chain: the aggressor (index 0) or
// a derived stop order pulled in by it.
type StopsTrade struct {
	ExchangeTime int64
	OrderID      uint64
	Size         uint32
	TradedSize   uint32
	StartPrice   int64
	HighestPrice int64
	IsBuy        bool
}

// StopsInfo accumulates one instrument's in-progress stops chain.
type StopsInfo struct {
	TS         int64
	FirstPrice int64
	Trades     []StopsTrade
}

// Clear empties the trade chain and its timestamp. FirstPrice is
// deliberately left untouched: the source's stops detector never
// re-derives it once set, so a chain on the same instrument later in
// the run keeps using the first price ever observed for it.
func (s *StopsInfo) Clear() {
	s.Trades = nil
	s.TS = 0
}

// ConsumeOrders walks one trade summary's order-entry group, opening
// or extending stop candidates. isBuy and highestPrice come from the
// trade-entry loop that preceded this group — by construction that is
// only the *last* trade entry's aggressor direction and price, which
// this preserves rather than tracking per-entry.
func (s *StopsInfo) ConsumeOrders(packetTS int64, transactTime int64, isBuy bool, highestPrice int64, orders []CmeOrderEntry) {
	var orderTotal int32
	for _, o := range orders {
		if o.Qty > orderTotal {
			if len(s.Trades) == 0 ||
				(s.Trades[len(s.Trades)-1].OrderID != o.OrderID && s.Trades[0].OrderID > o.OrderID) {
				if len(s.Trades) == 0 {
					s.TS = packetTS
				}
				s.Trades = append(s.Trades, StopsTrade{
					StartPrice: s.FirstPrice,
					OrderID:    o.OrderID,
				})
			}
			last := &s.Trades[len(s.Trades)-1]
			last.ExchangeTime = transactTime
			last.Size += uint32(o.Qty)
			last.TradedSize += uint32(o.Qty)
			last.IsBuy = isBuy
			last.HighestPrice = highestPrice
			orderTotal = o.Qty
		} else {
			orderTotal -= o.Qty
		}
	}
}

// AccrueRestingSize credits resting size left behind by a partially
// filled stop: called on every book-refresh Add, it grows the size of
// the first chain entry whose highest_price matches the added level and
// whose side agrees with the entry's own direction. It does nothing
// while the chain holds fewer than two entries.
func (s *StopsInfo) AccrueRestingSize(price int64, qty int32, isBidEntry bool) {
	if len(s.Trades) <= 1 {
		return
	}
	for i := range s.Trades {
		t := &s.Trades[i]
		if price != t.HighestPrice {
			continue
		}
		if (t.IsBuy && isBidEntry) || (!t.IsBuy && !isBidEntry) {
			t.Size += uint32(qty)
			break
		}
	}
}

// StopRecord is one emitted stop, ready for the CSV writer.
type StopRecord struct {
	TS           int64
	ExchangeTS   int64
	Symbol       string
	OrderID      uint64
	TriggerPrice int64
	Size         uint32
	TradedSize   uint32
	IsBuy        bool
}

// FinalizedRecords expands a closed StopsInfo into its emitted rows,
// skipping index 0 (the aggressor).
func (s StopsInfo) FinalizedRecords(symbol string) []StopRecord {
	if len(s.Trades) < 2 {
		return nil
	}
	trigger := s.Trades[0].StartPrice
	records := make([]StopRecord, 0, len(s.Trades)-1)
	for _, t := range s.Trades[1:] {
		records = append(records, StopRecord{
			TS:           s.TS,
			ExchangeTS:   t.ExchangeTime,
			Symbol:       symbol,
			OrderID:      t.OrderID,
			TriggerPrice: trigger,
			Size:         t.Size,
			TradedSize:   t.TradedSize,
			IsBuy:        t.IsBuy,
		})
	}
	return records
}
