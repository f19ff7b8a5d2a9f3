// Copyright (c) 2025 Neomantra Corp
//
// Iceberg detection (component C): one detector per side per instrument,
// watching for a level fully consumed by a trade and immediately
// replenished at the same price.
//

package cme

// tradeTick is the most aggressive trade seen against a side since the
// last LAST_QUOTE boundary.
type tradeTick struct {
	Price    int64
	Quantity int32
}

// IcebergRecord is a finalized iceberg observation, ready for the CSV
// writer once TotalTraded exceeds ShowQuantity.
type IcebergRecord struct {
	TS           int64
	Symbol       string
	Price        int64
	ShowQuantity int32
	TotalTraded  int32
	IsBid        bool
}

type icebergOpen struct {
	ts           int64
	price        int64
	showQuantity int32
	totalTraded  int32
}

// IcebergDetector tracks one side (bid or ask) of one instrument's
// outright book for the "consumed then replenished at the same price"
// signature.
type IcebergDetector struct {
	isBid          bool
	moreAggressive func(candidate, top int64) bool
	outright       *Side

	prevTopLevel Level
	highestTrade tradeTick

	open     map[int64]*icebergOpen
	finalize []IcebergRecord
}

// NewIcebergDetector builds a detector bound to outright, the side of
// the book it watches for replenishment. isBid selects the bid
// comparator (more aggressive = higher price) versus the ask comparator
// (more aggressive = lower price).
func NewIcebergDetector(isBid bool, outright *Side) *IcebergDetector {
	d := &IcebergDetector{
		isBid:    isBid,
		outright: outright,
		open:     make(map[int64]*icebergOpen),
	}
	if isBid {
		d.moreAggressive = func(candidate, top int64) bool { return candidate > top }
	} else {
		d.moreAggressive = func(candidate, top int64) bool { return candidate < top }
	}
	return d
}

// AddTrade records a trade against the opposite side of this book (a
// buy aggressor consumes the ask, a sell aggressor consumes the bid).
// isBuy here selects which direction counts as "more aggressive" for
// this trade, not this detector's own side.
func (d *IcebergDetector) AddTrade(price int64, quantity int32, isBuy bool) {
	moreAggressiveThanSeen := d.highestTrade.Quantity == 0 ||
		(isBuy && price > d.highestTrade.Price) ||
		(!isBuy && price < d.highestTrade.Price)
	if !moreAggressiveThanSeen {
		return
	}
	d.highestTrade = tradeTick{Price: price, Quantity: quantity}
	for _, level := range d.outright.Levels() {
		if level.Price == price {
			d.prevTopLevel = level
		}
	}
}

// ClearTrade resets the per-batch trade tracking, called at LAST_QUOTE
// after CheckIceberg has run.
func (d *IcebergDetector) ClearTrade() {
	d.highestTrade = tradeTick{}
}

// CheckIceberg runs the detection logic at a LAST_QUOTE boundary,
// returning whether this call detected or confirmed an open iceberg.
func (d *IcebergDetector) CheckIceberg(ts int64) bool {
	hasTop := d.outright.Len() > 0
	topLevel := d.outright.At(0)

	isIceberg := d.highestTrade.Quantity != 0 &&
		d.highestTrade.Price == d.prevTopLevel.Price &&
		d.highestTrade.Quantity >= d.prevTopLevel.Quantity &&
		hasTop && topLevel.Price == d.prevTopLevel.Price

	if hasTop {
		for price, o := range d.open {
			if d.moreAggressive(price, topLevel.Price) {
				d.finalize = append(d.finalize, IcebergRecord{
					TS: o.ts, Price: o.price, ShowQuantity: o.showQuantity,
					TotalTraded: o.totalTraded, IsBid: d.isBid,
				})
				delete(d.open, price)
			}
		}
	}

	if isIceberg {
		traded := d.highestTrade.Quantity - (d.prevTopLevel.Quantity - topLevel.Quantity)
		if existing, ok := d.open[topLevel.Price]; ok {
			if topLevel.Quantity < existing.showQuantity {
				existing.showQuantity = topLevel.Quantity
			}
			existing.totalTraded += traded
		} else {
			d.open[topLevel.Price] = &icebergOpen{
				ts: ts, price: topLevel.Price,
				showQuantity: topLevel.Quantity, totalTraded: traded,
			}
		}
	}

	return isIceberg
}

// FinalizeRemaining moves every still-open iceberg to the finalized
// list, for end-of-run emission.
func (d *IcebergDetector) FinalizeRemaining() {
	for price, o := range d.open {
		d.finalize = append(d.finalize, IcebergRecord{
			TS: o.ts, Price: o.price, ShowQuantity: o.showQuantity,
			TotalTraded: o.totalTraded, IsBid: d.isBid,
		})
		delete(d.open, price)
	}
}

// Finalized returns every closed iceberg observation, regardless of
// whether it meets the total_traded > show_quantity emission filter.
func (d *IcebergDetector) Finalized() []IcebergRecord {
	return d.finalize
}
