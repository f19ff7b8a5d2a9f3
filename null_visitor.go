// Copyright (c) 2025 Neomantra Corp

package cme

// NullVisitor implements all of Visitor as no-ops. Useful for
// copy/pasting to one's own implementation.
type NullVisitor struct{}

func (v *NullVisitor) OnBookRefresh(header *CmeBookRefresh, entries []CmeBookEntry) error {
	return nil
}

func (v *NullVisitor) OnTradeSummary(header *CmeTradeSummary, entries []CmeTradeEntry, orders []CmeOrderEntry) error {
	return nil
}

func (v *NullVisitor) OnOrderBookRefresh() error {
	return nil
}

func (v *NullVisitor) OnNoOp() error {
	return nil
}

func (v *NullVisitor) OnStreamEnd() error {
	return nil
}
