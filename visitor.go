// Copyright (c) 2025 Neomantra Corp

package cme

// Visitor receives decoded MDP 3.0 messages from a MessageScanner in
// capture order. Implementations mutate instrument and detector state;
// the MessageScanner itself holds none.
type Visitor interface {
	OnBookRefresh(header *CmeBookRefresh, entries []CmeBookEntry) error
	OnTradeSummary(header *CmeTradeSummary, entries []CmeTradeEntry, orders []CmeOrderEntry) error
	OnOrderBookRefresh() error
	OnNoOp() error
	OnStreamEnd() error
}
