// Copyright (c) 2025 Neomantra Corp
//
// MDP 3.0 message framing and indicator bits, per CME's Market Data
// Platform. Adapted from the vendor's packed-struct wire layout.
//

package cme

// MaxLevels is the deepest a Side is tracked, per-side.
const MaxLevels = 10

// TemplateID identifies the shape of a decoded MDP 3.0 message.
type TemplateID uint16

const (
	TemplateBookRefresh      TemplateID = 32
	TemplateOrderBookRefresh TemplateID = 43
	TemplateTradeSummary     TemplateID = 42
	TemplateNoOp             TemplateID = 12
)

// Indicator is the bitset carried by every book-refresh/trade-summary
// message, marking batch boundaries.
type Indicator uint8

const (
	IndicatorLastTrade  Indicator = 0x01
	IndicatorLastVolume Indicator = 0x02
	IndicatorLastQuote  Indicator = 0x04
	IndicatorLastStats  Indicator = 0x08
	IndicatorLastImplied Indicator = 0x10
	IndicatorLastMsg    Indicator = 0x80
)

// Has reports whether bit is set in the indicator byte.
func (ind Indicator) Has(bit Indicator) bool {
	return ind&bit != 0
}

// ActionType is a CmeBookEntry's edit primitive.
type ActionType uint8

const (
	ActionAdd        ActionType = 0
	ActionUpdate     ActionType = 1
	ActionDelete     ActionType = 2
	ActionDeleteThru ActionType = 3
	ActionDeleteFrom ActionType = 4
)

// EntryType identifies which of an instrument's four sides an entry
// belongs to.
type EntryType uint8

const (
	EntryOutrightBid EntryType = '0'
	EntryOutrightAsk EntryType = '1'
	EntryImpliedBid  EntryType = 'E'
	EntryImpliedAsk  EntryType = 'F'
)

// AggressorSide is the side that crossed the spread for a trade entry.
type AggressorSide uint8

const (
	AggressorNone AggressorSide = 0
	AggressorBuy  AggressorSide = 1
	AggressorSell AggressorSide = 2
)

// EtherTypeIP is the IPv4 EtherType (ETH_P_IP, 0x0800) as it reads when
// the ethernet header's two EtherType bytes are decoded little-endian,
// without a network-to-host swap.
const EtherTypeIP = 8
