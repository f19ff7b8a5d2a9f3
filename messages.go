// Copyright (c) 2025 Neomantra Corp
//
// MDP 3.0 wire structs and their little-endian raw decoders. Layouts
// per CME's Market Data Platform binary encoding.
//

package cme

import "encoding/binary"

// CmeMsgHeader prefixes every UDP payload's message sequence.
type CmeMsgHeader struct {
	SeqNum   uint32
	SendTime uint64
}

const CmeMsgHeaderSize = 12

func (h *CmeMsgHeader) Fill_Raw(b []byte) error {
	if len(b) < CmeMsgHeaderSize {
		return unexpectedBytesError(len(b), CmeMsgHeaderSize)
	}
	h.SeqNum = binary.LittleEndian.Uint32(b[0:4])
	h.SendTime = binary.LittleEndian.Uint64(b[4:12])
	return nil
}

// CmeMessageHeader prefixes every individual MDP 3.0 message.
type CmeMessageHeader struct {
	MsgLength   uint16
	BlockLength uint16
	TemplateID  TemplateID
	SchemaID    uint16
	VersionID   uint16
}

const CmeMessageHeaderSize = 10

func (h *CmeMessageHeader) Fill_Raw(b []byte) error {
	if len(b) < CmeMessageHeaderSize {
		return unexpectedBytesError(len(b), CmeMessageHeaderSize)
	}
	h.MsgLength = binary.LittleEndian.Uint16(b[0:2])
	h.BlockLength = binary.LittleEndian.Uint16(b[2:4])
	h.TemplateID = TemplateID(binary.LittleEndian.Uint16(b[4:6]))
	h.SchemaID = binary.LittleEndian.Uint16(b[6:8])
	h.VersionID = binary.LittleEndian.Uint16(b[8:10])
	return nil
}

// CmeBookRefresh is template 32's fixed header.
type CmeBookRefresh struct {
	TransactTime uint64
	Indicator    Indicator
	EntrySize    uint16
	NumInGroup   uint8
}

const CmeBookRefreshSize = 14

func (r *CmeBookRefresh) Fill_Raw(b []byte) error {
	if len(b) < CmeBookRefreshSize {
		return unexpectedBytesError(len(b), CmeBookRefreshSize)
	}
	r.TransactTime = binary.LittleEndian.Uint64(b[0:8])
	r.Indicator = Indicator(b[8])
	// b[9:11] is padding.
	r.EntrySize = binary.LittleEndian.Uint16(b[11:13])
	r.NumInGroup = b[13]
	return nil
}

// CmeBookEntry is one repeating group entry of a book-refresh message.
type CmeBookEntry struct {
	Price      int64
	Size       int32
	SecID      int32
	RptSeq     uint32
	NumOrders  int32
	PriceLevel uint8
	ActionType ActionType
	EntryType  EntryType
}

const CmeBookEntrySize = 27

func (e *CmeBookEntry) Fill_Raw(b []byte) error {
	if len(b) < CmeBookEntrySize {
		return unexpectedBytesError(len(b), CmeBookEntrySize)
	}
	e.Price = int64(binary.LittleEndian.Uint64(b[0:8]))
	e.Size = int32(binary.LittleEndian.Uint32(b[8:12]))
	e.SecID = int32(binary.LittleEndian.Uint32(b[12:16]))
	e.RptSeq = binary.LittleEndian.Uint32(b[16:20])
	e.NumOrders = int32(binary.LittleEndian.Uint32(b[20:24]))
	e.PriceLevel = b[24]
	e.ActionType = ActionType(b[25])
	e.EntryType = EntryType(b[26])
	return nil
}

// CmeTradeSummary is template 42's fixed header; identical layout to
// CmeBookRefresh.
type CmeTradeSummary struct {
	TransactTime uint64
	Indicator    Indicator
	EntrySize    uint16
	NumInGroup   uint8
}

const CmeTradeSummarySize = CmeBookRefreshSize

func (r *CmeTradeSummary) Fill_Raw(b []byte) error {
	if len(b) < CmeTradeSummarySize {
		return unexpectedBytesError(len(b), CmeTradeSummarySize)
	}
	r.TransactTime = binary.LittleEndian.Uint64(b[0:8])
	r.Indicator = Indicator(b[8])
	r.EntrySize = binary.LittleEndian.Uint16(b[11:13])
	r.NumInGroup = b[13]
	return nil
}

// CmeTradeEntry is one repeating group entry of a trade-summary message.
type CmeTradeEntry struct {
	Price         int64
	Qty           int32
	SecID         int32
	RptSeq        uint32
	NumOrders     int32
	AggressorSide AggressorSide
	UpdateAction  uint8
	EntryType     EntryType
	EntryID       uint32
}

const CmeTradeEntrySize = 31

func (e *CmeTradeEntry) Fill_Raw(b []byte) error {
	if len(b) < CmeTradeEntrySize {
		return unexpectedBytesError(len(b), CmeTradeEntrySize)
	}
	e.Price = int64(binary.LittleEndian.Uint64(b[0:8]))
	e.Qty = int32(binary.LittleEndian.Uint32(b[8:12]))
	e.SecID = int32(binary.LittleEndian.Uint32(b[12:16]))
	e.RptSeq = binary.LittleEndian.Uint32(b[16:20])
	e.NumOrders = int32(binary.LittleEndian.Uint32(b[20:24]))
	e.AggressorSide = AggressorSide(b[24])
	e.UpdateAction = b[25]
	e.EntryType = EntryType(b[26])
	e.EntryID = binary.LittleEndian.Uint32(b[27:31])
	return nil
}

// GroupSize8Bytes prefixes the order-entry group following a trade
// summary's trade entries.
type GroupSize8Bytes struct {
	EntrySize  uint16
	NumInGroup uint8
}

const GroupSize8BytesSize = 8

func (g *GroupSize8Bytes) Fill_Raw(b []byte) error {
	if len(b) < GroupSize8BytesSize {
		return unexpectedBytesError(len(b), GroupSize8BytesSize)
	}
	g.EntrySize = binary.LittleEndian.Uint16(b[0:2])
	// b[2:7] is padding.
	g.NumInGroup = b[7]
	return nil
}

// CmeOrderEntry is one passive/aggressor order referenced by a trade.
type CmeOrderEntry struct {
	OrderID uint64
	Qty     int32
}

const CmeOrderEntrySize = 16

func (o *CmeOrderEntry) Fill_Raw(b []byte) error {
	if len(b) < CmeOrderEntrySize {
		return unexpectedBytesError(len(b), CmeOrderEntrySize)
	}
	o.OrderID = binary.LittleEndian.Uint64(b[0:8])
	o.Qty = int32(binary.LittleEndian.Uint32(b[8:12]))
	return nil
}
