// Copyright (c) 2025 Neomantra Corp

package file

import (
	"fmt"
	"io"

	"github.com/segmentio/encoding/json"

	"github.com/NimbleMarkets/cme-go"
	"github.com/NimbleMarkets/cme-go/internal/pcap"
)

// WriteCaptureAsJson decodes sourceFile's MDP 3.0 messages and writes
// one JSON line per book-refresh or trade-summary message to writer, in
// capture order. Other templates produce no output.
func WriteCaptureAsJson(sourceFile string, forceZstdInput bool, writer io.Writer) error {
	captureFile, closer, err := cme.MakeCompressedReader(sourceFile, forceZstdInput)
	if err != nil {
		return fmt.Errorf("opening capture file: %w", err)
	}
	if closer != nil {
		defer closer.Close()
	}

	reader := pcap.NewReader(captureFile)
	visitor := NewJsonWriterVisitor(writer)

	for {
		ts, payload, ok, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("reading capture: %w", err)
		}
		if !ok {
			continue
		}
		scanner, err := cme.NewMessageScanner(payload)
		if err != nil {
			continue
		}
		visitor.packetTS = ts
		if err := scanner.Visit(visitor); err != nil {
			return fmt.Errorf("json print failed: %w", err)
		}
	}
	return nil
}

// WriteAsJson marshals val as JSON to writer, followed by a newline.
func WriteAsJson[T any](val *T, writer io.Writer) error {
	jstr, err := json.Marshal(val)
	if err != nil {
		return err
	}
	if _, err := writer.Write(jstr); err != nil {
		return err
	}
	_, err = writer.Write([]byte{'\n'})
	return err
}

type bookEntryLine struct {
	Price      int64  `json:"price"`
	Size       int32  `json:"size"`
	SecID      int32  `json:"sec_id"`
	RptSeq     uint32 `json:"rpt_seq"`
	NumOrders  int32  `json:"num_orders"`
	PriceLevel uint8  `json:"price_level"`
	ActionType uint8  `json:"action_type"`
	EntryType  string `json:"entry_type"`
}

type bookRefreshLine struct {
	TemplateID   uint16          `json:"template_id"`
	PacketTS     int64           `json:"packet_ts"`
	TransactTime uint64          `json:"transact_time"`
	Indicator    uint8           `json:"indicator"`
	Entries      []bookEntryLine `json:"entries"`
}

type tradeEntryLine struct {
	Price         int64  `json:"price"`
	Qty           int32  `json:"qty"`
	SecID         int32  `json:"sec_id"`
	RptSeq        uint32 `json:"rpt_seq"`
	NumOrders     int32  `json:"num_orders"`
	AggressorSide uint8  `json:"aggressor_side"`
	UpdateAction  uint8  `json:"update_action"`
	EntryType     string `json:"entry_type"`
	EntryID       uint32 `json:"entry_id"`
}

type orderEntryLine struct {
	OrderID uint64 `json:"order_id"`
	Qty     int32  `json:"qty"`
}

type tradeSummaryLine struct {
	TemplateID   uint16           `json:"template_id"`
	PacketTS     int64            `json:"packet_ts"`
	TransactTime uint64           `json:"transact_time"`
	Indicator    uint8            `json:"indicator"`
	Trades       []tradeEntryLine `json:"trades"`
	Orders       []orderEntryLine `json:"orders"`
}

// JsonWriterVisitor implements cme.Visitor, marshaling every decoded
// book-refresh and trade-summary message as one JSON line; template 43
// and 12 messages are not written.
type JsonWriterVisitor struct {
	writer   io.Writer
	packetTS int64
}

func NewJsonWriterVisitor(writer io.Writer) *JsonWriterVisitor {
	return &JsonWriterVisitor{writer: writer}
}

func (v *JsonWriterVisitor) OnBookRefresh(header *cme.CmeBookRefresh, entries []cme.CmeBookEntry) error {
	line := bookRefreshLine{
		TemplateID:   uint16(cme.TemplateBookRefresh),
		PacketTS:     v.packetTS,
		TransactTime: header.TransactTime,
		Indicator:    uint8(header.Indicator),
	}
	for _, e := range entries {
		line.Entries = append(line.Entries, bookEntryLine{
			Price: e.Price, Size: e.Size, SecID: e.SecID, RptSeq: e.RptSeq,
			NumOrders: e.NumOrders, PriceLevel: e.PriceLevel,
			ActionType: uint8(e.ActionType), EntryType: string(rune(e.EntryType)),
		})
	}
	return WriteAsJson(&line, v.writer)
}

func (v *JsonWriterVisitor) OnTradeSummary(header *cme.CmeTradeSummary, entries []cme.CmeTradeEntry, orders []cme.CmeOrderEntry) error {
	line := tradeSummaryLine{
		TemplateID:   uint16(cme.TemplateTradeSummary),
		PacketTS:     v.packetTS,
		TransactTime: header.TransactTime,
		Indicator:    uint8(header.Indicator),
	}
	for _, e := range entries {
		line.Trades = append(line.Trades, tradeEntryLine{
			Price: e.Price, Qty: e.Qty, SecID: e.SecID, RptSeq: e.RptSeq,
			NumOrders: e.NumOrders, AggressorSide: uint8(e.AggressorSide),
			UpdateAction: e.UpdateAction, EntryType: string(rune(e.EntryType)), EntryID: e.EntryID,
		})
	}
	for _, o := range orders {
		line.Orders = append(line.Orders, orderEntryLine{OrderID: o.OrderID, Qty: o.Qty})
	}
	return WriteAsJson(&line, v.writer)
}

func (v *JsonWriterVisitor) OnOrderBookRefresh() error {
	return nil
}

func (v *JsonWriterVisitor) OnNoOp() error {
	return nil
}

func (v *JsonWriterVisitor) OnStreamEnd() error {
	return nil
}
