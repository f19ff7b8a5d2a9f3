// Copyright (c) 2025 Neomantra Corp

package cme_test

import (
	"encoding/binary"
	"strings"

	"github.com/NimbleMarkets/cme-go"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func putBookEntry(price int64, size int32, secID int32, priceLevel uint8, action cme.ActionType, entryType cme.EntryType) []byte {
	entry := make([]byte, cme.CmeBookEntrySize)
	binary.LittleEndian.PutUint64(entry[0:8], uint64(price))
	binary.LittleEndian.PutUint32(entry[8:12], uint32(size))
	binary.LittleEndian.PutUint32(entry[12:16], uint32(secID))
	binary.LittleEndian.PutUint32(entry[16:20], 1) // rpt_seq
	binary.LittleEndian.PutUint32(entry[20:24], 1) // num_orders
	entry[24] = priceLevel
	entry[25] = byte(action)
	entry[26] = byte(entryType)
	return entry
}

func bookRefreshMsg(transactTime uint64, indicator cme.Indicator, entries ...[]byte) []byte {
	body := make([]byte, cme.CmeBookRefreshSize)
	binary.LittleEndian.PutUint64(body[0:8], transactTime)
	body[8] = byte(indicator)
	binary.LittleEndian.PutUint16(body[11:13], uint16(cme.CmeBookEntrySize))
	body[13] = byte(len(entries))
	for _, e := range entries {
		body = append(body, e...)
	}

	msgHeader := make([]byte, cme.CmeMessageHeaderSize)
	binary.LittleEndian.PutUint16(msgHeader[0:2], uint16(cme.CmeMessageHeaderSize+len(body)))
	binary.LittleEndian.PutUint16(msgHeader[4:6], uint16(cme.TemplateBookRefresh))
	return append(msgHeader, body...)
}

func putTradeEntry(price int64, qty int32, secID int32, aggr cme.AggressorSide) []byte {
	entry := make([]byte, cme.CmeTradeEntrySize)
	binary.LittleEndian.PutUint64(entry[0:8], uint64(price))
	binary.LittleEndian.PutUint32(entry[8:12], uint32(qty))
	binary.LittleEndian.PutUint32(entry[12:16], uint32(secID))
	binary.LittleEndian.PutUint32(entry[16:20], 1)
	binary.LittleEndian.PutUint32(entry[20:24], 1)
	entry[24] = byte(aggr)
	entry[26] = byte(cme.EntryOutrightBid)
	binary.LittleEndian.PutUint32(entry[27:31], 1)
	return entry
}

func putOrderEntry(orderID uint64, qty int32) []byte {
	entry := make([]byte, cme.CmeOrderEntrySize)
	binary.LittleEndian.PutUint64(entry[0:8], orderID)
	binary.LittleEndian.PutUint32(entry[8:12], uint32(qty))
	return entry
}

func tradeSummaryMsg(transactTime uint64, indicator cme.Indicator, trades [][]byte, orders [][]byte) []byte {
	body := make([]byte, cme.CmeTradeSummarySize)
	binary.LittleEndian.PutUint64(body[0:8], transactTime)
	body[8] = byte(indicator)
	binary.LittleEndian.PutUint16(body[11:13], uint16(cme.CmeTradeEntrySize))
	body[13] = byte(len(trades))
	for _, t := range trades {
		body = append(body, t...)
	}

	group := make([]byte, cme.GroupSize8BytesSize)
	binary.LittleEndian.PutUint16(group[0:2], uint16(cme.CmeOrderEntrySize))
	group[7] = byte(len(orders))
	body = append(body, group...)
	for _, o := range orders {
		body = append(body, o...)
	}

	msgHeader := make([]byte, cme.CmeMessageHeaderSize)
	binary.LittleEndian.PutUint16(msgHeader[0:2], uint16(cme.CmeMessageHeaderSize+len(body)))
	binary.LittleEndian.PutUint16(msgHeader[4:6], uint16(cme.TemplateTradeSummary))
	return append(msgHeader, body...)
}

func packet(msgs ...[]byte) []byte {
	hdr := make([]byte, cme.CmeMsgHeaderSize)
	binary.LittleEndian.PutUint32(hdr[0:4], 1)
	out := hdr
	for _, m := range msgs {
		out = append(out, m...)
	}
	return out
}

var _ = Describe("Dispatcher integration", func() {
	It("runs book-refresh, trade-summary and boundary logic end to end", func() {
		registry := cme.NewRegistry()
		Expect(registry.LoadSymbols(strings.NewReader("ESZ5,1,1,25\n"))).To(Succeed())
		d := cme.NewDispatcher(registry, 0)

		// 1: establish a resting bid of 20 at 100, no boundary.
		d.BeginPacket(1)
		scan1, err := cme.NewMessageScanner(packet(
			bookRefreshMsg(100, 0, putBookEntry(100, 20, 1, 1, cme.ActionAdd, cme.EntryOutrightBid)),
		))
		Expect(err).To(BeNil())
		Expect(scan1.Visit(d)).To(Succeed())

		// 2: a sell aggressor consumes the whole level; LAST_QUOTE closes
		// the batch so the iceberg detector compares against the trade.
		d.BeginPacket(2)
		scan2, err := cme.NewMessageScanner(packet(
			tradeSummaryMsg(200, cme.IndicatorLastQuote,
				[][]byte{putTradeEntry(100, 20, 1, cme.AggressorSell)}, nil),
			bookRefreshMsg(200, cme.IndicatorLastQuote, putBookEntry(100, 20, 1, 1, cme.ActionUpdate, cme.EntryOutrightBid)),
		))
		Expect(err).To(BeNil())
		Expect(scan2.Visit(d)).To(Succeed())

		// 3: replenish again at the same price/size, a second cycle so
		// total_traded exceeds show_quantity by Finish().
		d.BeginPacket(3)
		scan3, err := cme.NewMessageScanner(packet(
			tradeSummaryMsg(300, cme.IndicatorLastQuote,
				[][]byte{putTradeEntry(100, 20, 1, cme.AggressorSell)}, nil),
			bookRefreshMsg(300, cme.IndicatorLastQuote|cme.IndicatorLastMsg, putBookEntry(100, 20, 1, 1, cme.ActionUpdate, cme.EntryOutrightBid)),
		))
		Expect(err).To(BeNil())
		Expect(scan3.Visit(d)).To(Succeed())

		result := d.Finish()
		Expect(result.PacketsProcessed).To(Equal(3))
		Expect(result.Icebergs).To(HaveLen(1))
		Expect(result.Icebergs[0].Symbol).To(Equal("ESZ5"))
		Expect(result.Icebergs[0].IsBid).To(BeTrue())
		Expect(result.Icebergs[0].TotalTraded).To(BeNumerically(">", result.Icebergs[0].ShowQuantity))
	})

	It("skips entries referencing an unknown security id", func() {
		registry := cme.NewRegistry()
		Expect(registry.LoadSymbols(strings.NewReader("ESZ5,1,1,25\n"))).To(Succeed())
		d := cme.NewDispatcher(registry, 0)

		d.BeginPacket(1)
		scan, err := cme.NewMessageScanner(packet(
			bookRefreshMsg(100, cme.IndicatorLastMsg, putBookEntry(100, 20, 999, 1, cme.ActionAdd, cme.EntryOutrightBid)),
		))
		Expect(err).To(BeNil())
		Expect(scan.Visit(d)).To(Succeed())

		result := d.Finish()
		Expect(result.Icebergs).To(BeEmpty())
		Expect(registry.Instruments()).To(BeEmpty())
	})

	It("emits a sweep record when a trade run crosses the minDepth threshold", func() {
		registry := cme.NewRegistry()
		Expect(registry.LoadSymbols(strings.NewReader("CLZ5,7,1,10\n"))).To(Succeed())
		d := cme.NewDispatcher(registry, 1)

		d.BeginPacket(10)
		scan, err := cme.NewMessageScanner(packet(
			tradeSummaryMsg(500, cme.IndicatorLastTrade|cme.IndicatorLastMsg,
				[][]byte{
					putTradeEntry(100, 5, 7, cme.AggressorBuy),
					putTradeEntry(105, 5, 7, cme.AggressorBuy),
				}, nil),
		))
		Expect(err).To(BeNil())
		Expect(scan.Visit(d)).To(Succeed())

		result := d.Finish()
		Expect(result.Sweeps).To(HaveLen(1))
		Expect(result.Sweeps[0].Symbol).To(Equal("CLZ5"))
		Expect(result.Sweeps[0].TotalVolume).To(Equal(int32(10)))
	})
})
