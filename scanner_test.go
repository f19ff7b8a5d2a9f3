// Copyright (c) 2025 Neomantra Corp

package cme_test

import (
	"encoding/binary"

	"github.com/NimbleMarkets/cme-go"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// recordingVisitor captures every callback MessageScanner.Visit makes,
// for assertion without standing up a full Dispatcher.
type recordingVisitor struct {
	cme.NullVisitor
	bookRefreshes  int
	tradeSummaries int
	lastEntries    []cme.CmeBookEntry
	lastTrades     []cme.CmeTradeEntry
	lastOrders     []cme.CmeOrderEntry
	orderBookCalls int
	noOpCalls      int
}

func (v *recordingVisitor) OnBookRefresh(header *cme.CmeBookRefresh, entries []cme.CmeBookEntry) error {
	v.bookRefreshes++
	v.lastEntries = entries
	return nil
}

func (v *recordingVisitor) OnTradeSummary(header *cme.CmeTradeSummary, entries []cme.CmeTradeEntry, orders []cme.CmeOrderEntry) error {
	v.tradeSummaries++
	v.lastTrades = entries
	v.lastOrders = orders
	return nil
}

func (v *recordingVisitor) OnOrderBookRefresh() error {
	v.orderBookCalls++
	return nil
}

func (v *recordingVisitor) OnNoOp() error {
	v.noOpCalls++
	return nil
}

// buildBookRefreshPayload assembles one CmeMsgHeader-prefixed packet
// carrying a single template-32 message with one entry.
func buildBookRefreshPayload() []byte {
	entry := make([]byte, cme.CmeBookEntrySize)
	binary.LittleEndian.PutUint64(entry[0:8], uint64(45230000))
	binary.LittleEndian.PutUint32(entry[8:12], 5)
	binary.LittleEndian.PutUint32(entry[12:16], 1) // sec_id
	binary.LittleEndian.PutUint32(entry[16:20], 1)  // rpt_seq
	binary.LittleEndian.PutUint32(entry[20:24], 1)  // num_orders
	entry[24] = 1                                   // price_level
	entry[25] = byte(cme.ActionAdd)
	entry[26] = byte(cme.EntryOutrightBid)

	body := make([]byte, cme.CmeBookRefreshSize)
	binary.LittleEndian.PutUint64(body[0:8], 123) // transact_time
	body[8] = byte(cme.IndicatorLastQuote)
	binary.LittleEndian.PutUint16(body[11:13], uint16(cme.CmeBookEntrySize))
	body[13] = 1 // num_in_group
	body = append(body, entry...)

	msgHeader := make([]byte, cme.CmeMessageHeaderSize)
	binary.LittleEndian.PutUint16(msgHeader[0:2], uint16(cme.CmeMessageHeaderSize+len(body)))
	binary.LittleEndian.PutUint16(msgHeader[4:6], uint16(cme.TemplateBookRefresh))
	msg := append(msgHeader, body...)

	msgHdrPrefix := make([]byte, cme.CmeMsgHeaderSize)
	binary.LittleEndian.PutUint32(msgHdrPrefix[0:4], 1) // seq_num
	return append(msgHdrPrefix, msg...)
}

var _ = Describe("MessageScanner", func() {
	It("decodes a single book-refresh message with one entry", func() {
		payload := buildBookRefreshPayload()
		scanner, err := cme.NewMessageScanner(payload)
		Expect(err).To(BeNil())

		visitor := &recordingVisitor{}
		Expect(scanner.Visit(visitor)).To(Succeed())

		Expect(visitor.bookRefreshes).To(Equal(1))
		Expect(visitor.lastEntries).To(HaveLen(1))
		Expect(visitor.lastEntries[0].Price).To(Equal(int64(45230000)))
		Expect(visitor.lastEntries[0].SecID).To(Equal(int32(1)))
		Expect(visitor.lastEntries[0].ActionType).To(Equal(cme.ActionAdd))
	})

	It("returns an error constructing from a too-short payload", func() {
		_, err := cme.NewMessageScanner([]byte{1, 2, 3})
		Expect(err).ToNot(BeNil())
	})

	It("silently stops at a message claiming a length beyond the buffer", func() {
		payload := buildBookRefreshPayload()
		// Corrupt the one message's declared length to exceed the buffer.
		msgStart := cme.CmeMsgHeaderSize
		binary.LittleEndian.PutUint16(payload[msgStart:msgStart+2], 0xFFFF)

		scanner, err := cme.NewMessageScanner(payload)
		Expect(err).To(BeNil())
		visitor := &recordingVisitor{}
		Expect(scanner.Visit(visitor)).To(Succeed())
		Expect(visitor.bookRefreshes).To(Equal(0))
	})
})
