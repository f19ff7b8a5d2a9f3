// Copyright (c) 2025 Neomantra Corp

package cme_test

import (
	"github.com/NimbleMarkets/cme-go"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("StopsInfo", func() {
	Context("ConsumeOrders", func() {
		It("builds a chain of strictly smaller order ids than the first trade", func() {
			var s cme.StopsInfo
			s.FirstPrice = 100

			orders := []cme.CmeOrderEntry{
				{OrderID: 500, Qty: 10}, // aggressor
				{OrderID: 400, Qty: 20}, // stop, smaller id, pulled in
			}
			s.ConsumeOrders(1, 100, true, 105, orders)

			Expect(s.Trades).To(HaveLen(2))
			Expect(s.Trades[0].OrderID).To(Equal(uint64(500)))
			Expect(s.Trades[1].OrderID).To(Equal(uint64(400)))
			Expect(s.Trades[1].HighestPrice).To(Equal(int64(105)))
			Expect(s.Trades[1].IsBuy).To(BeTrue())
		})

		It("does not chain an order id larger than the first trade's", func() {
			var s cme.StopsInfo
			orders := []cme.CmeOrderEntry{
				{OrderID: 100, Qty: 10},
				{OrderID: 200, Qty: 20},
			}
			s.ConsumeOrders(1, 100, true, 105, orders)
			Expect(s.Trades).To(HaveLen(1))
		})
	})

	Context("AccrueRestingSize", func() {
		It("grows a chain entry's size when its highest_price and side match", func() {
			s := cme.StopsInfo{
				Trades: []cme.StopsTrade{
					{OrderID: 1, Size: 10},
					{OrderID: 2, Size: 5, HighestPrice: 100, IsBuy: true},
				},
			}
			s.AccrueRestingSize(100, 7, true)
			Expect(s.Trades[1].Size).To(Equal(uint32(12)))
		})

		It("is a no-op with fewer than two trades", func() {
			s := cme.StopsInfo{Trades: []cme.StopsTrade{{OrderID: 1, Size: 10}}}
			s.AccrueRestingSize(100, 7, true)
			Expect(s.Trades[0].Size).To(Equal(uint32(10)))
		})
	})

	Context("Clear", func() {
		It("keeps FirstPrice across a clear", func() {
			s := cme.StopsInfo{FirstPrice: 42, Trades: []cme.StopsTrade{{OrderID: 1}}}
			s.Clear()
			Expect(s.FirstPrice).To(Equal(int64(42)))
			Expect(s.Trades).To(BeEmpty())
		})
	})

	Context("FinalizedRecords", func() {
		It("skips the aggressor entry and uses the chain's start price as trigger", func() {
			s := cme.StopsInfo{
				TS: 1000,
				Trades: []cme.StopsTrade{
					{OrderID: 500, StartPrice: 100},
					{OrderID: 400, ExchangeTime: 5, Size: 20, TradedSize: 20, IsBuy: true},
				},
			}
			records := s.FinalizedRecords("ESZ5")
			Expect(records).To(HaveLen(1))
			Expect(records[0].OrderID).To(Equal(uint64(400)))
			Expect(records[0].TriggerPrice).To(Equal(int64(100)))
			Expect(records[0].Symbol).To(Equal("ESZ5"))
		})

		It("returns nothing for a chain with only the aggressor", func() {
			s := cme.StopsInfo{Trades: []cme.StopsTrade{{OrderID: 500}}}
			Expect(s.FinalizedRecords("ESZ5")).To(BeEmpty())
		})
	})
})
