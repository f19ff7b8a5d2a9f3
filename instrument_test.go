// Copyright (c) 2025 Neomantra Corp

package cme_test

import (
	"github.com/NimbleMarkets/cme-go"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Instrument", func() {
	Context("CleanPrice", func() {
		It("divides by price shift", func() {
			inst := cme.NewInstrument("ESZ5", 1, 10000, 25)
			Expect(inst.CleanPrice(45230000)).To(Equal(int64(4523)))
		})
		It("passes through when price shift is zero", func() {
			inst := cme.NewInstrument("ESZ5", 1, 0, 25)
			Expect(inst.CleanPrice(4523)).To(Equal(int64(4523)))
		})
	})

	Context("SideFor", func() {
		It("maps every entry type to its own side", func() {
			inst := cme.NewInstrument("ESZ5", 1, 1, 25)
			Expect(inst.SideFor(cme.EntryOutrightBid)).To(Equal(&inst.OutrightBids))
			Expect(inst.SideFor(cme.EntryOutrightAsk)).To(Equal(&inst.OutrightAsks))
			Expect(inst.SideFor(cme.EntryImpliedBid)).To(Equal(&inst.ImpliedBids))
			Expect(inst.SideFor(cme.EntryImpliedAsk)).To(Equal(&inst.ImpliedAsks))
		})
		It("returns nil for an unknown entry type", func() {
			inst := cme.NewInstrument("ESZ5", 1, 1, 25)
			Expect(inst.SideFor(cme.EntryType('?'))).To(BeNil())
		})
	})

	Context("iceberg wiring", func() {
		It("binds BidIcebergs to the instrument's own outright bid side", func() {
			inst := cme.NewInstrument("ESZ5", 1, 1, 25)
			inst.OutrightBids.Add(0, cme.Level{Price: 100, Quantity: 10})

			// A sell aggressor hits the bid; BidIcebergs watches the bid
			// side, so this level replenishing at the same size and price
			// after the trade is exactly the iceberg signature.
			inst.BidIcebergs.AddTrade(100, 10, false)
			Expect(inst.BidIcebergs.CheckIceberg(1)).To(BeTrue())
		})
	})
})
