// Copyright (c) 2025 Neomantra Corp

package cme_test

import (
	"github.com/NimbleMarkets/cme-go"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("IcebergDetector", func() {
	Context("basic detection", func() {
		It("flags an iceberg when a level replenishes at size after a trade consumes it", func() {
			var bids cme.Side
			bids.Add(0, cme.Level{Price: 100, Quantity: 20})
			d := cme.NewIcebergDetector(true, &bids)

			d.AddTrade(100, 20, false) // sell aggressor hits the bid
			Expect(d.CheckIceberg(1000)).To(BeTrue())
		})

		It("does not flag when the top level moves away from the traded price", func() {
			var bids cme.Side
			bids.Add(0, cme.Level{Price: 100, Quantity: 20})
			d := cme.NewIcebergDetector(true, &bids)

			d.AddTrade(100, 20, false)
			bids.Delete(0)
			bids.Add(0, cme.Level{Price: 99, Quantity: 20})
			Expect(d.CheckIceberg(1000)).To(BeFalse())
		})

		It("does not panic when the watched side is empty", func() {
			var bids cme.Side
			d := cme.NewIcebergDetector(true, &bids)
			d.AddTrade(100, 20, false)
			Expect(d.CheckIceberg(1000)).To(BeFalse())
		})
	})

	Context("finalization", func() {
		It("closes an open iceberg once a less aggressive price supersedes it", func() {
			var asks cme.Side
			asks.Add(0, cme.Level{Price: 100, Quantity: 10})
			d := cme.NewIcebergDetector(false, &asks)

			d.AddTrade(100, 10, true) // buy aggressor lifts the ask
			Expect(d.CheckIceberg(1)).To(BeTrue())
			d.ClearTrade()

			// A new, less aggressive (higher) ask price appears at top;
			// the open iceberg at 100 should close out.
			asks.Delete(0)
			asks.Add(0, cme.Level{Price: 101, Quantity: 5})
			d.CheckIceberg(2)

			finalized := d.Finalized()
			Expect(finalized).To(HaveLen(1))
			Expect(finalized[0].Price).To(Equal(int64(100)))
			Expect(finalized[0].IsBid).To(BeFalse())
		})

		It("moves any still-open iceberg to finalized on FinalizeRemaining", func() {
			var bids cme.Side
			bids.Add(0, cme.Level{Price: 100, Quantity: 10})
			d := cme.NewIcebergDetector(true, &bids)

			d.AddTrade(100, 10, false)
			d.CheckIceberg(5)
			d.FinalizeRemaining()

			Expect(d.Finalized()).To(HaveLen(1))
		})
	})
})
