// Copyright (c) 2025 Neomantra Corp

package cme_test

import (
	"github.com/NimbleMarkets/cme-go"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("SweepInfo", func() {
	Context("emission", func() {
		It("emits when the run crosses more than minDepth", func() {
			s := cme.NewSweepInfo()
			s.OnTrade(1, 1, 100, 5, cme.AggressorBuy)
			s.OnTrade(2, 2, 105, 5, cme.AggressorBuy)
			Expect(s.ShouldEmit(4)).To(BeTrue())
			Expect(s.TotalVolume).To(Equal(int32(10)))
			Expect(s.StartPrice).To(Equal(int64(100)))
			Expect(s.EndPrice).To(Equal(int64(105)))
			Expect(s.IsBuy).To(BeTrue())
		})

		It("suppresses emission when the run does not exceed minDepth", func() {
			s := cme.NewSweepInfo()
			s.OnTrade(1, 1, 100, 5, cme.AggressorSell)
			s.OnTrade(2, 2, 99, 5, cme.AggressorSell)
			Expect(s.ShouldEmit(2)).To(BeFalse())
		})

		It("ignores a run that contains a no-aggressor trade", func() {
			s := cme.NewSweepInfo()
			s.OnTrade(1, 1, 100, 5, cme.AggressorBuy)
			s.OnTrade(2, 2, 105, 5, cme.AggressorNone)
			Expect(s.ShouldEmit(0)).To(BeFalse())
		})
	})

	Context("Clear", func() {
		It("resets to a fresh first-aggressor state", func() {
			s := cme.NewSweepInfo()
			s.OnTrade(1, 1, 100, 5, cme.AggressorBuy)
			s.Clear()
			Expect(s.TotalVolume).To(Equal(int32(0)))

			s.OnTrade(9, 9, 50, 1, cme.AggressorSell)
			Expect(s.StartTime).To(Equal(int64(9)))
			Expect(s.IsBuy).To(BeFalse())
		})
	})
})
