// Copyright (c) 2025 Neomantra Corp

package cme_test

import (
	"strings"

	"github.com/NimbleMarkets/cme-go"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Registry", func() {
	Context("LoadSymbols", func() {
		It("parses well-formed lines and skips blank/malformed ones", func() {
			r := cme.NewRegistry()
			data := "ESZ5,1,10000,25\n\nnot,enough,fields\nCLZ5,2,100,10\n"
			Expect(r.LoadSymbols(strings.NewReader(data))).To(Succeed())

			inst, ok := r.Get(1)
			Expect(ok).To(BeTrue())
			Expect(inst.Symbol).To(Equal("ESZ5"))
			Expect(inst.PriceShift).To(Equal(int64(10000)))

			inst2, ok := r.Get(2)
			Expect(ok).To(BeTrue())
			Expect(inst2.Symbol).To(Equal("CLZ5"))
		})
	})

	Context("Get", func() {
		It("returns (nil, false) for an unknown security id", func() {
			r := cme.NewRegistry()
			Expect(r.LoadSymbols(strings.NewReader("ESZ5,1,10000,25\n"))).To(Succeed())

			inst, ok := r.Get(999)
			Expect(ok).To(BeFalse())
			Expect(inst).To(BeNil())
		})

		It("lazily creates and caches the same instrument across calls", func() {
			r := cme.NewRegistry()
			Expect(r.LoadSymbols(strings.NewReader("ESZ5,1,10000,25\n"))).To(Succeed())

			a, _ := r.Get(1)
			b, _ := r.Get(1)
			Expect(a).To(BeIdenticalTo(b))
		})
	})

	Context("dirty tracking", func() {
		It("marks an instrument dirty once per packet and tracks LastDirty", func() {
			r := cme.NewRegistry()
			Expect(r.LoadSymbols(strings.NewReader("ESZ5,1,10000,25\nCLZ5,2,100,10\n"))).To(Succeed())

			r.Get(1)
			r.Get(2)
			r.Get(1) // already dirty, not re-appended

			Expect(r.DirtyInstruments()).To(HaveLen(2))
			Expect(r.LastDirty().Symbol).To(Equal("CLZ5"))
		})

		It("clears the dirty set and flags at the packet boundary", func() {
			r := cme.NewRegistry()
			Expect(r.LoadSymbols(strings.NewReader("ESZ5,1,10000,25\n"))).To(Succeed())

			inst, _ := r.Get(1)
			Expect(inst.Dirty).To(BeTrue())

			r.ClearPacket()
			Expect(inst.Dirty).To(BeFalse())
			Expect(r.DirtyInstruments()).To(BeEmpty())
			Expect(r.LastDirty()).To(BeNil())
		})
	})

	Context("Instruments", func() {
		It("returns every instrument created so far", func() {
			r := cme.NewRegistry()
			Expect(r.LoadSymbols(strings.NewReader("ESZ5,1,10000,25\nCLZ5,2,100,10\n"))).To(Succeed())
			r.Get(1)
			r.Get(2)
			Expect(r.Instruments()).To(HaveLen(2))
		})
	})
})
