// Copyright (c) 2025 Neomantra Corp

package cme_test

import (
	"strings"

	"github.com/NimbleMarkets/cme-go"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("helpers", func() {
	Context("TimestampToTime", func() {
		It("treats the timestamp as nanoseconds since the unix epoch", func() {
			got := cme.TimestampToTime(1000000000)
			Expect(got.Unix()).To(Equal(int64(1)))
		})
	})

	Context("FormatTimestamp", func() {
		It("renders nine digits of nanosecond precision", func() {
			s := cme.FormatTimestamp(1000000000000000123)
			parts := strings.Split(s, ".")
			Expect(parts).To(HaveLen(2))
			Expect(parts[1]).To(HaveLen(9))
			Expect(parts[1]).To(Equal("000000123"))
		})

		It("normalizes a negative nanosecond remainder", func() {
			// -1 ns: one second before the epoch, 999999999ns into it.
			s := cme.FormatTimestamp(-1)
			parts := strings.Split(s, ".")
			Expect(parts[1]).To(Equal("999999999"))
		})
	})
})
