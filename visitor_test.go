// Copyright (c) 2025 Neomantra Corp

package cme_test

import (
	"github.com/NimbleMarkets/cme-go"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("NullVisitor", func() {
	It("implements Visitor as no-ops", func() {
		var v cme.Visitor = &cme.NullVisitor{}
		Expect(v.OnBookRefresh(&cme.CmeBookRefresh{}, nil)).To(Succeed())
		Expect(v.OnTradeSummary(&cme.CmeTradeSummary{}, nil, nil)).To(Succeed())
		Expect(v.OnOrderBookRefresh()).To(Succeed())
		Expect(v.OnNoOp()).To(Succeed())
		Expect(v.OnStreamEnd()).To(Succeed())
	})
})
