// Copyright (c) 2025 Neomantra Corp
//
// CSV report writers (component H): one append-only writer per report,
// each flushed on Close. No ecosystem CSV library appears anywhere in
// the retrieved pack, so this leans on encoding/csv directly — see
// DESIGN.md for the justification.
//

package file

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/NimbleMarkets/cme-go"
)

// SweepsWriter appends sweeps.csv rows.
type SweepsWriter struct {
	w *csv.Writer
}

func NewSweepsWriter(w io.Writer) (*SweepsWriter, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"ts", "symbol", "start_price", "end_price", "total_traded", "aggr_side"}); err != nil {
		return nil, err
	}
	return &SweepsWriter{w: cw}, nil
}

func (sw *SweepsWriter) Write(rec cme.SweepRecord) error {
	return sw.w.Write([]string{
		cme.FormatTimestamp(rec.StartTime),
		rec.Symbol,
		strconv.FormatInt(rec.StartPrice, 10),
		strconv.FormatInt(rec.EndPrice, 10),
		strconv.FormatInt(int64(rec.TotalVolume), 10),
		aggrSideString(rec.IsBuy),
	})
}

func (sw *SweepsWriter) Close() error {
	sw.w.Flush()
	return sw.w.Error()
}

func aggrSideString(isBuy bool) string {
	if isBuy {
		return "1"
	}
	return "0"
}

// IcebergsWriter appends icebergs.csv rows.
type IcebergsWriter struct {
	w *csv.Writer
}

func NewIcebergsWriter(w io.Writer) (*IcebergsWriter, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"ts", "symbol", "price", "show_size", "traded_size", "side"}); err != nil {
		return nil, err
	}
	return &IcebergsWriter{w: cw}, nil
}

func (iw *IcebergsWriter) Write(rec cme.IcebergRecord) error {
	return iw.w.Write([]string{
		cme.FormatTimestamp(rec.TS),
		rec.Symbol,
		strconv.FormatInt(rec.Price, 10),
		strconv.FormatInt(int64(rec.ShowQuantity), 10),
		strconv.FormatInt(int64(rec.TotalTraded), 10),
		sideChar(rec.IsBid),
	})
}

func (iw *IcebergsWriter) Close() error {
	iw.w.Flush()
	return iw.w.Error()
}

// sideChar resolves the original implementation's malformed
// `is_buy ? 'B' : 'S'` stream expression to its evidently intended
// output — the literal 'B'/'S' character — per the documented choice.
func sideChar(isBid bool) string {
	if isBid {
		return "B"
	}
	return "S"
}

// StopsWriter appends stops.csv rows.
type StopsWriter struct {
	w *csv.Writer
}

func NewStopsWriter(w io.Writer) (*StopsWriter, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"ts", "exchange_ts", "symbol", "order_id", "trigger_price", "order_size", "traded_size", "side"}); err != nil {
		return nil, err
	}
	return &StopsWriter{w: cw}, nil
}

func (sw *StopsWriter) Write(rec cme.StopRecord) error {
	return sw.w.Write([]string{
		cme.FormatTimestamp(rec.TS),
		cme.FormatTimestamp(rec.ExchangeTS),
		rec.Symbol,
		strconv.FormatUint(rec.OrderID, 10),
		strconv.FormatInt(rec.TriggerPrice, 10),
		strconv.FormatUint(uint64(rec.Size), 10),
		strconv.FormatUint(uint64(rec.TradedSize), 10),
		sideChar(rec.IsBuy),
	})
}

func (sw *StopsWriter) Close() error {
	sw.w.Flush()
	return sw.w.Error()
}
