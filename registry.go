// Copyright (c) 2025 Neomantra Corp
//
// Instrument registry (component F): maps security ids to Instrument
// state, lazily creating instruments from the symbol file and tracking
// the per-packet dirty set.
//

package cme

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// SymbolInfo is one line of the symbol file.
type SymbolInfo struct {
	Symbol     string
	PriceShift int64
	TickSize   int64
}

// Registry owns every Instrument seen during a run, keyed by sec_id,
// plus the per-packet dirty set the dispatcher drains at LAST_MSG.
type Registry struct {
	symbols     map[int32]SymbolInfo
	instruments map[int32]*Instrument
	dirty       []*Instrument
}

// NewRegistry returns an empty Registry; call LoadSymbols before use.
func NewRegistry() *Registry {
	return &Registry{
		symbols:     make(map[int32]SymbolInfo),
		instruments: make(map[int32]*Instrument),
	}
}

// LoadSymbols reads cme_ids.txt-formatted lines of the form
// "symbol,exchange_id,price_shift,tick_size" from rd. Blank or malformed
// lines are skipped.
func (r *Registry) LoadSymbols(rd io.Reader) error {
	scanner := bufio.NewScanner(rd)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Split(line, ",")
		if len(fields) != 4 {
			continue
		}
		secID, err := strconv.ParseInt(strings.TrimSpace(fields[1]), 10, 32)
		if err != nil {
			continue
		}
		priceShift, err := strconv.ParseInt(strings.TrimSpace(fields[2]), 10, 64)
		if err != nil {
			continue
		}
		tickSize, err := strconv.ParseInt(strings.TrimSpace(fields[3]), 10, 64)
		if err != nil {
			continue
		}
		r.symbols[int32(secID)] = SymbolInfo{
			Symbol:     strings.TrimSpace(fields[0]),
			PriceShift: priceShift,
			TickSize:   tickSize,
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading symbol file: %w", err)
	}
	return nil
}

// Get returns secID's instrument, lazily creating it from the symbol
// table on first reference. It marks the instrument dirty and appends
// it to the packet-dirty list, once per packet. Returns (nil, false)
// when secID is absent from the symbol table — ErrUnknownSecurity.
func (r *Registry) Get(secID int32) (*Instrument, bool) {
	inst, ok := r.instruments[secID]
	if !ok {
		sym, known := r.symbols[secID]
		if !known {
			return nil, false
		}
		inst = NewInstrument(sym.Symbol, secID, sym.PriceShift, sym.TickSize)
		r.instruments[secID] = inst
	}
	if !inst.Dirty {
		inst.Dirty = true
		r.dirty = append(r.dirty, inst)
	}
	return inst, true
}

// DirtyInstruments returns the instruments touched so far this packet.
func (r *Registry) DirtyInstruments() []*Instrument {
	return r.dirty
}

// LastDirty returns the most recently dirtied instrument this packet,
// or nil if none. The dispatcher's trade-summary handler uses this to
// find the order-entry group's owning instrument, mirroring the
// original parser's use of the packet-dirty list's last entry rather
// than re-resolving sec_id from the order group itself (which carries
// no sec_id of its own).
func (r *Registry) LastDirty() *Instrument {
	if len(r.dirty) == 0 {
		return nil
	}
	return r.dirty[len(r.dirty)-1]
}

// ClearPacket clears every dirty instrument's flag and empties the
// packet-dirty list, called at the LAST_MSG boundary.
func (r *Registry) ClearPacket() {
	for _, inst := range r.dirty {
		inst.Dirty = false
	}
	r.dirty = r.dirty[:0]
}

// Instruments returns every instrument the registry has created, for
// end-of-run report assembly. Order is unspecified.
func (r *Registry) Instruments() []*Instrument {
	all := make([]*Instrument, 0, len(r.instruments))
	for _, inst := range r.instruments {
		all = append(all, inst)
	}
	return all
}
