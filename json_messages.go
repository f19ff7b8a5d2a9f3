// Copyright (c) 2025 Neomantra Corp
//
// JSON-lines decoding of MDP 3.0 messages, for the replay-json command
// and for test fixtures that are easier to author as JSON than as raw
// SBE bytes. One JSON object per line; the object shape mirrors the
// wire structs field-for-field.
//

package cme

import (
	"github.com/valyala/fastjson"
)

func entryTypeFromJson(val *fastjson.Value, key string) EntryType {
	b := val.GetStringBytes(key)
	if len(b) == 0 {
		return EntryType(0)
	}
	return EntryType(b[0])
}

// Fill_Json populates r from a JSON object shaped like:
// {"template_id":32,"transact_time":...,"indicator":4,"entries":[...]}
func (r *CmeBookRefresh) Fill_Json(val *fastjson.Value) error {
	r.TransactTime = val.GetUint64("transact_time")
	r.Indicator = Indicator(val.GetUint("indicator"))
	entries := val.GetArray("entries")
	r.NumInGroup = uint8(len(entries))
	return nil
}

// BookEntriesFromJson decodes the "entries" array of a template-32
// JSON line.
func BookEntriesFromJson(val *fastjson.Value) []CmeBookEntry {
	arr := val.GetArray("entries")
	entries := make([]CmeBookEntry, 0, len(arr))
	for _, item := range arr {
		entries = append(entries, CmeBookEntry{
			Price:      item.GetInt64("price"),
			Size:       int32(item.GetInt("size")),
			SecID:      int32(item.GetInt("sec_id")),
			RptSeq:     item.GetUint("rpt_seq"),
			NumOrders:  int32(item.GetInt("num_orders")),
			PriceLevel: uint8(item.GetUint("price_level")),
			ActionType: ActionType(item.GetUint("action_type")),
			EntryType:  entryTypeFromJson(item, "entry_type"),
		})
	}
	return entries
}

// Fill_Json populates r from a JSON object shaped like:
// {"template_id":42,"transact_time":...,"indicator":4,"trades":[...],"orders":[...]}
func (r *CmeTradeSummary) Fill_Json(val *fastjson.Value) error {
	r.TransactTime = val.GetUint64("transact_time")
	r.Indicator = Indicator(val.GetUint("indicator"))
	trades := val.GetArray("trades")
	r.NumInGroup = uint8(len(trades))
	return nil
}

// TradeEntriesFromJson decodes the "trades" array of a template-42 line.
func TradeEntriesFromJson(val *fastjson.Value) []CmeTradeEntry {
	arr := val.GetArray("trades")
	entries := make([]CmeTradeEntry, 0, len(arr))
	for _, item := range arr {
		entries = append(entries, CmeTradeEntry{
			Price:         item.GetInt64("price"),
			Qty:           int32(item.GetInt("qty")),
			SecID:         int32(item.GetInt("sec_id")),
			RptSeq:        item.GetUint("rpt_seq"),
			NumOrders:     int32(item.GetInt("num_orders")),
			AggressorSide: AggressorSide(item.GetUint("aggressor_side")),
			UpdateAction:  uint8(item.GetUint("update_action")),
			EntryType:     entryTypeFromJson(item, "entry_type"),
			EntryID:       item.GetUint("entry_id"),
		})
	}
	return entries
}

// OrderEntriesFromJson decodes the "orders" array of a template-42 line.
func OrderEntriesFromJson(val *fastjson.Value) []CmeOrderEntry {
	arr := val.GetArray("orders")
	orders := make([]CmeOrderEntry, 0, len(arr))
	for _, item := range arr {
		orders = append(orders, CmeOrderEntry{
			OrderID: item.GetUint64("order_id"),
			Qty:     int32(item.GetInt("qty")),
		})
	}
	return orders
}
