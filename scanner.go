// Copyright (c) 2025 Neomantra Corp
//
// MessageScanner decodes one UDP payload's worth of MDP 3.0 messages
// and dispatches each to a Visitor. The message stream is self-framed
// by msg_length; a message's declared content is parsed independently
// of how far the stream actually advances, matching the wire's
// tolerance for trailing reserved bytes.
//

package cme

// MessageScanner walks the CmeMsgHeader-prefixed message sequence of
// one UDP payload.
type MessageScanner struct {
	header CmeMsgHeader
	buf    []byte
}

// NewMessageScanner parses payload's leading CmeMsgHeader and returns a
// scanner positioned at the first message.
func NewMessageScanner(payload []byte) (*MessageScanner, error) {
	var header CmeMsgHeader
	if err := header.Fill_Raw(payload); err != nil {
		return nil, err
	}
	return &MessageScanner{header: header, buf: payload[CmeMsgHeaderSize:]}, nil
}

// Header returns the payload's CmeMsgHeader.
func (s *MessageScanner) Header() CmeMsgHeader {
	return s.header
}

// Visit decodes every message in the payload in order, dispatching
// each to visitor. A malformed message aborts the remainder of the
// packet, per the error-handling design (abort current packet, skip to
// next), but does not return an error — the caller continues to the
// next packet regardless.
func (s *MessageScanner) Visit(visitor Visitor) error {
	buf := s.buf
	for len(buf) > 0 {
		var msgHeader CmeMessageHeader
		if err := msgHeader.Fill_Raw(buf); err != nil {
			return nil
		}
		if int(msgHeader.MsgLength) < CmeMessageHeaderSize || int(msgHeader.MsgLength) > len(buf) {
			return nil
		}
		body := buf[CmeMessageHeaderSize:msgHeader.MsgLength]

		switch msgHeader.TemplateID {
		case TemplateBookRefresh:
			if err := dispatchBookRefresh(body, visitor); err != nil {
				return err
			}
		case TemplateTradeSummary:
			if err := dispatchTradeSummary(body, visitor); err != nil {
				return err
			}
		case TemplateOrderBookRefresh:
			if err := visitor.OnOrderBookRefresh(); err != nil {
				return err
			}
		case TemplateNoOp:
			if err := visitor.OnNoOp(); err != nil {
				return err
			}
		default:
			// Unknown template: ignored per the dispatch table.
		}

		buf = buf[msgHeader.MsgLength:]
	}
	return nil
}

func dispatchBookRefresh(body []byte, visitor Visitor) error {
	var refresh CmeBookRefresh
	if err := refresh.Fill_Raw(body); err != nil {
		return nil
	}
	rest := body[CmeBookRefreshSize:]
	entries := make([]CmeBookEntry, 0, refresh.NumInGroup)
	for i := uint8(0); i < refresh.NumInGroup; i++ {
		start := int(i) * int(refresh.EntrySize)
		if start+CmeBookEntrySize > len(rest) {
			break
		}
		var entry CmeBookEntry
		if err := entry.Fill_Raw(rest[start:]); err != nil {
			break
		}
		entries = append(entries, entry)
	}
	return visitor.OnBookRefresh(&refresh, entries)
}

func dispatchTradeSummary(body []byte, visitor Visitor) error {
	var summary CmeTradeSummary
	if err := summary.Fill_Raw(body); err != nil {
		return nil
	}
	rest := body[CmeTradeSummarySize:]
	entries := make([]CmeTradeEntry, 0, summary.NumInGroup)
	for i := uint8(0); i < summary.NumInGroup; i++ {
		start := int(i) * int(summary.EntrySize)
		if start+CmeTradeEntrySize > len(rest) {
			break
		}
		var entry CmeTradeEntry
		if err := entry.Fill_Raw(rest[start:]); err != nil {
			break
		}
		entries = append(entries, entry)
	}

	groupOffset := int(summary.NumInGroup) * int(summary.EntrySize)
	var orders []CmeOrderEntry
	if groupOffset+GroupSize8BytesSize <= len(rest) {
		var group GroupSize8Bytes
		if err := group.Fill_Raw(rest[groupOffset:]); err == nil {
			orderBuf := rest[groupOffset+GroupSize8BytesSize:]
			orders = make([]CmeOrderEntry, 0, group.NumInGroup)
			for i := uint8(0); i < group.NumInGroup; i++ {
				start := int(i) * CmeOrderEntrySize
				if start+CmeOrderEntrySize > len(orderBuf) {
					break
				}
				var order CmeOrderEntry
				if err := order.Fill_Raw(orderBuf[start:]); err != nil {
					break
				}
				orders = append(orders, order)
			}
		}
	}

	return visitor.OnTradeSummary(&summary, entries, orders)
}
