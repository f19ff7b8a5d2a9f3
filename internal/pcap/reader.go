// Copyright (c) 2025 Neomantra Corp
//
// ERF capture-file reading and Ethernet/IP/UDP header stripping — a
// thin adapter (component H) between the capture file and the core
// package's MessageScanner.
//

package pcap

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/NimbleMarkets/cme-go"
)

const erfHeaderSize = 16

// Reader pulls ERF-framed packets off a capture stream, yielding the
// CME UDP payload of every Ethernet/IPv4/UDP frame it carries.
type Reader struct {
	r io.Reader
}

// NewReader wraps r, typically the result of cme.MakeCompressedReader.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// Next reads the next ERF record. ok is false when the frame's EtherType
// is not IPv4, or the frame is too short for the Ethernet/IPv4/UDP
// headers and the payload its UDP length declares — a malformed frame,
// which the caller skips rather than treats as fatal. The IP protocol
// field is not checked. err is set for a read failure, including io.EOF
// at the natural end of the stream, and for a record whose length field
// is too short to hold the link-layer padding.
func (r *Reader) Next() (ts int64, payload []byte, ok bool, err error) {
	var hdr [erfHeaderSize]byte
	if _, err := io.ReadFull(r.r, hdr[:]); err != nil {
		return 0, nil, false, err
	}

	tsNanos := binary.LittleEndian.Uint32(hdr[0:4])
	tsSeconds := binary.LittleEndian.Uint32(hdr[4:8])
	rlen := binary.BigEndian.Uint16(hdr[10:12])

	recordLen := int(rlen) - erfHeaderSize
	if recordLen < 2 {
		return 0, nil, false, fmt.Errorf("erf record length %d too short", rlen)
	}

	body := make([]byte, recordLen)
	if _, err := io.ReadFull(r.r, body); err != nil {
		return 0, nil, false, err
	}

	ts = int64(tsSeconds)*1_000_000_000 + int64(tsNanos)
	frame := body[2:] // skip link-layer padding
	payload, ok = stripEthernetIPUDP(frame)
	return ts, payload, ok, nil
}

// ether(14) + ipv4-no-options(20) + udp(8)
const udpPayloadOffset = 14 + 20 + 8

// stripEthernetIPUDP returns frame's UDP payload when frame is an
// Ethernet/IPv4/UDP datagram, per its EtherType and UDP length fields.
func stripEthernetIPUDP(frame []byte) ([]byte, bool) {
	if len(frame) < udpPayloadOffset {
		return nil, false
	}
	// EtherType is read without the usual network-to-host swap: the
	// capture's own parser compares it unconverted, and ETH_P_IP's
	// leading byte happens to equal the constant it compares against.
	etherType := binary.LittleEndian.Uint16(frame[12:14])
	if etherType != cme.EtherTypeIP {
		return nil, false
	}

	udpLenOffset := 14 + 20 + 4
	udpLen := binary.BigEndian.Uint16(frame[udpLenOffset : udpLenOffset+2])
	payloadLen := int(udpLen) - 8
	if payloadLen < 0 || udpPayloadOffset+payloadLen > len(frame) {
		return nil, false
	}
	return frame[udpPayloadOffset : udpPayloadOffset+payloadLen], true
}
