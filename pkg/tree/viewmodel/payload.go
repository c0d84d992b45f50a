package viewmodel

import (
	"bytes"
	"encoding/binary"
	"math"
)

// PayloadFormat tags payloads produced by MimeData. Payloads with any other
// format are refused on drop.
const PayloadFormat = "application/x-treedrag-paths"

// Payload is the drag data handed to the host: opaque bytes plus the format
// they are encoded in.
type Payload struct {
	Format string
	Data   []byte
}

// IsEmpty reports whether p carries no records.
func (p Payload) IsEmpty() bool {
	return len(p.Data) == 0
}

// MimeTypes lists the formats MimeData produces.
func (m *Model) MimeTypes() []string {
	return []string{PayloadFormat}
}

// MimeData packages addrs for a drag.
func (m *Model) MimeData(addrs []Address) Payload {
	return Payload{Format: PayloadFormat, Data: m.Serialize(addrs)}
}

// payloadOrder is the byte order of every int32 in a payload.
var payloadOrder = binary.BigEndian

// Serialize encodes addrs, in order, as records of
//
//	[int32 depth][depth x int32 row]
//
// where the rows run from the root down to the node. Invalid addresses
// encode as depth 0. There is no header; changing the layout breaks
// payloads already handed out.
func (m *Model) Serialize(addrs []Address) []byte {
	paths := make([][]int, 0, len(addrs))
	for _, a := range addrs {
		paths = append(paths, m.PathOf(a))
	}
	return EncodePaths(paths)
}

// Deserialize decodes a Serialize payload against the current tree, one
// Address per record in encoded order. A record whose path leaves the tree
// resolves to the invalid Address. Truncated or otherwise malformed input
// yields nil.
func (m *Model) Deserialize(data []byte) []Address {
	paths, ok := decodePaths(data)
	if !ok {
		return nil
	}
	out := make([]Address, 0, len(paths))
	for _, path := range paths {
		out = append(out, m.AddressAt(path))
	}
	return out
}

// DecodePaths returns the raw root-first paths in data without resolving
// them. ok is false for malformed input.
func DecodePaths(data []byte) (paths [][]int, ok bool) {
	return decodePaths(data)
}

func decodePaths(data []byte) ([][]int, bool) {
	r := bytes.NewReader(data)
	var paths [][]int
	for r.Len() > 0 {
		var depth int32
		if err := binary.Read(r, payloadOrder, &depth); err != nil {
			return nil, false
		}
		if depth < 0 || int64(depth)*4 > int64(r.Len()) {
			return nil, false
		}
		path := make([]int, depth)
		for i := range path {
			var row int32
			if err := binary.Read(r, payloadOrder, &row); err != nil {
				return nil, false
			}
			path[i] = int(row)
		}
		paths = append(paths, path)
	}
	return paths, true
}

// EncodePaths is the inverse of DecodePaths, for hosts that hold textual
// paths rather than addresses.
func EncodePaths(paths [][]int) []byte {
	var buf bytes.Buffer
	for _, path := range paths {
		_ = binary.Write(&buf, payloadOrder, int32(len(path)))
		for _, row := range path {
			if row > math.MaxInt32 || row < math.MinInt32 {
				row = -1
			}
			_ = binary.Write(&buf, payloadOrder, int32(row))
		}
	}
	return buf.Bytes()
}
