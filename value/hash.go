package value

import (
	"encoding/binary"
	"hash/maphash"
	"math"
)

// hashSeed is shared so hashes are comparable within a process.
var hashSeed = maphash.MakeSeed()

// Hash returns a 64-bit hash of the value.
// It panics if v is nil.
func (v *Value) Hash() uint64 {
	if v == nil {
		panic("value: Hash called on nil value")
	}

	var h maphash.Hash
	h.SetSeed(hashSeed)
	h.WriteByte(byte(v.Kind))

	var b [8]byte
	switch v.Kind {
	case NullKind:
	case BoolKind:
		if v.Bool {
			h.WriteByte(1)
		} else {
			h.WriteByte(0)
		}
	case IntKind:
		binary.LittleEndian.PutUint64(b[:], uint64(v.Int))
		h.Write(b[:])
	case Float32Kind:
		binary.LittleEndian.PutUint32(b[:4], math.Float32bits(v.Float32))
		h.Write(b[:4])
	case Float64Kind:
		binary.LittleEndian.PutUint64(b[:], math.Float64bits(v.Float64))
		h.Write(b[:])
	case BytesKind:
		binary.LittleEndian.PutUint64(b[:], uint64(len(v.Bytes)))
		h.Write(b[:])
		h.Write(v.Bytes)
	case StringKind:
		binary.LittleEndian.PutUint64(b[:], uint64(len(v.String)))
		h.Write(b[:])
		h.WriteString(v.String)
	case ArrayKind:
		for _, vv := range v.Values {
			binary.LittleEndian.PutUint64(b[:], vv.Hash())
			h.Write(b[:])
		}
	case DictKind:
		for i, field := range v.Fields {
			binary.LittleEndian.PutUint64(b[:], uint64(len(field)))
			h.Write(b[:])
			h.WriteString(field)
			binary.LittleEndian.PutUint64(b[:], v.Values[i].Hash())
			h.Write(b[:])
		}
	}
	return h.Sum64()
}
