// Package trace defines the memory access trace format consumed by the cache
// model, together with text and binary codecs and a set of synthetic trace
// generators.
package trace

// AccessType marks an access as a read or a write.
type AccessType uint8

// The two access types. The numeric values are part of the binary trace
// encoding and must not change.
const (
	Read  AccessType = 0
	Write AccessType = 1
)

func (t AccessType) String() string {
	switch t {
	case Read:
		return "READ"
	case Write:
		return "WRITE"
	default:
		return "UNKNOWN"
	}
}

// An Access is one entry of a memory trace. The timestamp is the logical
// position of the access in the originating sequence. It is carried for
// reporting only and never influences simulation decisions.
type Access struct {
	Address   uint64
	Type      AccessType
	Timestamp uint64
}
