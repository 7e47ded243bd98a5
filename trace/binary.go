package trace

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Binary trace record layout: little-endian uint64 address, one type byte
// (0=READ, 1=WRITE), little-endian uint64 timestamp.
const binaryRecordSize = 17

// WriteBinary writes accesses in the fixed-width binary encoding.
func WriteBinary(w io.Writer, accesses []Access) error {
	var buf [binaryRecordSize]byte

	for _, a := range accesses {
		binary.LittleEndian.PutUint64(buf[0:8], a.Address)
		buf[8] = byte(a.Type)
		binary.LittleEndian.PutUint64(buf[9:17], a.Timestamp)

		if _, err := w.Write(buf[:]); err != nil {
			return err
		}
	}

	return nil
}

// ReadBinary reads all binary records from r. A trailing partial record is a
// malformed-entry error.
func ReadBinary(r io.Reader) ([]Access, error) {
	var accesses []Access
	var buf [binaryRecordSize]byte

	for {
		_, err := io.ReadFull(r, buf[:])
		if errors.Is(err, io.EOF) {
			return accesses, nil
		}

		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: truncated binary record",
				ErrMalformedEntry)
		}

		if err != nil {
			return nil, err
		}

		typeCode := buf[8]
		if typeCode > uint8(Write) {
			return nil, fmt.Errorf("%w: bad type code %d",
				ErrMalformedEntry, typeCode)
		}

		accesses = append(accesses, Access{
			Address:   binary.LittleEndian.Uint64(buf[0:8]),
			Type:      AccessType(typeCode),
			Timestamp: binary.LittleEndian.Uint64(buf[9:17]),
		})
	}
}
