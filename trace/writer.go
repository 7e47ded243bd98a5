package trace

import (
	"fmt"
	"io"
)

// WriteText writes accesses as tabular text with columns
// address, access type, and timestamp.
func WriteText(w io.Writer, accesses []Access) error {
	for _, a := range accesses {
		_, err := fmt.Fprintf(w, "0x%08X %s %d\n", a.Address, a.Type, a.Timestamp)
		if err != nil {
			return err
		}
	}

	return nil
}
