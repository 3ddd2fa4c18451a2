package encode

import (
	"fmt"
	"io"

	"github.com/ethp2p/fft-recovery/ec/fft"
	"github.com/ethp2p/fft-recovery/ec/field"
)

// WriteStages prints one line per stage as "<name>: [v0, v1, v2, v3]" with
// the names right-aligned
func WriteStages[E field.Element[E]](w io.Writer, stages []Stage[E]) error {
	for _, st := range stages {
		if _, err := fmt.Fprintf(w, "%18s: %s\n", st.Name, fft.Format(st.Values)); err != nil {
			return err
		}
	}
	return nil
}
