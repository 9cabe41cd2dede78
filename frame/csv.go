package frame

import (
	"encoding/csv"
	"io"

	"github.com/koustreak/sqlframe/errs"
)

// WriteCSV encodes the frame to w: a header line with the column names,
// then one line per row. Values are rendered with the same rules as Records.
func (f *Frame) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(f.Records()); err != nil {
		return errs.Wrap(errs.KindUnknown, "frame: csv encoding failed", err)
	}
	return nil
}
