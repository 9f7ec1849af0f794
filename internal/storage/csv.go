package storage

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/san-kum/maxwell/internal/dynamo"
)

var csvHeader = []string{"t", "h", "v", "ep", "ek_t", "ek_r"}

// WriteCSV writes one row per record with a header line. Values use the
// shortest representation that parses back to the same float64.
func WriteCSV(w io.Writer, snap dynamo.Snapshot) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	row := make([]string, len(csvHeader))
	for i := 0; i < snap.Len(); i++ {
		r := snap.Record(i)
		for j, v := range [...]float64{r.Time, r.Height, r.Velocity, r.Potential, r.KineticTrans, r.KineticRot} {
			row[j] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func ReadCSV(r io.Reader) (dynamo.Snapshot, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(csvHeader)

	rows, err := cr.ReadAll()
	if err != nil {
		return dynamo.Snapshot{}, err
	}
	if len(rows) == 0 {
		return dynamo.SnapshotOf(nil), nil
	}

	records := make([]dynamo.Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		var vals [6]float64
		for j, field := range row {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return dynamo.Snapshot{}, fmt.Errorf("line %d, column %s: %w", i+2, csvHeader[j], err)
			}
			vals[j] = v
		}
		records = append(records, dynamo.Record{
			Time:         vals[0],
			Height:       vals[1],
			Velocity:     vals[2],
			Potential:    vals[3],
			KineticTrans: vals[4],
			KineticRot:   vals[5],
		})
	}
	return dynamo.SnapshotOf(records), nil
}
