package export

import (
	"encoding/json"
	"io"

	"github.com/san-kum/maxwell/internal/dynamo"
	"github.com/san-kum/maxwell/internal/physics"
)

type Data struct {
	ID           string             `json:"id,omitempty"`
	Params       physics.Params     `json:"params"`
	Floor        string             `json:"floor"`
	Dt           float64            `json:"dt"`
	Duration     float64            `json:"duration"`
	Steps        int                `json:"steps"`
	TimeToBottom *float64           `json:"time_to_bottom"`
	Metrics      map[string]float64 `json:"metrics,omitempty"`
	History      dynamo.Snapshot    `json:"history"`
}

func WriteJSON(w io.Writer, d Data) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}
