package decode

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/mtse/marketing-engine/internal/engine"
)

type csvDecoder struct{}

func (csvDecoder) CanDecode(filename string) bool {
	return hasExt(filename, ".csv") || hasExt(filename, ".tsv")
}

func (csvDecoder) Decode(content []byte) (*Result, error) {
	r := csv.NewReader(bytes.NewReader(content))
	r.FieldsPerRecord = -1 // ragged rows are the normalizer's problem
	if bytes.Contains(bytes.SplitN(content, []byte("\n"), 2)[0], []byte("\t")) {
		r.Comma = '\t'
	}
	all, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(all) == 0 {
		return &Result{Table: &engine.Table{}}, nil
	}
	return &Result{Table: &engine.Table{Columns: all[0], Rows: all[1:]}}, nil
}
