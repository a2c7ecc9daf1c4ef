package decode

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/mtse/marketing-engine/internal/engine"
)

type xlsxDecoder struct{}

func (xlsxDecoder) CanDecode(filename string) bool {
	return hasExt(filename, ".xlsx")
}

// Decode reads the first sheet of the workbook.
func (xlsxDecoder) Decode(content []byte) (*Result, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("xlsx has no sheets")
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return &Result{Table: &engine.Table{}}, nil
	}
	return &Result{Table: &engine.Table{Columns: rows[0], Rows: rows[1:]}}, nil
}
