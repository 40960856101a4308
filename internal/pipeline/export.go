package pipeline

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/kihuha/flighter/internal"
	"github.com/kihuha/flighter/internal/util"
)

// ExportSeedFramesToXLSX writes one sheet per table, named after the table,
// with the column names as the header row. Nil cells are left empty.
func ExportSeedFramesToXLSX(frames internal.SeedFrames, outputPath string) error {
	f := excelize.NewFile()
	defer f.Close()

	defaultSheet := f.GetSheetName(0)
	for i, table := range frames.Tables() {
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, table.Name); err != nil {
				return err
			}
		} else if _, err := f.NewSheet(table.Name); err != nil {
			return err
		}
		if err := writeSheet(f, table); err != nil {
			return fmt.Errorf("write sheet %s: %w", table.Name, err)
		}
	}

	return util.WriteFileAtomic(outputPath, func(w io.Writer) error {
		_, err := f.WriteTo(w)
		return err
	})
}

func writeSheet(f *excelize.File, table internal.Table) error {
	sheet := table.Name
	for i, h := range table.Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}
	for r, row := range table.Rows {
		for c, value := range row {
			if value == nil {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
	}
	return nil
}
