// Package export writes tabular listings as XLSX workbooks.
package export

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// ContentTypeXLSX is the MIME type of the generated workbooks
const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// CellKind controls the number format applied to a column
type CellKind int

const (
	KindText CellKind = iota
	KindNumber
	KindMoney
	KindDate
	KindPercent
)

// Column describes one sheet column
type Column struct {
	Header string
	Kind   CellKind
	Width  float64 // 0 picks a width from the kind
	Total  bool    // adds a SUM below the last row; numeric kinds only
}

// Sheet is a header row plus data rows. Each row must have one value per column.
type Sheet struct {
	Name    string
	Columns []Column
	Rows    [][]any
}

var ErrNoSheets = errors.New("export: workbook has no sheets")

const (
	moneyFormat   = "#,##0.00"
	percentFormat = "0.00\"%\""
	dateFormat    = "dd/mm/yyyy"
	headerColor   = "4F46E5"
)

// WriteXLSX renders the sheets into a single workbook
func WriteXLSX(sheets ...Sheet) ([]byte, error) {
	if len(sheets) == 0 {
		return nil, ErrNoSheets
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	styles, err := newStyleSet(f)
	if err != nil {
		return nil, err
	}

	for i, sh := range sheets {
		if sh.Name == "" {
			sh.Name = fmt.Sprintf("Hoja%d", i+1)
		}
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sh.Name); err != nil {
				return nil, fmt.Errorf("export: naming sheet %q: %w", sh.Name, err)
			}
		} else if _, err := f.NewSheet(sh.Name); err != nil {
			return nil, fmt.Errorf("export: creating sheet %q: %w", sh.Name, err)
		}
		if err := writeSheet(f, sh, styles); err != nil {
			return nil, fmt.Errorf("export: writing sheet %q: %w", sh.Name, err)
		}
	}
	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("export: serializing workbook: %w", err)
	}
	return buf.Bytes(), nil
}

type styleSet struct {
	header int
	total  int
	kinds  map[CellKind]int
}

func newStyleSet(f *excelize.File) (*styleSet, error) {
	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{headerColor}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("export: header style: %w", err)
	}
	mf := moneyFormat
	total, err := f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Bold: true},
		Border:       []excelize.Border{{Type: "top", Color: "000000", Style: 1}},
		CustomNumFmt: &mf,
	})
	if err != nil {
		return nil, fmt.Errorf("export: total style: %w", err)
	}

	set := &styleSet{header: header, total: total, kinds: map[CellKind]int{}}
	for kind, format := range map[CellKind]string{
		KindMoney:   moneyFormat,
		KindPercent: percentFormat,
		KindDate:    dateFormat,
		KindNumber:  "0.##",
	} {
		fm := format
		id, err := f.NewStyle(&excelize.Style{CustomNumFmt: &fm})
		if err != nil {
			return nil, fmt.Errorf("export: number format %q: %w", format, err)
		}
		set.kinds[kind] = id
	}
	return set, nil
}

func writeSheet(f *excelize.File, sh Sheet, styles *styleSet) error {
	if len(sh.Columns) == 0 {
		return errors.New("no columns")
	}

	headers := make([]any, len(sh.Columns))
	for i, col := range sh.Columns {
		headers[i] = col.Header
	}
	if err := f.SetSheetRow(sh.Name, "A1", &headers); err != nil {
		return err
	}
	lastCol, err := excelize.ColumnNumberToName(len(sh.Columns))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sh.Name, "A1", lastCol+"1", styles.header); err != nil {
		return err
	}

	for r, row := range sh.Rows {
		if len(row) != len(sh.Columns) {
			return fmt.Errorf("row %d has %d values, want %d", r+1, len(row), len(sh.Columns))
		}
		values := make([]any, len(row))
		for c, v := range row {
			values[c] = cellValue(v)
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sh.Name, cell, &values); err != nil {
			return err
		}
	}

	lastRow := len(sh.Rows) + 1
	for i, col := range sh.Columns {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sh.Name, name, name, columnWidth(col)); err != nil {
			return err
		}
		if style, ok := styles.kinds[col.Kind]; ok && lastRow > 1 {
			if err := f.SetCellStyle(sh.Name, name+"2", fmt.Sprintf("%s%d", name, lastRow), style); err != nil {
				return err
			}
		}
		if col.Total && lastRow > 1 && col.Kind != KindText && col.Kind != KindDate {
			cell := fmt.Sprintf("%s%d", name, lastRow+1)
			if err := f.SetCellFormula(sh.Name, cell, fmt.Sprintf("SUM(%s2:%s%d)", name, name, lastRow)); err != nil {
				return err
			}
			if err := f.SetCellStyle(sh.Name, cell, cell, styles.total); err != nil {
				return err
			}
		}
	}

	if err := f.AutoFilter(sh.Name, fmt.Sprintf("A1:%s%d", lastCol, lastRow), nil); err != nil {
		return err
	}
	return f.SetPanes(sh.Name, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

// cellValue converts domain values into types excelize stores natively
func cellValue(v any) any {
	switch val := v.(type) {
	case decimal.Decimal:
		return val.Round(2).InexactFloat64()
	case *decimal.Decimal:
		if val == nil {
			return nil
		}
		return val.Round(2).InexactFloat64()
	case *time.Time:
		if val == nil || val.IsZero() {
			return nil
		}
		return *val
	case time.Time:
		if val.IsZero() {
			return nil
		}
		return val
	case fmt.Stringer:
		return val.String()
	default:
		return v
	}
}

func columnWidth(col Column) float64 {
	if col.Width > 0 {
		return col.Width
	}
	switch col.Kind {
	case KindMoney:
		return 16
	case KindDate:
		return 12
	case KindNumber, KindPercent:
		return 10
	default:
		if w := float64(len([]rune(col.Header))) + 4; w > 18 {
			return w
		}
		return 18
	}
}
