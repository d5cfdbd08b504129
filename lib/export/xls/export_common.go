package xlsexport

import (
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

// column колонка выгрузки: заголовок, ширина и значение из записи
type column[T any] struct {
	title string
	width float64
	value func(item T) interface{}
}

// sheetWriter построчная запись таблицы на один лист
type sheetWriter[T any] struct {
	f       *excelize.File
	sheet   string
	columns []column[T]
	row     int
}

func newSheetWriter[T any](f *excelize.File, sheet string, columns []column[T]) *sheetWriter[T] {
	return &sheetWriter[T]{f: f, sheet: sheet, columns: columns}
}

func (w *sheetWriter[T]) writeHeader() error {
	w.row++
	style, err := w.f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Font:      &excelize.Font{Bold: true, Family: "Calibri", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"DDEBF7"}},
	})
	if err != nil {
		return err
	}
	for idx, col := range w.columns {
		name, err := excelize.ColumnNumberToName(idx + 1)
		if err != nil {
			return err
		}
		if err = w.f.SetColWidth(w.sheet, name, name, col.width); err != nil {
			return err
		}
		if err = w.setCell(idx+1, col.title); err != nil {
			return errors.Wrapf(err, "колонка %s", col.title)
		}
	}
	return w.styleRow(style)
}

// writeRow строка данных со стилем style
func (w *sheetWriter[T]) writeRow(item T, style int) error {
	w.row++
	for idx, col := range w.columns {
		if err := w.setCell(idx+1, col.value(item)); err != nil {
			return errors.Wrapf(err, "строка %d, колонка %s", w.row, col.title)
		}
	}
	return w.styleRow(style)
}

func (w *sheetWriter[T]) freezeHeader() error {
	return w.f.SetPanes(w.sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})
}

func (w *sheetWriter[T]) setCell(col int, value interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, w.row)
	if err != nil {
		return err
	}
	return w.f.SetCellValue(w.sheet, cell, value)
}

func (w *sheetWriter[T]) styleRow(style int) error {
	first, err := excelize.CoordinatesToCellName(1, w.row)
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(w.columns), w.row)
	if err != nil {
		return err
	}
	return w.f.SetCellStyle(w.sheet, first, last, style)
}

// dataStyle перенос строк в ячейках с данными, описание работ бывает длинным
func dataStyle(f *excelize.File, fillColor string) (int, error) {
	style := &excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "top", WrapText: true},
		Font:      &excelize.Font{Family: "Calibri", Size: 11},
	}
	if fillColor != "" {
		style.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{fillColor}}
	}
	return f.NewStyle(style)
}
