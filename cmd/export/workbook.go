package main

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/iota-uz/boxoffice/modules/events/domain/aggregates/event"
	"github.com/iota-uz/boxoffice/modules/orders/domain/aggregates/order"
)

type (
	eventRow = event.Event
	orderRow = order.Order
)

const dateLayout = "2006-01-02 15:04"

var (
	eventHeader = []string{"ID", "Slug", "Name", "Venue", "Starts at", "Status", "Capacity", "Sold", "Remaining", "Currency"}
	orderHeader = []string{"ID", "Reference", "Customer", "Email", "Status", "Event ID", "Tickets", "Total", "Currency", "Created at"}
)

// workbook streams rows into an .xlsx file. The default sheet is reused for
// the first sheet requested.
type workbook struct {
	f      *excelize.File
	header int
	sheets int
}

func newWorkbook() *workbook {
	return &workbook{f: excelize.NewFile()}
}

type sheet struct {
	sw   *excelize.StreamWriter
	next int
}

func (w *workbook) Sheet(name string, header []string) (*sheet, error) {
	if w.sheets == 0 {
		if err := w.f.SetSheetName(w.f.GetSheetName(0), name); err != nil {
			return nil, err
		}
		style, err := w.f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		if err != nil {
			return nil, err
		}
		w.header = style
	} else if _, err := w.f.NewSheet(name); err != nil {
		return nil, err
	}
	w.sheets++

	sw, err := w.f.NewStreamWriter(name)
	if err != nil {
		return nil, err
	}
	if err := sw.SetColWidth(1, len(header), 18); err != nil {
		return nil, err
	}
	if err := sw.SetPanes(&excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return nil, err
	}
	cells := make([]interface{}, len(header))
	for i, h := range header {
		cells[i] = excelize.Cell{StyleID: w.header, Value: h}
	}
	s := &sheet{sw: sw, next: 1}
	if err := s.Append(cells); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *sheet) Append(values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, s.next)
	if err != nil {
		return err
	}
	if err := s.sw.SetRow(cell, values); err != nil {
		return fmt.Errorf("row %d: %w", s.next, err)
	}
	s.next++
	return nil
}

// Rows is the number of data rows written, header excluded.
func (s *sheet) Rows() int {
	return s.next - 2
}

func (s *sheet) Flush() error {
	return s.sw.Flush()
}

func (w *workbook) SaveAs(path string) error {
	return w.f.SaveAs(path)
}

func (w *workbook) Close() error {
	return w.f.Close()
}

func eventCells(e event.Event) []interface{} {
	return []interface{}{
		e.ID(),
		e.Slug(),
		e.Name(),
		e.Venue(),
		e.StartsAt().UTC().Format(dateLayout),
		string(e.Status()),
		e.Capacity(),
		e.Sold(),
		e.Remaining(),
		e.Currency(),
	}
}

func orderCells(o order.Order) []interface{} {
	return []interface{}{
		o.ID(),
		o.Reference(),
		o.Customer().Name,
		o.Customer().Email,
		string(o.Status()),
		o.EventID(),
		o.Tickets(),
		o.Total().InexactFloat64(),
		o.Currency(),
		o.CreatedAt().UTC().Format(dateLayout),
	}
}
