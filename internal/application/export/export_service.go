// Package export turns listings into XLSX files, stored for download or streamed.
package export

import (
	"context"
	"fmt"
	"time"

	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/finance"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/sales"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/shared"
	xlsx "github.com/EstalynD/only-top-frontend-nest-sub005/internal/infrastructure/export"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/infrastructure/storage"
	"go.uber.org/zap"
)

// ObjectStore keeps generated files and signs download links
type ObjectStore interface {
	Put(ctx context.Context, obj storage.Object) (string, error)
	DownloadURL(ctx context.Context, key, filename string) (string, time.Time, error)
}

// Result is a generated export. URL is set when the file was stored;
// otherwise Data holds the file for streaming.
type Result struct {
	Filename    string
	ContentType string
	Data        []byte
	URL         string
	ExpiresAt   time.Time
}

// Stored reports whether the export is served through a download link
func (r *Result) Stored() bool {
	return r.URL != ""
}

// ExportService builds workbooks and hands them out
type ExportService struct {
	store  ObjectStore // nil streams every export
	loc    *time.Location
	logger *zap.Logger
	now    func() time.Time
}

// NewExportService creates a new export service. store may be nil.
func NewExportService(store ObjectStore, loc *time.Location, logger *zap.Logger) *ExportService {
	if loc == nil {
		loc = time.UTC
	}
	return &ExportService{store: store, loc: loc, logger: logger, now: time.Now}
}

var commissionColumns = []xlsx.Column{
	{Header: "Chatter"},
	{Header: "Modelo"},
	{Header: "Desde", Kind: xlsx.KindDate},
	{Header: "Hasta", Kind: xlsx.KindDate},
	{Header: "Ventas", Kind: xlsx.KindMoney, Total: true},
	{Header: "%", Kind: xlsx.KindPercent},
	{Header: "Comisión", Kind: xlsx.KindMoney, Total: true},
	{Header: "Moneda", Width: 8},
	{Header: "Estado", Width: 12},
}

// Commissions exports a commission listing. label names the period in the filename.
func (s *ExportService) Commissions(ctx context.Context, items []sales.Commission, label string) (*Result, error) {
	if len(items) == 0 {
		return nil, shared.ErrEmptySelection
	}
	rows := make([][]any, len(items))
	for i, c := range items {
		rows[i] = []any{
			c.ChatterNombre,
			c.ModeloNombre,
			c.FechaInicio.In(s.loc),
			c.FechaFin.In(s.loc),
			c.TotalVentas,
			c.Porcentaje,
			c.MontoComision,
			string(c.Moneda),
			c.Estado.DisplayName(),
		}
	}
	data, err := xlsx.WriteXLSX(xlsx.Sheet{Name: "Comisiones", Columns: commissionColumns, Rows: rows})
	if err != nil {
		return nil, err
	}
	return s.deliver(ctx, "comisiones", label, data)
}

var expenseColumns = []xlsx.Column{
	{Header: "Concepto", Width: 32},
	{Header: "Categoría"},
	{Header: "Monto", Kind: xlsx.KindMoney, Total: true},
	{Header: "Moneda", Width: 8},
	{Header: "Estado", Width: 12},
	{Header: "Notas", Width: 40},
}

var summaryColumns = []xlsx.Column{
	{Header: "Categoría"},
	{Header: "Cantidad", Kind: xlsx.KindNumber, Total: true},
	{Header: "Total", Kind: xlsx.KindMoney, Total: true},
}

// FixedExpenses exports a quincena's expenses, with the backend summary on a second sheet
func (s *ExportService) FixedExpenses(ctx context.Context, p finance.Periodo, items []finance.FixedExpense, summary *finance.FixedExpenseSummary) (*Result, error) {
	if len(items) == 0 {
		return nil, shared.ErrEmptySelection
	}
	rows := make([][]any, len(items))
	for i, e := range items {
		rows[i] = []any{e.Concepto, string(e.Categoria), e.Monto, string(e.Moneda), string(e.Estado), e.Notas}
	}
	sheets := []xlsx.Sheet{{Name: "Gastos fijos", Columns: expenseColumns, Rows: rows}}

	if summary != nil && len(summary.PorCategoria) > 0 {
		srows := make([][]any, len(summary.PorCategoria))
		for i, c := range summary.PorCategoria {
			srows[i] = []any{string(c.Categoria), c.Cantidad, c.Total}
		}
		sheets = append(sheets, xlsx.Sheet{Name: "Resumen", Columns: summaryColumns, Rows: srows})
	}

	data, err := xlsx.WriteXLSX(sheets...)
	if err != nil {
		return nil, err
	}
	return s.deliver(ctx, "gastos-fijos", p.Key(), data)
}

// deliver uploads the file when storage is configured. A storage failure
// falls back to streaming so the user still gets the file.
func (s *ExportService) deliver(ctx context.Context, kind, label string, data []byte) (*Result, error) {
	stamp := s.now().In(s.loc)
	filename := fmt.Sprintf("%s-%s.xlsx", kind, label)
	if label == "" {
		filename = fmt.Sprintf("%s-%s.xlsx", kind, stamp.Format("20060102"))
	}
	res := &Result{Filename: filename, ContentType: xlsx.ContentTypeXLSX, Data: data}
	if s.store == nil {
		return res, nil
	}

	key, err := s.store.Put(ctx, storage.Object{
		Key:         fmt.Sprintf("exports/%s/%s/%s", kind, stamp.Format("2006/01/02"), stamp.Format("150405")+"-"+filename),
		Data:        data,
		ContentType: xlsx.ContentTypeXLSX,
		Filename:    filename,
	})
	if err != nil {
		s.logger.Warn("Export upload failed, streaming instead", zap.String("filename", filename), zap.Error(err))
		return res, nil
	}
	url, expires, err := s.store.DownloadURL(ctx, key, filename)
	if err != nil {
		s.logger.Warn("Presigning export failed, streaming instead", zap.String("key", key), zap.Error(err))
		return res, nil
	}

	s.logger.Info("Export stored", zap.String("key", key), zap.Int("bytes", len(data)))
	res.URL, res.ExpiresAt, res.Data = url, expires, nil
	return res, nil
}
