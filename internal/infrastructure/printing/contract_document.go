package printing

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/contract"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/modelo"
)

//go:embed templates/contract.html
var templateFS embed.FS

// ContractData is bound to the contract template
type ContractData struct {
	Contract    contract.Contract
	Modelo      *modelo.Modelo // optional; the contract carries the name
	AgencyName  string
	GeneratedAt time.Time
}

// ContractDocument renders modelo contracts as HTML and, with a renderer, PDF
type ContractDocument struct {
	tmpl     *template.Template
	renderer PDFRenderer
}

// NewContractDocument parses the embedded template. renderer may be nil,
// in which case only HTML is available.
func NewContractDocument(loc *time.Location, renderer PDFRenderer) (*ContractDocument, error) {
	tmpl, err := template.New("contract.html").Funcs(FuncMap(loc)).ParseFS(templateFS, "templates/contract.html")
	if err != nil {
		return nil, fmt.Errorf("parsing contract template: %w", err)
	}
	return &ContractDocument{tmpl: tmpl, renderer: renderer}, nil
}

// CanRenderPDF reports whether a PDF renderer is configured
func (d *ContractDocument) CanRenderPDF() bool {
	return d.renderer != nil
}

// HTML renders the printable contract
func (d *ContractDocument) HTML(data ContractData) (string, error) {
	if data.AgencyName == "" {
		data.AgencyName = "OnlyTop"
	}
	var buf bytes.Buffer
	if err := d.tmpl.Execute(&buf, data); err != nil {
		return "", NewRenderError(ErrCodeRenderFailed, "failed to execute contract template", err)
	}
	return buf.String(), nil
}

// PDF renders the contract to a letter-size PDF
func (d *ContractDocument) PDF(ctx context.Context, data ContractData) ([]byte, error) {
	if d.renderer == nil {
		return nil, NewRenderError(ErrCodeDisabled, "PDF rendering is not configured", nil)
	}
	html, err := d.HTML(data)
	if err != nil {
		return nil, err
	}
	res, err := d.renderer.Render(ctx, &RenderRequest{
		HTML:       html,
		PaperSize:  PaperSizeLetter,
		Margins:    DefaultMargins(),
		Title:      "Contrato " + data.Contract.NumeroContrato,
		FooterHTML: `<div style="font-size:8px;width:100%;text-align:center;color:#6b7280;">Página <span class="pageNumber"></span> de <span class="totalPages"></span></div>`,
	})
	if err != nil {
		return nil, err
	}
	return res.PDFData, nil
}
