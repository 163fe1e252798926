// Package printing turns HTML documents into PDF files.
//
// This package contains:
// - PDFRenderer interface for rendering HTML to PDF
// - ChromedpRenderer implementation driving headless Chrome
// - FuncMap, the formatting helpers shared by every html/template in the app
// - ContractDocument, the printable modelo contract
//
// Example usage:
//
//	renderer, err := NewChromedpRenderer(&ChromedpConfig{NoSandbox: true})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer renderer.Close()
//
//	result, err := renderer.Render(ctx, &RenderRequest{
//	    HTML:      "<html>...</html>",
//	    PaperSize: PaperSizeLetter,
//	    Margins:   DefaultMargins(),
//	})
package printing
