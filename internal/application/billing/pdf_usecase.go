package billing

import (
	"context"
	"fmt"
)

// PDFUseCase genera la factura impresa (PDF) de una venta emitida.
type PDFUseCase struct {
	query     *SaleQueryUseCase
	generator InvoicePDFGenerator
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(query *SaleQueryUseCase, generator InvoicePDFGenerator) *PDFUseCase {
	return &PDFUseCase{query: query, generator: generator}
}

// DownloadSalePDF devuelve los bytes del PDF y el nombre de archivo sugerido.
//
// Retorna:
//   - domain.ErrNotFound       si la venta no existe.
//   - domain.ErrNotConfigured  si no hay datos de la empresa para el encabezado.
func (uc *PDFUseCase) DownloadSalePDF(ctx context.Context, saleID string) (pdfBytes []byte, filename string, err error) {
	sale, customer, company, err := uc.query.printable(ctx, saleID)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err = uc.generator.GenerateInvoicePDF(ctx, sale, company, customer)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("factura_%s.pdf", sale.InvoiceNumber), nil
}
