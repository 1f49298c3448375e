package payment

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// Receipt renders the comprobante PDF for a paid-out pago.
func Receipt(pago *Pago) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 20, 15)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, "COMPROBANTE DE PAGO", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Comprobante N° %06d", pago.ID), "", 1, "C", false, 0, "")
	pdf.Ln(8)

	rows := [][2]string{
		{"Socio", pago.SocioNombre},
		{"Concepto", pago.Concepto},
		{"Monto", fmt.Sprintf("$ %.2f", pago.Monto)},
		{"Método de pago", pago.MetodoPago},
		{"Estado", pago.Estado},
		{"Fecha", pago.Fecha},
	}

	pdf.SetFont("Arial", "", 11)
	for _, row := range rows {
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(50, 9, tr(row[0]), "1", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 11)
		pdf.CellFormat(130, 9, tr(row[1]), "1", 1, "L", false, 0, "")
	}

	pdf.Ln(10)
	pdf.SetFont("Arial", "I", 9)
	pdf.CellFormat(0, 6, tr("Gracias por su pago. Conserve este comprobante."), "", 1, "C", false, 0, "")

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render comprobante: %w", err)
	}
	return buf.Bytes(), nil
}
