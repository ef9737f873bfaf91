package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf/v2"

	"pharma-backend/internal/models"
)

// RenderOrdonnance builds the printable prescription document.
func RenderOrdonnance(o *models.OrdonnanceWithDoctor) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, "PharmaConnect - Ordonnance", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("Ref: ORD-%d", o.ID), "", 1, "C", false, 0, "")
	pdf.CellFormat(190, 6, fmt.Sprintf("Generated: %s", time.Now().Format("02-Jan-2006 03:04 PM")), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	// Doctor Info Box
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Medecin", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(95, 7, fmt.Sprintf("Nom: %s %s", o.DoctorName, o.DoctorSurname), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Specialite: %s", o.DoctorSpecialty), "RB", 1, "L", false, 0, "")
	pdf.Ln(5)

	// Patient Info Box
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Patient", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(95, 7, fmt.Sprintf("Nom: %s %s", o.PatientName, o.PatientSurname), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("CIN: %s", o.PatientNationalID), "RB", 1, "L", false, 0, "")
	pdf.Ln(5)

	// Prescription Body
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Prescription", "1", 1, "L", true, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.MultiCell(190, 7, o.Body, "1", "L", false)
	pdf.Ln(5)

	pdf.SetFont("Arial", "I", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("Emise le %s - statut: %s", o.CreatedAt.Format("02-Jan-2006"), o.Status), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
