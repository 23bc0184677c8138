// Package report renders an inspection record as the printable technical
// report PDF.
package report

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/crodriguezm/sgsst/asset"
	"github.com/crodriguezm/sgsst/model"
)

// FileName is the download name for a record's report.
func FileName(ins model.Inspection) string {
	return "Inspeccion_" + ins.Consecutive + ".pdf"
}

// WritePDF renders the record and writes the finished document to w.
func WritePDF(ins model.Inspection, w io.Writer) error {
	pdf, err := render(ins)
	if err != nil {
		return err
	}
	return pdf.Output(w)
}

func render(ins model.Inspection) (*gofpdf.Fpdf, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	r := &renderer{pdf: pdf, tr: tr, ins: ins}
	r.cur = newCursor(func() { pdf.AddPage() })

	r.header()
	r.generalInfo()
	if ins.Variant == model.WorkPermits && ins.Permit != nil {
		r.fieldsBlock("DATOS DEL PERMISO", ins.Permit.Fields())
	}
	if err := r.items(); err != nil {
		return nil, err
	}
	r.photoBlock()
	r.signature()

	if pdf.Error() != nil {
		return nil, pdf.Error()
	}
	return pdf, nil
}

type renderer struct {
	pdf *gofpdf.Fpdf
	tr  func(string) string
	cur *pageCursor
	ins model.Inspection
}

func (r *renderer) header() {
	pdf, tr := r.pdf, r.tr

	pdf.SetFillColor(30, 58, 138)
	pdf.Rect(0, 0, 210, 40, "F")
	pdf.SetFillColor(59, 130, 246)
	pdf.Rect(0, 38, 210, 2, "F")

	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Text(15, 18, tr("REPORTE TÉCNICO DE INSPECCIÓN"))

	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(15, 26, tr("Sistema de Gestión de Seguridad y Salud en el Trabajo (SG-SST)"))
	pdf.Text(15, 32, tr("MODULO: "+r.ins.Variant.Label()))

	pdf.SetFont("Helvetica", "B", 12)
	cons := r.ins.Consecutive
	pdf.Text(195-pdf.GetStringWidth(cons), 18, cons)

	r.cur.y = 45
}

func orNA(v string) string {
	if v == "" {
		return "N/A"
	}
	return v
}

func (r *renderer) generalInfo() {
	rows := []model.Field{
		{Label: "Consecutivo", Value: r.ins.Consecutive},
		{Label: "Fecha", Value: orNA(r.ins.DisplayDate())},
		{Label: "Edificio/Conjunto", Value: orNA(r.ins.DisplayName())},
		{Label: "NIT", Value: orNA(r.ins.Nit)},
		{Label: "Dirección", Value: orNA(r.ins.Address)},
		{Label: "Representante Legal", Value: orNA(r.ins.LegalRepresentative)},
		{Label: "Inspector", Value: orNA(r.ins.InspectorName)},
		{Label: "Correo", Value: orNA(r.ins.InspectorEmail)},
	}

	pdf, tr := r.pdf, r.tr
	pdf.SetTextColor(0, 0, 0)
	pdf.SetDrawColor(220, 220, 220)
	for _, row := range rows {
		y := r.cur.place(7)
		pdf.SetXY(15, y)
		pdf.SetFillColor(240, 243, 250)
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(50, 7, tr(row.Label), "1", 0, "L", true, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(130, 7, tr(row.Value), "1", 0, "L", false, 0, "")
	}
	r.cur.y += 5
}

// fieldsBlock lays label/value pairs out as a three column badge grid.
func (r *renderer) fieldsBlock(title string, fields []model.Field) {
	pdf, tr := r.pdf, r.tr

	r.cur.breakIfPast(230)
	y := r.cur.place(8)
	pdf.SetTextColor(30, 58, 138)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Text(15, y+5, tr(title))

	pdf.SetTextColor(0, 0, 0)
	for i := 0; i < len(fields); i += 3 {
		r.cur.breakIfPast(240)
		y := r.cur.place(11)
		for col := 0; col < 3 && i+col < len(fields); col++ {
			f := fields[i+col]
			x := 15 + float64(col)*60
			pdf.SetFont("Helvetica", "B", 6.5)
			pdf.SetTextColor(100, 100, 100)
			pdf.Text(x, y+3.5, tr(f.Label))
			pdf.SetFont("Helvetica", "", 8.5)
			pdf.SetTextColor(0, 0, 0)
			pdf.Text(x, y+8, tr(f.Value))
		}
	}
	r.cur.y += 3
}

func itemTitle(v model.Variant, item model.Item, idx int) (string, error) {
	n := idx + 1
	switch v {
	case model.Extinguishers:
		if x, ok := item.(model.ExtinguisherItem); ok && x.IDExt != "" {
			return "Extintor #" + x.IDExt, nil
		}
		return fmt.Sprintf("Extintor #%d", n), nil
	case model.FireCabinets:
		if x, ok := item.(model.CabinetItem); ok && x.Number != "" {
			return "Gabinete #" + x.Number, nil
		}
		return fmt.Sprintf("Gabinete #%d", n), nil
	case model.Stretchers:
		return fmt.Sprintf("Camilla #%d", n), nil
	case model.FirstAidKits:
		return fmt.Sprintf("Botiquín #%d", n), nil
	case model.Signage:
		return fmt.Sprintf("Señalización #%d", n), nil
	case model.SafetyConditions:
		return fmt.Sprintf("Hallazgo de Seguridad #%d", n), nil
	case model.WorkPermits:
		return fmt.Sprintf("Trabajador #%d", n), nil
	default:
		return "", fmt.Errorf("%w: %q", model.ErrUnknownVariant, string(v))
	}
}

func (r *renderer) items() error {
	for idx, item := range r.ins.Items {
		title, err := itemTitle(r.ins.Variant, item, idx)
		if err != nil {
			return err
		}
		r.fieldsBlock(title, item.Fields())
	}
	return nil
}

// registerImage decodes one stored data URI and registers it with the
// document. Broken assets are skipped; gofpdf errors are sticky and one
// bad image must not take the whole report down.
func (r *renderer) registerImage(name, uri string) bool {
	data, mime, err := asset.Payload(uri)
	if err != nil || mime != "image/jpeg" {
		return false
	}
	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return false
	}
	opts := gofpdf.ImageOptions{ImageType: "JPEG"}
	r.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(data))
	return true
}

func itemPhotos(item model.Item) []string {
	first, second := item.Photos()
	uris := []string{}
	for _, uri := range []string{first, second} {
		if uri != "" {
			uris = append(uris, uri)
		}
	}
	return uris
}

// photoBlock renders the record's photo evidence as one headed section
// after all item bodies, one row of up to two photos per item, in item
// order.
func (r *renderer) photoBlock() {
	hasPhotos := false
	for _, item := range r.ins.Items {
		if len(itemPhotos(item)) > 0 {
			hasPhotos = true
			break
		}
	}
	if !hasPhotos {
		return
	}

	pdf, tr := r.pdf, r.tr

	r.cur.breakIfPast(230)
	y := r.cur.place(6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetFont("Helvetica", "B", 8)
	pdf.Text(15, y+4, tr("EVIDENCIA FOTOGRÁFICA DE HALLAZGOS"))

	opts := gofpdf.ImageOptions{ImageType: "JPEG"}
	for idx, item := range r.ins.Items {
		uris := itemPhotos(item)
		if len(uris) == 0 {
			continue
		}
		r.cur.breakIfPast(240)
		y := r.cur.place(45)
		for i, uri := range uris {
			// the slice index keeps names unique even when items carry
			// no local id
			name := fmt.Sprintf("%d-%s-%d", idx, item.ItemID(), i)
			if !r.registerImage(name, uri) {
				continue
			}
			x := 15 + float64(i)*45
			pdf.ImageOptions(name, x, y, 40, 40, false, opts, 0, "")
		}
	}
}

func (r *renderer) signature() {
	pdf, tr := r.pdf, r.tr

	r.cur.breakIfPast(240)
	y := r.cur.place(36)

	if r.ins.SignatureURL != "" && r.registerImage("signature", r.ins.SignatureURL) {
		opts := gofpdf.ImageOptions{ImageType: "JPEG"}
		pdf.ImageOptions("signature", 15, y, 60, 25, false, opts, 0, "")
	}

	pdf.SetDrawColor(200, 200, 200)
	pdf.Line(15, y+25, 80, y+25)

	pdf.SetTextColor(100, 100, 100)
	pdf.SetFont("Helvetica", "B", 8)
	pdf.Text(15, y+30, tr("FIRMA DEL INSPECTOR RESPONSABLE"))
	pdf.SetFont("Helvetica", "", 8)
	name := r.ins.InspectorName
	if name == "" {
		name = "Validado Digitalmente"
	}
	pdf.Text(15, y+34, tr(name))
}
