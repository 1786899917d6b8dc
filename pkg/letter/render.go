// Package letter renders constituent letters and mailing labels as PDF.
package letter

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
)

const (
	margin      = 20.0
	pxToMM      = 0.264583
	bodyTop     = 60.0
	lineHeight  = 5.5
	footerSpace = 10.0
	dateLayout  = "1/2/2006"
)

// Evidence is an attachment shown as an exhibit after the letter.
type Evidence struct {
	MimeType string
	Data     []byte
}

// Letter is everything printed on a constituent letter.
type Letter struct {
	Body       string
	SenderName string
	Date       time.Time
	Evidence   *Evidence
}

// Recipient is the addressee of a mailing label.
type Recipient struct {
	Name    string
	Role    string
	Address string
}

// Render writes the letter PDF to w.
func Render(w io.Writer, l Letter) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pageW, pageH := pdf.GetPageSize()

	pdf.SetMargins(margin, bodyTop, margin)
	pdf.SetAutoPageBreak(true, margin)
	pdf.SetFooterFunc(func() {
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(150, 150, 150)
		pdf.Text(margin, pageH-footerSpace, tr(fmt.Sprintf("Generated securely by Civic Bridge for %s on %s",
			l.SenderName, l.Date.Format(dateLayout))))
	})

	pdf.AddPage()
	drawHeader(pdf, pageW)

	pdf.SetXY(margin, bodyTop)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Times", "", 11)
	pdf.MultiCell(pageW-2*margin, lineHeight, tr(l.Body), "", "L", false)

	if l.Evidence != nil && strings.HasPrefix(l.Evidence.MimeType, "image/") {
		drawExhibit(pdf, pageW, pageH, *l.Evidence)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render letter: %w", err)
	}
	return nil
}

// RenderLabel writes a single mailing label PDF to w.
func RenderLabel(w io.Writer, r Recipient) error {
	pdf := fpdf.New("L", "mm", "", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(8, 8, 8)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPageFormat("L", fpdf.SizeType{Wd: 101.6, Ht: 50.8})

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 6, tr("The Honorable "+r.Name), "", 1, "L", false, 0, "")

	if r.Role != "" {
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(107, 114, 128)
		pdf.CellFormat(0, 5, tr(r.Role), "", 1, "L", false, 0, "")
	}

	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(0, 0, 0)
	for _, line := range SplitAddress(r.Address) {
		pdf.CellFormat(0, 5.5, tr(line), "", 1, "L", false, 0, "")
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render label: %w", err)
	}
	return nil
}

func drawHeader(pdf *fpdf.Fpdf, pageW float64) {
	// Landmark mark drawn in the brand red.
	const s = 0.5
	x, y := margin, 15.0
	pdf.SetDrawColor(204, 0, 0)
	pdf.SetLineWidth(0.7)
	pdf.SetLineCapStyle("round")
	pdf.SetLineJoinStyle("round")
	pdf.Polygon([]fpdf.PointType{
		{X: x + 12*s, Y: y + 2*s},
		{X: x + 20*s, Y: y + 7*s},
		{X: x + 4*s, Y: y + 7*s},
	}, "D")
	for _, col := range []float64{6, 10, 14, 18} {
		pdf.Line(x+col*s, y+18*s, x+col*s, y+11*s)
	}
	pdf.Line(x+3*s, y+22*s, x+21*s, y+22*s)

	pdf.SetTextColor(0, 46, 109)
	pdf.SetFont("Helvetica", "B", 22)
	pdf.Text(margin+12, 24, "Civic Bridge")

	pdf.SetTextColor(107, 114, 128)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.Text(margin+12, 29, "Citizen Advocacy")

	pdf.SetDrawColor(229, 231, 235)
	pdf.SetLineWidth(0.5)
	pdf.Line(margin, 36, pageW-margin, 36)
}

func drawExhibit(pdf *fpdf.Fpdf, pageW, pageH float64, ev Evidence) {
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(0, 46, 109)
	pdf.Text(margin, 20, "Exhibit A: Constituent Evidence")
	pdf.SetDrawColor(229, 231, 235)
	pdf.Line(margin, 25, pageW-margin, 25)

	imageType, w, h, err := imageGeometry(ev, pageW-2*margin, pageH-40)
	if err != nil {
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(255, 0, 0)
		pdf.Text(margin, 40, "Error: Could not render attached image evidence.")
		return
	}

	opts := fpdf.ImageOptions{ImageType: imageType}
	pdf.RegisterImageOptionsReader("exhibit-a", opts, bytes.NewReader(ev.Data))
	pdf.ImageOptions("exhibit-a", margin, 30, w, h, false, opts, 0, "")
}

// imageGeometry sizes an image at 96 DPI, scaled down to fit maxW x maxH.
func imageGeometry(ev Evidence, maxW, maxH float64) (string, float64, float64, error) {
	var imageType string
	switch {
	case strings.Contains(ev.MimeType, "png"):
		imageType = "PNG"
	case strings.Contains(ev.MimeType, "jpeg"), strings.Contains(ev.MimeType, "jpg"):
		imageType = "JPG"
	default:
		return "", 0, 0, fmt.Errorf("unsupported exhibit type %s", ev.MimeType)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(ev.Data))
	if err != nil {
		return "", 0, 0, fmt.Errorf("decode exhibit: %w", err)
	}

	w := float64(cfg.Width) * pxToMM
	h := float64(cfg.Height) * pxToMM
	if w > maxW {
		h *= maxW / w
		w = maxW
	}
	if h > maxH {
		w *= maxH / h
		h = maxH
	}
	return imageType, w, h, nil
}
