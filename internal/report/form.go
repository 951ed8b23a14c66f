package report

import (
	"encoding/json"
	"strconv"
	"time"

	"braincheck/internal/classify"
	"braincheck/internal/session"
)

// pdfcpu create-form primitives, US Letter, lower-left origin.

type form struct {
	Paper string           `json:"paper"`
	Pages map[string]*page `json:"pages"`
}

type page struct {
	Content *content `json:"content"`
}

type content struct {
	Text  []textBox  `json:"text,omitempty"`
	Image []imageBox `json:"image,omitempty"`
}

type font struct {
	Name string `json:"name"`
	Size int    `json:"size"`
}

type textBox struct {
	Value     string     `json:"value"`
	Position  [2]float64 `json:"pos"`
	Width     float64    `json:"width,omitempty"`
	Alignment string     `json:"align,omitempty"`
	Font      *font      `json:"font"`
}

type imageBox struct {
	Src      string     `json:"src"`
	Position [2]float64 `json:"pos"`
	Width    float64    `json:"width"`
	Height   float64    `json:"height"`
}

const (
	pageWidth    = 612.0
	pageTop      = 750.0
	bottomMargin = 60.0
	lineHeight   = 18.0

	headingX = 50.0
	itemX    = 70.0
	bulletX  = 90.0

	thumbX    = 370.0
	thumbSize = 180.0
)

var (
	fontRegular = font{Name: "Helvetica", Size: 11}
	fontHeading = font{Name: "Helvetica-Bold", Size: 12}
	fontTitle   = font{Name: "Helvetica-Bold", Size: 18}
	fontStamp   = font{Name: "Helvetica", Size: 10}
	fontFooter  = font{Name: "Helvetica-Oblique", Size: 9}
)

// builder accumulates text boxes down a page, breaking to a fresh page when
// the cursor would cross the bottom margin.
type builder struct {
	pages map[string]*page
	num   int
	cur   *content
	y     float64
}

func newBuilder() *builder {
	b := &builder{pages: map[string]*page{}}
	b.addPage()
	return b
}

func (b *builder) addPage() {
	b.num++
	b.cur = &content{}
	b.pages[strconv.Itoa(b.num)] = &page{Content: b.cur}
	b.y = pageTop
}

// ensure breaks the page when fewer than height points remain.
func (b *builder) ensure(height float64) {
	if b.y-height < bottomMargin {
		b.addPage()
	}
}

func (b *builder) centered(value string, f font, y float64) {
	b.cur.Text = append(b.cur.Text, textBox{
		Value:     value,
		Position:  [2]float64{headingX, y},
		Width:     pageWidth - 2*headingX,
		Alignment: "center",
		Font:      &f,
	})
}

func (b *builder) heading(value string) {
	b.ensure(lineHeight)
	b.cur.Text = append(b.cur.Text, textBox{
		Value:    value,
		Position: [2]float64{headingX, b.y},
		Font:     &fontHeading,
	})
	b.y -= lineHeight
}

func (b *builder) line(value string, x float64) {
	b.ensure(lineHeight)
	b.cur.Text = append(b.cur.Text, textBox{
		Value:    value,
		Position: [2]float64{x, b.y},
		Font:     &fontRegular,
	})
	b.y -= lineHeight
}

// bullets writes one bulleted line per item, or the fallback when empty.
func (b *builder) bullets(items []string, fallback string) {
	if len(items) == 0 {
		b.line("- "+fallback, bulletX)
		return
	}
	for _, item := range items {
		b.line("- "+item, bulletX)
	}
}

func (b *builder) image(src string) {
	b.cur.Image = append(b.cur.Image, imageBox{
		Src:      src,
		Position: [2]float64{thumbX, b.y - thumbSize},
		Width:    thumbSize,
		Height:   thumbSize,
	})
}

func (b *builder) footer(value string) {
	b.cur.Text = append(b.cur.Text, textBox{
		Value:    value,
		Position: [2]float64{headingX, 40},
		Font:     &fontFooter,
	})
}

func (b *builder) space(pts float64) {
	b.y -= pts
}

func buildForm(
	title, disclaimer string,
	rec *session.Record,
	generated time.Time,
	imagePath string,
) ([]byte, error) {
	b := newBuilder()

	b.centered(title, fontTitle, pageTop)
	b.centered(generated.Format("January 2, 2006 3:04 PM"), fontStamp, pageTop-15)
	b.y = pageTop - 50

	b.heading("Patient Demographics")
	b.line("Name: "+rec.Name, itemX)
	b.line("Age: "+rec.Age, itemX)
	b.line("Gender: "+rec.Gender, itemX)
	b.space(10)

	b.heading("Medical Examination Findings")
	b.line("Symptoms:", itemX)
	b.bullets(rec.Symptoms, "None reported")
	b.space(5)
	b.line("Reason for Scan:", itemX)
	b.bullets(rec.Reasons, "Not specified")
	b.space(15)

	// keep the diagnosis block and thumbnail together on one page
	b.ensure(2*lineHeight + thumbSize + 40)
	b.heading("Diagnostic Results")
	b.line("Predicted Diagnosis: "+string(rec.Diagnosis), itemX)
	if imagePath != "" {
		b.image(imagePath)
	} else {
		b.line("[image unavailable]", thumbX)
	}
	b.space(thumbSize + 20)

	b.heading("Doctor's Recommendation")
	b.line(classify.Recommend(rec.Diagnosis), itemX)

	b.footer(disclaimer)

	return json.Marshal(form{Paper: "Letter", Pages: b.pages})
}
