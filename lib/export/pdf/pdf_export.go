package pdfexport

import (
	"bytes"
	"image/png"
	"net/http"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/image/webp"
	"maintenance-backend/models"
)

type Options struct {
	PageSize    string // Letter, A4
	Orientation string // P, L
	FontDir     string // каталог с DejaVuSans*.ttf; пусто - встроенный Helvetica (cp1252)
}

func DefaultOptions(fontDir string) Options {
	return Options{
		PageSize:    "Letter",
		Orientation: "P",
		FontDir:     fontDir,
	}
}

// Page содержимое документа. HTML - разметка уровня fpdf HTMLBasic (b, i, u, br, center).
type Page struct {
	Title            string
	HTML             string
	Signature        *models.File
	SignatureCaption string
	Images           []models.File
	ImagesCaption    string
	Footer           string
}

type Provider interface {
	Render(page Page) ([]byte, error)
}

var Instance Provider

func NewHandler(opts Options) {
	Instance = NewRenderer(opts)
}

func NewRenderer(opts Options) Provider {
	if opts.PageSize == "" {
		opts.PageSize = "Letter"
	}
	if opts.Orientation == "" {
		opts.Orientation = "P"
	}
	return impl{opts: opts}
}

type impl struct {
	opts Options
}

const (
	fontFamilyUTF8 = "DejaVu"
	fontFamilyCore = "Helvetica"
	signatureWidth = 60.0
	imageWidth     = 85.0
)

func (i impl) Render(page Page) (pdfFile []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("pdf render panic recover: %v", r)
		}
	}()
	pdf := fpdf.New(i.opts.Orientation, "mm", i.opts.PageSize, i.opts.FontDir)
	family, tr := i.setupFonts(pdf)
	if pdf.Err() {
		return nil, pdf.Error()
	}
	pdf.SetTitle(page.Title, true)
	pdf.SetCreationDate(time.Now())
	pdf.SetAutoPageBreak(true, 15)
	if page.Footer != "" {
		pdf.SetFooterFunc(func() {
			pdf.SetY(-12)
			pdf.SetFont(family, "I", 8)
			pdf.CellFormat(0, 6, tr(page.Footer), "", 0, "C", false, 0, "")
		})
	}
	pdf.AddPage()

	pdf.SetFont(family, "B", 16)
	pdf.CellFormat(0, 10, tr(page.Title), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont(family, "", 11)
	_, unitSize := pdf.GetFontSize()
	lineHt := unitSize * 1.5
	html := pdf.HTMLBasicNew()
	html.Write(lineHt, tr(page.HTML))
	if pdf.Err() {
		return nil, pdf.Error()
	}

	if page.Signature != nil {
		pdf.Ln(lineHt)
		pdf.SetFont(family, "B", 11)
		pdf.CellFormat(0, lineHt, tr(page.SignatureCaption), "", 1, "L", false, 0, "")
		if !i.putImg(pdf, *page.Signature, signatureWidth) {
			pdf.SetFont(family, "I", 10)
			pdf.CellFormat(0, lineHt, tr("[signature on file]"), "", 1, "L", false, 0, "")
		}
	}

	if len(page.Images) > 0 {
		pdf.Ln(lineHt)
		pdf.SetFont(family, "B", 11)
		pdf.CellFormat(0, lineHt, tr(page.ImagesCaption), "", 1, "L", false, 0, "")
		for _, img := range page.Images {
			i.putImg(pdf, img, imageWidth)
			pdf.Ln(2)
		}
	}

	buf := new(bytes.Buffer)
	err = pdf.Output(buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (i impl) setupFonts(pdf *fpdf.Fpdf) (string, func(string) string) {
	if i.opts.FontDir != "" {
		pdf.AddUTF8Font(fontFamilyUTF8, "", "DejaVuSans.ttf")
		pdf.AddUTF8Font(fontFamilyUTF8, "B", "DejaVuSans-Bold.ttf")
		pdf.AddUTF8Font(fontFamilyUTF8, "I", "DejaVuSans-Oblique.ttf")
		return fontFamilyUTF8, func(s string) string { return s }
	}
	// встроенные шрифты: испанские символы есть в cp1252
	return fontFamilyCore, pdf.UnicodeTranslatorFromDescriptor("")
}

// putImg вставляет изображение на всю ширину width, false если формат не поддерживается
func (i impl) putImg(pdf *fpdf.Fpdf, fileData models.File, width float64) bool {
	fileData, imageType, err := embeddable(fileData)
	if err != nil {
		log.
			WithField("file_name", fileData.FileName).
			WithError(err).
			Warn("формат изображения не поддерживается в pdf")
		return false
	}
	options := fpdf.ImageOptions{
		ReadDpi:   false,
		ImageType: imageType,
	}
	info := pdf.RegisterImageOptionsReader(fileData.FileName, options, bytes.NewReader(fileData.Body))
	if pdf.Err() || info == nil || info.Width() == 0 {
		log.
			WithField("file_name", fileData.FileName).
			WithError(pdf.Error()).
			Warn("ошибка добавления изображения в pdf")
		pdf.ClearError()
		return false
	}
	height := width * info.Height() / info.Width()
	_, pageHt := pdf.GetPageSize()
	_, _, _, bottom := pdf.GetMargins()
	if pdf.GetY()+height > pageHt-bottom-10 {
		pdf.AddPage()
	}
	left, _, _, _ := pdf.GetMargins()
	y := pdf.GetY()
	pdf.ImageOptions(fileData.FileName, left, y, width, height, false, options, 0, "")
	pdf.SetY(y + height)
	return true
}

// embeddable приводит изображение к формату, который fpdf умеет вставлять; webp перекодируется в png
func embeddable(fileData models.File) (models.File, string, error) {
	if imageType, ok := GetImgType(fileData.Body); ok {
		return fileData, imageType, nil
	}
	if http.DetectContentType(fileData.Body) != "image/webp" {
		return fileData, "", errors.New("неизвестный формат изображения")
	}
	img, err := webp.Decode(bytes.NewReader(fileData.Body))
	if err != nil {
		return fileData, "", errors.Wrap(err, "ошибка декодирования webp")
	}
	buf := new(bytes.Buffer)
	if err = png.Encode(buf, img); err != nil {
		return fileData, "", errors.Wrap(err, "ошибка перекодирования webp в png")
	}
	return models.File{
		FileName:    fileData.FileName + ".png",
		ContentType: "image/png",
		Body:        buf.Bytes(),
	}, "PNG", nil
}

// GetImgType тип изображения для fpdf по содержимому
func GetImgType(body []byte) (string, bool) {
	switch http.DetectContentType(body) {
	case "image/png":
		return "PNG", true
	case "image/jpeg":
		return "JPG", true
	case "image/gif":
		return "GIF", true
	}
	return "", false
}
