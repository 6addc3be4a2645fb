// Package pdf renders itinerary markdown as an A4 document.
package pdf

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/phpdave11/gofpdf"
	"github.com/russross/blackfriday/v2"
)

const (
	margin     = 15.0
	lineHeight = 6.0
	indentStep = 6.0
)

type style struct {
	family string
	weight string
	size   float64
	height float64
	after  float64
}

var (
	bodyStyle  = style{"Helvetica", "", 11, lineHeight, 2}
	codeStyle  = style{"Courier", "", 10, 5, 3}
	tableStyle = style{"Helvetica", "", 10, 5, 1}
)

func headingStyle(level int) style {
	switch level {
	case 0, 1:
		return style{"Helvetica", "B", 18, 9, 4}
	case 2:
		return style{"Helvetica", "B", 15, 8, 3}
	case 3:
		return style{"Helvetica", "B", 13, 7, 2}
	default:
		return style{"Helvetica", "B", 11, lineHeight, 2}
	}
}

type renderer struct {
	pdf       *gofpdf.Fpdf
	tr        func(string) string
	buf       strings.Builder
	listDepth int
}

// Render lays out markdown under title and returns the PDF bytes. Inline
// emphasis is flattened to plain text; headings, lists, code blocks, tables
// and rules keep their structure.
func Render(markdown, title string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, true)
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, margin)
	pdf.AddPage()

	r := &renderer{
		pdf: pdf,
		tr:  pdf.UnicodeTranslatorFromDescriptor(""),
	}

	if title != "" {
		r.buf.WriteString(title)
		r.flush(headingStyle(0), 0)
	}

	md := blackfriday.New(blackfriday.WithExtensions(blackfriday.CommonExtensions))
	md.Parse([]byte(markdown)).Walk(r.visit)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *renderer) visit(node *blackfriday.Node, entering bool) blackfriday.WalkStatus {
	switch node.Type {
	case blackfriday.Text, blackfriday.Code:
		if entering {
			r.buf.Write(node.Literal)
		}
	case blackfriday.Softbreak:
		r.buf.WriteString(" ")
	case blackfriday.Hardbreak:
		r.buf.WriteString("\n")
	case blackfriday.Heading:
		if !entering {
			r.flush(headingStyle(node.HeadingData.Level), 0)
		}
	case blackfriday.Paragraph:
		if !entering {
			r.flushParagraph(node)
		}
	case blackfriday.List:
		if entering {
			r.listDepth++
		} else {
			r.listDepth--
			if r.listDepth == 0 {
				r.pdf.Ln(2)
			}
		}
	case blackfriday.CodeBlock:
		r.buf.Write(node.Literal)
		r.flush(codeStyle, r.indent())
	case blackfriday.TableCell:
		if !entering {
			r.buf.WriteString(" | ")
		}
	case blackfriday.TableRow:
		if !entering {
			row := strings.TrimSuffix(r.buf.String(), " | ")
			r.buf.Reset()
			r.buf.WriteString(row)
			r.flush(tableStyle, 0)
		}
	case blackfriday.HorizontalRule:
		y := r.pdf.GetY() + 2
		pageWidth, _ := r.pdf.GetPageSize()
		r.pdf.Line(margin, y, pageWidth-margin, y)
		r.pdf.Ln(5)
	}
	return blackfriday.GoToNext
}

func (r *renderer) indent() float64 {
	if r.listDepth == 0 {
		return 0
	}
	return float64(r.listDepth) * indentStep
}

// flushParagraph writes a paragraph, prefixed with a bullet or number when
// it is the body of a list item.
func (r *renderer) flushParagraph(node *blackfriday.Node) {
	item := node.Parent
	if item == nil || item.Type != blackfriday.Item || item.FirstChild != node {
		r.flush(bodyStyle, r.indent())
		return
	}

	marker := "- "
	if item.ListFlags&blackfriday.ListTypeOrdered != 0 {
		n := 1
		for prev := item.Prev; prev != nil; prev = prev.Prev {
			n++
		}
		marker = strconv.Itoa(n) + ". "
	}

	text := r.buf.String()
	r.buf.Reset()
	r.buf.WriteString(marker + text)
	r.flush(style{bodyStyle.family, bodyStyle.weight, bodyStyle.size, bodyStyle.height, 1}, r.indent())
}

func (r *renderer) flush(s style, indent float64) {
	text := strings.TrimSpace(r.buf.String())
	r.buf.Reset()
	if text == "" {
		return
	}

	r.pdf.SetFont(s.family, s.weight, s.size)
	r.pdf.SetX(margin + indent)
	r.pdf.MultiCell(0, s.height, r.tr(text), "", "L", false)
	r.pdf.Ln(s.after)
}
