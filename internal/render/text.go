package render

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/derailed/tview"
	"github.com/mattn/go-runewidth"
)

const (
	colSep   = "  "
	ellipsis = "…"

	// MoreMarker trails the rows while more pages are available.
	MoreMarker = "..."
)

// measure measures text independently of the terminal locale.
var measure = &runewidth.Condition{EastAsianWidth: false}

// TextRenderer renders documents as aligned plain text.
type TextRenderer struct{}

// NewTextRenderer returns a text renderer.
func NewTextRenderer() *TextRenderer {
	return &TextRenderer{}
}

// Render writes the document to w.
func (*TextRenderer) Render(w io.Writer, d Document) error {
	bw := bufio.NewWriter(w)
	if d.IsEmpty {
		fmt.Fprintln(bw, d.Empty)
		return bw.Flush()
	}

	hh := make([]string, len(d.Headers))
	for i, h := range d.Headers {
		hh[i] = h.Label
		if g := h.Glyph(); g != "" {
			hh[i] += " " + g
		}
	}
	widths := columnWidths(d, hh)

	writeLine(bw, d.Headers, widths, hh)
	for _, r := range d.Rows {
		writeLine(bw, d.Headers, widths, r.Cells)
	}
	switch {
	case d.Loading:
		fmt.Fprintln(bw, "Loading...")
	case d.More:
		fmt.Fprintln(bw, MoreMarker)
	}

	return bw.Flush()
}

func columnWidths(d Document, hh []string) []int {
	ww := make([]int, len(d.Headers))
	for i := range d.Headers {
		ww[i] = measure.StringWidth(hh[i])
	}
	for _, r := range d.Rows {
		for i := range min(len(r.Cells), len(ww)) {
			ww[i] = max(ww[i], measure.StringWidth(r.Cells[i]))
		}
	}
	for i, h := range d.Headers {
		if h.Width > 0 {
			ww[i] = min(ww[i], h.Width)
		}
	}

	return ww
}

func writeLine(w io.Writer, hh []Header, widths []int, cells []string) {
	var b strings.Builder
	for i, h := range hh {
		var s string
		if i < len(cells) {
			s = cells[i]
		}
		if i > 0 {
			b.WriteString(colSep)
		}
		b.WriteString(pad(measure.Truncate(s, widths[i], ellipsis), widths[i], h.Align))
	}
	fmt.Fprintln(w, strings.TrimRight(b.String(), " "))
}

func pad(s string, width, align int) string {
	switch align {
	case tview.AlignRight:
		return measure.FillLeft(s, width)
	case tview.AlignCenter:
		left := (width - measure.StringWidth(s)) / 2
		return measure.FillRight(strings.Repeat(" ", max(left, 0))+s, width)
	default:
		return measure.FillRight(s, width)
	}
}
