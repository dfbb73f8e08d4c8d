package layout

import (
	"strings"

	"github.com/arturoeanton/gockore/boxtree"
	"github.com/arturoeanton/gockore/style"
	"github.com/arturoeanton/gockore/textutil"
	"github.com/arturoeanton/gockore/units"
)

// layoutTable implements CSS2.1's automatic table layout (spec.md
// §4.5's "Tables" paragraph): a first pass measures each column's
// min/max content width across every row, a second pass distributes
// the table's available width between those bounds, and row heights
// come from the tallest cell in each row. colspan stretches a cell
// across several columns; rowspan is read but this engine's row-group
// model doesn't yet reserve the rows below a spanning cell, so a
// rowspan>1 cell is sized against the single row it starts in — a
// disclosed simplification, not a crash.
func (lc *ctx) layoutTable(ref boxtree.BoxRef, x, y, availWidth float64, s style.Computed) float64 {
	contentWidth := resolveWidth(s, availWidth)
	innerX := x + edgeLeft(s, availWidth, contentWidth)

	rows := lc.tableRows(ref)
	numCols := 0
	for _, r := range rows {
		col := 0
		for _, cell := range lc.boxes.Children(r) {
			if lc.boxes.Kind(cell) == boxtree.KindText {
				continue
			}
			col += lc.boxes.ColSpan(cell)
		}
		if col > numCols {
			numCols = col
		}
	}
	if numCols == 0 {
		lc.setFrame(ref, x, y, contentWidth, 0, s, availWidth)
		return 0
	}

	minW := make([]float64, numCols)
	maxW := make([]float64, numCols)
	explicit := make([]float64, numCols)
	for i := range explicit {
		explicit[i] = -1
	}

	for _, r := range rows {
		col := 0
		for _, cell := range lc.boxes.Children(r) {
			if lc.boxes.Kind(cell) == boxtree.KindText {
				continue
			}
			cs := lc.boxes.Style(cell)
			span := lc.boxes.ColSpan(cell)
			cmin, cmax := lc.cellContentWidths(cell, cs)
			if !cs.Width.IsAuto() {
				w := resolveLenW(cs.Width, contentWidth, cs)
				if w > cmax {
					cmax = w
				}
				if w > cmin {
					cmin = w
				}
				if span == 1 && w > explicit[col] {
					explicit[col] = w
				}
			}
			perMin, perMax := cmin/float64(span), cmax/float64(span)
			for k := 0; k < span && col+k < numCols; k++ {
				if perMin > minW[col+k] {
					minW[col+k] = perMin
				}
				if perMax > maxW[col+k] {
					maxW[col+k] = perMax
				}
			}
			col += span
		}
	}

	for i := range minW {
		if explicit[i] >= 0 {
			if explicit[i] > minW[i] {
				minW[i] = explicit[i]
			}
			if explicit[i] > maxW[i] {
				maxW[i] = explicit[i]
			}
		}
		if maxW[i] < minW[i] {
			maxW[i] = minW[i]
		}
	}

	colW := distributeColumns(minW, maxW, contentWidth)

	cursorY := y
	for _, r := range rows {
		rowH := 0.0
		col := 0
		var cells []boxtree.BoxRef
		for _, cell := range lc.boxes.Children(r) {
			if lc.boxes.Kind(cell) == boxtree.KindText {
				continue
			}
			span := lc.boxes.ColSpan(cell)
			cw := 0.0
			for k := 0; k < span && col+k < numCols; k++ {
				cw += colW[col+k]
			}
			cx := innerX
			for k := 0; k < col; k++ {
				cx += colW[k]
			}
			cs := lc.boxes.Style(cell)
			fixed := cs
			fixed.Width = units.Length{Value: cw, Unit: units.UnitPx}
			h := lc.layoutBlockLevelChild(cell, cx, cursorY, cw, fixed, nil)
			if h > rowH {
				rowH = h
			}
			cells = append(cells, cell)
			col += span
		}
		for _, cell := range cells {
			f := lc.frames[cell]
			f.ContentH = units.RoundHalfToEven(rowH - float64(f.PaddingTop+f.PaddingBottom+f.BorderTop+f.BorderBottom))
			if f.ContentH < 0 {
				f.ContentH = 0
			}
			lc.frames[cell] = f
		}
		lc.setFrame(r, innerX, cursorY, contentWidth, rowH, lc.boxes.Style(r), contentWidth)
		cursorY += rowH
	}

	contentHeight := cursorY - y
	if !s.Height.IsAuto() {
		contentHeight = resolveLenH(s, contentHeight)
	}
	lc.setFrame(ref, x, y, contentWidth, contentHeight, s, availWidth)
	return contentHeight
}

// tableRows collects every table-row box under ref, descending through
// (but not collecting) row-group boxes.
func (lc *ctx) tableRows(ref boxtree.BoxRef) []boxtree.BoxRef {
	var rows []boxtree.BoxRef
	for _, c := range lc.boxes.Children(ref) {
		if lc.boxes.Kind(c) == boxtree.KindText {
			continue
		}
		switch lc.boxes.Style(c).Display {
		case style.DisplayTableRow:
			rows = append(rows, c)
		case style.DisplayTableRowGroup:
			rows = append(rows, lc.tableRows(c)...)
		}
	}
	return rows
}

// cellContentWidths estimates a cell's min (longest unbreakable word)
// and max (whole content on one line) content widths, the two inputs
// CSS2's automatic table layout distributes column width between.
func (lc *ctx) cellContentWidths(cell boxtree.BoxRef, cs style.Computed) (minW, maxW float64) {
	text := textutil.CollapseWhitespace(lc.collectText(cell))
	words := textutil.Words(text)
	if len(words) == 0 {
		return 0, 0
	}
	fh, _ := lc.fontFor(cs)
	spaceW := lc.textWidth(fh, " ", cs)
	for i, w := range words {
		ww := lc.textWidth(fh, w, cs)
		if ww > minW {
			minW = ww
		}
		if i > 0 {
			maxW += spaceW
		}
		maxW += ww
	}
	if maxW < minW {
		maxW = minW
	}
	return minW, maxW
}

func (lc *ctx) collectText(ref boxtree.BoxRef) string {
	if lc.boxes.Kind(ref) == boxtree.KindText {
		return lc.boxes.Text(ref)
	}
	var sb strings.Builder
	for _, c := range lc.boxes.Children(ref) {
		sb.WriteString(lc.collectText(c))
		sb.WriteString(" ")
	}
	return sb.String()
}

// distributeColumns implements CSS2.1 §17.5.2.2's width distribution:
// below the combined min, every column gets exactly its min; above the
// combined max, the surplus spreads proportionally to each column's
// max; in between, each column interpolates linearly from its min
// toward its max by the same fraction.
func distributeColumns(minW, maxW []float64, available float64) []float64 {
	n := len(minW)
	out := make([]float64, n)
	var totalMin, totalMax float64
	for i := range minW {
		totalMin += minW[i]
		totalMax += maxW[i]
	}
	switch {
	case available <= totalMin:
		copy(out, minW)
	case available >= totalMax:
		extra := available - totalMax
		for i := range out {
			out[i] = maxW[i]
			if totalMax > 0 {
				out[i] += extra * (maxW[i] / totalMax)
			}
		}
	default:
		spread := totalMax - totalMin
		frac := 0.0
		if spread > 0 {
			frac = (available - totalMin) / spread
		}
		for i := range out {
			out[i] = minW[i] + (maxW[i]-minW[i])*frac
		}
	}
	return out
}
