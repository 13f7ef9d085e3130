package service

import (
	"sort"
	"strings"

	"github.com/tieubaoca/docextract-be/types"
)

// textBox is one positioned piece of text on a page, either a PDF content
// fragment or an OCR word box. Coordinates grow rightward and downward.
type textBox struct {
	x, y, w, h float64
	text       string
}

// detectTables reconstructs tables from positioned text. Boxes are clustered
// into lines by vertical proximity, lines are split into cells at large
// horizontal gaps, and runs of two or more consecutive multi-cell lines
// become a table with column bins derived from aligned cell starts. This is
// best-effort: a visually obvious table may still come back empty.
func detectTables(boxes []textBox) []types.Table {
	filtered := make([]textBox, 0, len(boxes))
	for _, b := range boxes {
		if strings.TrimSpace(b.text) != "" {
			filtered = append(filtered, b)
		}
	}
	if len(filtered) < 4 {
		return nil
	}

	avgH := averageHeight(filtered)
	lines := clusterLines(filtered, maxFloat(avgH*0.6, 2))

	var tables []types.Table
	var block [][]textBox
	flush := func() {
		if len(block) >= 2 {
			if t := buildTable(block, avgH); len(t) >= 2 {
				tables = append(tables, t)
			}
		}
		block = nil
	}
	for _, line := range lines {
		cells := mergeCells(line, avgH)
		if len(cells) >= 2 {
			block = append(block, cells)
		} else {
			flush()
		}
	}
	flush()
	return tables
}

func averageHeight(boxes []textBox) float64 {
	var sum float64
	for _, b := range boxes {
		sum += b.h
	}
	avg := sum / float64(len(boxes))
	if avg <= 0 {
		return 1
	}
	return avg
}

// clusterLines groups boxes whose vertical centers fall within tol of the
// line's first member, top to bottom. Each line comes back sorted by x.
func clusterLines(boxes []textBox, tol float64) [][]textBox {
	sorted := make([]textBox, len(boxes))
	copy(sorted, boxes)
	sort.Slice(sorted, func(i, j int) bool {
		ci := sorted[i].y + sorted[i].h/2
		cj := sorted[j].y + sorted[j].h/2
		if ci != cj {
			return ci < cj
		}
		return sorted[i].x < sorted[j].x
	})

	var lines [][]textBox
	var current []textBox
	var refCenter float64
	for _, b := range sorted {
		center := b.y + b.h/2
		if current == nil || center-refCenter > tol {
			if current != nil {
				lines = append(lines, current)
			}
			current = []textBox{b}
			refCenter = center
			continue
		}
		current = append(current, b)
	}
	if current != nil {
		lines = append(lines, current)
	}
	for _, line := range lines {
		sort.Slice(line, func(i, j int) bool { return line[i].x < line[j].x })
	}
	return lines
}

// mergeCells joins boxes on one line into cells. A horizontal gap wider than
// one average glyph height starts a new cell; smaller gaps continue the
// current cell, with a space unless the boxes are near-adjacent glyph runs.
func mergeCells(line []textBox, avgH float64) []textBox {
	if len(line) == 0 {
		return nil
	}
	cellGap := avgH * 1.0
	glyphGap := avgH * 0.25

	cells := []textBox{line[0]}
	for _, b := range line[1:] {
		last := &cells[len(cells)-1]
		gap := b.x - (last.x + last.w)
		if gap > cellGap {
			cells = append(cells, b)
			continue
		}
		if gap > glyphGap {
			last.text += " " + b.text
		} else {
			last.text += b.text
		}
		last.w = (b.x + b.w) - last.x
		if b.h > last.h {
			last.h = b.h
		}
	}
	return cells
}

// buildTable bins the cells of candidate rows into columns keyed by aligned
// start positions. Rows keep one string per column; cells that share a bin
// are joined with a space.
func buildTable(rows [][]textBox, avgH float64) types.Table {
	colTol := avgH * 1.5

	var starts []float64
	for _, row := range rows {
		for _, cell := range row {
			starts = append(starts, cell.x)
		}
	}
	sort.Float64s(starts)

	var stops []float64
	for _, s := range starts {
		if len(stops) == 0 || s-stops[len(stops)-1] > colTol {
			stops = append(stops, s)
		}
	}

	table := make(types.Table, 0, len(rows))
	for _, row := range rows {
		cells := make([]string, len(stops))
		for _, cell := range row {
			idx := nearestStop(stops, cell.x)
			if cells[idx] == "" {
				cells[idx] = strings.TrimSpace(cell.text)
			} else {
				cells[idx] += " " + strings.TrimSpace(cell.text)
			}
		}
		table = append(table, cells)
	}
	return table
}

func nearestStop(stops []float64, x float64) int {
	best := 0
	for i := range stops {
		if absFloat(x-stops[i]) < absFloat(x-stops[best]) {
			best = i
		}
	}
	return best
}

func absFloat(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
