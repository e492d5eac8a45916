package ocr

import (
	"strconv"
	"strings"

	"github.com/joseph-ayodele/label-verifier/internal/label"
)

// Tesseract TSV column layout:
// level page_num block_num par_num line_num word_num left top width height conf text
const (
	colLevel   = 0
	colBlock   = 2
	colPar     = 3
	colLine    = 4
	colLeft    = 6
	colTop     = 7
	colWidth   = 8
	colHeight  = 9
	colConf    = 10
	colText    = 11
	tsvColumns = 12

	// wordLevel marks word rows in the layout hierarchy; coarser rows
	// (page, block, paragraph, line) carry no text of their own.
	wordLevel = 5
)

// parseTSV converts one pass of TSV output into word tokens. Rows that are
// not word-level, carry negative confidence or empty text are dropped.
func parseTSV(out []byte, pass int) []label.Word {
	var words []label.Word
	for i, ln := range strings.Split(string(out), "\n") {
		if i == 0 || strings.TrimSpace(ln) == "" {
			continue // header
		}
		cols := strings.Split(ln, "\t")
		if len(cols) < tsvColumns {
			continue
		}
		if lvl, err := strconv.Atoi(cols[colLevel]); err != nil || lvl != wordLevel {
			continue
		}
		conf, err := strconv.ParseFloat(cols[colConf], 64)
		if err != nil || conf < 0 {
			continue
		}
		text := strings.TrimSpace(strings.Join(cols[colText:], " "))
		if text == "" {
			continue
		}

		left := intCol(cols[colLeft])
		top := intCol(cols[colTop])
		w := intCol(cols[colWidth])
		h := intCol(cols[colHeight])
		words = append(words, label.Word{
			Text:       text,
			BBox:       label.NewBoundingBox(float64(left), float64(top), float64(left+w), float64(top+h)),
			Confidence: conf,
			Pass:       pass,
			Block:      intCol(cols[colBlock]),
			Paragraph:  intCol(cols[colPar]),
			Line:       intCol(cols[colLine]),
		})
	}
	return words
}

func intCol(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
