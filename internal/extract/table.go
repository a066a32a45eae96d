package extract

import (
	"regexp"
	"strings"
)

var (
	reColumnSplit = regexp.MustCompile(`\s{2,}|\t`)
	reNumericish  = regexp.MustCompile(`[\d.,]+`)
	reBareNumber  = regexp.MustCompile(`^\d+([.,]\d+)?$`)
)

// ExtractLineItems detects a tabular block in text and returns its rows
// as line items. Lines split into columns on runs of two or more spaces
// (or a tab); the longest contiguous run of rows with an identical
// column count is taken as the table body. Rows whose last column is not
// numeric-looking are discarded. Returns nil when no convincing block
// exists.
func ExtractLineItems(text string) []LineItem {
	var rows [][]string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var cols []string
		for _, c := range reColumnSplit.Split(line, -1) {
			if c = strings.TrimSpace(c); c != "" {
				cols = append(cols, c)
			}
		}
		if len(cols) >= 2 {
			rows = append(rows, cols)
		}
	}
	if len(rows) < 2 {
		return nil
	}

	// Longest contiguous run of rows sharing a column count.
	bestStart, bestLen, bestCols := 0, 0, 0
	i := 0
	for i < len(rows) {
		cols := len(rows[i])
		j := i
		for j < len(rows) && len(rows[j]) == cols {
			j++
		}
		if run := j - i; run >= 2 && cols >= 2 && run > bestLen {
			bestStart, bestLen, bestCols = i, run, cols
		}
		i = j
	}
	if bestLen < 2 || bestCols < 2 {
		return nil
	}

	var items []LineItem
	for _, row := range rows[bestStart : bestStart+bestLen] {
		amount := row[len(row)-1]
		if !reNumericish.MatchString(amount) {
			continue
		}
		var prev, prev2 string
		if len(row) >= 2 {
			prev = row[len(row)-2]
		}
		if len(row) >= 3 {
			prev2 = row[len(row)-3]
		}

		descEnd := len(row) - 3
		if descEnd < 1 {
			descEnd = 1
		}
		desc := strings.Join(row[:descEnd], " ")
		if desc == "" {
			desc = row[0]
		}
		if len(desc) > 200 {
			desc = desc[:200]
		}

		item := LineItem{Description: desc, Amount: amount}
		if prev2 != "" && reBareNumber.MatchString(prev2) {
			item.Quantity = prev2
		}
		if prev != "" && reNumericish.MatchString(prev) {
			item.UnitPrice = prev
		}
		items = append(items, item)
	}
	return items
}
