package delim

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
)

// Space is the fallback delimiter.
const Space = ' '

const (
	// maxLines bounds how much of the stream is consumed.
	maxLines = 32
	// maxSkip is the largest preamble skipped before the
	// sampling window.
	maxSkip = 8
	// windowLines is the size of the sampling window.
	windowLines = 16
)

// candidates in priority order.
var candidates = [...]rune{' ', ',', ';', ':'}

// Guess returns the most likely field delimiter of the
// tabular text read from in. Lines end with "\n". No byte
// past the end of the 32nd line is consumed, so the caller
// may keep reading in afterwards when it implements
// io.ByteReader.
//
// A read error other than io.EOF is returned together with
// the Space fallback.
func Guess(in io.Reader) (rune, error) {
	return guess(in, false)
}

// GuessText is Guess for text files, where "\r\n" and a
// lone "\r" end lines too.
func GuessText(in io.Reader) (rune, error) {
	return guess(in, true)
}

func guess(in io.Reader, universal bool) (rune, error) {
	const errCtx = "guessing delimiter"

	lines, err := readLines(in, maxLines, universal)
	if err != nil {
		return Space, fmt.Errorf("%s: %w", errCtx, err)
	}

	return pick(columnFrequencies(window(lines))), nil
}

// window returns the sampled lines: up to windowLines
// lines after skipping half of the buffered lines, at most
// maxSkip.
func window(lines []string) []string {
	start := min(len(lines)/2, maxSkip)
	end := min(start+windowLines, len(lines))

	return lines[start:end]
}

// columnFrequencies maps, for each candidate, the number of
// numeric columns found on a line to the number of lines
// producing that count.
func columnFrequencies(lines []string) [len(candidates)]map[int]int {
	var freq [len(candidates)]map[int]int

	for ci := range candidates {
		freq[ci] = make(map[int]int)
	}

	for _, line := range lines {
		for ci, de := range candidates {
			freq[ci][numericColumns(line, de)]++
		}
	}

	slog.Debug(
		"numeric columns per delimiter",
		"space", freq[0],
		"comma", freq[1],
		"semicolon", freq[2],
		"colon", freq[3],
	)

	return freq
}

// pick chooses among the candidates having a single column
// count over the whole window. The highest count wins, the
// earliest candidate among equal counts, and space wins
// whenever its count equals the best one.
func pick(freq [len(candidates)]map[int]int) rune {
	var (
		best      rune
		bestCols  = -1
		spaceCols int
	)

	for ci, de := range candidates {
		if len(freq[ci]) != 1 {
			continue
		}

		for cols := range freq[ci] {
			if de == Space {
				spaceCols = cols
			}

			if cols > bestCols {
				best, bestCols = de, cols
			}
		}
	}

	if bestCols < 0 {
		slog.Debug("no delimiter with a consistent number of columns")

		return Space
	}

	if spaceCols == bestCols {
		return Space
	}

	return best
}

// numericColumns splits line on de and counts the tokens
// parsing as a number. Space splits on any whitespace run.
func numericColumns(line string, de rune) int {
	var cols []string
	if de == Space {
		cols = strings.Fields(line)
	} else {
		cols = strings.Split(line, string(de))
	}

	count := 0

	for _, co := range cols {
		if isNumber(co) {
			count++
		}
	}

	return count
}

// isNumber reports whether tok is a decimal floating point
// literal, ignoring surrounding whitespace. Signed
// infinities and NaN, out-of-range values and
// digit-separating underscores are accepted; hexadecimal
// literals are not.
func isNumber(tok string) bool {
	tok = strings.TrimSpace(tok)
	if tok == "" {
		return false
	}

	body := tok
	if tok[0] == '+' || tok[0] == '-' {
		body = tok[1:]
	}

	if strings.EqualFold(body, "nan") {
		return true
	}

	if len(body) > 1 && body[0] == '0' &&
		(body[1] == 'x' || body[1] == 'X') {
		return false
	}

	if strings.Contains(tok, "_") {
		if !digitSeparated(tok) {
			return false
		}

		tok = strings.ReplaceAll(tok, "_", "")
	}

	_, err := strconv.ParseFloat(tok, 64)

	return err == nil || errors.Is(err, strconv.ErrRange)
}

// digitSeparated reports whether every underscore in s sits
// between two digits.
func digitSeparated(s string) bool {
	for i := range len(s) {
		if s[i] != '_' {
			continue
		}

		if i == 0 || i == len(s)-1 ||
			!isDigit(s[i-1]) || !isDigit(s[i+1]) {
			return false
		}
	}

	return true
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
