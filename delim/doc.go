// Package delim guesses the field separator of a tabular text
// stream. Guess samples at most the first 32 lines, counts the
// numeric columns each candidate delimiter (space, comma,
// semicolon, colon) yields per line, and keeps the delimiter
// producing the most columns consistently across the sample.
// Space is returned whenever the sample is inconclusive.
package delim
