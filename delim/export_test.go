package delim

// IsNumberForTest exposes isNumber.
var IsNumberForTest = isNumber

// WindowForTest exposes window.
var WindowForTest = window

// ReadLinesForTest exposes readLines.
var ReadLinesForTest = readLines
