// Package document persists rendered blocks. It names output
// files after the render time and the first input, and writes
// them atomically as YAML or JSON.
package document
