// Package inputs builds the templating.Input list from the
// command line arguments: one per file, "-" standing for
// standard input. Each input gets its delimiter guessed and
// a source code reference templates can embed verbatim.
package inputs
