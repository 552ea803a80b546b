// Package loader reads template and config documents into a
// Catalog. A document is YAML holding a list of cells; a file
// may carry several documents separated by "---". The first
// line of a cell marks the annotated ones:
//
//	# [[nbplot]] template   YAML metadata (with a name) of the
//	                        template made of the cells after it
//	# [[nbplot]] config     YAML mapping merged onto the config
//	# [[nbplot]] ignore     cell left out of the template
//
// Metadata and config are data only, nothing is evaluated.
// Documents are applied in the order given, so a template
// loaded later replaces an earlier one of the same name.
package loader
