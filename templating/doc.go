// Package templating renders named templates, ordered lists of
// text blocks, against a list of inputs. Each block first gets
// its $root_path placeholder substituted; then every span
// between the loop markers
//
//	# [[nbplot]] for i,input in enumerate(inputs)
//	# [[nbplot]] endfor
//
// is replaced by one rendering of its body per input, with the
// $i, $input.pretty_name, $input.rel_path, $input.abs_path_or_io
// and $input.guessed_sep placeholders bound to that input.
//
// Substitution is safe: unknown placeholders are kept verbatim.
// Malformed loops abort the whole expansion with a SyntaxError.
package templating
