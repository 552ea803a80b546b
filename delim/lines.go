package delim

import (
	"errors"
	"fmt"
	"io"
)

// maxEmptyReads bounds consecutive (0, nil) reads, as bufio
// does.
const maxEmptyReads = 100

// readLines reads at most limit lines from in, newline
// included. With universal set, "\r\n" and a lone "\r" also
// end a line and are returned as "\n". Readers that are not
// io.ByteReader are read one byte per call so nothing past
// the last returned line is consumed.
func readLines(
	in io.Reader,
	limit int,
	universal bool,
) ([]string, error) {
	const errCtx = "reading lines"

	br, ok := in.(io.ByteReader)
	if !ok {
		br = &byteReader{in: in}
	}

	var (
		lines   []string
		cur     []byte
		afterCR bool
	)

	for len(lines) < limit {
		bt, err := br.ReadByte()
		if err != nil {
			if len(cur) > 0 {
				lines = append(lines, string(cur))
			}

			if errors.Is(err, io.EOF) {
				return lines, nil
			}

			return lines, fmt.Errorf("%s: %w", errCtx, err)
		}

		if universal {
			if afterCR && bt == '\n' {
				afterCR = false

				continue
			}

			afterCR = bt == '\r'
			if afterCR {
				bt = '\n'
			}
		}

		cur = append(cur, bt)

		if bt == '\n' {
			lines = append(lines, string(cur))
			cur = cur[:0]
		}
	}

	return lines, nil
}

// byteReader adapts an io.Reader to io.ByteReader without
// buffering.
type byteReader struct {
	in  io.Reader
	buf [1]byte
}

func (br *byteReader) ReadByte() (byte, error) {
	for range maxEmptyReads {
		n, err := br.in.Read(br.buf[:])
		if n == 1 {
			return br.buf[0], nil
		}

		if err != nil {
			return 0, err
		}
	}

	return 0, io.ErrNoProgress
}
