package sgml

import (
	"bufio"
	"io"
	"strings"

	"golang.org/x/text/transform"
)

// rootTag is the synthetic wrapper element injected around the whole feed so
// the tokenizer always sees a single document, no matter how many
// XML-declaration-delimited segments the source concatenates.
const rootTag = "root"

// prologueReader filters an archive byte stream one physical line at a time
// before it reaches the tokenizer. Declaration-subset constructs that are not
// well-formed relative to the synthetic root (<!DOCTYPE, <!ENTITY, bare "]>")
// are dropped. An XML declaration line marks a segment boundary: the reader
// closes and reopens the synthetic root there, which abandons any element the
// prior segment left unclosed. Everything else is forwarded verbatim.
type prologueReader struct {
	br      *bufio.Reader
	buf     []byte
	started bool
	err     error
}

func newPrologueReader(r io.Reader, dropped *int64) *prologueReader {
	return &prologueReader{
		br: bufio.NewReaderSize(transform.NewReader(r, dropIllFormed{dropped: dropped}), 64<<10),
	}
}

func (p *prologueReader) Read(out []byte) (int, error) {
	for len(p.buf) == 0 {
		if p.err != nil {
			return 0, p.err
		}
		p.fill()
	}
	n := copy(out, p.buf)
	p.buf = p.buf[n:]
	return n, nil
}

func (p *prologueReader) fill() {
	if !p.started {
		p.started = true
		p.buf = append(p.buf, "<"+rootTag+">\n"...)
	}
	line, err := p.br.ReadString('\n')
	if line != "" {
		switch {
		case strings.HasPrefix(line, "<?xml"):
			// Segment boundary between concatenated documents.
			p.buf = append(p.buf, "</"+rootTag+">\n<"+rootTag+">\n"...)
		case strings.HasPrefix(line, "<!DOCTYPE"),
			strings.HasPrefix(line, "<!ENTITY"),
			strings.HasPrefix(line, "]>"):
			// Not well-formed under the synthetic root; drop.
		default:
			p.buf = append(p.buf, line...)
		}
	}
	if err != nil {
		p.buf = append(p.buf, "</"+rootTag+">\n"...)
		p.err = err
	}
}
