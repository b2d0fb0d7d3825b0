package sgml

import (
	"unicode/utf8"

	"golang.org/x/text/transform"
)

// dropIllFormed is a transform.Transformer that removes byte sequences which
// do not decode as UTF-8. Bulk archive files are known to contain occasional
// corrupt bytes; dropping them keeps the rest of the line processable instead
// of aborting the whole file. Dropped bytes are counted through the shared
// pointer so the caller can report them.
type dropIllFormed struct {
	transform.NopResetter
	dropped *int64
}

func (t dropIllFormed) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		if c := src[nSrc]; c < utf8.RuneSelf {
			if nDst == len(dst) {
				return nDst, nSrc, transform.ErrShortDst
			}
			dst[nDst] = c
			nDst++
			nSrc++
			continue
		}
		_, size := utf8.DecodeRune(src[nSrc:])
		if size == 1 {
			if !atEOF && !utf8.FullRune(src[nSrc:]) {
				// Possibly a rune split across Transform calls.
				return nDst, nSrc, transform.ErrShortSrc
			}
			*t.dropped++
			nSrc++
			continue
		}
		if nDst+size > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		nDst += copy(dst[nDst:], src[nSrc:nSrc+size])
		nSrc += size
	}
	return nDst, nSrc, nil
}
