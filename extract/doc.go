// Package extract reads a single XML element out of a large document given
// the byte offset of its opening tag.
//
// The element is read in fixed-size chunks with positioned reads (io.ReaderAt),
// so no file cursor is shared between calls. After each chunk the closing tag
// is searched for in the new bytes plus the last len(marker)-1 bytes of the
// previous ones, which finds a closing tag split across two chunks. Reading
// stops at a ceiling: the configured maximum element size, or the next known
// element offset when the caller supplies it. Running into the ceiling or the
// end of input without a closing tag yields errs.ErrBoundaryNotFound.
package extract
