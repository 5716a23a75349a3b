package dawg

import "errors"

// Error kinds raised by the package. Raise sites wrap these with
// context describing the offending value, so callers can test the kind
// with errors.Is while the message names the culprit.
var (
	// ErrBadMagic is returned by Load when the file identifier does
	// not match.
	ErrBadMagic = errors.New("file identifier mismatched")

	// ErrShortHeader is returned by Load when the input ends before
	// the header is complete.
	ErrShortHeader = errors.New("couldn't read header")

	// ErrShortBody is returned by Load when the input holds fewer
	// edges than the header promised.
	ErrShortBody = errors.New("couldn't read edges")

	// ErrWrite is returned by Write/Save when the underlying writer
	// fails.
	ErrWrite = errors.New("couldn't write")

	// ErrWordTooLong is returned by Add for words of MaxWordLength
	// characters or more.
	ErrWordTooLong = errors.New("word is too long")

	// ErrOutOfOrder is returned by Add when a word sorts before the
	// previous one, and for the empty word. Repeating the previous word
	// is not an error.
	ErrOutOfOrder = errors.New("word out of order")

	// ErrFull is returned when committing a node would exceed
	// MaxEdges.
	ErrFull = errors.New("DAWG is full")

	// ErrHashFull is returned when the canonicalization table has no
	// slot left for a node.
	ErrHashFull = errors.New("hash table is full")

	// ErrNotStarted is returned by Add and Finish before Start has
	// allocated the working buffers, or after Finish released them.
	ErrNotStarted = errors.New("builder not started")
)
