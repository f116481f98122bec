package optimistic

import "sync/atomic"

// Token identifies one request in a sequence. Later requests get larger tokens.
type Token uint64

// Sequencer issues request tokens and reports whether a response is still current.
// A response is current only if no newer request was issued after it.
type Sequencer struct {
	last atomic.Uint64
}

// Next issues a new token, superseding all earlier ones.
func (s *Sequencer) Next() Token {
	return Token(s.last.Add(1))
}

// IsLatest reports whether t is the most recently issued token.
func (s *Sequencer) IsLatest(t Token) bool {
	return t != 0 && uint64(t) == s.last.Load()
}
