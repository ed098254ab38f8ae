package project

import (
	"crypto/sha256"

	"blc/internal/token"
)

// Digest - фиксированный 256 битный хеш (совместим с source.File.Hash)
type Digest [32]byte

// Combine строит хеш: H( content || dep1 || dep2 ... ).
// Порядок deps должен быть детерминированным.
func Combine(content Digest, deps ...Digest) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, d := range deps {
		_, _ = h.Write(d[:])
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// VocabularyDigest identifies a vocabulary. Two vocabularies with the
// same keywords and conditions have the same digest.
func VocabularyDigest(v *token.Vocabulary) Digest {
	h := sha256.New()
	for _, kw := range v.Keywords() {
		_, _ = h.Write([]byte(kw))
		_, _ = h.Write([]byte{0})
	}
	_, _ = h.Write([]byte{1})
	for _, c := range v.Conditions() {
		_, _ = h.Write([]byte(c))
		_, _ = h.Write([]byte{0})
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}
