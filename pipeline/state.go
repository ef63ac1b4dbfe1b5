package pipeline

import (
	"github.com/chronos-tachyon/decrypter/huffman"
)

// Artifact names one intermediate value passed between stages.
type Artifact string

const (
	ArtRaw        Artifact = "raw"
	ArtBits       Artifact = "bits"
	ArtCorrected  Artifact = "corrected"
	ArtReduced    Artifact = "reduced"
	ArtText       Artifact = "text"
	ArtPlain      Artifact = "plain"
	ArtCipher     Artifact = "cipher"
	ArtCompressed Artifact = "compressed"
	ArtRestored   Artifact = "restored"
)

// State carries the artifacts of one run.  A field is meaningful only if
// Has reports its Artifact as present.
type State struct {
	Raw       []byte
	Bits      []byte
	Corrected []byte
	Positions []int
	Reduced   []byte
	Text      string
	Plain     string
	Cipher    string
	CipherKey string
	Bitstring string
	Table     huffman.Table
	Restored  string

	have map[Artifact]struct{}
}

func newState() *State {
	return &State{have: make(map[Artifact]struct{})}
}

// Has returns true iff the artifact was produced by an earlier stage.
func (s *State) Has(a Artifact) bool {
	_, found := s.have[a]
	return found
}

func (s *State) put(a Artifact) {
	s.have[a] = struct{}{}
}

// missing returns the first artifact in list that is not present.
func (s *State) missing(list []Artifact) (Artifact, bool) {
	for _, a := range list {
		if !s.Has(a) {
			return a, true
		}
	}
	return "", false
}
