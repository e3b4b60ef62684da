package fuzzy

import (
	"bufio"
	"errors"
	"os"

	"github.com/glaslos/tlsh"
)

// tlshMinBytes is the smallest input TLSH produces a stable digest for.
const tlshMinBytes = 50

var errTooSmall = errors.New("input below tlsh minimum")

type TLSHHasher struct{}

func (h TLSHHasher) Name() string {
	return "tlsh"
}

func (h TLSHHasher) HashFile(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if info.Size() < tlshMinBytes {
		return "", errTooSmall
	}
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	reader := bufio.NewReader(f)
	hash, err := tlsh.HashReader(reader)
	if err != nil {
		return "", err
	}
	return hash.String(), nil
}

func init() {
	Register(TLSHHasher{})
}
