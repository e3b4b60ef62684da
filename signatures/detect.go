package signatures

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
)

// Detection is the result of one signature check. Detected=false carries no
// information beyond "not in the table".
type Detection struct {
	Detected   bool   `json:"detected"`
	Algorithm  string `json:"algorithm,omitempty"`
	Hash       string `json:"hash,omitempty"`
	Label      string `json:"label,omitempty"`
	Confidence int    `json:"confidence,omitempty"`
}

// DetectBytes hashes data with xxh64 and sha256 and looks both up. The fast
// hash is checked first; the first hit wins.
func (s *Store) DetectBytes(data []byte) Detection {
	fast := fmt.Sprintf("%016x", xxhash.Sum64(data))
	if label, ok := s.Lookup(fast); ok {
		return hit("xxh64", fast, label)
	}
	sum := sha256.Sum256(data)
	strong := hex.EncodeToString(sum[:])
	if label, ok := s.Lookup(strong); ok {
		return hit("sha256", strong, label)
	}
	return Detection{}
}

// DetectFile streams the file once through both hashes, then looks them up.
func (s *Store) DetectFile(path string) (Detection, error) {
	f, err := os.Open(path)
	if err != nil {
		return Detection{}, err
	}
	defer f.Close()

	fastHash := xxhash.New()
	strongHash := sha256.New()
	if _, err := io.Copy(io.MultiWriter(fastHash, strongHash), f); err != nil {
		return Detection{}, err
	}

	fast := fmt.Sprintf("%016x", fastHash.Sum64())
	if label, ok := s.Lookup(fast); ok {
		return hit("xxh64", fast, label), nil
	}
	strong := hex.EncodeToString(strongHash.Sum(nil))
	if label, ok := s.Lookup(strong); ok {
		return hit("sha256", strong, label), nil
	}
	return Detection{}, nil
}

func hit(algorithm, hash, label string) Detection {
	return Detection{
		Detected:   true,
		Algorithm:  algorithm,
		Hash:       hash,
		Label:      label,
		Confidence: MatchConfidence,
	}
}
