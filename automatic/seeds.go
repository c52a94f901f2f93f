package automatic

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"lukechampine.com/frand"
)

// GameSeeds derives n per-game seeds from base, so one seed reproduces a
// whole autoplay run.
func GameSeeds(base [32]byte, n int) [][32]byte {
	rng := frand.NewCustom(base[:], 1024, 12)
	seeds := make([][32]byte, n)
	for i := range seeds {
		seeds[i] = rng.Entropy256()
	}
	return seeds
}

// SaveSeeds writes seeds hex-encoded, one per line.
func SaveSeeds(w io.Writer, seeds [][32]byte) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString("# logatro game seeds, 32 bytes hex-encoded\n"); err != nil {
		return err
	}
	for _, seed := range seeds {
		if _, err := bw.WriteString(hex.EncodeToString(seed[:]) + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// LoadSeeds reads what SaveSeeds wrote. Blank lines and # comments are
// skipped.
func LoadSeeds(r io.Reader) ([][32]byte, error) {
	var seeds [][32]byte
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		decoded, err := hex.DecodeString(line)
		if err != nil {
			return nil, fmt.Errorf("bad seed at line %d: %w", lineNum, err)
		}
		if len(decoded) != 32 {
			return nil, fmt.Errorf("seed at line %d is %d bytes, expected 32", lineNum, len(decoded))
		}
		var seed [32]byte
		copy(seed[:], decoded)
		seeds = append(seeds, seed)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return seeds, nil
}
