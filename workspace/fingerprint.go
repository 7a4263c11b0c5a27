package workspace

import (
	"encoding/binary"
	"math"
	"slices"

	"github.com/cespare/xxhash/v2"

	"github.com/cwbudde/algo-profile/profile"
)

// Fingerprint hashes the samples and metadata of p. Equal profiles have
// equal fingerprints.
func Fingerprint(p *profile.Profile) uint64 {
	d := xxhash.New()
	buf := make([]byte, 0, 16)
	for _, pt := range p.Points() {
		buf = binary.LittleEndian.AppendUint64(buf[:0], math.Float64bits(pt.X))
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(pt.Y))
		_, _ = d.Write(buf)
	}

	meta := p.Metadata()
	keys := make([]string, 0, len(meta))
	for k := range meta {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		_, _ = d.WriteString(k)
		_, _ = d.Write([]byte{0})
		for _, v := range meta[k] {
			_, _ = d.WriteString(v)
			_, _ = d.Write([]byte{1})
		}
		_, _ = d.Write([]byte{2})
	}
	return d.Sum64()
}
