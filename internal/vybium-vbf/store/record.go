package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/vybium/vybium-vbf/internal/vybium-vbf/core"
	"github.com/vybium/vybium-vbf/internal/vybium-vbf/vbf"
)

// ErrCorruptRecord is returned when a stored table no longer matches the
// fingerprint or digest it was stored under.
var ErrCorruptRecord = errors.New("corrupt record")

// Invariants are the equivalence invariants stored with a function. The
// ortho-derivative spectra are only computed for quadratic functions.
type Invariants struct {
	DifferentialUniformity int            `json:"differential_uniformity"`
	APN                    bool           `json:"apn"`
	AlgebraicDegree        int            `json:"algebraic_degree"`
	Quadratic              bool           `json:"quadratic"`
	KToOne                 int            `json:"k_to_1"`
	Monomial               string         `json:"monomial,omitempty"`
	CanonicalTriplicate    bool           `json:"canonical_triplicate"`
	ODDS                   map[int]uint64 `json:"odds,omitempty"`
	ODWS                   map[int]uint64 `json:"odws,omitempty"`
}

// Record is one stored function.
type Record struct {
	Fingerprint string          `json:"fingerprint"`
	Digest      string          `json:"digest,omitempty"` // Tip5 digest of the table
	Name        string          `json:"name,omitempty"`
	Dimension   uint            `json:"dimension"`
	Polynomial  uint32          `json:"polynomial,omitempty"`
	Univariate  core.Univariate `json:"univariate,omitempty"`
	Values      []uint32        `json:"values"`
	Invariants  *Invariants     `json:"invariants,omitempty"`
	Added       time.Time       `json:"added"`
}

// NewRecord captures f under name.
func NewRecord(name string, f *vbf.Function) *Record {
	return &Record{
		Fingerprint: f.Fingerprint(),
		Digest:      f.DigestHex(),
		Name:        name,
		Dimension:   f.Dimension(),
		Polynomial:  f.Polynomial(),
		Values:      f.Values(),
		Added:       time.Now().UTC(),
	}
}

// Function rebuilds the stored truth table and checks it against the
// fingerprint and digest. Records written without a digest skip that check.
func (r *Record) Function() (*vbf.Function, error) {
	f, err := vbf.New(r.Values, r.Polynomial)
	if err != nil {
		return nil, fmt.Errorf("record %s: %w", r.Fingerprint, err)
	}
	if f.Dimension() != r.Dimension {
		return nil, fmt.Errorf("record %s: %w: stored dimension %d, table dimension %d",
			r.Fingerprint, core.ErrDimensionMismatch, r.Dimension, f.Dimension())
	}
	if fp := f.Fingerprint(); fp != r.Fingerprint {
		return nil, fmt.Errorf("record %s: %w: table fingerprint %s", r.Fingerprint, ErrCorruptRecord, fp)
	}
	if r.Digest != "" {
		if d := f.DigestHex(); d != r.Digest {
			return nil, fmt.Errorf("record %s: %w: table digest %s, stored %s", r.Fingerprint, ErrCorruptRecord, d, r.Digest)
		}
	}
	return f, nil
}
