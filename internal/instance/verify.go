package instance

import (
	"errors"
	"fmt"
)

// MismatchError reports a stored digest that does not match its recomputed
// value.
type MismatchError struct {
	Field string
	Want  string
	Got   string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("%s mismatch: stored %s, recomputed %s", e.Field, e.Got, e.Want)
}

// IsMismatch reports whether err is a digest mismatch.
func IsMismatch(err error) bool {
	var m *MismatchError
	return errors.As(err, &m)
}

// Verify recomputes both digests of inst from its own content and checks
// them against the stored values.
func Verify(inst *Instance) error {
	integrity := IntegrityHash(Canonical(&inst.Descriptor))
	if integrity != inst.IntegrityHash {
		return &MismatchError{Field: "integrity_hash", Want: integrity, Got: inst.IntegrityHash}
	}
	return VerifyInstanceHash(inst)
}

// VerifyInstanceHash checks only instance_hash against
// (temporal_grounding, integrity_hash).
func VerifyInstanceHash(inst *Instance) error {
	want := InstanceHash(inst.TemporalGrounding, inst.IntegrityHash)
	if want != inst.InstanceHash {
		return &MismatchError{Field: "instance_hash", Want: want, Got: inst.InstanceHash}
	}
	return nil
}

// VerifyAgainst checks that inst was generated from the current content of
// the descriptor with integrity digest current.
func VerifyAgainst(inst *Instance, current string) error {
	if current != inst.IntegrityHash {
		return &MismatchError{Field: "descriptor integrity_hash", Want: current, Got: inst.IntegrityHash}
	}
	return nil
}
