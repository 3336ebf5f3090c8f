package instance

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"cogcompress/internal/descriptor"
)

// canonicalDescriptor fixes the key order of the integrity payload. Fields
// are declared in byte order of their JSON keys.
type canonicalDescriptor struct {
	Attractors                       []string `json:"attractors"`
	ExecutableCodeBeyondThisFunction bool     `json:"executable_code_beyond_this_function"`
	Function                         string   `json:"function"`
	LatentCognitiveEquivalent        string   `json:"latent_cognitive_equivalent"`
	Repository                       string   `json:"repository"`
}

// Canonical returns the byte-exact serialization hashed into integrity_hash:
// a compact JSON object of the five descriptor fields with keys sorted, no
// whitespace, no HTML escaping, UTF-8 text, and attractors in authored order
// ([] when empty). Derived fields never appear in it.
//
// Text is emitted as raw UTF-8 (including characters outside the BMP) with
// two exceptions: U+2028 and U+2029 are written as the escapes \u2028 and
// \u2029, and each invalid UTF-8 byte is written as \ufffd. Strings are
// otherwise escaped as in RFC 8259: \" \\ \b \f \n \r \t, and \u00XX
// (lowercase hex) for the remaining control characters.
func Canonical(d *descriptor.Descriptor) []byte {
	c := canonicalDescriptor{
		Attractors:                       d.Attractors,
		ExecutableCodeBeyondThisFunction: d.ExecutableCodeBeyondThisFunction,
		Function:                         d.Function,
		LatentCognitiveEquivalent:        d.LatentCognitiveEquivalent,
		Repository:                       d.Repository,
	}
	if c.Attractors == nil {
		c.Attractors = []string{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	// Encoding a struct of strings, a bool and a string slice cannot fail.
	_ = enc.Encode(c)
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n"))
}

// IntegrityHash is the lowercase hex SHA-256 of canonical descriptor bytes.
func IntegrityHash(canonical []byte) string {
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:])
}

// InstanceHash is the lowercase hex SHA-256 of temporalGrounding followed
// immediately by integrityHash, with no separator. Both parts are fixed width
// so the concatenation is unambiguous.
func InstanceHash(temporalGrounding, integrityHash string) string {
	sum := sha256.Sum256([]byte(temporalGrounding + integrityHash))
	return hex.EncodeToString(sum[:])
}
