// Package descriptor locates and loads cognitive-function descriptors: the
// user-authored JSON records kept one per repository in a flat directory.
//
// Descriptors are read-only here. Every Load re-reads storage; nothing is
// cached.
package descriptor

// Suffix is the filename convention that marks a descriptor file.
const Suffix = "-core-logic.json"

// Descriptor is the authored source record for one repository.
type Descriptor struct {
	Repository                       string   `json:"repository" yaml:"repository"`
	Function                         string   `json:"function" yaml:"function"`
	ExecutableCodeBeyondThisFunction bool     `json:"executable_code_beyond_this_function" yaml:"executable_code_beyond_this_function"`
	LatentCognitiveEquivalent        string   `json:"latent_cognitive_equivalent" yaml:"latent_cognitive_equivalent"`
	Attractors                       []string `json:"attractors" yaml:"attractors"`
}

// NameToPath maps a repository name to its descriptor filename, relative to
// the descriptor directory.
func NameToPath(name string) string {
	return name + Suffix
}
