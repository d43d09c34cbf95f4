package cache

// ArtifactKeyOpts identifies one encoded figure.
type ArtifactKeyOpts struct {
	Figure string `json:"figure"`
	Format string `json:"format"`
	DPI    int    `json:"dpi,omitempty"`
	// Revision is the figure definition revision; Version is the program
	// version. Either changing invalidates old entries.
	Revision string `json:"revision"`
	Version  string `json:"version"`
	// InputHash is the [Hash] of the input file, empty for figures without one.
	InputHash string `json:"input_hash,omitempty"`
}

// Keyer builds cache keys.
type Keyer interface {
	ArtifactKey(opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey returns "artifact:<sha256 of opts>".
func (DefaultKeyer) ArtifactKey(opts ArtifactKeyOpts) string {
	return hashKey("artifact", opts)
}

// ScopedKeyer prefixes every key of an inner Keyer, giving each project its
// own namespace in a shared cache.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, or the default keyer when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// ArtifactKey returns the inner key with the prefix prepended.
func (k *ScopedKeyer) ArtifactKey(opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(opts)
}
