package cache

// ScopedKeyer namespaces artifact keys. The serve command uses it to keep
// preview artifacts apart from render artifacts when both point at the
// same Redis instance.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "serve:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer prepends prefix to every key inner produces. A nil inner
// means the default artifact keyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

func (k *ScopedKeyer) ArtifactKey(modelHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(modelHash, opts)
}
