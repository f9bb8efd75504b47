package breedpatch

import (
	"strings"

	"github.com/fastbreeding/breedpatch/catalog"
)

// Registry is what a run knows about creatures: registered mods and
// built-in animals. It is read only once built.
type Registry struct {
	Manifest *catalog.Manifest
	Vanilla  *catalog.Vanilla
}

func NewRegistry(m *catalog.Manifest, v *catalog.Vanilla) *Registry {
	if v == nil {
		v = catalog.DefaultVanilla()
	}
	if m == nil {
		m, _ = catalog.ParseManifest([]byte("{}"))
	}
	return &Registry{Manifest: m, Vanilla: v}
}

// TargetSettingKey returns the setting scaling the creature of target, a
// domain-qualified file such as "game:entities/land/pig-wild-male.json".
// ok is false for targets that are neither a built-in animal nor a file of
// a registered mod.
func (r *Registry) TargetSettingKey(target string) (key string, ok bool) {
	domain, _, _ := strings.Cut(target, ":")
	if domain == catalog.GameDomain {
		a, ok := r.Vanilla.Find(target)
		if !ok {
			return "", false
		}
		return a.Key, true
	}
	if !r.Manifest.Has(domain) {
		return "", false
	}
	return r.Manifest.SettingKey(domain), true
}
