package object

import "github.com/zouzias/QuadRay-engine/arena"

// Registry holds ordered, insertion-order lists of every material, texture,
// camera, light, surface and array created for a scene. The tracer
// iterates these lists directly, so insertion order is part of the public
// contract (it is what makes per-frame rendering deterministic).
type Registry struct {
	arena *arena.Arena

	Materials []*Material
	Textures  []*Texture
	Cameras   []*Camera
	Lights    []*Light
	Surfaces  []*Surface
	Arrays    []*Array

	namedTextures map[string]*Texture
}

// NewRegistry creates an empty registry backed by an arena with the given
// byte budget.
func NewRegistry(arenaBytes int) *Registry {
	return &Registry{
		arena:         arena.New(arenaBytes),
		namedTextures: make(map[string]*Texture),
	}
}

// Arena exposes the backing bump allocator whose budget registered nodes
// are charged against; clipper list nodes are ordinary Go allocations,
// not carved from it.
func (r *Registry) Arena() *arena.Arena {
	return r.arena
}

// AddMaterial registers a material and charges its footprint against the
// arena budget.
func (r *Registry) AddMaterial(m *Material) error {
	if err := r.arena.Charge(materialFootprint); err != nil {
		return err
	}
	r.Materials = append(r.Materials, m)
	return nil
}

// AddTexture registers a texture. If name is non-empty and a texture with
// the same name already exists, the existing instance is returned instead
// (textures may be shared by name, interned in the registry).
func (r *Registry) AddTexture(name string, t *Texture) (*Texture, error) {
	if name != "" {
		if existing, ok := r.namedTextures[name]; ok {
			return existing, nil
		}
	}
	if err := r.arena.Charge(textureFootprint(t)); err != nil {
		return nil, err
	}
	t.Name = name
	r.Textures = append(r.Textures, t)
	if name != "" {
		r.namedTextures[name] = t
	}
	return t, nil
}

func (r *Registry) addCamera(c *Camera) error {
	if err := r.arena.Charge(nodeFootprint); err != nil {
		return err
	}
	r.Cameras = append(r.Cameras, c)
	return nil
}

func (r *Registry) addLight(l *Light) error {
	if err := r.arena.Charge(nodeFootprint); err != nil {
		return err
	}
	r.Lights = append(r.Lights, l)
	return nil
}

func (r *Registry) addSurface(s *Surface) error {
	if err := r.arena.Charge(nodeFootprint); err != nil {
		return err
	}
	r.Surfaces = append(r.Surfaces, s)
	return nil
}

func (r *Registry) addArray(a *Array) error {
	if err := r.arena.Charge(nodeFootprint); err != nil {
		return err
	}
	r.Arrays = append(r.Arrays, a)
	return nil
}

// Rough per-node byte footprints used only to drive the arena's exhaustion
// accounting; Go's allocator owns the real memory.
const (
	nodeFootprint     = 256
	materialFootprint = 96
)

func textureFootprint(t *Texture) int {
	if t.IsSolid() {
		return 16
	}
	return 16 + int(t.Width)*int(t.Height)*4
}
