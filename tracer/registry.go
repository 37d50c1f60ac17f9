package tracer

import "fmt"

// Registry holds every PacketTracer backend registered at startup, in
// registration order, and resolves SetSIMD(width, variant) requests
// against it.
type Registry struct {
	backends []PacketTracer
	selected int
}

// NewRegistry creates an empty backend registry.
func NewRegistry() *Registry {
	return &Registry{selected: -1}
}

// Register adds a backend to the registry. The first backend registered
// becomes the initially selected one.
func (r *Registry) Register(t PacketTracer) {
	r.backends = append(r.backends, t)
	if r.selected < 0 {
		r.selected = 0
	}
}

// Select resolves (width, variant) to the closest registered backend: an
// exact match when one exists, the first backend with a matching width
// otherwise, or ErrUnsupportedTarget when nothing matches at all. It
// returns the actually-selected backend's width/variant, honoring the
// "set_* returns the actually-selected value" propagation policy.
func (r *Registry) Select(width int, variant string) (PacketTracer, error) {
	if len(r.backends) == 0 {
		logger.Error(ErrNoBackends)
		return nil, ErrNoBackends
	}
	for i, b := range r.backends {
		if b.Width() == width && b.Variant() == variant {
			r.selected = i
			return b, nil
		}
	}
	for i, b := range r.backends {
		if b.Width() == width {
			r.selected = i
			logger.Debugf("no exact backend for variant=%q, falling back to width=%d variant=%q", variant, width, b.Variant())
			return b, nil
		}
	}
	err := fmt.Errorf("%w: width=%d variant=%q", ErrUnsupportedTarget, width, variant)
	logger.Error(err)
	return nil, err
}

// Backends returns every registered backend in registration order.
func (r *Registry) Backends() []PacketTracer {
	return r.backends
}

// Current returns the currently selected backend.
func (r *Registry) Current() PacketTracer {
	if r.selected < 0 {
		return nil
	}
	return r.backends[r.selected]
}

// CycleVariant advances to the next registered backend in insertion order,
// wrapping around -- replaces the original F7 cycling's `type%8 + type%7`
// arithmetic with an explicit enumeration (open question (c)).
func (r *Registry) CycleVariant() PacketTracer {
	if len(r.backends) == 0 {
		return nil
	}
	r.selected = (r.selected + 1) % len(r.backends)
	return r.backends[r.selected]
}
