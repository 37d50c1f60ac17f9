package tracer

import (
	"github.com/zouzias/QuadRay-engine/object"
	"github.com/zouzias/QuadRay-engine/types"
)

// cpuTracer is the reference PacketTracer backend: it loops over a
// packet's lanes instead of driving real SIMD hardware, but implements the
// full per-lane mask, clipper and reflection/refraction contract so that
// switching to a real vectorized backend is a drop-in swap (only Width/
// Variant and the inner loop body change).
type cpuTracer struct {
	width   int
	variant string
}

// NewCPU creates a reference packet tracer of the given lane width.
func NewCPU(width int) PacketTracer {
	return &cpuTracer{width: width, variant: "cpu"}
}

func (t *cpuTracer) Width() int      { return t.width }
func (t *cpuTracer) Variant() string { return t.variant }

func (t *cpuTracer) Trace(pkt *Packet, view *SceneView) []uint32 {
	out := make([]uint32, len(pkt.Dirs))
	for lane, dir := range pkt.Dirs {
		if !pkt.Active[lane] {
			continue
		}
		if pkt.FSAASamples <= 1 {
			out[lane] = packColor(t.traceRay(pkt.Origin, dir, pkt.Depth, view))
			continue
		}
		var sum types.Vec3
		for sample := 0; sample < pkt.FSAASamples; sample++ {
			jittered := jitterDir(dir, sample, pkt.FSAASamples)
			sum = sum.Add(t.traceRay(pkt.Origin, jittered, pkt.Depth, view))
		}
		out[lane] = packColor(sum.Mul(1.0 / float32(pkt.FSAASamples)))
	}
	return out
}

// jitterDir nudges a primary ray direction for one of the 4 FSAA
// sub-pixel samples; the offsets are fixed and tiny relative to typical
// pixel footprints so they need no access to the camera's per-pixel step.
func jitterDir(dir types.Vec3, sample, total int) types.Vec3 {
	if total != 4 {
		return dir
	}
	const eps = 1e-4
	offsets := [4]types.Vec3{
		{eps, eps, 0}, {-eps, eps, 0}, {eps, -eps, 0}, {-eps, -eps, 0},
	}
	return dir.Add(offsets[sample]).Normalize()
}

// traceRay finds the nearest surface hit in view and shades it, recursing
// for reflection/refraction until depth is exhausted.
func (t *cpuTracer) traceRay(origin, dir types.Vec3, depth uint32, view *SceneView) types.Vec3 {
	s, h, ok := nearestHit(origin, dir, 1e-4, noHitT, view.Surfaces)
	if !ok {
		return view.Ambient.Mul(view.AmbientIntensity)
	}

	worldPoint := origin.Add(dir.Mul(h.t))
	worldNormal := s.WorldMatrix().MulDir(h.normal).Normalize()

	side := s.Outer
	if dotFacing(dir, worldNormal) > 0 {
		side = s.Inner
	}
	mat := side.Material
	if mat == nil {
		return view.Ambient.Mul(view.AmbientIntensity)
	}

	color := t.shade(mat, s, worldPoint, worldNormal, dir, view)

	if depth > 0 {
		props := mat.Properties()
		if props&object.PropReflect != 0 {
			reflDir := reflect(dir, worldNormal)
			reflColor := t.traceRay(worldPoint.Add(worldNormal.Mul(1e-3)), reflDir, depth-1, view)
			color = color.Add(reflColor.Mul(mat.Reflect))
		}
		if props&object.PropRefract != 0 && mat.Transparency > 0 {
			refrDir, refracted := refract(dir, worldNormal, mat.RefractIndex)
			if refracted {
				refrColor := t.traceRay(worldPoint.Sub(worldNormal.Mul(1e-3)), refrDir, depth-1, view)
				color = color.Mul(1 - mat.Transparency).Add(refrColor.Mul(mat.Transparency))
			}
		}
	}

	return color
}

// nearestHit tests every surface of the tile's list, applying each
// surface's custom clipper list, and returns the valid (unclipped) hit
// with the smallest t.
func nearestHit(origin, dir types.Vec3, tMin, tMax float32, surfaces []*object.Surface) (*object.Surface, hit, bool) {
	var best *object.Surface
	var bestHit hit
	for _, s := range surfaces {
		h, ok := intersect(s, origin, dir, tMin, tMax)
		if !ok {
			continue
		}
		worldPoint := origin.Add(dir.Mul(h.t))
		if clipped(s, worldPoint) {
			continue
		}
		if best == nil || h.t < bestHit.t {
			best, bestHit = s, h
		}
	}
	return best, bestHit, best != nil
}

// shade computes diffuse + specular contribution from every visible light,
// casting a shadow ray per light along the unit light direction that stops
// just short of the light (t up to dist - 1e-3).
func (t *cpuTracer) shade(mat *object.Material, s *object.Surface, point, normal, viewDir types.Vec3, view *SceneView) types.Vec3 {
	diffuseBase := mat.Diffuse
	if mat.Texture != nil {
		u, v := surfaceUV(s, point)
		diffuseBase = unpackColor(mat.Texture.Sample(u, v))
	}

	color := view.Ambient.Mul(view.AmbientIntensity).MulVec(diffuseBase)

	for _, l := range view.Lights {
		lightPos := l.Position()
		toLight := lightPos.Sub(point)
		dist := toLight.Len()
		if dist < 1e-6 {
			continue
		}
		lightDir := toLight.Mul(1 / dist)

		if shadowed(point.Add(normal.Mul(1e-3)), lightDir, dist, view.Surfaces) {
			continue
		}

		atten := l.AttenuationAt(dist)
		ndotl := normal.Dot(lightDir)
		if ndotl > 0 {
			color = color.Add(l.Color.MulVec(diffuseBase).Mul(ndotl * atten * l.Lum[1]))
		}
		if mat.Power > 0 {
			half := viewDir.Neg().Add(lightDir).Normalize()
			spec := normal.Dot(half)
			if spec > 0 {
				color = color.Add(l.Color.MulVec(mat.Specular).Mul(powf(spec, mat.Power) * atten * l.Lum[1]))
			}
		}
	}
	return color
}

// shadowed casts a shadow ray through the same surface list along the
// unit-length light direction, which reaches the light at t == dist; hits
// are accepted only up to dist - 1e-3.
func shadowed(origin, lightDir types.Vec3, dist float32, surfaces []*object.Surface) bool {
	for _, s := range surfaces {
		h, ok := intersect(s, origin, lightDir, 1e-4, dist-1e-3)
		if !ok {
			continue
		}
		worldPoint := origin.Add(lightDir.Mul(h.t))
		if clipped(s, worldPoint) {
			continue
		}
		return true
	}
	return false
}

func surfaceUV(s *object.Surface, worldPoint types.Vec3) (float32, float32) {
	local := s.WorldInverse().MulPoint(worldPoint)
	return local[0], local[1]
}

func dotFacing(dir, normal types.Vec3) float32 {
	return dir.Dot(normal)
}

func reflect(dir, normal types.Vec3) types.Vec3 {
	return dir.Sub(normal.Mul(2 * dir.Dot(normal)))
}

// refract implements Snell's law; returns ok == false on total internal
// reflection.
func refract(dir, normal types.Vec3, eta float32) (types.Vec3, bool) {
	n := normal
	cosi := clampf(dir.Dot(n), -1, 1)
	etai, etat := float32(1.0), eta
	if cosi < 0 {
		cosi = -cosi
	} else {
		n = n.Neg()
		etai, etat = etat, etai
	}
	ratio := etai / etat
	k := 1 - ratio*ratio*(1-cosi*cosi)
	if k < 0 {
		return types.Vec3{}, false
	}
	return dir.Mul(ratio).Add(n.Mul(ratio*cosi - sqrtf32(k))), true
}

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func powf(base, exp float32) float32 {
	if base <= 0 {
		return 0
	}
	result := float32(1.0)
	n := int(exp)
	for i := 0; i < n; i++ {
		result *= base
	}
	return result
}

// packColor clamps an HDR color and packs it to 8-bit-per-channel XRGB.
func packColor(c types.Vec3) uint32 {
	r := clampByte(c[0])
	g := clampByte(c[1])
	b := clampByte(c[2])
	return uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

func unpackColor(xrgb uint32) types.Vec3 {
	r := float32((xrgb>>16)&0xff) / 255
	g := float32((xrgb>>8)&0xff) / 255
	b := float32(xrgb&0xff) / 255
	return types.XYZ(r, g, b)
}

func clampByte(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v * 255)
}
