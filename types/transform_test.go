package types

import "testing"

func TestIsTrivial(t *testing.T) {
	specs := []struct {
		t    Transform3D
		want bool
	}{
		{Ident3D(), true},
		{Transform3D{Scale: Vec3{1, 1, 1}, Rotation: Vec3{90, 0, -90}}, true},
		{Transform3D{Scale: Vec3{-1, 1, 1}, Rotation: Vec3{0, 0, 0}}, true},
		{Transform3D{Scale: Vec3{1, 1, 1}, Rotation: Vec3{45, 0, 0}}, false},
		{Transform3D{Scale: Vec3{2, 1, 1}, Rotation: Vec3{0, 0, 0}}, false},
	}
	for i, s := range specs {
		if got := s.t.IsTrivial(); got != s.want {
			t.Fatalf("[spec %d] expected IsTrivial() = %v; got %v", i, s.want, got)
		}
	}
}

func TestHasScaleHasRotation(t *testing.T) {
	tr := Transform3D{Scale: Vec3{1, 2, 1}, Rotation: Vec3{0, 45, 0}}
	if !tr.HasScale() {
		t.Fatal("expected HasScale() == true")
	}
	if !tr.HasRotation() {
		t.Fatal("expected HasRotation() == true")
	}

	trivial := Ident3D()
	if trivial.HasScale() {
		t.Fatal("expected HasScale() == false for identity")
	}
	if trivial.HasRotation() {
		t.Fatal("expected HasRotation() == false for identity")
	}
}

func TestNormalizeAngle(t *testing.T) {
	specs := []struct {
		in, want float32
	}{
		{0, 0},
		{180, 180},
		{181, -179},
		{-181, 179},
		{720 + 45, 45},
	}
	for i, s := range specs {
		if got := NormalizeAngle(s.in); got != s.want {
			t.Fatalf("[spec %d] expected NormalizeAngle(%v) = %v; got %v", i, s.in, s.want, got)
		}
	}
}

func TestAABBUnionContains(t *testing.T) {
	a := AABB{Min: XYZ(-1, -1, -1), Max: XYZ(1, 1, 1)}
	b := AABB{Min: XYZ(-2, 0, 0), Max: XYZ(0, 2, 0)}

	u := a.Union(b)
	want := AABB{Min: XYZ(-2, -1, -1), Max: XYZ(1, 2, 1)}
	if u.Min != want.Min || u.Max != want.Max {
		t.Fatalf("expected union %+v; got %+v", want, u)
	}

	if !a.Contains(AABB{Min: XYZ(-0.5, -0.5, -0.5), Max: XYZ(0.5, 0.5, 0.5)}) {
		t.Fatal("expected a to contain its own shrunk box")
	}
	if a.Contains(b) {
		t.Fatal("expected a to not contain b")
	}
}

func TestTransform3DMatrixIdentity(t *testing.T) {
	m := Ident3D().Matrix()
	p := XYZ(1, 2, 3)
	got := m.MulPoint(p)
	if got != p {
		t.Fatalf("expected identity transform to leave point unchanged; got %+v", got)
	}
}

func TestTransform3DMatrixTranslation(t *testing.T) {
	tr := Ident3D()
	tr.Position = XYZ(1, 2, 3)
	m := tr.Matrix()
	got := m.MulPoint(XYZ(0, 0, 0))
	want := XYZ(1, 2, 3)
	if got != want {
		t.Fatalf("expected translated origin %+v; got %+v", want, got)
	}
}
