package geometry

import (
	"fmt"

	"github.com/lumen-render/lumen/pkg/core"
)

// TriangleMesh holds shared vertex data for a set of triangles. The mesh
// loader collaborator hands the renderer flat vertex/index/normal arrays;
// the mesh itself exposes one lightweight Shape per face so the faces feed
// the scene BVH individually.
type TriangleMesh struct {
	Vertices []core.Vec3 // Vertex positions
	Indices  []int       // Three indices per face
	Normals  []core.Vec3 // Optional per-vertex shading normals (len 0 or len(Vertices))
	UVs      []core.Vec2 // Optional per-vertex texture coordinates
	Material core.Material
}

// NewTriangleMesh validates the flat arrays and creates a mesh
func NewTriangleMesh(vertices []core.Vec3, indices []int, normals []core.Vec3, uvs []core.Vec2, material core.Material) (*TriangleMesh, error) {
	if len(indices)%3 != 0 {
		return nil, fmt.Errorf("mesh: index count %d is not a multiple of 3", len(indices))
	}
	if len(indices) == 0 {
		return nil, fmt.Errorf("mesh: no faces")
	}
	for _, index := range indices {
		if index < 0 || index >= len(vertices) {
			return nil, fmt.Errorf("mesh: vertex index %d out of range [0, %d)", index, len(vertices))
		}
	}
	if len(normals) != 0 && len(normals) != len(vertices) {
		return nil, fmt.Errorf("mesh: normal count %d does not match vertex count %d", len(normals), len(vertices))
	}
	if len(uvs) != 0 && len(uvs) != len(vertices) {
		return nil, fmt.Errorf("mesh: uv count %d does not match vertex count %d", len(uvs), len(vertices))
	}

	return &TriangleMesh{
		Vertices: vertices,
		Indices:  indices,
		Normals:  normals,
		UVs:      uvs,
		Material: material,
	}, nil
}

// FaceCount returns the number of triangles in the mesh
func (m *TriangleMesh) FaceCount() int {
	return len(m.Indices) / 3
}

// Faces returns one Shape per triangle, each referencing the shared arrays
func (m *TriangleMesh) Faces() []core.Shape {
	faces := make([]core.Shape, m.FaceCount())
	for i := range faces {
		faces[i] = &MeshTriangle{mesh: m, face: i}
	}
	return faces
}

// MeshTriangle is a single face of a TriangleMesh. It stores only the mesh
// pointer and face index; vertex data stays shared.
type MeshTriangle struct {
	mesh *TriangleMesh
	face int
}

// vertices returns the three corner positions of the face
func (mt *MeshTriangle) vertices() (core.Vec3, core.Vec3, core.Vec3) {
	m := mt.mesh
	i := mt.face * 3
	return m.Vertices[m.Indices[i]], m.Vertices[m.Indices[i+1]], m.Vertices[m.Indices[i+2]]
}

// Hit tests if a ray intersects this face, interpolating shading normals
// and UVs when the mesh carries them
func (mt *MeshTriangle) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	v0, v1, v2 := mt.vertices()

	tHit, u, v, ok := intersectTriangle(ray, v0, v1, v2, tMin, tMax)
	if !ok {
		return nil, false
	}

	m := mt.mesh
	i := mt.face * 3
	i0, i1, i2 := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
	w := 1 - u - v

	var normal core.Vec3
	if len(m.Normals) > 0 {
		normal = m.Normals[i0].Multiply(w).
			Add(m.Normals[i1].Multiply(u)).
			Add(m.Normals[i2].Multiply(v)).
			Normalize()
	}
	if normal.IsBlack() {
		// Zero-length interpolated (or missing) normals fall back to the
		// geometric normal
		normal = v1.Subtract(v0).Cross(v2.Subtract(v0)).Normalize()
		if normal.IsBlack() {
			return nil, false
		}
	}

	uv := core.NewVec2(u, v)
	if len(m.UVs) > 0 {
		uv = core.NewVec2(
			w*m.UVs[i0].X+u*m.UVs[i1].X+v*m.UVs[i2].X,
			w*m.UVs[i0].Y+u*m.UVs[i1].Y+v*m.UVs[i2].Y,
		)
	}

	hitRecord := &core.HitRecord{
		T:        tHit,
		Point:    ray.At(tHit),
		UV:       uv,
		Material: m.Material,
	}
	hitRecord.SetFaceNormal(ray, normal)

	return hitRecord, true
}

// BoundingBox returns the axis-aligned bounding box for this face
func (mt *MeshTriangle) BoundingBox() core.AABB {
	v0, v1, v2 := mt.vertices()
	return core.NewAABBFromPoints(v0, v1, v2).Expand(1e-8)
}
