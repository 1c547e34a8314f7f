package material

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUMaterialParams is the GPU-aligned per-material uniform consumed by the mesh fragment shader.
// Size: 48 bytes (three 16-byte vectors, std140 aligned).
type GPUMaterialParams struct {
	Color  [4]float32 // offset  0: linear RGB base color + opacity (16 bytes)
	Params [4]float32 // offset 16: metalness, roughness, alpha cutoff, lit flag (16 bytes)
	Flags  [4]uint32  // offset 32: has map, side, blending, unused (16 bytes)
}

// Size returns the size of the GPUMaterialParams struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUMaterialParams) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUMaterialParams struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 48-byte buffer ready for GPU upload.
func (g *GPUMaterialParams) Marshal() []byte {
	buf := make([]byte, 48)
	for i, v := range g.Color {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	for i, v := range g.Params {
		binary.LittleEndian.PutUint32(buf[16+i*4:], math.Float32bits(v))
	}
	for i, v := range g.Flags {
		binary.LittleEndian.PutUint32(buf[32+i*4:], v)
	}
	return buf
}

// Params builds the uniform for m at its current opacity.
//
// Parameters:
//   - m: the material
//   - hasMap: whether a loaded texture is bound
//
// Returns:
//   - GPUMaterialParams: the uniform contents
func Params(m Material, hasMap bool) GPUMaterialParams {
	c := m.Color()
	lit := float32(0)
	if m.Type() == TypeStandard {
		lit = 1
	}
	var mapFlag uint32
	if hasMap {
		mapFlag = 1
	}
	return GPUMaterialParams{
		Color:  [4]float32{c[0], c[1], c[2], m.Opacity()},
		Params: [4]float32{m.Metalness(), m.Roughness(), m.AlphaTest(), lit},
		Flags:  [4]uint32{mapFlag, uint32(m.Side()), uint32(m.Blending()), 0},
	}
}
