package light

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// MaxGPULights is the maximum number of lights marshaled into the light uniform per frame.
// Lights beyond the cap are ignored in scene order.
const MaxGPULights = 8

// GPULight is the GPU-aligned representation of a single light source.
// Size: 64 bytes (WGSL uniform aligned).
type GPULight struct {
	Position  [3]float32 // offset  0: world-space position (directional/spot)
	LightType uint32     // offset 12: 0 = ambient, 1 = directional, 2 = spot
	Color     [3]float32 // offset 16: RGB color
	Intensity float32    // offset 28: scalar multiplier
	Direction [3]float32 // offset 32: normalized direction toward the target
	InnerCone float32    // offset 44: cos(full-strength half-angle) for spot
	OuterCone float32    // offset 48: cos(cutoff half-angle) for spot
	_pad      [3]uint32  // offset 52: padding to 64-byte alignment
}

// Size returns the size of the GPULight struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (64)
func (g *GPULight) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPULight struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 64-byte buffer ready for GPU upload
func (g *GPULight) Marshal() []byte {
	buf := make([]byte, 64)
	g.marshalInto(buf)
	return buf
}

func (g *GPULight) marshalInto(buf []byte) {
	putVec3(buf[0:], g.Position)
	binary.LittleEndian.PutUint32(buf[12:16], g.LightType)
	putVec3(buf[16:], g.Color)
	binary.LittleEndian.PutUint32(buf[28:32], math.Float32bits(g.Intensity))
	putVec3(buf[32:], g.Direction)
	binary.LittleEndian.PutUint32(buf[44:48], math.Float32bits(g.InnerCone))
	binary.LittleEndian.PutUint32(buf[48:52], math.Float32bits(g.OuterCone))
}

func putVec3(buf []byte, v [3]float32) {
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(v[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(v[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(v[2]))
}

// ToGPU converts a Light to its GPU representation.
//
// Parameters:
//   - l: the light
//
// Returns:
//   - GPULight: the packed light
func ToGPU(l Light) GPULight {
	return GPULight{
		Position:  l.Position(),
		LightType: uint32(l.Type()),
		Color:     l.Color(),
		Intensity: l.Intensity(),
		Direction: l.Direction(),
		InnerCone: l.InnerCone(),
		OuterCone: l.OuterCone(),
	}
}

// GPULightBlockSize is the byte size of the marshaled light uniform: a 16-byte header
// followed by MaxGPULights lights.
const GPULightBlockSize = 16 + MaxGPULights*64

// MarshalBlock packs the enabled lights into the light uniform layout:
// count (u32), 12 bytes padding, then MaxGPULights GPULight slots.
//
// Parameters:
//   - lights: the scene lights
//
// Returns:
//   - []byte: GPULightBlockSize bytes ready for upload
func MarshalBlock(lights []Light) []byte {
	buf := make([]byte, GPULightBlockSize)
	count := 0
	for _, l := range lights {
		if count == MaxGPULights {
			break
		}
		if l == nil || !l.Enabled() {
			continue
		}
		g := ToGPU(l)
		g.marshalInto(buf[16+count*64:])
		count++
	}
	binary.LittleEndian.PutUint32(buf[0:4], uint32(count))
	return buf
}
