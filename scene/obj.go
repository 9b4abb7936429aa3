package scene

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// LoadOBJ parses a Wavefront OBJ file into a MeshData. Only vertex positions
// and faces are read; texture/normal references and other statements are
// ignored. Faces with more than three corners are fan-triangulated.
func LoadOBJ(path string) (MeshData, error) {
	f, err := os.Open(path)
	if err != nil {
		return MeshData{}, fmt.Errorf("opening model: %w", err)
	}
	defer f.Close()

	var m MeshData
	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return MeshData{}, fmt.Errorf("line %d: short vertex", line)
			}
			for _, s := range fields[1:4] {
				v, err := strconv.ParseFloat(s, 32)
				if err != nil {
					return MeshData{}, fmt.Errorf("line %d: vertex coordinate: %w", line, err)
				}
				m.Positions = append(m.Positions, float32(v))
			}
		case "f":
			if len(fields) < 4 {
				return MeshData{}, fmt.Errorf("line %d: face with fewer than 3 corners", line)
			}
			corners := make([]uint16, 0, len(fields)-1)
			for _, s := range fields[1:] {
				idx, err := parseFaceIndex(s, len(m.Positions)/3)
				if err != nil {
					return MeshData{}, fmt.Errorf("line %d: %w", line, err)
				}
				corners = append(corners, idx)
			}
			for i := 1; i+1 < len(corners); i++ {
				m.Indices = append(m.Indices, corners[0], corners[i], corners[i+1])
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return MeshData{}, fmt.Errorf("reading model: %w", err)
	}
	return m, nil
}

// parseFaceIndex extracts the position index from an OBJ face corner
// ("7", "7/2", "7/2/3" or "7//3"). OBJ indices are 1-based; negative
// indices count back from the current vertex count.
func parseFaceIndex(s string, vertexCount int) (uint16, error) {
	if i := strings.IndexByte(s, '/'); i >= 0 {
		s = s[:i]
	}
	idx, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("face index %q: %w", s, err)
	}
	if idx < 0 {
		idx = vertexCount + idx + 1
	}
	if idx < 1 || idx > vertexCount {
		return 0, fmt.Errorf("face index %d out of range (have %d vertices)", idx, vertexCount)
	}
	return uint16(idx - 1), nil
}
