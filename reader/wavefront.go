package reader

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/achilleasa/raycast/geom"
	"github.com/achilleasa/raycast/log"
	"github.com/achilleasa/raycast/types"
)

type wavefrontMeshReader struct {
	logger log.Logger

	vertexList []types.Vec3
	indexList  []uint32
}

// Read a triangle mesh from a wavefront object file. Only vertex positions
// and faces are consumed; materials, normals and uv coordinates are ignored
// as the query core has no use for them. Faces with more than three vertices
// are fan-triangulated.
func ReadMesh(pathToFile string) (*geom.Mesh, error) {
	f, err := os.Open(pathToFile)
	if err != nil {
		return nil, fmt.Errorf("readMesh: could not open %s: %s", pathToFile, err.Error())
	}
	defer f.Close()

	return ReadMeshFrom(f, pathToFile)
}

// Read a triangle mesh in wavefront object format from r. The name is only
// used for generating error messages.
func ReadMeshFrom(r io.Reader, name string) (*geom.Mesh, error) {
	wr := &wavefrontMeshReader{
		logger: log.New("wavefront reader"),
	}

	start := time.Now()
	err := wr.parse(r, name)
	if err != nil {
		return nil, err
	}
	wr.logger.Debugf("parsed %s (%d vertices, %d triangles) in %d ms",
		name, len(wr.vertexList), len(wr.indexList)/3,
		time.Since(start).Nanoseconds()/1e6,
	)

	return &geom.Mesh{
		Positions: wr.vertexList,
		Indices:   wr.indexList,
	}, nil
}

// Parse wavefront object geometry statements.
func (wr *wavefrontMeshReader) parse(r io.Reader, name string) error {
	var lineNum int = 0

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineNum++
		lineTokens := strings.Fields(scanner.Text())
		if len(lineTokens) == 0 {
			continue
		}

		switch lineTokens[0] {
		case "v":
			v, err := parseVec3(lineTokens)
			if err != nil {
				return emitError(name, lineNum, err.Error())
			}
			wr.vertexList = append(wr.vertexList, v)
		case "f":
			err := wr.parseFace(lineTokens)
			if err != nil {
				return emitError(name, lineNum, err.Error())
			}
		}
	}

	return scanner.Err()
}

// Parse a face statement, fan-triangulating faces with more than 3 vertices.
// Vertex references may use the v, v/vt, v//vn and v/vt/vn forms; only the
// position index is kept. Indices are 1-based and may be negative to count
// from the end of the vertex list.
func (wr *wavefrontMeshReader) parseFace(lineTokens []string) error {
	if len(lineTokens) < 4 {
		return fmt.Errorf("unsupported syntax for 'f'; expected at least 3 vertex references; got %d", len(lineTokens)-1)
	}

	refs := make([]uint32, len(lineTokens)-1)
	for i, token := range lineTokens[1:] {
		vertTok := strings.Split(token, "/")[0]
		index, err := strconv.ParseInt(vertTok, 10, 32)
		if err != nil {
			return fmt.Errorf("could not parse vertex reference '%s'", token)
		}

		switch {
		case index > 0 && int(index) <= len(wr.vertexList):
			refs[i] = uint32(index - 1)
		case index < 0 && int(-index) <= len(wr.vertexList):
			refs[i] = uint32(len(wr.vertexList) + int(index))
		default:
			return fmt.Errorf("vertex reference %d out of range; %d vertices defined so far", index, len(wr.vertexList))
		}
	}

	for i := 1; i < len(refs)-1; i++ {
		wr.indexList = append(wr.indexList, refs[0], refs[i], refs[i+1])
	}

	return nil
}

// Parse a vec3 from 3 float tokens.
func parseVec3(lineTokens []string) (types.Vec3, error) {
	if len(lineTokens) < 4 {
		return types.Vec3{}, fmt.Errorf("unsupported syntax for '%s'; expected 3 arguments; got %d", lineTokens[0], len(lineTokens)-1)
	}

	var out types.Vec3
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseFloat(lineTokens[i+1], 32)
		if err != nil {
			return types.Vec3{}, fmt.Errorf("could not parse component '%s'", lineTokens[i+1])
		}
		out[i] = float32(v)
	}

	return out, nil
}

// Generate an error message prefixed with the input name and line number.
func emitError(name string, line int, msgFormat string, args ...interface{}) error {
	msg := fmt.Sprintf(msgFormat, args...)
	return fmt.Errorf("[%s: %d] error: %s", name, line, msg)
}
