// Wavefront OBJ parser.
package formats

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/Faultbox/objviewer/pkg/encoding"
	"github.com/Faultbox/objviewer/pkg/math"
	"github.com/Faultbox/objviewer/pkg/model"
)

// MaxLineLength is the longest OBJ line accepted, including the newline.
const MaxLineLength = 2048

// faceGrowth is how many index slots are added when the face array is full.
const faceGrowth = 1000

// OBJ format errors.
var (
	ErrInvalidVertex    = errors.New("invalid OBJ vertex: expected three coordinates")
	ErrInvalidFaceIndex = errors.New("invalid OBJ face index: must be positive")
	ErrFaceIndexRange   = errors.New("OBJ face index exceeds vertex count")
	ErrLineTooLong      = errors.New("OBJ line too long")
)

// OBJCounts is the result of the counting pass.
type OBJCounts struct {
	Vertices uint32 // lines starting with "v "
	Faces    uint32 // lines starting with "f "
}

// CountOBJ counts vertex and face records without parsing them.
func CountOBJ(r io.Reader) (OBJCounts, error) {
	var c OBJCounts
	err := scanOBJLines(r, func(_ int, line string) error {
		switch {
		case strings.HasPrefix(line, "v "):
			c.Vertices++
		case strings.HasPrefix(line, "f "):
			c.Faces++
		}
		return nil
	})
	return c, err
}

// ParseOBJ reads an OBJ mesh from r into m.
//
// The input is read twice: once to size the arrays and once to fill them,
// so r must support seeking back to the start. Only "v " and "f " records
// are used; everything else is ignored. Face tokens contribute the leading
// integer before any '/', and tokens without one are skipped.
//
// On error m is left zeroed.
func ParseOBJ(r io.ReadSeeker, m *model.Model) error {
	m.Free()

	counts, err := CountOBJ(r)
	if err != nil {
		return err
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewinding OBJ input: %w", err)
	}

	m.Vertices = make([]float64, 0, 3*int(counts.Vertices))
	m.NumVerticesInPolygon = make([]uint32, 0, counts.Faces)
	m.Faces = make([]uint32, 0, 3*int(counts.Faces))

	var polygon []uint32
	err = scanOBJLines(r, func(n int, line string) error {
		switch {
		case strings.HasPrefix(line, "v "):
			v, err := parseOBJVertex(line[2:])
			if err != nil {
				return fmt.Errorf("line %d: %w", n, err)
			}
			m.AddVertex(v)
		case strings.HasPrefix(line, "f "):
			polygon, err = parseOBJFace(line[2:], polygon[:0])
			if err != nil {
				return fmt.Errorf("line %d: %w", n, err)
			}
			if len(m.Faces)+len(polygon) > cap(m.Faces) {
				m.Faces = slices.Grow(m.Faces, len(polygon)+faceGrowth)
			}
			m.AddPolygon(polygon...)
		}
		return nil
	})
	if err == nil {
		err = checkOBJIndices(m)
	}
	if err != nil {
		m.Free()
		return err
	}
	return nil
}

// ParseOBJFile parses an OBJ mesh from a file path into m.
func ParseOBJFile(path string, m *model.Model) error {
	f, err := os.Open(path)
	if err != nil {
		m.Free()
		return fmt.Errorf("open OBJ file: %w", err)
	}
	defer f.Close()

	if err := ParseOBJ(f, m); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// scanOBJLines calls fn for each line of r with its 1-based number.
// Commas are turned into decimal points before fn sees the line.
func scanOBJLines(r io.Reader, fn func(n int, line string) error) error {
	sc := bufio.NewScanner(encoding.NewUTF8Reader(r))
	sc.Buffer(make([]byte, 0, MaxLineLength), MaxLineLength)

	n := 0
	for sc.Scan() {
		n++
		if err := fn(n, encoding.NormalizeDecimal(sc.Text())); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return fmt.Errorf("line %d: %w", n+1, ErrLineTooLong)
		}
		return fmt.Errorf("read OBJ: %w", err)
	}
	return nil
}

func parseOBJVertex(s string) (math.Vec3, error) {
	fields := strings.Fields(s)
	if len(fields) < 3 {
		return math.Vec3{}, ErrInvalidVertex
	}
	var xyz [3]float64
	for i := range xyz {
		f, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return math.Vec3{}, fmt.Errorf("%w: %q", ErrInvalidVertex, fields[i])
		}
		xyz[i] = f
	}
	return math.Vec3{X: xyz[0], Y: xyz[1], Z: xyz[2]}, nil
}

func parseOBJFace(s string, dst []uint32) ([]uint32, error) {
	for _, tok := range strings.Fields(s) {
		idx, ok := leadingInt(tok)
		if !ok {
			continue
		}
		if idx <= 0 {
			return dst, fmt.Errorf("%w: %d", ErrInvalidFaceIndex, idx)
		}
		if idx > int64(^uint32(0)) {
			return dst, fmt.Errorf("%w: %d", ErrFaceIndexRange, idx)
		}
		dst = append(dst, uint32(idx))
	}
	return dst, nil
}

// leadingInt parses the optionally signed decimal integer at the start of
// tok, e.g. 12 from "12/4/7".
func leadingInt(tok string) (int64, bool) {
	end := 0
	if end < len(tok) && (tok[end] == '-' || tok[end] == '+') {
		end++
	}
	digits := end
	for end < len(tok) && tok[end] >= '0' && tok[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	v, err := strconv.ParseInt(tok[:end], 10, 64)
	if err != nil {
		// Out of int64 range; only the sign matters for validation.
		if tok[0] == '-' {
			return -1, true
		}
		return int64(^uint32(0)) + 1, true
	}
	return v, true
}

// checkOBJIndices verifies every face index refers to a loaded vertex.
// A mesh without vertices has nothing to draw and is not checked.
func checkOBJIndices(m *model.Model) error {
	if m.VertexCount == 0 {
		return nil
	}
	for i, idx := range m.Faces {
		if idx > m.VertexCount {
			return fmt.Errorf("index %d (face slot %d) with %d vertices: %w", idx, i, m.VertexCount, ErrFaceIndexRange)
		}
	}
	return nil
}
