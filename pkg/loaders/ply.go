package loaders

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/lumen-render/lumen/pkg/core"
)

// PLYData is the mesh data extracted from a PLY file: positions and
// triangle indices, plus per-vertex normals and texture coordinates when
// the file carries them. Polygonal faces are fan-triangulated.
type PLYData struct {
	Vertices []core.Vec3
	Indices  []int
	Normals  []core.Vec3
	UVs      []core.Vec2
}

type plyProperty struct {
	name      string
	typ       string
	isList    bool
	countType string
	elemType  string
}

type plyHeader struct {
	format      string // "ascii", "binary_little_endian" or "binary_big_endian"
	vertexCount int
	faceCount   int
	vertexProps []plyProperty
	faceProps   []plyProperty
}

// LoadPLYFile opens and parses a PLY mesh file
func LoadPLYFile(path string) (*PLYData, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return LoadPLY(file)
}

// LoadPLY parses a PLY mesh from a reader. ASCII and both binary byte
// orders are supported; unknown vertex and face properties are skipped.
func LoadPLY(r io.Reader) (*PLYData, error) {
	br := bufio.NewReaderSize(r, 1<<20)

	header, err := parsePLYHeader(br)
	if err != nil {
		return nil, fmt.Errorf("parsing ply header: %w", err)
	}

	switch header.format {
	case "ascii":
		return readASCIIBody(br, header)
	case "binary_little_endian":
		return readBinaryBody(br, header, binary.LittleEndian)
	case "binary_big_endian":
		return readBinaryBody(br, header, binary.BigEndian)
	default:
		return nil, fmt.Errorf("ply format %q is not supported", header.format)
	}
}

func parsePLYHeader(br *bufio.Reader) (*plyHeader, error) {
	magic, err := br.ReadString('\n')
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(magic) != "ply" {
		return nil, fmt.Errorf("missing ply magic line")
	}

	header := &plyHeader{}
	currentElement := ""

	for {
		line, err := br.ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("header ended unexpectedly: %w", err)
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "end_header":
			return header, nil

		case "comment", "obj_info":

		case "format":
			if len(fields) < 2 {
				return nil, fmt.Errorf("malformed format line %q", strings.TrimSpace(line))
			}
			header.format = fields[1]

		case "element":
			if len(fields) < 3 {
				return nil, fmt.Errorf("malformed element line %q", strings.TrimSpace(line))
			}
			count, err := strconv.Atoi(fields[2])
			if err != nil || count < 0 {
				return nil, fmt.Errorf("invalid element count %q", fields[2])
			}
			currentElement = fields[1]
			switch currentElement {
			case "vertex":
				header.vertexCount = count
			case "face":
				header.faceCount = count
			}

		case "property":
			prop, err := parsePLYProperty(fields[1:])
			if err != nil {
				return nil, err
			}
			switch currentElement {
			case "vertex":
				header.vertexProps = append(header.vertexProps, prop)
			case "face":
				header.faceProps = append(header.faceProps, prop)
			}
		}
	}
}

func parsePLYProperty(fields []string) (plyProperty, error) {
	if len(fields) >= 4 && fields[0] == "list" {
		return plyProperty{
			name:      fields[3],
			isList:    true,
			countType: fields[1],
			elemType:  fields[2],
		}, nil
	}
	if len(fields) >= 2 {
		return plyProperty{name: fields[1], typ: fields[0]}, nil
	}
	return plyProperty{}, fmt.Errorf("malformed property definition %v", fields)
}

// vertexLayout records which property slot feeds which vertex attribute
type vertexLayout struct {
	x, y, z    int
	nx, ny, nz int
	u, v       int
}

func newVertexLayout(props []plyProperty) (vertexLayout, error) {
	layout := vertexLayout{x: -1, y: -1, z: -1, nx: -1, ny: -1, nz: -1, u: -1, v: -1}

	for i, prop := range props {
		if prop.isList {
			continue
		}
		switch prop.name {
		case "x":
			layout.x = i
		case "y":
			layout.y = i
		case "z":
			layout.z = i
		case "nx":
			layout.nx = i
		case "ny":
			layout.ny = i
		case "nz":
			layout.nz = i
		case "u", "s", "texture_u":
			layout.u = i
		case "v", "t", "texture_v":
			layout.v = i
		}
	}

	if layout.x < 0 || layout.y < 0 || layout.z < 0 {
		return layout, fmt.Errorf("vertex element is missing x/y/z properties")
	}
	return layout, nil
}

func (l vertexLayout) hasNormals() bool { return l.nx >= 0 && l.ny >= 0 && l.nz >= 0 }
func (l vertexLayout) hasUVs() bool     { return l.u >= 0 && l.v >= 0 }

// assemble builds PLYData from one row of scalar values per vertex
func assemblePLYData(header *plyHeader, layout vertexLayout, rows [][]float64, indices []int) *PLYData {
	data := &PLYData{
		Vertices: make([]core.Vec3, 0, header.vertexCount),
		Indices:  indices,
	}
	if layout.hasNormals() {
		data.Normals = make([]core.Vec3, 0, header.vertexCount)
	}
	if layout.hasUVs() {
		data.UVs = make([]core.Vec2, 0, header.vertexCount)
	}

	for _, row := range rows {
		data.Vertices = append(data.Vertices, core.NewVec3(row[layout.x], row[layout.y], row[layout.z]))
		if layout.hasNormals() {
			data.Normals = append(data.Normals, core.NewVec3(row[layout.nx], row[layout.ny], row[layout.nz]))
		}
		if layout.hasUVs() {
			data.UVs = append(data.UVs, core.NewVec2(row[layout.u], row[layout.v]))
		}
	}

	return data
}

// triangulate appends a face as a triangle fan and validates its indices
func triangulate(indices []int, face []int, vertexCount int) ([]int, error) {
	if len(face) < 3 {
		return nil, fmt.Errorf("face has %d vertices", len(face))
	}
	for _, idx := range face {
		if idx < 0 || idx >= vertexCount {
			return nil, fmt.Errorf("vertex index %d out of range [0, %d)", idx, vertexCount)
		}
	}
	for k := 2; k < len(face); k++ {
		indices = append(indices, face[0], face[k-1], face[k])
	}
	return indices, nil
}

func readBinaryBody(br *bufio.Reader, header *plyHeader, order binary.ByteOrder) (*PLYData, error) {
	layout, err := newVertexLayout(header.vertexProps)
	if err != nil {
		return nil, err
	}

	rows := make([][]float64, header.vertexCount)
	for i := range rows {
		row := make([]float64, len(header.vertexProps))
		for p, prop := range header.vertexProps {
			if prop.isList {
				return nil, fmt.Errorf("list-valued vertex property %q is not supported", prop.name)
			}
			value, err := readScalar(br, prop.typ, order)
			if err != nil {
				return nil, fmt.Errorf("reading vertex %d: %w", i, err)
			}
			row[p] = value
		}
		rows[i] = row
	}

	indices := make([]int, 0, header.faceCount*3)
	face := make([]int, 0, 8)
	for i := 0; i < header.faceCount; i++ {
		for _, prop := range header.faceProps {
			if !prop.isList {
				if _, err := readScalar(br, prop.typ, order); err != nil {
					return nil, fmt.Errorf("reading face %d: %w", i, err)
				}
				continue
			}

			count, err := readScalar(br, prop.countType, order)
			if err != nil {
				return nil, fmt.Errorf("reading face %d count: %w", i, err)
			}

			if prop.name != "vertex_indices" && prop.name != "vertex_index" {
				for k := 0; k < int(count); k++ {
					if _, err := readScalar(br, prop.elemType, order); err != nil {
						return nil, fmt.Errorf("skipping face %d property %q: %w", i, prop.name, err)
					}
				}
				continue
			}

			face = face[:0]
			for k := 0; k < int(count); k++ {
				idx, err := readScalar(br, prop.elemType, order)
				if err != nil {
					return nil, fmt.Errorf("reading face %d index: %w", i, err)
				}
				face = append(face, int(idx))
			}
			if indices, err = triangulate(indices, face, header.vertexCount); err != nil {
				return nil, fmt.Errorf("face %d: %w", i, err)
			}
		}
	}

	return assemblePLYData(header, layout, rows, indices), nil
}

func readASCIIBody(br *bufio.Reader, header *plyHeader) (*PLYData, error) {
	layout, err := newVertexLayout(header.vertexProps)
	if err != nil {
		return nil, err
	}

	scanner := bufio.NewScanner(br)
	scanner.Split(bufio.ScanWords)
	scanner.Buffer(make([]byte, 64*1024), 1<<20)

	next := func() (float64, error) {
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return 0, err
			}
			return 0, io.ErrUnexpectedEOF
		}
		return strconv.ParseFloat(scanner.Text(), 64)
	}

	rows := make([][]float64, header.vertexCount)
	for i := range rows {
		row := make([]float64, len(header.vertexProps))
		for p := range header.vertexProps {
			value, err := next()
			if err != nil {
				return nil, fmt.Errorf("reading vertex %d: %w", i, err)
			}
			row[p] = value
		}
		rows[i] = row
	}

	indices := make([]int, 0, header.faceCount*3)
	face := make([]int, 0, 8)
	for i := 0; i < header.faceCount; i++ {
		for _, prop := range header.faceProps {
			if !prop.isList {
				if _, err := next(); err != nil {
					return nil, fmt.Errorf("reading face %d: %w", i, err)
				}
				continue
			}

			count, err := next()
			if err != nil {
				return nil, fmt.Errorf("reading face %d count: %w", i, err)
			}

			isIndexList := prop.name == "vertex_indices" || prop.name == "vertex_index"
			face = face[:0]
			for k := 0; k < int(count); k++ {
				value, err := next()
				if err != nil {
					return nil, fmt.Errorf("reading face %d: %w", i, err)
				}
				if isIndexList {
					face = append(face, int(value))
				}
			}
			if isIndexList {
				if indices, err = triangulate(indices, face, header.vertexCount); err != nil {
					return nil, fmt.Errorf("face %d: %w", i, err)
				}
			}
		}
	}

	return assemblePLYData(header, layout, rows, indices), nil
}

// readScalar reads one binary value of the given PLY type as a float64
func readScalar(r io.Reader, typ string, order binary.ByteOrder) (float64, error) {
	switch typ {
	case "float", "float32":
		var v float32
		err := binary.Read(r, order, &v)
		return float64(v), err
	case "double", "float64":
		var v float64
		err := binary.Read(r, order, &v)
		return v, err
	case "char", "int8":
		var v int8
		err := binary.Read(r, order, &v)
		return float64(v), err
	case "uchar", "uint8":
		var v uint8
		err := binary.Read(r, order, &v)
		return float64(v), err
	case "short", "int16":
		var v int16
		err := binary.Read(r, order, &v)
		return float64(v), err
	case "ushort", "uint16":
		var v uint16
		err := binary.Read(r, order, &v)
		return float64(v), err
	case "int", "int32":
		var v int32
		err := binary.Read(r, order, &v)
		return float64(v), err
	case "uint", "uint32":
		var v uint32
		err := binary.Read(r, order, &v)
		return float64(v), err
	default:
		return 0, fmt.Errorf("ply type %q is not supported", typ)
	}
}
