package loaders

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Mroik/render-3d/pkg/core"
	"github.com/Mroik/render-3d/pkg/geometry"
)

// ErrUnsupportedPLY is returned for PLY files this loader cannot read
var ErrUnsupportedPLY = errors.New("unsupported PLY file")

// maxPreallocVertices bounds the capacity reserved from the header's vertex
// count; larger files grow their slices as records are read
const maxPreallocVertices = 1 << 16

// PLYHeader represents the parsed header information from a PLY file
type PLYHeader struct {
	Format      string // "binary_little_endian", "binary_big_endian", or "ascii"
	Version     string // Usually "1.0"
	VertexCount int
	FaceCount   int
	VertexProps []PLYProperty
	Elements    []string // Element names in file order

	HasNormals      bool
	PositionIndices [3]int // Indices of x, y, z properties
	NormalIndices   [3]int // Indices of nx, ny, nz properties
}

// PLYProperty represents a property definition in the PLY header
type PLYProperty struct {
	Name     string
	Type     string
	IsList   bool
	ListType string // For list properties, the type of the count
	DataType string // For list properties, the type of the data
}

// PLYData contains the vertex data loaded from a PLY file
type PLYData struct {
	Vertices []core.Vec3 // Vertex positions (x, y, z)
	Normals  []core.Vec3 // Per-vertex normals (nx, ny, nz) - empty if not present
}

// LoadPLY loads a PLY file and returns its vertex positions and normals
func LoadPLY(filename string) (*PLYData, error) {
	startTime := time.Now()

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open PLY file: %w", err)
	}
	defer file.Close()

	data, err := ReadPLY(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}

	core.Logger().Info("loaded PLY data",
		"file", filename,
		"vertices", len(data.Vertices),
		"normals", len(data.Normals) > 0,
		"elapsed", time.Since(startTime))

	return data, nil
}

// ReadPLY decodes PLY vertex data from r. Only the vertex element is read; it
// must be the first element in the file.
func ReadPLY(r io.Reader) (*PLYData, error) {
	reader := bufio.NewReader(r)

	header, err := parsePLYHeader(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to parse PLY header: %w", err)
	}

	var order binary.ByteOrder
	switch header.Format {
	case "ascii":
		return readASCIIVertices(reader, header)
	case "binary_little_endian":
		order = binary.LittleEndian
	case "binary_big_endian":
		order = binary.BigEndian
	default:
		return nil, fmt.Errorf("%w: format %q", ErrUnsupportedPLY, header.Format)
	}
	return readBinaryVertices(reader, header, order)
}

// LoadPointCloud loads a PLY file with per-vertex normals as a point cloud
func LoadPointCloud(filename string) (*geometry.PointCloud, error) {
	data, err := LoadPLY(filename)
	if err != nil {
		return nil, err
	}
	if len(data.Normals) == 0 {
		return nil, fmt.Errorf("%w: %s has no vertex normals", ErrUnsupportedPLY, filename)
	}
	return geometry.NewPointCloud(data.Vertices, data.Normals)
}

// parsePLYHeader reads header lines up to and including end_header
func parsePLYHeader(reader *bufio.Reader) (*PLYHeader, error) {
	header := &PLYHeader{
		PositionIndices: [3]int{-1, -1, -1},
		NormalIndices:   [3]int{-1, -1, -1},
	}

	magic, err := reader.ReadString('\n')
	if err != nil || strings.TrimSpace(magic) != "ply" {
		return nil, fmt.Errorf("%w: missing ply magic", ErrUnsupportedPLY)
	}

	var currentElement string
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("%w: header ended before end_header", ErrUnsupportedPLY)
		}
		line = strings.TrimSpace(line)

		if line == "end_header" {
			break
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "format":
			if len(parts) >= 3 {
				header.Format = parts[1]
				header.Version = parts[2]
			}
		case "comment", "obj_info":
			// Ignore comments
		case "element":
			if len(parts) < 3 {
				return nil, fmt.Errorf("invalid element definition: %q", line)
			}
			count, err := strconv.Atoi(parts[2])
			if err != nil || count < 0 {
				return nil, fmt.Errorf("invalid element count: %s", parts[2])
			}

			currentElement = parts[1]
			header.Elements = append(header.Elements, currentElement)
			switch currentElement {
			case "vertex":
				header.VertexCount = count
			case "face":
				header.FaceCount = count
			}
		case "property":
			prop, err := parsePLYProperty(parts[1:])
			if err != nil {
				return nil, fmt.Errorf("failed to parse property: %w", err)
			}
			if currentElement != "vertex" {
				continue
			}
			if prop.IsList {
				return nil, fmt.Errorf("%w: list property %q on vertex element", ErrUnsupportedPLY, prop.Name)
			}
			if _, ok := scalarSize(prop.Type); !ok {
				return nil, fmt.Errorf("%w: property type %q", ErrUnsupportedPLY, prop.Type)
			}

			header.VertexProps = append(header.VertexProps, prop)
			propIndex := len(header.VertexProps) - 1

			switch prop.Name {
			case "x":
				header.PositionIndices[0] = propIndex
			case "y":
				header.PositionIndices[1] = propIndex
			case "z":
				header.PositionIndices[2] = propIndex
			case "nx":
				header.NormalIndices[0] = propIndex
			case "ny":
				header.NormalIndices[1] = propIndex
			case "nz":
				header.NormalIndices[2] = propIndex
			}
		}
	}

	if len(header.Elements) == 0 || header.Elements[0] != "vertex" {
		return nil, fmt.Errorf("%w: vertex must be the first element", ErrUnsupportedPLY)
	}
	for _, idx := range header.PositionIndices {
		if idx < 0 {
			return nil, fmt.Errorf("%w: vertex element lacks x, y or z", ErrUnsupportedPLY)
		}
	}
	header.HasNormals = header.NormalIndices[0] >= 0 && header.NormalIndices[1] >= 0 && header.NormalIndices[2] >= 0

	return header, nil
}

// parsePLYProperty parses a property line from the PLY header
func parsePLYProperty(parts []string) (PLYProperty, error) {
	if len(parts) < 2 {
		return PLYProperty{}, fmt.Errorf("invalid property definition")
	}

	prop := PLYProperty{}

	if parts[0] == "list" {
		if len(parts) < 4 {
			return PLYProperty{}, fmt.Errorf("invalid list property definition")
		}
		prop.IsList = true
		prop.ListType = parts[1]
		prop.DataType = parts[2]
		prop.Name = parts[3]
	} else {
		prop.Type = parts[0]
		prop.Name = parts[1]
	}

	return prop, nil
}

// scalarSize returns the encoded size in bytes of a PLY scalar type
func scalarSize(typ string) (int, bool) {
	switch typ {
	case "char", "int8", "uchar", "uint8":
		return 1, true
	case "short", "int16", "ushort", "uint16":
		return 2, true
	case "int", "int32", "uint", "uint32", "float", "float32":
		return 4, true
	case "double", "float64":
		return 8, true
	}
	return 0, false
}

// decodeScalar converts one encoded scalar to float64
func decodeScalar(b []byte, typ string, order binary.ByteOrder) float64 {
	switch typ {
	case "char", "int8":
		return float64(int8(b[0]))
	case "uchar", "uint8":
		return float64(b[0])
	case "short", "int16":
		return float64(int16(order.Uint16(b)))
	case "ushort", "uint16":
		return float64(order.Uint16(b))
	case "int", "int32":
		return float64(int32(order.Uint32(b)))
	case "uint", "uint32":
		return float64(order.Uint32(b))
	case "float", "float32":
		return float64(math.Float32frombits(order.Uint32(b)))
	case "double", "float64":
		return math.Float64frombits(order.Uint64(b))
	}
	return 0
}

// calculateVertexSize calculates the size of a vertex in bytes
func calculateVertexSize(props []PLYProperty) int {
	size := 0
	for _, prop := range props {
		n, _ := scalarSize(prop.Type)
		size += n
	}
	return size
}

func newPLYData(header *PLYHeader) *PLYData {
	capacity := min(header.VertexCount, maxPreallocVertices)
	data := &PLYData{Vertices: make([]core.Vec3, 0, capacity)}
	if header.HasNormals {
		data.Normals = make([]core.Vec3, 0, capacity)
	}
	return data
}

func (d *PLYData) appendVertex(header *PLYHeader, values []float64) {
	p := header.PositionIndices
	d.Vertices = append(d.Vertices, core.NewVec3(values[p[0]], values[p[1]], values[p[2]]))
	if header.HasNormals {
		n := header.NormalIndices
		d.Normals = append(d.Normals, core.NewVec3(values[n[0]], values[n[1]], values[n[2]]))
	}
}

// readBinaryVertices reads vertex records one at a time, so a header that
// overstates the vertex count fails on the missing data
func readBinaryVertices(reader io.Reader, header *PLYHeader, order binary.ByteOrder) (*PLYData, error) {
	record := make([]byte, calculateVertexSize(header.VertexProps))
	data := newPLYData(header)
	values := make([]float64, len(header.VertexProps))

	for i := 0; i < header.VertexCount; i++ {
		if _, err := io.ReadFull(reader, record); err != nil {
			return nil, fmt.Errorf("%w: vertex data ends after %d of %d vertices: %w",
				ErrUnsupportedPLY, i, header.VertexCount, err)
		}

		offset := 0
		for j, prop := range header.VertexProps {
			n, _ := scalarSize(prop.Type)
			values[j] = decodeScalar(record[offset:offset+n], prop.Type, order)
			offset += n
		}
		data.appendVertex(header, values)
	}
	return data, nil
}

// readASCIIVertices reads one whitespace-separated vertex record per line
func readASCIIVertices(reader *bufio.Reader, header *PLYHeader) (*PLYData, error) {
	scanner := bufio.NewScanner(reader)
	data := newPLYData(header)
	values := make([]float64, len(header.VertexProps))

	for i := 0; i < header.VertexCount; {
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return nil, fmt.Errorf("failed to read vertex %d: %w", i, err)
			}
			return nil, fmt.Errorf("%w: vertex data ends after %d of %d vertices", ErrUnsupportedPLY, i, header.VertexCount)
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != len(values) {
			return nil, fmt.Errorf("vertex %d: expected %d values, got %d", i, len(values), len(fields))
		}
		for j, field := range fields {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("vertex %d: invalid value %q", i, field)
			}
			values[j] = v
		}
		data.appendVertex(header, values)
		i++
	}
	return data, nil
}
