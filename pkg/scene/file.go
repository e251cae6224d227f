package scene

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/Mroik/render-3d/pkg/core"
	"github.com/Mroik/render-3d/pkg/geometry"
	"github.com/Mroik/render-3d/pkg/loaders"
	"github.com/Mroik/render-3d/pkg/renderer"
)

// Extensions lists the scene file extensions LoadFile understands
var Extensions = []string{".yaml", ".yml", ".toml"}

// Sampling resolution limits for items read from files. Zero selects the
// item's default.
const (
	MaxSteps    = 1000
	MaxRings    = 1000
	MaxSegments = 2000
)

// File is the on-disk form of a scene. Omitted fields take the values of
// renderer.DefaultConfig.
type File struct {
	Name          string     `yaml:"name" toml:"name"`
	Description   string     `yaml:"description" toml:"description"`
	Width         int        `yaml:"width" toml:"width"`
	Height        int        `yaml:"height" toml:"height"`
	FocalDistance float64    `yaml:"focal_distance" toml:"focal_distance"`
	Camera        []float64  `yaml:"camera" toml:"camera"`
	Light         []float64  `yaml:"light" toml:"light"`
	Ramp          string     `yaml:"ramp" toml:"ramp"`
	Spin          SpinFile   `yaml:"spin" toml:"spin"`
	Items         []ItemFile `yaml:"items" toml:"items"`
}

// SpinFile is the per-frame rotation in a scene file
type SpinFile struct {
	Yaw   float64 `yaml:"yaw" toml:"yaw"`
	Pitch float64 `yaml:"pitch" toml:"pitch"`
}

// ItemFile describes one item. Which fields apply depends on Type:
//
//	cube:   center, size, yaw, pitch, steps
//	sphere: center, radius, rings, segments
//	quad:   corner, u, v, steps
//	ply:    path, scale, offset
type ItemFile struct {
	Type     string    `yaml:"type" toml:"type"`
	Center   []float64 `yaml:"center" toml:"center"`
	Size     float64   `yaml:"size" toml:"size"`
	Yaw      float64   `yaml:"yaw" toml:"yaw"`
	Pitch    float64   `yaml:"pitch" toml:"pitch"`
	Steps    int       `yaml:"steps" toml:"steps"`
	Radius   float64   `yaml:"radius" toml:"radius"`
	Rings    int       `yaml:"rings" toml:"rings"`
	Segments int       `yaml:"segments" toml:"segments"`
	Corner   []float64 `yaml:"corner" toml:"corner"`
	U        []float64 `yaml:"u" toml:"u"`
	V        []float64 `yaml:"v" toml:"v"`
	Path     string    `yaml:"path" toml:"path"`
	Scale    float64   `yaml:"scale" toml:"scale"`
	Offset   []float64 `yaml:"offset" toml:"offset"`
}

// LoadFile reads a YAML or TOML scene file and builds the scene it describes
func LoadFile(path string) (*Scene, error) {
	file, err := ReadFile(path)
	if err != nil {
		return nil, err
	}

	s, err := file.Build(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = sceneID(path)
	}

	core.Logger().Debug("scene loaded",
		"file", path,
		"scene", s.Name,
		"items", len(s.Items))
	return s, nil
}

// ReadFile decodes a scene file without building its items
func ReadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file: %w", err)
	}

	var file *File
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		file, err = DecodeYAML(bytes.NewReader(data))
	case ".toml":
		file, err = DecodeTOML(bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("%w: %s: unsupported extension %q", ErrInvalidScene, path, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return file, nil
}

// DecodeYAML decodes a YAML scene document. Unknown keys are rejected.
func DecodeYAML(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var file File
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScene, err)
	}
	return &file, nil
}

// DecodeTOML decodes a TOML scene document. Unknown keys are rejected.
func DecodeTOML(r io.Reader) (*File, error) {
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()

	var file File
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScene, err)
	}
	return &file, nil
}

// Config returns the renderer configuration the file describes
func (f *File) Config() (renderer.Config, error) {
	config := renderer.DefaultConfig()
	if f.Width != 0 {
		config.Width = f.Width
	}
	if f.Height != 0 {
		config.Height = f.Height
	}
	if f.FocalDistance != 0 {
		config.FocalDistance = f.FocalDistance
	}
	if f.Ramp != "" {
		config.Ramp = f.Ramp
	}

	var err error
	if config.Camera, err = vector("camera", f.Camera, config.Camera); err != nil {
		return config, err
	}
	if config.Light, err = vector("light", f.Light, config.Light); err != nil {
		return config, err
	}

	if err := config.Validate(); err != nil {
		return config, fmt.Errorf("%w: %w", ErrInvalidScene, err)
	}
	return config, nil
}

// Build creates the scene. Relative PLY paths are resolved against baseDir.
func (f *File) Build(baseDir string) (*Scene, error) {
	config, err := f.Config()
	if err != nil {
		return nil, err
	}

	s := &Scene{
		Name:        f.Name,
		Description: f.Description,
		Config:      config,
		Spin:        Spin{Yaw: f.Spin.Yaw, Pitch: f.Spin.Pitch},
	}
	for i, itemFile := range f.Items {
		item, err := itemFile.build(baseDir)
		if err != nil {
			return nil, fmt.Errorf("%w: item %d (%s): %w", ErrInvalidScene, i, itemFile.Type, err)
		}
		s.Items = append(s.Items, item)
	}
	return s, nil
}

func (it ItemFile) build(baseDir string) (geometry.Item, error) {
	switch it.Type {
	case "cube":
		center, err := vector("center", it.Center, core.Vec3{})
		if err != nil {
			return nil, err
		}
		if err := checkResolution("steps", it.Steps, MaxSteps); err != nil {
			return nil, err
		}
		cube, err := geometry.NewCube(center, it.Size, it.Yaw, it.Pitch)
		if err != nil {
			return nil, err
		}
		cube.Steps = it.Steps
		return cube, nil

	case "sphere":
		center, err := vector("center", it.Center, core.Vec3{})
		if err != nil {
			return nil, err
		}
		if err := checkResolution("rings", it.Rings, MaxRings); err != nil {
			return nil, err
		}
		if err := checkResolution("segments", it.Segments, MaxSegments); err != nil {
			return nil, err
		}
		sphere, err := geometry.NewSphere(center, it.Radius)
		if err != nil {
			return nil, err
		}
		sphere.Rings = it.Rings
		sphere.Segments = it.Segments
		return sphere, nil

	case "quad":
		corner, err := vector("corner", it.Corner, core.Vec3{})
		if err != nil {
			return nil, err
		}
		if err := checkResolution("steps", it.Steps, MaxSteps); err != nil {
			return nil, err
		}
		if it.U == nil || it.V == nil {
			return nil, errors.New("quad needs both u and v")
		}
		u, err := vector("u", it.U, core.Vec3{})
		if err != nil {
			return nil, err
		}
		v, err := vector("v", it.V, core.Vec3{})
		if err != nil {
			return nil, err
		}
		quad, err := geometry.NewQuad(corner, u, v)
		if err != nil {
			return nil, err
		}
		quad.Steps = it.Steps
		return quad, nil

	case "ply":
		if it.Path == "" {
			return nil, errors.New("ply item needs a path")
		}
		path := it.Path
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		offset, err := vector("offset", it.Offset, core.Vec3{})
		if err != nil {
			return nil, err
		}
		cloud, err := loaders.LoadPointCloud(path)
		if err != nil {
			return nil, err
		}
		scale := it.Scale
		if scale == 0 {
			scale = 1
		}
		cloud.Transform(scale, offset)
		return cloud, nil
	}
	return nil, fmt.Errorf("unknown item type %q", it.Type)
}

// checkResolution bounds a sampling resolution to [0, limit]
func checkResolution(field string, v, limit int) error {
	if v < 0 || v > limit {
		return fmt.Errorf("%s must be between 0 and %d, got %d", field, limit, v)
	}
	return nil
}

// vector converts a three-element list, returning def when the list is absent
func vector(field string, v []float64, def core.Vec3) (core.Vec3, error) {
	if v == nil {
		return def, nil
	}
	if len(v) != 3 {
		return def, fmt.Errorf("%w: %s needs 3 components, got %d", ErrInvalidScene, field, len(v))
	}
	return core.NewVec3(v[0], v[1], v[2]), nil
}
