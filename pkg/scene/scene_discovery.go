package scene

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Mroik/render-3d/pkg/core"
)

const (
	// DefaultDir is where Create and the CLI look for scene files by name
	DefaultDir = "scenes"

	groupBuiltin = "Built-in Scenes"
	groupFile    = "Scene Files"
)

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string // Name accepted by Create
	DisplayName string // Listing name
	Description string // Optional description
	Group       string // Grouping category
	Type        string // "builtin" or "file"
	FilePath    string // Path to the scene file (file type only)
}

// ListScenes returns the built-in scenes followed by the scene files found in
// dir, each group sorted by display name. A missing directory yields only the
// built-ins; files that fail to decode are skipped with a warning.
func ListScenes(dir string) ([]SceneInfo, error) {
	var scenes []SceneInfo
	for _, name := range BuiltinNames() {
		scenes = append(scenes, SceneInfo{
			ID:          name,
			DisplayName: titleCase(name),
			Description: builtins[name].description,
			Group:       groupBuiltin,
			Type:        "builtin",
		})
	}

	files, err := sceneFiles(dir)
	if err != nil {
		return nil, err
	}

	var discovered []SceneInfo
	for _, path := range files {
		info, err := fileInfo(path)
		if err != nil {
			core.Logger().Warn("skipping scene file", "file", path, "error", err)
			continue
		}
		discovered = append(discovered, info)
	}

	sortByDisplayName(scenes)
	sortByDisplayName(discovered)
	return append(scenes, discovered...), nil
}

// Create resolves name to a scene: a built-in name, a path to a scene file, or
// the base name of a file in dir.
func Create(name, dir string) (*Scene, error) {
	if b, ok := builtins[name]; ok {
		s := b.create()
		core.Logger().Debug("built-in scene created", "scene", name, "items", len(s.Items))
		return s, nil
	}

	if hasSceneExtension(name) {
		if _, err := os.Stat(name); err == nil {
			return LoadFile(name)
		}
	}

	for _, ext := range Extensions {
		path := filepath.Join(dir, name+ext)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
}

// sceneFiles returns the scene files directly inside dir
func sceneFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !hasSceneExtension(entry.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	return files, nil
}

// fileInfo decodes a scene file header. Items are not built, so referenced
// PLY files are not read.
func fileInfo(path string) (SceneInfo, error) {
	file, err := ReadFile(path)
	if err != nil {
		return SceneInfo{}, err
	}

	id := sceneID(path)
	info := SceneInfo{
		ID:          id,
		DisplayName: titleCase(id),
		Description: file.Description,
		Group:       groupFile,
		Type:        "file",
		FilePath:    path,
	}
	if file.Name != "" {
		info.DisplayName = file.Name
	}
	return info, nil
}

func hasSceneExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// sceneID is the file name without its extension
func sceneID(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func sortByDisplayName(scenes []SceneInfo) {
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})
}

// titleCase converts a filename-style string to title case
// e.g., "spinning-cube" -> "Spinning Cube"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}

	return strings.Join(words, " ")
}
