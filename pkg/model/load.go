package model

import "strings"

// DefaultCubePath is substituted whenever a referenced mesh file is missing,
// per §7's MissingAsset recovery.
const DefaultCubePath = "Models/cube.obj"

// Load dispatches on file extension: .gltf/.glb go through the GLTF loader,
// anything else through the §4.1 wavefront OBJ parser. Both converge on the
// same invariant-respecting Model.
func Load(path string) (*Model, error) {
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".gltf") || strings.HasSuffix(lower, ".glb") {
		return LoadGLTF(path)
	}
	return LoadOBJ(path)
}

// LoadOrDefault loads path, falling back to DefaultCubePath with a warning
// whenever Load fails (a missing file, per §7's MissingAsset, or any other
// load error such as a parse error).
func LoadOrDefault(path string) (*Model, error) {
	m, err := Load(path)
	if err == nil {
		return m, nil
	}
	log.Warn("model: falling back to default cube", "requested", path, "err", err)
	return Load(DefaultCubePath)
}
