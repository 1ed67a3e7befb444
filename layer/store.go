package layer

import (
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/buildpacks/libcnb/buildpack"
	"github.com/buildpacks/libcnb/env"
	"github.com/buildpacks/libcnb/exit/fail"
	"github.com/buildpacks/libcnb/internal/fsutil"
	"github.com/buildpacks/libcnb/log"
)

// Layer is a handle on a layer directory and its current metadata.
type Layer struct {
	Name     string
	Path     string
	Types    Types
	Metadata map[string]interface{}
}

// Store manages the layers directory of one buildpack.
type Store struct {
	Dir    string
	Logger log.Logger

	// Descriptor, when set, restricts SBOMs to the formats it declares.
	Descriptor *buildpack.Descriptor
}

func NewStore(dir string) *Store {
	return &Store{Dir: dir, Logger: log.NewDefaultLogger(io.Discard)}
}

func (s *Store) Path(name string) string {
	return filepath.Join(s.Dir, name)
}

func (s *Store) metadataPath(name string) string {
	return filepath.Join(s.Dir, name+".toml")
}

// GetOrCreate returns the layer directory, creating it if absent. The returned metadata
// payload is the one recorded by a previous build, if any; the types are the requested ones.
func (s *Store) GetOrCreate(name string, types Types) (Layer, error) {
	if err := ValidateName(name); err != nil {
		return Layer{}, fail.Framework(err, "validate", "layer name")
	}
	if err := os.MkdirAll(s.Path(name), 0755); err != nil {
		return Layer{}, fail.Framework(err, "create", "layer", name)
	}
	layer := Layer{Name: name, Path: s.Path(name), Types: types, Metadata: map[string]interface{}{}}
	existing, err := s.ReadMetadata(name)
	if err != nil {
		return Layer{}, err
	}
	if existing != nil {
		layer.Metadata = existing.Metadata
	}
	return layer, nil
}

// ReadMetadata returns nil when the layer has no metadata.
func (s *Store) ReadMetadata(name string) (*ContentMetadata, error) {
	if err := ValidateName(name); err != nil {
		return nil, fail.Framework(err, "validate", "layer name")
	}
	path := s.metadataPath(name)
	var md ContentMetadata
	meta, err := buildpack.DecodeFile(path, &md, "layer metadata")
	if os.IsNotExist(err) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	if meta.IsDefined("build") || meta.IsDefined("launch") || meta.IsDefined("cache") {
		return nil, fail.Framework(&buildpack.MalformedError{
			Path: path,
			Err:  errors.New("the launch, cache and build flags should be in the types table"),
		}, "parse", "layer metadata")
	}
	if md.Metadata == nil {
		md.Metadata = map[string]interface{}{}
	}
	return &md, nil
}

// WriteMetadata atomically records md. The file is left untouched when it already holds the same bytes.
func (s *Store) WriteMetadata(name string, md ContentMetadata) error {
	if err := ValidateName(name); err != nil {
		return fail.Framework(err, "validate", "layer name")
	}
	b, err := encode(md)
	if err != nil {
		return fail.Framework(err, "encode", "layer metadata", name)
	}
	written, err := fsutil.WriteFileIfChanged(s.metadataPath(name), b)
	if err != nil {
		return fail.Framework(err, "write", "layer metadata", name)
	}
	if !written {
		s.Logger.Debugf("Layer metadata of %s is unchanged", log.Symbol(name))
	}
	return nil
}

// Remove deletes the metadata first so that a crash never leaves metadata describing missing contents.
func (s *Store) Remove(name string) error {
	if err := ValidateName(name); err != nil {
		return fail.Framework(err, "validate", "layer name")
	}
	if err := fsutil.RemoveIfExists(s.metadataPath(name)); err != nil {
		return fail.Framework(err, "remove", "layer metadata", name)
	}
	if err := os.RemoveAll(s.Path(name)); err != nil {
		return fail.Framework(err, "remove", "layer", name)
	}
	return s.removeSBOMs(name)
}

func (s *Store) removeSBOMs(name string) error {
	for _, ext := range buildpack.SBOMExtensions() {
		if err := fsutil.RemoveIfExists(filepath.Join(s.Dir, name+".sbom."+ext)); err != nil {
			return fail.Framework(err, "remove", "layer SBOM", name)
		}
	}
	return nil
}

// Migrate rewrites the types of an existing layer and keeps its contents and payload.
func (s *Store) Migrate(name string, types Types) error {
	existing, err := s.ReadMetadata(name)
	if err != nil {
		return err
	}
	if existing == nil {
		return fail.Framework(errors.Errorf("layer '%s' has no metadata", name), "migrate", "layer", name)
	}
	if err := os.MkdirAll(s.Path(name), 0755); err != nil {
		return fail.Framework(err, "create", "layer", name)
	}
	existing.Types = types
	return s.WriteMetadata(name, *existing)
}

// WriteEnv replaces the env directories of the layer.
func (s *Store) WriteEnv(name string, layerEnv *env.LayerEnv) error {
	if err := ValidateName(name); err != nil {
		return fail.Framework(err, "validate", "layer name")
	}
	if layerEnv == nil {
		layerEnv = env.NewLayerEnv()
	}
	return layerEnv.Write(s.Path(name))
}

// WriteSBOM writes <layers>/<name>.sbom.<ext>. Formats not declared by the descriptor are buildpack errors.
func (s *Store) WriteSBOM(name string, sbom buildpack.SBOM) error {
	if err := ValidateName(name); err != nil {
		return fail.Framework(err, "validate", "layer name")
	}
	if s.Descriptor != nil {
		if err := s.Descriptor.ValidateSBOMs(sbom); err != nil {
			return err
		}
	}
	if err := fsutil.WriteFile(buildpack.SBOMPath(s.Dir, name, sbom.Format), sbom.Data); err != nil {
		return fail.Framework(err, "write", "layer SBOM", name)
	}
	return nil
}

// ExecDDir is the directory of a layer holding the programs the launcher runs before each process.
const ExecDDir = "exec.d"

// WriteExecD replaces the exec.d directory of the layer with copies of programs. Keys are
// either a program name, run for every process, or <process>/<name>, run for that process only.
func (s *Store) WriteExecD(name string, programs map[string]string) error {
	if err := ValidateName(name); err != nil {
		return fail.Framework(err, "validate", "layer name")
	}
	var keys []string
	for key := range programs {
		if err := validateExecDKey(key); err != nil {
			return err
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	dir := filepath.Join(s.Path(name), ExecDDir)
	if err := os.RemoveAll(dir); err != nil {
		return fail.Framework(err, "remove", "exec.d directory", name)
	}
	for _, key := range keys {
		if err := fsutil.CopyExecutable(programs[key], filepath.Join(dir, filepath.FromSlash(key))); err != nil {
			return fail.Framework(err, "write", "exec.d program", key)
		}
	}
	return nil
}

func validateExecDKey(key string) error {
	parts := strings.Split(key, "/")
	if len(parts) > 2 {
		return errors.Errorf("exec.d program '%s' must be a name or <process>/<name>", key)
	}
	for _, part := range parts {
		if part == "" || part == "." || part == ".." || strings.ContainsRune(part, '\\') {
			return errors.Errorf("exec.d program '%s' must be a name or <process>/<name>", key)
		}
	}
	return nil
}

var buildpackFiles = map[string]bool{
	"store.toml":  true,
	"launch.toml": true,
	"build.toml":  true,
}

// Names returns the names of layers that have metadata, in lexical order.
func (s *Store) Names() ([]string, error) {
	entries, err := os.ReadDir(s.Dir)
	if os.IsNotExist(err) {
		return nil, nil
	} else if err != nil {
		return nil, fail.Framework(err, "read", "layers directory")
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() || buildpackFiles[entry.Name()] || !strings.HasSuffix(entry.Name(), ".toml") {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ".toml")
		if ValidateName(name) != nil {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// EnvSources returns the layers contributing to scope in lexical order: build layers for
// the build scope and launch layers otherwise.
func (s *Store) EnvSources(scope env.Scope) ([]env.Source, error) {
	names, err := s.Names()
	if err != nil {
		return nil, err
	}
	var sources []env.Source
	for _, name := range names {
		md, err := s.ReadMetadata(name)
		if err != nil {
			return nil, err
		}
		if md == nil {
			continue
		}
		if scope.Kind == env.KindBuild && !md.Types.Build {
			continue
		}
		if scope.Kind != env.KindBuild && scope.Kind != env.KindAll && !md.Types.Launch {
			continue
		}
		sources = append(sources, env.Source{Name: name, Dir: s.Path(name)})
	}
	return sources, nil
}
