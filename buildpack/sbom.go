package buildpack

import (
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/buildpacks/libcnb/exit/fail"
	"github.com/buildpacks/libcnb/internal/fsutil"
)

type SBOMFormat int

const (
	CycloneDXJSON SBOMFormat = iota
	SPDXJSON
	SyftJSON
)

var sbomFormats = []struct {
	format    SBOMFormat
	extension string
	mediaType string
}{
	{CycloneDXJSON, "cdx.json", "application/vnd.cyclonedx+json"},
	{SPDXJSON, "spdx.json", "application/spdx+json"},
	{SyftJSON, "syft.json", "application/vnd.syft+json"},
}

func (f SBOMFormat) Extension() string {
	for _, s := range sbomFormats {
		if s.format == f {
			return s.extension
		}
	}
	return ""
}

func (f SBOMFormat) MediaType() string {
	for _, s := range sbomFormats {
		if s.format == f {
			return s.mediaType
		}
	}
	return ""
}

func (f SBOMFormat) String() string {
	return f.MediaType()
}

func SBOMFormatFromMediaType(mediaType string) (SBOMFormat, error) {
	for _, s := range sbomFormats {
		if s.mediaType == mediaType {
			return s.format, nil
		}
	}
	return 0, errors.Errorf("unknown SBOM media type '%s'", mediaType)
}

// SBOM is a software bill of materials in one of the supported formats.
type SBOM struct {
	Format SBOMFormat
	Data   []byte
}

// SBOMPath returns <layers>/<name>.sbom.<ext>. Name is a layer name, "launch" or "build".
func SBOMPath(layersDir, name string, format SBOMFormat) string {
	return filepath.Join(layersDir, name+".sbom."+format.Extension())
}

// SBOMExtensions lists the file extensions of every supported format.
func SBOMExtensions() []string {
	var out []string
	for _, s := range sbomFormats {
		out = append(out, s.extension)
	}
	return out
}

// AcceptsSBOM reports whether the descriptor declares format in sbom-formats.
func (d *Descriptor) AcceptsSBOM(format SBOMFormat) bool {
	for _, declared := range d.Buildpack.SBOMFormats {
		if declared == format.MediaType() {
			return true
		}
	}
	return false
}

// ValidateSBOMs rejects formats not declared in the descriptor.
func (d *Descriptor) ValidateSBOMs(sboms ...SBOM) error {
	for _, s := range sboms {
		if !d.AcceptsSBOM(s.Format) {
			return errors.Errorf("SBOM format '%s' is not declared in sbom-formats of %s", s.Format, DescriptorFile)
		}
	}
	return nil
}

// WriteSBOMs atomically writes buildpack SBOMs as <layers>/<name>.sbom.<ext>.
func WriteSBOMs(layersDir, name string, sboms []SBOM) error {
	for _, s := range sboms {
		if err := fsutil.WriteFile(SBOMPath(layersDir, name, s.Format), s.Data); err != nil {
			return fail.Framework(err, "write", name, "SBOM")
		}
	}
	return nil
}
