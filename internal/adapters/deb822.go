package adapters

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"apt-archives/internal/ports"
	"apt-archives/internal/types"
)

// DefaultSourcesDir is where apt looks for per-repository .sources files.
const DefaultSourcesDir = "/etc/apt/sources.list.d"

// Deb822Adapter is the codec for deb822-style .sources files: RFC822-like
// paragraphs separated by blank lines. Paragraphs are restricted to exactly
// one URI each.
type Deb822Adapter struct{}

func NewDeb822Adapter() Deb822Adapter {
	return Deb822Adapter{}
}

// Parse reads deb822 paragraphs. Comment lines are skipped, unrecognized
// fields are ignored, and paragraphs without any recognized content produce
// no source. A paragraph that does carry recognized content must name
// Types, URIs, Suites and Components.
func (a Deb822Adapter) Parse(r io.Reader) ([]types.AptSource, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to read deb822 sources").
			WithCause(err)
	}
	var sources []types.AptSource
	for _, paragraph := range strings.Split(string(data), "\n\n") {
		source, ok, err := parseDeb822Paragraph(paragraph)
		if err != nil {
			return nil, err
		}
		if ok {
			sources = append(sources, source)
		}
	}
	return sources, nil
}

func parseDeb822Paragraph(paragraph string) (types.AptSource, bool, error) {
	var source types.AptSource
	seen := false
	for _, line := range strings.Split(paragraph, "\n") {
		stripped := strings.TrimSpace(line)
		if stripped == "" || strings.HasPrefix(stripped, "#") {
			continue
		}
		field, value, found := strings.Cut(stripped, ": ")
		if !found {
			field, value, _ = strings.Cut(stripped, ":")
		}
		value = strings.TrimSpace(value)
		switch field {
		case "Types":
			for _, format := range strings.Fields(value) {
				source.Types = append(source.Types, types.SourceFormat(format))
			}
		case "URIs":
			uris := strings.Fields(value)
			if len(uris) > 1 {
				return types.AptSource{}, false, errbuilder.New().
					WithCode(errbuilder.CodeInvalidArgument).
					WithMsg("deb822 paragraphs with multiple URIs are unsupported")
			}
			source.URIs = uris
		case "Suites":
			source.Suites = strings.Fields(value)
		case "Components":
			source.Components = strings.Fields(value)
		case "Enabled":
			source.Enabled = value
		case "Signed-By":
			source.SignedBy = value
		case "Architectures":
			source.Architectures = strings.Fields(value)
		default:
			log.Debug().Str("field", field).Msg("skipping unknown deb822 field")
			continue
		}
		seen = true
	}
	if !seen {
		return types.AptSource{}, false, nil
	}
	required := []struct {
		name    string
		missing bool
	}{
		{"Types", len(source.Types) == 0},
		{"URIs", len(source.URIs) == 0},
		{"Suites", len(source.Suites) == 0},
		{"Components", len(source.Components) == 0},
	}
	for _, field := range required {
		if field.missing {
			return types.AptSource{}, false, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("incomplete deb822 paragraph: missing %s", field.name))
		}
	}
	return source, true, nil
}

// Serialize writes one paragraph per source with a blank line between
// paragraphs and exactly one trailing newline. Field order is fixed; empty
// components serialize as "./" per deb822 convention (the one-line format
// defaults to "main" instead).
func (a Deb822Adapter) Serialize(w io.Writer, sources []types.AptSource) error {
	paragraphs := make([]string, 0, len(sources))
	for _, source := range sources {
		paragraphs = append(paragraphs, Deb822Paragraph(source))
	}
	if _, err := io.WriteString(w, strings.Join(paragraphs, "\n")); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write deb822 sources").
			WithCause(err)
	}
	return nil
}

// Deb822Paragraph renders one source as a deb822 paragraph ending in a
// single newline.
func Deb822Paragraph(source types.AptSource) string {
	formats := "deb"
	if len(source.Types) > 0 {
		parts := make([]string, len(source.Types))
		for i, format := range source.Types {
			parts[i] = string(format)
		}
		formats = strings.Join(parts, " ")
	}
	components := "./"
	if len(source.Components) > 0 {
		components = strings.Join(source.Components, " ")
	}
	var builder strings.Builder
	fmt.Fprintf(&builder, "Types: %s\n", formats)
	fmt.Fprintf(&builder, "URIs: %s\n", strings.Join(source.URIs, " "))
	fmt.Fprintf(&builder, "Suites: %s\n", strings.Join(source.Suites, " "))
	fmt.Fprintf(&builder, "Components: %s\n", components)
	if len(source.Architectures) > 0 {
		fmt.Fprintf(&builder, "Architectures: %s\n", strings.Join(source.Architectures, " "))
	}
	if source.SignedBy != "" {
		fmt.Fprintf(&builder, "Signed-By: %s\n", source.SignedBy)
	}
	return builder.String()
}

// LoadSources parses a deb822 .sources file from disk.
func (a Deb822Adapter) LoadSources(path string) ([]types.AptSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("deb822 sources file not found").
			WithCause(err)
	}
	defer f.Close()
	return a.Parse(f)
}

// WriteSources serializes sources to a deb822 .sources file.
func (a Deb822Adapter) WriteSources(path string, sources []types.AptSource) error {
	var builder strings.Builder
	if err := a.Serialize(&builder, sources); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(builder.String()), 0644)
}

var _ ports.SourcesCodecPort = Deb822Adapter{}
