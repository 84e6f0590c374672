package adapters

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"apt-archives/internal/ports"
	"apt-archives/internal/types"
)

// SourcesListAdapter is the codec for the one-line sources.list format:
// https://www.debian.org/doc/manuals/debian-reference/ch02#_debian_archive_basics
type SourcesListAdapter struct{}

func NewSourcesListAdapter() SourcesListAdapter {
	return SourcesListAdapter{}
}

// Parse reads one-line format sources. Blank lines and #-comments are
// skipped; every other line must carry at least the four fields
// type, uri, suite and components.
func (a SourcesListAdapter) Parse(r io.Reader) ([]types.AptSource, error) {
	var sources []types.AptSource
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		source, err := parseSourcesListLine(line, lineNo)
		if err != nil {
			return nil, err
		}
		sources = append(sources, source)
	}
	if err := scanner.Err(); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to read sources list").
			WithCause(err)
	}
	return sources, nil
}

func parseSourcesListLine(line string, lineNo int) (types.AptSource, error) {
	fields := strings.Fields(line)
	if len(fields) < 4 {
		return types.AptSource{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("malformed sources list line %d: expected 'type uri suite components...', got '%s'", lineNo, line))
	}
	return types.AptSource{
		Types:      []types.SourceFormat{types.SourceFormat(fields[0])},
		URIs:       []string{fields[1]},
		Suites:     []string{fields[2]},
		Components: fields[3:],
	}, nil
}

// Serialize writes every (type, uri, suite) combination of each source as
// one line. Empty components serialize as "main".
func (a SourcesListAdapter) Serialize(w io.Writer, sources []types.AptSource) error {
	for _, source := range sources {
		for _, line := range SourcesListLines(source) {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return errbuilder.New().
					WithCode(errbuilder.CodeInternal).
					WithMsg("failed to write sources list").
					WithCause(err)
			}
		}
	}
	return nil
}

// SourcesListLines renders one source as its one-line format lines: the
// cartesian product of types, uris and suites.
func SourcesListLines(source types.AptSource) []string {
	components := "main"
	if len(source.Components) > 0 {
		components = strings.Join(source.Components, " ")
	}
	var lines []string
	for _, suite := range source.Suites {
		for _, uri := range source.URIs {
			for _, format := range source.Types {
				lines = append(lines, fmt.Sprintf("%s %s %s %s", format, uri, suite, components))
			}
		}
	}
	return lines
}

// LoadSourcesList parses a sources.list file from disk.
func (a SourcesListAdapter) LoadSourcesList(path string) ([]types.AptSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("sources list file not found").
			WithCause(err)
	}
	defer f.Close()
	return a.Parse(f)
}

// WriteSourcesList serializes sources to a sources.list file.
func (a SourcesListAdapter) WriteSourcesList(path string, sources []types.AptSource) error {
	var builder strings.Builder
	if err := a.Serialize(&builder, sources); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(builder.String()), 0644)
}

var _ ports.SourcesCodecPort = SourcesListAdapter{}
