package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"apt-archives/internal/types"
)

const (
	FormatSourcesList = "sources-list"
	FormatDeb822      = "deb822"
)

// Convert reads apt sources in one on-disk format and writes them in the
// other. Converting between formats follows each format's own components
// default; entries are otherwise preserved.
func (s Service) Convert(ctx context.Context, req ConvertRequest) (ConvertResult, error) {
	if err := ctx.Err(); err != nil {
		return ConvertResult{}, err
	}
	if strings.TrimSpace(req.InputPath) == "" || strings.TrimSpace(req.OutputPath) == "" {
		return ConvertResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("input and output paths are required")
	}

	var sources []types.AptSource
	var err error
	switch req.InputFormat {
	case FormatSourcesList:
		sources, err = s.SourcesList.LoadSourcesList(req.InputPath)
	case FormatDeb822:
		sources, err = s.Deb822.LoadSources(req.InputPath)
	default:
		return ConvertResult{}, unknownFormatError(req.InputFormat)
	}
	if err != nil {
		return ConvertResult{}, err
	}

	switch req.OutputFormat {
	case FormatSourcesList:
		err = s.SourcesList.WriteSourcesList(req.OutputPath, sources)
	case FormatDeb822:
		err = s.Deb822.WriteSources(req.OutputPath, sources)
	default:
		return ConvertResult{}, unknownFormatError(req.OutputFormat)
	}
	if err != nil {
		return ConvertResult{}, err
	}
	return ConvertResult{Sources: len(sources)}, nil
}

func unknownFormatError(format string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg("unknown sources format '" + format + "' (expected sources-list or deb822)")
}
