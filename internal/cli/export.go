package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chazu/closet/internal/app"
	"github.com/chazu/closet/pkg/closet"
	"github.com/chazu/closet/pkg/config"
	"github.com/chazu/closet/pkg/scene"
)

const (
	formatJSON  = "json"
	formatSTL   = "stl"
	formatScene = "scene"
)

// sceneJSON is the scene export: interleaved position and normal vertex
// arrays, one cuboid per hole and per separator part.
type sceneJSON struct {
	FloatsPerVertex int        `json:"floatsPerVertex"`
	Center          [3]float32 `json:"center"`
	Size            [3]float32 `json:"size"`
	Holes           []float32  `json:"holes"`
	Parts           []float32  `json:"parts"`
	PartColors      []string   `json:"partColors"`
}

// exportOpts holds the command-line flags for the export command.
type exportOpts struct {
	output string // output file, "-" or empty for stdout (not for stl)
	format string // json, stl or scene; inferred from the output extension when empty
	sel    int    // separator highlighted in scene exports, -1 for none
}

func (c *cli) exportCommand() *cobra.Command {
	opts := exportOpts{sel: int(closet.NoSeparator)}

	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Export a layout as JSON meshes, renderer vertex arrays or an STL of its panels",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := resolveFormat(opts.format, opts.output)
			if err != nil {
				return err
			}
			return c.runExport(cmd, args[0], format, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout when empty, required for stl)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: json, stl, scene (default from the output extension, else json)")
	cmd.Flags().IntVar(&opts.sel, "select", opts.sel, "separator to highlight in scene exports")

	return cmd
}

// resolveFormat validates an explicit format or infers one from output.
func resolveFormat(format, output string) (string, error) {
	if format == "" {
		if strings.EqualFold(filepath.Ext(output), ".stl") {
			return formatSTL, nil
		}
		return formatJSON, nil
	}
	switch format = strings.ToLower(format); format {
	case formatJSON, formatScene:
		return format, nil
	case formatSTL:
		if output == "" || output == "-" {
			return "", fmt.Errorf("stl export needs an output file (-o)")
		}
		return format, nil
	}
	return "", fmt.Errorf("invalid format: %s (must be json, stl or scene)", format)
}

func (c *cli) runExport(cmd *cobra.Command, path, format string, opts exportOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	source, err := readSource(cmd, path)
	if err != nil {
		return err
	}
	a, err := c.newApp(ctx)
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	var (
		result app.EvalResult
		doc    any
	)
	switch format {
	case formatSTL:
		result, err = a.ExportSTL(source, opts.output)
		if !result.OK() {
			return reportErrors(logger, path, result)
		}
		if err != nil {
			return err
		}
		reportWarnings(logger, path, result)
		prog.done("Wrote " + opts.output)
		return nil

	case formatScene:
		var s *scene.Scene
		s, result, err = a.Scene(source, closet.SeparatorID(opts.sel))
		if !result.OK() {
			return reportErrors(logger, path, result)
		}
		if err != nil {
			return err
		}
		sj := sceneJSON{
			FloatsPerVertex: scene.FloatsPerVertex,
			Center:          s.Center,
			Size:            s.Size,
			Holes:           s.Holes,
			Parts:           s.Parts,
			PartColors:      make([]string, len(s.PartColors)),
		}
		for i, col := range s.PartColors {
			sj.PartColors[i] = config.HexColor(col)
		}
		doc = sj

	default:
		result = a.Evaluate(source)
		if !result.OK() {
			return reportErrors(logger, path, result)
		}
		doc = result
	}
	reportWarnings(logger, path, result)

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	data = append(data, '\n')

	if opts.output == "" || opts.output == "-" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(opts.output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}
	prog.done("Wrote " + opts.output)
	return nil
}
