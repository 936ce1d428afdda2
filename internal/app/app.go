// Package app runs the full closet pipeline: DSL source, engine, closet,
// validation and tessellation. It produces the JSON-serializable result the
// CLI prints and exports.
package app

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/chazu/closet/pkg/closet"
	"github.com/chazu/closet/pkg/config"
	"github.com/chazu/closet/pkg/engine"
	"github.com/chazu/closet/pkg/kernel"
	"github.com/chazu/closet/pkg/scene"
	"github.com/chazu/closet/pkg/tessellate"
)

// holePalette assigns distinct colors to hole meshes.
var holePalette = []string{
	"#4A90D9", "#E67E22", "#2ECC71", "#9B59B6",
	"#E74C3C", "#1ABC9C", "#F39C12", "#3498DB",
}

// App ties an engine to a geometry kernel.
type App struct {
	engine *engine.Engine
	kernel kernel.Kernel
	logger *log.Logger
}

// MeshData is the JSON-serializable mesh format.
type MeshData struct {
	Vertices []float32 `json:"vertices"`
	Normals  []float32 `json:"normals"`
	Indices  []uint32  `json:"indices"`
	PartName string    `json:"partName"`
	Color    string    `json:"color"`
}

// FaceRef names one hole face a separator bounds.
type FaceRef struct {
	Hole int    `json:"hole"`
	Face string `json:"face"`
}

// SeparatorData is one separator with a mesh per part.
type SeparatorData struct {
	ID        int        `json:"id"`
	Thickness float64    `json:"thickness"`
	Color     string     `json:"color"`
	Bounds    []FaceRef  `json:"bounds"`
	Parts     []MeshData `json:"parts"`
}

// EvalErrorData is a JSON-serializable eval error or validation finding.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// EvalResult is the full result of evaluating a source.
type EvalResult struct {
	Holes      []MeshData      `json:"holes"`
	Separators []SeparatorData `json:"separators"`
	Errors     []EvalErrorData `json:"errors"`
	Warnings   []EvalErrorData `json:"warnings"`
}

// OK reports whether the result carries no errors.
func (r EvalResult) OK() bool {
	return len(r.Errors) == 0
}

// New creates an App. A nil logger uses log.Default().
func New(e *engine.Engine, k kernel.Kernel, logger *log.Logger) *App {
	if logger == nil {
		logger = log.Default()
	}
	return &App{engine: e, kernel: k, logger: logger}
}

// Evaluate takes Lisp source and returns mesh data and errors.
func (a *App) Evaluate(source string) EvalResult {
	_, result := a.Build(source)
	return result
}

// Build is Evaluate that also returns the closet. The closet is nil
// whenever the result has errors or the source never seeds a closet.
func (a *App) Build(source string) (*closet.Closet, EvalResult) {
	cl, result := a.Check(source)
	if cl == nil {
		return nil, result
	}

	// Step 3: Tessellate holes and separator parts.
	meshes, err := tessellate.Tessellate(cl, a.kernel)
	if err != nil {
		a.logger.Error("tessellate failed", "err", err)
		result.Errors = append(result.Errors, EvalErrorData{
			Message: "tessellation failed: " + err.Error(),
		})
		return nil, result
	}
	st := meshes.Stats()
	a.logger.Debug("tessellated", "triangles", st.Triangles, "vertices", st.Vertices, "min", st.Min, "max", st.Max)

	// Step 4: Convert kernel meshes to MeshData.
	for i, m := range meshes.Holes {
		result.Holes = append(result.Holes, meshData(m, holePalette[i%len(holePalette)]))
	}
	parts := cl.Parts()
	for _, s := range cl.Separators() {
		sd := SeparatorData{
			ID:        int(s.ID),
			Thickness: s.Thickness,
			Bounds:    make([]FaceRef, 0, len(s.Parts)),
			Parts:     make([]MeshData, 0, len(s.Parts)),
		}
		for _, pid := range s.Parts {
			p := parts[pid]
			color := config.HexColor(p.Color)
			if sd.Color == "" {
				sd.Color = color
			}
			sd.Bounds = append(sd.Bounds, FaceRef{Hole: int(p.Hole), Face: p.Face.String()})
			sd.Parts = append(sd.Parts, meshData(meshes.Parts[pid], color))
		}
		result.Separators = append(result.Separators, sd)
	}

	return cl, result
}

// Check evaluates and validates source without tessellating it. The
// result carries errors and warnings but no meshes.
func (a *App) Check(source string) (*closet.Closet, EvalResult) {
	result := EvalResult{
		Holes:      []MeshData{},
		Separators: []SeparatorData{},
		Errors:     []EvalErrorData{},
		Warnings:   []EvalErrorData{},
	}

	// Step 1: Evaluate the Lisp source into a closet.
	cl, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		a.logger.Error("evaluate failed", "err", err)
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return nil, result
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			result.Errors = append(result.Errors, EvalErrorData{
				Line:    e.Line,
				Col:     e.Col,
				Message: e.Message,
			})
		}
		return nil, result
	}
	if cl == nil {
		return nil, result
	}
	a.logger.Debug("evaluated", "holes", cl.NumHoles(), "separators", cl.NumSeparators(), "parts", cl.NumParts())

	// Step 2: Validate. Errors here mean a broken closet, not a user mistake.
	v := closet.Validate(cl)
	for _, e := range v.Errors {
		result.Errors = append(result.Errors, EvalErrorData{Message: e.Error()})
	}
	for _, w := range v.Warnings {
		result.Warnings = append(result.Warnings, EvalErrorData{Message: w.Error()})
	}
	if !v.OK() {
		a.logger.Error("closet failed validation", "errors", len(v.Errors))
		return nil, result
	}
	return cl, result
}

// ExportSTL evaluates source and writes the union of its separator panels
// to path. The kernel must implement kernel.STLWriter.
func (a *App) ExportSTL(source, path string) (EvalResult, error) {
	w, ok := a.kernel.(kernel.STLWriter)
	if !ok {
		return EvalResult{}, fmt.Errorf("export: kernel %T cannot write STL", a.kernel)
	}
	cl, result := a.Check(source)
	if !result.OK() {
		return result, fmt.Errorf("export: %s", result.Errors[0].Message)
	}
	if cl == nil {
		return result, fmt.Errorf("export: source defines no closet")
	}
	solid, err := tessellate.Panels(cl, a.kernel)
	if err != nil {
		return result, fmt.Errorf("export: %w", err)
	}
	if err := w.WriteSTL(path, solid); err != nil {
		return result, fmt.Errorf("export: %w", err)
	}
	a.logger.Debug("wrote stl", "path", path, "parts", cl.NumParts())
	return result, nil
}

// Scene evaluates source and returns the renderer vertex arrays of the
// closet with separator sel highlighted on top of any highlights the source
// made. closet.NoSeparator highlights nothing more.
func (a *App) Scene(source string, sel closet.SeparatorID) (*scene.Scene, EvalResult, error) {
	cl, result := a.Check(source)
	if !result.OK() {
		return nil, result, fmt.Errorf("scene: %s", result.Errors[0].Message)
	}
	if cl == nil {
		return nil, result, fmt.Errorf("scene: source defines no closet")
	}
	if sel != closet.NoSeparator {
		opts := a.engine.Options()
		if err := scene.NewSelection(cl, opts.PartColor, opts.SelectedColor).Select(sel); err != nil {
			return nil, result, fmt.Errorf("scene: %w", err)
		}
	}
	return scene.Build(cl), result, nil
}

func meshData(m *kernel.Mesh, color string) MeshData {
	return MeshData{
		Vertices: m.Vertices,
		Normals:  m.Normals,
		Indices:  m.Indices,
		PartName: m.PartName,
		Color:    color,
	}
}

