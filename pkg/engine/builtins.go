package engine

import (
	"fmt"
	"strings"

	"github.com/chazu/closet/pkg/closet"
	"github.com/chazu/closet/pkg/geom"
	zygo "github.com/glycerine/zygomys/zygo"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms closet Lisp source code before passing it to
// zygomys. It performs two transformations:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal)
//     This avoids the need to register keyword symbols as globals, which
//     would conflict with user-defined variables of the same name.
//
//  2. Kebab-case to underscore: push-hole -> push_hole
//     zygomys does not allow hyphens in identifiers (it interprets them
//     as the subtraction operator). This converts kebab-case identifiers
//     to underscore form outside of strings and comments.
//
// Both transformations respect string literal boundaries and line comments.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments for zygomys.
		// zygomys uses // for line comments, not the traditional Lisp ;.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			// Skip additional ; characters (;; style).
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword".
		if b[i] == ':' && i+1 < len(b) {
			// Preserve := (assignment operator).
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			// Check for keyword: colon followed by a letter.
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				kwName := string(b[i+1 : j])
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, []byte(kwName)...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Transform kebab-case identifiers: alpha-alpha -> alpha_alpha.
		// Only when hyphen sits between identifier characters (not a minus operator).
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isIdentStartChar(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

func isIdentStartChar(c byte) bool {
	return isLetter(c)
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpHole wraps a closet.HoleID so it can be passed between builtins.
type sexpHole struct {
	id closet.HoleID
}

func (h *sexpHole) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(hole %d)", h.id)
}
func (h *sexpHole) Type() *zygo.RegisteredType { return nil }

// sexpSeparator wraps a closet.SeparatorID.
type sexpSeparator struct {
	id closet.SeparatorID
}

func (s *sexpSeparator) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(separator %d)", s.id)
}
func (s *sexpSeparator) Type() *zygo.RegisteredType { return nil }

// sexpDim wraps a non-direct closet.Dimension returned by dim-copy and
// dim-until. Direct dimensions are plain numbers.
type sexpDim struct {
	dim closet.Dimension
}

func (d *sexpDim) SexpString(ps *zygo.PrintState) string {
	if d.dim.Kind == closet.DimRelative {
		return fmt.Sprintf("(dim-until (hole %d) :%s)", d.dim.Hole, d.dim.Face)
	}
	return "(dim-copy)"
}
func (d *sexpDim) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
// Keywords are identified by the __kw_ prefix added during preprocessing.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				// Keyword at end with no value: treat as flag with nil.
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toKeywordString extracts a keyword name or plain string from a Sexp.
// Handles both preprocessed keywords (__kw_up) and plain strings ("up").
func toKeywordString(s zygo.Sexp) (string, error) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", fmt.Errorf("expected keyword or string, got %T (%s)", s, s.SexpString(nil))
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], nil
	}
	return str.S, nil
}

// toFace converts a keyword or string to a geom.Face.
func toFace(s zygo.Sexp) (geom.Face, error) {
	name, err := toKeywordString(s)
	if err != nil {
		return 0, fmt.Errorf("expected face keyword: %w", err)
	}
	return geom.ParseFace(name)
}

// toVertex converts a keyword or string to a geom.VertexID.
func toVertex(s zygo.Sexp) (geom.VertexID, error) {
	name, err := toKeywordString(s)
	if err != nil {
		return 0, fmt.Errorf("expected vertex keyword: %w", err)
	}
	return geom.ParseVertex(name)
}

// toHoleID extracts a hole reference. A bare integer is accepted as a hole
// index.
func toHoleID(s zygo.Sexp) (closet.HoleID, error) {
	switch v := s.(type) {
	case *sexpHole:
		return v.id, nil
	case *zygo.SexpInt:
		return closet.HoleID(v.Val), nil
	}
	return closet.NoHole, fmt.Errorf("expected hole reference, got %T (%s)", s, s.SexpString(nil))
}

// toSeparatorID extracts a separator reference. A bare integer is accepted
// as a separator index.
func toSeparatorID(s zygo.Sexp) (closet.SeparatorID, error) {
	switch v := s.(type) {
	case *sexpSeparator:
		return v.id, nil
	case *zygo.SexpInt:
		return closet.SeparatorID(v.Val), nil
	}
	return closet.NoSeparator, fmt.Errorf("expected separator reference, got %T (%s)", s, s.SexpString(nil))
}

// toDimension converts a number to a direct dimension and unwraps
// (dim-copy) and (dim-until ...).
func toDimension(s zygo.Sexp) (closet.Dimension, error) {
	if d, ok := s.(*sexpDim); ok {
		return d.dim, nil
	}
	v, err := toFloat64(s)
	if err != nil {
		return closet.Dimension{}, fmt.Errorf("expected number, (dim-copy) or (dim-until ...): %w", err)
	}
	return closet.Direct(v), nil
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// builder carries the closet under construction through one evaluation.
type builder struct {
	opts Options
	cl   *closet.Closet
	err  error // last error returned by a builtin
}

type builtinFunc func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error)

// addFunction registers fn under name, remembering any error it returns so
// the evaluation can report it verbatim.
func (b *builder) addFunction(env *zygo.Zlisp, name string, fn builtinFunc) {
	env.AddFunction(name, func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		res, err := fn(env, name, args)
		if err != nil {
			b.err = err
		}
		return res, err
	})
}

// current returns the closet under construction, or an error naming fn if
// the program has not created one yet.
func (b *builder) current(fn string) (*closet.Closet, error) {
	if b.cl == nil {
		return nil, fmt.Errorf("%s: no closet defined, call (closet W H D) first", fn)
	}
	return b.cl, nil
}

// registerBuiltins installs all closet DSL builtins into a zygomys
// environment. The builtins operate on the builder's closet, populating it
// during evaluation.
//
// Source code must be preprocessed with preprocessSource() before evaluation so
// that :keyword tokens are converted to recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, b *builder) {

	// -----------------------------------------------------------------------
	// (closet 0.9 0.4 0.7) or (closet :width 0.9 :height 0.4 :depth 0.7)
	// -----------------------------------------------------------------------
	b.addFunction(env, "closet", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if b.cl != nil {
			return zygo.SexpNull, fmt.Errorf("closet: closet already defined")
		}
		pa := parseArgs(args)

		var size [3]float64
		keys := [3]string{"width", "height", "depth"}
		switch {
		case len(pa.positional) == 3:
			for i, a := range pa.positional {
				f, err := toFloat64(a)
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("closet: %s: %w", keys[i], err)
				}
				size[i] = f
			}
		case len(pa.positional) == 0:
			for i, k := range keys {
				v, ok := pa.kw[k]
				if !ok {
					return zygo.SexpNull, fmt.Errorf("closet: missing :%s", k)
				}
				f, err := toFloat64(v)
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("closet: %s: %w", k, err)
				}
				size[i] = f
			}
		default:
			return zygo.SexpNull, fmt.Errorf("closet requires 3 dimensions, got %d", len(pa.positional))
		}

		cl, err := closet.New(closet.DirectDims(size[0], size[1], size[2]),
			closet.WithThickness(b.opts.Thickness),
			closet.WithMaxHoles(b.opts.MaxHoles),
			closet.WithPartColor(b.opts.PartColor),
		)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("closet: %w", err)
		}
		b.cl = cl
		return &sexpHole{id: 0}, nil
	})

	// -----------------------------------------------------------------------
	// (push-hole base :face :up :anchor :ruf :x 0.3 :y (dim-until 0 :down)
	//            :z (dim-copy) :separation 0.025)
	// -----------------------------------------------------------------------
	b.addFunction(env, "push_hole", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		cl, err := b.current("push-hole")
		if err != nil {
			return zygo.SexpNull, err
		}
		pa := parseArgs(args)

		if len(pa.positional) < 1 {
			return zygo.SexpNull, fmt.Errorf("push-hole requires a base hole as first argument")
		}
		base, err := toHoleID(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("push-hole: base: %w", err)
		}

		fv, ok := pa.kw["face"]
		if !ok {
			return zygo.SexpNull, fmt.Errorf("push-hole: missing :face")
		}
		face, err := toFace(fv)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("push-hole: face: %w", err)
		}

		anchor := geom.RUF
		if v, ok := pa.kw["anchor"]; ok {
			anchor, err = toVertex(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("push-hole: anchor: %w", err)
			}
		}

		dims := closet.CopyDims()
		for _, a := range geom.Axes {
			v, ok := pa.kw[a.String()]
			if !ok {
				continue
			}
			d, err := toDimension(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("push-hole: %s: %w", a, err)
			}
			switch a {
			case geom.AxisX:
				dims.X = d
			case geom.AxisY:
				dims.Y = d
			case geom.AxisZ:
				dims.Z = d
			}
		}

		sep := b.opts.Separation
		if v, ok := pa.kw["separation"]; ok {
			sep, err = toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("push-hole: separation: %w", err)
			}
		}

		id, err := cl.PushHole(dims, base, face, anchor, sep)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("push-hole: %w", err)
		}
		return &sexpHole{id: id}, nil
	})

	// -----------------------------------------------------------------------
	// (dim-copy)
	// -----------------------------------------------------------------------
	b.addFunction(env, "dim_copy", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 0 {
			return zygo.SexpNull, fmt.Errorf("dim-copy takes no arguments, got %d", len(args))
		}
		return &sexpDim{dim: closet.Copy()}, nil
	})

	// -----------------------------------------------------------------------
	// (dim-until (hole 0) :down)
	// -----------------------------------------------------------------------
	b.addFunction(env, "dim_until", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("dim-until requires a hole and a face, got %d arguments", len(args))
		}
		h, err := toHoleID(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("dim-until: hole: %w", err)
		}
		f, err := toFace(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("dim-until: face: %w", err)
		}
		return &sexpDim{dim: closet.Until(h, f)}, nil
	})

	// -----------------------------------------------------------------------
	// (hole 2)
	// -----------------------------------------------------------------------
	b.addFunction(env, "hole", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		cl, err := b.current("hole")
		if err != nil {
			return zygo.SexpNull, err
		}
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("hole requires an index argument")
		}
		id, err := toHoleID(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("hole: %w", err)
		}
		if _, err := cl.Hole(id); err != nil {
			return zygo.SexpNull, fmt.Errorf("hole: %w", err)
		}
		return &sexpHole{id: id}, nil
	})

	// -----------------------------------------------------------------------
	// (separator-of (hole 1) :up)
	// -----------------------------------------------------------------------
	b.addFunction(env, "separator_of", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		cl, err := b.current("separator-of")
		if err != nil {
			return zygo.SexpNull, err
		}
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("separator-of requires a hole and a face, got %d arguments", len(args))
		}
		id, err := toHoleID(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("separator-of: hole: %w", err)
		}
		f, err := toFace(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("separator-of: face: %w", err)
		}
		h, err := cl.Hole(id)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("separator-of: %w", err)
		}
		return &sexpSeparator{id: h.Separators[f]}, nil
	})

	// -----------------------------------------------------------------------
	// (highlight (separator-of (hole 0) :up))
	// -----------------------------------------------------------------------
	b.addFunction(env, "highlight", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		cl, err := b.current("highlight")
		if err != nil {
			return zygo.SexpNull, err
		}
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("highlight requires a separator argument")
		}
		id, err := toSeparatorID(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("highlight: %w", err)
		}
		if err := cl.RecolorSeparator(id, b.opts.SelectedColor); err != nil {
			return zygo.SexpNull, fmt.Errorf("highlight: %w", err)
		}
		return &sexpSeparator{id: id}, nil
	})
}
