package closet

import (
	"fmt"

	"github.com/chazu/closet/pkg/geom"
)

// overlapEps is the tolerance below which touching boxes are not reported as
// overlapping.
const overlapEps = 1e-9

// ValidationSeverity indicates whether a validation finding means the layout
// is broken or merely suspicious.
type ValidationSeverity int

const (
	SeverityError   ValidationSeverity = iota // layout is inconsistent
	SeverityWarning                           // informational
)

func (s ValidationSeverity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("ValidationSeverity(%d)", int(s))
	}
}

// ValidationError describes a single validation finding. Hole and Separator
// are NoHole / NoSeparator when the finding is not about one of them.
type ValidationError struct {
	Hole      HoleID
	Separator SeparatorID
	Message   string
	Severity  ValidationSeverity
}

func (e ValidationError) Error() string {
	switch {
	case e.Hole != NoHole:
		return fmt.Sprintf("[%s] hole %d: %s", e.Severity, e.Hole, e.Message)
	case e.Separator != NoSeparator:
		return fmt.Sprintf("[%s] separator %d: %s", e.Severity, e.Separator, e.Message)
	default:
		return fmt.Sprintf("[%s] %s", e.Severity, e.Message)
	}
}

// ValidationResult splits findings into errors and warnings.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// OK reports whether no errors were found.
func (r ValidationResult) OK() bool {
	return len(r.Errors) == 0
}

// Validate checks the closet's structural and geometric consistency. It is
// read-only and never mutates the closet.
func Validate(cl *Closet) ValidationResult {
	var findings []ValidationError
	findings = append(findings, validateHoleGeometry(cl)...)
	findings = append(findings, validateHoleSeparators(cl)...)
	findings = append(findings, validatePartOwnership(cl)...)
	findings = append(findings, validateHoleOverlaps(cl)...)
	findings = append(findings, validatePanelIntrusions(cl)...)

	var res ValidationResult
	for _, f := range findings {
		if f.Severity == SeverityWarning {
			res.Warnings = append(res.Warnings, f)
		} else {
			res.Errors = append(res.Errors, f)
		}
	}
	return res
}

func holeFinding(h HoleID, sev ValidationSeverity, format string, args ...any) ValidationError {
	return ValidationError{Hole: h, Separator: NoSeparator, Message: fmt.Sprintf(format, args...), Severity: sev}
}

func separatorFinding(s SeparatorID, sev ValidationSeverity, format string, args ...any) ValidationError {
	return ValidationError{Hole: NoHole, Separator: s, Message: fmt.Sprintf(format, args...), Severity: sev}
}

// validateHoleGeometry checks that every hole is a proper box with positive
// extents.
func validateHoleGeometry(cl *Closet) []ValidationError {
	var errs []ValidationError
	for _, h := range cl.holes {
		if !h.Cuboid.Valid() {
			errs = append(errs, holeFinding(h.ID, SeverityError, "cuboid vertices do not form an axis-aligned box"))
			continue
		}
		for _, a := range geom.Axes {
			if e := h.Cuboid.Extent(a); !(e > 0) {
				errs = append(errs, holeFinding(h.ID, SeverityError, "extent %s is %.4f, must be positive", a, e))
			}
		}
	}
	return errs
}

// validateHoleSeparators checks that every hole face is bounded by an
// existing separator that has a part flush against that face.
func validateHoleSeparators(cl *Closet) []ValidationError {
	var errs []ValidationError
	for _, h := range cl.holes {
		for _, f := range geom.Faces {
			sid := h.Separators[f]
			if sid == NoSeparator {
				errs = append(errs, holeFinding(h.ID, SeverityError, "face %s has no separator", f))
				continue
			}
			if cl.checkSeparator(sid) != nil {
				errs = append(errs, holeFinding(h.ID, SeverityError, "face %s references missing separator %d", f, sid))
				continue
			}
			if !cl.hasPart(sid, h.ID, f) {
				errs = append(errs, holeFinding(h.ID, SeverityError, "separator %d has no part on face %s", sid, f))
			}
		}
	}
	return errs
}

// validatePartOwnership checks that parts and separators point at each
// other.
func validatePartOwnership(cl *Closet) []ValidationError {
	var errs []ValidationError
	owner := make(map[PartID]SeparatorID, len(cl.parts))
	for _, s := range cl.separators {
		if len(s.Parts) == 0 {
			errs = append(errs, separatorFinding(s.ID, SeverityError, "separator has no parts"))
		}
		for _, pid := range s.Parts {
			if prev, dup := owner[pid]; dup {
				errs = append(errs, separatorFinding(s.ID, SeverityError, "part %d already belongs to separator %d", pid, prev))
				continue
			}
			owner[pid] = s.ID
			if int(pid) >= len(cl.parts) || cl.parts[pid].Separator != s.ID {
				errs = append(errs, separatorFinding(s.ID, SeverityError, "part %d does not point back to the separator", pid))
			}
		}
	}
	for _, p := range cl.parts {
		if _, ok := owner[p.ID]; !ok {
			errs = append(errs, separatorFinding(p.Separator, SeverityError, "part %d is not listed by its separator", p.ID))
		}
	}
	return errs
}

// validateHoleOverlaps warns about holes whose interiors intersect.
func validateHoleOverlaps(cl *Closet) []ValidationError {
	var warnings []ValidationError
	for i := range cl.holes {
		for j := i + 1; j < len(cl.holes); j++ {
			if cl.holes[i].Cuboid.Overlaps(cl.holes[j].Cuboid, overlapEps) {
				warnings = append(warnings, holeFinding(cl.holes[j].ID, SeverityWarning,
					"overlaps hole %d", cl.holes[i].ID))
			}
		}
	}
	return warnings
}

// validatePanelIntrusions warns about separator parts that cut into a hole.
func validatePanelIntrusions(cl *Closet) []ValidationError {
	var warnings []ValidationError
	for _, p := range cl.parts {
		for _, h := range cl.holes {
			if p.Cuboid.Overlaps(h.Cuboid, overlapEps) {
				warnings = append(warnings, separatorFinding(p.Separator, SeverityWarning,
					"part %d (hole %d %s) cuts into hole %d", p.ID, p.Hole, p.Face, h.ID))
			}
		}
	}
	return warnings
}

func (cl *Closet) hasPart(sid SeparatorID, hole HoleID, f geom.Face) bool {
	for _, pid := range cl.separators[sid].Parts {
		if int(pid) < len(cl.parts) && cl.parts[pid].Hole == hole && cl.parts[pid].Face == f {
			return true
		}
	}
	return false
}
