package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chazu/closet/pkg/closet"
	"github.com/chazu/closet/pkg/geom"
)

// evalCommand creates the eval command, which checks a layout and prints its
// holes and shared separators.
func (c *cli) evalCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "eval [file]",
		Short: "Evaluate a layout and print a summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runEval(cmd, args[0])
		},
	}
}

func (c *cli) runEval(cmd *cobra.Command, path string) error {
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
	cl, result := a.Check(source)
	if !result.OK() {
		return reportErrors(logger, path, result)
	}
	reportWarnings(logger, path, result)
	prog.done("Evaluated " + path)

	return writeSummary(cmd.OutOrStdout(), cl)
}

// writeSummary prints one row per hole followed by the separators that
// bound more than one hole face.
func writeSummary(w io.Writer, cl *closet.Closet) error {
	if cl == nil {
		_, err := fmt.Fprintln(w, styleDim.Render("no closet defined"))
		return err
	}

	fmt.Fprintf(w, "%s  %s holes  %s separators  %s parts  %s\n",
		styleTitle.Render("closet"),
		styleNumber.Render(fmt.Sprint(cl.NumHoles())),
		styleNumber.Render(fmt.Sprint(cl.NumSeparators())),
		styleNumber.Render(fmt.Sprint(cl.NumParts())),
		styleDim.Render("overall "+formatSize(cl.Bounds())))

	t := newTable("HOLE", "BASE", "FACE", "SIZE", "MIN")
	for _, h := range cl.Holes() {
		base, face := "-", "-"
		if !h.Placement.IsSeed() {
			base = fmt.Sprint(h.Placement.Base)
			face = h.Placement.Face.String()
		}
		t.Row(fmt.Sprint(h.ID), base, face, formatSize(h.Cuboid), formatVec(h.Cuboid.Min()))
	}
	if _, err := fmt.Fprintln(w, t.Render()); err != nil {
		return err
	}

	var shared []string
	for _, s := range cl.SharedSeparators() {
		shared = append(shared, fmt.Sprintf("%d (%d parts)", s.ID, len(s.Parts)))
	}
	if len(shared) == 0 {
		shared = []string{styleDim.Render("none")}
	}
	_, err := fmt.Fprintf(w, "shared separators: %s\n", strings.Join(shared, ", "))
	return err
}

func formatSize(c geom.Cuboid) string {
	s := c.Size()
	return fmt.Sprintf("%.3f x %.3f x %.3f", s.X, s.Y, s.Z)
}

func formatVec(v geom.Vec3) string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", v.X, v.Y, v.Z)
}
