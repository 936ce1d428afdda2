package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chazu/closet/pkg/closet"
	"github.com/chazu/closet/pkg/config"
)

func (c *cli) separatorsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "separators [file]",
		Short: "List separators and the hole faces each one bounds",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			source, err := readSource(cmd, args[0])
			if err != nil {
				return err
			}
			a, err := c.newApp(ctx)
			if err != nil {
				return err
			}
			cl, result := a.Check(source)
			if !result.OK() {
				return reportErrors(logger, args[0], result)
			}
			reportWarnings(logger, args[0], result)
			return writeSeparators(cmd.OutOrStdout(), cl)
		},
	}
}

// writeSeparators prints one row per separator. The color column shows the
// color of the separator's first part.
func writeSeparators(w io.Writer, cl *closet.Closet) error {
	if cl == nil {
		_, err := fmt.Fprintln(w, styleDim.Render("no closet defined"))
		return err
	}

	parts := cl.Parts()
	t := newTable("ID", "THICKNESS", "COLOR", "BOUNDS")
	for _, s := range cl.Separators() {
		bounds := make([]string, 0, len(s.Parts))
		color := ""
		for _, pid := range s.Parts {
			p := parts[pid]
			bounds = append(bounds, fmt.Sprintf("%d:%s", p.Hole, p.Face))
			if color == "" {
				color = config.HexColor(p.Color)
			}
		}
		t.Row(fmt.Sprint(s.ID), fmt.Sprintf("%g", s.Thickness), swatch(color)+" "+color, strings.Join(bounds, " "))
	}
	_, err := fmt.Fprintln(w, t.Render())
	return err
}
