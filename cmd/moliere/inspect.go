package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"moliere/pkg/css"
	"moliere/pkg/engine"
	"moliere/pkg/html"
	"moliere/pkg/layout"
)

var inspectCmd = &cobra.Command{
	Use:       "inspect (dom|styles|boxes) <input.html>",
	Short:     "Dump an intermediate pipeline stage",
	Args:      cobra.ExactArgs(2),
	ValidArgs: []string{"dom", "styles", "boxes"},
	RunE:      runInspect,
}

func init() {
	f := inspectCmd.Flags()
	f.Bool("json", false, "emit JSON instead of an indented tree")
	f.StringArray("css", nil, "extra stylesheet file (repeatable)")
	f.Int("width", 800, "viewport width in pixels")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	stage := args[0]
	asJSON, _ := cmd.Flags().GetBool("json")
	cssFiles, _ := cmd.Flags().GetStringArray("css")
	width, _ := cmd.Flags().GetInt("width")

	source, err := os.ReadFile(args[1])
	if err != nil {
		return fmt.Errorf("reading document: %w", err)
	}
	extraCSS, err := readStylesheets(cssFiles)
	if err != nil {
		logger.Warn("skipping unreadable stylesheets", zap.Error(err))
	}

	page := engine.New(float64(width), 0, logger).Run(string(source), extraCSS...)

	var dump any
	switch stage {
	case "dom":
		dump = dumpDOM(page.Document)
	case "styles":
		dump = dumpStyled(page.Styled)
	case "boxes":
		dump = dumpBox(page.Layout)
	default:
		return fmt.Errorf("unknown stage %q (want dom, styles, or boxes)", stage)
	}

	out := cmd.OutOrStdout()
	if asJSON {
		data, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(dump, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding %s dump: %w", stage, err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}
	printDump(out, dump, 0)
	return nil
}

// The dump types mirror the pipeline trees without parent pointers, so
// they encode as JSON without cycles.

type domDump struct {
	Tag        string            `json:"tag,omitempty"`
	Text       string            `json:"text,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty"`
	Children   []*domDump        `json:"children,omitempty"`
}

type styleDump struct {
	Tag      string            `json:"tag,omitempty"`
	Text     string            `json:"text,omitempty"`
	Values   map[string]string `json:"values,omitempty"`
	Children []*styleDump      `json:"children,omitempty"`
}

type boxDump struct {
	Kind     string     `json:"kind"`
	Tag      string     `json:"tag,omitempty"`
	X        float64    `json:"x"`
	Y        float64    `json:"y"`
	Width    float64    `json:"width"`
	Height   float64    `json:"height"`
	Children []*boxDump `json:"children,omitempty"`
}

func dumpDOM(n *html.Node) *domDump {
	d := &domDump{
		Tag:        n.TagName,
		Text:       n.Text,
		Attributes: n.Attributes,
	}
	for _, c := range n.Children {
		d.Children = append(d.Children, dumpDOM(c))
	}
	return d
}

func dumpStyled(sn *css.StyledNode) *styleDump {
	d := &styleDump{Tag: sn.Node.TagName, Text: sn.Node.Text}
	if len(sn.SpecifiedValues) > 0 {
		d.Values = make(map[string]string, len(sn.SpecifiedValues))
		for name, v := range sn.SpecifiedValues {
			d.Values[name] = v.String()
		}
	}
	for _, c := range sn.Children {
		d.Children = append(d.Children, dumpStyled(c))
	}
	return d
}

func dumpBox(b *layout.Box) *boxDump {
	if b == nil {
		return nil
	}
	d := &boxDump{
		Kind:   b.Kind.String(),
		X:      b.Dimensions.Content.X,
		Y:      b.Dimensions.Content.Y,
		Width:  b.Dimensions.Content.Width,
		Height: b.Dimensions.Content.Height,
	}
	if b.Style != nil {
		d.Tag = b.Style.Node.TagName
	}
	for _, c := range b.Children {
		d.Children = append(d.Children, dumpBox(c))
	}
	return d
}

func printDump(out io.Writer, dump any, depth int) {
	indent := strings.Repeat("  ", depth)
	switch d := dump.(type) {
	case *domDump:
		if d == nil {
			return
		}
		if d.Tag == "" {
			fmt.Fprintf(out, "%s%q\n", indent, d.Text)
			return
		}
		fmt.Fprintf(out, "%s<%s> %v\n", indent, d.Tag, d.Attributes)
		for _, c := range d.Children {
			printDump(out, c, depth+1)
		}
	case *styleDump:
		if d == nil {
			return
		}
		if d.Tag == "" {
			fmt.Fprintf(out, "%s%q\n", indent, d.Text)
			return
		}
		fmt.Fprintf(out, "%s<%s> %v\n", indent, d.Tag, d.Values)
		for _, c := range d.Children {
			printDump(out, c, depth+1)
		}
	case *boxDump:
		if d == nil {
			fmt.Fprintf(out, "%s(no boxes)\n", indent)
			return
		}
		name := d.Kind
		if d.Tag != "" {
			name += " <" + d.Tag + ">"
		}
		fmt.Fprintf(out, "%s%s (%g,%g) %gx%g\n", indent, name, d.X, d.Y, d.Width, d.Height)
		for _, c := range d.Children {
			printDump(out, c, depth+1)
		}
	}
}
