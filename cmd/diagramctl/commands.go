/*
	Copyright 2023 Google Inc.
	Licensed under the Apache License, Version 2.0 (the "License");
	you may not use this file except in compliance with the License.
	You may obtain a copy of the License at
		https://www.apache.org/licenses/LICENSE-2.0
	Unless required by applicable law or agreed to in writing, software
	distributed under the License is distributed on an "AS IS" BASIS,
	WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
	See the License for the specific language governing permissions and
	limitations under the License.
*/

package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ilhamster/diagramviz/handlers"
	"github.com/ilhamster/diagramviz/legend"
	legendsource "github.com/ilhamster/diagramviz/legend_source"
	querydispatcher "github.com/ilhamster/diagramviz/query_dispatcher"
	rendercontext "github.com/ilhamster/diagramviz/render_context"
	"github.com/ilhamster/diagramviz/units"
	"github.com/ilhamster/diagramviz/util"
)

type configFunc func() *config

// output returns the file named path, or stdout if path is empty.
func output(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func newLegendCmd(cfg configFunc) *cobra.Command {
	var format, out string
	cmd := &cobra.Command{
		Use:   "legend <project> <layer>",
		Short: "Print the diagram legend of a layer",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := readProject(args[0])
			if err != nil {
				return err
			}
			c := cfg()
			src := legendsource.New(p, c.dpi, c.mapUnitsPerPixel, c.scale)
			w, closeFn, err := output(cmd, out)
			if err != nil {
				return err
			}
			if err := writeLegend(cmd.Context(), w, src, args[1], format, c); err != nil {
				closeFn()
				return err
			}
			return closeFn()
		},
	}
	cmd.Flags().StringVar(&format, "format", "text", "Output format: text, json or svg")
	cmd.Flags().StringVarP(&out, "output", "o", "", "Output file path (default: stdout)")
	return cmd
}

func writeLegend(ctx context.Context, w io.Writer, src *legendsource.Source, layer, format string, c *config) error {
	switch format {
	case "text":
		nodes, err := src.LegendNodes(layer, c.formatter())
		if err != nil {
			return err
		}
		for _, n := range nodes {
			writeNodeText(w, n)
		}
		return nil
	case "svg":
		nodes, err := src.LegendNodes(layer, c.formatter())
		if err != nil {
			return err
		}
		return legend.WriteSVG(w, layer, nodes, c.renderContext())
	case "json":
		drb := util.NewDataResponseBuilder()
		err := src.HandleDataSeriesRequests(ctx,
			map[string]*util.V{legendsource.LocaleKey: util.StringValue(c.locale.String())},
			drb,
			[]*util.DataSeriesRequest{{
				QueryName:  legendsource.LegendQuery,
				SeriesName: layer,
				Options:    map[string]*util.V{legendsource.LayerKey: util.StringValue(layer)},
			}})
		if err != nil {
			return err
		}
		data, err := drb.Data()
		if err != nil {
			return err
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	}
	return fmt.Errorf("invalid format: %s (must be text, json or svg)", format)
}

func writeNodeText(w io.Writer, n legend.Node) {
	switch n := n.(type) {
	case *legend.SimpleNode:
		if c, ok := n.Swatch(); ok {
			fmt.Fprintf(w, "[%s] %s\n", c.Name(), n.Label())
			return
		}
		fmt.Fprintln(w, n.Label())
	case *legend.SymbolNode:
		s := n.Symbol()
		fmt.Fprintf(w, "  (%g %s) %s\n", s.Size(), s.SizeUnit(), n.Label())
	}
}

func newSizeCmd(cfg configFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "size <project> <layer>",
		Short: "Print the diagram size of each feature, in map units",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := readProject(args[0])
			if err != nil {
				return err
			}
			l, err := p.Layer(args[1])
			if err != nil {
				return err
			}
			r := l.DiagramRenderer()
			if r == nil {
				return fmt.Errorf("layer %s has no diagrams", args[1])
			}
			rc := cfg().renderContext()
			w := cmd.OutOrStdout()
			for _, f := range l.Features() {
				size := r.SizeMapUnits(f, rc)
				if !size.IsValid() {
					fmt.Fprintf(w, "%d\t-\n", f.ID)
					continue
				}
				fmt.Fprintf(w, "%d\t%g\t%g\n", f.ID, size.Width, size.Height)
			}
			return nil
		},
	}
}

func newRenderCmd(cfg configFunc) *cobra.Command {
	var width, height int
	var originX, originY float64
	var out string
	cmd := &cobra.Command{
		Use:   "render <project> <layer>",
		Short: "Draw the diagrams of a layer as SVG",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := readProject(args[0])
			if err != nil {
				return err
			}
			l, err := p.Layer(args[1])
			if err != nil {
				return err
			}
			w, closeFn, err := output(cmd, out)
			if err != nil {
				return err
			}
			bw := bufio.NewWriter(w)
			painter := rendercontext.NewSVGPainter(bw, width, height)
			painter.Title(l.Name)
			rc := cfg().renderContext()
			rc.Painter = painter
			n := l.RenderDiagrams(rc, units.Point{X: originX, Y: originY})
			painter.Close()
			if err := bw.Flush(); err != nil {
				closeFn()
				return err
			}
			log.Printf("drew %d diagrams of layer %s", n, l.Name)
			return closeFn()
		},
	}
	cmd.Flags().IntVar(&width, "width", 800, "Image width, in pixels")
	cmd.Flags().IntVar(&height, "height", 600, "Image height, in pixels")
	cmd.Flags().Float64Var(&originX, "origin-x", 0, "Map X coordinate of the image's top left corner")
	cmd.Flags().Float64Var(&originY, "origin-y", 0, "Map Y coordinate of the image's top left corner")
	cmd.Flags().StringVarP(&out, "output", "o", "", "Output file path (default: stdout)")
	return cmd
}

func newNormalizeCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "normalize <project>",
		Short: "Rewrite a project, upgrading legacy diagram settings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := readProject(args[0])
			if err != nil {
				return err
			}
			w, closeFn, err := output(cmd, out)
			if err != nil {
				return err
			}
			if err := p.Write(w); err != nil {
				closeFn()
				return err
			}
			return closeFn()
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "Output file path (default: stdout)")
	return cmd
}

func newServeCmd(v *viper.Viper, cfg configFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve <project>",
		Short: "Serve legend queries and legend graphics over HTTP",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := readProject(args[0])
			if err != nil {
				return err
			}
			c := cfg()
			src := legendsource.New(p, c.dpi, c.mapUnitsPerPixel, c.scale)
			qd, err := querydispatcher.New(src)
			if err != nil {
				return err
			}
			mux := http.NewServeMux()
			for path, h := range handlers.NewQueryHandler(qd, src).HandlersByPath() {
				mux.HandleFunc(path, h)
			}
			log.Printf("Serving %d layers of %s at %s", len(p.Layers()), args[0], c.addr)
			return http.ListenAndServe(c.addr, mux)
		},
	}
	cmd.Flags().String(addrKey, ":7420", "Address to serve on")
	bindFlags(v, cmd.Flags())
	return cmd
}
