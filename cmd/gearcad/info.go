package main

import (
	"fmt"
	"os"

	"github.com/gearforge/gearcad/render"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/spatial/r3"
)

var infoCmd = &cobra.Command{
	Use:   "info <file.stl>",
	Short: "Display information about an exported ASCII STL file",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	fp, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer fp.Close()
	name, model, err := render.ReadSTL(fp)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", args[0], err)
	}
	bb := model.Bounds()
	size := r3.Sub(bb.Max, bb.Min)
	fmt.Printf("Solid:     %s\n", name)
	fmt.Printf("Triangles: %d\n", len(model))
	fmt.Printf("Bounds:    min (%.6g %.6g %.6g) max (%.6g %.6g %.6g)\n",
		bb.Min.X, bb.Min.Y, bb.Min.Z, bb.Max.X, bb.Max.Y, bb.Max.Z)
	fmt.Printf("Size:      %.6g x %.6g x %.6g\n", size.X, size.Y, size.Z)
	fmt.Printf("Volume:    %.6g\n", model.Volume())
	return nil
}
