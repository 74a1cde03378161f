package main

import (
	"fmt"

	"github.com/gearforge/gearcad/form3/obj3"
	"github.com/spf13/cobra"
)

var dimsFlags gearFlags

var dimsCmd = &cobra.Command{
	Use:   "dims",
	Short: "Print the derived gear dimensions without generating geometry",
	Args:  cobra.NoArgs,
	RunE:  runDims,
}

func init() {
	dimsFlags.register(dimsCmd)
	rootCmd.AddCommand(dimsCmd)
}

func runDims(cmd *cobra.Command, args []string) error {
	p := obj3.GearParams{
		Teeth:         dimsFlags.teeth,
		Module:        dimsFlags.module,
		PressureAngle: dimsFlags.pressureAngle,
		Thickness:     dimsFlags.thickness,
	}
	d := p.Dimensions()
	fmt.Printf("Teeth:          %d\n", p.Teeth)
	fmt.Printf("Module:         %g\n", p.Module)
	fmt.Printf("Pressure angle: %g deg\n", p.PressureAngle)
	fmt.Printf("Thickness:      %g\n", p.Thickness)
	fmt.Println()
	fmt.Printf("Pitch radius:   %.6f\n", d.PitchRadius)
	fmt.Printf("Base radius:    %.6f\n", d.BaseRadius)
	fmt.Printf("Outer radius:   %.6f\n", d.OuterRadius)
	fmt.Printf("Root radius:    %.6f\n", d.RootRadius)
	fmt.Printf("Addendum:       %.6f\n", d.Addendum)
	fmt.Printf("Dedendum:       %.6f\n", d.Dedendum)
	return nil
}
