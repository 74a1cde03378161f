package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gearcad",
	Short: "Parametric spur gear generator with ASCII STL export",
	Long: `gearcad generates a spur gear solid from four numbers (tooth count,
module, pressure angle, thickness), previews it, and exports it as an
ASCII STL file. Teeth are carved out of a cylindrical blank by boolean
subtraction of rectangular cutters.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// gearFlags are the four parameters shared by the generate and dims commands.
type gearFlags struct {
	teeth         int
	module        float64
	pressureAngle float64
	thickness     float64
}

func (g *gearFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&g.teeth, "teeth", "t", 12, "number of teeth (at least 3)")
	cmd.Flags().Float64VarP(&g.module, "module", "m", 1, "gear module: pitch diameter per tooth")
	cmd.Flags().Float64VarP(&g.pressureAngle, "pressure-angle", "a", 20, "pressure angle in degrees")
	cmd.Flags().Float64VarP(&g.thickness, "thickness", "k", 2, "gear width along the axis")
}
