// Package output writes the solver's three result artifacts (§6.3):
// a VTU volume solution, per-wall surface-coefficient tables, and a
// residual-history log. Point-data array naming is driven by struct
// tags the way framework.go's Cell struct tags (`desc`/`units`) name
// InMAP's exported NetCDF variables, generalized here from a
// reflect.TypeOf(...).FieldByName single lookup to a full field walk.
package output

import (
	"reflect"

	"github.com/strandscfd/strands2d/physics"
)

// VolumeSample is one node's or cell's worth of exported point data.
type VolumeSample struct {
	Density   float64 `name:"density" units:"rho/rho_inf"`
	Mach      float64 `name:"mach_number" units:"nondimensional"`
	Pressure  float64 `name:"pressure" units:"p/(rho_inf*v_inf^2)"`
	VelocityX float64 `name:"velocity_x" units:"v/v_inf"`
	VelocityY float64 `name:"velocity_y" units:"v/v_inf"`
}

// sampleFrom builds a VolumeSample from a conservative state.
func sampleFrom(gas physics.Gas, u []float64) VolumeSample {
	vx, vy := gas.Velocity(u)
	return VolumeSample{
		Density:   u[0],
		Mach:      gas.Mach(u),
		Pressure:  gas.Pressure(u),
		VelocityX: vx,
		VelocityY: vy,
	}
}

// fieldInfo names one exported field of VolumeSample for VTU point-data
// array headers.
type fieldInfo struct {
	Index int
	Name  string
	Units string
}

// volumeFields walks VolumeSample's struct tags once via reflection,
// the same tag-driven naming getUnits performs per-variable on demand.
func volumeFields() []fieldInfo {
	t := reflect.TypeOf(VolumeSample{})
	fields := make([]fieldInfo, t.NumField())
	for i := range fields {
		f := t.Field(i)
		fields[i] = fieldInfo{Index: i, Name: f.Tag.Get("name"), Units: f.Tag.Get("units")}
	}
	return fields
}

// value returns the field at index i (matching volumeFields' order) as
// a float64 via reflection.
func (s VolumeSample) value(i int) float64 {
	return reflect.ValueOf(s).Field(i).Float()
}
