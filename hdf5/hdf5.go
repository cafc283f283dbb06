// Package hdf5 records colony runs to HDF5 files and reads food layouts back from them.
package hdf5

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"time"

	"gonum.org/v1/hdf5"

	antcolony "github.com/sjjohnst/Ant-Colony"
	"github.com/sjjohnst/Ant-Colony/geom"
	"github.com/sjjohnst/Ant-Colony/pheromone"
)

// A Dataset stipulates how to generate data and where to store them in the HDF5 file.
type Dataset struct {
	// Name the name of the dataset in the HDF5 file.
	Name string

	// Val is a value of the same concrete type as the underlying type of the data.
	Val interface{}

	// Dims are the dimensions of the data for a single step.
	Dims []int

	// Data is a function that produces the data
	// as a slice of row-major concrete values, or a pointer to a scalar.
	Data func(c *antcolony.Colony) interface{}

	dset   *hdf5.Dataset
	fspace *hdf5.Dataspace
	mspace *hdf5.Dataspace
}

// Config holds the parameters of the HDF5 driver.
type Config struct {
	Output   string     // path of output file
	Steps    int        // total number of steps
	Step     func()     // go to next step
	Datasets []*Dataset // list of datasets

	// Meta is a pointer to a struct whose exported scalar fields
	// are saved as attributes of the "config" dataset. It may be nil.
	Meta interface{}

	// Progress receives the completion percentage. It may be nil.
	Progress io.Writer
}

// Run runs a simulation and saves data to an HDF5 file.
// Every dataset is sampled before each step.
func Run(c *antcolony.Colony, conf *Config) (err error) {
	if err := os.MkdirAll(filepath.Dir(conf.Output), 0755); err != nil {
		return err
	}

	file, err := hdf5.CreateFile(conf.Output, hdf5.F_ACC_TRUNC)
	if err != nil {
		return err
	}
	defer checkClose(&err, file)

	if err := saveConfig(file, conf); err != nil {
		return err
	}

	for _, d := range conf.Datasets {
		if err := d.init(file, conf); err != nil {
			return err
		}
		defer checkClose(&err, d)
	}

	for k := uint(0); k < uint(conf.Steps); k++ {
		// show progress as percentage
		if conf.Progress != nil {
			fmt.Fprintf(conf.Progress, "\r% 3d%%", 100*k/uint(conf.Steps))
		}

		for _, d := range conf.Datasets {
			start := make([]uint, len(d.Dims)+1)
			start[0] = k
			if err := d.fspace.SetOffset(start); err != nil {
				return err
			}
			if err := d.dset.WriteSubset(d.Data(c), d.mspace, d.fspace); err != nil {
				return fmt.Errorf("hdf5: writing %s at step %d: %w", d.Name, k, err)
			}
		}

		conf.Step()
	}
	if conf.Progress != nil {
		fmt.Fprintf(conf.Progress, "\r100%%\n")
	}
	return nil
}

// An AntRecord is what is recorded in the HDF5 file for each ant at each step.
// This structure is mapped to a compound datatype in HDF5 so member names are important.
type AntRecord struct {
	Pos     geom.Vec2 // position
	Vel     geom.Vec2 // velocity
	Mode    int32     // behavioral state
	Holding int32     // 1 if the ant carries food
}

// Ants returns a dataset of the state of the n ants of a colony.
func Ants(n int) *Dataset {
	return &Dataset{
		Name: "ants",
		Val:  AntRecord{},
		Dims: []int{n},
		Data: func(c *antcolony.Colony) interface{} {
			r := make([]AntRecord, n)
			for i := 0; i < n && i < c.Len(); i++ {
				a := c.Ant(i)
				r[i] = AntRecord{Pos: a.Pos, Vel: a.Vel, Mode: int32(a.Mode)}
				if a.HoldingFood {
					r[i].Holding = 1
				}
			}
			return r
		},
	}
}

// Food returns a dataset of the positions of at most n food items.
// Unused rows are left at the origin, which marks the end of the data.
func Food(n int) *Dataset {
	return &Dataset{
		Name: "food",
		Val:  geom.Vec2{},
		Dims: []int{n},
		Data: func(c *antcolony.Colony) interface{} {
			r := make([]geom.Vec2, n)
			i := 0
			c.EachFood(func(p geom.Point) bool {
				if i == n {
					return false
				}
				r[i] = p
				i++
				return true
			})
			return r
		},
	}
}

// Trails returns a dataset of the number of live trail marks per category.
func Trails() *Dataset {
	return &Dataset{
		Name: "trails",
		Val:  int32(0),
		Dims: []int{int(pheromone.NumCategories)},
		Data: func(c *antcolony.Colony) interface{} {
			r := make([]int32, pheromone.NumCategories)
			for k := range r {
				r[k] = int32(c.Trails().Len(pheromone.Category(k)))
			}
			return r
		},
	}
}

// Delivered returns a scalar dataset of the food items delivered to the nest so far.
func Delivered() *Dataset {
	return &Dataset{
		Name: "delivered",
		Val:  int32(0),
		Data: func(c *antcolony.Colony) interface{} {
			n := int32(c.Delivered)
			return &n
		},
	}
}

// saveConfig creates a "config" dataset with a null dataspace whose attributes
// reflect the whole configuration plus some other appropriate metadata.
func saveConfig(file *hdf5.File, conf *Config) (err error) {
	null, err := hdf5.CreateDataspace(hdf5.S_NULL)
	if err != nil {
		return err
	}
	defer checkClose(&err, null)

	anytype, err := hdf5.NewDatatypeFromValue(0)
	if err != nil {
		return err
	}
	defer checkClose(&err, anytype)

	dset, err := file.CreateDataset("config", anytype, null)
	if err != nil {
		return err
	}
	defer checkClose(&err, dset)

	scalar, err := hdf5.CreateDataspace(hdf5.S_SCALAR)
	if err != nil {
		return err
	}
	defer checkClose(&err, scalar)

	now := time.Now().String()
	if err := writeAttr(dset, scalar, "Time", &now); err != nil {
		return err
	}

	if conf.Meta == nil {
		return nil
	}
	v := reflect.ValueOf(conf.Meta).Elem()
	for i := 0; i < v.NumField(); i++ {
		f := v.Field(i)
		switch f.Kind() {
		case reflect.Int, reflect.Int64, reflect.Float64, reflect.String:
		default:
			continue
		}
		if err := writeAttr(dset, scalar, v.Type().Field(i).Name, f.Addr().Interface()); err != nil {
			return err
		}
	}
	return nil
}

// writeAttr writes the value pointed to by ptr as a scalar attribute of dset.
func writeAttr(dset *hdf5.Dataset, scalar *hdf5.Dataspace, name string, ptr interface{}) (err error) {
	dtype, err := hdf5.NewDatatypeFromValue(reflect.ValueOf(ptr).Elem().Interface())
	if err != nil {
		return err
	}
	defer checkClose(&err, dtype)

	attr, err := dset.CreateAttribute(name, dtype, scalar)
	if err != nil {
		return err
	}
	defer checkClose(&err, attr)

	return attr.Write(ptr, dtype)
}

// init creates the dataset and its dataspaces in file.
func (d *Dataset) init(file *hdf5.File, conf *Config) (err error) {
	dtype, err := hdf5.NewDatatypeFromValue(d.Val)
	if err != nil {
		return err
	}
	defer checkClose(&err, dtype)

	udims := make([]uint, len(d.Dims)+1)
	udims[0] = uint(conf.Steps)
	for i, n := range d.Dims {
		udims[i+1] = uint(n)
	}

	d.fspace, err = hdf5.CreateSimpleDataspace(udims, nil)
	if err != nil {
		return err
	}

	start := make([]uint, len(udims))
	count := make([]uint, len(udims))
	copy(count, udims)
	count[0] = 1

	if err := d.fspace.SelectHyperslab(start, nil, count, nil); err != nil {
		checkClose(&err, d.fspace)
		return err
	}

	if len(d.Dims) == 0 {
		d.mspace, err = hdf5.CreateDataspace(hdf5.S_SCALAR)
	} else {
		d.mspace, err = hdf5.CreateSimpleDataspace(udims[1:], nil)
	}
	if err != nil {
		checkClose(&err, d.fspace)
		return err
	}

	d.dset, err = file.CreateDataset(d.Name, dtype, d.fspace)
	if err != nil {
		checkClose(&err, d.fspace)
		checkClose(&err, d.mspace)
	}

	return err
}

// Close closes the HDF5 dataset and Dataspaces.
func (d *Dataset) Close() error {
	if err := d.dset.Close(); err != nil {
		return err
	}
	if err := d.mspace.Close(); err != nil {
		return err
	}
	if err := d.fspace.Close(); err != nil {
		return err
	}
	return nil
}

// checkClose checks for errors in deferred calls.
func checkClose(err *error, c io.Closer) {
	if cerr := c.Close(); *err == nil {
		*err = cerr
	}
}
