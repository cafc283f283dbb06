package hdf5

import (
	"path/filepath"
	"sort"
	"testing"

	antcolony "github.com/sjjohnst/Ant-Colony"
	"github.com/sjjohnst/Ant-Colony/geom"
)

func newColony(t *testing.T) *antcolony.Colony {
	t.Helper()
	p := antcolony.DefaultParams()
	p.Agents = 5
	c, err := antcolony.New(p)
	if err != nil {
		t.Fatal(err)
	}
	for _, q := range []geom.Point{{X: 10, Y: 10}, {X: 400, Y: 30}, {X: 75.5, Y: 480}} {
		c.PlaceFood(q)
	}
	return c
}

func sorted(pts []geom.Point) []geom.Point {
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].X != pts[j].X {
			return pts[i].X < pts[j].X
		}
		return pts[i].Y < pts[j].Y
	})
	return pts
}

func TestDatasetData(t *testing.T) {
	c := newColony(t)
	ants := Ants(5).Data(c).([]AntRecord)
	if len(ants) != 5 || ants[0].Pos != c.Nest() {
		t.Errorf("ants = %+v", ants)
	}
	food := Food(5).Data(c).([]geom.Vec2)
	if food[3] != (geom.Vec2{}) || food[4] != (geom.Vec2{}) {
		t.Errorf("food rows are not zero padded: %v", food)
	}
	if got := Food(2).Data(c).([]geom.Vec2); len(got) != 2 {
		t.Errorf("food overflowed its rows: %v", got)
	}
	c.Delivered = 4
	if n := *Delivered().Data(c).(*int32); n != 4 {
		t.Errorf("delivered = %d, want 4", n)
	}
	c.Tick(0.1, 0.1)
	if tr := Trails().Data(c).([]int32); len(tr) != 2 || tr[0] != 1 {
		t.Errorf("trails = %v, want one home mark", tr)
	}
}

func TestRunAndLoad(t *testing.T) {
	c := newColony(t)
	var want []geom.Point
	c.EachFood(func(p geom.Point) bool { want = append(want, p); return true })

	type meta struct {
		Agents int
		Dt     float64
		Name   string
		Skip   []int
	}
	steps := 0
	conf := &Config{
		Output:   filepath.Join(t.TempDir(), "out", "run.h5"),
		Steps:    4,
		Step:     func() { steps++; c.Tick(0.1, 0.1*float64(steps)) },
		Datasets: []*Dataset{Ants(5), Food(8), Trails(), Delivered()},
		Meta:     &meta{Agents: 5, Dt: 0.1, Name: "test"},
	}
	if err := Run(c, conf); err != nil {
		t.Fatal(err)
	}
	if steps != 4 || c.Ticks != 4 {
		t.Fatalf("ran %d steps, %d ticks", steps, c.Ticks)
	}

	l, err := NewLoader(conf.Output, "food")
	if err != nil {
		t.Fatal(err)
	}
	defer l.Close()
	if l.Frames() != 4 {
		t.Errorf("Frames = %d, want 4", l.Frames())
	}
	var got []geom.Point
	if err := l.Load(&got); err != nil {
		t.Fatal(err)
	}
	want, got = sorted(want), sorted(got)
	if len(got) != len(want) {
		t.Fatalf("loaded %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("loaded %v, want %v", got, want)
			break
		}
	}

	if _, err := NewLoader(conf.Output, "delivered"); err == nil {
		t.Error("loaded a one-dimensional dataset")
	}
}
