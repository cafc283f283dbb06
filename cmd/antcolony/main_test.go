package main

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	antcolony "github.com/sjjohnst/Ant-Colony"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseConfig(t *testing.T) {
	path := writeFile(t, "run.toml", `
Agents = 12
Seed = 99
WanderType = "perlin"
DomainType = "periodic"
FoodType = "none"
`)
	conf, err := ParseConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if conf.Agents != 12 || conf.Seed != 99 || conf.WanderType != "perlin" || conf.DomainType != "periodic" {
		t.Errorf("overrides not applied: %+v", conf)
	}
	if conf.MaxSpeed != DefaultConf.MaxSpeed || conf.Steps != DefaultConf.Steps {
		t.Errorf("defaults not kept: %+v", conf)
	}
	if DefaultConf.Agents == 12 {
		t.Error("ParseConfig modified the defaults")
	}

	p := conf.Params()
	if err := p.Validate(); err != nil {
		t.Fatal(err)
	}
	if p.Agents != 12 || p.Wander != antcolony.PerlinWander || p.Boundary != antcolony.Periodic || p.Bounds.Width() != conf.DomainWidth {
		t.Errorf("bad params: %+v", p)
	}
}

func TestParseConfig_Errors(t *testing.T) {
	for name, content := range map[string]string{
		"syntax":      "Agents = ",
		"unknown key": "Ants = 3",
		"bad type":    `Agents = "many"`,
	} {
		if _, err := ParseConfig(writeFile(t, "bad.toml", content)); err == nil {
			t.Errorf("%s: no error", name)
		}
	}
	if _, err := ParseConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("missing file: no error")
	}
}

func TestDefaultConf(t *testing.T) {
	p := DefaultConf.Params()
	if err := p.Validate(); err != nil {
		t.Fatal(err)
	}
	d := antcolony.DefaultParams()
	if p.Kinematics != d.Kinematics || p.Senses != d.Senses || p.Nest != d.Nest {
		t.Errorf("default config and default params disagree:\n%+v\n%+v", p, d)
	}
}

func TestSetup(t *testing.T) {
	conf := *DefaultConf
	conf.Agents = 10
	c, err := setup(&conf)
	if err != nil {
		t.Fatal(err)
	}
	if c.Len() != 10 || c.FoodCount() == 0 || c.FoodCount() > conf.FoodClusters*conf.FoodPerCluster {
		t.Errorf("setup: %d ants, %d food", c.Len(), c.FoodCount())
	}

	conf.FoodType = "geojson"
	conf.FoodPath = writeFile(t, "food.geojson",
		`{"type": "MultiPoint", "coordinates": [[10, 10], [20, 20], [900, 900]]}`)
	c, err = setup(&conf)
	if err != nil {
		t.Fatal(err)
	}
	if c.FoodCount() != 2 {
		t.Errorf("geojson food: %d items, want 2 in bounds", c.FoodCount())
	}

	for _, bad := range []func(c *Config){
		func(c *Config) { c.FoodType = "manna" },
		func(c *Config) { c.FoodType = "geojson"; c.FoodPath = "does-not-exist.geojson" },
		func(c *Config) { c.WanderType = "levy" },
	} {
		conf := *DefaultConf
		bad(&conf)
		if _, err := setup(&conf); err == nil {
			t.Errorf("bad config accepted: %+v", conf)
		}
	}
}

func TestRunAndSummarize(t *testing.T) {
	conf := *DefaultConf
	conf.Agents = 8
	conf.FoodType = "none"
	c, err := setup(&conf)
	if err != nil {
		t.Fatal(err)
	}
	clock := antcolony.NewClock(conf.Dt)
	var progress bytes.Buffer
	run(c, clock, 250, &progress)
	if c.Ticks != 250 {
		t.Errorf("ran %d ticks, want 250", c.Ticks)
	}
	if !strings.HasSuffix(progress.String(), "\r100%\n") {
		t.Errorf("progress = %q", progress.String())
	}

	var out bytes.Buffer
	summarize(log.New(&out, "", 0), c, clock, 0)
	for _, s := range []string{"250 ticks", "0 delivered", "home-trail", "food-trail", "mean 0.000"} {
		if !strings.Contains(out.String(), s) {
			t.Errorf("summary misses %q:\n%s", s, out.String())
		}
	}
}
