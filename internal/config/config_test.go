package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const validYAML = `
simulation:
  alpha0: 1.0e-4
  h1: 10
  h2: 20
  num_slots: 20
  total_time: 20
  vmax: 10
  kappa_m: 1.0e-27
  kappa_u: 1.0e-27
  epsilon1: 0.01
  epsilon2: 0.1
  l_total: 30.0e6
  c: 1000
  theta_m: 0.5
  theta_u: 0.5
  p_comm: 1.0e-12
  rate_coeff: 5.0e12
  f_uav_max: 3.0e9
  start_x: 0
  start_y: 0
  end_x: 10
  end_y: 0
  max_rounds: 8
  tolerance: 1.0e-3
devices:
  - {id: 1, x: 10, y: 10, load: 45.0e6}
  - {id: 2, x: 0, y: 10}
`

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_Valid(t *testing.T) {
	sc, err := Load(writeTemp(t, validYAML))
	if err != nil {
		t.Fatal(err)
	}
	if sc.Simulation.N != 20 {
		t.Errorf("num_slots = %d, want 20", sc.Simulation.N)
	}
	if len(sc.Devices) != 2 {
		t.Fatalf("got %d devices, want 2", len(sc.Devices))
	}

	inst, err := sc.Instance()
	if err != nil {
		t.Fatal(err)
	}
	if inst.Devices[0].Load != 45e6 {
		t.Errorf("device 1 load = %v, want 45e6", inst.Devices[0].Load)
	}
	// Unset load falls back to l_total.
	if inst.Devices[1].Load != 30e6 {
		t.Errorf("device 2 load = %v, want l_total 30e6", inst.Devices[1].Load)
	}
}

func TestLoad_MissingParameterFailsFast(t *testing.T) {
	broken := strings.Replace(validYAML, "vmax: 10", "vmax: 0", 1)
	if _, err := Load(writeTemp(t, broken)); err == nil {
		t.Error("scenario with zero vmax accepted")
	}
}

func TestLoad_NonNumericFailsFast(t *testing.T) {
	broken := strings.Replace(validYAML, "vmax: 10", "vmax: fast", 1)
	if _, err := Load(writeTemp(t, broken)); err == nil {
		t.Error("scenario with non-numeric vmax accepted")
	}
}

func TestLoad_NoDevices(t *testing.T) {
	broken := validYAML[:strings.Index(validYAML, "devices:")]
	if _, err := Load(writeTemp(t, broken)); err == nil {
		t.Error("scenario without devices accepted")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("missing file accepted")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	sc, err := Load(writeTemp(t, validYAML))
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := sc.Save(path); err != nil {
		t.Fatal(err)
	}
	back, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if back.Simulation != sc.Simulation {
		t.Errorf("round-tripped params differ:\n%+v\n%+v", back.Simulation, sc.Simulation)
	}
	if len(back.Devices) != len(sc.Devices) {
		t.Errorf("round-tripped device count %d, want %d", len(back.Devices), len(sc.Devices))
	}
}
