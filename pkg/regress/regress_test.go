package regress

import (
	"math"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/matzehuels/mosaic/pkg/errors"
)

// sampleRows lie exactly on y = 2 + 3*x0; x1 is unrelated noise.
func sampleRows() [][]float64 {
	return [][]float64{
		{0, 5, 2},
		{1, 1, 5},
		{2, 4, 8},
		{3, 1, 11},
		{4, 5, 14},
		{5, 9, 17},
		{6, 2, 20},
		{7, 6, 23},
		{8, 5, 26},
		{9, 3, 29},
	}
}

func sampleLabels() []string {
	return []string{"x0", "x1", "y"}
}

func sampleParams() Params {
	return Params{
		Name:             "demo",
		PredictorVars:    []int{0, 1},
		DependentVar:     2,
		TrainingFraction: 0.8,
		Seed:             7,
	}
}

func mustDataSet(t *testing.T) *DataSet {
	t.Helper()
	ds, err := NewDataSet(sampleLabels(), sampleRows(), sampleParams())
	if err != nil {
		t.Fatalf("NewDataSet() error = %v", err)
	}
	return ds
}

// selectionRows lie exactly on y = 1 + 10*a + b, so a dominates any
// single-column fit and {a, b} is the only exact pair.
func selectionDataSet(t *testing.T, name string) *DataSet {
	t.Helper()
	rows := [][]float64{
		{0, 3, 2, 4},
		{1, 1, 7, 12},
		{2, 4, 1, 25},
		{3, 1, 8, 32},
		{4, 5, 2, 46},
		{5, 9, 8, 60},
		{6, 2, 1, 63},
		{7, 6, 8, 77},
		{8, 5, 2, 86},
		{9, 3, 8, 94},
	}
	p := Params{
		Name:             name,
		PredictorVars:    []int{0, 1, 2},
		DependentVar:     3,
		TrainingFraction: 0.8,
		Seed:             3,
	}
	ds, err := NewDataSet([]string{"a", "b", "c", "y"}, rows, p)
	if err != nil {
		t.Fatalf("NewDataSet() error = %v", err)
	}
	return ds
}

func TestNewDataSetSplitsRows(t *testing.T) {
	ds := mustDataSet(t)

	if got, want := ds.TrainSize(), 8; got != want {
		t.Errorf("TrainSize() = %d, want %d", got, want)
	}
	if got, want := ds.TestSize(), 2; got != want {
		t.Errorf("TestSize() = %d, want %d", got, want)
	}

	seen := make(map[float64]bool)
	for _, part := range [][][]float64{ds.train, ds.test} {
		for _, row := range part {
			if row[2] != 2+3*row[0] {
				t.Errorf("row %v does not match an input row", row)
			}
			seen[row[0]] = true
		}
	}
	if len(seen) != 10 {
		t.Errorf("split covers %d distinct rows, want 10", len(seen))
	}
}

func TestNewDataSetIsDeterministic(t *testing.T) {
	a := mustDataSet(t)
	b := mustDataSet(t)
	if !reflect.DeepEqual(a, b) {
		t.Error("same seed produced different splits")
	}
}

func TestNewDataSetCopiesRows(t *testing.T) {
	rows := sampleRows()
	ds, err := NewDataSet(sampleLabels(), rows, sampleParams())
	if err != nil {
		t.Fatalf("NewDataSet() error = %v", err)
	}

	for i := range rows {
		rows[i][2] = -1
	}
	for _, part := range [][][]float64{ds.train, ds.test} {
		for _, row := range part {
			if row[2] != 2+3*row[0] {
				t.Errorf("dataset row %v changed with the input", row)
			}
		}
	}
}

func TestNewDataSetValidates(t *testing.T) {
	tests := []struct {
		name   string
		labels []string
		rows   [][]float64
		mutate func(*Params)
		code   errors.Code
	}{
		{
			name:   "no columns",
			labels: nil,
			rows:   nil,
			mutate: func(p *Params) {},
			code:   errors.ErrCodeInvalidInput,
		},
		{
			name:   "ragged row",
			labels: sampleLabels(),
			rows:   [][]float64{{1, 2, 3}, {4, 5}},
			mutate: func(p *Params) {},
			code:   errors.ErrCodeInvalidInput,
		},
		{
			name:   "no predictors",
			labels: sampleLabels(),
			rows:   sampleRows(),
			mutate: func(p *Params) { p.PredictorVars = nil },
			code:   errors.ErrCodeInvalidParams,
		},
		{
			name:   "predictor out of range",
			labels: sampleLabels(),
			rows:   sampleRows(),
			mutate: func(p *Params) { p.PredictorVars = []int{0, 3} },
			code:   errors.ErrCodeInvalidParams,
		},
		{
			name:   "negative predictor",
			labels: sampleLabels(),
			rows:   sampleRows(),
			mutate: func(p *Params) { p.PredictorVars = []int{-1} },
			code:   errors.ErrCodeInvalidParams,
		},
		{
			name:   "dependent out of range",
			labels: sampleLabels(),
			rows:   sampleRows(),
			mutate: func(p *Params) { p.DependentVar = 3 },
			code:   errors.ErrCodeInvalidParams,
		},
		{
			name:   "fraction zero",
			labels: sampleLabels(),
			rows:   sampleRows(),
			mutate: func(p *Params) { p.TrainingFraction = 0 },
			code:   errors.ErrCodeInvalidParams,
		},
		{
			name:   "fraction one",
			labels: sampleLabels(),
			rows:   sampleRows(),
			mutate: func(p *Params) { p.TrainingFraction = 1 },
			code:   errors.ErrCodeInvalidParams,
		},
		{
			name:   "empty partition",
			labels: sampleLabels(),
			rows:   sampleRows()[:2],
			mutate: func(p *Params) { p.TrainingFraction = 0.3 },
			code:   errors.ErrCodeInvalidParams,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := sampleParams()
			tt.mutate(&p)
			if _, err := NewDataSet(tt.labels, tt.rows, p); !errors.Is(err, tt.code) {
				t.Errorf("error code = %v, want %v", errors.GetCode(err), tt.code)
			}
		})
	}
}

func TestFitRecoversExactLine(t *testing.T) {
	ds := mustDataSet(t)
	m, err := ds.Fit(0)
	if err != nil {
		t.Fatalf("Fit(0) error = %v", err)
	}

	if len(m.Beta) != 2 {
		t.Fatalf("len(Beta) = %d, want 2", len(m.Beta))
	}
	if math.Abs(m.Beta[0]-2) > 1e-9 || math.Abs(m.Beta[1]-3) > 1e-9 {
		t.Errorf("Beta = %v, want [2 3]", m.Beta)
	}
	if math.Abs(m.R2-1) > 1e-9 {
		t.Errorf("R2 = %v, want 1", m.R2)
	}
	if !reflect.DeepEqual(m.PredVars, []int{0}) {
		t.Errorf("PredVars = %v, want [0]", m.PredVars)
	}
	if m.DepVar != 2 {
		t.Errorf("DepVar = %d, want 2", m.DepVar)
	}
}

func TestFitDropsNoiseColumn(t *testing.T) {
	ds := mustDataSet(t)
	m, err := ds.Fit(0, 1)
	if err != nil {
		t.Fatalf("Fit(0, 1) error = %v", err)
	}
	if got, want := m.String(), "y ~ 2 + 3 * x0"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestFitValidates(t *testing.T) {
	ds := mustDataSet(t)
	if _, err := ds.Fit(); !errors.Is(err, errors.ErrCodeInvalidParams) {
		t.Errorf("Fit() error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidParams)
	}
	if _, err := ds.Fit(5); !errors.Is(err, errors.ErrCodeInvalidParams) {
		t.Errorf("Fit(5) error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidParams)
	}
}

func TestValidateScoresHeldOutRows(t *testing.T) {
	ds := mustDataSet(t)
	m, err := ds.Fit(0)
	if err != nil {
		t.Fatalf("Fit(0) error = %v", err)
	}
	r2, err := ds.Validate(m)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if math.Abs(r2-1) > 1e-9 {
		t.Errorf("Validate() = %v, want 1", r2)
	}
}

func TestValidateRejectsBadModels(t *testing.T) {
	ds := mustDataSet(t)
	if _, err := ds.Validate(nil); !errors.Is(err, errors.ErrCodeInvalidParams) {
		t.Errorf("Validate(nil) error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidParams)
	}
	bad := &Model{Labels: ds.Labels, PredVars: []int{9}, DepVar: 2, Beta: []float64{0, 0}}
	if _, err := ds.Validate(bad); !errors.Is(err, errors.ErrCodeInvalidParams) {
		t.Errorf("Validate(bad) error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidParams)
	}
}

func TestUnivariateModels(t *testing.T) {
	ds := selectionDataSet(t, "listings")
	models, err := ds.UnivariateModels()
	if err != nil {
		t.Fatalf("UnivariateModels() error = %v", err)
	}
	if len(models) != 3 {
		t.Fatalf("len(models) = %d, want 3", len(models))
	}
	for i, m := range models {
		if !reflect.DeepEqual(m.PredVars, []int{i}) {
			t.Errorf("models[%d].PredVars = %v, want [%d]", i, m.PredVars, i)
		}
	}
	if models[0].R2 <= models[1].R2 || models[0].R2 <= models[2].R2 {
		t.Errorf("R2 = [%v %v %v], want column a to dominate",
			models[0].R2, models[1].R2, models[2].R2)
	}
}

func TestAllVarsModel(t *testing.T) {
	ds := selectionDataSet(t, "listings")
	m, err := ds.AllVarsModel()
	if err != nil {
		t.Fatalf("AllVarsModel() error = %v", err)
	}
	if !reflect.DeepEqual(m.PredVars, []int{0, 1, 2}) {
		t.Errorf("PredVars = %v, want [0 1 2]", m.PredVars)
	}
	if math.Abs(m.R2-1) > 1e-9 {
		t.Errorf("R2 = %v, want 1", m.R2)
	}
}

func TestBestPair(t *testing.T) {
	ds := selectionDataSet(t, "listings")
	m, err := ds.BestPair()
	if err != nil {
		t.Fatalf("BestPair() error = %v", err)
	}
	if !reflect.DeepEqual(m.PredVars, []int{0, 1}) {
		t.Errorf("PredVars = %v, want [0 1]", m.PredVars)
	}
	if math.Abs(m.R2-1) > 1e-9 {
		t.Errorf("R2 = %v, want 1", m.R2)
	}
}

func TestBestPairNeedsTwoPredictors(t *testing.T) {
	p := sampleParams()
	p.PredictorVars = []int{0}
	ds, err := NewDataSet(sampleLabels(), sampleRows(), p)
	if err != nil {
		t.Fatalf("NewDataSet() error = %v", err)
	}
	if _, err := ds.BestPair(); !errors.Is(err, errors.ErrCodeInvalidParams) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidParams)
	}
}

func TestForwardSelection(t *testing.T) {
	ds := selectionDataSet(t, "listings")
	models, err := ds.ForwardSelection()
	if err != nil {
		t.Fatalf("ForwardSelection() error = %v", err)
	}
	if len(models) != 3 {
		t.Fatalf("len(models) = %d, want 3", len(models))
	}

	want := [][]int{{0}, {0, 1}, {0, 1, 2}}
	for i, m := range models {
		if !reflect.DeepEqual(m.PredVars, want[i]) {
			t.Errorf("models[%d].PredVars = %v, want %v", i, m.PredVars, want[i])
		}
	}
	if models[1].R2 <= models[0].R2 {
		t.Errorf("R2 did not improve: %v then %v", models[0].R2, models[1].R2)
	}
	for _, i := range []int{1, 2} {
		if math.Abs(models[i].R2-1) > 1e-9 {
			t.Errorf("models[%d].R2 = %v, want 1", i, models[i].R2)
		}
	}
}

func TestModelString(t *testing.T) {
	labels := []string{"x0", "x1", "y"}
	tests := []struct {
		name  string
		model Model
		want  string
	}{
		{
			name:  "mixed signs",
			model: Model{Labels: labels, PredVars: []int{0, 1}, DepVar: 2, Beta: []float64{1.5, 2, -0.25}},
			want:  "y ~ 1.5 + 2 * x0 - 0.25 * x1",
		},
		{
			name:  "zero coefficient omitted",
			model: Model{Labels: labels, PredVars: []int{0, 1}, DepVar: 2, Beta: []float64{2, 3, 0}},
			want:  "y ~ 2 + 3 * x0",
		},
		{
			name:  "tiny coefficient rounds away",
			model: Model{Labels: labels, PredVars: []int{0}, DepVar: 2, Beta: []float64{2, 1e-9}},
			want:  "y ~ 2",
		},
		{
			name:  "negative intercept",
			model: Model{Labels: labels, PredVars: []int{0}, DepVar: 2, Beta: []float64{-1.5, 2}},
			want:  "y ~ -1.5 + 2 * x0",
		},
		{
			name:  "six decimal rounding",
			model: Model{Labels: labels, PredVars: []int{0}, DepVar: 2, Beta: []float64{1.23456789, 2}},
			want:  "y ~ 1.234568 + 2 * x0",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.model.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSummaryTree(t *testing.T) {
	ds := selectionDataSet(t, "listings")
	root, err := ds.SummaryTree()
	if err != nil {
		t.Fatalf("SummaryTree() error = %v", err)
	}

	if root.Name() != "listings" {
		t.Errorf("root name = %q, want %q", root.Name(), "listings")
	}
	children := root.Children()
	if len(children) != 4 {
		t.Fatalf("len(children) = %d, want 4", len(children))
	}
	wantNames := []string{"a", "b", "c", "unexplained"}
	for i, c := range children {
		if c.Name() != wantNames[i] {
			t.Errorf("children[%d] = %q, want %q", i, c.Name(), wantNames[i])
		}
	}
	if children[0].Weight() < 0.5 {
		t.Errorf("column a explains %v, want > 0.5", children[0].Weight())
	}
	if children[3].Weight() > 1e-6 {
		t.Errorf("unexplained = %v, want ~0 for an exact fit", children[3].Weight())
	}
	if total := root.TotalWeight(); math.Abs(total-1) > 1e-6 {
		t.Errorf("TotalWeight() = %v, want 1", total)
	}
}

func TestSummaryTreeDefaultName(t *testing.T) {
	p := sampleParams()
	p.Name = ""
	ds, err := NewDataSet(sampleLabels(), sampleRows(), p)
	if err != nil {
		t.Fatalf("NewDataSet() error = %v", err)
	}
	root, err := ds.SummaryTree()
	if err != nil {
		t.Fatalf("SummaryTree() error = %v", err)
	}
	if root.Name() != "variance" {
		t.Errorf("root name = %q, want %q", root.Name(), "variance")
	}
}

const sampleTOML = `name = "demo"
predictor_vars = [0, 1]
dependent_var = 2
training_fraction = 0.8
seed = 7
`

const sampleCSV = `x0,x1,y
0,5,2
1,1,5
2,4,8
3,1,11
4,5,14
5,9,17
6,2,20
7,6,23
8,5,26
9,3,29
`

func writeDataSetDir(t *testing.T, params, csv string) string {
	t.Helper()
	dir := t.TempDir()
	if params != "" {
		if err := os.WriteFile(filepath.Join(dir, "parameters.toml"), []byte(params), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if csv != "" {
		if err := os.WriteFile(filepath.Join(dir, "data.csv"), []byte(csv), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestLoadDataSet(t *testing.T) {
	dir := writeDataSetDir(t, sampleTOML, sampleCSV)
	got, err := LoadDataSet(dir)
	if err != nil {
		t.Fatalf("LoadDataSet() error = %v", err)
	}
	want := mustDataSet(t)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("LoadDataSet() = %+v, want %+v", got, want)
	}
}

func TestLoadDataSetErrors(t *testing.T) {
	tests := []struct {
		name   string
		params string
		csv    string
		code   errors.Code
	}{
		{
			name: "missing parameters",
			csv:  sampleCSV,
			code: errors.ErrCodeFileNotFound,
		},
		{
			name:   "malformed parameters",
			params: "name = [",
			csv:    sampleCSV,
			code:   errors.ErrCodeMalformedInput,
		},
		{
			name:   "missing table",
			params: sampleTOML,
			code:   errors.ErrCodeFileNotFound,
		},
		{
			name:   "non-numeric cell",
			params: sampleTOML,
			csv:    "x0,x1,y\n1,2,three\n4,5,6\n",
			code:   errors.ErrCodeMalformedInput,
		},
		{
			name:   "header only",
			params: sampleTOML,
			csv:    "x0,x1,y\n",
			code:   errors.ErrCodeMalformedInput,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeDataSetDir(t, tt.params, tt.csv)
			if _, err := LoadDataSet(dir); !errors.Is(err, tt.code) {
				t.Errorf("error code = %v, want %v", errors.GetCode(err), tt.code)
			}
		})
	}
}
