// Package regress fits ordinary least-squares models over a tabular
// dataset and compares them by R².
//
// A dataset is a labeled numeric table split once, by seeded shuffle,
// into a training and a testing partition. Models are trained on the
// training rows only; [DataSet.Validate] scores a trained model against
// the held-out rows. Model builders cover the usual selection
// strategies: every single-predictor model, the all-predictor model,
// the best bivariate pair, and forward selection.
//
// On disk a dataset is a directory holding data.csv (header row plus
// numeric rows) and parameters.toml naming the predictor columns, the
// dependent column, the training fraction, and the shuffle seed.
package regress

import (
	"encoding/csv"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/matzehuels/mosaic/pkg/errors"
)

// Params configures how a raw table becomes a [DataSet]. On disk it is
// the parameters.toml file next to data.csv.
type Params struct {
	// Name labels the dataset in summaries.
	Name string `toml:"name"`

	// PredictorVars are the column indices available as predictors.
	PredictorVars []int `toml:"predictor_vars"`

	// DependentVar is the column index of the value being modeled.
	DependentVar int `toml:"dependent_var"`

	// TrainingFraction is the share of rows, in (0, 1), assigned to the
	// training partition.
	TrainingFraction float64 `toml:"training_fraction"`

	// Seed drives the shuffle that assigns rows to partitions.
	Seed int64 `toml:"seed"`
}

// DataSet is a labeled numeric table split into training and testing
// partitions.
type DataSet struct {
	// Name labels the dataset in summaries.
	Name string

	// Labels are the column names from the CSV header.
	Labels []string

	// PredVars are the predictor column indices from the parameters.
	PredVars []int

	// DepVar is the dependent column index.
	DepVar int

	train [][]float64
	test  [][]float64
}

// TrainSize returns the number of training rows.
func (ds *DataSet) TrainSize() int { return len(ds.train) }

// TestSize returns the number of held-out rows.
func (ds *DataSet) TestSize() int { return len(ds.test) }

// NewDataSet validates the table against the parameters and splits the
// rows: a seeded shuffle assigns the first floor(fraction*n) rows to
// training and the rest to testing. The input rows are not modified.
func NewDataSet(labels []string, rows [][]float64, p Params) (*DataSet, error) {
	cols := len(labels)
	if cols == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "dataset has no columns")
	}
	for i, row := range rows {
		if len(row) != cols {
			return nil, errors.New(errors.ErrCodeInvalidInput,
				"row %d has %d values, want %d", i, len(row), cols)
		}
	}
	if len(p.PredictorVars) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidParams, "at least one predictor column is required")
	}
	for _, v := range p.PredictorVars {
		if v < 0 || v >= cols {
			return nil, errors.New(errors.ErrCodeInvalidParams,
				"predictor column %d is outside the table (%d columns)", v, cols)
		}
	}
	if p.DependentVar < 0 || p.DependentVar >= cols {
		return nil, errors.New(errors.ErrCodeInvalidParams,
			"dependent column %d is outside the table (%d columns)", p.DependentVar, cols)
	}
	if p.TrainingFraction <= 0 || p.TrainingFraction >= 1 {
		return nil, errors.New(errors.ErrCodeInvalidParams,
			"training fraction must be in (0, 1), got %g", p.TrainingFraction)
	}

	n := len(rows)
	trainSize := int(p.TrainingFraction * float64(n))
	if trainSize < 1 || n-trainSize < 1 {
		return nil, errors.New(errors.ErrCodeInvalidParams,
			"training fraction %g leaves an empty partition for %d rows", p.TrainingFraction, n)
	}

	perm := rand.New(rand.NewSource(p.Seed)).Perm(n)
	train := make([][]float64, 0, trainSize)
	test := make([][]float64, 0, n-trainSize)
	for i, idx := range perm {
		row := make([]float64, cols)
		copy(row, rows[idx])
		if i < trainSize {
			train = append(train, row)
		} else {
			test = append(test, row)
		}
	}

	return &DataSet{
		Name:     p.Name,
		Labels:   labels,
		PredVars: p.PredictorVars,
		DepVar:   p.DependentVar,
		train:    train,
		test:     test,
	}, nil
}

// LoadDataSet reads a dataset directory: parameters.toml for the
// [Params] and data.csv for the labeled table.
func LoadDataSet(dir string) (*DataSet, error) {
	paramPath := filepath.Join(dir, "parameters.toml")
	raw, err := os.ReadFile(paramPath)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "reading %s", paramPath)
	}
	var p Params
	if err := toml.Unmarshal(raw, &p); err != nil {
		return nil, errors.Wrap(errors.ErrCodeMalformedInput, err, "decoding %s", paramPath)
	}

	labels, rows, err := readTable(filepath.Join(dir, "data.csv"))
	if err != nil {
		return nil, err
	}
	return NewDataSet(labels, rows, p)
}

// readTable parses a CSV file into a header row and numeric data rows.
func readTable(path string) ([]string, [][]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "reading %s", path)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeMalformedInput, err, "decoding %s", path)
	}
	if len(records) < 2 {
		return nil, nil, errors.New(errors.ErrCodeMalformedInput,
			"%s needs a header row and at least one data row", path)
	}

	labels := records[0]
	rows := make([][]float64, 0, len(records)-1)
	for i, record := range records[1:] {
		row := make([]float64, len(record))
		for j, cell := range record {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, nil, errors.Wrap(errors.ErrCodeMalformedInput, err,
					"csv row %d column %d: %q is not a number", i+2, j, cell)
			}
			row[j] = v
		}
		rows = append(rows, row)
	}
	return labels, rows, nil
}
