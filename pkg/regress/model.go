package regress

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/matzehuels/mosaic/pkg/errors"
	"github.com/matzehuels/mosaic/pkg/tree"
)

// Model is a least-squares fit of the dependent column against a set of
// predictor columns.
type Model struct {
	// Labels are the dataset's column names, for formatting.
	Labels []string

	// PredVars are the predictor columns the model was trained on, in
	// training order.
	PredVars []int

	// DepVar is the dependent column.
	DepVar int

	// Beta holds the fitted coefficients: the intercept first, then one
	// coefficient per predictor in PredVars order.
	Beta []float64

	// R2 is the coefficient of determination on the training partition.
	R2 float64
}

// Fit trains a least-squares model of the dependent column against the
// given predictor columns using the training partition.
func (ds *DataSet) Fit(predVars ...int) (*Model, error) {
	if len(predVars) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidParams, "at least one predictor column is required")
	}
	for _, v := range predVars {
		if v < 0 || v >= len(ds.Labels) {
			return nil, errors.New(errors.ErrCodeInvalidParams,
				"predictor column %d is outside the table (%d columns)", v, len(ds.Labels))
		}
	}

	X := designMatrix(ds.train, predVars)
	y := columnVector(ds.train, ds.DepVar)

	var beta mat.VecDense
	if err := beta.SolveVec(X, y); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "least-squares solve failed")
	}
	coefs := make([]float64, beta.Len())
	for i := range coefs {
		coefs[i] = beta.AtVec(i)
	}

	vars := make([]int, len(predVars))
	copy(vars, predVars)
	return &Model{
		Labels:   ds.Labels,
		PredVars: vars,
		DepVar:   ds.DepVar,
		Beta:     coefs,
		R2:       rSquared(coefs, X, y),
	}, nil
}

// designMatrix builds the predictor matrix with a prepended column of
// ones for the intercept.
func designMatrix(rows [][]float64, predVars []int) *mat.Dense {
	X := mat.NewDense(len(rows), len(predVars)+1, nil)
	for i, row := range rows {
		X.Set(i, 0, 1)
		for j, v := range predVars {
			X.Set(i, j+1, row[v])
		}
	}
	return X
}

func columnVector(rows [][]float64, col int) *mat.VecDense {
	y := mat.NewVecDense(len(rows), nil)
	for i, row := range rows {
		y.SetVec(i, row[col])
	}
	return y
}

// rSquared computes 1 - SSres/SStot for the given coefficients over the
// design matrix and observations.
func rSquared(beta []float64, X mat.Matrix, y mat.Vector) float64 {
	b := mat.NewVecDense(len(beta), beta)
	var yhat mat.VecDense
	yhat.MulVec(X, b)

	n := y.Len()
	var mean float64
	for i := 0; i < n; i++ {
		mean += y.AtVec(i)
	}
	mean /= float64(n)

	var ssRes, ssTot float64
	for i := 0; i < n; i++ {
		r := y.AtVec(i) - yhat.AtVec(i)
		ssRes += r * r
		d := y.AtVec(i) - mean
		ssTot += d * d
	}
	return 1 - ssRes/ssTot
}

// Validate scores a trained model against the held-out partition and
// returns the resulting R². The model must have been trained on this
// dataset's training partition.
func (ds *DataSet) Validate(m *Model) (float64, error) {
	if m == nil {
		return 0, errors.New(errors.ErrCodeInvalidParams, "model is nil")
	}
	for _, v := range m.PredVars {
		if v < 0 || v >= len(ds.Labels) {
			return 0, errors.New(errors.ErrCodeInvalidParams,
				"predictor column %d is outside the table (%d columns)", v, len(ds.Labels))
		}
	}
	X := designMatrix(ds.test, m.PredVars)
	y := columnVector(ds.test, ds.DepVar)
	return rSquared(m.Beta, X, y), nil
}

// UnivariateModels fits one single-predictor model per predictor
// column, in parameter order.
func (ds *DataSet) UnivariateModels() ([]*Model, error) {
	models := make([]*Model, 0, len(ds.PredVars))
	for _, v := range ds.PredVars {
		m, err := ds.Fit(v)
		if err != nil {
			return nil, err
		}
		models = append(models, m)
	}
	return models, nil
}

// AllVarsModel fits the model using every predictor column.
func (ds *DataSet) AllVarsModel() (*Model, error) {
	return ds.Fit(ds.PredVars...)
}

// BestPair fits every unordered pair of predictor columns and returns
// the model with the highest training R².
func (ds *DataSet) BestPair() (*Model, error) {
	if len(ds.PredVars) < 2 {
		return nil, errors.New(errors.ErrCodeInvalidParams,
			"best pair needs at least 2 predictor columns, have %d", len(ds.PredVars))
	}
	var best *Model
	for i, v1 := range ds.PredVars {
		for _, v2 := range ds.PredVars[i+1:] {
			m, err := ds.Fit(v1, v2)
			if err != nil {
				return nil, err
			}
			if best == nil || m.R2 > best.R2 {
				best = m
			}
		}
	}
	return best, nil
}

// ForwardSelection greedily grows a predictor set: at each step it adds
// the column that maximizes the training R². The returned slice holds
// the best model of each size, from one predictor up to all of them.
func (ds *DataSet) ForwardSelection() ([]*Model, error) {
	available := make([]int, len(ds.PredVars))
	copy(available, ds.PredVars)

	var used []int
	models := make([]*Model, 0, len(ds.PredVars))
	for len(available) > 0 {
		var best *Model
		bestIdx := -1
		for i, v := range available {
			candidate := make([]int, 0, len(used)+1)
			candidate = append(candidate, used...)
			candidate = append(candidate, v)
			m, err := ds.Fit(candidate...)
			if err != nil {
				return nil, err
			}
			if best == nil || m.R2 > best.R2 {
				best = m
				bestIdx = i
			}
		}
		used = append(used, available[bestIdx])
		available = append(available[:bestIdx], available[bestIdx+1:]...)
		models = append(models, best)
	}
	return models, nil
}

// String formats the model as an equation, coefficients rounded to six
// decimals and zero coefficients omitted:
//
//	price ~ 12.5 + 3.25 * rooms - 0.75 * age
func (m *Model) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s ~ %g", m.Labels[m.DepVar], round6(m.Beta[0]))
	for i, v := range m.PredVars {
		coef := round6(m.Beta[i+1])
		switch {
		case coef < 0:
			fmt.Fprintf(&b, " - %g * %s", -coef, m.Labels[v])
		case coef > 0:
			fmt.Fprintf(&b, " + %g * %s", coef, m.Labels[v])
		}
	}
	return b.String()
}

func round6(x float64) float64 {
	return math.Round(x*1e6) / 1e6
}

// SummaryTree decomposes the dependent column's variance by forward
// selection: one leaf per selected predictor weighted by the R² it
// added, plus a leaf for the unexplained remainder. The total weight is
// at most 1.
func (ds *DataSet) SummaryTree() (*tree.Node, error) {
	models, err := ds.ForwardSelection()
	if err != nil {
		return nil, err
	}

	leaves := make([]*tree.Node, 0, len(models)+1)
	prev := 0.0
	for _, m := range models {
		added := m.PredVars[len(m.PredVars)-1]
		gain := m.R2 - prev
		if gain < 0 {
			gain = 0
		}
		leaf, err := tree.Leaf(ds.Labels[added], gain)
		if err != nil {
			return nil, err
		}
		leaves = append(leaves, leaf)
		prev = m.R2
	}
	unexplained := 1 - prev
	if unexplained < 0 {
		unexplained = 0
	}
	rest, err := tree.Leaf("unexplained", unexplained)
	if err != nil {
		return nil, err
	}
	leaves = append(leaves, rest)

	name := ds.Name
	if name == "" {
		name = "variance"
	}
	return tree.Branch(name, leaves...)
}
