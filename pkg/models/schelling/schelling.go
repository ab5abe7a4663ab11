// Package schelling simulates a variant of Schelling's model of housing
// segregation on a square city grid.
//
// Every home is Maroon, Blue, or Open (for sale). A homeowner inspects
// the homes within Manhattan distance Radius and computes a similarity
// score: the share of occupied homes in the neighborhood, the owner's
// own included, matching the owner's color. Owners are satisfied when
// the score falls inside the configured inclusive range. Too low means
// isolation, too high means the neighborhood has tipped.
//
// An unsatisfied owner visits the homes on the market in listing order,
// testing each as if they had already moved in, and commits to the
// candidate that exhausts their patience. The vacated home is listed at
// the front of the market and the new home leaves it.
//
// A simulation step sweeps the grid in row-major order twice: first all
// maroon homes, then all blue ones. [Run] repeats steps until the step
// limit is reached or a full step relocates nobody.
package schelling

import (
	"strings"

	"github.com/matzehuels/mosaic/pkg/errors"
	"github.com/matzehuels/mosaic/pkg/tree"
)

// Cell is the occupancy state of a single home.
type Cell uint8

const (
	Open Cell = iota
	Maroon
	Blue
)

// String renders the cell in grid notation: "M", "B", or "F" (for sale).
func (c Cell) String() string {
	switch c {
	case Maroon:
		return "M"
	case Blue:
		return "B"
	case Open:
		return "F"
	}
	return "?"
}

// Location addresses a home by row and column, both zero-based.
type Location struct {
	Row, Col int
}

// Grid is a square city of homes. Grid[row][col] is the home at that
// location.
type Grid [][]Cell

// Params configures a simulation.
type Params struct {
	// Radius bounds the neighborhood: a home at (k, l) is in the
	// neighborhood of (i, j) when |i-k| + |j-l| <= Radius. Must be at
	// least 0; radius 0 makes every owner their own whole neighborhood.
	Radius int

	// LowerBound and UpperBound delimit the inclusive satisfaction
	// range for the similarity score. Both must be in [0, 1] with
	// LowerBound <= UpperBound.
	LowerBound, UpperBound float64

	// Patience is the number of satisfying candidate homes an owner
	// must visit before committing to the last one. Must be at least 1.
	Patience int

	// MaxSteps caps the number of maroon-then-blue sweeps.
	MaxSteps int
}

func (p Params) validate() error {
	if p.Radius < 0 {
		return errors.New(errors.ErrCodeInvalidParams, "radius must be at least 0, got %d", p.Radius)
	}
	if p.LowerBound < 0 || p.UpperBound > 1 || p.LowerBound > p.UpperBound {
		return errors.New(errors.ErrCodeInvalidParams,
			"satisfaction range [%g, %g] must satisfy 0 <= lower <= upper <= 1", p.LowerBound, p.UpperBound)
	}
	if p.Patience < 1 {
		return errors.New(errors.ErrCodeInvalidParams, "patience must be at least 1, got %d", p.Patience)
	}
	if p.MaxSteps < 0 {
		return errors.New(errors.ErrCodeInvalidParams, "max steps must be at least 0, got %d", p.MaxSteps)
	}
	return nil
}

// ParseGrid parses a grid description: one row per line, cells "M", "B",
// or "F" separated by spaces or commas. Blank lines and lines starting
// with '#' are skipped. The grid must be square.
func ParseGrid(s string) (Grid, error) {
	var grid Grid
	for _, line := range strings.Split(s, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		fields := strings.FieldsFunc(trimmed, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t'
		})
		row := make([]Cell, len(fields))
		for i, field := range fields {
			switch field {
			case "M":
				row[i] = Maroon
			case "B":
				row[i] = Blue
			case "F":
				row[i] = Open
			default:
				return nil, errors.New(errors.ErrCodeMalformedInput,
					"row %d: %q is not a valid home (want M, B, or F)", len(grid), field)
			}
		}
		grid = append(grid, row)
	}
	if len(grid) == 0 {
		return nil, errors.New(errors.ErrCodeMalformedInput, "grid description is empty")
	}
	for i, row := range grid {
		if len(row) != len(grid) {
			return nil, errors.New(errors.ErrCodeMalformedInput,
				"grid must be square: %d rows but row %d has %d homes", len(grid), i, len(row))
		}
	}
	return grid, nil
}

// String renders the grid in the notation accepted by [ParseGrid], one
// space-separated row per line.
func (g Grid) String() string {
	var b strings.Builder
	for i, row := range g {
		if i > 0 {
			b.WriteByte('\n')
		}
		for j, cell := range row {
			if j > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(cell.String())
		}
	}
	return b.String()
}

// Dim returns the side length of the grid.
func (g Grid) Dim() int { return len(g) }

// Clone returns an independent copy of the grid.
func (g Grid) Clone() Grid {
	out := make(Grid, len(g))
	for i, row := range g {
		out[i] = make([]Cell, len(row))
		copy(out[i], row)
	}
	return out
}

// HomesForSale lists the open homes in row-major order.
func (g Grid) HomesForSale() []Location {
	var homes []Location
	for row := range g {
		for col := range g[row] {
			if g[row][col] == Open {
				homes = append(homes, Location{Row: row, Col: col})
			}
		}
	}
	return homes
}

func (g Grid) inBounds(loc Location) bool {
	return loc.Row >= 0 && loc.Row < len(g) && loc.Col >= 0 && loc.Col < len(g)
}

func (g Grid) swap(a, b Location) {
	g[a.Row][a.Col], g[b.Row][b.Col] = g[b.Row][b.Col], g[a.Row][a.Col]
}

// satisfied computes the similarity score for the occupied home at loc.
// The owner's own home counts as similar, so the denominator is never
// zero.
func (g Grid) satisfied(loc Location, p Params) bool {
	dim := len(g)
	home := g[loc.Row][loc.Col]

	top := max(0, loc.Row-p.Radius)
	left := max(0, loc.Col-p.Radius)
	bottom := min(dim-1, loc.Row+p.Radius)
	right := min(dim-1, loc.Col+p.Radius)

	var similar, opposite int
	for row := top; row <= bottom; row++ {
		for col := left; col <= right; col++ {
			if abs(loc.Row-row)+abs(loc.Col-col) > p.Radius {
				continue
			}
			switch neighbor := g[row][col]; {
			case neighbor == home:
				similar++
			case neighbor != Open:
				opposite++
			}
		}
	}
	score := float64(similar) / float64(similar+opposite)
	return p.LowerBound <= score && score <= p.UpperBound
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// Satisfied reports whether the homeowner at loc is satisfied with
// their neighborhood. Returns an error when loc is outside the grid or
// addresses an open home.
func (g Grid) Satisfied(loc Location, p Params) (bool, error) {
	if err := p.validate(); err != nil {
		return false, err
	}
	if !g.inBounds(loc) {
		return false, errors.New(errors.ErrCodeInvalidParams,
			"location (%d, %d) is outside the %dx%d grid", loc.Row, loc.Col, len(g), len(g))
	}
	if g[loc.Row][loc.Col] == Open {
		return false, errors.New(errors.ErrCodeInvalidInput,
			"home at (%d, %d) is open; only homeowners have a similarity score", loc.Row, loc.Col)
	}
	return g.satisfied(loc, p), nil
}

// Result carries the outcome of a simulation run.
type Result struct {
	// Grid is the final state of the city.
	Grid Grid

	// Relocations is the total number of moves across all steps.
	Relocations int

	// Steps is the number of steps performed, counting a final step
	// that relocated nobody.
	Steps int

	// ForSale is the market in its final listing order.
	ForSale []Location
}

// sim is the mutable state of one run: the working grid and the market
// in listing order.
type sim struct {
	grid    Grid
	forSale []Location
	params  Params
}

// findNewHome tests the homes on the market in listing order as if the
// owner at from had already moved in, spending one unit of patience per
// satisfying candidate. Returns the candidate that exhausted the
// patience, or false when the market runs out first. The grid is left
// unchanged.
func (s *sim) findNewHome(from Location) (Location, bool) {
	patience := s.params.Patience
	for _, candidate := range s.forSale {
		s.grid.swap(from, candidate)
		ok := s.grid.satisfied(candidate, s.params)
		s.grid.swap(from, candidate)
		if ok {
			patience--
			if patience == 0 {
				return candidate, true
			}
		}
	}
	return Location{}, false
}

// relocate moves the owner at from into the open home at to, delists
// the new home, and lists the vacated one at the front of the market.
func (s *sim) relocate(from, to Location) {
	s.grid.swap(from, to)
	for i, home := range s.forSale {
		if home == to {
			s.forSale = append(s.forSale[:i], s.forSale[i+1:]...)
			break
		}
	}
	s.forSale = append([]Location{from}, s.forSale...)
}

// wave sweeps the grid in row-major order and relocates every
// unsatisfied owner of the given color who finds a new home. Returns
// the number of relocations.
func (s *sim) wave(color Cell) int {
	var relocations int
	for row := range s.grid {
		for col := range s.grid[row] {
			loc := Location{Row: row, Col: col}
			if s.grid[row][col] != color || s.grid.satisfied(loc, s.params) {
				continue
			}
			if target, ok := s.findNewHome(loc); ok {
				s.relocate(loc, target)
				relocations++
			}
		}
	}
	return relocations
}

// step runs a maroon wave followed by a blue wave.
func (s *sim) step() int {
	return s.wave(Maroon) + s.wave(Blue)
}

// Run simulates the city until MaxSteps is reached or a step relocates
// nobody. The input grid is not modified.
func Run(g Grid, p Params) (Result, error) {
	if err := p.validate(); err != nil {
		return Result{}, err
	}
	if len(g) == 0 {
		return Result{}, errors.New(errors.ErrCodeInvalidInput, "grid is empty")
	}
	for i, row := range g {
		if len(row) != len(g) {
			return Result{}, errors.New(errors.ErrCodeInvalidInput,
				"grid must be square: %d rows but row %d has %d homes", len(g), i, len(row))
		}
	}

	s := &sim{grid: g.Clone(), forSale: g.HomesForSale(), params: p}
	result := Result{}
	for result.Steps < p.MaxSteps {
		moved := s.step()
		result.Relocations += moved
		result.Steps++
		if moved == 0 {
			break
		}
	}
	result.Grid = s.grid
	result.ForSale = s.forSale
	return result, nil
}

// SummaryTree aggregates the grid into a weighted tree: one branch per
// color splitting its owners into satisfied and seeking, plus a leaf
// for the homes on the market. Weights are home counts, so the tree's
// total weight equals the number of homes.
func (g Grid) SummaryTree(p Params) (*tree.Node, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}

	counts := make(map[Cell][2]int) // color -> [satisfied, seeking]
	var open int
	for row := range g {
		for col := range g[row] {
			cell := g[row][col]
			if cell == Open {
				open++
				continue
			}
			c := counts[cell]
			if g.satisfied(Location{Row: row, Col: col}, p) {
				c[0]++
			} else {
				c[1]++
			}
			counts[cell] = c
		}
	}

	colorBranch := func(name string, cell Cell) (*tree.Node, error) {
		settled, err := tree.Leaf("satisfied", float64(counts[cell][0]))
		if err != nil {
			return nil, err
		}
		seeking, err := tree.Leaf("seeking", float64(counts[cell][1]))
		if err != nil {
			return nil, err
		}
		return tree.Branch(name, settled, seeking)
	}

	maroon, err := colorBranch("maroon", Maroon)
	if err != nil {
		return nil, err
	}
	blue, err := colorBranch("blue", Blue)
	if err != nil {
		return nil, err
	}
	forSale, err := tree.Leaf("for sale", float64(open))
	if err != nil {
		return nil, err
	}
	return tree.Branch("city", maroon, blue, forSale)
}
