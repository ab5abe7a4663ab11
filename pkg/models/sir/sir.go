// Package sir simulates an SIR epidemic over a one-dimensional city.
//
// A city is a row of people, each Susceptible, Infected, Recovered, or
// Vaccinated. Infection spreads to adjacent cells: a susceptible person
// with an infected left or right neighbor becomes infected, stays
// contagious for a configured number of days, and then recovers for
// good. Vaccination happens once, before day zero, converting each
// susceptible person with the configured probability.
//
// Days advance simultaneously: every cell's next state is computed from
// the prior day's city, so the order of evaluation never matters.
//
// The package is deterministic for a given seed. [Run] plays a single
// simulation to extinction, [RunTrials] averages the epidemic length
// over seeded trials, and [City.SummaryTree] aggregates the final state
// into a weighted tree for treemap display.
package sir

import (
	"math/rand"
	"strconv"
	"strings"

	"github.com/matzehuels/mosaic/pkg/errors"
	"github.com/matzehuels/mosaic/pkg/tree"
	"github.com/montanaflynn/stats"
)

// Kind identifies a person's epidemic state.
type Kind uint8

const (
	Susceptible Kind = iota
	Infected
	Recovered
	Vaccinated
)

// Person is one cell of the city. Day counts the days spent contagious
// and is meaningful only while Kind is Infected.
type Person struct {
	Kind Kind
	Day  int
}

// String renders the person in city notation: "S", "I<day>", "R", "V".
func (p Person) String() string {
	switch p.Kind {
	case Susceptible:
		return "S"
	case Infected:
		return "I" + strconv.Itoa(p.Day)
	case Recovered:
		return "R"
	case Vaccinated:
		return "V"
	}
	return "?"
}

// City is a row of people. Index 0 is the left edge of the city.
type City []Person

// Params configures a simulation run.
type Params struct {
	// DaysContagious is how many days an infected person stays
	// contagious before recovering. Must be at least 1.
	DaysContagious int

	// Effectiveness is the probability that vaccination converts a
	// susceptible person before day zero. Must be in [0, 1].
	Effectiveness float64

	// Seed initializes the random source used for vaccination.
	Seed int64
}

func (p Params) validate() error {
	if p.DaysContagious < 1 {
		return errors.New(errors.ErrCodeInvalidParams, "days contagious must be at least 1, got %d", p.DaysContagious)
	}
	if p.Effectiveness < 0 || p.Effectiveness > 1 {
		return errors.New(errors.ErrCodeInvalidParams, "vaccine effectiveness must be in [0, 1], got %g", p.Effectiveness)
	}
	return nil
}

// ParseCity parses a comma-separated city description such as
// "S,I0,R,V". Cells may carry surrounding spaces. Returns an error with
// code INVALID_INPUT when a cell is not a valid state.
func ParseCity(s string) (City, error) {
	if strings.TrimSpace(s) == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "city description is empty")
	}
	parts := strings.Split(s, ",")
	city := make(City, len(parts))
	for i, part := range parts {
		cell := strings.TrimSpace(part)
		person, err := parsePerson(cell)
		if err != nil {
			return nil, errors.New(errors.ErrCodeInvalidInput, "cell %d: %q is not a valid state", i, cell)
		}
		city[i] = person
	}
	return city, nil
}

func parsePerson(cell string) (Person, error) {
	switch {
	case cell == "S":
		return Person{Kind: Susceptible}, nil
	case cell == "R":
		return Person{Kind: Recovered}, nil
	case cell == "V":
		return Person{Kind: Vaccinated}, nil
	case len(cell) > 1 && cell[0] == 'I':
		day, err := strconv.Atoi(cell[1:])
		if err != nil || day < 0 {
			return Person{}, errors.New(errors.ErrCodeInvalidInput, "bad infection day")
		}
		return Person{Kind: Infected, Day: day}, nil
	}
	return Person{}, errors.New(errors.ErrCodeInvalidInput, "unknown state")
}

// String renders the city in the notation accepted by [ParseCity].
func (c City) String() string {
	var b strings.Builder
	for i, p := range c {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(p.String())
	}
	return b.String()
}

// Clone returns an independent copy of the city.
func (c City) Clone() City {
	if c == nil {
		return nil
	}
	out := make(City, len(c))
	copy(out, c)
	return out
}

// CountInfected returns the number of currently contagious people.
func (c City) CountInfected() int {
	var n int
	for _, p := range c {
		if p.Kind == Infected {
			n++
		}
	}
	return n
}

// hasInfectedNeighbor reports whether the person at pos has a contagious
// neighbor. Neighbor indices clamp at the edges, so corner cells have a
// single effective neighbor.
func (c City) hasInfectedNeighbor(pos int) bool {
	left := pos - 1
	if left < 0 {
		left = 0
	}
	right := pos + 1
	if right > len(c)-1 {
		right = len(c) - 1
	}
	return c[left].Kind == Infected || c[right].Kind == Infected
}

// Step advances the city by one day and returns the next city. Every
// cell's next state is computed from the prior day:
//
//   - Recovered and Vaccinated people never change.
//   - A susceptible person with a contagious neighbor becomes Infected
//     with a day count of zero.
//   - An infected person advances its day count, recovering once it has
//     been contagious for daysContagious days.
//
// The input city is not modified.
func Step(c City, daysContagious int) City {
	next := make(City, len(c))
	for i, p := range c {
		switch p.Kind {
		case Susceptible:
			if c.hasInfectedNeighbor(i) {
				next[i] = Person{Kind: Infected}
			} else {
				next[i] = p
			}
		case Infected:
			if p.Day < daysContagious-1 {
				next[i] = Person{Kind: Infected, Day: p.Day + 1}
			} else {
				next[i] = Person{Kind: Recovered}
			}
		default:
			next[i] = p
		}
	}
	return next
}

// vaccinate converts each susceptible person with probability
// effectiveness, drawing once per susceptible cell in city order.
func vaccinate(c City, effectiveness float64, rng *rand.Rand) City {
	out := c.Clone()
	for i, p := range out {
		if p.Kind == Susceptible && rng.Float64() < effectiveness {
			out[i] = Person{Kind: Vaccinated}
		}
	}
	return out
}

// Run plays a full simulation: vaccinate, then advance day by day until
// nobody is contagious. Returns the final city and the number of days
// simulated. The input city is not modified.
func Run(city City, p Params) (City, int, error) {
	if err := p.validate(); err != nil {
		return nil, 0, err
	}
	rng := rand.New(rand.NewSource(p.Seed))
	current := vaccinate(city, p.Effectiveness, rng)
	var days int
	for current.CountInfected() > 0 {
		current = Step(current, p.DaysContagious)
		days++
	}
	return current, days, nil
}

// RunTrials runs the simulation trials times, seeding trial i with
// p.Seed+i, and returns the mean epidemic length in days.
func RunTrials(city City, p Params, trials int) (float64, error) {
	if trials < 1 {
		return 0, errors.New(errors.ErrCodeInvalidParams, "trials must be at least 1, got %d", trials)
	}
	if err := p.validate(); err != nil {
		return 0, err
	}
	days := make([]float64, trials)
	for i := range days {
		trial := p
		trial.Seed = p.Seed + int64(i)
		_, d, err := Run(city, trial)
		if err != nil {
			return 0, err
		}
		days[i] = float64(d)
	}
	return stats.Mean(days)
}

// SummaryTree aggregates the city into a weighted tree: one child per
// state, with the infected share broken down by contagious day. Weights
// are person counts, so the tree's total weight equals the city size.
func (c City) SummaryTree() (*tree.Node, error) {
	var susceptible, recovered, vaccinated int
	infectedByDay := make(map[int]int)
	maxDay := -1
	for _, p := range c {
		switch p.Kind {
		case Susceptible:
			susceptible++
		case Infected:
			infectedByDay[p.Day]++
			if p.Day > maxDay {
				maxDay = p.Day
			}
		case Recovered:
			recovered++
		case Vaccinated:
			vaccinated++
		}
	}

	susceptibleLeaf, err := tree.Leaf("susceptible", float64(susceptible))
	if err != nil {
		return nil, err
	}
	var infectedDays []*tree.Node
	for day := 0; day <= maxDay; day++ {
		count, ok := infectedByDay[day]
		if !ok {
			continue
		}
		leaf, err := tree.Leaf("day "+strconv.Itoa(day), float64(count))
		if err != nil {
			return nil, err
		}
		infectedDays = append(infectedDays, leaf)
	}
	infectedBranch, err := tree.Branch("infected", infectedDays...)
	if err != nil {
		return nil, err
	}
	recoveredLeaf, err := tree.Leaf("recovered", float64(recovered))
	if err != nil {
		return nil, err
	}
	vaccinatedLeaf, err := tree.Leaf("vaccinated", float64(vaccinated))
	if err != nil {
		return nil, err
	}
	return tree.Branch("city", susceptibleLeaf, infectedBranch, recoveredLeaf, vaccinatedLeaf)
}
