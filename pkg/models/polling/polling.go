// Package polling simulates election-day queueing at a single precinct.
//
// Voters arrive one after another with exponentially distributed gaps
// and occupy one of a fixed number of voting booths. Most voters take
// an exponentially distributed time to vote; straight-ticket voters
// vote down one party's line and take a fixed, usually shorter, time.
// When every booth is busy an arriving voter waits for the earliest
// departure. Arrivals stop at closing time or at the voter cap,
// whichever comes first.
//
// [Precinct.Simulate] plays one day and returns the voters with their
// computed start and departure times. [Precinct.MedianWaitTime] runs
// seeded trials and reports the median of the per-trial mean waits,
// and [Precinct.FindSplitShare] searches for the share of split-ticket
// voters that pushes that median past a target.
package polling

import (
	"container/heap"
	"math/rand"
	"strconv"

	"github.com/matzehuels/mosaic/pkg/errors"
	"github.com/matzehuels/mosaic/pkg/tree"
	"github.com/montanaflynn/stats"
)

// Voter is one simulated voter. All times are minutes after opening.
type Voter struct {
	Arrival   float64 // when the voter joins the line
	Duration  float64 // time spent in the booth
	Start     float64 // when a booth frees up for them
	Departure float64 // Start + Duration
}

// Wait returns how long the voter stood in line before voting.
func (v Voter) Wait() float64 { return v.Start - v.Arrival }

// Precinct describes one polling place and its electorate.
type Precinct struct {
	// Name labels the precinct in summaries.
	Name string

	// HoursOpen is how many hours the polls stay open.
	HoursOpen int

	// MaxVoters caps the number of arrivals in one day.
	MaxVoters int

	// Booths is the number of voting booths.
	Booths int

	// ArrivalRate is the expected number of arrivals per minute.
	ArrivalRate float64

	// DurationRate is the rate parameter for split-ticket voting
	// durations; the mean duration is 1/DurationRate minutes.
	DurationRate float64

	// StraightTicketShare is the probability, in [0, 1], that a voter
	// votes straight-ticket and takes StraightTicketDuration instead of
	// an exponential draw.
	StraightTicketShare float64

	// StraightTicketDuration is the fixed booth time for straight-ticket
	// voters, in minutes.
	StraightTicketDuration float64
}

func (p Precinct) validate() error {
	if p.HoursOpen < 1 {
		return errors.New(errors.ErrCodeInvalidParams, "hours open must be at least 1, got %d", p.HoursOpen)
	}
	if p.MaxVoters < 0 {
		return errors.New(errors.ErrCodeInvalidParams, "max voters must be at least 0, got %d", p.MaxVoters)
	}
	if p.Booths < 1 {
		return errors.New(errors.ErrCodeInvalidParams, "booths must be at least 1, got %d", p.Booths)
	}
	if p.ArrivalRate <= 0 {
		return errors.New(errors.ErrCodeInvalidParams, "arrival rate must be positive, got %g", p.ArrivalRate)
	}
	if p.DurationRate <= 0 {
		return errors.New(errors.ErrCodeInvalidParams, "duration rate must be positive, got %g", p.DurationRate)
	}
	if p.StraightTicketShare < 0 || p.StraightTicketShare > 1 {
		return errors.New(errors.ErrCodeInvalidParams,
			"straight-ticket share must be in [0, 1], got %g", p.StraightTicketShare)
	}
	if p.StraightTicketDuration < 0 {
		return errors.New(errors.ErrCodeInvalidParams,
			"straight-ticket duration must be at least 0, got %g", p.StraightTicketDuration)
	}
	return nil
}

// departureHeap is a min-heap of booth departure times.
type departureHeap []float64

func (h departureHeap) Len() int           { return len(h) }
func (h departureHeap) Less(i, j int) bool { return h[i] < h[j] }
func (h departureHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *departureHeap) Push(x any)        { *h = append(*h, x.(float64)) }

func (h *departureHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// booths tracks the occupied booths by their departure times.
type booths struct {
	departures departureHeap
	capacity   int
}

func newBooths(capacity int) *booths {
	return &booths{departures: make(departureHeap, 0, capacity), capacity: capacity}
}

func (b *booths) full() bool { return len(b.departures) == b.capacity }

func (b *booths) enter(departure float64) { heap.Push(&b.departures, departure) }

// depart frees the booth with the earliest departure and returns that
// time.
func (b *booths) depart() float64 { return heap.Pop(&b.departures).(float64) }

// nextVoter draws the next arrival. The gap and a tentative duration
// are exponential draws; a straight-ticket draw then overrides the
// duration with the fixed time.
func (p Precinct) nextVoter(now float64, rng *rand.Rand) Voter {
	gap := rng.ExpFloat64() / p.ArrivalRate
	duration := rng.ExpFloat64() / p.DurationRate
	if rng.Float64() < p.StraightTicketShare {
		duration = p.StraightTicketDuration
	}
	return Voter{Arrival: now + gap, Duration: duration}
}

// admit assigns the voter a booth. With a free booth they start on
// arrival; otherwise they replace the occupant who departs earliest,
// starting at that departure or their own arrival, whichever is later.
func admit(v *Voter, b *booths) {
	if !b.full() {
		v.Start = v.Arrival
	} else {
		earliest := b.depart()
		if earliest < v.Arrival {
			v.Start = v.Arrival
		} else {
			v.Start = earliest
		}
	}
	v.Departure = v.Start + v.Duration
	b.enter(v.Departure)
}

// Simulate plays one election day with the given seed and returns the
// voters who made it inside before closing, in arrival order.
func (p Precinct) Simulate(seed int64) ([]Voter, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(seed))
	closing := float64(p.HoursOpen) * 60
	b := newBooths(p.Booths)

	var voters []Voter
	now := 0.0
	for i := 0; i < p.MaxVoters; i++ {
		v := p.nextVoter(now, rng)
		now = v.Arrival
		if now > closing {
			break
		}
		admit(&v, b)
		voters = append(voters, v)
	}
	return voters, nil
}

// AvgWait returns the mean wait across the given voters. Returns an
// error with code INVALID_INPUT when no voters voted.
func AvgWait(voters []Voter) (float64, error) {
	if len(voters) == 0 {
		return 0, errors.New(errors.ErrCodeInvalidInput, "no voters voted")
	}
	waits := make([]float64, len(voters))
	for i, v := range voters {
		waits[i] = v.Wait()
	}
	return stats.Mean(waits)
}

// MedianWaitTime simulates the precinct trials times, seeding trial i
// with seed+i, and returns the median of the per-trial mean waits.
func (p Precinct) MedianWaitTime(trials int, seed int64) (float64, error) {
	if trials < 1 {
		return 0, errors.New(errors.ErrCodeInvalidParams, "trials must be at least 1, got %d", trials)
	}
	means := make([]float64, trials)
	for i := range means {
		voters, err := p.Simulate(seed + int64(i))
		if err != nil {
			return 0, err
		}
		mean, err := AvgWait(voters)
		if err != nil {
			return 0, err
		}
		means[i] = mean
	}
	return stats.Median(means)
}

// SweepPoint is one entry of a split-ticket sweep.
type SweepPoint struct {
	// SplitShare is the share of split-ticket voters, in [0, 1].
	SplitShare float64

	// MedianWait is the median over trials of the mean wait at that
	// share.
	MedianWait float64
}

// Sweep evaluates the median wait as the split-ticket share rises from
// 0% to 100% in steps of 10%, holding everything else fixed. The
// precinct's own StraightTicketShare is ignored.
func (p Precinct) Sweep(trials int, seed int64) ([]SweepPoint, error) {
	points := make([]SweepPoint, 0, 11)
	for i := 0; i <= 10; i++ {
		split := float64(i) / 10
		q := p
		q.StraightTicketShare = 1 - split
		wait, err := q.MedianWaitTime(trials, seed)
		if err != nil {
			return nil, err
		}
		points = append(points, SweepPoint{SplitShare: split, MedianWait: wait})
	}
	return points, nil
}

// FindSplitShare sweeps the split-ticket share from 0% upward by 10%
// and returns the first point whose median wait exceeds target. The
// second return is false when even an all-split electorate stays at or
// below the target.
func (p Precinct) FindSplitShare(target float64, trials int, seed int64) (SweepPoint, bool, error) {
	for i := 0; i <= 10; i++ {
		split := float64(i) / 10
		q := p
		q.StraightTicketShare = 1 - split
		wait, err := q.MedianWaitTime(trials, seed)
		if err != nil {
			return SweepPoint{}, false, err
		}
		if wait > target {
			return SweepPoint{SplitShare: split, MedianWait: wait}, true, nil
		}
	}
	return SweepPoint{}, false, nil
}

// SummaryTree buckets the voters by arrival hour and splits each hour
// into waiting and voting minutes, producing a weighted tree of where
// the day's time went.
func (p Precinct) SummaryTree(voters []Voter) (*tree.Node, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}

	waiting := make([]float64, p.HoursOpen)
	voting := make([]float64, p.HoursOpen)
	for _, v := range voters {
		hour := int(v.Arrival / 60)
		if hour >= p.HoursOpen {
			hour = p.HoursOpen - 1
		}
		waiting[hour] += v.Wait()
		voting[hour] += v.Duration
	}

	hours := make([]*tree.Node, 0, p.HoursOpen)
	for h := 0; h < p.HoursOpen; h++ {
		waitLeaf, err := tree.Leaf("waiting", waiting[h])
		if err != nil {
			return nil, err
		}
		voteLeaf, err := tree.Leaf("voting", voting[h])
		if err != nil {
			return nil, err
		}
		hour, err := tree.Branch("hour "+strconv.Itoa(h), waitLeaf, voteLeaf)
		if err != nil {
			return nil, err
		}
		hours = append(hours, hour)
	}

	name := p.Name
	if name == "" {
		name = "precinct"
	}
	return tree.Branch(name, hours...)
}
