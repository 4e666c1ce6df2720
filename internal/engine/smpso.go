package engine

import (
	"fmt"
	"math"

	"github.com/jiankangren/jmetalgo/internal/archive"
	"github.com/jiankangren/jmetalgo/internal/core"
	"github.com/jiankangren/jmetalgo/internal/eval"
	"github.com/jiankangren/jmetalgo/internal/operator"
	"github.com/jiankangren/jmetalgo/internal/problem"
)

// SMPSO is a multi-objective particle swarm with a speed-constriction
// mechanism and a bounded crowding-distance archive of leaders. Each particle
// follows its personal best and a leader drawn from the archive; the archive
// is the result of the run.
type SMPSO struct {
	scaffold

	swarmSize int
	leaders   *archive.Archive
	mutation  operator.Mutation
	bounds    []problem.Bounds

	swarm    []*core.Solution
	velocity [][]float64
	pbest    []*core.Solution

	c1Min, c1Max float64
	c2Min, c2Max float64
	maxSpeed     []float64
}

// SMPSOConfig configures an SMPSO run.
type SMPSOConfig struct {
	SwarmSize       int
	ArchiveCapacity int
	Mutation        operator.Mutation
	Termination     Termination
	Evaluator       eval.Evaluator
	Seed            int64
}

// NewSMPSO creates an SMPSO engine. The problem must be real-encoded and
// expose variable bounds.
func NewSMPSO(p problem.Problem, cfg SMPSOConfig) (*SMPSO, error) {
	bounded, ok := p.(problem.Bounded)
	if !ok {
		return nil, fmt.Errorf("SMPSO requires a bounded real-valued problem, got %s", p.Name())
	}
	ev := cfg.Evaluator
	if ev == nil {
		ev = eval.NewSequential()
	}

	bounds := bounded.Bounds()
	maxSpeed := make([]float64, len(bounds))
	for i, b := range bounds {
		maxSpeed[i] = (b.Upper - b.Lower) / 2
	}

	return &SMPSO{
		scaffold:  newScaffold("SMPSO", p, ev, cfg.Termination, cfg.Seed),
		swarmSize: cfg.SwarmSize,
		leaders:   archive.New(cfg.ArchiveCapacity),
		mutation:  cfg.Mutation,
		bounds:    bounds,
		c1Min:     1.5,
		c1Max:     2.5,
		c2Min:     1.5,
		c2Max:     2.5,
		maxSpeed:  maxSpeed,
	}, nil
}

func (a *SMPSO) Run() error {
	if err := a.begin(); err != nil {
		return err
	}

	swarm, err := a.initialPopulation(a.swarmSize)
	if err != nil {
		a.fail(err, nil)
		return err
	}
	a.swarm = swarm

	a.velocity = make([][]float64, a.swarmSize)
	a.pbest = make([]*core.Solution, a.swarmSize)
	for i, s := range a.swarm {
		a.velocity[i] = make([]float64, len(a.bounds))
		a.pbest[i] = s.Copy()
		a.leaders.Add(s.Copy())
	}
	a.notify(a.leaders.Solutions())

	for !a.termination.IsMet(a.progress) {
		// Leader tournaments need fresh crowding distances.
		core.CrowdingDistance(a.leaders.Solutions())

		for i, s := range a.swarm {
			a.updateVelocity(i, s)
			a.updatePosition(i, s)
			// Turbulence: polynomial mutation on every sixth particle.
			if a.mutation != nil && i%6 == 0 {
				a.mutation.Execute(s, a.rng)
			}
		}

		if err := a.evaluator.Evaluate(a.swarm, a.problem); err != nil {
			a.fail(err, a.leaders.Solutions())
			return err
		}
		a.progress.Evaluations += a.swarmSize

		for i, s := range a.swarm {
			r, _ := core.CompareWithConstraints(s, a.pbest[i])
			if r == -1 || (r == 0 && a.rng.Float64() < 0.5) {
				a.pbest[i] = s.Copy()
			}
			a.leaders.Add(s.Copy())
		}

		a.progress.Generations++
		a.notify(a.leaders.Solutions())
	}

	a.terminate()
	a.notify(a.leaders.Solutions())
	return nil
}

// updateVelocity applies the constriction-coefficient velocity rule with the
// particle's personal best and an archive leader as attractors.
func (a *SMPSO) updateVelocity(i int, s *core.Solution) {
	x := s.Variables.(core.RealVars)
	pb := a.pbest[i].Variables.(core.RealVars)
	leader := a.leaders.SelectLeader(a.rng).Variables.(core.RealVars)

	c1 := a.c1Min + a.rng.Float64()*(a.c1Max-a.c1Min)
	c2 := a.c2Min + a.rng.Float64()*(a.c2Max-a.c2Min)
	r1 := a.rng.Float64()
	r2 := a.rng.Float64()
	chi := constriction(c1, c2)

	v := a.velocity[i]
	for j := range v {
		v[j] = chi * (v[j] + c1*r1*(pb[j]-x[j]) + c2*r2*(leader[j]-x[j]))
		if v[j] > a.maxSpeed[j] {
			v[j] = a.maxSpeed[j]
		} else if v[j] < -a.maxSpeed[j] {
			v[j] = -a.maxSpeed[j]
		}
	}
}

// updatePosition moves the particle and reflects its velocity at the bounds.
func (a *SMPSO) updatePosition(i int, s *core.Solution) {
	x := s.Variables.(core.RealVars)
	v := a.velocity[i]
	for j := range x {
		x[j] += v[j]
		if x[j] < a.bounds[j].Lower {
			x[j] = a.bounds[j].Lower
			v[j] *= -1
		} else if x[j] > a.bounds[j].Upper {
			x[j] = a.bounds[j].Upper
			v[j] *= -1
		}
	}
}

// constriction is the swarm's speed damping factor: 1 while c1+c2 <= 4,
// shrinking as the attraction coefficients grow past that.
func constriction(c1, c2 float64) float64 {
	rho := c1 + c2
	if rho <= 4 {
		return 1
	}
	return 2 / math.Abs(2-rho-math.Sqrt(rho*rho-4*rho))
}

// Result returns the archive contents. It is only available once the run has
// terminated.
func (a *SMPSO) Result() ([]*core.Solution, error) {
	if err := a.resultReady(); err != nil {
		return nil, err
	}
	return a.leaders.Solutions(), nil
}

// Leaders exposes the archive for diagnostics; callers must not mutate it.
func (a *SMPSO) Leaders() *archive.Archive { return a.leaders }
