package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/1siamBot/skirmish/engine/core"
	"github.com/1siamBot/skirmish/engine/launch"
	"github.com/1siamBot/skirmish/engine/match"
	"github.com/1siamBot/skirmish/engine/network"
	"github.com/atotto/clipboard"
)

type runStats struct {
	runIndex int
	seed     int64
	matchID  string

	outcome core.Outcome
	ticks   uint64
	elapsed float64

	spawned    [2]int
	killed     [2]int // units lost per side
	towerShots [2]int
	unitHits   [2]int
	towerHP    [2]int
}

// collector counts attack events into the current run
type collector struct {
	cur *runStats
}

func (c *collector) listen(bus *core.EventBus) {
	count := func(field func(*runStats) *[2]int) core.EventHandler {
		return func(e core.Event) {
			if c.cur != nil {
				field(c.cur)[sideIndex(e.Side)]++
			}
		}
	}
	bus.On(core.EvtTowerAttack, count(func(r *runStats) *[2]int { return &r.towerShots }))
	bus.On(core.EvtUnitAttack, count(func(r *runStats) *[2]int { return &r.unitHits }))
}

type runConfig struct {
	dt       float64
	limit    float64
	clicks   float64 // extra player spawn attempts per second
	realtime bool
}

// runMatch plays the session's current match to the end or the time limit
func runMatch(s *launch.Session, cfg runConfig, rs *runStats) {
	m := s.Match
	rng := rand.New(rand.NewSource(rs.seed))
	rs.matchID = m.ID.String()

	for m.World().Elapsed < cfg.limit && !m.Over() {
		if cfg.clicks > 0 && rng.Float64() < cfg.clicks*cfg.dt {
			m.SpawnPlayerUnit()
		}
		m.Tick(cfg.dt)
		s.Publish()
		if cfg.realtime {
			time.Sleep(time.Duration(cfg.dt * float64(time.Second)))
		}
	}
	finish(m, rs)
}

func finish(m *match.Match, rs *runStats) {
	w := m.World()
	rs.outcome = w.Outcome
	rs.ticks = w.TickCount
	rs.elapsed = w.Elapsed
	for _, side := range core.Sides {
		p := w.Player(side)
		i := sideIndex(side)
		rs.towerHP[i] = max(p.Tower.Health.Current, 0)
		rs.spawned[i] = len(p.Units)
		rs.killed[i] = len(p.Units) - len(p.AliveUnits())
	}
}

func main() {
	var flags launch.Flags
	var runs int
	var seedBase int64
	var cfg runConfig
	var playPath string
	var copyReport bool

	flags.Register(flag.CommandLine, -1)
	flag.IntVar(&runs, "runs", 5, "number of matches")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Float64Var(&cfg.dt, "dt", 0.05, "seconds per tick")
	flag.Float64Var(&cfg.limit, "limit", 600, "give up on a match after this many simulated seconds")
	flag.Float64Var(&cfg.clicks, "clicks", 0.1, "extra player spawn attempts per second on top of the mirrored AI")
	flag.BoolVar(&cfg.realtime, "realtime", false, "sleep between ticks so spectators can follow")
	flag.StringVar(&playPath, "play", "", "play back a replay file instead of running matches")
	flag.BoolVar(&copyReport, "copy", false, "copy the aggregate line to the clipboard")
	flag.Parse()

	logger := launch.NewLogger(os.Stderr, flags.Verbose)

	if playPath != "" {
		if err := playReplay(playPath, logger); err != nil {
			fmt.Printf("error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		os.Exit(2)
	}
	if cfg.dt <= 0 || cfg.limit <= 0 {
		fmt.Println("error: -dt and -limit must be > 0")
		os.Exit(2)
	}

	session, err := launch.Start(flags, match.Options{MirrorAI: true}, logger)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := session.Close(); err != nil {
			logger.Error("shutdown", "error", err)
		}
	}()

	col := &collector{}
	col.listen(session.Match.Bus)

	r := session.Match.Rules
	fmt.Printf("=== Headless Skirmish Report ===\n")
	fmt.Printf("runs=%d dt=%.3f limit=%.0fs clicks=%.2f/s ai_interval=%.1fs seed_base=%d\n\n",
		runs, cfg.dt, cfg.limit, cfg.clicks, r.AI.SpawnInterval, seedBase)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		if i > 0 {
			session.Restart()
		}
		rs := runStats{runIndex: i + 1, seed: seedBase + int64(i)}
		col.cur = &rs
		runMatch(session, cfg, &rs)
		col.cur = nil
		all = append(all, rs)
		printRun(rs)
	}
	printAggregate(all)

	if copyReport {
		if err := clipboard.WriteAll(aggregateLine(summarize(all))); err != nil {
			logger.Warn("copy to clipboard failed", "error", err)
		}
	}
}

func playReplay(path string, logger *slog.Logger) error {
	rep, err := network.LoadReplay(path)
	if err != nil {
		return err
	}
	fmt.Printf("=== Replay %s ===\n", path)
	fmt.Printf("match=%s commands=%d\n\n", rep.MatchID, len(rep.Commands))

	m, err := match.Play(rep, logger)
	if err != nil {
		return err
	}
	rs := runStats{runIndex: 1, matchID: m.ID.String()}
	finish(m, &rs)
	printRun(rs)
	return nil
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (seed=%d match=%s) ---\n", rs.runIndex, rs.seed, shortID(rs.matchID))
	fmt.Printf("result: outcome=%s ticks=%d elapsed=%.1fs\n", outcomeLabel(rs.outcome), rs.ticks, rs.elapsed)
	fmt.Printf("spawned: player=%d ai=%d  lost: player=%d ai=%d\n", rs.spawned[0], rs.spawned[1], rs.killed[0], rs.killed[1])
	fmt.Printf("attacks: unit_hits player=%d ai=%d tower_shots player=%d ai=%d\n", rs.unitHits[0], rs.unitHits[1], rs.towerShots[0], rs.towerShots[1])
	fmt.Printf("towers: player=%d ai=%d\n\n", rs.towerHP[0], rs.towerHP[1])
}

type aggregate struct {
	runs, won, lost, undecided int
	avgElapsed                 float64
	avgSpawned                 [2]float64
	avgLost                    [2]float64
}

func summarize(all []runStats) aggregate {
	agg := aggregate{runs: len(all)}
	var elapsed float64
	var spawned, lost [2]int
	decided := 0
	for _, rs := range all {
		switch rs.outcome {
		case core.OutcomePlayerWon:
			agg.won++
		case core.OutcomePlayerLost:
			agg.lost++
		default:
			agg.undecided++
		}
		if rs.outcome != core.OutcomeNone {
			elapsed += rs.elapsed
			decided++
		}
		for i := range spawned {
			spawned[i] += rs.spawned[i]
			lost[i] += rs.killed[i]
		}
	}
	agg.avgElapsed = avg(elapsed, decided)
	for i := range spawned {
		agg.avgSpawned[i] = avg(float64(spawned[i]), len(all))
		agg.avgLost[i] = avg(float64(lost[i]), len(all))
	}
	return agg
}

// aggregateLine is the one-line result summary
func aggregateLine(agg aggregate) string {
	return fmt.Sprintf("runs=%d player_won=%d player_lost=%d undecided=%d win_rate=%.0f%%",
		agg.runs, agg.won, agg.lost, agg.undecided, 100*avg(float64(agg.won), agg.runs))
}

func printAggregate(all []runStats) {
	agg := summarize(all)
	fmt.Printf("=== Aggregate ===\n")
	fmt.Println(aggregateLine(agg))
	fmt.Printf("avg_match_seconds=%.1f\n", agg.avgElapsed)
	fmt.Printf("avg_spawned: player=%.1f ai=%.1f  avg_lost: player=%.1f ai=%.1f\n",
		agg.avgSpawned[0], agg.avgSpawned[1], agg.avgLost[0], agg.avgLost[1])
}

func avg(sum float64, n int) float64 {
	if n <= 0 {
		return 0
	}
	return sum / float64(n)
}

func outcomeLabel(o core.Outcome) string {
	if o == core.OutcomeNone {
		return "UNDECIDED"
	}
	return o.String()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func sideIndex(s core.Side) int {
	if s == core.SideAI {
		return 1
	}
	return 0
}
