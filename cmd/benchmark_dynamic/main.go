package main

import (
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/delaneyj/fastreactor/reactor"
	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
)

func main() {
	log.Print("Starting dynamic graph benchmark, please wait...")
	defer log.Print("Finished dynamic graph benchmark")

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{
		"size", "nSources", "read%", "static%",
		"nTimes", "test", "time", "updateRate", "title",
	})

	testRepeats := 5
	for _, cfg := range perfTestCfgs {
		log.Printf("Running '%s' config", cfg.name)
		counter := new(int64)
		graph := makeGraph(counter, cfg)

		// warm up
		runGraph(graph, cfg)

		var (
			best    = time.Hour
			count   int64
			lastSum int
		)
		for i := 0; i < testRepeats; i++ {
			log.Printf("Running '%s' config, iteration %d/%d", cfg.name, i+1, testRepeats)
			*counter = 0
			start := time.Now()
			sum := runGraph(graph, cfg)
			duration := time.Since(start)

			if i > 0 && sum != lastSum {
				log.Panicf("'%s' is not deterministic: %d then %d", cfg.name, lastSum, sum)
			}
			lastSum = sum
			if duration < best {
				best = duration
				count = *counter
			}
		}

		updateRate := float64(count) / (float64(best) / float64(time.Millisecond))
		table.Append([]string{
			fmt.Sprintf("%dx%d", cfg.width, cfg.totalLayers),
			fmt.Sprint(cfg.nSources),
			fmt.Sprint(cfg.readFraction),
			fmt.Sprint(cfg.staticFraction),
			humanize.Comma(cfg.iterations),
			cfg.name,
			fmt.Sprint(best),
			humanize.Comma(int64(updateRate)),
			cfg.title(),
		})
	}
	table.Render()
}

type testConfig struct {
	name           string
	width          int64   // sources and nodes per layer
	totalLayers    int64   // layers including the sources
	staticFraction float64 // fraction of nodes that always read every source
	nSources       int64   // sources read by each node
	readFraction   float64 // fraction of leaves read after every write
	iterations     int64
}

var perfTestCfgs = []testConfig{
	{name: "simple component", width: 10, totalLayers: 5, staticFraction: 1, nSources: 2, readFraction: 0.2, iterations: 600_000},
	{name: "dynamic component", width: 10, totalLayers: 10, staticFraction: 0.75, nSources: 6, readFraction: 0.2, iterations: 15_000},
	{name: "large web app", width: 1_000, totalLayers: 12, staticFraction: 0.95, nSources: 4, readFraction: 1, iterations: 7_000},
	{name: "wide dense", width: 1_000, totalLayers: 5, staticFraction: 1, nSources: 25, readFraction: 1, iterations: 3_000},
	{name: "deep", width: 5, totalLayers: 500, staticFraction: 1, nSources: 3, readFraction: 1, iterations: 500},
	{name: "very dynamic", width: 100, totalLayers: 15, staticFraction: 0.5, nSources: 6, readFraction: 1, iterations: 2_000},
}

func (cfg testConfig) title() string {
	sb := strings.Builder{}
	sb.WriteString(fmt.Sprintf("%dx%d %d sources", cfg.width, cfg.totalLayers, cfg.nSources))
	if cfg.staticFraction < 1 {
		sb.WriteString(" dynamic")
	}
	if cfg.readFraction < 1 {
		sb.WriteString(fmt.Sprintf(" read %0.2f%%", 100*cfg.readFraction))
	}
	return sb.String()
}

type graph struct {
	sources []*reactor.State[int]
	layers  [][]*reactor.Computed[int]
}

func makeGraph(counter *int64, cfg testConfig) *graph {
	tr := reactor.NewTracker()
	g := &graph{sources: make([]*reactor.State[int], cfg.width)}
	prev := make([]reactor.Reactive[int], cfg.width)
	for i := range g.sources {
		g.sources[i] = reactor.NewState(tr, i)
		prev[i] = g.sources[i]
	}

	random := rand.New(rand.NewSource(0))
	for l := int64(0); l < cfg.totalLayers-1; l++ {
		row := makeRow(tr, prev, counter, cfg, random)
		g.layers = append(g.layers, row)
		for i, c := range row {
			prev[i] = c
		}
	}
	return g
}

// makeRow builds one layer over prev. Dynamic nodes skip one of their
// sources depending on the value of the first, so their dependencies change
// between runs.
func makeRow(tr *reactor.Tracker, prev []reactor.Reactive[int], counter *int64, cfg testConfig, random *rand.Rand) []*reactor.Computed[int] {
	row := make([]*reactor.Computed[int], len(prev))
	for myDex := range prev {
		mySources := make([]reactor.Reactive[int], 0, cfg.nSources)
		for sourceDex := 0; sourceDex < int(cfg.nSources); sourceDex++ {
			mySources = append(mySources, prev[(myDex+sourceDex)%len(prev)])
		}

		if random.Float64() < cfg.staticFraction {
			row[myDex] = reactor.NewComputed(tr, func() int {
				*counter++
				sum := 0
				for _, source := range mySources {
					sum += source.Get()
				}
				return sum
			})
			continue
		}

		first := mySources[0]
		tail := mySources[1:]
		row[myDex] = reactor.NewComputed(tr, func() int {
			*counter++
			sum := first.Get()
			shouldDrop := sum&0x1 > 0
			dropDex := 0
			if len(tail) > 0 {
				dropDex = sum % len(tail)
			}
			for i := range tail {
				if shouldDrop && i == dropDex {
					continue
				}
				sum += tail[i].Get()
			}
			return sum
		})
	}
	return row
}

// runGraph writes one source per iteration and reads a fixed random subset of
// the leaves, returning the final sum of those leaves.
func runGraph(g *graph, cfg testConfig) int {
	random := rand.New(rand.NewSource(0))
	leaves := g.layers[len(g.layers)-1]
	skipCount := int(math.Round(float64(len(leaves)) * (1 - cfg.readFraction)))
	readLeaves := removeElems(leaves, skipCount, random)

	for i := 0; i < int(cfg.iterations); i++ {
		sourceDex := i % len(g.sources)
		g.sources[sourceDex].Set(i + sourceDex)

		for _, leaf := range readLeaves {
			leaf.Peek()
		}
	}

	sum := 0
	for _, leaf := range readLeaves {
		sum += leaf.Peek()
	}
	return sum
}

func removeElems[T any](src []T, rmCount int, rand *rand.Rand) []T {
	out := make([]T, len(src))
	copy(out, src)
	for i := 0; i < rmCount; i++ {
		rmDex := rand.Intn(len(out))
		out[rmDex] = out[len(out)-1]
		out = out[:len(out)-1]
	}
	return out
}
