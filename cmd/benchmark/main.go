package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"github.com/delaneyj/fastreactor/reactor"
	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v3"
)

const (
	itersKey   = "iters"
	profileKey = "profile"
)

var (
	ww    = []int{1, 10, 100, 1_000}
	hh    = []int{1, 10, 100, 1_000}
	iters = 100
)

func main() {
	cmd := &cli.Command{
		Name:  "benchmark",
		Usage: "Time propagation through reactor graphs",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  itersKey,
				Usage: "Writes per benchmark",
				Value: int64(iters),
			},
			&cli.StringFlag{
				Name:  profileKey,
				Usage: "CPU profile output, empty to skip",
				Value: "default.pgo",
			},
		},
		Action: benchmark,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func benchmark(ctx context.Context, cmd *cli.Command) error {
	iters = int(cmd.Int(itersKey))

	if path := cmd.String(profileKey); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return err
		}
		defer pprof.StopCPUProfile()
	}

	log.Printf("warming up")
	benchmarkPropagate(false)

	benchmarkPropagate(true)
	benchmarkPull(true)
	benchmarkList(true)
	return nil
}

func addOne(r reactor.Reactive[int]) func() int {
	return func() int {
		return r.Get() + 1
	}
}

func newTable(title string) table.Writer {
	tbl := table.NewWriter()
	tbl.SetTitle(title)
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"benchmark", "avg", "min", "p75", "p99", "max"})
	return tbl
}

func appendCalc(tbl table.Writer, name string, tach *tachymeter.Tachymeter) {
	calc := tach.Calc()
	tbl.AppendRows([]table.Row{
		{
			name,
			calc.Time.Avg,
			calc.Time.Min,
			calc.Time.P75,
			calc.Time.P99,
			calc.Time.Max,
		},
	})
}

// benchmarkPropagate times a write through w watched chains of h computeds.
// Watched chains are eager so every write recomputes the whole grid.
func benchmarkPropagate(shouldRender bool) {
	tbl := newTable("Eager propagation")

	for _, w := range ww {
		for _, h := range hh {
			tach := tachymeter.New(&tachymeter.Config{Size: iters})

			tr := reactor.NewTracker()
			src := reactor.NewState(tr, 1)
			observers := make([]*reactor.Observer, 0, w)
			for i := 0; i < w; i++ {
				var last reactor.Reactive[int] = src
				for j := 0; j < h; j++ {
					last = reactor.NewComputed(tr, addOne(last))
				}
				observers = append(observers, reactor.Watch(last, func(int) {}))
			}

			for i := 0; i < iters; i++ {
				start := time.Now()
				src.Set(src.Peek() + 1)
				tach.AddTime(time.Since(start))
			}
			for _, o := range observers {
				o.Dispose()
			}

			appendCalc(tbl, fmt.Sprintf("propagate: %d * %d", w, h), tach)
		}
	}

	if shouldRender {
		tbl.Render()
	}
}

// benchmarkPull times a write followed by reading every leaf of unwatched
// chains, which stay lazy.
func benchmarkPull(shouldRender bool) {
	tbl := newTable("Lazy pull")

	for _, w := range ww {
		for _, h := range hh {
			tach := tachymeter.New(&tachymeter.Config{Size: iters})

			tr := reactor.NewTracker()
			src := reactor.NewState(tr, 1)
			leaves := make([]*reactor.Computed[int], 0, w)
			for i := 0; i < w; i++ {
				var last reactor.Reactive[int] = src
				var leaf *reactor.Computed[int]
				for j := 0; j < h; j++ {
					leaf = reactor.NewComputed(tr, addOne(last))
					last = leaf
				}
				leaves = append(leaves, leaf)
			}

			for i := 0; i < iters; i++ {
				start := time.Now()
				src.Set(src.Peek() + 1)
				for _, leaf := range leaves {
					if leaf.Peek() != src.Peek()+h {
						log.Panicf("stale leaf in %d * %d", w, h)
					}
				}
				tach.AddTime(time.Since(start))
			}

			appendCalc(tbl, fmt.Sprintf("pull: %d * %d", w, h), tach)
		}
	}

	if shouldRender {
		tbl.Render()
	}
}

// benchmarkList times appends to a list with n watched filters over it.
func benchmarkList(shouldRender bool) {
	tbl := newTable("Reactive list")

	for _, n := range ww {
		tach := tachymeter.New(&tachymeter.Config{Size: iters})

		tr := reactor.NewTracker()
		list := reactor.NewReactiveList[int](tr)
		observers := make([]*reactor.Observer, 0, n)
		for i := 0; i < n; i++ {
			mod := i + 2
			evens := list.Filter(func(v int) bool { return v%mod == 0 })
			observers = append(observers, reactor.Watch[[]int](evens, func([]int) {}))
		}

		for i := 0; i < iters; i++ {
			start := time.Now()
			list.Add(i)
			tach.AddTime(time.Since(start))
		}
		for _, o := range observers {
			o.Dispose()
		}

		appendCalc(tbl, fmt.Sprintf("append: %d filters", n), tach)
	}

	if shouldRender {
		tbl.Render()
	}
}
