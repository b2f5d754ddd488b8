// Package bench runs one container workload: build always, sum on request.
package bench

import (
	"fmt"
	"time"

	"github.com/bft-labs/listbench/internal/cliconfig"
	"github.com/bft-labs/listbench/pkg/log"
	"github.com/bft-labs/listbench/pkg/seq"
)

// Workload names a container to exercise.
type Workload string

const (
	List Workload = cliconfig.ContainerList
	Map  Workload = cliconfig.ContainerMap
)

// ParseWorkload maps a --container value to a Workload.
func ParseWorkload(s string) (Workload, error) {
	switch Workload(s) {
	case List, Map:
		return Workload(s), nil
	}
	return "", fmt.Errorf("%w %q", cliconfig.ErrUnknownContainer, s)
}

// Result describes a finished run.
type Result struct {
	Workload Workload
	N        int
	Len      int
	Summed   bool
	Sum      int64

	BuildTime time.Duration
	SumTime   time.Duration
}

// Run builds the container for w with n elements and, if sum is set, reduces
// it once. The container is dropped before Run returns.
func Run(w Workload, n int, sum bool, logger log.Logger) Result {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	res := Result{Workload: w, N: n, Summed: sum}

	switch w {
	case Map:
		start := time.Now()
		m := seq.BuildMap(n)
		res.BuildTime = time.Since(start)
		res.Len = len(m)
		if sum {
			start = time.Now()
			res.Sum = seq.SumMap(m, n)
			res.SumTime = time.Since(start)
		}
	default:
		start := time.Now()
		s := seq.Build(n)
		res.BuildTime = time.Since(start)
		res.Len = len(s)
		if sum {
			start = time.Now()
			res.Sum = seq.Sum(s)
			res.SumTime = time.Since(start)
		}
	}

	logger.Debug("workload finished",
		log.String("container", string(w)),
		log.Int("n", n),
		log.Int("len", res.Len),
		log.Bool("summed", sum),
	)
	return res
}

// Report logs a result at info level.
func Report(logger log.Logger, res Result) {
	fields := []log.Field{
		log.String("container", string(res.Workload)),
		log.Int("n", res.N),
		log.Int("len", res.Len),
		log.Duration("build", res.BuildTime),
	}
	if res.Summed {
		fields = append(fields, log.Int64("sum", res.Sum), log.Duration("reduce", res.SumTime))
	}
	logger.Info("benchmark", fields...)
}
