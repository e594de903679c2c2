package harness

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"github.com/hupe1980/primes"
	"github.com/hupe1980/primes/storage"
)

// reportPrefix tags the machine-readable result lines.
const reportPrefix = "mike-barber"

// Result is the outcome of one timed benchmark.
type Result struct {
	Label    string
	Kind     storage.Kind
	Passes   int
	Threads  int
	Duration time.Duration
	Limit    int
	Count    int
	Verdict  primes.Verdict
	Bits     int
}

// Average returns the mean time per pass across all threads.
func (r Result) Average() time.Duration {
	if r.Passes == 0 {
		return 0
	}
	return r.Duration / time.Duration(r.Passes)
}

// WriteHeader writes the banner printed before each benchmark.
func WriteHeader(w io.Writer, limit, threads int, d time.Duration) error {
	secs := int(d.Seconds())
	_, err := fmt.Fprintf(w, "\nComputing primes to %d on %d thread%s for %d second%s.\n",
		limit, threads, plural(threads), secs, plural(secs))
	return err
}

// WriteSummary writes the human-readable result line.
func WriteSummary(w io.Writer, r Result) error {
	_, err := fmt.Fprintf(w,
		"%-15s Passes: %d, Threads: %d, Time: %.10f, Average: %.10f, Limit: %d, Counts: %d, Valid: %s\n",
		r.Label, r.Passes, r.Threads, r.Duration.Seconds(), r.Average().Seconds(), r.Limit, r.Count, r.Verdict)
	return err
}

// WriteReport writes the machine-readable result line
// <prefix>_<label>;<passes>;<seconds>;<threads>;<tags>.
func WriteReport(w io.Writer, r Result) error {
	_, err := fmt.Fprintf(w, "%s_%s;%d;%.10f;%d;algorithm=base,faithful=yes,bits=%d\n",
		reportPrefix, r.Label, r.Passes, r.Duration.Seconds(), r.Threads, r.Bits)
	return err
}

// WritePrimes writes every prime found by s as a comma-terminated list on a
// single line.
func WritePrimes(w io.Writer, s *primes.Sieve) error {
	bw := bufio.NewWriter(w)
	for p := range s.Primes() {
		fmt.Fprintf(bw, "%d,", p)
	}
	bw.WriteByte('\n')
	return bw.Flush()
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
