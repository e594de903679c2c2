// Package harness runs timed multi-threaded sieve benchmarks and reports them
// in the drag-race result format.
//
// Each benchmark starts one worker per thread. A worker builds and runs
// fresh sieves until the duration is over; passes are summed across workers
// and the last sieve of the first worker is validated against the known
// prime counts.
package harness
