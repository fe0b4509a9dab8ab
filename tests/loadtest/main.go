package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"go.uber.org/atomic"
)

const (
	numWorkers  = 50
	numProfiles = 200
)

var classes = []string{"active", "upcoming", "all"}

var httpClient = &http.Client{
	Timeout: 10 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        200,
		MaxIdleConnsPerHost: 200,
		IdleConnTimeout:     30 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   2 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	},
}

type result struct {
	endpoint string
	status   int
	latency  time.Duration
	err      bool
}

type stats struct {
	count     int64
	errors    int64
	latencies []time.Duration
}

// The load generator only creates profiles without linked platforms, so
// upstream traffic is limited to the first contest aggregation per class.
func main() {
	baseURL := flag.String("url", "http://127.0.0.1:18090", "codefolio base url")
	duration := flag.Duration("duration", 10*time.Second, "length of each phase")
	flag.Parse()

	fmt.Println("=== Codefolio Load Test ===")
	fmt.Printf("Workers: %d | Duration: %s | Profiles: %d\n\n", numWorkers, *duration, numProfiles)

	fmt.Print("Waiting for server... ")
	for i := 0; i < 30; i++ {
		resp, err := httpClient.Get(*baseURL + "/health")
		if err == nil {
			drain(resp)
			break
		}
		if i == 29 {
			fmt.Println("FAILED: server not responding")
			return
		}
		time.Sleep(200 * time.Millisecond)
	}
	fmt.Println("OK")

	c := &client{base: *baseURL, runID: time.Now().UnixNano()}

	fmt.Println("\n--- Phase 1: Seeding profiles (POST /profiles) ---")
	for i := 0; i < numProfiles; i++ {
		c.createProfile(i)
	}
	for _, class := range classes {
		c.listContests(class)
	}

	fmt.Println("\n--- Phase 2: Read-heavy load (contests, profiles, stats) ---")
	runPhase(*duration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.50:
			return c.listContests(classes[rng.Intn(len(classes))])
		case r < 0.80:
			return c.getProfile(rng.Intn(numProfiles))
		case r < 0.95:
			return c.getUnlinkedStats(rng.Intn(numProfiles))
		default:
			return c.health()
		}
	})

	fmt.Println("\n--- Phase 3: Profile churn (update + delete/recreate) ---")
	runPhase(*duration, func(rng *rand.Rand) result {
		idx := rng.Intn(numProfiles)
		switch r := rng.Float64(); {
		case r < 0.60:
			return c.updateProfile(idx, rng)
		case r < 0.80:
			return c.getProfile(idx)
		default:
			return c.listContests("all")
		}
	})
}

type client struct {
	base  string
	runID int64
}

func (c *client) userID(i int) string {
	return fmt.Sprintf("load-%d-%d", c.runID, i)
}

func (c *client) do(endpoint, method, url string, body any, ok ...int) result {
	var reader io.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		return result{endpoint, 0, 0, true}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	start := time.Now()
	resp, err := httpClient.Do(req)
	lat := time.Since(start)
	if err != nil {
		return result{endpoint, 0, lat, true}
	}
	drain(resp)
	failed := true
	for _, code := range ok {
		if resp.StatusCode == code {
			failed = false
		}
	}
	return result{endpoint, resp.StatusCode, lat, failed}
}

func (c *client) createProfile(i int) result {
	body := map[string]string{
		"userId": c.userID(i),
		"email":  fmt.Sprintf("user%d@example.com", i),
		"name":   fmt.Sprintf("User %d", i),
	}
	return c.do("POST /profiles", http.MethodPost, c.base+"/profiles", body, http.StatusCreated)
}

func (c *client) listContests(class string) result {
	return c.do("GET /contests/{class}", http.MethodGet, c.base+"/contests/"+class, nil, http.StatusOK)
}

func (c *client) getProfile(i int) result {
	return c.do("GET /profiles/{id}", http.MethodGet, c.base+"/profiles/"+c.userID(i), nil, http.StatusOK)
}

func (c *client) getUnlinkedStats(i int) result {
	return c.do("GET /profiles/{id}/{p}/stats", http.MethodGet, c.base+"/profiles/"+c.userID(i)+"/leetcode/stats", nil, http.StatusNotFound)
}

func (c *client) updateProfile(i int, rng *rand.Rand) result {
	body := map[string]string{"name": fmt.Sprintf("User %d rev %d", i, rng.Intn(1000))}
	return c.do("PUT /profiles/{id}", http.MethodPut, c.base+"/profiles/"+c.userID(i), body, http.StatusOK)
}

func (c *client) health() result {
	return c.do("GET /health", http.MethodGet, c.base+"/health", nil, http.StatusOK)
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}

func runPhase(duration time.Duration, workFn func(rng *rand.Rand) result) {
	results := make(chan result, 10000)
	var wg sync.WaitGroup
	var totalOps atomic.Int64
	stop := make(chan struct{})

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for {
				select {
				case <-stop:
					return
				default:
					r := workFn(rng)
					totalOps.Inc()
					results <- r
				}
			}
		}(rand.Int63() + int64(i))
	}

	allResults := make(map[string]*stats)
	done := make(chan struct{})
	go func() {
		for r := range results {
			s, ok := allResults[r.endpoint]
			if !ok {
				s = &stats{}
				allResults[r.endpoint] = s
			}
			s.count++
			if r.err {
				s.errors++
			}
			s.latencies = append(s.latencies, r.latency)
		}
		close(done)
	}()

	time.Sleep(duration)
	close(stop)
	wg.Wait()
	close(results)
	<-done

	printResults(allResults, duration)
}

func printResults(allResults map[string]*stats, duration time.Duration) {
	var totalOps int64
	var totalErrors int64

	endpoints := make([]string, 0, len(allResults))
	for ep := range allResults {
		endpoints = append(endpoints, ep)
	}
	sort.Strings(endpoints)

	fmt.Printf("\n  %-28s %8s %6s %10s %10s %10s %10s\n",
		"Endpoint", "Reqs", "Errs", "Avg", "P50", "P95", "P99")
	fmt.Println("  " + strings.Repeat("-", 94))

	for _, ep := range endpoints {
		s := allResults[ep]
		totalOps += s.count
		totalErrors += s.errors

		sort.Slice(s.latencies, func(i, j int) bool {
			return s.latencies[i] < s.latencies[j]
		})

		fmt.Printf("  %-28s %8d %6d %10s %10s %10s %10s\n",
			ep, s.count, s.errors,
			fmtDur(avgDuration(s.latencies)),
			fmtDur(percentile(s.latencies, 0.50)),
			fmtDur(percentile(s.latencies, 0.95)),
			fmtDur(percentile(s.latencies, 0.99)))
	}

	if totalOps == 0 {
		return
	}
	rps := float64(totalOps) / duration.Seconds()
	fmt.Println("  " + strings.Repeat("-", 94))
	fmt.Printf("  Total: %d reqs | Errors: %d (%.1f%%) | RPS: %.0f\n",
		totalOps, totalErrors, float64(totalErrors)/float64(totalOps)*100, rps)
}

func avgDuration(d []time.Duration) time.Duration {
	if len(d) == 0 {
		return 0
	}
	var sum time.Duration
	for _, v := range d {
		sum += v
	}
	return sum / time.Duration(len(d))
}

func percentile(d []time.Duration, p float64) time.Duration {
	if len(d) == 0 {
		return 0
	}
	idx := int(float64(len(d)) * p)
	if idx >= len(d) {
		idx = len(d) - 1
	}
	return d[idx]
}

func fmtDur(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dus", d.Microseconds())
	}
	return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000.0)
}
