// Command shadow_compare replays read-only requests against the legacy
// Flask service and this API, reporting status and body drift per
// endpoint. Used during cutover to verify the rewrite answers like the
// system it replaces.
package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"
)

type probe struct {
	Method   string `json:"method"`
	Path     string `json:"path"`
	Critical bool   `json:"critical"`
}

type probeFile struct {
	Probes []probe `json:"probes"`
}

type result struct {
	Probe          probe
	LegacyStatus   int
	NewStatus      int
	StatusMatch    bool
	BodyMatch      bool
	Err            error
	DurationNew    time.Duration
	DurationLegacy time.Duration
}

// volatileKeys are dropped before comparing bodies: both sides stamp
// their own clocks and identifiers.
var volatileKeys = map[string]bool{
	"timestamp":           true,
	"report_generated_at": true,
	"created_at":          true,
	"updated_at":          true,
	"expires_at":          true,
	"uptime_sec":          true,
}

func main() {
	var (
		newBase    string
		legacyBase string
		probesPath string
		token      string
		timeout    time.Duration
	)

	flag.StringVar(&newBase, "new-base", "http://localhost:8080/api/v1", "rewritten API base URL")
	flag.StringVar(&legacyBase, "legacy-base", "http://localhost:5000/api", "legacy Flask API base URL")
	flag.StringVar(&probesPath, "probes", filepath.Join("scripts", "shadow_compare", "probes.json"), "path to JSON probe file")
	flag.StringVar(&token, "token", "", "workstation bearer token for protected routes")
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "HTTP client timeout")
	flag.Parse()

	probes, err := loadProbes(probesPath)
	if err != nil {
		log.Fatalf("failed to load probes: %v", err)
	}

	client := &http.Client{Timeout: timeout}
	var (
		results      []result
		breaking     int
		optionalDiff int
	)

	for _, p := range probes {
		res := compare(client, newBase, legacyBase, token, p)
		if res.Err != nil || !res.StatusMatch || !res.BodyMatch {
			if p.Critical {
				breaking++
			} else {
				optionalDiff++
			}
		}
		results = append(results, res)
	}

	printReport(results)

	fmt.Printf("Breaking diffs: %d, Optional diffs: %d\n", breaking, optionalDiff)
	if breaking > 0 {
		os.Exit(1)
	}
}

func loadProbes(path string) ([]probe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var file probeFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, err
	}
	if len(file.Probes) == 0 {
		return nil, fmt.Errorf("no probes defined in %s", path)
	}
	return file.Probes, nil
}

func compare(client *http.Client, newBase, legacyBase, token string, p probe) result {
	res := result{Probe: p}

	newResp, newDur, newErr := perform(client, newBase, token, p)
	legacyResp, legacyDur, legacyErr := perform(client, legacyBase, token, p)
	res.DurationNew = newDur
	res.DurationLegacy = legacyDur

	if newErr != nil {
		res.Err = fmt.Errorf("new request failed: %w", newErr)
		return res
	}
	if legacyErr != nil {
		res.Err = fmt.Errorf("legacy request failed: %w", legacyErr)
		return res
	}
	defer newResp.Body.Close()
	defer legacyResp.Body.Close()

	res.NewStatus = newResp.StatusCode
	res.LegacyStatus = legacyResp.StatusCode
	res.StatusMatch = res.NewStatus == res.LegacyStatus

	newBody, err := io.ReadAll(newResp.Body)
	if err != nil {
		res.Err = fmt.Errorf("read new body: %w", err)
		return res
	}
	legacyBody, err := io.ReadAll(legacyResp.Body)
	if err != nil {
		res.Err = fmt.Errorf("read legacy body: %w", err)
		return res
	}
	res.BodyMatch = bodiesEqual(newBody, legacyBody)
	return res
}

func perform(client *http.Client, base, token string, p probe) (*http.Response, time.Duration, error) {
	if client == nil {
		return nil, 0, errors.New("nil client")
	}
	method := strings.ToUpper(strings.TrimSpace(p.Method))
	if method == "" {
		method = http.MethodGet
	}
	path := p.Path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	req, err := http.NewRequest(method, strings.TrimRight(base, "/")+path, nil)
	if err != nil {
		return nil, 0, err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	return resp, time.Since(start), nil
}

func bodiesEqual(a, b []byte) bool {
	if bytes.Equal(bytes.TrimSpace(a), bytes.TrimSpace(b)) {
		return true
	}
	var aj, bj interface{}
	if err := json.Unmarshal(a, &aj); err != nil {
		return false
	}
	if err := json.Unmarshal(b, &bj); err != nil {
		return false
	}
	normalize(&aj)
	normalize(&bj)
	return reflect.DeepEqual(aj, bj)
}

func normalize(v *interface{}) {
	switch val := (*v).(type) {
	case map[string]interface{}:
		for k, v2 := range val {
			if volatileKeys[k] {
				delete(val, k)
				continue
			}
			normalize(&v2)
			val[k] = v2
		}
	case []interface{}:
		for i, v2 := range val {
			normalize(&v2)
			val[i] = v2
		}
	case float64:
		if val == float64(int64(val)) {
			*v = int64(val)
		}
	}
}

func printReport(results []result) {
	fmt.Println("Shadow Compare Report")
	fmt.Println("======================")
	for _, res := range results {
		status := "OK"
		if res.Err != nil {
			status = "ERROR"
		} else if !res.StatusMatch || !res.BodyMatch {
			status = "DIFF"
		}
		fmt.Printf("[%s] %s %s\n", status, res.Probe.Method, res.Probe.Path)
		fmt.Printf("  New Status: %d (%s)\n", res.NewStatus, res.DurationNew)
		fmt.Printf("  Legacy Status: %d (%s)\n", res.LegacyStatus, res.DurationLegacy)
		if res.Err != nil {
			fmt.Printf("  Error: %v\n", res.Err)
		} else {
			fmt.Printf("  Status match: %t | Body match: %t | Critical: %t\n", res.StatusMatch, res.BodyMatch, res.Probe.Critical)
		}
	}
}
