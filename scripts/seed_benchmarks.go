// seed_benchmarks.go — standalone script to parse a benchmarks CSV and seed
// them via the talentmatch API.
//
// CSV columns: job_vacancy_id, role_name, job_level, role_purpose,
// selected_talent_ids (semicolon-separated, max 3).
//
// Usage:
//
//	go run scripts/seed_benchmarks.go -csv benchmarks.csv -api http://localhost:8700 -token $ADMIN_TOKEN
package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
)

type benchmark struct {
	JobVacancyID      string   `json:"job_vacancy_id"`
	RoleName          string   `json:"role_name"`
	JobLevel          string   `json:"job_level,omitempty"`
	RolePurpose       string   `json:"role_purpose,omitempty"`
	SelectedTalentIDs []string `json:"selected_talent_ids,omitempty"`
}

func main() {
	csvPath := flag.String("csv", "benchmarks.csv", "path to benchmarks CSV")
	apiURL := flag.String("api", "http://localhost:8700", "talentmatch API base URL")
	token := flag.String("token", "", "admin bearer token")
	dryRun := flag.Bool("dry-run", false, "print benchmarks without posting")
	flag.Parse()

	f, err := os.Open(*csvPath)
	if err != nil {
		log.Fatalf("open csv: %v", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = 5

	var benchmarks []benchmark
	first := true
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Fatalf("read csv: %v", err)
		}
		// Skip a header row if present.
		if first {
			first = false
			if strings.EqualFold(record[0], "job_vacancy_id") {
				continue
			}
		}

		b := benchmark{
			JobVacancyID: strings.TrimSpace(record[0]),
			RoleName:     strings.TrimSpace(record[1]),
			JobLevel:     strings.TrimSpace(record[2]),
			RolePurpose:  strings.TrimSpace(record[3]),
		}
		if b.JobVacancyID == "" || b.RoleName == "" {
			log.Printf("skipping row without vacancy id or role name: %v", record)
			continue
		}
		for _, id := range strings.Split(record[4], ";") {
			if id = strings.TrimSpace(id); id != "" {
				b.SelectedTalentIDs = append(b.SelectedTalentIDs, id)
			}
		}
		if len(b.SelectedTalentIDs) > 3 {
			log.Printf("skipping %s: more than 3 selected talents", b.JobVacancyID)
			continue
		}
		benchmarks = append(benchmarks, b)
	}

	if *dryRun {
		for _, b := range benchmarks {
			out, _ := json.MarshalIndent(b, "", "  ")
			fmt.Println(string(out))
		}
		fmt.Printf("%d benchmarks parsed (dry run)\n", len(benchmarks))
		return
	}

	client := &http.Client{}
	created := 0
	for _, b := range benchmarks {
		payload, err := json.Marshal(b)
		if err != nil {
			log.Fatalf("marshal %s: %v", b.JobVacancyID, err)
		}

		req, err := http.NewRequest("POST", *apiURL+"/api/v1/benchmarks", bytes.NewReader(payload))
		if err != nil {
			log.Fatalf("build request: %v", err)
		}
		req.Header.Set("Content-Type", "application/json")
		if *token != "" {
			req.Header.Set("Authorization", "Bearer "+*token)
		}

		resp, err := client.Do(req)
		if err != nil {
			log.Fatalf("post %s: %v", b.JobVacancyID, err)
		}
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode != http.StatusCreated {
			log.Printf("post %s: %d %s", b.JobVacancyID, resp.StatusCode, strings.TrimSpace(string(body)))
			continue
		}
		created++
	}
	fmt.Printf("%d/%d benchmarks created\n", created, len(benchmarks))
}
