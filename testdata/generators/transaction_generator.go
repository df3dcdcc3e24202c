// Command transaction_generator emits synthetic transaction CSV files with
// planted recurring patterns and one-off noise, for integration tests and
// demos.
//
// Usage:
//
//	go run transaction_generator.go -output=transactions.csv -months=6 -noise=40 -seed=42
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/shopspring/decimal"
)

// plantedPattern describes one recurring payment planted in the output
type plantedPattern struct {
	Description string
	Amount      float64
	EveryDays   int
	JitterDays  int
	Category    string
}

var plantedPatterns = []plantedPattern{
	{"Netflix.com 866-579-7172", 15.49, 30, 1, "Entertainment"},
	{"SPOTIFY USA", 10.99, 30, 0, "Entertainment"},
	{"SQ *BLUE BOTTLE COFFEE SEATTLE WA", 6.50, 7, 1, "Dining"},
	{"VERIZON WRLS ACH PMT", 89.99, 30, 2, "Utilities"},
	{"PLANET FIT CLUB FEES", 24.99, 30, 1, "Health"},
	{"GEICO INSURANCE", 214.30, 182, 3, "Insurance"},
}

var noiseMerchants = []string{
	"HOME DEPOT #%04d",
	"TST* CORNER BISTRO NEW YORK NY",
	"AMZN Mktp US*%d",
	"SHELL OIL %08d",
	"TRADER JOE'S #%03d",
	"DELTA AIR %07d",
	"PP*EBAY SELLER",
	"WHOLEFDS MKT %05d",
}

func main() {
	var (
		output   = flag.String("output", "transactions.csv", "output CSV path")
		months   = flag.Int("months", 6, "months of history to generate")
		noise    = flag.Int("noise", 50, "number of one-off noise transactions")
		seed     = flag.Int64("seed", time.Now().UnixNano(), "random seed")
		noHeader = flag.Bool("no-header", false, "omit the header row")
	)
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))
	start := time.Now().UTC().AddDate(0, -*months, 0)
	end := time.Now().UTC()

	file, err := os.Create(*output)
	if err != nil {
		log.Fatalf("Failed to create output file: %v", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if !*noHeader {
		header := []string{"date", "description", "amount", "debit_credit", "category", "account", "labels", "notes"}
		if err := writer.Write(header); err != nil {
			log.Fatalf("Failed to write header: %v", err)
		}
	}

	rows := 0
	for _, p := range plantedPatterns {
		for date := start; date.Before(end); date = date.AddDate(0, 0, p.EveryDays) {
			jitter := 0
			if p.JitterDays > 0 {
				jitter = rng.Intn(2*p.JitterDays+1) - p.JitterDays
			}
			row := []string{
				date.AddDate(0, 0, jitter).Format("2006-01-02"),
				p.Description,
				decimal.NewFromFloat(p.Amount).StringFixed(2),
				"debit",
				p.Category,
				"Checking",
				"",
				"",
			}
			if err := writer.Write(row); err != nil {
				log.Fatalf("Failed to write row: %v", err)
			}
			rows++
		}
	}

	span := int(end.Sub(start).Hours() / 24)
	for i := 0; i < *noise; i++ {
		template := noiseMerchants[rng.Intn(len(noiseMerchants))]
		desc := template
		if containsVerb(template) {
			desc = fmt.Sprintf(template, rng.Intn(100000000))
		}
		row := []string{
			start.AddDate(0, 0, rng.Intn(span)).Format("2006-01-02"),
			desc,
			decimal.NewFromFloat(5 + rng.Float64()*400).StringFixed(2),
			"debit",
			"Shopping",
			"Checking",
			"",
			"",
		}
		if err := writer.Write(row); err != nil {
			log.Fatalf("Failed to write row: %v", err)
		}
		rows++
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Fatalf("Failed to flush output: %v", err)
	}

	fmt.Printf("Generated %d transactions (%d planted patterns, %d noise) in %s\n",
		rows, len(plantedPatterns), *noise, *output)
}

// containsVerb reports whether the template has a format verb to fill
func containsVerb(template string) bool {
	for i := 0; i < len(template)-1; i++ {
		if template[i] == '%' && template[i+1] != '%' {
			return true
		}
	}
	return false
}
