// jobimport converts a saved job-board HTML export into the catalog JSON
// the engine loads at startup. Offline only: file in, file out.
//
//	jobimport -in saved_jobs.html -out catalog.json
package main

import (
	"encoding/json"
	"flag"
	"os"

	"jobtrack-engine/internal/catalog"
	"jobtrack-engine/internal/logger"
)

func main() {
	logger.Init()
	log := logger.Get()

	in := flag.String("in", "", "saved job-board HTML export")
	out := flag.String("out", "catalog.json", "catalog JSON to write")
	flag.Parse()

	if *in == "" {
		flag.Usage()
		os.Exit(2)
	}

	f, err := os.Open(*in)
	if err != nil {
		log.Fatal().Err(err).Msg("open input")
	}
	defer f.Close()

	postings, err := catalog.ImportHTML(f)
	if err != nil {
		log.Fatal().Err(err).Msg("parse export")
	}

	b, err := json.MarshalIndent(postings, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("encode catalog")
	}
	if err := os.WriteFile(*out, append(b, '\n'), 0o644); err != nil {
		log.Fatal().Err(err).Msg("write catalog")
	}

	log.Info().Int("postings", len(postings)).Str("out", *out).Msg("catalog written")
}
