// Command datagen writes a synthetic catalog dump for local development.
//
// Usage:
//
//	go run ./mock/datagen -out data/videos.txt -n 50000
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"time"
)

var (
	titles     = []string{"Beach Day", "Studio Session", "Road Trip", "Night Shoot", "First Scene", "Backstage", "Hotel Room", "Pool Party"}
	sources    = []string{"clips4u.com", "brazzers", "hotvids.net", "bangbros", "streamzone.tv"}
	tags       = []string{"amateur", "hd", "1080p", "vr", "outdoor", "blonde", "brunette", "couple"}
	categories = []string{"Amateur", "Anal", "Big Tits", "Blonde", "MILF", "POV", "Teen", "VR"}
	performers = []string{"Mia Lane", "Ava Storm", "Lena Cruz", "Nina Vale", "Riley Fox", "Dana West", "Skye Monroe", "Tara Bliss"}
)

func main() {
	out := flag.String("out", "data/videos.txt", "output dump path")
	n := flag.Int("n", 10000, "number of records")
	seed := flag.Int64("seed", 42, "random seed")
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))

	if err := os.MkdirAll(filepath.Dir(*out), 0o755); err != nil {
		log.Fatalf("creating output dir: %v", err)
	}
	f, err := os.Create(*out)
	if err != nil {
		log.Fatalf("creating output file: %v", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for i := 0; i < *n; i++ {
		if _, err := w.WriteString(line(rng, i)); err != nil {
			log.Fatalf("writing record: %v", err)
		}
	}
	if err := w.Flush(); err != nil {
		log.Fatalf("flushing output: %v", err)
	}

	log.Printf("wrote %d records to %s", *n, *out)
}

// line builds one pipe-delimited dump record.
func line(rng *rand.Rand, i int) string {
	id := rng.Uint64()
	date := time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC).
		AddDate(0, 0, rng.Intn(3650)).
		Format("20060102")

	embed := fmt.Sprintf("https://cdn.example.com/embed/%016x", id)
	thumb := fmt.Sprintf("https://img.example.com/%s/%016x/cover.jpg", date, id)
	thumbSeq := fmt.Sprintf("%s;%s", thumb, fmt.Sprintf("https://img.example.com/%s/%016x/1.jpg", date, id))
	title := fmt.Sprintf("%s %d", titles[rng.Intn(len(titles))], i)

	tagList := pick(rng, tags, 3) + ";" + sources[rng.Intn(len(sources))]
	likes := rng.Intn(50000)

	return fmt.Sprintf("%s|%s|%s|%s|%s|%s|%s|%d|%d|%d|%d|%s|%s|%d\n",
		embed,
		thumb,
		thumbSeq,
		title,
		tagList,
		pick(rng, categories, 2),
		pick(rng, performers, 2),
		60+rng.Intn(3600),   // duration
		rng.Intn(5_000_000), // views
		likes,
		rng.Intn(likes+1), // dislikes
		"",                // secondary thumbnail
		"",                // secondary sequence
		rng.Intn(500),     // comments
	)
}

// pick joins count random distinct-ish entries with the list delimiter.
func pick(rng *rand.Rand, pool []string, count int) string {
	out := ""
	for i := 0; i < count; i++ {
		if i > 0 {
			out += ";"
		}
		out += pool[rng.Intn(len(pool))]
	}
	return out
}
