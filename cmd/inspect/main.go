package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/joho/godotenv"

	"github.com/smileatlas/dubaidental/internal/adapters/dataset"
	"github.com/smileatlas/dubaidental/internal/domain/entities"
	queryservices "github.com/smileatlas/dubaidental/internal/query/services"
	"github.com/smileatlas/dubaidental/pkg/config"
)

// inspect is a development utility for poking at a committed dataset with
// the same query operations the site's listing pages use.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}

	var (
		path    string
		area    string
		search  string
		sortKey string
		nearby  string
		limit   int
		areas   bool
	)
	flag.StringVar(&path, "dataset", cfg.Dataset.Path, "dataset file to inspect")
	flag.StringVar(&area, "area", queryservices.AllAreas, "filter by canonical area name")
	flag.StringVar(&search, "search", "", "free-text search over name, area, and services")
	flag.StringVar(&sortKey, "sort", string(queryservices.SortByRating), "sort key: rating, reviews, or name")
	flag.StringVar(&nearby, "nearby", "", "show clinics near the clinic with this slug")
	flag.IntVar(&limit, "limit", 20, "maximum rows to print")
	flag.BoolVar(&areas, "areas", false, "print per-area summaries instead of a listing")
	flag.Parse()

	store := dataset.NewStore(path)
	ds, err := store.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load dataset:", err)
		os.Exit(1)
	}

	fmt.Printf("dataset: %s (%d clinics, scraped %s)\n\n", path, len(ds.Clinics), ds.Meta.ScrapedAt)

	switch {
	case areas:
		printAreas(ds.Clinics)
	case nearby != "":
		printNearby(ds.Clinics, nearby)
	default:
		view := queryservices.Apply(ds.Clinics, queryservices.Params{
			Query: search,
			Area:  area,
			Sort:  queryservices.SortKey(sortKey),
		})
		if limit >= 0 && len(view) > limit {
			view = view[:limit]
		}
		printClinics(view)
	}
}

func printAreas(clinics []entities.ClinicRecord) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "AREA\tSLUG\tCLINICS\tAVG RATING")
	for _, summary := range queryservices.AreaSummaries(clinics) {
		inArea := queryservices.FilterByArea(clinics, summary.Name)
		fmt.Fprintf(w, "%s\t%s\t%d\t%.1f\n",
			summary.Name, summary.Slug, summary.Count, queryservices.AverageRating(inArea))
	}
	w.Flush()
}

func printNearby(clinics []entities.ClinicRecord, slug string) {
	for _, clinic := range clinics {
		if clinic.Slug == slug {
			fmt.Printf("clinics near %q in %s:\n\n", clinic.Name, clinic.Area)
			printClinics(queryservices.Nearby(clinics, clinic, 3))
			return
		}
	}
	fmt.Fprintf(os.Stderr, "no clinic with slug %q\n", slug)
	os.Exit(1)
}

func printClinics(clinics []entities.ClinicRecord) {
	if len(clinics) == 0 {
		fmt.Println("no results")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tAREA\tRATING\tREVIEWS\tSLUG")
	for _, clinic := range clinics {
		fmt.Fprintf(w, "%s\t%s\t%.1f\t%d\t%s\n",
			clinic.Name, clinic.Area, clinic.Rating, clinic.ReviewCount, clinic.Slug)
	}
	w.Flush()
}
