package menu

import (
	"bufio"
	"errors"
	"fmt"
	"github.com/gostonefire/parcelmap"
	"github.com/gostonefire/parcelmap/errs"
	"github.com/gostonefire/parcelmap/internal/normalize"
	"go.uber.org/zap"
	"io"
	"iter"
	"strconv"
	"strings"
)

// Index - The queries the menu runs against a parcel index
type Index interface {
	LookupBucket(country string) *parcelmap.Bucket
	ListAll(bucket *parcelmap.Bucket, country string) iter.Seq[parcelmap.Parcel]
	ListByCondition(bucket *parcelmap.Bucket, weight int, condition parcelmap.Condition, country string) iter.Seq[parcelmap.Parcel]
	TotalsFor(country string) (parcelmap.Totals, error)
	LightestFor(country string) (parcelmap.Parcel, error)
	HeaviestFor(country string) (parcelmap.Parcel, error)
	Stat(includeDistribution bool) parcelmap.HashMapStat
	Teardown() int
}

const (
	choiceListAll = iota + 1
	choiceHeavier
	choiceLighter
	choiceTotals
	choiceExtremes
	choiceStat
	choiceExit
)

const menuText = `
Parcel menu
 1. Display all parcels for a country
 2. Display parcels heavier than a weight
 3. Display parcels lighter than a weight
 4. Display total load and valuation for a country
 5. Display lightest and heaviest parcel for a country
 6. Display bucket statistics
 7. Exit
`

// Menu - Console front end over a parcel index, it runs one command at a time to completion
type Menu struct {
	index Index
	in    *bufio.Scanner
	out   io.Writer
	log   *zap.SugaredLogger
}

// New - Returns a pointer to a new Menu reading commands from in and writing answers to out
func New(index Index, in io.Reader, out io.Writer, log *zap.SugaredLogger) *Menu {
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	return &Menu{index: index, in: bufio.NewScanner(in), out: out, log: log}
}

// Run - Shows the menu and runs commands until the user exits or input ends, then tears the index down.
// Invalid input is reported and asked for again, it never reaches the index.
// It returns a standard error only if reading input fails.
func (M *Menu) Run() (err error) {
	defer func() {
		freed := M.index.Teardown()
		M.log.Infow("menu closed", "freed", freed)
	}()

	for {
		M.printf("%s", menuText)

		var choice int
		choice, err = M.readChoice()
		if err != nil {
			if errors.Is(err, io.EOF) {
				err = nil
			}
			return
		}
		if choice == choiceExit {
			M.printf("Bye\n")
			return
		}

		if err = M.run(choice); err != nil {
			if errors.Is(err, io.EOF) {
				err = nil
			}
			return
		}
	}
}

// run - Runs a single command
func (M *Menu) run(choice int) (err error) {
	if choice == choiceStat {
		M.printStat()
		return
	}

	country, err := M.readCountry()
	if err != nil {
		return
	}

	switch choice {
	case choiceListAll:
		M.printParcels(country, M.index.ListAll(M.index.LookupBucket(country), country))

	case choiceHeavier, choiceLighter:
		var weight int
		weight, err = M.readWeight()
		if err != nil {
			return
		}
		condition := parcelmap.Higher
		if choice == choiceLighter {
			condition = parcelmap.Lower
		}
		M.printParcels(country, M.index.ListByCondition(M.index.LookupBucket(country), weight, condition, country))

	case choiceTotals:
		totals, findErr := M.index.TotalsFor(country)
		if findErr != nil {
			M.printf("No parcels found for %s\n", country)
			return
		}
		M.printf("Total load for %s: %d parcels, weight %d, valuation %.2f\n", country, totals.Parcels, totals.Weight, totals.Valuation)

	case choiceExtremes:
		lightest, findErr := M.index.LightestFor(country)
		if findErr != nil {
			M.printf("No parcels found for %s\n", country)
			return
		}
		heaviest, _ := M.index.HeaviestFor(country)
		M.printf("Lightest parcel: %s\n", describe(lightest))
		M.printf("Heaviest parcel: %s\n", describe(heaviest))
	}

	return
}

// printParcels - Prints every parcel in seq or a not found message
func (M *Menu) printParcels(country string, seq iter.Seq[parcelmap.Parcel]) {
	n := 0
	for p := range seq {
		M.printf("%s\n", describe(p))
		n++
	}
	if n == 0 {
		M.printf("No parcels found for %s\n", country)
	}
}

// printStat - Prints bucket usage
func (M *Menu) printStat() {
	stat := M.index.Stat(false)
	M.printf("Records: %d\nBuckets: %d (%d in use, %d shared by several countries)\nHighest tree: %d\n",
		stat.Records, stat.Buckets, stat.UsedBuckets, stat.CollisionBuckets, stat.MaxHeight)
}

// readChoice - Reads a menu choice, asking again until it is a number between 1 and 7
func (M *Menu) readChoice() (choice int, err error) {
	for {
		M.printf("Enter your choice: ")
		var line string
		if line, err = M.readLine(); err != nil {
			return
		}

		choice, err = strconv.Atoi(line)
		if err != nil || choice < choiceListAll || choice > choiceExit {
			M.reject(errs.InvalidUserInput{Msg: fmt.Sprintf("%q is not a choice between %d and %d", line, choiceListAll, choiceExit)})
			continue
		}

		return
	}
}

// readCountry - Reads a country name, asking again until it is valid
func (M *Menu) readCountry() (country string, err error) {
	for {
		M.printf("Enter country: ")
		var line string
		if line, err = M.readLine(); err != nil {
			return
		}

		country, err = normalize.Country(line, normalize.MaxCountryLength)
		if err != nil {
			M.reject(err)
			continue
		}

		return
	}
}

// readWeight - Reads a whole number weight, asking again until it parses
func (M *Menu) readWeight() (weight int, err error) {
	for {
		M.printf("Enter weight: ")
		var line string
		if line, err = M.readLine(); err != nil {
			return
		}

		weight, err = strconv.Atoi(line)
		if err != nil {
			M.reject(errs.InvalidUserInput{Msg: fmt.Sprintf("%q is not a whole number", line)})
			continue
		}

		return
	}
}

// readLine - Returns the next input line trimmed, or io.EOF when input has ended
func (M *Menu) readLine() (line string, err error) {
	if !M.in.Scan() {
		err = M.in.Err()
		if err == nil {
			err = io.EOF
		}
		return
	}

	return strings.TrimSpace(M.in.Text()), nil
}

// reject - Tells the user why input was not accepted
func (M *Menu) reject(err error) {
	M.log.Debugw("input rejected", "reason", err)
	M.printf("Invalid input: %s\n", err)
}

func (M *Menu) printf(format string, a ...any) {
	_, _ = fmt.Fprintf(M.out, format, a...)
}

func describe(p parcelmap.Parcel) string {
	return fmt.Sprintf("Destination: %s, Weight: %d, Valuation: %.2f", p.Destination, p.Weight, p.Valuation)
}
