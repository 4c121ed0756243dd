package soc

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

type Campus string

const (
	NewBrunswick Campus = "NB"
	Newark       Campus = "NK"
	Camden       Campus = "CM"
)

// Term is the SOC API's numeric term code.
type Term int

const (
	Winter Term = 0
	Spring Term = 1
	Summer Term = 7
	Fall   Term = 9
)

var (
	Campuses = []Campus{NewBrunswick, Newark, Camden}
	Years    = []int{2025, 2024, 2023, 2022, 2021}
	Terms    = []Term{Fall, Summer, Spring, Winter}
)

func (t Term) Name() string {
	switch t {
	case Fall:
		return "Fall"
	case Summer:
		return "Summer"
	case Spring:
		return "Spring"
	case Winter:
		return "Winter"
	}
	return "Term" + strconv.Itoa(int(t))
}

// season orders terms within a calendar year
func (t Term) season() int {
	switch t {
	case Winter:
		return 0
	case Spring:
		return 1
	case Summer:
		return 2
	case Fall:
		return 3
	}
	return -1
}

// TermKey identifies one (campus, year, term) request against the API.
type TermKey struct {
	Campus Campus
	Year   int
	Term   Term
}

func (k TermKey) String() string {
	return fmt.Sprintf("%s %d %d", k.Campus, k.Year, k.Term)
}

// Offered renders the key as a lastOffered value, e.g. "Spring 2021".
func (k TermKey) Offered() string {
	return fmt.Sprintf("%s %d", k.Term.Name(), k.Year)
}

// Ordinal sorts keys chronologically regardless of campus.
func (k TermKey) Ordinal() int {
	return k.Year*10 + k.Term.season()
}

// Enumerate lists every key in harvest order: campus, then year, then term.
func Enumerate() []TermKey {
	keys := make([]TermKey, 0, len(Campuses)*len(Years)*len(Terms))
	for _, campus := range Campuses {
		for _, year := range Years {
			for _, term := range Terms {
				keys = append(keys, TermKey{Campus: campus, Year: year, Term: term})
			}
		}
	}
	return keys
}

// ParseOffered takes a term string like "Fall 2017" and determines its
// year and term code
func ParseOffered(offered string) (int, Term, error) {
	split := strings.Split(strings.TrimSpace(offered), " ")
	if len(split) != 2 {
		return 0, 0, errors.New(offered + " is not a valid term")
	}

	year, err := strconv.Atoi(split[1])
	if err != nil {
		return 0, 0, errors.New(offered + " is not a valid term")
	}

	var term Term
	switch split[0] {
	case "Fall":
		term = Fall
	case "Summer":
		term = Summer
	case "Spring":
		term = Spring
	case "Winter":
		term = Winter
	default:
		return 0, 0, errors.New(offered + " is not a valid term")
	}
	return year, term, nil
}
