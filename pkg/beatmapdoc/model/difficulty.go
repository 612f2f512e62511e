package model

import "fmt"

// Difficulty is one of the five fixed difficulty tiers of a project.
type Difficulty int

const (
	DifficultyInvalid Difficulty = iota
	Debut
	Regular
	Pro
	Master
	MasterPlus
)

// Difficulties lists every supported tier in ascending order.
func Difficulties() []Difficulty {
	return []Difficulty{Debut, Regular, Pro, Master, MasterPlus}
}

func (d Difficulty) Valid() bool {
	return d >= Debut && d <= MasterPlus
}

func (d Difficulty) String() string {
	switch d {
	case Debut:
		return "Debut"
	case Regular:
		return "Regular"
	case Pro:
		return "Pro"
	case Master:
		return "Master"
	case MasterPlus:
		return "Master+"
	default:
		return fmt.Sprintf("Difficulty(%d)", int(d))
	}
}

// Key is the lower-case identifier used in table names and CLI flags.
func (d Difficulty) Key() string {
	switch d {
	case Debut:
		return "debut"
	case Regular:
		return "regular"
	case Pro:
		return "pro"
	case Master:
		return "master"
	case MasterPlus:
		return "master_plus"
	default:
		return ""
	}
}

// ParseDifficulty accepts either the Key or the String form.
func ParseDifficulty(s string) (Difficulty, error) {
	for _, d := range Difficulties() {
		if s == d.Key() || s == d.String() {
			return d, nil
		}
	}
	return DifficultyInvalid, fmt.Errorf("unknown difficulty %q", s)
}
