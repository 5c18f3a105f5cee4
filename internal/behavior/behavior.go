// Package behavior names the host input capabilities the overlay suspends
// while it is open.
package behavior

import (
	"fmt"
	"math/bits"
	"sort"
	"strings"
)

// Flag is a single host capability.
type Flag uint32

const (
	Input Flag = 1 << iota
	Walking
	Flying
	Look
	ToolSelection
	PrimaryAction
	SecondaryAction
	Scroll
	Interaction
	Escape
	Piloting
	Inventory
	ShiftHold
	TabSwitch
	ObjectDetector

	flagEnd
)

var flagNames = map[Flag]string{
	Input:           "input",
	Walking:         "walking",
	Flying:          "flying",
	Look:            "look",
	ToolSelection:   "tool-selection",
	PrimaryAction:   "primary-action",
	SecondaryAction: "secondary-action",
	Scroll:          "scroll",
	Interaction:     "interaction",
	Escape:          "escape",
	Piloting:        "piloting",
	Inventory:       "inventory",
	ShiftHold:       "shift-hold",
	TabSwitch:       "tab-switch",
	ObjectDetector:  "object-detector",
}

// String returns the kebab-case name of the flag.
func (f Flag) String() string {
	if name, ok := flagNames[f]; ok {
		return name
	}
	return fmt.Sprintf("flag(%#x)", uint32(f))
}

// ParseFlag resolves a flag from its name (case-insensitive).
func ParseFlag(name string) (Flag, error) {
	needle := strings.ToLower(strings.TrimSpace(name))
	for f, n := range flagNames {
		if n == needle {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown behavior %q", name)
}

// Set is a set of flags.
type Set uint32

// None is the empty set.
const None Set = 0

// All contains every defined flag.
const All = Set(flagEnd - 1)

// Of builds a set from the given flags.
func Of(flags ...Flag) Set {
	var s Set
	for _, f := range flags {
		s |= Set(f)
	}
	return s
}

// Has reports whether f is in the set.
func (s Set) Has(f Flag) bool { return s&Set(f) != 0 }

// With returns the set including f.
func (s Set) With(f Flag) Set { return s | Set(f) }

// Without returns the set excluding f.
func (s Set) Without(f Flag) Set { return s &^ Set(f) }

// Union returns the flags present in either set.
func (s Set) Union(o Set) Set { return s | o }

// Intersect returns the flags present in both sets.
func (s Set) Intersect(o Set) Set { return s & o }

// Len returns the number of flags in the set.
func (s Set) Len() int { return bits.OnesCount32(uint32(s & All)) }

// Flags lists the defined flags in the set, lowest bit first.
func (s Set) Flags() []Flag {
	var out []Flag
	for f := Flag(1); f < flagEnd; f <<= 1 {
		if s.Has(f) {
			out = append(out, f)
		}
	}
	return out
}

// Names lists the flag names in the set, sorted.
func (s Set) Names() []string {
	flags := s.Flags()
	names := make([]string, 0, len(flags))
	for _, f := range flags {
		names = append(names, f.String())
	}
	sort.Strings(names)
	return names
}

func (s Set) String() string {
	if s == None {
		return "none"
	}
	if s&All == All {
		return "all"
	}
	return strings.Join(s.Names(), "|")
}

// ParseSet resolves a set from flag names. "all" and "none" are accepted.
func ParseSet(names []string) (Set, error) {
	var s Set
	for _, name := range names {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "all":
			s |= All
			continue
		case "none", "":
			continue
		}
		f, err := ParseFlag(name)
		if err != nil {
			return None, err
		}
		s = s.With(f)
	}
	return s, nil
}
