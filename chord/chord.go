package chord

import (
	"strings"

	"github.com/jsphweid/pianosight/key"
	"github.com/jsphweid/pianosight/random"
)

// Tones returns the triad degrees rooted at root: root, third, fifth.
func Tones(root int) [3]int {
	return [3]int{root % 7, (root + 2) % 7, (root + 4) % 7}
}

// IsTone reports whether degree belongs to the triad rooted at root.
func IsTone(root, degree int) bool {
	for _, t := range Tones(root) {
		if t == degree {
			return true
		}
	}
	return false
}

// closed sequences resolve to the tonic; open ones leave the phrase hanging
var closedProgressions = map[key.Mode][][]int{
	key.Major:      {{0, 3, 4, 0}, {0, 5, 4, 0}, {0, 1, 4, 0}},
	key.Minor:      {{0, 3, 4, 0}, {0, 6, 4, 0}, {0, 5, 4, 0}},
	key.Dorian:     {{0, 3, 4, 0}, {0, 3, 6, 0}, {0, 1, 3, 0}},
	key.Mixolydian: {{0, 6, 3, 0}, {0, 3, 6, 0}, {0, 4, 6, 0}},
	key.Lydian:     {{0, 1, 6, 0}, {0, 1, 4, 0}, {0, 6, 1, 0}},
	key.Phrygian:   {{0, 1, 6, 0}, {0, 1, 3, 0}, {0, 5, 1, 0}},
}

var openProgressions = map[key.Mode][][]int{
	key.Major:      {{0, 5, 3, 4}, {0, 1, 3, 4}, {0, 3, 1, 4}},
	key.Minor:      {{0, 3, 5, 4}, {0, 5, 6, 4}, {0, 3, 6, 4}},
	key.Dorian:     {{0, 3, 6, 4}, {0, 1, 3, 4}, {0, 6, 3, 4}},
	key.Mixolydian: {{0, 3, 6, 4}, {0, 6, 3, 4}, {0, 4, 3, 6}},
	key.Lydian:     {{0, 1, 6, 4}, {0, 6, 1, 4}, {0, 1, 4, 6}},
	key.Phrygian:   {{0, 1, 5, 3}, {0, 5, 1, 3}, {0, 1, 3, 6}},
}

// Closed returns the closed progression family for a mode.
func Closed(mode key.Mode) [][]int {
	return closedProgressions[mode]
}

// Open returns the open progression family for a mode.
func Open(mode key.Mode) [][]int {
	return openProgressions[mode]
}

// Progression picks one chord root per measure. Pieces of up to four
// measures get a closed sequence; longer ones an open sequence followed by
// a closed one. The base sequence is tiled and then truncated to n.
func Progression(src random.Source, mode key.Mode, n int) []int {
	var base []int
	if n <= 4 {
		base = append(base, random.Pick(src, closedProgressions[mode])...)
	} else {
		open := random.Pick(src, openProgressions[mode])
		closed := random.Pick(src, closedProgressions[mode])
		base = append(append(base, open...), closed...)
	}
	return Tile(base, n)
}

// Tile repeats base until it holds at least n entries and cuts it to n.
func Tile(base []int, n int) []int {
	if len(base) == 0 || n <= 0 {
		return []int{}
	}
	res := make([]int, 0, n+len(base))
	for len(res) < n {
		res = append(res, base...)
	}
	return res[:n]
}

var numerals = [7]string{"I", "II", "III", "IV", "V", "VI", "VII"}

// Numeral names the triad on root in roman numerals: upper case for major,
// lower case for minor, with a trailing "°" for diminished.
func Numeral(k key.Key, root int) string {
	tones := Tones(root)
	third := (k.Intervals[tones[1]] - k.Intervals[tones[0]] + 12) % 12
	fifth := (k.Intervals[tones[2]] - k.Intervals[tones[0]] + 12) % 12
	name := numerals[root%7]
	switch {
	case fifth == 6:
		return strings.ToLower(name) + "°"
	case third == 3:
		return strings.ToLower(name)
	}
	return name
}

// CreateProgressionKey joins the numerals of a progression, e.g. "I-IV-V-I".
func CreateProgressionKey(k key.Key, progression []int) string {
	var res string
	for i, root := range progression {
		res += Numeral(k, root)
		if i < len(progression)-1 {
			res += "-"
		}
	}
	return res
}
