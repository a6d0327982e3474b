package games

import (
	"strconv"

	"github.com/phanxgames/playtime"
)

// Difficulty tiers. Content tagged with a tier is available from that tier up.
const (
	TierEasy   = 1
	TierMedium = 2
	TierHard   = 3
)

// ColorInfo is one entry of the color table.
type ColorInfo struct {
	Name  string
	Voice string
	Color playtime.Color
	Tier  int
}

// Colors are the crayon and bucket colors.
var Colors = []ColorInfo{
	{"red", "red", playtime.RGB(0xe6, 0x39, 0x46), TierEasy},
	{"blue", "blue", playtime.RGB(0x1d, 0x6f, 0xe0), TierEasy},
	{"yellow", "yellow", playtime.RGB(0xff, 0xc8, 0x00), TierEasy},
	{"green", "green", playtime.RGB(0x2a, 0x9d, 0x3f), TierMedium},
	{"orange", "orange", playtime.RGB(0xf7, 0x7f, 0x00), TierMedium},
	{"purple", "purple", playtime.RGB(0x7b, 0x2c, 0xbf), TierMedium},
	{"pink", "pink", playtime.RGB(0xff, 0x70, 0xa6), TierHard},
	{"brown", "brown", playtime.RGB(0x8d, 0x5b, 0x3a), TierHard},
}

// ShapeInfo is one entry of the shape table.
type ShapeInfo struct {
	Name  string
	Voice string
	Tier  int
}

// Shapes are the shapes the shape game draws.
var Shapes = []ShapeInfo{
	{"circle", "circle", TierEasy},
	{"square", "square", TierEasy},
	{"triangle", "triangle", TierEasy},
	{"star", "star", TierMedium},
	{"diamond", "diamond", TierHard},
}

// LetterInfo is one entry of the letter table.
type LetterInfo struct {
	Letter string // lower case
	Word   string
	Voice  string
	Tier   int
}

// Letters are the letters the letter game asks for.
var Letters = []LetterInfo{
	{"a", "apple", "a", TierEasy},
	{"b", "ball", "b", TierEasy},
	{"c", "cat", "c", TierEasy},
	{"d", "dog", "d", TierEasy},
	{"e", "egg", "e", TierEasy},
	{"f", "fish", "f", TierMedium},
	{"g", "goat", "g", TierMedium},
	{"h", "hat", "h", TierMedium},
	{"m", "moon", "m", TierMedium},
	{"s", "sun", "s", TierMedium},
	{"k", "kite", "k", TierHard},
	{"p", "pig", "p", TierHard},
	{"r", "rabbit", "r", TierHard},
	{"t", "tree", "t", TierHard},
	{"z", "zebra", "z", TierHard},
}

// NumberInfo is one entry of the number table.
type NumberInfo struct {
	Value int
	Voice string
	Tier  int
}

// Numbers are the counts the counting game asks for.
var Numbers = func() []NumberInfo {
	out := make([]NumberInfo, 0, 7)
	for n := 1; n <= 7; n++ {
		tier := TierEasy
		switch {
		case n > 5:
			tier = TierHard
		case n > 3:
			tier = TierMedium
		}
		out = append(out, NumberInfo{Value: n, Voice: strconv.Itoa(n), Tier: tier})
	}
	return out
}()

// upTo filters items to those available at tier.
func upTo[T any](items []T, tier int, tierOf func(T) int) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if tierOf(it) <= tier {
			out = append(out, it)
		}
	}
	return out
}
