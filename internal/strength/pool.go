// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package strength

import "strings"

// Class is a character class contributing a fixed amount of symbols to the pool.
type Class uint8

const (
	Lowercase Class = 1 << iota
	Uppercase
	Digit
	Punctuation
	Whitespace
)

// The ASCII punctuation characters.
const punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

var classSizes = []struct {
	class Class
	size  int
	name  string
}{
	{Lowercase, 26, "lowercase"},
	{Uppercase, 26, "uppercase"},
	{Digit, 10, "digits"},
	{Punctuation, len(punctuation), "punctuation"},
	{Whitespace, 1, "whitespace"},
}

// ClassSet holds the classes present in a password.
type ClassSet uint8

func (s ClassSet) Has(c Class) bool {
	return uint8(s)&uint8(c) != 0
}

// Names lists the present classes, in pool order.
func (s ClassSet) Names() []string {
	var names []string
	for _, cs := range classSizes {
		if s.Has(cs.class) {
			names = append(names, cs.name)
		}
	}
	return names
}

func (s ClassSet) String() string {
	if s == 0 {
		return "none"
	}
	return strings.Join(s.Names(), ", ")
}

// PoolSize is the sum of the sizes of the present classes.
func (s ClassSet) PoolSize() int {
	pool := 0
	for _, cs := range classSizes {
		if s.Has(cs.class) {
			pool += cs.size
		}
	}
	return pool
}

// classOf returns the class of r, or 0 for characters outside every class
// (anything that is not printable ASCII or ASCII whitespace).
func classOf(r rune) Class {
	switch {
	case r >= 'a' && r <= 'z':
		return Lowercase
	case r >= 'A' && r <= 'Z':
		return Uppercase
	case r >= '0' && r <= '9':
		return Digit
	case r == ' ', r == '\t', r == '\n', r == '\v', r == '\f', r == '\r':
		return Whitespace
	case r < 0x80 && strings.ContainsRune(punctuation, r):
		return Punctuation
	}
	return 0
}

// Classes returns the set of classes used at least once in password.
func Classes(password string) ClassSet {
	var set ClassSet
	for _, r := range password {
		set |= ClassSet(classOf(r))
	}
	return set
}

// PoolSize returns the size of the character pool password draws from.
func PoolSize(password string) int {
	return Classes(password).PoolSize()
}
