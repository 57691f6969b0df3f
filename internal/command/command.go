// Package command implements the colon-command line grammar: an exact
// match against a known command set, or else a concatenation of
// single-character prefixes of those commands, with an optional trailing
// "!" setting a force flag.
//
// Ground truth: original_source/src/command.rs, ported verbatim in
// semantics (including its exact test vectors) rather than reinterpreted.
package command

import "strings"

// Flag is a command modifier parsed from the input.
type Flag int

const (
	// Force corresponds to a trailing "!".
	Force Flag = iota
)

// Parsed is the result of parsing a colon-command line.
type Parsed struct {
	Commands []string
	Flags    []Flag
}

// IsForced reports whether the Force flag was present.
func (p Parsed) IsForced() bool {
	for _, f := range p.Flags {
		if f == Force {
			return true
		}
	}
	return false
}

// Parse parses input against the known command set, returning false if no
// command in the set matches (unknown command).
func Parse(commands []string, input string) (Parsed, bool) {
	flags, rest := parseFlags(input)
	matched := parseCommands(commands, rest)
	if len(matched) == 0 {
		return Parsed{}, false
	}
	return Parsed{Commands: matched, Flags: flags}, true
}

// parseFlags strips a trailing "!" and reports it as Force.
func parseFlags(input string) ([]Flag, string) {
	if strings.HasSuffix(input, "!") {
		return []Flag{Force}, input[:len(input)-1]
	}
	return nil, input
}

// parseCommands matches input exactly against commands first; failing
// that, treats each character of input in order as a prefix selecting the
// first command in commands starting with that character. Characters
// with no matching command prefix are silently skipped.
func parseCommands(commands []string, input string) []string {
	for _, c := range commands {
		if input == c {
			return []string{c}
		}
	}

	var result []string
	for _, r := range input {
		for _, c := range commands {
			if len(c) > 0 && rune(c[0]) == r {
				result = append(result, c)
				break
			}
		}
	}
	return result
}
