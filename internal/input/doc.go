// Package input is a placeholder parent for the two input-adjacent
// subpackages this editor actually uses: key (terminal key events and
// sequences, consumed directly by internal/keymap) and fuzzy (a
// general-purpose fuzzy matcher, consumed by internal/dialog's file
// picker). It declares no types of its own.
package input
