package models

import "strings"

// Print methods offered by the lab.
const (
	MethodFilament = "Filament"
	MethodResin    = "Resin"
)

// Disciplines accepted on the submission form.
var Disciplines = []string{
	"Art",
	"Architecture",
	"Landscape Architecture",
	"Interior Design",
	"Engineering",
	"Hobby/Personal",
	"Other",
}

// ColorsByMethod maps each print method to its color palette. The two
// palettes are maintained independently; resin stock is far narrower.
var ColorsByMethod = map[string][]string{
	MethodFilament: {
		"True Red", "True Orange", "Light Orange", "True Yellow", "Dark Yellow",
		"Lime Green", "Green", "Forest Green", "Blue", "Electric Blue",
		"Midnight Purple", "Light Purple", "Clear", "True White", "Gray",
		"True Black", "Brown", "Copper", "Bronze", "True Silver", "True Gold",
		"Glow in the Dark", "Color Changing",
	},
	MethodResin: {"Black", "White", "Gray", "Clear"},
}

// PrintersByMethod maps each print method to the machines that run it.
var PrintersByMethod = map[string][]string{
	MethodFilament: {"Prusa MK4S", "Prusa XL", "Raise3D Pro 2 Plus"},
	MethodResin:    {"Formlabs Form 3"},
}

// DefaultRejectReasons are the canned reasons offered in the rejection flow.
var DefaultRejectReasons = []string{
	"Model walls too thin",
	"Unsupported overhangs",
	"File not manifold/has holes",
	"Exceeds printer size",
	"Inappropriate or non-compliant content",
}

// AllowedExtensions are the accepted model file extensions (lowercase,
// without the leading dot).
var AllowedExtensions = map[string]struct{}{
	"stl": {},
	"obj": {},
	"3mf": {},
}

// ValidDiscipline reports whether d is an accepted discipline.
func ValidDiscipline(d string) bool {
	for _, known := range Disciplines {
		if d == known {
			return true
		}
	}
	return false
}

// ValidColor reports whether color belongs to the method's palette.
func ValidColor(method, color string) bool {
	for _, known := range ColorsByMethod[method] {
		if color == known {
			return true
		}
	}
	return false
}

// ValidPrinter reports whether printer belongs to the method's machine list.
func ValidPrinter(method, printer string) bool {
	for _, known := range PrintersByMethod[method] {
		if printer == known {
			return true
		}
	}
	return false
}

// AllowedExtension reports whether filename carries an accepted extension.
func AllowedExtension(filename string) bool {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 || idx == len(filename)-1 {
		return false
	}
	_, ok := AllowedExtensions[strings.ToLower(filename[idx+1:])]
	return ok
}
