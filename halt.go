//go:build !(tinygo && cortexm)

package systikki

// On a host there is no wfi, just spin
var park = func() {
	for {
	}
}
