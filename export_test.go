package systikki

// SetPark replaces what Halt does after entering Halted. Returns restore func
func SetPark(f func()) func() {
	old := park
	park = f
	return func() { park = old }
}
