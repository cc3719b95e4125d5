package crypto

// ZeroBytes overwrites b in place. Key material is zeroed as soon as it
// stops being needed, instead of waiting for the garbage collector.
func ZeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
