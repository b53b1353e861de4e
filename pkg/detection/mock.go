package detection

// MockDetector returns canned objects regardless of input. For tests and the
// offline demo.
type MockDetector struct {
	Objects []Object
	Err     error

	// Calls counts Detect invocations.
	Calls int
}

// Detect returns the canned objects.
func (m *MockDetector) Detect(_ []byte) ([]Object, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Objects, nil
}

// Close is a no-op.
func (m *MockDetector) Close() error {
	return nil
}
