package common

// WriteCounterCallback is called by WriteCounter every Step bytes
type WriteCounterCallback func(current uint64, total uint64)

// WriteCounter counts bytes written to it, use it with io.TeeReader()
// to report transfer progress
type WriteCounter struct {
	Total        uint64
	CB           WriteCounterCallback
	Step         uint64
	previousStep uint64
	current      uint64
}

func (wc *WriteCounter) Write(p []byte) (int, error) {
	n := len(p)
	wc.current += uint64(n)

	if wc.CB != nil && wc.current >= wc.previousStep+wc.Step {
		wc.CB(wc.current, wc.Total)
		wc.previousStep = wc.current
	}

	return n, nil
}

// Current returns the number of bytes written so far
func (wc *WriteCounter) Current() uint64 {
	return wc.current
}
