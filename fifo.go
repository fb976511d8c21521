package max30003

// ETag is the 3-bit tag the device attaches to every ECG FIFO word,
// classifying the accompanying sample.
type ETag uint8

const (
	ETagValid        ETag = 0x0 // valid sample
	ETagFastRecovery ETag = 0x1 // sample taken in fast recovery mode
	ETagValidEOF     ETag = 0x2 // valid sample, last currently in the FIFO
	ETagFastEOF      ETag = 0x3 // fast recovery sample, last in the FIFO
	ETagEmpty        ETag = 0x6 // FIFO empty, no new sample
	ETagOverflow     ETag = 0x7 // FIFO overflowed, record corrupted
)

// Valid reports whether the tag carries a usable ECG sample. Tags outside
// the documented set (4, 5) are reserved and never valid.
func (t ETag) Valid() bool {
	return t == ETagValid || t == ETagValidEOF
}

// FastRecovery reports whether the sample was taken during fast recovery.
func (t ETag) FastRecovery() bool {
	return t == ETagFastRecovery || t == ETagFastEOF
}

// EOF reports whether the sample was the last one in the FIFO when read.
func (t ETag) EOF() bool {
	return t == ETagValidEOF || t == ETagFastEOF
}

func (t ETag) String() string {
	switch t {
	case ETagValid:
		return "valid"
	case ETagFastRecovery:
		return "fast-recovery"
	case ETagValidEOF:
		return "valid-eof"
	case ETagFastEOF:
		return "fast-recovery-eof"
	case ETagEmpty:
		return "empty"
	case ETagOverflow:
		return "overflow"
	default:
		return "reserved"
	}
}

// Sample is one decoded ECG FIFO word.
type Sample struct {
	Raw   uint32 // full 24-bit FIFO word
	Tag   ETag
	Value uint32 // 18-bit voltage code, bits 23:6 of the word
}

// Voltage interprets the 18-bit voltage code as a two's-complement count.
func (s Sample) Voltage() int32 {
	return int32(s.Value<<14) >> 14
}

func decodeWord(w uint32) Sample {
	return Sample{
		Raw:   w,
		Tag:   ETag(w >> etagShift & etagMask),
		Value: w >> dataShift & dataMask,
	}
}

// ReadFIFO reads up to count ECG samples from the FIFO; count is clamped to
// the FIFO depth of 32. A multi-sample read issues the burst command once
// and continues with NO_OP command bytes, one 4-byte exchange per sample.
// Chip-select is released between exchanges rather than held for the whole
// burst; validate against the device if strict back-to-back burst timing is
// required.
//
// On a transport error the samples decoded before the failure are returned
// together with the error.
func (d *Dev) ReadFIFO(count int) ([]Sample, error) {
	if count <= 0 {
		return nil, nil
	}
	if count > FIFOLength {
		count = FIFOLength
	}

	cmd := RegECGFIFO
	if count > 1 {
		cmd = RegECGBurst
	}
	tx := [4]byte{cmd<<1 | 0x01}
	var rx [4]byte

	samples := make([]Sample, 0, count)
	for i := 0; i < count; i++ {
		if err := d.exchange("fifo", cmd, tx[:], rx[:]); err != nil {
			return samples, err
		}
		w := uint32(rx[1])<<16 | uint32(rx[2])<<8 | uint32(rx[3])
		samples = append(samples, decodeWord(w))
		tx[0] = RegNoOp
	}
	return samples, nil
}
