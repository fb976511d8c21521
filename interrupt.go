package max30003

import "strings"

// Interrupt identifies one of the eight interrupt sources shared by the
// STATUS and EN_INT registers.
type Interrupt uint8

const (
	IntFIFOThreshold Interrupt = iota // EINT: FIFO interrupt threshold reached
	IntFIFOOverflow                   // EOVF: FIFO overflowed, record corrupted
	IntFastRecovery                   // FSTINT: fast recovery mode engaged
	IntDCLeadOff                      // DCLOFFINT: DC lead-off detected
	IntULPLeadOn                      // LONINT: ultra-low-power lead-on detected
	IntRtoR                           // RRINT: new R-to-R event
	IntSampleSync                     // SAMP: sample synchronization pulse
	IntPLLUnlocked                    // PLLINT: PLL has not (or lost) phase lock
	numInterrupts
)

// Bit positions within the 24-bit STATUS and EN_INT registers.
var interruptBits = [numInterrupts]uint32{
	IntFIFOThreshold: 1 << 23,
	IntFIFOOverflow:  1 << 22,
	IntFastRecovery:  1 << 21,
	IntDCLeadOff:     1 << 20,
	IntULPLeadOn:     1 << 11,
	IntRtoR:          1 << 10,
	IntSampleSync:    1 << 9,
	IntPLLUnlocked:   1 << 8,
}

var interruptNames = [numInterrupts]string{
	IntFIFOThreshold: "fifo-threshold",
	IntFIFOOverflow:  "fifo-overflow",
	IntFastRecovery:  "fast-recovery",
	IntDCLeadOff:     "dc-lead-off",
	IntULPLeadOn:     "ulp-lead-on",
	IntRtoR:          "r-to-r",
	IntSampleSync:    "sample-sync",
	IntPLLUnlocked:   "pll-unlocked",
}

// interruptMask selects exactly the eight interrupt bit positions.
const interruptMask = 0xF00F00

// Mask returns the interrupt's bit within the STATUS/EN_INT registers.
func (i Interrupt) Mask() uint32 {
	if i >= numInterrupts {
		return 0
	}
	return interruptBits[i]
}

func (i Interrupt) String() string {
	if i >= numInterrupts {
		return "unknown"
	}
	return interruptNames[i]
}

// InterruptSet is a set of interrupts laid out like the STATUS register.
type InterruptSet uint32

func (s InterruptSet) Has(i Interrupt) bool {
	return uint32(s)&i.Mask() != 0
}

func (s InterruptSet) String() string {
	var names []string
	for i := IntFIFOThreshold; i < numInterrupts; i++ {
		if s.Has(i) {
			names = append(names, i.String())
		}
	}
	if names == nil {
		return "none"
	}
	return strings.Join(names, "|")
}

// Handler is invoked during ServiceInterrupts for an interrupt that is both
// enabled and active.
type Handler func(Interrupt)

// Handle registers h for the given interrupt, replacing any previous
// handler. A nil h restores the default no-op.
func (d *Dev) Handle(i Interrupt, h Handler) {
	if i < numInterrupts {
		d.handlers[i] = h
	}
}

// HandleSamples registers fn to receive the samples drained from the FIFO
// when servicing a FIFO threshold interrupt. Without a sink the drained
// samples are discarded.
func (d *Dev) HandleSamples(fn func([]Sample)) {
	d.onSamples = fn
}

// PendingInterrupts returns the interrupts that are both active and
// enabled: STATUS & EN_INT masked to the eight interrupt bit positions.
//
// STATUS is read strictly before EN_INT; the read-back latches and clears
// several status flags, so the order is part of the contract.
func (d *Dev) PendingInterrupts() (InterruptSet, error) {
	status, err := d.ReadReg(RegStatus)
	if err != nil {
		return 0, err
	}
	enabled, err := d.ReadReg(RegEnInt)
	if err != nil {
		return 0, err
	}
	return InterruptSet(status & enabled & interruptMask), nil
}

// ServiceInterrupts reads the pending interrupt set and dispatches it.
//
// Two sources have built-in service actions that run before the registered
// handler: a FIFO threshold interrupt drains a full FIFO depth of samples
// (delivered to the HandleSamples sink) to clear the threshold condition,
// and a FIFO overflow interrupt writes FIFO_RST to clear the overflow
// latch. Every other source only invokes its registered handler.
//
// The pass aborts on the first transport error; the returned set still
// reports what was pending.
func (d *Dev) ServiceInterrupts() (InterruptSet, error) {
	pending, err := d.PendingInterrupts()
	if err != nil {
		return 0, err
	}

	for i := IntFIFOThreshold; i < numInterrupts; i++ {
		if !pending.Has(i) {
			continue
		}
		switch i {
		case IntFIFOThreshold:
			samples, err := d.ReadFIFO(FIFOLength)
			if len(samples) > 0 && d.onSamples != nil {
				d.onSamples(samples)
			}
			if err != nil {
				return pending, err
			}
		case IntFIFOOverflow:
			if err := d.FIFOReset(); err != nil {
				return pending, err
			}
		}
		if h := d.handlers[i]; h != nil {
			h(i)
		}
	}
	return pending, nil
}
