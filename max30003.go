// Package max30003 is a driver for the MAX30003 single-channel biopotential
// (ECG) analog front-end connected over SPI.
//
// The device exposes 24-bit registers behind a 4-byte full-duplex exchange:
// one command byte (7-bit address plus R/W bit) followed by three payload
// bytes, MSB first. The driver covers register access, ECG FIFO burst reads
// and interrupt status dispatch; waveform interpretation is left to the
// caller.
package max30003

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// Opts holds configuration options for the device.
type Opts struct {
	// Timeout bounds every 4-byte register exchange. The SPI transfer
	// itself cannot be aborted; an expired exchange is reported as timed
	// out and left to finish in the background.
	Timeout time.Duration
	// CS optionally drives a software chip-select line, asserted (low) for
	// the duration of each single exchange. Leave nil when the SPI port
	// controls its own chip-select, which already brackets each Tx.
	CS gpio.PinOut
	// Profile selects the register configuration written during New.
	// Nil applies the chip defaults for every configuration register.
	Profile *Profile
}

func DefaultOptions() *Opts {
	return &Opts{Timeout: 100 * time.Millisecond}
}

// New connects to a MAX30003 on the given port, verifies its identity,
// resets it and applies the configuration profile.
func New(p spi.Port, opts *Opts) (*Dev, error) {
	c, err := p.Connect(4*physic.MegaHertz, spi.Mode0, 8)
	if err != nil {
		return nil, fmt.Errorf("max30003: %v", err)
	}

	if opts == nil {
		opts = DefaultOptions()
	}
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = 100 * time.Millisecond
	}

	d := &Dev{
		c:       c,
		cs:      opts.CS,
		timeout: timeout,
		name:    p.String(),
	}

	info, err := d.ReadReg(RegInfo)
	if err != nil {
		return nil, err
	}
	if info&infoFamilyMask != infoFamilyID {
		return nil, ErrNotDevice
	}

	if err := d.SWReset(); err != nil {
		return nil, err
	}
	if err := d.ApplyProfile(opts.Profile); err != nil {
		return nil, err
	}
	if err := d.Synch(); err != nil {
		return nil, err
	}

	return d, nil
}

// Dev is a handle to a MAX30003.
//
// A Dev is not safe for concurrent use: the chip's registers have
// clear-on-read and FIFO-pointer side effects that depend on exact exchange
// ordering, so callers must serialize access externally.
type Dev struct {
	c       conn.Conn
	cs      gpio.PinOut
	timeout time.Duration
	name    string

	handlers  [numInterrupts]Handler
	onSamples func([]Sample)
}

func (d *Dev) String() string {
	return fmt.Sprintf("%s{%s}", strings.ToLower(d.name), d.c)
}

// ReadReg returns the 24-bit value of a register.
func (d *Dev) ReadReg(reg uint8) (uint32, error) {
	tx := [4]byte{(reg&addrMask)<<1 | 0x01}
	var rx [4]byte
	if err := d.exchange("read", reg, tx[:], rx[:]); err != nil {
		return 0, err
	}
	return uint32(rx[1])<<16 | uint32(rx[2])<<8 | uint32(rx[3]), nil
}

// WriteReg writes a 24-bit value to a register. The value is truncated to
// its low 24 bits and no response payload is interpreted; the protocol
// offers no way to confirm the write took effect.
func (d *Dev) WriteReg(reg uint8, value uint32) error {
	tx := [4]byte{
		(reg & addrMask) << 1,
		byte(value >> 16),
		byte(value >> 8),
		byte(value),
	}
	return d.exchange("write", reg, tx[:], nil)
}

// SWReset resets the device to its power-on register state.
func (d *Dev) SWReset() error {
	return d.WriteReg(RegSWReset, 0)
}

// Synch resets the FIFO, the filters and the sample clock so that
// acquisition restarts cleanly after configuration changes.
func (d *Dev) Synch() error {
	return d.WriteReg(RegSynch, 0)
}

// FIFOReset clears the ECG FIFO and the overflow latch without disturbing
// the configuration registers.
func (d *Dev) FIFOReset() error {
	return d.WriteReg(RegFIFOReset, 0)
}

// ReadRTOR returns the most recent R-to-R interval in units of the R-to-R
// resolution (8ms at the 512Hz master clock).
func (d *Dev) ReadRTOR() (uint16, error) {
	v, err := d.ReadReg(RegRtor)
	if err != nil {
		return 0, err
	}
	return uint16(v >> rtorShift & rtorMask), nil
}

// Halt disables the ECG channel, leaving the device in its lowest power
// state.
func (d *Dev) Halt() error {
	return d.WriteReg(RegCnfgGen, Default(RegCnfgGen))
}

// exchange performs one chip-select-bracketed 4-byte full-duplex transfer.
// Sub-exchanges of an enclosing operation run strictly in the order issued.
func (d *Dev) exchange(op string, reg uint8, tx, rx []byte) error {
	if d.cs != nil {
		if err := d.cs.Out(gpio.Low); err != nil {
			return &TransportError{Op: op, Reg: reg, Err: err}
		}
		defer d.cs.Out(gpio.High)
	}

	done := make(chan error, 1)
	go func() { done <- d.c.Tx(tx, rx) }()
	select {
	case err := <-done:
		if err != nil {
			if errors.Is(err, os.ErrDeadlineExceeded) {
				return &TransportError{Op: op, Reg: reg, Timeout: true}
			}
			return &TransportError{Op: op, Reg: reg, Err: err}
		}
		return nil
	case <-time.After(d.timeout):
		return &TransportError{Op: op, Reg: reg, Timeout: true}
	}
}

var _ conn.Resource = &Dev{}
