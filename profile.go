package max30003

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Profile is a register configuration expressed as named bitfield values
// overlaid on the chip defaults, e.g.:
//
//	registers:
//	  CNFG_ECG:
//	    GAIN: 0x2
//	    DLPF: 0x1
//	  CNFG_GEN:
//	    EN_ECG: 1
type Profile struct {
	Registers map[string]map[string]uint32 `yaml:"registers"`
}

// LoadProfile reads a YAML register profile from path.
func LoadProfile(path string) (*Profile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("max30003: %v", err)
	}
	var p Profile
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("max30003: parsing %s: %v", path, err)
	}
	return &p, nil
}

// RegWrite is one rendered register write.
type RegWrite struct {
	Reg   uint8
	Value uint32
}

// Configuration registers in the order the original init sequence writes
// them: interrupt enables and managers first, channel configs last.
var configWriteOrder = []uint8{
	RegEnInt,
	RegEnInt2,
	RegMngrInt,
	RegMngrDyn,
	RegCnfgGen,
	RegCnfgCal,
	RegCnfgEmux,
	RegCnfgECG,
	RegCnfgRtor1,
	RegCnfgRtor2,
}

// Render resolves the profile into the full ordered write list: every
// configuration register in canonical order, its default assembled with the
// profile's bitfield values. Unknown register or field names are errors.
func (p *Profile) Render() ([]RegWrite, error) {
	byReg := map[uint8][]uint32{}
	for name, fields := range p.Registers {
		reg, ok := RegisterByName(name)
		if !ok {
			return nil, fmt.Errorf("max30003: unknown register %q in profile", name)
		}
		// Deterministic option order for a given profile.
		fieldNames := make([]string, 0, len(fields))
		for f := range fields {
			fieldNames = append(fieldNames, f)
		}
		sort.Strings(fieldNames)
		for _, f := range fieldNames {
			opt, err := EncodeField(reg, f, fields[f])
			if err != nil {
				return nil, err
			}
			byReg[reg] = append(byReg[reg], opt)
		}
	}

	writes := make([]RegWrite, 0, len(configWriteOrder))
	for _, reg := range configWriteOrder {
		writes = append(writes, RegWrite{
			Reg:   reg,
			Value: Assemble(Default(reg), byReg[reg]...),
		})
	}
	return writes, nil
}

// ApplyProfile writes the rendered profile to the device, register by
// register in canonical order. A nil profile applies the chip defaults.
func (d *Dev) ApplyProfile(p *Profile) error {
	if p == nil {
		p = &Profile{}
	}
	writes, err := p.Render()
	if err != nil {
		return err
	}
	for _, w := range writes {
		if err := d.WriteReg(w.Reg, w.Value); err != nil {
			return err
		}
	}
	return nil
}

// ECGProfile enables the ECG channel with gain 80V/V, the 0.5Hz high-pass
// and 40Hz low-pass filters, and routes FIFO threshold and overflow
// interrupts to INTB with a full-FIFO threshold.
func ECGProfile() *Profile {
	return &Profile{
		Registers: map[string]map[string]uint32{
			"EN_INT": {
				"EN_EINT":   1,
				"EN_EOVF":   1,
				"INTB_TYPE": 0x3, // open-drain with internal pullup
			},
			"MNGR_INT": {
				"EFIT":     0x1F, // interrupt at 32 pending samples
				"CLR_SAMP": 1,
			},
			"CNFG_GEN": {
				"EN_ECG": 1,
			},
			"CNFG_ECG": {
				"GAIN": 0x2,
				"DHPF": 1,
				"DLPF": 0x1,
			},
		},
	}
}
