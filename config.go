package max30003

import "fmt"

// FieldSpec locates a named bitfield inside a configuration register.
type FieldSpec struct {
	Shift uint
	Width uint
}

func (f FieldSpec) max() uint32 {
	return 1<<f.Width - 1
}

// Bitfield layout of the writable configuration registers, straight from
// the datasheet register map. EN_INT and EN_INT2 share a layout.
var enIntFields = map[string]FieldSpec{
	"EN_EINT":      {23, 1},
	"EN_EOVF":      {22, 1},
	"EN_FSTINT":    {21, 1},
	"EN_DCLOFFINT": {20, 1},
	"EN_LONINT":    {11, 1},
	"EN_RRINT":     {10, 1},
	"EN_SAMP":      {9, 1},
	"EN_PLLINT":    {8, 1},
	"INTB_TYPE":    {0, 2},
}

var regFields = map[uint8]map[string]FieldSpec{
	RegEnInt:  enIntFields,
	RegEnInt2: enIntFields,
	RegMngrInt: {
		"EFIT":      {19, 5}, // FIFO interrupt threshold minus one
		"CLR_FAST":  {6, 1},
		"CLR_RRINT": {4, 2},
		"CLR_SAMP":  {2, 1},
		"SAMP_IT":   {0, 2},
	},
	RegMngrDyn: {
		"FAST":    {22, 2},
		"FAST_TH": {16, 6},
	},
	RegCnfgGen: {
		"EN_ULP_LON":  {22, 2},
		"FMSTR":       {20, 2},
		"EN_ECG":      {19, 1},
		"EN_DCLOFF":   {12, 2},
		"DCLOFF_IPOL": {11, 1},
		"DCLOFF_IMAG": {8, 3},
		"DCLOFF_VTH":  {6, 2},
		"EN_RBIAS":    {4, 2},
		"RBIASV":      {2, 2},
		"RBIASP":      {1, 1},
		"RBIASN":      {0, 1},
	},
	RegCnfgCal: {
		"EN_VCAL": {22, 1},
		"VMODE":   {21, 1},
		"VMAG":    {20, 1},
		"FCAL":    {12, 3},
		"FIFTY":   {11, 1},
		"THIGH":   {0, 11},
	},
	RegCnfgEmux: {
		"POL":      {23, 1},
		"OPENP":    {21, 1},
		"OPENN":    {20, 1},
		"CALP_SEL": {18, 2},
		"CALN_SEL": {16, 2},
	},
	RegCnfgECG: {
		"RATE": {22, 2},
		"GAIN": {16, 2},
		"DHPF": {14, 1},
		"DLPF": {12, 2},
	},
	RegCnfgRtor1: {
		"WNDW":    {20, 4},
		"GAIN":    {16, 4},
		"EN_RTOR": {15, 1},
		"PAVG":    {12, 2},
		"PTSF":    {8, 4},
	},
	RegCnfgRtor2: {
		"HOFF": {16, 6},
		"RAVG": {12, 2},
		"RHSF": {8, 3},
	},
}

// Power-on defaults of the configuration registers.
var regDefaults = map[uint8]uint32{
	RegEnInt:     0x000003,
	RegEnInt2:    0x000003,
	RegMngrInt:   0x780004,
	RegMngrDyn:   0x3F0000,
	RegCnfgGen:   0x000004,
	RegCnfgCal:   0x004800,
	RegCnfgEmux:  0x300000,
	RegCnfgECG:   0x805000,
	RegCnfgRtor1: 0x3F2300,
	RegCnfgRtor2: 0x202400,
}

var regNames = map[string]uint8{
	"EN_INT":     RegEnInt,
	"EN_INT2":    RegEnInt2,
	"MNGR_INT":   RegMngrInt,
	"MNGR_DYN":   RegMngrDyn,
	"CNFG_GEN":   RegCnfgGen,
	"CNFG_CAL":   RegCnfgCal,
	"CNFG_EMUX":  RegCnfgEmux,
	"CNFG_ECG":   RegCnfgECG,
	"CNFG_RTOR1": RegCnfgRtor1,
	"CNFG_RTOR2": RegCnfgRtor2,
}

// Default returns the power-on value of a configuration register, or 0 for
// registers without one.
func Default(reg uint8) uint32 {
	return regDefaults[reg]
}

// RegisterByName resolves a datasheet register name such as "CNFG_ECG".
func RegisterByName(name string) (uint8, bool) {
	reg, ok := regNames[name]
	return reg, ok
}

// Assemble composes a register value by ORing option bitfields over a base
// default, masked to 24 bits. Options are assumed to occupy disjoint fields
// of the target register; overlapping fields silently corrupt the result.
func Assemble(base uint32, opts ...uint32) uint32 {
	v := base
	for _, o := range opts {
		v |= o
	}
	return v & regValueMask
}

// EncodeField places value in the named bitfield of reg, for use as an
// Assemble option.
func EncodeField(reg uint8, field string, value uint32) (uint32, error) {
	fields, ok := regFields[reg]
	if !ok {
		return 0, fmt.Errorf("max30003: register %#02x has no field table", reg)
	}
	f, ok := fields[field]
	if !ok {
		return 0, fmt.Errorf("max30003: register %#02x has no field %q", reg, field)
	}
	if value > f.max() {
		return 0, fmt.Errorf("max30003: field %q is %d bits wide, value %#x does not fit", field, f.Width, value)
	}
	return value << f.Shift, nil
}
