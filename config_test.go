package max30003

import "testing"

func TestAssembleIdentity(t *testing.T) {
	if got := Assemble(0x805000); got != 0x805000 {
		t.Fatalf("Assemble(base) = %#06x, want 0x805000", got)
	}
	// Values are masked to the 24 payload bits.
	if got := Assemble(0x1FFFFFF); got != 0xFFFFFF {
		t.Fatalf("Assemble(0x1FFFFFF) = %#06x, want 0xFFFFFF", got)
	}
}

func TestAssembleOrderIndependent(t *testing.T) {
	rate, _ := EncodeField(RegCnfgECG, "RATE", 0x2)
	gain, _ := EncodeField(RegCnfgECG, "GAIN", 0x3)
	dhpf, _ := EncodeField(RegCnfgECG, "DHPF", 1)

	a := Assemble(0, rate, gain, dhpf)
	b := Assemble(0, dhpf, rate, gain)
	if a != b {
		t.Fatalf("Assemble order dependent: %#06x != %#06x", a, b)
	}
	if a != 0x2<<22|0x3<<16|1<<14 {
		t.Fatalf("Assemble = %#06x", a)
	}
	// Idempotent over repeated options.
	if got := Assemble(a, rate, gain, dhpf); got != a {
		t.Fatalf("Assemble not idempotent: %#06x != %#06x", got, a)
	}
}

func TestEncodeField(t *testing.T) {
	tests := []struct {
		reg   uint8
		field string
		value uint32
		want  uint32
	}{
		{RegCnfgECG, "RATE", 0x2, 0x2 << 22},
		{RegCnfgECG, "GAIN", 0x3, 0x3 << 16},
		{RegMngrInt, "EFIT", 0x1F, 0x1F << 19},
		{RegCnfgGen, "EN_ECG", 1, 1 << 19},
		{RegEnInt, "INTB_TYPE", 0x3, 0x3},
		{RegCnfgCal, "THIGH", 0x7FF, 0x7FF},
	}
	for _, tt := range tests {
		got, err := EncodeField(tt.reg, tt.field, tt.value)
		if err != nil {
			t.Fatalf("EncodeField(%#02x, %s): %v", tt.reg, tt.field, err)
		}
		if got != tt.want {
			t.Fatalf("EncodeField(%#02x, %s, %#x) = %#06x, want %#06x", tt.reg, tt.field, tt.value, got, tt.want)
		}
	}
}

func TestEncodeFieldErrors(t *testing.T) {
	if _, err := EncodeField(RegStatus, "EN_EINT", 1); err == nil {
		t.Error("EncodeField accepted a register without a field table")
	}
	if _, err := EncodeField(RegCnfgECG, "BOGUS", 1); err == nil {
		t.Error("EncodeField accepted an unknown field")
	}
	if _, err := EncodeField(RegCnfgECG, "RATE", 0x4); err == nil {
		t.Error("EncodeField accepted a value wider than the field")
	}
}

func TestDefaults(t *testing.T) {
	tests := map[uint8]uint32{
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
	for reg, want := range tests {
		if got := Default(reg); got != want {
			t.Errorf("Default(%#02x) = %#06x, want %#06x", reg, got, want)
		}
	}
	if got := Default(RegStatus); got != 0 {
		t.Errorf("Default(STATUS) = %#06x, want 0", got)
	}
}

// Every field must fit inside the 24 payload bits of its register.
func TestFieldTableBounds(t *testing.T) {
	for reg, fields := range regFields {
		for name, f := range fields {
			if f.Width == 0 || f.Shift+f.Width > 24 {
				t.Errorf("field %#02x.%s spans bits [%d:%d]", reg, name, f.Shift, f.Shift+f.Width-1)
			}
		}
	}
}

func TestRegisterByName(t *testing.T) {
	reg, ok := RegisterByName("CNFG_ECG")
	if !ok || reg != RegCnfgECG {
		t.Fatalf("RegisterByName(CNFG_ECG) = %#02x, %v", reg, ok)
	}
	if _, ok := RegisterByName("STATUS"); ok {
		t.Fatal("RegisterByName resolved a non-configuration register")
	}
}
