package max30003

// Register map, MAX30003 datasheet rev 3. Registers carry 24 payload bits
// and are addressed with 7 bits; bit 0 of the command byte selects read (1)
// or write (0).
const (
	RegNoOp      uint8 = 0x00 // continue the previous FIFO read (burst)
	RegStatus    uint8 = 0x01 // status (RO, reading latches/clears flags)
	RegEnInt     uint8 = 0x02 // interrupt enables routed to INTB
	RegEnInt2    uint8 = 0x03 // interrupt enables routed to INT2B
	RegMngrInt   uint8 = 0x04 // interrupt manager
	RegMngrDyn   uint8 = 0x05 // dynamic mode manager
	RegSWReset   uint8 = 0x08 // software reset (WO)
	RegSynch     uint8 = 0x09 // synchronize FIFO and filters (WO)
	RegFIFOReset uint8 = 0x0A // FIFO reset (WO)
	RegInfo      uint8 = 0x0F // part/revision info (RO)
	RegCnfgGen   uint8 = 0x10 // general configuration
	RegCnfgCal   uint8 = 0x12 // calibration source configuration
	RegCnfgEmux  uint8 = 0x14 // input multiplexer configuration
	RegCnfgECG   uint8 = 0x15 // ECG channel configuration
	RegCnfgRtor1 uint8 = 0x1D // R-to-R detection configuration 1
	RegCnfgRtor2 uint8 = 0x1E // R-to-R detection configuration 2
	RegECGBurst  uint8 = 0x20 // ECG FIFO burst read
	RegECGFIFO   uint8 = 0x21 // ECG FIFO single read
	RegRtor      uint8 = 0x25 // latest R-to-R interval (RO)
)

// FIFOLength is the depth of the on-chip ECG sample FIFO.
const FIFOLength = 32

const (
	regValueMask = 0xFFFFFF
	addrMask     = 0x7F

	etagShift = 3
	etagMask  = 0x7
	dataShift = 6
	dataMask  = 0x3FFFF

	// INFO[23:20] reads 0b0101 on the MAX30003 family.
	infoFamilyMask = 0xF00000
	infoFamilyID   = 0x500000

	// RTOR[13:0] sits in bits 23:10 of register 0x25.
	rtorShift = 10
	rtorMask  = 0x3FFF
)
