package systikki

// SysTick lives in the System Control Space on every Cortex-M
const SYSTICKBASE uint32 = 0xE000E010

//Register offsets from SYSTICKBASE
const (
	CSR   Offset = 0x0 //Control and status
	RVR   Offset = 0x4 //Reload value
	CVR   Offset = 0x8 //Current value, write clears
	CALIB Offset = 0xC //Calibration, read only
)

//Register window size in bytes
const SYSTICKLEN = 0x10

//Flags to CSR
const (
	CSR_ENABLE    uint32 = 1 << 0
	CSR_TICKINT   uint32 = 1 << 1 //not used, polling only
	CSR_CLKSOURCE uint32 = 1 << 2 //1=processor clock, 0=external reference
	CSR_COUNTFLAG uint32 = 1 << 16
)

//CALIB fields
const (
	CALIB_TENMS_MASK uint32 = 0x00FFFFFF
	CALIB_SKEW       uint32 = 1 << 30
	CALIB_NOREF      uint32 = 1 << 31
)

// Counter is 24 bits wide
const MAXRELOAD uint32 = 0x00FFFFFF

// Assumed processor clock and the reload value for one second with it.
// Counter period is reload+1 clocks.
const (
	DEFAULTCLOCKHZ  uint32 = 16000000
	OneSecondReload uint32 = DEFAULTCLOCKHZ - 1
)

//Debug console messages
const (
	GreetingMessage = "Hello, world!"
	TickMessage     = "Old school Blink!"
)
