package source

// Event types from linux/input-event-codes.h. FreeBSD's evdev uses the
// same values.
const (
	evSyn uint16 = 0x00
	evKey uint16 = 0x01
	evRel uint16 = 0x02
	evAbs uint16 = 0x03
)

// EV_KEY values.
const (
	keyUp   int32 = 0
	keyDown int32 = 1
	keyHold int32 = 2
)

// btnMisc is the first button code (BTN_MISC). Codes below it are
// keyboard keys, codes from here up through the BTN_* range are buttons.
const btnMisc uint16 = 0x100

// Classify reports whether a raw event qualifies for rate measurement and
// its kind. Relative and absolute axis events qualify as motion; keyboard
// key press and release edges qualify as key events. Sync events, key
// autorepeat, and button clicks (BTN_* codes) do not qualify.
func Classify(etype, code uint16, value int32) (Kind, bool) {
	switch etype {
	case evRel, evAbs:
		return KindMotion, true
	case evKey:
		if code < btnMisc && (value == keyDown || value == keyUp) {
			return KindKey, true
		}
	}
	return 0, false
}
