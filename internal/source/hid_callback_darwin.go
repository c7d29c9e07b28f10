package source

/*
#include <IOKit/hid/IOHIDLib.h>

uint32_t evhzValueUsagePage(IOHIDValueRef value);
*/
import "C"

import "unsafe"

//export evhzHIDValueCallback
func evhzHIDValueCallback(context unsafe.Pointer, result C.IOReturn, sender unsafe.Pointer, value C.IOHIDValueRef) {
	activeMu.Lock()
	s := activeHID
	activeMu.Unlock()
	if s == nil {
		return
	}
	s.handleValue(uint32(C.evhzValueUsagePage(value)))
}
