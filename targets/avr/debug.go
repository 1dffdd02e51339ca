//go:build avr

package main

import (
	"machine"
)

var debugUART *machine.UART

// InitDebugUART configures the USB serial bridge on D0/D1
func InitDebugUART() {
	debugUART = machine.Serial
	debugUART.Configure(machine.UARTConfig{BaudRate: 115200})
}

// DebugPrintln writes a string to the debug UART with newline
func DebugPrintln(s string) {
	if debugUART == nil {
		return
	}
	debugUART.Write([]byte(s))
	debugUART.Write([]byte("\r\n"))
}
