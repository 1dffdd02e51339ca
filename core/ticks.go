package core

// TicksPerSecond is the rate of the shared tick callback. It divides both
// tick sources evenly: the RP2040 PIO clock divider is a whole 6250 at
// 125MHz, and AVR Timer1 counts 100 per tick at 16MHz with a /8 prescaler.
const TicksPerSecond = 20000
