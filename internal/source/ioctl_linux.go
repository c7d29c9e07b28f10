package source

// _IOC_READ, pre-shifted into the direction field.
const iocDirRead uint32 = 2 << 30
