package source

// IOC_OUT: userland reads from the kernel.
const iocDirRead uint32 = 0x40000000
