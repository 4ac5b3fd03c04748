//go:build !tinygo

package systikki

import (
	"fmt"
	"sync"
	"sync/atomic"
	"unsafe"

	"golang.org/x/sys/unix"
)

var memlock sync.Mutex //There is only one hardware, make global

/*
MappedBank is SysTick window mapped from /dev/mem or from a plain file.
A file works as shared register memory for emulators and tests.
Loads and stores are atomic 32bit accesses, compiler can not drop or merge them.
*/
type MappedBank struct {
	mem8  []uint8
	regs  []uint32 //SysTick window only
	base  uint32
	close sync.Once
}

// OpenMapped maps page containing base from path. base is the physical
// (or file) address of SysTick, normally SYSTICKBASE
func OpenMapped(path string, base uint32) (*MappedBank, error) {
	if base%4 != 0 {
		return nil, fmt.Errorf("base %#x not word aligned: %w", base, ErrBadOffset)
	}
	pagesize := uint32(unix.Getpagesize())
	pagebase := base &^ (pagesize - 1)
	inpage := base - pagebase
	if pagesize < inpage+SYSTICKLEN {
		return nil, fmt.Errorf("base %#x: window crosses page: %w", base, ErrBadOffset)
	}

	//unix.Open allows O_SYNC, needed for uncached /dev/mem mapping
	fd, err := unix.Open(path, unix.O_RDWR|unix.O_SYNC|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	// FD can be closed after memory mapping
	defer unix.Close(fd)

	memlock.Lock()
	defer memlock.Unlock()

	mem8, err := unix.Mmap(
		fd,
		int64(pagebase),
		int(pagesize),
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("mmap %s at %#x: %w", path, pagebase, err)
	}

	// View the SysTick part of the page as []uint32
	words := (*uint32)(unsafe.Pointer(&mem8[inpage]))
	return &MappedBank{
		mem8: mem8,
		regs: unsafe.Slice(words, SYSTICKLEN/4),
		base: base,
	}, nil
}

func (p *MappedBank) Base() uint32 {
	return p.base
}

func (p *MappedBank) word(off Offset) *uint32 {
	if !off.Valid() {
		panic(ErrBadOffset)
	}
	return &p.regs[off/4]
}

func (p *MappedBank) Load32(off Offset) uint32 {
	return atomic.LoadUint32(p.word(off))
}

func (p *MappedBank) Store32(off Offset, value uint32) {
	atomic.StoreUint32(p.word(off), value)
}

// Close unmaps memory. Bank must not be used after
func (p *MappedBank) Close() error {
	var err error
	p.close.Do(func() {
		memlock.Lock()
		defer memlock.Unlock()
		p.regs = nil
		err = unix.Munmap(p.mem8)
	})
	return err
}
