// Package loader handles program image file loading operations.
package loader

import (
	"bytes"
	"fmt"
	"os"

	"github.com/retroenv/retrogolib/arch/system/nes/cartridge"
)

// Loader handles loading CHIP-8 program images from disk.
type Loader struct{}

// New creates a new program image loader.
func New() *Loader {
	return &Loader{}
}

// Load reads a program image file. CHIP-8 images are raw binary files
// without any header, so the whole file content is the program image.
func (l *Loader) Load(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}

	cart, err := cartridge.LoadBuffer(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("loading program image: %w", err)
	}

	// LoadBuffer pads the buffer to the minimum PRG bank size, the
	// padding is not part of the program image
	prg := cart.PRG
	if len(prg) > len(data) {
		prg = prg[:len(data)]
	}
	return prg, nil
}
