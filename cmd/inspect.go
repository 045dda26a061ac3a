package cmd

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"os"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/fraster-cli/internal/hasher"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.png>",
	Short: "List the chunk layout of a PNG file",
	Long: `Walks the chunk stream of a PNG file, printing each chunk's type,
length and CRC status, plus a content hash of the whole file. Useful for
checking which metadata chunks an encode actually produced.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var pngSig = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func runInspect(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read %s: %w", args[0], err)
	}
	if len(data) < len(pngSig) || !bytes.Equal(data[:len(pngSig)], pngSig) {
		return fmt.Errorf("%s: not a PNG file", args[0])
	}

	fmt.Printf("%s  %s  xxh64:%s\n", args[0], formatBytes(int64(len(data))),
		hasher.ContentHash(data, 16))

	off := len(pngSig)
	for off+12 <= len(data) {
		length := int(binary.BigEndian.Uint32(data[off:]))
		if off+12+length > len(data) {
			return fmt.Errorf("truncated chunk at offset %d", off)
		}
		typ := string(data[off+4 : off+8])
		body := data[off+4 : off+8+length]
		want := binary.BigEndian.Uint32(data[off+8+length:])
		status := "ok"
		if crc32.ChecksumIEEE(body) != want {
			status = "BAD CRC"
		}
		fmt.Printf("  %s  %7d bytes  crc %s\n", typ, length, status)
		off += 12 + length
		if typ == "IEND" {
			break
		}
	}
	if off < len(data) {
		fmt.Printf("  %d trailing bytes\n", len(data)-off)
	}
	return nil
}
