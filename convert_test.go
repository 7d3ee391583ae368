package ftex

import (
	"bytes"
	"errors"
	"slices"
	"testing"

	"github.com/woozymasta/bcn"
)

// testDDS builds a DDS image with a full pixel buffer for the mip chain.
func testDDS(t testing.TB, format PixelFormat, width, height, mipCount int) *DDS {
	t.Helper()

	header, err := makeDDSHeader(width, height, mipCount, format)
	if err != nil {
		t.Fatalf("makeDDSHeader: %v", err)
	}
	sizes, err := mipLevelSizes(format, width, height, mipCount)
	if err != nil {
		t.Fatalf("mipLevelSizes: %v", err)
	}

	total := 0
	for _, s := range sizes {
		total += s
	}

	return &DDS{Header: header, Data: patternBytes(total, width+height)}
}

// encodeTexture serializes a container and its payload files into memory.
func encodeTexture(t testing.TB, c *Container) ([]byte, map[int][]byte) {
	t.Helper()

	var main bytes.Buffer
	if err := c.Write(&main); err != nil {
		t.Fatalf("Container.Write: %v", err)
	}

	payloads := make(map[int][]byte)
	for _, f := range c.PayloadFiles() {
		data, err := f.Bytes()
		if err != nil {
			t.Fatalf("PayloadFile.Bytes: %v", err)
		}
		payloads[f.Number] = data
	}

	return main.Bytes(), payloads
}

// decodeTexture parses a main file and its payload files from memory.
func decodeTexture(t testing.TB, main []byte, payloads map[int][]byte) *Container {
	t.Helper()

	c, err := ReadContainer(bytes.NewReader(main))
	if err != nil {
		t.Fatalf("ReadContainer: %v", err)
	}
	for _, n := range c.PayloadFileNumbers() {
		if err := c.ReadPayloadFile(n, bytes.NewReader(payloads[n])); err != nil {
			t.Fatalf("ReadPayloadFile(%d): %v", n, err)
		}
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	return c
}

func TestPixelFormatMappingBijection(t *testing.T) {
	t.Parallel()

	for _, code := range []PixelFormat{PixelFormatARGB8, PixelFormatL8, PixelFormatDXT1, PixelFormatDXT3, PixelFormatDXT5} {
		code := code
		t.Run(code.String(), func(t *testing.T) {
			t.Parallel()

			pf, err := code.DDSPixelFormat()
			if err != nil {
				t.Fatalf("DDSPixelFormat: %v", err)
			}
			if code.BlockCompressed() != ((pf.Flags & bcn.DDSPFFourCC) != 0) {
				t.Fatalf("BlockCompressed = %v for flags 0x%x", code.BlockCompressed(), pf.Flags)
			}

			got, err := PixelFormatFromDDS(pf)
			if err != nil {
				t.Fatalf("PixelFormatFromDDS: %v", err)
			}
			if got != code {
				t.Fatalf("round trip = %s, want %s", got, code)
			}

			again, err := got.DDSPixelFormat()
			if err != nil {
				t.Fatalf("DDSPixelFormat: %v", err)
			}
			if again != pf {
				t.Fatalf("descriptor round trip = %+v, want %+v", again, pf)
			}
		})
	}
}

func TestPixelFormatUnsupported(t *testing.T) {
	t.Parallel()

	if _, err := PixelFormat(5).DDSPixelFormat(); !errors.Is(err, ErrUnsupportedPixelFormat) {
		t.Fatalf("expected ErrUnsupportedPixelFormat, got %v", err)
	}
	if _, err := PixelFormat(-1).DDSPixelFormat(); !errors.Is(err, ErrUnsupportedPixelFormat) {
		t.Fatalf("expected ErrUnsupportedPixelFormat, got %v", err)
	}

	tests := []struct {
		name string
		pf   bcn.DDSPixelFormat
	}{
		{name: "ati1", pf: bcn.DDSPixelFormat{Flags: bcn.DDSPFFourCC, FourCC: makeFourCC('A', 'T', 'I', '1')}},
		{name: "dxt2", pf: bcn.DDSPixelFormat{Flags: bcn.DDSPFFourCC, FourCC: makeFourCC('D', 'X', 'T', '2')}},
		{name: "rgba8", pf: bcn.DDSPixelFormat{
			Flags:       bcn.DDSPFRGB | bcn.DDSPFAlphaPixels,
			RGBBitCount: 32,
			RBitMask:    0x000000ff,
			GBitMask:    0x0000ff00,
			BBitMask:    0x00ff0000,
			ABitMask:    0xff000000,
		}},
		{name: "l16", pf: bcn.DDSPixelFormat{Flags: bcn.DDSPFLuminance, RGBBitCount: 16}},
		{name: "empty", pf: bcn.DDSPixelFormat{}},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if _, err := PixelFormatFromDDS(tc.pf); !errors.Is(err, ErrUnsupportedPixelFormat) {
				t.Fatalf("expected ErrUnsupportedPixelFormat, got %v", err)
			}
		})
	}
}

func TestImageSizeTable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		format PixelFormat
		w      int
		h      int
		want   int
	}{
		{name: "dxt1-4x4", format: PixelFormatDXT1, w: 4, h: 4, want: 8},
		{name: "dxt1-256x128", format: PixelFormatDXT1, w: 256, h: 128, want: 64 * 32 * 8},
		{name: "dxt3-4x4", format: PixelFormatDXT3, w: 4, h: 4, want: 16},
		{name: "dxt5-256x256", format: PixelFormatDXT5, w: 256, h: 256, want: 65536},
		{name: "argb8-64x64", format: PixelFormatARGB8, w: 64, h: 64, want: 16384},
		{name: "l8-8x4", format: PixelFormatL8, w: 8, h: 4, want: 32},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := tc.format.imageSize(tc.w, tc.h)
			if err != nil {
				t.Fatalf("imageSize: %v", err)
			}
			if got != tc.want {
				t.Fatalf("imageSize(%s,%d,%d) = %d, want %d", tc.format, tc.w, tc.h, got, tc.want)
			}
		})
	}
}

func TestMipLevelSizesClampToBlock(t *testing.T) {
	t.Parallel()

	got, err := mipLevelSizes(PixelFormatDXT5, 256, 256, 9)
	if err != nil {
		t.Fatalf("mipLevelSizes: %v", err)
	}
	want := []int{65536, 16384, 4096, 1024, 256, 64, 16, 16, 16}
	if !slices.Equal(got, want) {
		t.Fatalf("sizes = %v, want %v", got, want)
	}

	// uncompressed levels are clamped to 4x4 as well
	got, err = mipLevelSizes(PixelFormatARGB8, 16, 8, 4)
	if err != nil {
		t.Fatalf("mipLevelSizes: %v", err)
	}
	want = []int{16 * 8 * 4, 8 * 4 * 4, 4 * 4 * 4, 4 * 4 * 4}
	if !slices.Equal(got, want) {
		t.Fatalf("sizes = %v, want %v", got, want)
	}
}

// Fixtures below depend on DefaultTierThresholds, which approximate the
// engine's tiering and are not ground truth.
func TestAssignPayloadFiles(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		sizes []int
		want  []int
	}{
		{name: "single-large", sizes: []int{4 << 20}, want: []int{1}},
		{name: "dxt5-256", sizes: []int{65536, 16384, 4096, 1024, 256, 64, 16, 16, 16}, want: []int{2, 1, 1, 1, 1, 1, 1, 1, 1}},
		{name: "dxt5-2048", sizes: []int{4194304, 1048576, 262144, 65536, 16384, 4096, 1024, 256, 64, 16, 16, 16}, want: []int{5, 4, 3, 2, 1, 1, 1, 1, 1, 1, 1, 1}},
		{name: "ties-cross-threshold", sizes: []int{21000, 21000, 21000}, want: []int{2, 2, 1}},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := assignPayloadFiles(tc.sizes, DefaultTierThresholds)
			if !slices.Equal(got, tc.want) {
				t.Fatalf("assignPayloadFiles(%v) = %v, want %v", tc.sizes, got, tc.want)
			}
		})
	}
}

func TestAssignPayloadFilesMonotonic(t *testing.T) {
	t.Parallel()

	for _, format := range []PixelFormat{PixelFormatARGB8, PixelFormatL8, PixelFormatDXT1, PixelFormatDXT5} {
		for _, dims := range [][2]int{{4096, 4096}, {2048, 512}, {128, 1024}, {64, 64}} {
			sizes, err := mipLevelSizes(format, dims[0], dims[1], 12)
			if err != nil {
				t.Fatalf("mipLevelSizes: %v", err)
			}

			numbers := assignPayloadFiles(sizes, DefaultTierThresholds)
			for i := 1; i < len(numbers); i++ {
				if numbers[i] > numbers[i-1] {
					t.Fatalf("%s %v: file numbers increase with level: %v", format, dims, numbers)
				}
			}
		}
	}
}

func TestTierThresholdsOverride(t *testing.T) {
	t.Parallel()

	d := testDDS(t, PixelFormatDXT1, 64, 64, 5)

	c, err := FromDDS(d, &ConvertOptions{TierThresholds: []int{100}})
	if err != nil {
		t.Fatalf("FromDDS: %v", err)
	}
	got := make([]int, len(c.Mips))
	for i, m := range c.Mips {
		got[i] = m.FileNumber
	}
	// sizes 2048, 512, 128, 32, 8
	want := []int{2, 2, 2, 1, 1}
	if !slices.Equal(got, want) {
		t.Fatalf("file numbers = %v, want %v", got, want)
	}

	_, err = FromDDS(d, &ConvertOptions{TierThresholds: []int{100, 100}})
	if !errors.Is(err, ErrInvalidTierThresholds) {
		t.Fatalf("expected ErrInvalidTierThresholds, got %v", err)
	}
}

func TestFromDDSUncompressedSingleMip(t *testing.T) {
	t.Parallel()

	d := testDDS(t, PixelFormatARGB8, 64, 64, 1)

	c, err := FromDDS(d, nil)
	if err != nil {
		t.Fatalf("FromDDS: %v", err)
	}

	if len(c.Mips) != 1 || c.PayloadFileCount != 1 {
		t.Fatalf("mips=%d files=%d, want 1/1", len(c.Mips), c.PayloadFileCount)
	}
	f, ok := c.PayloadFile(1)
	if !ok {
		t.Fatalf("payload file 1 missing")
	}
	if len(f.Levels) != 1 || len(f.Levels[0].Chunks) != 1 {
		t.Fatalf("unexpected layout: %d levels", len(f.Levels))
	}
	if size := f.Levels[0].Chunks[0].DecompressedSize; size != 64*64*4 {
		t.Fatalf("chunk size = %d, want %d", size, 64*64*4)
	}

	want := MipDescriptor{
		Offset:           0,
		DecompressedSize: 16384,
		CompressedSize:   16384 + IndexRecordSize,
		Index:            0,
		FileNumber:       1,
		ChunkCount:       1,
	}
	if c.Mips[0] != want {
		t.Fatalf("descriptor = %+v, want %+v", c.Mips[0], want)
	}

	back, err := ToDDS(c, nil)
	if err != nil {
		t.Fatalf("ToDDS: %v", err)
	}
	if !bytes.Equal(back.Data, d.Data) {
		t.Fatalf("DDS pixel data mismatch")
	}
	if back.Header.Width != 64 || back.Header.Height != 64 || back.MipCount() != 1 {
		t.Fatalf("unexpected DDS geometry %dx%d mips=%d", back.Header.Width, back.Header.Height, back.MipCount())
	}
}

func TestFromDDSDXT5FullChain(t *testing.T) {
	t.Parallel()

	d := testDDS(t, PixelFormatDXT5, 256, 256, 9)

	c, err := FromDDS(d, nil)
	if err != nil {
		t.Fatalf("FromDDS: %v", err)
	}

	files := c.PayloadFiles()
	if len(files) != 2 || files[0].Number != 2 || files[1].Number != 1 {
		t.Fatalf("payload files in unexpected order")
	}

	// file 2: mip 0 alone; file 1: mips 1..8 stored smallest first
	wantOffsets := []int{0, 5544, 1440, 408, 144, 72, 48, 24, 0}
	wantChunks := []int{3, 1, 1, 1, 1, 1, 1, 1, 1}
	wantFiles := []int{2, 1, 1, 1, 1, 1, 1, 1, 1}
	for i, m := range c.Mips {
		if m.Index != i || m.Offset != wantOffsets[i] || m.ChunkCount != wantChunks[i] || m.FileNumber != wantFiles[i] {
			t.Fatalf("mip %d descriptor = %+v", i, m)
		}
		if m.CompressedSize != m.DecompressedSize+m.ChunkCount*IndexRecordSize {
			t.Fatalf("mip %d compressed size = %d", i, m.CompressedSize)
		}
	}

	back, err := ToDDS(c, nil)
	if err != nil {
		t.Fatalf("ToDDS: %v", err)
	}
	if !bytes.Equal(back.Data, d.Data) {
		t.Fatalf("DDS pixel data mismatch")
	}
	if back.MipCount() != 9 {
		t.Fatalf("MipCount = %d, want 9", back.MipCount())
	}
}

func TestDescriptorConsistency(t *testing.T) {
	t.Parallel()

	d := testDDS(t, PixelFormatARGB8, 512, 256, 8)
	c, err := FromDDS(d, nil)
	if err != nil {
		t.Fatalf("FromDDS: %v", err)
	}

	walked := 0
	for _, f := range c.PayloadFiles() {
		for _, level := range f.Levels {
			m := c.Mips[walked]
			sum := 0
			for _, chunk := range level.Chunks {
				if chunk.DecompressedSize <= 0 || chunk.DecompressedSize > MaxChunkSize {
					t.Fatalf("mip %d chunk size %d out of range", walked, chunk.DecompressedSize)
				}
				sum += chunk.DecompressedSize
			}
			if m.DecompressedSize != sum || m.ChunkCount != len(level.Chunks) {
				t.Fatalf("mip %d descriptor %+v, chunks sum %d count %d", walked, m, sum, len(level.Chunks))
			}
			if want := (m.DecompressedSize + MaxChunkSize - 1) / MaxChunkSize; m.ChunkCount != want {
				t.Fatalf("mip %d chunk count = %d, want %d", walked, m.ChunkCount, want)
			}
			if m.FileNumber != f.Number {
				t.Fatalf("mip %d file number = %d, want %d", walked, m.FileNumber, f.Number)
			}
			walked++
		}
	}
	if walked != len(c.Mips) {
		t.Fatalf("walked %d levels, have %d descriptors", walked, len(c.Mips))
	}
}

func TestSerializeRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		format PixelFormat
		w, h   int
		mips   int
		opts   *ConvertOptions
	}{
		{name: "argb8-1mip", format: PixelFormatARGB8, w: 64, h: 64, mips: 1},
		{name: "l8-chain", format: PixelFormatL8, w: 256, h: 128, mips: 7},
		{name: "dxt1-chain", format: PixelFormatDXT1, w: 1024, h: 1024, mips: 11},
		{name: "dxt5-chain", format: PixelFormatDXT5, w: 256, h: 256, mips: 9},
		{name: "dxt5-zlib", format: PixelFormatDXT5, w: 512, h: 512, mips: 10, opts: &ConvertOptions{Compress: true}},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			d := testDDS(t, tc.format, tc.w, tc.h, tc.mips)
			c, err := FromDDS(d, tc.opts)
			if err != nil {
				t.Fatalf("FromDDS: %v", err)
			}

			main, payloads := encodeTexture(t, c)
			decoded := decodeTexture(t, main, payloads)
			main2, payloads2 := encodeTexture(t, decoded)

			if !bytes.Equal(main, main2) {
				t.Fatalf("main file bytes differ after round trip")
			}
			if len(payloads) != len(payloads2) {
				t.Fatalf("payload file count %d, want %d", len(payloads2), len(payloads))
			}
			for n, data := range payloads {
				if !bytes.Equal(data, payloads2[n]) {
					t.Fatalf("payload file %d bytes differ after round trip", n)
				}
			}

			// descriptors stay valid after a recompute of a parsed texture
			before := slices.Clone(decoded.Mips)
			if err := decoded.UpdateOffsets(); err != nil {
				t.Fatalf("UpdateOffsets: %v", err)
			}
			if !slices.Equal(before, decoded.Mips) {
				t.Fatalf("UpdateOffsets changed a canonical descriptor table")
			}

			back, err := ToDDS(decoded, tc.opts)
			if err != nil {
				t.Fatalf("ToDDS: %v", err)
			}
			if !bytes.Equal(back.Data, d.Data) {
				t.Fatalf("DDS pixel data mismatch")
			}
		})
	}
}

func TestFromDDSErrors(t *testing.T) {
	t.Parallel()

	short := testDDS(t, PixelFormatDXT1, 64, 64, 4)
	short.Data = short.Data[:len(short.Data)-1]

	wide := testDDS(t, PixelFormatL8, 4, 4, 1)
	wide.Header.Width = 40000

	dxt3 := testDDS(t, PixelFormatDXT3, 16, 16, 1)

	tests := []struct {
		name    string
		d       *DDS
		opts    *ConvertOptions
		wantErr error
	}{
		{name: "short-data", d: short, wantErr: ErrTruncatedStream},
		{name: "width-overflow", d: wide, wantErr: ErrSizeOverflow},
		{name: "strict-dxt3", d: dxt3, opts: &ConvertOptions{StrictFormats: true}, wantErr: ErrUnsupportedPixelFormat},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := FromDDS(tc.d, tc.opts)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected error %v, got %v", tc.wantErr, err)
			}
		})
	}

	if _, err := FromDDS(dxt3, nil); err != nil {
		t.Fatalf("FromDDS DXT3 without StrictFormats: %v", err)
	}
}

func TestFlattenOrder(t *testing.T) {
	t.Parallel()

	files := []*PayloadFile{{Number: 1}, {Number: 3}, {Number: 2}, {Number: 5}}
	got := flattenOrder(files)

	numbers := make([]int, len(got))
	for i, f := range got {
		numbers[i] = f.Number
	}
	if !slices.Equal(numbers, []int{5, 3, 2, 1}) {
		t.Fatalf("flattenOrder = %v, want [5 3 2 1]", numbers)
	}
	if files[0].Number != 1 {
		t.Fatalf("flattenOrder modified its input")
	}

	if order := storageOrder(4); !slices.Equal(order, []int{3, 2, 1, 0}) {
		t.Fatalf("storageOrder(4) = %v", order)
	}
}

func TestToDDSHeader(t *testing.T) {
	t.Parallel()

	d := testDDS(t, PixelFormatARGB8, 32, 16, 3)
	c, err := FromDDS(d, nil)
	if err != nil {
		t.Fatalf("FromDDS: %v", err)
	}
	back, err := ToDDS(c, nil)
	if err != nil {
		t.Fatalf("ToDDS: %v", err)
	}

	h := back.Header
	if h.Size != bcn.DDSHeaderSize || h.Depth != 1 || h.MipMapCount != 3 {
		t.Fatalf("unexpected header %+v", h)
	}
	if (h.Flags & ddsFlagDepth) == 0 {
		t.Fatalf("A8R8G8B8 header lacks the depth flag")
	}
	if (h.Caps & bcn.DDSCapsMipmap) == 0 {
		t.Fatalf("header lacks mipmap caps")
	}
	if h.PitchOrLinearSize != 32*4 {
		t.Fatalf("pitch = %d, want %d", h.PitchOrLinearSize, 32*4)
	}
	if got, err := PixelFormatFromDDS(h.PixelFormat); err != nil || got != PixelFormatARGB8 {
		t.Fatalf("pixel format = %v, %v", got, err)
	}
}
