package tags

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	goflac "github.com/go-flac/go-flac"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
)

// ReadAudioInfo reads audio stream properties (duration, format, sample rate).
// This uses lighter-weight methods than full decoding where possible.
func ReadAudioInfo(path string) (*AudioInfo, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ExtMP3 && ext != ExtFLAC && ext != ExtWAV && ext != ExtOGG && ext != ExtOGA {
		return nil, fmt.Errorf("unsupported format: %s", ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch ext {
	case ExtMP3:
		return readMP3AudioInfo(f)
	case ExtFLAC:
		return readFLACStreamInfo(path)
	case ExtWAV:
		return readWAVAudioInfo(f)
	case ExtOGG, ExtOGA:
		return readVorbisAudioInfo(f)
	}

	return nil, fmt.Errorf("unsupported format: %s", ext)
}

// readMP3AudioInfo extracts audio info from an MP3 file. The decoder only
// scans frame headers here; no audio is rendered.
func readMP3AudioInfo(f *os.File) (*AudioInfo, error) {
	streamer, format, err := mp3.Decode(f)
	if err != nil {
		return nil, err
	}
	defer streamer.Close()

	info := &AudioInfo{
		Format:     "MP3",
		SampleRate: int(format.SampleRate),
		BitDepth:   format.Precision * 8,
	}
	if n := streamer.Len(); n > 0 {
		info.Duration = format.SampleRate.D(n)
	}
	return info, nil
}

// readWAVAudioInfo extracts audio info from a WAV header.
func readWAVAudioInfo(f *os.File) (*AudioInfo, error) {
	streamer, format, err := wav.Decode(f)
	if err != nil {
		return nil, err
	}
	defer streamer.Close()

	return &AudioInfo{
		Duration:   format.SampleRate.D(streamer.Len()),
		Format:     "WAV",
		SampleRate: int(format.SampleRate),
		BitDepth:   format.Precision * 8,
	}, nil
}

// readVorbisAudioInfo extracts audio info from an Ogg Vorbis file.
func readVorbisAudioInfo(f *os.File) (*AudioInfo, error) {
	streamer, format, err := vorbis.Decode(f)
	if err != nil {
		return nil, err
	}
	defer streamer.Close()

	info := &AudioInfo{
		Format:     "VORBIS",
		SampleRate: int(format.SampleRate),
		BitDepth:   format.Precision * 8,
	}
	if n := streamer.Len(); n > 0 {
		info.Duration = format.SampleRate.D(n)
	}
	return info, nil
}

// readFLACStreamInfo extracts audio info from FLAC streaminfo metadata.
func readFLACStreamInfo(path string) (*AudioInfo, error) {
	flacFile, err := goflac.ParseFile(path)
	if err != nil {
		// Some files carry a prepended ID3 tag the parser chokes on
		return readFLACWithBeep(path)
	}

	for _, meta := range flacFile.Meta {
		if meta.Type != goflac.StreamInfo || len(meta.Data) < 18 {
			continue
		}
		data := meta.Data

		// Sample rate: 20 bits starting at byte 10.
		sampleRate := int(data[10])<<12 | int(data[11])<<4 | int(data[12])>>4
		// Bits per sample: 5 bits straddling bytes 12-13, stored minus one.
		bitsPerSample := (int(data[12])&0x01)<<4 | int(data[13])>>4 + 1
		// Total samples: 36 bits, low nibble of byte 13 then bytes 14-17.
		totalSamples := int64(data[13]&0x0F)<<32 | int64(data[14])<<24 | int64(data[15])<<16 | int64(data[16])<<8 | int64(data[17])

		duration := time.Duration(0)
		if sampleRate > 0 {
			duration = time.Duration(float64(totalSamples) / float64(sampleRate) * float64(time.Second))
		}

		return &AudioInfo{
			Duration:   duration,
			Format:     "FLAC",
			SampleRate: sampleRate,
			BitDepth:   bitsPerSample,
		}, nil
	}

	// No streaminfo block, let the decoder work it out
	return readFLACWithBeep(path)
}

// readFLACWithBeep uses beep's FLAC decoder as fallback.
func readFLACWithBeep(path string) (*AudioInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	// Skip ID3v2 if present
	if err := skipID3v2(f); err != nil {
		return nil, err
	}

	streamer, format, err := flac.Decode(f)
	if err != nil {
		return nil, err
	}
	defer streamer.Close()

	return &AudioInfo{
		Duration:   format.SampleRate.D(streamer.Len()),
		Format:     "FLAC",
		SampleRate: int(format.SampleRate),
		BitDepth:   format.Precision * 8,
	}, nil
}

// skipID3v2 skips an ID3v2 tag if present at the beginning of the file.
func skipID3v2(r io.ReadSeeker) error {
	header := make([]byte, 10)
	n, err := r.Read(header)
	if err != nil {
		return err
	}
	if n < 10 {
		_, err = r.Seek(0, io.SeekStart)
		return err
	}

	if string(header[0:3]) != id3Magic {
		_, err = r.Seek(0, io.SeekStart)
		return err
	}

	// ID3v2 size is stored as a syncsafe integer in bytes 6-9
	size := int64(header[6])<<21 | int64(header[7])<<14 | int64(header[8])<<7 | int64(header[9])
	_, err = r.Seek(10+size, io.SeekStart)
	return err
}
