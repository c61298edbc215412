package audio

import (
	"encoding/binary"
	"io"
	"os"
)

const wavHeaderSize = 44

// writeWAVHeader emits a 16-bit PCM RIFF header sized for dataLen bytes.
func writeWAVHeader(w io.Writer, dataLen int64) error {
	const bitsPerSample = 16
	byteRate := sampleRate * channels * (bitsPerSample / 8)
	blockAlign := channels * (bitsPerSample / 8)

	header := make([]byte, wavHeaderSize)
	copy(header[0:4], []byte("RIFF"))
	binary.LittleEndian.PutUint32(header[4:8], uint32(36+dataLen))
	copy(header[8:12], []byte("WAVE"))
	copy(header[12:16], []byte("fmt "))
	binary.LittleEndian.PutUint32(header[16:20], 16)
	binary.LittleEndian.PutUint16(header[20:22], 1) // PCM
	binary.LittleEndian.PutUint16(header[22:24], uint16(channels))
	binary.LittleEndian.PutUint32(header[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(header[28:32], uint32(byteRate))
	binary.LittleEndian.PutUint16(header[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(header[34:36], bitsPerSample)
	copy(header[36:40], []byte("data"))
	binary.LittleEndian.PutUint32(header[40:44], uint32(dataLen))

	_, err := w.Write(header)
	return err
}

// finalizeWAV patches the RIFF and data chunk sizes once capture is complete.
func finalizeWAV(file *os.File, dataLen int64) error {
	if err := file.Sync(); err != nil {
		return err
	}

	var sizes [4]byte
	binary.LittleEndian.PutUint32(sizes[:], uint32(36+dataLen))
	if _, err := file.WriteAt(sizes[:], 4); err != nil {
		return err
	}
	binary.LittleEndian.PutUint32(sizes[:], uint32(dataLen))
	if _, err := file.WriteAt(sizes[:], 40); err != nil {
		return err
	}
	return nil
}
