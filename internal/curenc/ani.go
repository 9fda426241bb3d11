package curenc

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// aniHeaderFlagIcon marks that frame data is in icon (CUR) format
// rather than raw DIB, bit 0 of ANIHEADER.flags.
const aniHeaderFlagIcon = 1 << 0

// ANIInfo carries the optional RIFF INFO fields (title/author).
type ANIInfo struct {
	Title, Author string
}

// EncodeANI assembles an ANI container from an ordered list of
// per-frame CUR-formatted byte payloads and the animation's jiffies
// (1/60s units) per frame, per spec §4.5.
func EncodeANI(frameCUR [][]byte, jiffies uint32, info *ANIInfo) ([]byte, error) {
	if len(frameCUR) == 0 {
		return nil, fmt.Errorf("curenc: EncodeANI: no frames")
	}

	var body bytes.Buffer
	body.WriteString("ACON")

	if info != nil && (info.Title != "" || info.Author != "") {
		var listBody bytes.Buffer
		listBody.WriteString("INFO")
		if info.Title != "" {
			writeChunk(&listBody, "INAM", nullTerminated(info.Title))
		}
		if info.Author != "" {
			writeChunk(&listBody, "IART", nullTerminated(info.Author))
		}
		writeChunk(&body, "LIST", listBody.Bytes())
	}

	header := make([]byte, 36)
	binary.LittleEndian.PutUint32(header[0:4], 36) // cbSize
	binary.LittleEndian.PutUint32(header[4:8], uint32(len(frameCUR)))
	binary.LittleEndian.PutUint32(header[8:12], uint32(len(frameCUR))) // cSteps
	binary.LittleEndian.PutUint32(header[12:16], 0)                    // cx
	binary.LittleEndian.PutUint32(header[16:20], 0)                    // cy
	binary.LittleEndian.PutUint32(header[20:24], 0)                    // cBitCount
	binary.LittleEndian.PutUint32(header[24:28], 0)                    // cPlanes
	binary.LittleEndian.PutUint32(header[28:32], jiffies)
	binary.LittleEndian.PutUint32(header[32:36], aniHeaderFlagIcon)
	writeChunk(&body, "anih", header)

	var framBody bytes.Buffer
	framBody.WriteString("fram")
	for _, c := range frameCUR {
		writeChunk(&framBody, "icon", c)
	}
	writeChunk(&body, "LIST", framBody.Bytes())

	var out bytes.Buffer
	writeChunk(&out, "RIFF", body.Bytes())
	return out.Bytes(), nil
}

func nullTerminated(s string) []byte {
	return append([]byte(s), 0)
}

// writeChunk appends a RIFF chunk: a 4-byte id, a little-endian u32
// size, the data, and a zero pad byte if the size is odd (the pad is
// not counted in the size field).
func writeChunk(buf *bytes.Buffer, id string, data []byte) {
	buf.WriteString(id)
	writeU32(buf, uint32(len(data)))
	buf.Write(data)
	if len(data)%2 == 1 {
		buf.WriteByte(0)
	}
}
