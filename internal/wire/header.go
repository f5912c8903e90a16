package wire

const HeaderSize = 12

// Header is the fixed 12-octet DNS message header (RFC 1035 §4.1.1).
type Header struct {
	ID      uint16
	QR      bool
	Opcode  uint8 // 4 bits
	AA      bool
	TC      bool
	RD      bool
	RA      bool
	Z       bool // reserved bit
	AD      bool // authenticated data
	CD      bool // checking disabled
	Rcode   uint8 // 4 bits
	QDCount uint16
	ANCount uint16
	NSCount uint16
	ARCount uint16
}

func DecodeHeader(msg []byte) (Header, error) {
	if len(msg) < HeaderSize {
		return Header{}, ErrShortBuffer
	}
	var h Header
	h.ID = uint16(msg[0])<<8 | uint16(msg[1])

	flags := uint16(msg[2])<<8 | uint16(msg[3])
	h.QR = flags&0x8000 != 0
	h.Opcode = uint8(flags >> 11 & 0x0F)
	h.AA = flags&0x0400 != 0
	h.TC = flags&0x0200 != 0
	h.RD = flags&0x0100 != 0
	h.RA = flags&0x0080 != 0
	h.Z = flags&0x0040 != 0
	h.AD = flags&0x0020 != 0
	h.CD = flags&0x0010 != 0
	h.Rcode = uint8(flags & 0x0F)

	h.QDCount = uint16(msg[4])<<8 | uint16(msg[5])
	h.ANCount = uint16(msg[6])<<8 | uint16(msg[7])
	h.NSCount = uint16(msg[8])<<8 | uint16(msg[9])
	h.ARCount = uint16(msg[10])<<8 | uint16(msg[11])
	return h, nil
}

func (h Header) Encode(buf []byte) []byte {
	buf = PutUint16(buf, h.ID)

	var flags uint16
	if h.QR {
		flags |= 0x8000
	}
	flags |= uint16(h.Opcode&0x0F) << 11
	if h.AA {
		flags |= 0x0400
	}
	if h.TC {
		flags |= 0x0200
	}
	if h.RD {
		flags |= 0x0100
	}
	if h.RA {
		flags |= 0x0080
	}
	if h.Z {
		flags |= 0x0040
	}
	if h.AD {
		flags |= 0x0020
	}
	if h.CD {
		flags |= 0x0010
	}
	flags |= uint16(h.Rcode & 0x0F)

	buf = PutUint16(buf, flags)
	buf = PutUint16(buf, h.QDCount)
	buf = PutUint16(buf, h.ANCount)
	buf = PutUint16(buf, h.NSCount)
	buf = PutUint16(buf, h.ARCount)
	return buf
}
