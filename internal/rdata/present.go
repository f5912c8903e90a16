package rdata

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dnsscience/dnsq/internal/catalog"
	"github.com/dnsscience/dnsq/internal/wire"
)

// String renders rr in a terse presentation form. Unknown types render as
// "\# <len> <hex>" per RFC 3597; known types render their schema fields
// space-separated in declaration order. This is a best-effort renderer,
// not a parser: spec §9 notes presentation-to-wire parity for LOC/CERT/CAA
// is out of scope, and this module does not attempt it.
func (rr RR) String() string {
	if rr.Raw != nil {
		return fmt.Sprintf("\\# %d %s", len(rr.Raw), wire.HexString(rr.Raw))
	}
	parts := make([]string, 0, len(rr.Fields))
	for _, v := range rr.Fields {
		parts = append(parts, v.String())
	}
	return strings.Join(parts, " ")
}

func (v Value) String() string {
	switch v.Kind {
	case catalog.KindIP4, catalog.KindIP6:
		return v.IP.String()
	case catalog.KindName:
		return v.Name.String()
	case catalog.KindU8:
		return strconv.Itoa(int(v.U8))
	case catalog.KindU16:
		return strconv.Itoa(int(v.U16))
	case catalog.KindU32, catalog.KindTime:
		return strconv.FormatUint(uint64(v.U32), 10)
	case catalog.KindQType:
		return v.QType.String()
	case catalog.KindString:
		return strconv.Quote(string(v.Bytes))
	case catalog.KindText:
		parts := make([]string, len(v.Texts))
		for i, t := range v.Texts {
			parts[i] = strconv.Quote(string(t))
		}
		return strings.Join(parts, " ")
	case catalog.KindBase64:
		return wire.Base64String(v.Bytes)
	case catalog.KindHex, catalog.KindRemainingBytes:
		return wire.HexString(v.Bytes)
	case catalog.KindSalt:
		if len(v.Bytes) == 0 {
			return "-"
		}
		return wire.HexString(v.Bytes)
	case catalog.KindHash:
		return wire.Base32Hash(v.Bytes)
	case catalog.KindOptions:
		parts := make([]string, len(v.Options))
		for i, o := range v.Options {
			parts[i] = fmt.Sprintf("%s=%s", o.Code, wire.HexString(o.Data))
		}
		return strings.Join(parts, " ")
	case catalog.KindTypes:
		parts := make([]string, len(v.Types))
		for i, t := range v.Types {
			parts[i] = t.String()
		}
		return strings.Join(parts, " ")
	case catalog.KindProperty:
		return fmt.Sprintf("%d %s %q", v.U8, v.Property.Tag, v.Property.Value)
	}
	return ""
}
