// Package catalog is the DNS record-type, class, opcode and rcode
// enumeration, plus the per-type RDATA schema that internal/rdata drives
// off of. It plays the role internal/packet/parser.go's header constants
// played in the ancestor server, generalized into the tagged-variant
// schema design.md recommends over a string-interpreter.
package catalog

import "fmt"

// Type is a DNS RR TYPE or QTYPE code.
type Type uint16

const (
	TypeNone Type = 0
	TypeA    Type = 1
	TypeNS   Type = 2
	TypeCNAME Type = 5
	TypeSOA  Type = 6
	TypePTR  Type = 12
	TypeHINFO Type = 13
	TypeMX   Type = 15
	TypeTXT  Type = 16
	TypeRP   Type = 17
	TypeAFSDB Type = 18
	TypeSIG  Type = 24
	TypeKEY  Type = 25
	TypeAAAA Type = 28
	TypeLOC  Type = 29
	TypeSRV  Type = 33
	TypeNAPTR Type = 35
	TypeCERT Type = 37
	TypeDNAME Type = 39
	TypeOPT  Type = 41
	TypeDS   Type = 43
	TypeSSHFP Type = 44
	TypeRRSIG Type = 46
	TypeNSEC Type = 47
	TypeDNSKEY Type = 48
	TypeNSEC3 Type = 50
	TypeNSEC3PARAM Type = 51
	TypeTLSA Type = 52
	TypeOPENPGPKEY Type = 61
	TypeCSYNC Type = 62
	TypeCAA  Type = 257

	// Query-only meta-types (spec §6).
	TypeAXFR Type = 252
	TypeANY  Type = 255
)

var typeNames = map[Type]string{
	TypeA: "A", TypeNS: "NS", TypeCNAME: "CNAME", TypeSOA: "SOA",
	TypePTR: "PTR", TypeHINFO: "HINFO", TypeMX: "MX", TypeTXT: "TXT",
	TypeRP: "RP", TypeAFSDB: "AFSDB", TypeSIG: "SIG", TypeKEY: "KEY",
	TypeAAAA: "AAAA", TypeLOC: "LOC", TypeSRV: "SRV", TypeNAPTR: "NAPTR",
	TypeCERT: "CERT", TypeDNAME: "DNAME", TypeOPT: "OPT", TypeDS: "DS",
	TypeSSHFP: "SSHFP", TypeRRSIG: "RRSIG", TypeNSEC: "NSEC",
	TypeDNSKEY: "DNSKEY", TypeNSEC3: "NSEC3", TypeNSEC3PARAM: "NSEC3PARAM",
	TypeTLSA: "TLSA", TypeOPENPGPKEY: "OPENPGPKEY", TypeCSYNC: "CSYNC",
	TypeCAA: "CAA", TypeAXFR: "AXFR", TypeANY: "ANY",
}

var nameToType = func() map[string]Type {
	m := make(map[string]Type, len(typeNames)+1)
	for t, s := range typeNames {
		m[s] = t
	}
	m["*"] = TypeANY
	return m
}()

func (t Type) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("TYPE%d", uint16(t))
}

// ParseType looks up a qtype mnemonic, including the meta-types ANY/"*"
// and AXFR (which callers must reject per spec §6).
func ParseType(s string) (Type, error) {
	if t, ok := nameToType[s]; ok {
		return t, nil
	}
	return 0, fmt.Errorf("catalog: unknown qtype mnemonic %q", s)
}

// Class is a DNS CLASS or QCLASS code.
type Class uint16

const (
	ClassIN  Class = 1
	ClassCH  Class = 3
	ClassHS  Class = 4
	ClassANY Class = 255
)

var className = map[Class]string{ClassIN: "IN", ClassCH: "CH", ClassHS: "HS", ClassANY: "ANY"}

func (c Class) String() string {
	if s, ok := className[c]; ok {
		return s
	}
	return fmt.Sprintf("CLASS%d", uint16(c))
}

// Opcode is the header OPCODE field.
type Opcode uint8

const (
	OpcodeQuery  Opcode = 0
	OpcodeIQuery Opcode = 1
	OpcodeStatus Opcode = 2
	OpcodeNotify Opcode = 4
	OpcodeUpdate Opcode = 5
)

func (o Opcode) String() string {
	switch o {
	case OpcodeQuery:
		return "QUERY"
	case OpcodeIQuery:
		return "IQUERY"
	case OpcodeStatus:
		return "STATUS"
	case OpcodeNotify:
		return "NOTIFY"
	case OpcodeUpdate:
		return "UPDATE"
	default:
		return fmt.Sprintf("OPCODE%d", uint8(o))
	}
}

// Rcode is the response code, combining the header's 4-bit field with the
// EDNS extended-rcode high bits (RFC 6891 §6.1.3).
type Rcode uint16

const (
	RcodeNoError  Rcode = 0
	RcodeFormErr  Rcode = 1
	RcodeServFail Rcode = 2
	RcodeNXDomain Rcode = 3
	RcodeNotImp   Rcode = 4
	RcodeRefused  Rcode = 5
	RcodeYXDomain Rcode = 6
	RcodeYXRRSet  Rcode = 7
	RcodeNXRRSet  Rcode = 8
	RcodeNotAuth  Rcode = 9
	RcodeNotZone  Rcode = 10
	RcodeBadVers  Rcode = 16
	RcodeBadCookie Rcode = 23
)

var rcodeNames = map[Rcode]string{
	RcodeNoError: "NOERROR", RcodeFormErr: "FORMERR", RcodeServFail: "SERVFAIL",
	RcodeNXDomain: "NXDOMAIN", RcodeNotImp: "NOTIMP", RcodeRefused: "REFUSED",
	RcodeYXDomain: "YXDOMAIN", RcodeYXRRSet: "YXRRSET", RcodeNXRRSet: "NXRRSET",
	RcodeNotAuth: "NOTAUTH", RcodeNotZone: "NOTZONE", RcodeBadVers: "BADVERS",
	RcodeBadCookie: "BADCOOKIE",
}

func (r Rcode) String() string {
	if s, ok := rcodeNames[r]; ok {
		return s
	}
	return fmt.Sprintf("RCODE%d", uint16(r))
}
