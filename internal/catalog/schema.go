package catalog

// FieldKind tags one field of an RDATA schema. This is the "tagged-variant
// list of field kinds" design.md recommends in place of a string-driven
// interpreter: statically enumerable, switchable without parsing a mini
// language at decode time.
type FieldKind int

const (
	KindIP4 FieldKind = iota
	KindIP6
	KindName    // qname, may be compressed on decode
	KindU8
	KindU16
	KindU32
	KindString  // single character-string
	KindText    // one or more character-strings filling the rdata
	KindBase64  // remainder of rdata, base64-rendered
	KindHex     // remainder of rdata, hex-rendered
	KindTime    // u32 seconds since epoch
	KindQType   // u16 decoded as a type mnemonic
	KindOptions // OPT RDATA: sequence of {code u16, len u16, data}
	KindSalt    // u8-length-prefixed hex (NSEC3)
	KindHash    // u8-length-prefixed base32 (NSEC3 next-hashed-owner)
	KindTypes   // NSEC/NSEC3 type bitmap
	KindProperty // CAA flags, tag and value
	KindRemainingBytes // raw remainder, opaque (LOC, CERT fixed-plus-blob tails)
)

// Field names one element of a type's RDATA shape.
type Field struct {
	Name string
	Kind FieldKind
}

// Schema is the ordered field list describing one record type's RDATA.
type Schema []Field

// schemas is the catalog of supported types' RDATA shapes (spec §4.3).
// Unknown types are not present here; internal/rdata falls back to the
// RFC 3597 opaque form for anything absent from this map.
var schemas = map[Type]Schema{
	TypeA:    {{"Address", KindIP4}},
	TypeNS:   {{"Target", KindName}},
	TypeCNAME: {{"Target", KindName}},
	TypeDNAME: {{"Target", KindName}},
	TypePTR:  {{"Target", KindName}},
	TypeSOA: {
		{"MName", KindName}, {"RName", KindName},
		{"Serial", KindU32}, {"Refresh", KindU32}, {"Retry", KindU32},
		{"Expire", KindU32}, {"Minimum", KindU32},
	},
	TypeHINFO: {{"CPU", KindString}, {"OS", KindString}},
	TypeMX:    {{"Preference", KindU16}, {"Exchange", KindName}},
	TypeTXT:   {{"Text", KindText}},
	TypeRP:    {{"Mbox", KindName}, {"TXTDName", KindName}},
	TypeAFSDB: {{"Subtype", KindU16}, {"Hostname", KindName}},
	TypeKEY:   {{"Flags", KindU16}, {"Protocol", KindU8}, {"Algorithm", KindU8}, {"PublicKey", KindBase64}},
	TypeDNSKEY: {{"Flags", KindU16}, {"Protocol", KindU8}, {"Algorithm", KindU8}, {"PublicKey", KindBase64}},
	TypeAAAA:  {{"Address", KindIP6}},
	TypeLOC:   {{"Data", KindRemainingBytes}},
	TypeSRV:   {{"Priority", KindU16}, {"Weight", KindU16}, {"Port", KindU16}, {"Target", KindName}},
	TypeNAPTR: {
		{"Order", KindU16}, {"Preference", KindU16},
		{"Flags", KindString}, {"Services", KindString}, {"Regexp", KindString},
		{"Replacement", KindName},
	},
	TypeCERT: {{"Type", KindU16}, {"KeyTag", KindU16}, {"Algorithm", KindU8}, {"Certificate", KindBase64}},
	TypeDS:   {{"KeyTag", KindU16}, {"Algorithm", KindU8}, {"DigestType", KindU8}, {"Digest", KindHex}},
	TypeSSHFP: {{"Algorithm", KindU8}, {"FPType", KindU8}, {"Fingerprint", KindHex}},
	TypeRRSIG: {
		{"TypeCovered", KindQType}, {"Algorithm", KindU8}, {"Labels", KindU8},
		{"OriginalTTL", KindU32}, {"Expiration", KindTime}, {"Inception", KindTime},
		{"KeyTag", KindU16}, {"SignerName", KindName}, {"Signature", KindBase64},
	},
	TypeNSEC:   {{"NextDomain", KindName}, {"Types", KindTypes}},
	TypeNSEC3: {
		{"HashAlgorithm", KindU8}, {"Flags", KindU8}, {"Iterations", KindU16},
		{"Salt", KindSalt}, {"NextHashed", KindHash}, {"Types", KindTypes},
	},
	TypeNSEC3PARAM: {
		{"HashAlgorithm", KindU8}, {"Flags", KindU8}, {"Iterations", KindU16}, {"Salt", KindSalt},
	},
	TypeTLSA: {{"Usage", KindU8}, {"Selector", KindU8}, {"MatchingType", KindU8}, {"Certificate", KindHex}},
	TypeOPENPGPKEY: {{"PublicKey", KindBase64}},
	TypeCAA: {{"Property", KindProperty}},
	TypeOPT: {{"Options", KindOptions}},
}

// Lookup returns the schema for t, and whether one is registered.
func Lookup(t Type) (Schema, bool) {
	s, ok := schemas[t]
	return s, ok
}
