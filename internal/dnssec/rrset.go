// Package dnssec verifies that an RRSIG covers an RRset under a
// caller-supplied DNSKEY (spec §4.5). It does not walk a chain of trust
// to a trust anchor and does not fetch DS/DNSKEY records itself — see
// spec.md §1 Non-goals and §9 Design Notes.
package dnssec

import (
	"bytes"
	"errors"
	"sort"

	"github.com/dnsscience/dnsq/internal/catalog"
	"github.com/dnsscience/dnsq/internal/dnsmsg"
	"github.com/dnsscience/dnsq/internal/rdata"
	"github.com/dnsscience/dnsq/internal/wire"
)

var (
	ErrRRsetTypeMismatch = errors.New("dnssec: rrset type/class/owner does not match RRSIG")
	ErrUnsupportedAlgo   = errors.New("dnssec: unsupported algorithm")
	ErrBadSignature      = errors.New("dnssec: signature verification failed")
	ErrExpired           = errors.New("dnssec: signature expired")
	ErrNotYetValid       = errors.New("dnssec: signature not yet valid")
	ErrMalformedKey      = errors.New("dnssec: malformed DNSKEY public key")
)

// RRSet is a group of records sharing owner name, class and type.
type RRSet struct {
	Owner wire.Name
	Class catalog.Class
	Type  catalog.Type
	Records []dnsmsg.RR
}

// GroupRRsets partitions rrs by {owner (case-folded), class, type}, spec
// §4.5's first step toward RRSIG verification.
func GroupRRsets(rrs []dnsmsg.RR) []RRSet {
	type key struct {
		owner string
		class catalog.Class
		typ   catalog.Type
	}
	order := make([]key, 0)
	groups := make(map[key]*RRSet)
	for _, rr := range rrs {
		k := key{owner: rr.Name.Canonical().String(), class: rr.Class, typ: rr.Type}
		g, ok := groups[k]
		if !ok {
			g = &RRSet{Owner: rr.Name, Class: rr.Class, Type: rr.Type}
			groups[k] = g
			order = append(order, k)
		}
		g.Records = append(g.Records, rr)
	}
	out := make([]RRSet, 0, len(order))
	for _, k := range order {
		out = append(out, *groups[k])
	}
	return out
}

// canonicalRDataBytes re-encodes rr's RDATA with every embedded name
// lowercased and uncompressed, for use in canonical ordering and
// signed-data construction (RFC 4034 §6.2).
func canonicalRDataBytes(rr dnsmsg.RR) ([]byte, error) {
	canon := rr.RData
	if len(canon.Fields) > 0 {
		fields := make([]rdata.Value, len(canon.Fields))
		copy(fields, canon.Fields)
		for i, f := range fields {
			if f.Kind == catalog.KindName {
				fields[i].Name = f.Name.Canonical()
			}
		}
		canon.Fields = fields
	}
	return rdata.Encode(nil, canon)
}

// canonicalOrder sorts set's records by canonical RDATA bytes ascending
// (RFC 4034 §6.3) and rewrites each record's owner to canonical form and
// TTL to origTTL (the RRSIG's Original TTL field, RFC 4035 §5.3.2).
func canonicalOrder(set RRSet, origTTL uint32) ([]dnsmsg.RR, error) {
	type entry struct {
		rr  dnsmsg.RR
		key []byte
	}
	entries := make([]entry, len(set.Records))
	for i, rr := range set.Records {
		key, err := canonicalRDataBytes(rr)
		if err != nil {
			return nil, err
		}
		canon := rr
		canon.Name = rr.Name.Canonical()
		canon.TTL = origTTL
		entries[i] = entry{rr: canon, key: key}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return bytes.Compare(entries[i].key, entries[j].key) < 0
	})
	out := make([]dnsmsg.RR, len(entries))
	for i, e := range entries {
		out[i] = e.rr
	}
	return out, nil
}
