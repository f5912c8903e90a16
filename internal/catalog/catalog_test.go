package catalog

import "testing"

func TestTypeStringKnownAndUnknown(t *testing.T) {
	if got := TypeA.String(); got != "A" {
		t.Errorf("TypeA.String() = %q, want A", got)
	}
	if got := Type(9999).String(); got != "TYPE9999" {
		t.Errorf("Type(9999).String() = %q, want TYPE9999", got)
	}
}

func TestParseTypeRoundTrip(t *testing.T) {
	for typ, name := range typeNames {
		got, err := ParseType(name)
		if err != nil {
			t.Errorf("ParseType(%q) error: %v", name, err)
			continue
		}
		if got != typ {
			t.Errorf("ParseType(%q) = %v, want %v", name, got, typ)
		}
	}
}

func TestParseTypeStarIsANY(t *testing.T) {
	got, err := ParseType("*")
	if err != nil {
		t.Fatalf("ParseType(*) error: %v", err)
	}
	if got != TypeANY {
		t.Errorf("ParseType(*) = %v, want ANY", got)
	}
}

func TestParseTypeUnknown(t *testing.T) {
	if _, err := ParseType("BOGUS"); err == nil {
		t.Error("ParseType(BOGUS) should error")
	}
}

func TestClassString(t *testing.T) {
	if got := ClassIN.String(); got != "IN" {
		t.Errorf("ClassIN.String() = %q, want IN", got)
	}
	if got := Class(77).String(); got != "CLASS77" {
		t.Errorf("Class(77).String() = %q, want CLASS77", got)
	}
}

func TestOpcodeString(t *testing.T) {
	cases := map[Opcode]string{
		OpcodeQuery:  "QUERY",
		OpcodeIQuery: "IQUERY",
		OpcodeStatus: "STATUS",
		OpcodeNotify: "NOTIFY",
		OpcodeUpdate: "UPDATE",
		Opcode(9):    "OPCODE9",
	}
	for op, want := range cases {
		if got := op.String(); got != want {
			t.Errorf("Opcode(%d).String() = %q, want %q", op, got, want)
		}
	}
}

func TestRcodeString(t *testing.T) {
	if got := RcodeNXDomain.String(); got != "NXDOMAIN" {
		t.Errorf("RcodeNXDomain.String() = %q, want NXDOMAIN", got)
	}
	if got := Rcode(4095).String(); got != "RCODE4095" {
		t.Errorf("Rcode(4095).String() = %q, want RCODE4095", got)
	}
}

func TestLookupKnownAndUnknown(t *testing.T) {
	schema, ok := Lookup(TypeA)
	if !ok {
		t.Fatal("Lookup(TypeA) not found")
	}
	if len(schema) != 1 || schema[0].Kind != KindIP4 {
		t.Errorf("Lookup(TypeA) = %+v, want single KindIP4 field", schema)
	}

	if _, ok := Lookup(Type(65280)); ok {
		t.Error("Lookup() of an unregistered private-use type should report ok=false")
	}
}

func TestSchemaCoversSOAFieldOrder(t *testing.T) {
	schema, ok := Lookup(TypeSOA)
	if !ok {
		t.Fatal("Lookup(TypeSOA) not found")
	}
	wantNames := []string{"MName", "RName", "Serial", "Refresh", "Retry", "Expire", "Minimum"}
	if len(schema) != len(wantNames) {
		t.Fatalf("len(schema) = %d, want %d", len(schema), len(wantNames))
	}
	for i, f := range schema {
		if f.Name != wantNames[i] {
			t.Errorf("schema[%d].Name = %q, want %q", i, f.Name, wantNames[i])
		}
	}
}
