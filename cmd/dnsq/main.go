// Command dnsq is a minimal single-query demonstration of the protocol
// engine in internal/query, internal/transport and internal/dnsmsg. It is
// deliberately thin: argument shorthands (+tls, +doh), color output, and
// padded/JSON rendering are the external CLI front end's job, not this
// library's (spec.md §1). This command exists so the library is
// reachable as a program, not as the reference CLI.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/dnsscience/dnsq/internal/catalog"
	"github.com/dnsscience/dnsq/internal/config"
	"github.com/dnsscience/dnsq/internal/query"
	"github.com/dnsscience/dnsq/internal/transport"
	"github.com/dnsscience/dnsq/internal/wire"
)

var defaults = config.DefaultDefaults()

var (
	qtypeFlag     = flag.String("type", "A", "query type mnemonic, e.g. A, AAAA, MX, TXT")
	serverFlag    = flag.String("server", "127.0.0.1:53", "upstream server host:port, or full URL for DoH")
	transportFlag = flag.String("transport", defaults.Transport, "udp, tcp, dot, doh-https, doh-http")
	doFlag        = flag.Bool("do", false, "set the DNSSEC OK bit and request signed records")
	timeoutFlag   = flag.Duration("timeout", defaults.Timeout, "per-query timeout")
	configFlag    = flag.String("config", "", "optional YAML resolver defaults file")
)

// Exit codes (spec.md §6).
const (
	exitSuccess      = 0
	exitTransport    = 1
	exitDecode       = 2
	exitNonNoError   = 3
	exitUsage        = 4
)

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: dnsq [flags] <qname>")
		os.Exit(exitUsage)
	}

	qname, err := wire.ParseName(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "dnsq: %v\n", err)
		os.Exit(exitUsage)
	}
	qtype, err := catalog.ParseType(*qtypeFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dnsq: %v\n", err)
		os.Exit(exitUsage)
	}
	if qtype == catalog.TypeAXFR {
		fmt.Fprintln(os.Stderr, "dnsq: AXFR is not supported by a stub resolver")
		os.Exit(exitUsage)
	}
	server, transportName := *serverFlag, *transportFlag
	if *configFlag != "" {
		d, err := config.Load(*configFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "dnsq: %v\n", err)
			os.Exit(exitUsage)
		}
		if srv, ok := d.Lookup(*serverFlag); ok {
			server, transportName = srv.Host, srv.Transport
		}
	}
	kind, err := config.TransportKind(transportName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dnsq: %v\n", err)
		os.Exit(exitUsage)
	}

	m := query.MakeQuery(qname, qtype, query.Options{DO: *doFlag})
	tr := transport.Transport{Kind: kind, Server: server}

	result, err := query.Query(context.Background(), m, tr, *timeoutFlag)
	if err != nil {
		if result.Message == nil {
			fmt.Fprintf(os.Stderr, "dnsq: %v\n", err)
			os.Exit(exitTransport)
		}
		fmt.Fprintf(os.Stderr, "dnsq: %v\n", err)
		if result.Message.CombinedRcode() != catalog.RcodeNoError {
			printMessage(result, kind)
			os.Exit(exitNonNoError)
		}
		os.Exit(exitDecode)
	}

	printMessage(result, kind)
	os.Exit(exitSuccess)
}

func printMessage(result query.Result, kind transport.Kind) {
	m := result.Message
	fmt.Printf(";; server %s, transport %s, rtt %s\n", result.Server, kind, result.RTT)
	fmt.Printf(";; opcode: %s, rcode: %s, id: %d\n", catalog.Opcode(m.Header.Opcode), m.CombinedRcode(), m.Header.ID)
	for _, q := range m.Question {
		fmt.Printf(";; QUESTION: %s %s %s\n", q.Name, q.Class, q.Type)
	}
	for _, rr := range m.Answer {
		fmt.Printf("%s\t%d\t%s\t%s\t%s\n", rr.Name, rr.TTL, rr.Class, rr.Type, rr.RData)
	}
}
