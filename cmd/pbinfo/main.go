// Command pbinfo is a thin demo CLI over pbclient: dial a peer, ping it,
// print its program status, and list its table definitions. It is not
// part of the core library (§0 module layout).
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cscipb/pakbus/pbclient"
)

func main() {
	host := flag.String("host", "", "datalogger host or IP")
	port := flag.Int("port", 6785, "PakBus TCP port")
	localID := flag.Uint("local", 4094, "our PakBus node id")
	peerID := flag.Uint("peer", 1, "peer PakBus node id")
	verbose := flag.Bool("v", false, "enable diagnostic logging")
	flag.Parse()

	if *host == "" {
		fmt.Fprintln(os.Stderr, "pbinfo: -host is required")
		os.Exit(2)
	}

	cfg := pbclient.Config{
		Host:           *host,
		Port:           *port,
		LocalNodeId:    uint16(*localID),
		PeerNodeId:     uint16(*peerID),
		ConnectTimeout: 10 * time.Second,
		RequestTimeout: 5 * time.Second,
	}

	client, err := pbclient.Dial(cfg)
	if err != nil {
		logrus.Fatalf("dial: %v", err)
	}
	defer client.Close()

	if *verbose {
		client.LogMode(true)
	}

	hello, err := client.Ping()
	if err != nil {
		logrus.Fatalf("ping: %v", err)
	}
	logrus.Infof("ping ok: router=%d hop_metric=%d verify_intv=%d", hello.IsRouter, hello.HopMetric, hello.VerifyIntv)

	stat, err := client.GetProgStat()
	if err != nil {
		logrus.Fatalf("get prog stat: %v", err)
	}
	logrus.Infof("os=%s serial=%s program=%q sig=%d", stat.OSVer, stat.SerialNbr, stat.ProgName, stat.ProgSig)

	tables, err := client.GetTableDefs()
	if err != nil {
		logrus.Fatalf("get table defs: %v", err)
	}
	for i, t := range tables {
		logrus.Infof("table %d: %s (%d fields, sig=0x%04x)", i+1, t.Header.Name, len(t.Fields), t.Signature)
	}

	if err := client.Bye(); err != nil {
		logrus.Warnf("bye: %v", err)
	}
}
