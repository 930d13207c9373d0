// Package pbclient implements the high level PakBus/BMP5 operations a
// caller actually wants (§4.6, §6): ping, file transfer, table
// definition retrieval, data collection, value reads, and clock sync,
// all built on pbtran's transaction multiplexer and pbmsg's message
// catalogue.
package pbclient

import (
	"sort"
	"time"

	"github.com/cscipb/pakbus/internal/clog"
	"github.com/cscipb/pakbus/pbframe"
	"github.com/cscipb/pakbus/pbmsg"
	"github.com/cscipb/pakbus/pbstruct"
	"github.com/cscipb/pakbus/pbtran"
	"github.com/cscipb/pakbus/pbtype"
	"github.com/cscipb/pakbus/transport"
)

// TableDefFileName is the reserved file name the peer exposes its table
// definitions under (§6 "Reserved file names").
const TableDefFileName = ".TDF"

// Client is the high level operations surface. One Client serves one
// logical peer over one transport; it is not safe for concurrent use
// (§5 — the client is single-threaded, no background reader).
type Client struct {
	cfg  Config
	conn *transport.Conn
	mux  *pbtran.Mux
	log  clog.Clog
}

// Dial opens a TCP transport to cfg.Host:cfg.Port and wraps it in a
// transaction multiplexer that auto-answers unsolicited hello commands
// (§4.3) addressed to cfg.LocalNodeId.
func Dial(cfg Config) (*Client, error) {
	if err := cfg.Valid(); err != nil {
		return nil, err
	}
	conn, err := transport.Open(cfg.Host, cfg.Port, cfg.ConnectTimeout)
	if err != nil {
		return nil, err
	}

	if cfg.NSecTickNanos != 0 {
		pbtype.NSecTickNanos = cfg.NSecTickNanos
	}

	log := clog.New()
	reader := pbframe.NewFrameReader(conn)
	onHello := func(peerDst, peerSrc uint16, tranNbr byte) []byte {
		return pbmsg.HelloResponsePacket(peerDst, peerSrc, tranNbr, 0, 0, 0)
	}
	mux := pbtran.NewMux(reader, conn, onHello, log)

	return &Client{cfg: cfg, conn: conn, mux: mux, log: log}, nil
}

// LogMode toggles diagnostic logging (§10.1); disabled by default.
func (c *Client) LogMode(enable bool) { c.log.LogMode(enable) }

// SetLogProvider swaps the logging backend (§10.1).
func (c *Client) SetLogProvider(p clog.LogProvider) { c.log.SetLogProvider(p) }

// SetCollector attaches an optional transaction metrics collector
// (§10.5); nil detaches it.
func (c *Client) SetCollector(collector pbtran.Collector) { c.mux.SetCollector(collector) }

// Close releases the underlying transport.
func (c *Client) Close() error { return c.conn.Close() }

func (c *Client) newTran() byte { return c.mux.NewTranNbr() }

func (c *Client) wait(tran byte) (pbtran.Envelope, error) {
	return c.mux.Wait(c.cfg.LocalNodeId, c.cfg.PeerNodeId, tran, c.cfg.RequestTimeout)
}

// Ping sends a Hello command and waits for the response (§6 "ping").
func (c *Client) Ping() (pbmsg.HelloResponse, error) {
	tran := c.newTran()
	pkt := pbmsg.HelloCmd(c.cfg.PeerNodeId, c.cfg.LocalNodeId, tran, 0, 0, 1800)
	if err := c.mux.Send(pkt); err != nil {
		return pbmsg.HelloResponse{}, err
	}
	env, err := c.wait(tran)
	if err != nil {
		return pbmsg.HelloResponse{}, err
	}
	return pbmsg.DecodeHello(tran, env.Body)
}

// Bye sends the Bye command; it carries no response (§4.4).
func (c *Client) Bye() error {
	return c.mux.Send(pbmsg.ByeCmd(c.cfg.PeerNodeId, c.cfg.LocalNodeId))
}

// GetProgStat retrieves the peer's program status record.
func (c *Client) GetProgStat() (pbmsg.ProgStat, error) {
	tran := c.newTran()
	pkt := pbmsg.GetProgStatCmd(c.cfg.PeerNodeId, c.cfg.LocalNodeId, tran, c.cfg.SecurityCode)
	if err := c.mux.Send(pkt); err != nil {
		return pbmsg.ProgStat{}, err
	}
	env, err := c.wait(tran)
	if err != nil {
		return pbmsg.ProgStat{}, err
	}
	return pbmsg.DecodeProgStat(env.Body)
}

// FileUpload reads fileName off the peer (§4.6 "file upload (read from
// peer)"): it reuses one transaction number across every chunk and
// stops when the peer returns an empty FileData, surfacing the final
// RespCode. A failing chunk aborts and returns whatever was accumulated
// so far alongside that chunk's RespCode.
func (c *Client) FileUpload(fileName string) ([]byte, byte, error) {
	tran := c.newTran()
	var data []byte
	var offset uint32

	for {
		// CloseFlag is 0x00 on every chunk, the last one included.
		pkt := pbmsg.FileUploadCmd(c.cfg.PeerNodeId, c.cfg.LocalNodeId, tran, c.cfg.SecurityCode, fileName, 0, offset, c.cfg.Swath)
		if err := c.mux.Send(pkt); err != nil {
			return data, 0, err
		}
		env, err := c.wait(tran)
		if err != nil {
			return data, 0, err
		}
		resp, err := pbmsg.DecodeFileUploadResponse(env.Body)
		if err != nil {
			return data, 0, err
		}
		if resp.RespCode != 0 {
			return data, resp.RespCode, &ErrPeer{Op: "FileUpload", Code: resp.RespCode}
		}
		if len(resp.FileData) == 0 {
			return data, resp.RespCode, nil
		}
		data = append(data, resp.FileData...)
		offset = resp.FileOffset + uint32(len(resp.FileData))
	}
}

// FileDownload writes data to fileName on the peer in Swath-byte
// chunks (§4.6 "file download (write to peer)"), reusing one
// transaction number across chunks. CloseFlag is set only on the last
// chunk — not on every chunk, and never left set on a chunk that
// isn't actually the last one (§9 open question, resolved: the
// reference behaviour of never closing early is preserved verbatim).
func (c *Client) FileDownload(fileName string, data []byte) (byte, error) {
	tran := c.newTran()
	offset := uint32(0)
	total := uint32(len(data))

	for {
		end := offset + uint32(c.cfg.Swath)
		last := end >= total
		if last {
			end = total
		}
		chunk := data[offset:end]
		closeFlag := byte(0x00)
		if last {
			closeFlag = 0x01
		}

		pkt := pbmsg.FileDownloadCmd(c.cfg.PeerNodeId, c.cfg.LocalNodeId, tran, c.cfg.SecurityCode, fileName, 0, closeFlag, offset, chunk)
		if err := c.mux.Send(pkt); err != nil {
			return 0, err
		}
		env, err := c.wait(tran)
		if err != nil {
			return 0, err
		}
		resp, err := pbmsg.DecodeFileDownloadResponse(env.Body)
		if err != nil {
			return 0, err
		}
		if resp.RespCode != 0 {
			return resp.RespCode, &ErrPeer{Op: "FileDownload", Code: resp.RespCode}
		}
		if last {
			return resp.RespCode, nil
		}
		offset = end
	}
}

// FileControl issues a File Control command (e.g. compile-and-run,
// delete) against fileName.
func (c *Client) FileControl(fileName string, action pbmsg.FileControlAction) (byte, error) {
	tran := c.newTran()
	pkt := pbmsg.FileControlCmd(c.cfg.PeerNodeId, c.cfg.LocalNodeId, tran, c.cfg.SecurityCode, fileName, action)
	if err := c.mux.Send(pkt); err != nil {
		return 0, err
	}
	env, err := c.wait(tran)
	if err != nil {
		return 0, err
	}
	resp, err := pbmsg.DecodeFileControlResponse(env.Body)
	if err != nil {
		return 0, err
	}
	if resp.RespCode != 0 {
		return resp.RespCode, &ErrPeer{Op: "FileControl", Code: resp.RespCode}
	}
	return resp.RespCode, nil
}

// GetTableDefs retrieves and parses the peer's table definitions: a
// shorthand for uploading the reserved ".TDF" file and running it
// through pbstruct.ParseTableDefFile (§6).
func (c *Client) GetTableDefs() ([]pbstruct.TableDef, error) {
	raw, respCode, err := c.FileUpload(TableDefFileName)
	if err != nil {
		return nil, err
	}
	if respCode != 0 {
		return nil, &ErrPeer{Op: "GetTableDefs", Code: respCode}
	}
	_, tables, err := pbstruct.ParseTableDefFile(raw)
	return tables, err
}

// CollectData issues a Collect Data request against tableNbr (the
// table's 1-based position in the table definitions retrieved from
// GetTableDefs) and parses the response's record stream against table
// (§4.5, §4.6). fieldNbrs selects a field subset (1-based, empty means
// all fields); p1/p2 are mode-specific per pbmsg.CollectDataCmd.
func (c *Client) CollectData(tableNbr uint16, table pbstruct.TableDef, mode pbmsg.CollectMode, p1, p2 interface{}, fieldNbrs []uint16) ([]pbstruct.RecordFragment, bool, error) {
	tran := c.newTran()
	pkt := pbmsg.CollectDataCmd(c.cfg.PeerNodeId, c.cfg.LocalNodeId, tran, c.cfg.SecurityCode, tableNbr, table.Signature, mode, p1, p2, fieldNbrs)
	if err := c.mux.Send(pkt); err != nil {
		return nil, false, err
	}
	env, err := c.wait(tran)
	if err != nil {
		return nil, false, err
	}
	resp, err := pbmsg.DecodeCollectDataResponse(env.Body)
	if err != nil {
		return nil, false, err
	}
	if resp.RespCode != 0 {
		return nil, false, &ErrPeer{Op: "CollectData", Code: resp.RespCode}
	}

	intFieldNbrs := make([]int, len(fieldNbrs))
	for i, f := range fieldNbrs {
		intFieldNbrs[i] = int(f)
	}
	// CollectData is the one entry point into a single-table parse, so
	// the lookup table ParseCollectData needs is just this one table at
	// its own 1-based position.
	tables := make([]pbstruct.TableDef, tableNbr)
	tables[tableNbr-1] = table
	return pbstruct.ParseCollectData(resp.RecData, tables, intFieldNbrs)
}

// GetValues reads swath consecutive values of fieldName from tableName,
// decoded on the wire as typ (§4.6). asciiLen is the fixed string
// length to use when typ is pbtype.ASCII; it is ignored otherwise.
func (c *Client) GetValues(tableName string, typ pbtype.Type, fieldName string, swath uint16, asciiLen int) ([]interface{}, error) {
	tran := c.newTran()
	pkt := pbmsg.GetValuesCmd(c.cfg.PeerNodeId, c.cfg.LocalNodeId, tran, c.cfg.SecurityCode, tableName, typ, fieldName, swath)
	if err := c.mux.Send(pkt); err != nil {
		return nil, err
	}
	env, err := c.wait(tran)
	if err != nil {
		return nil, err
	}
	resp, err := pbmsg.DecodeGetValuesResponse(env.Body)
	if err != nil {
		return nil, err
	}
	if resp.RespCode != 0 {
		return nil, &ErrPeer{Op: "GetValues", Code: resp.RespCode}
	}
	return pbmsg.ParseValues(resp.Raw, typ, int(swath), asciiLen)
}

// ClockSync samples the peer clock 10 times, estimates the skew with a
// trimmed mean, and applies a correcting adjustment if the skew exceeds
// minAdjust (§4.6). It returns the measured mean skew and the
// adjustment actually sent (zero if none was needed).
func (c *Client) ClockSync(minAdjust, maxAdjust, offset time.Duration) (time.Duration, time.Duration, error) {
	if minAdjust == 0 {
		minAdjust = c.cfg.ClockMinAdjust
	}
	if maxAdjust == 0 {
		maxAdjust = c.cfg.ClockMaxAdjust
	}
	if offset == 0 {
		offset = c.cfg.ClockOffset
	}

	const samples = 10
	skews := make([]time.Duration, 0, samples)

	for i := 0; i < samples; i++ {
		tran := c.newTran()
		t1 := time.Now()
		pkt := pbmsg.ClockCmd(c.cfg.PeerNodeId, c.cfg.LocalNodeId, tran, c.cfg.SecurityCode, pbtype.TimePair{})
		if err := c.mux.Send(pkt); err != nil {
			return 0, 0, err
		}
		env, err := c.wait(tran)
		if err != nil {
			return 0, 0, err
		}
		t2 := time.Now()
		resp, err := pbmsg.DecodeClockResponse(env.Body)
		if err != nil {
			return 0, 0, err
		}
		if resp.RespCode != 0 {
			return 0, 0, &ErrPeer{Op: "ClockSync", Code: resp.RespCode}
		}

		peerTime := pbtype.NSecToTime(resp.Time)
		delay := t2.Sub(t1) / 2
		skew := peerTime.Sub(t1) - delay - offset
		skews = append(skews, skew)
	}

	sort.Slice(skews, func(i, j int) bool { return skews[i] < skews[j] })
	trimmed := skews[1 : len(skews)-1]
	var sum time.Duration
	for _, s := range trimmed {
		sum += s
	}
	mean := sum / time.Duration(len(trimmed))

	if mean < 0 {
		if -mean <= minAdjust {
			return mean, 0, nil
		}
	} else if mean <= minAdjust {
		return mean, 0, nil
	}

	adjustment := -mean
	if adjustment > maxAdjust {
		adjustment = maxAdjust
	} else if adjustment < -maxAdjust {
		adjustment = -maxAdjust
	}

	tran := c.newTran()
	delta := pbtype.DurationToNSec(adjustment)
	pkt := pbmsg.ClockCmd(c.cfg.PeerNodeId, c.cfg.LocalNodeId, tran, c.cfg.SecurityCode, delta)
	if err := c.mux.Send(pkt); err != nil {
		return mean, 0, err
	}
	if _, err := c.wait(tran); err != nil {
		return mean, 0, err
	}

	return mean, adjustment, nil
}
